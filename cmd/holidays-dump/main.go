// Command holidays-dump prints the holidays of one entity over a span of years
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"holidays/internal/core/holidays"
	"holidays/internal/platform/config"
	pstrings "holidays/internal/platform/strings"
)

type options struct {
	entity     string
	subdivs    string
	categories string
	from, to   int
	view       string
	format     string
}

// defaults reads HOLIDAYS_DUMP_VIEW and HOLIDAYS_DUMP_FORMAT; flags override them
func defaults(conf config.Conf) options {
	c := conf.Prefix("HOLIDAYS_DUMP_")
	return options{
		from:   time.Now().Year(),
		view:   c.MayEnum("VIEW", string(holidays.ViewAll), string(holidays.ViewAll), string(holidays.ViewActual), string(holidays.ViewObserved)),
		format: c.MayEnum("FORMAT", "text", "text", "json"),
	}
}

func main() {
	conf := config.New()
	o := defaults(conf)
	flag.StringVar(&o.entity, "entity", "", "entity code or alias (e.g., US, GB, Germany)")
	flag.StringVar(&o.subdivs, "subdiv", "", "comma-separated subdivision codes")
	flag.StringVar(&o.categories, "categories", "", "comma-separated categories (default: the entity's first)")
	flag.IntVar(&o.from, "from", o.from, "first year")
	flag.IntVar(&o.to, "to", 0, "last year (default: same as -from)")
	flag.StringVar(&o.view, "view", o.view, "all, actual or observed")
	flag.StringVar(&o.format, "format", o.format, "text or json")
	flag.Parse()

	if err := run(conf, o, os.Stdout); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(conf config.Conf, o options, w io.Writer) error {
	if strings.TrimSpace(o.entity) == "" {
		return fmt.Errorf("-entity is required")
	}
	view, ok := holidays.ParseView(o.view)
	if !ok {
		return fmt.Errorf("unknown view %q", o.view)
	}

	engine, err := holidays.FromConfig(conf)
	if err != nil {
		return err
	}
	coll, err := engine.HolidaysFor(holidays.Query{
		Entity:       o.entity,
		Subdivisions: pstrings.Upper(pstrings.Codes(o.subdivs)),
		Categories:   pstrings.Codes(o.categories),
		From:         o.from,
		To:           o.to,
		View:         view,
	})
	if err != nil {
		return err
	}

	labels := engine.Labels()
	days := coll.Sorted()
	switch o.format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(days)
	case "text":
		for _, d := range days {
			names := make([]string, 0, len(d.Entries))
			for _, e := range d.Entries {
				names = append(names, e.Label(labels))
			}
			if _, err := fmt.Fprintf(w, "%s  %s\n", d.Date, strings.Join(names, "; ")); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("unknown format %q", o.format)
}
