package calendars

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"holidays/internal/core/date"
	perr "holidays/internal/platform/errors"
)

//go:embed hebrew.json
var hebrewJSON []byte

type rawTable struct {
	Version       int                `json:"version"`
	System        System             `json:"system"`
	FirstYear     int                `json:"first_year"`
	LastYear      int                `json:"last_year"`
	EstimatedFrom int                `json:"estimated_from,omitempty"`
	Events        map[Event][]string `json:"events"`
}

// Table is a lookup-table source: one "MM-DD" per covered year and event
type Table struct {
	system        System
	first, last   int
	estimatedFrom int
	events        []Event
	days          map[Event][]date.Date
}

// ParseTable decodes and validates a table. Every event must list exactly one
// valid day per covered year.
func ParseTable(data []byte) (*Table, error) {
	var rt rawTable
	if err := json.Unmarshal(data, &rt); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeJSON, "calendars: parse table")
	}
	if rt.System == "" {
		return nil, perr.Validationf("calendars: table has no system")
	}
	if rt.FirstYear < date.MinYear || rt.LastYear > date.MaxYear || rt.FirstYear > rt.LastYear {
		return nil, perr.Validationf("calendars: %s: bad coverage %d..%d", rt.System, rt.FirstYear, rt.LastYear)
	}
	if len(rt.Events) == 0 {
		return nil, perr.Validationf("calendars: %s: no events", rt.System)
	}

	n := rt.LastYear - rt.FirstYear + 1
	t := &Table{
		system:        rt.System,
		first:         rt.FirstYear,
		last:          rt.LastYear,
		estimatedFrom: rt.EstimatedFrom,
		days:          make(map[Event][]date.Date, len(rt.Events)),
	}
	for ev, list := range rt.Events {
		if len(list) != n {
			return nil, perr.Validationf("calendars: %s %s: %d entries for %d years", rt.System, ev, len(list), n)
		}
		days := make([]date.Date, n)
		for i, s := range list {
			y := rt.FirstYear + i
			var m, d int
			if _, err := fmt.Sscanf(s, "%02d-%02d", &m, &d); err != nil {
				return nil, perr.Validationf("calendars: %s %s %d: bad entry %q", rt.System, ev, y, s)
			}
			v, ok := date.New(y, time.Month(m), d)
			if !ok {
				return nil, perr.Validationf("calendars: %s %s %d: impossible day %q", rt.System, ev, y, s)
			}
			days[i] = v
		}
		t.days[ev] = days
		t.events = append(t.events, ev)
	}
	sort.Slice(t.events, func(i, j int) bool { return t.events[i] < t.events[j] })
	return t, nil
}

// System implements Source
func (t *Table) System() System { return t.system }

// Coverage implements Source
func (t *Table) Coverage() (int, int) { return t.first, t.last }

// Events implements Source
func (t *Table) Events() []Event { return append([]Event(nil), t.events...) }

// Lookup implements Source
func (t *Table) Lookup(ev Event, year int) (Anchor, bool) {
	days, ok := t.days[ev]
	if !ok || year < t.first || year > t.last {
		return Anchor{}, false
	}
	return Anchor{
		Date:      days[year-t.first],
		Estimated: t.estimatedFrom != 0 && year >= t.estimatedFrom,
	}, true
}
