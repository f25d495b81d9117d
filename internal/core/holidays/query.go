package holidays

import (
	"slices"
	"time"

	"holidays/internal/core/catalog"
	"holidays/internal/core/date"
	"holidays/internal/core/names"
	perr "holidays/internal/platform/errors"
)

// Query asks for the holidays of an entity over a span of years.
// To zero means From only; empty Categories means the entity's first category.
type Query struct {
	Entity       string
	Subdivisions []string
	Categories   []string
	From, To     int
	View         View
}

type scope struct {
	ent  *catalog.Entity
	subs []string
	cats []string
}

// scope checks entity, subdivisions and categories before any resolution work
func (e *Engine) scope(entity string, subdivisions, categories []string) (scope, error) {
	ent, err := e.cat.Entity(entity)
	if err != nil {
		return scope{}, err
	}
	subs, err := ent.NormalizeSubdivisions(subdivisions)
	if err != nil {
		return scope{}, err
	}
	cats := make([]string, 0, len(categories))
	for _, c := range categories {
		if c == "" || slices.Contains(cats, c) {
			continue
		}
		if !ent.HasCategory(c) {
			return scope{}, perr.Configf("%s: unknown category %q", ent.Code, c)
		}
		cats = append(cats, c)
	}
	if len(cats) == 0 {
		cats = []string{ent.DefaultCategory()}
	}
	return scope{ent: ent, subs: subs, cats: cats}, nil
}

func (e *Engine) checkSpan(from, to int) error {
	if !date.ValidYear(from) || !date.ValidYear(to) {
		return perr.Rangef("years %d..%d outside %d..%d", from, to, date.MinYear, date.MaxYear)
	}
	if to < from {
		return perr.InvalidArgf("year span %d..%d is reversed", from, to)
	}
	if to-from+1 > e.maxSpan {
		return perr.Rangef("year span %d..%d exceeds %d years", from, to, e.maxSpan)
	}
	return nil
}

// years merges the per-year, per-category collections of y0..y1 in year then category order.
// Years outside the strict span are padding: their range errors are skipped.
func (e *Engine) years(s scope, y0, y1, strict0, strict1 int) (*Collection, error) {
	out := NewCollection()
	for y := y0; y <= y1; y++ {
		for _, cat := range s.cats {
			c, err := e.Year(s.ent, s.subs, cat, y)
			if err != nil {
				if (y < strict0 || y > strict1) && perr.IsCode(err, perr.ErrorCodeRange) {
					e.log.Warn().Err(err).Str("entity", s.ent.Code).Int("year", y).Msg("adjacent year out of range; skipped")
					continue
				}
				return nil, err
			}
			out.Merge(c)
		}
	}
	return out, nil
}

// HolidaysFor returns the holidays of the query span. The result is the union
// of each year's collections in year order, so any split of the span merges
// back to the same collection.
func (e *Engine) HolidaysFor(q Query) (*Collection, error) {
	s, err := e.scope(q.Entity, q.Subdivisions, q.Categories)
	if err != nil {
		return nil, err
	}
	view, ok := ParseView(string(q.View))
	if !ok {
		return nil, perr.InvalidArgf("unknown view %q", q.View)
	}
	to := q.To
	if to == 0 {
		to = q.From
	}
	if err := e.checkSpan(q.From, to); err != nil {
		return nil, err
	}
	out, err := e.years(s, q.From, to, q.From, to)
	if err != nil {
		return nil, err
	}
	return out.Filter(view), nil
}

// entries collects what is on d, looking at neighbouring years whose observed
// days may spill onto it
func (e *Engine) entries(s scope, d date.Date) ([]Entry, error) {
	if !date.ValidYear(d.Year) {
		return nil, perr.Rangef("year %d outside %d..%d", d.Year, date.MinYear, date.MaxYear)
	}
	y0, y1 := d.Year, d.Year
	if d.Month == time.January && date.ValidYear(d.Year-1) {
		y0 = d.Year - 1
	}
	if d.Month == time.December && date.ValidYear(d.Year+1) {
		y1 = d.Year + 1
	}
	c, err := e.years(s, y0, y1, d.Year, d.Year)
	if err != nil {
		return nil, err
	}
	return c.Get(d), nil
}

// IsHoliday reports whether d carries any holiday, actual or observed
func (e *Engine) IsHoliday(entity string, subdivisions []string, d date.Date, categories []string) (bool, error) {
	_, ok, err := e.NameOf(entity, subdivisions, d, categories)
	return ok, err
}

// NameOf returns the display names of the holidays on d
func (e *Engine) NameOf(entity string, subdivisions []string, d date.Date, categories []string) ([]string, bool, error) {
	s, err := e.scope(entity, subdivisions, categories)
	if err != nil {
		return nil, false, err
	}
	list, err := e.entries(s, d)
	if err != nil {
		return nil, false, err
	}
	var out []string
	for _, en := range list {
		if l := en.Label(e.labels); !slices.Contains(out, l) {
			out = append(out, l)
		}
	}
	return out, len(out) > 0, nil
}

// IsWorkingDay reports whether d is neither a weekend day of the entity nor a
// recognised (observed view) holiday
func (e *Engine) IsWorkingDay(entity string, subdivisions []string, d date.Date, categories []string) (bool, error) {
	s, err := e.scope(entity, subdivisions, categories)
	if err != nil {
		return false, err
	}
	if s.ent.WeekendSet().Has(d.Weekday()) {
		return false, nil
	}
	list, err := e.entries(s, d)
	if err != nil {
		return false, err
	}
	for _, en := range list {
		if ViewObserved.Keep(en) {
			return false, nil
		}
	}
	return true, nil
}

// Between returns the holidays dated from..to inclusive, including observed
// days that spill in from the neighbouring years
func (e *Engine) Between(entity string, subdivisions, categories []string, from, to date.Date, view View) (*Collection, error) {
	s, err := e.scope(entity, subdivisions, categories)
	if err != nil {
		return nil, err
	}
	v, ok := ParseView(string(view))
	if !ok {
		return nil, perr.InvalidArgf("unknown view %q", view)
	}
	if to.Before(from) {
		return nil, perr.InvalidArgf("range %s..%s is reversed", from, to)
	}
	if err := e.checkSpan(from.Year, to.Year); err != nil {
		return nil, err
	}
	y0, y1 := from.Year, to.Year
	if date.ValidYear(y0 - 1) {
		y0--
	}
	if date.ValidYear(y1 + 1) {
		y1++
	}
	c, err := e.years(s, y0, y1, from.Year, to.Year)
	if err != nil {
		return nil, err
	}
	return c.Between(from, to).Filter(v), nil
}

// Next returns the first recognised holiday on or after from, searching at most MaxSpan years
func (e *Engine) Next(entity string, subdivisions, categories []string, from date.Date) (Day, bool, error) {
	s, err := e.scope(entity, subdivisions, categories)
	if err != nil {
		return Day{}, false, err
	}
	if !date.ValidYear(from.Year) {
		return Day{}, false, perr.Rangef("year %d outside %d..%d", from.Year, date.MinYear, date.MaxYear)
	}
	last := min(from.Year+e.maxSpan-1, date.MaxYear)
	for y := from.Year; y <= last; y++ {
		y0, y1 := y, y
		if date.ValidYear(y - 1) {
			y0 = y - 1
		}
		if date.ValidYear(y + 1) {
			y1 = y + 1
		}
		c, err := e.years(s, y0, y1, y, y)
		if err != nil {
			return Day{}, false, err
		}
		end := date.MustNew(y, time.December, 31)
		days := c.Between(from, end).Filter(ViewObserved).Sorted()
		if len(days) > 0 {
			return days[0], true, nil
		}
	}
	return Day{}, false, nil
}

// Named searches the query span for holidays whose name contains name,
// ignoring case and accents
func (e *Engine) Named(q Query, name string) (*Collection, error) {
	if names.Fold(name) == "" {
		return nil, perr.InvalidArgf("empty name")
	}
	c, err := e.HolidaysFor(q)
	if err != nil {
		return nil, err
	}
	return c.Select(func(_ date.Date, en Entry) bool { return names.Contains(en.Name, name) }), nil
}

// Warm populates every category of the entities for from..to
func (e *Engine) Warm(entities []string, from, to int) error {
	if err := e.checkSpan(from, to); err != nil {
		return err
	}
	start := time.Now()
	for _, code := range entities {
		ent, err := e.cat.Entity(code)
		if err != nil {
			return err
		}
		for _, cat := range ent.Categories {
			for y := from; y <= to; y++ {
				if _, err := e.Year(ent, nil, cat, y); err != nil {
					return err
				}
			}
		}
	}
	e.log.Info().
		Strs("entities", entities).
		Int("from", from).
		Int("to", to).
		Int("cells", e.Stats().Cells).
		Dur("elapsed", time.Since(start)).
		Msg("holiday cache warmed")
	return nil
}
