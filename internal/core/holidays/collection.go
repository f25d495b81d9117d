package holidays

import (
	"encoding/json"
	"fmt"
	"slices"
	"sort"

	"holidays/internal/core/date"
)

// Entry is one holiday on one date
type Entry struct {
	Name       string   `json:"name"`
	Categories []string `json:"categories"`
	Observed   bool     `json:"observed,omitempty"`
	Shifted    bool     `json:"shifted,omitempty"`
	Estimated  bool     `json:"estimated,omitempty"`
}

// Labels are the printf formats used to decorate observed and estimated names
type Labels struct {
	Observed  string
	Estimated string
}

// DefaultLabels decorate names in English
var DefaultLabels = Labels{Observed: "%s (observed)", Estimated: "%s (estimated)"}

// Label is the display name of the entry
func (e Entry) Label(l Labels) string {
	name := e.Name
	if e.Observed && l.Observed != "" {
		name = fmt.Sprintf(l.Observed, name)
	}
	if e.Estimated && l.Estimated != "" {
		name = fmt.Sprintf(l.Estimated, name)
	}
	return name
}

// View selects which entries a caller sees
type View string

// Views
const (
	// ViewAll keeps actual and observed entries
	ViewAll View = "all"
	// ViewActual keeps the days holidays really fall on
	ViewActual View = "actual"
	// ViewObserved keeps the days holidays are recognised: substitutes plus unmoved actuals
	ViewObserved View = "observed"
)

// ParseView reads a view name; empty means ViewAll
func ParseView(s string) (View, bool) {
	switch View(s) {
	case "", ViewAll:
		return ViewAll, true
	case ViewActual, ViewObserved:
		return View(s), true
	}
	return "", false
}

// Keep reports whether the entry belongs to the view
func (v View) Keep(e Entry) bool {
	switch v {
	case ViewActual:
		return !e.Observed
	case ViewObserved:
		return e.Observed || !e.Shifted
	}
	return true
}

// Collection maps dates to an ordered set of entries. Dates and entries keep
// insertion order; the date is the lookup identity.
type Collection struct {
	order  []date.Date
	byDate map[date.Date][]Entry
}

// Day is one date of a collection in its serialised form
type Day struct {
	Date    date.Date `json:"date"`
	Names   []string  `json:"names"`
	Entries []Entry   `json:"entries"`
}

// NewCollection returns an empty collection
func NewCollection() *Collection {
	return &Collection{byDate: make(map[date.Date][]Entry)}
}

// Add inserts an entry. An entry with the same name and observed flag already
// on that date absorbs it: categories are unioned, flags are or-ed.
func (c *Collection) Add(d date.Date, e Entry) {
	list, ok := c.byDate[d]
	if !ok {
		c.order = append(c.order, d)
	}
	for i := range list {
		if list[i].Name == e.Name && list[i].Observed == e.Observed {
			for _, cat := range e.Categories {
				if !slices.Contains(list[i].Categories, cat) {
					list[i].Categories = append(list[i].Categories, cat)
				}
			}
			list[i].Shifted = list[i].Shifted || e.Shifted
			list[i].Estimated = list[i].Estimated || e.Estimated
			return
		}
	}
	e.Categories = slices.Clone(e.Categories)
	c.byDate[d] = append(list, e)
}

// markShifted flags the actual entry of name on d as moved
func (c *Collection) markShifted(d date.Date, name string) {
	list := c.byDate[d]
	for i := range list {
		if list[i].Name == name && !list[i].Observed {
			list[i].Shifted = true
		}
	}
}

// Get returns a copy of the entries on d
func (c *Collection) Get(d date.Date) []Entry {
	list := c.byDate[d]
	if len(list) == 0 {
		return nil
	}
	out := make([]Entry, len(list))
	for i, e := range list {
		e.Categories = slices.Clone(e.Categories)
		out[i] = e
	}
	return out
}

// Has reports whether d holds any entry
func (c *Collection) Has(d date.Date) bool { return len(c.byDate[d]) > 0 }

// Names lists the distinct names on d in insertion order
func (c *Collection) Names(d date.Date) []string {
	var out []string
	for _, e := range c.byDate[d] {
		if !slices.Contains(out, e.Name) {
			out = append(out, e.Name)
		}
	}
	return out
}

// Labels lists display names on d in insertion order
func (c *Collection) Labels(d date.Date, l Labels) []string {
	var out []string
	for _, e := range c.byDate[d] {
		if lbl := e.Label(l); !slices.Contains(out, lbl) {
			out = append(out, lbl)
		}
	}
	return out
}

// Dates returns the dates in insertion order
func (c *Collection) Dates() []date.Date { return slices.Clone(c.order) }

// Len is the number of dates
func (c *Collection) Len() int { return len(c.order) }

// Sorted returns the days in date order
func (c *Collection) Sorted() []Day {
	dates := c.Dates()
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	out := make([]Day, 0, len(dates))
	for _, d := range dates {
		out = append(out, Day{Date: d, Names: c.Names(d), Entries: c.Get(d)})
	}
	return out
}

// Clone deep-copies the collection
func (c *Collection) Clone() *Collection {
	out := NewCollection()
	out.Merge(c)
	return out
}

// Merge adds every entry of o, in o's order
func (c *Collection) Merge(o *Collection) {
	if o == nil {
		return
	}
	for _, d := range o.order {
		for _, e := range o.byDate[d] {
			c.Add(d, e)
		}
	}
}

// Select returns a new collection with the entries keep accepts
func (c *Collection) Select(keep func(date.Date, Entry) bool) *Collection {
	out := NewCollection()
	for _, d := range c.order {
		for _, e := range c.byDate[d] {
			if keep(d, e) {
				out.Add(d, e)
			}
		}
	}
	return out
}

// Filter returns the entries of the view
func (c *Collection) Filter(v View) *Collection {
	if v == "" || v == ViewAll {
		return c.Clone()
	}
	return c.Select(func(_ date.Date, e Entry) bool { return v.Keep(e) })
}

// Between returns the entries dated from..to inclusive
func (c *Collection) Between(from, to date.Date) *Collection {
	return c.Select(func(d date.Date, _ Entry) bool { return !d.Before(from) && !d.After(to) })
}

// MarshalJSON encodes the collection as a date-sorted list
func (c *Collection) MarshalJSON() ([]byte, error) { return json.Marshal(c.Sorted()) }
