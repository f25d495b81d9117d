package rule

import (
	"time"

	"holidays/internal/core/calendars"
	"holidays/internal/core/date"
	perr "holidays/internal/platform/errors"
)

// Anchors resolves calendar anchors; *calendars.Registry satisfies it
type Anchors interface {
	Resolve(sys calendars.System, ev calendars.Event, year int) (calendars.Anchor, error)
}

// Resolve returns the days rule r falls on in year, in date order.
// Only days inside year are returned. Anchored rules also look at the
// neighbouring years so an offset or multi-day span that crosses New Year is kept.
func Resolve(r Rule, year int, anchors Anchors) ([]Occurrence, error) {
	if !date.ValidYear(year) {
		return nil, perr.Rangef("rule %s: year %d outside %d..%d", r.ID, year, date.MinYear, date.MaxYear)
	}
	if !r.ActiveIn(year) {
		return nil, nil
	}

	sources := []int{year}
	if r.anchored() {
		sources = []int{year - 1, year, year + 1}
	}

	var out []Occurrence
	seen := make(map[date.Date]struct{})
	for _, src := range sources {
		start, est, ok, err := r.start(src, anchors)
		if err != nil {
			if src != year && perr.IsCode(err, perr.ErrorCodeRange) {
				continue
			}
			return nil, perr.Rewrap(err, perr.ErrorCodeUnknown, "rule %s", r.ID)
		}
		if !ok {
			continue
		}
		for i := 0; i < r.span(); i++ {
			d := start.AddDays(i)
			if d.Year != year {
				continue
			}
			if _, dup := seen[d]; dup {
				continue
			}
			seen[d] = struct{}{}
			out = append(out, Occurrence{Date: d, Estimated: est})
		}
	}
	return out, nil
}

func (r Rule) anchored() bool {
	switch r.Kind {
	case Offset, Calendar:
		return true
	}
	return false
}

func (r Rule) span() int {
	if r.Days < 1 {
		return 1
	}
	return r.Days
}

// start is the first day of the rule for the given source year
func (r Rule) start(year int, anchors Anchors) (date.Date, bool, bool, error) {
	if !date.ValidYear(year) {
		return date.Date{}, false, false, perr.Rangef("year %d outside %d..%d", year, date.MinYear, date.MaxYear)
	}
	b := r.Base
	if r.Kind == Offset {
		if r.Anchor == nil {
			return date.Date{}, false, false, perr.Validationf("offset rule without anchor")
		}
		b = *r.Anchor
	}
	d, est, ok, err := resolveBase(b, year, anchors)
	if err != nil || !ok {
		return d, est, ok, err
	}
	if r.Offset != 0 {
		d = applyOffset(d, r.Offset, r.OffsetWeekday)
	}
	return d, est, true, nil
}

func resolveBase(b Base, year int, anchors Anchors) (date.Date, bool, bool, error) {
	switch b.Kind {
	case Fixed:
		d, ok := FixedDay(year, b.Month, b.Day, b.LeapDay)
		return d, false, ok, nil
	case NthWeekday:
		if b.Weekday == nil {
			return date.Date{}, false, false, perr.Validationf("nth_weekday without weekday")
		}
		d, ok := NthWeekdayOf(year, b.Month, b.Weekday.Std(), b.Ordinal)
		return d, false, ok, nil
	case Calendar:
		if anchors == nil {
			return date.Date{}, false, false, perr.Configf("no calendar registry for %s", b.Calendar)
		}
		a, err := anchors.Resolve(b.Calendar, b.Event, year)
		if err != nil {
			return date.Date{}, false, false, err
		}
		return a.Date, a.Estimated, true, nil
	}
	return date.Date{}, false, false, perr.Validationf("unsupported kind %q", b.Kind)
}

// FixedDay returns month/day in year. Feb 29 in a common year is skipped, or
// moved to Feb 28 under LeapClamp.
func FixedDay(year int, m time.Month, day int, leap LeapDay) (date.Date, bool) {
	if d, ok := date.New(year, m, day); ok {
		return d, true
	}
	if m == time.February && day == 29 && leap == LeapClamp {
		return date.New(year, time.February, 28)
	}
	return date.Date{}, false
}

// NthWeekdayOf returns the k-th weekday of the month, counting from the end when k < 0.
// A fifth occurrence that the month does not have yields false.
func NthWeekdayOf(year int, m time.Month, wd time.Weekday, k int) (date.Date, bool) {
	if k == 0 || k > 5 || k < -5 {
		return date.Date{}, false
	}
	last := date.DaysIn(year, m)
	if k > 0 {
		first := date.MustNew(year, m, 1).Weekday()
		day := 1 + (int(wd)-int(first)+7)%7 + 7*(k-1)
		if day > last {
			return date.Date{}, false
		}
		return date.MustNew(year, m, day), true
	}
	lastWd := date.MustNew(year, m, last).Weekday()
	day := last - (int(lastWd)-int(wd)+7)%7 - 7*(-k-1)
	if day < 1 {
		return date.Date{}, false
	}
	return date.MustNew(year, m, day), true
}

// applyOffset moves d by n days, or to the |n|-th given weekday strictly after (n > 0) or before (n < 0) d
func applyOffset(d date.Date, n int, wd *date.Weekday) date.Date {
	if wd == nil {
		return d.AddDays(n)
	}
	step := 1
	if n < 0 {
		step, n = -1, -n
	}
	for n > 0 {
		d = d.AddDays(step)
		if d.Weekday() == wd.Std() {
			n--
		}
	}
	return d
}
