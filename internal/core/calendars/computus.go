package calendars

import (
	"time"

	"holidays/internal/core/date"
)

// Christian events
const (
	Easter         Event = "easter"
	OrthodoxEaster Event = "orthodox_easter"
)

// Computus computes Easter algorithmically. Coverage starts with the first
// full Gregorian year and stops where the Julian offset formula stays exact.
type Computus struct{}

// System implements Source
func (Computus) System() System { return Christian }

// Coverage implements Source
func (Computus) Coverage() (int, int) { return 1583, 4099 }

// Events implements Source
func (Computus) Events() []Event { return []Event{Easter, OrthodoxEaster} }

// Lookup implements Source
func (c Computus) Lookup(ev Event, year int) (Anchor, bool) {
	first, last := c.Coverage()
	if year < first || year > last {
		return Anchor{}, false
	}
	switch ev {
	case Easter:
		return Anchor{Date: WesternEaster(year)}, true
	case OrthodoxEaster:
		return Anchor{Date: EasternEaster(year)}, true
	}
	return Anchor{}, false
}

// WesternEaster is Gregorian Easter Sunday (anonymous Gregorian algorithm)
func WesternEaster(year int) date.Date {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1
	return date.MustNew(year, time.Month(month), day)
}

// EasternEaster is Orthodox Easter Sunday expressed as a Gregorian date
func EasternEaster(year int) date.Date {
	a := year % 4
	b := year % 7
	c := year % 19
	d := (19*c + 15) % 30
	e := (2*a + 4*b - d + 34) % 7
	month := (d + e + 114) / 31
	day := (d+e+114)%31 + 1
	// Julian to Gregorian; exact for March..May of the covered years
	drift := year/100 - year/400 - 2
	return date.FromTime(time.Date(year, time.Month(month), day+drift, 0, 0, 0, 0, time.UTC))
}
