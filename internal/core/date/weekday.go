package date

import (
	"strings"
	"time"

	perr "holidays/internal/platform/errors"
)

// Weekday is time.Weekday spelled by name in JSON ("monday", "sat", ...)
type Weekday time.Weekday

var weekdayNames = map[string]time.Weekday{
	"sunday": time.Sunday, "sun": time.Sunday,
	"monday": time.Monday, "mon": time.Monday,
	"tuesday": time.Tuesday, "tue": time.Tuesday,
	"wednesday": time.Wednesday, "wed": time.Wednesday,
	"thursday": time.Thursday, "thu": time.Thursday,
	"friday": time.Friday, "fri": time.Friday,
	"saturday": time.Saturday, "sat": time.Saturday,
}

// ParseWeekday reads a full or three-letter English weekday name
func ParseWeekday(s string) (time.Weekday, error) {
	wd, ok := weekdayNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, perr.InvalidArgf("unknown weekday %q", s)
	}
	return wd, nil
}

// Std returns the time.Weekday
func (w Weekday) Std() time.Weekday { return time.Weekday(w) }

// MarshalText renders the lower-case full name
func (w Weekday) MarshalText() ([]byte, error) {
	return []byte(strings.ToLower(time.Weekday(w).String())), nil
}

// UnmarshalText reads a weekday name
func (w *Weekday) UnmarshalText(b []byte) error {
	wd, err := ParseWeekday(string(b))
	if err != nil {
		return err
	}
	*w = Weekday(wd)
	return nil
}

// WeekdaySet is a small set of weekdays, used for weekends
type WeekdaySet uint8

// NewWeekdaySet builds a set from weekdays
func NewWeekdaySet(days ...time.Weekday) WeekdaySet {
	var s WeekdaySet
	for _, d := range days {
		s |= 1 << uint(d)
	}
	return s
}

// Has reports membership
func (s WeekdaySet) Has(d time.Weekday) bool { return s&(1<<uint(d)) != 0 }

// Days lists members Sunday first
func (s WeekdaySet) Days() []time.Weekday {
	var out []time.Weekday
	for d := time.Sunday; d <= time.Saturday; d++ {
		if s.Has(d) {
			out = append(out, d)
		}
	}
	return out
}
