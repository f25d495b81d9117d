// Package date is the civil Gregorian date used across the engine
// It carries no time of day and no location, so it is safe as a map key
package date

import (
	"encoding/json"
	"fmt"
	"time"

	perr "holidays/internal/platform/errors"
)

// Year bounds supported by the engine
const (
	MinYear = 1
	MaxYear = 9999
)

// Layout is the wire and text form of a Date
const Layout = "2006-01-02"

// Date is a proleptic Gregorian calendar day
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// IsZero reports the zero value
func (d Date) IsZero() bool { return d == Date{} }

// New builds a date, false when the day does not exist
func New(y int, m time.Month, d int) (Date, bool) {
	if m < time.January || m > time.December || d < 1 || d > DaysIn(y, m) {
		return Date{}, false
	}
	return Date{Year: y, Month: m, Day: d}, true
}

// MustNew is New for literals; it panics on an impossible day
func MustNew(y int, m time.Month, d int) Date {
	v, ok := New(y, m, d)
	if !ok {
		panic(fmt.Sprintf("date: impossible day %04d-%02d-%02d", y, int(m), d))
	}
	return v
}

// FromTime takes the calendar day of t in its own location
func FromTime(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Parse reads YYYY-MM-DD
func Parse(s string) (Date, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return Date{}, perr.InvalidArgf("date %q: want YYYY-MM-DD", s)
	}
	return FromTime(t), nil
}

// String renders YYYY-MM-DD
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Time is midnight UTC of d
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// Weekday of d
func (d Date) Weekday() time.Weekday { return d.Time().Weekday() }

// AddDays moves d by n days, crossing months and years as needed
func (d Date) AddDays(n int) Date { return FromTime(d.Time().AddDate(0, 0, n)) }

// Compare returns -1, 0 or +1
func (d Date) Compare(o Date) int {
	switch {
	case d.Year != o.Year:
		return cmp(d.Year, o.Year)
	case d.Month != o.Month:
		return cmp(int(d.Month), int(o.Month))
	default:
		return cmp(d.Day, o.Day)
	}
}

// Before reports d < o
func (d Date) Before(o Date) bool { return d.Compare(o) < 0 }

// After reports d > o
func (d Date) After(o Date) bool { return d.Compare(o) > 0 }

// DaysUntil counts days from d to o (negative when o is earlier)
func (d Date) DaysUntil(o Date) int {
	return int(o.Time().Sub(d.Time()).Hours() / 24)
}

func cmp(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// IsLeap reports a Gregorian leap year
func IsLeap(y int) bool { return y%4 == 0 && (y%100 != 0 || y%400 == 0) }

// DaysIn returns the number of days in month m of year y
func DaysIn(y int, m time.Month) int {
	switch m {
	case time.February:
		if IsLeap(y) {
			return 29
		}
		return 28
	case time.April, time.June, time.September, time.November:
		return 30
	default:
		return 31
	}
}

// ValidYear reports whether y is inside MinYear..MaxYear
func ValidYear(y int) bool { return y >= MinYear && y <= MaxYear }

// MarshalJSON renders "YYYY-MM-DD"
func (d Date) MarshalJSON() ([]byte, error) { return json.Marshal(d.String()) }

// UnmarshalJSON reads "YYYY-MM-DD"
func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return perr.JSONErrf("date: %v", err)
	}
	v, err := Parse(s)
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// MarshalText and UnmarshalText let Date act as a JSON map key
func (d Date) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// UnmarshalText reads "YYYY-MM-DD"
func (d *Date) UnmarshalText(b []byte) error {
	v, err := Parse(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}
