package holidays

import (
	"testing"
	"time"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/us"

	"holidays/internal/core/date"
)

// US federal holidays agree with an independent implementation
func TestUSFederalMatchesCal(t *testing.T) {
	e := sampleEngine(t)
	federal := []*cal.Holiday{
		us.NewYear,
		us.MlkDay,
		us.PresidentsDay,
		us.MemorialDay,
		us.Juneteenth,
		us.IndependenceDay,
		us.LaborDay,
		us.ColumbusDay,
		us.VeteransDay,
		us.ThanksgivingDay,
		us.ChristmasDay,
	}
	for y := 2022; y <= 2030; y++ {
		c := mustFor(t, e, Query{Entity: "US", From: y, View: ViewObserved})
		for _, h := range federal {
			_, obs := h.Calc(y)
			if obs.IsZero() || obs.Year() != y {
				// spilled into the previous year; covered by the padded queries
				continue
			}
			d := date.FromTime(obs)
			if !c.Has(d) {
				t.Fatalf("%d %s: want observed %s, have %v", y, h.Name, d, c.Dates())
			}
		}
	}
}

// working days agree with a business calendar built from the same federal list
func TestUSWorkdaysMatchCal(t *testing.T) {
	e := sampleEngine(t)
	bc := cal.NewBusinessCalendar()
	bc.AddHoliday(
		us.NewYear,
		us.MlkDay,
		us.PresidentsDay,
		us.MemorialDay,
		us.Juneteenth,
		us.IndependenceDay,
		us.LaborDay,
		us.ColumbusDay,
		us.VeteransDay,
		us.ThanksgivingDay,
		us.ChristmasDay,
	)
	for d := date.MustNew(2023, time.January, 1); d.Year == 2023; d = d.AddDays(1) {
		ours, err := e.IsWorkingDay("US", nil, d, nil)
		if err != nil {
			t.Fatalf("IsWorkingDay(%s): %v", d, err)
		}
		if want := bc.IsWorkday(d.Time()); ours != want {
			t.Fatalf("%s: working day = %v, business calendar says %v", d, ours, want)
		}
	}
}
