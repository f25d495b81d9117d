// Package observed moves a holiday from its actual date to the day it is recognised.
// A policy maps weekdays to a shift and says how to step around days already taken.
package observed

import (
	"maps"
	"time"

	"holidays/internal/core/date"
	perr "holidays/internal/platform/errors"
)

// Direction is the way a collision is stepped around
type Direction string

// Collision directions
const (
	CollisionNone     Direction = "none"
	CollisionForward  Direction = "forward"
	CollisionBackward Direction = "backward"
)

// DefaultMaxShift bounds how far a holiday may travel when a policy leaves it unset
const DefaultMaxShift = 7

// WeekdayRule shifts a holiday that falls on Weekday by Shift days
type WeekdayRule struct {
	Weekday date.Weekday `json:"weekday"`
	Shift   int          `json:"shift" validate:"required,min=-7,max=7"`
}

// Policy is an entity's observed-date policy
type Policy struct {
	Name        string        `json:"name" validate:"required"`
	Rules       []WeekdayRule `json:"rules" validate:"dive"`
	Collision   Direction     `json:"collision,omitempty" validate:"omitempty,oneof=none forward backward"`
	SkipWeekend bool          `json:"skip_weekend,omitempty"`
	MaxShift    int           `json:"max_shift,omitempty" validate:"omitempty,min=1,max=28"`
}

// Occupied is the set of days already taken by holidays
type Occupied map[date.Date]struct{}

// Add marks d as taken
func (o Occupied) Add(d date.Date) { o[d] = struct{}{} }

// Has reports whether d is taken
func (o Occupied) Has(d date.Date) bool {
	_, ok := o[d]
	return ok
}

// Clone copies the set
func (o Occupied) Clone() Occupied { return maps.Clone(o) }

func (p Policy) maxShift() int {
	if p.MaxShift <= 0 {
		return DefaultMaxShift
	}
	return p.MaxShift
}

func (p Policy) rule(wd time.Weekday) (WeekdayRule, bool) {
	for _, r := range p.Rules {
		if r.Weekday.Std() == wd {
			return r, true
		}
	}
	return WeekdayRule{}, false
}

// Shift returns the observed date of a holiday on actual and whether it moved.
// The result depends only on the arguments, so callers get the same answer for
// the same rule order.
func Shift(actual date.Date, p Policy, occupied Occupied, weekend date.WeekdaySet) (date.Date, bool, error) {
	r, ok := p.rule(actual.Weekday())
	if !ok {
		return actual, false, nil
	}
	cand := actual.AddDays(r.Shift)
	if p.Collision == "" || p.Collision == CollisionNone {
		return cand, cand != actual, nil
	}

	step := 1
	if p.Collision == CollisionBackward {
		step = -1
	}
	limit := p.maxShift()
	for occupied.Has(cand) || (p.SkipWeekend && weekend.Has(cand.Weekday())) {
		cand = cand.AddDays(step)
		if dist := actual.DaysUntil(cand); dist > limit || dist < -limit {
			return date.Date{}, false, perr.ShiftExhaustedf(
				"observed: %s from %s: no free day within %d days", p.Name, actual, limit)
		}
	}
	return cand, cand != actual, nil
}

// Validate checks a policy at catalogue load
func Validate(p Policy) error {
	if p.Name == "" {
		return perr.Validationf("observed policy without name")
	}
	switch p.Collision {
	case "", CollisionNone, CollisionForward, CollisionBackward:
	default:
		return perr.WithField(perr.Validationf("policy %s: unknown collision %q", p.Name, p.Collision), p.Name)
	}
	if p.MaxShift < 0 || p.MaxShift > 28 {
		return perr.WithField(perr.Validationf("policy %s: max_shift %d not in 1..28", p.Name, p.MaxShift), p.Name)
	}
	seen := make(map[time.Weekday]bool, len(p.Rules))
	for _, r := range p.Rules {
		wd := r.Weekday.Std()
		if seen[wd] {
			return perr.WithField(perr.Validationf("policy %s: %s listed twice", p.Name, wd), p.Name)
		}
		seen[wd] = true
		if r.Shift == 0 {
			return perr.WithField(perr.Validationf("policy %s: %s shift is zero", p.Name, wd), p.Name)
		}
		if r.Shift > p.maxShift() || -r.Shift > p.maxShift() {
			return perr.WithField(perr.Validationf("policy %s: %s shift %d beyond max_shift", p.Name, wd, r.Shift), p.Name)
		}
	}
	return nil
}
