// Package rule holds the declarative holiday rule and resolves it to dates for a year
package rule

import (
	"slices"
	"time"

	"holidays/internal/core/calendars"
	"holidays/internal/core/date"
)

// Kind selects how a rule computes its date
type Kind string

// Rule kinds
const (
	Fixed      Kind = "fixed"
	NthWeekday Kind = "nth_weekday"
	Offset     Kind = "offset"
	Calendar   Kind = "calendar"
)

// LeapDay decides what a Feb 29 fixed rule does in a common year
type LeapDay string

// Leap day policies
const (
	LeapSkip  LeapDay = "skip"
	LeapClamp LeapDay = "clamp"
)

// PolicyNone disables observed shifting for a rule
const PolicyNone = "none"

// DefaultCategory applies when a rule lists no categories
const DefaultCategory = "public"

// Base is the date-producing part of a rule; an offset rule carries one as its anchor
type Base struct {
	Kind     Kind             `json:"kind" validate:"required,oneof=fixed nth_weekday offset calendar"`
	Month    time.Month       `json:"month,omitempty" validate:"omitempty,min=1,max=12"`
	Day      int              `json:"day,omitempty" validate:"omitempty,min=1,max=31"`
	Weekday  *date.Weekday    `json:"weekday,omitempty"`
	Ordinal  int              `json:"ordinal,omitempty" validate:"omitempty,min=-5,max=5"`
	Calendar calendars.System `json:"calendar,omitempty"`
	Event    calendars.Event  `json:"event,omitempty"`
	LeapDay  LeapDay          `json:"leap_day,omitempty" validate:"omitempty,oneof=skip clamp"`
}

// Rule is one holiday definition of an entity. Rules are data; the engine never mutates them.
type Rule struct {
	ID   string `json:"id" validate:"required"`
	Name string `json:"name" validate:"required"`
	Base

	Anchor        *Base         `json:"anchor,omitempty"`
	Offset        int           `json:"offset,omitempty"`
	OffsetWeekday *date.Weekday `json:"offset_weekday,omitempty"`
	Days          int           `json:"days,omitempty" validate:"omitempty,min=1,max=31"`

	Categories   []string `json:"categories,omitempty"`
	Subdivisions []string `json:"subdivisions,omitempty"`
	Excludes     []string `json:"excludes,omitempty"`

	Since int `json:"since,omitempty" validate:"omitempty,min=1,max=9999"`
	Until int `json:"until,omitempty" validate:"omitempty,min=1,max=9999"`

	Observed      string `json:"observed,omitempty"`
	ObservedSince int    `json:"observed_since,omitempty" validate:"omitempty,min=1,max=9999"`
}

// Occurrence is one resolved day of a rule
type Occurrence struct {
	Date      date.Date
	Estimated bool
}

// ActiveIn reports whether the rule exists in year
func (r Rule) ActiveIn(year int) bool {
	if r.Since != 0 && year < r.Since {
		return false
	}
	if r.Until != 0 && year > r.Until {
		return false
	}
	return true
}

// ShiftsIn reports whether observed shifting applies in year
func (r Rule) ShiftsIn(year int) bool {
	if r.Observed == PolicyNone {
		return false
	}
	return r.ObservedSince == 0 || year >= r.ObservedSince
}

// CategoryList returns the rule's categories with the default filled in
func (r Rule) CategoryList() []string {
	if len(r.Categories) == 0 {
		return []string{DefaultCategory}
	}
	return r.Categories
}

// InCategory reports whether the rule belongs to category
func InCategory(r Rule, category string) bool {
	return slices.Contains(r.CategoryList(), category)
}

// AppliesTo reports whether the rule is in force for the requested subdivisions.
// With none requested only entity-wide rules apply. Otherwise the result is the
// union over subdivisions: a rule applies when it is entity-wide or lists the
// subdivision, and does not exclude it.
func AppliesTo(r Rule, subdivisions []string) bool {
	if len(subdivisions) == 0 {
		return len(r.Subdivisions) == 0
	}
	for _, s := range subdivisions {
		if slices.Contains(r.Excludes, s) {
			continue
		}
		if len(r.Subdivisions) == 0 || slices.Contains(r.Subdivisions, s) {
			return true
		}
	}
	return false
}
