package rule

import (
	"fmt"
	"time"

	perr "holidays/internal/platform/errors"
)

// Validate checks the kind-specific shape of a rule. It runs once at catalogue load
// so an impossible day such as Feb 30 fails the load rather than a query.
// Calendar system and event names are checked by the catalogue against its registry.
func Validate(r Rule) error {
	if r.ID == "" {
		return perr.Validationf("rule without id")
	}
	if r.Name == "" {
		return fail(r, "name is required")
	}
	switch r.Kind {
	case Fixed, NthWeekday, Calendar:
		if r.Anchor != nil {
			return fail(r, "anchor is only valid on offset rules")
		}
		if err := validateBase(r.Base); err != nil {
			return perr.WithField(perr.Rewrap(err, perr.ErrorCodeValidation, "rule %s", r.ID), r.ID)
		}
		if r.Kind != Calendar && (r.Offset != 0 || r.OffsetWeekday != nil) {
			return fail(r, "offset is only valid on offset and calendar rules")
		}
	case Offset:
		if r.Anchor == nil {
			return fail(r, "offset rule needs an anchor")
		}
		if r.Anchor.Kind == Offset {
			return fail(r, "anchor cannot itself be an offset")
		}
		if err := validateBase(*r.Anchor); err != nil {
			return perr.WithField(perr.Rewrap(err, perr.ErrorCodeValidation, "rule %s anchor", r.ID), r.ID)
		}
	default:
		return fail(r, "unknown kind %q", r.Kind)
	}
	if r.OffsetWeekday != nil && r.Offset == 0 {
		return fail(r, "offset_weekday needs a non-zero offset")
	}
	if r.Days < 0 || r.Days > 31 {
		return fail(r, "days must be in 1..31")
	}
	if r.Since != 0 && r.Until != 0 && r.Since > r.Until {
		return fail(r, "since %d after until %d", r.Since, r.Until)
	}
	for _, s := range r.Excludes {
		for _, in := range r.Subdivisions {
			if s == in {
				return fail(r, "subdivision %s both included and excluded", s)
			}
		}
	}
	return nil
}

func validateBase(b Base) error {
	switch b.Kind {
	case Fixed:
		if b.Month < time.January || b.Month > time.December {
			return perr.Validationf("month %d out of range", b.Month)
		}
		// leap year 2000 so Feb 29 passes; the leap_day policy handles common years
		if b.Day < 1 || b.Day > daysInLeap(b.Month) {
			return perr.Validationf("impossible day %02d-%02d", int(b.Month), b.Day)
		}
		if b.Weekday != nil || b.Ordinal != 0 || b.Calendar != "" {
			return perr.Validationf("fixed takes month and day only")
		}
	case NthWeekday:
		if b.Month < time.January || b.Month > time.December {
			return perr.Validationf("month %d out of range", b.Month)
		}
		if b.Weekday == nil {
			return perr.Validationf("weekday is required")
		}
		if b.Ordinal == 0 || b.Ordinal < -5 || b.Ordinal > 5 {
			return perr.Validationf("ordinal %d not in 1..5 or -1..-5", b.Ordinal)
		}
		if b.Day != 0 || b.Calendar != "" {
			return perr.Validationf("nth_weekday takes month, weekday and ordinal only")
		}
	case Calendar:
		if b.Calendar == "" || b.Event == "" {
			return perr.Validationf("calendar and event are required")
		}
		if b.Month != 0 || b.Day != 0 || b.Weekday != nil {
			return perr.Validationf("calendar takes calendar and event only")
		}
	default:
		return perr.Validationf("unsupported kind %q", b.Kind)
	}
	if b.LeapDay != "" && b.LeapDay != LeapSkip && b.LeapDay != LeapClamp {
		return perr.Validationf("leap_day %q not skip or clamp", b.LeapDay)
	}
	return nil
}

func daysInLeap(m time.Month) int {
	switch m {
	case time.February:
		return 29
	case time.April, time.June, time.September, time.November:
		return 30
	}
	return 31
}

func fail(r Rule, format string, a ...any) error {
	return perr.WithField(perr.Validationf("rule %s: %s", r.ID, fmt.Sprintf(format, a...)), r.ID)
}
