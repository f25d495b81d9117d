// Package calendars converts anchors in non-Gregorian calendars into civil dates.
// Lunisolar systems are backed by embedded lookup tables; Easter is computed.
// Nothing outside a source's coverage is extrapolated.
package calendars

import (
	"sort"
	"sync"

	"holidays/internal/core/date"
	perr "holidays/internal/platform/errors"
)

// System identifies a calendar system
type System string

// Event identifies an anchor event inside a system
type Event string

// Known systems
const (
	Hebrew    System = "hebrew"
	Christian System = "christian"
)

// Anchor is a resolved calendar event
type Anchor struct {
	Date      date.Date
	Estimated bool
}

// Source answers lookups for one calendar system
type Source interface {
	System() System
	Coverage() (first, last int)
	Events() []Event
	Lookup(ev Event, year int) (Anchor, bool)
}

// Registry dispatches lookups by system. It is read-only once built.
type Registry struct {
	sources map[System]Source
}

// NewRegistry builds a registry over sources; a later source replaces an earlier one of the same system
func NewRegistry(sources ...Source) *Registry {
	r := &Registry{sources: make(map[System]Source, len(sources))}
	for _, s := range sources {
		if s != nil {
			r.sources[s.System()] = s
		}
	}
	return r
}

// Systems lists registered systems, sorted
func (r *Registry) Systems() []System {
	out := make([]System, 0, len(r.sources))
	for s := range r.sources {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Source returns the source for sys
func (r *Registry) Source(sys System) (Source, bool) {
	s, ok := r.sources[sys]
	return s, ok
}

// Known reports whether sys/ev is a registered pair
func (r *Registry) Known(sys System, ev Event) bool {
	s, ok := r.sources[sys]
	if !ok {
		return false
	}
	for _, e := range s.Events() {
		if e == ev {
			return true
		}
	}
	return false
}

// Resolve maps (system, event, year) to a civil date.
// Unknown system or event is a config error; a year outside coverage is a range error.
func (r *Registry) Resolve(sys System, ev Event, year int) (Anchor, error) {
	s, ok := r.sources[sys]
	if !ok {
		return Anchor{}, perr.Configf("calendars: unknown system %q", sys)
	}
	if !r.Known(sys, ev) {
		return Anchor{}, perr.Configf("calendars: unknown event %q in %s", ev, sys)
	}
	first, last := s.Coverage()
	if year < first || year > last {
		return Anchor{}, perr.Rangef("calendars: %s %s: year %d outside %d..%d", sys, ev, year, first, last)
	}
	a, ok := s.Lookup(ev, year)
	if !ok {
		return Anchor{}, perr.Rangef("calendars: %s %s: no entry for %d", sys, ev, year)
	}
	return a, nil
}

var (
	defaultOnce sync.Once
	defaultReg  *Registry
	defaultErr  error
)

// Default returns the process-wide registry of embedded tables plus computus.
// It is built on first use; a broken embedded table panics since the binary is unusable.
func Default() *Registry {
	defaultOnce.Do(func() {
		heb, err := ParseTable(hebrewJSON)
		if err != nil {
			defaultErr = err
			return
		}
		defaultReg = NewRegistry(heb, Computus{})
	})
	if defaultErr != nil {
		panic(defaultErr)
	}
	return defaultReg
}
