// Package holidays builds and caches per-year holiday collections and answers
// the public queries: holidays for a span, is-holiday and name-of a date.
package holidays

import (
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"holidays/internal/core/calendars"
	"holidays/internal/core/catalog"
	"holidays/internal/core/observed"
	"holidays/internal/core/rule"
	perr "holidays/internal/platform/errors"
	"holidays/internal/platform/logger"
)

// DefaultMaxSpan bounds the number of years one query may cover
const DefaultMaxSpan = 200

// Key identifies one cached collection
type Key struct {
	Entity       string
	Subdivisions string // sorted, comma-joined
	Category     string
	Year         int
}

// cell is populated once; waiters block on done
type cell struct {
	done chan struct{}
	coll *Collection
	err  error
}

// Stats are cache counters
type Stats struct {
	Cells       int   `json:"cells"`
	Populations int64 `json:"populations"`
	Hits        int64 `json:"hits"`
	Failures    int64 `json:"failures"`
}

// Engine resolves catalogue rules into cached collections. Safe for concurrent use.
type Engine struct {
	cat     *catalog.Catalog
	reg     *calendars.Registry
	log     *logger.Logger
	maxSpan int
	labels  Labels

	mu    sync.Mutex
	cells map[Key]*cell

	populations atomic.Int64
	hits        atomic.Int64
	failures    atomic.Int64
}

// New builds an engine over a loaded catalogue and calendar registry
func New(cat *catalog.Catalog, reg *calendars.Registry, opts ...Option) *Engine {
	e := &Engine{
		cat:     cat,
		reg:     reg,
		log:     logger.Named("holidays"),
		maxSpan: DefaultMaxSpan,
		labels:  DefaultLabels,
		cells:   make(map[Key]*cell),
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Catalog returns the catalogue the engine serves
func (e *Engine) Catalog() *catalog.Catalog { return e.cat }

// Labels returns the display formats in use
func (e *Engine) Labels() Labels { return e.labels }

// MaxSpan is the largest number of years one query may cover
func (e *Engine) MaxSpan() int { return e.maxSpan }

// Stats snapshots the cache counters
func (e *Engine) Stats() Stats {
	e.mu.Lock()
	n := len(e.cells)
	e.mu.Unlock()
	return Stats{
		Cells:       n,
		Populations: e.populations.Load(),
		Hits:        e.hits.Load(),
		Failures:    e.failures.Load(),
	}
}

// Year returns the cached collection for one entity, subdivision set, category
// and year, populating it on first use. subs must be normalised by the entity.
// The returned collection is shared and must not be modified.
func (e *Engine) Year(ent *catalog.Entity, subs []string, category string, year int) (*Collection, error) {
	k := Key{Entity: ent.Code, Subdivisions: joinSubs(subs), Category: category, Year: year}

	e.mu.Lock()
	if c, ok := e.cells[k]; ok {
		e.mu.Unlock()
		<-c.done
		e.hits.Add(1)
		return c.coll, c.err
	}
	c := &cell{done: make(chan struct{})}
	e.cells[k] = c
	e.mu.Unlock()

	c.coll, c.err = e.populate(ent, subs, category, year)
	if c.err != nil {
		e.failures.Add(1)
		e.mu.Lock()
		delete(e.cells, k)
		e.mu.Unlock()
		c.coll = nil
	}
	close(c.done)
	return c.coll, c.err
}

// populate resolves every selected rule for year, then shifts in rule order
func (e *Engine) populate(ent *catalog.Entity, subs []string, category string, year int) (*Collection, error) {
	start := time.Now()
	rules, err := ent.Select(subs, category)
	if err != nil {
		return nil, err
	}

	coll := NewCollection()
	resolved := make([][]rule.Occurrence, len(rules))
	occupied := observed.Occupied{}
	for i, r := range rules {
		occ, err := rule.Resolve(r, year, e.reg)
		if err != nil {
			return nil, perr.Rewrap(err, perr.ErrorCodeUnknown, "%s %s %d", ent.Code, category, year)
		}
		resolved[i] = occ
		for _, o := range occ {
			coll.Add(o.Date, Entry{Name: r.Name, Categories: []string{category}, Estimated: o.Estimated})
			occupied.Add(o.Date)
		}
	}

	weekend := ent.WeekendSet()
	for i, r := range rules {
		if len(resolved[i]) == 0 || !r.ShiftsIn(year) {
			continue
		}
		policy, ok := ent.PolicyFor(r)
		if !ok {
			continue
		}
		for _, o := range resolved[i] {
			obs, moved, err := observed.Shift(o.Date, policy, occupied, weekend)
			if err != nil {
				return nil, perr.Rewrap(err, perr.ErrorCodeShiftExhausted, "%s %s %s %d", ent.Code, r.ID, category, year)
			}
			if !moved {
				continue
			}
			occupied.Add(obs)
			coll.Add(obs, Entry{Name: r.Name, Categories: []string{category}, Observed: true, Estimated: o.Estimated})
			coll.markShifted(o.Date, r.Name)
		}
	}

	e.populations.Add(1)
	e.log.Debug().
		Str("entity", ent.Code).
		Str("subdivisions", joinSubs(subs)).
		Str("category", category).
		Int("year", year).
		Int("dates", coll.Len()).
		Dur("elapsed", time.Since(start)).
		Msg("populated year")
	return coll, nil
}

func joinSubs(subs []string) string { return strings.Join(subs, ",") }
