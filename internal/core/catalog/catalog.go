// Package catalog loads the embedded holiday catalogue: entities, their rules and
// the shared observed-date policies. Everything is validated once at load; a
// catalogue that loads is safe to resolve.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"

	"holidays/internal/core/calendars"
	"holidays/internal/core/date"
	"holidays/internal/core/names"
	"holidays/internal/core/observed"
	"holidays/internal/core/rule"
	perr "holidays/internal/platform/errors"
	"holidays/internal/platform/net/http/bind"
)

//go:embed catalog.json
var embedded []byte

// Subdivision is a state, province or constituent country of an entity
type Subdivision struct {
	Code string `json:"code" validate:"required"`
	Name string `json:"name" validate:"required"`
}

// Entity is a country-like jurisdiction with an ordered rule list
type Entity struct {
	Code          string         `json:"code" validate:"required,min=2,max=3,uppercase"`
	Name          string         `json:"name" validate:"required"`
	Aliases       []string       `json:"aliases,omitempty"`
	Weekend       []date.Weekday `json:"weekend" validate:"required,min=1,max=6"`
	Categories    []string       `json:"categories" validate:"required,min=1,dive,required"`
	DefaultPolicy string         `json:"default_policy,omitempty"`
	Subdivisions  []Subdivision  `json:"subdivisions,omitempty" validate:"dive"`
	Rules         []rule.Rule    `json:"rules" validate:"dive"`

	weekend  date.WeekdaySet
	policies map[string]observed.Policy
	subdivs  map[string]struct{}

	selMu    sync.Mutex
	selected map[string][]rule.Rule
}

// Catalog is the loaded, validated rule catalogue. Read-only after Parse.
type Catalog struct {
	Version    int               `json:"version" validate:"required,min=1"`
	Meta       map[string]any    `json:"meta,omitempty"`
	Categories []string          `json:"categories" validate:"required,min=1,dive,required"`
	Policies   []observed.Policy `json:"policies" validate:"dive"`
	Entities   []*Entity         `json:"entities" validate:"required,min=1,dive"`

	policies map[string]observed.Policy
	byKey    map[string]*Entity
}

var loadEmbedded = sync.OnceValues(func() (*Catalog, error) {
	return Parse(embedded, calendars.Default())
})

// Load returns the embedded catalogue, parsed on first use
func Load() (*Catalog, error) { return loadEmbedded() }

// Parse decodes and validates a catalogue. Calendar anchors are checked against reg.
func Parse(data []byte, reg *calendars.Registry) (*Catalog, error) {
	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeJSON, "catalog: decode")
	}
	if err := bind.Get().Validator.Struct(c); err != nil {
		field, msg := bind.ValidationFieldAndMessage(err)
		return nil, perr.WithField(perr.Validationf("catalog: %s", msg), field)
	}
	if err := c.index(reg); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) index(reg *calendars.Registry) error {
	cats := make(map[string]struct{}, len(c.Categories))
	for _, cat := range c.Categories {
		if _, dup := cats[cat]; dup {
			return perr.Validationf("catalog: duplicate category %q", cat)
		}
		cats[cat] = struct{}{}
	}

	c.policies = make(map[string]observed.Policy, len(c.Policies))
	for _, p := range c.Policies {
		if err := observed.Validate(p); err != nil {
			return perr.Rewrap(err, perr.ErrorCodeValidation, "catalog")
		}
		if p.Name == rule.PolicyNone {
			return perr.Validationf("catalog: policy name %q is reserved", p.Name)
		}
		if _, dup := c.policies[p.Name]; dup {
			return perr.Validationf("catalog: duplicate policy %q", p.Name)
		}
		c.policies[p.Name] = p
	}

	c.byKey = make(map[string]*Entity, len(c.Entities)*2)
	for _, e := range c.Entities {
		keys := append([]string{e.Code}, e.Aliases...)
		for _, k := range keys {
			fk := names.Fold(k)
			if other, dup := c.byKey[fk]; dup {
				return perr.Validationf("catalog: %s: code or alias %q already used by %s", e.Code, k, other.Code)
			}
			c.byKey[fk] = e
		}
		if err := e.index(c, cats, reg); err != nil {
			return err
		}
	}
	sort.SliceStable(c.Entities, func(i, j int) bool { return c.Entities[i].Code < c.Entities[j].Code })
	return nil
}

func (e *Entity) index(c *Catalog, cats map[string]struct{}, reg *calendars.Registry) error {
	fail := func(id, format string, a ...any) error {
		err := perr.Validationf("catalog: %s: %s", e.Code, fmt.Sprintf(format, a...))
		if id != "" {
			err = perr.WithField(err, id)
		}
		return err
	}

	for _, wd := range e.Weekend {
		e.weekend |= date.NewWeekdaySet(wd.Std())
	}
	for _, cat := range e.Categories {
		if _, ok := cats[cat]; !ok {
			return fail("", "unknown category %q", cat)
		}
	}
	if e.DefaultPolicy != "" && e.DefaultPolicy != rule.PolicyNone {
		if _, ok := c.policies[e.DefaultPolicy]; !ok {
			return fail("", "unknown default policy %q", e.DefaultPolicy)
		}
	}
	e.policies = c.policies

	e.subdivs = make(map[string]struct{}, len(e.Subdivisions))
	for _, s := range e.Subdivisions {
		if _, dup := e.subdivs[s.Code]; dup {
			return fail("", "duplicate subdivision %q", s.Code)
		}
		e.subdivs[s.Code] = struct{}{}
	}

	ids := make(map[string]struct{}, len(e.Rules))
	for _, r := range e.Rules {
		if _, dup := ids[r.ID]; dup {
			return fail(r.ID, "duplicate rule id %q", r.ID)
		}
		ids[r.ID] = struct{}{}
		if err := rule.Validate(r); err != nil {
			return perr.Rewrap(err, perr.ErrorCodeValidation, "catalog: %s", e.Code)
		}
		for _, cat := range r.CategoryList() {
			if !slices.Contains(e.Categories, cat) {
				return fail(r.ID, "rule %s: category %q not offered by entity", r.ID, cat)
			}
		}
		for _, s := range append(slices.Clone(r.Subdivisions), r.Excludes...) {
			if _, ok := e.subdivs[s]; !ok {
				return fail(r.ID, "rule %s: unknown subdivision %q", r.ID, s)
			}
		}
		if r.Observed != "" && r.Observed != rule.PolicyNone {
			if _, ok := c.policies[r.Observed]; !ok {
				return fail(r.ID, "rule %s: unknown policy %q", r.ID, r.Observed)
			}
		}
		for _, b := range []*rule.Base{&r.Base, r.Anchor} {
			if b == nil || b.Kind != rule.Calendar {
				continue
			}
			if reg == nil || !reg.Known(b.Calendar, b.Event) {
				return fail(r.ID, "rule %s: unknown calendar event %s/%s", r.ID, b.Calendar, b.Event)
			}
		}
	}
	e.selected = make(map[string][]rule.Rule)
	return nil
}

// Entity finds an entity by code or alias, ignoring case and accents
func (c *Catalog) Entity(codeOrAlias string) (*Entity, error) {
	if e, ok := c.byKey[names.Fold(codeOrAlias)]; ok {
		return e, nil
	}
	return nil, perr.Configf("unknown entity %q", codeOrAlias)
}

// List returns the entities ordered by code
func (c *Catalog) List() []*Entity { return slices.Clone(c.Entities) }

// Policy returns a named observed-date policy
func (c *Catalog) Policy(name string) (observed.Policy, bool) {
	p, ok := c.policies[name]
	return p, ok
}

// WeekendSet is the entity's weekend as a set
func (e *Entity) WeekendSet() date.WeekdaySet { return e.weekend }

// HasSubdivision reports whether code is one of the entity's subdivisions
func (e *Entity) HasSubdivision(code string) bool {
	_, ok := e.subdivs[code]
	return ok
}

// HasCategory reports whether the entity offers category
func (e *Entity) HasCategory(category string) bool { return slices.Contains(e.Categories, category) }

// DefaultCategory is the first listed category
func (e *Entity) DefaultCategory() string { return e.Categories[0] }

// NormalizeSubdivisions upper-cases, sorts and de-duplicates codes and checks each one exists
func (e *Entity) NormalizeSubdivisions(subdivisions []string) ([]string, error) {
	if len(subdivisions) == 0 {
		return nil, nil
	}
	out := make([]string, 0, len(subdivisions))
	for _, s := range subdivisions {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		if !e.HasSubdivision(s) {
			return nil, perr.Configf("%s: unknown subdivision %q", e.Code, s)
		}
		out = append(out, s)
	}
	sort.Strings(out)
	return slices.Compact(out), nil
}

// Select returns the rules in force for the subdivisions and category, in the
// entity's rule order. Unknown subdivisions or categories fail before any work.
// The result is memoised and shared; callers must not modify it.
func (e *Entity) Select(subdivisions []string, category string) ([]rule.Rule, error) {
	subs, err := e.NormalizeSubdivisions(subdivisions)
	if err != nil {
		return nil, err
	}
	if !e.HasCategory(category) {
		return nil, perr.Configf("%s: unknown category %q", e.Code, category)
	}
	key := strings.Join(subs, ",") + "|" + category

	e.selMu.Lock()
	defer e.selMu.Unlock()
	if rs, ok := e.selected[key]; ok {
		return rs, nil
	}
	var rs []rule.Rule
	for _, r := range e.Rules {
		if rule.InCategory(r, category) && rule.AppliesTo(r, subs) {
			rs = append(rs, r)
		}
	}
	e.selected[key] = rs
	return rs, nil
}

// PolicyFor returns the observed policy of a rule: its own override, else the
// entity default. False means the rule is never shifted.
func (e *Entity) PolicyFor(r rule.Rule) (observed.Policy, bool) {
	name := r.Observed
	if name == "" {
		name = e.DefaultPolicy
	}
	if name == "" || name == rule.PolicyNone {
		return observed.Policy{}, false
	}
	p, ok := e.policies[name]
	return p, ok
}
