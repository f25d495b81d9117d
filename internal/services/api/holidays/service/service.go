// Package service answers holiday questions from the engine for the HTTP layer
package service

import (
	"context"
	"time"

	"holidays/internal/core/date"
	"holidays/internal/core/holidays"
	perr "holidays/internal/platform/errors"
	"holidays/internal/platform/logger"
	pstrings "holidays/internal/platform/strings"
	"holidays/internal/services/api/holidays/domain"
)

// Service is the public service port
type Service interface {
	domain.ServicePort
	domain.CatalogPort
}

// Svc implements the service port over one engine
type Svc struct {
	engine *holidays.Engine
	now    func() time.Time
}

// New constructs the service
func New(engine *holidays.Engine) *Svc {
	if engine == nil {
		panic("holidays.Service requires a non nil Engine")
	}
	return &Svc{engine: engine, now: time.Now}
}

// EntityCount is the number of catalogue entities
func (s *Svc) EntityCount() int { return len(s.engine.Catalog().Entities) }

// CacheStats reports the engine cache counters
func (s *Svc) CacheStats() holidays.Stats { return s.engine.Stats() }

// Entities lists the catalogue in code order
func (s *Svc) Entities(ctx context.Context) ([]domain.EntityRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, perr.Unavailablef("request cancelled")
	}
	list := s.engine.Catalog().List()
	out := make([]domain.EntityRow, 0, len(list))
	for _, ent := range list {
		row := domain.EntityRow{
			Code:       ent.Code,
			Name:       ent.Name,
			Aliases:    ent.Aliases,
			Categories: ent.Categories,
		}
		for _, wd := range ent.Weekend {
			b, _ := wd.MarshalText()
			row.Weekend = append(row.Weekend, string(b))
		}
		for _, sd := range ent.Subdivisions {
			row.Subdivisions = append(row.Subdivisions, domain.SubdivisionRow{Code: sd.Code, Name: sd.Name})
		}
		out = append(out, row)
	}
	return out, nil
}

// Query returns the holidays of a year span
func (s *Svc) Query(ctx context.Context, in domain.QueryInput) (domain.HolidaysOutput, error) {
	if err := ctx.Err(); err != nil {
		return domain.HolidaysOutput{}, perr.Unavailablef("request cancelled")
	}
	to := in.To
	if to == 0 {
		to = in.From
	}
	q := holidays.Query{
		Entity:       in.Entity,
		Subdivisions: subdivisions(in.Filters),
		Categories:   pstrings.Codes(in.Categories...),
		From:         in.From,
		To:           to,
		View:         holidays.View(in.View),
	}
	start := time.Now()
	c, err := s.engine.HolidaysFor(q)
	if err != nil {
		return domain.HolidaysOutput{}, err
	}
	logger.C(ctx).Debug().Int("from", q.From).Int("to", q.To).Int("days", c.Len()).Dur("elapsed", time.Since(start)).Msg("holidays query")
	return s.output(in.Entity, date.MustNew(in.From, time.January, 1), date.MustNew(to, time.December, 31), in.View, c), nil
}

// Year is Query for one year with filters from the query string
func (s *Svc) Year(ctx context.Context, entity string, year int, in domain.YearQuery) (domain.HolidaysOutput, error) {
	return s.Query(ctx, domain.QueryInput{Entity: entity, Filters: in.Filters, From: year, View: in.View})
}

// OnDate reports whether day is a holiday, its names and whether it is a working day
func (s *Svc) OnDate(ctx context.Context, entity, day string, in domain.DateQuery) (domain.DateOutput, error) {
	if err := ctx.Err(); err != nil {
		return domain.DateOutput{}, perr.Unavailablef("request cancelled")
	}
	d, err := date.Parse(day)
	if err != nil {
		return domain.DateOutput{}, perr.WithField(err, "date")
	}
	subs, cats := subdivisions(in.Filters), pstrings.Codes(in.Categories...)
	names, ok, err := s.engine.NameOf(entity, subs, d, cats)
	if err != nil {
		return domain.DateOutput{}, err
	}
	working, err := s.engine.IsWorkingDay(entity, subs, d, cats)
	if err != nil {
		return domain.DateOutput{}, err
	}
	if names == nil {
		names = []string{}
	}
	return domain.DateOutput{Date: d, Holiday: ok, Names: names, WorkingDay: working}, nil
}

// Between returns the holidays dated from..to inclusive
func (s *Svc) Between(ctx context.Context, entity string, in domain.BetweenQuery) (domain.HolidaysOutput, error) {
	if err := ctx.Err(); err != nil {
		return domain.HolidaysOutput{}, perr.Unavailablef("request cancelled")
	}
	from, err := date.Parse(in.From)
	if err != nil {
		return domain.HolidaysOutput{}, perr.WithField(err, "from")
	}
	to, err := date.Parse(in.To)
	if err != nil {
		return domain.HolidaysOutput{}, perr.WithField(err, "to")
	}
	c, err := s.engine.Between(entity, subdivisions(in.Filters), pstrings.Codes(in.Categories...), from, to, holidays.View(in.View))
	if err != nil {
		return domain.HolidaysOutput{}, err
	}
	return s.output(entity, from, to, in.View, c), nil
}

// Next returns the first recognised holiday on or after in.From, today when empty
func (s *Svc) Next(ctx context.Context, entity string, in domain.NextQuery) (domain.NextOutput, error) {
	if err := ctx.Err(); err != nil {
		return domain.NextOutput{}, perr.Unavailablef("request cancelled")
	}
	from := date.FromTime(s.now().UTC())
	if in.From != "" {
		d, err := date.Parse(in.From)
		if err != nil {
			return domain.NextOutput{}, perr.WithField(err, "from")
		}
		from = d
	}
	day, found, err := s.engine.Next(entity, subdivisions(in.Filters), pstrings.Codes(in.Categories...), from)
	if err != nil {
		return domain.NextOutput{}, err
	}
	out := domain.NextOutput{From: from, Found: found}
	if found {
		row := s.row(day.Date, day.Entries)
		out.Day = &row
	}
	return out, nil
}

// Search returns the holidays of the span whose name contains in.Name
func (s *Svc) Search(ctx context.Context, in domain.SearchInput) (domain.HolidaysOutput, error) {
	if err := ctx.Err(); err != nil {
		return domain.HolidaysOutput{}, perr.Unavailablef("request cancelled")
	}
	to := in.To
	if to == 0 {
		to = in.From
	}
	c, err := s.engine.Named(holidays.Query{
		Entity:       in.Entity,
		Subdivisions: subdivisions(in.Filters),
		Categories:   pstrings.Codes(in.Categories...),
		From:         in.From,
		To:           to,
		View:         holidays.View(in.View),
	}, in.Name)
	if err != nil {
		return domain.HolidaysOutput{}, err
	}
	return s.output(in.Entity, date.MustNew(in.From, time.January, 1), date.MustNew(to, time.December, 31), in.View, c), nil
}

func (s *Svc) output(entity string, from, to date.Date, view string, c *holidays.Collection) domain.HolidaysOutput {
	if view == "" {
		view = string(holidays.ViewAll)
	}
	days := c.Sorted()
	out := domain.HolidaysOutput{
		Entity: entity,
		From:   from.String(),
		To:     to.String(),
		View:   view,
		Count:  len(days),
		Days:   make([]domain.DayRow, 0, len(days)),
	}
	for _, d := range days {
		out.Days = append(out.Days, s.row(d.Date, d.Entries))
	}
	return out
}

func (s *Svc) row(d date.Date, entries []holidays.Entry) domain.DayRow {
	labels := s.engine.Labels()
	row := domain.DayRow{Date: d, Entries: entries}
	for _, e := range entries {
		row.Names = append(row.Names, e.Label(labels))
	}
	return row
}

// subdivisions flattens CSV values; codes are matched case-insensitively
func subdivisions(f domain.Filters) []string {
	return pstrings.Upper(pstrings.Codes(f.Subdivisions...))
}
