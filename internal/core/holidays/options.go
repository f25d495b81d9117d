package holidays

import (
	"strings"
	"time"

	"holidays/internal/core/calendars"
	"holidays/internal/core/catalog"
	"holidays/internal/platform/config"
	perr "holidays/internal/platform/errors"
	"holidays/internal/platform/logger"
)

// Option configures an Engine
type Option func(*Engine)

// WithLogger sets the engine logger
func WithLogger(l *logger.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithMaxSpan caps the number of years one query may cover
func WithMaxSpan(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxSpan = n
		}
	}
}

// WithLabels sets the observed and estimated name formats; each must hold one %s
func WithLabels(l Labels) Option {
	return func(e *Engine) {
		if strings.Count(l.Observed, "%s") == 1 {
			e.labels.Observed = l.Observed
		}
		if strings.Count(l.Estimated, "%s") == 1 {
			e.labels.Estimated = l.Estimated
		}
	}
}

// WithConfig reads HOLIDAYS_MAX_SPAN, HOLIDAYS_OBSERVED_LABEL and HOLIDAYS_ESTIMATED_LABEL
func WithConfig(conf config.Conf) Option {
	c := conf.Prefix("HOLIDAYS_")
	return func(e *Engine) {
		WithMaxSpan(c.MayInt("MAX_SPAN", DefaultMaxSpan))(e)
		WithLabels(Labels{
			Observed:  c.MayString("OBSERVED_LABEL", DefaultLabels.Observed),
			Estimated: c.MayString("ESTIMATED_LABEL", DefaultLabels.Estimated),
		})(e)
	}
}

// Preload is the cache warm-up plan read from HOLIDAYS_PRELOAD*
type Preload struct {
	Entities []string
	From, To int
}

// PreloadFromConfig reads HOLIDAYS_PRELOAD (CSV of entity codes) and the year span,
// which defaults to the current year and the next
func PreloadFromConfig(conf config.Conf) Preload {
	c := conf.Prefix("HOLIDAYS_")
	now := time.Now().Year()
	return Preload{
		Entities: c.MayCSV("PRELOAD", nil),
		From:     c.MayInt("PRELOAD_FROM", now),
		To:       c.MayInt("PRELOAD_TO", now+1),
	}
}

// FromConfig loads the embedded catalogue and calendars, builds an engine from
// HOLIDAYS_* settings and warms the cache when a preload list is set
func FromConfig(conf config.Conf, opts ...Option) (*Engine, error) {
	cat, err := catalog.Load()
	if err != nil {
		return nil, perr.Rewrap(err, perr.ErrorCodeValidation, "holidays: load catalogue")
	}
	e := New(cat, calendars.Default(), append([]Option{WithConfig(conf)}, opts...)...)
	e.log.Info().
		Int("entities", len(cat.Entities)).
		Int("max_span", e.maxSpan).
		Msg("holiday catalogue loaded")

	if p := PreloadFromConfig(conf); len(p.Entities) > 0 {
		if err := e.Warm(p.Entities, p.From, p.To); err != nil {
			return nil, err
		}
	}
	return e, nil
}
