// Package config reads service settings from environment variables
package config

import (
	"strconv"
	"strings"
	"time"

	"holidays/internal/platform/config/raw"
	"holidays/internal/platform/logger"
)

// Conf is a namespaced view over environment variables (e.g., "API_", "HOLIDAYS_").
// Use New() for global access and Prefix for module scopes.
type Conf struct{ src raw.Conf }

// New creates a root Conf over the process environment
func New() Conf { return Conf{src: raw.New()} }

// FromMap creates a root Conf over fixed values; tests and tools use it
func FromMap(m map[string]string) Conf { return Conf{src: raw.FromMap(m)} }

// Prefix creates a child Conf with an additional prefix
func (c Conf) Prefix(p string) Conf { return Conf{src: c.src.Prefix(p)} }

func (c Conf) value(key string) string { return c.src.Value(key) }

// MustString panics if key is missing or empty
func (c Conf) MustString(key string) string {
	v := c.value(key)
	if v == "" {
		logger.Get().Panic().Str("key", key).Msg("missing required env")
	}
	return v
}

// MustInt panics if key is missing or not an int
func (c Conf) MustInt(key string) int {
	s := c.MustString(key)
	v, err := strconv.Atoi(s)
	if err != nil {
		logger.Get().Panic().Str("key", key).Str("value", s).Msg("invalid int value")
	}
	return v
}

// MustPort returns an addr like ":4000" after checking 1..65535
func (c Conf) MustPort(key string) string {
	s := c.MustString(key)
	if p, err := strconv.Atoi(s); err != nil || p < 1 || p > 65535 {
		logger.Get().Panic().Str("key", key).Str("value", s).Msg("invalid TCP port; expected 1..65535")
	}
	return ":" + s
}

// MayString returns the value or def if missing
func (c Conf) MayString(key, def string) string {
	if v := c.value(key); v != "" {
		return v
	}
	return def
}

// MayInt returns the value or def; an unparsable value logs and yields def
func (c Conf) MayInt(key string, def int) int {
	s := c.value(key)
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	logger.Get().Warn().Str("key", key).Str("value", s).Int("default", def).Msg("invalid int; using default")
	return def
}

// MayBool returns the value or def; an unparsable value logs and yields def
func (c Conf) MayBool(key string, def bool) bool {
	s := c.value(key)
	if s == "" {
		return def
	}
	if v, err := strconv.ParseBool(s); err == nil {
		return v
	}
	logger.Get().Warn().Str("key", key).Str("value", s).Bool("default", def).Msg("invalid bool; using default")
	return def
}

// MayDuration returns the value or def; an unparsable value logs and yields def
func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	s := c.value(key)
	if s == "" {
		return def
	}
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	logger.Get().Warn().Str("key", key).Str("value", s).Dur("default", def).Msg("invalid duration; using default")
	return def
}

// MayCSV splits a comma-separated value, dropping blanks; def if nothing remains
func (c Conf) MayCSV(key string, def []string) []string {
	var out []string
	for _, p := range strings.Split(c.value(key), ",") {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

// MayEnum returns the value if it is one of allowed (case-insensitive), def if empty; panics otherwise
func (c Conf) MayEnum(key, def string, allowed ...string) string {
	v := c.MayString(key, def)
	if v == "" {
		return v
	}
	for _, a := range allowed {
		if strings.EqualFold(v, a) {
			return strings.ToLower(v)
		}
	}
	logger.Get().Panic().Str("key", key).Str("value", v).Strs("allowed", allowed).Msg("invalid enum value")
	return ""
}
