// Package raw reads environment variables during bootstrap.
// It must not import the logger: the logger configures itself through it.
package raw

import (
	"os"
	"strconv"
	"strings"
)

// Lookup resolves one variable; ok is false when unset
type Lookup func(key string) (string, bool)

// Conf is a namespaced view over the environment (e.g., "LOG_")
type Conf struct {
	prefix string
	lookup Lookup
}

// New returns a root Conf over the process environment
func New() Conf { return Conf{lookup: os.LookupEnv} }

// FromMap returns a root Conf over a fixed set of values
func FromMap(m map[string]string) Conf {
	return Conf{lookup: func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}}
}

// Prefix returns a child Conf with an additional prefix
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p, lookup: c.lookup} }

// Value returns the trimmed value of key under the prefix, "" when unset
func (c Conf) Value(key string) string {
	look := c.lookup
	if look == nil {
		look = os.LookupEnv
	}
	v, _ := look(c.prefix + key)
	return strings.TrimSpace(v)
}

// Get returns the value or def when empty
func (c Conf) Get(key, def string) string {
	if v := c.Value(key); v != "" {
		return v
	}
	return def
}

// GetBool accepts 1, true, yes and on as true
func (c Conf) GetBool(key string, def bool) bool {
	switch strings.ToLower(c.Value(key)) {
	case "":
		return def
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

// GetInt parses a non-negative integer; anything else yields def
func (c Conf) GetInt(key string, def int) int {
	n, err := strconv.Atoi(c.Value(key))
	if err != nil || n < 0 {
		return def
	}
	return n
}
