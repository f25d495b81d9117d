// Package strings provides string and slice helpers shared by transports
package strings

import std "strings"

// IfEmpty returns def if in is empty, otherwise returns in
func IfEmpty[T any](in []T, def []T) []T {
	if len(in) == 0 {
		return def
	}
	return in
}

// MustString returns s if it has non whitespace content otherwise panics
// name is used in the panic message so you can tell what was missing
func MustString(s string, name string) string {
	if std.TrimSpace(s) == "" {
		panic(name + " is required")
	}
	return s
}

// MustPrefix normalizes and asserts a root path like /holidays or /meta.
// Ensures a single leading slash and no trailing slash; panics on an empty input
func MustPrefix(s string) string {
	s = std.TrimSpace(s)
	s = "/" + std.Trim(s, " /")
	if s == "/" {
		panic("root path is required")
	}
	return s
}

// Codes flattens values that may each hold comma separated codes, trimming
// blanks and dropping repeats while keeping first-seen order
func Codes(values ...string) []string {
	var out []string
	seen := map[string]struct{}{}
	for _, v := range values {
		for _, p := range std.Split(v, ",") {
			p = std.TrimSpace(p)
			if p == "" {
				continue
			}
			if _, dup := seen[p]; dup {
				continue
			}
			seen[p] = struct{}{}
			out = append(out, p)
		}
	}
	return out
}

// Upper upper-cases every element in place and returns the slice
func Upper(in []string) []string {
	for i, s := range in {
		in[i] = std.ToUpper(s)
	}
	return in
}
