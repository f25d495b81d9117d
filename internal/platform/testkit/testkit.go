// Package testkit holds small assertions shared by package tests
package testkit

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	perr "holidays/internal/platform/errors"
)

// MustPanic asserts that fn panics
func MustPanic(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic, got none")
		}
	}()
	fn()
}

// MustContain asserts that haystack contains needle. On failure the haystack
// is written to a temp file so long outputs stay readable.
func MustContain(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		dump := filepath.Join(t.TempDir(), "output.txt")
		_ = os.WriteFile(dump, []byte(haystack), 0o600)
		t.Fatalf("expected output to contain %q\n\nfull output written to %s", needle, dump)
	}
}

// MustCode asserts that err carries code
func MustCode(t *testing.T, err error, code perr.ErrorCode) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", code)
	}
	if got := perr.CodeOf(err); got != code {
		t.Fatalf("expected %s error, got %s: %v", code, got, err)
	}
}

// Swap replaces a package-level variable for the duration of the test
func Swap[T any](t *testing.T, target *T, replacement T) {
	t.Helper()
	orig := *target
	*target = replacement
	t.Cleanup(func() { *target = orig })
}
