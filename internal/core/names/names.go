// Package names folds holiday names and entity aliases into a comparable key.
// Pipeline order
// 1 drop invalid UTF-8
// 2 NFKD so accented letters split into base plus mark
// 3 Unicode case folding
// 4 remove combining marks and format characters
// 5 width fold fullwidth to ASCII, recompose NFC
// 6 punctuation becomes space
// 7 collapse whitespace and trim
package names

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// transformer chains are stateful, so each caller borrows one
var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFKD,
			cases.Fold(),
			runes.Remove(runes.In(unicode.Mn)),
			runes.Remove(runes.In(unicode.Cf)),
			width.Fold,
			norm.NFC,
		)
	},
}

// Fold returns the search key of s: "Fête de la Fédération" and "fete de la federation" fold equal
func Fold(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToValidUTF8(s, "")

	tr := chainPool.Get().(transform.Transformer)
	ns, _, err := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)
	if err != nil {
		ns = strings.ToLower(s)
	}
	return collapse(ns)
}

// Contains reports whether the folded needle occurs in the folded haystack
func Contains(haystack, needle string) bool {
	n := Fold(needle)
	if n == "" {
		return false
	}
	return strings.Contains(Fold(haystack), n)
}

// Equal compares two strings by their folded keys
func Equal(a, b string) bool { return Fold(a) == Fold(b) }

// collapse turns punctuation and whitespace runs into one space and trims the ends.
// Apostrophes are dropped so "Ha'atzmaut" and "Haatzmaut" match.
func collapse(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	gap := false
	for _, r := range s {
		switch {
		case r == '\'' || r == '’':
			continue
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if gap && b.Len() > 0 {
				b.WriteByte(' ')
			}
			gap = false
			b.WriteRune(r)
		default:
			gap = true
		}
	}
	return b.String()
}
