// Package names normalizes the free-form names used in character files so they
// can be matched against rule catalogs.
package names

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Key folds s into a lookup key: case-folded, trimmed, with runs of spaces,
// hyphens, underscores and apostrophes collapsed into a single underscore.
//
// Postcondition: Key(Key(s)) == Key(s).
func Key(s string) string {
	folded := cases.Fold().String(strings.TrimSpace(s))
	var b strings.Builder
	b.Grow(len(folded))
	sep := false
	for _, r := range folded {
		switch r {
		case ' ', '\t', '-', '_', '\'', '’':
			sep = true
			continue
		}
		if sep && b.Len() > 0 {
			b.WriteByte('_')
		}
		sep = false
		b.WriteRune(r)
	}
	return b.String()
}

// Title returns s in English title case with underscores shown as spaces.
// It is used for display of names that have no catalog entry.
func Title(s string) string {
	s = strings.ReplaceAll(strings.TrimSpace(s), "_", " ")
	return cases.Title(language.English).String(s)
}
