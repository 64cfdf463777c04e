package textutil

import (
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Normalize strips every non-alphanumeric character and lowercases the rest.
// Comparison of production names and cell values always happens on this form.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		}
	}
	return b.String()
}

// SharedPrefixLen returns the length of the common leading run of two
// already-normalized strings.
func SharedPrefixLen(a, b string) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}

// Stem returns the filename without its directory or extension.
func Stem(name string) string {
	base := filepath.Base(name)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// DisplayTitle derives a human-readable title from a filename or token:
// delimiters collapse to spaces and words are title-cased. Used only for
// status output, never for matching.
func DisplayTitle(name string) string {
	stem := Stem(name)
	var cleaned strings.Builder
	prevSpace := false
	for _, r := range stem {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			cleaned.WriteRune(r)
			prevSpace = false
		case unicode.IsSpace(r) || r == '-' || r == '_' || r == '.':
			if !prevSpace {
				cleaned.WriteRune(' ')
				prevSpace = true
			}
		}
	}
	title := strings.TrimSpace(cleaned.String())
	if title == "" {
		return "Untitled"
	}
	return cases.Title(language.Und).String(title)
}
