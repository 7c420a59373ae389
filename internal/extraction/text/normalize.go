// Package text provides the pure text-normalization primitives used by every
// extractor: whitespace collapsing, boundary trimming, and diacritic removal.
// All functions are idempotent and safe on empty input.
package text

import (
	"regexp"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	anySpaceRe   = regexp.MustCompile(`\s`)
	multiSpaceRe = regexp.MustCompile(` +`)
	extraCharRe  = regexp.MustCompile(`^[,. ]+|[,. ]+$`)
	commaSpaceRe = regexp.MustCompile(`^[, ]+|[, ]+$`)
	edgeSpaceRe  = regexp.MustCompile(`^ +| +$`)
)

// Collapse converts every whitespace character to a plain space and squeezes
// runs of spaces down to one.
func Collapse(s string) string {
	if s == "" {
		return s
	}
	return multiSpaceRe.ReplaceAllString(anySpaceRe.ReplaceAllString(s, " "), " ")
}

// TrimExtra removes leading and trailing commas, periods, and spaces.
func TrimExtra(s string) string {
	if s == "" {
		return s
	}
	return extraCharRe.ReplaceAllString(s, "")
}

// TrimCommaSpace removes leading and trailing commas and spaces, leaving
// periods intact (sentence-final abbreviations survive).
func TrimCommaSpace(s string) string {
	if s == "" {
		return s
	}
	return commaSpaceRe.ReplaceAllString(s, "")
}

// TrimSpace removes leading and trailing plain spaces.  Interior whitespace
// and non-space whitespace characters are untouched; pair with Collapse when
// full normalization is wanted.
func TrimSpace(s string) string {
	if s == "" {
		return s
	}
	return edgeSpaceRe.ReplaceAllString(s, "")
}

// Clean is the standard normalization chain: collapse whitespace, then trim
// edge spaces.
func Clean(s string) string {
	return TrimSpace(Collapse(s))
}

// Deaccent strips diacritics by decomposing to NFD, dropping combining marks,
// and recomposing to NFC, so "Peña" becomes "Pena".
func Deaccent(s string) string {
	if s == "" {
		return s
	}
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Dedup removes repeated elements of a slice while keeping first-seen order.
func Dedup(items []string) []string {
	if len(items) == 0 {
		return items
	}
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, it := range items {
		if _, ok := seen[it]; ok {
			continue
		}
		seen[it] = struct{}{}
		out = append(out, it)
	}
	return out
}
