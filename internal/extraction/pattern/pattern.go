// Package pattern holds the declarative rule catalog consulted by every
// extractor: dockets, dates, courts, reporters, judges, patents, claims.
//
// A Rule pairs a compiled expression with a replacement template.  Rules are
// grouped into ordered lists; applying a list is sequential substitution
// (later rules see the output of earlier ones).  Extraction is the
// non-mutating mode and operates on a single Rule at a time.  No list assumes
// another list already ran; extractors chain lists explicitly at each call
// site.
package pattern

import "regexp"

// Rule is one (match, replace-or-extract) entry of the catalog.
type Rule struct {
	Re   *regexp.Regexp
	Repl string
}

// New compiles expr and returns the Rule.  Panics on an invalid expression;
// the catalog is static so this is a programming error, not input error.
func New(expr, repl string) Rule {
	return Rule{Re: regexp.MustCompile(expr), Repl: repl}
}

// Sub substitutes every match in s with the rule's replacement template.
func (r Rule) Sub(s string) string {
	return r.Re.ReplaceAllString(s, r.Repl)
}

// Match reports whether s contains the pattern.
func (r Rule) Match(s string) bool {
	return r.Re.MatchString(s)
}

// Find returns the first match and its submatches, or nil.
func (r Rule) Find(s string) []string {
	return r.Re.FindStringSubmatch(s)
}

// FindAll returns every match with submatches.
func (r Rule) FindAll(s string) [][]string {
	return r.Re.FindAllStringSubmatch(s, -1)
}

// FindAllIndex returns byte-offset spans for every match, submatch spans
// included.  Extractors that need character positions (the claim resolver)
// use this form.
func (r Rule) FindAllIndex(s string) [][]int {
	return r.Re.FindAllStringSubmatchIndex(s, -1)
}

// Rules is an ordered list applied as a unit.
type Rules []Rule

// Apply runs every rule in order as a substitution pipeline and returns the
// final text.  Empty input is returned unchanged.
func (rs Rules) Apply(s string) string {
	if s == "" {
		return s
	}
	for _, r := range rs {
		s = r.Sub(s)
	}
	return s
}

// Match reports whether any rule in the list matches s.
func (rs Rules) Match(s string) bool {
	for _, r := range rs {
		if r.Match(s) {
			return true
		}
	}
	return false
}

// ApplyAll maps Apply over a slice of strings.
func (rs Rules) ApplyAll(items []string) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = rs.Apply(it)
	}
	return out
}
