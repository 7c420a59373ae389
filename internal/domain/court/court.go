// Package court carries the static jurisdiction reference data consulted by
// the citation formatter and the cross-reference extractors: federal and
// state court-name abbreviation tables, state/territory abbreviations, month
// numbers, and the per-court detail records (code, jurisdiction, full name).
// The tables are loaded once per process and never invented at runtime; a
// miss is reported to the caller, never guessed around.
package court

import (
	"sort"
	"strings"
	"unicode"
)

// Detail identifies one court. Jurisdiction is "F" for federal courts and
// the state abbreviation otherwise.
type Detail struct {
	FullName     string `json:"full_name"`
	ShortName    string `json:"short_name"`
	CourtCode    string `json:"court_code"`
	Jurisdiction string `json:"jurisdiction"`
}

// SupremeCourtCode is the court code of the Supreme Court of the United
// States. Several extractors special-case it: its docket shape differs from
// appellate dockets and its opinions keep the Syllabus heading.
const SupremeCourtCode = "us"

// FederalAbbrev resolves a federal court name as it appears in a case header
// to its bluebook abbreviation. Container tokens such as "Court of Appeals"
// resolve to the empty string on purpose: the qualifying circuit carries the
// abbreviation.
func FederalAbbrev(name string) (string, bool) {
	abbr, ok := federalCourts[name]
	return abbr, ok
}

// StateCourtAbbrev resolves a state court name ("Court of Appeals",
// "Superior Court") to its bluebook abbreviation. A state supreme court
// resolves to the empty string; the state abbreviation alone cites it.
func StateCourtAbbrev(name string) (string, bool) {
	abbr, ok := stateCourts[name]
	return abbr, ok
}

// StateAbbrev resolves a full state or territory name to its traditional
// reporter abbreviation.
func StateAbbrev(name string) (string, bool) {
	abbr, ok := statesTerritories[name]
	return abbr, ok
}

// nonAbbreviating lists the states that are always cited unabbreviated.
var nonAbbreviating = map[string]struct{}{
	"Alaska": {}, "Idaho": {}, "Iowa": {}, "Ohio": {}, "Utah": {},
}

// AbbreviateState turns a state token from a header citation into its dotted
// form: "Nev" becomes "Nev.", "NC" becomes "N.C.". Tokens already carrying
// dots are normalized first. The five never-abbreviated states are returned
// unchanged.
func AbbreviateState(name string) string {
	if _, ok := nonAbbreviating[name]; ok {
		return name
	}
	stripped := strings.ReplaceAll(name, ".", "")
	var b strings.Builder
	runes := []rune(stripped)
	for i, r := range runes {
		b.WriteRune(r)
		if !unicode.IsLetter(r) {
			continue
		}
		// A dot follows a letter that ends a word or precedes an upper-case
		// letter, which dots both "Nev" and the run "NC".
		next := rune(0)
		if i+1 < len(runes) {
			next = runes[i+1]
		}
		if next == 0 || !unicode.IsLetter(next) || unicode.IsUpper(next) {
			b.WriteRune('.')
		}
	}
	return b.String()
}

// Lookup resolves a court identity string produced by the citation formatter
// ("Fed. Cir.", "D. Del.", "Nev.") to its detail record.
func Lookup(identity string) (Detail, bool) {
	d, ok := courtDetails[identity]
	return d, ok
}

// Codes returns every known court identity, longest first, so a substring
// scan over a parenthetical finds "N.D. Cal." before "D. Cal." would.
func Codes() []string {
	keys := make([]string, 0, len(courtDetails))
	for k := range courtDetails {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return keys
}

// MonthNumber resolves a month name, abbreviated or full, with or without a
// trailing period, to its two-digit number.
func MonthNumber(name string) (string, bool) {
	n, ok := months[strings.TrimSuffix(name, ".")]
	return n, ok
}
