package parse

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/lexintel/caselaw-intelligence/internal/domain/court"
	"github.com/lexintel/caselaw-intelligence/internal/extraction/parser"
	"github.com/lexintel/caselaw-intelligence/internal/extraction/pattern"
	"github.com/lexintel/caselaw-intelligence/internal/infrastructure/monitoring/logging"
	"github.com/lexintel/caselaw-intelligence/pkg/errors"
)

// CiteEntry is one bundled citation: the best textual form found across the
// corpus plus its tokenized fields. NeedsReview flags entries whose case
// name could not be confirmed against the citation text.
type CiteEntry struct {
	Citation      string                  `json:"citation"`
	CaseName      *string                 `json:"case_name"`
	Published     bool                    `json:"published"`
	Date          parser.CitationDate     `json:"date"`
	DocketNumbers []string                `json:"docket_numbers"`
	Details       []parser.ReporterDetail `json:"citation_details"`
	Court         *court.Detail           `json:"court"`
	NeedsReview   bool                    `json:"needs_review"`
}

// CiteBundle maps a case id to its bundled citation.
type CiteBundle map[string]*CiteEntry

// BundleCites collects every citation variation stored in the corpus,
// groups them by the cited case, and saves the bundle to
// citations_<suffix>.json. Each case contributes the variations under its
// cites_to map plus its own citation under its own id.
//
// With blueBook set, the bundler prefers the first variation that already
// reads as a complete bluebook citation, falls back to manual overrides
// from manual_cites_<suffix>.json, and finally downloads the cited case
// itself unless it sits in the 404 log.
func (s *Service) BundleCites(ctx context.Context, blueBook bool) (CiteBundle, error) {
	records, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	variations := map[string][]string{}
	for _, record := range records {
		for citedID, citedCases := range record.CitesTo {
			for _, c := range citedCases {
				for _, v := range c.Variations {
					variations[citedID] = append(variations[citedID], v.Citation)
				}
			}
		}
		if record.ID != "" {
			variations[record.ID] = append(variations[record.ID], record.Citation)
		}
	}

	notFound, err := s.store.Load404()
	if err != nil {
		return nil, err
	}
	manual := map[string]*CiteEntry{}
	if err := s.store.LoadManualCitations(&manual); err != nil && !errors.IsNotFound(err) {
		return nil, err
	}

	bundle := CiteBundle{}
	for id, forms := range variations {
		bundle[id] = s.bundleOne(ctx, id, forms, blueBook, manual, notFound)
	}

	if err := s.store.SaveCitations(bundle); err != nil {
		return nil, err
	}
	s.logger.Info("bundled citations", logging.Int("cases", len(bundle)))
	return bundle, nil
}

// bundleOne picks the longest variation of one cited case and, when
// requested, tokenizes the most trustworthy form available.
func (s *Service) bundleOne(
	ctx context.Context,
	id string,
	forms []string,
	blueBook bool,
	manual map[string]*CiteEntry,
	notFound map[string]string,
) *CiteEntry {
	sort.SliceStable(forms, func(i, j int) bool { return len(forms[i]) > len(forms[j]) })
	entry := &CiteEntry{Citation: forms[0]}
	if !blueBook {
		return entry
	}

	matched := false
	for _, form := range forms {
		if citation, ok := longBlueCite(form); ok {
			entry.apply(fixAbbreviations(citation), false)
			matched = true
			break
		}
	}

	if override := manual[id]; override != nil {
		entry.apply(override.Citation, true)
	} else if !matched {
		if _, is404 := notFound[id]; is404 {
			entry.NeedsReview = true
		} else if summary, err := s.Summary(ctx, id); err == nil {
			entry.apply(summary.Citation, true)
		} else {
			s.logger.Warn("could not resolve cited case",
				logging.String("case_id", id), logging.Err(err))
			entry.NeedsReview = true
		}
	}

	if entry.CaseName == nil || !strings.Contains(entry.Citation, *entry.CaseName) {
		entry.NeedsReview = true
	}
	return entry
}

// apply tokenizes citation into the entry. extras additionally strips pin
// cites and fixes abbreviations first.
func (e *CiteEntry) apply(citation string, extras bool) {
	if extras {
		citation = fixAbbreviations(pattern.ExtrasCitation.Apply(citation))
	}
	if citation == "" {
		return
	}
	tok := parser.TokenizeCitation(citation)
	e.Citation = tok.Citation
	e.CaseName = tok.CaseName
	e.Published = tok.Published
	e.Date = tok.Date
	e.DocketNumbers = tok.DocketNumbers
	e.Details = tok.Details
	e.Court = tok.Court
}

// longBlueCite strips citation extras and reports whether the remainder
// already reads as a complete bluebook citation.
func longBlueCite(citation string) (string, bool) {
	citation = pattern.ExtrasCitation.Apply(citation)
	if pattern.LongBluebook.Match(citation) {
		return citation, true
	}
	return "", false
}

// fixAbbreviations normalizes the trailing court parenthetical of a
// citation: long-form dates are shortened and court-name spellings cleaned.
func fixAbbreviations(citation string) string {
	m := pattern.ApproxCourtLocation.Find(citation)
	if m == nil {
		return citation
	}
	paren := m[1]

	cleaned := paren
	if d := pattern.LongDate.Find(paren); d != nil {
		if short, ok := shortenDate(d[1]); ok {
			cleaned = strings.Replace(cleaned, d[1], short, 1)
		}
	}
	cleaned = pattern.CourtClean.Apply(cleaned)
	return strings.Replace(citation, paren, cleaned, 1)
}

var shortMonths = map[time.Month]string{
	time.January:   "Jan.",
	time.February:  "Feb.",
	time.March:     "Mar.",
	time.April:     "Apr.",
	time.May:       "May",
	time.June:      "June",
	time.July:      "July",
	time.August:    "Aug.",
	time.September: "Sept.",
	time.October:   "Oct.",
	time.November:  "Nov.",
	time.December:  "Dec.",
}

// shortenDate abbreviates a "March 21, 1999" date to "Mar. 21, 1999". May,
// June and July stay unabbreviated per bluebook convention.
func shortenDate(long string) (string, bool) {
	t, err := time.Parse("January 2, 2006", strings.Trim(long, " ,"))
	if err != nil {
		return "", false
	}
	return fmt.Sprintf("%s %02d, %d", shortMonths[t.Month()], t.Day(), t.Year()), true
}
