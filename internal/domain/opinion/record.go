// Package opinion defines the case record built up by the extraction
// pipeline and the persistence contract for storing it. The record is
// populated strictly in pipeline order, one instance per document; nothing
// in this package is shared across parses.
package opinion

import (
	"github.com/lexintel/caselaw-intelligence/internal/domain/court"
	"github.com/lexintel/caselaw-intelligence/internal/domain/patent"
)

// Variation is one textual form under which a case was cited, with the
// stable marker identifier assigned to it. Identical citation text within
// one referenced-case group always carries the identifier it was first
// assigned.
type Variation struct {
	Citation   string `json:"citation"`
	Identifier string `json:"identifier"`
}

// CitedCase groups the variations of one cited case under its case name.
type CitedCase struct {
	CaseName   string      `json:"case_name"`
	Variations []Variation `json:"variations"`
}

// CaseNumber links one or more docket numbers to a related-case identifier.
// ID is nil when the source page carries no identifier for the docket.
type CaseNumber struct {
	ID           *string  `json:"id"`
	DocketNumber []string `json:"docket_number"`
}

// Footnote is a serialized footnote body keyed by its original anchor id.
type Footnote struct {
	Identifier string `json:"identifier"`
	Context    string `json:"context"`
}

// OpinionSpan marks the region of the training text holding one judge's
// separate opinion. The span end is the start of the next separate opinion
// or the end of the text.
type OpinionSpan struct {
	Judge     string `json:"judge"`
	IndexSpan [2]int `json:"index_span"`
}

// PersonalOpinions collects concurrences and dissents. A nil slice means
// none were found, as opposed to an empty list of spans.
type PersonalOpinions struct {
	Concur  []OpinionSpan `json:"concur"`
	Dissent []OpinionSpan `json:"dissent"`
}

// CaseRecord is the structured output of parsing one court opinion.
type CaseRecord struct {
	ID               string                 `json:"id"`
	FullCaseName     string                 `json:"full_case_name"`
	CaseNumbers      []CaseNumber           `json:"case_numbers"`
	Citation         string                 `json:"citation"`
	ShortCitation    []string               `json:"short_citation"`
	FirstPage        *int                   `json:"first_page"`
	LastPage         *int                   `json:"last_page"`
	CitesTo          map[string][]CitedCase `json:"cites_to"`
	Date             string                 `json:"date"`
	Court            court.Detail           `json:"court"`
	Judges           []string               `json:"judges"`
	PersonalOpinions PersonalOpinions       `json:"personal_opinions"`
	PatentsInSuit    []patent.InSuit        `json:"patents_in_suit"`
	Footnotes        []Footnote             `json:"footnotes"`
	HTML             string                 `json:"html"`
	TrainingText     string                 `json:"training_text"`
}

// NewCaseRecord returns an empty record ready for the pipeline. Collections
// are initialized so stages can append without nil checks.
func NewCaseRecord() *CaseRecord {
	return &CaseRecord{
		CaseNumbers:   []CaseNumber{},
		ShortCitation: []string{},
		CitesTo:       map[string][]CitedCase{},
		Judges:        []string{},
		PatentsInSuit: []patent.InSuit{},
		Footnotes:     []Footnote{},
	}
}

// Summary is one row of the corpus listing: the fields a reader needs to
// identify a stored case at a glance.
type Summary struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Citation string       `json:"citation"`
	Date     string       `json:"date"`
	Court    court.Detail `json:"court"`
	URL      string       `json:"url"`
}
