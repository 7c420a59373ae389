package parser

import (
	"regexp"
	"strings"

	"github.com/lexintel/caselaw-intelligence/internal/domain/court"
	"github.com/lexintel/caselaw-intelligence/internal/extraction/pattern"
	"github.com/lexintel/caselaw-intelligence/internal/extraction/text"
)

// CitationDate is the decision date recovered from a citation
// parenthetical. Fields are nil when the parenthetical omits them.
type CitationDate struct {
	Year  *string `json:"year"`
	Month *string `json:"month"`
	Day   *string `json:"day"`
}

// ReporterDetail is one volume/reporter/page run inside a citation.
type ReporterDetail struct {
	Volume               *string `json:"volume"`
	ReporterAbbreviation *string `json:"reporter_abbreviation"`
	FirstPage            *string `json:"first_page"`
	Pages                *string `json:"pages"`
	Footnotes            *string `json:"footnotes"`
	Edition              *string `json:"edition"`
	ReporterName         *string `json:"reporter_name"`
	CiteType             *string `json:"cite_type"`
}

// CitationToken is the structured decomposition of one citation string.
type CitationToken struct {
	Citation      string           `json:"citation"`
	CaseName      *string          `json:"case_name"`
	Published     bool             `json:"published"`
	Date          CitationDate     `json:"date"`
	DocketNumbers []string         `json:"docket_numbers"`
	Details       []ReporterDetail `json:"citation_details"`
	Court         *court.Detail    `json:"court"`
}

var (
	pageRunCleanRe = regexp.MustCompile(`[^0-9\-, ]`)
	emptyRunOnlyRe = regexp.MustCompile(`^[_-]+$`)
	blankedRe      = regexp.MustCompile(`XXXX+`)
)

// TokenizeCitation decomposes a citation into its case name, reporter
// runs, docket numbers, court, and date. Reporter runs are blanked out of
// the working string as they are consumed, so the case name is whatever
// precedes the first blank and a docket run containing a blank marks the
// end of the docket scan.
func TokenizeCitation(citation string) CitationToken {
	tok := CitationToken{Citation: citation}

	var courtDetail *court.Detail
	var day, month, year *string

	approxLocation := ""
	if m := pattern.ApproxCourtLocation.Find(citation); m != nil {
		if d := pattern.ShortMonthDate.Find(m[1]); d != nil {
			if d[2] != "" {
				if n, ok := court.MonthNumber(d[2]); ok {
					month = &n
				}
			}
			if d[3] != "" {
				v := d[3]
				day = &v
			}
			if d[4] != "" {
				v := d[4]
				year = &v
			}
			approxLocation = strings.Replace(m[1], d[1], d[4], 1)
		}
	}

	if approxLocation != "" && !pattern.ParenNumberOnly.Match(approxLocation) {
		for _, code := range court.Codes() {
			if strings.Contains(approxLocation, code) {
				if d, ok := court.Lookup(code); ok {
					courtDetail = &d
				}
				break
			}
		}
	}

	// Remove reporters whose volume and page were never printed
	// ("___ U.S. ___, ___") before tokenizing the real runs.
	for _, key := range reporterScanOrder {
		if strings.Contains(citation, key) {
			citation = pattern.ReporterEmpty(key).Re.ReplaceAllString(citation, " ")
		}
	}
	citation = pattern.EmptyCiteRun.Sub(citation)
	tok.Citation = citation

	var matches [][]string
	for _, key := range reporterScanOrder {
		if !strings.Contains(citation, key) {
			continue
		}
		for _, m := range pattern.Reporter(key).FindAll(citation) {
			citation = strings.ReplaceAll(citation, m[0], "XXXX")
			matches = append(matches, m)
		}
	}

	for _, m := range matches {
		groups := make([]string, 5)
		for i := 0; i < 5; i++ {
			groups[i] = text.TrimCommaSpace(m[i+2])
		}
		if std, ok := reporterVariations[groups[1]]; ok {
			groups[1] = std
		}

		d := ReporterDetail{
			Volume:               nullifyClean(groups[0]),
			ReporterAbbreviation: nullifyClean(groups[1]),
			FirstPage:            nullifyClean(groups[2]),
			Pages:                nullifyPageRun(groups[3]),
			Footnotes:            nullifyPageRun(groups[4]),
		}

		if groups[1] == "P. C." {
			courtDetail = nil
		}
		if groups[1] == "S. Ct." || groups[1] == "U.S." {
			if sc, ok := court.Lookup("Supreme Court"); ok {
				courtDetail = &sc
			}
		}

		if info, ok := reporterCatalog[groups[1]]; ok {
			e, n, c := info.Edition, info.Name, info.CiteType
			d.Edition, d.ReporterName, d.CiteType = &e, &n, &c
		}
		tok.Details = append(tok.Details, d)
	}

	possibleCasename := casenameBeforeBlank(pattern.DocketPrefix.Re.ReplaceAllString(citation, " $1 "))

	var dockets []string
	for {
		m := pattern.DocketNumber.Find(possibleCasename)
		if m == nil {
			m = pattern.DocketComposite.Find(possibleCasename)
		}
		if m == nil {
			break
		}
		whole, body := m[1], m[2]

		if strings.Contains(body, "XXXX") {
			possibleCasename = strings.ReplaceAll(possibleCasename, whole, " XXXX")
			break
		}

		dockets = append(dockets, strings.Split(pattern.AndToComma.Sub(body), ",")...)

		if !pattern.DocketNumber.Match(strings.ReplaceAll(possibleCasename, body, ",")) {
			possibleCasename = strings.ReplaceAll(possibleCasename, whole, " XXXX")
			break
		}
		possibleCasename = strings.ReplaceAll(possibleCasename, body, ",")
	}

	casename := text.TrimCommaSpace(casenameBeforeBlank(possibleCasename))
	if casename != "" && casename != citation {
		tok.CaseName = &casename
	}
	tok.Published = len(dockets) == 0

	for _, d := range dockets {
		cleaned := text.TrimCommaSpace(pattern.DocketPrefix.Sub(d))
		if cleaned != "" {
			tok.DocketNumbers = append(tok.DocketNumbers, cleaned)
		}
	}

	tok.Date = CitationDate{Year: year, Month: month, Day: day}
	tok.Court = courtDetail
	return tok
}

// casenameBeforeBlank keeps everything before the first blanked reporter
// run.
func casenameBeforeBlank(s string) string {
	if blankedRe.MatchString(s) {
		return pattern.CasenameBeforeBlank.Sub(s)
	}
	return s
}

func nullifyClean(s string) *string {
	s = emptyRunOnlyRe.ReplaceAllString(s, "")
	if s == "" {
		return nil
	}
	return &s
}

func nullifyPageRun(s string) *string {
	s = text.TrimExtra(pageRunCleanRe.ReplaceAllString(s, ""))
	if s == "" {
		return nil
	}
	return &s
}
