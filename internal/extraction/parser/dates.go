package parser

import (
	"time"

	"github.com/lexintel/caselaw-intelligence/internal/extraction/pattern"
	"github.com/lexintel/caselaw-intelligence/internal/extraction/text"
	"github.com/lexintel/caselaw-intelligence/internal/infrastructure/monitoring/logging"
)

const decisionDateLayout = "January 2, 2006"

// decisionDate finds the decision date in the last dated center block and
// stores it in ISO form. The raw time is kept on the run for the citation
// formatter, which needs the abbreviated style.
func (r *run) decisionDate() {
	var last string
	for _, c := range findAll(r.root, "center") {
		t := nodeText(c)
		if pattern.LongDate.Match(t) {
			last = t
		}
	}
	if last == "" {
		r.log.Warn("no decision date found in opinion")
		return
	}
	m := pattern.LongDate.Find(last)
	parsed, err := time.Parse(decisionDateLayout, text.Clean(m[1]))
	if err != nil {
		r.log.Warn("unparseable decision date", logging.String("date", m[1]), logging.Err(err))
		return
	}
	r.decided = parsed
	r.rec.Date = parsed.Format("2006-01-02")
}

// shortDecisionDate renders the decision date in the abbreviated citation
// style, falling back to the bare year when no date was found.
func (r *run) shortDecisionDate(fallbackYear string) string {
	if r.decided.IsZero() {
		return fallbackYear
	}
	return shortDate(r.decided)
}

// shortDate abbreviates a date for citation parentheticals. May, June, and
// July stay unabbreviated and September shortens to "Sept.".
func shortDate(t time.Time) string {
	switch t.Month() {
	case time.May, time.June, time.July:
		return t.Format("January 02, 2006")
	case time.September:
		return "Sept. " + t.Format("02, 2006")
	default:
		return t.Format("Jan. 02, 2006")
	}
}
