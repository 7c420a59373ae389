package parser

import (
	"regexp"
	"strings"

	"github.com/lexintel/caselaw-intelligence/internal/domain/court"
	"github.com/lexintel/caselaw-intelligence/internal/extraction/pattern"
	"github.com/lexintel/caselaw-intelligence/internal/extraction/text"
	"github.com/lexintel/caselaw-intelligence/pkg/errors"
)

var lowerRe = regexp.MustCompile(`[a-z]`)

// citor rewrites the page header into a bluebook citation and names the
// court it resolves to. The header tail is parsed federal-first; a failed
// federal lookup falls through to the state grammar, which operates on the
// citation as modified so far. A dash before the year means the case was
// published and needs no docket number; a comma leaves a "No. XXXXXX"
// placeholder for the docket pass to fill.
func (r *run) citor() (citation, identity string, err error) {
	hdr := r.page.Find("#gs_hdr_md").First()
	if hdr.Length() == 0 {
		return "", "", errors.MarkupMalformed("citation header not found")
	}
	citation = text.TrimExtra(hdr.Text())

	courtName, courtType := "", ""

	m := pattern.FederalCourt.Find(citation)
	if m == nil {
		return pattern.BareYear.Sub(citation), "Supreme Court", nil
	}
	whole, delim, cname, year := m[1], m[2], m[3], m[4]

	fellThrough := false
	if cname == "Dist. Court" {
		// A bare "Dist. Court" is the District of Columbia's.
		courtName = "D.D.C."
	} else if abbr, ok := court.FederalAbbrev(cname); ok {
		courtName = abbr
	} else if abbr := r.districtFromState(citation, whole, cname); abbr != "" {
		courtName = abbr
	} else {
		fellThrough = true
	}

	if !fellThrough {
		courtNameSpaced := ""
		if courtName != "" {
			courtNameSpaced = courtName + " "
		}

		// A resolved empty name is the Supreme Court's.
		if courtName == "" {
			caseNumber, date := r.publicationTail(delim, year)
			citation = text.Collapse(strings.Replace(citation, whole, caseNumber+" ("+date+")", 1))
			return citation, "Supreme Court", nil
		}

		// Single-level courts get a "Federal Courts" placeholder so the
		// two-level re-parse below applies uniformly.
		replaceWith := " (" + courtNameSpaced + year + ")"
		if courtName == "Fed. Cl." || courtName == "D.D.C." {
			replaceWith = ", Federal Courts (" + courtNameSpaced + year + ")"
		}
		citation = text.Collapse(strings.Replace(citation, whole, replaceWith, 1))

		m2 := pattern.FederalCourtTwoLevel.Find(citation)
		if m2 == nil {
			fellThrough = true
		} else if abbr, ok := court.FederalAbbrev(m2[3]); !ok {
			fellThrough = true
		} else {
			courtType = abbr
			courtTypeSpaced := ""
			if courtType != "" {
				courtTypeSpaced = courtType + " "
			}
			caseNumber, date := r.publicationTail(m2[2], year)
			citation = text.Collapse(strings.Replace(citation, m2[1],
				caseNumber+" ("+courtTypeSpaced+courtNameSpaced+date+")", 1))
			identity = text.Clean(courtType + " " + courtName)
			return citation, identity, nil
		}
	}

	return r.stateCitation(citation)
}

// districtFromState handles headers naming a district court by its state
// alone ("Dist. Court, North Carolina" becomes "D.N.C."). Empty means the
// header does not fit that shape.
func (r *run) districtFromState(citation, whole, cname string) string {
	rest := strings.Replace(citation, whole, "", 1)
	segments := strings.Split(rest, ",")
	possibleType := text.TrimSpace(segments[len(segments)-1])
	abbr, ok := court.StateAbbrev(cname)
	if !ok || abbr == "" || !strings.Contains(possibleType, "Dist.") {
		return ""
	}
	if lowerRe.MatchString(abbr) {
		return "D. " + abbr
	}
	return "D." + abbr
}

// publicationTail returns the docket placeholder and parenthetical date for
// the given delimiter.
func (r *run) publicationTail(delim, year string) (caseNumber, date string) {
	if delim == "-" {
		return "", year
	}
	return ", No. XXXXXX", r.shortDecisionDate(year)
}

// stateCitation parses the state-court header tail.
func (r *run) stateCitation(citation string) (string, string, error) {
	m := pattern.StateCourt.Find(citation)
	if m == nil {
		return pattern.BareYear.Sub(citation), "Supreme Court", nil
	}
	whole, delim, stateTok, courtSeg, year := m[1], m[2], m[3], m[4], m[5]

	state := court.AbbreviateState(stateTok)
	name := strings.Split(courtSeg, ",")[0]
	courtName, ok := court.StateCourtAbbrev(name)
	if !ok {
		return "", "", errors.CourtUnresolvable("unknown state court").WithDetail(name)
	}
	if state == "N.Y." && name == "Supreme Court" {
		courtName = "Sup. Ct."
	}

	stateSpaced := state + " "
	if strings.Contains(courtName, "Commw") {
		stateSpaced = ""
	}
	caseNumber, date := r.publicationTail(delim, year)
	citation = text.Collapse(strings.Replace(citation, whole,
		caseNumber+" ("+stateSpaced+courtName+" "+date+")", 1))

	identity := text.Clean(state + " " + courtName)
	return citation, identity, nil
}
