package parser

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/net/html"

	"github.com/lexintel/caselaw-intelligence/internal/domain/opinion"
	"github.com/lexintel/caselaw-intelligence/internal/extraction/pattern"
	"github.com/lexintel/caselaw-intelligence/internal/extraction/text"
)

// priorityCite is one searchable form of a cited case: the full citation
// text, or one side of the party names. Lower rank wins when italicized
// text could belong to several cites.
type priorityCite struct {
	key  string
	text string
	rank int
}

// replaceATags swaps every anchor linking to another opinion for a
// "####<id>[n]" marker, recording the citation under the target case id.
// The marker identifier is positional over the pre-rewrite link snapshot;
// repeating citation text within a case-name group reuses the identifier it
// was assigned first.
func (r *run) replaceATags() {
	for i, l := range r.links {
		if l.Parent == nil {
			continue
		}
		ident := fmt.Sprintf("[%d]", i+1)
		href := attrVal(l, "href")
		if href == "" || !strings.Contains(href, "/scholar_case?") {
			continue
		}
		m := pattern.CaseID.Find(href)
		if m == nil {
			continue
		}
		id := m[1]

		citation := text.TrimExtra(nodeText(l))
		caseName := ""
		if italics := findAll(l, "i"); len(italics) > 0 {
			caseName = text.TrimCommaSpace(nodeText(italics[0]))
		}

		entries := r.rec.CitesTo[id]
		accounted := false
		for ei := range entries {
			if entries[ei].CaseName != caseName {
				continue
			}
			reused := false
			for _, v := range entries[ei].Variations {
				if v.Citation == citation {
					ident = v.Identifier
					reused = true
					break
				}
			}
			if !reused {
				entries[ei].Variations = append(entries[ei].Variations, opinion.Variation{Citation: citation, Identifier: ident})
				r.prioritized = append(r.prioritized, priorityCite{key: id, text: citation, rank: 2})
			}
			accounted = true
			break
		}
		if !accounted {
			entries = append(entries, opinion.CitedCase{
				CaseName:   caseName,
				Variations: []opinion.Variation{{Citation: citation, Identifier: ident}},
			})
			r.prioritized = append(r.prioritized, priorityCite{key: id, text: citation, rank: 2})
		}
		r.rec.CitesTo[id] = entries

		// An italic hugging the anchor is renamed so the italics pass
		// cannot mistake it for a broken case name.
		for _, adjacent := range []*html.Node{l.NextSibling, l.PrevSibling} {
			if isElement(adjacent, "i") {
				adjacent.Data = "em"
			}
		}

		replaceWithText(l, " "+citationLabel+id+ident+" ")
	}

	r.buildPriorities()
}

// buildPriorities expands each recorded citation into party-name entries
// and orders the list plaintiff, defendant, then full citation.
func (r *run) buildPriorities() {
	base := r.prioritized
	expanded := make([]priorityCite, 0, len(base)*3)
	expanded = append(expanded, base...)
	for _, pc := range base {
		if m := pattern.VersusParts.Find(pc.text); m != nil {
			expanded = append(expanded,
				priorityCite{key: pc.key, text: m[1], rank: 0},
				priorityCite{key: pc.key, text: m[2], rank: 1})
		}
	}
	sort.SliceStable(expanded, func(i, j int) bool { return expanded[i].rank < expanded[j].rank })
	r.prioritized = expanded
}

// replaceITags resolves italicized case-name fragments under scope to
// citation markers. A fragment counts only when it appears whole inside a
// recorded citation or party name and is not boilerplate like "Id.".
func (r *run) replaceITags(scope *html.Node) {
	for _, pc := range r.prioritized {
		for _, i := range findAll(scope, "i") {
			if i.Parent == nil {
				continue
			}
			iText := pattern.Boundary.Sub(nodeText(i))
			cleaned := trailingPunctRe.ReplaceAllString(iText, "")
			if iText == "" || len(iText) <= 2 || cleaned == "id" || cleaned == "Id" {
				continue
			}
			if pattern.Boundary.Match(cleaned) {
				continue
			}
			word, err := regexp.Compile(`\b` + regexp.QuoteMeta(cleaned) + `\b`)
			if err != nil || !word.MatchString(pc.text) {
				continue
			}
			endChar := ""
			for _, end := range []string{".", ",", "'s"} {
				if strings.HasSuffix(iText, end) {
					endChar = end
				}
			}
			replaceWithText(i, " "+citationLabel+pc.key+" "+endChar)
		}
	}
}

var trailingPunctRe = regexp.MustCompile(`[,.]+$`)
