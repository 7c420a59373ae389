package parser

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/lexintel/caselaw-intelligence/internal/domain/court"
	"github.com/lexintel/caselaw-intelligence/internal/domain/opinion"
	"github.com/lexintel/caselaw-intelligence/internal/extraction/pattern"
	"github.com/lexintel/caselaw-intelligence/internal/extraction/text"
)

// replaceGenericTags rewrites the remaining markup into the labeled flat
// form: page markers, blockquote and pre delimiters, paragraph sentinels,
// and drops the front matter above the panel line. Supreme Court opinions
// instead drop everything above the Syllabus heading.
func (r *run) replaceGenericTags() {
	code := r.rec.Court.CourtCode
	supreme := code == court.SupremeCourtCode

	for _, c := range findAll(r.root, "center") {
		detach(c)
	}
	for _, h := range findAll(r.root, "h2") {
		if supreme && strings.Contains(nodeText(h), "Syllabus") {
			continue
		}
		detach(h)
	}

	for _, a := range r.pageNumberTags() {
		replaceWithText(a, " +page["+nodeText(a)+"]+ ")
	}
	for _, a := range findAll(r.root, "a") {
		if hasClass(a, "gsl_pagenum2") {
			detach(a)
		}
	}

	r.replaceITags(r.root)

	for _, bq := range findAll(r.root, "blockquote") {
		if t := nodeText(bq); t != "" {
			replaceWithText(bq, " "+blockquoteOpen+" "+t+" "+blockquoteClose+" ")
		}
	}
	for _, pre := range findAll(r.root, "pre") {
		if t := nodeText(pre); t != "" {
			replaceWithText(pre, " "+preOpen+" "+t+" "+preClose+" ")
		}
	}

	judgeTag := r.locateJudgeParagraph()
	if supreme {
		r.dropSupremeFrontMatter(judgeTag)
	} else if judgeTag != nil {
		r.dropFrontMatter(judgeTag)
	}

	for _, p := range findAll(r.root, "p") {
		t := nodeText(p)
		if pattern.EndSentence.Match(t) && len(findAll(p, "p")) == 0 {
			replaceWithText(p, t+" "+paragraphLabel+" ")
		}
	}

	if smalls := findAll(r.root, "small"); len(smalls) > 0 {
		detach(smalls[len(smalls)-1])
	}
}

// dropFrontMatter removes the party block: every paragraph up to and
// including the panel line, sparing its ancestors.
func (r *run) dropFrontMatter(judgeTag *html.Node) {
	for _, p := range findAll(r.root, "p") {
		if p == judgeTag {
			detach(p)
			return
		}
		if contains(p, judgeTag) {
			continue
		}
		detach(p)
	}
}

// dropSupremeFrontMatter removes headings and paragraphs up to the
// Syllabus heading, or the panel line if one comes first.
func (r *run) dropSupremeFrontMatter(judgeTag *html.Node) {
	for _, n := range findAllAny(r.root, "p", "h2") {
		if n.Data == "h2" {
			done := strings.Contains(nodeText(n), "Syllabus")
			detach(n)
			if done {
				return
			}
			continue
		}
		if judgeTag == nil {
			continue
		}
		if n == judgeTag {
			detach(n)
			return
		}
		if contains(n, judgeTag) {
			continue
		}
		detach(n)
	}
}

// trainingText flattens the labeled tree into the final training string.
func (r *run) trainingText() {
	r.rec.TrainingText = text.Collapse(nodeText(r.root))
}

// personalOpinion locates separate opinions in the training text. Each
// span runs from a judge's concurring or dissenting introduction to the
// next introduction or the end of the text.
func (r *run) personalOpinion() {
	training := r.rec.TrainingText
	matches := pattern.DissentConcur.FindAllIndex(training)

	for _, judge := range r.rec.Judges {
		lowerJudge := strings.ToLower(judge)
		for i, m := range matches {
			span := training[m[2]:m[3]]
			if !strings.Contains(strings.ToLower(span), lowerJudge) {
				continue
			}
			end := len(training)
			if i < len(matches)-1 {
				end = matches[i+1][2]
			}
			entry := opinion.OpinionSpan{Judge: judge, IndexSpan: [2]int{m[2], end}}
			lowered := strings.ToLower(training[m[0]:m[1]])
			if strings.Contains(lowered, "concurring") {
				r.rec.PersonalOpinions.Concur = append(r.rec.PersonalOpinions.Concur, entry)
			}
			if strings.Contains(lowered, "dissenting") {
				r.rec.PersonalOpinions.Dissent = append(r.rec.PersonalOpinions.Dissent, entry)
			}
		}
	}
}

// findAllAny collects descendant elements matching any of the names, in
// document order.
func findAllAny(root *html.Node, names ...string) []*html.Node {
	set := map[string]struct{}{}
	for _, n := range names {
		set[n] = struct{}{}
	}
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if _, ok := set[n.Data]; ok {
				out = append(out, n)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		walk(c)
	}
	return out
}
