package parser

import (
	"github.com/lexintel/caselaw-intelligence/internal/domain/opinion"
	"github.com/lexintel/caselaw-intelligence/internal/extraction/text"
)

// serializeFootnotes lifts the bottom footnote bodies into the record. The
// notes block is resolved for italicized case names first so footnote text
// carries the same citation markers as the body.
func (r *run) serializeFootnotes() {
	smalls := findAll(r.root, "small")
	if len(smalls) == 0 {
		return
	}
	last := smalls[len(smalls)-1]
	r.replaceITags(last)

	for _, a := range findAll(last, "a") {
		if !hasClass(a, "gsl_hash") || a.Parent == nil {
			continue
		}
		parent := a.Parent
		name := attrVal(a, "name")
		detach(a)
		r.rec.Footnotes = append(r.rec.Footnotes, opinion.Footnote{
			Identifier: name,
			Context:    text.TrimSpace(nodeText(parent)),
		})
	}
}
