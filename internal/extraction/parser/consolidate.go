package parser

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/lexintel/caselaw-intelligence/internal/extraction/text"
)

// consolidateBrokenTags repairs markup split by printed page numbers: a
// citation anchor or an italicized case name broken in two around a page
// marker is merged back into one node, and adjacent italics separated only
// by whitespace are joined. The citation and italics passes that follow
// assume each case name lives in a single node.
func (r *run) consolidateBrokenTags() {
	for _, a := range r.pageNumberTags() {
		prev := a.PrevSibling

		// <a href=X>A</a> <pagenum> <a href=X>B</a> becomes one anchor.
		if isElement(prev, "a") {
			href := attrVal(prev, "href")
			if href != "" && strings.Contains(href, "scholar_case?") && a.NextSibling != nil {
				next := a.NextSibling.NextSibling
				if isElement(next, "a") && attrVal(next, "href") == href {
					merged := text.Collapse(nodeText(prev) + nodeText(next))
					setNodeText(next, merged)
					detach(prev)
				}
			}
		}

		// <i>A</i> <pagenum> <i>B</i> becomes one italic run.
		if prev != nil && isSpaceText(prev) && isElement(prev.PrevSibling, "i") {
			lead := prev.PrevSibling
			ws := a.NextSibling
			if ws != nil && isSpaceText(ws) && ws.NextSibling != nil {
				tail := ws.NextSibling.NextSibling
				if isElement(tail, "i") {
					setNodeText(lead, text.Collapse(nodeText(lead)+" "+nodeText(tail)))
					detach(tail)
				}
			}
		}
	}

	// <i>A</i> <i>B</i> separated by whitespace becomes one italic run.
	for _, i := range findAll(r.root, "i") {
		if i.Parent == nil {
			continue
		}
		ws := i.NextSibling
		if ws == nil || ws.Type != html.TextNode || !isSpaceText(ws) {
			continue
		}
		next := ws.NextSibling
		if isElement(next, "i") {
			setNodeText(next, text.Collapse(nodeText(i)+ws.Data+nodeText(next)))
			detach(i)
		}
	}
}
