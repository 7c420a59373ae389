package parser

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/lexintel/caselaw-intelligence/internal/extraction/text"
)

// replaceFootnotes swaps every in-text footnote anchor for a "@@@@[n]"
// marker so the anchor survives text extraction. A footnote attached to the
// case caption is dropped together with its body paragraph; captions carry
// reporter notes, not opinion content.
func (r *run) replaceFootnotes() {
	for _, sup := range findAll(r.root, "sup") {
		anchors := findAll(sup, "a")
		if len(anchors) == 0 {
			continue
		}
		if sup.Parent != nil && attrVal(sup.Parent, "id") == "gsl_case_name" {
			detach(sup)
			r.dropCaptionFootnoteBody()
			continue
		}
		name := attrVal(anchors[0], "name")
		marker := " " + footnoteLabel + strings.ReplaceAll(name, "r", "") + " "
		replaceWithText(sup, marker)
	}
}

// dropCaptionFootnoteBody removes the first footnote paragraph from the
// bottom notes block.
func (r *run) dropCaptionFootnoteBody() {
	smalls := findAll(r.root, "small")
	if len(smalls) == 0 {
		return
	}
	for _, p := range findAll(smalls[len(smalls)-1], "p") {
		for _, a := range findAll(p, "a") {
			if hasClass(a, "gsl_hash") {
				detach(p)
				return
			}
		}
	}
}

// fullCasename records the caption text and removes the caption node.
func (r *run) fullCasename() {
	if n := findByID(r.root, "gsl_case_name"); n != nil {
		r.rec.FullCaseName = text.TrimCommaSpace(text.Collapse(nodeText(n)))
		detach(n)
	}
}

// pages records the first and last printed page for published opinions.
func (r *run) pages() {
	tags := r.pageNumberTags()
	if len(tags) == 0 {
		return
	}
	first, err1 := strconv.Atoi(nodeText(tags[0]))
	last, err2 := strconv.Atoi(nodeText(tags[len(tags)-1]))
	if err1 != nil || err2 != nil {
		return
	}
	r.rec.FirstPage, r.rec.LastPage = &first, &last
}

func (r *run) pageNumberTags() []*html.Node {
	var out []*html.Node
	for _, a := range findAll(r.root, "a") {
		if hasClass(a, "gsl_pagenum") {
			out = append(out, a)
		}
	}
	return out
}

// shortCitation collects the reporter citations printed in bold under the
// caption and removes them from the tree.
func (r *run) shortCitation() {
	for _, c := range findAll(r.root, "center") {
		for _, b := range findAll(c, "b") {
			if b.Parent != c {
				continue
			}
			r.rec.ShortCitation = append(r.rec.ShortCitation, nodeText(b))
			detach(b)
		}
	}
}

// findByID returns the first descendant with the given id attribute.
func findByID(root *html.Node, id string) *html.Node {
	var found *html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if found != nil {
			return
		}
		if n.Type == html.ElementNode && attrVal(n, "id") == id {
			found = n
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		walk(c)
	}
	return found
}
