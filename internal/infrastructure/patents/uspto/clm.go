package uspto

import (
	"encoding/xml"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/lexintel/caselaw-intelligence/internal/domain/patent"
	"github.com/lexintel/caselaw-intelligence/pkg/errors"
)

// CLM documents come in several WIPO schema generations whose element names
// differ only in namespace prefix and hyphenation (ClaimText, claim-text,
// pat:ClaimText).  Matching is therefore done on lowercased local names with
// permissive patterns rather than a fixed schema.
var (
	dateTagRe      = regexp.MustCompile(`(?:official|mailroom)?date`)
	claimSetTagRe  = regexp.MustCompile(`claimse?t?`)
	claimTagRe     = regexp.MustCompile(`claim\b`)
	claimNumTagRe  = regexp.MustCompile(`claim-?number`)
	claimTextTagRe = regexp.MustCompile(`claim-?text`)
	noiseTagRe     = regexp.MustCompile(`patent-?image|claim-?label-?text|header-?text|footer-?text|boundary-?data`)

	statusRe     = regexp.MustCompile(`^\(([A-Za-z ]+)\)`)
	leadNumberRe = regexp.MustCompile(`^(?:[\d.\- ])+`)
	whitespaceRe = regexp.MustCompile(`\s`)
	multiSpaceRe = regexp.MustCompile(` +`)
)

// xmlNode is a minimal DOM over an amendment document.
type xmlNode struct {
	name     string
	attrs    map[string]string
	children []*xmlNode
	text     string
}

func parseXMLTree(r io.Reader) (*xmlNode, error) {
	d := xml.NewDecoder(r)
	d.Strict = false
	d.AutoClose = xml.HTMLAutoClose
	d.Entity = xml.HTMLEntity

	root := &xmlNode{name: "#root", attrs: map[string]string{}}
	stack := []*xmlNode{root}

	for {
		tok, err := d.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeClaimParseFailed, "malformed amendment xml")
		}
		switch t := tok.(type) {
		case xml.StartElement:
			node := &xmlNode{
				name:  strings.ToLower(t.Name.Local),
				attrs: map[string]string{},
			}
			for _, a := range t.Attr {
				node.attrs[strings.ToLower(a.Name.Local)] = a.Value
			}
			parent := stack[len(stack)-1]
			parent.children = append(parent.children, node)
			stack = append(stack, node)
		case xml.EndElement:
			if len(stack) > 1 {
				stack = stack[:len(stack)-1]
			}
		case xml.CharData:
			stack[len(stack)-1].text += string(t)
		}
	}
	return root, nil
}

func (n *xmlNode) findFirst(re *regexp.Regexp) *xmlNode {
	for _, c := range n.children {
		if re.MatchString(c.name) {
			return c
		}
		if found := c.findFirst(re); found != nil {
			return found
		}
	}
	return nil
}

func (n *xmlNode) findAll(re *regexp.Regexp, out *[]*xmlNode) {
	for _, c := range n.children {
		if re.MatchString(c.name) {
			*out = append(*out, c)
		}
		c.findAll(re, out)
	}
}

// collectText concatenates the subtree's text, skipping subtrees whose
// element name matches skip.
func (n *xmlNode) collectText(skip *regexp.Regexp, sb *strings.Builder) {
	sb.WriteString(n.text)
	for _, c := range n.children {
		if skip != nil && skip.MatchString(c.name) {
			continue
		}
		c.collectText(skip, sb)
	}
}

func (n *xmlNode) allText() string {
	var sb strings.Builder
	n.collectText(nil, &sb)
	return strings.TrimSpace(sb.String())
}

// ParseCLM extracts the amended claim set from a CLM transaction document.
// Claims whose text is empty and whose status is "original" are cancellation
// noise and are dropped; a document with no surviving claims returns nil.
func ParseCLM(r io.Reader) (*patent.ClaimHistory, error) {
	root, err := parseXMLTree(r)
	if err != nil {
		return nil, err
	}

	history := &patent.ClaimHistory{UpdatedClaims: map[int]patent.AmendedClaim{}}
	if dateNode := root.findFirst(dateTagRe); dateNode != nil {
		history.Date = dateNode.allText()
	}

	scope := root
	if cs := root.findFirst(claimSetTagRe); cs != nil {
		scope = cs
	}

	var claimNodes []*xmlNode
	scope.findAll(claimTagRe, &claimNodes)

	for _, cl := range claimNodes {
		if !strings.HasPrefix(cl.attrs["id"], "CLM") {
			continue
		}

		num := 0
		if v, ok := cl.attrs["num"]; ok {
			num, _ = strconv.Atoi(strings.TrimSpace(v))
		}
		if num == 0 {
			if cn := cl.findFirst(claimNumTagRe); cn != nil {
				num, _ = strconv.Atoi(strings.TrimSpace(cn.allText()))
			}
		}
		if num == 0 {
			continue
		}

		var textNodes []*xmlNode
		cl.findAll(claimTextTagRe, &textNodes)
		var sb strings.Builder
		for i, tn := range textNodes {
			if i > 0 {
				sb.WriteString("\n")
			}
			tn.collectText(noiseTagRe, &sb)
		}

		context := strings.TrimSpace(sb.String())
		context = leadNumberRe.ReplaceAllString(context, "")

		dependentOn := patent.ParseDependency(context, num)

		status := "original"
		if m := statusRe.FindStringSubmatch(context); m != nil {
			context = strings.Replace(context, m[0], "", 1)
			status = strings.ReplaceAll(strings.ToLower(m[1]), " ", "_")
		}

		context = whitespaceRe.ReplaceAllString(context, " ")
		context = multiSpaceRe.ReplaceAllString(context, " ")
		context = strings.TrimSpace(context)

		claim := patent.AmendedClaim{
			ClaimNumber: num,
			Status:      status,
			DependentOn: dependentOn,
		}
		if len(context) >= 2 {
			c := context
			claim.Context = &c
		} else if status == "original" {
			continue
		}
		history.UpdatedClaims[num] = claim
	}

	if len(history.UpdatedClaims) == 0 {
		return nil, nil
	}
	return history, nil
}
