package parser

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/lexintel/caselaw-intelligence/internal/domain/court"
	"github.com/lexintel/caselaw-intelligence/internal/domain/opinion"
	"github.com/lexintel/caselaw-intelligence/internal/extraction/pattern"
	"github.com/lexintel/caselaw-intelligence/internal/extraction/text"
	"github.com/lexintel/caselaw-intelligence/pkg/errors"
)

// docketEntry pairs one docket number with the related-case id it belongs
// to. The id is empty when the header link carries none.
type docketEntry struct {
	id     string
	docket string
}

// citationDetails resolves the citation and court, back-fills the docket
// placeholder for unpublished cases, and serializes the case numbers.
func (r *run) citationDetails() error {
	citation, identity, err := r.citor()
	if err != nil {
		return err
	}
	detail, ok := court.Lookup(identity)
	if !ok {
		return errors.CourtUnresolvable("no court entry for citation identity").WithDetail(identity)
	}
	r.rec.Court = detail

	if strings.Contains(citation, "XXXXXX") {
		if nums := r.docketNumbers(r.pageRoot); len(nums) > 0 {
			citation = strings.Replace(citation, "XXXXXX", nums[0], 1)
		} else {
			r.log.Warn("unpublished case with no docket number in header")
		}
	}
	r.rec.Citation = citation

	// Group docket numbers under their related-case id, keeping the order
	// the header lists them in.
	index := map[string]int{}
	for _, e := range r.docketEntries(r.root) {
		if i, ok := index[e.id]; ok {
			r.rec.CaseNumbers[i].DocketNumber = append(r.rec.CaseNumbers[i].DocketNumber, e.docket)
			continue
		}
		var id *string
		if e.id != "" {
			v := e.id
			id = &v
		}
		index[e.id] = len(r.rec.CaseNumbers)
		r.rec.CaseNumbers = append(r.rec.CaseNumbers, opinion.CaseNumber{
			ID:           id,
			DocketNumber: []string{e.docket},
		})
	}
	return nil
}

// docketNumbers extracts just the docket numbers from the header under
// root.
func (r *run) docketNumbers(root *html.Node) []string {
	nums, _ := r.extractDockets(root)
	return nums
}

// docketEntries pairs each docket number with a related-case id. When the
// header lists more dockets than ids, the ids repeat in round-robin order.
func (r *run) docketEntries(root *html.Node) []docketEntry {
	nums, ids := r.extractDockets(root)
	if len(nums) == 0 {
		return nil
	}
	if len(ids) == 0 {
		ids = []string{""}
	}
	entries := make([]docketEntry, 0, len(nums))
	for i, n := range nums {
		entries = append(entries, docketEntry{id: ids[i%len(ids)], docket: n})
	}
	return entries
}

func (r *run) extractDockets(root *html.Node) (nums, ids []string) {
	header := firstCenterAnchor(root)
	if header == nil {
		return nil, nil
	}

	ids = []string{""}
	if href := attrVal(header, "href"); href != "" {
		if m := pattern.RelatedDocketParam.Find(href); m != nil {
			ids = strings.Split(m[1], "+")
		}
	}

	headerText := nodeText(header)
	code := r.rec.Court.CourtCode
	jurisdiction := r.rec.Court.Jurisdiction

	if jurisdiction == "F" && code != "" {
		if code == court.SupremeCourtCode {
			nums = pattern.DocketSupreme.Re.FindAllString(headerText, -1)
		} else {
			nums = appealsDockets(headerText)
		}
	}
	if len(nums) == 0 {
		// Generic header: strip the prefix clutter and split on commas.
		s := pattern.DocketPrefix.Sub(headerText)
		s = pattern.DocketParen.Sub(s)
		s = pattern.AndToComma.Sub(s)
		nums = []string{s}
	}

	for i := range nums {
		nums[i] = text.TrimExtra(nums[i])
	}

	// A "-NNN" continuation shares the year prefix of the number before it.
	fixed := make([]string, 0, len(nums))
	for i, d := range nums {
		if strings.HasPrefix(d, "-") && i > 0 {
			fixed = append(fixed, strings.SplitN(nums[i-1], "-", 2)[0]+d)
			continue
		}
		fixed = append(fixed, d)
	}
	return fixed, ids
}

// appealsDockets matches the appellate docket shape. The grammar consumes
// the ", " or ", and " context in front of a continuation fragment, so a
// match not starting with a digit is cut back to its "-NNN" tail.
func appealsDockets(s string) []string {
	var out []string
	for _, m := range pattern.DocketAppeals.Re.FindAllString(s, -1) {
		if m != "" && (m[0] < '0' || m[0] > '9') {
			if i := strings.Index(m, "-"); i >= 0 {
				m = m[i:]
			}
		}
		out = append(out, m)
	}
	return out
}

// firstCenterAnchor returns the first anchor directly under a center block,
// where the related-cases header lives.
func firstCenterAnchor(root *html.Node) *html.Node {
	for _, c := range findAll(root, "center") {
		for n := c.FirstChild; n != nil; n = n.NextSibling {
			if isElement(n, "a") {
				return n
			}
		}
	}
	return nil
}
