package parser

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/lexintel/caselaw-intelligence/internal/domain/patent"
	"github.com/lexintel/caselaw-intelligence/internal/extraction/pattern"
	"github.com/lexintel/caselaw-intelligence/internal/extraction/text"
	"github.com/lexintel/caselaw-intelligence/internal/infrastructure/monitoring/logging"
)

var (
	nonWordExceptSlashRe = regexp.MustCompile(`[^0-9A-Za-z_/]`)
	nonDigitRe           = regexp.MustCompile(`[^0-9]+`)
	throughRe            = regexp.MustCompile(` ?through ?`)
	looseRangeRe         = regexp.MustCompile(`(\d+)[\- ]+(\d+)`)
	nonClaimCharRe       = regexp.MustCompile(`[^0-9\-]+`)
	numRangeRe           = regexp.MustCompile(`^(\d+)-(\d+)$`)
	digitRunRe           = regexp.MustCompile(`(\d+)`)
)

// claimList is the claim numbers cited against one patent reference, keyed
// by the reference digits and kept in discovery order.
type claimList struct {
	keys   []string
	values map[string][]string
}

func newClaimList() *claimList {
	return &claimList{values: map[string][]string{}}
}

func (c *claimList) add(key, value string) {
	if existing, ok := c.values[key]; ok {
		for _, v := range existing {
			if v == value {
				return
			}
		}
		c.values[key] = append(existing, value)
		return
	}
	c.keys = append(c.keys, key)
	c.values[key] = []string{value}
}

func (c *claimList) has(key string) bool {
	_, ok := c.values[key]
	return ok
}

func (c *claimList) set(key string, value []string) {
	if !c.has(key) {
		c.keys = append(c.keys, key)
	}
	c.values[key] = value
}

func (c *claimList) delete(key string) {
	if !c.has(key) {
		return
	}
	delete(c.values, key)
	for i, k := range c.keys {
		if k == key {
			c.keys = append(c.keys[:i], c.keys[i+1:]...)
			break
		}
	}
}

// patentsInSuit resolves the patents argued in the case and the claims the
// opinion cites against each, fetching claim text and prosecution history
// through the configured providers.
func (r *run) patentsInSuit() {
	claims := r.claimNumbers()

	for _, key := range claims.keys {
		cited := claims.values[key]
		for _, p := range r.patentNumbers {
			if !(p.Patent != "" && strings.HasSuffix(p.Patent, key)) &&
				!(p.Application != "" && strings.HasSuffix(p.Application, key)) {
				continue
			}

			found := false
			var claimSet map[int]patent.Claim
			if p.Patent != "" && !r.cfg.SkipPatent && r.p.patents != nil {
				var err error
				found, claimSet, err = r.p.patents.PatentData(r.ctx, p.Patent, r.rec.ID)
				if err != nil {
					r.log.Warn("patent data fetch failed",
						logging.String("patent_number", p.Patent), logging.Err(err))
					found, claimSet = false, nil
				}
			}

			mixed := map[int]struct{}{}
			for n := range claimSet {
				mixed[n] = struct{}{}
			}

			var extra []patent.ClaimHistory
			if !r.cfg.SkipApplication && p.Application != "" && r.p.history != nil {
				h, err := r.p.history.ClaimHistory(r.ctx, p.Application, r.rec.Date)
				if err != nil {
					r.log.Warn("claim history fetch failed",
						logging.String("application_number", p.Application), logging.Err(err))
				} else if h != nil {
					extra = append(extra, *h)
					for n := range h.UpdatedClaims {
						mixed[n] = struct{}{}
					}
				}
			}

			// A patent with no claim set on record contributes nothing;
			// another cited number may still carry this reference.
			if len(mixed) == 0 {
				continue
			}

			var citedClaims []int
			for _, v := range cited {
				if !pattern.JustDigits.Match(v) {
					continue
				}
				n, err := strconv.Atoi(v)
				if err != nil {
					continue
				}
				if _, ok := mixed[n]; ok {
					citedClaims = append(citedClaims, n)
				}
			}

			var patentNumber, applicationNumber *string
			if p.Patent != "" {
				v := p.Patent
				patentNumber = &v
			}
			if p.Application != "" {
				v := p.Application
				applicationNumber = &v
			}
			r.rec.PatentsInSuit = append(r.rec.PatentsInSuit, patent.InSuit{
				PatentNumber:      patentNumber,
				ApplicationNumber: applicationNumber,
				PatentFound:       found,
				Claims:            claimSet,
				Extra:             extra,
				CitedClaims:       citedClaims,
			})
			break
		}
	}
}

// claimNumbers extracts every claim citation from the opinion text, with
// footnote bodies inlined so claims argued in notes still count.
func (r *run) claimNumbers() *claimList {
	footData, footTags := r.detachFootnoteBodies()

	modified := nodeText(r.root)
	modified = pattern.PageBreakNoise.Sub(modified)
	modified = pattern.PageMarker.Sub(modified)
	modified = text.Collapse(modified)

	r.reattachFootnoteBodies(footTags)

	for name, body := range footData {
		modified = strings.ReplaceAll(modified, footnoteLabel+name, body)
	}

	r.collectPatentNumbers(modified)

	// Blank mangled "United States Patent N" runs so loose digits do not
	// masquerade as claim numbers.
	modified = pattern.PatentNumberLoose.Sub(modified)

	claims := newClaimList()

	// First grammar: claim lists anchored to a quoted reference number.
	buf := []byte(modified)
	for _, m := range pattern.ClaimsAnchored.FindAllIndex(modified) {
		list := modified[m[2]:m[3]]
		filler := modified[m[4]:m[5]]
		ref := modified[m[6]:m[7]]
		if strings.Contains(strings.ToLower(filler), "claim") ||
			strings.Contains(modified[m[0]:m[1]], "##") {
			continue
		}
		claims.add(ref, normalizeClaimList(list))
		for i := m[2]; i < m[3]; i++ {
			buf[i] = 'X'
		}
	}
	modified = string(buf)

	refs := pattern.PatentReference.FindAllIndex(modified)
	refLocations := make([]int, 0, len(refs))
	refTexts := make([]string, 0, len(refs))
	for _, m := range refs {
		refLocations = append(refLocations, m[0])
		refTexts = append(refTexts, modified[m[0]:m[1]])
	}

	if len(refLocations) > 0 {
		// Second grammar: claim lists at large, attached to the nearest
		// reference by text distance.
		for _, m := range pattern.ClaimsAtLarge.FindAllIndex(modified) {
			list := modified[m[2]:m[3]]
			idx := closestRef(refLocations, m[2])
			key := nonDigitRe.ReplaceAllString(refTexts[idx], "")
			claims.add(key, normalizeClaimList(list))
		}
		// References argued without claim numbers still name a patent in
		// suit.
		for _, ref := range r.patentRefSeq {
			if !claims.has(ref) {
				claims.set(ref, []string{""})
			}
		}
	} else {
		// No numeric references at all: a collective "the patents" marker
		// or a lone patent still names the suit patents.
		collective := pattern.PatentCollectiveRef.Find(modified)
		if (collective != nil && len(r.patentNumbers) > 0) || len(r.patentNumbers) == 1 {
			for _, p := range r.patentNumbers {
				for _, num := range []string{p.Patent, p.Application} {
					if num == "" {
						continue
					}
					ref := num[len(num)-3:]
					if !claims.has(ref) {
						claims.set(ref, []string{""})
						r.addPatentRef(ref)
					}
					break
				}
				// A singular collective marker names exactly one patent.
				if collective != nil && collective[2] == "" {
					break
				}
			}
		}
	}

	// Expand ranges and order the claim numbers.
	for _, key := range claims.keys {
		var flat []string
		for _, v := range claims.values[key] {
			if v == "" {
				continue
			}
			flat = append(flat, strings.Fields(hyphenToNumbers(v))...)
		}
		if len(flat) > 0 {
			flat = text.Dedup(flat)
			sort.SliceStable(flat, func(i, j int) bool { return numericLess(flat[i], flat[j]) })
			claims.set(key, flat)
		}
	}

	// When both a patent and the application it issued from are cited, the
	// patent absorbs the application's claims.
	for _, p := range r.patentNumbers {
		if p.Patent == "" || p.Application == "" {
			continue
		}
		pk, ak := p.Patent[len(p.Patent)-3:], p.Application[len(p.Application)-3:]
		if claims.has(pk) && claims.has(ak) {
			var merged []string
			for _, v := range append(append([]string{}, claims.values[ak]...), claims.values[pk]...) {
				if v != "" {
					merged = append(merged, v)
				}
			}
			claims.set(pk, text.Dedup(merged))
			claims.delete(ak)
		}
	}

	return claims
}

// detachFootnoteBodies pulls the bottom footnote paragraphs out of the tree
// and returns their text keyed by anchor name, so the flat opinion text can
// be computed without them and the markers inlined afterwards.
func (r *run) detachFootnoteBodies() (map[string]string, []*html.Node) {
	smalls := findAll(r.root, "small")
	if len(smalls) == 0 {
		return nil, nil
	}
	data := map[string]string{}
	var tags []*html.Node
	for _, a := range findAll(smalls[len(smalls)-1], "a") {
		if !hasClass(a, "gsl_hash") || a.Parent == nil {
			continue
		}
		parent := a.Parent
		tags = append(tags, parent)
		detach(parent)
		data[attrVal(a, "name")] = text.TrimSpace(nodeText(parent))
	}
	return data, tags
}

func (r *run) reattachFootnoteBodies(tags []*html.Node) {
	smalls := findAll(r.root, "small")
	if len(smalls) == 0 {
		return
	}
	for _, t := range tags {
		smalls[0].AppendChild(t)
	}
}

// collectPatentNumbers finds every cited patent or application number and
// resolves application numbers to issued patents through the continuity
// provider.
func (r *run) collectPatentNumbers(modified string) {
	var numbers []string
	for _, m := range pattern.PatentNumberCited.FindAll(modified) {
		n := nonWordExceptSlashRe.ReplaceAllString(m[1], "")
		if n != "US" {
			numbers = append(numbers, n)
		}
	}
	numbers = text.Dedup(numbers)

	for _, m := range pattern.PatentReference.FindAll(modified) {
		for _, g := range []string{m[1], m[2]} {
			if g != "" {
				r.addPatentRef(g)
			}
		}
	}

	if len(numbers) == 0 {
		return
	}
	for _, n := range numbers {
		r.patentNumbers = append(r.patentNumbers, r.patentFromApplication(n)...)
	}
}

func (r *run) addPatentRef(ref string) {
	if _, ok := r.patentRefs[ref]; ok {
		return
	}
	r.patentRefs[ref] = struct{}{}
	r.patentRefSeq = append(r.patentRefSeq, ref)
}

// patentFromApplication resolves a cited number to (patent, application)
// pairs. A slash marks an application number; its continuity children that
// the opinion references by short number become the issued patents.
func (r *run) patentFromApplication(number string) []patent.Number {
	std := pattern.PatentNumberStrip.Sub(number)
	if !strings.Contains(number, "/") {
		return []patent.Number{{Patent: "US" + std}}
	}

	if r.p.continuity == nil {
		return []patent.Number{{Application: std}}
	}
	children, err := r.p.continuity.ChildNumbers(r.ctx, std)
	if err != nil {
		r.log.Warn("continuity lookup failed",
			logging.String("application_number", std), logging.Err(err))
		return []patent.Number{{Application: std}}
	}
	if len(children) == 0 {
		return []patent.Number{{Application: std}}
	}
	var out []patent.Number
	for _, kn := range children {
		if r.isCited(kn) {
			out = append(out, patent.Number{Patent: "US" + kn, Application: std})
		} else {
			out = append(out, patent.Number{Application: std})
		}
	}
	return out
}

// isCited reports whether the opinion references the number by its last
// three or four digits.
func (r *run) isCited(number string) bool {
	if len(number) >= 3 {
		if _, ok := r.patentRefs[number[len(number)-3:]]; ok {
			return true
		}
	}
	if len(number) >= 4 {
		if _, ok := r.patentRefs[number[len(number)-4:]]; ok {
			return true
		}
	}
	return false
}

// normalizeClaimList reduces a cited claim phrase to digits, ranges, and
// spaces: "1, 2 and 5 through 7" becomes "1 2 5-7".
func normalizeClaimList(list string) string {
	s := throughRe.ReplaceAllString(list, "-")
	s = looseRangeRe.ReplaceAllString(s, "$1-$2")
	s = nonClaimCharRe.ReplaceAllString(s, " ")
	return text.Clean(s)
}

// closestRef picks the reference whose text position is nearest the claim
// phrase, by absolute distance in either direction.
func closestRef(offsets []int, target int) int {
	best, bestDist := 0, -1
	for i, off := range offsets {
		d := target - off
		if d < 0 {
			d = -d
		}
		if bestDist < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// hyphenToNumbers expands "3-5" into "3 4 5", leaving plain numbers alone.
func hyphenToNumbers(s string) string {
	var out []string
	for _, tok := range strings.Fields(s) {
		tok = strings.Trim(tok, "-")
		if m := numRangeRe.FindStringSubmatch(tok); m != nil {
			a, _ := strconv.Atoi(m[1])
			b, _ := strconv.Atoi(m[2])
			for n := a; n <= b; n++ {
				out = append(out, strconv.Itoa(n))
			}
			continue
		}
		out = append(out, strings.ReplaceAll(tok, "-", ""))
	}
	return strings.Join(out, " ")
}

// numericLess orders strings by their embedded integer values, falling back
// to lexicographic order for equal numbers.
func numericLess(a, b string) bool {
	ai := digitRunRe.FindString(a)
	bi := digitRunRe.FindString(b)
	if ai != "" && bi != "" {
		an, _ := strconv.Atoi(ai)
		bn, _ := strconv.Atoi(bi)
		if an != bn {
			return an < bn
		}
	}
	return a < b
}
