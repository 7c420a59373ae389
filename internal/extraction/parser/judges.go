package parser

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"github.com/lexintel/caselaw-intelligence/internal/domain/court"
	"github.com/lexintel/caselaw-intelligence/internal/extraction/pattern"
	"github.com/lexintel/caselaw-intelligence/internal/extraction/text"
)

// judgeParagraphClean is the cleanup applied before deciding whether a
// paragraph is the panel line.
var judgeParagraphClean = pattern.Rules{
	pattern.PageMarker,
	pattern.FootnoteTag,
	pattern.JudgeClean1,
}

var (
	apostropheLetterRe = regexp.MustCompile(`['’]\w`)
	lowerWordDotRe     = regexp.MustCompile(`\b[a-z]+\.`)
)

// locateJudgeParagraph finds the first paragraph that reads like a panel
// line ("Before: ...", "SMITH, Circuit Judge.").
func (r *run) locateJudgeParagraph() *html.Node {
	for _, p := range findAll(r.root, "p") {
		if len(findAll(p, "h2")) > 0 {
			continue
		}
		t := judgeParagraphClean.Apply(nodeText(p))
		if pattern.JudgeHonorific.Match(t) {
			return p
		}
	}
	return nil
}

// judges extracts the panel names. Supreme Court panels are skipped; the
// full bench hears every case.
func (r *run) judges() {
	tag := r.locateJudgeParagraph()
	if tag == nil || r.rec.Court.CourtCode == court.SupremeCourtCode {
		return
	}

	s := judgeParagraphClean.Apply(nodeText(tag))
	s = pattern.JudgeClean2.Sub(s)
	s = pattern.JudgeAnd.Sub(s)
	s = text.TrimExtra(s)
	s = pattern.JudgeClean3.Sub(s)

	var names []string
	for _, tok := range strings.Split(s, ",") {
		tok = strings.ReplaceAll(text.TrimCommaSpace(tok), ":", "")
		if tok == "" {
			continue
		}
		// Generational suffixes and numeral tokens belong to the name
		// before them.
		if (pattern.RomanNumeral.Match(tok) || pattern.NameSuffix.Match(tok)) && len(names) > 0 {
			names[len(names)-1] += ", " + tok
			continue
		}
		names = append(names, tok)
	}

	for i, name := range names {
		names[i] = normalizeJudgeName(name)
	}
	r.rec.Judges = names
}

// normalizeJudgeName title-cases a name while keeping numeral tokens
// ("III") intact, then restores capitals after apostrophes ("O'Brien") and
// in abbreviated particles before a period.
func normalizeJudgeName(name string) string {
	words := strings.Fields(name)
	for i, w := range words {
		if pattern.RomanNumeral.Match(w) {
			continue
		}
		words[i] = capitalize(strings.ToLower(w))
	}
	out := strings.Join(words, " ")
	out = apostropheLetterRe.ReplaceAllStringFunc(out, func(m string) string {
		runes := []rune(m)
		return string(runes[:len(runes)-1]) + strings.ToUpper(string(runes[len(runes)-1]))
	})
	out = lowerWordDotRe.ReplaceAllStringFunc(out, func(m string) string {
		return capitalize(m)
	})
	return out
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
