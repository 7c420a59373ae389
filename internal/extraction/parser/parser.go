// Package parser turns one court-opinion page into a structured case
// record. Parsing is a fixed pipeline of stages over the opinion markup;
// each stage either fills record fields or rewrites the tree with sentinel
// labels ("@@@@[n]" footnote markers, "####<id>[n]" citation markers,
// paragraph and blockquote delimiters) that downstream stages and the
// training-text consumers rely on. Stage order is part of the contract:
// citation markers must exist before italic case names are resolved, and
// claim extraction must run before footnotes are serialized out of the
// tree.
package parser

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/lexintel/caselaw-intelligence/internal/domain/opinion"
	"github.com/lexintel/caselaw-intelligence/internal/domain/patent"
	"github.com/lexintel/caselaw-intelligence/internal/extraction/pattern"
	"github.com/lexintel/caselaw-intelligence/internal/infrastructure/monitoring/logging"
	"github.com/lexintel/caselaw-intelligence/pkg/errors"
)

// Sentinel labels woven into the opinion text.
const (
	footnoteLabel   = "@@@@"
	citationLabel   = "####"
	paragraphLabel  = "$$$$"
	blockquoteOpen  = "$qq$"
	blockquoteClose = "$/qq$"
	preOpen         = "$rr$"
	preClose        = "$/rr$"
)

// caseParamRe matches the case id query parameter of any scholar URL.
var caseParamRe = regexp.MustCompile(`case=(\d+)`)

// Config controls the patent-side lookups performed during a parse.
type Config struct {
	// SkipPatent disables fetching claim text for issued patents; the
	// patents-in-suit list still records the numbers.
	SkipPatent bool

	// SkipApplication disables fetching amended claims from prosecution
	// history for cited application numbers.
	SkipApplication bool
}

// Parser extracts case records from opinion pages. The patent providers may
// be nil, in which case the corresponding lookups are skipped.
type Parser struct {
	log        logging.Logger
	patents    patent.DataProvider
	continuity patent.ContinuityProvider
	history    patent.HistoryProvider
}

// New constructs a Parser. Nil providers disable the matching lookup rather
// than failing the parse.
func New(log logging.Logger, data patent.DataProvider, continuity patent.ContinuityProvider, history patent.HistoryProvider) *Parser {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Parser{
		log:        log.Named("parser"),
		patents:    data,
		continuity: continuity,
		history:    history,
	}
}

// run carries the mutable state of a single parse.
type run struct {
	p   *Parser
	ctx context.Context
	cfg Config
	log logging.Logger

	page     *goquery.Document
	pageRoot *html.Node
	root     *html.Node

	rec *opinion.CaseRecord

	// links is the snapshot of anchor tags taken before any rewriting;
	// marker identifiers are assigned by position in this list.
	links []*html.Node

	prioritized []priorityCite
	decided     time.Time

	// patentNumbers and patentRefs are filled by the claim resolver.
	patentNumbers []patent.Number
	patentRefs    map[string]struct{}
	patentRefSeq  []string
}

// Parse extracts the case record from rawHTML. The returned record is fully
// populated; an error means the page is not a parseable opinion document.
func (p *Parser) Parse(ctx context.Context, rawHTML string, cfg Config) (*opinion.CaseRecord, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeMarkupMalformed, "opinion page is not parseable html")
	}

	op := doc.Find("#gs_opinion").First()
	if op.Length() == 0 {
		return nil, errors.MarkupMalformed("opinion container not found")
	}
	op.Find("#gs_dont_print").Remove()

	r := &run{
		p:          p,
		ctx:        ctx,
		cfg:        cfg,
		log:        p.log,
		page:       doc,
		pageRoot:   doc.Get(0),
		root:       op.Get(0),
		rec:        opinion.NewCaseRecord(),
		patentRefs: map[string]struct{}{},
	}

	snapshot, err := goquery.OuterHtml(op)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeMarkupMalformed, "failed to render opinion html")
	}
	r.rec.HTML = snapshot
	r.links = findAll(r.root, "a")

	if err := r.getID(); err != nil {
		return nil, err
	}
	r.log = p.log.With(logging.String("case_id", r.rec.ID))

	r.replaceFootnotes()
	r.fullCasename()
	r.pages()
	r.shortCitation()
	r.consolidateBrokenTags()
	r.replaceATags()
	r.decisionDate()
	if err := r.citationDetails(); err != nil {
		return nil, err
	}
	r.judges()
	r.patentsInSuit()
	r.serializeFootnotes()
	r.replaceGenericTags()
	r.trainingText()
	r.personalOpinion()

	r.log.Info("parsed opinion",
		logging.String("citation", r.rec.Citation),
		logging.String("court", r.rec.Court.CourtCode),
		logging.Int("cited_cases", len(r.rec.CitesTo)),
		logging.Int("patents_in_suit", len(r.rec.PatentsInSuit)))
	return r.rec, nil
}

// getID resolves the numeric case id, trying the toolbar link, the canonical
// link, and finally any anchor carrying a case parameter.
func (r *run) getID() error {
	if tb := r.page.Find("#gs_tbar_lt").First(); tb.Length() > 0 {
		raw, err := goquery.OuterHtml(tb)
		if err == nil {
			if m := pattern.CaseID.Find(raw); m != nil {
				r.rec.ID = m[1]
				return nil
			}
		}
	}
	if href, ok := r.page.Find(`link[rel="canonical"]`).First().Attr("href"); ok {
		if m := caseParamRe.FindStringSubmatch(href); m != nil {
			r.rec.ID = m[1]
			return nil
		}
	}
	var found string
	r.page.Find("a").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, ok := s.Attr("href")
		if !ok {
			return true
		}
		if m := caseParamRe.FindStringSubmatch(href); m != nil {
			found = m[1]
			return false
		}
		return true
	})
	if found != "" {
		r.rec.ID = found
		return nil
	}
	return errors.MarkupMalformed("could not extract case id from the page")
}
