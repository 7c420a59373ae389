// Package googlepatents scrapes patent pages for title, abstract, claims, and
// description.  Scraped documents are cached on disk per case so re-parsing a
// case never refetches its patents.
package googlepatents

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/lexintel/caselaw-intelligence/internal/domain/patent"
	"github.com/lexintel/caselaw-intelligence/internal/infrastructure/fetch"
	"github.com/lexintel/caselaw-intelligence/internal/infrastructure/monitoring/logging"
	"github.com/lexintel/caselaw-intelligence/internal/infrastructure/storage/jsonstore"
	"github.com/lexintel/caselaw-intelligence/pkg/errors"
)

var (
	claimNumberRe = regexp.MustCompile(`^\s*(\d+)\.\s*`)
	numRangeRe    = regexp.MustCompile(`\d+[-\s]+(\d+)`)
	numBracketRe  = regexp.MustCompile(`[\[()\]]`)
	numLeadRe     = regexp.MustCompile(`(?i)^[a-z0\-]`)
	reissueRe     = regexp.MustCompile(`(?:\.Iaddend\.|\.Iadd\.)+`)
	spaceRunRe    = regexp.MustCompile(` +`)
	descClassRe   = regexp.MustCompile(`description\W+(?:line|paragraph)`)
	titleNoiseRe  = regexp.MustCompile(` - Google Patents|^.*? - `)
)

// cleanText normalizes whitespace and strips reissue markers from scraped
// patent text.
func cleanText(s string) string {
	s = strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' || r == '\r' || r == '\v' || r == '\f' {
			return ' '
		}
		return r
	}, s)
	s = reissueRe.ReplaceAllString(s, " ")
	s = spaceRunRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Scraper fetches and parses patent pages.  It implements
// patent.DataProvider.
type Scraper struct {
	fetcher fetch.Fetcher
	store   *jsonstore.Store
	baseURL string
	logger  logging.Logger

	// IncludeDescription controls whether the description section is kept in
	// the cached document.  Claims extraction does not need it.
	IncludeDescription bool
}

var _ patent.DataProvider = (*Scraper)(nil)

// NewScraper builds a Scraper.  baseURL is the patent site root.
func NewScraper(fetcher fetch.Fetcher, store *jsonstore.Store, baseURL string, log logging.Logger) *Scraper {
	return &Scraper{
		fetcher: fetcher,
		store:   store,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		logger:  log.Named("googlepatents"),
	}
}

// PatentData returns the claims of patentNumber, serving from the per-case
// cache when available.  found is false when the patent page does not exist.
// A page that parses without a title is treated as an invalid patent number;
// it reports found but yields no claims and is not cached.
func (s *Scraper) PatentData(ctx context.Context, patentNumber, caseID string) (bool, map[int]patent.Claim, error) {
	number := strings.ToUpper(patentNumber)

	cached := &patent.Record{}
	if err := s.store.LoadPatentJSON(caseID, number, cached); err == nil {
		return true, cached.Claims, nil
	} else if !errors.IsNotFound(err) {
		return false, nil, err
	}

	url := s.baseURL + "/patent/" + number + "/en"
	_, page, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		if errors.IsNotFound(err) {
			return false, nil, nil
		}
		return false, nil, errors.Wrap(err, errors.ErrCodePatentFetchFailed, "failed to fetch patent page").WithDetail(number)
	}

	record, err := Parse(page)
	if err != nil {
		return false, nil, err
	}
	record.PatentNumber = number
	record.URL = url
	if !s.IncludeDescription {
		record.Description = map[int]string{}
	}

	if record.Title == "" {
		s.logger.Info("invalid patent number detected, not caching",
			logging.String("patent", number), logging.String("case", caseID))
		return true, nil, nil
	}

	if err := s.store.SavePatentJSON(caseID, number, record); err != nil {
		s.logger.Warn("failed to cache patent document",
			logging.String("patent", number), logging.Err(err))
	}
	return true, record.Claims, nil
}

// Parse extracts the patent record from a patent page.
func Parse(page string) (*patent.Record, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeMarkupMalformed, "failed to parse patent html")
	}

	record := &patent.Record{
		Claims:      map[int]patent.Claim{},
		Description: map[int]string{},
	}

	parseClaims(doc, record)
	parseDescription(doc, record)

	var abstracts []string
	doc.Find("div.abstract").Each(func(_ int, sel *goquery.Selection) {
		abstracts = append(abstracts, cleanText(sel.Text()))
	})
	record.Abstract = strings.Join(abstracts, " ")

	if title := doc.Find("h1#title").First(); title.Length() > 0 {
		record.Title = titleNoiseRe.ReplaceAllString(cleanText(title.Text()), "")
	}
	return record, nil
}

func parseClaims(doc *goquery.Document, record *patent.Record) {
	container := doc.Find(".claims").First()
	if container.Length() == 0 {
		return
	}
	// Some pages render claims as a numbered list, where position determines
	// the claim number, and others as divs carrying the number in their text.
	name := goquery.NodeName(container)
	listIndex := name == "ol" || name == "ul"

	container.Children().Each(func(i int, tag *goquery.Selection) {
		switch goquery.NodeName(tag) {
		case "div", "li", "claim":
		default:
			return
		}

		num := 0
		if listIndex {
			num = i + 1
		} else {
			num = claimNumberFromTag(tag, i)
		}

		context := cleanText(tag.Text())
		context = claimNumberRe.ReplaceAllString(context, "")

		claim := patent.Claim{
			ClaimNumber: num,
			Context:     context,
		}
		if num > 1 {
			claim.DependentOn = patent.ParseDependency(context, num)
		}
		record.Claims[num] = claim
	})
}

// claimNumberFromTag recovers the claim number when the text carries no
// leading "N." marker.  Reissue pages put the number in a num attribute,
// sometimes as a cancelled range, in which case the last number wins.
func claimNumberFromTag(tag *goquery.Selection, i int) int {
	if m := claimNumberRe.FindStringSubmatch(tag.Text()); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n
		}
	}

	inner := tag.Find("claim, div.claim").First()
	if inner.Length() > 0 {
		if numAttr, ok := inner.Attr("num"); ok {
			if m := numRangeRe.FindStringSubmatch(numAttr); m != nil {
				if n, err := strconv.Atoi(m[1]); err == nil {
					return n
				}
			}
			cleaned := numBracketRe.ReplaceAllString(numAttr, "")
			cleaned = numLeadRe.ReplaceAllString(cleaned, "")
			if n, err := strconv.Atoi(cleaned); err == nil {
				return n
			}
		}
	}
	return i + 1
}

func parseDescription(doc *goquery.Document, record *patent.Record) {
	n := 0
	doc.Find("div[class]").Each(func(_ int, sel *goquery.Selection) {
		class, _ := sel.Attr("class")
		if !descClassRe.MatchString(class) {
			return
		}
		n++
		record.Description[n] = cleanText(sel.Text())
	})
}
