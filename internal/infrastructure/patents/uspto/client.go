// Package uspto talks to the patent examination data endpoints to resolve
// application continuity and amended claim sets from prosecution history.
package uspto

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/lexintel/caselaw-intelligence/internal/config"
	"github.com/lexintel/caselaw-intelligence/internal/domain/patent"
	"github.com/lexintel/caselaw-intelligence/internal/infrastructure/monitoring/logging"
	"github.com/lexintel/caselaw-intelligence/pkg/errors"
)

const maxAttempts = 3

var nonWordRe = regexp.MustCompile(`\W`)

// Client implements patent.ContinuityProvider and patent.HistoryProvider over
// the examination data API.
type Client struct {
	cfg    config.USPTOConfig
	http   *http.Client
	logger logging.Logger
}

var (
	_ patent.ContinuityProvider = (*Client)(nil)
	_ patent.HistoryProvider    = (*Client)(nil)
)

// NewClient builds a Client from cfg.
func NewClient(cfg config.USPTOConfig, log logging.Logger) *Client {
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: log.Named("uspto"),
	}
}

// applicationWrapper mirrors the continuity fields of the file wrapper
// response.
type applicationWrapper struct {
	PatentFileWrapperDataBag []struct {
		ChildContinuityBag []struct {
			ChildPatentNumber          string `json:"childPatentNumber"`
			ChildApplicationNumberText string `json:"childApplicationNumberText"`
		} `json:"childContinuityBag"`
	} `json:"patentFileWrapperDataBag"`
}

// documentMetadata mirrors the transaction-history document listing.
type documentMetadata struct {
	ErrorBag  []string `json:"errorBag"`
	ResultBag []struct {
		DocumentBag []documentEntry `json:"documentBag"`
	} `json:"resultBag"`
}

type documentEntry struct {
	DocumentIdentifier string   `json:"documentIdentifier"`
	DocumentCode       string   `json:"documentCode"`
	MimeTypeBag        []string `json:"mimeTypeBag"`
	OfficialDate       string   `json:"officialDate"`
}

// ChildNumbers returns the patent and application numbers continuing from
// applicationNumber, in wrapper order.  Patent numbers precede application
// numbers within each continuity entry.
func (c *Client) ChildNumbers(ctx context.Context, applicationNumber string) ([]string, error) {
	appl := nonWordRe.ReplaceAllString(applicationNumber, "")
	body, err := c.getJSON(ctx, c.cfg.BaseURL+"/applications/"+appl)
	if err != nil {
		return nil, err
	}

	wrapper := applicationWrapper{}
	if err := json.Unmarshal(body, &wrapper); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeContinuityUnavailable, "malformed continuity response").WithDetail(appl)
	}
	if len(wrapper.PatentFileWrapperDataBag) == 0 {
		return nil, nil
	}

	var numbers []string
	for _, child := range wrapper.PatentFileWrapperDataBag[0].ChildContinuityBag {
		if child.ChildPatentNumber != "" {
			numbers = append(numbers, child.ChildPatentNumber)
		}
		if child.ChildApplicationNumberText != "" {
			numbers = append(numbers, child.ChildApplicationNumberText)
		}
	}
	return numbers, nil
}

// ClaimHistory fetches the amended claim set in force around closeToDate.
// The transaction history is filtered to CLM documents with an XML rendition;
// among those the document dated closest to closeToDate wins.  Applications
// with no qualifying document return nil without error.
func (c *Client) ClaimHistory(ctx context.Context, applicationNumber, closeToDate string) (*patent.ClaimHistory, error) {
	appl := nonWordRe.ReplaceAllString(applicationNumber, "")
	body, err := c.getJSON(ctx, c.cfg.BaseURL+"/applications/"+appl+"/documents")
	if err != nil {
		return nil, err
	}

	meta := documentMetadata{}
	if err := json.Unmarshal(body, &meta); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeClaimParseFailed, "malformed document metadata").WithDetail(appl)
	}
	if len(meta.ErrorBag) > 0 || len(meta.ResultBag) == 0 {
		return nil, nil
	}

	var candidates []documentEntry
	for _, doc := range meta.ResultBag[0].DocumentBag {
		if doc.DocumentCode != "CLM" {
			continue
		}
		for _, mime := range doc.MimeTypeBag {
			if mime == "XML" {
				candidates = append(candidates, doc)
				break
			}
		}
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	chosen := closestDocument(candidates, closeToDate)
	xmlBody, err := c.get(ctx, c.cfg.BaseURL+"/applications/"+appl+"/documents/"+chosen.DocumentIdentifier, "application/xml")
	if err != nil {
		return nil, err
	}
	return ParseCLM(strings.NewReader(string(xmlBody)))
}

// closestDocument picks the entry whose official date is nearest to target.
// Undated entries lose to dated ones; with no usable dates the first entry
// wins.
func closestDocument(docs []documentEntry, target string) documentEntry {
	targetTime, err := parseDate(target)
	if err != nil {
		return docs[0]
	}
	best, bestDiff := docs[0], int64(-1)
	for _, doc := range docs {
		ts, err := parseDate(doc.OfficialDate)
		if err != nil {
			continue
		}
		diff := targetTime.Unix() - ts.Unix()
		if diff < 0 {
			diff = -diff
		}
		if bestDiff < 0 || diff < bestDiff {
			best, bestDiff = doc, diff
		}
	}
	return best
}

var dateLayouts = []string{"2006-01-02", time.RFC3339, "01-02-2006"}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if len(s) >= 10 {
		if t, err := time.Parse("2006-01-02", s[:10]); err == nil {
			return t, nil
		}
	}
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func (c *Client) getJSON(ctx context.Context, url string) ([]byte, error) {
	return c.get(ctx, url, "application/json")
}

// get performs a GET with Retry-After handling: a 429 response is waited out
// and retried up to maxAttempts times.
func (c *Client) get(ctx context.Context, url, accept string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeInvalidParam, "invalid uspto url")
		}
		req.Header.Set("Accept", accept)
		req.Header.Set("Content-Type", "application/json")
		if c.cfg.APIKey != "" {
			req.Header.Set("X-API-KEY", c.cfg.APIKey)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeExternalService, "uspto request failed")
		}
		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusTooManyRequests:
			wait := retryAfter(resp)
			c.logger.Info("uspto rate limit hit",
				logging.String("url", url), logging.Duration("wait", wait))
			lastErr = errors.New(errors.ErrCodeExternalService, "rate limited").WithDetail(url)
			select {
			case <-ctx.Done():
				return nil, errors.Wrap(ctx.Err(), errors.ErrCodeTimeout, "uspto request cancelled")
			case <-time.After(wait):
			}
			continue
		case resp.StatusCode == http.StatusNotFound:
			return nil, errors.New(errors.ErrCodeContinuityUnavailable, "application not found").WithDetail(url)
		case resp.StatusCode != http.StatusOK:
			return nil, errors.New(errors.ErrCodeExternalService, "unexpected uspto status").
				WithDetail(url + " status=" + resp.Status)
		case readErr != nil:
			return nil, errors.Wrap(readErr, errors.ErrCodeExternalService, "failed to read uspto response")
		}
		return body, nil
	}
	return nil, errors.Wrap(lastErr, errors.ErrCodeExternalService, "uspto retries exhausted")
}

func retryAfter(resp *http.Response) time.Duration {
	if v := resp.Header.Get("Retry-After"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return time.Second
}
