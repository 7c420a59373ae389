// Package fetch retrieves opinion and patent pages over HTTP.  It normalizes
// case identifiers into Scholar URLs, sends browser-like headers, retries
// transient failures, and optionally routes requests through rotating proxies.
package fetch

import (
	"context"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/lexintel/caselaw-intelligence/internal/config"
	"github.com/lexintel/caselaw-intelligence/internal/infrastructure/monitoring/logging"
	"github.com/lexintel/caselaw-intelligence/pkg/errors"
)

// Fetcher retrieves the page at a URL or case identifier.  It returns the
// resolved URL alongside the body so callers can key caches and logs by the
// canonical address.
type Fetcher interface {
	Fetch(ctx context.Context, urlOrID string) (url string, page string, err error)
}

// ErrBlocked is returned when the upstream serves its anti-robot interstitial
// instead of the requested page.
var ErrBlocked = errors.New(errors.ErrCodeExternalService, "request blocked by anti-robot check")

var justNumberRe = regexp.MustCompile(`^\d+$`)

// blockedMarkers are fragments of the interstitial page served in place of
// real content when the upstream rate-limits a client.
var blockedMarkers = []string{
	"show you're not a robot",
	"/sorry/index",
}

// NormalizeURL resolves a bare case ID or relative path against base.
// Full URLs pass through unchanged.
func NormalizeURL(base, urlOrID string) string {
	switch {
	case justNumberRe.MatchString(urlOrID):
		return strings.TrimSuffix(base, "/") + "/scholar_case?case=" + urlOrID
	case strings.HasPrefix(urlOrID, "http://"), strings.HasPrefix(urlOrID, "https://"):
		return urlOrID
	default:
		return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(urlOrID, "/")
	}
}

// Client fetches pages directly over HTTP.
type Client struct {
	cfg     config.FetchConfig
	http    *http.Client
	rotator *Rotator
	logger  logging.Logger
}

// NewClient builds a Client from cfg.  When cfg.Proxies is non-empty requests
// are routed through the proxies in round-robin order, advancing on a block.
func NewClient(cfg config.FetchConfig, log logging.Logger) (*Client, error) {
	c := &Client{
		cfg:    cfg,
		logger: log.Named("fetch"),
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if len(cfg.Proxies) > 0 {
		rotator, err := NewRotator(cfg.Proxies)
		if err != nil {
			return nil, err
		}
		c.rotator = rotator
		transport.Proxy = rotator.Proxy
	}

	c.http = &http.Client{
		Timeout:   cfg.Timeout,
		Transport: transport,
	}
	return c, nil
}

// Fetch retrieves the page for urlOrID.  404 responses fail immediately with
// a not-found error; transient failures (5xx, 429, network errors, blocked
// interstitials) are retried up to cfg.MaxRetries times with cfg.RetryWait
// between attempts.
func (c *Client) Fetch(ctx context.Context, urlOrID string) (string, string, error) {
	url := NormalizeURL(c.cfg.ScholarBaseURL, urlOrID)

	var lastErr error
	for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			c.logger.Debug("retrying fetch",
				logging.String("url", url),
				logging.Int("attempt", attempt),
				logging.Err(lastErr))
			select {
			case <-ctx.Done():
				return url, "", errors.Wrap(ctx.Err(), errors.ErrCodeTimeout, "fetch cancelled")
			case <-time.After(c.cfg.RetryWait):
			}
		}

		page, err := c.fetchOnce(ctx, url)
		if err == nil {
			return url, page, nil
		}
		if errors.IsNotFound(err) {
			return url, "", err
		}
		if errors.IsCode(err, errors.ErrCodeExternalService) && c.rotator != nil {
			c.rotator.Advance()
		}
		lastErr = err
	}
	return url, "", errors.Wrap(lastErr, errors.ErrCodeExternalService, "fetch failed after retries").WithDetail(url)
}

func (c *Client) fetchOnce(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeInvalidParam, "invalid fetch url")
	}
	setBrowserHeaders(req, c.cfg)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeExternalService, "request failed")
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", errors.CaseNotFound("page not found").WithDetail(url)
	case resp.StatusCode != http.StatusOK:
		return "", errors.New(errors.ErrCodeExternalService, "unexpected status").
			WithDetail(url + " status=" + resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeExternalService, "failed to read response body")
	}
	page := string(body)
	if isBlocked(page) {
		return "", ErrBlocked.WithDetail(url)
	}
	return page, nil
}

func setBrowserHeaders(req *http.Request, cfg config.FetchConfig) {
	req.Header.Set("User-Agent", cfg.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	req.Header.Set("Referer", strings.TrimSuffix(cfg.ScholarBaseURL, "/")+"/")
}

func isBlocked(page string) bool {
	for _, marker := range blockedMarkers {
		if strings.Contains(page, marker) {
			return true
		}
	}
	return false
}
