package fetch

import (
	"net/http"
	"net/url"
	"sync"

	"github.com/lexintel/caselaw-intelligence/pkg/errors"
)

// Rotator hands out proxy URLs in round-robin order.  All requests use the
// current proxy until Advance moves to the next one, typically after the
// upstream blocks the current exit address.
type Rotator struct {
	mu      sync.Mutex
	proxies []*url.URL
	idx     int
}

// NewRotator parses the proxy URL list.  At least one proxy is required.
func NewRotator(proxies []string) (*Rotator, error) {
	if len(proxies) == 0 {
		return nil, errors.InvalidParam("at least one proxy url is required")
	}
	parsed := make([]*url.URL, len(proxies))
	for i, p := range proxies {
		u, err := url.Parse(p)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeInvalidParam, "invalid proxy url").WithDetail(p)
		}
		if u.Scheme == "" || u.Host == "" {
			return nil, errors.InvalidParam("proxy url must include scheme and host").WithDetail(p)
		}
		parsed[i] = u
	}
	return &Rotator{proxies: parsed}, nil
}

// Proxy implements http.Transport.Proxy.
func (r *Rotator) Proxy(_ *http.Request) (*url.URL, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.proxies[r.idx], nil
}

// Advance moves to the next proxy in the rotation.
func (r *Rotator) Advance() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.idx = (r.idx + 1) % len(r.proxies)
}

// Current returns the proxy in use, for logging.
func (r *Rotator) Current() *url.URL {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.proxies[r.idx]
}
