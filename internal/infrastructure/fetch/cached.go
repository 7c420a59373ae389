package fetch

import (
	"context"

	"github.com/lexintel/caselaw-intelligence/internal/infrastructure/database/redis"
)

// CachedFetcher serves pages from a redis cache, delegating to the wrapped
// Fetcher on a miss.  Previously recorded 404s short-circuit without a
// network round trip.
type CachedFetcher struct {
	inner Fetcher
	cache *redis.PageCache
	base  string
}

// NewCachedFetcher wraps inner with cache.  base is the Scholar base URL used
// to normalize case IDs into cache keys.
func NewCachedFetcher(inner Fetcher, cache *redis.PageCache, base string) *CachedFetcher {
	return &CachedFetcher{inner: inner, cache: cache, base: base}
}

// Fetch implements Fetcher.
func (f *CachedFetcher) Fetch(ctx context.Context, urlOrID string) (string, string, error) {
	url := NormalizeURL(f.base, urlOrID)
	page, err := f.cache.GetOrFetch(ctx, url, func(ctx context.Context) (string, error) {
		_, page, err := f.inner.Fetch(ctx, urlOrID)
		return page, err
	})
	if err != nil {
		return url, "", err
	}
	return url, page, nil
}
