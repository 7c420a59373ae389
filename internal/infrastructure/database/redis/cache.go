package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/lexintel/caselaw-intelligence/internal/infrastructure/monitoring/logging"
	"github.com/lexintel/caselaw-intelligence/pkg/errors"
)

// ErrCacheMiss is returned by Get when no entry exists for the key.
var ErrCacheMiss = errors.New(errors.ErrCodeNotFound, "cache miss")

// notFoundSentinel marks a URL that previously returned HTTP 404, so repeat
// requests for a dead case or patent page are answered from the cache.
const notFoundSentinel = "__404__"

// opTimeout bounds individual cache commands when the caller's context has no
// deadline of its own.
const opTimeout = 5 * time.Second

// PageCache stores fetched HTML pages keyed by URL.  Pages are large and
// already text, so values are stored raw rather than JSON-encoded.
type PageCache struct {
	client *Client
	logger logging.Logger
	prefix string
	ttl    time.Duration
	jitter bool
	group  singleflight.Group
}

// PageCacheOption configures a PageCache.
type PageCacheOption func(*PageCache)

// WithKeyPrefix overrides the key namespace prefix.
func WithKeyPrefix(prefix string) PageCacheOption {
	return func(c *PageCache) { c.prefix = prefix }
}

// WithTTL overrides the entry lifetime.
func WithTTL(ttl time.Duration) PageCacheOption {
	return func(c *PageCache) { c.ttl = ttl }
}

// WithoutJitter disables TTL randomization.  Tests use this so expirations
// are deterministic.
func WithoutJitter() PageCacheOption {
	return func(c *PageCache) { c.jitter = false }
}

// NewPageCache builds a PageCache over client.
func NewPageCache(client *Client, log logging.Logger, opts ...PageCacheOption) *PageCache {
	c := &PageCache{
		client: client,
		logger: log.Named("pagecache"),
		prefix: "caselaw",
		ttl:    72 * time.Hour,
		jitter: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Key returns the redis key for a URL.  URLs can exceed redis key-length
// comfort and contain query strings, so they are hashed.
func (c *PageCache) Key(url string) string {
	sum := sha256.Sum256([]byte(url))
	return c.prefix + ":page:" + hex.EncodeToString(sum[:16])
}

// entryTTL spreads expirations by up to 10% so a batch run's entries do not
// all expire in the same instant.
func (c *PageCache) entryTTL() time.Duration {
	if !c.jitter {
		return c.ttl
	}
	spread := float64(c.ttl) * 0.1 * (rand.Float64()*2 - 1)
	return c.ttl + time.Duration(spread)
}

// Get returns the cached page for url.  It returns ErrCacheMiss when the key
// is absent and a CodeCaseNotFound error when a 404 was previously recorded
// for the URL.
func (c *PageCache) Get(ctx context.Context, url string) (string, error) {
	rdb, err := c.client.cmdable()
	if err != nil {
		return "", err
	}
	ctx, cancel := withTimeout(ctx, opTimeout)
	defer cancel()

	val, err := rdb.Get(ctx, c.Key(url)).Result()
	if err == redis.Nil {
		return "", ErrCacheMiss
	}
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeCacheError, "cache get failed")
	}
	if val == notFoundSentinel {
		return "", errors.CaseNotFound("url previously returned 404").WithDetail(url)
	}
	return val, nil
}

// Set stores the page for url.
func (c *PageCache) Set(ctx context.Context, url, page string) error {
	rdb, err := c.client.cmdable()
	if err != nil {
		return err
	}
	ctx, cancel := withTimeout(ctx, opTimeout)
	defer cancel()

	if err := rdb.Set(ctx, c.Key(url), page, c.entryTTL()).Err(); err != nil {
		return errors.Wrap(err, errors.ErrCodeCacheError, "cache set failed")
	}
	return nil
}

// SetNotFound records that url returned 404 so later lookups skip the fetch.
func (c *PageCache) SetNotFound(ctx context.Context, url string) error {
	rdb, err := c.client.cmdable()
	if err != nil {
		return err
	}
	ctx, cancel := withTimeout(ctx, opTimeout)
	defer cancel()

	if err := rdb.Set(ctx, c.Key(url), notFoundSentinel, c.entryTTL()).Err(); err != nil {
		return errors.Wrap(err, errors.ErrCodeCacheError, "cache set failed")
	}
	return nil
}

// Delete removes the cached entries for the given URLs.
func (c *PageCache) Delete(ctx context.Context, urls ...string) error {
	if len(urls) == 0 {
		return nil
	}
	rdb, err := c.client.cmdable()
	if err != nil {
		return err
	}
	ctx, cancel := withTimeout(ctx, opTimeout)
	defer cancel()

	keys := make([]string, len(urls))
	for i, u := range urls {
		keys[i] = c.Key(u)
	}
	if err := rdb.Del(ctx, keys...).Err(); err != nil {
		return errors.Wrap(err, errors.ErrCodeCacheError, "cache delete failed")
	}
	return nil
}

// GetOrFetch returns the cached page for url, calling fetch on a miss.
// Concurrent callers for the same URL are collapsed into a single fetch.
// A fetch that fails with a not-found error is recorded as a 404 so the dead
// URL is not retried until the entry expires.
func (c *PageCache) GetOrFetch(ctx context.Context, url string, fetch func(context.Context) (string, error)) (string, error) {
	page, err := c.Get(ctx, url)
	if err == nil {
		return page, nil
	}
	if !errors.IsCode(err, errors.ErrCodeNotFound) {
		return "", err
	}

	v, err, _ := c.group.Do(c.Key(url), func() (interface{}, error) {
		page, fetchErr := fetch(ctx)
		if fetchErr != nil {
			if errors.IsNotFound(fetchErr) {
				if cacheErr := c.SetNotFound(ctx, url); cacheErr != nil {
					c.logger.Warn("failed to record 404", logging.String("url", url), logging.Err(cacheErr))
				}
			}
			return "", fetchErr
		}
		if cacheErr := c.Set(ctx, url, page); cacheErr != nil {
			c.logger.Warn("failed to cache page", logging.String("url", url), logging.Err(cacheErr))
		}
		return page, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}
