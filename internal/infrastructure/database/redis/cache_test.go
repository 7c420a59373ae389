package redis

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexintel/caselaw-intelligence/internal/infrastructure/monitoring/logging"
	"github.com/lexintel/caselaw-intelligence/pkg/errors"
)

const testTTL = time.Hour

func newTestCache(t *testing.T) (*PageCache, redismock.ClientMock) {
	t.Helper()
	client, mock := newTestClient(t)
	cache := NewPageCache(client, logging.NewNopLogger(), WithTTL(testTTL), WithoutJitter())
	return cache, mock
}

func TestPageCache_GetHit(t *testing.T) {
	cache, mock := newTestCache(t)
	url := "https://scholar.example.com/scholar_case?case=123"
	mock.ExpectGet(cache.Key(url)).SetVal("<html>opinion</html>")

	page, err := cache.Get(context.Background(), url)
	require.NoError(t, err)
	assert.Equal(t, "<html>opinion</html>", page)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPageCache_GetMiss(t *testing.T) {
	cache, mock := newTestCache(t)
	url := "https://scholar.example.com/scholar_case?case=456"
	mock.ExpectGet(cache.Key(url)).RedisNil()

	_, err := cache.Get(context.Background(), url)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestPageCache_GetCachedNotFound(t *testing.T) {
	cache, mock := newTestCache(t)
	url := "https://scholar.example.com/scholar_case?case=dead"
	mock.ExpectGet(cache.Key(url)).SetVal(notFoundSentinel)

	_, err := cache.Get(context.Background(), url)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeCaseNotFound))
}

func TestPageCache_Set(t *testing.T) {
	cache, mock := newTestCache(t)
	url := "https://scholar.example.com/scholar_case?case=789"
	mock.ExpectSet(cache.Key(url), "<html/>", testTTL).SetVal("OK")

	require.NoError(t, cache.Set(context.Background(), url, "<html/>"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPageCache_Delete(t *testing.T) {
	cache, mock := newTestCache(t)
	a, b := "https://example.com/a", "https://example.com/b"
	mock.ExpectDel(cache.Key(a), cache.Key(b)).SetVal(2)

	require.NoError(t, cache.Delete(context.Background(), a, b))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPageCache_GetOrFetch_MissFetchesAndCaches(t *testing.T) {
	cache, mock := newTestCache(t)
	url := "https://scholar.example.com/scholar_case?case=321"
	mock.ExpectGet(cache.Key(url)).RedisNil()
	mock.ExpectSet(cache.Key(url), "<html>fetched</html>", testTTL).SetVal("OK")

	calls := 0
	page, err := cache.GetOrFetch(context.Background(), url, func(context.Context) (string, error) {
		calls++
		return "<html>fetched</html>", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "<html>fetched</html>", page)
	assert.Equal(t, 1, calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPageCache_GetOrFetch_HitSkipsFetch(t *testing.T) {
	cache, mock := newTestCache(t)
	url := "https://scholar.example.com/scholar_case?case=654"
	mock.ExpectGet(cache.Key(url)).SetVal("<html>cached</html>")

	page, err := cache.GetOrFetch(context.Background(), url, func(context.Context) (string, error) {
		t.Fatal("fetch should not run on a cache hit")
		return "", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "<html>cached</html>", page)
}

func TestPageCache_GetOrFetch_RecordsNotFound(t *testing.T) {
	cache, mock := newTestCache(t)
	url := "https://scholar.example.com/scholar_case?case=gone"
	mock.ExpectGet(cache.Key(url)).RedisNil()
	mock.ExpectSet(cache.Key(url), notFoundSentinel, testTTL).SetVal("OK")

	_, err := cache.GetOrFetch(context.Background(), url, func(context.Context) (string, error) {
		return "", errors.CaseNotFound("gone").WithDetail(url)
	})
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPageCache_KeyIsStable(t *testing.T) {
	cache, _ := newTestCache(t)
	url := "https://scholar.example.com/scholar_case?case=123"
	assert.Equal(t, cache.Key(url), cache.Key(url))
	assert.NotEqual(t, cache.Key(url), cache.Key(url+"&hl=en"))
}
