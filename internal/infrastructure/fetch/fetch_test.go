package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexintel/caselaw-intelligence/internal/config"
	"github.com/lexintel/caselaw-intelligence/internal/infrastructure/monitoring/logging"
	"github.com/lexintel/caselaw-intelligence/pkg/errors"
)

func testConfig(baseURL string) config.FetchConfig {
	return config.FetchConfig{
		ScholarBaseURL: baseURL,
		UserAgent:      "test-agent/1.0",
		Timeout:        5 * time.Second,
		MaxRetries:     2,
		RetryWait:      10 * time.Millisecond,
	}
}

func TestNormalizeURL(t *testing.T) {
	base := "https://scholar.example.com"
	cases := []struct {
		in   string
		want string
	}{
		{"123456789", base + "/scholar_case?case=123456789"},
		{"scholar_case?case=42", base + "/scholar_case?case=42"},
		{"/scholar_case?case=42", base + "/scholar_case?case=42"},
		{"https://other.example.com/page", "https://other.example.com/page"},
		{"http://other.example.com/page", "http://other.example.com/page"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, NormalizeURL(base, c.in), c.in)
	}
}

func TestClient_Fetch_Success(t *testing.T) {
	var gotUA, gotReferer string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotReferer = r.Header.Get("Referer")
		w.Write([]byte("<html>opinion</html>"))
	}))
	defer srv.Close()

	c, err := NewClient(testConfig(srv.URL), logging.NewNopLogger())
	require.NoError(t, err)

	url, page, err := c.Fetch(context.Background(), "123456789")
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/scholar_case?case=123456789", url)
	assert.Equal(t, "<html>opinion</html>", page)
	assert.Equal(t, "test-agent/1.0", gotUA)
	assert.Equal(t, srv.URL+"/", gotReferer)
}

func TestClient_Fetch_NotFoundDoesNotRetry(t *testing.T) {
	var requests int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c, err := NewClient(testConfig(srv.URL), logging.NewNopLogger())
	require.NoError(t, err)

	_, _, err = c.Fetch(context.Background(), "999")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
	assert.Equal(t, int32(1), atomic.LoadInt32(&requests))
}

func TestClient_Fetch_RetriesServerError(t *testing.T) {
	var requests int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&requests, 1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte("recovered"))
	}))
	defer srv.Close()

	c, err := NewClient(testConfig(srv.URL), logging.NewNopLogger())
	require.NoError(t, err)

	_, page, err := c.Fetch(context.Background(), "123")
	require.NoError(t, err)
	assert.Equal(t, "recovered", page)
	assert.Equal(t, int32(2), atomic.LoadInt32(&requests))
}

func TestClient_Fetch_BlockedPageFailsAfterRetries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>Please show you're not a robot</html>`))
	}))
	defer srv.Close()

	c, err := NewClient(testConfig(srv.URL), logging.NewNopLogger())
	require.NoError(t, err)

	_, _, err = c.Fetch(context.Background(), "123")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeExternalService))
}

func TestClient_Fetch_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.RetryWait = time.Minute
	c, err := NewClient(cfg, logging.NewNopLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, _, err = c.Fetch(ctx, "123")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeTimeout))
}

func TestRotator_RoundRobin(t *testing.T) {
	r, err := NewRotator([]string{
		"http://proxy-a.example.com:8080",
		"http://proxy-b.example.com:8080",
	})
	require.NoError(t, err)

	u, err := r.Proxy(nil)
	require.NoError(t, err)
	assert.Equal(t, "proxy-a.example.com:8080", u.Host)

	r.Advance()
	assert.Equal(t, "proxy-b.example.com:8080", r.Current().Host)

	r.Advance()
	assert.Equal(t, "proxy-a.example.com:8080", r.Current().Host)
}

func TestRotator_RejectsInvalidInput(t *testing.T) {
	_, err := NewRotator(nil)
	assert.Error(t, err)

	_, err = NewRotator([]string{"not a proxy"})
	assert.Error(t, err)
}
