package prometheus

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexintel/caselaw-intelligence/pkg/errors"
)

func newTestAppMetrics(t *testing.T) (*AppMetrics, MetricsCollector) {
	t.Helper()
	c := newTestCollector(t)
	return NewAppMetrics(c), c
}

func TestNewAppMetrics_AllMetricsRegistered(t *testing.T) {
	m, _ := newTestAppMetrics(t)
	require.NotNil(t, m)

	assert.NotNil(t, m.CasesParsedTotal)
	assert.NotNil(t, m.ParseDuration)
	assert.NotNil(t, m.FetchRequestsTotal)
	assert.NotNil(t, m.PatentsScrapedTotal)
	assert.NotNil(t, m.CacheHitsTotal)
	assert.NotNil(t, m.BatchQueueDepth)
	assert.NotNil(t, m.ErrorsTotal)
}

func TestRecordCaseParsed(t *testing.T) {
	m, c := newTestAppMetrics(t)

	RecordCaseParsed(m, "Federal", true, 300*time.Millisecond)
	RecordCaseParsed(m, "California", false, 50*time.Millisecond)

	output := scrapeMetrics(t, c)
	assert.Contains(t, output, `test_unit_cases_parsed_total{status="ok"} 1`)
	assert.Contains(t, output, `test_unit_cases_parsed_total{status="failed"} 1`)
	assert.Contains(t, output, `test_unit_parse_duration_seconds_count{jurisdiction="Federal"} 1`)
}

func TestRecordFetch(t *testing.T) {
	m, c := newTestAppMetrics(t)

	RecordFetch(m, "scholar", 200, 120*time.Millisecond)
	RecordFetch(m, "scholar", 404, 80*time.Millisecond)
	RecordFetch(m, "patents", 200, 90*time.Millisecond)

	output := scrapeMetrics(t, c)
	assert.Contains(t, output, `test_unit_fetch_requests_total{status="200",target="scholar"} 1`)
	assert.Contains(t, output, `test_unit_fetch_requests_total{status="404",target="scholar"} 1`)
	assert.Contains(t, output, `test_unit_fetch_duration_seconds_count{target="patents"} 1`)
}

func TestRecordCacheAccess(t *testing.T) {
	m, c := newTestAppMetrics(t)

	RecordCacheAccess(m, "pages", true)
	RecordCacheAccess(m, "pages", true)
	RecordCacheAccess(m, "pages", false)

	output := scrapeMetrics(t, c)
	assert.Contains(t, output, `test_unit_cache_hits_total{cache="pages"} 2`)
	assert.Contains(t, output, `test_unit_cache_misses_total{cache="pages"} 1`)
}

func TestRecordError(t *testing.T) {
	m, c := newTestAppMetrics(t)

	RecordError(m, errors.CaseNotFound("missing"))
	RecordError(m, nil)

	output := scrapeMetrics(t, c)
	assert.Contains(t, output, `test_unit_errors_total{code="CASE_001",module="CASE"} 1`)
}

func TestGaugesTrackBatchProgress(t *testing.T) {
	m, c := newTestAppMetrics(t)

	m.BatchQueueDepth.WithLabelValues("federal").Set(40)
	m.ActiveWorkers.WithLabelValues("federal").Inc()
	m.ActiveWorkers.WithLabelValues("federal").Inc()
	m.ActiveWorkers.WithLabelValues("federal").Dec()

	output := scrapeMetrics(t, c)
	assert.Contains(t, output, `test_unit_batch_queue_depth{corpus="federal"} 40`)
	assert.Contains(t, output, `test_unit_active_workers{corpus="federal"} 1`)
}

func TestConcurrentMetricRecording(t *testing.T) {
	m, c := newTestAppMetrics(t)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				RecordFetch(m, "scholar", 200, time.Millisecond)
			}
		}()
	}
	wg.Wait()

	output := scrapeMetrics(t, c)
	assert.Contains(t, output, `test_unit_fetch_requests_total{status="200",target="scholar"} 1000`)
}

func TestMetricsServer(t *testing.T) {
	c := newTestCollector(t)
	srv := NewServer("127.0.0.1:0", "/metrics", c)
	require.NotNil(t, srv)
	require.NoError(t, srv.Close())
}
