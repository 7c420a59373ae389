package prometheus

import (
	"net/http"
	"strconv"
	"time"

	"github.com/lexintel/caselaw-intelligence/pkg/errors"
)

// AppMetrics holds the toolkit's metrics: case parsing, page fetching,
// patent enrichment, cache behavior, and batch progress.
type AppMetrics struct {
	CasesParsedTotal  CounterVec
	ParseDuration     HistogramVec
	CasesNotFound     CounterVec
	CitationsResolved CounterVec

	FetchRequestsTotal CounterVec
	FetchDuration      HistogramVec
	FetchRetriesTotal  CounterVec

	PatentsScrapedTotal CounterVec
	ClaimsExtracted     HistogramVec

	CacheHitsTotal   CounterVec
	CacheMissesTotal CounterVec

	BatchQueueDepth GaugeVec
	ActiveWorkers   GaugeVec
	StoreWrites     CounterVec

	ErrorsTotal CounterVec
}

var (
	// ParseDurationBuckets spans quick local parses to slow remote ones.
	ParseDurationBuckets = []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60}
	// FetchDurationBuckets covers typical page round trips plus retry tails.
	FetchDurationBuckets = []float64{.1, .25, .5, 1, 2.5, 5, 10, 30, 60, 120}
	// ClaimCountBuckets covers the usual size range of a claim set.
	ClaimCountBuckets = []float64{0, 1, 5, 10, 20, 50, 100, 200}
)

// NewAppMetrics registers every metric on collector.
func NewAppMetrics(collector MetricsCollector) *AppMetrics {
	m := &AppMetrics{}

	m.CasesParsedTotal = collector.RegisterCounter("cases_parsed_total", "Parsed case pages", "status")
	m.ParseDuration = collector.RegisterHistogram("parse_duration_seconds", "Case parse duration", ParseDurationBuckets, "jurisdiction")
	m.CasesNotFound = collector.RegisterCounter("cases_not_found_total", "Case pages that returned 404", "source")
	m.CitationsResolved = collector.RegisterCounter("citations_resolved_total", "Citations tokenized from case text", "published")

	m.FetchRequestsTotal = collector.RegisterCounter("fetch_requests_total", "Outbound page fetches", "target", "status")
	m.FetchDuration = collector.RegisterHistogram("fetch_duration_seconds", "Fetch round-trip duration", FetchDurationBuckets, "target")
	m.FetchRetriesTotal = collector.RegisterCounter("fetch_retries_total", "Fetch retry attempts", "target")

	m.PatentsScrapedTotal = collector.RegisterCounter("patents_scraped_total", "Patent pages scraped", "status")
	m.ClaimsExtracted = collector.RegisterHistogram("claims_extracted", "Claims per scraped patent", ClaimCountBuckets, "source")

	m.CacheHitsTotal = collector.RegisterCounter("cache_hits_total", "Cache hits", "cache")
	m.CacheMissesTotal = collector.RegisterCounter("cache_misses_total", "Cache misses", "cache")

	m.BatchQueueDepth = collector.RegisterGauge("batch_queue_depth", "Cases waiting in the batch queue", "corpus")
	m.ActiveWorkers = collector.RegisterGauge("active_workers", "Workers currently parsing", "corpus")
	m.StoreWrites = collector.RegisterCounter("store_writes_total", "Case records written", "backend", "status")

	m.ErrorsTotal = collector.RegisterCounter("errors_total", "Errors by module and code", "module", "code")

	return m
}

// RecordCaseParsed counts one parse outcome and its duration.
func RecordCaseParsed(m *AppMetrics, jurisdiction string, ok bool, duration time.Duration) {
	status := "ok"
	if !ok {
		status = "failed"
	}
	m.CasesParsedTotal.WithLabelValues(status).Inc()
	m.ParseDuration.WithLabelValues(jurisdiction).Observe(duration.Seconds())
}

// RecordFetch counts one outbound fetch.
func RecordFetch(m *AppMetrics, target string, statusCode int, duration time.Duration) {
	m.FetchRequestsTotal.WithLabelValues(target, strconv.Itoa(statusCode)).Inc()
	m.FetchDuration.WithLabelValues(target).Observe(duration.Seconds())
}

// RecordCacheAccess counts a hit or miss on the named cache.
func RecordCacheAccess(m *AppMetrics, cache string, hit bool) {
	if hit {
		m.CacheHitsTotal.WithLabelValues(cache).Inc()
		return
	}
	m.CacheMissesTotal.WithLabelValues(cache).Inc()
}

// RecordError counts err under its module and code labels.  Non-AppError
// values land in module UNKNOWN.
func RecordError(m *AppMetrics, err error) {
	if err == nil {
		return
	}
	code := errors.GetCode(err)
	m.ErrorsTotal.WithLabelValues(errors.ModuleForCode(code), string(code)).Inc()
}

// Server serves the metrics endpoint.
type Server struct {
	srv *http.Server
}

// NewServer builds an HTTP server exposing collector's metrics at path.
func NewServer(addr, path string, collector MetricsCollector) *Server {
	mux := http.NewServeMux()
	mux.Handle(path, collector.Handler())
	return &Server{srv: &http.Server{Addr: addr, Handler: mux}}
}

// Start blocks serving metrics until Close is called.
func (s *Server) Start() error {
	err := s.srv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Close shuts the server down.
func (s *Server) Close() error {
	return s.srv.Close()
}
