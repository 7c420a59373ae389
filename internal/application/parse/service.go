// Package parse orchestrates the corpus workflows: fetching and parsing
// opinions, concurrent batch runs, citation bundling, summary export, and
// pruning of redundant records. The parsing pipeline itself lives in
// internal/extraction/parser; this package wires it to fetchers, stores,
// patent providers and metrics.
package parse

import (
	"context"
	"strings"
	"time"

	"github.com/lexintel/caselaw-intelligence/internal/config"
	"github.com/lexintel/caselaw-intelligence/internal/domain/opinion"
	"github.com/lexintel/caselaw-intelligence/internal/extraction/parser"
	"github.com/lexintel/caselaw-intelligence/internal/extraction/pattern"
	"github.com/lexintel/caselaw-intelligence/internal/infrastructure/database/redis"
	"github.com/lexintel/caselaw-intelligence/internal/infrastructure/fetch"
	"github.com/lexintel/caselaw-intelligence/internal/infrastructure/monitoring/logging"
	"github.com/lexintel/caselaw-intelligence/internal/infrastructure/monitoring/prometheus"
	"github.com/lexintel/caselaw-intelligence/internal/infrastructure/storage/jsonstore"
	"github.com/lexintel/caselaw-intelligence/pkg/errors"
)

// Options carries the optional service collaborators. Nil fields disable the
// matching feature rather than failing.
type Options struct {
	// Mirror receives a copy of every saved record, for the optional
	// Postgres backend.
	Mirror opinion.Repository

	// Metrics records batch progress. Nil skips instrumentation.
	Metrics *prometheus.AppMetrics

	// Lock guards batch runs against concurrent workers on the same
	// corpus.
	Lock *redis.RunLock

	// Politeness is the maximum random delay inserted between fetches in
	// a batch run. Zero disables the delay.
	Politeness time.Duration
}

// Service runs the corpus workflows over one configured corpus.
type Service struct {
	fetcher fetch.Fetcher
	store   *jsonstore.Store
	parser  *parser.Parser
	cfg     config.ParseConfig
	worker  config.WorkerConfig
	base    string
	opts    Options
	logger  logging.Logger
}

// NewService wires the orchestration service. base is the scholar base URL
// used to reconstruct case links for summaries.
func NewService(
	f fetch.Fetcher,
	store *jsonstore.Store,
	p *parser.Parser,
	base string,
	parseCfg config.ParseConfig,
	workerCfg config.WorkerConfig,
	opts Options,
	log logging.Logger,
) *Service {
	return &Service{
		fetcher: f,
		store:   store,
		parser:  p,
		cfg:     parseCfg,
		worker:  workerCfg,
		base:    strings.TrimSuffix(base, "/"),
		opts:    opts,
		logger:  log.Named("parse"),
	}
}

// CaseURL returns the scholar link for a case id.
func (s *Service) CaseURL(id string) string {
	return s.base + "/scholar_case?case=" + id
}

// caseID extracts the numeric case id from a scholar URL, or returns the
// input when it is already a bare id.
func caseID(urlOrID string) string {
	if m := pattern.CaseID.Find(urlOrID); m != nil {
		return m[1]
	}
	return urlOrID
}

// ParseCase fetches, parses and stores one opinion. A page that returns 404
// is recorded in the corpus 404 log and the not-found error is returned.
func (s *Service) ParseCase(ctx context.Context, urlOrID string) (*opinion.CaseRecord, error) {
	start := time.Now()

	url, page, err := s.fetcher.Fetch(ctx, urlOrID)
	if err != nil {
		if errors.IsNotFound(err) {
			id := caseID(urlOrID)
			if logErr := s.store.Record404(id); logErr != nil {
				s.logger.Warn("failed to record 404", logging.String("case_id", id), logging.Err(logErr))
			}
			if s.opts.Metrics != nil {
				s.opts.Metrics.CasesNotFound.WithLabelValues("scholar").Inc()
			}
		}
		return nil, err
	}

	record, err := s.parser.Parse(ctx, page, parser.Config{
		SkipPatent:      s.cfg.SkipPatent,
		SkipApplication: s.cfg.SkipApplication,
	})
	if s.opts.Metrics != nil {
		jurisdiction := ""
		if record != nil {
			jurisdiction = record.Court.Jurisdiction
		}
		prometheus.RecordCaseParsed(s.opts.Metrics, jurisdiction, err == nil, time.Since(start))
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeUnknown, "failed to parse opinion").WithDetail(url)
	}

	if err := s.store.Save(ctx, record); err != nil {
		return nil, err
	}
	if s.opts.Mirror != nil {
		if err := s.opts.Mirror.Save(ctx, record); err != nil {
			s.logger.Warn("failed to mirror case record",
				logging.String("case_id", record.ID), logging.Err(err))
		}
	}
	return record, nil
}

// Summary returns the listing row for a case, parsing the page first when
// the record is not stored yet.
func (s *Service) Summary(ctx context.Context, id string) (*opinion.Summary, error) {
	record, err := s.store.Get(ctx, id)
	if errors.IsNotFound(err) {
		s.logger.Info("case not stored, downloading", logging.String("case_id", id))
		record, err = s.ParseCase(ctx, id)
	}
	if err != nil {
		return nil, err
	}

	return &opinion.Summary{
		ID:       record.ID,
		Name:     record.FullCaseName,
		Citation: record.Citation,
		Date:     record.Date,
		Court:    record.Court,
		URL:      s.CaseURL(record.ID),
	}, nil
}
