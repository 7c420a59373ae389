package parse

import (
	"context"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/lexintel/caselaw-intelligence/internal/domain/opinion"
	"github.com/lexintel/caselaw-intelligence/internal/infrastructure/monitoring/logging"
	"github.com/lexintel/caselaw-intelligence/internal/infrastructure/monitoring/prometheus"
	"github.com/lexintel/caselaw-intelligence/pkg/errors"
)

// CaseResult is the outcome of one document in a batch run.
type CaseResult struct {
	ID     string
	Record *opinion.CaseRecord
	Err    error
}

// BatchResult reports a whole batch run. Results preserve the input order.
type BatchResult struct {
	RunID    string
	Results  []CaseResult
	Parsed   int
	Failed   int
	NotFound int
}

// ParseBatch parses the given case ids or URLs concurrently. One failed
// document never aborts the run; its error is carried in the matching
// result slot. The returned error reports only run-level failures such as
// a lost corpus lock or a cancelled context.
func (s *Service) ParseBatch(ctx context.Context, ids []string) (*BatchResult, error) {
	runID := uuid.NewString()
	log := s.logger.With(logging.String("run_id", runID), logging.Int("cases", len(ids)))

	if s.opts.Lock != nil {
		if err := s.opts.Lock.Acquire(ctx); err != nil {
			return nil, err
		}
		defer func() {
			if err := s.opts.Lock.Release(context.WithoutCancel(ctx)); err != nil {
				log.Warn("failed to release corpus lock", logging.Err(err))
			}
		}()
	}

	concurrency := s.worker.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	result := &BatchResult{
		RunID:   runID,
		Results: make([]CaseResult, len(ids)),
	}

	queue := queueGauge{}
	if s.opts.Metrics != nil {
		queue.depth = s.opts.Metrics.BatchQueueDepth.WithLabelValues(runID)
		queue.workers = s.opts.Metrics.ActiveWorkers.WithLabelValues(runID)
		queue.depth.Set(float64(len(ids)))
		defer queue.depth.Set(0)
	}

	log.Info("starting batch run")
	start := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				result.Results[i] = CaseResult{ID: caseID(id), Err: err}
				return nil
			}
			queue.enter()
			defer queue.leave()

			s.politenessDelay(gctx)
			record, err := s.ParseCase(gctx, id)
			result.Results[i] = CaseResult{ID: caseID(id), Record: record, Err: err}
			if err != nil {
				log.Warn("case failed",
					logging.String("case_id", caseID(id)), logging.Err(err))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return result, err
	}

	for _, r := range result.Results {
		switch {
		case r.Err == nil:
			result.Parsed++
		case errors.IsNotFound(r.Err):
			result.NotFound++
		default:
			result.Failed++
		}
	}

	log.Info("batch run finished",
		logging.Int("parsed", result.Parsed),
		logging.Int("failed", result.Failed),
		logging.Int("not_found", result.NotFound),
		logging.Duration("elapsed", time.Since(start)))
	return result, ctx.Err()
}

// politenessDelay sleeps for a random fraction of the configured maximum so
// batch traffic does not look mechanical.
func (s *Service) politenessDelay(ctx context.Context) {
	if s.opts.Politeness <= 0 {
		return
	}
	d := time.Duration(rand.Int63n(int64(s.opts.Politeness)))
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}

// queueGauge tracks batch progress on the two gauges, tolerating their
// absence.
type queueGauge struct {
	depth   prometheus.Gauge
	workers prometheus.Gauge
}

func (q *queueGauge) enter() {
	if q.workers != nil {
		q.workers.Inc()
	}
}

func (q *queueGauge) leave() {
	if q.workers != nil {
		q.workers.Dec()
	}
}
