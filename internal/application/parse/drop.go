package parse

import (
	"context"
	"sort"
	"strings"

	"github.com/lexintel/caselaw-intelligence/internal/infrastructure/monitoring/logging"
	"github.com/lexintel/caselaw-intelligence/pkg/errors"
)

// DropOptions controls redundant-case pruning.
type DropOptions struct {
	// Remove deletes the matched records. When false the matches are only
	// reported.
	Remove bool

	// RemovePatents also deletes the cached patent documents of removed
	// cases.
	RemovePatents bool

	// External lists additional case ids to remove regardless of the
	// redundancy scan.
	External []string
}

// DropRedundant finds unpublished duplicates of stored cases and returns
// their ids, sorted. Two records are duplicates when they share a
// case-name or docket fingerprint combined with the decision date and
// court code. Published records, recognizable by a short citation, are
// never dropped; duplicates resolve in their favor.
func (s *Service) DropRedundant(ctx context.Context, opts DropOptions) ([]string, error) {
	records, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	var namePrints, docketPrints, ids []string
	for _, record := range records {
		stamp := record.Date + record.Court.CourtCode
		namePrints = append(namePrints, strings.ToLower(record.FullCaseName)+stamp)

		var dockets strings.Builder
		for _, cn := range record.CaseNumbers {
			dockets.WriteString(strings.ToLower(strings.Join(cn.DocketNumber, "")))
		}
		docketPrints = append(docketPrints, dockets.String()+stamp)

		// Published cases carry a short citation and are exempt.
		if len(record.ShortCitation) > 0 {
			ids = append(ids, "")
		} else {
			ids = append(ids, record.ID)
		}
	}

	// The two fingerprint lists are scanned as one, with the id list
	// doubled to keep indices aligned.
	prints := append(append([]string{}, namePrints...), docketPrints...)
	ids = append(append([]string{}, ids...), ids...)

	seen := map[string][]int{}
	for i, p := range prints {
		seen[p] = append(seen[p], i)
	}

	redundant := map[string]struct{}{}
	for _, indices := range seen {
		if len(indices) < 2 {
			continue
		}
		for _, i := range indices {
			if ids[i] != "" {
				redundant[ids[i]] = struct{}{}
			}
		}
	}

	dropped := make([]string, 0, len(redundant))
	for id := range redundant {
		dropped = append(dropped, id)
	}
	sort.Strings(dropped)
	s.logger.Info("redundancy scan finished", logging.Int("redundant", len(dropped)))

	if !opts.Remove {
		return dropped, nil
	}
	for _, id := range dropped {
		s.removeCase(ctx, id, "redundant", opts.RemovePatents)
	}
	for _, id := range opts.External {
		s.removeCase(ctx, id, "external", opts.RemovePatents)
	}
	return dropped, nil
}

func (s *Service) removeCase(ctx context.Context, id, label string, removePatents bool) {
	if err := s.store.Delete(ctx, id); err != nil && !errors.IsNotFound(err) {
		s.logger.Warn("failed to delete case record",
			logging.String("case_id", id), logging.Err(err))
		return
	}
	if removePatents {
		if err := s.store.DeletePatentData(id); err != nil {
			s.logger.Warn("failed to delete patent data",
				logging.String("case_id", id), logging.Err(err))
		}
	}
	if s.opts.Mirror != nil {
		if err := s.opts.Mirror.Delete(ctx, id); err != nil && !errors.IsNotFound(err) {
			s.logger.Warn("failed to delete mirrored record",
				logging.String("case_id", id), logging.Err(err))
		}
	}
	s.logger.Info("removed case data",
		logging.String("case_id", id), logging.String("reason", label))
}
