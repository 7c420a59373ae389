package parse

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/lexintel/caselaw-intelligence/internal/domain/opinion"
	"github.com/lexintel/caselaw-intelligence/internal/infrastructure/monitoring/logging"
	"github.com/lexintel/caselaw-intelligence/pkg/errors"
)

var csvHeader = []string{
	"  #  ", "Case", "Date",
	"Court Full Name", "Court Short Name", "Court Code", "Jurisdiction", "URL",
}

// ListSummaries returns one row per stored case, newest first. Records
// whose date fails to parse sort last.
func (s *Service) ListSummaries(ctx context.Context) ([]*opinion.Summary, error) {
	records, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]*opinion.Summary, 0, len(records))
	for _, record := range records {
		summaries = append(summaries, &opinion.Summary{
			ID:       record.ID,
			Name:     record.FullCaseName,
			Citation: record.Citation,
			Date:     record.Date,
			Court:    record.Court,
			URL:      s.CaseURL(record.ID),
		})
	}
	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].Date > summaries[j].Date
	})
	return summaries, nil
}

// ExportCSV writes the corpus listing to <data_dir>/csv/<name>.csv and
// returns the file path. The format matches the historical corpus exports:
// tab-separated with every field quoted.
func (s *Service) ExportCSV(ctx context.Context, name string) (string, error) {
	summaries, err := s.ListSummaries(ctx)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	writeCSVRow(&sb, csvHeader)
	for i, summary := range summaries {
		writeCSVRow(&sb, []string{
			strconv.Itoa(i + 1),
			summary.Citation,
			summary.Date,
			summary.Court.FullName,
			summary.Court.ShortName,
			summary.Court.CourtCode,
			summary.Court.Jurisdiction,
			summary.URL,
		})
	}

	if err := os.MkdirAll(s.store.CSVDir(), 0o755); err != nil {
		return "", errors.Wrap(err, errors.ErrCodeStorageError, "failed to create csv directory")
	}
	path := filepath.Join(s.store.CSVDir(), name+".csv")
	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return "", errors.Wrap(err, errors.ErrCodeStorageError, "failed to write csv").WithDetail(path)
	}

	s.logger.Info("exported case list",
		logging.String("path", path), logging.Int("cases", len(summaries)))
	return path, nil
}

// writeCSVRow writes one tab-separated row with every field quoted.
// encoding/csv only quotes on demand, and the downstream consumers of these
// exports expect unconditional quoting.
func writeCSVRow(sb *strings.Builder, fields []string) {
	for i, f := range fields {
		if i > 0 {
			sb.WriteByte('\t')
		}
		sb.WriteByte('"')
		sb.WriteString(strings.ReplaceAll(f, `"`, `""`))
		sb.WriteByte('"')
	}
	sb.WriteByte('\n')
}
