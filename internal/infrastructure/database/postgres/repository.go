package postgres

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/lexintel/caselaw-intelligence/internal/domain/opinion"
	"github.com/lexintel/caselaw-intelligence/internal/infrastructure/monitoring/logging"
	"github.com/lexintel/caselaw-intelligence/pkg/errors"
)

// querier is the subset of pgxpool.Pool the repository needs.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// CaseRepository stores case records in the cases table. The full record
// lives in a JSONB column; a few fields are copied into plain columns for
// indexing and listing.
type CaseRepository struct {
	db     querier
	logger logging.Logger
}

var _ opinion.Repository = (*CaseRepository)(nil)

// NewCaseRepository builds a repository on pool.
func NewCaseRepository(pool *Pool, log logging.Logger) *CaseRepository {
	return &CaseRepository{db: pool.Pool(), logger: log.Named("postgres")}
}

func newCaseRepositoryWithQuerier(db querier, log logging.Logger) *CaseRepository {
	return &CaseRepository{db: db, logger: log}
}

// Save upserts record keyed by its ID.
func (r *CaseRepository) Save(ctx context.Context, record *opinion.CaseRecord) error {
	if record == nil || record.ID == "" {
		return errors.InvalidParam("case record must have an id")
	}

	payload, err := json.Marshal(record)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "failed to encode case record")
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO cases (id, case_name, citation, date, court_code, record)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			case_name  = EXCLUDED.case_name,
			citation   = EXCLUDED.citation,
			date       = EXCLUDED.date,
			court_code = EXCLUDED.court_code,
			record     = EXCLUDED.record,
			updated_at = now()`,
		record.ID, record.FullCaseName, record.Citation, record.Date,
		record.Court.CourtCode, payload,
	)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to save case record").WithDetail(record.ID)
	}

	r.logger.Debug("saved case record", logging.String("id", record.ID))
	return nil
}

// Get loads the record with the given id.
func (r *CaseRepository) Get(ctx context.Context, id string) (*opinion.CaseRecord, error) {
	var payload []byte
	err := r.db.QueryRow(ctx, `SELECT record FROM cases WHERE id = $1`, id).Scan(&payload)
	if err == pgx.ErrNoRows {
		return nil, errors.CaseNotFound("no stored case with this id").WithDetail(id)
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to load case record").WithDetail(id)
	}

	record := opinion.NewCaseRecord()
	if err := json.Unmarshal(payload, record); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSerialization, "corrupt case record").WithDetail(id)
	}
	return record, nil
}

// List returns every stored record ordered by id.
func (r *CaseRepository) List(ctx context.Context) ([]*opinion.CaseRecord, error) {
	rows, err := r.db.Query(ctx, `SELECT record FROM cases ORDER BY id`)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to list case records")
	}
	defer rows.Close()

	var records []*opinion.CaseRecord
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to scan case record")
		}
		record := opinion.NewCaseRecord()
		if err := json.Unmarshal(payload, record); err != nil {
			r.logger.Warn("skipping corrupt case record", logging.Err(err))
			continue
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to list case records")
	}
	return records, nil
}

// Delete removes the record with the given id.
func (r *CaseRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM cases WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to delete case record").WithDetail(id)
	}
	if tag.RowsAffected() == 0 {
		return errors.CaseNotFound("no stored case with this id").WithDetail(id)
	}
	return nil
}

// Exists reports whether a record with the given id is stored.
func (r *CaseRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM cases WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to check case record").WithDetail(id)
	}
	return exists, nil
}
