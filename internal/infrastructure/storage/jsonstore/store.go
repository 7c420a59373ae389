// Package jsonstore persists parsed case records as JSON files.  The layout
// under the data directory mirrors the corpus conventions downstream tooling
// expects:
//
//	<data_dir>/json/json_<suffix>/<case_id>.json   parsed case records
//	<data_dir>/json/404_<suffix>.json              case IDs that returned 404
//	<data_dir>/patent/patent_<suffix>/<case_id>/   cached patent documents
//	<data_dir>/csv/                                summary exports
package jsonstore

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/lexintel/caselaw-intelligence/internal/domain/opinion"
	"github.com/lexintel/caselaw-intelligence/internal/infrastructure/monitoring/logging"
	"github.com/lexintel/caselaw-intelligence/pkg/errors"
)

// Store is a file-backed opinion.Repository.
type Store struct {
	dataDir string
	suffix  string
	logger  logging.Logger

	// mu serializes read-modify-write cycles on the shared 404 file.
	mu sync.Mutex
}

var _ opinion.Repository = (*Store)(nil)

// New builds a Store rooted at dataDir.  suffix labels the corpus folders so
// corpora built with different settings can coexist under one data directory.
func New(dataDir, suffix string, log logging.Logger) *Store {
	return &Store{
		dataDir: dataDir,
		suffix:  suffix,
		logger:  log.Named("jsonstore"),
	}
}

// CaseDir returns the directory holding parsed case records.
func (s *Store) CaseDir() string {
	return filepath.Join(s.dataDir, "json", "json_"+s.suffix)
}

// JSONDir returns the parent directory of all JSON artifacts, where the
// citation bundle and 404 log live.
func (s *Store) JSONDir() string {
	return filepath.Join(s.dataDir, "json")
}

// CSVDir returns the directory for summary exports.
func (s *Store) CSVDir() string {
	return filepath.Join(s.dataDir, "csv")
}

// PatentDir returns the directory for cached patent documents of a case.
func (s *Store) PatentDir(caseID string) string {
	return filepath.Join(s.dataDir, "patent", "patent_"+s.suffix, caseID)
}

func (s *Store) casePath(id string) string {
	return filepath.Join(s.CaseDir(), id+".json")
}

func (s *Store) notFoundPath() string {
	return filepath.Join(s.JSONDir(), "404_"+s.suffix+".json")
}

// writeJSON writes v to path via a temp file and rename so a crash mid-write
// never leaves a truncated record behind.
func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "failed to encode json")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, errors.ErrCodeStorageError, "failed to create directory")
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return errors.Wrap(err, errors.ErrCodeStorageError, "failed to write file").WithDetail(path)
	}
	if err := os.Rename(tmp, path); err != nil {
		return errors.Wrap(err, errors.ErrCodeStorageError, "failed to rename temp file").WithDetail(path)
	}
	return nil
}

func readJSON(path string, dest interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.NotFound("file not found").WithDetail(path)
		}
		return errors.Wrap(err, errors.ErrCodeStorageError, "failed to read file").WithDetail(path)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "failed to decode json").WithDetail(path)
	}
	return nil
}

// Save writes the case record to <case_id>.json.
func (s *Store) Save(_ context.Context, record *opinion.CaseRecord) error {
	if record == nil || record.ID == "" {
		return errors.InvalidParam("case record must have an id")
	}
	return writeJSON(s.casePath(record.ID), record)
}

// Get loads the case record with the given id.
func (s *Store) Get(_ context.Context, id string) (*opinion.CaseRecord, error) {
	record := &opinion.CaseRecord{}
	if err := readJSON(s.casePath(id), record); err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.CaseNotFound("case not stored").WithDetail(id)
		}
		return nil, err
	}
	return record, nil
}

// List loads every stored case record, sorted by case ID.  Records that fail
// to decode are skipped with a warning rather than failing the whole listing.
func (s *Store) List(_ context.Context) ([]*opinion.CaseRecord, error) {
	entries, err := os.ReadDir(s.CaseDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, errors.ErrCodeStorageError, "failed to list case directory")
	}

	var records []*opinion.CaseRecord
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		record := &opinion.CaseRecord{}
		if err := readJSON(filepath.Join(s.CaseDir(), e.Name()), record); err != nil {
			s.logger.Warn("skipping unreadable case record",
				logging.String("file", e.Name()), logging.Err(err))
			continue
		}
		records = append(records, record)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })
	return records, nil
}

// Delete removes the stored record for id.
func (s *Store) Delete(_ context.Context, id string) error {
	err := os.Remove(s.casePath(id))
	if os.IsNotExist(err) {
		return errors.CaseNotFound("case not stored").WithDetail(id)
	}
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeStorageError, "failed to delete case record").WithDetail(id)
	}
	return nil
}

// Exists reports whether a record for id is stored.
func (s *Store) Exists(_ context.Context, id string) (bool, error) {
	_, err := os.Stat(s.casePath(id))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrap(err, errors.ErrCodeStorageError, "failed to stat case record").WithDetail(id)
	}
	return true, nil
}

// Record404 adds a case ID to the 404 log so batch runs skip it on re-runs.
func (s *Store) Record404(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids, err := s.load404Locked()
	if err != nil {
		return err
	}
	ids[id] = id
	return writeJSON(s.notFoundPath(), ids)
}

// Is404 reports whether id was previously recorded as a 404.
func (s *Store) Is404(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids, err := s.load404Locked()
	if err != nil {
		return false, err
	}
	_, ok := ids[id]
	return ok, nil
}

// Load404 returns the recorded 404 case IDs.
func (s *Store) Load404() (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load404Locked()
}

func (s *Store) load404Locked() (map[string]string, error) {
	ids := map[string]string{}
	if err := readJSON(s.notFoundPath(), &ids); err != nil {
		if errors.IsNotFound(err) {
			return ids, nil
		}
		return nil, err
	}
	return ids, nil
}

// SaveCitations writes the corpus citation bundle to
// citations_<suffix>.json.
func (s *Store) SaveCitations(v interface{}) error {
	return writeJSON(filepath.Join(s.JSONDir(), "citations_"+s.suffix+".json"), v)
}

// LoadManualCitations loads hand-curated citation overrides from
// manual_cites_<suffix>.json.  A missing file returns a not-found error;
// callers treat that as an empty override set.
func (s *Store) LoadManualCitations(dest interface{}) error {
	return readJSON(filepath.Join(s.JSONDir(), "manual_cites_"+s.suffix+".json"), dest)
}

// DeletePatentData removes every cached patent document of a case.  Removing
// a case that has none is not an error.
func (s *Store) DeletePatentData(caseID string) error {
	if err := os.RemoveAll(s.PatentDir(caseID)); err != nil {
		return errors.Wrap(err, errors.ErrCodeStorageError, "failed to delete patent data").WithDetail(caseID)
	}
	return nil
}

// SavePatentJSON caches a patent document for a case under its patent folder.
func (s *Store) SavePatentJSON(caseID, name string, v interface{}) error {
	return writeJSON(filepath.Join(s.PatentDir(caseID), name+".json"), v)
}

// LoadPatentJSON loads a cached patent document.  A missing file returns a
// not-found error so callers fall through to the network.
func (s *Store) LoadPatentJSON(caseID, name string, dest interface{}) error {
	return readJSON(filepath.Join(s.PatentDir(caseID), name+".json"), dest)
}
