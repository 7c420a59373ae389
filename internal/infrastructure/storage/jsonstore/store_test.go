package jsonstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexintel/caselaw-intelligence/internal/domain/opinion"
	"github.com/lexintel/caselaw-intelligence/internal/infrastructure/monitoring/logging"
	"github.com/lexintel/caselaw-intelligence/pkg/errors"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(t.TempDir(), "test", logging.NewNopLogger())
}

func sampleRecord(id string) *opinion.CaseRecord {
	rec := opinion.NewCaseRecord()
	rec.ID = id
	rec.FullCaseName = "Acme Corp. v. Zenith Devices, Inc."
	rec.Citation = "Acme Corp. v. Zenith Devices, Inc., 123 F.3d 456 (Fed. Cir. 1999)"
	rec.Date = "1999-03-21"
	return rec
}

func TestStore_SaveAndGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, sampleRecord("123456789")))

	got, err := s.Get(ctx, "123456789")
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp. v. Zenith Devices, Inc.", got.FullCaseName)
	assert.Equal(t, "1999-03-21", got.Date)

	// Records land in the suffix-labelled corpus folder.
	_, err = os.Stat(filepath.Join(s.CaseDir(), "123456789.json"))
	assert.NoError(t, err)
}

func TestStore_SaveRejectsMissingID(t *testing.T) {
	s := newTestStore(t)
	err := s.Save(context.Background(), opinion.NewCaseRecord())
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidParam))
}

func TestStore_GetMissing(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Get(context.Background(), "nope")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeCaseNotFound))
}

func TestStore_List(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, sampleRecord("222")))
	require.NoError(t, s.Save(ctx, sampleRecord("111")))

	records, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "111", records[0].ID)
	assert.Equal(t, "222", records[1].ID)
}

func TestStore_ListEmptyDir(t *testing.T) {
	s := newTestStore(t)
	records, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestStore_ListSkipsCorruptFiles(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, sampleRecord("111")))
	require.NoError(t, os.WriteFile(filepath.Join(s.CaseDir(), "bad.json"), []byte("{"), 0o644))

	records, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "111", records[0].ID)
}

func TestStore_DeleteAndExists(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, sampleRecord("111")))

	ok, err := s.Exists(ctx, "111")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, s.Delete(ctx, "111"))

	ok, err = s.Exists(ctx, "111")
	require.NoError(t, err)
	assert.False(t, ok)

	err = s.Delete(ctx, "111")
	assert.True(t, errors.IsCode(err, errors.ErrCodeCaseNotFound))
}

func TestStore_404Log(t *testing.T) {
	s := newTestStore(t)

	ok, err := s.Is404("123")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Record404("123"))
	require.NoError(t, s.Record404("456"))

	ok, err = s.Is404("123")
	require.NoError(t, err)
	assert.True(t, ok)

	ids, err := s.Load404()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"123": "123", "456": "456"}, ids)
}

func TestStore_PatentJSONRoundTrip(t *testing.T) {
	s := newTestStore(t)
	type doc struct {
		Number string `json:"number"`
	}

	require.NoError(t, s.SavePatentJSON("111", "US5123456", doc{Number: "US5123456"}))

	var got doc
	require.NoError(t, s.LoadPatentJSON("111", "US5123456", &got))
	assert.Equal(t, "US5123456", got.Number)

	err := s.LoadPatentJSON("111", "missing", &got)
	assert.True(t, errors.IsNotFound(err))
}
