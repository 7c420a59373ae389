package parse

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexintel/caselaw-intelligence/internal/domain/opinion"
)

func redundantCorpus(t *testing.T, svc *Service) context.Context {
	t.Helper()
	ctx := context.Background()
	store := svc.store

	// Published original: same name as record 2 but exempt through its
	// short citation.
	published := storedRecord("1", "Alpha v. Beta",
		"Alpha v. Beta, 100 F.3d 1 (Fed. Cir. 2010)", "2010-01-01", "fed-cir")
	published.ShortCitation = []string{"100 F.3d 1"}
	published.CaseNumbers = []opinion.CaseNumber{{DocketNumber: []string{"10-100"}}}
	require.NoError(t, store.Save(ctx, published))

	// Unpublished duplicate by case name.
	dupName := storedRecord("2", "Alpha v. Beta",
		"Alpha v. Beta, No. 10-999 (Fed. Cir. Jan. 01, 2010)", "2010-01-01", "fed-cir")
	dupName.CaseNumbers = []opinion.CaseNumber{{DocketNumber: []string{"10-999"}}}
	require.NoError(t, store.Save(ctx, dupName))

	// Unpublished duplicate by docket number.
	dupDocket := storedRecord("3", "Gamma v. Delta",
		"Gamma v. Delta, No. 10-999 (Fed. Cir. Jan. 01, 2010)", "2010-01-01", "fed-cir")
	dupDocket.CaseNumbers = []opinion.CaseNumber{{DocketNumber: []string{"10-999"}}}
	require.NoError(t, store.Save(ctx, dupDocket))

	return ctx
}

func TestDropRedundant_ReportsWithoutRemoving(t *testing.T) {
	svc, store := newTestService(t, &stubFetcher{})
	ctx := redundantCorpus(t, svc)

	dropped, err := svc.DropRedundant(ctx, DropOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "3"}, dropped)

	for _, id := range []string{"1", "2", "3"} {
		exists, err := store.Exists(ctx, id)
		require.NoError(t, err)
		assert.True(t, exists, id)
	}
}

func TestDropRedundant_RemovesDataAndPatents(t *testing.T) {
	svc, store := newTestService(t, &stubFetcher{})
	ctx := redundantCorpus(t, svc)
	require.NoError(t, store.SavePatentJSON("2", "US5123456", map[string]string{"title": "Widget"}))

	dropped, err := svc.DropRedundant(ctx, DropOptions{Remove: true, RemovePatents: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "3"}, dropped)

	exists, err := store.Exists(ctx, "1")
	require.NoError(t, err)
	assert.True(t, exists, "the published record survives")

	for _, id := range []string{"2", "3"} {
		exists, err := store.Exists(ctx, id)
		require.NoError(t, err)
		assert.False(t, exists, id)
	}

	_, err = os.Stat(store.PatentDir("2"))
	assert.True(t, os.IsNotExist(err), "patent folder of a dropped case is removed")
}

func TestDropRedundant_ExternalList(t *testing.T) {
	svc, store := newTestService(t, &stubFetcher{})
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, storedRecord("7", "Solo v. Case",
		"Solo v. Case, 1 F.3d 1 (Fed. Cir. 1994)", "1994-01-15", "fed-cir")))

	dropped, err := svc.DropRedundant(ctx, DropOptions{Remove: true, External: []string{"7"}})
	require.NoError(t, err)
	assert.Empty(t, dropped, "a unique case is not redundant")

	exists, err := store.Exists(ctx, "7")
	require.NoError(t, err)
	assert.False(t, exists, "externally listed cases are removed regardless")
}
