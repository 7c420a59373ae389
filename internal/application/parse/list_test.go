package parse

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListSummaries_NewestFirst(t *testing.T) {
	svc, store := newTestService(t, &stubFetcher{})
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, storedRecord("1", "Old v. Case",
		"Old v. Case, 1 F.3d 1 (Fed. Cir. 1994)", "1994-01-15", "fed-cir")))
	require.NoError(t, store.Save(ctx, storedRecord("2", "New v. Case",
		"New v. Case, 700 F.3d 1 (Fed. Cir. 2012)", "2012-11-30", "fed-cir")))

	summaries, err := svc.ListSummaries(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, "2", summaries[0].ID)
	assert.Equal(t, "1", summaries[1].ID)
	assert.Equal(t, scholarBase+"/scholar_case?case=2", summaries[0].URL)
}

func TestExportCSV(t *testing.T) {
	svc, store := newTestService(t, &stubFetcher{})
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, storedRecord("1", "Old v. Case",
		"Old v. Case, 1 F.3d 1 (Fed. Cir. 1994)", "1994-01-15", "fed-cir")))
	require.NoError(t, store.Save(ctx, storedRecord("2", "New v. Case",
		"New v. Case, 700 F.3d 1 (Fed. Cir. 2012)", "2012-11-30", "fed-cir")))

	path, err := svc.ExportCSV(ctx, "corpus")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, "corpus.csv"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 3)

	// Every field is quoted, fields are tab-separated, newest case first.
	assert.Equal(t, `"  #  "	"Case"	"Date"	"Court Full Name"	"Court Short Name"	"Court Code"	"Jurisdiction"	"URL"`, lines[0])
	assert.True(t, strings.HasPrefix(lines[1], `"1"	"New v. Case, 700 F.3d 1 (Fed. Cir. 2012)"	"2012-11-30"`), lines[1])
	assert.Contains(t, lines[1], `"fed-cir"`)
	assert.Contains(t, lines[2], `"Old v. Case, 1 F.3d 1 (Fed. Cir. 1994)"`)
}

func TestExportCSV_EscapesQuotes(t *testing.T) {
	svc, store := newTestService(t, &stubFetcher{})
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, storedRecord("1", `In re "Agent Orange"`,
		`In re "Agent Orange", 1 F.3d 1 (Fed. Cir. 1994)`, "1994-01-15", "fed-cir")))

	path, err := svc.ExportCSV(ctx, "quoted")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"In re ""Agent Orange"", 1 F.3d 1 (Fed. Cir. 1994)"`)
}
