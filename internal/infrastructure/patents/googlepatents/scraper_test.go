package googlepatents

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexintel/caselaw-intelligence/internal/infrastructure/monitoring/logging"
	"github.com/lexintel/caselaw-intelligence/internal/infrastructure/storage/jsonstore"
	"github.com/lexintel/caselaw-intelligence/pkg/errors"
)

const divClaimsPage = `<html><body>
<h1 id="title">US5123456A - Widget fastener - Google Patents</h1>
<div class="abstract">A fastener for widgets.</div>
<div class="abstract">It holds widgets together.</div>
<section class="claims">
<div><div class="claim" num="00001">1. A fastener comprising a shank.</div></div>
<div><div class="claim" num="00002">2. The fastener of claim 1, wherein the shank is threaded.</div></div>
<div><div class="claim" num="00003">3. The fastener of claims 1 or 2, further comprising a head.</div></div>
</section>
<div class="description-paragraph">The invention relates to fasteners.</div>
</body></html>`

const listClaimsPage = `<html><body>
<h1 id="title">US1234567A - Widget press - Google Patents</h1>
<ol class="claims">
<li>A press for widgets comprising a platen.</li>
<li>The press of any one of the preceding claims, wherein the platen is heated.</li>
</ol>
</body></html>`

const reissueClaimsPage = `<html><body>
<h1 id="title">Widget reissue - Google Patents</h1>
<div class="claims">
<div><div class="claim" num="00001">1. A widget.</div></div>
<div><claim num="0002-0012"><div>.Iaddend..Iadd.12. (canceled)</div></claim></div>
</div>
</body></html>`

func TestParse_DivClaims(t *testing.T) {
	record, err := Parse(divClaimsPage)
	require.NoError(t, err)

	assert.Equal(t, "Widget fastener", record.Title)
	assert.Equal(t, "A fastener for widgets. It holds widgets together.", record.Abstract)
	require.Len(t, record.Claims, 3)

	assert.Equal(t, "A fastener comprising a shank.", record.Claims[1].Context)
	assert.Nil(t, record.Claims[1].DependentOn)
	assert.Equal(t, []int{1}, record.Claims[2].DependentOn)
	assert.Equal(t, []int{1, 2}, record.Claims[3].DependentOn)

	require.Len(t, record.Description, 1)
	assert.Equal(t, "The invention relates to fasteners.", record.Description[1])
}

func TestParse_ListClaimsNumberByPosition(t *testing.T) {
	record, err := Parse(listClaimsPage)
	require.NoError(t, err)

	assert.Equal(t, "Widget press", record.Title)
	require.Len(t, record.Claims, 2)
	assert.Equal(t, 1, record.Claims[1].ClaimNumber)
	assert.Equal(t, "The press of any one of the preceding claims, wherein the platen is heated.",
		record.Claims[2].Context)
	assert.Equal(t, []int{1}, record.Claims[2].DependentOn)
}

func TestParse_ReissueNumRecovery(t *testing.T) {
	record, err := Parse(reissueClaimsPage)
	require.NoError(t, err)

	require.Len(t, record.Claims, 2)
	// The cancelled range "0002-0012" resolves to its last number.
	claim, ok := record.Claims[12]
	require.True(t, ok)
	assert.Equal(t, "(canceled)", claim.Context)
}

func TestParse_NoClaimsContainer(t *testing.T) {
	record, err := Parse(`<html><body><h1 id="title">Bare page</h1></body></html>`)
	require.NoError(t, err)
	assert.Empty(t, record.Claims)
	assert.Equal(t, "Bare page", record.Title)
}

type stubFetcher struct {
	page  string
	err   error
	calls int
}

func (s *stubFetcher) Fetch(_ context.Context, url string) (string, string, error) {
	s.calls++
	return url, s.page, s.err
}

func newTestScraper(t *testing.T, f *stubFetcher) (*Scraper, *jsonstore.Store) {
	t.Helper()
	store := jsonstore.New(t.TempDir(), "test", logging.NewNopLogger())
	return NewScraper(f, store, "https://patents.example.com", logging.NewNopLogger()), store
}

func TestScraper_PatentData_ScrapesAndCaches(t *testing.T) {
	fetcher := &stubFetcher{page: divClaimsPage}
	scraper, store := newTestScraper(t, fetcher)
	ctx := context.Background()

	found, claims, err := scraper.PatentData(ctx, "us5123456", "case1")
	require.NoError(t, err)
	assert.True(t, found)
	require.Len(t, claims, 3)
	assert.Equal(t, 1, fetcher.calls)

	// Second call is served from the on-disk cache.
	found, claims, err = scraper.PatentData(ctx, "US5123456", "case1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Len(t, claims, 3)
	assert.Equal(t, 1, fetcher.calls)

	var cached map[string]interface{}
	assert.NoError(t, store.LoadPatentJSON("case1", "US5123456", &cached))
}

func TestScraper_PatentData_NotFound(t *testing.T) {
	fetcher := &stubFetcher{err: errors.NotFound("no such patent")}
	scraper, _ := newTestScraper(t, fetcher)

	found, claims, err := scraper.PatentData(context.Background(), "US9999999", "case1")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, claims)
}

func TestScraper_PatentData_EmptyTitleNotCached(t *testing.T) {
	fetcher := &stubFetcher{page: `<html><body><div class="claims"></div></body></html>`}
	scraper, store := newTestScraper(t, fetcher)

	found, claims, err := scraper.PatentData(context.Background(), "US0000001", "case1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Nil(t, claims)

	var cached map[string]interface{}
	err = store.LoadPatentJSON("case1", "US0000001", &cached)
	assert.True(t, errors.IsNotFound(err))
}
