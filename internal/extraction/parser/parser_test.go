package parser

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexintel/caselaw-intelligence/internal/domain/patent"
	"github.com/lexintel/caselaw-intelligence/internal/infrastructure/monitoring/logging"
)

type fakePatentData struct {
	claims map[int]patent.Claim
}

func (f fakePatentData) PatentData(_ context.Context, _, _ string) (bool, map[int]patent.Claim, error) {
	return true, f.claims, nil
}

type fakeContinuity struct {
	children []string
}

func (f fakeContinuity) ChildNumbers(_ context.Context, _ string) ([]string, error) {
	return f.children, nil
}

const federalCircuitPage = `<html><head>
<link rel="canonical" href="https://scholar.google.com/scholar_case?case=123456789">
</head><body>
<div id="gs_tbar_lt"><a href="/scholar_case?case=123456789&amp;q=acme">Acme</a></div>
<div id="gs_hdr_md">Acme Corp. v. Zenith Devices, Inc., 123 F.3d 456 - Court of Appeals, Federal Circuit 1999</div>
<div id="gs_opinion">
<div id="gs_dont_print"><a href="#">Print</a></div>
<h3 id="gsl_case_name">ACME CORP. v. ZENITH DEVICES, INC.</h3>
<center><b>123 F.3d 456</b></center>
<center><a href="/scholar?scidkt=111222+333444&amp;hl=en">Nos. 98-1234, -1235</a></center>
<center>Decided: March 21, 1999</center>
<p>Before: NEWMAN, MAYER, and RADER, Circuit Judges.</p>
<p>Acme sued Zenith for infringement of U.S. Patent No. 5,123,456 (the '456 patent).<sup><a name="r[1]" href="#[1]">[1]</a></sup> Claims 1-3 of the '456 patent are asserted. Claim 5 is also asserted.</p>
<p>This framework follows <a href="/scholar_case?case=555&amp;hl=en"><i>Markman v. Westview Instruments, Inc.</i>, 517 U.S. 370 (1996)</a>. AFFIRMED.</p>
<p>RADER, Circuit Judge, dissenting.</p>
<small><p><a class="gsl_hash" name="[1]"></a>The '456 patent issued in 1993.</p></small>
</div></body></html>`

func TestParse_FederalCircuitOpinion(t *testing.T) {
	data := fakePatentData{claims: map[int]patent.Claim{
		1: {ClaimNumber: 1, Context: "A widget."},
		2: {ClaimNumber: 2, Context: "The widget of claim 1.", DependentOn: []int{1}},
		3: {ClaimNumber: 3, Context: "The widget of claim 2.", DependentOn: []int{2}},
		4: {ClaimNumber: 4, Context: "The widget of claim 3.", DependentOn: []int{3}},
		5: {ClaimNumber: 5, Context: "A method of making widgets."},
	}}
	p := New(logging.NewNopLogger(), data, nil, nil)

	rec, err := p.Parse(context.Background(), federalCircuitPage, Config{})
	require.NoError(t, err)

	assert.Equal(t, "123456789", rec.ID)
	assert.Equal(t, "ACME CORP. v. ZENITH DEVICES, INC.", rec.FullCaseName)
	assert.Equal(t, "Acme Corp. v. Zenith Devices, Inc., 123 F.3d 456 (Fed. Cir. 1999)", rec.Citation)
	assert.Equal(t, "fed-cir", rec.Court.CourtCode)
	assert.Equal(t, "F", rec.Court.Jurisdiction)
	assert.Equal(t, "1999-03-21", rec.Date)
	assert.Equal(t, []string{"123 F.3d 456"}, rec.ShortCitation)
	assert.Equal(t, []string{"Newman", "Mayer", "Rader"}, rec.Judges)

	require.Len(t, rec.CaseNumbers, 2)
	require.NotNil(t, rec.CaseNumbers[0].ID)
	assert.Equal(t, "111222", *rec.CaseNumbers[0].ID)
	assert.Equal(t, []string{"98-1234"}, rec.CaseNumbers[0].DocketNumber)
	require.NotNil(t, rec.CaseNumbers[1].ID)
	assert.Equal(t, "333444", *rec.CaseNumbers[1].ID)
	assert.Equal(t, []string{"98-1235"}, rec.CaseNumbers[1].DocketNumber)

	require.Contains(t, rec.CitesTo, "555")
	cited := rec.CitesTo["555"]
	require.Len(t, cited, 1)
	assert.Equal(t, "Markman v. Westview Instruments, Inc.", cited[0].CaseName)
	require.Len(t, cited[0].Variations, 1)
	assert.Equal(t, "Markman v. Westview Instruments, Inc., 517 U.S. 370 (1996)", cited[0].Variations[0].Citation)
	assert.Regexp(t, `^\[\d+\]$`, cited[0].Variations[0].Identifier)

	require.Len(t, rec.PatentsInSuit, 1)
	suit := rec.PatentsInSuit[0]
	require.NotNil(t, suit.PatentNumber)
	assert.Equal(t, "US5123456", *suit.PatentNumber)
	assert.Nil(t, suit.ApplicationNumber)
	assert.True(t, suit.PatentFound)
	assert.Equal(t, []int{1, 2, 3, 5}, suit.CitedClaims)

	require.Len(t, rec.Footnotes, 1)
	assert.Equal(t, "[1]", rec.Footnotes[0].Identifier)
	assert.Equal(t, "The '456 patent issued in 1993.", rec.Footnotes[0].Context)

	assert.Contains(t, rec.TrainingText, paragraphLabel)
	assert.Contains(t, rec.TrainingText, citationLabel+"555")
	assert.NotContains(t, rec.TrainingText, "Before: NEWMAN")

	require.Len(t, rec.PersonalOpinions.Dissent, 1)
	assert.Equal(t, "Rader", rec.PersonalOpinions.Dissent[0].Judge)
	span := rec.PersonalOpinions.Dissent[0].IndexSpan
	assert.Contains(t, rec.TrainingText[span[0]:span[1]], "dissenting")
	assert.Empty(t, rec.PersonalOpinions.Concur)

	assert.Contains(t, rec.HTML, "gs_opinion")
}

const applicationMergePage = `<html><head>
<link rel="canonical" href="https://scholar.google.com/scholar_case?case=987654321">
</head><body>
<div id="gs_tbar_lt"><a href="/scholar_case?case=987654321&amp;q=orion">Orion</a></div>
<div id="gs_hdr_md">Orion Labs, Inc. v. Vega Instruments, Inc., 234 F.3d 789 - Court of Appeals, Federal Circuit 2000</div>
<div id="gs_opinion">
<div id="gs_dont_print"></div>
<h3 id="gsl_case_name">ORION LABS, INC. v. VEGA INSTRUMENTS, INC.</h3>
<center><b>234 F.3d 789</b></center>
<center><a href="/scholar?scidkt=777888&amp;hl=en">No. 99-1456</a></center>
<center>Decided: June 14, 2000</center>
<p>Before: MICHEL, LOURIE, and CLEVENGER, Circuit Judges.</p>
<p>Orion filed Application No. 11/222,188 (the '188 application), which issued as the '336 patent. Orion asserts claims 1-2 of the '188 application and claims 2, 3 of the '336 patent. AFFIRMED.</p>
</div></body></html>`

// A patent and the application it issued from are argued side by side; the
// patent entry absorbs the application's claim numbers.
func TestParse_ApplicationPatentClaimMerge(t *testing.T) {
	data := fakePatentData{claims: map[int]patent.Claim{
		1: {ClaimNumber: 1, Context: "A sensor."},
		2: {ClaimNumber: 2, Context: "The sensor of claim 1.", DependentOn: []int{1}},
		3: {ClaimNumber: 3, Context: "The sensor of claim 2.", DependentOn: []int{2}},
	}}
	continuity := fakeContinuity{children: []string{"7654336"}}
	p := New(logging.NewNopLogger(), data, continuity, nil)

	rec, err := p.Parse(context.Background(), applicationMergePage, Config{})
	require.NoError(t, err)
	assert.Equal(t, "987654321", rec.ID)

	require.Len(t, rec.PatentsInSuit, 1)
	suit := rec.PatentsInSuit[0]
	require.NotNil(t, suit.PatentNumber)
	assert.Equal(t, "US7654336", *suit.PatentNumber)
	require.NotNil(t, suit.ApplicationNumber)
	assert.Equal(t, "11222188", *suit.ApplicationNumber)
	assert.True(t, suit.PatentFound)
	assert.Equal(t, []int{1, 2, 3}, suit.CitedClaims)
}

const repeatedCitationPage = `<html><head></head><body>
<div id="gs_tbar_lt"><a href="/scholar_case?case=31313131">Foo</a></div>
<div id="gs_hdr_md">Foo Systems, Inc. v. Bar Networks, Inc., Dist. Court, ND California 2011</div>
<div id="gs_opinion">
<div id="gs_dont_print"></div>
<h3 id="gsl_case_name">FOO SYSTEMS, INC. v. BAR NETWORKS, INC.</h3>
<center><a href="/scholar?scidkt=999888&amp;hl=en">No. C 11-01846 LHK</a></center>
<center>Decided: May 5, 2011</center>
<p>Before: LUCY H. KOH, District Judge.</p>
<p>Claim construction is a question of law. <a href="/scholar_case?case=555&amp;hl=en"><i>Markman v. Westview Instruments, Inc.</i>, 517 U.S. 370 (1996)</a>. The court construes the terms below. <a href="/scholar_case?case=555&amp;hl=en"><i>Markman v. Westview Instruments, Inc.</i>, 517 U.S. 370 (1996)</a>. See generally <a href="/scholar_case?case=555&amp;hl=en"><i>Markman v. Westview Instruments, Inc.</i>, 517 U.S. 370</a>.</p>
</div></body></html>`

// Repeating the same citation text for one cited case reuses the identifier
// it was assigned first; only genuinely different text adds a variation.
func TestParse_RepeatedCitationReusesIdentifier(t *testing.T) {
	p := New(logging.NewNopLogger(), nil, nil, nil)

	rec, err := p.Parse(context.Background(), repeatedCitationPage, Config{})
	require.NoError(t, err)

	require.Contains(t, rec.CitesTo, "555")
	cited := rec.CitesTo["555"]
	require.Len(t, cited, 1)
	assert.Equal(t, "Markman v. Westview Instruments, Inc.", cited[0].CaseName)

	require.Len(t, cited[0].Variations, 2)
	long := cited[0].Variations[0]
	short := cited[0].Variations[1]
	assert.Equal(t, "Markman v. Westview Instruments, Inc., 517 U.S. 370 (1996)", long.Citation)
	assert.Equal(t, "Markman v. Westview Instruments, Inc., 517 U.S. 370", short.Citation)
	assert.NotEqual(t, long.Identifier, short.Identifier)

	// Both anchors carrying the long form collapse onto one marker.
	assert.Equal(t, 2, strings.Count(rec.TrainingText, citationLabel+"555"+long.Identifier))
	assert.Equal(t, 1, strings.Count(rec.TrainingText, citationLabel+"555"+short.Identifier))
}

// Parsing the same page twice yields structurally identical records.
func TestParse_RerunIsDeterministic(t *testing.T) {
	data := fakePatentData{claims: map[int]patent.Claim{
		1: {ClaimNumber: 1, Context: "A widget."},
		5: {ClaimNumber: 5, Context: "A method of making widgets."},
	}}
	p := New(logging.NewNopLogger(), data, nil, nil)

	first, err := p.Parse(context.Background(), federalCircuitPage, Config{})
	require.NoError(t, err)
	second, err := p.Parse(context.Background(), federalCircuitPage, Config{})
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

const districtPage = `<html><head></head><body>
<div id="gs_tbar_lt"><a href="/scholar_case?case=42424242">Foo</a></div>
<div id="gs_hdr_md">Foo Systems, Inc. v. Bar Networks, Inc., Dist. Court, ND California 2011</div>
<div id="gs_opinion">
<div id="gs_dont_print"></div>
<h3 id="gsl_case_name">FOO SYSTEMS, INC. v. BAR NETWORKS, INC.</h3>
<center><a href="/scholar?scidkt=999888&amp;hl=en">No. C 11-01846 LHK</a></center>
<center>Decided: May 5, 2011</center>
<p>Before: LUCY H. KOH, District Judge.</p>
<p>The motion is DENIED.</p>
</div></body></html>`

func TestParse_UnpublishedDistrictOpinion(t *testing.T) {
	p := New(logging.NewNopLogger(), nil, nil, nil)

	rec, err := p.Parse(context.Background(), districtPage, Config{})
	require.NoError(t, err)

	assert.Equal(t, "42424242", rec.ID)
	assert.Equal(t, "Foo Systems, Inc. v. Bar Networks, Inc., No. 11-01846 (N.D. Cal. May 05, 2011)", rec.Citation)
	assert.Equal(t, "nd-cal", rec.Court.CourtCode)
	assert.Equal(t, "F", rec.Court.Jurisdiction)
	assert.Equal(t, "2011-05-05", rec.Date)
	assert.Empty(t, rec.ShortCitation)
	assert.Empty(t, rec.PatentsInSuit)

	require.Len(t, rec.CaseNumbers, 1)
	require.NotNil(t, rec.CaseNumbers[0].ID)
	assert.Equal(t, "999888", *rec.CaseNumbers[0].ID)
	assert.Equal(t, []string{"11-01846"}, rec.CaseNumbers[0].DocketNumber)
}

func TestTokenizeCitation_Published(t *testing.T) {
	tok := TokenizeCitation("Markman v. Westview Instruments, Inc., 517 U.S. 370 (1996)")

	require.NotNil(t, tok.CaseName)
	assert.Equal(t, "Markman v. Westview Instruments, Inc.", *tok.CaseName)
	assert.True(t, tok.Published)
	assert.Empty(t, tok.DocketNumbers)

	require.NotNil(t, tok.Date.Year)
	assert.Equal(t, "1996", *tok.Date.Year)
	assert.Nil(t, tok.Date.Month)

	require.Len(t, tok.Details, 1)
	d := tok.Details[0]
	require.NotNil(t, d.Volume)
	assert.Equal(t, "517", *d.Volume)
	require.NotNil(t, d.ReporterAbbreviation)
	assert.Equal(t, "U.S.", *d.ReporterAbbreviation)
	require.NotNil(t, d.FirstPage)
	assert.Equal(t, "370", *d.FirstPage)

	require.NotNil(t, tok.Court)
	assert.Equal(t, "us", tok.Court.CourtCode)
}

func TestTokenizeCitation_UnpublishedDocket(t *testing.T) {
	tok := TokenizeCitation("Acme Corp. v. Zenith Devices, Inc., No. 2012-1338, -1339 (Fed. Cir. Aug. 3, 2012)")

	assert.False(t, tok.Published)
	assert.NotEmpty(t, tok.DocketNumbers)

	require.NotNil(t, tok.Date.Year)
	assert.Equal(t, "2012", *tok.Date.Year)
	require.NotNil(t, tok.Date.Month)
	assert.Equal(t, "08", *tok.Date.Month)
	require.NotNil(t, tok.Date.Day)
	assert.Equal(t, "3", *tok.Date.Day)

	require.NotNil(t, tok.Court)
	assert.Equal(t, "fed-cir", tok.Court.CourtCode)
}

func TestClosestRef(t *testing.T) {
	// A claim phrase between two references attaches to the nearer one in
	// either direction.
	assert.Equal(t, 1, closestRef([]int{100, 500}, 450))
	assert.Equal(t, 0, closestRef([]int{100, 500}, 120))
	assert.Equal(t, 0, closestRef([]int{100}, 9000))
}

func TestHyphenToNumbers(t *testing.T) {
	assert.Equal(t, "3 4 5", hyphenToNumbers("3-5"))
	assert.Equal(t, "1 2 3 4", hyphenToNumbers("1-4"))
	assert.Equal(t, "7", hyphenToNumbers("7"))
	assert.Equal(t, "1 2 10 11", hyphenToNumbers("1-2 10-11"))
}

func TestNormalizeClaimList(t *testing.T) {
	assert.Equal(t, "1-3", normalizeClaimList(" 1-3 "))
	assert.Equal(t, "1 2 3", normalizeClaimList("1, 2 or 3"))
	assert.Equal(t, "5-7", normalizeClaimList("5 through 7"))
	assert.Equal(t, "1 4", normalizeClaimList("1 and 4"))
}

func TestShortDate(t *testing.T) {
	assert.Equal(t, "Jan. 05, 2011", shortDate(time.Date(2011, time.January, 5, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "May 05, 2011", shortDate(time.Date(2011, time.May, 5, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "Sept. 30, 2011", shortDate(time.Date(2011, time.September, 30, 0, 0, 0, 0, time.UTC)))
}

func TestNormalizeJudgeName(t *testing.T) {
	assert.Equal(t, "Newman", normalizeJudgeName("NEWMAN"))
	assert.Equal(t, "O'Brien", normalizeJudgeName("O'BRIEN"))
	assert.Equal(t, "Smith, III", normalizeJudgeName("SMITH, III"))
}
