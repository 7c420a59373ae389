package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRules_ApplyIsSequential(t *testing.T) {
	rs := Rules{
		New(`a`, `b`),
		New(`b+`, `c`),
	}
	assert.Equal(t, "c", rs.Apply("aab"))
	assert.Equal(t, "", rs.Apply(""))
}

func TestRules_Match(t *testing.T) {
	rs := Rules{New(`^\d+$`, ``), New(`^[a-z]+$`, ``)}
	assert.True(t, rs.Match("123"))
	assert.True(t, rs.Match("abc"))
	assert.False(t, rs.Match("a1"))
}

func TestCaseID(t *testing.T) {
	m := CaseID.Find("/scholar_case?case=12345678901234567890&q=patent")
	require.NotNil(t, m)
	assert.Equal(t, "12345678901234567890", m[1])

	assert.Nil(t, CaseID.Find("/scholar?q=patent"))
}

func TestDocketNumber(t *testing.T) {
	cases := []struct {
		name   string
		header string
		want   bool
	}{
		{"no prefix at start", "No. 2012-1338", true},
		{"nos after comma", "Smith v. Jones, Nos. 12-345, 12-346", true},
		{"no docket", "Smith v. Jones, 123 F.3d 456", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DocketNumber.Match(tc.header))
		})
	}
}

func TestDocketAppeals_ShapeOnly(t *testing.T) {
	assert.True(t, DocketAppeals.Match("2012-1338"))
	assert.True(t, DocketAppeals.Match("12-345, -346"))
	assert.False(t, DocketAppeals.Match("civ a 1385"))
}

func TestPatentNumber(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want bool
	}{
		{"comma grouped", "7,123,456", true},
		{"reissue", "re 38,551", true},
		{"design", "d 456,789", true},
		{"seven digits no grouping", "7123456", false},
		{"bare US", "US", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, PatentNumber.Match(tc.in))
		})
	}
}

func TestPatentNumberCited_CapturesNumber(t *testing.T) {
	m := PatentNumberCited.Find("u.s. patent no. 7,123,456")
	require.NotNil(t, m)
	assert.Equal(t, "7,123,456", m[1])
}

func TestPatentNumberStrip_RejectsBareUS(t *testing.T) {
	assert.Equal(t, "7123456", PatentNumberStrip.Sub("US 7,123,456"))
	assert.Equal(t, "", PatentNumberStrip.Sub("US"))
}

func TestPatentReference(t *testing.T) {
	m := PatentReference.Find("infringement of the '551 patent")
	require.NotNil(t, m)
	assert.Equal(t, "551", m[1])

	m = PatentReference.Find("claim 1 of Patent '456")
	require.NotNil(t, m)
	assert.Equal(t, "456", m[2])

	assert.Nil(t, PatentReference.Find("the patent at issue"))
}

func TestClaimsAnchored(t *testing.T) {
	m := ClaimsAnchored.Find(`claims 1-5 of the '123 patent`)
	require.NotNil(t, m)
	assert.Equal(t, " 1-5 ", m[1])
	assert.Equal(t, "123", m[3])
}

func TestClaimsAtLarge(t *testing.T) {
	m := ClaimsAtLarge.Find("asserted claims 1, 2 or 3 are invalid")
	require.NotNil(t, m)
	assert.Contains(t, m[1], "1, 2 or 3")

	m = ClaimsAtLarge.Find("claim 5 recites")
	require.NotNil(t, m)
	assert.Equal(t, "5", m[1][:1])
}

func TestJudgeCleanupChain(t *testing.T) {
	chain := Rules{JudgeHonorific, JudgeClean1, JudgeClean2}
	cases := []struct {
		in   string
		want string
	}{
		{"Before: NEWMAN, Circuit Judges.", "NEWMAN, Circuit"},
		{"PROST, Chief Judge.", "PROST, Chief"},
		{"Opinion of the Court by JUSTICE BREYER", "JUSTICE BREYER"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, chain.Apply(tc.in))
	}
}

func TestRomanNumeralAndSuffix(t *testing.T) {
	assert.True(t, RomanNumeral.Match("III"))
	assert.True(t, RomanNumeral.Match("IV"))
	assert.False(t, RomanNumeral.Match("Smith"))
	assert.True(t, NameSuffix.Match("Jr."))
	assert.True(t, NameSuffix.Match("SR."))
	assert.False(t, NameSuffix.Match("Junior"))
}

func TestLongDate(t *testing.T) {
	m := LongDate.Find("Decided: March 21, 2011. Rehearing denied.")
	require.NotNil(t, m)
	assert.Equal(t, "March 21, 2011", m[1][:len("March 21, 2011")])
}

func TestShortMonthDate(t *testing.T) {
	m := ShortMonthDate.Find("(Fed. Cir. Sept. 9, 2019)")
	require.NotNil(t, m)
	assert.Equal(t, "Sept", m[2])
	assert.Equal(t, "9", m[3])
	assert.Equal(t, "2019", m[4])

	m = ShortMonthDate.Find("(Fed. Cir. 1999)")
	require.NotNil(t, m)
	assert.Equal(t, "1999", m[4])
}

func TestFederalCourtTail(t *testing.T) {
	m := FederalCourt.Find("X v. Y, 123 F.3d 456 - Fed. Cir. 1999")
	require.NotNil(t, m)
	assert.Equal(t, "-", m[2])
	assert.Equal(t, "Fed. Cir.", m[3])
	assert.Equal(t, "1999", m[4])
}

func TestStateCourtTail(t *testing.T) {
	m := StateCourt.Find("A v. B, 12 P.3d 34 - Nev: Supreme Court 2001")
	require.NotNil(t, m)
	assert.Equal(t, "Nev", m[3])
	assert.Equal(t, "Supreme Court", m[4])
	assert.Equal(t, "2001", m[5])
}

func TestBareYear(t *testing.T) {
	m := BareYear.Find("Bilski v. Kappos, 561 U.S. 593 - 2010")
	require.NotNil(t, m)
	assert.Equal(t, "-", m[1])
	assert.Equal(t, "2010", m[2])
	assert.Nil(t, BareYear.Find("123 F.3d 456 - Fed. Cir. 1999"))
}

func TestExtrasCitation_TrimsPinCites(t *testing.T) {
	in := `Phillips v. AWH Corp., 415 F.3d 1303, 1312-13 (Fed. Cir. 2005) ("the claims")`
	out := ExtrasCitation.Apply(in)
	assert.Equal(t, "Phillips v. AWH Corp., 415 F.3d 1303 (Fed. Cir. 2005)", out)
}

func TestExtrasCitation_NormalizesReporters(t *testing.T) {
	assert.Equal(t, "F. App'x", ExtrasCitation.Apply("Fed.Appx."))
	assert.Equal(t, "12 F. Supp. 2d 34", ExtrasCitation.Apply("12 F.Supp.2d 34"))
	assert.Equal(t, "130 S. Ct. 3218", ExtrasCitation.Apply("130 S.Ct. 3218"))
}

func TestEndSentence(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"The judgment is AFFIRMED", true},
		{"reversed in part", true},
		{"It ends here.", true},
		{"continued by a footnote @@@@[3]", true},
		{"interrupted mid-clause", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, EndSentence.Match(tc.in), tc.in)
	}
}

func TestBoundary(t *testing.T) {
	b := Rules{Boundary}
	assert.Equal(t, "Smith v. Jones", b.Apply(`("Smith v. Jones")`))
	assert.Equal(t, "Acme", b.Apply("the Acme's"))
}

func TestPageMarkerAndFootnoteTag(t *testing.T) {
	assert.Equal(t, "before after", PageMarker.Sub("before +page[12]+ after"))
	assert.Equal(t, "text follows", FootnoteTag.Sub("text @@@@[4] follows"))
}

func TestReporterRules(t *testing.T) {
	r := Reporter("F.3d")
	m := r.Find("123 F.3d 456")
	require.NotNil(t, m)
	assert.Equal(t, "123", m[2])

	empty := ReporterEmpty("U.S.")
	assert.True(t, empty.Match("___ U.S. ___, ___, "))
	assert.False(t, empty.Match("561 U.S. 593"))
}
