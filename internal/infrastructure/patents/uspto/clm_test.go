package uspto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const clmFixture = `<?xml version="1.0" encoding="UTF-8"?>
<uspat:ApplicationBodyClaims xmlns:uspat="urn:us:gov:uspto" xmlns:com="urn:wipo:com" xmlns:pat="urn:wipo:pat">
  <com:OfficialDate>2011-04-15</com:OfficialDate>
  <pat:ClaimSet>
    <pat:Claim com:ID="CLM00001" num="1">
      <pat:ClaimText><com:ClaimLabelText>Claim 1</com:ClaimLabelText>1. (Original) A widget comprising a frame.</pat:ClaimText>
    </pat:Claim>
    <pat:Claim com:ID="CLM00002" num="2">
      <pat:ClaimText>2. (Currently Amended) The widget of claim 1, wherein the frame is aluminum.</pat:ClaimText>
    </pat:Claim>
    <pat:Claim com:ID="CLM00003" num="3">
      <pat:ClaimText>3. (Canceled)</pat:ClaimText>
    </pat:Claim>
    <pat:Claim com:ID="CLM00004" num="4">
      <pat:ClaimText>4.</pat:ClaimText>
    </pat:Claim>
  </pat:ClaimSet>
</uspat:ApplicationBodyClaims>`

func TestParseCLM(t *testing.T) {
	history, err := ParseCLM(strings.NewReader(clmFixture))
	require.NoError(t, err)
	require.NotNil(t, history)

	assert.Equal(t, "2011-04-15", history.Date)
	// Claim 4 has no text and no amendment status, so it is dropped.
	require.Len(t, history.UpdatedClaims, 3)

	first := history.UpdatedClaims[1]
	assert.Equal(t, "original", first.Status)
	require.NotNil(t, first.Context)
	assert.Equal(t, "A widget comprising a frame.", *first.Context)
	assert.NotContains(t, *first.Context, "Claim 1")

	second := history.UpdatedClaims[2]
	assert.Equal(t, "currently_amended", second.Status)
	assert.Equal(t, []int{1}, second.DependentOn)
	require.NotNil(t, second.Context)
	assert.Equal(t, "The widget of claim 1, wherein the frame is aluminum.", *second.Context)

	third := history.UpdatedClaims[3]
	assert.Equal(t, "canceled", third.Status)
	assert.Nil(t, third.Context)
}

func TestParseCLM_NoQualifyingClaims(t *testing.T) {
	doc := `<root><com:OfficialDate>2020-01-01</com:OfficialDate><pat:ClaimSet></pat:ClaimSet></root>`
	history, err := ParseCLM(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Nil(t, history)
}

func TestParseCLM_NumberFromChildElement(t *testing.T) {
	doc := `<root>
	  <com:MailroomDate>2015-06-01</com:MailroomDate>
	  <pat:Claims>
	    <pat:Claim com:ID="CLM00007">
	      <pat:ClaimNumber>7</pat:ClaimNumber>
	      <pat:ClaimText>(New) A frame of claims 2 or 4, made of steel.</pat:ClaimText>
	    </pat:Claim>
	  </pat:Claims>
	</root>`
	history, err := ParseCLM(strings.NewReader(doc))
	require.NoError(t, err)
	require.NotNil(t, history)

	assert.Equal(t, "2015-06-01", history.Date)
	claim, ok := history.UpdatedClaims[7]
	require.True(t, ok)
	assert.Equal(t, "new", claim.Status)
	assert.Equal(t, []int{2, 4}, claim.DependentOn)
}
