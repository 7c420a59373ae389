// Package patent defines the patent-side entities referenced by a case
// record: claims with their dependency chains, amendment history from
// prosecution, and the provider contracts the extraction pipeline consumes
// to fetch them. Providers are injected; the domain never reaches the
// network itself.
package patent

import "context"

// Claim is one claim scraped from a patent page.
type Claim struct {
	ClaimNumber int    `json:"claim_number"`
	Context     string `json:"context"`
	DependentOn []int  `json:"dependent_on"`
}

// AmendedClaim is one claim entry from the prosecution transaction history.
// Context is nil when the amendment lists the claim without text, which is
// how cancellations usually appear.
type AmendedClaim struct {
	ClaimNumber int     `json:"claim_number"`
	Context     *string `json:"context"`
	Status      string  `json:"status"`
	DependentOn []int   `json:"dependent_on"`
}

// ClaimHistory is one amendment document: the claim set in force on Date.
type ClaimHistory struct {
	Date          string               `json:"date"`
	UpdatedClaims map[int]AmendedClaim `json:"updated_claims"`
}

// InSuit is one litigated patent attached to a case record. Exactly one of
// PatentNumber and ApplicationNumber may be nil; a patent that issued from a
// cited application carries both.
type InSuit struct {
	PatentNumber      *string        `json:"patent_number"`
	ApplicationNumber *string        `json:"application_number"`
	PatentFound       bool           `json:"patent_found"`
	Claims            map[int]Claim  `json:"claims"`
	Extra             []ClaimHistory `json:"extra"`
	CitedClaims       []int          `json:"cited_claims"`
}

// Number pairs a patent number with the application it issued from. Either
// field may be empty, never both.
type Number struct {
	Patent      string
	Application string
}

// Record is the serialized form of a scraped patent page.
type Record struct {
	PatentNumber string        `json:"patent_number"`
	URL          string        `json:"url"`
	Title        string        `json:"title"`
	Abstract     string        `json:"abstract"`
	Claims       map[int]Claim `json:"claims"`
	Description  map[int]string `json:"description"`
}

// DataProvider supplies claim text for an issued patent. The caseID scopes
// on-disk caching to the case being parsed; found is false when the patent
// page does not exist or was skipped.
type DataProvider interface {
	PatentData(ctx context.Context, patentNumber, caseID string) (found bool, claims map[int]Claim, err error)
}

// ContinuityProvider resolves an application number to the numbers of the
// patents and applications continuing from it.
type ContinuityProvider interface {
	ChildNumbers(ctx context.Context, applicationNumber string) ([]string, error)
}

// HistoryProvider fetches the amended claim set from the prosecution
// transaction history, picking the document dated closest to closeToDate.
type HistoryProvider interface {
	ClaimHistory(ctx context.Context, applicationNumber, closeToDate string) (*ClaimHistory, error)
}
