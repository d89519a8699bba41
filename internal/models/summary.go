package models

// SummaryTotals is the pass/fail breakdown over a single record set.
// For each dimension the aligned and unaligned counts sum to
// TotalMessages because both sides are computed over the same records.
type SummaryTotals struct {
	TotalMessages  int64 `json:"totalMessages"`
	DKIMAligned    int64 `json:"dkimAligned"`
	DKIMUnaligned  int64 `json:"dkimUnaligned"`
	SPFPassed      int64 `json:"spfPassed"`
	SPFFailed      int64 `json:"spfFailed"`
	DMARCPassed    int64 `json:"dmarcPassed"`
	DMARCFailed    int64 `json:"dmarcFailed"`
}

// CountryCount is one entry of the messages-by-country ranking.
type CountryCount struct {
	Country  string `json:"country"`
	Messages int64  `json:"messages"`
}

// OrganizationStanding is one entry of the reporting-organizations
// ranking. ContactEmail carries whatever email the last record for that
// organization reported; conflicting emails are overwritten, not merged.
type OrganizationStanding struct {
	Name         string `json:"name"`
	ContactEmail string `json:"contactEmail"`
	Messages     int64  `json:"messages"`
}
