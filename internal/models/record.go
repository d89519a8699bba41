package models

import (
	"github.com/neozeit/dmarcscope/internal/utils"
)

// UnknownLabel is the fallback for string fields the reporting
// organization left out of the aggregate record.
const UnknownLabel = "Unknown"

// AuthenticationRecord is one row of a DMARC aggregate report as stored
// in Elasticsearch. Every field is optional; pointers keep a missing
// field distinguishable from an explicit zero value.
type AuthenticationRecord struct {
	DateBegin     *int64  `json:"date_begin,omitempty"`
	DateEnd       *int64  `json:"date_end,omitempty"`
	MessageCount  *int64  `json:"message_count,omitempty"`
	DKIMAligned   *bool   `json:"dkim_aligned,omitempty"`
	SPFAligned    *bool   `json:"spf_aligned,omitempty"`
	PassedDMARC   *bool   `json:"passed_dmarc,omitempty"`
	SourceCountry *string `json:"source_country,omitempty"`
	OrgName       *string `json:"org_name,omitempty"`
	OrgEmail      *string `json:"org_email,omitempty"`
}

func (r AuthenticationRecord) GetMessageCount() int64 {
	return utils.GetOrDefault(r.MessageCount, 0)
}

func (r AuthenticationRecord) IsDKIMAligned() bool {
	return utils.GetOrDefault(r.DKIMAligned, false)
}

func (r AuthenticationRecord) IsSPFAligned() bool {
	return utils.GetOrDefault(r.SPFAligned, false)
}

func (r AuthenticationRecord) HasPassedDMARC() bool {
	return utils.GetOrDefault(r.PassedDMARC, false)
}

func (r AuthenticationRecord) GetSourceCountry() string {
	return utils.GetOrDefault(r.SourceCountry, UnknownLabel)
}

func (r AuthenticationRecord) GetOrgName() string {
	return utils.GetOrDefault(r.OrgName, UnknownLabel)
}

func (r AuthenticationRecord) GetOrgEmail() string {
	return utils.GetOrDefault(r.OrgEmail, UnknownLabel)
}
