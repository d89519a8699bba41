package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/neozeit/dmarcscope/internal/models"
	"github.com/neozeit/dmarcscope/internal/utils"
)

func record(count int64, dkim, spf, dmarc bool, country, org, email string) models.AuthenticationRecord {
	return models.AuthenticationRecord{
		MessageCount:  utils.Int64Ptr(count),
		DKIMAligned:   utils.BoolPtr(dkim),
		SPFAligned:    utils.BoolPtr(spf),
		PassedDMARC:   utils.BoolPtr(dmarc),
		SourceCountry: utils.StringPtr(country),
		OrgName:       utils.StringPtr(org),
		OrgEmail:      utils.StringPtr(email),
	}
}

func TestSummarize(t *testing.T) {
	// Arrange
	records := []models.AuthenticationRecord{
		record(10, true, true, true, "US", "google.com", "noreply@google.com"),
		record(5, false, true, false, "US", "yahoo.com", "postmaster@yahoo.com"),
		record(3, true, false, false, "DE", "google.com", "noreply@google.com"),
	}

	// Act
	totals := Summarize(records)

	// Assert
	assert.Equal(t, int64(18), totals.TotalMessages)
	assert.Equal(t, int64(13), totals.DKIMAligned)
	assert.Equal(t, int64(5), totals.DKIMUnaligned)
	assert.Equal(t, int64(15), totals.SPFPassed)
	assert.Equal(t, int64(3), totals.SPFFailed)
	assert.Equal(t, int64(10), totals.DMARCPassed)
	assert.Equal(t, int64(8), totals.DMARCFailed)
}

func TestSummarize_PairsSumToTotal(t *testing.T) {
	// Arrange
	records := []models.AuthenticationRecord{
		record(7, true, false, true, "US", "a", "a@a"),
		record(11, false, false, false, "FR", "b", "b@b"),
		record(2, true, true, false, "DE", "c", "c@c"),
		{MessageCount: utils.Int64Ptr(9)},
		{},
	}

	// Act
	totals := Summarize(records)

	// Assert
	assert.Equal(t, totals.TotalMessages, totals.DKIMAligned+totals.DKIMUnaligned)
	assert.Equal(t, totals.TotalMessages, totals.SPFPassed+totals.SPFFailed)
	assert.Equal(t, totals.TotalMessages, totals.DMARCPassed+totals.DMARCFailed)
}

func TestSummarize_EmptyInput(t *testing.T) {
	// Act
	totals := Summarize(nil)

	// Assert
	assert.Equal(t, models.SummaryTotals{}, totals)
}

func TestSummarize_MissingFieldsDefault(t *testing.T) {
	// Arrange: a record with no fields at all contributes 0 messages
	// and fails every dimension.
	records := []models.AuthenticationRecord{
		{},
		record(4, false, false, false, "US", "a", "a@a"),
	}

	// Act
	totals := Summarize(records)

	// Assert
	assert.Equal(t, int64(4), totals.TotalMessages)
	assert.Equal(t, int64(0), totals.DKIMAligned)
	assert.Equal(t, int64(4), totals.DKIMUnaligned)
	assert.Equal(t, int64(0), totals.DMARCPassed)
	assert.Equal(t, int64(4), totals.DMARCFailed)
}

func TestSummarize_NegativeCountsPropagate(t *testing.T) {
	// Arrange
	records := []models.AuthenticationRecord{
		record(10, true, true, true, "US", "a", "a@a"),
		record(-4, true, true, true, "US", "a", "a@a"),
	}

	// Act
	totals := Summarize(records)

	// Assert
	assert.Equal(t, int64(6), totals.TotalMessages)
	assert.Equal(t, int64(6), totals.DKIMAligned)
}

func TestCountryRanking(t *testing.T) {
	// Arrange: the reference scenario. The DE record carries only a
	// count and a country.
	records := []models.AuthenticationRecord{
		{MessageCount: utils.Int64Ptr(10), DKIMAligned: utils.BoolPtr(true), SourceCountry: utils.StringPtr("US")},
		{MessageCount: utils.Int64Ptr(5), DKIMAligned: utils.BoolPtr(false), SourceCountry: utils.StringPtr("US")},
		{MessageCount: utils.Int64Ptr(3), SourceCountry: utils.StringPtr("DE")},
	}

	// Act
	ranking := CountryRanking(records)
	totals := Summarize(records)

	// Assert
	assert.Equal(t, []models.CountryCount{
		{Country: "US", Messages: 15},
		{Country: "DE", Messages: 3},
	}, ranking)
	assert.Equal(t, int64(18), totals.TotalMessages)
	assert.Equal(t, int64(10), totals.DKIMAligned)
	assert.Equal(t, int64(8), totals.DKIMUnaligned)
}

func TestCountryRanking_MissingCountryGroupsAsUnknown(t *testing.T) {
	// Arrange
	records := []models.AuthenticationRecord{
		{MessageCount: utils.Int64Ptr(2)},
		{MessageCount: utils.Int64Ptr(3), SourceCountry: utils.StringPtr("US")},
		{MessageCount: utils.Int64Ptr(4)},
	}

	// Act
	ranking := CountryRanking(records)

	// Assert
	assert.Equal(t, []models.CountryCount{
		{Country: models.UnknownLabel, Messages: 6},
		{Country: "US", Messages: 3},
	}, ranking)
}

func TestCountryRanking_TiesKeepFirstSeenOrder(t *testing.T) {
	// Arrange: three countries with equal totals.
	records := []models.AuthenticationRecord{
		{MessageCount: utils.Int64Ptr(5), SourceCountry: utils.StringPtr("NL")},
		{MessageCount: utils.Int64Ptr(5), SourceCountry: utils.StringPtr("BE")},
		{MessageCount: utils.Int64Ptr(5), SourceCountry: utils.StringPtr("LU")},
	}

	// Act
	ranking := CountryRanking(records)

	// Assert
	assert.Equal(t, []models.CountryCount{
		{Country: "NL", Messages: 5},
		{Country: "BE", Messages: 5},
		{Country: "LU", Messages: 5},
	}, ranking)
}

func TestCountryRanking_EmptyInput(t *testing.T) {
	// Act
	ranking := CountryRanking([]models.AuthenticationRecord{})

	// Assert
	assert.Empty(t, ranking)
}

func TestCountryRanking_Deterministic(t *testing.T) {
	// Arrange
	records := []models.AuthenticationRecord{
		{MessageCount: utils.Int64Ptr(1), SourceCountry: utils.StringPtr("US")},
		{MessageCount: utils.Int64Ptr(1), SourceCountry: utils.StringPtr("DE")},
		{MessageCount: utils.Int64Ptr(1), SourceCountry: utils.StringPtr("FR")},
		{MessageCount: utils.Int64Ptr(1), SourceCountry: utils.StringPtr("US")},
	}

	// Act
	first := CountryRanking(records)
	second := CountryRanking(records)

	// Assert
	assert.Equal(t, first, second)
}

func TestOrganizationRanking(t *testing.T) {
	// Arrange
	records := []models.AuthenticationRecord{
		record(10, true, true, true, "US", "google.com", "noreply-dmarc@google.com"),
		record(2, false, false, false, "FR", "yahoo.com", "postmaster@yahoo.com"),
		record(5, true, true, true, "DE", "google.com", "noreply-dmarc@google.com"),
	}

	// Act
	ranking := OrganizationRanking(records)

	// Assert
	assert.Equal(t, []models.OrganizationStanding{
		{Name: "google.com", ContactEmail: "noreply-dmarc@google.com", Messages: 15},
		{Name: "yahoo.com", ContactEmail: "postmaster@yahoo.com", Messages: 2},
	}, ranking)
}

func TestOrganizationRanking_LastEmailWins(t *testing.T) {
	// Arrange: same organization, conflicting contact emails.
	records := []models.AuthenticationRecord{
		record(10, true, true, true, "US", "google.com", "old@google.com"),
		record(5, true, true, true, "US", "google.com", "new@google.com"),
	}

	// Act
	ranking := OrganizationRanking(records)

	// Assert
	assert.Len(t, ranking, 1)
	assert.Equal(t, "new@google.com", ranking[0].ContactEmail)
	assert.Equal(t, int64(15), ranking[0].Messages)
}

func TestOrganizationRanking_MissingNameGroupsAsUnknown(t *testing.T) {
	// Arrange
	records := []models.AuthenticationRecord{
		{MessageCount: utils.Int64Ptr(1)},
		{MessageCount: utils.Int64Ptr(2)},
	}

	// Act
	ranking := OrganizationRanking(records)

	// Assert
	assert.Equal(t, []models.OrganizationStanding{
		{Name: models.UnknownLabel, ContactEmail: models.UnknownLabel, Messages: 3},
	}, ranking)
}

func TestOrganizationRanking_SortedDescendingStable(t *testing.T) {
	// Arrange
	records := []models.AuthenticationRecord{
		record(1, true, true, true, "US", "small-first", "a@a"),
		record(9, true, true, true, "US", "big", "b@b"),
		record(1, true, true, true, "US", "small-second", "c@c"),
	}

	// Act
	ranking := OrganizationRanking(records)

	// Assert
	assert.Equal(t, "big", ranking[0].Name)
	assert.Equal(t, "small-first", ranking[1].Name)
	assert.Equal(t, "small-second", ranking[2].Name)
}
