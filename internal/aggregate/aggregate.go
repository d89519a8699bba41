// Package aggregate derives the report figures from a fetched record
// set. Everything here is a pure function of its input: same records in,
// same figures out, no hidden state between invocations.
package aggregate

import (
	"sort"

	"github.com/neozeit/dmarcscope/internal/models"
)

// Summarize computes the pass/fail breakdown in a single pass.
// Missing fields contribute their defaults (0 messages, false flags),
// so every record lands on exactly one side of each dimension and the
// two sides always sum to TotalMessages. Negative message counts are
// not rejected; they propagate arithmetically.
func Summarize(records []models.AuthenticationRecord) models.SummaryTotals {
	var totals models.SummaryTotals
	for _, record := range records {
		count := record.GetMessageCount()
		totals.TotalMessages += count
		if record.IsDKIMAligned() {
			totals.DKIMAligned += count
		} else {
			totals.DKIMUnaligned += count
		}
		if record.IsSPFAligned() {
			totals.SPFPassed += count
		} else {
			totals.SPFFailed += count
		}
		if record.HasPassedDMARC() {
			totals.DMARCPassed += count
		} else {
			totals.DMARCFailed += count
		}
	}
	return totals
}

// CountryRanking groups records by source country and sums message
// counts, ordered by count descending. Ties keep the order in which the
// countries were first seen in the input.
func CountryRanking(records []models.AuthenticationRecord) []models.CountryCount {
	position := make(map[string]int)
	var ranking []models.CountryCount

	for _, record := range records {
		country := record.GetSourceCountry()
		i, seen := position[country]
		if !seen {
			i = len(ranking)
			position[country] = i
			ranking = append(ranking, models.CountryCount{Country: country})
		}
		ranking[i].Messages += record.GetMessageCount()
	}

	sort.SliceStable(ranking, func(a, b int) bool {
		return ranking[a].Messages > ranking[b].Messages
	})
	return ranking
}

// OrganizationRanking groups records by reporting organization name,
// summing message counts. The contact email is overwritten by each
// record for that organization, so conflicting emails resolve to the
// last one seen. Ordering matches CountryRanking: count descending,
// first-seen order on ties.
func OrganizationRanking(records []models.AuthenticationRecord) []models.OrganizationStanding {
	position := make(map[string]int)
	var ranking []models.OrganizationStanding

	for _, record := range records {
		name := record.GetOrgName()
		i, seen := position[name]
		if !seen {
			i = len(ranking)
			position[name] = i
			ranking = append(ranking, models.OrganizationStanding{Name: name})
		}
		ranking[i].ContactEmail = record.GetOrgEmail()
		ranking[i].Messages += record.GetMessageCount()
	}

	sort.SliceStable(ranking, func(a, b int) bool {
		return ranking[a].Messages > ranking[b].Messages
	})
	return ranking
}
