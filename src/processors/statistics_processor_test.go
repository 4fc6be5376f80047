package processors

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/username/policyfeed/src/models"
)

func newStats() StatisticsProcessor {
	return NewStatisticsProcessor(NewActivityProcessor())
}

func TestSortByStartDateDesc(t *testing.T) {
	input := []models.CanonicalPolicy{
		{ID: "a", StartDate: "01/01/2023"},
		{ID: "bad1", StartDate: "Not Known"},
		{ID: "b", StartDate: "2024-05-01"},
		{ID: "c", StartDate: "15/03/2024"},
		{ID: "bad2", StartDate: ""},
		{ID: "d", StartDate: "01/01/2023"},
	}

	got := newStats().SortByStartDateDesc(input)

	assert.Equal(t, []string{"b", "c", "a", "d", "bad1", "bad2"}, ids(got))
	assert.Equal(t, "a", input[0].ID, "input must not be reordered")
}

func TestPaginatePartitionsTheSet(t *testing.T) {
	sp := newStats()
	all := make([]models.CanonicalPolicy, 45)
	for i := range all {
		all[i] = models.CanonicalPolicy{ID: string(rune('A' + i))}
	}

	for _, limit := range []int{1, 7, 20, 45, 100} {
		var seen []models.CanonicalPolicy
		_, first := sp.Paginate(all, 1, limit)
		for page := 1; page <= first.TotalPages; page++ {
			items, pg := sp.Paginate(all, page, limit)
			assert.LessOrEqual(t, len(items), limit)
			assert.Equal(t, page < pg.TotalPages, pg.HasNextPage)
			assert.Equal(t, page > 1, pg.HasPrevPage)
			seen = append(seen, items...)
		}
		assert.Equal(t, all, seen, "limit %d", limit)
	}
}

func TestPaginateMetadata(t *testing.T) {
	sp := newStats()
	all := samplePolicies()

	items, pg := sp.Paginate(all, 2, 3)
	assert.Equal(t, []string{"4"}, ids(items))
	assert.Equal(t, models.Pagination{Page: 2, Limit: 3, TotalCount: 4, TotalPages: 2, HasNextPage: false, HasPrevPage: true}, pg)

	items, pg = sp.Paginate(all, 5, 3)
	assert.NotNil(t, items)
	assert.Empty(t, items)
	assert.False(t, pg.HasNextPage)

	for _, page := range []int{math.MaxInt, math.MaxInt/16 + 1} {
		items, pg = sp.Paginate(all, page, 16)
		assert.NotNil(t, items)
		assert.Empty(t, items, "page %d", page)
		assert.Equal(t, page, pg.Page)
		assert.False(t, pg.HasNextPage)
		assert.True(t, pg.HasPrevPage)
	}

	items, pg = sp.Paginate(nil, 1, 20)
	assert.Empty(t, items)
	assert.Equal(t, 0, pg.TotalPages)
	assert.False(t, pg.HasNextPage)
	assert.False(t, pg.HasPrevPage)
}

func TestSummarize(t *testing.T) {
	input := samplePolicies()
	input[0].Premium = 1000
	input[1].Premium = 500
	input[2].PolicyType = ""

	stats := newStats().Summarize(input)

	assert.Equal(t, 4, stats.TotalPolicies)
	assert.Equal(t, 225000.0, stats.TotalInsuredAmount)
	assert.Equal(t, 56250.0, stats.AverageInsuredAmount)
	assert.Equal(t, 1500.0, stats.TotalPremium)
	assert.Equal(t, 375.0, stats.AveragePremium)
	assert.Equal(t, map[string]int{"Property": 1, "Liability": 1, "Motor": 1}, stats.PolicyTypeBreakdown)
	assert.Equal(t, map[string]int{"Corporate": 1, "SME": 1, "corporate": 1, "Individual": 1}, stats.ClientTypeBreakdown)
	assert.Equal(t, models.SourceBreakdown{Broker1: 2, Broker2: 2}, stats.SourceBreakdown)
}

func TestSummarizeEmpty(t *testing.T) {
	stats := newStats().Summarize(nil)

	assert.Zero(t, stats.TotalPolicies)
	assert.Zero(t, stats.AverageInsuredAmount)
	assert.Zero(t, stats.AveragePremium)
	require.NotNil(t, stats.PolicyTypeBreakdown)
	require.NotNil(t, stats.ClientTypeBreakdown)
	assert.Empty(t, stats.PolicyTypeBreakdown)
}

func TestSummarizeActive(t *testing.T) {
	input := []models.CanonicalPolicy{
		{Source: models.SourceBroker1, ClientRef: "C1", InsuredAmount: 100, StartDate: "01/01/2024", RenewalDate: "01/01/2025", EndDate: "31/12/2024"},
		{Source: models.SourceBroker1, ClientRef: "C1", InsuredAmount: 200, StartDate: "01/03/2024", RenewalDate: "01/03/2025", EndDate: "01/04/2024"},
		{Source: models.SourceBroker2, ClientRef: "", InsuredAmount: 300, StartDate: "01/06/2024", RenewalDate: "01/06/2025", EndDate: "Not Known"},
		{Source: models.SourceBroker2, ClientRef: "C9", InsuredAmount: 400, StartDate: "01/01/2022", RenewalDate: "01/01/2023"},
		{Source: models.SourceBroker2, ClientRef: "C8", InsuredAmount: 500, StartDate: "TBC", RenewalDate: "01/01/2030"},
	}

	stats := newStats().SummarizeActive(input, fixedNow)

	assert.Equal(t, 3, stats.TotalActivePolicies)
	assert.Equal(t, 1, stats.TotalActiveCustomers)
	assert.Equal(t, 600.0, stats.TotalActiveInsuredAmount)
	// (365 + 31) / 2
	assert.Equal(t, 198, stats.AverageActivePolicyDuration)
	assert.Equal(t, models.SourceBreakdown{Broker1: 2, Broker2: 1}, stats.ActivePoliciesBySource)
}

func TestSummarizeActiveNoDurations(t *testing.T) {
	stats := newStats().SummarizeActive([]models.CanonicalPolicy{
		{Source: models.SourceBroker1, StartDate: "01/01/2024", RenewalDate: "01/01/2025"},
	}, fixedNow)

	assert.Equal(t, 1, stats.TotalActivePolicies)
	assert.Zero(t, stats.AverageActivePolicyDuration)
}

func TestDataQuality(t *testing.T) {
	dq := newStats().DataQuality([]models.CanonicalPolicy{
		{StartDate: "01/01/2024", RenewalDate: "01/01/2025"},
		{StartDate: "01/01/2024", RenewalDate: "Not Known"},
		{StartDate: "", RenewalDate: "01/01/2025"},
	})
	assert.Equal(t, models.DataQuality{PoliciesWithValidDates: 1, PoliciesWithMissingData: 2}, dq)
}
