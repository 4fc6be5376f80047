package processors

import (
	"math"
	"sort"
	"time"

	"github.com/username/policyfeed/src/models"
	"github.com/username/policyfeed/src/utils"
)

type statisticsProcessorImpl struct {
	activity ActivityProcessor
}

func NewStatisticsProcessor(activity ActivityProcessor) StatisticsProcessor {
	return &statisticsProcessorImpl{activity: activity}
}

// SortByStartDateDesc returns a copy ordered by start date, most recent first.
// Policies without a parseable start date keep their relative order at the end.
func (p *statisticsProcessorImpl) SortByStartDateDesc(policies []models.CanonicalPolicy) []models.CanonicalPolicy {
	type keyed struct {
		policy models.CanonicalPolicy
		start  time.Time
		ok     bool
	}
	items := make([]keyed, len(policies))
	for i, c := range policies {
		start, ok := utils.ParseDate(c.StartDate)
		items[i] = keyed{policy: c, start: start, ok: ok}
	}

	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.ok != b.ok {
			return a.ok
		}
		if !a.ok {
			return false
		}
		return a.start.After(b.start)
	})

	out := make([]models.CanonicalPolicy, len(items))
	for i, it := range items {
		out[i] = it.policy
	}
	return out
}

// Paginate slices one page out of policies. page and limit must already be
// clamped to valid values by the caller.
func (p *statisticsProcessorImpl) Paginate(policies []models.CanonicalPolicy, page, limit int) ([]models.CanonicalPolicy, models.Pagination) {
	if page < 1 {
		page = models.DefaultPage
	}
	if limit < 1 {
		limit = models.DefaultLimit
	}
	total := len(policies)
	totalPages := int(math.Ceil(float64(total) / float64(limit)))

	pageItems := []models.CanonicalPolicy{}
	// Compare before multiplying: (page-1)*limit overflows for huge pages.
	if total > 0 && page-1 <= (total-1)/limit {
		start := (page - 1) * limit
		end := utils.MinInt(start+limit, total)
		pageItems = policies[start:end]
	}

	return pageItems, models.Pagination{
		Page:        page,
		Limit:       limit,
		TotalCount:  total,
		TotalPages:  totalPages,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
	}
}

func (p *statisticsProcessorImpl) Summarize(policies []models.CanonicalPolicy) models.Statistics {
	stats := models.Statistics{
		TotalPolicies:       len(policies),
		PolicyTypeBreakdown: map[string]int{},
		ClientTypeBreakdown: map[string]int{},
	}
	for _, c := range policies {
		stats.TotalInsuredAmount += c.InsuredAmount
		stats.TotalPremium += c.Premium
		if c.PolicyType != "" {
			stats.PolicyTypeBreakdown[c.PolicyType]++
		}
		if c.ClientType != "" {
			stats.ClientTypeBreakdown[c.ClientType]++
		}
		stats.SourceBreakdown.Add(c.Source)
	}
	if n := len(policies); n > 0 {
		stats.AverageInsuredAmount = stats.TotalInsuredAmount / float64(n)
		stats.AveragePremium = stats.TotalPremium / float64(n)
	}
	return stats
}

// SummarizeActive aggregates the policies active at now. The same now must be
// used for every policy of one pass.
func (p *statisticsProcessorImpl) SummarizeActive(policies []models.CanonicalPolicy, now time.Time) models.ActivePolicyStats {
	var stats models.ActivePolicyStats
	customers := make(map[string]struct{})
	durationTotal, durationCount := 0, 0

	for _, c := range policies {
		if !p.activity.IsActive(c, now) {
			continue
		}
		stats.TotalActivePolicies++
		stats.TotalActiveInsuredAmount += c.InsuredAmount
		stats.ActivePoliciesBySource.Add(c.Source)
		if c.ClientRef != "" {
			customers[c.ClientRef] = struct{}{}
		}
		if days, ok := p.activity.DurationDays(c); ok {
			durationTotal += days
			durationCount++
		}
	}
	stats.TotalActiveCustomers = len(customers)
	if durationCount > 0 {
		stats.AverageActivePolicyDuration = int(math.Round(float64(durationTotal) / float64(durationCount)))
	}
	return stats
}

// DataQuality counts policies whose start and renewal dates both parse.
func (p *statisticsProcessorImpl) DataQuality(policies []models.CanonicalPolicy) models.DataQuality {
	var dq models.DataQuality
	for _, c := range policies {
		_, startOK := utils.ParseDate(c.StartDate)
		_, renewalOK := utils.ParseDate(c.RenewalDate)
		if startOK && renewalOK {
			dq.PoliciesWithValidDates++
		} else {
			dq.PoliciesWithMissingData++
		}
	}
	return dq
}
