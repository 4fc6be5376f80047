package processors

import (
	"time"

	"github.com/username/policyfeed/src/models"
)

// ActivityProcessor derives temporal state from a policy's dates.
type ActivityProcessor interface {
	IsActive(p models.CanonicalPolicy, now time.Time) bool
	DurationDays(p models.CanonicalPolicy) (int, bool)
}

// FilterProcessor narrows a merged policy set.
type FilterProcessor interface {
	Apply(policies []models.CanonicalPolicy, filters models.PolicyFilters) []models.CanonicalPolicy
}

// StatisticsProcessor orders, pages and aggregates policy sets.
type StatisticsProcessor interface {
	SortByStartDateDesc(policies []models.CanonicalPolicy) []models.CanonicalPolicy
	Paginate(policies []models.CanonicalPolicy, page, limit int) ([]models.CanonicalPolicy, models.Pagination)
	Summarize(policies []models.CanonicalPolicy) models.Statistics
	SummarizeActive(policies []models.CanonicalPolicy, now time.Time) models.ActivePolicyStats
	DataQuality(policies []models.CanonicalPolicy) models.DataQuality
}
