package processors

import (
	"math"
	"time"

	"github.com/username/policyfeed/src/models"
	"github.com/username/policyfeed/src/utils"
)

type activityProcessorImpl struct{}

func NewActivityProcessor() ActivityProcessor {
	return &activityProcessorImpl{}
}

// IsActive reports whether the coverage window [start, renewal) contains now.
// A policy with either date missing or unparseable is inactive.
func (p *activityProcessorImpl) IsActive(policy models.CanonicalPolicy, now time.Time) bool {
	start, ok := utils.ParseDate(policy.StartDate)
	if !ok {
		return false
	}
	renewal, ok := utils.ParseDate(policy.RenewalDate)
	if !ok {
		return false
	}
	return !start.After(now) && renewal.After(now)
}

// DurationDays returns the whole days between start and end, rounded up.
func (p *activityProcessorImpl) DurationDays(policy models.CanonicalPolicy) (int, bool) {
	start, ok := utils.ParseDate(policy.StartDate)
	if !ok {
		return 0, false
	}
	end, ok := utils.ParseDate(policy.EndDate)
	if !ok {
		return 0, false
	}
	days := math.Abs(end.Sub(start).Hours()) / 24
	return int(math.Ceil(days)), true
}
