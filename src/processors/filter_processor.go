// src/processors/filter_processor.go
package processors

import (
	"strings"

	"github.com/username/policyfeed/src/models"
)

type filterProcessorImpl struct{}

func NewFilterProcessor() FilterProcessor {
	return &filterProcessorImpl{}
}

// Apply runs each filter stage in turn: source, policy type, client type,
// free-text search, then the insured amount range. The input is not modified.
func (p *filterProcessorImpl) Apply(policies []models.CanonicalPolicy, filters models.PolicyFilters) []models.CanonicalPolicy {
	out := make([]models.CanonicalPolicy, len(policies))
	copy(out, policies)

	if filters.Source != "" {
		out = keep(out, func(c models.CanonicalPolicy) bool { return c.Source == filters.Source })
	}
	if filters.PolicyType != "" {
		out = keep(out, func(c models.CanonicalPolicy) bool { return strings.EqualFold(c.PolicyType, filters.PolicyType) })
	}
	if filters.ClientType != "" {
		out = keep(out, func(c models.CanonicalPolicy) bool { return strings.EqualFold(c.ClientType, filters.ClientType) })
	}
	if filters.Search != "" {
		term := strings.ToLower(filters.Search)
		out = keep(out, func(c models.CanonicalPolicy) bool { return matchesSearch(c, term) })
	}
	if filters.MinAmount != nil {
		lo := *filters.MinAmount
		out = keep(out, func(c models.CanonicalPolicy) bool { return c.InsuredAmount >= lo })
	}
	if filters.MaxAmount != nil {
		hi := *filters.MaxAmount
		out = keep(out, func(c models.CanonicalPolicy) bool { return c.InsuredAmount <= hi })
	}
	return out
}

func matchesSearch(c models.CanonicalPolicy, term string) bool {
	for _, field := range []string{c.PolicyNumber, c.BusinessDescription, c.Insurer, c.ClientRef} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

// keep filters in place; callers own the slice.
func keep(policies []models.CanonicalPolicy, pred func(models.CanonicalPolicy) bool) []models.CanonicalPolicy {
	n := 0
	for _, c := range policies {
		if pred(c) {
			policies[n] = c
			n++
		}
	}
	return policies[:n]
}
