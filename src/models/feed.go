package models

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

// FeedQuery holds the sanitised parameters of a standardized feed request.
type FeedQuery struct {
	Page       int
	Limit      int
	Source     Source
	PolicyType string
	ClientType string
	Search     string
	MinAmount  *float64
	MaxAmount  *float64
}

// Filters returns the non-paging part of the query.
func (q FeedQuery) Filters() PolicyFilters {
	return PolicyFilters{
		Source:     q.Source,
		PolicyType: q.PolicyType,
		ClientType: q.ClientType,
		Search:     q.Search,
		MinAmount:  q.MinAmount,
		MaxAmount:  q.MaxAmount,
	}
}

// PolicyFilters narrows a merged policy set. Zero values disable a filter.
type PolicyFilters struct {
	Source     Source
	PolicyType string
	ClientType string
	Search     string
	MinAmount  *float64
	MaxAmount  *float64
}

type Pagination struct {
	Page        int  `json:"page"`
	Limit       int  `json:"limit"`
	TotalCount  int  `json:"totalCount"`
	TotalPages  int  `json:"totalPages"`
	HasNextPage bool `json:"hasNextPage"`
	HasPrevPage bool `json:"hasPrevPage"`
}

type SourceBreakdown struct {
	Broker1 int `json:"broker1"`
	Broker2 int `json:"broker2"`
}

// Add counts one policy against its source.
func (b *SourceBreakdown) Add(s Source) {
	switch s {
	case SourceBroker1:
		b.Broker1++
	case SourceBroker2:
		b.Broker2++
	}
}

type ActivePolicyStats struct {
	TotalActivePolicies         int             `json:"totalActivePolicies"`
	TotalActiveCustomers        int             `json:"totalActiveCustomers"`
	TotalActiveInsuredAmount    float64         `json:"totalActiveInsuredAmount"`
	AverageActivePolicyDuration int             `json:"averageActivePolicyDuration"`
	ActivePoliciesBySource      SourceBreakdown `json:"activePoliciesBySource"`
}

type Statistics struct {
	TotalPolicies        int               `json:"totalPolicies"`
	TotalInsuredAmount   float64           `json:"totalInsuredAmount"`
	AverageInsuredAmount float64           `json:"averageInsuredAmount"`
	TotalPremium         float64           `json:"totalPremium"`
	AveragePremium       float64           `json:"averagePremium"`
	PolicyTypeBreakdown  map[string]int    `json:"policyTypeBreakdown"`
	ClientTypeBreakdown  map[string]int    `json:"clientTypeBreakdown"`
	SourceBreakdown      SourceBreakdown   `json:"sourceBreakdown"`
	ActivePolicies       ActivePolicyStats `json:"activePolicies"`
}

type DataQuality struct {
	PoliciesWithValidDates  int `json:"policiesWithValidDates"`
	PoliciesWithMissingData int `json:"policiesWithMissingData"`
}

type Metadata struct {
	LastUpdated              string          `json:"lastUpdated"`
	TotalRecords             int             `json:"totalRecords"`
	ActivePoliciesPercentage float64         `json:"activePoliciesPercentage"`
	DataQuality              DataQuality     `json:"dataQuality"`
	Sources                  []SourceOutcome `json:"sources"`
}

// FeedResponse is the body of the standardized feed route.
type FeedResponse struct {
	Success    bool              `json:"success"`
	Data       []CanonicalPolicy `json:"data"`
	Pagination Pagination        `json:"pagination"`
	Statistics Statistics        `json:"statistics"`
	Metadata   Metadata          `json:"metadata"`
	Message    string            `json:"message"`
}

// ErrorResponse is the envelope returned when the feed cannot be built.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
}
