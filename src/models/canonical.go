package models

// CanonicalPolicy is the unified, source independent representation of a
// policy. Normalizers build one per raw broker document; it is never
// persisted or mutated afterwards.
type CanonicalPolicy struct {
	ID     string `json:"id"`
	Source Source `json:"source"`

	PolicyNumber  string  `json:"policyNumber"`
	InsuredAmount float64 `json:"insuredAmount"`

	// Dates keep the broker's text; they are parsed on demand.
	StartDate     string `json:"startDate"`
	EndDate       string `json:"endDate"`
	EffectiveDate string `json:"effectiveDate"`
	RenewalDate   string `json:"renewalDate"`

	AdminFee   float64 `json:"adminFee"`
	Commission float64 `json:"commission"`
	TaxAmount  float64 `json:"taxAmount"`
	Premium    float64 `json:"premium"`
	PolicyFee  float64 `json:"policyFee"`

	BusinessDescription string `json:"businessDescription"`
	BusinessEvent       string `json:"businessEvent"`
	ClientType          string `json:"clientType"`
	ClientRef           string `json:"clientRef"`
	InsurerPolicyNumber string `json:"insurerPolicyNumber"`
	PolicyType          string `json:"policyType"`
	Insurer             string `json:"insurer"`
	Product             string `json:"product"`
	RootPolicyRef       string `json:"rootPolicyRef"`

	CreatedAt *string `json:"createdAt,omitempty"`
	UpdatedAt *string `json:"updatedAt,omitempty"`
}
