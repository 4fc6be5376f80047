package models

// Source identifies the broker a raw document came from.
type Source string

const (
	SourceBroker1 Source = "broker1"
	SourceBroker2 Source = "broker2"
)

// AllSources lists every broker in merge order.
var AllSources = []Source{SourceBroker1, SourceBroker2}

// IsValid reports whether s names a known broker.
func (s Source) IsValid() bool {
	return s == SourceBroker1 || s == SourceBroker2
}

// RawRecord is one broker document as stored: field name to loosely typed value.
type RawRecord map[string]any

// SourceBatch is what a broker endpoint returns for a collection read.
type SourceBatch struct {
	Success       bool        `json:"success"`
	DocumentCount *int        `json:"documentCount,omitempty"`
	Message       string      `json:"message,omitempty"`
	Error         string      `json:"error,omitempty"`
	Documents     []RawRecord `json:"documents"`
}

// SourceOutcome records how retrieval went for one broker.
type SourceOutcome struct {
	Source        Source  `json:"source"`
	Success       bool    `json:"success"`
	DocumentCount int     `json:"documentCount"`
	Error         *string `json:"error"`
}
