package parsers

import (
	"fmt"

	"github.com/username/policyfeed/src/logger"
	"github.com/username/policyfeed/src/models"
)

// BatchReport counts what happened to each document of a batch.
type BatchReport struct {
	Received   int `json:"received"`
	Normalized int `json:"normalized"`
	Skipped    int `json:"skipped"`
	Dropped    int `json:"dropped"`
}

// IsNearEmpty reports whether a document has fewer than two populated fields.
// Such documents are placeholders left behind in the collections.
func IsNearEmpty(raw models.RawRecord) bool {
	populated := 0
	for _, v := range raw {
		if v == nil {
			continue
		}
		if s, ok := v.(string); ok && s == "" {
			continue
		}
		populated++
		if populated >= 2 {
			return false
		}
	}
	return true
}

// NormalizeBatch normalizes every document of one source. A document that
// fails, or panics, is logged and dropped without affecting the others.
func NormalizeBatch(source models.Source, docs []models.RawRecord) ([]models.CanonicalPolicy, BatchReport, error) {
	report := BatchReport{Received: len(docs)}
	normalizer, err := GetNormalizer(source)
	if err != nil {
		return nil, report, err
	}

	policies := make([]models.CanonicalPolicy, 0, len(docs))
	for i, raw := range docs {
		if IsNearEmpty(raw) {
			report.Skipped++
			continue
		}
		policy, err := normalizeOne(normalizer, raw)
		if err != nil {
			logger.L.Warn("Dropping document that failed normalization",
				"source", source, "index", i, "id", raw["_id"], "error", err)
			report.Dropped++
			continue
		}
		policies = append(policies, policy)
	}
	report.Normalized = len(policies)

	logger.L.Debug("Normalized batch", "source", source,
		"received", report.Received, "normalized", report.Normalized,
		"skipped", report.Skipped, "dropped", report.Dropped)
	return policies, report, nil
}

func normalizeOne(n Normalizer, raw models.RawRecord) (policy models.CanonicalPolicy, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic during normalization: %v", r)
		}
	}()
	return n.Normalize(raw)
}
