package parsers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/username/policyfeed/src/models"
)

type panickingNormalizer struct{}

func (panickingNormalizer) Source() models.Source { return models.SourceBroker1 }

func (panickingNormalizer) Normalize(raw models.RawRecord) (models.CanonicalPolicy, error) {
	if raw["boom"] == true {
		panic("unexpected shape")
	}
	return models.CanonicalPolicy{ID: "ok"}, nil
}

func TestGetNormalizer(t *testing.T) {
	for _, src := range models.AllSources {
		n, err := GetNormalizer(src)
		require.NoError(t, err)
		assert.Equal(t, src, n.Source())
	}

	_, err := GetNormalizer("broker3")
	assert.Error(t, err)
}

func TestIsNearEmpty(t *testing.T) {
	assert.True(t, IsNearEmpty(models.RawRecord{}))
	assert.True(t, IsNearEmpty(models.RawRecord{"_id": "x"}))
	assert.True(t, IsNearEmpty(models.RawRecord{"_id": "x", "PolicyNumber": "", "Premium": nil}))
	assert.False(t, IsNearEmpty(models.RawRecord{"_id": "x", "PolicyNumber": "P1"}))
	assert.False(t, IsNearEmpty(models.RawRecord{"_id": "x", "Premium": 0}))
}

func TestNormalizeBatchIsolatesFailures(t *testing.T) {
	docs := []models.RawRecord{
		{"_id": "1", "PolicyNumber": "POL001", "InsuredAmount": 100},
		{"_id": "only-id"},
		{"PolicyNumber": "POL003", "InsuredAmount": 300},
		{"_id": "4", "PolicyNumber": "POL004"},
	}

	policies, report, err := NormalizeBatch(models.SourceBroker1, docs)
	require.NoError(t, err)

	require.Len(t, policies, 2)
	assert.Equal(t, "1", policies[0].ID)
	assert.Equal(t, "4", policies[1].ID)
	for _, p := range policies {
		assert.Equal(t, models.SourceBroker1, p.Source)
	}
	assert.Equal(t, BatchReport{Received: 4, Normalized: 2, Skipped: 1, Dropped: 1}, report)
}

func TestNormalizeBatchEmpty(t *testing.T) {
	policies, report, err := NormalizeBatch(models.SourceBroker2, nil)
	require.NoError(t, err)
	assert.NotNil(t, policies)
	assert.Empty(t, policies)
	assert.Zero(t, report.Received)
}

func TestNormalizeBatchUnknownSource(t *testing.T) {
	_, _, err := NormalizeBatch("broker9", []models.RawRecord{{"_id": "1", "x": "y"}})
	assert.Error(t, err)
}

func TestNormalizeOneRecoversPanics(t *testing.T) {
	_, err := normalizeOne(panickingNormalizer{}, models.RawRecord{"boom": true})
	assert.ErrorContains(t, err, "panic during normalization")

	p, err := normalizeOne(panickingNormalizer{}, models.RawRecord{})
	require.NoError(t, err)
	assert.Equal(t, "ok", p.ID)
}

func TestFieldMappingCoversCanonicalFields(t *testing.T) {
	seen := map[string]bool{}
	for _, e := range FieldMapping {
		assert.False(t, seen[e.Canonical], "duplicate canonical field %s", e.Canonical)
		seen[e.Canonical] = true
		assert.NotEmpty(t, e.Broker1)
		assert.NotEmpty(t, e.Broker2)
	}
	assert.Len(t, FieldMapping, 23)
	assert.True(t, seen["insuredAmount"])
	assert.True(t, seen["taxAmount"])
}
