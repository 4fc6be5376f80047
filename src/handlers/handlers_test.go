package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/username/policyfeed/src/database"
	"github.com/username/policyfeed/src/models"
	"github.com/username/policyfeed/src/processors"
	"github.com/username/policyfeed/src/services"
)

var testNow = time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

var testConfig = RouterConfig{
	AllowedOrigins: []string{"http://localhost:3000"},
	RateLimitRPS:   1000,
	RateLimitBurst: 1000,
}

func seededStore(t *testing.T) *database.DocumentStore {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "brokers.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	store := database.NewDocumentStore(db)
	ctx := context.Background()
	_, err = store.InsertDocuments(ctx, models.SourceBroker1, []models.RawRecord{
		{"_id": "b1-1", "PolicyNumber": "POL001", "InsuredAmount": 100000, "StartDate": "01/01/2024", "RenewalDate": "01/01/2025", "PolicyType": "Property"},
		{"_id": "b1-2", "PolicyNumber": "POL002", "InsuredAmount": "50000", "StartDate": "01/01/2023", "RenewalDate": "01/01/2024", "PolicyType": "Liability"},
		{"_id": "b1-blank"},
	})
	require.NoError(t, err)
	_, err = store.InsertDocuments(ctx, models.SourceBroker2, []models.RawRecord{
		{"_id": "b2-1", "PolicyRef": "REF001", "CoverageAmount": "75000", "InitiationDate": "01/03/2024", "NextRenewalDate": "01/03/2025", "ContractCategory": "Property"},
		{"_id": "b2-2", "PolicyRef": "REF002", "CoverageAmount": 0, "CoverageCost": "TBC", "InitiationDate": "Not Known"},
	})
	require.NoError(t, err)
	return store
}

func newTestRouter(t *testing.T, cfg RouterConfig) http.Handler {
	t.Helper()
	store := seededStore(t)
	feed := services.NewFeedService(
		services.NewCollectionService(services.NewDatabaseRetriever(store), time.Second),
		processors.NewFilterProcessor(),
		processors.NewStatisticsProcessor(processors.NewActivityProcessor()),
		func() time.Time { return testNow },
	)
	return NewRouter(cfg, NewBrokerHandler(store), NewFeedHandler(feed, services.NewExportService()))
}

func doGet(h http.Handler, target string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestGetRawCollection(t *testing.T) {
	rec := doGet(newTestRouter(t, testConfig), "/api/broker1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body models.SourceBatch
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, 3, *body.DocumentCount)
	assert.Equal(t, "Database connection successful", body.Message)
	assert.Len(t, body.Documents, 3)
}

func TestTestDB(t *testing.T) {
	rec := doGet(newTestRouter(t, testConfig), "/api/test-db", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(5), body["documentCount"])
}

func TestGetStandardizedDefaultsInvalidPaging(t *testing.T) {
	rec := doGet(newTestRouter(t, testConfig), "/api/brokers/standardized?page=invalid&limit=abc", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("ETag"))

	var body models.FeedResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, 1, body.Pagination.Page)
	assert.Equal(t, 20, body.Pagination.Limit)
	assert.Equal(t, 4, body.Pagination.TotalCount)
	assert.Equal(t, 4, body.Metadata.TotalRecords)
	assert.Equal(t, 225000.0, body.Statistics.TotalInsuredAmount)
	assert.Equal(t, 56250.0, body.Statistics.AverageInsuredAmount)
	assert.Equal(t, models.SourceBreakdown{Broker1: 2, Broker2: 2}, body.Statistics.SourceBreakdown)
	assert.Equal(t, 2, body.Statistics.ActivePolicies.TotalActivePolicies)
	assert.Equal(t, 50.0, body.Metadata.ActivePoliciesPercentage)
	assert.Equal(t, "b2-1", body.Data[0].ID)
}

func TestGetStandardizedHonoursETag(t *testing.T) {
	router := newTestRouter(t, testConfig)

	first := doGet(router, "/api/brokers/standardized?policyType=property", nil)
	require.Equal(t, http.StatusOK, first.Code)
	etag := first.Header().Get("ETag")
	require.NotEmpty(t, etag)

	second := doGet(router, "/api/brokers/standardized?policyType=property", map[string]string{"If-None-Match": etag})
	assert.Equal(t, http.StatusNotModified, second.Code)
	assert.Empty(t, second.Body.String())

	other := doGet(router, "/api/brokers/standardized?policyType=liability", map[string]string{"If-None-Match": etag})
	assert.Equal(t, http.StatusOK, other.Code)
}

func TestExportStandardized(t *testing.T) {
	rec := doGet(newTestRouter(t, testConfig), "/api/brokers/standardized/export?source=broker1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, xlsxContentType, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment; filename=")
	assert.Equal(t, "PK", rec.Body.String()[:2])
}

func TestGetFieldMapping(t *testing.T) {
	rec := doGet(newTestRouter(t, testConfig), "/api/brokers/field-mapping", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool
		Fields  []struct {
			Canonical string `json:"canonical"`
			Broker1   string `json:"broker1"`
			Broker2   string `json:"broker2"`
		}
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	require.NotEmpty(t, body.Fields)
	found := false
	for _, f := range body.Fields {
		if f.Canonical == "taxAmount" {
			found = true
			assert.Equal(t, "IPTAmount", f.Broker1)
			assert.Equal(t, "TaxAmount", f.Broker2)
		}
	}
	assert.True(t, found)
}

func TestGetAPIDoc(t *testing.T) {
	rec := doGet(newTestRouter(t, testConfig), "/api/doc", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "3.0.0", body["openapi"])
	assert.Contains(t, body["paths"], "/api/brokers/standardized")
}

type failingFeed struct{}

func (failingFeed) Query(context.Context, models.FeedQuery) (*models.FeedResponse, error) {
	return nil, fmt.Errorf("%w: boom", services.ErrFeedFailed)
}

func (failingFeed) Policies(context.Context, models.FeedQuery) ([]models.CanonicalPolicy, error) {
	return nil, errors.New("boom")
}

func TestGetStandardizedFailure(t *testing.T) {
	router := NewRouter(testConfig, NewBrokerHandler(seededStore(t)), NewFeedHandler(failingFeed{}, services.NewExportService()))

	rec := doGet(router, "/api/brokers/standardized", nil)
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, services.ErrFeedFailed.Error(), body.Error)
	assert.NotContains(t, rec.Body.String(), "boom")
	assert.Equal(t, "Failed to retrieve standardized broker data", body.Message)

	rec = doGet(router, "/api/brokers/standardized/export", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRateLimit(t *testing.T) {
	router := newTestRouter(t, RouterConfig{RateLimitRPS: 0.001, RateLimitBurst: 1})

	assert.Equal(t, http.StatusOK, doGet(router, "/api/brokers/field-mapping", nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, doGet(router, "/api/brokers/field-mapping", nil).Code)
}

func TestCORS(t *testing.T) {
	router := newTestRouter(t, testConfig)

	req := httptest.NewRequest(http.MethodOptions, "/api/brokers/standardized", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Expose-Headers"), "ETag")

	rec = doGet(router, "/api/test-db", map[string]string{"Origin": "http://evil.test"})
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestNotFound(t *testing.T) {
	rec := doGet(newTestRouter(t, testConfig), "/api/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
