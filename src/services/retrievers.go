package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/username/policyfeed/src/database"
	"github.com/username/policyfeed/src/logger"
	"github.com/username/policyfeed/src/models"
)

const ckRawBatch = "raw_batch_%s"

// DatabaseRetriever reads batches straight from the document store.
type DatabaseRetriever struct {
	store *database.DocumentStore
}

func NewDatabaseRetriever(store *database.DocumentStore) *DatabaseRetriever {
	return &DatabaseRetriever{store: store}
}

func (r *DatabaseRetriever) FetchBatch(ctx context.Context, source models.Source) (*models.SourceBatch, error) {
	docs, err := r.store.FetchDocuments(ctx, source)
	if err != nil {
		return nil, err
	}
	count := len(docs)
	return &models.SourceBatch{
		Success:       true,
		DocumentCount: &count,
		Message:       "Database connection successful",
		Documents:     docs,
	}, nil
}

// HTTPRetriever reads batches from a broker API exposing GET /api/{source}.
type HTTPRetriever struct {
	baseURL    string
	httpClient *http.Client
}

func NewHTTPRetriever(baseURL string, timeout time.Duration) *HTTPRetriever {
	return &HTTPRetriever{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (r *HTTPRetriever) FetchBatch(ctx context.Context, source models.Source) (*models.SourceBatch, error) {
	url := fmt.Sprintf("%s/api/%s", r.baseURL, source)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSourceUnavailable, source, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<20))
	if err != nil {
		return nil, fmt.Errorf("reading %s response: %w", source, err)
	}

	var batch models.SourceBatch
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&batch); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("%w: %s returned status %d", ErrSourceUnavailable, source, resp.StatusCode)
		}
		return nil, fmt.Errorf("decoding %s response: %w", source, err)
	}
	if resp.StatusCode != http.StatusOK && batch.Error == "" {
		batch.Success = false
		batch.Error = fmt.Sprintf("%s returned status %d", source, resp.StatusCode)
	}
	logger.L.Debug("Fetched broker batch over HTTP", "source", source, "status", resp.StatusCode, "documents", len(batch.Documents))
	return &batch, nil
}

// CachedRetriever keeps successful batches for a short TTL so bursts of feed
// requests share one read of each collection.
type CachedRetriever struct {
	next  BatchRetriever
	cache *cache.Cache
	ttl   time.Duration
}

func NewCachedRetriever(next BatchRetriever, ttl time.Duration) *CachedRetriever {
	return &CachedRetriever{
		next: next,
		// One key per broker, so expired entries are simply overwritten and
		// no janitor goroutine is needed.
		cache: cache.New(ttl, 0),
		ttl:   ttl,
	}
}

func (r *CachedRetriever) FetchBatch(ctx context.Context, source models.Source) (*models.SourceBatch, error) {
	key := fmt.Sprintf(ckRawBatch, source)
	if cached, found := r.cache.Get(key); found {
		logger.L.Debug("Cache hit for raw batch", "source", source)
		return cached.(*models.SourceBatch), nil
	}

	batch, err := r.next.FetchBatch(ctx, source)
	if err != nil {
		return nil, err
	}
	if batch != nil && batch.Success && batch.Documents != nil {
		r.cache.Set(key, batch, r.ttl)
	}
	return batch, nil
}

// Invalidate drops every cached batch.
func (r *CachedRetriever) Invalidate() {
	r.cache.Flush()
}
