package services

import (
	"context"
	"errors"
	"io"

	"github.com/username/policyfeed/src/models"
)

var (
	// ErrFeedFailed marks a failure of the feed pipeline itself, as opposed to
	// a single broker being unavailable.
	ErrFeedFailed = errors.New("failed to build standardized feed")

	ErrSourceUnavailable = errors.New("broker source unavailable")
)

// BatchRetriever fetches one broker's raw collection.
type BatchRetriever interface {
	FetchBatch(ctx context.Context, source models.Source) (*models.SourceBatch, error)
}

// CollectionResult is the merged output of a collection pass.
type CollectionResult struct {
	Policies []models.CanonicalPolicy
	Sources  []models.SourceOutcome
}

// CollectionService retrieves and normalizes broker batches concurrently.
type CollectionService interface {
	Collect(ctx context.Context, sources ...models.Source) CollectionResult
}

// FeedService builds the standardized policy feed.
type FeedService interface {
	Query(ctx context.Context, q models.FeedQuery) (*models.FeedResponse, error)
	// Policies returns the full filtered and sorted set, without paging.
	Policies(ctx context.Context, q models.FeedQuery) ([]models.CanonicalPolicy, error)
}

// ExportService renders policies as a spreadsheet.
type ExportService interface {
	WriteXLSX(w io.Writer, policies []models.CanonicalPolicy) error
}
