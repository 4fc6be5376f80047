// src/services/collection_service.go
package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/username/policyfeed/src/logger"
	"github.com/username/policyfeed/src/models"
	"github.com/username/policyfeed/src/parsers"
)

type collectionServiceImpl struct {
	retriever BatchRetriever
	timeout   time.Duration
}

// NewCollectionService builds the orchestrator. A positive timeout bounds
// each broker's retrieval separately.
func NewCollectionService(retriever BatchRetriever, timeout time.Duration) CollectionService {
	return &collectionServiceImpl{retriever: retriever, timeout: timeout}
}

type sourceResult struct {
	outcome  models.SourceOutcome
	policies []models.CanonicalPolicy
}

// Collect fetches the selected brokers (all of them when none are given) in
// parallel and merges their policies in broker order. A broker that fails is
// reported in its outcome and contributes no policies.
func (s *collectionServiceImpl) Collect(ctx context.Context, sources ...models.Source) CollectionResult {
	selected := selectSources(sources)
	results := make([]sourceResult, len(selected))

	var eg errgroup.Group
	for i, source := range selected {
		eg.Go(func() error {
			results[i] = s.collectOne(ctx, source)
			return nil
		})
	}
	_ = eg.Wait()

	merged := CollectionResult{
		Policies: []models.CanonicalPolicy{},
		Sources:  make([]models.SourceOutcome, 0, len(results)),
	}
	for _, r := range results {
		merged.Policies = append(merged.Policies, r.policies...)
		merged.Sources = append(merged.Sources, r.outcome)
	}
	return merged
}

func (s *collectionServiceImpl) collectOne(ctx context.Context, source models.Source) (result sourceResult) {
	started := time.Now()
	defer func() {
		if r := recover(); r != nil {
			logger.L.Error("Recovered panic while collecting broker batch", "source", source, "panic", r)
			result = failedSource(source, fmt.Sprintf("panic while collecting %s: %v", source, r))
		}
	}()

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	batch, err := s.retriever.FetchBatch(ctx, source)
	if err == nil && ctx.Err() != nil {
		err = ctx.Err()
	}
	if err != nil {
		logger.L.Warn("Broker retrieval failed", "source", source, "error", err, "duration", time.Since(started))
		return failedSource(source, err.Error())
	}
	if batch == nil || !batch.Success || batch.Documents == nil {
		msg := "source returned no documents"
		if batch != nil && batch.Error != "" {
			msg = batch.Error
		}
		logger.L.Warn("Broker returned an unsuccessful batch", "source", source, "error", msg)
		return failedSource(source, msg)
	}

	policies, report, err := parsers.NormalizeBatch(source, batch.Documents)
	if err != nil {
		return failedSource(source, err.Error())
	}

	count := len(batch.Documents)
	if batch.DocumentCount != nil {
		count = *batch.DocumentCount
	}
	logger.L.Info("Collected broker batch", "source", source,
		"documents", count, "normalized", report.Normalized, "dropped", report.Dropped,
		"duration", time.Since(started))

	return sourceResult{
		outcome:  models.SourceOutcome{Source: source, Success: true, DocumentCount: count},
		policies: policies,
	}
}

func failedSource(source models.Source, msg string) sourceResult {
	return sourceResult{outcome: models.SourceOutcome{Source: source, Success: false, Error: &msg}}
}

// selectSources returns the known brokers among requested, deduplicated and
// in canonical order.
func selectSources(requested []models.Source) []models.Source {
	if len(requested) == 0 {
		return models.AllSources
	}
	want := make(map[models.Source]bool, len(requested))
	for _, s := range requested {
		want[s] = true
	}
	var out []models.Source
	for _, s := range models.AllSources {
		if want[s] {
			out = append(out, s)
		}
	}
	return out
}
