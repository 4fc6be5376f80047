package main

import (
	"fmt"

	"github.com/username/policyfeed/src/config"
	"github.com/username/policyfeed/src/database"
	"github.com/username/policyfeed/src/logger"
	"github.com/username/policyfeed/src/processors"
	"github.com/username/policyfeed/src/services"
)

// openStore initialises the shared database handle.
func openStore() (*database.DocumentStore, error) {
	logger.L.Info("Initializing database...", "path", config.Cfg.DatabasePath)
	if err := database.InitDB(config.Cfg.DatabasePath); err != nil {
		return nil, fmt.Errorf("initializing database: %w", err)
	}
	logger.L.Info("Database initialized successfully.")
	return database.NewDocumentStore(database.DB), nil
}

// newRetriever picks the batch source from SOURCE_MODE and wraps it in the
// raw batch cache when a TTL is configured.
func newRetriever(store *database.DocumentStore) services.BatchRetriever {
	var retriever services.BatchRetriever
	switch config.Cfg.SourceMode {
	case config.SourceModeHTTP:
		logger.L.Info("Reading broker batches over HTTP", "baseURL", config.Cfg.BrokerAPIBaseURL)
		retriever = services.NewHTTPRetriever(config.Cfg.BrokerAPIBaseURL, config.Cfg.SourceTimeout)
	default:
		logger.L.Info("Reading broker batches from the local store")
		retriever = services.NewDatabaseRetriever(store)
	}

	if config.Cfg.SourceCacheTTL > 0 {
		logger.L.Info("Raw batch cache enabled", "ttl", config.Cfg.SourceCacheTTL)
		retriever = services.NewCachedRetriever(retriever, config.Cfg.SourceCacheTTL)
	}
	return retriever
}

func newFeedService(store *database.DocumentStore) services.FeedService {
	activityProcessor := processors.NewActivityProcessor()
	return services.NewFeedService(
		services.NewCollectionService(newRetriever(store), config.Cfg.SourceTimeout),
		processors.NewFilterProcessor(),
		processors.NewStatisticsProcessor(activityProcessor),
		nil,
	)
}
