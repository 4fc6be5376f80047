package handlers

import (
	"net/http"

	"github.com/username/policyfeed/src/database"
	"github.com/username/policyfeed/src/logger"
	"github.com/username/policyfeed/src/models"
	"github.com/username/policyfeed/src/services"
	"github.com/username/policyfeed/src/utils"
)

// BrokerHandler serves the raw broker collections straight from the store.
type BrokerHandler struct {
	store     *database.DocumentStore
	retriever *services.DatabaseRetriever
}

func NewBrokerHandler(store *database.DocumentStore) *BrokerHandler {
	return &BrokerHandler{
		store:     store,
		retriever: services.NewDatabaseRetriever(store),
	}
}

// HandleGetCollection returns one broker's raw documents. The route pattern
// fixes the source.
func (h *BrokerHandler) HandleGetCollection(source models.Source) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())
		batch, err := h.retriever.FetchBatch(r.Context(), source)
		if err != nil {
			log.Error("Failed to read broker collection", "source", source, "error", err)
			utils.SendJSONError(w, err.Error(), http.StatusInternalServerError)
			return
		}
		log.Debug("Serving raw broker collection", "source", source, "documents", len(batch.Documents))
		utils.SendJSON(w, http.StatusOK, batch)
	}
}

// HandleTestDB reports store connectivity and the number of stored documents.
func (h *BrokerHandler) HandleTestDB(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.store.Ping(ctx); err != nil {
		logger.FromContext(ctx).Error("Database connection error", "error", err)
		utils.SendJSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	total := 0
	for _, source := range models.AllSources {
		n, err := h.store.CountDocuments(ctx, source)
		if err != nil {
			logger.FromContext(ctx).Error("Database connection error", "source", source, "error", err)
			utils.SendJSONError(w, err.Error(), http.StatusInternalServerError)
			return
		}
		total += n
	}

	utils.SendJSON(w, http.StatusOK, map[string]interface{}{
		"success":       true,
		"documentCount": total,
		"message":       "Database connection successful",
	})
}
