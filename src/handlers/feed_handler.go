package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/username/policyfeed/src/logger"
	"github.com/username/policyfeed/src/models"
	"github.com/username/policyfeed/src/parsers"
	"github.com/username/policyfeed/src/services"
	"github.com/username/policyfeed/src/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type FeedHandler struct {
	feedService   services.FeedService
	exportService services.ExportService
}

func NewFeedHandler(feedService services.FeedService, exportService services.ExportService) *FeedHandler {
	return &FeedHandler{
		feedService:   feedService,
		exportService: exportService,
	}
}

// HandleGetStandardized serves one page of the merged feed with statistics.
func (h *FeedHandler) HandleGetStandardized(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	q := services.ParseFeedQuery(r.URL.Query())
	log.Debug("Handling standardized feed request", "page", q.Page, "limit", q.Limit, "source", q.Source)

	resp, err := h.feedService.Query(r.Context(), q)
	if err != nil {
		sendFeedError(w, r, err)
		return
	}

	// lastUpdated changes every call, so the tag covers the payload only.
	currentETag, etagErr := utils.GenerateETag(struct {
		Data       []models.CanonicalPolicy `json:"data"`
		Pagination models.Pagination        `json:"pagination"`
		Statistics models.Statistics        `json:"statistics"`
	}{resp.Data, resp.Pagination, resp.Statistics})
	if etagErr != nil {
		log.Error("Failed to generate ETag for standardized feed", "error", etagErr)
	}

	w.Header().Set("Cache-Control", "no-cache")
	if etagErr == nil && currentETag != "" {
		quotedETag := fmt.Sprintf("\"%s\"", currentETag)
		w.Header().Set("ETag", quotedETag)
		if utils.ETagMatches(r.Header.Get("If-None-Match"), quotedETag) {
			log.Debug("ETag match for standardized feed", "etag", currentETag)
			w.WriteHeader(http.StatusNotModified)
			return
		}
	}

	utils.SendJSON(w, http.StatusOK, resp)
}

// HandleExportStandardized returns every policy matching the filters as XLSX.
func (h *FeedHandler) HandleExportStandardized(w http.ResponseWriter, r *http.Request) {
	q := services.ParseFeedQuery(r.URL.Query())
	policies, err := h.feedService.Policies(r.Context(), q)
	if err != nil {
		sendFeedError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := h.exportService.WriteXLSX(&buf, policies); err != nil {
		logger.FromContext(r.Context()).Error("Failed to render policy export", "error", err)
		utils.SendJSONError(w, "failed to render export", http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("policies-%s.xlsx", time.Now().UTC().Format("20060102-150405"))
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		logger.FromContext(r.Context()).Warn("Failed to write export body", "error", err)
	}
}

// HandleGetFieldMapping documents how each broker's fields are standardized.
func (h *FeedHandler) HandleGetFieldMapping(w http.ResponseWriter, r *http.Request) {
	utils.SendJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"sources": models.AllSources,
		"fields":  parsers.FieldMapping,
	})
}

func sendFeedError(w http.ResponseWriter, r *http.Request, err error) {
	logger.FromContext(r.Context()).Error("Error fetching standardized broker data", "error", err)
	utils.SendJSON(w, http.StatusInternalServerError, models.ErrorResponse{
		Success: false,
		Error:   services.ErrFeedFailed.Error(),
		Message: "Failed to retrieve standardized broker data",
	})
}
