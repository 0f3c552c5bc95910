package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/vdavid/chatlens/internal/db"
)

// SummaryHandler serves the latest summary as JSON.
type SummaryHandler struct {
	store   db.Store
	metrics *Metrics
}

// NewSummaryHandler creates a new SummaryHandler instance.
func NewSummaryHandler(store db.Store, metrics *Metrics) *SummaryHandler {
	return &SummaryHandler{
		store:   store,
		metrics: metrics,
	}
}

// GetSummary returns the summary of the most recently stored export.
func (h *SummaryHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	summary, err := h.store.LatestSummary(r.Context())
	if errors.Is(err, db.ErrSummaryNotFound) {
		h.metrics.recordSummaryRequest(outcomeNotFound)
		http.Error(w, "No summary available", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Printf("SummaryHandler: Failed to get summary: %v", err)
		h.metrics.recordSummaryRequest(outcomeError)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if WriteJSONResponse(w, summary) {
		h.metrics.recordSummaryRequest(outcomeSuccess)
	}
}
