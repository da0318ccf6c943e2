// internal/server/handlers/report.go

package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"chezvous/internal/domain/report"
)

// ReportReader exposes saved neighborhood reports
type ReportReader interface {
	GetByID(ctx context.Context, id string) (*report.NeighborhoodReport, error)
	ListRecent(ctx context.Context, limit int) ([]report.NeighborhoodReport, error)
}

// ReportHandler serves previously stored analysis reports
type ReportHandler struct {
	store ReportReader
}

// NewReportHandler creates a new report handler
func NewReportHandler(store ReportReader) *ReportHandler {
	return &ReportHandler{
		store: store,
	}
}

// ListRecent returns the most recent reports, newest first
func (h *ReportHandler) ListRecent(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 || parsed > 100 {
			respondWithError(w, http.StatusBadRequest, "Limit must be between 1 and 100", nil)
			return
		}
		limit = parsed
	}

	reports, err := h.store.ListRecent(r.Context(), limit)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to list reports", err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"reports": reports,
		"count":   len(reports),
	})
}

// GetByID returns a single stored report
func (h *ReportHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "Report ID is required", nil)
		return
	}

	rep, err := h.store.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, report.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Report not found", nil)
		} else {
			respondWithError(w, http.StatusInternalServerError, "Failed to get report", err)
		}
		return
	}

	respondWithJSON(w, http.StatusOK, rep)
}
