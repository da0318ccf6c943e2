// internal/server/handlers/analyze.go

package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"chezvous/internal/domain/geo"
	"chezvous/internal/domain/report"
)

// NeighborhoodService is the slice of the analysis pipeline the handlers
// need.
type NeighborhoodService interface {
	Analyze(ctx context.Context, address string) (*report.NeighborhoodReport, error)
	Compare(ctx context.Context, addressA, addressB string) (*report.Comparison, error)
}

// AnalyzeHandler handles address-analysis HTTP requests
type AnalyzeHandler struct {
	service NeighborhoodService
}

// NewAnalyzeHandler creates a new analyze handler
func NewAnalyzeHandler(service NeighborhoodService) *AnalyzeHandler {
	return &AnalyzeHandler{
		service: service,
	}
}

// Analyze runs the full neighborhood analysis for one address
func (h *AnalyzeHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	type analyzeRequest struct {
		Address string `json:"address"`
	}

	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if strings.TrimSpace(req.Address) == "" {
		respondWithError(w, http.StatusBadRequest, "Address is required", nil)
		return
	}

	result, err := h.service.Analyze(r.Context(), req.Address)
	if err != nil {
		if errors.Is(err, geo.ErrAddressNotFound) {
			respondWithError(w, http.StatusNotFound, "Address not found in Paris", nil)
		} else {
			respondWithError(w, http.StatusInternalServerError, "Failed to analyze address", err)
		}
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

// Compare analyzes two addresses and returns the model's comparison
func (h *AnalyzeHandler) Compare(w http.ResponseWriter, r *http.Request) {
	type compareRequest struct {
		AddressA string `json:"address_a"`
		AddressB string `json:"address_b"`
	}

	var req compareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if strings.TrimSpace(req.AddressA) == "" || strings.TrimSpace(req.AddressB) == "" {
		respondWithError(w, http.StatusBadRequest, "Both addresses are required", nil)
		return
	}

	comparison, err := h.service.Compare(r.Context(), req.AddressA, req.AddressB)
	if err != nil {
		if errors.Is(err, geo.ErrAddressNotFound) {
			respondWithError(w, http.StatusNotFound, "Address not found in Paris", nil)
		} else {
			respondWithError(w, http.StatusInternalServerError, "Failed to compare addresses", err)
		}
		return
	}

	respondWithJSON(w, http.StatusOK, comparison)
}
