// internal/server/handlers/transport.go

package handlers

import (
	"context"
	"net/http"
	"strconv"

	"chezvous/internal/domain/geo"
	"chezvous/internal/domain/transport"
)

// TransportAnalyzer computes transit connectivity for a coordinate
type TransportAnalyzer interface {
	AnalyzeConnectivity(ctx context.Context, point geo.Coordinate) (*transport.ConnectivityReport, error)
}

// TransportHandler serves standalone transit-connectivity queries
type TransportHandler struct {
	analyzer TransportAnalyzer
}

// NewTransportHandler creates a new transport handler
func NewTransportHandler(analyzer TransportAnalyzer) *TransportHandler {
	return &TransportHandler{
		analyzer: analyzer,
	}
}

// Connectivity returns stations, landmark estimates and the connectivity
// score for a raw lat/lng pair
func (h *TransportHandler) Connectivity(w http.ResponseWriter, r *http.Request) {
	latStr := r.URL.Query().Get("lat")
	lngStr := r.URL.Query().Get("lng")
	if latStr == "" || lngStr == "" {
		respondWithError(w, http.StatusBadRequest, "Missing lat or lng parameter", nil)
		return
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid lat parameter", err)
		return
	}

	lng, err := strconv.ParseFloat(lngStr, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid lng parameter", err)
		return
	}

	point := geo.Coordinate{Latitude: lat, Longitude: lng}
	if !point.Valid() {
		respondWithError(w, http.StatusBadRequest, "Coordinate out of range", nil)
		return
	}

	result, err := h.analyzer.AnalyzeConnectivity(r.Context(), point)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to analyze connectivity", err)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}
