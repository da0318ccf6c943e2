package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chezvous/internal/domain/geo"
	"chezvous/internal/domain/transport"
)

type stubTransportAnalyzer struct {
	report *transport.ConnectivityReport
	err    error

	lastPoint geo.Coordinate
}

func (s *stubTransportAnalyzer) AnalyzeConnectivity(_ context.Context, point geo.Coordinate) (*transport.ConnectivityReport, error) {
	s.lastPoint = point
	if s.err != nil {
		return nil, s.err
	}
	return s.report, nil
}

func TestTransportHandler_Connectivity(t *testing.T) {
	analyzer := &stubTransportAnalyzer{
		report: &transport.ConnectivityReport{ConnectivityScore: 4, HasLateNightService: true},
	}
	handler := NewTransportHandler(analyzer)

	req := httptest.NewRequest(http.MethodGet, "/connectivity?lat=48.8649&lng=2.3800", nil)
	rec := httptest.NewRecorder()
	handler.Connectivity(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.InDelta(t, 48.8649, analyzer.lastPoint.Latitude, 1e-9)
	assert.InDelta(t, 2.3800, analyzer.lastPoint.Longitude, 1e-9)

	var got transport.ConnectivityReport
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, 4, got.ConnectivityScore)
	assert.True(t, got.HasLateNightService)
}

func TestTransportHandler_ConnectivityBadInput(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{name: "missing lat", query: "?lng=2.38"},
		{name: "missing lng", query: "?lat=48.86"},
		{name: "non-numeric lat", query: "?lat=north&lng=2.38"},
		{name: "latitude out of range", query: "?lat=91.0&lng=2.38"},
		{name: "longitude out of range", query: "?lat=48.86&lng=200.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewTransportHandler(&stubTransportAnalyzer{})

			req := httptest.NewRequest(http.MethodGet, "/connectivity"+tt.query, nil)
			rec := httptest.NewRecorder()
			handler.Connectivity(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}
