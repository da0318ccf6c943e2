// internal/domain/report/model.go

package report

import (
	"context"
	"errors"
	"time"

	"chezvous/internal/domain/geo"
	"chezvous/internal/domain/social"
	"chezvous/internal/domain/transport"
)

// ErrNotFound is returned when a stored report does not exist.
var ErrNotFound = errors.New("report not found")

// Rating is a 1-5 score with a short justification, as produced by the
// language model.
type Rating struct {
	Score         int    `json:"score"`
	Justification string `json:"justification"`
}

// Overview is the model's short characterization of a neighborhood.
type Overview struct {
	Description      string `json:"description"`
	ThreeWordSummary string `json:"three_word_summary"`
}

// Recommendations lists places the model suggests around the address.
type Recommendations struct {
	Cafes       []string `json:"cafes"`
	Restaurants []string `json:"restaurants"`
	Activities  []string `json:"activities"`
}

// NamedLandmark pairs a landmark with a travel-time phrase.
type NamedLandmark struct {
	Name       string `json:"name"`
	TravelTime string `json:"travel_time"`
}

// Analysis is the structured neighborhood analysis extracted from the
// language-model response.
type Analysis struct {
	Overview        Overview          `json:"overview"`
	Ratings         map[string]Rating `json:"ratings"`
	Highlights      []string          `json:"highlights"`
	Recommendations Recommendations   `json:"recommendations"`
	NearbyLandmarks []NamedLandmark   `json:"nearby_landmarks"`
}

// Comparison is the model's verdict when two addresses are compared.
type Comparison struct {
	BetterFor             map[string]string `json:"better_for"`
	OverallRecommendation string            `json:"overall_recommendation"`
}

// NeighborhoodReport is the full result of analyzing one address.
type NeighborhoodReport struct {
	ID        string                        `json:"id"`
	Query     string                        `json:"query"`
	Address   geo.Address                   `json:"address"`
	Transport *transport.ConnectivityReport `json:"transport"`
	Insights  *social.Insights              `json:"resident_insights,omitempty"`
	Analysis  *Analysis                     `json:"analysis,omitempty"`
	Notes     []string                      `json:"notes,omitempty"`
	CreatedAt time.Time                     `json:"created_at"`
	FromCache bool                          `json:"from_cache"`
}

// NeighborhoodInput is everything handed to the language model for one
// address.
type NeighborhoodInput struct {
	Query     string
	Address   geo.Address
	Transport *transport.ConnectivityReport
	Insights  *social.Insights
}

// Analyzer produces language-model analyses of neighborhoods.
type Analyzer interface {
	// AnalyzeNeighborhood asks the model for a structured analysis.
	AnalyzeNeighborhood(ctx context.Context, input NeighborhoodInput) (*Analysis, error)

	// Compare asks the model to weigh two analyzed addresses against each
	// other.
	Compare(ctx context.Context, a, b *NeighborhoodReport) (*Comparison, error)
}

// Store persists reports for history lookups.
type Store interface {
	Save(ctx context.Context, r *NeighborhoodReport) error
	GetByID(ctx context.Context, id string) (*NeighborhoodReport, error)
	ListRecent(ctx context.Context, limit int) ([]NeighborhoodReport, error)
}
