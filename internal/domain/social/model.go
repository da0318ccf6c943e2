// internal/domain/social/model.go

package social

import "context"

// Post is a single piece of resident commentary pulled from a social
// platform.
type Post struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Text        string `json:"text"`
	Score       int    `json:"score"`
	NumComments int    `json:"num_comments"`
	URL         string `json:"url"`
	Created     string `json:"created"`
}

// Insights bundles the commentary found for a neighborhood.
type Insights struct {
	Posts      []Post   `json:"posts"`
	TotalFound int      `json:"total_found"`
	Queries    []string `json:"queries_used"`
}

// Source provides resident commentary for a Paris neighborhood.
type Source interface {
	// Name returns the platform name.
	Name() string

	// NeighborhoodInsights searches the platform for discussion of an
	// arrondissement, optionally narrowed by a neighborhood name.
	NeighborhoodInsights(ctx context.Context, arrondissement int, neighborhood string) (*Insights, error)
}
