// internal/service/social/reddit.go

package social

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"chezvous/internal/domain/social"
)

// redditPost represents a post from the Reddit search API
type redditPost struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	SelfText    string  `json:"selftext"`
	Score       int     `json:"score"`
	NumComments int     `json:"num_comments"`
	Permalink   string  `json:"permalink"`
	CreatedUTC  float64 `json:"created_utc"`
}

// redditResponse represents the structure of the Reddit API response
type redditResponse struct {
	Data struct {
		Children []struct {
			Data redditPost `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// RedditClientConfig contains configuration for the Reddit client
type RedditClientConfig struct {
	BaseURL        string
	Subreddit      string
	RequestTimeout time.Duration
	MaxPosts       int
}

// RedditClient searches a city subreddit for resident commentary about a
// neighborhood. It uses Reddit's public .json endpoints, no credentials.
type RedditClient struct {
	httpClient *http.Client
	config     RedditClientConfig
}

// NewRedditClient creates a new Reddit client
func NewRedditClient(config RedditClientConfig) *RedditClient {
	if config.BaseURL == "" {
		config.BaseURL = "https://www.reddit.com"
	}
	if config.Subreddit == "" {
		config.Subreddit = "paris"
	}
	if config.RequestTimeout <= 0 {
		config.RequestTimeout = 10 * time.Second
	}
	if config.MaxPosts <= 0 {
		config.MaxPosts = 15
	}

	return &RedditClient{
		httpClient: &http.Client{
			Timeout: config.RequestTimeout,
		},
		config: config,
	}
}

// Name returns the platform name.
func (c *RedditClient) Name() string {
	return "reddit"
}

// NeighborhoodInsights searches the subreddit for discussion of an
// arrondissement. Posts from the individual queries are merged, deduplicated
// by id, and capped.
func (c *RedditClient) NeighborhoodInsights(ctx context.Context, arrondissement int, neighborhood string) (*social.Insights, error) {
	if arrondissement < 1 || arrondissement > 20 {
		return &social.Insights{Posts: []social.Post{}}, nil
	}

	queries := buildSearchQueries(arrondissement, neighborhood)

	var all []social.Post
	for _, query := range queries {
		posts, err := c.searchPosts(ctx, query)
		if err != nil {
			zap.L().Warn("reddit: search failed",
				zap.String("query", query),
				zap.Error(err),
			)
			continue
		}
		all = append(all, posts...)
	}

	seen := make(map[string]bool, len(all))
	unique := make([]social.Post, 0, len(all))
	for _, post := range all {
		if seen[post.ID] {
			continue
		}
		seen[post.ID] = true
		unique = append(unique, post)
	}

	total := len(unique)
	if len(unique) > c.config.MaxPosts {
		unique = unique[:c.config.MaxPosts]
	}

	return &social.Insights{
		Posts:      unique,
		TotalFound: total,
		Queries:    queries,
	}, nil
}

// buildSearchQueries targets living-experience discussions for an
// arrondissement. Capped at three queries to keep response times down.
func buildSearchQueries(arrondissement int, neighborhood string) []string {
	queries := []string{
		fmt.Sprintf("living %d arrondissement", arrondissement),
		fmt.Sprintf("moving to %d arrondissement", arrondissement),
		fmt.Sprintf("%d arrondissement safe", arrondissement),
	}

	if neighborhood != "" {
		queries = append([]string{fmt.Sprintf("living in %s", neighborhood)}, queries...)
	}

	return queries[:3]
}

// searchPosts runs one search query against the subreddit.
func (c *RedditClient) searchPosts(ctx context.Context, query string) ([]social.Post, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("restrict_sr", "on")
	params.Set("sort", "relevance")
	params.Set("limit", "10")

	searchURL := fmt.Sprintf("%s/r/%s/search.json?%s", c.config.BaseURL, c.config.Subreddit, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "Chez-vous/1.0 (Paris neighborhood finder)")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Reddit: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Reddit returned status code %d", resp.StatusCode)
	}

	var redditResp redditResponse
	if err := json.NewDecoder(resp.Body).Decode(&redditResp); err != nil {
		return nil, fmt.Errorf("failed to decode Reddit response: %w", err)
	}

	posts := make([]social.Post, 0, len(redditResp.Data.Children))
	for _, child := range redditResp.Data.Children {
		post := child.Data

		created := "Unknown"
		if post.CreatedUTC > 0 {
			created = time.Unix(int64(post.CreatedUTC), 0).UTC().Format("2006-01-02")
		}

		posts = append(posts, social.Post{
			ID:          post.ID,
			Title:       post.Title,
			Text:        post.SelfText,
			Score:       post.Score,
			NumComments: post.NumComments,
			URL:         c.config.BaseURL + post.Permalink,
			Created:     created,
		})
	}

	return posts, nil
}

// FormatInsights renders commentary as a text block for the language-model
// prompt: top ten posts, bodies truncated to 300 characters.
func FormatInsights(insights *social.Insights) string {
	if insights == nil || len(insights.Posts) == 0 {
		return "No Reddit discussions found for this neighborhood."
	}

	var b strings.Builder
	b.WriteString("REDDIT INSIGHTS (Real resident experiences from r/paris):\n\n")

	for i, post := range insights.Posts {
		if i >= 10 {
			break
		}

		fmt.Fprintf(&b, "%d. %s\n", i+1, post.Title)

		if post.Text != "" {
			text := post.Text
			if len(text) > 300 {
				text = text[:300] + "..."
			}
			fmt.Fprintf(&b, "   Post: %s\n", text)
		}

		fmt.Fprintf(&b, "   (Score: %d, Comments: %d)\n\n", post.Score, post.NumComments)
	}

	return b.String()
}
