package neighborhood

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chezvous/internal/adapter/cache"
	"chezvous/internal/domain/geo"
	"chezvous/internal/domain/report"
	"chezvous/internal/domain/social"
	"chezvous/internal/domain/transport"
)

type stubGeocoder struct {
	address *geo.Address
	err     error
	calls   int
}

func (g *stubGeocoder) Geocode(ctx context.Context, address string) (*geo.Address, error) {
	g.calls++
	if g.err != nil {
		return nil, g.err
	}
	return g.address, nil
}

type stubTransport struct {
	report *transport.ConnectivityReport
	err    error
}

func (t *stubTransport) AnalyzeConnectivity(ctx context.Context, point geo.Coordinate) (*transport.ConnectivityReport, error) {
	if t.err != nil {
		return nil, t.err
	}
	return t.report, nil
}

type stubSocial struct {
	insights *social.Insights
	err      error
}

func (s *stubSocial) Name() string { return "reddit" }

func (s *stubSocial) NeighborhoodInsights(ctx context.Context, arrondissement int, neighborhood string) (*social.Insights, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.insights, nil
}

type stubAnalyzer struct {
	analysis   *report.Analysis
	comparison *report.Comparison
	err        error
}

func (a *stubAnalyzer) AnalyzeNeighborhood(ctx context.Context, input report.NeighborhoodInput) (*report.Analysis, error) {
	if a.err != nil {
		return nil, a.err
	}
	return a.analysis, nil
}

func (a *stubAnalyzer) Compare(ctx context.Context, first, second *report.NeighborhoodReport) (*report.Comparison, error) {
	if a.err != nil {
		return nil, a.err
	}
	return a.comparison, nil
}

type memoryCache struct {
	entries map[string]*report.NeighborhoodReport
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string]*report.NeighborhoodReport{}}
}

func (c *memoryCache) Get(ctx context.Context, key string) (*report.NeighborhoodReport, error) {
	return c.entries[key], nil
}

func (c *memoryCache) Set(ctx context.Context, key string, r *report.NeighborhoodReport) error {
	c.entries[key] = r
	return nil
}

type memoryStore struct {
	saved []*report.NeighborhoodReport
}

func (s *memoryStore) Save(ctx context.Context, r *report.NeighborhoodReport) error {
	s.saved = append(s.saved, r)
	return nil
}

func (s *memoryStore) GetByID(ctx context.Context, id string) (*report.NeighborhoodReport, error) {
	for _, r := range s.saved {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, report.ErrNotFound
}

func (s *memoryStore) ListRecent(ctx context.Context, limit int) ([]report.NeighborhoodReport, error) {
	var out []report.NeighborhoodReport
	for _, r := range s.saved {
		out = append(out, *r)
	}
	return out, nil
}

func testAddress() *geo.Address {
	arr := 11
	return &geo.Address{
		Coordinate:     geo.Coordinate{Latitude: 48.8668, Longitude: 2.3653},
		Postcode:       "75011",
		Arrondissement: &arr,
		FullAddress:    "12, Rue Oberkampf, 75011 Paris, France",
		Neighborhood:   "Oberkampf",
	}
}

func testConnectivity() *transport.ConnectivityReport {
	return &transport.ConnectivityReport{
		NearbyStations:    []transport.Station{{Name: "Oberkampf", Lines: []string{"5", "9"}}},
		ConnectivityScore: 4,
	}
}

func TestAnalyze_FullPipeline(t *testing.T) {
	geocoder := &stubGeocoder{address: testAddress()}
	store := &memoryStore{}
	reportCache := newMemoryCache()

	svc := NewService(
		geocoder,
		&stubTransport{report: testConnectivity()},
		&stubSocial{insights: &social.Insights{Posts: []social.Post{{ID: "p1", Title: "Nice area"}}}},
		&stubAnalyzer{analysis: &report.Analysis{Overview: report.Overview{Description: "Lively."}}},
		reportCache,
		store,
	)

	result, err := svc.Analyze(context.Background(), "12 Rue Oberkampf")
	require.NoError(t, err)

	assert.NotEmpty(t, result.ID)
	assert.Equal(t, "12 Rue Oberkampf", result.Query)
	assert.Equal(t, 4, result.Transport.ConnectivityScore)
	assert.Equal(t, "Lively.", result.Analysis.Overview.Description)
	assert.Len(t, result.Insights.Posts, 1)
	assert.Empty(t, result.Notes)
	assert.False(t, result.FromCache)

	require.Len(t, store.saved, 1)
	assert.Equal(t, result.ID, store.saved[0].ID)
}

func TestAnalyze_ServesFromCache(t *testing.T) {
	geocoder := &stubGeocoder{address: testAddress()}
	reportCache := newMemoryCache()

	svc := NewService(
		geocoder,
		&stubTransport{report: testConnectivity()},
		nil,
		nil,
		reportCache,
		nil,
	)

	first, err := svc.Analyze(context.Background(), "12 Rue Oberkampf")
	require.NoError(t, err)

	second, err := svc.Analyze(context.Background(), "12 rue OBERKAMPF")
	require.NoError(t, err)

	// Whitespace/case variants hash to the same key; the second call never
	// geocodes.
	assert.Equal(t, 1, geocoder.calls)
	assert.Equal(t, first.ID, second.ID)
	assert.True(t, second.FromCache)
}

func TestAnalyze_AddressNotFound(t *testing.T) {
	svc := NewService(
		&stubGeocoder{err: geo.ErrAddressNotFound},
		&stubTransport{report: testConnectivity()},
		nil, nil, nil, nil,
	)

	_, err := svc.Analyze(context.Background(), "nowhere")
	assert.ErrorIs(t, err, geo.ErrAddressNotFound)
}

func TestAnalyze_DegradesWithoutSocialAndAnalyzer(t *testing.T) {
	svc := NewService(
		&stubGeocoder{address: testAddress()},
		&stubTransport{report: testConnectivity()},
		&stubSocial{err: errors.New("rate limited")},
		&stubAnalyzer{err: errors.New("model overloaded")},
		nil, nil,
	)

	result, err := svc.Analyze(context.Background(), "12 Rue Oberkampf")
	require.NoError(t, err)

	assert.Nil(t, result.Insights)
	assert.Nil(t, result.Analysis)
	assert.Contains(t, result.Notes, "resident commentary unavailable")
	assert.Contains(t, result.Notes, "AI analysis unavailable")
	assert.Equal(t, 4, result.Transport.ConnectivityScore)
}

func TestAnalyze_TransportFailureIsFatal(t *testing.T) {
	svc := NewService(
		&stubGeocoder{address: testAddress()},
		&stubTransport{err: errors.New("invalid coordinate")},
		nil, nil, nil, nil,
	)

	_, err := svc.Analyze(context.Background(), "12 Rue Oberkampf")
	assert.Error(t, err)
}

func TestCompare(t *testing.T) {
	comparison := &report.Comparison{OverallRecommendation: "Address 2 wins."}

	svc := NewService(
		&stubGeocoder{address: testAddress()},
		&stubTransport{report: testConnectivity()},
		nil,
		&stubAnalyzer{
			analysis:   &report.Analysis{},
			comparison: comparison,
		},
		newMemoryCache(),
		nil,
	)

	result, err := svc.Compare(context.Background(), "12 Rue Oberkampf", "5 Rue de Rivoli")
	require.NoError(t, err)
	assert.Equal(t, "Address 2 wins.", result.OverallRecommendation)
}

func TestCompare_RequiresAnalyzer(t *testing.T) {
	svc := NewService(
		&stubGeocoder{address: testAddress()},
		&stubTransport{report: testConnectivity()},
		nil, nil, nil, nil,
	)

	_, err := svc.Compare(context.Background(), "a", "b")
	assert.Error(t, err)
}

func TestCacheKeyUsedByService(t *testing.T) {
	// The service keys the cache by normalized address hash.
	assert.Equal(t, cache.ReportKey("12 Rue Oberkampf"), cache.ReportKey(" 12  rue oberkampf"))
}
