// internal/service/neighborhood/service.go

package neighborhood

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"chezvous/internal/adapter/cache"
	"chezvous/internal/domain/geo"
	"chezvous/internal/domain/report"
	"chezvous/internal/domain/social"
	"chezvous/internal/domain/transport"
)

// ReportCache is the slice of the cache adapter the service needs.
type ReportCache interface {
	Get(ctx context.Context, key string) (*report.NeighborhoodReport, error)
	Set(ctx context.Context, key string, r *report.NeighborhoodReport) error
}

// Service runs the full analysis pipeline for an address: geocode,
// transport connectivity, resident commentary, language-model analysis,
// cache, persist.
type Service struct {
	geocoder  geo.Geocoder
	transport transport.Analyzer
	social    social.Source
	analyzer  report.Analyzer
	cache     ReportCache
	store     report.Store
}

// NewService creates a new neighborhood analysis service. The social
// source, language-model analyzer, cache, and store may each be nil; the
// pipeline degrades around missing collaborators.
func NewService(
	geocoder geo.Geocoder,
	transportAnalyzer transport.Analyzer,
	socialSource social.Source,
	reportAnalyzer report.Analyzer,
	reportCache ReportCache,
	store report.Store,
) *Service {
	return &Service{
		geocoder:  geocoder,
		transport: transportAnalyzer,
		social:    socialSource,
		analyzer:  reportAnalyzer,
		cache:     reportCache,
		store:     store,
	}
}

// Analyze produces a neighborhood report for a street address. Repeat
// requests for the same address within the cache TTL are served from the
// cache without touching any external service.
func (s *Service) Analyze(ctx context.Context, address string) (*report.NeighborhoodReport, error) {
	key := cache.ReportKey(address)

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, key)
		if err != nil {
			zap.L().Warn("report cache lookup failed", zap.Error(err))
		} else if cached != nil {
			cached.FromCache = true
			zap.L().Info("serving cached report", zap.String("id", cached.ID))
			return cached, nil
		}
	}

	resolved, err := s.geocoder.Geocode(ctx, address)
	if err != nil {
		if eris.Is(err, geo.ErrAddressNotFound) {
			return nil, err
		}
		return nil, eris.Wrap(err, "neighborhood: geocode")
	}

	result := &report.NeighborhoodReport{
		ID:        uuid.New().String(),
		Query:     address,
		Address:   *resolved,
		CreatedAt: time.Now(),
	}

	connectivity, err := s.transport.AnalyzeConnectivity(ctx, resolved.Coordinate)
	if err != nil {
		return nil, eris.Wrap(err, "neighborhood: transport analysis")
	}
	result.Transport = connectivity

	result.Insights = s.gatherInsights(ctx, resolved)
	if result.Insights == nil {
		result.Notes = append(result.Notes, "resident commentary unavailable")
	}

	if s.analyzer != nil {
		analysis, err := s.analyzer.AnalyzeNeighborhood(ctx, report.NeighborhoodInput{
			Query:     address,
			Address:   *resolved,
			Transport: connectivity,
			Insights:  result.Insights,
		})
		if err != nil {
			zap.L().Warn("language-model analysis failed", zap.Error(err))
			result.Notes = append(result.Notes, "AI analysis unavailable")
		} else {
			result.Analysis = analysis
		}
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, result); err != nil {
			zap.L().Warn("report cache write failed", zap.Error(err))
		}
	}

	if s.store != nil {
		if err := s.store.Save(ctx, result); err != nil {
			zap.L().Warn("report persistence failed", zap.Error(err))
		}
	}

	zap.L().Info("analysis completed",
		zap.String("id", result.ID),
		zap.Int("stations", len(connectivity.NearbyStations)),
		zap.Int("connectivity_score", connectivity.ConnectivityScore),
	)

	return result, nil
}

// Compare analyzes two addresses and asks the language model to weigh them
// against each other.
func (s *Service) Compare(ctx context.Context, addressA, addressB string) (*report.Comparison, error) {
	if s.analyzer == nil {
		return nil, eris.New("neighborhood: comparison requires the language-model analyzer")
	}

	reportA, err := s.Analyze(ctx, addressA)
	if err != nil {
		return nil, eris.Wrap(err, "neighborhood: analyze first address")
	}

	reportB, err := s.Analyze(ctx, addressB)
	if err != nil {
		return nil, eris.Wrap(err, "neighborhood: analyze second address")
	}

	comparison, err := s.analyzer.Compare(ctx, reportA, reportB)
	if err != nil {
		return nil, eris.Wrap(err, "neighborhood: compare")
	}

	return comparison, nil
}

// gatherInsights fetches resident commentary when an arrondissement is
// known. Failures degrade to nil rather than failing the analysis.
func (s *Service) gatherInsights(ctx context.Context, resolved *geo.Address) *social.Insights {
	if s.social == nil || resolved.Arrondissement == nil {
		return nil
	}

	insights, err := s.social.NeighborhoodInsights(ctx, *resolved.Arrondissement, resolved.Neighborhood)
	if err != nil {
		zap.L().Warn("resident commentary fetch failed",
			zap.String("platform", s.social.Name()),
			zap.Error(err),
		)
		return nil
	}

	return insights
}
