package location

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/paulmach/orb/geo"

	"toilet-finder/internal/config"
	"toilet-finder/internal/metrics"
	"toilet-finder/internal/providers/openstreetmap"
	"toilet-finder/internal/types"
)

const providerName = "nominatim"

// ErrNoMatch is returned when an address resolves to nothing
var ErrNoMatch = errors.New("address did not resolve to a location")

// Service resolves free-form addresses and coordinates through a geocoder
type Service interface {
	// Suggest returns autocomplete predictions for a partial address, biased toward the map center
	Suggest(ctx context.Context, query string) ([]types.Suggestion, error)
	// Geocode resolves an address description to a single coordinate
	Geocode(ctx context.Context, address string) (types.MapPoint, error)
	// PlaceName returns a short human readable name for a coordinate
	PlaceName(ctx context.Context, point types.MapPoint) (string, error)
}

// PlaceProvider defines the interface for geocoding data providers
type PlaceProvider interface {
	Search(ctx context.Context, params openstreetmap.SearchParams) ([]openstreetmap.Place, error)
	Reverse(ctx context.Context, latitude, longitude float64) (*openstreetmap.Place, error)
}

// locationService implements the Service interface
type locationService struct {
	provider     PlaceProvider
	center       types.MapPoint
	radiusMeters float64
	limit        int
	metrics      *metrics.Metrics
	logger       *slog.Logger
}

// NewLocationService creates a new location service backed by the Nominatim client
func NewLocationService(cfg *config.Config, m *metrics.Metrics, logger *slog.Logger) Service {
	client := openstreetmap.NewClient(logger,
		openstreetmap.WithBaseURL(cfg.Providers.NominatimURL),
		openstreetmap.WithUserAgent(cfg.Providers.UserAgent),
		openstreetmap.WithRateLimit(cfg.Providers.RequestsPerSecond),
		openstreetmap.WithTimeout(cfg.Providers.Timeout),
	)
	return NewLocationServiceWithProvider(client, cfg, m, logger)
}

// NewLocationServiceWithProvider creates a new location service with a custom provider
// This is useful for testing with mock providers
func NewLocationServiceWithProvider(provider PlaceProvider, cfg *config.Config, m *metrics.Metrics, logger *slog.Logger) Service {
	return &locationService{
		provider:     provider,
		center:       cfg.Maps.Center(),
		radiusMeters: cfg.Search.RadiusMeters,
		limit:        cfg.Search.Limit,
		metrics:      m,
		logger:       logger.With("component", "location-service"),
	}
}

// Suggest queries the geocoder with a viewbox around the map center. Results
// outside the box are still allowed.
func (s *locationService) Suggest(ctx context.Context, query string) ([]types.Suggestion, error) {
	viewBox := geo.NewBoundAroundPoint(s.center.Orb(), s.radiusMeters)

	start := time.Now()
	places, err := s.provider.Search(ctx, openstreetmap.SearchParams{
		Query:   query,
		ViewBox: &viewBox,
		Bounded: false,
		Limit:   s.limit,
	})
	s.metrics.ObserveProvider(providerName, start)
	if err != nil {
		return nil, fmt.Errorf("failed to get suggestions: %w", err)
	}

	suggestions := make([]types.Suggestion, 0, len(places))
	for _, p := range places {
		suggestions = append(suggestions, types.Suggestion{
			ID:          strconv.Itoa(p.PlaceId),
			Description: p.DisplayName,
		})
	}
	return suggestions, nil
}

// Geocode resolves the address and takes the first result
func (s *locationService) Geocode(ctx context.Context, address string) (types.MapPoint, error) {
	start := time.Now()
	places, err := s.provider.Search(ctx, openstreetmap.SearchParams{
		Query: address,
		Limit: 1,
	})
	s.metrics.ObserveProvider(providerName, start)
	if err != nil {
		return types.MapPoint{}, fmt.Errorf("failed to geocode address: %w", err)
	}
	if len(places) == 0 {
		return types.MapPoint{}, fmt.Errorf("%w: %q", ErrNoMatch, address)
	}

	return s.translatePoint(places[0])
}

// PlaceName reverse geocodes a point, preferring the short name over the display name
func (s *locationService) PlaceName(ctx context.Context, point types.MapPoint) (string, error) {
	start := time.Now()
	place, err := s.provider.Reverse(ctx, point.Latitude, point.Longitude)
	s.metrics.ObserveProvider(providerName, start)
	if err != nil {
		return "", fmt.Errorf("failed to get location: %w", err)
	}
	if place == nil {
		return "", fmt.Errorf("lookup response is nil")
	}

	name := place.DisplayName
	if place.Name != "" {
		name = place.Name
	}
	return name, nil
}

// translatePoint converts a Nominatim place to a validated MapPoint
func (s *locationService) translatePoint(p openstreetmap.Place) (types.MapPoint, error) {
	lat, err := strconv.ParseFloat(p.Lat, 64)
	if err != nil {
		return types.MapPoint{}, fmt.Errorf("invalid latitude %q: %w", p.Lat, err)
	}
	lon, err := strconv.ParseFloat(p.Lon, 64)
	if err != nil {
		return types.MapPoint{}, fmt.Errorf("invalid longitude %q: %w", p.Lon, err)
	}
	return types.NewMapPoint(lat, lon)
}
