package location

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"toilet-finder/internal/config"
	"toilet-finder/internal/providers/openstreetmap"
	"toilet-finder/internal/types"
)

// Mock providers for testing

type mockPlaceProvider struct {
	places     []openstreetmap.Place
	searchErr  error
	reverse    *openstreetmap.Place
	reverseErr error

	lastParams openstreetmap.SearchParams
}

func (m *mockPlaceProvider) Search(ctx context.Context, params openstreetmap.SearchParams) ([]openstreetmap.Place, error) {
	m.lastParams = params
	return m.places, m.searchErr
}

func (m *mockPlaceProvider) Reverse(ctx context.Context, latitude, longitude float64) (*openstreetmap.Place, error) {
	return m.reverse, m.reverseErr
}

func testConfig() *config.Config {
	return &config.Config{
		Maps: config.MapsConfig{
			CenterLatitude:  51.449580,
			CenterLongitude: -0.004190,
		},
		Search: config.SearchConfig{
			RadiusMeters: 3200,
			Limit:        5,
		},
	}
}

func newTestService(p PlaceProvider) Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewLocationServiceWithProvider(p, testConfig(), nil, logger)
}

func TestLocationService_Suggest(t *testing.T) {
	provider := &mockPlaceProvider{
		places: []openstreetmap.Place{
			{PlaceId: 11, DisplayName: "Lewisham Library, Lewisham High Street"},
			{PlaceId: 12, DisplayName: "Lewisham Station"},
		},
	}
	svc := newTestService(provider)

	got, err := svc.Suggest(context.Background(), "lewisham")
	if err != nil {
		t.Fatalf("Suggest() error = %v", err)
	}

	want := []types.Suggestion{
		{ID: "11", Description: "Lewisham Library, Lewisham High Street"},
		{ID: "12", Description: "Lewisham Station"},
	}
	if len(got) != len(want) {
		t.Fatalf("Suggest() returned %d suggestions, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("suggestion[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}

	params := provider.lastParams
	if params.Query != "lewisham" {
		t.Errorf("Query = %q, want %q", params.Query, "lewisham")
	}
	if params.Bounded {
		t.Error("suggestions must be biased, not bounded")
	}
	if params.Limit != 5 {
		t.Errorf("Limit = %d, want 5", params.Limit)
	}
	if params.ViewBox == nil {
		t.Fatal("ViewBox not set")
	}
	center := types.MapPoint{Latitude: 51.449580, Longitude: -0.004190}.Orb()
	if !params.ViewBox.Contains(center) {
		t.Errorf("ViewBox %v does not contain the map center", params.ViewBox)
	}
	// 3200m is roughly 0.029 degrees of latitude either side
	if h := params.ViewBox.Top() - params.ViewBox.Bottom(); h < 0.05 || h > 0.065 {
		t.Errorf("ViewBox height = %v degrees, want about 0.0575", h)
	}
}

func TestLocationService_Geocode(t *testing.T) {
	tests := []struct {
		name        string
		places      []openstreetmap.Place
		searchErr   error
		want        types.MapPoint
		wantErr     bool
		errIs       error
		errContains string
	}{
		{
			name:   "first result wins",
			places: []openstreetmap.Place{{Lat: "51.4613", Lon: "-0.0130"}, {Lat: "0", Lon: "0"}},
			want:   types.MapPoint{Latitude: 51.4613, Longitude: -0.0130},
		},
		{
			name:    "no results",
			places:  nil,
			wantErr: true,
			errIs:   ErrNoMatch,
		},
		{
			name:        "provider error",
			searchErr:   errors.New("connection refused"),
			wantErr:     true,
			errContains: "failed to geocode address",
		},
		{
			name:        "unparseable coordinates",
			places:      []openstreetmap.Place{{Lat: "north", Lon: "-0.0130"}},
			wantErr:     true,
			errContains: "invalid latitude",
		},
		{
			name:    "coordinates out of range",
			places:  []openstreetmap.Place{{Lat: "91", Lon: "0"}},
			wantErr: true,
			errIs:   types.ErrInvalidLatitude,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(&mockPlaceProvider{places: tt.places, searchErr: tt.searchErr})

			got, err := svc.Geocode(context.Background(), "Lewisham Library")

			if tt.wantErr {
				if err == nil {
					t.Fatal("Geocode() expected error, got nil")
				}
				if tt.errIs != nil && !errors.Is(err, tt.errIs) {
					t.Errorf("Geocode() error = %v, want %v", err, tt.errIs)
				}
				if tt.errContains != "" && !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("Geocode() error = %v, should contain %q", err, tt.errContains)
				}
				return
			}

			if err != nil {
				t.Fatalf("Geocode() unexpected error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Geocode() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLocationService_PlaceName(t *testing.T) {
	tests := []struct {
		name       string
		reverse    *openstreetmap.Place
		reverseErr error
		want       string
		wantErr    bool
	}{
		{
			name:    "short name preferred",
			reverse: &openstreetmap.Place{Name: "Lewisham Shopping Centre", DisplayName: "Lewisham Shopping Centre, Molesworth Street"},
			want:    "Lewisham Shopping Centre",
		},
		{
			name:    "falls back to display name",
			reverse: &openstreetmap.Place{DisplayName: "12, Rennell Street, Lewisham"},
			want:    "12, Rennell Street, Lewisham",
		},
		{
			name:       "provider error",
			reverseErr: openstreetmap.ErrNoResult,
			wantErr:    true,
		},
		{
			name:    "nil response",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(&mockPlaceProvider{reverse: tt.reverse, reverseErr: tt.reverseErr})

			got, err := svc.PlaceName(context.Background(), types.MapPoint{Latitude: 51.4613, Longitude: -0.0130})
			if (err != nil) != tt.wantErr {
				t.Fatalf("PlaceName() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("PlaceName() = %q, want %q", got, tt.want)
			}
		})
	}
}
