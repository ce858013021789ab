//go:build integration

package openstreetmap

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

func TestClient_Search_Integration(t *testing.T) {
	client := NewClient(slog.New(slog.NewTextHandler(os.Stdout, nil)))

	// Lewisham, south east London
	center := orb.Point{-0.004190, 51.449580}
	viewBox := geo.NewBoundAroundPoint(center, 3200)

	t.Logf("Making API call to OpenStreetMap Nominatim search API...")

	places, err := client.Search(context.Background(), SearchParams{
		Query:   "Lewisham Library",
		ViewBox: &viewBox,
		Limit:   5,
	})
	if err != nil {
		t.Fatalf("Failed to search: %v", err)
	}

	rawJSON, err := json.MarshalIndent(places, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal response: %v", err)
	}
	t.Logf("Raw API Response:\n%s", string(rawJSON))

	if len(places) == 0 {
		t.Fatal("Expected at least one result")
	}
	for _, p := range places {
		if p.Lat == "" || p.Lon == "" {
			t.Errorf("Place %d has empty coordinates", p.PlaceId)
		}
		if p.DisplayName == "" {
			t.Errorf("Place %d has empty display name", p.PlaceId)
		}
	}
}

func TestClient_Reverse_Integration(t *testing.T) {
	client := NewClient(slog.New(slog.NewTextHandler(os.Stdout, nil)))

	lat := 51.449580
	lon := -0.004190

	t.Logf("Coordinates: lat=%f, lon=%f", lat, lon)

	place, err := client.Reverse(context.Background(), lat, lon)
	if err != nil {
		t.Fatalf("Failed to get location data: %v", err)
	}

	t.Logf("Location Details:")
	t.Logf("  Place ID: %d", place.PlaceId)
	t.Logf("  Display Name: %s", place.DisplayName)
	t.Logf("  Type: %s", place.Type)

	if place.PlaceId == 0 {
		t.Error("PlaceId is 0")
	}
	if place.DisplayName == "" {
		t.Error("DisplayName is empty")
	}
	if place.Address == nil || place.Address.CountryCode != "gb" {
		t.Errorf("Expected a GB address, got %+v", place.Address)
	}
}
