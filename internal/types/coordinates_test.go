package types

import (
	"errors"
	"math"
	"testing"
)

func TestNewMapPoint(t *testing.T) {
	tests := []struct {
		name    string
		lat     float64
		lon     float64
		wantErr error
	}{
		{name: "map center", lat: 51.449580, lon: -0.004190},
		{name: "origin", lat: 0, lon: 0},
		{name: "north pole", lat: 90, lon: 0},
		{name: "south pole dateline", lat: -90, lon: -180},
		{name: "east dateline", lat: 10, lon: 180},
		{name: "latitude too high", lat: 90.0001, lon: 0, wantErr: ErrInvalidLatitude},
		{name: "latitude too low", lat: -91, lon: 0, wantErr: ErrInvalidLatitude},
		{name: "longitude too high", lat: 0, lon: 180.5, wantErr: ErrInvalidLongitude},
		{name: "longitude too low", lat: 0, lon: -200, wantErr: ErrInvalidLongitude},
		{name: "NaN latitude", lat: math.NaN(), lon: 0, wantErr: ErrInvalidLatitude},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewMapPoint(tt.lat, tt.lon)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("NewMapPoint(%v, %v) error = %v, want %v", tt.lat, tt.lon, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewMapPoint(%v, %v) unexpected error = %v", tt.lat, tt.lon, err)
			}
			if got.Latitude != tt.lat || got.Longitude != tt.lon {
				t.Errorf("NewMapPoint() = %v, want (%v, %v)", got, tt.lat, tt.lon)
			}
		})
	}
}

func TestMapPoint_OrbRoundTrip(t *testing.T) {
	p := MapPoint{Latitude: 51.45, Longitude: -0.004}

	o := p.Orb()
	if o.Lon() != -0.004 || o.Lat() != 51.45 {
		t.Fatalf("Orb() = %v, want [lon lat] ordering", o)
	}
	if back := FromOrb(o); back != p {
		t.Errorf("FromOrb(Orb()) = %v, want %v", back, p)
	}
}
