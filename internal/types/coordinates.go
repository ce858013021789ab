package types

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/paulmach/orb"
)

var (
	ErrInvalidLatitude  = errors.New("latitude must be between -90 and 90")
	ErrInvalidLongitude = errors.New("longitude must be between -180 and 180")
)

var validate = validator.New()

// MapPoint is a WGS84 coordinate in decimal degrees.
type MapPoint struct {
	Latitude  float64 `json:"latitude" validate:"latitude"`
	Longitude float64 `json:"longitude" validate:"longitude"`
}

// NewMapPoint returns a validated MapPoint.
func NewMapPoint(latitude, longitude float64) (MapPoint, error) {
	p := MapPoint{
		Latitude:  latitude,
		Longitude: longitude,
	}
	if err := p.Validate(); err != nil {
		return MapPoint{}, err
	}
	return p, nil
}

// Validate reports whether the point lies inside the WGS84 coordinate range.
func (p MapPoint) Validate() error {
	if err := validate.Var(p.Latitude, "latitude"); err != nil {
		return fmt.Errorf("%w: got %v", ErrInvalidLatitude, p.Latitude)
	}
	if err := validate.Var(p.Longitude, "longitude"); err != nil {
		return fmt.Errorf("%w: got %v", ErrInvalidLongitude, p.Longitude)
	}
	return nil
}

// Orb converts the point to an orb.Point, which is ordered [lon, lat].
func (p MapPoint) Orb() orb.Point {
	return orb.Point{p.Longitude, p.Latitude}
}

// FromOrb converts an orb.Point back to a MapPoint without validation.
func FromOrb(p orb.Point) MapPoint {
	return MapPoint{Latitude: p.Lat(), Longitude: p.Lon()}
}

func (p MapPoint) String() string {
	return fmt.Sprintf("(%.6f, %.6f)", p.Latitude, p.Longitude)
}
