package mapsurface

import (
	"time"

	"github.com/google/uuid"

	"toilet-finder/internal/reltime"
	"toilet-finder/internal/types"
)

const (
	PlaceholderLoading = "Loading Maps..."
	PlaceholderFailed  = "Error loading maps"
	OverlayTitle       = "Toilet Logged"
)

type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type Offset struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// MarkerVisual is one marker as drawn on the map
type MarkerVisual struct {
	ID       uuid.UUID      `json:"id"`
	Position types.MapPoint `json:"position"`
	IconURL  string         `json:"iconUrl"`
	IconSize Size           `json:"iconSize"`
}

// OverlayVisual is the info window anchored to the selected marker
type OverlayVisual struct {
	MarkerID uuid.UUID      `json:"markerId"`
	Position types.MapPoint `json:"position"`
	Offset   Offset         `json:"offset"`
	Title    string         `json:"title"`
	Logged   string         `json:"logged"`   // "about 1 hour ago"
	LoggedAt string         `json:"loggedAt"` // "today at 3:04 PM" in the marker's timezone
	Place    string         `json:"place,omitempty"`
}

// View is the declarative render output of the surface
type View struct {
	Status      Status         `json:"status"`
	Placeholder string         `json:"placeholder,omitempty"`
	Camera      *Camera        `json:"camera,omitempty"`
	Markers     []MarkerVisual `json:"markers"`
	Overlay     *OverlayVisual `json:"overlay,omitempty"`
}

// Render draws the surface as of now. Relative times are recomputed on every
// call; markers are never touched.
func (s *Surface) Render(now time.Time) View {
	switch s.status {
	case Loading:
		return View{Status: Loading, Placeholder: PlaceholderLoading, Markers: []MarkerVisual{}}
	case LoadFailed:
		return View{Status: LoadFailed, Placeholder: PlaceholderFailed, Markers: []MarkerVisual{}}
	}

	view := View{
		Status:  s.status,
		Markers: make([]MarkerVisual, 0, len(s.markers)),
	}
	if cam, ok := s.Camera(); ok {
		view.Camera = &cam
	}

	icon := Size{Width: s.cfg.MarkerIconSize, Height: s.cfg.MarkerIconSize}
	for _, m := range s.markers {
		view.Markers = append(view.Markers, MarkerVisual{
			ID:       m.ID,
			Position: m.Position,
			IconURL:  s.cfg.MarkerIconURL,
			IconSize: icon,
		})
	}

	if m, ok := s.Selected(); ok {
		view.Overlay = &OverlayVisual{
			MarkerID: m.ID,
			Position: m.Position,
			Offset:   Offset{X: 0, Y: s.cfg.OverlayOffsetY},
			Title:    OverlayTitle,
			Logged:   reltime.Distance(m.CreatedAt, now),
			LoggedAt: reltime.Calendar(m.CreatedAt, now, s.location(m.Position)),
			Place:    s.labels[m.ID],
		}
	}

	return view
}

func (s *Surface) location(point types.MapPoint) *time.Location {
	if s.timezones == nil {
		return time.UTC
	}
	loc, err := s.timezones.Location(point)
	if err != nil {
		s.logger.Debug("falling back to UTC", "position", point.String(), "error", err)
		return time.UTC
	}
	return loc
}
