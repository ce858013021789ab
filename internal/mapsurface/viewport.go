package mapsurface

import (
	"context"
	"errors"
	"strings"

	"toilet-finder/internal/config"
	"toilet-finder/internal/types"
)

const (
	MinZoom = 0
	MaxZoom = 22
)

// Camera is what the viewport is looking at
type Camera struct {
	Center types.MapPoint `json:"center"`
	Zoom   int            `json:"zoom"`
}

// Viewport is the handle to a loaded map display
type Viewport struct {
	camera Camera
}

// NewViewport creates a viewport looking at center
func NewViewport(center types.MapPoint, zoom int) *Viewport {
	return &Viewport{camera: Camera{Center: center, Zoom: zoom}}
}

func (v *Viewport) PanTo(point types.MapPoint) {
	v.camera.Center = point
}

func (v *Viewport) SetZoom(zoom int) {
	v.camera.Zoom = zoom
}

func (v *Viewport) Camera() Camera {
	return v.camera
}

// viewportSlot holds the viewport once the display has loaded. Until then it
// is NotReady and every use must check it first.
type viewportSlot struct {
	viewport *Viewport
}

func (s *viewportSlot) fill(v *Viewport) {
	s.viewport = v
}

func (s *viewportSlot) get() (*Viewport, bool) {
	return s.viewport, s.viewport != nil
}

// Loader brings up the map display and hands back its viewport
type Loader interface {
	Load(ctx context.Context) (*Viewport, error)
}

// ErrMissingCredential is returned when no maps credential is configured
var ErrMissingCredential = errors.New("maps credential is not configured")

// CredentialLoader checks the maps credential and opens a viewport at the
// configured center and zoom.
type CredentialLoader struct {
	cfg config.MapsConfig
}

func NewCredentialLoader(cfg config.MapsConfig) *CredentialLoader {
	return &CredentialLoader{cfg: cfg}
}

func (l *CredentialLoader) Load(ctx context.Context) (*Viewport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(l.cfg.APIKey) == "" {
		return nil, ErrMissingCredential
	}
	center := l.cfg.Center()
	if err := center.Validate(); err != nil {
		return nil, err
	}
	return NewViewport(center, l.cfg.DefaultZoom), nil
}
