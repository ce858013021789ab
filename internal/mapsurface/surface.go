// Package mapsurface owns the map session state: placed markers, the
// selected marker, the viewport handle and the display load lifecycle.
//
// A Surface is not safe for concurrent use. It is owned by a single event
// loop, and provider work it starts completes back on that loop through the
// configured eventloop.Dispatcher.
package mapsurface

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"toilet-finder/internal/config"
	"toilet-finder/internal/eventloop"
	"toilet-finder/internal/metrics"
	"toilet-finder/internal/spatial"
	"toilet-finder/internal/timezone"
	"toilet-finder/internal/types"
)

var (
	ErrMapNotReady    = errors.New("map is not ready")
	ErrMapLoadFailed  = errors.New("map failed to load")
	ErrMarkerNotFound = errors.New("marker not found")
	ErrInvalidZoom    = fmt.Errorf("zoom must be between %d and %d", MinZoom, MaxZoom)
)

const defaultTimeout = 10 * time.Second

// Marker is a logged facility location. It is never mutated after creation.
type Marker struct {
	ID        uuid.UUID      `json:"id"`
	Seq       uint64         `json:"seq"`
	Position  types.MapPoint `json:"position"`
	CreatedAt time.Time      `json:"createdAt"`
}

// PlaceNamer reverse geocodes a point to a short label
type PlaceNamer interface {
	PlaceName(ctx context.Context, point types.MapPoint) (string, error)
}

// Options configures a Surface. Loader and Dispatcher are required.
type Options struct {
	Config     config.MapsConfig
	Loader     Loader
	Dispatcher eventloop.Dispatcher
	Places     PlaceNamer       // optional overlay labels
	Timezones  timezone.Service // optional, UTC otherwise
	Timeout    time.Duration
	Now        func() time.Time
	Metrics    *metrics.Metrics
	Logger     *slog.Logger
}

type Surface struct {
	cfg        config.MapsConfig
	loader     Loader
	dispatcher eventloop.Dispatcher
	places     PlaceNamer
	timezones  timezone.Service
	timeout    time.Duration
	now        func() time.Time
	metrics    *metrics.Metrics
	logger     *slog.Logger

	status      Status
	loadStarted bool
	loadErr     error
	slot        viewportSlot

	markers  []Marker
	byID     map[uuid.UUID]Marker
	index    *spatial.Index
	seq      uint64
	selected uuid.UUID // uuid.Nil when nothing is selected

	labels        map[uuid.UUID]string
	labelsPending map[uuid.UUID]bool
}

// New creates a surface in the Loading state. Call Load to bring up the display.
func New(opts Options) *Surface {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Dispatcher == nil {
		opts.Dispatcher = eventloop.Inline{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	return &Surface{
		cfg:           opts.Config,
		loader:        opts.Loader,
		dispatcher:    opts.Dispatcher,
		places:        opts.Places,
		timezones:     opts.Timezones,
		timeout:       opts.Timeout,
		now:           opts.Now,
		metrics:       opts.Metrics,
		logger:        opts.Logger.With("component", "map-surface"),
		status:        Loading,
		byID:          make(map[uuid.UUID]Marker),
		index:         spatial.NewIndex(),
		labels:        make(map[uuid.UUID]string),
		labelsPending: make(map[uuid.UUID]bool),
	}
}

// Load starts loading the display. Only the first call has any effect; a
// failed load is terminal.
func (s *Surface) Load(ctx context.Context) {
	if s.loadStarted {
		return
	}
	s.loadStarted = true

	if s.loader == nil {
		s.finishLoad(nil, errors.New("no map loader configured"))
		return
	}

	s.dispatcher.Dispatch(func() func() {
		ctx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()

		vp, err := s.loader.Load(ctx)
		return func() { s.finishLoad(vp, err) }
	})
}

func (s *Surface) finishLoad(vp *Viewport, err error) {
	if err == nil && vp == nil {
		err = errors.New("loader returned no viewport")
	}
	if err != nil {
		s.status = LoadFailed
		s.loadErr = err
		s.metrics.IncMapLoadFailures()
		s.logger.Error("map failed to load", "error", err)
		return
	}

	s.slot.fill(vp)
	s.status = Ready
	s.logger.Info("map loaded", "center", vp.Camera().Center.String(), "zoom", vp.Camera().Zoom)
}

// Status returns the load status
func (s *Surface) Status() Status {
	return s.status
}

// LoadError returns why the display failed to load, if it did
func (s *Surface) LoadError() error {
	return s.loadErr
}

// Ready reports whether the display has loaded
func (s *Surface) Ready() bool {
	return s.status == Ready
}

// PlacesReady reports whether address autocomplete can be offered, which
// needs both a loaded display and the places library.
func (s *Surface) PlacesReady() bool {
	return s.Ready() && s.cfg.HasLibrary("places")
}

// OnMapClick logs a new marker at point
func (s *Surface) OnMapClick(point types.MapPoint) (Marker, error) {
	if err := s.usable(); err != nil {
		return Marker{}, err
	}
	if err := point.Validate(); err != nil {
		return Marker{}, err
	}

	s.seq++
	m := Marker{
		ID:        newMarkerID(),
		Seq:       s.seq,
		Position:  point,
		CreatedAt: s.now(),
	}
	s.markers = append(s.markers, m)
	s.byID[m.ID] = m
	s.index.Insert(m.ID, m.Position)

	s.metrics.IncMarkersPlaced()
	s.logger.Debug("marker placed", "id", m.ID, "seq", m.Seq, "position", point.String())

	return m, nil
}

// OnMarkerClick selects the marker. Selecting the selected marker again is a no-op.
func (s *Surface) OnMarkerClick(id uuid.UUID) error {
	m, ok := s.byID[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrMarkerNotFound, id)
	}
	s.selected = id
	s.lookupLabel(m)
	return nil
}

// OnOverlayClose clears the selection
func (s *Surface) OnOverlayClose() {
	s.selected = uuid.Nil
}

// NavigateTo recenters the viewport on point at zoom
func (s *Surface) NavigateTo(point types.MapPoint, zoom int) error {
	if zoom < MinZoom || zoom > MaxZoom {
		return fmt.Errorf("%w: got %d", ErrInvalidZoom, zoom)
	}
	if err := point.Validate(); err != nil {
		return err
	}
	if err := s.usable(); err != nil {
		return err
	}

	vp, ok := s.slot.get()
	if !ok {
		return ErrMapNotReady
	}
	vp.PanTo(point)
	vp.SetZoom(zoom)
	return nil
}

// RemoveMarker deletes a marker, clearing the selection if it pointed at it
func (s *Surface) RemoveMarker(id uuid.UUID) error {
	if _, ok := s.byID[id]; !ok {
		return fmt.Errorf("%w: %s", ErrMarkerNotFound, id)
	}

	s.markers = slices.DeleteFunc(s.markers, func(m Marker) bool { return m.ID == id })
	delete(s.byID, id)
	delete(s.labels, id)
	s.index.Remove(id)

	if s.selected == id {
		s.selected = uuid.Nil
	}
	return nil
}

// ClearMarkers deletes every marker and the selection
func (s *Surface) ClearMarkers() {
	s.markers = nil
	s.byID = make(map[uuid.UUID]Marker)
	s.labels = make(map[uuid.UUID]string)
	s.index.Clear()
	s.selected = uuid.Nil
}

// Markers returns the markers in placement order
func (s *Surface) Markers() []Marker {
	return slices.Clone(s.markers)
}

// Selected returns the selected marker
func (s *Surface) Selected() (Marker, bool) {
	if s.selected == uuid.Nil {
		return Marker{}, false
	}
	m, ok := s.byID[s.selected]
	return m, ok
}

// Camera returns the viewport camera once the display has loaded
func (s *Surface) Camera() (Camera, bool) {
	vp, ok := s.slot.get()
	if !ok {
		return Camera{}, false
	}
	return vp.Camera(), true
}

// MarkersInBounds returns the markers inside bound
func (s *Surface) MarkersInBounds(bound orb.Bound) ([]Marker, error) {
	ids, err := s.index.Within(bound)
	if err != nil {
		return nil, err
	}
	// Index order is arbitrary; report in placement order
	found := s.lookup(ids)
	slices.SortFunc(found, func(a, b Marker) int { return cmp.Compare(a.Seq, b.Seq) })
	return found, nil
}

// MarkersNearby returns the markers within radiusMeters of center, closest first
func (s *Surface) MarkersNearby(center types.MapPoint, radiusMeters float64) ([]Marker, error) {
	if err := center.Validate(); err != nil {
		return nil, err
	}
	ids, err := s.index.Nearby(center, radiusMeters)
	if err != nil {
		return nil, err
	}
	return s.lookup(ids), nil
}

// NearestMarkers returns up to n markers closest to point
func (s *Surface) NearestMarkers(point types.MapPoint, n int) ([]Marker, error) {
	if err := point.Validate(); err != nil {
		return nil, err
	}
	return s.lookup(s.index.Nearest(point, n)), nil
}

// MarkersGeoJSON exports the markers as point features
func (s *Surface) MarkersGeoJSON() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, m := range s.markers {
		f := geojson.NewFeature(m.Position.Orb())
		f.ID = m.ID.String()
		f.Properties["seq"] = m.Seq
		f.Properties["createdAt"] = m.CreatedAt.UTC().Format(time.RFC3339)
		f.Properties["selected"] = m.ID == s.selected
		if label, ok := s.labels[m.ID]; ok {
			f.Properties["place"] = label
		}
		fc.Append(f)
	}
	return fc
}

func (s *Surface) usable() error {
	switch s.status {
	case Ready:
		return nil
	case LoadFailed:
		return ErrMapLoadFailed
	default:
		return ErrMapNotReady
	}
}

func (s *Surface) lookup(ids []uuid.UUID) []Marker {
	found := make([]Marker, 0, len(ids))
	for _, id := range ids {
		if m, ok := s.byID[id]; ok {
			found = append(found, m)
		}
	}
	return found
}

// lookupLabel fetches the place name of m once. The result is dropped if the
// marker was removed in the meantime.
func (s *Surface) lookupLabel(m Marker) {
	if s.places == nil {
		return
	}
	if _, ok := s.labels[m.ID]; ok || s.labelsPending[m.ID] {
		return
	}
	s.labelsPending[m.ID] = true

	s.dispatcher.Dispatch(func() func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		name, err := s.places.PlaceName(ctx, m.Position)
		return func() {
			delete(s.labelsPending, m.ID)
			if err != nil {
				s.metrics.IncAsyncFailure(metrics.OpReverse)
				s.logger.Warn("failed to name marker location", "id", m.ID, "error", err)
				return
			}
			if _, ok := s.byID[m.ID]; !ok {
				s.metrics.IncStaleResponse(metrics.OpReverse)
				return
			}
			s.labels[m.ID] = name
		}
	})
}

func newMarkerID() uuid.UUID {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}
	return id
}
