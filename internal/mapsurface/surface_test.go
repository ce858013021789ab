package mapsurface

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toilet-finder/internal/config"
	"toilet-finder/internal/types"
)

var (
	lewisham  = types.MapPoint{Latitude: 51.449580, Longitude: -0.004190}
	catford   = types.MapPoint{Latitude: 51.4452, Longitude: -0.0207}
	greenwich = types.MapPoint{Latitude: 51.4826, Longitude: -0.0077}
)

func testMapsConfig() config.MapsConfig {
	return config.MapsConfig{
		APIKey:          "test-key",
		Libraries:       []string{"places"},
		CenterLatitude:  lewisham.Latitude,
		CenterLongitude: lewisham.Longitude,
		DefaultZoom:     15,
		MarkerIconURL:   "/img/toilet-marker.svg",
		MarkerIconSize:  45,
		OverlayOffsetY:  -45,
	}
}

type loaderFunc func(ctx context.Context) (*Viewport, error)

func (f loaderFunc) Load(ctx context.Context) (*Viewport, error) { return f(ctx) }

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

// queueDispatcher runs work immediately but holds completions until flushed
type queueDispatcher struct {
	pending []func()
}

func (q *queueDispatcher) Dispatch(work func() func()) {
	if complete := work(); complete != nil {
		q.pending = append(q.pending, complete)
	}
}

func (q *queueDispatcher) flush() {
	pending := q.pending
	q.pending = nil
	for _, fn := range pending {
		fn()
	}
}

type fakePlaces struct {
	name  string
	err   error
	calls int
}

func (f *fakePlaces) PlaceName(ctx context.Context, point types.MapPoint) (string, error) {
	f.calls++
	return f.name, f.err
}

type fixedZone struct{ loc *time.Location }

func (z fixedZone) Location(types.MapPoint) (*time.Location, error) { return z.loc, nil }

func newTestSurface(t *testing.T, opts Options) *Surface {
	t.Helper()
	if opts.Config.APIKey == "" && opts.Loader == nil {
		opts.Config = testMapsConfig()
	}
	if opts.Loader == nil {
		opts.Loader = NewCredentialLoader(opts.Config)
	}
	opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(opts)
}

func readySurface(t *testing.T, opts Options) *Surface {
	t.Helper()
	s := newTestSurface(t, opts)
	s.Load(context.Background())
	if q, ok := opts.Dispatcher.(*queueDispatcher); ok {
		q.flush()
	}
	require.Equal(t, Ready, s.Status())
	return s
}

func TestSurface_LoadLifecycle(t *testing.T) {
	tests := []struct {
		name        string
		cfg         func(*config.MapsConfig)
		loader      Loader
		wantStatus  Status
		wantErrIs   error
		placeholder string
	}{
		{
			name:       "credential present",
			wantStatus: Ready,
		},
		{
			name:        "missing credential",
			cfg:         func(c *config.MapsConfig) { c.APIKey = "  " },
			wantStatus:  LoadFailed,
			wantErrIs:   ErrMissingCredential,
			placeholder: PlaceholderFailed,
		},
		{
			name: "loader error",
			loader: loaderFunc(func(ctx context.Context) (*Viewport, error) {
				return nil, errors.New("script failed to load")
			}),
			wantStatus:  LoadFailed,
			placeholder: PlaceholderFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testMapsConfig()
			if tt.cfg != nil {
				tt.cfg(&cfg)
			}
			q := &queueDispatcher{}
			s := New(Options{
				Config:     cfg,
				Loader:     tt.loader,
				Dispatcher: q,
				Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
			})
			if tt.loader == nil {
				s.loader = NewCredentialLoader(cfg)
			}

			s.Load(context.Background())
			view := s.Render(time.Now())
			assert.Equal(t, Loading, view.Status)
			assert.Equal(t, PlaceholderLoading, view.Placeholder)

			q.flush()

			assert.Equal(t, tt.wantStatus, s.Status())
			if tt.wantErrIs != nil {
				assert.ErrorIs(t, s.LoadError(), tt.wantErrIs)
			}
			view = s.Render(time.Now())
			assert.Equal(t, tt.placeholder, view.Placeholder)
		})
	}
}

func TestSurface_LoadFailureIsTerminal(t *testing.T) {
	cfg := testMapsConfig()
	cfg.APIKey = ""
	s := New(Options{Config: cfg, Loader: NewCredentialLoader(cfg), Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})

	s.Load(context.Background())
	require.Equal(t, LoadFailed, s.Status())

	// A second load is ignored
	s.cfg.APIKey = "late-key"
	s.loader = NewCredentialLoader(s.cfg)
	s.Load(context.Background())
	assert.Equal(t, LoadFailed, s.Status())

	_, err := s.OnMapClick(lewisham)
	assert.ErrorIs(t, err, ErrMapLoadFailed)
	assert.ErrorIs(t, s.NavigateTo(catford, 17), ErrMapLoadFailed)
}

func TestSurface_OnMapClick(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	s := readySurface(t, Options{Now: clock.Now})

	points := []types.MapPoint{lewisham, catford, greenwich, lewisham}
	var placed []Marker
	for _, p := range points {
		m, err := s.OnMapClick(p)
		require.NoError(t, err)
		placed = append(placed, m)
	}

	markers := s.Markers()
	require.Len(t, markers, len(points))

	seen := map[uuid.UUID]bool{}
	for i, m := range markers {
		assert.Equal(t, points[i], m.Position, "stored point differs from clicked point")
		assert.Equal(t, uint64(i+1), m.Seq)
		assert.Equal(t, clock.t, m.CreatedAt)
		assert.False(t, seen[m.ID], "duplicate marker id")
		seen[m.ID] = true
		assert.Equal(t, placed[i], m)
	}
}

func TestSurface_OnMapClickBeforeReady(t *testing.T) {
	s := newTestSurface(t, Options{Dispatcher: &queueDispatcher{}})

	_, err := s.OnMapClick(lewisham)
	assert.ErrorIs(t, err, ErrMapNotReady)
	assert.Empty(t, s.Markers())
}

func TestSurface_OnMapClickInvalidPoint(t *testing.T) {
	s := readySurface(t, Options{})

	_, err := s.OnMapClick(types.MapPoint{Latitude: 95, Longitude: 0})
	assert.ErrorIs(t, err, types.ErrInvalidLatitude)
	assert.Empty(t, s.Markers())
}

func TestSurface_Selection(t *testing.T) {
	s := readySurface(t, Options{})

	a, err := s.OnMapClick(lewisham)
	require.NoError(t, err)
	b, err := s.OnMapClick(catford)
	require.NoError(t, err)

	_, ok := s.Selected()
	assert.False(t, ok)

	require.NoError(t, s.OnMarkerClick(a.ID))
	sel, ok := s.Selected()
	require.True(t, ok)
	assert.Equal(t, a.ID, sel.ID)

	// Selecting B replaces A directly
	require.NoError(t, s.OnMarkerClick(b.ID))
	sel, ok = s.Selected()
	require.True(t, ok)
	assert.Equal(t, b.ID, sel.ID)

	// Idempotent
	require.NoError(t, s.OnMarkerClick(b.ID))
	sel, _ = s.Selected()
	assert.Equal(t, b.ID, sel.ID)

	s.OnOverlayClose()
	_, ok = s.Selected()
	assert.False(t, ok)

	err = s.OnMarkerClick(uuid.New())
	assert.ErrorIs(t, err, ErrMarkerNotFound)
	_, ok = s.Selected()
	assert.False(t, ok)
}

func TestSurface_RemoveMarkerClearsSelection(t *testing.T) {
	s := readySurface(t, Options{})

	a, _ := s.OnMapClick(lewisham)
	b, _ := s.OnMapClick(catford)
	require.NoError(t, s.OnMarkerClick(a.ID))

	require.NoError(t, s.RemoveMarker(b.ID))
	sel, ok := s.Selected()
	require.True(t, ok, "removing another marker keeps the selection")
	assert.Equal(t, a.ID, sel.ID)

	require.NoError(t, s.RemoveMarker(a.ID))
	_, ok = s.Selected()
	assert.False(t, ok)
	assert.Empty(t, s.Markers())

	assert.ErrorIs(t, s.RemoveMarker(a.ID), ErrMarkerNotFound)
}

func TestSurface_ClearMarkers(t *testing.T) {
	s := readySurface(t, Options{})

	a, _ := s.OnMapClick(lewisham)
	_, _ = s.OnMapClick(catford)
	require.NoError(t, s.OnMarkerClick(a.ID))

	s.ClearMarkers()

	assert.Empty(t, s.Markers())
	_, ok := s.Selected()
	assert.False(t, ok)
	nearest, err := s.NearestMarkers(lewisham, 5)
	require.NoError(t, err)
	assert.Empty(t, nearest)

	// Sequence numbers keep increasing after a clear
	m, err := s.OnMapClick(greenwich)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), m.Seq)
}

func TestSurface_NavigateTo(t *testing.T) {
	t.Run("before ready", func(t *testing.T) {
		s := newTestSurface(t, Options{Dispatcher: &queueDispatcher{}})
		assert.ErrorIs(t, s.NavigateTo(catford, 17), ErrMapNotReady)
		_, ok := s.Camera()
		assert.False(t, ok)
	})

	t.Run("ready", func(t *testing.T) {
		s := readySurface(t, Options{})

		cam, ok := s.Camera()
		require.True(t, ok)
		assert.Equal(t, Camera{Center: lewisham, Zoom: 15}, cam)

		require.NoError(t, s.NavigateTo(catford, 17))
		cam, _ = s.Camera()
		assert.Equal(t, Camera{Center: catford, Zoom: 17}, cam)
	})

	t.Run("invalid zoom", func(t *testing.T) {
		s := readySurface(t, Options{})
		assert.ErrorIs(t, s.NavigateTo(catford, 23), ErrInvalidZoom)
		assert.ErrorIs(t, s.NavigateTo(catford, -1), ErrInvalidZoom)
		cam, _ := s.Camera()
		assert.Equal(t, 15, cam.Zoom)
	})
}

func TestSurface_SpatialQueries(t *testing.T) {
	s := readySurface(t, Options{})

	l, _ := s.OnMapClick(lewisham)
	c, _ := s.OnMapClick(catford)
	g, _ := s.OnMapClick(greenwich)

	nearest, err := s.NearestMarkers(types.MapPoint{Latitude: 51.4460, Longitude: -0.0190}, 2)
	require.NoError(t, err)
	require.Len(t, nearest, 2)
	assert.Equal(t, c.ID, nearest[0].ID)
	assert.Equal(t, l.ID, nearest[1].ID)

	nearby, err := s.MarkersNearby(lewisham, 2000)
	require.NoError(t, err)
	require.Len(t, nearby, 2)
	assert.Equal(t, l.ID, nearby[0].ID)
	assert.Equal(t, c.ID, nearby[1].ID)

	// Box around Greenwich and Lewisham but not Catford
	inBox, err := s.MarkersInBounds(orb.Bound{Min: orb.Point{-0.010, 51.447}, Max: orb.Point{0.0, 51.49}})
	require.NoError(t, err)
	require.Len(t, inBox, 2)
	assert.Equal(t, l.ID, inBox[0].ID)
	assert.Equal(t, g.ID, inBox[1].ID)

	_, err = s.MarkersNearby(lewisham, 0)
	assert.Error(t, err)
}

func TestSurface_MarkersGeoJSON(t *testing.T) {
	s := readySurface(t, Options{})

	a, _ := s.OnMapClick(lewisham)
	_, _ = s.OnMapClick(catford)
	require.NoError(t, s.OnMarkerClick(a.ID))

	fc := s.MarkersGeoJSON()
	require.Len(t, fc.Features, 2)

	f := fc.Features[0]
	assert.Equal(t, a.ID.String(), f.ID)
	assert.Equal(t, orb.Point{lewisham.Longitude, lewisham.Latitude}, f.Geometry)
	assert.Equal(t, true, f.Properties["selected"])
	assert.Equal(t, false, fc.Features[1].Properties["selected"])
}

func TestSurface_Render(t *testing.T) {
	bst := time.FixedZone("BST", 60*60)

	created := time.Date(2024, 7, 1, 13, 0, 0, 0, time.UTC)
	clock := &fakeClock{t: created}
	places := &fakePlaces{name: "Lewisham Shopping Centre"}

	s := readySurface(t, Options{
		Now:       clock.Now,
		Places:    places,
		Timezones: fixedZone{loc: bst},
	})

	m, err := s.OnMapClick(lewisham)
	require.NoError(t, err)

	view := s.Render(created)
	assert.Equal(t, Ready, view.Status)
	assert.Empty(t, view.Placeholder)
	require.Len(t, view.Markers, 1)
	assert.Equal(t, "/img/toilet-marker.svg", view.Markers[0].IconURL)
	assert.Equal(t, Size{Width: 45, Height: 45}, view.Markers[0].IconSize)
	assert.Nil(t, view.Overlay)

	require.NoError(t, s.OnMarkerClick(m.ID))

	view = s.Render(created.Add(61 * time.Minute))
	require.NotNil(t, view.Overlay)
	assert.Equal(t, m.ID, view.Overlay.MarkerID)
	assert.Equal(t, Offset{X: 0, Y: -45}, view.Overlay.Offset)
	assert.Equal(t, OverlayTitle, view.Overlay.Title)
	assert.Equal(t, "about 1 hour ago", view.Overlay.Logged)
	// 13:00 UTC is 14:00 BST
	assert.Equal(t, "today at 2:00 PM", view.Overlay.LoggedAt)
	assert.Equal(t, "Lewisham Shopping Centre", view.Overlay.Place)

	// Re-rendering later moves the relative time without touching the marker
	later := s.Render(created.Add(3 * time.Hour))
	assert.Equal(t, "about 3 hours ago", later.Overlay.Logged)
	assert.Equal(t, created, s.Markers()[0].CreatedAt)
}

func TestSurface_PlaceLabel(t *testing.T) {
	t.Run("looked up once per marker", func(t *testing.T) {
		places := &fakePlaces{name: "Catford Bridge"}
		s := readySurface(t, Options{Places: places})

		m, _ := s.OnMapClick(catford)
		require.NoError(t, s.OnMarkerClick(m.ID))
		s.OnOverlayClose()
		require.NoError(t, s.OnMarkerClick(m.ID))

		assert.Equal(t, 1, places.calls)
		assert.Equal(t, "Catford Bridge", s.Render(time.Now()).Overlay.Place)
	})

	t.Run("failure leaves label empty", func(t *testing.T) {
		places := &fakePlaces{err: errors.New("unable to geocode")}
		s := readySurface(t, Options{Places: places})

		m, _ := s.OnMapClick(catford)
		require.NoError(t, s.OnMarkerClick(m.ID))

		assert.Empty(t, s.Render(time.Now()).Overlay.Place)
	})

	t.Run("dropped for removed marker", func(t *testing.T) {
		q := &queueDispatcher{}
		places := &fakePlaces{name: "Catford Bridge"}
		s := readySurface(t, Options{Places: places, Dispatcher: q})

		m, _ := s.OnMapClick(catford)
		require.NoError(t, s.OnMarkerClick(m.ID))
		require.NoError(t, s.RemoveMarker(m.ID))
		q.flush()

		assert.Empty(t, s.labels)
	})
}
