// Package session wires the map surface, search box, report form and
// geolocation into one map session driven by a single event loop.
//
// Every mutation runs on the loop in delivery order. After each mutation,
// and after each async completion, the session renders a Frame and publishes
// it to subscribers.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"toilet-finder/internal/config"
	"toilet-finder/internal/eventloop"
	"toilet-finder/internal/geolocation"
	"toilet-finder/internal/location"
	"toilet-finder/internal/mapsurface"
	"toilet-finder/internal/metrics"
	"toilet-finder/internal/report"
	"toilet-finder/internal/search"
	"toilet-finder/internal/timezone"
)

const (
	defaultBuffer  = 64
	defaultRefresh = 30 * time.Second
)

// Frame is everything a client needs to draw the session
type Frame struct {
	Map        mapsurface.View `json:"map"`
	Search     search.View     `json:"search"`
	Report     report.View     `json:"report"`
	RenderedAt time.Time       `json:"renderedAt"`
}

// State is the component set a session owns. It must only be touched from
// functions passed to Update or View.
type State struct {
	Map     *mapsurface.Surface
	Search  *search.Box
	Form    *report.Form
	Locator *geolocation.Service
}

type Options struct {
	Config    *config.Config
	Geocoder  location.Service // required
	Positions geolocation.PositionProvider
	Timezones timezone.Service
	Loader    mapsurface.Loader
	Sink      report.Sink
	Now       func() time.Time
	Buffer    int
	Refresh   time.Duration // re-render interval so relative times advance
	Metrics   *metrics.Metrics
	Logger    *slog.Logger
}

type Session struct {
	loop    *eventloop.Loop
	state   State
	now     func() time.Time
	refresh time.Duration
	metrics *metrics.Metrics
	logger  *slog.Logger

	mu   sync.Mutex
	subs map[chan Frame]struct{}
}

func New(opts Options) (*Session, error) {
	if opts.Config == nil {
		return nil, errors.New("session: config is required")
	}
	if opts.Geocoder == nil {
		return nil, errors.New("session: geocoder is required")
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Buffer <= 0 {
		opts.Buffer = defaultBuffer
	}
	if opts.Refresh <= 0 {
		opts.Refresh = defaultRefresh
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Loader == nil {
		opts.Loader = mapsurface.NewCredentialLoader(opts.Config.Maps)
	}

	cfg := opts.Config
	s := &Session{
		loop:    eventloop.New(opts.Buffer),
		now:     opts.Now,
		refresh: opts.Refresh,
		metrics: opts.Metrics,
		logger:  opts.Logger.With("component", "session"),
		subs:    make(map[chan Frame]struct{}),
	}

	surface := mapsurface.New(mapsurface.Options{
		Config:     cfg.Maps,
		Loader:     opts.Loader,
		Dispatcher: s,
		Places:     opts.Geocoder,
		Timezones:  opts.Timezones,
		Timeout:    cfg.Providers.Timeout,
		Now:        opts.Now,
		Metrics:    opts.Metrics,
		Logger:     opts.Logger,
	})

	locatorOpts := geolocation.Options{
		Provider:   opts.Positions,
		Navigator:  surface,
		Dispatcher: s,
		Timeout:    cfg.Providers.Timeout,
		Zoom:       cfg.Search.NavigateZoom,
		Metrics:    opts.Metrics,
		Logger:     opts.Logger,
	}
	var locator *geolocation.Service
	if opts.Positions != nil {
		locator = geolocation.NewServiceWithProvider(locatorOpts)
	} else {
		locator = geolocation.NewService(cfg, locatorOpts)
	}

	s.state = State{
		Map: surface,
		Search: search.New(search.Options{
			Provider:   opts.Geocoder,
			Navigator:  surface,
			Ready:      surface.PlacesReady,
			Dispatcher: s,
			Timeout:    cfg.Providers.Timeout,
			Zoom:       cfg.Search.NavigateZoom,
			Metrics:    opts.Metrics,
			Logger:     opts.Logger,
		}),
		Form: report.NewForm(report.Options{
			Sink:    opts.Sink,
			Timeout: cfg.Providers.Timeout,
			Now:     opts.Now,
			Metrics: opts.Metrics,
			Logger:  opts.Logger,
		}),
		Locator: locator,
	}

	return s, nil
}

// Run loads the map and processes events until ctx is cancelled
func (s *Session) Run(ctx context.Context) error {
	s.loop.Post(func() {
		s.state.Map.Load(ctx)
		s.publish()
	})

	go s.tick(ctx)

	err := s.loop.Run(ctx)
	s.closeSubscribers()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (s *Session) tick(ctx context.Context) {
	ticker := time.NewTicker(s.refresh)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if s.subscriberCount() > 0 {
				s.loop.Post(s.publish)
			}
		}
	}
}

// Dispatch implements eventloop.Dispatcher. Completions are applied on the
// loop and followed by a frame publish.
func (s *Session) Dispatch(work func() func()) {
	s.loop.Dispatch(func() func() {
		complete := work()
		return func() {
			if complete != nil {
				complete()
			}
			s.publish()
		}
	})
}

// Update runs fn on the loop and publishes a new frame afterwards, whether or
// not fn failed.
func (s *Session) Update(ctx context.Context, fn func(st *State) error) error {
	var fnErr error
	err := s.loop.Do(ctx, func() {
		fnErr = fn(&s.state)
		s.publish()
	})
	if err != nil {
		return err
	}
	return fnErr
}

// View runs fn on the loop without publishing
func (s *Session) View(ctx context.Context, fn func(st *State)) error {
	return s.loop.Do(ctx, func() { fn(&s.state) })
}

// Frame renders the current state
func (s *Session) Frame(ctx context.Context) (Frame, error) {
	var f Frame
	err := s.loop.Do(ctx, func() { f = s.render() })
	return f, err
}

func (s *Session) render() Frame {
	now := s.now()
	return Frame{
		Map:        s.state.Map.Render(now),
		Search:     s.state.Search.View(),
		Report:     s.state.Form.View(),
		RenderedAt: now,
	}
}
