// Package geolocation pans the map to the caller's approximate position.
package geolocation

import (
	"context"
	"fmt"
	"log/slog"
	"net/netip"
	"time"

	"toilet-finder/internal/config"
	"toilet-finder/internal/eventloop"
	"toilet-finder/internal/metrics"
	"toilet-finder/internal/providers/ipapi"
	"toilet-finder/internal/types"
)

const (
	providerName   = "ipapi"
	defaultZoom    = 17
	defaultTimeout = 10 * time.Second
)

// PositionProvider defines the interface for IP geolocation providers
type PositionProvider interface {
	Lookup(ctx context.Context, ip string) (*ipapi.LookupAPIResponse, error)
}

// Navigator moves the map
type Navigator interface {
	NavigateTo(point types.MapPoint, zoom int) error
}

type Options struct {
	Provider   PositionProvider
	Navigator  Navigator
	Dispatcher eventloop.Dispatcher
	Timeout    time.Duration
	Zoom       int
	Metrics    *metrics.Metrics
	Logger     *slog.Logger
}

// Service locates callers. Like the other session components it is owned by
// a single event loop.
type Service struct {
	provider   PositionProvider
	navigator  Navigator
	dispatcher eventloop.Dispatcher
	timeout    time.Duration
	zoom       int
	metrics    *metrics.Metrics
	logger     *slog.Logger

	gen    uint64
	cancel context.CancelFunc
}

// NewService creates a geolocation service backed by ip-api.com
func NewService(cfg *config.Config, opts Options) *Service {
	opts.Provider = ipapi.NewClient(cfg.Providers.IPAPIURL, cfg.Providers.Timeout, loggerOrDefault(opts.Logger))
	return NewServiceWithProvider(opts)
}

// NewServiceWithProvider creates a geolocation service with the provider set in opts
// This is useful for testing with mock providers
func NewServiceWithProvider(opts Options) *Service {
	if opts.Dispatcher == nil {
		opts.Dispatcher = eventloop.Inline{}
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.Zoom == 0 {
		opts.Zoom = defaultZoom
	}
	return &Service{
		provider:   opts.Provider,
		navigator:  opts.Navigator,
		dispatcher: opts.Dispatcher,
		timeout:    opts.Timeout,
		zoom:       opts.Zoom,
		metrics:    opts.Metrics,
		logger:     loggerOrDefault(opts.Logger).With("component", "geolocation"),
	}
}

func loggerOrDefault(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.Default()
	}
	return l
}

// Locate looks up clientIP and pans the map there. Failures are logged and
// otherwise ignored; a newer Locate supersedes an older one.
func (s *Service) Locate(ctx context.Context, clientIP string) {
	if s.cancel != nil {
		s.cancel()
	}
	s.gen++
	gen := s.gen

	// The lookup outlives the request that asked for it
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
	s.cancel = cancel

	ip := lookupAddress(clientIP)
	s.dispatcher.Dispatch(func() func() {
		start := time.Now()
		resp, err := s.provider.Lookup(ctx, ip)
		s.metrics.ObserveProvider(providerName, start)

		var point types.MapPoint
		if err == nil {
			point, err = translatePosition(resp)
		}
		return func() { s.finish(gen, clientIP, point, err) }
	})
}

func (s *Service) finish(gen uint64, clientIP string, point types.MapPoint, err error) {
	if gen != s.gen {
		s.metrics.IncStaleResponse(metrics.OpLocate)
		return
	}
	s.cancel()
	s.cancel = nil

	if err != nil {
		s.metrics.IncAsyncFailure(metrics.OpLocate)
		s.logger.Warn("failed to locate caller", "client_ip", clientIP, "error", err)
		return
	}

	if err := s.navigator.NavigateTo(point, s.zoom); err != nil {
		s.logger.Warn("failed to navigate to caller", "position", point.String(), "error", err)
	}
}

// lookupAddress blanks addresses ip-api cannot resolve so that it falls back
// to the address the request comes from.
func lookupAddress(clientIP string) string {
	addr, err := netip.ParseAddr(clientIP)
	if err != nil || addr.IsLoopback() || addr.IsPrivate() || addr.IsUnspecified() {
		return ""
	}
	return addr.String()
}

// translatePosition converts an ip-api response to a validated MapPoint
func translatePosition(resp *ipapi.LookupAPIResponse) (types.MapPoint, error) {
	if resp == nil {
		return types.MapPoint{}, fmt.Errorf("lookup response is nil")
	}
	return types.NewMapPoint(resp.Lat, resp.Lon)
}
