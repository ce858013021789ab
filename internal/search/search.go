// Package search implements the address search box: autocomplete
// suggestions while typing and navigation to a chosen suggestion.
package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"toilet-finder/internal/eventloop"
	"toilet-finder/internal/metrics"
	"toilet-finder/internal/types"
)

const (
	Placeholder    = "Start typing a place name or address..."
	defaultZoom    = 17
	defaultTimeout = 10 * time.Second
)

var ErrUnknownSuggestion = errors.New("unknown suggestion")

// Status of the latest suggestion request
type Status string

const (
	StatusIdle        Status = "idle"
	StatusPending     Status = "pending"
	StatusOK          Status = "ok"
	StatusZeroResults Status = "zero_results"
	StatusError       Status = "error"
)

// Provider offers autocomplete predictions and resolves an address to a point
type Provider interface {
	Suggest(ctx context.Context, query string) ([]types.Suggestion, error)
	Geocode(ctx context.Context, address string) (types.MapPoint, error)
}

// Navigator moves the map. It is the only map capability search is given.
type Navigator interface {
	NavigateTo(point types.MapPoint, zoom int) error
}

type Options struct {
	Provider   Provider
	Navigator  Navigator
	Ready      func() bool // autocomplete availability; nil means always ready
	Dispatcher eventloop.Dispatcher
	Timeout    time.Duration
	Zoom       int
	Metrics    *metrics.Metrics
	Logger     *slog.Logger
}

// Box holds the search input state. Like the map surface it is owned by a
// single event loop and is not safe for concurrent use.
type Box struct {
	provider   Provider
	navigator  Navigator
	ready      func() bool
	dispatcher eventloop.Dispatcher
	timeout    time.Duration
	zoom       int
	metrics    *metrics.Metrics
	logger     *slog.Logger

	value       string
	status      Status
	suggestions []types.Suggestion

	suggest request
	resolve request
}

// request tracks the latest generation of one kind of async call
type request struct {
	gen    uint64
	cancel context.CancelFunc
}

// supersede cancels the in-flight call, if any, and invalidates its response
func (r *request) supersede() {
	r.stop()
	r.gen++
}

// next supersedes the in-flight call and returns the context of a new one
func (r *request) next(timeout time.Duration) (context.Context, uint64) {
	r.supersede()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	r.cancel = cancel
	return ctx, r.gen
}

func (r *request) stop() {
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
}

func (r *request) current(gen uint64) bool {
	return r.gen == gen
}

func New(opts Options) *Box {
	if opts.Ready == nil {
		opts.Ready = func() bool { return true }
	}
	if opts.Dispatcher == nil {
		opts.Dispatcher = eventloop.Inline{}
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.Zoom == 0 {
		opts.Zoom = defaultZoom
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	return &Box{
		provider:   opts.Provider,
		navigator:  opts.Navigator,
		ready:      opts.Ready,
		dispatcher: opts.Dispatcher,
		timeout:    opts.Timeout,
		zoom:       opts.Zoom,
		metrics:    opts.Metrics,
		logger:     opts.Logger.With("component", "search"),
		status:     StatusIdle,
	}
}

// OnInputChange records what the user typed and, once autocomplete is
// available, fetches suggestions for it. Only the newest query's response is
// ever applied.
func (b *Box) OnInputChange(text string) {
	b.value = text

	if !b.ready() || strings.TrimSpace(text) == "" {
		b.suggest.supersede()
		b.clearSuggestions()
		return
	}

	ctx, gen := b.suggest.next(b.timeout)
	b.status = StatusPending
	b.dispatcher.Dispatch(func() func() {
		results, err := b.provider.Suggest(ctx, text)
		return func() { b.applySuggestions(gen, text, results, err) }
	})
}

func (b *Box) applySuggestions(gen uint64, query string, results []types.Suggestion, err error) {
	if !b.suggest.current(gen) {
		b.metrics.IncStaleResponse(metrics.OpSuggest)
		return
	}
	b.suggest.stop()

	if err != nil {
		b.metrics.IncAsyncFailure(metrics.OpSuggest)
		b.logger.Warn("failed to fetch suggestions", "query", query, "error", err)
		b.status = StatusError
		b.suggestions = nil
		return
	}

	b.suggestions = results
	if len(results) == 0 {
		b.status = StatusZeroResults
	} else {
		b.status = StatusOK
	}
}

// OnSuggestionSelected fills the input with the suggestion, closes the list
// and navigates the map to it once the address resolves. Resolution failures
// are logged and leave the map where it is.
func (b *Box) OnSuggestionSelected(id string) error {
	i := slices.IndexFunc(b.suggestions, func(s types.Suggestion) bool { return s.ID == id })
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownSuggestion, id)
	}
	address := b.suggestions[i].Description

	// Setting the value this way must not start a new suggestion query, and
	// any query still in flight is now stale.
	b.value = address
	b.suggest.supersede()
	b.clearSuggestions()

	ctx, gen := b.resolve.next(b.timeout)
	b.dispatcher.Dispatch(func() func() {
		point, err := b.provider.Geocode(ctx, address)
		return func() { b.applyResolved(gen, address, point, err) }
	})
	return nil
}

func (b *Box) applyResolved(gen uint64, address string, point types.MapPoint, err error) {
	if !b.resolve.current(gen) {
		b.metrics.IncStaleResponse(metrics.OpResolve)
		return
	}
	b.resolve.stop()

	if err != nil {
		b.metrics.IncAsyncFailure(metrics.OpResolve)
		b.logger.Warn("failed to resolve address", "address", address, "error", err)
		return
	}

	if err := b.navigator.NavigateTo(point, b.zoom); err != nil {
		b.logger.Warn("failed to navigate to address", "address", address, "error", err)
		return
	}
	b.logger.Debug("navigated to address", "address", address, "position", point.String())
}

func (b *Box) clearSuggestions() {
	b.suggestions = nil
	b.status = StatusIdle
}

// View is the render state of the search box
type View struct {
	Value       string             `json:"value"`
	Placeholder string             `json:"placeholder"`
	Disabled    bool               `json:"disabled"`
	Status      Status             `json:"status"`
	Suggestions []types.Suggestion `json:"suggestions"`
}

func (b *Box) View() View {
	suggestions := b.suggestions
	if b.status != StatusOK {
		suggestions = nil
	}
	return View{
		Value:       b.value,
		Placeholder: Placeholder,
		Disabled:    !b.ready(),
		Status:      b.status,
		Suggestions: append([]types.Suggestion{}, suggestions...),
	}
}
