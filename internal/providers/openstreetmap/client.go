package openstreetmap

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/paulmach/orb"
	"golang.org/x/time/rate"
)

// API Docs: https://nominatim.org/release-docs/develop/api/Search/
// Sample request: https://nominatim.openstreetmap.org/search?q=Lewisham+Library&format=json&limit=5
// Sample request: https://nominatim.openstreetmap.org/reverse?lat=51.4495&lon=-0.0041&format=json
const (
	baseURL          = "https://nominatim.openstreetmap.org"
	defaultUserAgent = "toilet-finder/1.0"
)

// ErrNoResult is returned when Nominatim answers but has nothing for the request
var ErrNoResult = errors.New("no result")

type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// Option configures a Client
type Option func(*Client)

// WithBaseURL points the client at another Nominatim instance
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithUserAgent sets the identifying User-Agent required by the usage policy
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithRateLimit caps outgoing requests per second. Zero or less disables limiting.
func WithRateLimit(perSecond float64) Option {
	return func(c *Client) {
		if perSecond <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
	}
}

// WithTimeout bounds every HTTP round trip
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// NewClient creates a Nominatim client. The public instance allows one request per second.
func NewClient(logger *slog.Logger, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{},
		baseURL:    baseURL,
		userAgent:  defaultUserAgent,
		limiter:    rate.NewLimiter(rate.Limit(1), 1),
		logger:     logger.With("component", "nominatim-client"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SearchParams describes a free-form /search request
type SearchParams struct {
	Query string
	// ViewBox biases results toward an area; with Bounded false results
	// outside it are still returned.
	ViewBox *orb.Bound
	Bounded bool
	Limit   int
}

// Search geocodes a free-form query
func (c *Client) Search(ctx context.Context, params SearchParams) ([]Place, error) {
	q := url.Values{}
	q.Set("q", params.Query)
	q.Set("format", "json")
	if params.Limit > 0 {
		q.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.ViewBox != nil {
		b := params.ViewBox
		// viewbox=<x1>,<y1>,<x2>,<y2> as lon/lat corners
		q.Set("viewbox", fmt.Sprintf("%f,%f,%f,%f", b.Left(), b.Top(), b.Right(), b.Bottom()))
		if params.Bounded {
			q.Set("bounded", "1")
		} else {
			q.Set("bounded", "0")
		}
	}

	var places []Place
	if err := c.get(ctx, "/search", q, &places); err != nil {
		return nil, err
	}

	c.logger.Debug("nominatim search completed", "query", params.Query, "results", len(places))

	return places, nil
}

// Reverse looks up the place at a coordinate
func (c *Client) Reverse(ctx context.Context, latitude, longitude float64) (*Place, error) {
	q := url.Values{}
	q.Set("lat", fmt.Sprintf("%f", latitude))
	q.Set("lon", fmt.Sprintf("%f", longitude))
	q.Set("format", "json")
	q.Set("addressdetails", "1")

	var resp struct {
		Place
		ErrorResponse
	}
	if err := c.get(ctx, "/reverse", q, &resp); err != nil {
		return nil, err
	}
	if resp.ErrorResponse.Error != "" {
		return nil, fmt.Errorf("%w: %s", ErrNoResult, resp.ErrorResponse.Error)
	}

	return &resp.Place, nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values, out any) error {
	// Build URL with query parameters
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return fmt.Errorf("failed to parse base URL: %w", err)
	}
	u = u.JoinPath(path)
	u.RawQuery = q.Encode()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limit wait: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("fetching from nominatim", "url", u.String())

	// Make the HTTP request
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch: %w", err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("nominatim returned error",
			"status_code", resp.StatusCode,
			"response_body", string(body),
		)
		return fmt.Errorf("fetch returned status %d: %s", resp.StatusCode, string(body))
	}

	// Parse the JSON response
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
