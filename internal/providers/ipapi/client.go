package ipapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// API Docs: https://ip-api.com/docs/api:json
// Sample request: http://ip-api.com/json/81.2.69.142?fields=status,message,query,city,lat,lon
const (
	baseLookupURL = "http://ip-api.com"
	lookupFields  = "status,message,query,city,lat,lon"
)

// ErrLookupFailed is returned when ip-api answers with status "fail",
// e.g. for private or reserved addresses.
var ErrLookupFailed = errors.New("ip lookup failed")

type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = baseLookupURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		logger:     logger.With("component", "ipapi-client"),
	}
}

// Lookup returns the approximate position of ip. An empty ip looks up the
// address the request originates from.
func (c *Client) Lookup(ctx context.Context, ip string) (*LookupAPIResponse, error) {
	// Build URL with query parameters
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}
	u = u.JoinPath("json", ip)

	q := u.Query()
	q.Set("fields", lookupFields)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	c.logger.Debug("fetching from ip-api", "url", u.String())

	// Make the HTTP request
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch: %w", err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("fetch returned status %d: %s", resp.StatusCode, string(body))
	}

	// Parse the JSON response
	var apiResp LookupAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if apiResp.Status != StatusSuccess {
		return nil, fmt.Errorf("%w: %s", ErrLookupFailed, apiResp.Message)
	}

	return &apiResp, nil
}
