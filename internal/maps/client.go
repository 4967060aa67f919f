package maps

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const DefaultBaseURL = "https://maps.googleapis.com/maps/api"

// Provider is the mapping capability the chat turn depends on.
type Provider interface {
	TextSearch(ctx context.Context, query, location string, radius int) (*TextSearchResponse, error)
}

// Client talks to the Google Maps web service REST endpoints.
type Client struct {
	httpClient *http.Client
	baseAPI    string
	apiKey     string
}

func NewClient(apiKey, baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseAPI:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
	}
}

// ---- Helpers ----

func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	params.Set("key", c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseAPI+path+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		// The request URL carries the API key; keep it out of errors and logs.
		var ue *url.Error
		if errors.As(err, &ue) {
			ue.URL = c.baseAPI + path
		}
		return nil, fmt.Errorf("maps api %s: %w", path, err)
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("maps api %s: read body: %w", path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: %s %d: %s", ErrUpstreamStatus, path, resp.StatusCode, strings.TrimSpace(string(b)))
	}
	return b, nil
}

func (c *Client) getRaw(ctx context.Context, path string, params url.Values) (map[string]any, error) {
	b, err := c.get(ctx, path, params)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("maps api %s: decode: %w", path, err)
	}
	return out, nil
}

// ---- Endpoints ----

// TextSearch runs a free-text place search. location ("lat,lng") and radius
// are omitted from the request when empty or zero.
func (c *Client) TextSearch(ctx context.Context, query, location string, radius int) (*TextSearchResponse, error) {
	qv := url.Values{}
	qv.Set("query", query)
	if location != "" {
		qv.Set("location", location)
	}
	if radius > 0 {
		qv.Set("radius", strconv.Itoa(radius))
	}
	b, err := c.get(ctx, "/place/textsearch/json", qv)
	if err != nil {
		return nil, err
	}
	return decodeTextSearch(b)
}

func (c *Client) PlaceDetails(ctx context.Context, placeID string) (map[string]any, error) {
	qv := url.Values{}
	qv.Set("place_id", placeID)
	return c.getRaw(ctx, "/place/details/json", qv)
}

func (c *Client) Directions(ctx context.Context, origin, destination, mode string) (map[string]any, error) {
	qv := url.Values{}
	qv.Set("origin", origin)
	qv.Set("destination", destination)
	if mode != "" {
		qv.Set("mode", mode)
	}
	return c.getRaw(ctx, "/directions/json", qv)
}
