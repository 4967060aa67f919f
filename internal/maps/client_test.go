package maps

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextSearch(t *testing.T) {
	var got url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/place/textsearch/json", r.URL.Path)
		got = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"OK","results":[
			{"place_id":"abc123","name":"Blue Bottle","formatted_address":"1 Main St","rating":4.5,"types":["cafe"]},
			{"place_id":"def456","name":"Other"}
		]}`))
	}))
	defer srv.Close()

	c := NewClient("test-key-123", srv.URL, time.Second)
	resp, err := c.TextSearch(context.Background(), "coffee near me", "", 5000)
	require.NoError(t, err)
	require.NoError(t, resp.Err())

	assert.Equal(t, "coffee near me", got.Get("query"))
	assert.Equal(t, "5000", got.Get("radius"))
	assert.Equal(t, "test-key-123", got.Get("key"))
	assert.False(t, got.Has("location"))

	require.Len(t, resp.Results, 2)
	assert.Equal(t, "abc123", resp.Results[0].PlaceID)
	require.NotNil(t, resp.Results[0].Rating)
	assert.Equal(t, 4.5, *resp.Results[0].Rating)
	assert.Nil(t, resp.Results[1].Rating)
	assert.Equal(t, "OK", resp.Raw["status"])
}

func TestTextSearchHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewClient("k", srv.URL, time.Second).TextSearch(context.Background(), "q", "", 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUpstreamStatus)
	assert.Contains(t, err.Error(), "boom")
}

func TestTextSearchProviderStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"REQUEST_DENIED","error_message":"bad key","results":[]}`))
	}))
	defer srv.Close()

	resp, err := NewClient("k", srv.URL, time.Second).TextSearch(context.Background(), "q", "", 0)
	require.NoError(t, err)
	assert.ErrorIs(t, resp.Err(), ErrProviderStatus)
	assert.Contains(t, resp.Err().Error(), "bad key")
}

func TestZeroResultsIsNotAnError(t *testing.T) {
	r := &TextSearchResponse{Status: "ZERO_RESULTS"}
	assert.NoError(t, r.Err())
}

func TestTextSearchTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	defer srv.Close()

	_, err := NewClient("k", srv.URL, 50*time.Millisecond).TextSearch(context.Background(), "q", "", 0)
	require.Error(t, err)
}

func TestTransportErrorOmitsAPIKey(t *testing.T) {
	const key = "SECRET-API-KEY-123"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	defer srv.Close()

	_, err := NewClient(key, srv.URL, 50*time.Millisecond).TextSearch(context.Background(), "coffee", "", 0)
	require.Error(t, err)
	assert.NotContains(t, err.Error(), key)
	assert.Contains(t, err.Error(), "/place/textsearch/json")

	closed := httptest.NewServer(http.NotFoundHandler())
	addr := closed.URL
	closed.Close()
	_, err = NewClient(key, addr, time.Second).Directions(context.Background(), "Paris", "Lyon", "")
	require.Error(t, err)
	assert.NotContains(t, err.Error(), key)
}

func TestDirectionsAndDetails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		switch r.URL.Path {
		case "/directions/json":
			assert.Equal(t, "Seoul", q.Get("origin"))
			assert.Equal(t, "Busan", q.Get("destination"))
			assert.Equal(t, "transit", q.Get("mode"))
			_, _ = w.Write([]byte(`{"status":"OK","routes":[]}`))
		case "/place/details/json":
			assert.Equal(t, "abc123", q.Get("place_id"))
			_, _ = w.Write([]byte(`{"status":"OK","result":{"name":"Blue Bottle"}}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := NewClient("k", srv.URL, time.Second)
	d, err := c.Directions(context.Background(), "Seoul", "Busan", "transit")
	require.NoError(t, err)
	assert.Equal(t, "OK", d["status"])

	p, err := c.PlaceDetails(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Equal(t, "Blue Bottle", p["result"].(map[string]any)["name"])
}
