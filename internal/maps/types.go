package maps

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrUpstreamStatus is returned when the provider answers with a non-2xx HTTP status.
	ErrUpstreamStatus = errors.New("maps provider returned non-success HTTP status")
	// ErrProviderStatus marks a 2xx payload whose "status" field reports a failure.
	ErrProviderStatus = errors.New("maps provider reported an error status")
)

// Place is the subset of a text search result the assistant uses. Optional
// fields stay nil when the provider omits them.
type Place struct {
	PlaceID          string   `json:"place_id"`
	Name             string   `json:"name,omitempty"`
	FormattedAddress string   `json:"formatted_address,omitempty"`
	Rating           *float64 `json:"rating,omitempty"`
}

type TextSearchResponse struct {
	Status       string  `json:"status"`
	ErrorMessage string  `json:"error_message,omitempty"`
	Results      []Place `json:"results"`
	// Raw is the full provider payload, untouched.
	Raw map[string]any `json:"-"`
}

// Err reports provider-level failures. ZERO_RESULTS is not an error.
func (r *TextSearchResponse) Err() error {
	switch r.Status {
	case "", "OK", "ZERO_RESULTS":
		return nil
	}
	if r.ErrorMessage != "" {
		return fmt.Errorf("%w: %s: %s", ErrProviderStatus, r.Status, r.ErrorMessage)
	}
	return fmt.Errorf("%w: %s", ErrProviderStatus, r.Status)
}

func decodeTextSearch(b []byte) (*TextSearchResponse, error) {
	var out TextSearchResponse
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("decode text search: %w", err)
	}
	if err := json.Unmarshal(b, &out.Raw); err != nil {
		return nil, fmt.Errorf("decode text search: %w", err)
	}
	return &out, nil
}
