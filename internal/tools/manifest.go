package tools

import (
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// Travel modes accepted by the directions embed.
var TravelModes = []string{"driving", "walking", "bicycling", "transit"}

// Functions describes the map endpoints as OpenAI-style function tools so
// external chat front-ends can call them.
func Functions() []openai.Tool {
	return []openai.Tool{
		{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        "search_places",
				Description: "Search for places using a free-text query and optional location/radius",
				Parameters: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"query":    map[string]any{"type": "string"},
						"location": map[string]any{"type": "string", "description": "lat,lng (optional)"},
						"radius":   map[string]any{"type": "integer", "minimum": 1, "maximum": 50000},
					},
					"required": []string{"query"},
				},
			},
		},
		{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        "embed_place",
				Description: "Get embeddable map URL and external link for a place",
				Parameters: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"place_id": map[string]any{"type": "string"},
					},
					"required": []string{"place_id"},
				},
			},
		},
		{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        "embed_directions",
				Description: "Get embeddable directions map URL and external link",
				Parameters: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"origin":      map[string]any{"type": "string"},
						"destination": map[string]any{"type": "string"},
						"mode":        map[string]any{"type": "string", "enum": TravelModes},
					},
					"required": []string{"origin", "destination"},
				},
			},
		},
	}
}

type ActionConfig struct {
	Method  string            `json:"method"`
	URL     string            `json:"url"`
	Headers map[string]string `json:"headers,omitempty"`
	Body    map[string]string `json:"body,omitempty"`
}

type Action struct {
	Name   string       `json:"name"`
	Type   string       `json:"type"`
	Config ActionConfig `json:"config"`
}

// Actions lists HTTP request actions with absolute URLs under baseURL.
// Placeholders use the {{name}} template syntax.
func Actions(baseURL string) []Action {
	base := strings.TrimRight(baseURL, "/")
	return []Action{
		{
			Name: "search_places",
			Type: "request",
			Config: ActionConfig{
				Method:  "POST",
				URL:     base + "/api/search",
				Headers: map[string]string{"Content-Type": "application/json"},
				Body: map[string]string{
					"query":    "{{query}}",
					"location": "{{location}}",
					"radius":   "{{radius}}",
				},
			},
		},
		{
			Name:   "embed_place",
			Type:   "request",
			Config: ActionConfig{Method: "GET", URL: base + "/api/embed/place/{{place_id}}"},
		},
		{
			Name:   "embed_directions",
			Type:   "request",
			Config: ActionConfig{Method: "GET", URL: base + "/api/embed/directions?origin={{origin}}&destination={{destination}}&mode={{mode}}"},
		},
	}
}
