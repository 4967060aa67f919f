package types

// Roles accepted in a conversation history.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

type ConversationTurn struct {
	Role    string `json:"role" validate:"required,oneof=user assistant system"`
	Content string `json:"content"`
}

// ChatRequest carries the newest user message; History holds earlier turns in
// chronological order and does not include Message.
type ChatRequest struct {
	Message string             `json:"message" validate:"required"`
	History []ConversationTurn `json:"history,omitempty" validate:"dive"`
}

type ChatResponse struct {
	Text        string       `json:"text"`
	MapArtifact *MapArtifact `json:"mapArtifact,omitempty"`
}

type ArtifactKind string

const (
	ArtifactPlace      ArtifactKind = "place"
	ArtifactDirections ArtifactKind = "directions"
)

// MapArtifact is a renderable map reference. Place artifacts fill Name,
// Address and Rating (each optional); directions artifacts fill Origin,
// Destination and Mode.
type MapArtifact struct {
	Kind        ArtifactKind `json:"kind"`
	EmbedURL    string       `json:"embedUrl"`
	ExternalURL string       `json:"externalUrl"`

	Name    string   `json:"name,omitempty"`
	Address string   `json:"address,omitempty"`
	Rating  *float64 `json:"rating,omitempty"`

	Origin      string `json:"origin,omitempty"`
	Destination string `json:"destination,omitempty"`
	Mode        string `json:"mode,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// Passthrough endpoint bodies.

type SearchRequest struct {
	Query    string `json:"query" validate:"required,min=1,max=200"`
	Location string `json:"location,omitempty" validate:"omitempty,latlng"`
	Radius   int    `json:"radius,omitempty" validate:"omitempty,min=1,max=50000"`
}

type PlaceDetailsRequest struct {
	PlaceID string `json:"place_id" validate:"required,min=5"`
}

type DirectionsRequest struct {
	Origin      string `json:"origin" validate:"required,min=1"`
	Destination string `json:"destination" validate:"required,min=1"`
	Mode        string `json:"mode,omitempty"`
}

// RawResponse wraps an unmodified provider payload.
type RawResponse struct {
	Raw map[string]any `json:"raw"`
}

type EmbedResponse struct {
	EmbedURL    string `json:"embed_url"`
	ExternalURL string `json:"external_url"`
}
