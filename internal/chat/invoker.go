package chat

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"maps-assistant-backend/internal/intent"
	"maps-assistant-backend/internal/maps"
	"maps-assistant-backend/internal/types"
)

type ToolStatus string

const (
	ToolSkipped  ToolStatus = "skipped"
	ToolSuccess  ToolStatus = "success"
	ToolNoResult ToolStatus = "no_result"
	ToolFailure  ToolStatus = "failure"
)

// ToolOutcome is what the map tool produced for a turn. Artifact is set only
// for ToolSuccess; Reason only for ToolFailure.
type ToolOutcome struct {
	Status   ToolStatus
	Artifact *types.MapArtifact
	Reason   string
}

// Invoker runs the mapping capability that matches extracted parameters.
type Invoker struct {
	provider maps.Provider
	urls     maps.URLBuilder
	timeout  time.Duration
	log      zerolog.Logger
}

func NewInvoker(provider maps.Provider, urls maps.URLBuilder, timeout time.Duration, log zerolog.Logger) *Invoker {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Invoker{provider: provider, urls: urls, timeout: timeout, log: log.With().Str("component", "tools").Logger()}
}

func (i *Invoker) Invoke(ctx context.Context, params intent.Params) ToolOutcome {
	switch p := params.(type) {
	case intent.DirectionsParams:
		return i.directions(p)
	case intent.PlaceSearchParams:
		return i.placeSearch(ctx, p)
	default:
		return ToolOutcome{Status: ToolSkipped}
	}
}

// directions never touches the network; the embed URL is built from the
// extracted text as-is.
func (i *Invoker) directions(p intent.DirectionsParams) ToolOutcome {
	return ToolOutcome{
		Status: ToolSuccess,
		Artifact: &types.MapArtifact{
			Kind:        types.ArtifactDirections,
			EmbedURL:    i.urls.EmbedDirections(p.Origin, p.Destination, p.Mode),
			ExternalURL: i.urls.ExternalDirections(p.Origin, p.Destination, p.Mode),
			Origin:      p.Origin,
			Destination: p.Destination,
			Mode:        p.Mode,
		},
	}
}

// placeSearch takes the provider's first result as-is, with no re-ranking.
func (i *Invoker) placeSearch(ctx context.Context, p intent.PlaceSearchParams) ToolOutcome {
	ctx, cancel := context.WithTimeout(ctx, i.timeout)
	defer cancel()

	resp, err := i.provider.TextSearch(ctx, p.Query, "", p.Radius)
	if err == nil {
		err = resp.Err()
	}
	if err != nil {
		i.log.Warn().Err(err).Str("query", p.Query).Msg("place search failed")
		return ToolOutcome{Status: ToolFailure, Reason: fmt.Sprintf("place search: %v", err)}
	}
	if len(resp.Results) == 0 || resp.Results[0].PlaceID == "" {
		return ToolOutcome{Status: ToolNoResult}
	}
	top := resp.Results[0]
	return ToolOutcome{
		Status: ToolSuccess,
		Artifact: &types.MapArtifact{
			Kind:        types.ArtifactPlace,
			EmbedURL:    i.urls.EmbedPlace(top.PlaceID),
			ExternalURL: i.urls.ExternalPlace(top.PlaceID),
			Name:        top.Name,
			Address:     top.FormattedAddress,
			Rating:      top.Rating,
		},
	}
}
