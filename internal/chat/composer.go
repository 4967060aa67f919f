package chat

import (
	"strconv"
	"strings"

	"maps-assistant-backend/internal/llm"
	"maps-assistant-backend/internal/types"
)

const (
	routeShown = "\n\nI've shown the route on the map below."
	placeShown = "\n\nI've shown the location on the map below."
)

// Compose merges the model reply and the tool outcome into the turn's
// response. The artifact is attached only on ToolSuccess; every other
// outcome returns the base text untouched.
func Compose(out llm.Outcome, tool ToolOutcome) types.ChatResponse {
	text := out.Text
	if tool.Status != ToolSuccess || tool.Artifact == nil {
		return types.ChatResponse{Text: text}
	}
	switch tool.Artifact.Kind {
	case types.ArtifactDirections:
		text += routeShown
	case types.ArtifactPlace:
		text += placeBlock(tool.Artifact) + placeShown
	}
	return types.ChatResponse{Text: text, MapArtifact: tool.Artifact}
}

func placeBlock(a *types.MapArtifact) string {
	lines := make([]string, 0, 3)
	if a.Name != "" {
		lines = append(lines, "**"+a.Name+"**")
	}
	if a.Address != "" {
		lines = append(lines, a.Address)
	}
	if a.Rating != nil {
		lines = append(lines, "Rating: "+strconv.FormatFloat(*a.Rating, 'f', -1, 64)+"/5")
	}
	if len(lines) == 0 {
		return ""
	}
	return "\n\n" + strings.Join(lines, "\n")
}
