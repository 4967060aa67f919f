package intent

import (
	"regexp"
	"strings"
)

const DefaultMode = "driving"

// Params is the structured input for a tool call. It is either
// DirectionsParams or PlaceSearchParams.
type Params interface {
	Kind() Kind
}

type DirectionsParams struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Mode        string `json:"mode"`
}

func (DirectionsParams) Kind() Kind { return KindDirections }

type PlaceSearchParams struct {
	Query  string `json:"query"`
	Radius int    `json:"radius"`
}

func (PlaceSearchParams) Kind() Kind { return KindPlaceSearch }

// A place span is Latin letters and spaces only. Names with digits,
// punctuation or other scripts ("5th Ave", "Saint-Denis", "서울") do not
// match and the message falls through to a miss.
const span = `[a-z][a-z\s]*?`

const routeTail = `\s+to\s+(?P<destination>` + span + `)(?:\s+by\s+(?P<mode>[a-z]+))?[\s.!?]*$`

// directionPatterns are tried in order; the first match wins.
var directionPatterns = []*regexp.Regexp{
	// "... from <origin> to <destination> [by <mode>]"
	regexp.MustCompile(`(?i)\bfrom\s+(?P<origin>` + span + `)` + routeTail),
	// "[direction|show|get] [me] [direction] [from] <origin> to <destination> [by <mode>]"
	regexp.MustCompile(`(?i)^\s*(?:(?:directions?|show|get)\s+)?(?:me\s+)?(?:directions?\s+)?(?:from\s+)?(?P<origin>` + span + `)` + routeTail),
}

type Extractor struct {
	radius int
}

// NewExtractor returns an extractor that attaches radius to every place search.
func NewExtractor(radius int) *Extractor {
	return &Extractor{radius: radius}
}

// Extract pulls tool parameters out of message for the given intent. The
// boolean is false on a miss: the intent was actionable but nothing usable
// was found. Place searches never miss.
func (e *Extractor) Extract(kind Kind, message string) (Params, bool) {
	switch kind {
	case KindDirections:
		p, ok := matchDirections(message)
		if !ok {
			return nil, false
		}
		return p, true
	case KindPlaceSearch:
		return PlaceSearchParams{Query: message, Radius: e.radius}, true
	default:
		return nil, false
	}
}

func matchDirections(message string) (DirectionsParams, bool) {
	for _, re := range directionPatterns {
		m := re.FindStringSubmatch(message)
		if m == nil {
			continue
		}
		p := DirectionsParams{
			Origin:      strings.TrimSpace(m[re.SubexpIndex("origin")]),
			Destination: strings.TrimSpace(m[re.SubexpIndex("destination")]),
			Mode:        strings.ToLower(m[re.SubexpIndex("mode")]),
		}
		if p.Origin == "" || p.Destination == "" {
			continue
		}
		if p.Mode == "" {
			p.Mode = DefaultMode
		}
		return p, true
	}
	return DirectionsParams{}, false
}
