package intent

import "strings"

type Kind string

const (
	KindNone        Kind = "none"
	KindDirections  Kind = "directions"
	KindPlaceSearch Kind = "place_search"
)

type rule struct {
	kind     Kind
	keywords []string
}

// rules are evaluated top to bottom and the first hit wins, so a message that
// mentions both a route and a place is always treated as directions.
var rules = []rule{
	{kind: KindDirections, keywords: []string{"direction", "how to get", "from", "to"}},
	{kind: KindPlaceSearch, keywords: []string{"find", "show", "where", "restaurant", "coffee", "shop", "place"}},
}

// Classify maps raw user text to an intent using case-insensitive substring
// matching. Keywords match inside words too ("tomorrow" contains "to").
func Classify(message string) Kind {
	m := strings.ToLower(message)
	for _, r := range rules {
		if containsAny(m, r.keywords) {
			return r.kind
		}
	}
	return KindNone
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
