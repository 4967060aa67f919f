package maps

import "net/url"

// URLBuilder produces embeddable map URLs and external deep links. It does not
// call the network, so nothing checks that the locations exist.
type URLBuilder struct {
	apiKey string
}

func NewURLBuilder(apiKey string) URLBuilder {
	return URLBuilder{apiKey: apiKey}
}

func (b URLBuilder) EmbedPlace(placeID string) string {
	qv := url.Values{}
	qv.Set("key", b.apiKey)
	qv.Set("q", "place_id:"+placeID)
	return "https://www.google.com/maps/embed/v1/place?" + qv.Encode()
}

func (b URLBuilder) ExternalPlace(placeID string) string {
	qv := url.Values{}
	qv.Set("q", "place_id:"+placeID)
	return "https://maps.google.com/?" + qv.Encode()
}

func (b URLBuilder) EmbedDirections(origin, destination, mode string) string {
	qv := url.Values{}
	qv.Set("key", b.apiKey)
	qv.Set("origin", origin)
	qv.Set("destination", destination)
	if mode != "" {
		qv.Set("mode", mode)
	}
	return "https://www.google.com/maps/embed/v1/directions?" + qv.Encode()
}

func (b URLBuilder) ExternalDirections(origin, destination, mode string) string {
	qv := url.Values{}
	qv.Set("api", "1")
	qv.Set("origin", origin)
	qv.Set("destination", destination)
	if mode != "" {
		qv.Set("travelmode", mode)
	}
	return "https://www.google.com/maps/dir/?" + qv.Encode()
}
