// Package osm holds the thin clients for the OpenStreetMap ecosystem
// services the planner talks to: Nominatim (geocoding and text search),
// Overpass (tag-based spatial queries) and OSRM (routing).
package osm

import "fmt"

// Candidate is one discovered place before bucket classification. Tags is
// nil for text-search results, which carry no attribute dictionary.
type Candidate struct {
	Name   string
	Lat    float64
	Lng    float64
	MapURL string
	Tags   map[string]string
}

// MapURL builds the standard map deep link for a coordinate.
func MapURL(lat, lng float64) string {
	return fmt.Sprintf("https://www.openstreetmap.org/?mlat=%v&mlon=%v#map=15/%v/%v", lat, lng, lat, lng)
}

// ClientOptions carries the header values every OSM service expects.
type ClientOptions struct {
	UserAgent      string
	AcceptLanguage string
}
