package types

import "github.com/google/uuid"

// PlanRequest is the input contract of the itinerary engine. Dates are ISO
// calendar dates; missing or invalid ranges are replaced by a default
// future window, never rejected.
type PlanRequest struct {
	Destination string   `json:"destination"`
	StartDate   string   `json:"start_date,omitempty"`
	EndDate     string   `json:"end_date,omitempty"`
	Interests   []string `json:"interests,omitempty"`
	Pace        string   `json:"pace,omitempty"`
	Mode        string   `json:"mode,omitempty"`
	OriginLat   *float64 `json:"origin_lat,omitempty"`
	OriginLng   *float64 `json:"origin_lng,omitempty"`
	LimitPerDay int      `json:"limit_per_day,omitempty"`
	RadiusKm    float64  `json:"radius_km,omitempty"`
}

// HasOrigin reports whether an explicit geographic origin was supplied.
func (r PlanRequest) HasOrigin() bool {
	return r.OriginLat != nil && r.OriginLng != nil
}

// Day holds the POIs scheduled for one calendar date.
type Day struct {
	Date  string `json:"date"`
	Items []POI  `json:"items"`
}

// Links carries the auxiliary booking deep links.
type Links struct {
	Flights string `json:"flights"`
	Hotels  string `json:"hotels"`
}

// Itinerary is the output contract of one planning call. Days may be empty
// when the destination center could not be resolved; Notes explains why.
type Itinerary struct {
	ID          uuid.UUID  `json:"id"`
	Destination string     `json:"destination"`
	StartDate   string     `json:"start_date"`
	EndDate     string     `json:"end_date"`
	Mode        TravelMode `json:"mode"`
	Days        []Day      `json:"itinerary"`
	Links       Links      `json:"links"`
	Notes       string     `json:"notes"`
}

// Coordinates is a bare latitude/longitude pair.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}
