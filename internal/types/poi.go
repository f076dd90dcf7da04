package types

import "strings"

// TravelMode selects the routing profile and the heuristic coefficients.
type TravelMode string

const (
	ModeFoot    TravelMode = "foot"
	ModeBike    TravelMode = "bike"
	ModeDriving TravelMode = "driving"
)

// NormalizeMode maps free-text mode strings onto a known TravelMode.
// Unknown values degrade to foot, matching the routing profile default.
func NormalizeMode(s string) TravelMode {
	switch TravelMode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeBike:
		return ModeBike
	case ModeDriving:
		return ModeDriving
	default:
		return ModeFoot
	}
}

// Bucket is the coarse POI category used to diversify daily selections.
type Bucket string

const (
	BucketFood      Bucket = "food"
	BucketCafes     Bucket = "cafes"
	BucketMuseums   Bucket = "museums"
	BucketHistory   Bucket = "history"
	BucketLandmarks Bucket = "landmarks"
	BucketParks     Bucket = "parks"
)

// BucketPriority is the fixed order the allocator walks when diversifying a
// day.
var BucketPriority = []Bucket{
	BucketHistory,
	BucketLandmarks,
	BucketMuseums,
	BucketFood,
	BucketCafes,
	BucketParks,
}

// POI is a named place with coordinates, enriched with travel estimates
// during planning. DistanceKm and DurationMin are nil until estimated;
// DurationMin stays nil for POIs admitted through the nearest-20 fallback.
type POI struct {
	Name        string   `json:"name"`
	Lat         float64  `json:"lat"`
	Lng         float64  `json:"lng"`
	MapURL      string   `json:"map_url"`
	DistanceKm  *float64 `json:"distance_km"`
	DurationMin *int     `json:"duration_min"`

	// Transient planning fields, never serialized.
	Bucket   Bucket            `json:"-"`
	Tags     map[string]string `json:"-"`
	AnchorKm float64           `json:"-"`
}

// NormalizedName is the identity key for deduplication: the lowercase text
// before the first comma of the name.
func (p POI) NormalizedName() string {
	s := strings.ToLower(strings.TrimSpace(p.Name))
	if i := strings.Index(s, ","); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

// DisplayName truncates the raw name at the first comma.
func (p POI) DisplayName() string {
	if i := strings.Index(p.Name, ","); i >= 0 {
		return p.Name[:i]
	}
	return p.Name
}

// TravelEstimate is one travel leg between two coordinates, either routed
// or derived from great-circle distance.
type TravelEstimate struct {
	DistanceM int    `json:"distance_m"`
	DurationS int    `json:"duration_s"`
	Source    string `json:"source"` // "routing:<mode>" or "haversine:<mode>"
}
