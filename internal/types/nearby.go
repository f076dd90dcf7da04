package types

// NearbyRequest is the input of the "nearby places + single travel leg"
// composite search.
type NearbyRequest struct {
	Query     string  `json:"query"`
	OriginLat float64 `json:"origin_lat"`
	OriginLng float64 `json:"origin_lng"`
	Limit     int     `json:"limit,omitempty"`
	Mode      string  `json:"mode,omitempty"`
}

// NearbyPlace is one nearby search hit annotated with a travel leg from
// the origin.
type NearbyPlace struct {
	Name      string  `json:"name"`
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
	MapURL    string  `json:"map_url"`
	DistanceM int     `json:"distance_m"`
	DurationS int     `json:"duration_s"`
	Source    string  `json:"source"`
}

// WikiSummary is a short encyclopedia blurb for a POI. Extract and URL are
// nil when no page was found; lookups never fail hard.
type WikiSummary struct {
	Title   string  `json:"title"`
	Extract *string `json:"extract"`
	URL     *string `json:"url"`
}
