package osm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/wanderplan/go-trip-planner/internal/types"
)

// NominatimClient queries the Nominatim text-geocoding API.
type NominatimClient struct {
	baseURL    string
	httpClient *http.Client
	opts       ClientOptions
	logger     *slog.Logger
}

func NewNominatimClient(baseURL string, timeout time.Duration, opts ClientOptions, logger *slog.Logger) *NominatimClient {
	return &NominatimClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		opts:       opts,
		logger:     logger,
	}
}

// nominatimPlace mirrors the wire format; coordinates arrive as strings.
type nominatimPlace struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}

// SearchOptions narrows a Nominatim text search.
type SearchOptions struct {
	Limit          int
	Bias           *types.Coordinates // adds lat/lon bias parameters
	Viewbox        string             // degree box "minLng,minLat,maxLng,maxLat"
	Bounded        bool               // restrict results to the viewbox
	AddressDetails bool
}

func (c *NominatimClient) search(ctx context.Context, query string, opts SearchOptions) ([]nominatimPlace, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", strconv.Itoa(opts.Limit))
	if opts.Bias != nil {
		params.Set("lat", strconv.FormatFloat(opts.Bias.Lat, 'f', -1, 64))
		params.Set("lon", strconv.FormatFloat(opts.Bias.Lng, 'f', -1, 64))
	}
	if opts.Viewbox != "" {
		params.Set("viewbox", opts.Viewbox)
		if opts.Bounded {
			params.Set("bounded", "1")
		}
	}
	if opts.AddressDetails {
		params.Set("addressdetails", "1")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("nominatim: building request: %w", err)
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Accept-Language", c.opts.AcceptLanguage)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("nominatim: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nominatim: unexpected status %s", resp.Status)
	}

	var places []nominatimPlace
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return nil, fmt.Errorf("nominatim: decoding response: %w", err)
	}
	return places, nil
}

// Geocode resolves a destination string to its first candidate's
// coordinates. A missing result is (nil, nil), not an error.
func (c *NominatimClient) Geocode(ctx context.Context, destination string) (*types.Coordinates, error) {
	places, err := c.search(ctx, destination, SearchOptions{Limit: 1, AddressDetails: true})
	if err != nil {
		return nil, err
	}
	if len(places) == 0 {
		c.logger.DebugContext(ctx, "nominatim returned no geocode candidates", slog.String("destination", destination))
		return nil, nil
	}
	lat, lng, err := parseLatLng(places[0])
	if err != nil {
		return nil, err
	}
	return &types.Coordinates{Lat: lat, Lng: lng}, nil
}

// SearchText runs a plain text search and converts the hits to candidates.
func (c *NominatimClient) SearchText(ctx context.Context, query string, opts SearchOptions) ([]Candidate, error) {
	places, err := c.search(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	out := make([]Candidate, 0, len(places))
	for _, p := range places {
		lat, lng, err := parseLatLng(p)
		if err != nil {
			continue
		}
		name := p.DisplayName
		if name == "" {
			name = "Unnamed place"
		}
		out = append(out, Candidate{
			Name:   name,
			Lat:    lat,
			Lng:    lng,
			MapURL: MapURL(lat, lng),
		})
	}
	return out, nil
}

func parseLatLng(p nominatimPlace) (float64, float64, error) {
	lat, err := strconv.ParseFloat(p.Lat, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("nominatim: bad latitude %q: %w", p.Lat, err)
	}
	lng, err := strconv.ParseFloat(p.Lon, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("nominatim: bad longitude %q: %w", p.Lon, err)
	}
	return lat, lng, nil
}
