package osm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/wanderplan/go-trip-planner/internal/types"
)

// Route is one routed leg: total distance in meters, total duration in
// seconds.
type Route struct {
	DistanceM float64
	DurationS float64
}

// OSRMClient queries the OSRM routing API.
type OSRMClient struct {
	baseURL    string
	httpClient *http.Client
	opts       ClientOptions
	logger     *slog.Logger
}

func NewOSRMClient(baseURL string, timeout time.Duration, opts ClientOptions, logger *slog.Logger) *OSRMClient {
	return &OSRMClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		opts:       opts,
		logger:     logger,
	}
}

// ProfileFor maps a travel mode to the OSRM routing profile.
func ProfileFor(mode types.TravelMode) string {
	switch mode {
	case types.ModeBike:
		return "cycling"
	case types.ModeDriving:
		return "driving"
	default:
		return "walking"
	}
}

type osrmResponse struct {
	Routes []struct {
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
	} `json:"routes"`
}

// Route computes the travel leg between origin and destination for the
// given mode. An empty route list is a defined outcome and yields
// (nil, nil); callers fall back to their heuristics.
func (c *OSRMClient) Route(ctx context.Context, mode types.TravelMode, oLat, oLng, dLat, dLng float64) (*Route, error) {
	u := fmt.Sprintf("%s/route/v1/%s/%v,%v;%v,%v?overview=false",
		c.baseURL, ProfileFor(mode), oLng, oLat, dLng, dLat)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("osrm: building request: %w", err)
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Accept-Language", c.opts.AcceptLanguage)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("osrm: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("osrm: unexpected status %s", resp.Status)
	}

	var decoded osrmResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("osrm: decoding response: %w", err)
	}
	if len(decoded.Routes) == 0 {
		c.logger.DebugContext(ctx, "osrm returned no routes")
		return nil, nil
	}
	return &Route{
		DistanceM: decoded.Routes[0].Distance,
		DurationS: decoded.Routes[0].Duration,
	}, nil
}
