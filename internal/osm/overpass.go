package osm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// AnyValue in a TagFilter matches any element carrying the key.
const AnyValue = "*"

// TagFilter is one (key, value) clause of a tag-based spatial query.
type TagFilter struct {
	Key   string
	Value string
}

// OverpassClient runs tag-based spatial queries against the Overpass API.
type OverpassClient struct {
	baseURL    string
	httpClient *http.Client
	opts       ClientOptions
	logger     *slog.Logger
}

func NewOverpassClient(baseURL string, timeout time.Duration, opts ClientOptions, logger *slog.Logger) *OverpassClient {
	return &OverpassClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		opts:       opts,
		logger:     logger,
	}
}

// BuildQuery renders the Overpass QL for a set of tag clauses around a
// point. Each clause expands to node/way/rel selectors; areas are returned
// with a computed center and the combined result is capped at 120 elements.
func BuildQuery(tags []TagFilter, lat, lng float64, radiusM int) string {
	var body strings.Builder
	for _, t := range tags {
		for _, kind := range []string{"node", "way", "rel"} {
			if t.Value == AnyValue {
				fmt.Fprintf(&body, `%s[%q](around:%d,%v,%v);`, kind, t.Key, radiusM, lat, lng)
			} else {
				fmt.Fprintf(&body, `%s[%q=%q](around:%d,%v,%v);`, kind, t.Key, t.Value, radiusM, lat, lng)
			}
		}
	}
	return fmt.Sprintf(`[out:json][timeout:25];(%s);out center 120;`, body.String())
}

type overpassElement struct {
	Type   string   `json:"type"`
	Lat    *float64 `json:"lat"`
	Lon    *float64 `json:"lon"`
	Center *struct {
		Lat *float64 `json:"lat"`
		Lon *float64 `json:"lon"`
	} `json:"center"`
	Tags map[string]string `json:"tags"`
}

type overpassResponse struct {
	Elements []overpassElement `json:"elements"`
}

// Search runs one spatial query over the given radius and converts every
// element with usable coordinates into a Candidate carrying its raw tags.
func (c *OverpassClient) Search(ctx context.Context, tags []TagFilter, lat, lng, radiusKm float64) ([]Candidate, error) {
	q := BuildQuery(tags, lat, lng, int(radiusKm*1000))

	form := url.Values{}
	form.Set("data", q)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("overpass: building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Accept-Language", c.opts.AcceptLanguage)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("overpass: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("overpass: unexpected status %s", resp.Status)
	}

	var decoded overpassResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("overpass: decoding response: %w", err)
	}

	out := make([]Candidate, 0, len(decoded.Elements))
	for _, el := range decoded.Elements {
		elLat, elLng := el.Lat, el.Lon
		if el.Type != "node" {
			if el.Center == nil {
				continue
			}
			elLat, elLng = el.Center.Lat, el.Center.Lon
		}
		if elLat == nil || elLng == nil {
			continue
		}
		elTags := el.Tags
		if elTags == nil {
			elTags = map[string]string{}
		}
		name := elTags["name"]
		if name == "" {
			name = elTags["name:en"]
		}
		if name == "" {
			name = "Unnamed place"
		}
		out = append(out, Candidate{
			Name:   strings.TrimSpace(name),
			Lat:    *elLat,
			Lng:    *elLng,
			MapURL: MapURL(*elLat, *elLng),
			Tags:   elTags,
		})
	}
	c.logger.DebugContext(ctx, "overpass search completed", slog.Int("elements", len(out)))
	return out, nil
}
