package planner

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/wanderplan/go-trip-planner/app/observability/metrics"
	"github.com/wanderplan/go-trip-planner/internal/geo"
	"github.com/wanderplan/go-trip-planner/internal/osm"
	"github.com/wanderplan/go-trip-planner/internal/types"
)

const (
	// maxSearchRadiusKm caps the spatial query regardless of the
	// caller-requested radius.
	maxSearchRadiusKm = 12.0
	// minPrimaryResults triggers the text-search backfill below this
	// candidate count.
	minPrimaryResults = 12
	// backfillLimit caps each canned backfill query.
	backfillLimit = 30
)

// backfillQueries are the canned text sweeps run when the spatial search
// comes back thin.
var backfillQueries = []string{"museum", "restaurant", "cafe", "park"}

// Geocoder resolves destination strings and runs plain text searches.
type Geocoder interface {
	Geocode(ctx context.Context, destination string) (*types.Coordinates, error)
	SearchText(ctx context.Context, query string, opts osm.SearchOptions) ([]osm.Candidate, error)
}

// SpatialSearcher runs tag-based spatial queries around a point.
type SpatialSearcher interface {
	Search(ctx context.Context, tags []osm.TagFilter, lat, lng, radiusKm float64) ([]osm.Candidate, error)
}

// Router computes one travel leg between two coordinates.
type Router interface {
	Route(ctx context.Context, mode types.TravelMode, oLat, oLng, dLat, dLng float64) (*osm.Route, error)
}

var _ Service = (*ServiceImpl)(nil)

// Service defines the business logic contract of the itinerary engine.
type Service interface {
	Plan(ctx context.Context, req types.PlanRequest) (*types.Itinerary, error)
}

// Config tunes the planning defaults.
type Config struct {
	DefaultRadiusKm     float64
	DefaultLimitPerDay  int
	MaxConcurrentRoutes int
	CenterCacheTTL      time.Duration
}

type ServiceImpl struct {
	logger   *slog.Logger
	geocoder Geocoder
	spatial  SpatialSearcher
	router   Router
	cfg      Config
	metrics  *metrics.AppMetrics
	centers  *cache.Cache
	now      func() time.Time
}

func NewServiceImpl(geocoder Geocoder, spatial SpatialSearcher, router Router, cfg Config, logger *slog.Logger) *ServiceImpl {
	if cfg.DefaultRadiusKm <= 0 {
		cfg.DefaultRadiusKm = maxSearchRadiusKm
	}
	if cfg.DefaultLimitPerDay <= 0 {
		cfg.DefaultLimitPerDay = 5
	}
	if cfg.MaxConcurrentRoutes <= 0 {
		cfg.MaxConcurrentRoutes = 8
	}
	if cfg.CenterCacheTTL <= 0 {
		cfg.CenterCacheTTL = 15 * time.Minute
	}
	metrics.InitAppMetrics()
	return &ServiceImpl{
		logger:   logger,
		geocoder: geocoder,
		spatial:  spatial,
		router:   router,
		cfg:      cfg,
		metrics:  metrics.Get(),
		centers:  cache.New(cfg.CenterCacheTTL, 2*cfg.CenterCacheTTL),
		now:      time.Now,
	}
}

// Plan builds the day-by-day itinerary around the destination. With an
// explicit origin the search and radius filter anchor there, otherwise at
// the geocoded city center. Discovery failures propagate; routing
// failures always resolve through heuristics.
func (s *ServiceImpl) Plan(ctx context.Context, req types.PlanRequest) (*types.Itinerary, error) {
	ctx, span := otel.Tracer("PlannerService").Start(ctx, "Plan", trace.WithAttributes(
		attribute.String("destination", req.Destination),
		attribute.String("mode", req.Mode),
	))
	defer span.End()

	mode := types.NormalizeMode(req.Mode)
	d0, d1 := resolveDates(req.StartDate, req.EndDate, s.now())
	days := dateRange(d0, d1)

	terms := ExpandTerms(req.Interests)
	s.logger.DebugContext(ctx, "expanded interest terms",
		slog.String("destination", req.Destination), slog.Any("terms", terms))

	// Anchor: prefer the explicit origin.
	var anchor *types.Coordinates
	if req.HasOrigin() {
		anchor = &types.Coordinates{Lat: *req.OriginLat, Lng: *req.OriginLng}
	} else {
		center, err := s.resolveCenter(ctx, req.Destination)
		if err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("resolving destination center: %w", err)
		}
		anchor = center
	}
	if anchor == nil {
		s.logger.InfoContext(ctx, "destination center not found, returning empty shell",
			slog.String("destination", req.Destination))
		span.SetStatus(codes.Ok, "Empty shell: center unresolved")
		return s.emptyShell(req, mode, d0, d1), nil
	}

	raw, err := s.discover(ctx, req, anchor)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	s.metrics.DiscoveryResults.Record(ctx, int64(len(raw)))

	pool := dedupeByName(raw, *anchor)

	var origin *types.Coordinates
	if req.HasOrigin() {
		origin = anchor
	}
	enriched := s.enrich(ctx, pool, origin, mode)
	if origin != nil {
		enriched = filterByRadius(enriched, pool, *origin, mode)
	}

	perDay := req.LimitPerDay
	if perDay <= 0 {
		perDay = s.cfg.DefaultLimitPerDay
	}
	plan := allocateDays(enriched, days, perDay)

	span.SetAttributes(attribute.Int("pois.candidates", len(raw)), attribute.Int("days.planned", len(plan)))
	span.SetStatus(codes.Ok, "Itinerary built")

	return &types.Itinerary{
		ID:          uuid.New(),
		Destination: req.Destination,
		StartDate:   d0.Format("2006-01-02"),
		EndDate:     d1.Format("2006-01-02"),
		Mode:        mode,
		Days:        plan,
		Links:       buildLinks(req.Destination, d0, d1),
		Notes:       "POIs from tag-based spatial search with text-search backfill; diversified days; realistic walking times; global de-dup across days.",
	}, nil
}

// resolveCenter geocodes the destination, caching hits for repeat
// requests. (nil, nil) means the destination could not be located.
func (s *ServiceImpl) resolveCenter(ctx context.Context, destination string) (*types.Coordinates, error) {
	if v, ok := s.centers.Get(destination); ok {
		center := v.(types.Coordinates)
		return &center, nil
	}
	center, err := s.geocoder.Geocode(ctx, destination)
	if err != nil {
		return nil, err
	}
	if center == nil {
		return nil, nil
	}
	s.centers.Set(destination, *center, cache.DefaultExpiration)
	return center, nil
}

// discover builds the raw candidate pool: one spatial tag query, then
// text-search sweeps when the primary result set is too thin.
func (s *ServiceImpl) discover(ctx context.Context, req types.PlanRequest, anchor *types.Coordinates) ([]osm.Candidate, error) {
	buckets := BucketsFor(req.Interests)
	tagList := TagFiltersFor(buckets)

	radius := req.RadiusKm
	if radius <= 0 {
		radius = s.cfg.DefaultRadiusKm
	}
	raw, err := s.spatial.Search(ctx, tagList, anchor.Lat, anchor.Lng, math.Min(radius, maxSearchRadiusKm))
	if err != nil {
		return nil, fmt.Errorf("searching points of interest: %w", err)
	}

	if len(raw) < minPrimaryResults {
		s.logger.DebugContext(ctx, "primary search thin, backfilling",
			slog.Int("primary", len(raw)), slog.String("destination", req.Destination))
		for _, q := range backfillQueries {
			extra, err := s.geocoder.SearchText(ctx, q+" in "+req.Destination, osm.SearchOptions{
				Limit: backfillLimit,
				Bias:  anchor,
			})
			if err != nil {
				return nil, fmt.Errorf("backfill search %q: %w", q, err)
			}
			raw = append(raw, extra...)
		}
	}
	return raw, nil
}

// dedupeByName collapses candidates sharing a normalized name, keeping the
// one nearest the anchor, and returns the survivors sorted ascending by
// distance-to-anchor. That ordering drives every later stage.
func dedupeByName(raw []osm.Candidate, anchor types.Coordinates) []types.POI {
	best := make(map[string]types.POI, len(raw))
	order := make([]string, 0, len(raw))
	for _, c := range raw {
		p := types.POI{Name: c.Name, Lat: c.Lat, Lng: c.Lng, MapURL: c.MapURL, Tags: c.Tags}
		key := p.NormalizedName()
		if key == "" {
			continue
		}
		p.AnchorKm = geo.DistanceKm(anchor.Lat, anchor.Lng, c.Lat, c.Lng)
		cur, ok := best[key]
		if !ok {
			order = append(order, key)
			best[key] = p
		} else if p.AnchorKm < cur.AnchorKm {
			best[key] = p
		}
	}

	out := make([]types.POI, 0, len(best))
	for _, key := range order {
		out = append(out, best[key])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return geo.Round(out[i].AnchorKm, 3) < geo.Round(out[j].AnchorKm, 3)
	})
	return out
}

// emptyShell is the partial-failure contract for an unresolvable center:
// structurally valid, no days, booking links still populated.
func (s *ServiceImpl) emptyShell(req types.PlanRequest, mode types.TravelMode, d0, d1 time.Time) *types.Itinerary {
	return &types.Itinerary{
		ID:          uuid.New(),
		Destination: req.Destination,
		StartDate:   d0.Format("2006-01-02"),
		EndDate:     d1.Format("2006-01-02"),
		Mode:        mode,
		Days:        []types.Day{},
		Links:       buildLinks(req.Destination, d0, d1),
		Notes:       "Could not locate the city center for your destination.",
	}
}
