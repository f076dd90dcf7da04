package nearby

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/wanderplan/go-trip-planner/internal/api/planner"
	"github.com/wanderplan/go-trip-planner/internal/geo"
	"github.com/wanderplan/go-trip-planner/internal/osm"
	"github.com/wanderplan/go-trip-planner/internal/types"
)

const (
	// defaultLimit is the hit count when the caller does not specify one.
	defaultLimit = 3
	// searchRadiusM bounds the viewbox around the origin.
	searchRadiusM = 2000
)

// Searcher runs bounded text searches around a point.
type Searcher interface {
	SearchText(ctx context.Context, query string, opts osm.SearchOptions) ([]osm.Candidate, error)
}

// Router computes one travel leg between two coordinates.
type Router interface {
	Route(ctx context.Context, mode types.TravelMode, oLat, oLng, dLat, dLng float64) (*osm.Route, error)
}

var _ Service = (*ServiceImpl)(nil)

// Service is the composite "places near me plus travel leg" search.
type Service interface {
	Nearby(ctx context.Context, req types.NearbyRequest) ([]types.NearbyPlace, error)
}

type ServiceImpl struct {
	logger   *slog.Logger
	searcher Searcher
	router   Router
}

func NewServiceImpl(searcher Searcher, router Router, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:   logger,
		searcher: searcher,
		router:   router,
	}
}

// Nearby searches for the query inside a ~2 km box around the origin and
// annotates every hit with a travel leg. Routing failures degrade each leg
// to the straight-line estimate rather than failing the search.
func (s *ServiceImpl) Nearby(ctx context.Context, req types.NearbyRequest) ([]types.NearbyPlace, error) {
	ctx, span := otel.Tracer("NearbyService").Start(ctx, "Nearby", trace.WithAttributes(
		attribute.String("query", req.Query),
		attribute.String("mode", req.Mode),
	))
	defer span.End()

	mode := types.NormalizeMode(req.Mode)
	limit := req.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	origin := types.Coordinates{Lat: req.OriginLat, Lng: req.OriginLng}

	opts := osm.SearchOptions{
		Limit:   limit,
		Bias:    &origin,
		Viewbox: geo.DegreeBox(origin.Lat, origin.Lng, searchRadiusM),
		Bounded: true,
	}
	hits, err := s.searcher.SearchText(ctx, req.Query, opts)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("nearby search: %w", err)
	}

	if len(hits) == 0 {
		if alt := fallbackQuery(req.Query); alt != req.Query {
			s.logger.DebugContext(ctx, "nearby search empty, retrying with fallback",
				slog.String("query", req.Query), slog.String("fallback", alt))
			hits, err = s.searcher.SearchText(ctx, alt, opts)
			if err != nil {
				span.RecordError(err)
				return nil, fmt.Errorf("nearby fallback search: %w", err)
			}
		}
	}

	places := make([]types.NearbyPlace, 0, len(hits))
	for _, hit := range hits {
		leg := s.leg(ctx, origin, hit, mode)
		places = append(places, types.NearbyPlace{
			Name:      hit.Name,
			Lat:       hit.Lat,
			Lng:       hit.Lng,
			MapURL:    hit.MapURL,
			DistanceM: leg.DistanceM,
			DurationS: leg.DurationS,
			Source:    leg.Source,
		})
	}
	span.SetAttributes(attribute.Int("results", len(places)))
	return places, nil
}

// leg computes one origin-to-hit travel estimate, preferring the routing
// service.
func (s *ServiceImpl) leg(ctx context.Context, origin types.Coordinates, hit osm.Candidate, mode types.TravelMode) types.TravelEstimate {
	route, err := s.router.Route(ctx, mode, origin.Lat, origin.Lng, hit.Lat, hit.Lng)
	if err == nil && route != nil {
		return types.TravelEstimate{
			DistanceM: int(math.Round(route.DistanceM)),
			DurationS: int(math.Round(route.DurationS)),
			Source:    "routing:" + string(mode),
		}
	}
	if err != nil {
		s.logger.DebugContext(ctx, "leg routing failed, using straight line",
			slog.String("place", hit.Name), slog.Any("error", err))
	}
	meters := geo.DistanceM(origin.Lat, origin.Lng, hit.Lat, hit.Lng)
	return types.TravelEstimate{
		DistanceM: int(math.Round(meters)),
		DurationS: int(math.Round(meters / planner.HeuristicSpeedMS(mode))),
		Source:    "haversine:" + string(mode),
	}
}

// fallbackQuery broadens an empty search: cafe-like queries collapse to
// plain "cafe", anything else gets " cafe" appended.
func fallbackQuery(q string) string {
	lower := strings.ToLower(strings.TrimSpace(q))
	if strings.HasPrefix(lower, "caf") || strings.Contains(lower, "coffee") {
		return "cafe"
	}
	if lower == "" {
		return "cafe"
	}
	return q + " cafe"
}
