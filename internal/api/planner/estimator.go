package planner

import (
	"context"
	"log/slog"
	"math"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/wanderplan/go-trip-planner/internal/geo"
	"github.com/wanderplan/go-trip-planner/internal/types"
)

const (
	// minWalkMinutes keeps walking legs from showing as 0 min.
	minWalkMinutes = 3
	// walkMinPerKm is the ~5 km/h walking heuristic.
	walkMinPerKm = 12
	// suspiciousFootKmh flags routed walking results that imply running.
	suspiciousFootKmh = 8.0
	// fallbackPoolSize is the nearest-N substitute when the radius filter
	// empties the pool.
	fallbackPoolSize = 20
)

// heuristicSpeedMS is the constant speed per mode used when no routed
// duration is available.
var heuristicSpeedMS = map[types.TravelMode]float64{
	types.ModeFoot:    1.25,
	types.ModeBike:    4.0,
	types.ModeDriving: 13.9,
}

// maxRadiusKm is the per-mode ceiling applied when an explicit origin was
// given.
var maxRadiusKm = map[types.TravelMode]float64{
	types.ModeFoot:    6.0,
	types.ModeBike:    12.0,
	types.ModeDriving: 30.0,
}

// HeuristicSpeedMS exposes the per-mode fallback speed in meters/second.
func HeuristicSpeedMS(mode types.TravelMode) float64 {
	if v, ok := heuristicSpeedMS[mode]; ok {
		return v
	}
	return heuristicSpeedMS[types.ModeFoot]
}

// walkMinutes converts a distance to walking minutes at the heuristic
// pace, clamped to the minimum.
func walkMinutes(km float64) int {
	mins := int(math.Ceil(km * walkMinPerKm))
	if mins < minWalkMinutes {
		return minWalkMinutes
	}
	return mins
}

// suspiciousFoot reports whether a routed walking leg implies an average
// speed above the plausible walking threshold.
func suspiciousFoot(distanceKm float64, durationMin int) bool {
	if distanceKm <= 0 || durationMin <= 0 {
		return false
	}
	return 60.0*distanceKm/float64(durationMin) > suspiciousFootKmh
}

// enrich annotates every POI with distance/duration. With an explicit
// origin the routing service is fanned out with bounded concurrency and
// failures degrade to the great-circle heuristic; without one the
// estimate derives purely from distance-to-anchor.
func (s *ServiceImpl) enrich(ctx context.Context, pois []types.POI, origin *types.Coordinates, mode types.TravelMode) []types.POI {
	out := make([]types.POI, len(pois))
	for i, p := range pois {
		entry := p
		entry.Name = p.DisplayName()
		entry.Bucket = BucketForTags(p.Tags)
		out[i] = entry
	}

	if origin == nil {
		for i := range out {
			km := geo.Round(out[i].AnchorKm, 2)
			var mins int
			switch mode {
			case types.ModeBike:
				mins = int(math.Round(out[i].AnchorKm * 4))
			case types.ModeDriving:
				mins = int(math.Round(out[i].AnchorKm * 2.5))
			default:
				mins = walkMinutes(out[i].AnchorKm)
			}
			out[i].DistanceKm = &km
			out[i].DurationMin = &mins
		}
		return out
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.MaxConcurrentRoutes)
	for i := range out {
		g.Go(func() error {
			km, mins := s.routedEstimate(gctx, *origin, out[i], mode)
			out[i].DistanceKm = &km
			out[i].DurationMin = &mins
			return nil
		})
	}
	// Estimates resolve individual failures via heuristics, so Wait only
	// reflects context cancellation.
	if err := g.Wait(); err != nil {
		s.logger.DebugContext(ctx, "routing fan-out interrupted", slog.Any("error", err))
	}
	return out
}

// routedEstimate computes one leg from the origin, falling back to the
// per-mode constant-speed heuristic on any routing failure.
func (s *ServiceImpl) routedEstimate(ctx context.Context, origin types.Coordinates, poi types.POI, mode types.TravelMode) (float64, int) {
	var km float64
	var mins int

	route, err := s.router.Route(ctx, mode, origin.Lat, origin.Lng, poi.Lat, poi.Lng)
	if err != nil || route == nil {
		if err != nil {
			s.logger.DebugContext(ctx, "routing failed, using heuristic",
				slog.String("poi", poi.Name), slog.Any("error", err))
		}
		s.metrics.RoutingFallbacksTotal.Add(ctx, 1)
		meters := geo.DistanceM(origin.Lat, origin.Lng, poi.Lat, poi.Lng)
		km = geo.Round(meters/1000, 2)
		mins = int(math.Round(meters / HeuristicSpeedMS(mode) / 60))
	} else {
		km = geo.Round(route.DistanceM/1000, 2)
		mins = int(math.Round(route.DurationS / 60))
		if mode == types.ModeFoot && suspiciousFoot(km, mins) {
			mins = walkMinutes(km)
		}
	}

	if mode == types.ModeFoot && mins < minWalkMinutes {
		mins = minWalkMinutes
	}
	return km, mins
}

// filterByRadius drops POIs beyond the mode's maximum distance. When that
// leaves nothing, the straight-line nearest fallbackPoolSize POIs are
// substituted with distances only.
func filterByRadius(enriched, pool []types.POI, origin types.Coordinates, mode types.TravelMode) []types.POI {
	maxKm := maxRadiusKm[mode]
	kept := enriched[:0:0]
	for _, e := range enriched {
		d := 0.0
		if e.DistanceKm != nil {
			d = *e.DistanceKm
		}
		if d <= maxKm {
			kept = append(kept, e)
		}
	}
	if len(kept) > 0 {
		return kept
	}

	// Last resort: nearest by straight line, no durations.
	fallback := make([]types.POI, 0, len(pool))
	for _, p := range pool {
		km := geo.Round(geo.DistanceKm(origin.Lat, origin.Lng, p.Lat, p.Lng), 2)
		entry := p
		entry.Name = p.DisplayName()
		entry.Bucket = BucketForTags(p.Tags)
		entry.DistanceKm = &km
		entry.DurationMin = nil
		fallback = append(fallback, entry)
	}
	sort.SliceStable(fallback, func(i, j int) bool {
		return *fallback[i].DistanceKm < *fallback[j].DistanceKm
	})
	if len(fallback) > fallbackPoolSize {
		fallback = fallback[:fallbackPoolSize]
	}
	return fallback
}
