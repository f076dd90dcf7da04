package planner

import (
	"strings"
	"time"

	"github.com/wanderplan/go-trip-planner/internal/geo"
	"github.com/wanderplan/go-trip-planner/internal/types"
)

// lookaheadFactor widens the per-day candidate window so diversification
// has enough buckets to draw from.
const lookaheadFactor = 4

// poiKey identifies a POI across days: the lowercased name plus
// coordinates rounded to 6 decimals as a secondary check against distinct
// places sharing a name.
type poiKey struct {
	name string
	lat  float64
	lng  float64
}

func keyOf(p types.POI) poiKey {
	return poiKey{
		name: strings.ToLower(p.Name),
		lat:  geo.Round(p.Lat, 6),
		lng:  geo.Round(p.Lng, 6),
	}
}

// diversify reorders a candidate window so buckets alternate in priority
// order before any bucket repeats. Items outside the known buckets are
// appended once the buckets run dry.
func diversify(items []types.POI, perDay int) []types.POI {
	buckets := make(map[types.Bucket][]types.POI, len(types.BucketPriority))
	known := make(map[types.Bucket]struct{}, len(types.BucketPriority))
	for _, b := range types.BucketPriority {
		known[b] = struct{}{}
	}
	var other []types.POI
	for _, it := range items {
		if _, ok := known[it.Bucket]; ok {
			buckets[it.Bucket] = append(buckets[it.Bucket], it)
		} else {
			other = append(other, it)
		}
	}

	anyBucketed := func() bool {
		for _, b := range types.BucketPriority {
			if len(buckets[b]) > 0 {
				return true
			}
		}
		return false
	}

	var out []types.POI
	for len(out) < perDay && (anyBucketed() || len(other) > 0) {
		for _, b := range types.BucketPriority {
			if len(out) >= perDay {
				break
			}
			if len(buckets[b]) > 0 {
				out = append(out, buckets[b][0])
				buckets[b] = buckets[b][1:]
			}
		}
		if len(out) < perDay && len(other) > 0 {
			out = append(out, other[0])
			other = other[1:]
		}
		if len(out) >= perDay {
			break
		}
		if !anyBucketed() {
			for len(other) > 0 && len(out) < perDay {
				out = append(out, other[0])
				other = other[1:]
			}
		}
	}
	return out
}

// allocateDays distributes the distance-sorted pool across the trip's
// days. A global used set guarantees no POI repeats across the itinerary;
// days with nothing selectable are omitted. Allocation stops when either
// the dates or the pool run out.
func allocateDays(pool []types.POI, days []time.Time, perDay int) []types.Day {
	if perDay < 1 {
		perDay = 1
	}
	used := make(map[poiKey]struct{})
	plan := []types.Day{}

	remaining := make([]types.POI, len(pool))
	copy(remaining, pool)

	for len(days) > 0 && len(remaining) > 0 {
		day := days[0]
		days = days[1:]

		window := remaining
		if len(window) > perDay*lookaheadFactor {
			window = window[:perDay*lookaheadFactor]
		}

		var items []types.POI
		picked := make(map[poiKey]struct{})
		for _, it := range diversify(window, perDay) {
			k := keyOf(it)
			if _, ok := used[k]; ok {
				continue
			}
			if _, ok := picked[k]; ok {
				continue
			}
			picked[k] = struct{}{}
			items = append(items, it)
			if len(items) >= perDay {
				break
			}
		}

		if len(items) > 0 {
			plan = append(plan, types.Day{Date: day.Format("2006-01-02"), Items: items})
		}

		for k := range picked {
			used[k] = struct{}{}
		}
		next := remaining[:0]
		for _, e := range remaining {
			if _, ok := used[keyOf(e)]; !ok {
				next = append(next, e)
			}
		}
		remaining = next
	}
	return plan
}
