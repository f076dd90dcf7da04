package planner

import (
	"strings"

	"github.com/wanderplan/go-trip-planner/internal/osm"
	"github.com/wanderplan/go-trip-planner/internal/types"
)

// interestExpansions maps a free-text interest token to its canonical
// search terms.
var interestExpansions = map[string][]string{
	"food":      {"restaurants", "cafe", "cafes", "coffee", "bakery", "street food", "kebab", "lokanta", "meze"},
	"cafes":     {"cafe", "cafes", "coffee", "coffee shop"},
	"history":   {"historical sites", "museums", "mosque", "palace", "basilica", "archaeology"},
	"museums":   {"museums", "art museum"},
	"landmarks": {"landmarks", "monuments", "viewpoints"},
	"parks":     {"parks", "gardens", "promenade"},
}

// defaultInterests is substituted when expansion yields nothing.
var defaultInterests = []string{"landmarks", "museums", "cafes", "parks"}

// bucketTags maps each coarse bucket to its tag clauses for the spatial
// query. A value of osm.AnyValue means "key present, any value".
var bucketTags = map[types.Bucket][]osm.TagFilter{
	types.BucketFood: {
		{Key: "amenity", Value: "restaurant"},
		{Key: "amenity", Value: "cafe"},
		{Key: "amenity", Value: "fast_food"},
		{Key: "amenity", Value: "food_court"},
		{Key: "shop", Value: "bakery"},
	},
	types.BucketCafes: {
		{Key: "amenity", Value: "cafe"},
		{Key: "amenity", Value: "coffee_shop"},
	},
	types.BucketMuseums: {
		{Key: "tourism", Value: "museum"},
	},
	types.BucketHistory: {
		{Key: "tourism", Value: "museum"},
		{Key: "historic", Value: osm.AnyValue},
		{Key: "amenity", Value: "place_of_worship"},
	},
	types.BucketLandmarks: {
		{Key: "tourism", Value: "attraction"},
		{Key: "tourism", Value: "viewpoint"},
		{Key: "historic", Value: osm.AnyValue},
		{Key: "man_made", Value: "tower"},
	},
	types.BucketParks: {
		{Key: "leisure", Value: "park"},
		{Key: "leisure", Value: "garden"},
	},
}

// bucketOfTerm maps loose interest tokens to their bucket.
var bucketOfTerm = map[string]types.Bucket{
	"restaurant": types.BucketFood, "restaurants": types.BucketFood, "bakery": types.BucketFood,
	"kebab": types.BucketFood, "meze": types.BucketFood, "street food": types.BucketFood, "lokanta": types.BucketFood,
	"cafe": types.BucketCafes, "cafes": types.BucketCafes, "coffee": types.BucketCafes, "coffee shop": types.BucketCafes,
	"museum": types.BucketMuseums, "museums": types.BucketMuseums, "art museum": types.BucketMuseums,
	"historic": types.BucketHistory, "historical sites": types.BucketHistory, "mosque": types.BucketHistory,
	"palace": types.BucketHistory, "basilica": types.BucketHistory, "archaeology": types.BucketHistory,
	"landmarks": types.BucketLandmarks, "monuments": types.BucketLandmarks, "viewpoints": types.BucketLandmarks,
	"viewpoint": types.BucketLandmarks, "tower": types.BucketLandmarks,
	"parks": types.BucketParks, "park": types.BucketParks, "gardens": types.BucketParks, "promenade": types.BucketParks,
}

// searchBucketOrder fixes the bucket iteration order so tag queries are
// deterministic. It also doubles as the default bucket set when no
// interest resolves.
var searchBucketOrder = []types.Bucket{
	types.BucketLandmarks,
	types.BucketMuseums,
	types.BucketCafes,
	types.BucketFood,
	types.BucketParks,
	types.BucketHistory,
}

// ExpandTerms maps free-text interests to a deduplicated canonical term
// list, preserving first-seen order. Unknown tokens pass through. An empty
// result falls back to the default interest set.
func ExpandTerms(interests []string) []string {
	var out []string
	for _, term := range interests {
		t := strings.ToLower(strings.TrimSpace(term))
		if expanded, ok := interestExpansions[t]; ok {
			out = append(out, expanded...)
		} else if t != "" {
			out = append(out, t)
		}
	}
	seen := make(map[string]struct{}, len(out))
	uniq := out[:0]
	for _, t := range out {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		uniq = append(uniq, t)
	}
	if len(uniq) == 0 {
		return defaultInterests
	}
	return uniq
}

// BucketsFor resolves raw interest tokens to search buckets. Tokens naming
// a bucket select it directly, other known tokens map through
// bucketOfTerm, unknown tokens are dropped. No resolved bucket means all
// five default search buckets.
func BucketsFor(interests []string) []types.Bucket {
	selected := make(map[types.Bucket]struct{})
	if len(interests) == 0 {
		interests = defaultInterests
	}
	for _, raw := range interests {
		t := strings.ToLower(strings.TrimSpace(raw))
		if _, ok := bucketTags[types.Bucket(t)]; ok {
			selected[types.Bucket(t)] = struct{}{}
			continue
		}
		if b, ok := bucketOfTerm[t]; ok {
			selected[b] = struct{}{}
		}
	}
	if len(selected) == 0 {
		return []types.Bucket{types.BucketLandmarks, types.BucketMuseums, types.BucketCafes, types.BucketFood, types.BucketParks}
	}
	out := make([]types.Bucket, 0, len(selected))
	for _, b := range searchBucketOrder {
		if _, ok := selected[b]; ok {
			out = append(out, b)
		}
	}
	return out
}

// TagFiltersFor flattens the tag clauses of the selected buckets.
func TagFiltersFor(buckets []types.Bucket) []osm.TagFilter {
	var out []osm.TagFilter
	for _, b := range buckets {
		out = append(out, bucketTags[b]...)
	}
	return out
}

// BucketForTags classifies a raw tag dictionary into a bucket. The mapping
// is total: anything unrecognized lands in landmarks.
func BucketForTags(tags map[string]string) types.Bucket {
	switch tags["amenity"] {
	case "restaurant", "fast_food", "food_court":
		return types.BucketFood
	case "cafe":
		return types.BucketCafes
	}
	if tags["shop"] == "bakery" {
		return types.BucketFood
	}
	if tags["tourism"] == "museum" {
		return types.BucketMuseums
	}
	if tags["historic"] != "" {
		return types.BucketHistory
	}
	switch tags["tourism"] {
	case "attraction", "viewpoint":
		return types.BucketLandmarks
	}
	if tags["man_made"] == "tower" {
		return types.BucketLandmarks
	}
	switch tags["leisure"] {
	case "park", "garden":
		return types.BucketParks
	}
	return types.BucketLandmarks
}
