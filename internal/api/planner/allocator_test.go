package planner

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wanderplan/go-trip-planner/internal/types"
)

func poiNamed(name string, bucket types.Bucket, lat, lng float64) types.POI {
	return types.POI{Name: name, Bucket: bucket, Lat: lat, Lng: lng}
}

func tripDays(n int) []time.Time {
	start := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	days := make([]time.Time, n)
	for i := range days {
		days[i] = start.AddDate(0, 0, i)
	}
	return days
}

func TestDiversify(t *testing.T) {
	t.Run("alternates buckets in priority order", func(t *testing.T) {
		items := []types.POI{
			poiNamed("Cafe A", types.BucketCafes, 1, 1),
			poiNamed("Cafe B", types.BucketCafes, 2, 2),
			poiNamed("Museum A", types.BucketMuseums, 3, 3),
			poiNamed("Fort A", types.BucketHistory, 4, 4),
		}
		out := diversify(items, 3)
		require.Len(t, out, 3)
		assert.Equal(t, "Fort A", out[0].Name)
		assert.Equal(t, "Museum A", out[1].Name)
		assert.Equal(t, "Cafe A", out[2].Name)
	})

	t.Run("same bucket repeats only after others exhaust", func(t *testing.T) {
		items := []types.POI{
			poiNamed("Cafe A", types.BucketCafes, 1, 1),
			poiNamed("Cafe B", types.BucketCafes, 2, 2),
			poiNamed("Cafe C", types.BucketCafes, 3, 3),
			poiNamed("Park A", types.BucketParks, 4, 4),
		}
		out := diversify(items, 4)
		require.Len(t, out, 4)
		assert.Equal(t, "Cafe A", out[0].Name)
		assert.Equal(t, "Park A", out[1].Name)
		assert.Equal(t, "Cafe B", out[2].Name)
		assert.Equal(t, "Cafe C", out[3].Name)
	})

	t.Run("handles fewer items than requested", func(t *testing.T) {
		items := []types.POI{poiNamed("Cafe A", types.BucketCafes, 1, 1)}
		out := diversify(items, 5)
		assert.Len(t, out, 1)
	})
}

func TestAllocateDays(t *testing.T) {
	t.Run("no POI appears on two days", func(t *testing.T) {
		pool := make([]types.POI, 0, 12)
		for i := 0; i < 12; i++ {
			bucket := types.BucketPriority[i%len(types.BucketPriority)]
			pool = append(pool, poiNamed(fmt.Sprintf("Place %d", i), bucket, float64(i), float64(i)))
		}
		plan := allocateDays(pool, tripDays(3), 3)

		seen := make(map[string]struct{})
		for _, day := range plan {
			for _, item := range day.Items {
				_, dup := seen[item.Name]
				assert.False(t, dup, "POI %q allocated twice", item.Name)
				seen[item.Name] = struct{}{}
			}
		}
	})

	t.Run("duplicate names collapse even at different coordinates rounding", func(t *testing.T) {
		pool := []types.POI{
			poiNamed("Jardin d'Essai", types.BucketParks, 36.7470001, 3.0760001),
			poiNamed("jardin d'essai", types.BucketParks, 36.7470002, 3.0760002),
		}
		plan := allocateDays(pool, tripDays(2), 1)
		require.Len(t, plan, 1)
		assert.Len(t, plan[0].Items, 1)
	})

	t.Run("days without selectable items are omitted", func(t *testing.T) {
		pool := []types.POI{
			poiNamed("Only Stop", types.BucketLandmarks, 1, 1),
		}
		plan := allocateDays(pool, tripDays(3), 2)
		require.Len(t, plan, 1)
		assert.Equal(t, "2025-05-01", plan[0].Date)
	})

	t.Run("per day minimum is one", func(t *testing.T) {
		pool := []types.POI{
			poiNamed("A", types.BucketCafes, 1, 1),
			poiNamed("B", types.BucketParks, 2, 2),
		}
		plan := allocateDays(pool, tripDays(2), 0)
		require.Len(t, plan, 2)
		assert.Len(t, plan[0].Items, 1)
		assert.Len(t, plan[1].Items, 1)
	})

	t.Run("empty pool yields empty non-nil plan", func(t *testing.T) {
		plan := allocateDays(nil, tripDays(3), 3)
		require.NotNil(t, plan)
		assert.Empty(t, plan)
	})

	t.Run("dates format as ISO", func(t *testing.T) {
		pool := []types.POI{poiNamed("A", types.BucketCafes, 1, 1)}
		plan := allocateDays(pool, tripDays(1), 1)
		require.Len(t, plan, 1)
		assert.Equal(t, "2025-05-01", plan[0].Date)
	})
}
