package geo

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseBox(t *testing.T, box string) [4]float64 {
	t.Helper()
	parts := strings.Split(box, ",")
	require.Len(t, parts, 4)
	var out [4]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(p, 64)
		require.NoError(t, err)
		out[i] = v
	}
	return out
}

func TestDistanceKm(t *testing.T) {
	t.Run("zero distance", func(t *testing.T) {
		assert.Zero(t, DistanceKm(36.7529, 3.0420, 36.7529, 3.0420))
	})

	t.Run("algiers to oran", func(t *testing.T) {
		// Algiers (36.7529, 3.0420) to Oran (35.6971, -0.6308) is ~355 km.
		d := DistanceKm(36.7529, 3.0420, 35.6971, -0.6308)
		assert.InDelta(t, 355, d, 10)
	})

	t.Run("symmetry", func(t *testing.T) {
		a := DistanceKm(41.0082, 28.9784, 36.7529, 3.0420)
		b := DistanceKm(36.7529, 3.0420, 41.0082, 28.9784)
		assert.InDelta(t, a, b, 1e-9)
	})
}

func TestDegreeBox(t *testing.T) {
	t.Run("two km box around algiers", func(t *testing.T) {
		// 2000 m / 111000 ≈ 0.018 deg per side
		box := parseBox(t, DegreeBox(36.7529, 3.0420, 2000))
		assert.InDelta(t, 3.0420-0.018018, box[0], 1e-6)
		assert.InDelta(t, 36.7529-0.018018, box[1], 1e-6)
		assert.InDelta(t, 3.0420+0.018018, box[2], 1e-6)
		assert.InDelta(t, 36.7529+0.018018, box[3], 1e-6)
	})

	t.Run("minimum box size", func(t *testing.T) {
		// A tiny radius still yields the 0.005 degree floor.
		box := parseBox(t, DegreeBox(10, 10, 100))
		assert.InDelta(t, 9.995, box[0], 1e-9)
		assert.InDelta(t, 9.995, box[1], 1e-9)
		assert.InDelta(t, 10.005, box[2], 1e-9)
		assert.InDelta(t, 10.005, box[3], 1e-9)
	})
}

func TestRound(t *testing.T) {
	assert.Equal(t, 1.23, Round(1.2345, 2))
	assert.Equal(t, 1.235, Round(1.2345, 3))
	assert.Equal(t, 2.0, Round(1.5, 0))
}
