package geo

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	orbgeo "github.com/paulmach/orb/geo"
)

// DistanceM returns the great-circle distance between two coordinates in
// meters.
func DistanceM(aLat, aLng, bLat, bLng float64) float64 {
	return orbgeo.DistanceHaversine(orb.Point{aLng, aLat}, orb.Point{bLng, bLat})
}

// DistanceKm returns the great-circle distance between two coordinates in
// kilometers.
func DistanceKm(aLat, aLng, bLat, bLng float64) float64 {
	return DistanceM(aLat, aLng, bLat, bLng) / 1000.0
}

// DegreeBox approximates a radius in meters as a decimal-degree bounding
// box around a point, formatted as "minLng,minLat,maxLng,maxLat". The box
// never shrinks below 0.005 degrees per side.
func DegreeBox(lat, lng float64, radiusM int) string {
	// ~1 deg ≈ 111 km
	d := math.Max(0.005, float64(radiusM)/111_000)
	bound := orb.Bound{
		Min: orb.Point{lng - d, lat - d},
		Max: orb.Point{lng + d, lat + d},
	}
	return fmt.Sprintf("%v,%v,%v,%v", bound.Min.Lon(), bound.Min.Lat(), bound.Max.Lon(), bound.Max.Lat())
}

// Round rounds v to the given number of decimal places.
func Round(v float64, places int) float64 {
	shift := math.Pow(10, float64(places))
	return math.Round(v*shift) / shift
}
