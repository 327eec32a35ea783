package geo

import "math"

// Trip is a straight pickup-to-dropoff leg.
type Trip struct {
	Pickup  Point
	Dropoff Point
}

// RouteOverlap estimates how much trip b lies along trip a's direct path, in [0, 1].
//
// The estimate compares a's direct distance with the cheaper of two insertions:
// a.Pickup -> b.Pickup -> a.Dropoff and b.Pickup -> a.Pickup -> b.Dropoff.
// overlap = 1 - (detour - direct) / direct, clamped to [0, 1].
// A trip whose pickup equals its dropoff has no direction to share and yields 0.
func RouteOverlap(a, b Trip) float64 {
	direct := DistanceKm(a.Pickup, a.Dropoff)
	if direct == 0 {
		return 0
	}

	detour := math.Min(
		DistanceKm(a.Pickup, b.Pickup)+DistanceKm(b.Pickup, a.Dropoff),
		DistanceKm(b.Pickup, a.Pickup)+DistanceKm(a.Pickup, b.Dropoff),
	)

	overlap := 1 - (detour-direct)/direct
	return math.Min(1, math.Max(0, overlap))
}
