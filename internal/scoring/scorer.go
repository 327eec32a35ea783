package scoring

import (
	"math"

	"carpool/internal/domain"
	"carpool/internal/geo"
)

// Weights and caps of the composite score. The weights sum to domain.MaxScore.
const (
	PickupWeight     = 20.0
	DropoffWeight    = 20.0
	TimeWeight       = 30.0
	OverlapWeight    = 20.0
	PreferenceWeight = 10.0

	ProximityCapKm = 2.0
	TimeCapMinutes = 30.0
)

// Score computes the compatibility of ride b as a companion for ride a.
// It is pure and deterministic.
func Score(a, b *domain.RideRequest) domain.MatchScore {
	pickupKm := geo.DistanceKm(a.Pickup, b.Pickup)
	dropoffKm := geo.DistanceKm(a.Dropoff, b.Dropoff)
	minutes := MinutesBetween(a.DepartureTime, b.DepartureTime)
	overlap := geo.RouteOverlap(a.Trip(), b.Trip())
	compatible := PreferencesCompatible(a.Preference, b.Preference)

	total := linearDecay(pickupKm, ProximityCapKm, PickupWeight) +
		linearDecay(dropoffKm, ProximityCapKm, DropoffWeight) +
		linearDecay(minutes, TimeCapMinutes, TimeWeight) +
		overlap*OverlapWeight
	if compatible {
		total += PreferenceWeight
	}

	total = math.Min(domain.MaxScore, math.Max(0, roundTo2(total)))

	return domain.MatchScore{
		TotalScore: total,
		MaxScore:   domain.MaxScore,
		Percentage: int(math.Round(total / domain.MaxScore * 100)),
		Details: domain.ScoreBreakdown{
			PickupDistanceKm:  pickupKm,
			DropoffDistanceKm: dropoffKm,
			TimeDiffMinutes:   minutes,
			RouteOverlap:      overlap,
			PreferenceMatch:   compatible,
		},
	}
}

// linearDecay awards weight at zero, falling to nothing at limit and beyond.
func linearDecay(value, limit, weight float64) float64 {
	if value > limit {
		return 0
	}
	return math.Max(0, 1-value/limit) * weight
}

func roundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}
