package domain

// MaxScore is the highest composite score two rides can reach.
const MaxScore = 100

// ScoreBreakdown records the raw measurement behind each score factor.
type ScoreBreakdown struct {
	PickupDistanceKm  float64 `json:"pickupDistance"`
	DropoffDistanceKm float64 `json:"dropoffDistance"`
	TimeDiffMinutes   float64 `json:"timeDifference"`
	RouteOverlap      float64 `json:"routeOverlap"`
	PreferenceMatch   bool    `json:"preferenceMatch"`
}

// MatchScore is the computed compatibility of two rides. It is never persisted.
type MatchScore struct {
	TotalScore float64        `json:"totalScore"`
	MaxScore   int            `json:"maxScore"`
	Percentage int            `json:"percentage"`
	Details    ScoreBreakdown `json:"details"`
}
