package scoring

import (
	"sort"

	"carpool/internal/domain"
)

// DefaultMinScore is the percentage a candidate must reach to be ranked.
const DefaultMinScore = 50

// RankedMatch is a candidate ride together with its score against the reference.
type RankedMatch struct {
	Ride  *domain.RideRequest `json:"ride"`
	Score domain.MatchScore   `json:"score"`
}

// Rank scores every candidate against ref and returns those at or above minScore,
// best first. The reference itself and rides it is already matched with are skipped.
// Equal percentages keep their pool order.
func Rank(ref *domain.RideRequest, pool []*domain.RideRequest, minScore int) []RankedMatch {
	ranked := make([]RankedMatch, 0, len(pool))
	for _, candidate := range pool {
		if candidate.ID == ref.ID || ref.IsMatchedWith(candidate.ID) {
			continue
		}
		score := Score(ref, candidate)
		if score.Percentage < minScore {
			continue
		}
		ranked = append(ranked, RankedMatch{Ride: candidate, Score: score})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score.Percentage > ranked[j].Score.Percentage
	})
	return ranked
}
