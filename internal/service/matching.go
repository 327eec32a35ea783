package service

import (
	"context"
	"log/slog"
	"time"

	"carpool/internal/domain"
	"carpool/internal/metrics"
	"carpool/internal/repository"
	"carpool/internal/scoring"
)

const (
	msgRideNotPending    = "ride is not pending and cannot be matched"
	msgNoPendingUserRide = "no pending ride found for this user"
)

// MatchingService ranks pending rides against a reference ride.
type MatchingService struct {
	rideRepo        repository.RideRepository
	defaultMinScore int
	logger          *slog.Logger
}

// NewMatchingService creates a new MatchingService. defaultMinScore applies when
// a request does not name a threshold.
func NewMatchingService(rideRepo repository.RideRepository, defaultMinScore int, logger *slog.Logger) *MatchingService {
	return &MatchingService{
		rideRepo:        rideRepo,
		defaultMinScore: defaultMinScore,
		logger:          logger,
	}
}

// RankResult is the outcome of a ranking. When NoEligible is set, Message says
// why and Matches is empty.
type RankResult struct {
	Reference  *domain.RideRequest
	Matches    []scoring.RankedMatch
	NoEligible bool
	Message    string
}

// RankMatches ranks the pending pool against the ride rideID.
// A nil minScore uses the service default.
func (s *MatchingService) RankMatches(ctx context.Context, rideID string, minScore *int) (*RankResult, error) {
	if rideID == "" {
		return nil, domain.ErrMissingRideID
	}
	threshold, err := s.threshold(minScore)
	if err != nil {
		return nil, err
	}

	ref, err := s.rideRepo.GetByID(ctx, rideID)
	if err != nil {
		return nil, notFoundAs(err, ErrRideNotFound)
	}
	return s.rank(ctx, ref, threshold)
}

// RankMatchesForUser ranks against the user's oldest pending ride.
func (s *MatchingService) RankMatchesForUser(ctx context.Context, userID string, minScore *int) (*RankResult, error) {
	if userID == "" {
		return nil, domain.ErrMissingUserID
	}
	threshold, err := s.threshold(minScore)
	if err != nil {
		return nil, err
	}

	rides, err := s.rideRepo.Find(ctx, repository.RideQuery{
		UserID: userID,
		Status: domain.RideStatusPending,
		Order:  repository.OldestFirst,
		Limit:  1,
	})
	if err != nil {
		return nil, err
	}
	if len(rides) == 0 {
		return &RankResult{Matches: []scoring.RankedMatch{}, NoEligible: true, Message: msgNoPendingUserRide}, nil
	}
	return s.rank(ctx, rides[0], threshold)
}

func (s *MatchingService) rank(ctx context.Context, ref *domain.RideRequest, threshold int) (*RankResult, error) {
	if ref.Status != domain.RideStatusPending {
		return &RankResult{Reference: ref, Matches: []scoring.RankedMatch{}, NoEligible: true, Message: msgRideNotPending}, nil
	}

	start := time.Now()
	pool, err := s.rideRepo.Find(ctx, repository.RideQuery{Status: domain.RideStatusPending, Order: repository.OldestFirst})
	if err != nil {
		return nil, err
	}

	ranked := scoring.Rank(ref, pool, threshold)
	metrics.RankLatency.Observe(time.Since(start).Seconds())
	metrics.RankCandidates.Observe(float64(len(ranked)))

	s.logger.DebugContext(ctx, "matches ranked",
		"ride_id", ref.ID,
		"pool_size", len(pool),
		"ranked", len(ranked),
		"min_score", threshold,
	)
	return &RankResult{Reference: ref, Matches: ranked}, nil
}

func (s *MatchingService) threshold(minScore *int) (int, error) {
	if minScore == nil {
		return s.defaultMinScore, nil
	}
	if *minScore < 0 || *minScore > domain.MaxScore {
		return 0, domain.ErrInvalidMinScore
	}
	return *minScore, nil
}
