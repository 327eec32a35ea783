package service

import (
	"context"

	"carpool/internal/domain"
	"carpool/internal/repository"
)

// Stats are the system totals.
type Stats struct {
	TotalUsers   int `json:"totalUsers"`
	TotalRides   int `json:"totalRides"`
	TotalMatches int `json:"totalMatches"`
	PendingRides int `json:"pendingRides"`
}

// StatsService reports system totals.
type StatsService struct {
	store repository.Store
}

// NewStatsService creates a new StatsService.
func NewStatsService(store repository.Store) *StatsService {
	return &StatsService{store: store}
}

// Get counts users, rides, matches and pending rides.
func (s *StatsService) Get(ctx context.Context) (*Stats, error) {
	var stats Stats
	var err error

	if stats.TotalUsers, err = s.store.Users().Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalRides, err = s.store.Rides().Count(ctx, repository.RideQuery{}); err != nil {
		return nil, err
	}
	if stats.TotalMatches, err = s.store.Matches().Count(ctx); err != nil {
		return nil, err
	}
	if stats.PendingRides, err = s.store.Rides().Count(ctx, repository.RideQuery{Status: domain.RideStatusPending}); err != nil {
		return nil, err
	}
	return &stats, nil
}
