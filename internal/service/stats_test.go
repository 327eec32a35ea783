package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"carpool/internal/domain"
	"carpool/internal/repository"
	"carpool/internal/repository/memory"
	"carpool/internal/service"
)

func TestStats_CountsEverything(t *testing.T) {
	t.Parallel()

	store := memory.New()
	ctx := context.Background()
	for _, u := range []*domain.User{
		{ID: "u1", Name: "Ana", Phone: "+6511111111"},
		{ID: "u2", Name: "Ben", Phone: "+6522222222"},
	} {
		if err := store.Users().Create(ctx, u); err != nil {
			t.Fatalf("seed user: %v", err)
		}
	}
	seedRide(t, store, "r1", "u1", 0)
	seedRide(t, store, "r2", "u2", time.Second)
	seedRide(t, store, "r3", "u2", 2*time.Second)

	lifecycle := service.NewMatchService(store, nil, nil, 0, testLogger())
	if _, err := lifecycle.CreateMatch(ctx, pairRequest()); err != nil {
		t.Fatalf("create match: %v", err)
	}

	stats, err := service.NewStatsService(store).Get(ctx)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	want := service.Stats{TotalUsers: 2, TotalRides: 3, TotalMatches: 1, PendingRides: 1}
	if *stats != want {
		t.Errorf("expected %+v, got %+v", want, *stats)
	}
}

func TestStats_EmptyStore(t *testing.T) {
	t.Parallel()

	stats, err := service.NewStatsService(memory.New()).Get(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if *stats != (service.Stats{}) {
		t.Errorf("expected zero stats, got %+v", *stats)
	}
}

func TestStats_StoreFailure(t *testing.T) {
	t.Parallel()

	store := memory.New()
	store.FailOn(memory.OpRideFind, repository.ErrStoreUnavailable)

	if _, err := service.NewStatsService(store).Get(context.Background()); !errors.Is(err, repository.ErrStoreUnavailable) {
		t.Errorf("expected store unavailable, got %v", err)
	}
}
