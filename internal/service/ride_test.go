package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"carpool/internal/domain"
	"carpool/internal/geo"
	"carpool/internal/repository"
	"carpool/internal/repository/memory"
	"carpool/internal/service"
)

func validRideRequest() service.CreateRideRequest {
	return service.CreateRideRequest{
		UserID:         "u1",
		Pickup:         &geo.Point{Lat: 1.0, Lng: 103.0},
		Dropoff:        &geo.Point{Lat: 1.05, Lng: 103.05},
		DepartureTime:  t0,
		SeatsAvailable: 2,
	}
}

func TestCreateRide_Success(t *testing.T) {
	t.Parallel()

	store := memory.New()
	svc := service.NewRideService(store.Rides(), testLogger())

	ride, err := svc.CreateRide(context.Background(), validRideRequest())
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if ride.ID == "" {
		t.Error("expected ride ID to be set")
	}
	if ride.Status != domain.RideStatusPending {
		t.Errorf("expected status pending, got %s", ride.Status)
	}
	if ride.Preference != domain.PreferenceAny {
		t.Errorf("expected default preference any, got %s", ride.Preference)
	}
	if ride.MatchedWith == nil || len(ride.MatchedWith) != 0 {
		t.Errorf("expected empty matchedWith, got %v", ride.MatchedWith)
	}
	if ride.CreatedAt.IsZero() {
		t.Error("expected createdAt to be set")
	}

	stored := getRide(t, store, ride.ID)
	if stored.UserID != "u1" || !stored.DepartureTime.Equal(t0) {
		t.Errorf("unexpected stored ride %+v", stored)
	}
}

func TestCreateRide_ValidationErrors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		mutate func(*service.CreateRideRequest)
		want   error
	}{
		{"missing user", func(r *service.CreateRideRequest) { r.UserID = "" }, domain.ErrMissingUserID},
		{"missing pickup", func(r *service.CreateRideRequest) { r.Pickup = nil }, domain.ErrInvalidPickupLocation},
		{"pickup out of range", func(r *service.CreateRideRequest) { r.Pickup = &geo.Point{Lat: 91, Lng: 0} }, domain.ErrInvalidPickupLocation},
		{"missing dropoff", func(r *service.CreateRideRequest) { r.Dropoff = nil }, domain.ErrInvalidDropoffLocation},
		{"missing departure", func(r *service.CreateRideRequest) { r.DepartureTime = time.Time{} }, domain.ErrMissingDepartureTime},
		{"negative seats", func(r *service.CreateRideRequest) { r.SeatsAvailable = -1 }, domain.ErrInvalidSeats},
		{"negative fare", func(r *service.CreateRideRequest) { r.MaxFare = -5 }, domain.ErrInvalidMaxFare},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			store := memory.New()
			svc := service.NewRideService(store.Rides(), testLogger())
			req := validRideRequest()
			tc.mutate(&req)

			_, err := svc.CreateRide(context.Background(), req)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if !errors.Is(err, domain.ErrValidation) {
				t.Errorf("expected validation category, got %v", err)
			}
			if n, _ := store.Rides().Count(context.Background(), repository.RideQuery{}); n != 0 {
				t.Errorf("expected nothing stored, got %d rides", n)
			}
		})
	}
}

func TestCreateRide_StoreFailure(t *testing.T) {
	t.Parallel()

	store := memory.New()
	store.FailOn(memory.OpRideCreate, repository.ErrStoreUnavailable)
	svc := service.NewRideService(store.Rides(), testLogger())

	if _, err := svc.CreateRide(context.Background(), validRideRequest()); !errors.Is(err, repository.ErrStoreUnavailable) {
		t.Errorf("expected store unavailable, got %v", err)
	}
}

func TestGetRide(t *testing.T) {
	t.Parallel()

	store := memory.New()
	seedRide(t, store, "r1", "u1", 0)
	svc := service.NewRideService(store.Rides(), testLogger())

	ride, err := svc.GetRide(context.Background(), "r1")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if ride.ID != "r1" {
		t.Errorf("expected r1, got %s", ride.ID)
	}

	if _, err := svc.GetRide(context.Background(), "missing"); !errors.Is(err, service.ErrRideNotFound) {
		t.Errorf("expected ErrRideNotFound, got %v", err)
	}
	if _, err := svc.GetRide(context.Background(), ""); !errors.Is(err, domain.ErrMissingRideID) {
		t.Errorf("expected ErrMissingRideID, got %v", err)
	}
}

func TestListUserRides_NewestFirst(t *testing.T) {
	t.Parallel()

	store := memory.New()
	seedRide(t, store, "old", "u1", 0)
	seedRide(t, store, "new", "u1", time.Hour)
	seedRide(t, store, "theirs", "u2", 2*time.Hour)
	svc := service.NewRideService(store.Rides(), testLogger())

	rides, err := svc.ListUserRides(context.Background(), "u1")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(rides) != 2 || rides[0].ID != "new" || rides[1].ID != "old" {
		t.Errorf("expected [new old], got %d rides", len(rides))
	}

	none, err := svc.ListUserRides(context.Background(), "u9")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if none == nil || len(none) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", none)
	}
}
