package domain

import (
	"errors"
	"math"
	"testing"
	"time"

	"carpool/internal/geo"
)

func validParams() NewRideRequestParams {
	return NewRideRequestParams{
		UserID:         "user-1",
		Pickup:         &geo.Point{Lat: 1.0, Lng: 103.0},
		Dropoff:        &geo.Point{Lat: 1.05, Lng: 103.05},
		DepartureTime:  time.Date(2026, 3, 1, 8, 30, 0, 0, time.UTC),
		SeatsAvailable: 2,
	}
}

func TestNewRideRequest_Defaults(t *testing.T) {
	t.Parallel()

	ride, err := NewRideRequest(validParams())
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if ride.Status != RideStatusPending {
		t.Errorf("expected status %s, got %s", RideStatusPending, ride.Status)
	}
	if ride.Preference != PreferenceAny {
		t.Errorf("expected preference %q, got %q", PreferenceAny, ride.Preference)
	}
	if ride.MatchedWith == nil || len(ride.MatchedWith) != 0 {
		t.Errorf("expected empty matchedWith, got %v", ride.MatchedWith)
	}
	if ride.VehicleInfo != nil {
		t.Errorf("expected no vehicle info, got %+v", ride.VehicleInfo)
	}
}

func TestNewRideRequest_TruncatesDepartureToMillis(t *testing.T) {
	t.Parallel()

	p := validParams()
	p.DepartureTime = time.Date(2026, 3, 1, 8, 30, 0, 123456789, time.UTC)

	ride, err := NewRideRequest(p)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if ride.DepartureTime.Nanosecond() != 123000000 {
		t.Errorf("expected millisecond resolution, got %d ns", ride.DepartureTime.Nanosecond())
	}
}

func TestNewRideRequest_ValidationErrors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		mutate func(p *NewRideRequestParams)
		want   error
	}{
		{"missing user", func(p *NewRideRequestParams) { p.UserID = "" }, ErrMissingUserID},
		{"missing pickup", func(p *NewRideRequestParams) { p.Pickup = nil }, ErrInvalidPickupLocation},
		{"pickup out of range", func(p *NewRideRequestParams) { p.Pickup = &geo.Point{Lat: 91, Lng: 0} }, ErrInvalidPickupLocation},
		{"missing dropoff", func(p *NewRideRequestParams) { p.Dropoff = nil }, ErrInvalidDropoffLocation},
		{"dropoff NaN", func(p *NewRideRequestParams) { p.Dropoff = &geo.Point{Lat: math.NaN(), Lng: 0} }, ErrInvalidDropoffLocation},
		{"missing departure", func(p *NewRideRequestParams) { p.DepartureTime = time.Time{} }, ErrMissingDepartureTime},
		{"negative seats", func(p *NewRideRequestParams) { p.SeatsAvailable = -1 }, ErrInvalidSeats},
		{"negative fare", func(p *NewRideRequestParams) { p.MaxFare = -5 }, ErrInvalidMaxFare},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			p := validParams()
			tc.mutate(&p)
			_, err := NewRideRequest(p)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if !errors.Is(err, ErrValidation) {
				t.Errorf("expected error to wrap ErrValidation, got %v", err)
			}
		})
	}
}

func TestRideStatus_CanTransition(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		from, to RideStatus
		want     bool
	}{
		{RideStatusPending, RideStatusMatched, true},
		{RideStatusMatched, RideStatusConfirmed, true},
		{RideStatusPending, RideStatusConfirmed, false},
		{RideStatusMatched, RideStatusPending, false},
		{RideStatusConfirmed, RideStatusMatched, false},
		{RideStatusConfirmed, RideStatusPending, false},
		{RideStatusPending, RideStatusPending, false},
	}
	for _, tc := range testCases {
		if got := tc.from.CanTransition(tc.to); got != tc.want {
			t.Errorf("%s -> %s: expected %v, got %v", tc.from, tc.to, tc.want, got)
		}
	}
}

func TestRideRequest_CloneIsIndependent(t *testing.T) {
	t.Parallel()

	ride, _ := NewRideRequest(validParams())
	ride.VehicleInfo = &VehicleInfo{Make: "Toyota"}
	ride.MatchedWith = append(ride.MatchedWith, "ride-2")

	c := ride.Clone()
	c.MatchedWith[0] = "ride-9"
	c.VehicleInfo.Make = "Honda"

	if ride.MatchedWith[0] != "ride-2" {
		t.Error("expected clone to copy matchedWith")
	}
	if ride.VehicleInfo.Make != "Toyota" {
		t.Error("expected clone to copy vehicle info")
	}
	if !ride.IsMatchedWith("ride-2") || ride.IsMatchedWith("ride-9") {
		t.Errorf("unexpected matchedWith %v", ride.MatchedWith)
	}
}
