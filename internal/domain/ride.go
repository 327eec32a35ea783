package domain

import (
	"math"
	"slices"
	"time"

	"carpool/internal/geo"
)

// RideStatus represents the current status of a ride request.
type RideStatus string

const (
	RideStatusPending   RideStatus = "pending"
	RideStatusMatched   RideStatus = "matched"
	RideStatusConfirmed RideStatus = "confirmed"
)

// CanTransition reports whether a ride may move from s to next.
// Status only moves forward: pending -> matched -> confirmed.
func (s RideStatus) CanTransition(next RideStatus) bool {
	switch s {
	case RideStatusPending:
		return next == RideStatusMatched
	case RideStatusMatched:
		return next == RideStatusConfirmed
	default:
		return false
	}
}

// Preference is a rider-gender preference tag. Tags are compared verbatim.
type Preference string

// PreferenceAny means the rider has no preference.
const PreferenceAny Preference = "any"

// VehicleInfo describes the vehicle offered with a ride, if any.
type VehicleInfo struct {
	Make        string `json:"make,omitempty" firestore:"make,omitempty"`
	Model       string `json:"model,omitempty" firestore:"model,omitempty"`
	Color       string `json:"color,omitempty" firestore:"color,omitempty"`
	PlateNumber string `json:"plateNumber,omitempty" firestore:"plateNumber,omitempty"`
}

// RideRequest is one user's proposed trip awaiting a match.
type RideRequest struct {
	ID             string
	UserID         string
	Pickup         geo.Point
	Dropoff        geo.Point
	DepartureTime  time.Time
	SeatsAvailable int
	MaxFare        float64
	Preference     Preference
	VehicleInfo    *VehicleInfo // nil when the rider offers no vehicle
	Status         RideStatus
	MatchedWith    []string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewRideRequestParams holds the caller-supplied fields of a ride request.
type NewRideRequestParams struct {
	UserID         string
	Pickup         *geo.Point
	Dropoff        *geo.Point
	DepartureTime  time.Time
	SeatsAvailable int
	MaxFare        float64
	Preference     Preference
	VehicleInfo    *VehicleInfo
}

// NewRideRequest validates params and returns a pending ride request.
// The identifier and timestamps are left to the caller.
func NewRideRequest(p NewRideRequestParams) (*RideRequest, error) {
	if p.UserID == "" {
		return nil, ErrMissingUserID
	}
	if p.Pickup == nil || !p.Pickup.Valid() {
		return nil, ErrInvalidPickupLocation
	}
	if p.Dropoff == nil || !p.Dropoff.Valid() {
		return nil, ErrInvalidDropoffLocation
	}
	if p.DepartureTime.IsZero() {
		return nil, ErrMissingDepartureTime
	}
	if p.SeatsAvailable < 0 {
		return nil, ErrInvalidSeats
	}
	if p.MaxFare < 0 || math.IsNaN(p.MaxFare) || math.IsInf(p.MaxFare, 0) {
		return nil, ErrInvalidMaxFare
	}

	pref := p.Preference
	if pref == "" {
		pref = PreferenceAny
	}

	return &RideRequest{
		UserID:         p.UserID,
		Pickup:         *p.Pickup,
		Dropoff:        *p.Dropoff,
		DepartureTime:  p.DepartureTime.Truncate(time.Millisecond),
		SeatsAvailable: p.SeatsAvailable,
		MaxFare:        p.MaxFare,
		Preference:     pref,
		VehicleInfo:    p.VehicleInfo,
		Status:         RideStatusPending,
		MatchedWith:    []string{},
	}, nil
}

// IsMatchedWith reports whether rideID is already in the ride's matched list.
func (r *RideRequest) IsMatchedWith(rideID string) bool {
	return slices.Contains(r.MatchedWith, rideID)
}

// Trip returns the ride's pickup-to-dropoff leg.
func (r *RideRequest) Trip() geo.Trip {
	return geo.Trip{Pickup: r.Pickup, Dropoff: r.Dropoff}
}

// Clone returns a deep copy of the ride.
func (r *RideRequest) Clone() *RideRequest {
	c := *r
	c.MatchedWith = slices.Clone(r.MatchedWith)
	if r.VehicleInfo != nil {
		v := *r.VehicleInfo
		c.VehicleInfo = &v
	}
	return &c
}
