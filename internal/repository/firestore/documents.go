package firestore

import (
	"time"

	"carpool/internal/domain"
	"carpool/internal/geo"
)

const (
	ridesCollection   = "rides"
	matchesCollection = "matches"
	usersCollection   = "users"
)

type location struct {
	Latitude  float64 `firestore:"latitude"`
	Longitude float64 `firestore:"longitude"`
}

func toLocation(p geo.Point) location { return location{Latitude: p.Lat, Longitude: p.Lng} }
func (l location) point() geo.Point   { return geo.Point{Lat: l.Latitude, Lng: l.Longitude} }

type rideDoc struct {
	UserID           string              `firestore:"userId"`
	PickupLocation   location            `firestore:"pickupLocation"`
	DropoffLocation  location            `firestore:"dropoffLocation"`
	DepartureTime    time.Time           `firestore:"departureTime"`
	SeatsAvailable   int64               `firestore:"seatsAvailable"`
	MaxFare          float64             `firestore:"maxFare"`
	GenderPreference string              `firestore:"genderPreference"`
	VehicleInfo      *domain.VehicleInfo `firestore:"vehicleInfo"`
	Status           string              `firestore:"status"`
	MatchedWith      []string            `firestore:"matchedWith"`
	CreatedAt        time.Time           `firestore:"createdAt"`
	UpdatedAt        time.Time           `firestore:"updatedAt"`
}

func toRideDoc(r *domain.RideRequest) rideDoc {
	matchedWith := r.MatchedWith
	if matchedWith == nil {
		matchedWith = []string{}
	}
	return rideDoc{
		UserID:           r.UserID,
		PickupLocation:   toLocation(r.Pickup),
		DropoffLocation:  toLocation(r.Dropoff),
		DepartureTime:    r.DepartureTime,
		SeatsAvailable:   int64(r.SeatsAvailable),
		MaxFare:          r.MaxFare,
		GenderPreference: string(r.Preference),
		VehicleInfo:      r.VehicleInfo,
		Status:           string(r.Status),
		MatchedWith:      matchedWith,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}

func (d rideDoc) toDomain(id string) *domain.RideRequest {
	pref := domain.Preference(d.GenderPreference)
	if pref == "" {
		pref = domain.PreferenceAny
	}
	matchedWith := d.MatchedWith
	if matchedWith == nil {
		matchedWith = []string{}
	}
	return &domain.RideRequest{
		ID:             id,
		UserID:         d.UserID,
		Pickup:         d.PickupLocation.point(),
		Dropoff:        d.DropoffLocation.point(),
		DepartureTime:  d.DepartureTime,
		SeatsAvailable: int(d.SeatsAvailable),
		MaxFare:        d.MaxFare,
		Preference:     pref,
		VehicleInfo:    d.VehicleInfo,
		Status:         domain.RideStatus(d.Status),
		MatchedWith:    matchedWith,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

type matchDoc struct {
	User1ID       string          `firestore:"user1Id"`
	Ride1ID       string          `firestore:"ride1Id"`
	User2ID       string          `firestore:"user2Id"`
	Ride2ID       string          `firestore:"ride2Id"`
	Status        string          `firestore:"status"`
	Confirmations map[string]bool `firestore:"confirmations"`
	CreatedAt     time.Time       `firestore:"createdAt"`
	UpdatedAt     time.Time       `firestore:"updatedAt"`
}

func toMatchDoc(m *domain.Match) matchDoc {
	return matchDoc{
		User1ID:       m.User1ID,
		Ride1ID:       m.Ride1ID,
		User2ID:       m.User2ID,
		Ride2ID:       m.Ride2ID,
		Status:        string(m.Status),
		Confirmations: m.Confirmations,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func (d matchDoc) toDomain(id string) *domain.Match {
	return &domain.Match{
		ID:            id,
		User1ID:       d.User1ID,
		Ride1ID:       d.Ride1ID,
		User2ID:       d.User2ID,
		Ride2ID:       d.Ride2ID,
		Status:        domain.MatchStatus(d.Status),
		Confirmations: d.Confirmations,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

type userDoc struct {
	Name      string    `firestore:"name"`
	Email     string    `firestore:"email"`
	Phone     string    `firestore:"phone"`
	CreatedAt time.Time `firestore:"createdAt"`
}
