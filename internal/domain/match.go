package domain

import (
	"maps"
	"time"
)

// MatchStatus represents the state of a match.
type MatchStatus string

const (
	MatchStatusPendingConfirmation MatchStatus = "pending_confirmation"
	MatchStatusConfirmed           MatchStatus = "confirmed"
)

// Match is a proposed pairing of two ride requests awaiting mutual confirmation.
// The confirmation map holds exactly the two participants for the life of the match.
type Match struct {
	ID            string
	User1ID       string
	Ride1ID       string
	User2ID       string
	Ride2ID       string
	Status        MatchStatus
	Confirmations map[string]bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewMatch builds a pending match between two rides with both confirmations unset.
func NewMatch(user1ID, ride1ID, user2ID, ride2ID string) (*Match, error) {
	switch {
	case user1ID == "" || user2ID == "":
		return nil, ErrMissingUserID
	case ride1ID == "" || ride2ID == "":
		return nil, ErrMissingRideID
	case ride1ID == ride2ID:
		return nil, ErrSameRide
	case user1ID == user2ID:
		return nil, ErrSameUser
	}

	return &Match{
		User1ID: user1ID,
		Ride1ID: ride1ID,
		User2ID: user2ID,
		Ride2ID: ride2ID,
		Status:  MatchStatusPendingConfirmation,
		Confirmations: map[string]bool{
			user1ID: false,
			user2ID: false,
		},
	}, nil
}

// HasParticipant reports whether userID is one of the two confirming users.
func (m *Match) HasParticipant(userID string) bool {
	_, ok := m.Confirmations[userID]
	return ok
}

// AllConfirmed reports whether every participant has confirmed.
func (m *Match) AllConfirmed() bool {
	if len(m.Confirmations) == 0 {
		return false
	}
	for _, ok := range m.Confirmations {
		if !ok {
			return false
		}
	}
	return true
}

// RideIDs returns the two ride identifiers in match order.
func (m *Match) RideIDs() []string {
	return []string{m.Ride1ID, m.Ride2ID}
}

// Clone returns a deep copy of the match.
func (m *Match) Clone() *Match {
	c := *m
	c.Confirmations = maps.Clone(m.Confirmations)
	return &c
}
