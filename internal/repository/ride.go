package repository

import (
	"context"

	"carpool/internal/domain"
)

// SortOrder orders rides by creation time, with the ride id as tie-break.
type SortOrder int

const (
	OldestFirst SortOrder = iota
	NewestFirst
)

// RideQuery filters rides. Zero-valued fields match everything.
type RideQuery struct {
	UserID string
	Status domain.RideStatus
	Order  SortOrder
	Limit  int
}

// RideRepository defines the persistence operations for ride requests.
type RideRepository interface {
	// Create persists a new ride.
	Create(ctx context.Context, ride *domain.RideRequest) error

	// GetByID retrieves a ride by ID.
	GetByID(ctx context.Context, id string) (*domain.RideRequest, error)

	// Find returns the rides matching q.
	Find(ctx context.Context, q RideQuery) ([]*domain.RideRequest, error)

	// Count returns the number of rides matching q. Order and Limit are ignored.
	Count(ctx context.Context, q RideQuery) (int, error)

	// MarkMatched moves a pending ride to matched and appends counterpartID to its
	// matched list. It fails with ErrPreconditionFailed when the ride is not pending
	// or is already matched with counterpartID.
	MarkMatched(ctx context.Context, id, counterpartID string) error

	// UpdateStatus moves a ride from one status to another, failing with
	// ErrPreconditionFailed if the current status is not from or the move
	// is not a forward transition.
	UpdateStatus(ctx context.Context, id string, from, to domain.RideStatus) error
}
