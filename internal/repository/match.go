package repository

import (
	"context"

	"carpool/internal/domain"
)

// MatchRepository defines the persistence operations for matches.
type MatchRepository interface {
	// Create persists a new match.
	Create(ctx context.Context, match *domain.Match) error

	// GetByID retrieves a match by ID.
	GetByID(ctx context.Context, id string) (*domain.Match, error)

	// Confirm sets userID's confirmation to true and returns the updated match.
	// It fails with ErrPreconditionFailed when userID is not a key of the
	// confirmation map; the key set is never extended.
	Confirm(ctx context.Context, id, userID string) (*domain.Match, error)

	// UpdateStatus moves a match from one status to another, failing with
	// ErrPreconditionFailed if the current status is not from.
	UpdateStatus(ctx context.Context, id string, from, to domain.MatchStatus) error

	// Count returns the number of matches.
	Count(ctx context.Context) (int, error)
}
