package service

import (
	"errors"
	"fmt"

	"carpool/internal/domain"
	"carpool/internal/repository"
)

var (
	// ErrRideNotFound is returned when a referenced ride does not exist.
	ErrRideNotFound = fmt.Errorf("ride %w", repository.ErrNotFound)

	// ErrMatchNotFound is returned when a referenced match does not exist.
	ErrMatchNotFound = fmt.Errorf("match %w", repository.ErrNotFound)

	// ErrRideNotPending is returned when a ride has already left the pending state.
	ErrRideNotPending = fmt.Errorf("%w: ride is not pending", repository.ErrPreconditionFailed)

	// ErrAlreadyMatched is returned when two rides have been matched with each other before.
	ErrAlreadyMatched = fmt.Errorf("%w: rides are already matched with each other", repository.ErrPreconditionFailed)

	// ErrPairLocked is returned when another request is creating a match for the same rides.
	ErrPairLocked = fmt.Errorf("%w: a match for these rides is already being created", repository.ErrPreconditionFailed)

	// ErrNotMatchParticipant is returned when a user outside the match tries to confirm it.
	ErrNotMatchParticipant = fmt.Errorf("%w: user is not a participant of this match", repository.ErrPreconditionFailed)
)

// Reason returns a short metric label for the category of err.
func Reason(err error) string {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return "validation"
	case errors.Is(err, repository.ErrNotFound):
		return "not_found"
	case errors.Is(err, repository.ErrPreconditionFailed):
		return "precondition_failed"
	case errors.Is(err, repository.ErrStoreUnavailable):
		return "store_unavailable"
	default:
		return "internal"
	}
}

func notFoundAs(err, target error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return target
	}
	return err
}
