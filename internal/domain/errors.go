package domain

import (
	"errors"
	"fmt"
)

// ErrValidation is the category for malformed input. Every error below wraps it.
var ErrValidation = errors.New("validation failed")

var (
	// ErrMissingUserID is returned when a user identifier is empty.
	ErrMissingUserID = fmt.Errorf("%w: user id is required", ErrValidation)

	// ErrMissingRideID is returned when a ride identifier is empty.
	ErrMissingRideID = fmt.Errorf("%w: ride id is required", ErrValidation)

	// ErrMissingMatchID is returned when a match identifier is empty.
	ErrMissingMatchID = fmt.Errorf("%w: match id is required", ErrValidation)

	// ErrInvalidPickupLocation is returned when pickup coordinates are missing or out of range.
	ErrInvalidPickupLocation = fmt.Errorf("%w: invalid pickup location", ErrValidation)

	// ErrInvalidDropoffLocation is returned when dropoff coordinates are missing or out of range.
	ErrInvalidDropoffLocation = fmt.Errorf("%w: invalid dropoff location", ErrValidation)

	// ErrMissingDepartureTime is returned when no departure instant is given.
	ErrMissingDepartureTime = fmt.Errorf("%w: departure time is required", ErrValidation)

	// ErrInvalidSeats is returned for a negative seat count.
	ErrInvalidSeats = fmt.Errorf("%w: seats available must not be negative", ErrValidation)

	// ErrInvalidMaxFare is returned for a negative or non-finite fare.
	ErrInvalidMaxFare = fmt.Errorf("%w: max fare must be a non-negative number", ErrValidation)

	// ErrInvalidMinScore is returned when a ranking threshold is outside 0..100.
	ErrInvalidMinScore = fmt.Errorf("%w: min score must be between 0 and 100", ErrValidation)

	// ErrSameRide is returned when a match is requested between a ride and itself.
	ErrSameRide = fmt.Errorf("%w: a ride cannot be matched with itself", ErrValidation)

	// ErrSameUser is returned when both rides of a match belong to one user.
	ErrSameUser = fmt.Errorf("%w: both rides belong to the same user", ErrValidation)

	// ErrRideOwnerMismatch is returned when a ride does not belong to the named user.
	ErrRideOwnerMismatch = fmt.Errorf("%w: ride does not belong to user", ErrValidation)

	// ErrMissingName is returned when a user registers without a name.
	ErrMissingName = fmt.Errorf("%w: name is required", ErrValidation)

	// ErrMissingPhone is returned when a user registers without a phone number.
	ErrMissingPhone = fmt.Errorf("%w: phone is required", ErrValidation)
)
