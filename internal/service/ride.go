package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"carpool/internal/domain"
	"carpool/internal/geo"
	"carpool/internal/metrics"
	"carpool/internal/repository"
)

// RideService handles ride request operations.
type RideService struct {
	rideRepo repository.RideRepository
	logger   *slog.Logger
}

// NewRideService creates a new RideService.
func NewRideService(rideRepo repository.RideRepository, logger *slog.Logger) *RideService {
	return &RideService{rideRepo: rideRepo, logger: logger}
}

// CreateRideRequest contains the parameters for creating a ride.
type CreateRideRequest struct {
	UserID         string
	Pickup         *geo.Point
	Dropoff        *geo.Point
	DepartureTime  time.Time
	SeatsAvailable int
	MaxFare        float64
	Preference     domain.Preference // empty means any
	VehicleInfo    *domain.VehicleInfo
}

// CreateRide validates req and stores a new pending ride.
func (s *RideService) CreateRide(ctx context.Context, req CreateRideRequest) (*domain.RideRequest, error) {
	ride, err := domain.NewRideRequest(domain.NewRideRequestParams{
		UserID:         req.UserID,
		Pickup:         req.Pickup,
		Dropoff:        req.Dropoff,
		DepartureTime:  req.DepartureTime,
		SeatsAvailable: req.SeatsAvailable,
		MaxFare:        req.MaxFare,
		Preference:     req.Preference,
		VehicleInfo:    req.VehicleInfo,
	})
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	ride.ID = uuid.New().String()
	ride.CreatedAt = now
	ride.UpdatedAt = now

	if err := s.rideRepo.Create(ctx, ride); err != nil {
		return nil, err
	}

	metrics.RidesCreatedTotal.Inc()
	s.logger.InfoContext(ctx, "ride created", "ride_id", ride.ID, "user_id", ride.UserID)
	return ride, nil
}

// GetRide retrieves a ride by ID.
func (s *RideService) GetRide(ctx context.Context, rideID string) (*domain.RideRequest, error) {
	if rideID == "" {
		return nil, domain.ErrMissingRideID
	}
	ride, err := s.rideRepo.GetByID(ctx, rideID)
	if err != nil {
		return nil, notFoundAs(err, ErrRideNotFound)
	}
	return ride, nil
}

// ListUserRides returns every ride of a user, newest first.
func (s *RideService) ListUserRides(ctx context.Context, userID string) ([]*domain.RideRequest, error) {
	if userID == "" {
		return nil, domain.ErrMissingUserID
	}
	rides, err := s.rideRepo.Find(ctx, repository.RideQuery{UserID: userID, Order: repository.NewestFirst})
	if err != nil {
		return nil, err
	}
	if rides == nil {
		rides = []*domain.RideRequest{}
	}
	return rides, nil
}
