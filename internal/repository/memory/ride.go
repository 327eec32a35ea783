package memory

import (
	"context"
	"sort"
	"time"

	"carpool/internal/domain"
	"carpool/internal/repository"
)

type rideRepo struct {
	s  *Store
	tx *dataset
}

func (r *rideRepo) Create(ctx context.Context, ride *domain.RideRequest) error {
	return r.s.view(r.tx, OpRideCreate, func(d *dataset) error {
		if _, ok := d.rides[ride.ID]; ok {
			return repository.ErrPreconditionFailed
		}
		d.rides[ride.ID] = ride.Clone()
		return nil
	})
}

func (r *rideRepo) GetByID(ctx context.Context, id string) (*domain.RideRequest, error) {
	var out *domain.RideRequest
	err := r.s.view(r.tx, OpRideGet, func(d *dataset) error {
		ride, ok := d.rides[id]
		if !ok {
			return repository.ErrNotFound
		}
		out = ride.Clone()
		return nil
	})
	return out, err
}

func (r *rideRepo) Find(ctx context.Context, q repository.RideQuery) ([]*domain.RideRequest, error) {
	var out []*domain.RideRequest
	err := r.s.view(r.tx, OpRideFind, func(d *dataset) error {
		out = filterRides(d, q)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			if q.Order == repository.NewestFirst {
				return a.CreatedAt.After(b.CreatedAt)
			}
			return a.CreatedAt.Before(b.CreatedAt)
		}
		if q.Order == repository.NewestFirst {
			return a.ID > b.ID
		}
		return a.ID < b.ID
	})
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (r *rideRepo) Count(ctx context.Context, q repository.RideQuery) (int, error) {
	var n int
	err := r.s.view(r.tx, OpRideFind, func(d *dataset) error {
		q.Limit = 0
		n = len(filterRides(d, q))
		return nil
	})
	return n, err
}

func filterRides(d *dataset, q repository.RideQuery) []*domain.RideRequest {
	var out []*domain.RideRequest
	for _, ride := range d.rides {
		if q.UserID != "" && ride.UserID != q.UserID {
			continue
		}
		if q.Status != "" && ride.Status != q.Status {
			continue
		}
		out = append(out, ride.Clone())
	}
	return out
}

func (r *rideRepo) MarkMatched(ctx context.Context, id, counterpartID string) error {
	return r.s.view(r.tx, OpRideMarkMatched, func(d *dataset) error {
		ride, ok := d.rides[id]
		if !ok {
			return repository.ErrNotFound
		}
		if !ride.Status.CanTransition(domain.RideStatusMatched) || ride.IsMatchedWith(counterpartID) {
			return repository.ErrPreconditionFailed
		}
		ride.Status = domain.RideStatusMatched
		ride.MatchedWith = append(ride.MatchedWith, counterpartID)
		ride.UpdatedAt = time.Now().UTC()
		return nil
	})
}

func (r *rideRepo) UpdateStatus(ctx context.Context, id string, from, to domain.RideStatus) error {
	return r.s.view(r.tx, OpRideUpdateStatus, func(d *dataset) error {
		ride, ok := d.rides[id]
		if !ok {
			return repository.ErrNotFound
		}
		if ride.Status != from || !from.CanTransition(to) {
			return repository.ErrPreconditionFailed
		}
		ride.Status = to
		ride.UpdatedAt = time.Now().UTC()
		return nil
	})
}
