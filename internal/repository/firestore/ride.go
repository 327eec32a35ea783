package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"

	"carpool/internal/domain"
	"carpool/internal/repository"
)

type rideRepo struct {
	s   *Store
	uow *unitOfWork
}

// do runs fn in the surrounding transaction, or in a transaction of its own.
func (r *rideRepo) do(ctx context.Context, fn func(u *unitOfWork) error) error {
	if r.uow != nil {
		return fn(r.uow)
	}
	return r.s.run(ctx, func(_ context.Context, u *unitOfWork) error { return fn(u) })
}

func (r *rideRepo) Create(ctx context.Context, ride *domain.RideRequest) error {
	if r.uow != nil {
		r.uow.putRide(ride.Clone(), true)
		return nil
	}
	_, err := r.s.client.Collection(ridesCollection).Doc(ride.ID).Create(ctx, toRideDoc(ride))
	return translate(err)
}

func (r *rideRepo) GetByID(ctx context.Context, id string) (*domain.RideRequest, error) {
	if r.uow != nil {
		ride, err := r.uow.ride(id)
		if err != nil {
			return nil, err
		}
		return ride.Clone(), nil
	}

	snap, err := r.s.client.Collection(ridesCollection).Doc(id).Get(ctx)
	if err != nil {
		return nil, translate(err)
	}
	var doc rideDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, err
	}
	return doc.toDomain(snap.Ref.ID), nil
}

// Find runs q against committed data; inside a transaction it does not see
// the transaction's buffered writes.
func (r *rideRepo) Find(ctx context.Context, q repository.RideQuery) ([]*domain.RideRequest, error) {
	dir := firestore.Asc
	if q.Order == repository.NewestFirst {
		dir = firestore.Desc
	}
	query := r.query(q).OrderBy("createdAt", dir).OrderBy(firestore.DocumentID, dir)
	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}

	var iter *firestore.DocumentIterator
	if r.uow != nil {
		iter = r.uow.tx.Documents(query)
	} else {
		iter = query.Documents(ctx)
	}
	snaps, err := iter.GetAll()
	if err != nil {
		return nil, translate(err)
	}

	rides := make([]*domain.RideRequest, 0, len(snaps))
	for _, snap := range snaps {
		var doc rideDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, err
		}
		rides = append(rides, doc.toDomain(snap.Ref.ID))
	}
	return rides, nil
}

func (r *rideRepo) Count(ctx context.Context, q repository.RideQuery) (int, error) {
	return count(ctx, r.query(q))
}

func (r *rideRepo) query(q repository.RideQuery) firestore.Query {
	query := r.s.client.Collection(ridesCollection).Query
	if q.UserID != "" {
		query = query.Where("userId", "==", q.UserID)
	}
	if q.Status != "" {
		query = query.Where("status", "==", string(q.Status))
	}
	return query
}

func (r *rideRepo) MarkMatched(ctx context.Context, id, counterpartID string) error {
	return r.do(ctx, func(u *unitOfWork) error {
		ride, err := u.ride(id)
		if err != nil {
			return err
		}
		if !ride.Status.CanTransition(domain.RideStatusMatched) || ride.IsMatchedWith(counterpartID) {
			return repository.ErrPreconditionFailed
		}
		ride.Status = domain.RideStatusMatched
		ride.MatchedWith = append(ride.MatchedWith, counterpartID)
		ride.UpdatedAt = time.Now().UTC()
		u.putRide(ride, false)
		return nil
	})
}

func (r *rideRepo) UpdateStatus(ctx context.Context, id string, from, to domain.RideStatus) error {
	return r.do(ctx, func(u *unitOfWork) error {
		ride, err := u.ride(id)
		if err != nil {
			return err
		}
		if ride.Status != from || !from.CanTransition(to) {
			return repository.ErrPreconditionFailed
		}
		ride.Status = to
		ride.UpdatedAt = time.Now().UTC()
		u.putRide(ride, false)
		return nil
	})
}
