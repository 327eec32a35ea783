// Package firestore stores rides, matches and users as Cloud Firestore documents.
package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/firestore/apiv1/firestorepb"

	"carpool/internal/repository"
)

// Store is the Firestore record store.
type Store struct {
	client *firestore.Client
}

var _ repository.Store = (*Store)(nil)

// NewStore wraps a Firestore client.
func NewStore(client *firestore.Client) *Store {
	return &Store{client: client}
}

func (s *Store) Rides() repository.RideRepository    { return &rideRepo{s: s} }
func (s *Store) Matches() repository.MatchRepository { return &matchRepo{s: s} }
func (s *Store) Users() repository.UserRepository    { return &userRepo{s: s} }

// RunInTx runs fn in a Firestore transaction. Firestore retries the whole
// function on contention, each attempt with a fresh unit of work.
func (s *Store) RunInTx(ctx context.Context, fn repository.TxFunc) error {
	return s.run(ctx, func(ctx context.Context, u *unitOfWork) error {
		return fn(ctx, &txRepos{s: s, uow: u})
	})
}

func (s *Store) run(ctx context.Context, fn func(ctx context.Context, u *unitOfWork) error) error {
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		u := newUnitOfWork(s.client, tx)
		if err := fn(ctx, u); err != nil {
			return err
		}
		return u.flush()
	})
	return translate(err)
}

// Close closes the Firestore client.
func (s *Store) Close() error {
	return s.client.Close()
}

func count(ctx context.Context, q firestore.Query) (int, error) {
	res, err := q.NewAggregationQuery().WithCount("count").Get(ctx)
	if err != nil {
		return 0, translate(err)
	}
	return countFrom(res)
}

func countFrom(res firestore.AggregationResult) (int, error) {
	v, ok := res["count"].(*firestorepb.Value)
	if !ok {
		return 0, fmt.Errorf("firestore: unexpected count result %T", res["count"])
	}
	return int(v.GetIntegerValue()), nil
}
