// Package memory is an in-process record store. Transactions run under a single
// lock against a copy of the dataset that replaces the live one only on success.
package memory

import (
	"context"
	"maps"
	"sync"

	"carpool/internal/domain"
	"carpool/internal/repository"
)

// Operation names accepted by FailOn.
const (
	OpRideCreate        = "rides.Create"
	OpRideGet           = "rides.GetByID"
	OpRideFind          = "rides.Find"
	OpRideMarkMatched   = "rides.MarkMatched"
	OpRideUpdateStatus  = "rides.UpdateStatus"
	OpMatchCreate       = "matches.Create"
	OpMatchGet          = "matches.GetByID"
	OpMatchConfirm      = "matches.Confirm"
	OpMatchUpdateStatus = "matches.UpdateStatus"
	OpUserCreate        = "users.Create"
	OpCommit            = "tx.Commit"
)

type dataset struct {
	rides   map[string]*domain.RideRequest
	matches map[string]*domain.Match
	users   map[string]*domain.User
}

func newDataset() *dataset {
	return &dataset{
		rides:   make(map[string]*domain.RideRequest),
		matches: make(map[string]*domain.Match),
		users:   make(map[string]*domain.User),
	}
}

func (d *dataset) clone() *dataset {
	c := &dataset{
		rides:   make(map[string]*domain.RideRequest, len(d.rides)),
		matches: make(map[string]*domain.Match, len(d.matches)),
		users:   maps.Clone(d.users),
	}
	for id, r := range d.rides {
		c.rides[id] = r.Clone()
	}
	for id, m := range d.matches {
		c.matches[id] = m.Clone()
	}
	return c
}

// Store is an in-memory implementation of repository.Store.
type Store struct {
	mu   sync.Mutex
	data *dataset

	faultMu sync.Mutex
	faults  map[string]error
}

var _ repository.Store = (*Store)(nil)

// New creates an empty store.
func New() *Store {
	return &Store{
		data:   newDataset(),
		faults: make(map[string]error),
	}
}

// FailOn makes the next call of op return err. Used to exercise rollback paths.
func (s *Store) FailOn(op string, err error) {
	s.faultMu.Lock()
	defer s.faultMu.Unlock()
	s.faults[op] = err
}

func (s *Store) fault(op string) error {
	s.faultMu.Lock()
	defer s.faultMu.Unlock()
	err, ok := s.faults[op]
	if !ok {
		return nil
	}
	delete(s.faults, op)
	return err
}

// Rides returns the ride repository.
func (s *Store) Rides() repository.RideRepository { return &rideRepo{s: s} }

// Matches returns the match repository.
func (s *Store) Matches() repository.MatchRepository { return &matchRepo{s: s} }

// Users returns the user repository.
func (s *Store) Users() repository.UserRepository { return &userRepo{s: s} }

// RunInTx runs fn against a private copy of the data and publishes the copy
// only when fn and the commit succeed.
func (s *Store) RunInTx(ctx context.Context, fn repository.TxFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	work := s.data.clone()
	if err := fn(ctx, &tx{s: s, data: work}); err != nil {
		return err
	}
	if err := s.fault(OpCommit); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.data = work
	return nil
}

// Close is a no-op.
func (s *Store) Close() error { return nil }

// view runs fn against the transaction's dataset, or the live one under lock.
func (s *Store) view(txData *dataset, op string, fn func(d *dataset) error) error {
	if err := s.fault(op); err != nil {
		return err
	}
	if txData != nil {
		return fn(txData)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.data)
}

type tx struct {
	s    *Store
	data *dataset
}

func (t *tx) Rides() repository.RideRepository    { return &rideRepo{s: t.s, tx: t.data} }
func (t *tx) Matches() repository.MatchRepository { return &matchRepo{s: t.s, tx: t.data} }
