package postgres

import (
	"context"
	"database/sql"

	"carpool/internal/repository"
)

// Store is the PostgreSQL record store. Transactions lock the rows they read,
// so concurrent creates and confirmations on the same records serialize.
type Store struct {
	db *sql.DB
}

var _ repository.Store = (*Store)(nil)

// NewStore wraps an open database handle.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Rides() repository.RideRepository    { return NewRideRepository(s.db) }
func (s *Store) Matches() repository.MatchRepository { return NewMatchRepository(s.db) }
func (s *Store) Users() repository.UserRepository    { return NewUserRepository(s.db) }

// RunInTx runs fn inside a database transaction and commits it if fn succeeds.
func (s *Store) RunInTx(ctx context.Context, fn repository.TxFunc) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return translate(err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(ctx, &txRepos{tx: tx}); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return translate(err)
	}
	return nil
}

// Close closes the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

type txRepos struct {
	tx *sql.Tx
}

func (t *txRepos) Rides() repository.RideRepository    { return NewRideRepositoryWithTx(t.tx) }
func (t *txRepos) Matches() repository.MatchRepository { return NewMatchRepositoryWithTx(t.tx) }
