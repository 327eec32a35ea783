package repository

import "context"

// Tx exposes the repositories bound to one store transaction.
// Reads through a Tx observe the transaction's own writes.
type Tx interface {
	Rides() RideRepository
	Matches() MatchRepository
}

// TxFunc is a unit of work run inside a transaction.
type TxFunc func(ctx context.Context, tx Tx) error

// Store is the record store the services run against.
type Store interface {
	Rides() RideRepository
	Matches() MatchRepository
	Users() UserRepository

	// RunInTx runs fn atomically: either every write fn makes is applied or none is.
	// fn may be invoked more than once when the backend retries on contention,
	// so it must not have side effects outside tx.
	RunInTx(ctx context.Context, fn TxFunc) error

	Close() error
}
