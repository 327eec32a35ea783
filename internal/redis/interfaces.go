package redis

import (
	"context"
	"time"
)

// LockStoreInterface defines the interface for distributed locking.
type LockStoreInterface interface {
	AcquirePairLock(ctx context.Context, rideA, rideB string, ttl time.Duration) (bool, error)
	ReleasePairLock(ctx context.Context, rideA, rideB string) error
}

// IdempotencyStoreInterface defines the interface for replaying responses.
type IdempotencyStoreInterface interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
}

// Ensure concrete types implement interfaces.
var (
	_ LockStoreInterface        = (*LockStore)(nil)
	_ IdempotencyStoreInterface = (*IdempotencyStore)(nil)
)
