package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// LockStore handles distributed locking in Redis.
type LockStore struct {
	client *redis.Client
}

// NewLockStore creates a new LockStore.
func NewLockStore(client *redis.Client) *LockStore {
	return &LockStore{client: client}
}

// pairKey names the lock of an unordered ride pair.
func pairKey(rideA, rideB string) string {
	if rideB < rideA {
		rideA, rideB = rideB, rideA
	}
	return fmt.Sprintf("lock:ridepair:%s:%s", rideA, rideB)
}

// AcquirePairLock attempts to lock the pair (rideA, rideB) in either order.
// Returns true if the lock was acquired, false if already held.
func (s *LockStore) AcquirePairLock(ctx context.Context, rideA, rideB string, ttl time.Duration) (bool, error) {
	ok, err := s.client.SetNX(ctx, pairKey(rideA, rideB), "1", ttl).Result()
	if err != nil {
		return false, err
	}
	return ok, nil
}

// ReleasePairLock releases the lock for the pair.
func (s *LockStore) ReleasePairLock(ctx context.Context, rideA, rideB string) error {
	return s.client.Del(ctx, pairKey(rideA, rideB)).Err()
}
