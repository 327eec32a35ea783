package service_test

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"carpool/internal/domain"
	"carpool/internal/events"
	"carpool/internal/geo"
	"carpool/internal/logging"
	"carpool/internal/repository/memory"
)

// ──────────────────────────────────────────────
// MOCK LOCK STORE
// ──────────────────────────────────────────────

// MockLockStore is a mock implementation of the Redis pair lock.
type MockLockStore struct {
	mu    sync.Mutex
	locks map[string]time.Time

	// Counters
	AcquireCallCount int32
	ReleaseCallCount int32

	// Error injection
	AcquireError error
}

// NewMockLockStore creates a new mock lock store.
func NewMockLockStore() *MockLockStore {
	return &MockLockStore{
		locks: make(map[string]time.Time),
	}
}

func pairKey(a, b string) string {
	ids := []string{a, b}
	sort.Strings(ids)
	return "lock:ridepair:" + ids[0] + ":" + ids[1]
}

func (m *MockLockStore) AcquirePairLock(ctx context.Context, rideA, rideB string, ttl time.Duration) (bool, error) {
	atomic.AddInt32(&m.AcquireCallCount, 1)
	if m.AcquireError != nil {
		return false, m.AcquireError
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	key := pairKey(rideA, rideB)
	if expiry, exists := m.locks[key]; exists && time.Now().Before(expiry) {
		return false, nil // Lock still held.
	}
	m.locks[key] = time.Now().Add(ttl)
	return true, nil
}

func (m *MockLockStore) ReleasePairLock(ctx context.Context, rideA, rideB string) error {
	atomic.AddInt32(&m.ReleaseCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.locks, pairKey(rideA, rideB))
	return nil
}

// Hold marks a pair as locked by someone else.
func (m *MockLockStore) Hold(rideA, rideB string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.locks[pairKey(rideA, rideB)] = time.Now().Add(time.Minute)
}

// IsLocked checks if a pair is locked (for test assertions).
func (m *MockLockStore) IsLocked(rideA, rideB string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	expiry, exists := m.locks[pairKey(rideA, rideB)]
	return exists && time.Now().Before(expiry)
}

// ──────────────────────────────────────────────
// MOCK PUBLISHER
// ──────────────────────────────────────────────

// MockPublisher records published events.
type MockPublisher struct {
	mu     sync.Mutex
	events []events.Event

	// Error injection
	PublishError error
}

func (m *MockPublisher) Publish(ctx context.Context, e events.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.PublishError != nil {
		return m.PublishError
	}
	m.events = append(m.events, e)
	return nil
}

func (m *MockPublisher) Close() error { return nil }

// Count returns how many events of type t were published.
func (m *MockPublisher) Count(t events.Type) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.events {
		if e.Type == t {
			n++
		}
	}
	return n
}

// ──────────────────────────────────────────────
// FIXTURES
// ──────────────────────────────────────────────

var t0 = time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

func testLogger() *slog.Logger { return logging.Discard() }

// seedRide stores a pending ride owned by userID, created offset after t0.
func seedRide(t *testing.T, store *memory.Store, id, userID string, offset time.Duration) *domain.RideRequest {
	t.Helper()
	ride := &domain.RideRequest{
		ID:            id,
		UserID:        userID,
		Pickup:        geo.Point{Lat: 1.0, Lng: 103.0},
		Dropoff:       geo.Point{Lat: 1.05, Lng: 103.05},
		DepartureTime: t0,
		Preference:    domain.PreferenceAny,
		Status:        domain.RideStatusPending,
		MatchedWith:   []string{},
		CreatedAt:     t0.Add(offset),
		UpdatedAt:     t0.Add(offset),
	}
	if err := store.Rides().Create(context.Background(), ride); err != nil {
		t.Fatalf("seed ride %s: %v", id, err)
	}
	return ride
}

func getRide(t *testing.T, store *memory.Store, id string) *domain.RideRequest {
	t.Helper()
	ride, err := store.Rides().GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("get ride %s: %v", id, err)
	}
	return ride
}

type ctxKey struct{}

// MockLogHandler keeps the context value under ctxKey for every record it sees.
type MockLogHandler struct {
	mu      sync.Mutex
	Records []string
}

func (h *MockLogHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *MockLogHandler) Handle(ctx context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	tag, _ := ctx.Value(ctxKey{}).(string)
	h.Records = append(h.Records, r.Message+"|"+tag)
	return nil
}

func (h *MockLogHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *MockLogHandler) WithGroup(string) slog.Handler      { return h }
