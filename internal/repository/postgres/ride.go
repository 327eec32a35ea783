package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/lib/pq"

	"carpool/internal/domain"
	"carpool/internal/repository"
)

const rideColumns = `id, user_id, pickup_lat, pickup_lng, dropoff_lat, dropoff_lng, departure_time,
	seats_available, max_fare, preference, vehicle_info, status, matched_with, created_at, updated_at`

// RideRepository is a PostgreSQL implementation of repository.RideRepository.
type RideRepository struct {
	q Querier
	// lock makes point reads take a row lock; set for transaction-scoped repositories.
	lock bool
}

// NewRideRepository creates a new PostgreSQL ride repository.
func NewRideRepository(db *sql.DB) *RideRepository {
	return &RideRepository{q: db}
}

// NewRideRepositoryWithTx creates a ride repository using a transaction.
// Rows read by GetByID stay locked until the transaction ends.
func NewRideRepositoryWithTx(tx *sql.Tx) *RideRepository {
	return &RideRepository{q: tx, lock: true}
}

// Create persists a new ride.
func (r *RideRepository) Create(ctx context.Context, ride *domain.RideRequest) error {
	query := `
		INSERT INTO rides (` + rideColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	var vehicleInfo []byte
	if ride.VehicleInfo != nil {
		b, err := json.Marshal(ride.VehicleInfo)
		if err != nil {
			return err
		}
		vehicleInfo = b
	}

	matchedWith := ride.MatchedWith
	if matchedWith == nil {
		matchedWith = []string{}
	}

	_, err := r.q.ExecContext(ctx, query,
		ride.ID,
		ride.UserID,
		ride.Pickup.Lat,
		ride.Pickup.Lng,
		ride.Dropoff.Lat,
		ride.Dropoff.Lng,
		ride.DepartureTime,
		ride.SeatsAvailable,
		ride.MaxFare,
		ride.Preference,
		vehicleInfo,
		ride.Status,
		pq.Array(matchedWith),
		ride.CreatedAt,
		ride.UpdatedAt,
	)
	return translate(err)
}

// GetByID retrieves a ride by ID.
func (r *RideRepository) GetByID(ctx context.Context, id string) (*domain.RideRequest, error) {
	query := `SELECT ` + rideColumns + ` FROM rides WHERE id = $1`
	if r.lock {
		query += ` FOR UPDATE`
	}

	ride, err := scanRide(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, translate(err)
	}
	return ride, nil
}

// Find returns the rides matching q, ordered by creation time then id.
func (r *RideRepository) Find(ctx context.Context, q repository.RideQuery) ([]*domain.RideRequest, error) {
	order := `created_at ASC, id ASC`
	if q.Order == repository.NewestFirst {
		order = `created_at DESC, id DESC`
	}
	query := `
		SELECT ` + rideColumns + `
		FROM rides
		WHERE ($1::text = '' OR user_id = $1) AND ($2::text = '' OR status = $2)
		ORDER BY ` + order + `
		LIMIT NULLIF($3::int, 0)
	`

	rows, err := r.q.QueryContext(ctx, query, q.UserID, string(q.Status), q.Limit)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	var rides []*domain.RideRequest
	for rows.Next() {
		ride, err := scanRide(rows)
		if err != nil {
			return nil, translate(err)
		}
		rides = append(rides, ride)
	}
	return rides, translate(rows.Err())
}

// Count returns the number of rides matching q.
func (r *RideRepository) Count(ctx context.Context, q repository.RideQuery) (int, error) {
	query := `SELECT COUNT(*) FROM rides WHERE ($1::text = '' OR user_id = $1) AND ($2::text = '' OR status = $2)`

	var n int
	if err := r.q.QueryRowContext(ctx, query, q.UserID, string(q.Status)).Scan(&n); err != nil {
		return 0, translate(err)
	}
	return n, nil
}

// MarkMatched moves a pending ride to matched and records counterpartID.
func (r *RideRepository) MarkMatched(ctx context.Context, id, counterpartID string) error {
	query := `
		UPDATE rides
		SET status = $3, matched_with = array_append(matched_with, $2), updated_at = now()
		WHERE id = $1 AND status = $4 AND NOT ($2 = ANY(matched_with))
	`

	result, err := r.q.ExecContext(ctx, query, id, counterpartID, domain.RideStatusMatched, domain.RideStatusPending)
	if err != nil {
		return translate(err)
	}
	return r.checkAffected(ctx, result, id)
}

// UpdateStatus moves a ride from one status to another.
func (r *RideRepository) UpdateStatus(ctx context.Context, id string, from, to domain.RideStatus) error {
	if !from.CanTransition(to) {
		return repository.ErrPreconditionFailed
	}
	query := `UPDATE rides SET status = $3, updated_at = now() WHERE id = $1 AND status = $2`

	result, err := r.q.ExecContext(ctx, query, id, from, to)
	if err != nil {
		return translate(err)
	}
	return r.checkAffected(ctx, result, id)
}

// checkAffected tells a missing row apart from a failed condition.
func (r *RideRepository) checkAffected(ctx context.Context, result sql.Result, id string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return translate(err)
	}
	if rowsAffected > 0 {
		return nil
	}

	var exists bool
	if err := r.q.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM rides WHERE id = $1)`, id).Scan(&exists); err != nil {
		return translate(err)
	}
	if !exists {
		return repository.ErrNotFound
	}
	return repository.ErrPreconditionFailed
}

func scanRide(row rowScanner) (*domain.RideRequest, error) {
	var ride domain.RideRequest
	var vehicleInfo []byte
	var matchedWith pq.StringArray

	err := row.Scan(
		&ride.ID,
		&ride.UserID,
		&ride.Pickup.Lat,
		&ride.Pickup.Lng,
		&ride.Dropoff.Lat,
		&ride.Dropoff.Lng,
		&ride.DepartureTime,
		&ride.SeatsAvailable,
		&ride.MaxFare,
		&ride.Preference,
		&vehicleInfo,
		&ride.Status,
		&matchedWith,
		&ride.CreatedAt,
		&ride.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(vehicleInfo) > 0 {
		var v domain.VehicleInfo
		if err := json.Unmarshal(vehicleInfo, &v); err != nil {
			return nil, err
		}
		ride.VehicleInfo = &v
	}
	ride.MatchedWith = []string(matchedWith)
	if ride.MatchedWith == nil {
		ride.MatchedWith = []string{}
	}
	return &ride, nil
}
