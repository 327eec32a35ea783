package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"carpool/internal/domain"
	"carpool/internal/repository"
)

const matchColumns = `id, user1_id, ride1_id, user2_id, ride2_id, status, confirmations, created_at, updated_at`

// MatchRepository is a PostgreSQL implementation of repository.MatchRepository.
type MatchRepository struct {
	q    Querier
	lock bool
}

// NewMatchRepository creates a new PostgreSQL match repository.
func NewMatchRepository(db *sql.DB) *MatchRepository {
	return &MatchRepository{q: db}
}

// NewMatchRepositoryWithTx creates a match repository using a transaction.
func NewMatchRepositoryWithTx(tx *sql.Tx) *MatchRepository {
	return &MatchRepository{q: tx, lock: true}
}

// Create persists a new match. A second match for the same ride pair violates
// matches_ride_pair_idx and surfaces as repository.ErrPreconditionFailed.
func (r *MatchRepository) Create(ctx context.Context, match *domain.Match) error {
	query := `INSERT INTO matches (` + matchColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	confirmations, err := json.Marshal(match.Confirmations)
	if err != nil {
		return err
	}

	_, err = r.q.ExecContext(ctx, query,
		match.ID,
		match.User1ID,
		match.Ride1ID,
		match.User2ID,
		match.Ride2ID,
		match.Status,
		confirmations,
		match.CreatedAt,
		match.UpdatedAt,
	)
	return translate(err)
}

// GetByID retrieves a match by ID.
func (r *MatchRepository) GetByID(ctx context.Context, id string) (*domain.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1`
	if r.lock {
		query += ` FOR UPDATE`
	}

	match, err := scanMatch(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, translate(err)
	}
	return match, nil
}

// Confirm flips userID's confirmation to true if userID is already a key.
func (r *MatchRepository) Confirm(ctx context.Context, id, userID string) (*domain.Match, error) {
	query := `
		UPDATE matches
		SET confirmations = jsonb_set(confirmations, ARRAY[$2::text], 'true'::jsonb), updated_at = now()
		WHERE id = $1 AND jsonb_exists(confirmations, $2::text)
		RETURNING ` + matchColumns

	match, err := scanMatch(r.q.QueryRowContext(ctx, query, id, userID))
	if err == nil {
		return match, nil
	}
	if err != sql.ErrNoRows {
		return nil, translate(err)
	}
	if err := r.checkExists(ctx, id); err != nil {
		return nil, err
	}
	return nil, repository.ErrPreconditionFailed
}

// UpdateStatus moves a match from one status to another.
func (r *MatchRepository) UpdateStatus(ctx context.Context, id string, from, to domain.MatchStatus) error {
	query := `UPDATE matches SET status = $3, updated_at = now() WHERE id = $1 AND status = $2`

	result, err := r.q.ExecContext(ctx, query, id, from, to)
	if err != nil {
		return translate(err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return translate(err)
	}
	if rowsAffected > 0 {
		return nil
	}
	if err := r.checkExists(ctx, id); err != nil {
		return err
	}
	return repository.ErrPreconditionFailed
}

// Count returns the number of matches.
func (r *MatchRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM matches`).Scan(&n); err != nil {
		return 0, translate(err)
	}
	return n, nil
}

func (r *MatchRepository) checkExists(ctx context.Context, id string) error {
	var exists bool
	if err := r.q.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM matches WHERE id = $1)`, id).Scan(&exists); err != nil {
		return translate(err)
	}
	if !exists {
		return repository.ErrNotFound
	}
	return nil
}

func scanMatch(row rowScanner) (*domain.Match, error) {
	var match domain.Match
	var confirmations []byte

	err := row.Scan(
		&match.ID,
		&match.User1ID,
		&match.Ride1ID,
		&match.User2ID,
		&match.Ride2ID,
		&match.Status,
		&confirmations,
		&match.CreatedAt,
		&match.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(confirmations, &match.Confirmations); err != nil {
		return nil, err
	}
	return &match, nil
}
