package memory

import (
	"context"
	"time"

	"carpool/internal/domain"
	"carpool/internal/repository"
)

type matchRepo struct {
	s  *Store
	tx *dataset
}

func (r *matchRepo) Create(ctx context.Context, match *domain.Match) error {
	return r.s.view(r.tx, OpMatchCreate, func(d *dataset) error {
		if _, ok := d.matches[match.ID]; ok {
			return repository.ErrPreconditionFailed
		}
		d.matches[match.ID] = match.Clone()
		return nil
	})
}

func (r *matchRepo) GetByID(ctx context.Context, id string) (*domain.Match, error) {
	var out *domain.Match
	err := r.s.view(r.tx, OpMatchGet, func(d *dataset) error {
		m, ok := d.matches[id]
		if !ok {
			return repository.ErrNotFound
		}
		out = m.Clone()
		return nil
	})
	return out, err
}

func (r *matchRepo) Confirm(ctx context.Context, id, userID string) (*domain.Match, error) {
	var out *domain.Match
	err := r.s.view(r.tx, OpMatchConfirm, func(d *dataset) error {
		m, ok := d.matches[id]
		if !ok {
			return repository.ErrNotFound
		}
		if !m.HasParticipant(userID) {
			return repository.ErrPreconditionFailed
		}
		m.Confirmations[userID] = true
		m.UpdatedAt = time.Now().UTC()
		out = m.Clone()
		return nil
	})
	return out, err
}

func (r *matchRepo) UpdateStatus(ctx context.Context, id string, from, to domain.MatchStatus) error {
	return r.s.view(r.tx, OpMatchUpdateStatus, func(d *dataset) error {
		m, ok := d.matches[id]
		if !ok {
			return repository.ErrNotFound
		}
		if m.Status != from {
			return repository.ErrPreconditionFailed
		}
		m.Status = to
		m.UpdatedAt = time.Now().UTC()
		return nil
	})
}

func (r *matchRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.s.view(r.tx, "", func(d *dataset) error {
		n = len(d.matches)
		return nil
	})
	return n, err
}
