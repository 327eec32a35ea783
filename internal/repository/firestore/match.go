package firestore

import (
	"context"
	"time"

	"carpool/internal/domain"
	"carpool/internal/repository"
)

type matchRepo struct {
	s   *Store
	uow *unitOfWork
}

func (r *matchRepo) do(ctx context.Context, fn func(u *unitOfWork) error) error {
	if r.uow != nil {
		return fn(r.uow)
	}
	return r.s.run(ctx, func(_ context.Context, u *unitOfWork) error { return fn(u) })
}

func (r *matchRepo) Create(ctx context.Context, match *domain.Match) error {
	if r.uow != nil {
		r.uow.putMatch(match.Clone(), true)
		return nil
	}
	_, err := r.s.client.Collection(matchesCollection).Doc(match.ID).Create(ctx, toMatchDoc(match))
	return translate(err)
}

func (r *matchRepo) GetByID(ctx context.Context, id string) (*domain.Match, error) {
	if r.uow != nil {
		m, err := r.uow.match(id)
		if err != nil {
			return nil, err
		}
		return m.Clone(), nil
	}

	snap, err := r.s.client.Collection(matchesCollection).Doc(id).Get(ctx)
	if err != nil {
		return nil, translate(err)
	}
	var doc matchDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, err
	}
	return doc.toDomain(snap.Ref.ID), nil
}

func (r *matchRepo) Confirm(ctx context.Context, id, userID string) (*domain.Match, error) {
	var out *domain.Match
	err := r.do(ctx, func(u *unitOfWork) error {
		m, err := u.match(id)
		if err != nil {
			return err
		}
		if !m.HasParticipant(userID) {
			return repository.ErrPreconditionFailed
		}
		m.Confirmations[userID] = true
		m.UpdatedAt = time.Now().UTC()
		u.putMatch(m, false)
		out = m.Clone()
		return nil
	})
	return out, err
}

func (r *matchRepo) UpdateStatus(ctx context.Context, id string, from, to domain.MatchStatus) error {
	return r.do(ctx, func(u *unitOfWork) error {
		m, err := u.match(id)
		if err != nil {
			return err
		}
		if m.Status != from {
			return repository.ErrPreconditionFailed
		}
		m.Status = to
		m.UpdatedAt = time.Now().UTC()
		u.putMatch(m, false)
		return nil
	})
}

func (r *matchRepo) Count(ctx context.Context) (int, error) {
	return count(ctx, r.s.client.Collection(matchesCollection).Query)
}
