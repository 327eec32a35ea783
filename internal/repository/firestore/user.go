package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"

	"carpool/internal/domain"
	"carpool/internal/repository"
)

type userRepo struct {
	s *Store
}

// Create stores the user, rejecting a phone number that is already registered.
func (r *userRepo) Create(ctx context.Context, user *domain.User) error {
	col := r.s.client.Collection(usersCollection)
	err := r.s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		existing, err := tx.Documents(col.Where("phone", "==", user.Phone).Limit(1)).GetAll()
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return fmt.Errorf("%w: phone already registered", repository.ErrPreconditionFailed)
		}
		return tx.Create(col.Doc(user.ID), userDoc{
			Name:      user.Name,
			Email:     user.Email,
			Phone:     user.Phone,
			CreatedAt: user.CreatedAt,
		})
	})
	return translate(err)
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	snap, err := r.s.client.Collection(usersCollection).Doc(id).Get(ctx)
	if err != nil {
		return nil, translate(err)
	}
	return toUser(snap)
}

func (r *userRepo) GetByPhone(ctx context.Context, phone string) (*domain.User, error) {
	snaps, err := r.s.client.Collection(usersCollection).Where("phone", "==", phone).Limit(1).Documents(ctx).GetAll()
	if err != nil {
		return nil, translate(err)
	}
	if len(snaps) == 0 {
		return nil, repository.ErrNotFound
	}
	return toUser(snaps[0])
}

func (r *userRepo) GetAll(ctx context.Context) ([]*domain.User, error) {
	snaps, err := r.s.client.Collection(usersCollection).OrderBy("createdAt", firestore.Desc).Documents(ctx).GetAll()
	if err != nil {
		return nil, translate(err)
	}
	users := make([]*domain.User, 0, len(snaps))
	for _, snap := range snaps {
		u, err := toUser(snap)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}

func (r *userRepo) Count(ctx context.Context) (int, error) {
	return count(ctx, r.s.client.Collection(usersCollection).Query)
}

func toUser(snap *firestore.DocumentSnapshot) (*domain.User, error) {
	var doc userDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, err
	}
	return &domain.User{
		ID:        snap.Ref.ID,
		Name:      doc.Name,
		Email:     doc.Email,
		Phone:     doc.Phone,
		CreatedAt: doc.CreatedAt,
	}, nil
}
