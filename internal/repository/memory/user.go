package memory

import (
	"context"
	"sort"

	"carpool/internal/domain"
	"carpool/internal/repository"
)

type userRepo struct {
	s *Store
}

func (r *userRepo) Create(ctx context.Context, user *domain.User) error {
	return r.s.view(nil, OpUserCreate, func(d *dataset) error {
		for _, u := range d.users {
			if u.Phone == user.Phone {
				return repository.ErrPreconditionFailed
			}
		}
		c := *user
		d.users[user.ID] = &c
		return nil
	})
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	var out *domain.User
	err := r.s.view(nil, "", func(d *dataset) error {
		u, ok := d.users[id]
		if !ok {
			return repository.ErrNotFound
		}
		c := *u
		out = &c
		return nil
	})
	return out, err
}

func (r *userRepo) GetByPhone(ctx context.Context, phone string) (*domain.User, error) {
	var out *domain.User
	err := r.s.view(nil, "", func(d *dataset) error {
		for _, u := range d.users {
			if u.Phone == phone {
				c := *u
				out = &c
				return nil
			}
		}
		return repository.ErrNotFound
	})
	return out, err
}

func (r *userRepo) GetAll(ctx context.Context) ([]*domain.User, error) {
	var out []*domain.User
	err := r.s.view(nil, "", func(d *dataset) error {
		for _, u := range d.users {
			c := *u
			out = append(out, &c)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, err
}

func (r *userRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.s.view(nil, "", func(d *dataset) error {
		n = len(d.users)
		return nil
	})
	return n, err
}
