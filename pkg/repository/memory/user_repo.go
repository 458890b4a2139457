package memory

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/artem13815/recruitflow/pkg/auth"
)

// UserRepo реализует auth.UserRepository в памяти.
type UserRepo struct {
	s *Store
}

func (r *UserRepo) Create(_ context.Context, user auth.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, user.Email) {
			return auth.ErrUserAlreadyExists
		}
	}
	r.s.users[user.ID] = user
	return nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (auth.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return auth.User{}, auth.ErrNotFound
}

func (r *UserRepo) GetByID(_ context.Context, id uuid.UUID) (auth.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return auth.User{}, auth.ErrNotFound
	}
	return u, nil
}

func (r *UserRepo) Update(_ context.Context, user auth.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[user.ID]; !ok {
		return auth.ErrNotFound
	}
	r.s.users[user.ID] = user
	return nil
}
