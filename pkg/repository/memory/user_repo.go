package memory

import (
	"context"
	"sync"

	"github.com/artem13815/buildings/pkg/auth"
)

// UserRepository implements auth.UserRepository in process memory.
type UserRepository struct {
	mu    sync.RWMutex
	users map[string]auth.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]auth.User)}
}

// Create inserts user unless its email is already taken. The existence check
// and the insert happen under one lock.
func (r *UserRepository) Create(ctx context.Context, user auth.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	key := auth.NormalizeEmail(user.Email)
	if key == "" {
		return auth.ErrMissingCredentials
	}
	user.Email = key

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[key]; ok {
		return auth.ErrUserAlreadyExists
	}
	r.users[key] = user
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (auth.User, error) {
	if err := ctx.Err(); err != nil {
		return auth.User{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[auth.NormalizeEmail(email)]
	if !ok {
		return auth.User{}, auth.ErrNotFound
	}
	return user, nil
}

func (r *UserRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users)
}
