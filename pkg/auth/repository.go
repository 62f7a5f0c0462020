package auth

import (
	"context"
	"errors"
)

// Common errors used by repository/use cases
var (
	ErrNotFound           = errors.New("not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidPassword    = errors.New("invalid password")
	ErrMissingCredentials = errors.New("missing credentials")
	ErrEmptyPassword      = errors.New("password must not be empty")
)

// UserRepository abstracts persistence concerns from the domain layer.
// Create must check for an existing email and insert as one atomic step.
type UserRepository interface {
	Create(ctx context.Context, user User) error
	GetByEmail(ctx context.Context, email string) (User, error)
}
