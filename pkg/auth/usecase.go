package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
)

// AuthUseCase describes authentication/registration behavior.
type AuthUseCase interface {
	Register(ctx context.Context, email, password, displayName string) (User, error)
	Login(ctx context.Context, email, password string) (AuthResult, error)
	Seed(ctx context.Context, accounts ...SeedAccount) error
}

type AuthResult struct {
	User  User
	Token string
}

// SeedAccount is a user created at startup.
type SeedAccount struct {
	Email       string
	Password    string
	DisplayName string
	Role        string
}

// DemoAccounts are the development accounts created when seeding is enabled.
var DemoAccounts = []SeedAccount{
	{Email: "admin@example.com", Password: "admin123", DisplayName: "Admin User", Role: RoleAdmin},
	{Email: "user@example.com", Password: "user123", DisplayName: "Regular User", Role: RoleUser},
}

type authService struct {
	repo   UserRepository
	hasher PasswordHasher
	tokens TokenIssuer
	now    func() time.Time
	log    *slog.Logger
}

type Option func(*authService)

// WithClock overrides the time source used for issued tokens.
func WithClock(now func() time.Time) Option {
	return func(s *authService) { s.now = now }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *authService) { s.log = l }
}

// NewAuthService returns default implementation of AuthUseCase.
func NewAuthService(repo UserRepository, hasher PasswordHasher, tokens TokenIssuer, opts ...Option) AuthUseCase {
	s := &authService{
		repo:   repo,
		hasher: hasher,
		tokens: tokens,
		now:    time.Now,
		log:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *authService) Register(ctx context.Context, email, password, displayName string) (User, error) {
	if strings.TrimSpace(email) == "" || password == "" || strings.TrimSpace(displayName) == "" {
		return User{}, ErrMissingCredentials
	}
	user, err := s.create(ctx, email, password, displayName, RoleUser)
	if err != nil {
		return User{}, err
	}
	s.log.InfoContext(ctx, "user registered", "email", user.Email)
	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (AuthResult, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return AuthResult{}, ErrMissingCredentials
	}
	user, err := s.repo.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return AuthResult{}, err
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		s.log.InfoContext(ctx, "login rejected", "email", user.Email, "reason", "invalid password")
		return AuthResult{}, ErrInvalidPassword
	}
	token, err := s.tokens.Issue(user.Email, user.Role, s.now())
	if err != nil {
		return AuthResult{}, fmt.Errorf("issue token: %w", err)
	}
	s.log.InfoContext(ctx, "user logged in", "email", user.Email, "role", user.Role)
	return AuthResult{User: user, Token: token}, nil
}

// Seed creates the given accounts, skipping those that already exist.
func (s *authService) Seed(ctx context.Context, accounts ...SeedAccount) error {
	for _, a := range accounts {
		role := a.Role
		if role == "" {
			role = RoleUser
		}
		_, err := s.create(ctx, a.Email, a.Password, a.DisplayName, role)
		if errors.Is(err, ErrUserAlreadyExists) {
			continue
		}
		if err != nil {
			return fmt.Errorf("seed %s: %w", a.Email, err)
		}
		s.log.DebugContext(ctx, "seeded user", "email", NormalizeEmail(a.Email), "role", role)
	}
	return nil
}

func (s *authService) create(ctx context.Context, email, password, displayName, role string) (User, error) {
	key := NormalizeEmail(email)
	if key == "" {
		return User{}, ErrMissingCredentials
	}
	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}
	user := User{
		ID:           uuid.New(),
		Email:        key,
		PasswordHash: passwordHash,
		DisplayName:  strings.TrimSpace(displayName),
		Role:         role,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return User{}, err
	}
	return user, nil
}
