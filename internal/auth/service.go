package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/mrlokans/gatekeeper/internal/database/users"
	"github.com/mrlokans/gatekeeper/internal/entities"
)

// UserDirectory looks up and creates users. Lookups return users.ErrNotFound
// for a missing user; any other error means the lookup itself failed.
type UserDirectory interface {
	FindByIdentifier(ctx context.Context, email string) (*entities.User, error)
	GetByID(ctx context.Context, id string) (*entities.User, error)
	Create(ctx context.Context, email, hashedPassword string) (*entities.User, error)
}

var _ UserDirectory = (*users.Repository)(nil)

// Service handles registration and credential checks.
type Service struct {
	directory UserDirectory
	hasher    *Hasher
}

// NewService creates a new authentication service.
func NewService(directory UserDirectory, hasher *Hasher) *Service {
	return &Service{
		directory: directory,
		hasher:    hasher,
	}
}

// Directory returns the user directory the service reads from.
func (s *Service) Directory() UserDirectory {
	return s.directory
}

// RegisterUser creates a user with a hashed password.
func (s *Service) RegisterUser(ctx context.Context, email, password string) (*entities.User, error) {
	if email == "" {
		return nil, ErrEmailRequired
	}
	if password == "" {
		return nil, ErrPasswordRequired
	}

	_, err := s.directory.FindByIdentifier(ctx, email)
	if err == nil {
		return nil, fmt.Errorf("%w: User %s already exists", ErrAlreadyExists, email)
	}
	if !errors.Is(err, users.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	hash, err := s.hasher.Hash(ctx, password)
	if err != nil {
		return nil, err
	}

	user, err := s.directory.Create(ctx, email, hash)
	if err != nil {
		if errors.Is(err, users.ErrAlreadyExists) {
			return nil, fmt.Errorf("%w: User %s already exists", ErrAlreadyExists, email)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Authenticate returns the user owning email if password matches.
// ErrUserNotFound and ErrInvalidSecret report the two expected failures.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*entities.User, error) {
	user, err := s.directory.FindByIdentifier(ctx, email)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := s.CheckPassword(ctx, user, password); err != nil {
		return nil, err
	}
	return user, nil
}

// CheckPassword compares password with the user's stored hash.
func (s *Service) CheckPassword(ctx context.Context, user *entities.User, password string) error {
	return s.hasher.Check(ctx, password, user.HashedPassword)
}
