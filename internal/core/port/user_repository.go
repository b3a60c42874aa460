package port

import (
	"context"
	"errors"

	"pgstarter/internal/core/domain"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")
)

// UserRepository is the persistence port for users. Implementations share
// the single bootstrapped connection handle and must be safe for concurrent
// use.
type UserRepository interface {
	// Create inserts a user. A duplicate email yields ErrEmailTaken.
	Create(ctx context.Context, user *domain.User) error
	// FindAll returns every user ordered by creation time.
	FindAll(ctx context.Context) ([]domain.User, error)
	// FindByID returns ErrUserNotFound when no row matches.
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// Update writes name, email and active flag of an existing user.
	Update(ctx context.Context, user *domain.User) error
	// Delete removes a user by id.
	Delete(ctx context.Context, id string) error
}
