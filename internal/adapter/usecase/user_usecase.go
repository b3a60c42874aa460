package usecase

import (
	"context"

	"pgstarter/internal/core/domain"
	"pgstarter/internal/core/port"
)

// UserUseCase implements port.UserUseCase as a direct pass-through to the
// repository; the only logic it owns is applying partial updates.
type UserUseCase struct {
	repo port.UserRepository
}

// NewUserUseCase creates a usecase over repo.
func NewUserUseCase(repo port.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// Create stores a new active user.
func (u *UserUseCase) Create(ctx context.Context, in port.CreateUserInput) (*domain.User, error) {
	user := &domain.User{Name: in.Name, Email: in.Email, IsActive: true}
	if err := u.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// FindAll lists every user.
func (u *UserUseCase) FindAll(ctx context.Context) ([]domain.User, error) {
	return u.repo.FindAll(ctx)
}

// FindOne returns a single user or port.ErrUserNotFound.
func (u *UserUseCase) FindOne(ctx context.Context, id string) (*domain.User, error) {
	return u.repo.FindByID(ctx, id)
}

// Update loads the user, applies the set fields of in and saves it.
func (u *UserUseCase) Update(ctx context.Context, id string, in port.UpdateUserInput) (*domain.User, error) {
	user, err := u.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Email != nil {
		user.Email = *in.Email
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}
	if err = u.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Remove deletes the user with id.
func (u *UserUseCase) Remove(ctx context.Context, id string) error {
	return u.repo.Delete(ctx, id)
}
