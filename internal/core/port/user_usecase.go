package port

import (
	"context"

	"pgstarter/internal/core/domain"
)

// UserUseCase is the inbound port used by the HTTP controller. It is a thin
// pass-through to UserRepository.
type UserUseCase interface {
	Create(ctx context.Context, in CreateUserInput) (*domain.User, error)
	FindAll(ctx context.Context) ([]domain.User, error)
	FindOne(ctx context.Context, id string) (*domain.User, error)
	// Update applies the non-nil fields of in to an existing user.
	Update(ctx context.Context, id string, in UpdateUserInput) (*domain.User, error)
	Remove(ctx context.Context, id string) error
}

// CreateUserInput is the payload accepted when creating a user.
type CreateUserInput struct {
	Name  string `json:"name" validate:"required,max=255"`
	Email string `json:"email" validate:"required,email,max=255"`
}

// UpdateUserInput is a partial update; nil fields are left untouched.
type UpdateUserInput struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email,max=255"`
	IsActive *bool   `json:"is_active,omitempty"`
}
