package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"pgstarter/internal/core/domain"
	"pgstarter/internal/core/port"
)

// UserRepository implements port.UserRepository on the shared gorm handle.
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a repository bound to db.
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts user, assigning its id when empty.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	err := r.db.WithContext(ctx).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return port.ErrEmailTaken
	}
	return err
}

// FindAll returns every user, oldest first.
func (r *UserRepository) FindAll(ctx context.Context) ([]domain.User, error) {
	users := []domain.User{}
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// FindByID returns the user with id.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, port.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Update persists name, email and active flag of user.
func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	res := r.db.WithContext(ctx).
		Model(user).
		Select("name", "email", "is_active", "updated_at").
		Updates(user)
	switch {
	case errors.Is(res.Error, gorm.ErrDuplicatedKey):
		return port.ErrEmailTaken
	case res.Error != nil:
		return res.Error
	case res.RowsAffected == 0:
		return port.ErrUserNotFound
	}
	return nil
}

// Delete removes the user with id.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.User{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return port.ErrUserNotFound
	}
	return nil
}
