package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"pgstarter/internal/core/domain"
)

// SeedBatchSize is the number of rows per INSERT statement.
const SeedBatchSize = 100

// SeedUsers builds n demo users with predictable names and emails.
func SeedUsers(n int) []domain.User {
	users := make([]domain.User, 0, n)
	for i := 1; i <= n; i++ {
		users = append(users, domain.User{
			ID:       uuid.NewString(),
			Name:     fmt.Sprintf("Demo User %d", i),
			Email:    fmt.Sprintf("demo%d@example.com", i),
			IsActive: i%5 != 0,
		})
	}
	return users
}

// Seed inserts n demo users. Rows whose email already exists are skipped,
// so seeding twice is harmless.
func Seed(ctx context.Context, orm *gorm.DB, n int) (int64, error) {
	if n <= 0 {
		return 0, nil
	}
	users := SeedUsers(n)
	res := orm.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "email"}}, DoNothing: true}).
		CreateInBatches(&users, SeedBatchSize)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
