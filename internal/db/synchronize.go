package db

import "fmt"

// SchemaMigrator is satisfied by *gorm.DB.
type SchemaMigrator interface {
	AutoMigrate(dst ...any) error
}

// Synchronize lets the ORM create or alter tables to match entities, but
// only when the descriptor allows it. It reports whether it ran.
func Synchronize(enabled bool, orm SchemaMigrator, entities ...any) (bool, error) {
	if !enabled {
		return false, nil
	}
	if err := orm.AutoMigrate(entities...); err != nil {
		return true, fmt.Errorf("synchronize schema: %w", err)
	}
	return true, nil
}
