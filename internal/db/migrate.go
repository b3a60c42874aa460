package db

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"

	"pgstarter/db/migrations"
	"pgstarter/internal/config/configs"
)

// ErrDirty is returned when a previous migration failed half way and the
// schema_migrations table must be repaired by hand.
var ErrDirty = errors.New("database is in dirty state")

// Migrator applies versioned SQL migrations. It opens its own connection
// through lib/pq so that migrations never run on the application's pool.
type Migrator struct {
	m *migrate.Migrate
}

// MigrationSource returns the embedded migrations when dir is empty and the
// on-disk directory otherwise.
func MigrationSource(dir string) fs.FS {
	if dir == "" {
		return migrations.FS
	}
	return os.DirFS(dir)
}

// MigrationDir is the directory holding the descriptor's migration scripts.
func MigrationDir(cfg configs.Database) string {
	if len(cfg.Migrations) == 0 {
		return "."
	}
	return filepath.Dir(cfg.Migrations[0])
}

// NewMigrator connects to the database described by cfg and reads
// migrations from source.
func NewMigrator(cfg configs.Database, source fs.FS) (*Migrator, error) {
	conn, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, err
	}
	driver, err := postgres.WithInstance(conn, &postgres.Config{DatabaseName: cfg.Database})
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	return newMigrator(source, cfg.Database, driver)
}

// newMigrator binds source to an already opened driver. The driver is closed
// when construction fails.
func newMigrator(source fs.FS, databaseName string, driver database.Driver) (*Migrator, error) {
	src, err := iofs.New(source, ".")
	if err != nil {
		_ = driver.Close()
		return nil, fmt.Errorf("open migration source: %w", err)
	}
	mg, err := migrate.NewWithInstance("iofs", src, databaseName, driver)
	if err != nil {
		_ = src.Close()
		_ = driver.Close()
		return nil, err
	}
	return &Migrator{m: mg}, nil
}

// Up applies every pending migration. Having nothing to apply is not an
// error.
func (mg *Migrator) Up() error {
	if err := mg.checkClean(); err != nil {
		return err
	}
	if err := mg.m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

// Down reverts the most recently applied migration.
func (mg *Migrator) Down() error {
	if err := mg.checkClean(); err != nil {
		return err
	}
	return mg.m.Steps(-1)
}

// Version reports the applied version; ok is false when no migration has
// been applied yet.
func (mg *Migrator) Version() (version uint, dirty, ok bool, err error) {
	version, dirty, err = mg.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, false, nil
	}
	if err != nil {
		return 0, false, false, err
	}
	return version, dirty, true, nil
}

// Close releases the source and the migration connection.
func (mg *Migrator) Close() error {
	srcErr, dbErr := mg.m.Close()
	return errors.Join(srcErr, dbErr)
}

func (mg *Migrator) checkClean() error {
	_, dirty, ok, err := mg.Version()
	if err != nil {
		return err
	}
	if ok && dirty {
		return ErrDirty
	}
	return nil
}

var nonIdent = regexp.MustCompile(`[^a-z0-9]+`)

// MigrationName derives a file-safe migration name from a path argument
// such as "db/migrations/AddUserIndex" or "add-user-index.sql".
func MigrationName(path string) (string, error) {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	name := strings.Trim(nonIdent.ReplaceAllString(strings.ToLower(base), "_"), "_")
	if name == "" {
		return "", fmt.Errorf("cannot derive a migration name from %q", path)
	}
	return name, nil
}

// CreateMigration writes an empty up/down pair for path. The files go into
// the directory part of path, or into defaultDir when path has none. The
// version prefix is the UTC timestamp of now.
func CreateMigration(path, defaultDir string, now time.Time, upBody string) (up, down string, err error) {
	name, err := MigrationName(path)
	if err != nil {
		return "", "", err
	}
	dir := filepath.Dir(path)
	if dir == "." {
		dir = defaultDir
	}
	if err = os.MkdirAll(dir, 0o755); err != nil {
		return "", "", err
	}

	prefix := filepath.Join(dir, now.UTC().Format("20060102150405")+"_"+name)
	up, down = prefix+".up.sql", prefix+".down.sql"
	if err = writeNew(up, upBody); err != nil {
		return "", "", err
	}
	if err = writeNew(down, ""); err != nil {
		_ = os.Remove(up)
		return "", "", err
	}
	return up, down, nil
}

func writeNew(path, body string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	if _, err = f.WriteString(body); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
