package db

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"pgstarter/internal/config/configs"
)

// PingTimeout bounds the connectivity check performed when a pool is opened.
const PingTimeout = 5 * time.Second

// Handle is the live connection shared by every data-access collaborator.
// The pgx pool owns the connections; ORM is a gorm session layered over the
// same pool, so both views share one set of connections.
type Handle struct {
	Pool *pgxpool.Pool
	ORM  *gorm.DB

	sqlDB *sql.DB
}

// Ping checks that the database is reachable through the shared pool.
func (h *Handle) Ping(ctx context.Context) error {
	return h.Pool.Ping(ctx)
}

// Close releases the ORM adapter and the pool.
func (h *Handle) Close() {
	if h.sqlDB != nil {
		_ = h.sqlDB.Close()
	}
	h.Pool.Close()
}

// NewPostgresPool creates a pgxpool.Pool for the descriptor and verifies
// connectivity with a ping bounded by PingTimeout. If pinging fails the pool
// is closed and the error returned. The caller must close the returned pool.
func NewPostgresPool(ctx context.Context, cfg configs.Database) (*pgxpool.Pool, error) {
	poolConf, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConf)
	if err != nil {
		return nil, err
	}

	ctxPing, cancel := context.WithTimeout(ctx, PingTimeout)
	defer cancel()
	if err = pool.Ping(ctxPing); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// Open returns the production Factory: a pinged pgx pool with a gorm ORM on
// top of it. ORM statements are logged through logger at a level chosen by
// the descriptor's Logging flag.
func Open(logger *slog.Logger) Factory {
	return func(ctx context.Context, cfg configs.Database) (*Handle, error) {
		pool, err := NewPostgresPool(ctx, cfg)
		if err != nil {
			return nil, err
		}

		sqlDB := stdlib.OpenDBFromPool(pool)
		orm, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
			Logger:         NewGormLogger(logger, cfg.Logging),
			TranslateError: true,
		})
		if err != nil {
			_ = sqlDB.Close()
			pool.Close()
			return nil, err
		}
		return &Handle{Pool: pool, ORM: orm, sqlDB: sqlDB}, nil
	}
}
