package config

import (
	"strconv"

	"github.com/caarlos0/env/v11"

	"pgstarter/internal/config/configs"
)

const (
	// DevelopmentMode is the only NODE_ENV value that enables schema
	// synchronisation and ORM logging. Comparison is exact.
	DevelopmentMode = "development"

	defaultPort = 5432
)

// EntityLocations and MigrationLocations are fixed relative to the module
// root and are not configurable through the environment.
var (
	EntityLocations    = []string{"internal/core/domain/*.go"}
	MigrationLocations = []string{"db/migrations/*.sql"}
)

// databaseEnv mirrors the raw environment. Port stays a string so that an
// unparseable value can fall back to the default instead of failing. An empty
// variable counts as absent: env applies envDefault to it.
type databaseEnv struct {
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     string `env:"DB_PORT" envDefault:"5432"`
	Username string `env:"DB_USERNAME" envDefault:"postgres"`
	Password string `env:"DB_PASSWORD" envDefault:"postgres"`
	Database string `env:"DB_DATABASE" envDefault:"postgres"`
	SSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`
	Mode     string `env:"NODE_ENV"`
}

// ResolveDatabase produces the connection descriptor from an environment
// snapshot. It never fails: absent or empty values take their defaults and a
// port that is not a base-10 integer becomes 5432. Nothing else is validated.
// A nil snapshot is treated as an empty one.
func ResolveDatabase(environ map[string]string) configs.Database {
	if environ == nil {
		environ = map[string]string{}
	}
	var raw databaseEnv
	// All fields are strings, so parsing cannot fail.
	_ = env.ParseWithOptions(&raw, env.Options{Environment: environ})

	port, err := strconv.Atoi(raw.Port)
	if err != nil {
		port = defaultPort
	}
	dev := raw.Mode == DevelopmentMode

	return configs.Database{
		Type:          "postgres",
		Host:          raw.Host,
		Port:          port,
		Username:      raw.Username,
		Password:      raw.Password,
		Database:      raw.Database,
		SSLMode:       raw.SSLMode,
		Entities:      append([]string(nil), EntityLocations...),
		Migrations:    append([]string(nil), MigrationLocations...),
		Synchronize:   dev,
		Logging:       dev,
		MigrationsRun: false,
	}
}
