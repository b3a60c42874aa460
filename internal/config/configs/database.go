package configs

import (
	"net"
	"net/url"
	"strconv"
)

// Database is the resolved connection descriptor handed to the connection
// factory. It is produced once at startup by config.ResolveDatabase and must
// be treated as read-only afterwards.
type Database struct {
	// Type is the relational database kind. Always "postgres".
	Type string

	Host     string
	Port     int
	Username string
	Password string
	Database string
	SSLMode  string

	// Entities and Migrations are glob patterns, relative to the repository
	// root, naming where mapped entities and migration scripts live.
	Entities   []string
	Migrations []string

	// Synchronize permits the ORM to alter the live schema to match the
	// mapped entities. Only ever true in development.
	Synchronize bool
	// Logging enables verbose ORM statement logging. Always equal to
	// Synchronize.
	Logging bool
	// MigrationsRun is always false; migrations run through cmd/migrate only.
	MigrationsRun bool
}

// URL renders the descriptor as a postgres:// connection URL accepted by
// pgxpool.ParseConfig, lib/pq and golang-migrate.
func (d Database) URL() *url.URL {
	q := url.Values{}
	if d.SSLMode != "" {
		q.Set("sslmode", d.SSLMode)
	}
	return &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.Username, d.Password),
		Host:     net.JoinHostPort(d.Host, strconv.Itoa(d.Port)),
		Path:     "/" + d.Database,
		RawQuery: q.Encode(),
	}
}

// DSN is URL as a string.
func (d Database) DSN() string {
	return d.URL().String()
}

// Redacted is the connection URL with the password masked, safe for logs.
func (d Database) Redacted() string {
	return d.URL().Redacted()
}
