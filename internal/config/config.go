package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"pgstarter/internal/config/configs"
)

// DotEnvFile is read by Environ when present. Process variables win over
// values from the file.
const DotEnvFile = ".env"

// Config aggregates all configuration sections for the application. The HTTP
// and Log sections are populated by caarlos0/env from prefixed variables; DB
// is resolved separately by ResolveDatabase because it never fails.
type Config struct {
	// Mode is the deployment mode. Only the exact value "development" has
	// an effect: it enables schema synchronisation and ORM logging.
	Mode string `env:"NODE_ENV"`

	// HTTP holds configuration for the HTTP server (HTTP_ prefix).
	HTTP configs.HTTP `envPrefix:"HTTP_"`

	// Log configures the structured logger (LOG_ prefix).
	Log configs.Logger `envPrefix:"LOG_"`

	// DB is the connection descriptor.
	DB configs.Database
}

// Load captures one environment snapshot and builds a Config from it.
func Load() (Config, error) {
	environ, err := Environ()
	if err != nil {
		return Config{}, err
	}
	return LoadFrom(environ)
}

// LoadFrom builds a Config from an explicit environment snapshot. It never
// consults the process environment; a nil snapshot is treated as empty.
func LoadFrom(environ map[string]string) (Config, error) {
	if environ == nil {
		environ = map[string]string{}
	}
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return cfg, err
	}
	cfg.DB = ResolveDatabase(environ)
	return cfg, nil
}

// Environ returns the process environment overlaid on the contents of
// DotEnvFile. A missing file is not an error.
func Environ() (map[string]string, error) {
	environ, err := godotenv.Read(DotEnvFile)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		environ = make(map[string]string)
	}
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			environ[k] = v
		}
	}
	return environ, nil
}
