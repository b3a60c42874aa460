package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"pgstarter/internal/config"
	"pgstarter/internal/config/configs"
	"pgstarter/internal/core/domain"
	"pgstarter/internal/db"
)

const usage = `usage: migrate [-dir path] <command> [args]

commands:
  create <path>     write an empty up/down migration pair named after path;
                    a bare name goes into -dir when given
  generate <path>   like create, with the mapped entities described in the up file
  run               apply all pending migrations
  revert            revert the most recently applied migration
  version           print the applied migration version
  seed [n]          insert n demo users (default 10)
`

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}
	logger := cfg.Log.New(os.Stderr)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err = run(ctx, cfg.DB, logger, os.Stdout, os.Args[1:])
	cancel()
	if err != nil {
		logger.Error("migrate failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg configs.Database, logger *slog.Logger, stdout io.Writer, args []string) error {
	fset := flag.NewFlagSet("migrate", flag.ContinueOnError)
	fset.SetOutput(stdout)
	fset.Usage = func() { fmt.Fprint(stdout, usage) }
	dir := fset.String("dir", "", "read migrations from this directory instead of the embedded set")
	if err := fset.Parse(args); err != nil {
		return err
	}
	if fset.NArg() == 0 {
		fset.Usage()
		return errors.New("missing command")
	}

	cmd, rest := fset.Arg(0), fset.Args()[1:]
	switch cmd {
	case "create", "generate":
		if len(rest) != 1 {
			return fmt.Errorf("%s: expected exactly one path argument", cmd)
		}
		body := ""
		if cmd == "generate" {
			described, err := db.DescribeEntities(domain.Entities()...)
			if err != nil {
				return err
			}
			body = described
		}
		target := *dir
		if target == "" {
			target = db.MigrationDir(cfg)
		}
		up, down, err := db.CreateMigration(rest[0], target, time.Now(), body)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "created %s\ncreated %s\n", up, down)
		return nil

	case "run", "revert", "version":
		mg, err := db.NewMigrator(cfg, db.MigrationSource(*dir))
		if err != nil {
			return err
		}
		defer func() {
			if cerr := mg.Close(); cerr != nil {
				logger.Warn("closing migrator", slog.Any("error", cerr))
			}
		}()
		return runMigrator(mg, cmd, stdout)

	case "seed":
		n := 10
		if len(rest) > 0 {
			parsed, err := strconv.Atoi(rest[0])
			if err != nil {
				return fmt.Errorf("seed: invalid count %q", rest[0])
			}
			n = parsed
		}
		handle, err := db.NewConnector(cfg, db.Open(logger)).Connect(ctx)
		if err != nil {
			return err
		}
		defer handle.Close()
		inserted, err := db.Seed(ctx, handle.ORM, n)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "seeded %d users\n", inserted)
		return nil
	}

	fset.Usage()
	return fmt.Errorf("unknown command %q", cmd)
}

// migrationRunner is the subset of *db.Migrator used by the CLI.
type migrationRunner interface {
	Up() error
	Down() error
	Version() (version uint, dirty, ok bool, err error)
}

func runMigrator(mg migrationRunner, cmd string, stdout io.Writer) error {
	switch cmd {
	case "run":
		if err := mg.Up(); err != nil {
			return err
		}
	case "revert":
		if err := mg.Down(); err != nil {
			return err
		}
	}

	version, dirty, ok, err := mg.Version()
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(stdout, "no migrations applied")
		return nil
	}
	fmt.Fprintf(stdout, "version %d", version)
	if dirty {
		fmt.Fprint(stdout, " (dirty)")
	}
	fmt.Fprintln(stdout)
	return nil
}
