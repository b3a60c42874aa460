package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "pgstarter/internal/adapter/http"
	"pgstarter/internal/adapter/postgres"
	"pgstarter/internal/adapter/usecase"
	"pgstarter/internal/config"
	"pgstarter/internal/core/domain"
	"pgstarter/internal/db"
)

// main loads configuration from one environment snapshot, opens the single
// shared database handle, optionally synchronises the schema in development
// and serves the example users API until a termination signal arrives.
// Migrations are never applied here; use cmd/migrate.
func main() {
	exitCode := 1
	defer func() {
		if r := recover(); r != nil {
			panic(r)
		} else {
			os.Exit(exitCode)
		}
	}()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		return
	}
	logger := cfg.Log.New(os.Stdout)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	connector := db.NewConnector(cfg.DB, db.Open(logger))
	descriptor := connector.Descriptor()
	handle, err := connector.Connect(ctx)
	if err != nil {
		logger.Error("database connection error",
			slog.String("database", descriptor.Redacted()),
			slog.Any("error", err))
		return
	}
	defer handle.Close()
	logger.Info("database connected",
		slog.String("database", descriptor.Redacted()),
		slog.Bool("synchronize", descriptor.Synchronize),
		slog.Bool("logging", descriptor.Logging))

	ran, err := db.Synchronize(descriptor.Synchronize, handle.ORM, domain.Entities()...)
	if err != nil {
		logger.Error("schema synchronisation error", slog.Any("error", err))
		return
	}
	if ran {
		logger.Warn("schema synchronised from entities; do not enable outside development")
	}

	repo := postgres.NewUserRepository(handle.ORM)
	svc := usecase.NewUserUseCase(repo)

	handler := httpadapter.NewHandler(svc, handle, logger)
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler: handler.Router(),
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server listening", slog.Int("port", int(cfg.HTTP.Port)))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case value := <-quit:
		exitCode = 128 + int(value.(syscall.Signal))
	case err = <-serveErr:
		logger.Error("server error", slog.Any("error", err))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer shutdownCancel()
	if err = srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
	} else {
		logger.Info("server gracefully stopped")
	}
}
