package httpadapter

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"pgstarter/internal/core/port"
)

// Pinger reports database reachability. *db.Handle satisfies it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler is the inbound HTTP adapter: the example users controller plus a
// health endpoint backed by the shared database handle.
type Handler struct {
	users    port.UserUseCase
	db       Pinger
	logger   *slog.Logger
	validate *validator.Validate
	router   chi.Router
}

// NewHandler creates a handler with all routes configured.
func NewHandler(users port.UserUseCase, db Pinger, logger *slog.Logger) *Handler {
	h := &Handler{
		users:    users,
		db:       db,
		logger:   logger,
		validate: newValidator(),
	}
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", h.handleHealth)
	r.Route("/api/v1/users", func(r chi.Router) {
		r.Get("/", h.handleListUsers)
		r.Post("/", h.handleCreateUser)
		r.Get("/{id}", h.handleGetUser)
		r.Patch("/{id}", h.handleUpdateUser)
		r.Delete("/{id}", h.handleDeleteUser)
	})
	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}
