package httpadapter

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"pgstarter/internal/core/port"
)

// handleListUsers returns every user as a JSON array.
func (h *Handler) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.FindAll(r.Context())
	if err != nil {
		h.writeUseCaseError(w, "list users", err)
		return
	}
	h.writeJSON(w, http.StatusOK, users)
}

// handleGetUser returns the user bound to {id}, or 404.
func (h *Handler) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := h.userID(w, r)
	if !ok {
		return
	}
	user, err := h.users.FindOne(r.Context(), id)
	if err != nil {
		h.writeUseCaseError(w, "get user", err)
		return
	}
	h.writeJSON(w, http.StatusOK, user)
}

// handleCreateUser decodes a port.CreateUserInput. Malformed JSON yields 400,
// failed validation 422 and a taken email 409. On success it answers 201
// with the stored user.
func (h *Handler) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var in port.CreateUserInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if !h.validateBody(w, in) {
		return
	}
	user, err := h.users.Create(r.Context(), in)
	if err != nil {
		h.writeUseCaseError(w, "create user", err)
		return
	}
	h.writeJSON(w, http.StatusCreated, user)
}

// handleUpdateUser applies a partial update to {id}.
func (h *Handler) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := h.userID(w, r)
	if !ok {
		return
	}
	var in port.UpdateUserInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if !h.validateBody(w, in) {
		return
	}
	user, err := h.users.Update(r.Context(), id, in)
	if err != nil {
		h.writeUseCaseError(w, "update user", err)
		return
	}
	h.writeJSON(w, http.StatusOK, user)
}

// handleDeleteUser removes {id} and answers 204.
func (h *Handler) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := h.userID(w, r)
	if !ok {
		return
	}
	if err := h.users.Remove(r.Context(), id); err != nil {
		h.writeUseCaseError(w, "delete user", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// userID reads {id} in canonical UUID form. Anything that does not parse as
// a UUID cannot name a stored user and is answered with 404.
func (h *Handler) userID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, http.StatusNotFound, port.ErrUserNotFound.Error())
		return "", false
	}
	return id.String(), true
}
