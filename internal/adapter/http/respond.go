package httpadapter

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"pgstarter/internal/core/port"
)

type errorBody struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("encode response error", slog.Any("error", err))
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, errorBody{Error: msg})
}

// writeUseCaseError maps port sentinels to status codes. Anything else is
// logged and reported as a 500 without detail.
func (h *Handler) writeUseCaseError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, port.ErrUserNotFound):
		h.writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, port.ErrEmailTaken):
		h.writeError(w, http.StatusConflict, err.Error())
	default:
		h.logger.Error(op+" error", slog.Any("error", err))
		h.writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// validateBody runs struct validation and writes a 422 listing every failed
// field. It reports whether the body was valid.
func (h *Handler) validateBody(w http.ResponseWriter, v any) bool {
	err := h.validate.Struct(v)
	if err == nil {
		return true
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		h.logger.Error("validation error", slog.Any("error", err))
		h.writeError(w, http.StatusInternalServerError, "internal error")
		return false
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fieldMessage(fe)
	}
	h.writeJSON(w, http.StatusUnprocessableEntity, errorBody{Error: "validation failed", Fields: fields})
	return false
}

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func fieldMessage(fe validator.FieldError) string {
	name := cases.Title(language.English).String(strings.ReplaceAll(fe.Field(), "_", " "))
	switch fe.Tag() {
	case "required":
		return name + " is required"
	case "email":
		return name + " must be a valid email address"
	case "min":
		return name + " must be at least " + fe.Param() + " characters long"
	case "max":
		return name + " must be at most " + fe.Param() + " characters long"
	default:
		return name + " is invalid"
	}
}
