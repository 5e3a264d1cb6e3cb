// internal/api/handler.go
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/daycards/backend/internal/service"
	"github.com/daycards/backend/internal/store"
)

// Handler holds all dependencies needed by HTTP handlers.
// Instead of relying on package-level globals, every handler method
// receives its dependencies through this struct.
type Handler struct {
	practice *service.PracticeService
	backup   *service.BackupService
	logger   *slog.Logger
}

// NewHandler creates a Handler with the given dependencies.
func NewHandler(practice *service.PracticeService, backup *service.BackupService, logger *slog.Logger) *Handler {
	return &Handler{
		practice: practice,
		backup:   backup,
		logger:   logger,
	}
}

// validator is implemented by request types that check their own fields.
type validator interface {
	Validate() error
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// respondError writes {"error": msg}.
func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

// decodeJSON decodes the request body into v. An empty body leaves v
// untouched. Returns false after writing a 400 response.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if r.Body == nil || r.ContentLength == 0 {
		return true
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json")
		return false
	}
	return true
}

func decodeAndValidate(w http.ResponseWriter, r *http.Request, v validator) bool {
	if !decodeJSON(w, r, v) {
		return false
	}
	if err := v.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// handleServiceError maps service and store errors to HTTP responses.
// Returns true if an error was handled (caller should return).
func (h *Handler) handleServiceError(w http.ResponseWriter, err error, action string) bool {
	if err == nil {
		return false
	}
	switch {
	case errors.Is(err, service.ErrUnknownMode),
		errors.Is(err, service.ErrInvalidDay),
		errors.Is(err, service.ErrInvalidBackup):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrNotFound):
		respondError(w, http.StatusNotFound, "not found")
	default:
		h.logger.Error("service error", "error", err, "action", action)
		respondError(w, http.StatusInternalServerError, "failed to "+action)
	}
	return true
}

// dayParam reads a positive day from the path or query. A missing query
// value yields 0.
func dayParam(w http.ResponseWriter, raw string, required bool) (int, bool) {
	if raw == "" && !required {
		return 0, true
	}
	day, err := strconv.Atoi(raw)
	if err != nil || day < 1 {
		respondError(w, http.StatusBadRequest, "day must be a positive integer")
		return 0, false
	}
	return day, true
}

func boolQuery(w http.ResponseWriter, r *http.Request, name string) (bool, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return false, true
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		respondError(w, http.StatusBadRequest, name+" must be a boolean")
		return false, false
	}
	return v, true
}
