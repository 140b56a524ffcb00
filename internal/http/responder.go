package http

import (
	"encoding/json"
	"errors"
	nethttp "net/http"

	"github.com/sjounng/team-draft-lol/internal/domain"
)

func (h *Handler) writeJSON(w nethttp.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && h.logger != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) writeError(w nethttp.ResponseWriter, r *nethttp.Request, err error) {
	h.writeJSON(w, statusFor(err), map[string]string{
		"error":      err.Error(),
		"request_id": requestIDFromContext(r.Context()),
	})
}

func (h *Handler) writeBadRequest(w nethttp.ResponseWriter, r *nethttp.Request, message string) {
	h.writeJSON(w, nethttp.StatusBadRequest, map[string]string{
		"error":      message,
		"request_id": requestIDFromContext(r.Context()),
	})
}

// statusFor maps domain sentinel errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidRosterSize),
		errors.Is(err, domain.ErrInvalidMatch),
		errors.Is(err, domain.ErrInvalidPlayer),
		errors.Is(err, domain.ErrInvalidPool),
		errors.Is(err, domain.ErrSameLanes):
		return nethttp.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidCredential):
		return nethttp.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return nethttp.StatusForbidden
	case errors.Is(err, domain.ErrPlayerNotFound),
		errors.Is(err, domain.ErrPoolNotFound),
		errors.Is(err, domain.ErrMatchNotFound),
		errors.Is(err, domain.ErrProfileNotFound):
		return nethttp.StatusNotFound
	case errors.Is(err, domain.ErrAlreadyApplied),
		errors.Is(err, domain.ErrNotApplied),
		errors.Is(err, domain.ErrUsernameTaken):
		return nethttp.StatusConflict
	default:
		return nethttp.StatusInternalServerError
	}
}
