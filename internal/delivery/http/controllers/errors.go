package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	h "eventms/internal/delivery/http/helpers"
	"eventms/internal/domain"
)

// respondError maps domain sentinel errors to HTTP statuses and writes the
// error envelope. Unknown errors are logged and surface as 500 with the
// error message echoed.
func respondError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrDuplicateEmail),
		errors.Is(err, domain.ErrAtCapacity),
		errors.Is(err, domain.ErrRegistrationClosed),
		errors.Is(err, domain.ErrExpired),
		errors.Is(err, domain.ErrAlreadyMember):
		h.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		h.WriteError(w, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, domain.ErrAccountSuspended),
		errors.Is(err, domain.ErrForbidden):
		h.WriteError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		h.WriteError(w, http.StatusNotFound, err.Error())
	default:
		logger.Error("request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteError(w, http.StatusInternalServerError, err.Error())
	}
}
