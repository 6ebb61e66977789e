package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/example/commesse/internal/app"
	"github.com/example/commesse/internal/models"
	"github.com/example/commesse/internal/ports/secondary"
)

type apiError struct {
	Status  string `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, apiError{Status: "error", Code: code, Message: message})
}

func mapDomainError(err error) (int, string) {
	switch {
	case errors.Is(err, app.ErrBadCredentials):
		return http.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, app.ErrForbidden):
		return http.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, app.ErrJobNotFound),
		errors.Is(err, app.ErrOperatorNotFound),
		errors.Is(err, app.ErrClientNotFound):
		return http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, models.ErrValidation):
		return http.StatusBadRequest, "VALIDATION_ERROR"
	case errors.Is(err, secondary.ErrAuthExpired):
		return http.StatusBadGateway, "STORE_AUTH_EXPIRED"
	case errors.Is(err, secondary.ErrStoreOffline):
		return http.StatusServiceUnavailable, "STORE_OFFLINE"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR"
	}
}

func writeDomainError(w http.ResponseWriter, err error) {
	status, code := mapDomainError(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal server error"
	}
	writeError(w, status, code, msg)
}
