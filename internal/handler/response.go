// Package handler contains the HTTP handlers of the wellness API.
//
// HANDLER RESPONSIBILITIES:
//  1. Parse the request (path ids, JSON body)
//  2. Call one service method
//  3. Write the JSON response or map the error to a status code
//
// Handlers hold no business rules; those live in internal/service.
package handler

// RESPONSE HELPERS:
// Every handler writes through writeJSON/writeError so the API has one
// success shape per endpoint and one error shape overall:
//
//	{"error": "not_found", "message": "User not found"}
//
// Request parsing lives here too: decodeJSON for bodies and pathID for the
// integer ids in URLs. Both return apperror values, so a bad request takes
// the same writeError path as a failed validation in the service layer.

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/wellness-tracker/internal/apperror"
)

// maxBodyBytes caps request bodies. Journal entries are the largest payload.
const maxBodyBytes = 1 << 20

// ErrorResponse is the standard error format returned by all API endpoints.
type ErrorResponse struct {
	Error   string `json:"error"`   // Machine-readable error type (e.g., "not_found")
	Message string `json:"message"` // Human-readable description
}

// MessageResponse is the body of most write endpoints.
type MessageResponse struct {
	Message string `json:"message"`
}

// CreatedResponse is returned by write endpoints that expose the new id.
type CreatedResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

// writeJSON sends a JSON response with the given status code.
//
// HEADER ORDER MATTERS:
// Headers and status must be set before the body. Once Encode writes,
// later header changes are silently ignored.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Headers are already sent, we can only log it.
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// errorStatus maps a domain error to its HTTP status and machine-readable
// type.
//
// Conflict is a 400 here, not a 409: clients treat "email taken" as a
// form error like any other.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, apperror.ErrValidation):
		return http.StatusBadRequest, "validation_error"
	case errors.Is(err, apperror.ErrConflict):
		return http.StatusBadRequest, "conflict"
	case errors.Is(err, apperror.ErrUnauthorized):
		return http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, apperror.ErrForbidden):
		return http.StatusForbidden, "forbidden"
	case errors.Is(err, apperror.ErrNotFound):
		return http.StatusNotFound, "not_found"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

// writeError maps a domain error to the appropriate HTTP status code and
// sends it.
//
// errors.As walks the wrap chain, so a service error such as
// fmt.Errorf("saving mood: %w", apperror.NotFound(...)) still reaches the
// AppError and its human-readable Message.
func writeError(w http.ResponseWriter, logger *slog.Logger, err error) {
	status, errorType := errorStatus(err)

	var appErr *apperror.AppError
	if status != http.StatusInternalServerError && errors.As(err, &appErr) {
		writeJSON(w, status, ErrorResponse{Error: errorType, Message: appErr.Message})
		return
	}

	// Unknown or upstream error: log the detail, return a generic 500.
	// The raw message might contain SQL or file paths.
	logger.Error("request failed", slog.String("error", err.Error()))
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error:   "internal_error",
		Message: "An internal error occurred",
	})
}

// decodeJSON reads a JSON body into dst.
// Unknown fields are ignored; older clients send extras.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return apperror.ValidationFailed("body", "request body is too large")
		}
		// Field decoders such as service.NumericID report their own error.
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return err
		}
		return apperror.ValidationFailed("body", "Invalid JSON body")
	}
	return nil
}

// pathID parses a positive integer URL parameter such as {user_id}.
func pathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.ValidationFailed(name, fmt.Sprintf("%s must be a positive integer", name))
	}
	return id, nil
}
