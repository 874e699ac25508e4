// Package api provides the HTTP handlers and router for the kiosk
// engagement API, including standardized error handling.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/onnwee/praca/internal/facility"
	"github.com/onnwee/praca/internal/interaction"
	"github.com/onnwee/praca/internal/middleware"
	"github.com/onnwee/praca/internal/question"
	"github.com/onnwee/praca/internal/totem"
	"github.com/onnwee/praca/internal/user"
	"github.com/onnwee/praca/internal/validate"
)

// Common error codes used throughout the API.
const (
	// ErrCodeValidation indicates input validation failure.
	ErrCodeValidation = "validation_error"

	// ErrCodeNotFound indicates the requested resource was not found.
	ErrCodeNotFound = "not_found"

	// ErrCodeConflict indicates a conflict with the current state.
	ErrCodeConflict = "conflict"

	// ErrCodeBadRequest indicates a malformed request.
	ErrCodeBadRequest = "bad_request"

	// ErrCodeUnsupportedFormat indicates an import file format the
	// pipeline cannot parse.
	ErrCodeUnsupportedFormat = "unsupported_format"

	// ErrCodeInternal indicates an internal server error.
	ErrCodeInternal = "internal_error"
)

// ErrorResponse represents the standard error response format.
// All API errors return JSON in this structure: {"error": {"code": "...", "message": "..."}}
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains the error code and human-readable message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// WriteError writes a standardized JSON error response and records the
// error code on the request context so the logging middleware picks it
// up for 4xx/5xx entries.
func WriteError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	*r = *r.WithContext(middleware.SetErrorCode(r.Context(), code))

	errResp := ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	}

	data, err := json.Marshal(errResp)
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to marshal error response", "error", err)
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("Internal server error"))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		slog.ErrorContext(r.Context(), "failed to write error response", "error", err)
	}
}

// WriteServiceError maps a service-layer error to its HTTP shape. Any
// error not covered by a sentinel becomes a 500 internal_error with a
// generic message; the concrete error is left to the logs.
func WriteServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, totem.ErrNotFound),
		errors.Is(err, question.ErrNotFound),
		errors.Is(err, user.ErrNotFound),
		errors.Is(err, facility.ErrNotFound):
		WriteError(w, r, http.StatusNotFound, ErrCodeNotFound, err.Error())

	case errors.Is(err, user.ErrAlreadyExists),
		errors.Is(err, user.ErrAlreadyRegistered):
		WriteError(w, r, http.StatusConflict, ErrCodeConflict, err.Error())

	case errors.Is(err, facility.ErrUnsupportedFormat):
		WriteError(w, r, http.StatusBadRequest, ErrCodeUnsupportedFormat, err.Error())

	case errors.Is(err, interaction.ErrInvalidAnswer),
		errors.Is(err, interaction.ErrMissingField),
		errors.Is(err, interaction.ErrEmptyQuestionID),
		errors.Is(err, question.ErrEmptyText),
		errors.Is(err, user.ErrEmptyHash),
		errors.Is(err, user.ErrInvalidLimit),
		errors.Is(err, user.ErrInvalidOrder),
		errors.Is(err, facility.ErrInvalidCoordinates),
		errors.Is(err, facility.ErrEmptyType),
		errors.Is(err, facility.ErrEmptyFile),
		errors.Is(err, validate.ErrEmpty),
		errors.Is(err, validate.ErrStringTooShort),
		errors.Is(err, validate.ErrStringTooLong),
		errors.Is(err, validate.ErrInvalidEmail),
		errors.Is(err, validate.ErrInvalidDate),
		errors.Is(err, validate.ErrFutureDate),
		errors.Is(err, validate.ErrTooYoung):
		WriteError(w, r, http.StatusUnprocessableEntity, ErrCodeValidation, err.Error())

	default:
		slog.ErrorContext(r.Context(), "unhandled service error", "error", err)
		WriteError(w, r, http.StatusInternalServerError, ErrCodeInternal, "internal server error")
	}
}

// writeJSON writes a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// decodeJSON decodes a request body into v, rejecting unknown fields.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
