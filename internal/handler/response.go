// Package handler contains the HTTP handlers. Handlers decode requests,
// call the service layer, and translate domain errors to HTTP responses;
// they never touch the database directly.
package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/sakif/studio-site/internal/apperror"
)

// ErrorResponse is the standard error format for all API endpoints. Errors
// is populated only for validation failures, one entry per bad field.
type ErrorResponse struct {
	Error   string               `json:"error"`
	Message string               `json:"message"`
	Errors  []apperror.FieldError `json:"errors,omitempty"`
}

// writeJSON sends a JSON response with the given status code. Headers must
// be set before the first body write.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeError maps a domain error to an HTTP status code. The service layer
// returns apperror sentinels; this is the only place they meet HTTP.
func writeError(w http.ResponseWriter, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		status := http.StatusInternalServerError
		errorType := "internal_error"

		switch {
		case errors.Is(err, apperror.ErrValidation):
			status = http.StatusBadRequest
			errorType = "validation_error"
		case errors.Is(err, apperror.ErrNotFound):
			status = http.StatusNotFound
			errorType = "not_found"
		case errors.Is(err, apperror.ErrUnauthorized):
			status = http.StatusUnauthorized
			errorType = "unauthorized"
		case errors.Is(err, apperror.ErrForbidden):
			status = http.StatusForbidden
			errorType = "forbidden"
		case errors.Is(err, apperror.ErrConflict):
			status = http.StatusConflict
			errorType = "conflict"
		}

		writeJSON(w, status, ErrorResponse{
			Error:   errorType,
			Message: appErr.Message,
			Errors:  appErr.Fields,
		})
		return
	}

	// Unknown error. Never expose internal details to the client.
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error:   "internal_error",
		Message: "An internal error occurred",
	})
}

// decodeJSON decodes the request body into dst, rejecting unknown fields so
// typos in admin payloads fail loudly instead of being dropped.
func decodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return apperror.ValidationFailed("body", fmt.Sprintf("invalid JSON body: %v", err))
	}
	return nil
}

// idParam extracts and parses the {id} URL parameter.
func idParam(r *http.Request) (int64, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.ValidationFailed("id", fmt.Sprintf("invalid id %q", raw))
	}
	return id, nil
}

// projectIDQuery parses the required projectId query parameter on the
// client-portal routes.
func projectIDQuery(r *http.Request) (int64, error) {
	raw := r.URL.Query().Get("projectId")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.ValidationFailed("projectId", fmt.Sprintf("invalid projectId %q", raw))
	}
	return id, nil
}

// reorderRequest is the shared body of the reorder endpoints.
type reorderRequest struct {
	IDs []int64 `json:"ids"`
}
