package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sakif/studio-site/internal/apperror"
)

func TestWriteError_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantType   string
	}{
		{"not found", apperror.NotFound("post", "7"), http.StatusNotFound, "not_found"},
		{"validation", apperror.ValidationFailed("title", "title is required"), http.StatusBadRequest, "validation_error"},
		{"conflict", apperror.Conflict("blog post", "slug in use"), http.StatusConflict, "conflict"},
		{"forbidden", apperror.Forbidden("admin access required"), http.StatusForbidden, "forbidden"},
		{"unauthorized", apperror.Unauthorized("invalid email or password"), http.StatusUnauthorized, "unauthorized"},
		{"wrapped sentinel", fmt.Errorf("updating post: %w", apperror.NotFound("post", "7")), http.StatusNotFound, "not_found"},
		{"unknown error", errors.New("disk on fire"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			writeError(rr, tt.err)

			assert.Equal(t, tt.wantStatus, rr.Code)

			var res ErrorResponse
			assert.NoError(t, json.NewDecoder(rr.Body).Decode(&res))
			assert.Equal(t, tt.wantType, res.Error)
		})
	}
}

func TestWriteError_HidesInternalDetail(t *testing.T) {
	rr := httptest.NewRecorder()
	writeError(rr, errors.New("sqlite: UNIQUE constraint failed: users.email"))

	var res ErrorResponse
	assert.NoError(t, json.NewDecoder(rr.Body).Decode(&res))
	assert.NotContains(t, res.Message, "sqlite")
}

func TestWriteError_ValidationFields(t *testing.T) {
	rr := httptest.NewRecorder()
	writeError(rr, apperror.ValidationErrors([]apperror.FieldError{
		{Field: "name", Message: "name is required"},
		{Field: "email", Message: "email is required"},
	}))

	var res ErrorResponse
	assert.NoError(t, json.NewDecoder(rr.Body).Decode(&res))
	assert.Len(t, res.Errors, 2)
	assert.Equal(t, "name", res.Errors[0].Field)
}

func TestIDParam(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/admin/blog/12", nil)
	req.SetPathValue("id", "12")

	id, err := idParam(req)
	assert.NoError(t, err)
	assert.Equal(t, int64(12), id)

	req.SetPathValue("id", "twelve")
	_, err = idParam(req)
	assert.ErrorIs(t, err, apperror.ErrValidation)

	req.SetPathValue("id", "-3")
	_, err = idParam(req)
	assert.ErrorIs(t, err, apperror.ErrValidation)
}
