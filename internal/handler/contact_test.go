package handler_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sakif/studio-site/internal/handler"
	"github.com/sakif/studio-site/internal/model"
	"github.com/sakif/studio-site/internal/service"
)

// mockContactRepo records submissions in memory for handler testing.
type mockContactRepo struct {
	submissions []model.ContactSubmission
}

func (m *mockContactRepo) ListContactSubmissions(ctx context.Context) ([]model.ContactSubmission, error) {
	return m.submissions, nil
}

func (m *mockContactRepo) ListUnreadContactSubmissions(ctx context.Context) ([]model.ContactSubmission, error) {
	var unread []model.ContactSubmission
	for _, s := range m.submissions {
		if !s.IsRead {
			unread = append(unread, s)
		}
	}
	return unread, nil
}

func (m *mockContactRepo) CreateContactSubmission(ctx context.Context, submission *model.ContactSubmission) error {
	submission.ID = int64(len(m.submissions) + 1)
	submission.IsRead = false
	m.submissions = append(m.submissions, *submission)
	return nil
}

func (m *mockContactRepo) MarkContactSubmissionRead(ctx context.Context, id int64) error {
	for i := range m.submissions {
		if m.submissions[i].ID == id {
			m.submissions[i].IsRead = true
		}
	}
	return nil
}

func (m *mockContactRepo) DeleteContactSubmission(ctx context.Context, id int64) error {
	return nil
}

func TestContactHandler_HandleSubmit(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	newHandler := func() (*handler.ContactHandler, *mockContactRepo) {
		repo := &mockContactRepo{}
		return handler.NewContactHandler(service.NewContactService(repo, logger), logger), repo
	}

	t.Run("valid submission", func(t *testing.T) {
		h, repo := newHandler()

		body := `{"name":"Jo","email":"jo@x.com","message":"Hi"}`
		req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body))
		rr := httptest.NewRecorder()

		h.HandleSubmit(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)

		var res struct {
			Message string `json:"message"`
			ID      int64  `json:"id"`
		}
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&res))
		assert.NotEmpty(t, res.Message)
		assert.Equal(t, int64(1), res.ID)
		assert.False(t, repo.submissions[0].IsRead)
	})

	t.Run("missing fields are all reported", func(t *testing.T) {
		h, _ := newHandler()

		req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(`{"message":"Hi"}`))
		rr := httptest.NewRecorder()

		h.HandleSubmit(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)

		var res handler.ErrorResponse
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&res))
		assert.Equal(t, "validation_error", res.Error)
		assert.Len(t, res.Errors, 2) // name and email
	})

	t.Run("unknown fields rejected", func(t *testing.T) {
		h, _ := newHandler()

		body := `{"name":"Jo","email":"jo@x.com","isRead":true}`
		req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body))
		rr := httptest.NewRecorder()

		h.HandleSubmit(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("malformed JSON", func(t *testing.T) {
		h, _ := newHandler()

		req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(`{"name":`))
		rr := httptest.NewRecorder()

		h.HandleSubmit(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
