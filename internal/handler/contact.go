package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/studio-site/internal/model"
	"github.com/sakif/studio-site/internal/service"
)

// ContactHandler takes inquiry submissions from the public site and serves
// the admin inbox.
type ContactHandler struct {
	contact *service.ContactService
	logger  *slog.Logger
}

func NewContactHandler(contact *service.ContactService, logger *slog.Logger) *ContactHandler {
	return &ContactHandler{contact: contact, logger: logger}
}

// HandleSubmit accepts a contact-form submission. New submissions always
// start unread.
//
// HTTP: POST /api/contact
func (h *ContactHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	var input model.InsertContactSubmission
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, err)
		return
	}
	submission, err := h.contact.Submit(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Thank you for your inquiry. We will get back to you soon.",
		"id":      submission.ID,
	})
}

// HandleList returns the full inbox, newest first.
//
// HTTP: GET /api/admin/contact
func (h *ContactHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	submissions, err := h.contact.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, submissions)
}

// HandleListUnread returns only submissions awaiting attention, for the
// dashboard badge.
//
// HTTP: GET /api/admin/contact/unread
func (h *ContactHandler) HandleListUnread(w http.ResponseWriter, r *http.Request) {
	submissions, err := h.contact.ListUnread(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, submissions)
}

// HandleMarkRead flags a single submission as read.
//
// HTTP: PUT /api/admin/contact/{id}/read
func (h *ContactHandler) HandleMarkRead(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.contact.MarkRead(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "marked as read"})
}

// HandleDelete removes a submission from the inbox.
//
// HTTP: DELETE /api/admin/contact/{id}
func (h *ContactHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.contact.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
