package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/studio-site/internal/model"
	"github.com/sakif/studio-site/internal/service"
)

// ContentHandler serves the editable marketing content: page sections,
// service offerings, and testimonials. Public routes return only active
// rows; the admin routes see everything.
type ContentHandler struct {
	content *service.ContentService
	logger  *slog.Logger
}

func NewContentHandler(content *service.ContentService, logger *slog.Logger) *ContentHandler {
	return &ContentHandler{content: content, logger: logger}
}

// HandleGetSection returns the active section for a page area, or null when
// none is configured.
//
// HTTP: GET /api/content/{sectionType}
func (h *ContentHandler) HandleGetSection(w http.ResponseWriter, r *http.Request) {
	section, err := h.content.GetSectionByType(r.Context(), r.PathValue("sectionType"))
	if err != nil {
		writeError(w, err)
		return
	}
	// A nil section encodes as JSON null — the frontend renders nothing.
	writeJSON(w, http.StatusOK, section)
}

// HandleListSections returns every section, active or not.
//
// HTTP: GET /api/admin/content
func (h *ContentHandler) HandleListSections(w http.ResponseWriter, r *http.Request) {
	sections, err := h.content.ListSections(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sections)
}

// HandleCreateSection creates a page section.
//
// HTTP: POST /api/admin/content
func (h *ContentHandler) HandleCreateSection(w http.ResponseWriter, r *http.Request) {
	var input model.InsertContentSection
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, err)
		return
	}
	section, err := h.content.CreateSection(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, section)
}

// HandleUpdateSection applies a partial update to a section.
//
// HTTP: PUT /api/admin/content/{id}
func (h *ContentHandler) HandleUpdateSection(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var patch model.ContentSectionPatch
	if err := decodeJSON(r, &patch); err != nil {
		writeError(w, err)
		return
	}
	section, err := h.content.UpdateSection(r.Context(), id, patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, section)
}

// HandleDeleteSection removes a section.
//
// HTTP: DELETE /api/admin/content/{id}
func (h *ContentHandler) HandleDeleteSection(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.content.DeleteSection(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleListActiveServices returns active service offerings in display order.
//
// HTTP: GET /api/services
func (h *ContentHandler) HandleListActiveServices(w http.ResponseWriter, r *http.Request) {
	services, err := h.content.ListActiveServices(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, services)
}

// HandleListServices returns every service offering.
//
// HTTP: GET /api/admin/services
func (h *ContentHandler) HandleListServices(w http.ResponseWriter, r *http.Request) {
	services, err := h.content.ListServices(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, services)
}

// HandleCreateService creates a service offering.
//
// HTTP: POST /api/admin/services
func (h *ContentHandler) HandleCreateService(w http.ResponseWriter, r *http.Request) {
	var input model.InsertService
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, err)
		return
	}
	svc, err := h.content.CreateService(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, svc)
}

// HandleUpdateService applies a partial update to a service offering.
//
// HTTP: PUT /api/admin/services/{id}
func (h *ContentHandler) HandleUpdateService(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var patch model.ServicePatch
	if err := decodeJSON(r, &patch); err != nil {
		writeError(w, err)
		return
	}
	svc, err := h.content.UpdateService(r.Context(), id, patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, svc)
}

// HandleDeleteService removes a service offering.
//
// HTTP: DELETE /api/admin/services/{id}
func (h *ContentHandler) HandleDeleteService(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.content.DeleteService(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleReorderServices rewrites the display order of all services.
//
// HTTP: PUT /api/admin/services/reorder
// BODY: {"ids": [3, 1, 2]}
func (h *ContentHandler) HandleReorderServices(w http.ResponseWriter, r *http.Request) {
	var req reorderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := h.content.ReorderServices(r.Context(), req.IDs); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "order updated"})
}

// HandleListActiveTestimonials returns active testimonials in display order.
//
// HTTP: GET /api/testimonials
func (h *ContentHandler) HandleListActiveTestimonials(w http.ResponseWriter, r *http.Request) {
	testimonials, err := h.content.ListActiveTestimonials(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, testimonials)
}

// HandleListTestimonials returns every testimonial.
//
// HTTP: GET /api/admin/testimonials
func (h *ContentHandler) HandleListTestimonials(w http.ResponseWriter, r *http.Request) {
	testimonials, err := h.content.ListTestimonials(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, testimonials)
}

// HandleCreateTestimonial creates a testimonial.
//
// HTTP: POST /api/admin/testimonials
func (h *ContentHandler) HandleCreateTestimonial(w http.ResponseWriter, r *http.Request) {
	var input model.InsertTestimonial
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, err)
		return
	}
	testimonial, err := h.content.CreateTestimonial(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, testimonial)
}

// HandleUpdateTestimonial applies a partial update to a testimonial.
//
// HTTP: PUT /api/admin/testimonials/{id}
func (h *ContentHandler) HandleUpdateTestimonial(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var patch model.TestimonialPatch
	if err := decodeJSON(r, &patch); err != nil {
		writeError(w, err)
		return
	}
	testimonial, err := h.content.UpdateTestimonial(r.Context(), id, patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, testimonial)
}

// HandleDeleteTestimonial removes a testimonial.
//
// HTTP: DELETE /api/admin/testimonials/{id}
func (h *ContentHandler) HandleDeleteTestimonial(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.content.DeleteTestimonial(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleReorderTestimonials rewrites the display order of all testimonials.
//
// HTTP: PUT /api/admin/testimonials/reorder
func (h *ContentHandler) HandleReorderTestimonials(w http.ResponseWriter, r *http.Request) {
	var req reorderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := h.content.ReorderTestimonials(r.Context(), req.IDs); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "order updated"})
}
