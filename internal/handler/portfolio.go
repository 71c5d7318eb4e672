package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/studio-site/internal/model"
	"github.com/sakif/studio-site/internal/service"
)

// PortfolioHandler serves the showcase reel. The public routes apply the
// isActive gate; featured additionally requires isFeatured, so deactivating
// a project pulls it from both lists regardless of its featured flag.
type PortfolioHandler struct {
	portfolio *service.PortfolioService
	logger    *slog.Logger
}

func NewPortfolioHandler(portfolio *service.PortfolioService, logger *slog.Logger) *PortfolioHandler {
	return &PortfolioHandler{portfolio: portfolio, logger: logger}
}

// HandleListActive returns active portfolio projects in display order.
//
// HTTP: GET /api/portfolio
func (h *PortfolioHandler) HandleListActive(w http.ResponseWriter, r *http.Request) {
	projects, err := h.portfolio.ListActive(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

// HandleListFeatured returns projects that are both active and featured.
//
// HTTP: GET /api/portfolio/featured
func (h *PortfolioHandler) HandleListFeatured(w http.ResponseWriter, r *http.Request) {
	projects, err := h.portfolio.ListFeatured(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

// HandleList returns every portfolio project, active or not.
//
// HTTP: GET /api/admin/portfolio
func (h *PortfolioHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	projects, err := h.portfolio.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

// HandleCreate creates a portfolio project.
//
// HTTP: POST /api/admin/portfolio
func (h *PortfolioHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input model.InsertPortfolioProject
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, err)
		return
	}
	project, err := h.portfolio.Create(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, project)
}

// HandleUpdate applies a partial update to a portfolio project.
//
// HTTP: PUT /api/admin/portfolio/{id}
func (h *PortfolioHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var patch model.PortfolioProjectPatch
	if err := decodeJSON(r, &patch); err != nil {
		writeError(w, err)
		return
	}
	project, err := h.portfolio.Update(r.Context(), id, patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, project)
}

// HandleDelete removes a portfolio project.
//
// HTTP: DELETE /api/admin/portfolio/{id}
func (h *PortfolioHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.portfolio.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleReorder rewrites the display order of all portfolio projects.
//
// HTTP: PUT /api/admin/portfolio/reorder
func (h *PortfolioHandler) HandleReorder(w http.ResponseWriter, r *http.Request) {
	var req reorderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := h.portfolio.Reorder(r.Context(), req.IDs); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "order updated"})
}
