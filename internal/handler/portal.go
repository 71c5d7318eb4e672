package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/studio-site/internal/auth"
	"github.com/sakif/studio-site/internal/model"
	"github.com/sakif/studio-site/internal/service"
)

// PortalHandler serves client-project data on two surfaces: the admin
// dashboard (full CRUD over projects, assets, feedback, milestones) and the
// client portal (read access scoped to the caller's own projects, plus
// feedback submission).
type PortalHandler struct {
	portal *service.PortalService
	logger *slog.Logger
}

func NewPortalHandler(portal *service.PortalService, logger *slog.Logger) *PortalHandler {
	return &PortalHandler{portal: portal, logger: logger}
}

// --- Admin: projects ---

// HandleListProjects returns every client project.
//
// HTTP: GET /api/admin/projects
func (h *PortalHandler) HandleListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.portal.ListProjects(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

// HandleGetProject returns a single project.
//
// HTTP: GET /api/admin/projects/{id}
func (h *PortalHandler) HandleGetProject(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	project, err := h.portal.GetProject(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, project)
}

// HandleCreateProject creates a client project.
//
// HTTP: POST /api/admin/projects
func (h *PortalHandler) HandleCreateProject(w http.ResponseWriter, r *http.Request) {
	var input model.InsertClientProject
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, err)
		return
	}
	project, err := h.portal.CreateProject(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, project)
}

// HandleUpdateProject applies a partial update to a project.
//
// HTTP: PUT /api/admin/projects/{id}
func (h *PortalHandler) HandleUpdateProject(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var patch model.ClientProjectPatch
	if err := decodeJSON(r, &patch); err != nil {
		writeError(w, err)
		return
	}
	project, err := h.portal.UpdateProject(r.Context(), id, patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, project)
}

// HandleDeleteProject removes a project and, through the schema's cascade,
// its assets, feedback, and milestones.
//
// HTTP: DELETE /api/admin/projects/{id}
func (h *PortalHandler) HandleDeleteProject(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.portal.DeleteProject(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- Admin: assets ---

// HandleListProjectAssets returns a project's assets.
//
// HTTP: GET /api/admin/projects/{id}/assets
func (h *PortalHandler) HandleListProjectAssets(w http.ResponseWriter, r *http.Request) {
	projectID, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	assets, err := h.portal.ListAssets(r.Context(), projectID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, assets)
}

// HandleCreateAsset registers an asset URL under a project. The uploader is
// the authenticated admin.
//
// HTTP: POST /api/admin/projects/{id}/assets
func (h *PortalHandler) HandleCreateAsset(w http.ResponseWriter, r *http.Request) {
	projectID, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var input model.InsertProjectAsset
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, err)
		return
	}

	uploadedBy, _ := auth.UserIDFromContext(r.Context())

	asset, err := h.portal.CreateAsset(r.Context(), projectID, uploadedBy, input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, asset)
}

// HandleUpdateAsset applies a partial update to an asset.
//
// HTTP: PUT /api/admin/assets/{id}
func (h *PortalHandler) HandleUpdateAsset(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var patch model.ProjectAssetPatch
	if err := decodeJSON(r, &patch); err != nil {
		writeError(w, err)
		return
	}
	asset, err := h.portal.UpdateAsset(r.Context(), id, patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, asset)
}

// HandleDeleteAsset removes an asset reference.
//
// HTTP: DELETE /api/admin/assets/{id}
func (h *PortalHandler) HandleDeleteAsset(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.portal.DeleteAsset(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- Admin: feedback ---

// HandleListProjectFeedback returns a project's feedback thread.
//
// HTTP: GET /api/admin/projects/{id}/feedback
func (h *PortalHandler) HandleListProjectFeedback(w http.ResponseWriter, r *http.Request) {
	projectID, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	feedback, err := h.portal.ListFeedback(r.Context(), projectID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, feedback)
}

// HandleCreateFeedback records feedback on a project as the authenticated
// admin.
//
// HTTP: POST /api/admin/projects/{id}/feedback
func (h *PortalHandler) HandleCreateFeedback(w http.ResponseWriter, r *http.Request) {
	projectID, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var input model.InsertProjectFeedback
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, err)
		return
	}

	userID, _ := auth.UserIDFromContext(r.Context())

	feedback, err := h.portal.CreateFeedback(r.Context(), projectID, userID, input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, feedback)
}

// HandleUpdateFeedback applies a partial update, typically moving status
// through open → addressed → resolved.
//
// HTTP: PUT /api/admin/feedback/{id}
func (h *PortalHandler) HandleUpdateFeedback(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var patch model.ProjectFeedbackPatch
	if err := decodeJSON(r, &patch); err != nil {
		writeError(w, err)
		return
	}
	feedback, err := h.portal.UpdateFeedback(r.Context(), id, patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, feedback)
}

// HandleDeleteFeedback removes a feedback entry.
//
// HTTP: DELETE /api/admin/feedback/{id}
func (h *PortalHandler) HandleDeleteFeedback(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.portal.DeleteFeedback(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- Admin: milestones ---

// HandleListProjectMilestones returns a project's milestones in rank order.
//
// HTTP: GET /api/admin/projects/{id}/milestones
func (h *PortalHandler) HandleListProjectMilestones(w http.ResponseWriter, r *http.Request) {
	projectID, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	milestones, err := h.portal.ListMilestones(r.Context(), projectID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, milestones)
}

// HandleCreateMilestone adds a milestone to a project's timeline.
//
// HTTP: POST /api/admin/projects/{id}/milestones
func (h *PortalHandler) HandleCreateMilestone(w http.ResponseWriter, r *http.Request) {
	projectID, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var input model.InsertProjectMilestone
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, err)
		return
	}
	milestone, err := h.portal.CreateMilestone(r.Context(), projectID, input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, milestone)
}

// HandleUpdateMilestone applies a partial update. Toggling isCompleted moves
// completedAt accordingly.
//
// HTTP: PUT /api/admin/milestones/{id}
func (h *PortalHandler) HandleUpdateMilestone(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var patch model.ProjectMilestonePatch
	if err := decodeJSON(r, &patch); err != nil {
		writeError(w, err)
		return
	}
	milestone, err := h.portal.UpdateMilestone(r.Context(), id, patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, milestone)
}

// HandleDeleteMilestone removes a milestone.
//
// HTTP: DELETE /api/admin/milestones/{id}
func (h *PortalHandler) HandleDeleteMilestone(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.portal.DeleteMilestone(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleReorderMilestones rewrites the timeline order within one project.
//
// HTTP: PUT /api/admin/projects/{id}/milestones/reorder
func (h *PortalHandler) HandleReorderMilestones(w http.ResponseWriter, r *http.Request) {
	projectID, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req reorderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := h.portal.ReorderMilestones(r.Context(), projectID, req.IDs); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "order updated"})
}

// --- Client portal ---

// HandleClientProjects returns the caller's projects. Admins see every
// project; clients only their own.
//
// HTTP: GET /api/client/projects
func (h *PortalHandler) HandleClientProjects(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.IdentityFromContext(r.Context())

	projects, err := h.portal.ProjectsFor(r.Context(), identity)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

// HandleClientAssets returns the assets of one visible project. A project id
// the caller can't see gets 404, never 403.
//
// HTTP: GET /api/client/assets?projectId=
func (h *PortalHandler) HandleClientAssets(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.IdentityFromContext(r.Context())

	projectID, err := projectIDQuery(r)
	if err != nil {
		writeError(w, err)
		return
	}
	assets, err := h.portal.AssetsFor(r.Context(), identity, projectID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, assets)
}

// HandleClientFeedback returns the feedback thread of one visible project.
//
// HTTP: GET /api/client/feedback?projectId=
func (h *PortalHandler) HandleClientFeedback(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.IdentityFromContext(r.Context())

	projectID, err := projectIDQuery(r)
	if err != nil {
		writeError(w, err)
		return
	}
	feedback, err := h.portal.FeedbackFor(r.Context(), identity, projectID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, feedback)
}

// clientFeedbackRequest carries the project id in the body since the portal
// POST route has no path parameter.
type clientFeedbackRequest struct {
	ProjectID int64  `json:"projectId"`
	AssetID   *int64 `json:"assetId"`
	Comment   string `json:"comment"`
	Timestamp string `json:"timestamp"`
	Status    string `json:"status"`
	Priority  string `json:"priority"`
}

// HandleSubmitFeedback records a client's comment on their own project. The
// author is always the session user.
//
// HTTP: POST /api/client/feedback
func (h *PortalHandler) HandleSubmitFeedback(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.IdentityFromContext(r.Context())

	var req clientFeedbackRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	input := model.InsertProjectFeedback{
		AssetID:   req.AssetID,
		Comment:   req.Comment,
		Timestamp: req.Timestamp,
		Status:    req.Status,
		Priority:  req.Priority,
	}
	feedback, err := h.portal.SubmitFeedback(r.Context(), identity, req.ProjectID, input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, feedback)
}

// HandleClientMilestones returns the milestones of one visible project along
// with its completion summary.
//
// HTTP: GET /api/client/milestones?projectId=
func (h *PortalHandler) HandleClientMilestones(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.IdentityFromContext(r.Context())

	projectID, err := projectIDQuery(r)
	if err != nil {
		writeError(w, err)
		return
	}
	overview, err := h.portal.MilestonesFor(r.Context(), identity, projectID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, overview)
}
