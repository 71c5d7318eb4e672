package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/studio-site/internal/auth"
	"github.com/sakif/studio-site/internal/model"
	"github.com/sakif/studio-site/internal/service"
)

// BlogHandler serves blog posts. The public routes show only published
// posts; admins see drafts too and authorship is taken from the session.
type BlogHandler struct {
	blog   *service.BlogService
	logger *slog.Logger
}

func NewBlogHandler(blog *service.BlogService, logger *slog.Logger) *BlogHandler {
	return &BlogHandler{blog: blog, logger: logger}
}

// HandleListPublished returns published posts, newest first.
//
// HTTP: GET /api/blog
func (h *BlogHandler) HandleListPublished(w http.ResponseWriter, r *http.Request) {
	posts, err := h.blog.ListPublished(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

// HandleGetBySlug returns a single post by slug, 404 when no post carries it.
//
// HTTP: GET /api/blog/{slug}
func (h *BlogHandler) HandleGetBySlug(w http.ResponseWriter, r *http.Request) {
	post, err := h.blog.GetBySlug(r.Context(), r.PathValue("slug"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// HandleList returns every post including drafts.
//
// HTTP: GET /api/admin/blog
func (h *BlogHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	posts, err := h.blog.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

// HandleCreate creates a post. The author is the authenticated admin.
//
// HTTP: POST /api/admin/blog
func (h *BlogHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input model.InsertBlogPost
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, err)
		return
	}

	// RequireAuth has already validated the session on this route.
	authorID, _ := auth.UserIDFromContext(r.Context())

	post, err := h.blog.Create(r.Context(), input, authorID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, post)
}

// HandleUpdate applies a partial update to a post. Toggling isPublished
// moves publishedAt accordingly.
//
// HTTP: PUT /api/admin/blog/{id}
func (h *BlogHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var patch model.BlogPostPatch
	if err := decodeJSON(r, &patch); err != nil {
		writeError(w, err)
		return
	}
	post, err := h.blog.Update(r.Context(), id, patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// HandleDelete removes a post.
//
// HTTP: DELETE /api/admin/blog/{id}
func (h *BlogHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.blog.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
