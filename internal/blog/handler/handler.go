package handler

import (
	"net/http"

	"portfolio_backend/internal/blog/service"
	"portfolio_backend/internal/blog/transport"
	"portfolio_backend/internal/query"
	"portfolio_backend/internal/resource"
	"portfolio_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

const (
	popularLimit = 10
	pageLimit    = 10
	relatedLimit = 5

	msgCommentQueued = "Comment submitted successfully. It will be visible after approval."
)

// Handler handles HTTP requests for blog posts.
type Handler struct {
	svc *service.Service
}

// New creates a new blog handler.
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// List returns a page of posts visible to the caller.
// GET /api/v1/blog
func (h *Handler) List(c *gin.Context) {
	res, err := h.svc.List(c.Request.Context(), c.Request.URL.Query(), httpkit.GetIdentity(c))
	if httpkit.HandleError(c, err) {
		return
	}
	resource.List(c, res)
}

// ListAll returns a page of posts in any status.
// GET /api/v1/blog/all
func (h *Handler) ListAll(c *gin.Context) {
	res, err := h.svc.ListAll(c.Request.Context(), c.Request.URL.Query())
	if httpkit.HandleError(c, err) {
		return
	}
	resource.List(c, res)
}

// Featured returns the newest featured posts.
// GET /api/v1/blog/featured
func (h *Handler) Featured(c *gin.Context) {
	items, err := h.svc.Featured(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	resource.Items(c, items)
}

// Popular ranks posts by views.
// GET /api/v1/blog/popular?limit=&timeframe=week|month|year|all
func (h *Handler) Popular(c *gin.Context) {
	limit := resource.Limit(c, "limit", popularLimit, query.MaxLimit)
	items, err := h.svc.Popular(c.Request.Context(), limit, c.Query("timeframe"))
	if httpkit.HandleError(c, err) {
		return
	}
	resource.Items(c, items)
}

// Search ranks posts by full-text relevance.
// GET /api/v1/blog/search?q=
func (h *Handler) Search(c *gin.Context) {
	items, err := h.svc.Search(c.Request.Context(), c.Query("q"))
	if httpkit.HandleError(c, err) {
		return
	}
	resource.Items(c, items)
}

// ByCategory pages through a category.
// GET /api/v1/blog/category/:category
func (h *Handler) ByCategory(c *gin.Context) {
	page, _ := query.Paging(c.Request.URL.Query())
	limit := resource.Limit(c, "limit", pageLimit, query.MaxLimit)
	res, err := h.svc.ByCategory(c.Request.Context(), c.Param("category"), page, limit, httpkit.GetIdentity(c))
	if httpkit.HandleError(c, err) {
		return
	}
	resource.List(c, res)
}

// ByTag pages through a tag.
// GET /api/v1/blog/tags/:tagName
func (h *Handler) ByTag(c *gin.Context) {
	page, _ := query.Paging(c.Request.URL.Query())
	limit := resource.Limit(c, "limit", pageLimit, query.MaxLimit)
	res, err := h.svc.ByTag(c.Request.Context(), c.Param("tagName"), page, limit, httpkit.GetIdentity(c))
	if httpkit.HandleError(c, err) {
		return
	}
	resource.List(c, res)
}

// GetBySlug returns a post and counts the view.
// GET /api/v1/blog/slug/:slug
func (h *Handler) GetBySlug(c *gin.Context) {
	post, err := h.svc.GetBySlug(c.Request.Context(), c.Param("slug"), httpkit.GetIdentity(c))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, post)
}

// Related returns posts sharing a category or tag.
// GET /api/v1/blog/:id/related
func (h *Handler) Related(c *gin.Context) {
	id, ok := resource.ID(c, "id")
	if !ok {
		return
	}
	items, err := h.svc.Related(c.Request.Context(), id, resource.Limit(c, "limit", relatedLimit, 20))
	if httpkit.HandleError(c, err) {
		return
	}
	resource.Items(c, items)
}

// Like counts a like.
// POST /api/v1/blog/:id/like
func (h *Handler) Like(c *gin.Context) {
	id, ok := resource.ID(c, "id")
	if !ok {
		return
	}
	result, err := h.svc.Like(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// AddComment queues a comment for moderation.
// POST /api/v1/blog/:id/comments
func (h *Handler) AddComment(c *gin.Context) {
	id, ok := resource.ID(c, "id")
	if !ok {
		return
	}
	var req transport.CommentRequest
	if !resource.Bind(c, &req) {
		return
	}
	if httpkit.HandleError(c, h.svc.AddComment(c.Request.Context(), id, req)) {
		return
	}
	httpkit.Message(c, http.StatusCreated, msgCommentQueued, nil)
}

// Analytics returns the publishing breakdown.
// GET /api/v1/blog/analytics
func (h *Handler) Analytics(c *gin.Context) {
	result, err := h.svc.Analytics(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Create stores a new post.
// POST /api/v1/blog
func (h *Handler) Create(c *gin.Context) {
	body, ok := resource.Body(c)
	if !ok {
		return
	}
	result, err := h.svc.Create(c.Request.Context(), body)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Data(c, http.StatusCreated, result)
}

// Update applies a partial update.
// PUT /api/v1/blog/:id
func (h *Handler) Update(c *gin.Context) {
	id, ok := resource.ID(c, "id")
	if !ok {
		return
	}
	body, ok := resource.Body(c)
	if !ok {
		return
	}
	result, err := h.svc.Update(c.Request.Context(), id, body)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Delete removes a post.
// DELETE /api/v1/blog/:id
func (h *Handler) Delete(c *gin.Context) {
	id, ok := resource.ID(c, "id")
	if !ok {
		return
	}
	if httpkit.HandleError(c, h.svc.Delete(c.Request.Context(), id)) {
		return
	}
	httpkit.NoContent(c)
}
