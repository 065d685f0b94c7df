package handler

import (
	"net/http"

	"portfolio_backend/internal/projects/service"
	"portfolio_backend/internal/projects/transport"
	"portfolio_backend/internal/resource"
	"portfolio_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

const (
	recentLimit         = 10
	recommendationLimit = 5
	msgInvalidTimeline  = "year and month must be numbers"
)

// Handler handles HTTP requests for projects.
type Handler struct {
	svc *service.Service
}

// New creates a new projects handler.
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// List returns a filtered, sorted page of projects.
// GET /api/v1/projects
func (h *Handler) List(c *gin.Context) {
	res, err := h.svc.List(c.Request.Context(), c.Request.URL.Query(), httpkit.GetIdentity(c))
	if httpkit.HandleError(c, err) {
		return
	}
	resource.List(c, res)
}

// Featured returns the newest featured projects.
// GET /api/v1/projects/featured
func (h *Handler) Featured(c *gin.Context) {
	items, err := h.svc.Featured(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	resource.Items(c, items)
}

// Recent returns the newest projects.
// GET /api/v1/projects/recent
func (h *Handler) Recent(c *gin.Context) {
	items, err := h.svc.Recent(c.Request.Context(), resource.Limit(c, "limit", recentLimit, 100))
	if httpkit.HandleError(c, err) {
		return
	}
	resource.Items(c, items)
}

// Analytics returns the portfolio breakdown.
// GET /api/v1/projects/analytics
func (h *Handler) Analytics(c *gin.Context) {
	result, err := h.svc.Analytics(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Stats returns total and featured counts.
// GET /api/v1/projects/stats
func (h *Handler) Stats(c *gin.Context) {
	result, err := h.svc.Stats(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Search ranks projects matching q.
// GET /api/v1/projects/search?q=
func (h *Handler) Search(c *gin.Context) {
	items, err := h.svc.Search(c.Request.Context(), c.Query("q"))
	if httpkit.HandleError(c, err) {
		return
	}
	resource.Items(c, items)
}

// Timeline lists projects by start or completion period.
// GET /api/v1/projects/timeline?year=&month=
func (h *Handler) Timeline(c *gin.Context) {
	var req transport.TimelineRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidTimeline, nil)
		return
	}
	items, err := h.svc.Timeline(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	resource.Items(c, items)
}

// ByCategory returns projects whose category matches the path segment.
// GET /api/v1/projects/category/:categoryName
func (h *Handler) ByCategory(c *gin.Context) {
	items, err := h.svc.ByCategory(c.Request.Context(), c.Param("categoryName"))
	if httpkit.HandleError(c, err) {
		return
	}
	resource.Items(c, items)
}

// ByStatus returns projects in one status.
// GET /api/v1/projects/status/:status
func (h *Handler) ByStatus(c *gin.Context) {
	items, err := h.svc.ByStatus(c.Request.Context(), c.Param("status"))
	if httpkit.HandleError(c, err) {
		return
	}
	resource.Items(c, items)
}

// GetByID returns a fully populated project.
// GET /api/v1/projects/:id
func (h *Handler) GetByID(c *gin.Context) {
	id, ok := resource.ID(c, "id")
	if !ok {
		return
	}
	result, err := h.svc.GetByID(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Recommendations returns projects similar to the given one.
// GET /api/v1/projects/:id/recommendations
func (h *Handler) Recommendations(c *gin.Context) {
	id, ok := resource.ID(c, "id")
	if !ok {
		return
	}
	items, err := h.svc.Recommendations(c.Request.Context(), id, resource.Limit(c, "limit", recommendationLimit, 50))
	if httpkit.HandleError(c, err) {
		return
	}
	resource.Items(c, items)
}

// Create stores a new project.
// POST /api/v1/projects
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
// PUT /api/v1/projects/:id
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

// Delete removes a project.
// DELETE /api/v1/projects/:id
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
