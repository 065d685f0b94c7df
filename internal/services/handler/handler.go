package handler

import (
	"net/http"

	"portfolio_backend/internal/resource"
	"portfolio_backend/internal/services/service"
	"portfolio_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

const popularLimit = 5

// Handler handles HTTP requests for services.
type Handler struct {
	svc *service.Service
}

// New creates a new services handler.
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// List returns a filtered, sorted page of services.
// GET /api/v1/services
func (h *Handler) List(c *gin.Context) {
	res, err := h.svc.List(c.Request.Context(), c.Request.URL.Query(), httpkit.GetIdentity(c))
	if httpkit.HandleError(c, err) {
		return
	}
	resource.List(c, res)
}

// Featured returns the newest featured services.
// GET /api/v1/services/featured
func (h *Handler) Featured(c *gin.Context) {
	items, err := h.svc.Featured(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	resource.Items(c, items)
}

// Popular returns services ordered by project usage.
// GET /api/v1/services/popular
func (h *Handler) Popular(c *gin.Context) {
	items, err := h.svc.Popular(c.Request.Context(), resource.Limit(c, "limit", popularLimit, 100))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, items)
}

// Analytics returns the category breakdown.
// GET /api/v1/services/analytics
func (h *Handler) Analytics(c *gin.Context) {
	result, err := h.svc.Analytics(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Stats returns total and featured counts.
// GET /api/v1/services/stats
func (h *Handler) Stats(c *gin.Context) {
	result, err := h.svc.Stats(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Search ranks services matching q.
// GET /api/v1/services/search?q=
func (h *Handler) Search(c *gin.Context) {
	items, err := h.svc.Search(c.Request.Context(), c.Query("q"))
	if httpkit.HandleError(c, err) {
		return
	}
	resource.Items(c, items)
}

// ByCategory returns services whose category matches the path segment.
// GET /api/v1/services/category/:categoryName
func (h *Handler) ByCategory(c *gin.Context) {
	items, err := h.svc.ByCategory(c.Request.Context(), c.Param("categoryName"))
	if httpkit.HandleError(c, err) {
		return
	}
	resource.Items(c, items)
}

// WithProjectCount returns services annotated with their project count.
// GET /api/v1/services/with-project-count
func (h *Handler) WithProjectCount(c *gin.Context) {
	items, err := h.svc.WithProjectCount(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	resource.Items(c, items)
}

// GetByID returns a service with its related projects.
// GET /api/v1/services/:id
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

// Create stores a new service.
// POST /api/v1/services
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
// PUT /api/v1/services/:id
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

// Delete removes a service.
// DELETE /api/v1/services/:id
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
