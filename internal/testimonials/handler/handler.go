package handler

import (
	"net/http"

	"portfolio_backend/internal/query"
	"portfolio_backend/internal/resource"
	"portfolio_backend/internal/testimonials/service"
	"portfolio_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

const (
	highRatedLimit = 10
	defaultMin     = 4
)

// Handler handles HTTP requests for testimonials.
type Handler struct {
	svc *service.Service
}

// New creates a new testimonials handler.
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// List returns a page of testimonials visible to the caller.
// GET /api/v1/testimonials
func (h *Handler) List(c *gin.Context) {
	res, err := h.svc.List(c.Request.Context(), c.Request.URL.Query(), httpkit.GetIdentity(c))
	if httpkit.HandleError(c, err) {
		return
	}
	resource.List(c, res)
}

// ListAll returns a page of testimonials including unapproved ones.
// GET /api/v1/testimonials/all
func (h *Handler) ListAll(c *gin.Context) {
	res, err := h.svc.ListAll(c.Request.Context(), c.Request.URL.Query())
	if httpkit.HandleError(c, err) {
		return
	}
	resource.List(c, res)
}

// Featured returns the newest featured testimonials.
// GET /api/v1/testimonials/featured
func (h *Handler) Featured(c *gin.Context) {
	items, err := h.svc.Featured(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	resource.Items(c, items)
}

// HighRated returns the best-rated testimonials.
// GET /api/v1/testimonials/high-rated?minRating=4&limit=10
func (h *Handler) HighRated(c *gin.Context) {
	minRating := resource.Limit(c, "minRating", defaultMin, 5)
	limit := resource.Limit(c, "limit", highRatedLimit, query.MaxLimit)
	items, err := h.svc.HighRated(c.Request.Context(), minRating, limit)
	if httpkit.HandleError(c, err) {
		return
	}
	resource.Items(c, items)
}

// ByRating returns testimonials with one rating.
// GET /api/v1/testimonials/rating/:rating
func (h *Handler) ByRating(c *gin.Context) {
	items, err := h.svc.ByRating(c.Request.Context(), c.Param("rating"), httpkit.GetIdentity(c))
	if httpkit.HandleError(c, err) {
		return
	}
	resource.Items(c, items)
}

// ByCategory returns testimonials for a service category.
// GET /api/v1/testimonials/category/:category
func (h *Handler) ByCategory(c *gin.Context) {
	items, err := h.svc.ByCategory(c.Request.Context(), c.Param("category"), httpkit.GetIdentity(c))
	if httpkit.HandleError(c, err) {
		return
	}
	resource.Items(c, items)
}

// ByProject returns the testimonials of a project.
// GET /api/v1/testimonials/project/:projectId
func (h *Handler) ByProject(c *gin.Context) {
	id, ok := resource.ID(c, "projectId")
	if !ok {
		return
	}
	items, err := h.svc.ByProject(c.Request.Context(), id, httpkit.GetIdentity(c))
	if httpkit.HandleError(c, err) {
		return
	}
	resource.Items(c, items)
}

// ByClient returns the testimonials of a client.
// GET /api/v1/testimonials/client/:clientId
func (h *Handler) ByClient(c *gin.Context) {
	id, ok := resource.ID(c, "clientId")
	if !ok {
		return
	}
	items, err := h.svc.ByClient(c.Request.Context(), id, httpkit.GetIdentity(c))
	if httpkit.HandleError(c, err) {
		return
	}
	resource.Items(c, items)
}

// Analytics returns the testimonial breakdown.
// GET /api/v1/testimonials/analytics
func (h *Handler) Analytics(c *gin.Context) {
	result, err := h.svc.Analytics(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// GetByID returns a testimonial.
// GET /api/v1/testimonials/:id
func (h *Handler) GetByID(c *gin.Context) {
	id, ok := resource.ID(c, "id")
	if !ok {
		return
	}
	result, err := h.svc.GetByID(c.Request.Context(), id, httpkit.GetIdentity(c))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Submit stores a public testimonial pending approval.
// POST /api/v1/testimonials
func (h *Handler) Submit(c *gin.Context) {
	body, ok := resource.Body(c)
	if !ok {
		return
	}
	result, err := h.svc.Submit(c.Request.Context(), body)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Data(c, http.StatusCreated, result)
}

// Update applies a partial update.
// PUT /api/v1/testimonials/:id
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

// Approve publishes a testimonial.
// PATCH /api/v1/testimonials/:id/approve
func (h *Handler) Approve(c *gin.Context) {
	id, ok := resource.ID(c, "id")
	if !ok {
		return
	}
	result, err := h.svc.Approve(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Message(c, http.StatusOK, "Testimonial approved successfully", result)
}

// Reject withdraws a testimonial.
// PATCH /api/v1/testimonials/:id/reject
func (h *Handler) Reject(c *gin.Context) {
	id, ok := resource.ID(c, "id")
	if !ok {
		return
	}
	result, err := h.svc.Reject(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Message(c, http.StatusOK, "Testimonial rejected", result)
}

// Delete removes a testimonial.
// DELETE /api/v1/testimonials/:id
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
