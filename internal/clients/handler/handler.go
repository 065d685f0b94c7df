package handler

import (
	"net/http"

	"portfolio_backend/internal/clients/service"
	"portfolio_backend/internal/resource"
	"portfolio_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

const topLimit = 10

// Handler handles HTTP requests for clients.
type Handler struct {
	svc *service.Service
}

// New creates a new clients handler.
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// List returns a filtered, sorted page of clients.
// GET /api/v1/clients
func (h *Handler) List(c *gin.Context) {
	res, err := h.svc.List(c.Request.Context(), c.Request.URL.Query(), httpkit.GetIdentity(c))
	if httpkit.HandleError(c, err) {
		return
	}
	resource.List(c, res)
}

// Featured returns the newest featured clients.
// GET /api/v1/clients/featured
func (h *Handler) Featured(c *gin.Context) {
	items, err := h.svc.Featured(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	resource.Items(c, items)
}

// Search matches clients by name, industry, contact or location.
// GET /api/v1/clients/search?query=
func (h *Handler) Search(c *gin.Context) {
	items, err := h.svc.Search(c.Request.Context(), c.Query("query"))
	if httpkit.HandleError(c, err) {
		return
	}
	resource.Items(c, items)
}

// ByIndustry returns clients in an industry.
// GET /api/v1/clients/industry/:industry
func (h *Handler) ByIndustry(c *gin.Context) {
	items, err := h.svc.ByIndustry(c.Request.Context(), c.Param("industry"))
	if httpkit.HandleError(c, err) {
		return
	}
	resource.Items(c, items)
}

// Analytics returns the client base breakdown.
// GET /api/v1/clients/analytics
func (h *Handler) Analytics(c *gin.Context) {
	result, err := h.svc.Analytics(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Top returns the clients with the most projects.
// GET /api/v1/clients/top
func (h *Handler) Top(c *gin.Context) {
	items, err := h.svc.Top(c.Request.Context(), resource.Limit(c, "limit", topLimit, 100))
	if httpkit.HandleError(c, err) {
		return
	}
	resource.Items(c, items)
}

// Satisfaction returns per-client testimonial ratings.
// GET /api/v1/clients/satisfaction
func (h *Handler) Satisfaction(c *gin.Context) {
	items, err := h.svc.Satisfaction(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	resource.Items(c, items)
}

// Retention returns repeat-business metrics.
// GET /api/v1/clients/retention
func (h *Handler) Retention(c *gin.Context) {
	result, err := h.svc.Retention(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// GetByID returns a client with its projects.
// GET /api/v1/clients/:id
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

// Create stores a new client.
// POST /api/v1/clients
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
// PUT /api/v1/clients/:id
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

// Delete removes a client.
// DELETE /api/v1/clients/:id
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
