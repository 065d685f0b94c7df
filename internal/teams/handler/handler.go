package handler

import (
	"net/http"

	"portfolio_backend/internal/resource"
	"portfolio_backend/internal/teams/service"
	"portfolio_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Handler handles HTTP requests for teams.
type Handler struct {
	svc *service.Service
}

// New creates a new teams handler.
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// List returns a filtered, sorted page of teams.
// GET /api/v1/teams
func (h *Handler) List(c *gin.Context) {
	res, err := h.svc.List(c.Request.Context(), c.Request.URL.Query(), httpkit.GetIdentity(c))
	if httpkit.HandleError(c, err) {
		return
	}
	resource.List(c, res)
}

// Analytics returns the size, tag and activity breakdown.
// GET /api/v1/teams/analytics
func (h *Handler) Analytics(c *gin.Context) {
	result, err := h.svc.Analytics(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Performance returns projects per member for every team.
// GET /api/v1/teams/performance
func (h *Handler) Performance(c *gin.Context) {
	items, err := h.svc.Performance(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, items)
}

// Workload returns active projects per member for every team.
// GET /api/v1/teams/workload
func (h *Handler) Workload(c *gin.Context) {
	items, err := h.svc.Workload(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, items)
}

// Stats returns active and inactive counts.
// GET /api/v1/teams/stats
func (h *Handler) Stats(c *gin.Context) {
	result, err := h.svc.Stats(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// BySpecialty returns teams tagged with or specializing in a topic.
// GET /api/v1/teams/specialty/:specialty
func (h *Handler) BySpecialty(c *gin.Context) {
	items, err := h.svc.BySpecialty(c.Request.Context(), c.Param("specialty"))
	if httpkit.HandleError(c, err) {
		return
	}
	resource.Items(c, items)
}

// GetByID returns a fully populated team.
// GET /api/v1/teams/:id
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

// Create stores a new team.
// POST /api/v1/teams
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
// PUT /api/v1/teams/:id
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

// Delete removes a team.
// DELETE /api/v1/teams/:id
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
