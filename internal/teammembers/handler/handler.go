package handler

import (
	"net/http"

	"portfolio_backend/internal/resource"
	"portfolio_backend/internal/teammembers/service"
	"portfolio_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Handler handles HTTP requests for team members.
type Handler struct {
	svc *service.Service
}

// New creates a new team members handler.
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// List returns a filtered, sorted page of team members.
// GET /api/v1/team-members
func (h *Handler) List(c *gin.Context) {
	res, err := h.svc.List(c.Request.Context(), c.Request.URL.Query(), httpkit.GetIdentity(c))
	if httpkit.HandleError(c, err) {
		return
	}
	resource.List(c, res)
}

// Featured returns the newest featured members.
// GET /api/v1/team-members/featured
func (h *Handler) Featured(c *gin.Context) {
	items, err := h.svc.Featured(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	resource.Items(c, items)
}

// Analytics returns the skill, position and experience breakdown.
// GET /api/v1/team-members/analytics
func (h *Handler) Analytics(c *gin.Context) {
	result, err := h.svc.Analytics(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Stats returns total and featured counts.
// GET /api/v1/team-members/stats
func (h *Handler) Stats(c *gin.Context) {
	result, err := h.svc.Stats(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Search matches members by name, position, skill or bio.
// GET /api/v1/team-members/search?query=
func (h *Handler) Search(c *gin.Context) {
	items, err := h.svc.Search(c.Request.Context(), c.Query("query"))
	if httpkit.HandleError(c, err) {
		return
	}
	resource.Items(c, items)
}

// SkillsSummary lists every skill with the members holding it.
// GET /api/v1/team-members/skills-summary
func (h *Handler) SkillsSummary(c *gin.Context) {
	items, err := h.svc.SkillsSummary(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, items)
}

// WithProjectCount returns members annotated with their project count.
// GET /api/v1/team-members/with-project-count
func (h *Handler) WithProjectCount(c *gin.Context) {
	items, err := h.svc.WithProjectCount(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	resource.Items(c, items)
}

// BySkill returns members with a matching skill.
// GET /api/v1/team-members/skills/:skillName
func (h *Handler) BySkill(c *gin.Context) {
	items, err := h.svc.BySkill(c.Request.Context(), c.Param("skillName"))
	if httpkit.HandleError(c, err) {
		return
	}
	resource.Items(c, items)
}

// ByTeam returns the members of a team.
// GET /api/v1/team-members/team/:teamId
func (h *Handler) ByTeam(c *gin.Context) {
	teamID, ok := resource.ID(c, "teamId")
	if !ok {
		return
	}
	items, err := h.svc.ByTeam(c.Request.Context(), teamID)
	if httpkit.HandleError(c, err) {
		return
	}
	resource.Items(c, items)
}

// GetByID returns a member with its team and projects.
// GET /api/v1/team-members/:id
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

// Create stores a new team member.
// POST /api/v1/team-members
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
// PUT /api/v1/team-members/:id
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

// Delete removes a team member.
// DELETE /api/v1/team-members/:id
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
