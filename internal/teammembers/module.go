// Package teammembers provides the team members bounded context module.
package teammembers

import (
	apphttp "portfolio_backend/internal/http"
	"portfolio_backend/internal/teammembers/handler"
	"portfolio_backend/internal/teammembers/repository"
	"portfolio_backend/internal/teammembers/service"
	"portfolio_backend/platform/db"
	"portfolio_backend/platform/logger"
	"portfolio_backend/platform/validator"
)

// Module is the team members bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the team members module with all its dependencies.
func NewModule(q db.Querier, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(q)
	svc := service.New(repo, val, log)

	return &Module{
		handler: handler.New(svc),
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "team-members"
}

// Service returns the service layer for the search module.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts team member routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	public := ctx.V1.Group("/team-members")
	public.GET("", m.handler.List)
	public.GET("/featured", m.handler.Featured)
	public.GET("/analytics", m.handler.Analytics)
	public.GET("/stats", m.handler.Stats)
	public.GET("/search", m.handler.Search)
	public.GET("/skills-summary", m.handler.SkillsSummary)
	public.GET("/with-project-count", m.handler.WithProjectCount)
	public.GET("/skills/:skillName", m.handler.BySkill)
	public.GET("/team/:teamId", m.handler.ByTeam)
	public.GET("/:id", m.handler.GetByID)

	protected := ctx.Protected.Group("/team-members")
	protected.POST("", ctx.Access.Require("team-members", "create"), m.handler.Create)
	protected.PUT("/:id", ctx.Access.Require("team-members", "update"), m.handler.Update)
	protected.DELETE("/:id", ctx.Access.Require("team-members", "delete"), m.handler.Delete)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
