// Package projects provides the projects bounded context module: portfolio
// case studies with their client, team and services.
package projects

import (
	apphttp "portfolio_backend/internal/http"
	"portfolio_backend/internal/projects/handler"
	"portfolio_backend/internal/projects/repository"
	"portfolio_backend/internal/projects/service"
	"portfolio_backend/platform/db"
	"portfolio_backend/platform/logger"
	"portfolio_backend/platform/validator"
)

// Module is the projects bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the projects module with all its dependencies.
func NewModule(q db.Querier, val *validator.Validator, log *logger.Logger) *Module {
	svc := service.New(repository.New(q), val, log)
	return &Module{handler: handler.New(svc), service: svc}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "projects"
}

// Service returns the service layer for the search module.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts project routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	public := ctx.V1.Group("/projects")
	public.GET("", m.handler.List)
	public.GET("/featured", m.handler.Featured)
	public.GET("/recent", m.handler.Recent)
	public.GET("/analytics", m.handler.Analytics)
	public.GET("/stats", m.handler.Stats)
	public.GET("/search", m.handler.Search)
	public.GET("/timeline", m.handler.Timeline)
	public.GET("/category/:categoryName", m.handler.ByCategory)
	public.GET("/status/:status", m.handler.ByStatus)
	public.GET("/:id", m.handler.GetByID)
	public.GET("/:id/recommendations", m.handler.Recommendations)

	protected := ctx.Protected.Group("/projects")
	protected.POST("", ctx.Access.Require("projects", "create"), m.handler.Create)
	protected.PUT("/:id", ctx.Access.Require("projects", "update"), m.handler.Update)
	protected.DELETE("/:id", ctx.Access.Require("projects", "delete"), m.handler.Delete)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
