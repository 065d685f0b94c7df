// Package services provides the services bounded context module: the
// company's service catalogue with its related projects.
package services

import (
	apphttp "portfolio_backend/internal/http"
	"portfolio_backend/internal/services/handler"
	"portfolio_backend/internal/services/repository"
	"portfolio_backend/internal/services/service"
	"portfolio_backend/platform/db"
	"portfolio_backend/platform/logger"
	"portfolio_backend/platform/validator"
)

// Module is the services bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the services module with all its dependencies.
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
	return "services"
}

// Service returns the service layer for the search module.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts service routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	public := ctx.V1.Group("/services")
	public.GET("", m.handler.List)
	public.GET("/featured", m.handler.Featured)
	public.GET("/popular", m.handler.Popular)
	public.GET("/analytics", m.handler.Analytics)
	public.GET("/stats", m.handler.Stats)
	public.GET("/search", m.handler.Search)
	public.GET("/category/:categoryName", m.handler.ByCategory)
	public.GET("/with-project-count", m.handler.WithProjectCount)
	public.GET("/:id", m.handler.GetByID)

	protected := ctx.Protected.Group("/services")
	protected.POST("", ctx.Access.Require("services", "create"), m.handler.Create)
	protected.PUT("/:id", ctx.Access.Require("services", "update"), m.handler.Update)
	protected.DELETE("/:id", ctx.Access.Require("services", "delete"), m.handler.Delete)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
