// Package teams provides the teams bounded context module.
package teams

import (
	apphttp "portfolio_backend/internal/http"
	"portfolio_backend/internal/teams/handler"
	"portfolio_backend/internal/teams/repository"
	"portfolio_backend/internal/teams/service"
	"portfolio_backend/platform/db"
	"portfolio_backend/platform/logger"
	"portfolio_backend/platform/validator"
)

// Module is the teams bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
}

// NewModule creates and initializes the teams module with all its dependencies.
func NewModule(q db.Querier, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(q)
	svc := service.New(repo, val, log)

	return &Module{handler: handler.New(svc)}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "teams"
}

// RegisterRoutes mounts team routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	public := ctx.V1.Group("/teams")
	public.GET("", m.handler.List)
	public.GET("/analytics", m.handler.Analytics)
	public.GET("/performance", m.handler.Performance)
	public.GET("/workload", m.handler.Workload)
	public.GET("/stats", m.handler.Stats)
	public.GET("/specialty/:specialty", m.handler.BySpecialty)
	public.GET("/:id", m.handler.GetByID)

	protected := ctx.Protected.Group("/teams")
	protected.POST("", ctx.Access.Require("teams", "create"), m.handler.Create)
	protected.PUT("/:id", ctx.Access.Require("teams", "update"), m.handler.Update)
	protected.DELETE("/:id", ctx.Access.Require("teams", "delete"), m.handler.Delete)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
