// Package clients provides the clients bounded context module. Client records
// carry contact details, so every read except the featured list requires a
// staff role.
package clients

import (
	"portfolio_backend/internal/clients/handler"
	"portfolio_backend/internal/clients/repository"
	"portfolio_backend/internal/clients/service"
	apphttp "portfolio_backend/internal/http"
	"portfolio_backend/platform/db"
	"portfolio_backend/platform/logger"
	"portfolio_backend/platform/validator"
)

// Module is the clients bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
}

// NewModule creates and initializes the clients module with all its dependencies.
func NewModule(q db.Querier, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(q)
	svc := service.New(repo, val, log)

	return &Module{handler: handler.New(svc)}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "clients"
}

// RegisterRoutes mounts client routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.GET("/clients/featured", m.handler.Featured)

	read := ctx.Access.Require("clients", "read")
	report := ctx.Access.Require("clients", "analytics")

	protected := ctx.Protected.Group("/clients")
	protected.GET("", read, m.handler.List)
	protected.GET("/search", read, m.handler.Search)
	protected.GET("/industry/:industry", read, m.handler.ByIndustry)
	protected.GET("/analytics", report, m.handler.Analytics)
	protected.GET("/top", report, m.handler.Top)
	protected.GET("/satisfaction", report, m.handler.Satisfaction)
	protected.GET("/retention", report, m.handler.Retention)
	protected.GET("/:id", read, m.handler.GetByID)
	protected.POST("", ctx.Access.Require("clients", "create"), m.handler.Create)
	protected.PUT("/:id", ctx.Access.Require("clients", "update"), m.handler.Update)
	protected.DELETE("/:id", ctx.Access.Require("clients", "delete"), m.handler.Delete)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
