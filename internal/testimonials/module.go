// Package testimonials provides the testimonials bounded context module.
// Public submissions land unapproved and stay hidden until moderated.
package testimonials

import (
	apphttp "portfolio_backend/internal/http"
	"portfolio_backend/internal/testimonials/handler"
	"portfolio_backend/internal/testimonials/repository"
	"portfolio_backend/internal/testimonials/service"
	"portfolio_backend/platform/db"
	"portfolio_backend/platform/logger"
	"portfolio_backend/platform/validator"
)

// Module is the testimonials bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	svc     *service.Service
}

// NewModule creates and initializes the testimonials module with all its dependencies.
func NewModule(q db.Querier, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(q)
	svc := service.New(repo, val, log)

	return &Module{handler: handler.New(svc), svc: svc}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "testimonials"
}

// Service exposes the testimonials service to the cross-entity search.
func (m *Module) Service() *service.Service {
	return m.svc
}

// RegisterRoutes mounts testimonial routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	public := ctx.V1.Group("/testimonials")
	public.GET("", m.handler.List)
	public.GET("/featured", m.handler.Featured)
	public.GET("/high-rated", m.handler.HighRated)
	public.GET("/analytics", m.handler.Analytics)
	public.GET("/rating/:rating", m.handler.ByRating)
	public.GET("/category/:category", m.handler.ByCategory)
	public.GET("/project/:projectId", m.handler.ByProject)
	public.GET("/client/:clientId", m.handler.ByClient)
	public.GET("/:id", m.handler.GetByID)
	public.POST("", ctx.Limiters.Contact, m.handler.Submit)

	moderate := ctx.Access.Require("testimonials", "approve")

	protected := ctx.Protected.Group("/testimonials")
	protected.GET("/all", ctx.Access.Require("testimonials", "read-all"), m.handler.ListAll)
	protected.PATCH("/:id/approve", moderate, m.handler.Approve)
	protected.PATCH("/:id/reject", moderate, m.handler.Reject)
	protected.PUT("/:id", ctx.Access.Require("testimonials", "update"), m.handler.Update)
	protected.DELETE("/:id", ctx.Access.Require("testimonials", "delete"), m.handler.Delete)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
