// Package blog provides the blog bounded context module: posts with a
// publication overlay, reader engagement and comment moderation.
package blog

import (
	"portfolio_backend/internal/blog/handler"
	"portfolio_backend/internal/blog/repository"
	"portfolio_backend/internal/blog/service"
	apphttp "portfolio_backend/internal/http"
	"portfolio_backend/platform/db"
	"portfolio_backend/platform/logger"
	"portfolio_backend/platform/validator"
)

// Module is the blog bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	svc     *service.Service
}

// NewModule creates and initializes the blog module with all its dependencies.
func NewModule(q db.Querier, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(q)
	svc := service.New(repo, val, log)

	return &Module{handler: handler.New(svc), svc: svc}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "blog"
}

// Service exposes the blog service to the cross-entity search.
func (m *Module) Service() *service.Service {
	return m.svc
}

// RegisterRoutes mounts blog routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	public := ctx.V1.Group("/blog")
	public.GET("", m.handler.List)
	public.GET("/featured", m.handler.Featured)
	public.GET("/popular", m.handler.Popular)
	public.GET("/analytics", m.handler.Analytics)
	public.GET("/search", m.handler.Search)
	public.GET("/category/:category", m.handler.ByCategory)
	public.GET("/tags/:tagName", m.handler.ByTag)
	public.GET("/slug/:slug", m.handler.GetBySlug)
	public.GET("/:id/related", m.handler.Related)
	public.POST("/:id/like", m.handler.Like)
	public.POST("/:id/comments", m.handler.AddComment)

	protected := ctx.Protected.Group("/blog")
	protected.GET("/all", ctx.Access.Require("blog", "read-all"), m.handler.ListAll)
	protected.POST("", ctx.Access.Require("blog", "create"), m.handler.Create)
	protected.PUT("/:id", ctx.Access.Require("blog", "update"), m.handler.Update)
	protected.DELETE("/:id", ctx.Access.Require("blog", "delete"), m.handler.Delete)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
