// Package auth provides the authentication bounded context module.
// This file defines the module that encapsulates all auth setup and route registration.
package auth

import (
	"portfolio_backend/internal/auth/handler"
	"portfolio_backend/internal/auth/repository"
	"portfolio_backend/internal/auth/service"
	"portfolio_backend/internal/auth/token"
	apphttp "portfolio_backend/internal/http"
	"portfolio_backend/platform/config"
	"portfolio_backend/platform/db"
	"portfolio_backend/platform/logger"
	"portfolio_backend/platform/validator"
)

// Module is the auth bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
}

// NewModule creates and initializes the auth module with all its dependencies.
func NewModule(q db.Querier, cfg config.AuthServiceConfig, val *validator.Validator, log *logger.Logger) *Module {
	return &Module{handler: handler.New(NewService(q, cfg, val, log), cfg)}
}

// NewService builds the auth service on its own, for tools that manage
// accounts outside the HTTP server.
func NewService(q db.Querier, cfg config.AuthServiceConfig, val *validator.Validator, log *logger.Logger) *service.Service {
	return service.New(repository.New(q), token.NewIssuer(cfg), val, log.Component("auth"))
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "auth"
}

// RegisterRoutes mounts auth routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	// Public auth routes with stricter rate limiting
	authGroup := ctx.V1.Group("/auth")
	authGroup.Use(ctx.Limiters.Auth)
	m.handler.RegisterRoutes(authGroup)

	ctx.V1.POST("/auth/logout", m.handler.Logout)
	ctx.Protected.GET("/auth/me", m.handler.Me)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
