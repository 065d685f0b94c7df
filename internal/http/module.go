// Package http provides HTTP server infrastructure including the Module interface
// that all domain modules must implement for route registration.
package http

import (
	"portfolio_backend/internal/access"
	"portfolio_backend/platform/config"

	"github.com/gin-gonic/gin"
)

// Module represents a bounded context that can register its HTTP routes.
// Each domain module implements this interface to encapsulate its own
// route setup, keeping the main router decoupled from specific endpoints.
type Module interface {
	// Name returns the module's identifier, also its path under /api/v1.
	Name() string
	// RegisterRoutes mounts the module's routes on the provided router group.
	// The RouterContext provides access to shared middleware and configuration.
	RegisterRoutes(ctx *RouterContext)
}

// Limiters are the per-surface rate limit middlewares.
type Limiters struct {
	Auth    gin.HandlerFunc
	Contact gin.HandlerFunc
	Search  gin.HandlerFunc
	AI      gin.HandlerFunc
}

// RouterContext provides shared dependencies for module route registration.
// This avoids passing many parameters to each module's RegisterRoutes method.
type RouterContext struct {
	// Engine is the root Gin engine for modules that need engine-level access.
	Engine *gin.Engine
	// V1 is the /api/v1 route group with optional authentication: the caller
	// identity is attached when a valid token is sent, anonymous otherwise.
	V1 *gin.RouterGroup
	// Protected is the authenticated route group under /api/v1.
	Protected *gin.RouterGroup
	// Access is the declarative role table; use Access.Require on routes.
	Access access.Table
	// Limiters are the stricter per-surface rate limiters.
	Limiters Limiters
	// Config is the JWT configuration for auth middleware (scoped access).
	Config config.JWTConfig
}
