// Package http provides HTTP server infrastructure including module registration.
package http

import (
	"context"

	"portfolio_backend/internal/access"
	"portfolio_backend/platform/config"
	"portfolio_backend/platform/events"
	"portfolio_backend/platform/logger"
)

// RouterConfig combines the config interfaces needed by the HTTP router.
type RouterConfig interface {
	config.HTTPConfig
	config.JWTConfig
	config.RateLimitConfig
}

// HealthChecker exposes minimal functionality for readiness checks.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// App holds the fully initialized application dependencies.
// This is populated by main.go (the composition root) and passed to the router.
type App struct {
	// Config holds the router configuration (HTTP, JWT and rate limit settings).
	Config RouterConfig
	// Logger is the structured logger.
	Logger *logger.Logger
	// Health is used for readiness/health checks (e.g., DB ping).
	Health HealthChecker
	// EventBus is the domain event bus for cross-module communication.
	EventBus events.Bus
	// Access is the role table consulted by write routes.
	Access access.Table
	// Modules contains all HTTP-facing domain modules.
	Modules []Module
}
