// Package ai provides the AI advisory module: a chatbot and a project
// assistant over a text-completion model, with feedback collection.
package ai

import (
	"portfolio_backend/internal/ai/handler"
	"portfolio_backend/internal/ai/repository"
	"portfolio_backend/internal/ai/service"
	apphttp "portfolio_backend/internal/http"
	"portfolio_backend/platform/db"
	"portfolio_backend/platform/logger"
	"portfolio_backend/platform/validator"

	"google.golang.org/adk/model"
)

// Module is the AI bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
}

// NewModule creates the AI module. A nil llm serves the fallback responses.
func NewModule(q db.Querier, llm model.LLM, val *validator.Validator, log *logger.Logger) *Module {
	svc := service.New(repository.New(q), llm, val, log.Component("ai"))
	return &Module{handler: handler.New(svc)}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "ai"
}

// RegisterRoutes mounts the AI routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	public := ctx.V1.Group("/ai")
	public.POST("/chat", ctx.Limiters.AI, m.handler.Chat)
	public.POST("/chatbot", ctx.Limiters.AI, m.handler.Chat)
	public.POST("/assistant", ctx.Limiters.AI, m.handler.Assistant)
	public.GET("/status", m.handler.Status)
	public.POST("/feedback", m.handler.Feedback)

	protected := ctx.Protected.Group("/ai")
	protected.GET("/analytics", ctx.Access.Require("ai", "analytics"), m.handler.Analytics)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
