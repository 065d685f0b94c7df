// Package contact provides the contact submissions bounded context module.
// Submitting the form is public; working the pipeline requires a staff role.
package contact

import (
	"portfolio_backend/internal/contact/handler"
	"portfolio_backend/internal/contact/repository"
	"portfolio_backend/internal/contact/service"
	"portfolio_backend/internal/events"
	apphttp "portfolio_backend/internal/http"
	"portfolio_backend/platform/db"
	"portfolio_backend/platform/logger"
	"portfolio_backend/platform/validator"
)

// Module is the contact bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
}

// NewModule creates and initializes the contact module with all its dependencies.
func NewModule(q db.Querier, val *validator.Validator, log *logger.Logger, bus events.Bus) *Module {
	repo := repository.New(q)
	svc := service.New(repo, val, log, bus)

	return &Module{handler: handler.New(svc)}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "contact"
}

// RegisterRoutes mounts contact routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.POST("/contact", ctx.Limiters.Contact, m.handler.Submit)

	read := ctx.Access.Require("contact", "read")

	protected := ctx.Protected.Group("/contact")
	protected.GET("", read, m.handler.List)
	protected.GET("/analytics", ctx.Access.Require("contact", "analytics"), m.handler.Analytics)
	protected.GET("/overdue", read, m.handler.Overdue)
	protected.GET("/assignee/:assigneeId", read, m.handler.ByAssignee)
	protected.GET("/:id", read, m.handler.GetByID)
	protected.PATCH("/bulk-update", ctx.Access.Require("contact", "bulk"), m.handler.BulkUpdate)
	protected.PATCH("/:id/status", ctx.Access.Require("contact", "status"), m.handler.UpdateStatus)
	protected.PATCH("/:id/assign", ctx.Access.Require("contact", "assign"), m.handler.Assign)
	protected.POST("/:id/notes", ctx.Access.Require("contact", "notes"), m.handler.AddNote)
	protected.PUT("/:id", ctx.Access.Require("contact", "update"), m.handler.Update)
	protected.DELETE("/:id", ctx.Access.Require("contact", "delete"), m.handler.Delete)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
