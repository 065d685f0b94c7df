// Package uploads provides the file upload module. Files go to object
// storage and may be attached to a portfolio entity in the same request.
package uploads

import (
	"portfolio_backend/internal/adapters/storage"
	apphttp "portfolio_backend/internal/http"
	"portfolio_backend/internal/uploads/handler"
	"portfolio_backend/internal/uploads/repository"
	"portfolio_backend/internal/uploads/service"
	"portfolio_backend/platform/db"
	"portfolio_backend/platform/logger"
)

// Module is the uploads module implementing http.Module.
type Module struct {
	handler *handler.Handler
}

// NewModule creates the uploads module. A nil store answers every upload
// route with 503.
func NewModule(q db.Querier, store storage.StorageService, maxFileSize int64, log *logger.Logger) *Module {
	svc := service.New(store, repository.New(q), log.Component("uploads"))
	return &Module{handler: handler.New(svc, maxFileSize)}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "uploads"
}

// RegisterRoutes mounts the upload routes. Every route requires a staff role.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	create := ctx.Access.Require("uploads", "create")

	protected := ctx.Protected.Group("/upload")
	protected.POST("/single", create, m.handler.Single)
	protected.POST("/multiple", create, m.handler.Multiple)
	protected.POST("/profile-image", create, m.handler.ProfileImage)
	protected.DELETE("/:publicId", ctx.Access.Require("uploads", "delete"), m.handler.Delete)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
