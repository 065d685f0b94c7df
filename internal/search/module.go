// Package search provides the cross-entity search module. The query routes
// are public; the term report requires search:analytics.
package search

import (
	apphttp "portfolio_backend/internal/http"
	"portfolio_backend/internal/search/handler"
	"portfolio_backend/internal/search/repository"
	"portfolio_backend/internal/search/service"
	"portfolio_backend/platform/logger"

	"github.com/redis/go-redis/v9"
)

type Module struct {
	handler *handler.Handler
}

// NewModule wires the search service over the entity services. A nil Redis
// client turns term recording off.
func NewModule(src service.Sources, rdb *redis.Client, log *logger.Logger) *Module {
	var terms service.Recorder
	if rdb != nil {
		terms = repository.New(rdb)
	}
	svc := service.New(src, terms, log.Component("search"))

	return &Module{handler: handler.New(svc)}
}

func (m *Module) Name() string {
	return "search"
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	public := ctx.V1.Group("/search")
	public.GET("/global", ctx.Limiters.Search, m.handler.GlobalSearch)
	public.GET("/smart", ctx.Limiters.Search, m.handler.SmartSearch)
	public.GET("/autocomplete", m.handler.Autocomplete)

	protected := ctx.Protected.Group("/search")
	protected.GET("/analytics", ctx.Access.Require("search", "analytics"), m.handler.Analytics)
}

var _ apphttp.Module = (*Module)(nil)
