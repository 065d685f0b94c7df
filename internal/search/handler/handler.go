package handler

import (
	"strings"

	"portfolio_backend/internal/resource"
	"portfolio_backend/internal/search/service"
	"portfolio_backend/internal/search/transport"
	"portfolio_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// filterKeys are the query parameters forwarded to the entity searches.
var filterKeys = []string{"category", "featured", "status"}

type Handler struct {
	svc *service.Service
}

func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// GlobalSearch handles GET /api/v1/search/global
func (h *Handler) GlobalSearch(c *gin.Context) {
	opts := transport.Options{
		Limit:   resource.Limit(c, "limit", service.DefaultLimit, service.MaxLimit),
		Filters: map[string]string{},
	}
	if raw := c.Query("entities"); raw != "" {
		opts.Entities = strings.Split(raw, ",")
	}
	for _, key := range filterKeys {
		if v := c.Query(key); v != "" {
			opts.Filters[key] = v
		}
	}

	env, err := h.svc.GlobalSearch(c.Request.Context(), c.Query("q"), opts)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, env)
}

// SmartSearch handles GET /api/v1/search/smart
func (h *Handler) SmartSearch(c *gin.Context) {
	limit := resource.Limit(c, "limit", service.SmartLimit, service.MaxLimit)
	env, err := h.svc.SmartSearch(c.Request.Context(), c.Query("q"), limit)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, env)
}

// Autocomplete handles GET /api/v1/search/autocomplete
func (h *Handler) Autocomplete(c *gin.Context) {
	out, err := h.svc.Autocomplete(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, out)
}

// Analytics handles GET /api/v1/search/analytics
func (h *Handler) Analytics(c *gin.Context) {
	out, err := h.svc.Analytics(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, out)
}
