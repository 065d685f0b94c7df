// Package router assembles the gin engine from the application modules.
package router

import (
	"context"
	"net/http"
	"time"

	apphttp "portfolio_backend/internal/http"
	"portfolio_backend/platform/httpkit"
	"portfolio_backend/platform/metrics"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const (
	msgContactLimit = "Too many contact form submissions from this IP, please try again after 1 hour."
	msgAuthLimit    = "Too many authentication attempts, please try again later."
	msgSearchLimit  = "Too many search requests, please try again later."
	msgAILimit      = "Too many AI requests, please try again later."
)

// New builds the engine: global middleware, health and metrics endpoints,
// the /api/v1 index and every module's routes.
func New(app *apphttp.App) *gin.Engine {
	cfg := app.Config
	log := app.Logger

	engine := gin.New()
	engine.Use(httpkit.Recovery(log))
	engine.Use(httpkit.RequestID(log))
	engine.Use(httpkit.RequestLogger(log))
	engine.Use(httpkit.SecurityHeaders())
	engine.Use(metrics.Middleware())
	engine.Use(cors.New(corsConfig(cfg)))

	general := httpkit.NewIPRateLimiter(rate.Limit(cfg.GetRateLimitRPS()), cfg.GetRateLimitBurst(), "", log)

	engine.GET("/health", healthHandler(app.Health))
	engine.GET("/metrics", metrics.Handler())

	v1 := engine.Group("/api/v1")
	v1.Use(general.RateLimit())
	v1.Use(httpkit.OptionalAuth(cfg))

	protected := v1.Group("")
	protected.Use(httpkit.AuthRequired(cfg))

	rc := &apphttp.RouterContext{
		Engine:    engine,
		V1:        v1,
		Protected: protected,
		Access:    app.Access,
		Limiters: apphttp.Limiters{
			Auth:    httpkit.PerWindow(5, time.Minute, msgAuthLimit, log).RateLimit(),
			Contact: httpkit.PerWindow(100, time.Hour, msgContactLimit, log).RateLimit(),
			Search:  httpkit.PerWindow(1000, time.Minute, msgSearchLimit, log).RateLimit(),
			AI:      httpkit.PerWindow(500, time.Minute, msgAILimit, log).RateLimit(),
		},
		Config: cfg,
	}

	names := make([]string, 0, len(app.Modules))
	for _, m := range app.Modules {
		m.RegisterRoutes(rc)
		names = append(names, m.Name())
		log.Debug("module routes registered", "module", m.Name())
	}

	v1.GET("", indexHandler(names))

	engine.NoRoute(func(c *gin.Context) {
		httpkit.Error(c, http.StatusNotFound, "Can't find "+c.Request.URL.Path+" on this server!", nil)
	})

	return engine
}

func corsConfig(cfg apphttp.RouterConfig) cors.Config {
	c := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", httpkit.HeaderRequestID},
		ExposeHeaders:    []string{httpkit.HeaderRequestID},
		AllowCredentials: cfg.GetCORSAllowCreds(),
		MaxAge:           12 * time.Hour,
	}
	if cfg.GetCORSAllowAll() {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = cfg.GetCORSOrigins()
	}
	return c
}

func healthHandler(health apphttp.HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := gin.H{"status": "OK", "timestamp": time.Now().UTC(), "database": "connected"}
		if health != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := health.Ping(ctx); err != nil {
				status["status"] = "DEGRADED"
				status["database"] = "disconnected"
				c.JSON(http.StatusServiceUnavailable, status)
				return
			}
		}
		c.JSON(http.StatusOK, status)
	}
}

func indexHandler(modules []string) gin.HandlerFunc {
	endpoints := make(gin.H, len(modules))
	for _, name := range modules {
		endpoints[name] = "/api/v1/" + name
	}
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"success":   true,
			"message":   "Company Portfolio API",
			"version":   "v1",
			"endpoints": endpoints,
		})
	}
}
