package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"portfolio_backend/internal/access"
	apphttp "portfolio_backend/internal/http"
	"portfolio_backend/platform/logger"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testConfig struct{}

func (testConfig) GetHTTPAddr() string            { return ":0" }
func (testConfig) GetCORSAllowAll() bool          { return false }
func (testConfig) GetCORSOrigins() []string       { return []string{"http://localhost:3000"} }
func (testConfig) GetCORSAllowCreds() bool        { return true }
func (testConfig) GetReadTimeout() time.Duration  { return time.Second }
func (testConfig) GetWriteTimeout() time.Duration { return time.Second }
func (testConfig) GetJWTAccessSecret() string     { return "k" }
func (testConfig) GetRateLimitRPS() float64       { return 100 }
func (testConfig) GetRateLimitBurst() int         { return 100 }

type pingModule struct{}

func (pingModule) Name() string { return "ping" }

func (pingModule) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	ctx.Protected.GET("/ping/private", func(c *gin.Context) { c.Status(http.StatusOK) })
}

type health struct{ err error }

func (h health) Ping(context.Context) error { return h.err }

func newEngine(h apphttp.HealthChecker) *gin.Engine {
	return New(&apphttp.App{
		Config:  testConfig{},
		Logger:  logger.Discard(),
		Health:  h,
		Access:  access.MustDefault(),
		Modules: []apphttp.Module{pingModule{}},
	})
}

func get(e *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestHealth(t *testing.T) {
	if w := get(newEngine(health{}), "/health"); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	w := get(newEngine(health{err: errors.New("down")}), "/health")
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
	var body map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if body["database"] != "disconnected" {
		t.Fatalf("expected disconnected database, got %v", body)
	}
}

func TestIndexListsModules(t *testing.T) {
	w := get(newEngine(nil), "/api/v1")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body struct {
		Endpoints map[string]string `json:"endpoints"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if body.Endpoints["ping"] != "/api/v1/ping" {
		t.Fatalf("expected ping endpoint, got %v", body.Endpoints)
	}
}

func TestModuleRoutesAndAuthGroup(t *testing.T) {
	e := newEngine(nil)
	if w := get(e, "/api/v1/ping"); w.Code != http.StatusOK || w.Body.String() != "pong" {
		t.Fatalf("expected pong, got %d %s", w.Code, w.Body.String())
	}
	if w := get(e, "/api/v1/ping/private"); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestUnknownRoute(t *testing.T) {
	w := get(newEngine(nil), "/nope")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	var body struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if body.Success || body.Error != "Can't find /nope on this server!" {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestSecurityHeaders(t *testing.T) {
	w := get(newEngine(nil), "/health")
	if w.Header().Get("X-Content-Type-Options") != "nosniff" || w.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected security and request id headers, got %v", w.Header())
	}
}
