package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"portfolio_backend/internal/auth/service"
	"portfolio_backend/internal/auth/token"
	"portfolio_backend/platform/logger"
	"portfolio_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

type testConfig struct{}

func (testConfig) GetJWTAccessSecret() string        { return "access" }
func (testConfig) GetJWTRefreshSecret() string       { return "refresh" }
func (testConfig) GetAccessTokenTTL() time.Duration  { return time.Hour }
func (testConfig) GetRefreshTokenTTL() time.Duration { return 24 * time.Hour }
func (testConfig) IsDevelopment() bool               { return false }

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := service.New(nil, token.NewIssuer(testConfig{}), validator.New(), logger.Discard())
	h := New(svc, testConfig{})
	r := gin.New()
	h.RegisterRoutes(r.Group("/auth"))
	r.POST("/auth/logout", h.Logout)
	return r
}

func TestLogoutClearsCookies(t *testing.T) {
	w := httptest.NewRecorder()
	newRouter().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/auth/logout", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	cookies := w.Result().Cookies()
	if len(cookies) != 2 {
		t.Fatalf("expected two cookies, got %d", len(cookies))
	}
	for _, c := range cookies {
		if c.MaxAge >= 0 || !c.HttpOnly || !c.Secure {
			t.Fatalf("expected expired secure http-only cookie, got %+v", c)
		}
	}
}

func TestRefreshWithoutToken(t *testing.T) {
	w := httptest.NewRecorder()
	newRouter().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/auth/refresh-token", nil))

	if w.Code != http.StatusUnauthorized || !strings.Contains(w.Body.String(), "No refresh token provided") {
		t.Fatalf("expected 401 without a token, got %d %s", w.Code, w.Body.String())
	}
}

func TestRefreshWithGarbageCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/auth/refresh-token", nil)
	req.AddCookie(&http.Cookie{Name: refreshCookie, Value: "garbage"})
	w := httptest.NewRecorder()
	newRouter().ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized || !strings.Contains(w.Body.String(), "Invalid refresh token") {
		t.Fatalf("expected 401 for a bad token, got %d %s", w.Code, w.Body.String())
	}
}

func TestLoginRejectsMalformedBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	newRouter().ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}
