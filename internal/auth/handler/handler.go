package handler

import (
	"net/http"
	"time"

	"portfolio_backend/internal/auth/repository"
	"portfolio_backend/internal/auth/service"
	"portfolio_backend/internal/auth/transport"
	"portfolio_backend/internal/resource"
	"portfolio_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

const (
	accessCookie  = "jwt"
	refreshCookie = "refreshToken"
)

// CookieConfig provides the cookie lifetimes and transport security.
type CookieConfig interface {
	GetAccessTokenTTL() time.Duration
	GetRefreshTokenTTL() time.Duration
	IsDevelopment() bool
}

type Handler struct {
	svc *service.Service
	cfg CookieConfig
}

func New(svc *service.Service, cfg CookieConfig) *Handler {
	return &Handler{svc: svc, cfg: cfg}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/register", h.Register)
	rg.POST("/login", h.Login)
	rg.POST("/refresh-token", h.Refresh)
}

// Register creates a Viewer account.
// POST /api/v1/auth/register
func (h *Handler) Register(c *gin.Context) {
	var req transport.RegisterRequest
	if !resource.Bind(c, &req) {
		return
	}
	result, err := h.svc.Register(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	h.send(c, http.StatusCreated, result)
}

// Login signs an account in.
// POST /api/v1/auth/login
func (h *Handler) Login(c *gin.Context) {
	var req transport.LoginRequest
	if !resource.Bind(c, &req) {
		return
	}
	result, err := h.svc.Login(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	h.send(c, http.StatusOK, result)
}

// Refresh issues a new token pair from the body or cookie refresh token.
// POST /api/v1/auth/refresh-token
func (h *Handler) Refresh(c *gin.Context) {
	var req transport.RefreshRequest
	_ = c.ShouldBindJSON(&req)
	raw := req.RefreshToken
	if raw == "" {
		raw, _ = c.Cookie(refreshCookie)
	}

	result, err := h.svc.Refresh(c.Request.Context(), raw)
	if httpkit.HandleError(c, err) {
		return
	}
	h.send(c, http.StatusOK, result)
}

// Logout clears the token cookies.
// POST /api/v1/auth/logout
func (h *Handler) Logout(c *gin.Context) {
	h.setCookie(c, accessCookie, "", -1)
	h.setCookie(c, refreshCookie, "", -1)
	httpkit.Message(c, http.StatusOK, "Logged out successfully", nil)
}

// Me returns the signed-in account.
// GET /api/v1/auth/me
func (h *Handler) Me(c *gin.Context) {
	user, err := h.svc.Me(c.Request.Context(), httpkit.GetIdentity(c).UserID())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.UserData{User: view(user)})
}

func (h *Handler) send(c *gin.Context, status int, result service.Result) {
	h.setCookie(c, accessCookie, result.Tokens.Access, int(h.cfg.GetAccessTokenTTL()/time.Second))
	h.setCookie(c, refreshCookie, result.Tokens.Refresh, int(h.cfg.GetRefreshTokenTTL()/time.Second))
	httpkit.JSON(c, status, transport.AuthResponse{
		Success:      true,
		Token:        result.Tokens.Access,
		RefreshToken: result.Tokens.Refresh,
		Data:         transport.UserData{User: view(result.User)},
	})
}

func (h *Handler) setCookie(c *gin.Context, name, value string, maxAge int) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(name, value, maxAge, "/", "", !h.cfg.IsDevelopment(), true)
}

func view(u repository.User) transport.UserResponse {
	return transport.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
		IsActive:  u.IsActive,
		LastLogin: u.LastLogin,
		CreatedAt: u.CreatedAt,
	}
}
