package handler

import (
	"net/http"

	"portfolio_backend/internal/ai/service"
	"portfolio_backend/internal/ai/transport"
	"portfolio_backend/internal/resource"
	"portfolio_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

const msgFeedbackThanks = "Thank you for your feedback! This helps us improve our AI assistant."

type Handler struct {
	svc *service.Service
}

func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Chat handles POST /api/v1/ai/chat and /api/v1/ai/chatbot
func (h *Handler) Chat(c *gin.Context) {
	var req transport.ChatRequest
	if !resource.Bind(c, &req) {
		return
	}
	res, err := h.svc.Chat(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, res)
}

// Assistant handles POST /api/v1/ai/assistant
func (h *Handler) Assistant(c *gin.Context) {
	var req transport.AssistantRequest
	if !resource.Bind(c, &req) {
		return
	}
	res, err := h.svc.Recommend(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, res)
}

// Status handles GET /api/v1/ai/status
func (h *Handler) Status(c *gin.Context) {
	httpkit.OK(c, h.svc.Status())
}

// Feedback handles POST /api/v1/ai/feedback
func (h *Handler) Feedback(c *gin.Context) {
	var req transport.FeedbackRequest
	if !resource.Bind(c, &req) {
		return
	}
	res, err := h.svc.SubmitFeedback(c.Request.Context(), req, httpkit.GetIdentity(c).UserID())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Message(c, http.StatusOK, msgFeedbackThanks, res)
}

// Analytics handles GET /api/v1/ai/analytics
func (h *Handler) Analytics(c *gin.Context) {
	res, err := h.svc.Analytics(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, res)
}
