package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"portfolio_backend/internal/ai/domain"
	"portfolio_backend/internal/ai/service"
	"portfolio_backend/internal/analytics"
	"portfolio_backend/platform/logger"
	"portfolio_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

type emptyRepo struct{}

func (emptyRepo) SaveFeedback(_ context.Context, f domain.Feedback) (domain.Feedback, error) {
	return f, nil
}

func (emptyRepo) Aggregate(context.Context, ...analytics.Spec) (map[string][]analytics.Bucket, error) {
	return nil, nil
}

func (emptyRepo) Totals(context.Context, ...analytics.Measure) (map[string]float64, error) {
	return nil, nil
}

func (emptyRepo) Services(context.Context) ([]domain.Entry, error) { return nil, nil }

func (emptyRepo) Projects(context.Context) ([]domain.Entry, error) { return nil, nil }

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := New(service.New(emptyRepo{}, nil, validator.New(), logger.Discard()))
	r := gin.New()
	r.POST("/ai/chat", h.Chat)
	r.GET("/ai/status", h.Status)
	r.POST("/ai/feedback", h.Feedback)
	return r
}

func TestChatWithoutModelReturns503Fallback(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/ai/chat", strings.NewReader(`{"message":"hello"}`))
	req.Header.Set("Content-Type", "application/json")
	newRouter().ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
	var body struct {
		Success bool `json:"success"`
		Details struct {
			Message     string `json:"message"`
			ContactInfo struct {
				Email string `json:"email"`
			} `json:"contactInfo"`
		} `json:"details"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if body.Success || body.Details.Message == "" || body.Details.ContactInfo.Email == "" {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestChatRejectsMalformedBody(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/ai/chat", strings.NewReader(`{"message":`))
	req.Header.Set("Content-Type", "application/json")
	newRouter().ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestStatusListsEndpoints(t *testing.T) {
	w := httptest.NewRecorder()
	newRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ai/status", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"chatbot":"/api/v1/ai/chatbot"`) {
		t.Fatalf("expected endpoints in body, got %s", w.Body.String())
	}
}

func TestFeedbackThanksVisitor(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/ai/feedback", strings.NewReader(`{"conversationId":"conv_1","rating":5}`))
	req.Header.Set("Content-Type", "application/json")
	newRouter().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), msgFeedbackThanks) {
		t.Fatalf("expected thanks message, got %s", w.Body.String())
	}
}
