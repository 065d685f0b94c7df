package service

import (
	"context"
	"errors"
	"iter"
	"regexp"
	"strings"
	"testing"
	"time"

	"portfolio_backend/internal/ai/domain"
	"portfolio_backend/internal/ai/transport"
	"portfolio_backend/internal/analytics"
	"portfolio_backend/platform/apperr"
	"portfolio_backend/platform/logger"
	"portfolio_backend/platform/validator"

	"github.com/google/uuid"
	"google.golang.org/adk/model"
	"google.golang.org/genai"
)

type stubLLM struct {
	reply string
	err   error
	last  *model.LLMRequest
}

func (m *stubLLM) Name() string { return "stub-model" }

func (m *stubLLM) GenerateContent(_ context.Context, req *model.LLMRequest, _ bool) iter.Seq2[*model.LLMResponse, error] {
	m.last = req
	return func(yield func(*model.LLMResponse, error) bool) {
		if m.err != nil {
			yield(nil, m.err)
			return
		}
		yield(&model.LLMResponse{Content: &genai.Content{
			Role:  string(genai.RoleModel),
			Parts: []*genai.Part{genai.NewPartFromText(m.reply)},
		}}, nil)
	}
}

type stubRepo struct {
	contextCalls int
	servicesErr  error
	saved        *domain.Feedback
	totals       map[string]float64
}

func (r *stubRepo) SaveFeedback(_ context.Context, f domain.Feedback) (domain.Feedback, error) {
	r.saved = &f
	f.ID = uuid.New()
	f.CreatedAt = time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	return f, nil
}

func (r *stubRepo) Aggregate(context.Context, ...analytics.Spec) (map[string][]analytics.Bucket, error) {
	return map[string][]analytics.Bucket{}, nil
}

func (r *stubRepo) Totals(context.Context, ...analytics.Measure) (map[string]float64, error) {
	return r.totals, nil
}

func (r *stubRepo) Services(context.Context) ([]domain.Entry, error) {
	r.contextCalls++
	if r.servicesErr != nil {
		return nil, r.servicesErr
	}
	return []domain.Entry{{Title: "Web Development", Detail: "Sites and apps"}}, nil
}

func (r *stubRepo) Projects(context.Context) ([]domain.Entry, error) {
	return []domain.Entry{{Title: "Harbor Portal", Detail: "Web App"}}, nil
}

func newTestService(repo *stubRepo, llm model.LLM) *Service {
	return New(repo, llm, validator.New(), logger.Discard())
}

func systemText(req *model.LLMRequest) string {
	var b strings.Builder
	for _, p := range req.Config.SystemInstruction.Parts {
		b.WriteString(p.Text)
	}
	return b.String()
}

func TestChatUnavailableReturnsFallback(t *testing.T) {
	svc := newTestService(&stubRepo{}, nil)

	_, err := svc.Chat(context.Background(), transport.ChatRequest{Message: "hello"})
	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Kind != apperr.KindUnavailable {
		t.Fatalf("expected unavailable error, got %v", err)
	}
	fb, ok := appErr.Details.(transport.Fallback)
	if !ok || fb.ContactInfo.Email == "" || fb.Message == "" {
		t.Fatalf("expected fallback payload, got %#v", appErr.Details)
	}
}

func TestChatValidatesBeforeAvailability(t *testing.T) {
	svc := newTestService(&stubRepo{}, nil)
	_, err := svc.Chat(context.Background(), transport.ChatRequest{Message: "   "})
	if apperr.GetKind(err) != apperr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestChatAnswersWithCompanyContext(t *testing.T) {
	llm := &stubLLM{reply: "We build web apps."}
	svc := newTestService(&stubRepo{}, llm)

	res, err := svc.Chat(context.Background(), transport.ChatRequest{Message: "What do you do?"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Response != "We build web apps." {
		t.Fatalf("unexpected response %q", res.Response)
	}
	if !regexp.MustCompile(`^conv_\d+_[0-9a-z]{9}$`).MatchString(res.ConversationID) {
		t.Fatalf("unexpected conversation id %q", res.ConversationID)
	}
	system := systemText(llm.last)
	if !strings.Contains(system, "- Web Development: Sites and apps") || !strings.Contains(system, "- Harbor Portal: Web App") {
		t.Fatalf("expected portfolio in system prompt, got %q", system)
	}
	if *llm.last.Config.Temperature != temperature || llm.last.Config.MaxOutputTokens != maxTokens {
		t.Fatalf("unexpected generation config: %+v", llm.last.Config)
	}
}

func TestChatKeepsConversationID(t *testing.T) {
	svc := newTestService(&stubRepo{}, &stubLLM{reply: "ok"})
	res, err := svc.Chat(context.Background(), transport.ChatRequest{Message: "hi", ConversationID: "conv_1_abc"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.ConversationID != "conv_1_abc" {
		t.Fatalf("expected conversation id kept, got %q", res.ConversationID)
	}
}

func TestCompanyContextIsCached(t *testing.T) {
	repo := &stubRepo{}
	svc := newTestService(repo, &stubLLM{reply: "ok"})

	for range 3 {
		if _, err := svc.Chat(context.Background(), transport.ChatRequest{Message: "hi"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if repo.contextCalls != 1 {
		t.Fatalf("expected context loaded once, got %d", repo.contextCalls)
	}
}

func TestCompanyContextPlaceholderOnError(t *testing.T) {
	llm := &stubLLM{reply: "ok"}
	svc := newTestService(&stubRepo{servicesErr: errors.New("db down")}, llm)

	if _, err := svc.Chat(context.Background(), transport.ChatRequest{Message: "hi"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(systemText(llm.last), "SERVICES: Available on request") {
		t.Fatal("expected services placeholder")
	}
}

func TestChatUpstreamFailure(t *testing.T) {
	svc := newTestService(&stubRepo{}, &stubLLM{err: errors.New("provider returned 500")})
	_, err := svc.Chat(context.Background(), transport.ChatRequest{Message: "hi"})
	if apperr.GetKind(err) != apperr.KindUnavailable {
		t.Fatalf("expected unavailable error, got %v", err)
	}
}

func TestRecommendDescribesPreferences(t *testing.T) {
	llm := &stubLLM{reply: "Try our consulting package."}
	svc := newTestService(&stubRepo{}, llm)

	res, err := svc.Recommend(context.Background(), transport.AssistantRequest{
		Query:       "Need an online store",
		Preferences: transport.Preferences{Budget: "$50k", Industry: "Retail"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Recommendations != "Try our consulting package." || res.Query != "Need an online store" {
		t.Fatalf("unexpected response: %+v", res)
	}
	prompt := llm.last.Contents[0].Parts[0].Text
	if !strings.Contains(prompt, "PREFERENCES: budget: $50k, industry: Retail") {
		t.Fatalf("unexpected prompt %q", prompt)
	}
}

func TestStatus(t *testing.T) {
	off := newTestService(&stubRepo{}, nil).Status()
	if off.Available || off.Model != nil || len(off.Capabilities) != 5 {
		t.Fatalf("unexpected status: %+v", off)
	}
	on := newTestService(&stubRepo{}, &stubLLM{}).Status()
	if !on.Available || on.Model == nil || *on.Model != "stub-model" {
		t.Fatalf("unexpected status: %+v", on)
	}
}

func TestSubmitFeedback(t *testing.T) {
	repo := &stubRepo{}
	svc := newTestService(repo, nil)

	res, err := svc.SubmitFeedback(context.Background(), transport.FeedbackRequest{ConversationID: "conv_1", Rating: 4}, uuid.Nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.saved.UserID != nil || repo.saved.Feedback != nil {
		t.Fatalf("expected anonymous feedback without text, got %+v", repo.saved)
	}
	if res.ConversationID != "conv_1" || res.FeedbackReceived.IsZero() {
		t.Fatalf("unexpected response: %+v", res)
	}

	_, err = svc.SubmitFeedback(context.Background(), transport.FeedbackRequest{ConversationID: "conv_1", Rating: 6}, uuid.Nil)
	if apperr.GetKind(err) != apperr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAnalytics(t *testing.T) {
	svc := newTestService(&stubRepo{totals: map[string]float64{"total": 3, "averageRating": 4.33}}, nil)
	res, err := svc.Analytics(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.TotalFeedback != 3 || res.AverageRating != 4.33 || res.RatingsDistribution == nil {
		t.Fatalf("unexpected analytics: %+v", res)
	}
}
