// Package service answers visitor questions and gives project
// recommendations from a text-completion model primed with the company
// portfolio.
package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"portfolio_backend/internal/ai/contextcache"
	"portfolio_backend/internal/ai/domain"
	"portfolio_backend/internal/ai/repository"
	"portfolio_backend/internal/ai/transport"
	"portfolio_backend/internal/analytics"
	"portfolio_backend/platform/ai/chatcompletion"
	"portfolio_backend/platform/apperr"
	"portfolio_backend/platform/logger"
	"portfolio_backend/platform/metrics"
	"portfolio_backend/platform/validator"

	"github.com/google/uuid"
	"google.golang.org/adk/model"
	"google.golang.org/genai"
)

const (
	contextTTL = 5 * time.Minute

	temperature float32 = 0.8
	topP        float32 = 0.9
	maxTokens   int32   = 4096

	msgChatUnavailable      = "AI service is currently unavailable. Please contact us directly."
	msgAssistantUnavailable = "AI assistant is currently unavailable. Please contact our team directly."
	msgChatFailed           = "Sorry, I encountered an error. Please try again or contact us directly."
	msgAssistantFailed      = "Sorry, I encountered an error generating recommendations."

	conversationAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
)

var (
	contactInfo = transport.ContactInfo{Email: "contact@company.com", Phone: "+1-XXX-XXX-XXXX"}

	chatFallback = transport.Fallback{
		Message: "Our AI assistant is temporarily unavailable. Please feel free to contact us directly through our " +
			"contact form or email, and our team will be happy to assist you with any questions about our services, " +
			"projects, or team.",
		ContactInfo: contactInfo,
	}
	assistantFallback = transport.Fallback{
		Message: "Our AI assistant is temporarily unavailable. Our team would be happy to provide personalized " +
			"recommendations based on your requirements. Please contact us directly.",
		ContactInfo: contactInfo,
	}

	capabilities = []string{
		"Company information queries",
		"Service recommendations",
		"Team member suggestions",
		"Project case studies",
		"General business assistance",
	}

	ratingSpec = analytics.Spec{Name: "ratings", Key: "t.rating", Order: analytics.ByKeyAsc}
	ratingAvg  = analytics.Measure{Name: "averageRating", Kind: analytics.RoundedAvg, Expr: "t.rating", Decimals: 2}
)

// Service is the AI advisory service. A nil model puts it in fallback mode.
type Service struct {
	repo    repository.Repository
	llm     model.LLM
	val     *validator.Validator
	log     *logger.Logger
	company *contextcache.Cache[string]
	now     func() time.Time
}

// New creates the advisory service. llm may be nil when no provider is
// configured.
func New(repo repository.Repository, llm model.LLM, val *validator.Validator, log *logger.Logger) *Service {
	return &Service{
		repo:    repo,
		llm:     llm,
		val:     val,
		log:     log,
		company: contextcache.New[string](contextTTL),
		now:     time.Now,
	}
}

// Available reports whether a model is configured.
func (s *Service) Available() bool {
	return s.llm != nil
}

// Status describes the configured model and the advisory endpoints.
func (s *Service) Status() transport.StatusResponse {
	res := transport.StatusResponse{
		Available:        s.Available(),
		APIKeyConfigured: s.Available(),
		Endpoints: map[string]string{
			"chatbot":   "/api/v1/ai/chatbot",
			"assistant": "/api/v1/ai/assistant",
		},
		Capabilities: capabilities,
	}
	if s.llm != nil {
		name := s.llm.Name()
		res.Model = &name
	}
	return res
}

// Chat answers a visitor message.
func (s *Service) Chat(ctx context.Context, req transport.ChatRequest) (transport.ChatResponse, error) {
	req.Message = strings.TrimSpace(req.Message)
	if err := s.val.Check(req); err != nil {
		return transport.ChatResponse{}, err
	}
	if !s.Available() {
		metrics.AIRequests.WithLabelValues("chat", "unavailable").Inc()
		return transport.ChatResponse{}, apperr.Unavailable(msgChatUnavailable).WithDetails(chatFallback)
	}

	prompt := "USER: " + req.Message
	if c := strings.TrimSpace(req.Context); c != "" {
		prompt = "CONVERSATION SO FAR:\n" + c + "\n\n" + prompt
	}
	system := "You are an AI assistant for a company. Help users understand our services.\n\nCOMPANY INFO:\n" +
		s.companyContext(ctx)

	text, err := s.generate(ctx, system, prompt+"\n\nRespond helpfully:")
	if err != nil {
		metrics.AIRequests.WithLabelValues("chat", "error").Inc()
		s.log.Error("ai chat failed", "error", err)
		return transport.ChatResponse{}, apperr.Wrap(apperr.KindUnavailable, msgChatFailed, err)
	}
	metrics.AIRequests.WithLabelValues("chat", "ok").Inc()

	conversation := req.ConversationID
	if conversation == "" {
		conversation = s.conversationID()
	}
	s.log.Info("ai chat answered", "conversationId", conversation, "messageLength", len(req.Message))
	return transport.ChatResponse{Response: text, ConversationID: conversation, Timestamp: s.now()}, nil
}

// Recommend gives business recommendations for a query and preferences.
func (s *Service) Recommend(ctx context.Context, req transport.AssistantRequest) (transport.AssistantResponse, error) {
	req.Query = strings.TrimSpace(req.Query)
	if err := s.val.Check(req); err != nil {
		return transport.AssistantResponse{}, err
	}
	if !s.Available() {
		metrics.AIRequests.WithLabelValues("assistant", "unavailable").Inc()
		return transport.AssistantResponse{}, apperr.Unavailable(msgAssistantUnavailable).WithDetails(assistantFallback)
	}

	system := "Based on the query and preferences, provide business recommendations.\n\nCOMPANY INFO:\n" +
		s.companyContext(ctx)
	prompt := fmt.Sprintf("QUERY: %s\nPREFERENCES: %s\n\nProvide recommendations:", req.Query, describe(req.Preferences))

	text, err := s.generate(ctx, system, prompt)
	if err != nil {
		metrics.AIRequests.WithLabelValues("assistant", "error").Inc()
		s.log.Error("ai recommendations failed", "error", err)
		return transport.AssistantResponse{}, apperr.Wrap(apperr.KindUnavailable, msgAssistantFailed, err)
	}
	metrics.AIRequests.WithLabelValues("assistant", "ok").Inc()

	return transport.AssistantResponse{
		Recommendations: text,
		Query:           req.Query,
		Preferences:     req.Preferences,
		Timestamp:       s.now(),
	}, nil
}

func describe(p transport.Preferences) string {
	pairs := []struct{ key, value string }{
		{"budget", p.Budget},
		{"timeline", p.Timeline},
		{"projectType", p.ProjectType},
		{"industry", p.Industry},
		{"teamSize", p.TeamSize},
	}
	parts := make([]string, 0, len(pairs))
	for _, kv := range pairs {
		if kv.value != "" {
			parts = append(parts, kv.key+": "+kv.value)
		}
	}
	return strings.Join(parts, ", ")
}

func (s *Service) generate(ctx context.Context, system, prompt string) (string, error) {
	temp, p := temperature, topP
	req := &model.LLMRequest{
		Contents: []*genai.Content{{Role: string(genai.RoleUser), Parts: []*genai.Part{genai.NewPartFromText(prompt)}}},
		Config: &genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{genai.NewPartFromText(system)}},
			Temperature:       &temp,
			TopP:              &p,
			MaxOutputTokens:   maxTokens,
		},
	}
	for resp, err := range s.llm.GenerateContent(ctx, req, false) {
		if err != nil {
			return "", err
		}
		if text := chatcompletion.Text(resp); text != "" {
			return text, nil
		}
	}
	return "", chatcompletion.ErrEmptyResponse
}

// companyContext renders the portfolio summary, cached for five minutes. A
// section that cannot be loaded is replaced by a placeholder line.
func (s *Service) companyContext(ctx context.Context) string {
	text, _ := s.company.GetOrRefresh(ctx, func(ctx context.Context) (string, error) {
		var b strings.Builder
		b.WriteString("COMPANY PORTFOLIO\n\n")

		if services, err := s.repo.Services(ctx); err != nil {
			s.log.Warn("ai context: services unavailable", "error", err)
			b.WriteString("SERVICES: Available on request\n\n")
		} else {
			writeSection(&b, "SERVICES", services)
		}
		if projects, err := s.repo.Projects(ctx); err != nil {
			s.log.Warn("ai context: projects unavailable", "error", err)
			b.WriteString("PROJECTS: Portfolio available on request\n\n")
		} else {
			writeSection(&b, "PROJECTS", projects)
		}

		b.WriteString("We specialize in web development, mobile apps, UI/UX design, real estate, and consulting.\n")
		return b.String(), nil
	})
	return text
}

func writeSection(b *strings.Builder, title string, entries []domain.Entry) {
	b.WriteString(title + ":\n")
	for _, e := range entries {
		fmt.Fprintf(b, "- %s: %s\n", e.Title, e.Detail)
	}
	b.WriteString("\n")
}

// conversationID returns conv_<unix ms>_<9 base-36 chars>.
func (s *Service) conversationID() string {
	suffix := make([]byte, 9)
	for i := range suffix {
		suffix[i] = conversationAlphabet[rand.IntN(len(conversationAlphabet))]
	}
	return fmt.Sprintf("conv_%d_%s", s.now().UnixMilli(), suffix)
}

// SubmitFeedback stores a rating for a response. user is uuid.Nil for
// anonymous visitors.
func (s *Service) SubmitFeedback(ctx context.Context, req transport.FeedbackRequest, user uuid.UUID) (transport.FeedbackResponse, error) {
	if err := s.val.Check(req); err != nil {
		return transport.FeedbackResponse{}, err
	}

	f := domain.Feedback{
		ConversationID: req.ConversationID,
		Rating:         req.Rating,
		ResponseID:     optional(req.ResponseID),
		Feedback:       optional(req.Feedback),
	}
	if user != uuid.Nil {
		f.UserID = &user
	}
	saved, err := s.repo.SaveFeedback(ctx, f)
	if err != nil {
		return transport.FeedbackResponse{}, err
	}
	s.log.Info("ai feedback received", "conversationId", saved.ConversationID, "rating", saved.Rating)
	return transport.FeedbackResponse{ConversationID: saved.ConversationID, FeedbackReceived: saved.CreatedAt}, nil
}

func optional(s string) *string {
	if s = strings.TrimSpace(s); s == "" {
		return nil
	}
	return &s
}

// Analytics summarizes the stored feedback.
func (s *Service) Analytics(ctx context.Context) (transport.AnalyticsResponse, error) {
	totals, err := s.repo.Totals(ctx, ratingAvg)
	if err != nil {
		return transport.AnalyticsResponse{}, err
	}
	buckets, err := s.repo.Aggregate(ctx, ratingSpec)
	if err != nil {
		return transport.AnalyticsResponse{}, err
	}

	dist := buckets[ratingSpec.Name]
	if dist == nil {
		dist = []analytics.Bucket{}
	}
	return transport.AnalyticsResponse{
		TotalFeedback:       int(totals["total"]),
		AverageRating:       totals[ratingAvg.Name],
		RatingsDistribution: dist,
	}, nil
}
