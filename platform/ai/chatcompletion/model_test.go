package chatcompletion

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"google.golang.org/adk/model"
	"google.golang.org/genai"
)

func first(t *testing.T, m *Model, req *model.LLMRequest) (*model.LLMResponse, error) {
	t.Helper()
	for resp, err := range m.GenerateContent(context.Background(), req, false) {
		return resp, err
	}
	t.Fatal("expected one response")
	return nil, nil
}

func TestGenerateContentSendsConversation(t *testing.T) {
	var got completionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("expected /chat/completions, got %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer secret" {
			t.Errorf("expected bearer auth, got %q", r.Header.Get("Authorization"))
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"  Hello there  "}}]}`))
	}))
	defer srv.Close()

	m := NewModel(Config{APIKey: "secret", BaseURL: srv.URL + "/", Model: "test-model"})
	temp := float32(0.2)
	resp, err := first(t, m, &model.LLMRequest{
		Contents: []*genai.Content{
			genai.NewContentFromText("hi", genai.RoleUser),
			genai.NewContentFromText("earlier answer", genai.RoleModel),
		},
		Config: &genai.GenerateContentConfig{
			Temperature:       &temp,
			MaxOutputTokens:   256,
			SystemInstruction: genai.NewContentFromText("be brief", genai.RoleUser),
		},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if Text(resp) != "Hello there" {
		t.Fatalf("expected trimmed text, got %q", Text(resp))
	}

	if got.Model != "test-model" || got.MaxTokens != 256 || got.Temperature == nil {
		t.Fatalf("unexpected request: %+v", got)
	}
	roles := make([]string, len(got.Messages))
	for i, msg := range got.Messages {
		roles[i] = msg.Role
	}
	if strings.Join(roles, ",") != "system,user,assistant" {
		t.Fatalf("expected system,user,assistant, got %v", roles)
	}
}

func TestGenerateContentProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	m := NewModel(Config{APIKey: "k", BaseURL: srv.URL})
	_, err := first(t, m, &model.LLMRequest{Contents: []*genai.Content{genai.NewContentFromText("hi", genai.RoleUser)}})
	if err == nil || !strings.Contains(err.Error(), "429") {
		t.Fatalf("expected provider status in error, got %v", err)
	}
}

func TestGenerateContentEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	m := NewModel(Config{APIKey: "k", BaseURL: srv.URL})
	_, err := first(t, m, &model.LLMRequest{})
	if !errors.Is(err, ErrEmptyResponse) {
		t.Fatalf("expected ErrEmptyResponse, got %v", err)
	}
}

func TestNewModelDefaults(t *testing.T) {
	m := NewModel(Config{APIKey: "k"})
	if m.Name() != DefaultModel || m.config.BaseURL != DefaultBaseURL {
		t.Fatalf("expected defaults, got %+v", m.config)
	}
}
