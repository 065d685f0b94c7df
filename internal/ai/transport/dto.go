package transport

import (
	"time"

	"portfolio_backend/internal/analytics"
)

type ChatRequest struct {
	Message        string `json:"message" validate:"required,max=1000"`
	Context        string `json:"context" validate:"max=2000"`
	ConversationID string `json:"conversationId" validate:"max=100"`
}

type ChatResponse struct {
	Response       string    `json:"response"`
	ConversationID string    `json:"conversationId"`
	Timestamp      time.Time `json:"timestamp"`
}

// Preferences narrow the assistant's recommendations.
type Preferences struct {
	Budget      string `json:"budget,omitempty" validate:"max=100"`
	Timeline    string `json:"timeline,omitempty" validate:"max=100"`
	ProjectType string `json:"projectType,omitempty" validate:"max=100"`
	Industry    string `json:"industry,omitempty" validate:"max=100"`
	TeamSize    string `json:"teamSize,omitempty" validate:"max=100"`
}

type AssistantRequest struct {
	Query       string      `json:"query" validate:"required,max=1000"`
	Preferences Preferences `json:"preferences"`
}

type AssistantResponse struct {
	Recommendations string      `json:"recommendations"`
	Query           string      `json:"query"`
	Preferences     Preferences `json:"preferences"`
	Timestamp       time.Time   `json:"timestamp"`
}

type StatusResponse struct {
	Available        bool              `json:"available"`
	Model            *string           `json:"model"`
	APIKeyConfigured bool              `json:"apiKeyConfigured"`
	Endpoints        map[string]string `json:"endpoints"`
	Capabilities     []string          `json:"capabilities"`
}

type FeedbackRequest struct {
	ConversationID string `json:"conversationId" validate:"required,max=100"`
	Rating         int    `json:"rating" validate:"required,min=1,max=5"`
	Feedback       string `json:"feedback" validate:"max=1000"`
	ResponseID     string `json:"responseId" validate:"max=100"`
}

type FeedbackResponse struct {
	ConversationID   string    `json:"conversationId"`
	FeedbackReceived time.Time `json:"feedbackReceived"`
}

type AnalyticsResponse struct {
	TotalFeedback       int                `json:"totalFeedback"`
	AverageRating       float64            `json:"averageRating"`
	RatingsDistribution []analytics.Bucket `json:"ratingsDistribution"`
}

type ContactInfo struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Fallback is returned with 503 when no model is configured.
type Fallback struct {
	Message     string      `json:"message"`
	ContactInfo ContactInfo `json:"contactInfo"`
}
