// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"time"

	"portfolio_backend/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// ContactSubmitted is published after a contact form submission is stored.
type ContactSubmitted struct {
	BaseEvent
	SubmissionID uuid.UUID `json:"submissionId"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Subject      string    `json:"subject"`
	InquiryType  string    `json:"inquiryType"`
	Message      string    `json:"message"`
	SubmittedAt  time.Time `json:"submittedAt"`
}

func (e ContactSubmitted) EventName() string { return "contact.submission.created" }
