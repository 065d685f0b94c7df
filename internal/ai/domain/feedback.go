package domain

import (
	"time"

	"github.com/google/uuid"
)

// Feedback is a rating left on an assistant response.
type Feedback struct {
	ID             uuid.UUID  `json:"id" db:"id"`
	ConversationID string     `json:"conversationId" db:"conversation_id"`
	ResponseID     *string    `json:"responseId,omitempty" db:"response_id"`
	Rating         int        `json:"rating" db:"rating"`
	Feedback       *string    `json:"feedback,omitempty" db:"feedback"`
	UserID         *uuid.UUID `json:"userId,omitempty" db:"user_id"`
	CreatedAt      time.Time  `json:"createdAt" db:"created_at"`
}

// Entry is one line of the company context given to the model.
type Entry struct {
	Title  string `db:"title"`
	Detail string `db:"detail"`
}
