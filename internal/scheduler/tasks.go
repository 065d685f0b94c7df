package scheduler

import (
	"encoding/json"
	"time"

	"portfolio_backend/internal/events"

	"github.com/hibiken/asynq"
)

const TaskContactNotify = "contact:notify"

// ContactNotifyPayload carries a stored contact submission to the worker.
type ContactNotifyPayload struct {
	SubmissionID string    `json:"submissionId"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Subject      string    `json:"subject"`
	InquiryType  string    `json:"inquiryType"`
	Message      string    `json:"message"`
	SubmittedAt  time.Time `json:"submittedAt"`
}

// PayloadFromEvent copies a ContactSubmitted event into a task payload.
func PayloadFromEvent(e events.ContactSubmitted) ContactNotifyPayload {
	return ContactNotifyPayload{
		SubmissionID: e.SubmissionID.String(),
		Name:         e.Name,
		Email:        e.Email,
		Subject:      e.Subject,
		InquiryType:  e.InquiryType,
		Message:      e.Message,
		SubmittedAt:  e.SubmittedAt,
	}
}

func NewContactNotifyTask(payload ContactNotifyPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskContactNotify, data), nil
}

func ParseContactNotifyPayload(task *asynq.Task) (ContactNotifyPayload, error) {
	var payload ContactNotifyPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return ContactNotifyPayload{}, err
	}
	return payload, nil
}
