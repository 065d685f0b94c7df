// Package email renders and delivers the contact form notifications.
package email

import (
	"context"

	"portfolio_backend/platform/config"
)

// Contact is the submission a notification is rendered from.
type Contact struct {
	SubmissionID string
	Name         string
	Email        string
	Subject      string
	InquiryType  string
	Message      string
	SubmittedAt  string
}

// Sender delivers contact form mail.
type Sender interface {
	// SendContactNotification tells the site owner about a new submission.
	SendContactNotification(ctx context.Context, toEmail string, c Contact) error
	// SendContactAutoReply confirms receipt to the submitter.
	SendContactAutoReply(ctx context.Context, c Contact) error
}

// NoopSender drops every message. Used when SMTP is not configured.
type NoopSender struct{}

func (NoopSender) SendContactNotification(ctx context.Context, toEmail string, c Contact) error {
	return nil
}

func (NoopSender) SendContactAutoReply(ctx context.Context, c Contact) error {
	return nil
}

// NewSender returns an SMTP sender, or a NoopSender when SMTP is disabled.
func NewSender(cfg config.SMTPConfig) Sender {
	if !cfg.IsSMTPEnabled() {
		return NoopSender{}
	}
	return NewSMTPSender(cfg.GetSMTPHost(), cfg.GetSMTPPort(), cfg.GetSMTPUser(), cfg.GetSMTPPass(), cfg.GetSMTPFrom())
}
