package email

import (
	"context"
	"strings"
	"testing"
)

type smtpConfig struct {
	host string
	from string
}

func (c smtpConfig) GetSMTPHost() string           { return c.host }
func (c smtpConfig) GetSMTPPort() int              { return 587 }
func (c smtpConfig) GetSMTPUser() string           { return "" }
func (c smtpConfig) GetSMTPPass() string           { return "" }
func (c smtpConfig) GetSMTPFrom() string           { return c.from }
func (c smtpConfig) GetContactNotifyEmail() string { return "" }
func (c smtpConfig) IsSMTPEnabled() bool           { return c.host != "" && c.from != "" }

func sampleContact() Contact {
	return Contact{
		SubmissionID: "2f1c",
		Name:         "Ada <script>",
		Email:        "ada@example.com",
		Subject:      "Website redesign",
		InquiryType:  "project",
		Message:      "Line one\nLine two",
		SubmittedAt:  "2026-01-02T15:04:05Z",
	}
}

func TestRenderContactNotification(t *testing.T) {
	out, err := renderContactNotification(sampleContact())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{"New contact submission", "Website redesign", "mailto:ada@example.com", "Line one", "2f1c"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q", want)
		}
	}
	if strings.Contains(out, "<script>") {
		t.Fatal("expected submitter name to be escaped")
	}
}

func TestRenderContactAutoReply(t *testing.T) {
	out, err := renderContactAutoReply(sampleContact())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "We received your message") || !strings.Contains(out, "Website redesign") {
		t.Fatalf("unexpected auto-reply body: %s", out)
	}
}

func TestNewSenderWithoutSMTPIsNoop(t *testing.T) {
	sender := NewSender(smtpConfig{})
	if _, ok := sender.(NoopSender); !ok {
		t.Fatalf("expected NoopSender, got %T", sender)
	}
	if err := sender.SendContactAutoReply(context.Background(), sampleContact()); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}

func TestNewSenderWithSMTP(t *testing.T) {
	sender := NewSender(smtpConfig{host: "smtp.example.com", from: "Portfolio <hello@example.com>"})
	if _, ok := sender.(*SMTPSender); !ok {
		t.Fatalf("expected *SMTPSender, got %T", sender)
	}
}

func TestSMTPMessageHeaders(t *testing.T) {
	s := NewSMTPSender("smtp.example.com", 587, "", "", "Portfolio <hello@example.com>")
	msg, err := s.message("owner@example.com", "ada@example.com", "Hi", "<p>x</p>")
	if err != nil {
		t.Fatalf("message: %v", err)
	}
	if got := msg.GetToString(); len(got) != 1 || !strings.Contains(got[0], "owner@example.com") {
		t.Fatalf("expected recipient owner@example.com, got %v", got)
	}

	if _, err := s.message("not an address", "", "Hi", "<p>x</p>"); err == nil {
		t.Fatal("expected invalid recipient to fail")
	}
}
