package email

import (
	"context"
	"fmt"
	"time"

	gomail "github.com/wneessen/go-mail"
)

// SMTPSender implements Sender over a direct SMTP connection via go-mail.
type SMTPSender struct {
	host     string
	port     int
	username string
	password string
	from     string
}

// NewSMTPSender creates a new SMTPSender. from may be a bare address or
// "Name <address>".
func NewSMTPSender(host string, port int, username, password, from string) *SMTPSender {
	return &SMTPSender{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

func (s *SMTPSender) message(toEmail, replyTo, subject, htmlContent string) (*gomail.Msg, error) {
	msg := gomail.NewMsg()
	if err := msg.From(s.from); err != nil {
		return nil, fmt.Errorf("smtp from: %w", err)
	}
	if err := msg.To(toEmail); err != nil {
		return nil, fmt.Errorf("smtp to: %w", err)
	}
	if replyTo != "" {
		if err := msg.ReplyTo(replyTo); err != nil {
			return nil, fmt.Errorf("smtp reply-to: %w", err)
		}
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, htmlContent)
	return msg, nil
}

func (s *SMTPSender) send(ctx context.Context, msg *gomail.Msg) error {
	opts := []gomail.Option{
		gomail.WithPort(s.port),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(15 * time.Second),
	}
	if s.username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(s.username),
			gomail.WithPassword(s.password),
		)
	}

	client, err := gomail.NewClient(s.host, opts...)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

// SendContactNotification mails the submission to the site owner with the
// submitter as Reply-To.
func (s *SMTPSender) SendContactNotification(ctx context.Context, toEmail string, c Contact) error {
	content, err := renderContactNotification(c)
	if err != nil {
		return err
	}
	msg, err := s.message(toEmail, c.Email, fmt.Sprintf(subjectContactNotificationFmt, c.Subject), content)
	if err != nil {
		return err
	}
	return s.send(ctx, msg)
}

func (s *SMTPSender) SendContactAutoReply(ctx context.Context, c Contact) error {
	content, err := renderContactAutoReply(c)
	if err != nil {
		return err
	}
	msg, err := s.message(c.Email, "", subjectContactAutoReply, content)
	if err != nil {
		return err
	}
	return s.send(ctx, msg)
}
