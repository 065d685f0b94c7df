package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

type baseEmailData struct {
	Title      string
	Heading    string
	Subheading string
}

type contactEmailData struct {
	baseEmailData
	Contact
}

func renderEmailTemplate(name string, data any) (string, error) {
	templates := []string{"templates/base.html", "templates/" + name}
	tmpl, err := template.New("base.html").ParseFS(templateFS, templates...)
	if err != nil {
		return "", fmt.Errorf("parse email template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "email", data); err != nil {
		return "", fmt.Errorf("execute email template %s: %w", name, err)
	}
	return buf.String(), nil
}

func renderContactNotification(c Contact) (string, error) {
	return renderEmailTemplate("contact_notification.html", contactEmailData{
		baseEmailData: baseEmailData{
			Title:      "New contact submission",
			Heading:    "New contact submission",
			Subheading: c.Subject,
		},
		Contact: c,
	})
}

func renderContactAutoReply(c Contact) (string, error) {
	return renderEmailTemplate("contact_auto_reply.html", contactEmailData{
		baseEmailData: baseEmailData{
			Title:   subjectContactAutoReply,
			Heading: "We received your message",
		},
		Contact: c,
	})
}
