package validator

import (
	"strings"
	"testing"

	"portfolio_backend/platform/apperr"
)

type sample struct {
	Title string `json:"title" validate:"required,max=10"`
	Phone string `json:"phone" validate:"omitempty,phone"`
	Slug  string `json:"slug" validate:"omitempty,slug"`
	Kind  string `json:"kind" validate:"omitempty,oneof=web mobile"`
}

func TestCheckReportsEveryField(t *testing.T) {
	err := New().Check(sample{Phone: "abc", Slug: "Not A Slug", Kind: "desktop"})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	e, ok := err.(*apperr.Error)
	if !ok {
		t.Fatalf("expected *apperr.Error, got %T", err)
	}
	details, ok := e.Details.([]string)
	if !ok || len(details) != 4 {
		t.Fatalf("expected 4 details, got %#v", e.Details)
	}
	for _, want := range []string{
		"title is required",
		"phone must be a valid phone number",
		"slug can only contain lowercase letters, numbers, and hyphens",
		"kind must be one of: web mobile",
	} {
		if !strings.Contains(e.Message, want) {
			t.Fatalf("expected message to contain %q, got %q", want, e.Message)
		}
	}
}

func TestCheckAcceptsValid(t *testing.T) {
	if err := New().Check(sample{Title: "Site", Phone: "+1 415 555 2671", Slug: "my-site-2", Kind: "web"}); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}
