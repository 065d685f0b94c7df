package domain

import (
	"strings"
	"testing"
	"time"
)

func ptr(s string) *string { return &s }

func TestDisplayName(t *testing.T) {
	cases := []struct {
		company, designation *string
		want                 string
	}{
		{ptr("Acme"), ptr("CTO"), "Ann, CTO at Acme"},
		{ptr("Acme"), nil, "Ann, Acme"},
		{nil, ptr("CTO"), "Ann, CTO"},
		{nil, nil, "Ann"},
	}
	for _, tc := range cases {
		if got := DisplayName("Ann", tc.company, tc.designation); got != tc.want {
			t.Fatalf("expected %q, got %q", tc.want, got)
		}
	}
}

func TestDerive(t *testing.T) {
	tm := Testimonial{Fields: Fields{ClientName: "Ann", Rating: 4, Quote: strings.Repeat("a", 200)}}
	tm.Derive()
	if tm.Stars != "★★★★☆" {
		t.Fatalf("expected four stars, got %q", tm.Stars)
	}
	if len(tm.ShortQuote) != 153 || !strings.HasSuffix(tm.ShortQuote, "...") {
		t.Fatalf("expected truncated quote, got %d chars", len(tm.ShortQuote))
	}
}

func TestNormalizeDefaults(t *testing.T) {
	now := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	f := Fields{ClientName: " Ann ", ClientCompany: ptr("  "), ClientEmail: ptr(" Ann@X.io ")}
	f.Normalize(now)
	if f.ClientName != "Ann" || f.ClientCompany != nil {
		t.Fatalf("expected trimmed fields, got %q %v", f.ClientName, f.ClientCompany)
	}
	if *f.ClientEmail != "ann@x.io" {
		t.Fatalf("expected lower-cased email, got %q", *f.ClientEmail)
	}
	if f.Source != SourceWebsiteForm || !f.DateGiven.Equal(now) {
		t.Fatalf("expected source and date defaults, got %q %v", f.Source, f.DateGiven)
	}
}
