package domain

import (
	"testing"
	"time"
)

func TestNormalizeDefaultsPartnership(t *testing.T) {
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	email := " Ops@Acme.COM "
	f := Fields{Name: " Acme ", ContactEmail: &email}
	f.Normalize(now)

	if f.Name != "Acme" {
		t.Fatalf("expected trimmed name, got %q", f.Name)
	}
	if *f.ContactEmail != "ops@acme.com" {
		t.Fatalf("expected lower-cased email, got %q", *f.ContactEmail)
	}
	if f.Partnership.Status != PartnershipActive || f.Partnership.Type != PartnershipOneTime {
		t.Fatalf("expected partnership defaults, got %+v", f.Partnership)
	}
	if f.Partnership.StartDate == nil || !f.Partnership.StartDate.Equal(now) {
		t.Fatalf("expected start date %v, got %v", now, f.Partnership.StartDate)
	}
	if f.ProjectIDs == nil {
		t.Fatal("expected empty project list, got nil")
	}
}

func TestSatisfactionLevel(t *testing.T) {
	rating := func(v float64) *float64 { return &v }
	cases := []struct {
		avg  *float64
		want string
	}{
		{nil, "No Rating"},
		{rating(4.5), "Excellent"},
		{rating(4.2), "Very Good"},
		{rating(3.5), "Good"},
		{rating(3), "Fair"},
		{rating(2.9), "Poor"},
	}
	for _, tc := range cases {
		if got := SatisfactionLevel(tc.avg); got != tc.want {
			t.Fatalf("expected %q, got %q", tc.want, got)
		}
	}
}
