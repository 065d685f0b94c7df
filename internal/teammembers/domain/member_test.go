package domain

import (
	"testing"
	"time"
)

func TestDeriveExperience(t *testing.T) {
	now := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	ended := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	m := TeamMember{Fields: Fields{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Position:  "Engineer",
		Experience: []Experience{
			{Company: "A", Position: "Intern", StartDate: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), EndDate: &ended},
			{Company: "B", Position: "Lead Engineer", StartDate: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)},
		},
	}}
	m.Derive(now)

	if m.FullName != "Ada Lovelace" {
		t.Fatalf("expected full name, got %q", m.FullName)
	}
	// 12 + 30 months
	if m.TotalExperienceYears != 3.5 {
		t.Fatalf("expected 3.5 years, got %v", m.TotalExperienceYears)
	}
	if m.CurrentPosition != "Lead Engineer" {
		t.Fatalf("expected open role as current position, got %q", m.CurrentPosition)
	}
}

func TestDeriveWithoutExperience(t *testing.T) {
	m := TeamMember{Fields: Fields{FirstName: "A", LastName: "B", Position: "Designer"}}
	m.Derive(time.Now())
	if m.TotalExperienceYears != 0 || m.CurrentPosition != "Designer" {
		t.Fatalf("unexpected derived values %v %q", m.TotalExperienceYears, m.CurrentPosition)
	}
}

func TestNormalizeDropsBlankEmailAndSkills(t *testing.T) {
	blank := "  "
	f := Fields{Email: &blank, Skills: []string{" Go ", "", "SQL"}}
	f.Normalize()
	if f.Email != nil {
		t.Fatalf("expected nil email, got %q", *f.Email)
	}
	if len(f.Skills) != 2 || f.Skills[0] != "Go" {
		t.Fatalf("unexpected skills %v", f.Skills)
	}
}
