package domain

import (
	"testing"
	"time"
)

func TestApplyStatusStampsOnce(t *testing.T) {
	first := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	var f Fields

	f.ApplyStatus(StatusResponded, first)
	if f.ResponseDate == nil || !f.ResponseDate.Equal(first) {
		t.Fatalf("expected response date %v, got %v", first, f.ResponseDate)
	}
	f.ApplyStatus(StatusResponded, first.Add(time.Hour))
	if !f.ResponseDate.Equal(first) {
		t.Fatalf("expected response date kept, got %v", f.ResponseDate)
	}

	f.ApplyStatus(StatusConverted, first)
	if f.ConversionDate == nil {
		t.Fatal("expected conversion date")
	}
	if f.Status != StatusConverted {
		t.Fatalf("expected Converted, got %q", f.Status)
	}
}

func TestApplyStatusAllowsAnyTransition(t *testing.T) {
	f := Fields{Status: StatusConverted}
	f.ApplyStatus(StatusNew, time.Now())
	if f.Status != StatusNew {
		t.Fatalf("expected New, got %q", f.Status)
	}
}

func TestDerive(t *testing.T) {
	submitted := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	responded := submitted.Add(90 * time.Minute)
	followUp := submitted.Add(24 * time.Hour)
	now := submitted.Add(72*time.Hour + time.Minute)

	s := Submission{
		Fields: Fields{Status: StatusInProgress, ResponseDate: &responded, FollowUpDate: &followUp},
		Meta:   Meta{SubmittedAt: submitted},
	}
	s.Derive(now)

	if s.ResponseTimeHours == nil || *s.ResponseTimeHours != 2 {
		t.Fatalf("expected 2 response hours, got %v", s.ResponseTimeHours)
	}
	if s.DaysSinceSubmission != 4 {
		t.Fatalf("expected 4 days, got %d", s.DaysSinceSubmission)
	}
	if !s.IsOverdue || s.IsConverted {
		t.Fatalf("expected overdue and open, got overdue=%v converted=%v", s.IsOverdue, s.IsConverted)
	}

	s.Status = StatusArchived
	s.Derive(now)
	if s.IsOverdue {
		t.Fatal("expected archived submission not overdue")
	}
}

func TestNormalizeDefaults(t *testing.T) {
	f := Fields{Name: " Ann ", Email: " ANN@Example.com "}
	f.Normalize()
	if f.Email != "ann@example.com" || f.Name != "Ann" {
		t.Fatalf("unexpected normalization: %q %q", f.Name, f.Email)
	}
	if f.Status != StatusNew || f.Priority != "Medium" || f.InquiryType != "General Inquiry" || f.Source != "Website Contact Form" {
		t.Fatalf("unexpected defaults: %+v", f)
	}
}
