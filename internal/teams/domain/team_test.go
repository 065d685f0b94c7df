package domain

import (
	"testing"

	"github.com/google/uuid"
)

func TestNormalizeAddsLeadToMembers(t *testing.T) {
	lead, other := uuid.New(), uuid.New()
	f := Fields{TeamName: " Platform ", MemberIDs: []uuid.UUID{other}, TeamLeadID: &lead}
	f.Normalize()

	if f.TeamName != "Platform" {
		t.Fatalf("expected trimmed name, got %q", f.TeamName)
	}
	if len(f.MemberIDs) != 2 || f.MemberIDs[1] != lead {
		t.Fatalf("expected lead appended to members, got %v", f.MemberIDs)
	}
	if f.IsActive == nil || !*f.IsActive {
		t.Fatal("expected team to default to active")
	}

	f.Normalize()
	if len(f.MemberIDs) != 2 {
		t.Fatalf("expected lead added once, got %v", f.MemberIDs)
	}
}

func TestNormalizeKeepsExplicitInactive(t *testing.T) {
	inactive := false
	f := Fields{TeamName: "Ops", IsActive: &inactive}
	f.Normalize()
	if *f.IsActive {
		t.Fatal("expected inactive to be kept")
	}
}
