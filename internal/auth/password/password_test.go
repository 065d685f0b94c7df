package password

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCompare(t *testing.T) {
	hash, err := Hash("s3cret-pass")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cost, _ := bcrypt.Cost([]byte(hash)); cost != Cost {
		t.Fatalf("expected cost %d, got %d", Cost, cost)
	}
	if err := Compare(hash, "s3cret-pass"); err != nil {
		t.Fatalf("expected match, got %v", err)
	}
	if err := Compare(hash, "wrong"); err == nil {
		t.Fatal("expected mismatch")
	}
}
