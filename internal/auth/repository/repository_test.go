package repository

import (
	"strings"
	"testing"
	"time"
)

func TestRecordFailureQueryRestartsExpiredLock(t *testing.T) {
	query := strings.Join(strings.Fields(recordFailureQuery), " ")

	requiredFragments := []string{
		"login_attempts = CASE WHEN lock_until IS NOT NULL AND lock_until <= $2 THEN 1",
		"WHEN lock_until IS NULL AND login_attempts + 1 >= $3 THEN $4",
		"ELSE lock_until",
		"WHERE id = $1",
	}
	for _, fragment := range requiredFragments {
		if !strings.Contains(query, fragment) {
			t.Fatalf("expected query fragment %q to be present", fragment)
		}
	}
}

func TestUserLocked(t *testing.T) {
	now := time.Now()
	later, earlier := now.Add(time.Minute), now.Add(-time.Minute)

	if (User{}).Locked(now) {
		t.Fatal("expected user without lock to be unlocked")
	}
	if !(User{LockUntil: &later}).Locked(now) {
		t.Fatal("expected future lock to hold")
	}
	if (User{LockUntil: &earlier}).Locked(now) {
		t.Fatal("expected past lock to be expired")
	}
}
