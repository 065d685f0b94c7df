package main

import (
	"testing"

	"portfolio_backend/internal/access"
)

func TestNormalizeRole(t *testing.T) {
	cases := map[string]string{
		"admin":   access.RoleAdmin,
		"MANAGER": access.RoleManager,
		"Editor":  access.RoleEditor,
		"owner":   "owner",
	}
	for in, want := range cases {
		if got := normalizeRole(in); got != want {
			t.Fatalf("normalizeRole(%q): expected %q, got %q", in, want, got)
		}
	}
}

func TestCreateUserRequiresIdentity(t *testing.T) {
	cmd := createUserCmd()
	cmd.SetArgs([]string{"--username", "ada"})
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected missing --email to fail")
	}
}
