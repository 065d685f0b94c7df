package db

import (
	"errors"
	"fmt"
	"testing"

	"portfolio_backend/platform/apperr"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestTranslateError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		kind apperr.Kind
		msg  string
	}{
		{"no rows", pgx.ErrNoRows, apperr.KindNotFound, "Project not found"},
		{"wrapped no rows", fmt.Errorf("scan: %w", pgx.ErrNoRows), apperr.KindNotFound, "Project not found"},
		{"unique", &pgconn.PgError{Code: "23505", TableName: "projects", ConstraintName: "projects_slug_key"}, apperr.KindConflict, "Duplicate value for slug. Please use another value"},
		{"unique unnamed", &pgconn.PgError{Code: "23505"}, apperr.KindConflict, "Duplicate field value. Please use another value"},
		{"foreign key", &pgconn.PgError{Code: "23503"}, apperr.KindValidation, "referenced resource does not exist"},
		{"check", &pgconn.PgError{Code: "23514", ColumnName: "rating"}, apperr.KindValidation, "invalid value for rating"},
		{"bad uuid", &pgconn.PgError{Code: "22P02"}, apperr.KindValidation, "malformed identifier or value"},
		{"domain", apperr.Forbidden("nope"), apperr.KindForbidden, "nope"},
		{"other", errors.New("connection refused"), apperr.KindInternal, "database operation failed"},
	}
	for _, tc := range cases {
		err := TranslateError("projects.get", "Project not found", tc.err)
		var got *apperr.Error
		if !errors.As(err, &got) {
			t.Fatalf("%s: expected *apperr.Error, got %T", tc.name, err)
		}
		if got.Kind != tc.kind || got.Message != tc.msg {
			t.Fatalf("%s: expected %v %q, got %v %q", tc.name, tc.kind, tc.msg, got.Kind, got.Message)
		}
	}
}

func TestTranslateErrorNil(t *testing.T) {
	if err := TranslateError("op", "missing", nil); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestTranslateErrorKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	if err := TranslateError("op", "missing", cause); !errors.Is(err, cause) {
		t.Fatalf("expected cause to be preserved, got %v", err)
	}
}
