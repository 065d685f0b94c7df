package repository

import (
	"strings"
	"testing"

	"portfolio_backend/internal/contact/domain"

	"github.com/google/uuid"
)

func TestBulkSQLSetsAndDiffs(t *testing.T) {
	ids := []uuid.UUID{uuid.New(), uuid.New()}
	sql, args := bulkSQL(ids, []domain.Change{
		{Column: "status", Value: "Responded"},
		{Column: "tags", Value: []string{"vip"}},
	})

	if len(args) != 3 {
		t.Fatalf("expected 3 args, got %d", len(args))
	}
	for _, want := range []string{
		"status = $2::text",
		"tags = $3::text[]",
		"COALESCE(response_date, now())",
		"status IS DISTINCT FROM $2::text OR tags IS DISTINCT FROM $3::text[]",
		"WHERE id = ANY($1)",
	} {
		if !strings.Contains(sql, want) {
			t.Fatalf("expected %q in %s", want, sql)
		}
	}
}

func TestBulkSQLSkipsStampsWithoutStatus(t *testing.T) {
	sql, _ := bulkSQL([]uuid.UUID{uuid.New()}, []domain.Change{{Column: "priority", Value: "High"}})
	if strings.Contains(sql, "response_date") {
		t.Fatalf("expected no date stamps, got %s", sql)
	}
}
