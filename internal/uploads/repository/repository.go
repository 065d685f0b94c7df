// Package repository writes uploaded file URLs onto entity rows.
package repository

import (
	"context"
	"fmt"

	"portfolio_backend/internal/uploads/domain"
	"portfolio_backend/platform/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Attacher writes uploaded URLs onto an entity row.
type Attacher interface {
	// Attach reports false when no row has the id.
	Attach(ctx context.Context, f domain.Field, id uuid.UUID, urls []string) (bool, error)
}

// Repo implements Attacher with PostgreSQL.
type Repo struct {
	db db.Querier
}

// New creates a new uploads repository.
func New(q db.Querier) *Repo {
	return &Repo{db: q}
}

// Compile-time check that Repo implements Attacher.
var _ Attacher = (*Repo)(nil)

// Attach sets a scalar column to the first URL, or appends the URLs missing
// from an array column.
func (r *Repo) Attach(ctx context.Context, f domain.Field, id uuid.UUID, urls []string) (bool, error) {
	if len(urls) == 0 {
		return false, fmt.Errorf("attach %s.%s: no urls", f.Table, f.Column)
	}
	sql, arg := attachSQL(f, urls)
	tag, err := r.db.Exec(ctx, sql, id, arg)
	if err != nil {
		return false, db.TranslateError("uploads.attach", "", err)
	}
	return tag.RowsAffected() > 0, nil
}

func attachSQL(f domain.Field, urls []string) (string, any) {
	table, column := pgx.Identifier{f.Table}.Sanitize(), pgx.Identifier{f.Column}.Sanitize()
	if !f.Array {
		return fmt.Sprintf("UPDATE %s SET %s = $2, updated_at = now() WHERE id = $1", table, column), urls[0]
	}
	return fmt.Sprintf(`UPDATE %[1]s SET %[2]s = %[2]s || ARRAY(
			SELECT u FROM unnest($2::text[]) WITH ORDINALITY AS n(u, i)
			WHERE u <> ALL(%[2]s) ORDER BY i
		), updated_at = now() WHERE id = $1`, table, column), urls
}
