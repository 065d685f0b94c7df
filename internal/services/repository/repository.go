package repository

import (
	"context"
	"fmt"

	"portfolio_backend/internal/analytics"
	"portfolio_backend/internal/query"
	"portfolio_backend/internal/services/domain"
	"portfolio_backend/internal/shared/refs"
	"portfolio_backend/platform/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	table              = "services"
	serviceNotFoundMsg = "Service not found"

	baseColumns = `t.id, t.name, t.description, t.short_description, t.icon, t.featured, t.category, t.tags,
		t.images, t.videos, t.benefits, t.process, t.price_range, t.related_project_ids, t.created_at, t.updated_at`
)

var (
	listSelect   = "SELECT " + baseColumns + ", " + refs.ProjectsAny("t.related_project_ids", false) + " AS related_projects FROM services t"
	detailSelect = "SELECT " + baseColumns + ", " + refs.ProjectsAny("t.related_project_ids", true) + " AS related_projects FROM services t"
	countFrom    = "SELECT COUNT(*) FROM services t"
)

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	db     db.Querier
	runner *analytics.Runner
}

// New creates a new services repository.
func New(q db.Querier) *Repo {
	return &Repo{db: q, runner: analytics.NewRunner(q)}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// List returns one page of services and the total matching count.
func (r *Repo) List(ctx context.Context, plan query.Plan) ([]domain.Service, int, error) {
	items, total, err := query.Fetch(ctx, r.db, plan, listSelect, countFrom, pgx.RowToStructByName[domain.Service])
	if err != nil {
		return nil, 0, db.TranslateError("services.list", serviceNotFoundMsg, err)
	}
	return items, total, nil
}

// Collect returns the services of a plan without counting.
func (r *Repo) Collect(ctx context.Context, plan query.Plan) ([]domain.Service, error) {
	items, err := query.Collect(ctx, r.db, plan, listSelect, pgx.RowToStructByName[domain.Service])
	if err != nil {
		return nil, db.TranslateError("services.collect", serviceNotFoundMsg, err)
	}
	return items, nil
}

// GetByID returns a service with its related projects and their clients.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (domain.Service, error) {
	rows, err := r.db.Query(ctx, detailSelect+" WHERE t.id = $1", id)
	if err != nil {
		return domain.Service{}, db.TranslateError("services.get", serviceNotFoundMsg, err)
	}
	svc, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[domain.Service])
	if err != nil {
		return domain.Service{}, db.TranslateError("services.get", serviceNotFoundMsg, err)
	}
	return svc, nil
}

// WithProjectCount annotates every service with the number of projects using
// it. limit 0 returns all services.
func (r *Repo) WithProjectCount(ctx context.Context, limit int) ([]domain.WithProjectCount, error) {
	sql := "SELECT " + baseColumns + ", " + refs.ProjectsAny("t.related_project_ids", false) + ` AS related_projects,
		(SELECT COUNT(*)::int FROM projects p WHERE t.id = ANY(p.service_ids)) AS project_count
		FROM services t
		ORDER BY project_count DESC, t.created_at DESC, t.id ASC`
	args := []any{}
	if limit > 0 {
		sql += " LIMIT $1"
		args = append(args, limit)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, db.TranslateError("services.with_project_count", serviceNotFoundMsg, err)
	}
	items, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.WithProjectCount])
	if err != nil {
		return nil, db.TranslateError("services.with_project_count", serviceNotFoundMsg, err)
	}
	return items, nil
}

// Create inserts a service.
func (r *Repo) Create(ctx context.Context, f domain.Fields) (domain.Service, error) {
	var id uuid.UUID
	err := r.db.QueryRow(ctx, `
		INSERT INTO services (name, description, short_description, icon, featured, category, tags, images, videos,
			benefits, process, price_range, related_project_ids)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id`,
		f.Name, f.Description, f.ShortDescription, f.Icon, f.Featured, f.Category, f.Tags, f.Images, f.Videos,
		f.Benefits, f.Process, f.PriceRange, f.RelatedProjectIDs,
	).Scan(&id)
	if err != nil {
		return domain.Service{}, db.TranslateError("services.create", serviceNotFoundMsg, err)
	}
	return r.GetByID(ctx, id)
}

// Update overwrites every writable column of a service.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, f domain.Fields) (domain.Service, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE services SET name = $2, description = $3, short_description = $4, icon = $5, featured = $6,
			category = $7, tags = $8, images = $9, videos = $10, benefits = $11, process = $12, price_range = $13,
			related_project_ids = $14, updated_at = now()
		WHERE id = $1`,
		id, f.Name, f.Description, f.ShortDescription, f.Icon, f.Featured, f.Category, f.Tags, f.Images, f.Videos,
		f.Benefits, f.Process, f.PriceRange, f.RelatedProjectIDs,
	)
	if err != nil {
		return domain.Service{}, db.TranslateError("services.update", serviceNotFoundMsg, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.Service{}, db.TranslateError("services.update", serviceNotFoundMsg, pgx.ErrNoRows)
	}
	return r.GetByID(ctx, id)
}

// Delete removes a service.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		return db.TranslateError("services.delete", serviceNotFoundMsg, err)
	}
	if tag.RowsAffected() == 0 {
		return db.TranslateError("services.delete", serviceNotFoundMsg, pgx.ErrNoRows)
	}
	return nil
}

// Aggregate runs grouped counts over services.
func (r *Repo) Aggregate(ctx context.Context, specs ...analytics.Spec) (map[string][]analytics.Bucket, error) {
	out, err := r.runner.Run(ctx, table, specs...)
	if err != nil {
		return nil, fmt.Errorf("services analytics: %w", err)
	}
	return out, nil
}

// Totals computes whole-table aggregates over services.
func (r *Repo) Totals(ctx context.Context, measures ...analytics.Measure) (map[string]float64, error) {
	out, err := r.runner.Totals(ctx, table, "", measures...)
	if err != nil {
		return nil, fmt.Errorf("services totals: %w", err)
	}
	return out, nil
}
