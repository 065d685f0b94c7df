package repository

import (
	"context"
	"fmt"

	"portfolio_backend/internal/analytics"
	"portfolio_backend/internal/clients/domain"
	"portfolio_backend/internal/query"
	"portfolio_backend/internal/shared/refs"
	"portfolio_backend/platform/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	table             = "clients"
	clientNotFoundMsg = "Client not found"

	baseColumns = `t.id, t.name, t.logo, t.industry, t.website, t.description, t.contact_person, t.contact_email,
		t.contact_phone, t.project_ids, t.location, t.company_size, t.partnership, t.featured, t.created_at, t.updated_at`

	countFrom = "SELECT COUNT(*) FROM clients t"

	// one row per client with its linked project count and partnership age
	retentionSource = `(SELECT
			(SELECT COUNT(*) FROM projects p WHERE p.client_id = c.id) AS project_count,
			EXTRACT(EPOCH FROM (now() - (c.partnership->>'startDate')::timestamptz)) / 86400 AS partnership_days
		FROM clients c)`

	topClientsQuery = `
		SELECT t.id, t.name, t.logo, t.industry, COALESCE(t.partnership->>'status', '') AS partnership_status,
			cardinality(t.project_ids) AS project_count,
			(SELECT COUNT(*)::int FROM projects p WHERE p.id = ANY(t.project_ids) AND p.status = 'Completed') AS completed_projects
		FROM clients t
		ORDER BY project_count DESC, t.id
		LIMIT $1`

	satisfactionQuery = `
		SELECT t.id, t.name AS client_name, t.industry,
			(SELECT COUNT(*)::int FROM projects p WHERE p.client_id = t.id) AS project_count,
			COUNT(r.rating)::int AS total_testimonials,
			ROUND(AVG(r.rating)::numeric, 2)::float8 AS average_rating
		FROM clients t
		LEFT JOIN LATERAL (
			SELECT (e->>'rating')::int AS rating
			FROM projects p, jsonb_array_elements(p.testimonials) AS e
			WHERE p.client_id = t.id
		) r ON true
		GROUP BY t.id, t.name, t.industry
		ORDER BY average_rating DESC NULLS LAST, t.id`
)

var selectFrom = "SELECT " + baseColumns + ", " + refs.ProjectsAny("t.project_ids", false) + " AS projects FROM clients t"

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	db     db.Querier
	runner *analytics.Runner
}

// New creates a new clients repository.
func New(q db.Querier) *Repo {
	return &Repo{db: q, runner: analytics.NewRunner(q)}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// List returns one page of clients and the total matching count.
func (r *Repo) List(ctx context.Context, plan query.Plan) ([]domain.Client, int, error) {
	items, total, err := query.Fetch(ctx, r.db, plan, selectFrom, countFrom, pgx.RowToStructByName[domain.Client])
	if err != nil {
		return nil, 0, db.TranslateError("clients.list", clientNotFoundMsg, err)
	}
	return items, total, nil
}

// Collect returns the clients of a plan without counting.
func (r *Repo) Collect(ctx context.Context, plan query.Plan) ([]domain.Client, error) {
	items, err := query.Collect(ctx, r.db, plan, selectFrom, pgx.RowToStructByName[domain.Client])
	if err != nil {
		return nil, db.TranslateError("clients.collect", clientNotFoundMsg, err)
	}
	return items, nil
}

// GetByID returns a client with its projects.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (domain.Client, error) {
	rows, err := r.db.Query(ctx, selectFrom+" WHERE t.id = $1", id)
	if err != nil {
		return domain.Client{}, db.TranslateError("clients.get", clientNotFoundMsg, err)
	}
	c, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[domain.Client])
	if err != nil {
		return domain.Client{}, db.TranslateError("clients.get", clientNotFoundMsg, err)
	}
	return c, nil
}

// Create inserts a client.
func (r *Repo) Create(ctx context.Context, f domain.Fields) (domain.Client, error) {
	var id uuid.UUID
	err := r.db.QueryRow(ctx, `
		INSERT INTO clients (name, logo, industry, website, description, contact_person, contact_email, contact_phone,
			project_ids, location, company_size, partnership, featured)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id`,
		f.Name, f.Logo, f.Industry, f.Website, f.Description, f.ContactPerson, f.ContactEmail, f.ContactPhone,
		f.ProjectIDs, f.Location, f.CompanySize, f.Partnership, f.Featured,
	).Scan(&id)
	if err != nil {
		return domain.Client{}, db.TranslateError("clients.create", clientNotFoundMsg, err)
	}
	return r.GetByID(ctx, id)
}

// Update overwrites every writable column of a client.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, f domain.Fields) (domain.Client, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE clients SET name = $2, logo = $3, industry = $4, website = $5, description = $6, contact_person = $7,
			contact_email = $8, contact_phone = $9, project_ids = $10, location = $11, company_size = $12,
			partnership = $13, featured = $14, updated_at = now()
		WHERE id = $1`,
		id, f.Name, f.Logo, f.Industry, f.Website, f.Description, f.ContactPerson, f.ContactEmail, f.ContactPhone,
		f.ProjectIDs, f.Location, f.CompanySize, f.Partnership, f.Featured,
	)
	if err != nil {
		return domain.Client{}, db.TranslateError("clients.update", clientNotFoundMsg, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.Client{}, db.TranslateError("clients.update", clientNotFoundMsg, pgx.ErrNoRows)
	}
	return r.GetByID(ctx, id)
}

// Delete removes a client.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return db.TranslateError("clients.delete", clientNotFoundMsg, err)
	}
	if tag.RowsAffected() == 0 {
		return db.TranslateError("clients.delete", clientNotFoundMsg, pgx.ErrNoRows)
	}
	return nil
}

// Aggregate runs grouped counts over clients.
func (r *Repo) Aggregate(ctx context.Context, specs ...analytics.Spec) (map[string][]analytics.Bucket, error) {
	out, err := r.runner.Run(ctx, table, specs...)
	if err != nil {
		return nil, fmt.Errorf("clients analytics: %w", err)
	}
	return out, nil
}

// Totals computes whole-table aggregates over clients.
func (r *Repo) Totals(ctx context.Context, measures ...analytics.Measure) (map[string]float64, error) {
	out, err := r.runner.Totals(ctx, table, "", measures...)
	if err != nil {
		return nil, fmt.Errorf("clients totals: %w", err)
	}
	return out, nil
}

// Retention computes the repeat-business aggregates.
func (r *Repo) Retention(ctx context.Context) (map[string]float64, error) {
	out, err := r.runner.Totals(ctx, retentionSource, "",
		analytics.Measure{Name: "retainedClients", Kind: analytics.Count, Expr: "t.project_count > 1"},
		analytics.Measure{Name: "avgPartnershipDuration", Kind: analytics.RoundedAvg, Expr: "t.partnership_days"},
		analytics.Measure{Name: "avgProjectsPerClient", Kind: analytics.RoundedAvg, Expr: "t.project_count", Decimals: 2},
	)
	if err != nil {
		return nil, fmt.Errorf("clients retention: %w", err)
	}
	return out, nil
}

// Top ranks clients by linked project count.
func (r *Repo) Top(ctx context.Context, limit int) ([]domain.TopClient, error) {
	rows, err := r.db.Query(ctx, topClientsQuery, limit)
	if err != nil {
		return nil, fmt.Errorf("clients top: %w", err)
	}
	items, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.TopClient])
	if err != nil {
		return nil, fmt.Errorf("clients top: %w", err)
	}
	return items, nil
}

// Satisfaction averages project testimonial ratings per client.
func (r *Repo) Satisfaction(ctx context.Context) ([]domain.Satisfaction, error) {
	rows, err := r.db.Query(ctx, satisfactionQuery)
	if err != nil {
		return nil, fmt.Errorf("clients satisfaction: %w", err)
	}
	items, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Satisfaction])
	if err != nil {
		return nil, fmt.Errorf("clients satisfaction: %w", err)
	}
	return items, nil
}
