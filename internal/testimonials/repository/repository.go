package repository

import (
	"context"
	"fmt"

	"portfolio_backend/internal/analytics"
	"portfolio_backend/internal/query"
	"portfolio_backend/internal/shared/refs"
	"portfolio_backend/internal/testimonials/domain"
	"portfolio_backend/platform/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	table                  = "testimonials"
	testimonialNotFoundMsg = "Testimonial not found"

	baseColumns = `t.id, t.client_name, t.client_company, t.client_designation, t.client_image, t.client_email,
		t.quote, t.rating, t.featured, t.approved, t.related_project_id, t.client_id, t.service_category,
		t.location, t.source, t.date_given, t.verified, t.tags, t.created_at, t.updated_at`

	countFrom = "SELECT COUNT(*) FROM testimonials t"
)

var selectFrom = "SELECT " + baseColumns + ", " + refs.ProjectOne("t.related_project_id") + " AS related_project, " +
	refs.ClientOne("t.client_id") + " AS client FROM testimonials t"

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	db     db.Querier
	runner *analytics.Runner
}

// New creates a new testimonials repository.
func New(q db.Querier) *Repo {
	return &Repo{db: q, runner: analytics.NewRunner(q)}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// List returns one page of testimonials and the total matching count.
func (r *Repo) List(ctx context.Context, plan query.Plan) ([]domain.Testimonial, int, error) {
	items, total, err := query.Fetch(ctx, r.db, plan, selectFrom, countFrom, pgx.RowToStructByName[domain.Testimonial])
	if err != nil {
		return nil, 0, db.TranslateError("testimonials.list", testimonialNotFoundMsg, err)
	}
	return items, total, nil
}

// Collect returns the testimonials of a plan without counting.
func (r *Repo) Collect(ctx context.Context, plan query.Plan) ([]domain.Testimonial, error) {
	items, err := query.Collect(ctx, r.db, plan, selectFrom, pgx.RowToStructByName[domain.Testimonial])
	if err != nil {
		return nil, db.TranslateError("testimonials.collect", testimonialNotFoundMsg, err)
	}
	return items, nil
}

// GetByID returns a testimonial with its project and client.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (domain.Testimonial, error) {
	rows, err := r.db.Query(ctx, selectFrom+" WHERE t.id = $1", id)
	if err != nil {
		return domain.Testimonial{}, db.TranslateError("testimonials.get", testimonialNotFoundMsg, err)
	}
	t, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[domain.Testimonial])
	if err != nil {
		return domain.Testimonial{}, db.TranslateError("testimonials.get", testimonialNotFoundMsg, err)
	}
	return t, nil
}

// Create inserts a testimonial.
func (r *Repo) Create(ctx context.Context, f domain.Fields) (domain.Testimonial, error) {
	var id uuid.UUID
	err := r.db.QueryRow(ctx, `
		INSERT INTO testimonials (client_name, client_company, client_designation, client_image, client_email, quote,
			rating, featured, approved, related_project_id, client_id, service_category, location, source, date_given,
			verified, tags)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING id`,
		f.ClientName, f.ClientCompany, f.ClientDesignation, f.ClientImage, f.ClientEmail, f.Quote,
		f.Rating, f.Featured, f.Approved, f.RelatedProjectID, f.ClientID, f.ServiceCategory, f.Location, f.Source, f.DateGiven,
		f.Verified, f.Tags,
	).Scan(&id)
	if err != nil {
		return domain.Testimonial{}, db.TranslateError("testimonials.create", testimonialNotFoundMsg, err)
	}
	return r.GetByID(ctx, id)
}

// Update overwrites every writable column of a testimonial.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, f domain.Fields) (domain.Testimonial, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE testimonials SET client_name = $2, client_company = $3, client_designation = $4, client_image = $5,
			client_email = $6, quote = $7, rating = $8, featured = $9, approved = $10, related_project_id = $11,
			client_id = $12, service_category = $13, location = $14, source = $15, date_given = $16, verified = $17,
			tags = $18, updated_at = now()
		WHERE id = $1`,
		id, f.ClientName, f.ClientCompany, f.ClientDesignation, f.ClientImage, f.ClientEmail, f.Quote,
		f.Rating, f.Featured, f.Approved, f.RelatedProjectID, f.ClientID, f.ServiceCategory, f.Location, f.Source, f.DateGiven,
		f.Verified, f.Tags,
	)
	if err != nil {
		return domain.Testimonial{}, db.TranslateError("testimonials.update", testimonialNotFoundMsg, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.Testimonial{}, db.TranslateError("testimonials.update", testimonialNotFoundMsg, pgx.ErrNoRows)
	}
	return r.GetByID(ctx, id)
}

// SetApproved flips the moderation flag.
func (r *Repo) SetApproved(ctx context.Context, id uuid.UUID, approved bool) (domain.Testimonial, error) {
	tag, err := r.db.Exec(ctx, `UPDATE testimonials SET approved = $2, updated_at = now() WHERE id = $1`, id, approved)
	if err != nil {
		return domain.Testimonial{}, db.TranslateError("testimonials.approve", testimonialNotFoundMsg, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.Testimonial{}, db.TranslateError("testimonials.approve", testimonialNotFoundMsg, pgx.ErrNoRows)
	}
	return r.GetByID(ctx, id)
}

// Delete removes a testimonial.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM testimonials WHERE id = $1`, id)
	if err != nil {
		return db.TranslateError("testimonials.delete", testimonialNotFoundMsg, err)
	}
	if tag.RowsAffected() == 0 {
		return db.TranslateError("testimonials.delete", testimonialNotFoundMsg, pgx.ErrNoRows)
	}
	return nil
}

// Aggregate runs grouped counts over testimonials.
func (r *Repo) Aggregate(ctx context.Context, specs ...analytics.Spec) (map[string][]analytics.Bucket, error) {
	out, err := r.runner.Run(ctx, table, specs...)
	if err != nil {
		return nil, fmt.Errorf("testimonials analytics: %w", err)
	}
	return out, nil
}

// Totals computes aggregates over the testimonials matching where.
func (r *Repo) Totals(ctx context.Context, where string, measures ...analytics.Measure) (map[string]float64, error) {
	out, err := r.runner.Totals(ctx, table, where, measures...)
	if err != nil {
		return nil, fmt.Errorf("testimonials totals: %w", err)
	}
	return out, nil
}
