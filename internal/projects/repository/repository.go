package repository

import (
	"context"
	"fmt"

	"portfolio_backend/internal/analytics"
	"portfolio_backend/internal/projects/domain"
	"portfolio_backend/internal/query"
	"portfolio_backend/internal/shared/refs"
	"portfolio_backend/platform/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	table              = "projects"
	projectNotFoundMsg = "Project not found"

	baseColumns = `t.id, t.title, t.short_description, t.full_description, t.featured, t.category, t.tags, t.thumbnail,
		t.images, t.videos, t.live_link, t.case_study_link, t.start_date, t.completion_date, t.estimated_completion_date,
		t.client_id, t.team_members, t.team_member_ids, t.service_ids, t.location, t.testimonials, t.budget, t.status,
		t.priority, t.technologies, t.challenges, t.results, t.created_at, t.updated_at`

	countFrom = "SELECT COUNT(*) FROM projects t"

	teamPerformanceQuery = `
		SELECT m.id AS member_id, m.first_name || ' ' || m.last_name AS member_name, m.position,
			COUNT(*)::int AS project_count,
			(COUNT(*) FILTER (WHERE t.status = 'Completed'))::int AS completed_projects
		FROM projects t
		CROSS JOIN LATERAL jsonb_array_elements(t.team_members) AS a(e)
		JOIN team_members m ON m.id = (a.e->>'member')::uuid
		GROUP BY m.id, m.first_name, m.last_name, m.position
		ORDER BY project_count DESC, m.id
		LIMIT $1`
)

var selectFrom = "SELECT " + baseColumns + ", " +
	refs.ClientOne("t.client_id") + " AS client, " +
	refs.MemberRoles("t.team_members") + " AS team_members_populated, " +
	refs.ServicesAny("t.service_ids") + " AS services_used FROM projects t"

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	db     db.Querier
	runner *analytics.Runner
}

// New creates a new projects repository.
func New(q db.Querier) *Repo {
	return &Repo{db: q, runner: analytics.NewRunner(q)}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// List returns one page of projects and the total matching count.
func (r *Repo) List(ctx context.Context, plan query.Plan) ([]domain.Project, int, error) {
	items, total, err := query.Fetch(ctx, r.db, plan, selectFrom, countFrom, pgx.RowToStructByName[domain.Project])
	if err != nil {
		return nil, 0, db.TranslateError("projects.list", projectNotFoundMsg, err)
	}
	return items, total, nil
}

// Collect returns the projects of a plan without counting.
func (r *Repo) Collect(ctx context.Context, plan query.Plan) ([]domain.Project, error) {
	items, err := query.Collect(ctx, r.db, plan, selectFrom, pgx.RowToStructByName[domain.Project])
	if err != nil {
		return nil, db.TranslateError("projects.collect", projectNotFoundMsg, err)
	}
	return items, nil
}

// GetByID returns a fully populated project.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (domain.Project, error) {
	rows, err := r.db.Query(ctx, selectFrom+" WHERE t.id = $1", id)
	if err != nil {
		return domain.Project{}, db.TranslateError("projects.get", projectNotFoundMsg, err)
	}
	p, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[domain.Project])
	if err != nil {
		return domain.Project{}, db.TranslateError("projects.get", projectNotFoundMsg, err)
	}
	return p, nil
}

// Create inserts a project.
func (r *Repo) Create(ctx context.Context, f domain.Fields) (domain.Project, error) {
	var id uuid.UUID
	err := r.db.QueryRow(ctx, `
		INSERT INTO projects (title, short_description, full_description, featured, category, tags, thumbnail, images,
			videos, live_link, case_study_link, start_date, completion_date, estimated_completion_date, client_id,
			team_members, team_member_ids, service_ids, location, testimonials, budget, status, priority, technologies,
			challenges, results)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22,
			$23, $24, $25, $26)
		RETURNING id`,
		f.Title, f.ShortDescription, f.FullDescription, f.Featured, f.Category, f.Tags, f.Thumbnail, f.Images,
		f.Videos, f.LiveLink, f.CaseStudyLink, f.StartDate, f.CompletionDate, f.EstimatedCompletionDate, f.ClientID,
		f.TeamMembers, f.TeamMemberIDs, f.ServiceIDs, f.Location, f.Testimonials, f.Budget, f.Status, f.Priority,
		f.Technologies, f.Challenges, f.Results,
	).Scan(&id)
	if err != nil {
		return domain.Project{}, db.TranslateError("projects.create", projectNotFoundMsg, err)
	}
	return r.GetByID(ctx, id)
}

// Update overwrites every writable column of a project.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, f domain.Fields) (domain.Project, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE projects SET title = $2, short_description = $3, full_description = $4, featured = $5, category = $6,
			tags = $7, thumbnail = $8, images = $9, videos = $10, live_link = $11, case_study_link = $12,
			start_date = $13, completion_date = $14, estimated_completion_date = $15, client_id = $16,
			team_members = $17, team_member_ids = $18, service_ids = $19, location = $20, testimonials = $21,
			budget = $22, status = $23, priority = $24, technologies = $25, challenges = $26, results = $27,
			updated_at = now()
		WHERE id = $1`,
		id, f.Title, f.ShortDescription, f.FullDescription, f.Featured, f.Category, f.Tags, f.Thumbnail, f.Images,
		f.Videos, f.LiveLink, f.CaseStudyLink, f.StartDate, f.CompletionDate, f.EstimatedCompletionDate, f.ClientID,
		f.TeamMembers, f.TeamMemberIDs, f.ServiceIDs, f.Location, f.Testimonials, f.Budget, f.Status, f.Priority,
		f.Technologies, f.Challenges, f.Results,
	)
	if err != nil {
		return domain.Project{}, db.TranslateError("projects.update", projectNotFoundMsg, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.Project{}, db.TranslateError("projects.update", projectNotFoundMsg, pgx.ErrNoRows)
	}
	return r.GetByID(ctx, id)
}

// Delete removes a project.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return db.TranslateError("projects.delete", projectNotFoundMsg, err)
	}
	if tag.RowsAffected() == 0 {
		return db.TranslateError("projects.delete", projectNotFoundMsg, pgx.ErrNoRows)
	}
	return nil
}

// Aggregate runs grouped counts over projects.
func (r *Repo) Aggregate(ctx context.Context, specs ...analytics.Spec) (map[string][]analytics.Bucket, error) {
	out, err := r.runner.Run(ctx, table, specs...)
	if err != nil {
		return nil, fmt.Errorf("projects analytics: %w", err)
	}
	return out, nil
}

// Totals computes whole-table aggregates over projects.
func (r *Repo) Totals(ctx context.Context, measures ...analytics.Measure) (map[string]float64, error) {
	out, err := r.runner.Totals(ctx, table, "", measures...)
	if err != nil {
		return nil, fmt.Errorf("projects totals: %w", err)
	}
	return out, nil
}

// TeamPerformance counts each member's total and completed projects.
func (r *Repo) TeamPerformance(ctx context.Context, limit int) ([]domain.TeamPerformance, error) {
	rows, err := r.db.Query(ctx, teamPerformanceQuery, limit)
	if err != nil {
		return nil, fmt.Errorf("projects team performance: %w", err)
	}
	items, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.TeamPerformance])
	if err != nil {
		return nil, fmt.Errorf("projects team performance: %w", err)
	}
	return items, nil
}
