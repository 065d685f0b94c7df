package repository

import (
	"context"
	"fmt"

	"portfolio_backend/internal/analytics"
	"portfolio_backend/internal/query"
	"portfolio_backend/internal/shared/refs"
	"portfolio_backend/internal/teammembers/domain"
	"portfolio_backend/platform/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	table             = "team_members"
	memberNotFoundMsg = "Team member not found"

	baseColumns = `t.id, t.first_name, t.last_name, t.position, t.email, t.phone, t.bio, t.profile_image, t.social_links,
		t.skills, t.featured, t.education, t.experience, t.awards, t.current_team_id, t.related_project_ids,
		t.created_at, t.updated_at`

	countFrom = "SELECT COUNT(*) FROM team_members t"

	skillsSummaryQuery = `
		SELECT u.skill,
			jsonb_agg(jsonb_build_object('id', t.id, 'name', t.first_name || ' ' || t.last_name,
				'position', t.position, 'profileImage', t.profile_image) ORDER BY t.last_name, t.first_name) AS members,
			COUNT(*)::int AS count
		FROM team_members t
		CROSS JOIN LATERAL unnest(t.skills) AS u(skill)
		GROUP BY u.skill
		ORDER BY count DESC, u.skill`
)

var (
	selectFrom = "SELECT " + baseColumns + ", " +
		refs.TeamOne("t.current_team_id") + " AS current_team, " +
		refs.ProjectsAny("t.related_project_ids", false) + " AS related_projects FROM team_members t"

	detailSelect = "SELECT " + baseColumns + ", " +
		refs.TeamOne("t.current_team_id") + " AS current_team, " +
		refs.ProjectsAny("t.related_project_ids", true) + " AS related_projects FROM team_members t"

	withProjectCountQuery = "SELECT " + baseColumns + ", " +
		refs.TeamOne("t.current_team_id") + " AS current_team, " +
		refs.ProjectsAny("t.related_project_ids", false) + " AS related_projects, " +
		"(SELECT COUNT(*)::int FROM projects p WHERE t.id = ANY(p.team_member_ids)) AS project_count " +
		"FROM team_members t ORDER BY project_count DESC, t.created_at DESC, t.id ASC"
)

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	db     db.Querier
	runner *analytics.Runner
}

// New creates a new team members repository.
func New(q db.Querier) *Repo {
	return &Repo{db: q, runner: analytics.NewRunner(q)}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// List returns one page of team members and the total matching count.
func (r *Repo) List(ctx context.Context, plan query.Plan) ([]domain.TeamMember, int, error) {
	items, total, err := query.Fetch(ctx, r.db, plan, selectFrom, countFrom, pgx.RowToStructByName[domain.TeamMember])
	if err != nil {
		return nil, 0, db.TranslateError("team_members.list", memberNotFoundMsg, err)
	}
	return items, total, nil
}

// Collect returns the team members of a plan without counting.
func (r *Repo) Collect(ctx context.Context, plan query.Plan) ([]domain.TeamMember, error) {
	items, err := query.Collect(ctx, r.db, plan, selectFrom, pgx.RowToStructByName[domain.TeamMember])
	if err != nil {
		return nil, db.TranslateError("team_members.collect", memberNotFoundMsg, err)
	}
	return items, nil
}

// GetByID returns a team member with its team and projects, each project
// carrying its client.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (domain.TeamMember, error) {
	rows, err := r.db.Query(ctx, detailSelect+" WHERE t.id = $1", id)
	if err != nil {
		return domain.TeamMember{}, db.TranslateError("team_members.get", memberNotFoundMsg, err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[domain.TeamMember])
	if err != nil {
		return domain.TeamMember{}, db.TranslateError("team_members.get", memberNotFoundMsg, err)
	}
	return m, nil
}

// WithProjectCount lists every member with the number of projects it is
// assigned to.
func (r *Repo) WithProjectCount(ctx context.Context) ([]domain.WithProjectCount, error) {
	rows, err := r.db.Query(ctx, withProjectCountQuery)
	if err != nil {
		return nil, fmt.Errorf("team members project count: %w", err)
	}
	items, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.WithProjectCount])
	if err != nil {
		return nil, fmt.Errorf("team members project count: %w", err)
	}
	return items, nil
}

// SkillsSummary groups members by skill, most common first.
func (r *Repo) SkillsSummary(ctx context.Context) ([]domain.SkillSummary, error) {
	rows, err := r.db.Query(ctx, skillsSummaryQuery)
	if err != nil {
		return nil, fmt.Errorf("team members skills summary: %w", err)
	}
	items, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.SkillSummary])
	if err != nil {
		return nil, fmt.Errorf("team members skills summary: %w", err)
	}
	return items, nil
}

// Create inserts a team member.
func (r *Repo) Create(ctx context.Context, f domain.Fields) (domain.TeamMember, error) {
	var id uuid.UUID
	err := r.db.QueryRow(ctx, `
		INSERT INTO team_members (first_name, last_name, position, email, phone, bio, profile_image, social_links,
			skills, featured, education, experience, awards, current_team_id, related_project_ids)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id`,
		f.FirstName, f.LastName, f.Position, f.Email, f.Phone, f.Bio, f.ProfileImage, f.SocialLinks,
		f.Skills, f.Featured, f.Education, f.Experience, f.Awards, f.CurrentTeamID, f.RelatedProjectIDs,
	).Scan(&id)
	if err != nil {
		return domain.TeamMember{}, db.TranslateError("team_members.create", memberNotFoundMsg, err)
	}
	return r.GetByID(ctx, id)
}

// Update overwrites every writable column of a team member.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, f domain.Fields) (domain.TeamMember, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE team_members SET first_name = $2, last_name = $3, position = $4, email = $5, phone = $6, bio = $7,
			profile_image = $8, social_links = $9, skills = $10, featured = $11, education = $12, experience = $13,
			awards = $14, current_team_id = $15, related_project_ids = $16, updated_at = now()
		WHERE id = $1`,
		id, f.FirstName, f.LastName, f.Position, f.Email, f.Phone, f.Bio, f.ProfileImage, f.SocialLinks,
		f.Skills, f.Featured, f.Education, f.Experience, f.Awards, f.CurrentTeamID, f.RelatedProjectIDs,
	)
	if err != nil {
		return domain.TeamMember{}, db.TranslateError("team_members.update", memberNotFoundMsg, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.TeamMember{}, db.TranslateError("team_members.update", memberNotFoundMsg, pgx.ErrNoRows)
	}
	return r.GetByID(ctx, id)
}

// Delete removes a team member.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM team_members WHERE id = $1`, id)
	if err != nil {
		return db.TranslateError("team_members.delete", memberNotFoundMsg, err)
	}
	if tag.RowsAffected() == 0 {
		return db.TranslateError("team_members.delete", memberNotFoundMsg, pgx.ErrNoRows)
	}
	return nil
}

// Aggregate runs grouped counts over team members.
func (r *Repo) Aggregate(ctx context.Context, specs ...analytics.Spec) (map[string][]analytics.Bucket, error) {
	out, err := r.runner.Run(ctx, table, specs...)
	if err != nil {
		return nil, fmt.Errorf("team members analytics: %w", err)
	}
	return out, nil
}

// Totals computes whole-table aggregates over team members.
func (r *Repo) Totals(ctx context.Context, measures ...analytics.Measure) (map[string]float64, error) {
	out, err := r.runner.Totals(ctx, table, "", measures...)
	if err != nil {
		return nil, fmt.Errorf("team members totals: %w", err)
	}
	return out, nil
}
