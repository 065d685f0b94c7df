package repository

import (
	"context"
	"fmt"

	"portfolio_backend/internal/analytics"
	"portfolio_backend/internal/query"
	"portfolio_backend/internal/shared/refs"
	"portfolio_backend/internal/teams/domain"
	"portfolio_backend/platform/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	table           = "teams"
	teamNotFoundMsg = "Team not found"

	baseColumns = `t.id, t.team_name, t.description, t.member_ids, t.related_project_ids, t.tags, t.team_lead_id,
		t.specialties, t.is_active, t.created_at, t.updated_at`

	countFrom = "SELECT COUNT(*) FROM teams t"

	performanceQuery = `
		SELECT t.id, t.team_name, cardinality(t.member_ids) AS member_count,
			cardinality(t.related_project_ids) AS project_count, t.is_active
		FROM teams t`

	// a project counts toward a team when any of its assignees is a member
	workloadQuery = `
		SELECT t.id, t.team_name, cardinality(t.member_ids) AS member_count,
			(SELECT COUNT(*)::int FROM projects p WHERE p.team_member_ids && t.member_ids AND p.status = ANY($1)) AS active_project_count,
			t.is_active
		FROM teams t`
)

func selectWith(projectsWithClient bool) string {
	return "SELECT " + baseColumns + ", " +
		refs.MembersAny("t.member_ids") + " AS members, " +
		refs.MemberOne("t.team_lead_id") + " AS team_lead, " +
		refs.ProjectsAny("t.related_project_ids", projectsWithClient) + " AS related_projects FROM teams t"
}

var (
	selectFrom   = selectWith(false)
	detailSelect = selectWith(true)
)

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	db     db.Querier
	runner *analytics.Runner
}

// New creates a new teams repository.
func New(q db.Querier) *Repo {
	return &Repo{db: q, runner: analytics.NewRunner(q)}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// List returns one page of teams and the total matching count.
func (r *Repo) List(ctx context.Context, plan query.Plan) ([]domain.Team, int, error) {
	items, total, err := query.Fetch(ctx, r.db, plan, selectFrom, countFrom, pgx.RowToStructByName[domain.Team])
	if err != nil {
		return nil, 0, db.TranslateError("teams.list", teamNotFoundMsg, err)
	}
	return items, total, nil
}

// Collect returns the teams of a plan without counting.
func (r *Repo) Collect(ctx context.Context, plan query.Plan) ([]domain.Team, error) {
	items, err := query.Collect(ctx, r.db, plan, selectFrom, pgx.RowToStructByName[domain.Team])
	if err != nil {
		return nil, db.TranslateError("teams.collect", teamNotFoundMsg, err)
	}
	return items, nil
}

// GetByID returns a team with its projects' clients populated.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (domain.Team, error) {
	rows, err := r.db.Query(ctx, detailSelect+" WHERE t.id = $1", id)
	if err != nil {
		return domain.Team{}, db.TranslateError("teams.get", teamNotFoundMsg, err)
	}
	team, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[domain.Team])
	if err != nil {
		return domain.Team{}, db.TranslateError("teams.get", teamNotFoundMsg, err)
	}
	return team, nil
}

// Create inserts a team.
func (r *Repo) Create(ctx context.Context, f domain.Fields) (domain.Team, error) {
	var id uuid.UUID
	err := r.db.QueryRow(ctx, `
		INSERT INTO teams (team_name, description, member_ids, related_project_ids, tags, team_lead_id, specialties, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`,
		f.TeamName, f.Description, f.MemberIDs, f.RelatedProjectIDs, f.Tags, f.TeamLeadID, f.Specialties, f.IsActive,
	).Scan(&id)
	if err != nil {
		return domain.Team{}, db.TranslateError("teams.create", teamNotFoundMsg, err)
	}
	return r.GetByID(ctx, id)
}

// Update overwrites every writable column of a team.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, f domain.Fields) (domain.Team, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE teams SET team_name = $2, description = $3, member_ids = $4, related_project_ids = $5, tags = $6,
			team_lead_id = $7, specialties = $8, is_active = $9, updated_at = now()
		WHERE id = $1`,
		id, f.TeamName, f.Description, f.MemberIDs, f.RelatedProjectIDs, f.Tags, f.TeamLeadID, f.Specialties, f.IsActive,
	)
	if err != nil {
		return domain.Team{}, db.TranslateError("teams.update", teamNotFoundMsg, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.Team{}, db.TranslateError("teams.update", teamNotFoundMsg, pgx.ErrNoRows)
	}
	return r.GetByID(ctx, id)
}

// Delete removes a team.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM teams WHERE id = $1`, id)
	if err != nil {
		return db.TranslateError("teams.delete", teamNotFoundMsg, err)
	}
	if tag.RowsAffected() == 0 {
		return db.TranslateError("teams.delete", teamNotFoundMsg, pgx.ErrNoRows)
	}
	return nil
}

// Aggregate runs grouped counts over teams.
func (r *Repo) Aggregate(ctx context.Context, specs ...analytics.Spec) (map[string][]analytics.Bucket, error) {
	out, err := r.runner.Run(ctx, table, specs...)
	if err != nil {
		return nil, fmt.Errorf("teams analytics: %w", err)
	}
	return out, nil
}

// Totals computes whole-table aggregates over teams.
func (r *Repo) Totals(ctx context.Context, measures ...analytics.Measure) (map[string]float64, error) {
	out, err := r.runner.Totals(ctx, table, "", measures...)
	if err != nil {
		return nil, fmt.Errorf("teams totals: %w", err)
	}
	return out, nil
}

// Performance returns the member and project counts of every team.
func (r *Repo) Performance(ctx context.Context) ([]domain.Performance, error) {
	rows, err := r.db.Query(ctx, performanceQuery)
	if err != nil {
		return nil, fmt.Errorf("teams performance: %w", err)
	}
	items, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Performance])
	if err != nil {
		return nil, fmt.Errorf("teams performance: %w", err)
	}
	return items, nil
}

// Workload counts each team's projects in one of activeStatuses.
func (r *Repo) Workload(ctx context.Context, activeStatuses []string) ([]domain.Workload, error) {
	rows, err := r.db.Query(ctx, workloadQuery, activeStatuses)
	if err != nil {
		return nil, fmt.Errorf("teams workload: %w", err)
	}
	items, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Workload])
	if err != nil {
		return nil, fmt.Errorf("teams workload: %w", err)
	}
	return items, nil
}
