package repository

import (
	"context"

	"portfolio_backend/internal/analytics"
	"portfolio_backend/internal/query"
	"portfolio_backend/internal/teammembers/domain"

	"github.com/google/uuid"
)

// MemberReader provides read operations for team members.
type MemberReader interface {
	List(ctx context.Context, plan query.Plan) ([]domain.TeamMember, int, error)
	Collect(ctx context.Context, plan query.Plan) ([]domain.TeamMember, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.TeamMember, error)
	WithProjectCount(ctx context.Context) ([]domain.WithProjectCount, error)
	SkillsSummary(ctx context.Context) ([]domain.SkillSummary, error)
}

// MemberWriter provides write operations for team members.
type MemberWriter interface {
	Create(ctx context.Context, f domain.Fields) (domain.TeamMember, error)
	Update(ctx context.Context, id uuid.UUID, f domain.Fields) (domain.TeamMember, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// MemberAnalytics runs the grouped team member counts.
type MemberAnalytics interface {
	Aggregate(ctx context.Context, specs ...analytics.Spec) (map[string][]analytics.Bucket, error)
	Totals(ctx context.Context, measures ...analytics.Measure) (map[string]float64, error)
}

// Repository combines all team member storage operations.
type Repository interface {
	MemberReader
	MemberWriter
	MemberAnalytics
}
