package repository

import (
	"context"

	"portfolio_backend/internal/analytics"
	"portfolio_backend/internal/query"
	"portfolio_backend/internal/teams/domain"

	"github.com/google/uuid"
)

// TeamReader provides read operations for teams.
type TeamReader interface {
	List(ctx context.Context, plan query.Plan) ([]domain.Team, int, error)
	Collect(ctx context.Context, plan query.Plan) ([]domain.Team, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Team, error)
}

// TeamWriter provides write operations for teams.
type TeamWriter interface {
	Create(ctx context.Context, f domain.Fields) (domain.Team, error)
	Update(ctx context.Context, id uuid.UUID, f domain.Fields) (domain.Team, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// TeamAnalytics runs the team reporting queries.
type TeamAnalytics interface {
	Aggregate(ctx context.Context, specs ...analytics.Spec) (map[string][]analytics.Bucket, error)
	Totals(ctx context.Context, measures ...analytics.Measure) (map[string]float64, error)
	Performance(ctx context.Context) ([]domain.Performance, error)
	Workload(ctx context.Context, activeStatuses []string) ([]domain.Workload, error)
}

// Repository combines all team storage operations.
type Repository interface {
	TeamReader
	TeamWriter
	TeamAnalytics
}
