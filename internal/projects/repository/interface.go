package repository

import (
	"context"

	"portfolio_backend/internal/analytics"
	"portfolio_backend/internal/projects/domain"
	"portfolio_backend/internal/query"

	"github.com/google/uuid"
)

// ProjectReader provides read operations for projects.
type ProjectReader interface {
	List(ctx context.Context, plan query.Plan) ([]domain.Project, int, error)
	Collect(ctx context.Context, plan query.Plan) ([]domain.Project, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Project, error)
}

// ProjectWriter provides write operations for projects.
type ProjectWriter interface {
	Create(ctx context.Context, f domain.Fields) (domain.Project, error)
	Update(ctx context.Context, id uuid.UUID, f domain.Fields) (domain.Project, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProjectAnalytics runs grouped counts over projects.
type ProjectAnalytics interface {
	Aggregate(ctx context.Context, specs ...analytics.Spec) (map[string][]analytics.Bucket, error)
	Totals(ctx context.Context, measures ...analytics.Measure) (map[string]float64, error)
	TeamPerformance(ctx context.Context, limit int) ([]domain.TeamPerformance, error)
}

// Repository combines all project storage operations.
type Repository interface {
	ProjectReader
	ProjectWriter
	ProjectAnalytics
}
