package repository

import (
	"context"

	"portfolio_backend/internal/analytics"
	"portfolio_backend/internal/query"
	"portfolio_backend/internal/services/domain"

	"github.com/google/uuid"
)

// ServiceReader provides read operations for services.
type ServiceReader interface {
	List(ctx context.Context, plan query.Plan) ([]domain.Service, int, error)
	Collect(ctx context.Context, plan query.Plan) ([]domain.Service, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Service, error)
	WithProjectCount(ctx context.Context, limit int) ([]domain.WithProjectCount, error)
}

// ServiceWriter provides write operations for services.
type ServiceWriter interface {
	Create(ctx context.Context, f domain.Fields) (domain.Service, error)
	Update(ctx context.Context, id uuid.UUID, f domain.Fields) (domain.Service, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ServiceAnalytics runs grouped counts over the services table.
type ServiceAnalytics interface {
	Aggregate(ctx context.Context, specs ...analytics.Spec) (map[string][]analytics.Bucket, error)
	Totals(ctx context.Context, measures ...analytics.Measure) (map[string]float64, error)
}

// Repository combines all service storage operations.
type Repository interface {
	ServiceReader
	ServiceWriter
	ServiceAnalytics
}
