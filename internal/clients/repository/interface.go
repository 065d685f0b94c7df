package repository

import (
	"context"

	"portfolio_backend/internal/analytics"
	"portfolio_backend/internal/clients/domain"
	"portfolio_backend/internal/query"

	"github.com/google/uuid"
)

// ClientReader provides read operations for clients.
type ClientReader interface {
	List(ctx context.Context, plan query.Plan) ([]domain.Client, int, error)
	Collect(ctx context.Context, plan query.Plan) ([]domain.Client, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Client, error)
}

// ClientWriter provides write operations for clients.
type ClientWriter interface {
	Create(ctx context.Context, f domain.Fields) (domain.Client, error)
	Update(ctx context.Context, id uuid.UUID, f domain.Fields) (domain.Client, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ClientAnalytics runs the client reporting queries.
type ClientAnalytics interface {
	Aggregate(ctx context.Context, specs ...analytics.Spec) (map[string][]analytics.Bucket, error)
	Totals(ctx context.Context, measures ...analytics.Measure) (map[string]float64, error)
	Retention(ctx context.Context) (map[string]float64, error)
	Top(ctx context.Context, limit int) ([]domain.TopClient, error)
	Satisfaction(ctx context.Context) ([]domain.Satisfaction, error)
}

// Repository combines all client storage operations.
type Repository interface {
	ClientReader
	ClientWriter
	ClientAnalytics
}
