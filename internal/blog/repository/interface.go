package repository

import (
	"context"

	"portfolio_backend/internal/analytics"
	"portfolio_backend/internal/blog/domain"
	"portfolio_backend/internal/query"

	"github.com/google/uuid"
)

// PostReader provides read operations for blog posts.
type PostReader interface {
	List(ctx context.Context, plan query.Plan) ([]domain.Post, int, error)
	Collect(ctx context.Context, plan query.Plan) ([]domain.Post, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Post, error)
	GetBySlug(ctx context.Context, slug string) (domain.Post, error)
}

// PostWriter provides write operations for blog posts.
type PostWriter interface {
	Create(ctx context.Context, f domain.Fields) (domain.Post, error)
	Update(ctx context.Context, id uuid.UUID, f domain.Fields) (domain.Post, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Engagement records reader interactions.
type Engagement interface {
	IncrementViews(ctx context.Context, id uuid.UUID) error
	Like(ctx context.Context, id uuid.UUID) (int, error)
	AddComment(ctx context.Context, id uuid.UUID, c domain.Comment) error
}

// PostAnalytics runs the blog reporting queries.
type PostAnalytics interface {
	Aggregate(ctx context.Context, specs ...analytics.Spec) (map[string][]analytics.Bucket, error)
	Totals(ctx context.Context, where string, measures ...analytics.Measure) (map[string]float64, error)
	AuthorProductivity(ctx context.Context) ([]domain.AuthorStats, error)
}

// Repository combines all blog storage operations.
type Repository interface {
	PostReader
	PostWriter
	Engagement
	PostAnalytics
}
