package repository

import (
	"context"

	"portfolio_backend/internal/analytics"
	"portfolio_backend/internal/query"
	"portfolio_backend/internal/testimonials/domain"

	"github.com/google/uuid"
)

// TestimonialReader provides read operations for testimonials.
type TestimonialReader interface {
	List(ctx context.Context, plan query.Plan) ([]domain.Testimonial, int, error)
	Collect(ctx context.Context, plan query.Plan) ([]domain.Testimonial, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Testimonial, error)
}

// TestimonialWriter provides write operations for testimonials.
type TestimonialWriter interface {
	Create(ctx context.Context, f domain.Fields) (domain.Testimonial, error)
	Update(ctx context.Context, id uuid.UUID, f domain.Fields) (domain.Testimonial, error)
	SetApproved(ctx context.Context, id uuid.UUID, approved bool) (domain.Testimonial, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// TestimonialAnalytics runs the testimonial reporting queries.
type TestimonialAnalytics interface {
	Aggregate(ctx context.Context, specs ...analytics.Spec) (map[string][]analytics.Bucket, error)
	Totals(ctx context.Context, where string, measures ...analytics.Measure) (map[string]float64, error)
}

// Repository combines all testimonial storage operations.
type Repository interface {
	TestimonialReader
	TestimonialWriter
	TestimonialAnalytics
}
