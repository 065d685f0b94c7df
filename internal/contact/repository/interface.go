package repository

import (
	"context"

	"portfolio_backend/internal/analytics"
	"portfolio_backend/internal/contact/domain"
	"portfolio_backend/internal/query"

	"github.com/google/uuid"
)

// SubmissionReader provides read operations for contact submissions.
type SubmissionReader interface {
	List(ctx context.Context, plan query.Plan) ([]domain.Submission, int, error)
	Collect(ctx context.Context, plan query.Plan) ([]domain.Submission, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Submission, error)
}

// SubmissionWriter provides write operations for contact submissions.
type SubmissionWriter interface {
	Create(ctx context.Context, f domain.Fields, meta domain.Meta) (domain.Submission, error)
	Update(ctx context.Context, id uuid.UUID, f domain.Fields) (domain.Submission, error)
	SetStatus(ctx context.Context, id uuid.UUID, status string) (domain.Submission, error)
	Assign(ctx context.Context, id, memberID uuid.UUID) (domain.Submission, error)
	AddNote(ctx context.Context, id uuid.UUID, note domain.Note) (domain.Submission, error)
	BulkUpdate(ctx context.Context, ids []uuid.UUID, changes []domain.Change) (domain.BulkResult, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// SubmissionAnalytics runs the contact reporting queries.
type SubmissionAnalytics interface {
	Aggregate(ctx context.Context, specs ...analytics.Spec) (map[string][]analytics.Bucket, error)
	Totals(ctx context.Context, where string, measures ...analytics.Measure) (map[string]float64, error)
}

// Repository combines all contact storage operations.
type Repository interface {
	SubmissionReader
	SubmissionWriter
	SubmissionAnalytics
}
