// Package repository stores assistant feedback and reads the company
// context given to the model.
package repository

import (
	"context"
	"fmt"

	"portfolio_backend/internal/ai/domain"
	"portfolio_backend/internal/analytics"
	"portfolio_backend/platform/db"

	"github.com/jackc/pgx/v5"
)

const (
	feedbackTable  = "ai_feedback"
	contextLimit   = 100
	msgNoFeedback  = "Feedback not found"
	servicesSelect = "SELECT name AS title, description AS detail FROM services ORDER BY featured DESC, name LIMIT $1"
	projectsSelect = "SELECT title, category AS detail FROM projects ORDER BY featured DESC, created_at DESC LIMIT $1"
)

// Repository combines the AI storage operations.
type Repository interface {
	SaveFeedback(ctx context.Context, f domain.Feedback) (domain.Feedback, error)
	Aggregate(ctx context.Context, specs ...analytics.Spec) (map[string][]analytics.Bucket, error)
	Totals(ctx context.Context, measures ...analytics.Measure) (map[string]float64, error)
	Services(ctx context.Context) ([]domain.Entry, error)
	Projects(ctx context.Context) ([]domain.Entry, error)
}

// Repo implements Repository with PostgreSQL.
type Repo struct {
	db     db.Querier
	runner *analytics.Runner
}

// New creates a new AI repository.
func New(q db.Querier) *Repo {
	return &Repo{db: q, runner: analytics.NewRunner(q)}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// SaveFeedback inserts a feedback row.
func (r *Repo) SaveFeedback(ctx context.Context, f domain.Feedback) (domain.Feedback, error) {
	rows, err := r.db.Query(ctx, `
		INSERT INTO ai_feedback (conversation_id, response_id, rating, feedback, user_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, conversation_id, response_id, rating, feedback, user_id, created_at`,
		f.ConversationID, f.ResponseID, f.Rating, f.Feedback, f.UserID)
	if err != nil {
		return domain.Feedback{}, db.TranslateError("ai.feedback.create", msgNoFeedback, err)
	}
	saved, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[domain.Feedback])
	if err != nil {
		return domain.Feedback{}, db.TranslateError("ai.feedback.create", msgNoFeedback, err)
	}
	return saved, nil
}

// Aggregate runs the feedback distributions.
func (r *Repo) Aggregate(ctx context.Context, specs ...analytics.Spec) (map[string][]analytics.Bucket, error) {
	out, err := r.runner.Run(ctx, feedbackTable, specs...)
	if err != nil {
		return nil, fmt.Errorf("ai feedback analytics: %w", err)
	}
	return out, nil
}

// Totals computes whole-table feedback aggregates.
func (r *Repo) Totals(ctx context.Context, measures ...analytics.Measure) (map[string]float64, error) {
	out, err := r.runner.Totals(ctx, feedbackTable, "", measures...)
	if err != nil {
		return nil, fmt.Errorf("ai feedback analytics: %w", err)
	}
	return out, nil
}

// Services lists service names with their descriptions.
func (r *Repo) Services(ctx context.Context) ([]domain.Entry, error) {
	return r.entries(ctx, "ai.context.services", servicesSelect)
}

// Projects lists project titles with their categories.
func (r *Repo) Projects(ctx context.Context) ([]domain.Entry, error) {
	return r.entries(ctx, "ai.context.projects", projectsSelect)
}

func (r *Repo) entries(ctx context.Context, op, sql string) ([]domain.Entry, error) {
	rows, err := r.db.Query(ctx, sql, contextLimit)
	if err != nil {
		return nil, db.TranslateError(op, "", err)
	}
	items, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Entry])
	if err != nil {
		return nil, db.TranslateError(op, "", err)
	}
	return items, nil
}
