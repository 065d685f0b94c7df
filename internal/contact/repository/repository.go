package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"portfolio_backend/internal/analytics"
	"portfolio_backend/internal/contact/domain"
	"portfolio_backend/internal/query"
	"portfolio_backend/internal/shared/refs"
	"portfolio_backend/platform/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	table                 = "contact_submissions"
	submissionNotFoundMsg = "Contact submission not found"

	baseColumns = `t.id, t.name, t.email, t.phone, t.company, t.subject, t.message, t.inquiry_type,
		t.interested_services, t.budget, t.timeline, t.status, t.priority, t.source, t.assigned_to,
		t.follow_up_date, t.response_date, t.conversion_date, t.tags, t.is_subscribed_to_newsletter,
		t.ip_address, t.user_agent, t.referrer, t.submitted_at, t.notes, t.created_at, t.updated_at`

	countFrom = "SELECT COUNT(*) FROM contact_submissions t"
)

var selectFrom = "SELECT " + baseColumns + ", " + refs.MemberOne("t.assigned_to") + " AS assigned FROM contact_submissions t"

// bulkCasts types each bulk-updatable column's parameter.
var bulkCasts = map[string]string{
	"status":         "text",
	"priority":       "text",
	"assigned_to":    "uuid",
	"follow_up_date": "timestamptz",
	"tags":           "text[]",
}

// stampDates keeps responseDate and conversionDate in step with a status
// written from the given parameter.
func stampDates(param string) string {
	return "response_date = CASE WHEN " + param + " = 'Responded' THEN COALESCE(response_date, now()) ELSE response_date END, " +
		"conversion_date = CASE WHEN " + param + " = 'Converted' THEN COALESCE(conversion_date, now()) ELSE conversion_date END"
}

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	db     db.Querier
	runner *analytics.Runner
}

// New creates a new contact repository.
func New(q db.Querier) *Repo {
	return &Repo{db: q, runner: analytics.NewRunner(q)}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// List returns one page of submissions and the total matching count.
func (r *Repo) List(ctx context.Context, plan query.Plan) ([]domain.Submission, int, error) {
	items, total, err := query.Fetch(ctx, r.db, plan, selectFrom, countFrom, pgx.RowToStructByName[domain.Submission])
	if err != nil {
		return nil, 0, db.TranslateError("contact.list", submissionNotFoundMsg, err)
	}
	return items, total, nil
}

// Collect returns the submissions of a plan without counting.
func (r *Repo) Collect(ctx context.Context, plan query.Plan) ([]domain.Submission, error) {
	items, err := query.Collect(ctx, r.db, plan, selectFrom, pgx.RowToStructByName[domain.Submission])
	if err != nil {
		return nil, db.TranslateError("contact.collect", submissionNotFoundMsg, err)
	}
	return items, nil
}

// GetByID returns a submission with its assignee.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (domain.Submission, error) {
	rows, err := r.db.Query(ctx, selectFrom+" WHERE t.id = $1", id)
	if err != nil {
		return domain.Submission{}, db.TranslateError("contact.get", submissionNotFoundMsg, err)
	}
	s, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[domain.Submission])
	if err != nil {
		return domain.Submission{}, db.TranslateError("contact.get", submissionNotFoundMsg, err)
	}
	return s, nil
}

// Create inserts a submission with its request metadata.
func (r *Repo) Create(ctx context.Context, f domain.Fields, meta domain.Meta) (domain.Submission, error) {
	var id uuid.UUID
	err := r.db.QueryRow(ctx, `
		INSERT INTO contact_submissions (name, email, phone, company, subject, message, inquiry_type, interested_services,
			budget, timeline, status, priority, source, tags, is_subscribed_to_newsletter, ip_address, user_agent,
			referrer, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		RETURNING id`,
		f.Name, f.Email, f.Phone, f.Company, f.Subject, f.Message, f.InquiryType, f.InterestedServices,
		f.Budget, f.Timeline, f.Status, f.Priority, f.Source, f.Tags, f.IsSubscribedToNewsletter, meta.IPAddress, meta.UserAgent,
		meta.Referrer, meta.SubmittedAt,
	).Scan(&id)
	if err != nil {
		return domain.Submission{}, db.TranslateError("contact.create", submissionNotFoundMsg, err)
	}
	return r.GetByID(ctx, id)
}

// Update overwrites every writable column of a submission.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, f domain.Fields) (domain.Submission, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE contact_submissions SET name = $2, email = $3, phone = $4, company = $5, subject = $6, message = $7,
			inquiry_type = $8, interested_services = $9, budget = $10, timeline = $11, status = $12, priority = $13,
			source = $14, assigned_to = $15, follow_up_date = $16, response_date = $17, conversion_date = $18,
			tags = $19, is_subscribed_to_newsletter = $20, updated_at = now()
		WHERE id = $1`,
		id, f.Name, f.Email, f.Phone, f.Company, f.Subject, f.Message,
		f.InquiryType, f.InterestedServices, f.Budget, f.Timeline, f.Status, f.Priority,
		f.Source, f.AssignedToID, f.FollowUpDate, f.ResponseDate, f.ConversionDate,
		f.Tags, f.IsSubscribedToNewsletter,
	)
	if err != nil {
		return domain.Submission{}, db.TranslateError("contact.update", submissionNotFoundMsg, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.Submission{}, db.TranslateError("contact.update", submissionNotFoundMsg, pgx.ErrNoRows)
	}
	return r.GetByID(ctx, id)
}

// SetStatus changes the status and stamps the response or conversion date.
func (r *Repo) SetStatus(ctx context.Context, id uuid.UUID, status string) (domain.Submission, error) {
	return r.patch(ctx, "contact.status", id, "status = $2::text, "+stampDates("$2::text"), status)
}

// Assign sets the team member handling a submission.
func (r *Repo) Assign(ctx context.Context, id, memberID uuid.UUID) (domain.Submission, error) {
	return r.patch(ctx, "contact.assign", id, "assigned_to = $2", memberID)
}

// AddNote appends a note.
func (r *Repo) AddNote(ctx context.Context, id uuid.UUID, note domain.Note) (domain.Submission, error) {
	return r.patch(ctx, "contact.note", id, "notes = notes || jsonb_build_array($2::jsonb)", note)
}

func (r *Repo) patch(ctx context.Context, op string, id uuid.UUID, set string, arg any) (domain.Submission, error) {
	tag, err := r.db.Exec(ctx, "UPDATE contact_submissions SET "+set+", updated_at = now() WHERE id = $1", id, arg)
	if err != nil {
		return domain.Submission{}, db.TranslateError(op, submissionNotFoundMsg, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.Submission{}, db.TranslateError(op, submissionNotFoundMsg, pgx.ErrNoRows)
	}
	return r.GetByID(ctx, id)
}

// BulkUpdate applies the same changes to every listed submission. Rows whose
// values already match count as matched but not modified.
func (r *Repo) BulkUpdate(ctx context.Context, ids []uuid.UUID, changes []domain.Change) (domain.BulkResult, error) {
	sql, args := bulkSQL(ids, changes)
	var res domain.BulkResult
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&res.MatchedCount, &res.ModifiedCount); err != nil {
		return domain.BulkResult{}, db.TranslateError("contact.bulk", submissionNotFoundMsg, err)
	}
	return res, nil
}

func bulkSQL(ids []uuid.UUID, changes []domain.Change) (string, []any) {
	args := []any{ids}
	sets := make([]string, 0, len(changes)+2)
	diffs := make([]string, 0, len(changes))
	for _, ch := range changes {
		args = append(args, ch.Value)
		param := "$" + strconv.Itoa(len(args)) + "::" + bulkCasts[ch.Column]
		sets = append(sets, ch.Column+" = "+param)
		diffs = append(diffs, ch.Column+" IS DISTINCT FROM "+param)
		if ch.Column == "status" {
			sets = append(sets, stampDates(param))
		}
	}
	sets = append(sets, "updated_at = now()")

	return `WITH matched AS (SELECT id FROM contact_submissions WHERE id = ANY($1)),
		modified AS (
			UPDATE contact_submissions SET ` + strings.Join(sets, ", ") + `
			WHERE id = ANY($1) AND (` + strings.Join(diffs, " OR ") + `)
			RETURNING id)
		SELECT (SELECT COUNT(*) FROM matched)::int, (SELECT COUNT(*) FROM modified)::int`, args
}

// Delete removes a submission.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM contact_submissions WHERE id = $1`, id)
	if err != nil {
		return db.TranslateError("contact.delete", submissionNotFoundMsg, err)
	}
	if tag.RowsAffected() == 0 {
		return db.TranslateError("contact.delete", submissionNotFoundMsg, pgx.ErrNoRows)
	}
	return nil
}

// Aggregate runs grouped counts over submissions.
func (r *Repo) Aggregate(ctx context.Context, specs ...analytics.Spec) (map[string][]analytics.Bucket, error) {
	out, err := r.runner.Run(ctx, table, specs...)
	if err != nil {
		return nil, fmt.Errorf("contact analytics: %w", err)
	}
	return out, nil
}

// Totals computes aggregates over the submissions matching where.
func (r *Repo) Totals(ctx context.Context, where string, measures ...analytics.Measure) (map[string]float64, error) {
	out, err := r.runner.Totals(ctx, table, where, measures...)
	if err != nil {
		return nil, fmt.Errorf("contact totals: %w", err)
	}
	return out, nil
}
