package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"slices"
	"time"

	"portfolio_backend/internal/analytics"
	"portfolio_backend/internal/contact/domain"
	"portfolio_backend/internal/contact/repository"
	"portfolio_backend/internal/contact/transport"
	"portfolio_backend/internal/events"
	"portfolio_backend/internal/query"
	"portfolio_backend/internal/resource"
	"portfolio_backend/platform/apperr"
	"portfolio_backend/platform/logger"
	"portfolio_backend/platform/validator"

	"github.com/google/uuid"
)

const (
	responded    = "t.response_date IS NOT NULL"
	responseTime = "EXTRACT(EPOCH FROM (t.response_date - t.submitted_at)) / 3600"
)

var (
	desc = repository.Descriptor

	statusSpec  = analytics.Spec{Name: "status", Key: "t.status"}
	sourceSpec  = analytics.Spec{Name: "source", Key: "t.source"}
	inquirySpec = analytics.Spec{
		Name:     "inquiryType",
		Key:      "t.inquiry_type",
		Measures: []analytics.Measure{{Name: "avgResponseTime", Kind: analytics.Avg, Expr: responseTime}},
	}
	trendSpec = analytics.Spec{
		Name:   "monthly",
		Period: "t.submitted_at",
		Measures: []analytics.Measure{
			{Name: "submissions", Kind: analytics.Count},
			{Name: "responded", Kind: analytics.Count, Expr: "t.status = 'Responded'"},
			{Name: "converted", Kind: analytics.Count, Expr: "t.status = 'Converted'"},
		},
	}

	pipelineCounts = []analytics.Measure{
		{Name: "new", Kind: analytics.Count, Expr: "t.status = 'New'"},
		{Name: "overdue", Kind: analytics.Count, Expr: domain.Overdue},
		{Name: "converted", Kind: analytics.Count, Expr: "t.status = 'Converted'"},
		{Name: "responded", Kind: analytics.Count, Expr: "t.status = 'Responded'"},
	}
	responseMeasures = []analytics.Measure{
		{Name: "avgResponseTimeHours", Kind: analytics.RoundedAvg, Expr: responseTime, Decimals: 2},
	}
)

// Service provides business logic for contact submissions.
type Service struct {
	repo repository.Repository
	val  *validator.Validator
	log  *logger.Logger
	bus  events.Bus
	now  func() time.Time
}

// New creates a new contact service.
func New(repo repository.Repository, val *validator.Validator, log *logger.Logger, bus events.Bus) *Service {
	return &Service{repo: repo, val: val, log: log, bus: bus, now: time.Now}
}

func (s *Service) derive(items []domain.Submission) []domain.Submission {
	now := s.now()
	for i := range items {
		items[i].Derive(now)
	}
	return items
}

func (s *Service) one(sub domain.Submission, err error) (domain.Submission, error) {
	if err != nil {
		return domain.Submission{}, err
	}
	sub.Derive(s.now())
	return sub, nil
}

// Submit stores a public contact form submission and announces it.
func (s *Service) Submit(ctx context.Context, body []byte, meta domain.Meta) (transport.SubmitResponse, error) {
	var fields domain.Fields
	if err := resource.Merge(&fields, body); err != nil {
		return transport.SubmitResponse{}, err
	}
	// workflow state is staff-owned
	fields.Status = domain.StatusNew
	fields.AssignedToID, fields.FollowUpDate, fields.ResponseDate, fields.ConversionDate = nil, nil, nil, nil
	fields.Normalize()
	if err := s.val.Check(fields); err != nil {
		return transport.SubmitResponse{}, err
	}

	meta.SubmittedAt = s.now()
	sub, err := s.repo.Create(ctx, fields, meta)
	if err != nil {
		return transport.SubmitResponse{}, err
	}
	s.log.Info("contact submission received", "id", sub.ID, "inquiryType", sub.InquiryType)

	subject := ""
	if sub.Subject != nil {
		subject = *sub.Subject
	}
	s.bus.Publish(ctx, events.ContactSubmitted{
		BaseEvent:    events.NewBaseEvent(),
		SubmissionID: sub.ID,
		Name:         sub.Name,
		Email:        sub.Email,
		Subject:      subject,
		InquiryType:  sub.InquiryType,
		Message:      sub.Message,
		SubmittedAt:  sub.SubmittedAt,
	})
	return transport.SubmitResponse{ID: sub.ID, SubmittedAt: sub.SubmittedAt}, nil
}

// List returns one page of submissions.
func (s *Service) List(ctx context.Context, values url.Values, caller query.Caller) (query.Result[domain.Submission], error) {
	req, err := desc.Parse(values)
	if err != nil {
		return query.Result[domain.Submission]{}, err
	}
	items, total, err := s.repo.List(ctx, desc.Build(req, caller))
	if err != nil {
		return query.Result[domain.Submission]{}, err
	}
	return query.NewResult(s.derive(items), total, req), nil
}

// Overdue returns open submissions past their follow-up date, oldest first.
func (s *Service) Overdue(ctx context.Context, caller query.Caller) ([]domain.Submission, error) {
	items, err := s.repo.Collect(ctx, desc.Build(desc.Fixed("followUpDate", query.MaxLimit), caller, query.Cond(domain.Overdue)))
	if err != nil {
		return nil, err
	}
	return s.derive(items), nil
}

// ByAssignee returns the submissions assigned to a team member.
func (s *Service) ByAssignee(ctx context.Context, memberID uuid.UUID, caller query.Caller) ([]domain.Submission, error) {
	items, err := s.repo.Collect(ctx, desc.Build(desc.Fixed("-submittedAt", query.MaxLimit), caller, query.Cond("t.assigned_to = ?", memberID)))
	if err != nil {
		return nil, err
	}
	return s.derive(items), nil
}

// GetByID returns a submission.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (domain.Submission, error) {
	return s.one(s.repo.GetByID(ctx, id))
}

// UpdateStatus moves a submission to another status.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, req transport.StatusRequest) (domain.Submission, error) {
	if err := s.val.Check(req); err != nil {
		return domain.Submission{}, err
	}
	sub, err := s.one(s.repo.SetStatus(ctx, id, req.Status))
	if err != nil {
		return domain.Submission{}, err
	}
	s.log.Info("contact status changed", "id", id, "status", req.Status)
	return sub, nil
}

// Assign hands a submission to a team member.
func (s *Service) Assign(ctx context.Context, id uuid.UUID, req transport.AssignRequest) (domain.Submission, error) {
	if err := s.val.Check(req); err != nil {
		return domain.Submission{}, err
	}
	sub, err := s.one(s.repo.Assign(ctx, id, req.AssignedTo))
	if err != nil {
		return domain.Submission{}, err
	}
	s.log.Info("contact assigned", "id", id, "assignedTo", req.AssignedTo)
	return sub, nil
}

// AddNote appends a note written by the caller.
func (s *Service) AddNote(ctx context.Context, id uuid.UUID, req transport.NoteRequest, author uuid.UUID) (domain.Submission, error) {
	if err := s.val.Check(req); err != nil {
		return domain.Submission{}, err
	}
	note := domain.Note{Note: req.Note, AddedAt: s.now()}
	if author != uuid.Nil {
		note.AddedBy = &author
	}
	return s.one(s.repo.AddNote(ctx, id, note))
}

// BulkUpdate applies the allow-listed updates to every id.
func (s *Service) BulkUpdate(ctx context.Context, req transport.BulkRequest) (domain.BulkResult, error) {
	if len(req.IDs) == 0 {
		return domain.BulkResult{}, apperr.BadRequest("IDs array is required")
	}
	changes, err := bulkChanges(req.Updates)
	if err != nil {
		return domain.BulkResult{}, err
	}
	res, err := s.repo.BulkUpdate(ctx, req.IDs, changes)
	if err != nil {
		return domain.BulkResult{}, err
	}
	s.log.Info("contact bulk update", "matched", res.MatchedCount, "modified", res.ModifiedCount)
	return res, nil
}

// bulkField is one allow-listed attribute of a bulk update.
type bulkField struct {
	key    string
	column string
	decode func(raw json.RawMessage) (any, error)
}

var bulkFields = []bulkField{
	{"status", "status", enum(domain.Statuses)},
	{"priority", "priority", enum(domain.Priorities)},
	{"assignedTo", "assigned_to", decodeAs[*uuid.UUID]},
	{"followUpDate", "follow_up_date", decodeAs[*time.Time]},
	{"tags", "tags", func(raw json.RawMessage) (any, error) {
		tags := []string{}
		if err := json.Unmarshal(raw, &tags); err != nil {
			return nil, err
		}
		if tags == nil {
			tags = []string{}
		}
		return tags, nil
	}},
}

func decodeAs[T any](raw json.RawMessage) (any, error) {
	var v T
	err := json.Unmarshal(raw, &v)
	return v, err
}

func enum(allowed []string) func(json.RawMessage) (any, error) {
	return func(raw json.RawMessage) (any, error) {
		var v string
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		if !slices.Contains(allowed, v) {
			return nil, fmt.Errorf("%q is not one of %v", v, allowed)
		}
		return v, nil
	}
}

// bulkChanges decodes the updates in a stable column order, rejecting keys
// outside the allow-list and invalid values.
func bulkChanges(updates map[string]json.RawMessage) ([]domain.Change, error) {
	if len(updates) == 0 {
		return nil, apperr.Validation("Updates object is required")
	}
	known := 0
	changes := make([]domain.Change, 0, len(updates))
	for _, f := range bulkFields {
		raw, ok := updates[f.key]
		if !ok {
			continue
		}
		known++
		v, err := f.decode(raw)
		if err != nil {
			return nil, apperr.Validation("Invalid value for " + f.key)
		}
		changes = append(changes, domain.Change{Column: f.column, Value: v})
	}
	if known != len(updates) {
		for key := range updates {
			if !slices.ContainsFunc(bulkFields, func(f bulkField) bool { return f.key == key }) {
				return nil, apperr.Validation(fmt.Sprintf("Unsupported bulk update field %q", key))
			}
		}
	}
	return changes, nil
}

// Update merges the patch into the stored submission and revalidates it.
func (s *Service) Update(ctx context.Context, id uuid.UUID, patch []byte) (domain.Submission, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Submission{}, err
	}
	fields := existing.Fields
	if err := resource.Merge(&fields, patch); err != nil {
		return domain.Submission{}, err
	}
	fields.Normalize()
	fields.ApplyStatus(fields.Status, s.now())
	if err := s.val.Check(fields); err != nil {
		return domain.Submission{}, err
	}

	sub, err := s.one(s.repo.Update(ctx, id, fields))
	if err != nil {
		return domain.Submission{}, err
	}
	s.log.Info("contact submission updated", "id", id)
	return sub, nil
}

// Delete removes a submission.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("contact submission deleted", "id", id)
	return nil
}

// Analytics reports the pipeline distributions and response metrics.
func (s *Service) Analytics(ctx context.Context) (transport.AnalyticsResponse, error) {
	counts, err := s.repo.Totals(ctx, "", pipelineCounts...)
	if err != nil {
		return transport.AnalyticsResponse{}, err
	}
	response, err := s.repo.Totals(ctx, responded, responseMeasures...)
	if err != nil {
		return transport.AnalyticsResponse{}, err
	}
	buckets, err := s.repo.Aggregate(ctx, statusSpec, inquirySpec, sourceSpec, trendSpec)
	if err != nil {
		return transport.AnalyticsResponse{}, err
	}

	total := counts["total"]
	return transport.AnalyticsResponse{
		Total:                   int(total),
		New:                     int(counts["new"]),
		Overdue:                 int(counts["overdue"]),
		StatusDistribution:      buckets[statusSpec.Name],
		InquiryTypeDistribution: buckets[inquirySpec.Name],
		SourceDistribution:      buckets[sourceSpec.Name],
		MonthlyTrend:            buckets[trendSpec.Name],
		ResponseMetrics: transport.ResponseMetrics{
			AvgResponseTimeHours: response["avgResponseTimeHours"],
			TotalResponded:       int(response["total"]),
		},
		ConversionMetrics: transport.ConversionMetrics{
			TotalSubmissions: int(total),
			TotalConverted:   int(counts["converted"]),
			TotalResponded:   int(counts["responded"]),
			ConversionRate:   analytics.Round(analytics.Rate(counts["converted"], total), 2),
			ResponseRate:     analytics.Round(analytics.Rate(counts["responded"], total), 2),
		},
	}, nil
}
