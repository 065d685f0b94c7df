package service

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"portfolio_backend/internal/access"
	"portfolio_backend/internal/analytics"
	"portfolio_backend/internal/query"
	"portfolio_backend/internal/resource"
	"portfolio_backend/internal/testimonials/domain"
	"portfolio_backend/internal/testimonials/repository"
	"portfolio_backend/internal/testimonials/transport"
	"portfolio_backend/platform/apperr"
	"portfolio_backend/platform/httpkit"
	"portfolio_backend/platform/logger"
	"portfolio_backend/platform/validator"

	"github.com/google/uuid"
)

const (
	featuredLimit = 10
	newestFirst   = "-dateGiven"

	msgNotFound  = "Testimonial not found"
	msgBadRating = "Rating must be between 1 and 5"
)

var (
	desc = repository.Descriptor

	avgRating = analytics.Measure{Name: "avgRating", Kind: analytics.Avg, Expr: "t.rating"}

	ratingSpec = analytics.Spec{Name: "rating", Key: "t.rating", Where: repository.Approved, Order: analytics.ByKeyAsc}

	categorySpec = analytics.Spec{
		Name:     "category",
		Key:      "t.service_category",
		Where:    repository.Approved + " AND t.service_category IS NOT NULL",
		Measures: []analytics.Measure{avgRating},
	}
	sourceSpec = analytics.Spec{Name: "source", Key: "t.source", Where: repository.Approved, Measures: []analytics.Measure{avgRating}}
	trendSpec  = analytics.Spec{Name: "monthly", Period: "t.date_given", Where: repository.Approved, Measures: []analytics.Measure{avgRating}}

	moderationCounts = []analytics.Measure{
		{Name: "approved", Kind: analytics.Count, Expr: "t.approved"},
		{Name: "pending", Kind: analytics.Count, Expr: "NOT t.approved"},
		{Name: "featured", Kind: analytics.Count, Expr: "t.featured AND t.approved"},
	}
)

func satisfactionMeasures() []analytics.Measure {
	out := []analytics.Measure{{Name: "averageRating", Kind: analytics.RoundedAvg, Expr: "t.rating", Decimals: 2}}
	for star := 1; star <= 5; star++ {
		out = append(out, analytics.Measure{Name: starKey(star), Kind: analytics.Count, Expr: fmt.Sprintf("t.rating = %d", star)})
	}
	return out
}

func starKey(star int) string { return "star" + strconv.Itoa(star) }

// staff sees testimonials regardless of moderation; used behind the
// read-all gate.
type staff struct{}

func (staff) HasRole(string) bool { return true }

// Service provides business logic for testimonials.
type Service struct {
	repo repository.Repository
	val  *validator.Validator
	log  *logger.Logger
	now  func() time.Time
}

// New creates a new testimonials service.
func New(repo repository.Repository, val *validator.Validator, log *logger.Logger) *Service {
	return &Service{repo: repo, val: val, log: log, now: time.Now}
}

func derive(items []domain.Testimonial) []domain.Testimonial {
	for i := range items {
		items[i].Derive()
	}
	return items
}

func (s *Service) collect(ctx context.Context, plan query.Plan) ([]domain.Testimonial, error) {
	items, err := s.repo.Collect(ctx, plan)
	if err != nil {
		return nil, err
	}
	return derive(items), nil
}

func (s *Service) page(ctx context.Context, values url.Values, caller query.Caller) (query.Result[domain.Testimonial], error) {
	req, err := desc.Parse(values)
	if err != nil {
		return query.Result[domain.Testimonial]{}, err
	}
	items, total, err := s.repo.List(ctx, desc.Build(req, caller))
	if err != nil {
		return query.Result[domain.Testimonial]{}, err
	}
	return query.NewResult(derive(items), total, req), nil
}

// List returns one page of testimonials visible to the caller.
func (s *Service) List(ctx context.Context, values url.Values, caller query.Caller) (query.Result[domain.Testimonial], error) {
	return s.page(ctx, values, caller)
}

// ListAll returns one page of testimonials including unapproved ones.
func (s *Service) ListAll(ctx context.Context, values url.Values) (query.Result[domain.Testimonial], error) {
	return s.page(ctx, values, staff{})
}

// Featured returns the newest featured approved testimonials.
func (s *Service) Featured(ctx context.Context) ([]domain.Testimonial, error) {
	return s.collect(ctx, desc.Build(desc.Fixed(newestFirst, featuredLimit), httpkit.Anonymous(), query.Cond("t.featured = true")))
}

// HighRated returns approved testimonials rated at least minRating.
func (s *Service) HighRated(ctx context.Context, minRating, limit int) ([]domain.Testimonial, error) {
	return s.collect(ctx, desc.Build(desc.Fixed("-rating,-dateGiven", limit), httpkit.Anonymous(), query.Cond("t.rating >= ?", minRating)))
}

// ByRating returns testimonials with exactly the given rating.
func (s *Service) ByRating(ctx context.Context, raw string, caller query.Caller) ([]domain.Testimonial, error) {
	rating, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || rating < 1 || rating > 5 {
		return nil, apperr.BadRequest(msgBadRating)
	}
	return s.collect(ctx, desc.Build(desc.Fixed(newestFirst, query.MaxLimit), caller, query.Cond("t.rating = ?", rating)))
}

// ByCategory returns testimonials whose service category contains category.
func (s *Service) ByCategory(ctx context.Context, category string, caller query.Caller) ([]domain.Testimonial, error) {
	return s.collect(ctx, desc.Build(desc.Fixed(newestFirst, query.MaxLimit), caller,
		query.Cond("t.service_category ILIKE ?", query.Contains(category))))
}

// ByProject returns the testimonials of a project.
func (s *Service) ByProject(ctx context.Context, projectID uuid.UUID, caller query.Caller) ([]domain.Testimonial, error) {
	return s.collect(ctx, desc.Build(desc.Fixed(newestFirst, query.MaxLimit), caller, query.Cond("t.related_project_id = ?", projectID)))
}

// ByClient returns the testimonials of a client.
func (s *Service) ByClient(ctx context.Context, clientID uuid.UUID, caller query.Caller) ([]domain.Testimonial, error) {
	return s.collect(ctx, desc.Build(desc.Fixed(newestFirst, query.MaxLimit), caller, query.Cond("t.client_id = ?", clientID)))
}

// GetByID returns a testimonial. Unapproved ones are reported missing to
// everyone but Admin.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID, caller query.Caller) (domain.Testimonial, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Testimonial{}, err
	}
	if !t.Approved && !caller.HasRole(access.RoleAdmin) {
		return domain.Testimonial{}, apperr.NotFound(msgNotFound)
	}
	t.Derive()
	return t, nil
}

// Submit stores a public submission. Moderation flags are always reset.
func (s *Service) Submit(ctx context.Context, body []byte) (domain.Testimonial, error) {
	var fields domain.Fields
	if err := resource.Merge(&fields, body); err != nil {
		return domain.Testimonial{}, err
	}
	fields.Approved, fields.Featured, fields.Verified = false, false, false
	fields.Normalize(s.now())
	if err := s.val.Check(fields); err != nil {
		return domain.Testimonial{}, err
	}

	t, err := s.repo.Create(ctx, fields)
	if err != nil {
		return domain.Testimonial{}, err
	}
	t.Derive()
	s.log.Info("testimonial submitted", "id", t.ID, "rating", t.Rating)
	return t, nil
}

// Update merges the patch into the stored testimonial and revalidates it.
func (s *Service) Update(ctx context.Context, id uuid.UUID, patch []byte) (domain.Testimonial, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Testimonial{}, err
	}
	fields := existing.Fields
	if err := resource.Merge(&fields, patch); err != nil {
		return domain.Testimonial{}, err
	}
	fields.Normalize(s.now())
	if err := s.val.Check(fields); err != nil {
		return domain.Testimonial{}, err
	}

	t, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		return domain.Testimonial{}, err
	}
	t.Derive()
	s.log.Info("testimonial updated", "id", id)
	return t, nil
}

// Approve publishes a testimonial.
func (s *Service) Approve(ctx context.Context, id uuid.UUID) (domain.Testimonial, error) {
	return s.moderate(ctx, id, true)
}

// Reject withdraws a testimonial from public view.
func (s *Service) Reject(ctx context.Context, id uuid.UUID) (domain.Testimonial, error) {
	return s.moderate(ctx, id, false)
}

func (s *Service) moderate(ctx context.Context, id uuid.UUID, approved bool) (domain.Testimonial, error) {
	t, err := s.repo.SetApproved(ctx, id, approved)
	if err != nil {
		return domain.Testimonial{}, err
	}
	t.Derive()
	s.log.Info("testimonial moderated", "id", id, "approved", approved)
	return t, nil
}

// Delete removes a testimonial.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("testimonial deleted", "id", id)
	return nil
}

// Analytics reports moderation counts, distributions and satisfaction.
func (s *Service) Analytics(ctx context.Context) (transport.AnalyticsResponse, error) {
	counts, err := s.repo.Totals(ctx, "", moderationCounts...)
	if err != nil {
		return transport.AnalyticsResponse{}, err
	}
	ratings, err := s.repo.Totals(ctx, repository.Approved, satisfactionMeasures()...)
	if err != nil {
		return transport.AnalyticsResponse{}, err
	}
	buckets, err := s.repo.Aggregate(ctx, ratingSpec, categorySpec, sourceSpec, trendSpec)
	if err != nil {
		return transport.AnalyticsResponse{}, err
	}

	return transport.AnalyticsResponse{
		Total:                int(counts["total"]),
		Approved:             int(counts["approved"]),
		Pending:              int(counts["pending"]),
		Featured:             int(counts["featured"]),
		RatingDistribution:   buckets[ratingSpec.Name],
		CategoryDistribution: buckets[categorySpec.Name],
		SourceDistribution:   buckets[sourceSpec.Name],
		MonthlyTrend:         buckets[trendSpec.Name],
		Satisfaction:         satisfaction(ratings),
	}, nil
}

func satisfaction(totals map[string]float64) transport.Satisfaction {
	breakdown := make(map[int]int, 5)
	for star := 1; star <= 5; star++ {
		breakdown[star] = int(totals[starKey(star)])
	}
	total := totals["total"]
	return transport.Satisfaction{
		TotalTestimonials: int(total),
		AverageRating:     totals["averageRating"],
		SatisfactionRate:  analytics.Round(analytics.Rate(totals[starKey(4)]+totals[starKey(5)], total), 2),
		RatingBreakdown:   breakdown,
	}
}

// Match returns up to limit approved testimonials matching term, for the
// cross-entity search.
func (s *Service) Match(ctx context.Context, term string, filters url.Values, limit int) ([]domain.Testimonial, error) {
	req, err := desc.Parse(filters)
	if err != nil {
		return nil, err
	}
	req.Page, req.Limit = query.DefaultPage, limit
	pattern := query.Contains(term)
	return s.collect(ctx, desc.Build(req, httpkit.Anonymous(), query.Cond(
		"(t.client_name ILIKE ? OR t.client_company ILIKE ? OR t.quote ILIKE ?)", pattern, pattern, pattern)))
}
