package service

import (
	"context"
	"net/url"
	"strings"
	"time"

	"portfolio_backend/internal/analytics"
	"portfolio_backend/internal/projects/domain"
	"portfolio_backend/internal/projects/repository"
	"portfolio_backend/internal/projects/transport"
	"portfolio_backend/internal/query"
	"portfolio_backend/internal/resource"
	"portfolio_backend/platform/apperr"
	"portfolio_backend/platform/httpkit"
	"portfolio_backend/platform/logger"
	"portfolio_backend/platform/validator"

	"github.com/google/uuid"
)

const (
	featuredLimit        = 10
	teamPerformanceLimit = 10
)

var (
	desc = repository.Descriptor

	statusSpec   = analytics.Spec{Name: "status", Key: "t.status"}
	categorySpec = analytics.Spec{
		Name: "category",
		Key:  "t.category",
		Measures: []analytics.Measure{{
			Name:     "avgDuration",
			Kind:     analytics.RoundedAvg,
			Expr:     "EXTRACT(EPOCH FROM (t.completion_date - t.start_date)) / 86400",
			Decimals: 2,
		}},
	}
	trendSpec = analytics.Spec{Name: "monthly", Period: "t.completion_date"}

	completedMeasure = analytics.Measure{Name: "completed", Kind: analytics.Count, Expr: "t.status = 'Completed'"}
	activeMeasure    = analytics.Measure{Name: "active", Kind: analytics.Count, Expr: "t.status IN ('Planning', 'In Progress', 'Review')"}
	featuredMeasure  = analytics.Measure{Name: "featured", Kind: analytics.Count, Expr: "t.featured"}
)

// Service provides business logic for projects.
type Service struct {
	repo repository.Repository
	val  *validator.Validator
	log  *logger.Logger
	now  func() time.Time
}

// New creates a new projects service.
func New(repo repository.Repository, val *validator.Validator, log *logger.Logger) *Service {
	return &Service{repo: repo, val: val, log: log, now: time.Now}
}

func (s *Service) derive(items []domain.Project) []domain.Project {
	now := s.now()
	for i := range items {
		items[i].Derive(now)
	}
	return items
}

func (s *Service) collect(ctx context.Context, plan query.Plan) ([]domain.Project, error) {
	items, err := s.repo.Collect(ctx, plan)
	if err != nil {
		return nil, err
	}
	return s.derive(items), nil
}

// List returns one page of projects for the query string.
func (s *Service) List(ctx context.Context, values url.Values, caller query.Caller) (query.Result[domain.Project], error) {
	req, err := desc.Parse(values)
	if err != nil {
		return query.Result[domain.Project]{}, err
	}
	items, total, err := s.repo.List(ctx, desc.Build(req, caller))
	if err != nil {
		return query.Result[domain.Project]{}, err
	}
	return query.NewResult(s.derive(items), total, req), nil
}

// Featured returns the ten newest featured projects.
func (s *Service) Featured(ctx context.Context) ([]domain.Project, error) {
	return s.collect(ctx, desc.Build(desc.Fixed("-createdAt", featuredLimit), httpkit.Anonymous(), query.Cond("t.featured = true")))
}

// Recent returns the newest projects.
func (s *Service) Recent(ctx context.Context, limit int) ([]domain.Project, error) {
	return s.collect(ctx, desc.Build(desc.Fixed("-createdAt", limit), httpkit.Anonymous()))
}

// Search ranks projects by full-text relevance.
func (s *Service) Search(ctx context.Context, term string) ([]domain.Project, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, apperr.BadRequest("Search query is required")
	}
	return s.collect(ctx, desc.Ranked(term, query.MaxLimit, httpkit.Anonymous()))
}

// Timeline lists projects started or completed in the requested year or
// month, oldest start first. Without a year every project is returned.
func (s *Service) Timeline(ctx context.Context, req transport.TimelineRequest) ([]domain.Project, error) {
	if err := s.val.Check(req); err != nil {
		return nil, err
	}
	var conds []query.Condition
	switch {
	case req.Year != 0 && req.Month != 0:
		conds = append(conds, query.Cond(
			"((EXTRACT(YEAR FROM t.start_date) = ? AND EXTRACT(MONTH FROM t.start_date) = ?) OR "+
				"(EXTRACT(YEAR FROM t.completion_date) = ? AND EXTRACT(MONTH FROM t.completion_date) = ?))",
			req.Year, req.Month, req.Year, req.Month))
	case req.Year != 0:
		conds = append(conds, query.Cond(
			"(EXTRACT(YEAR FROM t.start_date) = ? OR EXTRACT(YEAR FROM t.completion_date) = ?)", req.Year, req.Year))
	}
	return s.collect(ctx, desc.Build(desc.Fixed("startDate", query.MaxLimit), httpkit.Anonymous(), conds...))
}

// ByCategory matches the category case-insensitively, latest completion first.
func (s *Service) ByCategory(ctx context.Context, category string) ([]domain.Project, error) {
	return s.collect(ctx, desc.Build(desc.Fixed("-completionDate", query.MaxLimit), httpkit.Anonymous(),
		query.Cond("t.category ILIKE ?", query.Contains(category))))
}

// ByStatus lists projects in one status, latest start first.
func (s *Service) ByStatus(ctx context.Context, status string) ([]domain.Project, error) {
	return s.collect(ctx, desc.Build(desc.Fixed("-startDate", query.MaxLimit), httpkit.Anonymous(),
		query.Cond("t.status = ?", status)))
}

// GetByID returns a fully populated project.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (domain.Project, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Project{}, err
	}
	p.Derive(s.now())
	return p, nil
}

// Recommendations lists other projects sharing the category, a service or
// the client of the given project.
func (s *Service) Recommendations(ctx context.Context, id uuid.UUID, limit int) ([]domain.Project, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	similar := "(t.category = ? OR t.service_ids && ?"
	args := []any{current.Category, current.ServiceIDs}
	if current.ClientID != nil {
		similar += " OR t.client_id = ?"
		args = append(args, *current.ClientID)
	}
	similar += ")"

	return s.collect(ctx, desc.Build(desc.Fixed("-createdAt", limit), httpkit.Anonymous(),
		query.Cond("t.id <> ?", id), query.Cond(similar, args...)))
}

// Create validates and stores a new project.
func (s *Service) Create(ctx context.Context, body []byte) (domain.Project, error) {
	var fields domain.Fields
	if err := resource.Merge(&fields, body); err != nil {
		return domain.Project{}, err
	}
	fields.Normalize(s.now())
	if err := s.val.Check(fields); err != nil {
		return domain.Project{}, err
	}

	p, err := s.repo.Create(ctx, fields)
	if err != nil {
		return domain.Project{}, err
	}
	s.log.Info("project created", "id", p.ID, "title", p.Title, "status", p.Status)
	p.Derive(s.now())
	return p, nil
}

// Update merges the patch into the stored project and revalidates it.
func (s *Service) Update(ctx context.Context, id uuid.UUID, patch []byte) (domain.Project, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Project{}, err
	}
	fields := existing.Fields
	if err := resource.Merge(&fields, patch); err != nil {
		return domain.Project{}, err
	}
	fields.Normalize(s.now())
	if err := s.val.Check(fields); err != nil {
		return domain.Project{}, err
	}

	p, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		return domain.Project{}, err
	}
	s.log.Info("project updated", "id", id, "status", p.Status)
	p.Derive(s.now())
	return p, nil
}

// Delete removes a project.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("project deleted", "id", id)
	return nil
}

// Stats counts all and featured projects.
func (s *Service) Stats(ctx context.Context) (transport.StatsResponse, error) {
	totals, err := s.repo.Totals(ctx, featuredMeasure)
	if err != nil {
		return transport.StatsResponse{}, err
	}
	return transport.StatsResponse{Total: int(totals["total"]), Featured: int(totals["featured"])}, nil
}

// Analytics builds the status, category, completion trend and team
// performance breakdowns.
func (s *Service) Analytics(ctx context.Context) (transport.AnalyticsResponse, error) {
	totals, err := s.repo.Totals(ctx, completedMeasure, activeMeasure)
	if err != nil {
		return transport.AnalyticsResponse{}, err
	}
	buckets, err := s.repo.Aggregate(ctx, statusSpec, categorySpec, trendSpec)
	if err != nil {
		return transport.AnalyticsResponse{}, err
	}
	team, err := s.repo.TeamPerformance(ctx, teamPerformanceLimit)
	if err != nil {
		return transport.AnalyticsResponse{}, err
	}
	for i := range team {
		team[i].CompletionRate = analytics.Round(
			analytics.Rate(float64(team[i].CompletedProjects), float64(team[i].ProjectCount)), 2)
	}

	return transport.AnalyticsResponse{
		Total:                int(totals["total"]),
		Completed:            int(totals["completed"]),
		Active:               int(totals["active"]),
		CompletionRate:       analytics.Round(analytics.Rate(totals["completed"], totals["total"]), 2),
		StatusDistribution:   buckets[statusSpec.Name],
		CategoryDistribution: buckets[categorySpec.Name],
		MonthlyTrend:         buckets[trendSpec.Name],
		TeamPerformance:      team,
	}, nil
}

// Match finds projects whose text, category, tags or technologies contain
// the term, for the cross-entity search. filters may narrow by category,
// featured or status.
func (s *Service) Match(ctx context.Context, term string, filters url.Values, limit int) ([]domain.Project, error) {
	req, err := desc.Parse(filters)
	if err != nil {
		return nil, err
	}
	req.Page, req.Limit = query.DefaultPage, limit
	pattern := query.Contains(term)
	return s.collect(ctx, desc.Build(req, httpkit.Anonymous(), query.Cond(
		"(t.title ILIKE ? OR t.short_description ILIKE ? OR t.full_description ILIKE ? OR t.category ILIKE ? "+
			"OR array_to_string(t.tags, ' ') ILIKE ? OR array_to_string(t.technologies, ' ') ILIKE ?)",
		pattern, pattern, pattern, pattern, pattern, pattern)))
}

// Categories lists the distinct categories in use.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	spec := analytics.Spec{Name: "categories", Key: "t.category", Order: analytics.ByKeyAsc}
	buckets, err := s.repo.Aggregate(ctx, spec)
	if err != nil {
		return nil, err
	}
	return analytics.Keys(buckets[spec.Name]), nil
}
