package service

import (
	"context"
	"net/url"
	"strings"

	"portfolio_backend/internal/analytics"
	"portfolio_backend/internal/query"
	"portfolio_backend/internal/resource"
	"portfolio_backend/internal/services/domain"
	"portfolio_backend/internal/services/repository"
	"portfolio_backend/internal/services/transport"
	"portfolio_backend/platform/apperr"
	"portfolio_backend/platform/httpkit"
	"portfolio_backend/platform/logger"
	"portfolio_backend/platform/validator"

	"github.com/google/uuid"
)

const (
	featuredLimit = 10
	searchLimit   = query.MaxLimit
)

var (
	byCategory = analytics.Spec{
		Name:     "byCategory",
		Key:      "t.category",
		Measures: []analytics.Measure{{Name: "featured", Kind: analytics.Count, Expr: "t.featured"}},
	}
	featuredCount = analytics.Measure{Name: "featured", Kind: analytics.Count, Expr: "t.featured"}
)

// Service provides business logic for services.
type Service struct {
	repo repository.Repository
	val  *validator.Validator
	log  *logger.Logger
}

// New creates a new services service.
func New(repo repository.Repository, val *validator.Validator, log *logger.Logger) *Service {
	return &Service{repo: repo, val: val, log: log}
}

// List returns one page of services for the query string.
func (s *Service) List(ctx context.Context, values url.Values, caller query.Caller) (query.Result[domain.Service], error) {
	req, err := repository.Descriptor.Parse(values)
	if err != nil {
		return query.Result[domain.Service]{}, err
	}
	items, total, err := s.repo.List(ctx, repository.Descriptor.Build(req, caller))
	if err != nil {
		return query.Result[domain.Service]{}, err
	}
	return query.NewResult(items, total, req), nil
}

// Featured returns the ten newest featured services.
func (s *Service) Featured(ctx context.Context) ([]domain.Service, error) {
	plan := repository.Descriptor.Build(repository.Descriptor.Fixed("-createdAt", featuredLimit), httpkit.Anonymous(),
		query.Cond("t.featured = true"))
	return s.repo.Collect(ctx, plan)
}

// Search ranks services by full-text relevance.
func (s *Service) Search(ctx context.Context, term string) ([]domain.Service, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, apperr.BadRequest("Search query is required")
	}
	return s.repo.Collect(ctx, repository.Descriptor.Ranked(term, searchLimit, httpkit.Anonymous()))
}

// ByCategory matches the category case-insensitively.
func (s *Service) ByCategory(ctx context.Context, category string) ([]domain.Service, error) {
	req := repository.Descriptor.Fixed("-createdAt", query.MaxLimit)
	plan := repository.Descriptor.Build(req, httpkit.Anonymous(), query.Cond("t.category ILIKE ?", query.Contains(category)))
	return s.repo.Collect(ctx, plan)
}

// WithProjectCount returns every service annotated with its project count.
func (s *Service) WithProjectCount(ctx context.Context) ([]domain.WithProjectCount, error) {
	return s.repo.WithProjectCount(ctx, 0)
}

// Popular returns the services used by the most projects.
func (s *Service) Popular(ctx context.Context, limit int) ([]domain.WithProjectCount, error) {
	return s.repo.WithProjectCount(ctx, max(limit, 1))
}

// GetByID returns a service with its related projects.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (domain.Service, error) {
	return s.repo.GetByID(ctx, id)
}

// Create validates and stores a new service.
func (s *Service) Create(ctx context.Context, body []byte) (domain.Service, error) {
	var fields domain.Fields
	if err := resource.Merge(&fields, body); err != nil {
		return domain.Service{}, err
	}
	fields.Normalize()
	if err := s.val.Check(fields); err != nil {
		return domain.Service{}, err
	}

	svc, err := s.repo.Create(ctx, fields)
	if err != nil {
		return domain.Service{}, err
	}
	s.log.Info("service created", "id", svc.ID, "name", svc.Name, "category", svc.Category)
	return svc, nil
}

// Update merges the patch into the stored service and revalidates it.
func (s *Service) Update(ctx context.Context, id uuid.UUID, patch []byte) (domain.Service, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Service{}, err
	}
	fields := existing.Fields
	if err := resource.Merge(&fields, patch); err != nil {
		return domain.Service{}, err
	}
	fields.Normalize()
	if err := s.val.Check(fields); err != nil {
		return domain.Service{}, err
	}

	svc, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		return domain.Service{}, err
	}
	s.log.Info("service updated", "id", id)
	return svc, nil
}

// Delete removes a service.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("service deleted", "id", id)
	return nil
}

// Stats counts all and featured services.
func (s *Service) Stats(ctx context.Context) (transport.StatsResponse, error) {
	totals, err := s.repo.Totals(ctx, featuredCount)
	if err != nil {
		return transport.StatsResponse{}, err
	}
	return transport.StatsResponse{Total: int(totals["total"]), Featured: int(totals["featured"])}, nil
}

// Analytics breaks services down by category.
func (s *Service) Analytics(ctx context.Context) (transport.AnalyticsResponse, error) {
	totals, err := s.repo.Totals(ctx, featuredCount)
	if err != nil {
		return transport.AnalyticsResponse{}, err
	}
	buckets, err := s.repo.Aggregate(ctx, byCategory)
	if err != nil {
		return transport.AnalyticsResponse{}, err
	}
	return transport.AnalyticsResponse{
		Total:      int(totals["total"]),
		Featured:   int(totals["featured"]),
		ByCategory: buckets[byCategory.Name],
	}, nil
}

// Match finds services whose name, description, category or tags contain the
// term, for the cross-entity search. filters may narrow by category or
// featured.
func (s *Service) Match(ctx context.Context, term string, filters url.Values, limit int) ([]domain.Service, error) {
	req, err := repository.Descriptor.Parse(filters)
	if err != nil {
		return nil, err
	}
	req.Page, req.Limit = query.DefaultPage, limit
	pattern := query.Contains(term)
	plan := repository.Descriptor.Build(req, httpkit.Anonymous(), query.Cond(
		"(t.name ILIKE ? OR t.description ILIKE ? OR t.category ILIKE ? OR array_to_string(t.tags, ' ') ILIKE ?)",
		pattern, pattern, pattern, pattern))
	return s.repo.Collect(ctx, plan)
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
