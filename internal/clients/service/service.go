package service

import (
	"context"
	"net/url"
	"strings"
	"time"

	"portfolio_backend/internal/analytics"
	"portfolio_backend/internal/clients/domain"
	"portfolio_backend/internal/clients/repository"
	"portfolio_backend/internal/clients/transport"
	"portfolio_backend/internal/query"
	"portfolio_backend/internal/resource"
	"portfolio_backend/platform/apperr"
	"portfolio_backend/platform/httpkit"
	"portfolio_backend/platform/logger"
	"portfolio_backend/platform/validator"

	"github.com/google/uuid"
)

const (
	featuredLimit = 10
	geographyTop  = 20
)

var (
	desc = repository.Descriptor

	activeMeasure = analytics.Measure{Name: "active", Kind: analytics.Count, Expr: "t.partnership->>'status' = 'Active'"}

	industrySpec = analytics.Spec{
		Name:     "industry",
		Key:      "t.industry",
		Measures: []analytics.Measure{{Name: "activeClients", Kind: analytics.Count, Expr: "t.partnership->>'status' = 'Active'"}},
	}
	sizeSpec      = analytics.Spec{Name: "size", Key: "t.company_size"}
	statusSpec    = analytics.Spec{Name: "status", Key: "t.partnership->>'status'"}
	typeSpec      = analytics.Spec{Name: "type", Key: "t.partnership->>'type'"}
	geographySpec = analytics.Spec{
		Name:  "geography",
		Key:   "jsonb_build_object('country', t.location->>'country', 'state', t.location->>'state')",
		Limit: geographyTop,
	}
	acquisitionSpec = analytics.Spec{Name: "acquisition", Period: "(t.partnership->>'startDate')::timestamptz"}
)

// Service provides business logic for clients.
type Service struct {
	repo repository.Repository
	val  *validator.Validator
	log  *logger.Logger
	now  func() time.Time
}

// New creates a new clients service.
func New(repo repository.Repository, val *validator.Validator, log *logger.Logger) *Service {
	return &Service{repo: repo, val: val, log: log, now: time.Now}
}

// List returns one page of clients for the query string.
func (s *Service) List(ctx context.Context, values url.Values, caller query.Caller) (query.Result[domain.Client], error) {
	req, err := desc.Parse(values)
	if err != nil {
		return query.Result[domain.Client]{}, err
	}
	items, total, err := s.repo.List(ctx, desc.Build(req, caller))
	if err != nil {
		return query.Result[domain.Client]{}, err
	}
	return query.NewResult(items, total, req), nil
}

// Featured returns the ten newest featured clients.
func (s *Service) Featured(ctx context.Context) ([]domain.Client, error) {
	return s.repo.Collect(ctx, desc.Build(desc.Fixed("-createdAt", featuredLimit), httpkit.Anonymous(), query.Cond("t.featured = true")))
}

// Search scans names, industries, descriptions, contacts and locations.
func (s *Service) Search(ctx context.Context, term string) ([]domain.Client, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, apperr.BadRequest("Search query is required")
	}
	return s.repo.Collect(ctx, desc.Ranked(term, query.MaxLimit, httpkit.Anonymous()))
}

// ByIndustry matches the industry case-insensitively.
func (s *Service) ByIndustry(ctx context.Context, industry string) ([]domain.Client, error) {
	return s.repo.Collect(ctx, desc.Build(desc.Fixed("name", query.MaxLimit), httpkit.Anonymous(),
		query.Cond("t.industry ILIKE ?", query.Contains(industry))))
}

// GetByID returns a client with its projects.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (domain.Client, error) {
	return s.repo.GetByID(ctx, id)
}

// Create validates and stores a new client.
func (s *Service) Create(ctx context.Context, body []byte) (domain.Client, error) {
	var fields domain.Fields
	if err := resource.Merge(&fields, body); err != nil {
		return domain.Client{}, err
	}
	fields.Normalize(s.now())
	if err := s.val.Check(fields); err != nil {
		return domain.Client{}, err
	}

	c, err := s.repo.Create(ctx, fields)
	if err != nil {
		return domain.Client{}, err
	}
	s.log.Info("client created", "id", c.ID, "name", c.Name)
	return c, nil
}

// Update merges the patch into the stored client and revalidates it.
func (s *Service) Update(ctx context.Context, id uuid.UUID, patch []byte) (domain.Client, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Client{}, err
	}
	fields := existing.Fields
	if err := resource.Merge(&fields, patch); err != nil {
		return domain.Client{}, err
	}
	fields.Normalize(s.now())
	if err := s.val.Check(fields); err != nil {
		return domain.Client{}, err
	}

	c, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		return domain.Client{}, err
	}
	s.log.Info("client updated", "id", id)
	return c, nil
}

// Delete removes a client.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("client deleted", "id", id)
	return nil
}

// Analytics breaks the client base down by industry, size, partnership and
// geography.
func (s *Service) Analytics(ctx context.Context) (transport.AnalyticsResponse, error) {
	totals, err := s.repo.Totals(ctx, activeMeasure)
	if err != nil {
		return transport.AnalyticsResponse{}, err
	}
	buckets, err := s.repo.Aggregate(ctx, industrySpec, sizeSpec, statusSpec, typeSpec, geographySpec, acquisitionSpec)
	if err != nil {
		return transport.AnalyticsResponse{}, err
	}
	return transport.AnalyticsResponse{
		Total:                  int(totals["total"]),
		Active:                 int(totals["active"]),
		IndustryDistribution:   buckets[industrySpec.Name],
		SizeDistribution:       buckets[sizeSpec.Name],
		StatusDistribution:     buckets[statusSpec.Name],
		TypeDistribution:       buckets[typeSpec.Name],
		GeographicDistribution: buckets[geographySpec.Name],
		AcquisitionTrend:       buckets[acquisitionSpec.Name],
	}, nil
}

// Top ranks clients by linked projects.
func (s *Service) Top(ctx context.Context, limit int) ([]domain.TopClient, error) {
	return s.repo.Top(ctx, limit)
}

// Satisfaction labels every client by its average project rating.
func (s *Service) Satisfaction(ctx context.Context) ([]domain.Satisfaction, error) {
	items, err := s.repo.Satisfaction(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i].SatisfactionLevel = domain.SatisfactionLevel(items[i].AverageRating)
	}
	return items, nil
}

// Retention reports how many clients came back for more than one project.
func (s *Service) Retention(ctx context.Context) (transport.RetentionResponse, error) {
	m, err := s.repo.Retention(ctx)
	if err != nil {
		return transport.RetentionResponse{}, err
	}
	return transport.RetentionResponse{
		TotalClients:           int(m["total"]),
		RetainedClients:        int(m["retainedClients"]),
		RetentionRate:          analytics.Round(analytics.Rate(m["retainedClients"], m["total"]), 2),
		AvgPartnershipDuration: m["avgPartnershipDuration"],
		AvgProjectsPerClient:   m["avgProjectsPerClient"],
	}, nil
}
