package service

import (
	"cmp"
	"context"
	"net/url"
	"slices"

	"portfolio_backend/internal/analytics"
	projects "portfolio_backend/internal/projects/domain"
	"portfolio_backend/internal/query"
	"portfolio_backend/internal/resource"
	"portfolio_backend/internal/teams/domain"
	"portfolio_backend/internal/teams/repository"
	"portfolio_backend/internal/teams/transport"
	"portfolio_backend/platform/httpkit"
	"portfolio_backend/platform/logger"
	"portfolio_backend/platform/validator"

	"github.com/google/uuid"
)

const (
	tagsTop = 10

	sizeBucket = "CASE WHEN cardinality(t.member_ids) < 3 THEN 'Small (1-2)' WHEN cardinality(t.member_ids) < 6 THEN 'Medium (3-5)' " +
		"WHEN cardinality(t.member_ids) < 11 THEN 'Large (6-10)' ELSE 'Extra Large (11+)' END"
)

var (
	desc = repository.Descriptor

	activeCount = analytics.Measure{Name: "active", Kind: analytics.Count, Expr: "t.is_active = true"}

	sizeSpec   = analytics.Spec{Name: "size", Key: sizeBucket}
	tagsSpec   = analytics.Spec{Name: "tags", Unnest: "t.tags", Limit: tagsTop}
	statusSpec = analytics.Spec{Name: "status", Key: "t.is_active"}
)

// Service provides business logic for teams.
type Service struct {
	repo repository.Repository
	val  *validator.Validator
	log  *logger.Logger
}

// New creates a new teams service.
func New(repo repository.Repository, val *validator.Validator, log *logger.Logger) *Service {
	return &Service{repo: repo, val: val, log: log}
}

func derive(items []domain.Team) []domain.Team {
	for i := range items {
		items[i].Derive()
	}
	return items
}

// List returns one page of teams for the query string.
func (s *Service) List(ctx context.Context, values url.Values, caller query.Caller) (query.Result[domain.Team], error) {
	req, err := desc.Parse(values)
	if err != nil {
		return query.Result[domain.Team]{}, err
	}
	items, total, err := s.repo.List(ctx, desc.Build(req, caller))
	if err != nil {
		return query.Result[domain.Team]{}, err
	}
	return query.NewResult(derive(items), total, req), nil
}

// BySpecialty returns teams with a tag or specialty containing name.
func (s *Service) BySpecialty(ctx context.Context, name string) ([]domain.Team, error) {
	pattern := query.Contains(name)
	items, err := s.repo.Collect(ctx, desc.Build(desc.Fixed("teamName", query.MaxLimit), httpkit.Anonymous(), query.Cond(
		"(array_to_string(t.tags, ' ') ILIKE ? OR array_to_string(t.specialties, ' ') ILIKE ?)", pattern, pattern)))
	if err != nil {
		return nil, err
	}
	return derive(items), nil
}

// GetByID returns a team with members, lead and projects.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (domain.Team, error) {
	team, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Team{}, err
	}
	team.Derive()
	return team, nil
}

// Create validates and stores a new team.
func (s *Service) Create(ctx context.Context, body []byte) (domain.Team, error) {
	var fields domain.Fields
	if err := resource.Merge(&fields, body); err != nil {
		return domain.Team{}, err
	}
	fields.Normalize()
	if err := s.val.Check(fields); err != nil {
		return domain.Team{}, err
	}

	team, err := s.repo.Create(ctx, fields)
	if err != nil {
		return domain.Team{}, err
	}
	team.Derive()
	s.log.Info("team created", "id", team.ID, "name", team.TeamName)
	return team, nil
}

// Update merges the patch into the stored team and revalidates it.
func (s *Service) Update(ctx context.Context, id uuid.UUID, patch []byte) (domain.Team, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Team{}, err
	}
	fields := existing.Fields
	if err := resource.Merge(&fields, patch); err != nil {
		return domain.Team{}, err
	}
	fields.Normalize()
	if err := s.val.Check(fields); err != nil {
		return domain.Team{}, err
	}

	team, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		return domain.Team{}, err
	}
	team.Derive()
	s.log.Info("team updated", "id", id)
	return team, nil
}

// Delete removes a team.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("team deleted", "id", id)
	return nil
}

// Stats counts active and inactive teams.
func (s *Service) Stats(ctx context.Context) (transport.StatsResponse, error) {
	totals, err := s.repo.Totals(ctx, activeCount)
	if err != nil {
		return transport.StatsResponse{}, err
	}
	total, active := int(totals["total"]), int(totals["active"])
	return transport.StatsResponse{Total: total, Active: active, Inactive: total - active}, nil
}

// Analytics breaks teams down by size, tag and activity.
func (s *Service) Analytics(ctx context.Context) (transport.AnalyticsResponse, error) {
	totals, err := s.repo.Totals(ctx, activeCount)
	if err != nil {
		return transport.AnalyticsResponse{}, err
	}
	buckets, err := s.repo.Aggregate(ctx, sizeSpec, tagsSpec, statusSpec)
	if err != nil {
		return transport.AnalyticsResponse{}, err
	}
	total, active := int(totals["total"]), int(totals["active"])
	return transport.AnalyticsResponse{
		Total:              total,
		Active:             active,
		Inactive:           total - active,
		SizeDistribution:   buckets[sizeSpec.Name],
		TagsDistribution:   buckets[tagsSpec.Name],
		StatusDistribution: buckets[statusSpec.Name],
	}, nil
}

// Performance ranks teams by projects per member. Empty teams score 0.
func (s *Service) Performance(ctx context.Context) ([]domain.Performance, error) {
	items, err := s.repo.Performance(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i].ProjectsPerMember = analytics.Round(analytics.Ratio(float64(items[i].ProjectCount), float64(items[i].MemberCount)), 2)
	}
	slices.SortStableFunc(items, func(a, b domain.Performance) int {
		return cmp.Compare(b.ProjectsPerMember, a.ProjectsPerMember)
	})
	return items, nil
}

// Workload ranks teams by active projects per member.
func (s *Service) Workload(ctx context.Context) ([]domain.Workload, error) {
	items, err := s.repo.Workload(ctx, projects.ActiveStatuses)
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i].WorkloadRatio = analytics.Round(analytics.Ratio(float64(items[i].ActiveProjectCount), float64(items[i].MemberCount)), 2)
	}
	slices.SortStableFunc(items, func(a, b domain.Workload) int {
		return cmp.Compare(b.WorkloadRatio, a.WorkloadRatio)
	})
	return items, nil
}
