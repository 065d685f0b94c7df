package service

import (
	"context"
	"net/url"
	"strings"
	"time"

	"portfolio_backend/internal/analytics"
	"portfolio_backend/internal/query"
	"portfolio_backend/internal/resource"
	"portfolio_backend/internal/teammembers/domain"
	"portfolio_backend/internal/teammembers/repository"
	"portfolio_backend/internal/teammembers/transport"
	"portfolio_backend/platform/apperr"
	"portfolio_backend/platform/httpkit"
	"portfolio_backend/platform/logger"
	"portfolio_backend/platform/validator"

	"github.com/google/uuid"
)

const (
	featuredLimit = 10
	skillsTop     = 20
)

// experienceYears sums every experience span in years, open spans ending now.
const experienceYears = `(SELECT COALESCE(SUM(EXTRACT(EPOCH FROM (COALESCE((e->>'endDate')::timestamptz, now()) - (e->>'startDate')::timestamptz)) / 31536000), 0)
	FROM jsonb_array_elements(t.experience) AS e)`

var (
	desc = repository.Descriptor

	featuredCount = analytics.Measure{Name: "featured", Kind: analytics.Count, Expr: "t.featured = true"}

	skillsSpec     = analytics.Spec{Name: "skills", Unnest: "t.skills", Limit: skillsTop}
	positionSpec   = analytics.Spec{Name: "position", Key: "t.position"}
	experienceSpec = analytics.Spec{Name: "experience", Key: experienceBucket}

	experienceBucket = "CASE WHEN " + experienceYears + " < 2 THEN '0-2 years' WHEN " + experienceYears + " < 5 THEN '2-5 years' " +
		"WHEN " + experienceYears + " < 10 THEN '5-10 years' ELSE '10+ years' END"
)

// Service provides business logic for team members.
type Service struct {
	repo repository.Repository
	val  *validator.Validator
	log  *logger.Logger
	now  func() time.Time
}

// New creates a new team members service.
func New(repo repository.Repository, val *validator.Validator, log *logger.Logger) *Service {
	return &Service{repo: repo, val: val, log: log, now: time.Now}
}

func (s *Service) derive(items []domain.TeamMember) []domain.TeamMember {
	now := s.now()
	for i := range items {
		items[i].Derive(now)
	}
	return items
}

func (s *Service) collect(ctx context.Context, plan query.Plan) ([]domain.TeamMember, error) {
	items, err := s.repo.Collect(ctx, plan)
	if err != nil {
		return nil, err
	}
	return s.derive(items), nil
}

// List returns one page of team members for the query string.
func (s *Service) List(ctx context.Context, values url.Values, caller query.Caller) (query.Result[domain.TeamMember], error) {
	req, err := desc.Parse(values)
	if err != nil {
		return query.Result[domain.TeamMember]{}, err
	}
	items, total, err := s.repo.List(ctx, desc.Build(req, caller))
	if err != nil {
		return query.Result[domain.TeamMember]{}, err
	}
	return query.NewResult(s.derive(items), total, req), nil
}

// Featured returns the ten newest featured members.
func (s *Service) Featured(ctx context.Context) ([]domain.TeamMember, error) {
	return s.collect(ctx, desc.Build(desc.Fixed("-createdAt", featuredLimit), httpkit.Anonymous(), query.Cond("t.featured = true")))
}

// Search matches names, position, skills and bio.
func (s *Service) Search(ctx context.Context, term string) ([]domain.TeamMember, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, apperr.BadRequest("Search query is required")
	}
	return s.collect(ctx, desc.Ranked(term, query.MaxLimit, httpkit.Anonymous()))
}

// BySkill returns members with a skill containing name.
func (s *Service) BySkill(ctx context.Context, name string) ([]domain.TeamMember, error) {
	return s.collect(ctx, desc.Build(desc.Fixed("lastName", query.MaxLimit), httpkit.Anonymous(),
		query.Cond("EXISTS (SELECT 1 FROM unnest(t.skills) AS s(v) WHERE s.v ILIKE ?)", query.Contains(name))))
}

// ByTeam returns the members whose current team is teamID.
func (s *Service) ByTeam(ctx context.Context, teamID uuid.UUID) ([]domain.TeamMember, error) {
	return s.collect(ctx, desc.Build(desc.Fixed("lastName", query.MaxLimit), httpkit.Anonymous(),
		query.Cond("t.current_team_id = ?", teamID)))
}

// WithProjectCount annotates every member with its project count.
func (s *Service) WithProjectCount(ctx context.Context) ([]domain.WithProjectCount, error) {
	items, err := s.repo.WithProjectCount(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()
	for i := range items {
		items[i].Derive(now)
	}
	return items, nil
}

// SkillsSummary groups members by skill.
func (s *Service) SkillsSummary(ctx context.Context) ([]domain.SkillSummary, error) {
	return s.repo.SkillsSummary(ctx)
}

// GetByID returns a member with its team and projects.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (domain.TeamMember, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.TeamMember{}, err
	}
	m.Derive(s.now())
	return m, nil
}

// Create validates and stores a new team member.
func (s *Service) Create(ctx context.Context, body []byte) (domain.TeamMember, error) {
	var fields domain.Fields
	if err := resource.Merge(&fields, body); err != nil {
		return domain.TeamMember{}, err
	}
	fields.Normalize()
	if err := s.val.Check(fields); err != nil {
		return domain.TeamMember{}, err
	}

	m, err := s.repo.Create(ctx, fields)
	if err != nil {
		return domain.TeamMember{}, err
	}
	m.Derive(s.now())
	s.log.Info("team member created", "id", m.ID, "name", m.FullName)
	return m, nil
}

// Update merges the patch into the stored member and revalidates it.
func (s *Service) Update(ctx context.Context, id uuid.UUID, patch []byte) (domain.TeamMember, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.TeamMember{}, err
	}
	fields := existing.Fields
	if err := resource.Merge(&fields, patch); err != nil {
		return domain.TeamMember{}, err
	}
	fields.Normalize()
	if err := s.val.Check(fields); err != nil {
		return domain.TeamMember{}, err
	}

	m, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		return domain.TeamMember{}, err
	}
	m.Derive(s.now())
	s.log.Info("team member updated", "id", id)
	return m, nil
}

// Delete removes a team member.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("team member deleted", "id", id)
	return nil
}

// Stats returns total and featured counts.
func (s *Service) Stats(ctx context.Context) (transport.StatsResponse, error) {
	totals, err := s.repo.Totals(ctx, featuredCount)
	if err != nil {
		return transport.StatsResponse{}, err
	}
	return transport.StatsResponse{Total: int(totals["total"]), Featured: int(totals["featured"])}, nil
}

// Analytics breaks the team down by skill, position and experience.
func (s *Service) Analytics(ctx context.Context) (transport.AnalyticsResponse, error) {
	totals, err := s.repo.Totals(ctx, featuredCount)
	if err != nil {
		return transport.AnalyticsResponse{}, err
	}
	buckets, err := s.repo.Aggregate(ctx, skillsSpec, positionSpec, experienceSpec)
	if err != nil {
		return transport.AnalyticsResponse{}, err
	}
	return transport.AnalyticsResponse{
		Total:                  int(totals["total"]),
		Featured:               int(totals["featured"]),
		SkillsDistribution:     buckets[skillsSpec.Name],
		PositionDistribution:   buckets[positionSpec.Name],
		ExperienceDistribution: buckets[experienceSpec.Name],
	}, nil
}

// Match returns up to limit members matching term and the optional filters,
// for the cross-entity search.
func (s *Service) Match(ctx context.Context, term string, filters url.Values, limit int) ([]domain.TeamMember, error) {
	req, err := desc.Parse(filters)
	if err != nil {
		return nil, err
	}
	req.Search, req.Page, req.Limit = term, query.DefaultPage, limit
	return s.collect(ctx, desc.Build(req, httpkit.Anonymous()))
}
