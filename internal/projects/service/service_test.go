package service

import (
	"context"
	"strings"
	"testing"

	"portfolio_backend/internal/analytics"
	"portfolio_backend/internal/projects/domain"
	"portfolio_backend/internal/projects/transport"
	"portfolio_backend/internal/query"
	"portfolio_backend/platform/apperr"
	"portfolio_backend/platform/logger"
	"portfolio_backend/platform/validator"

	"github.com/google/uuid"
)

type stubRepo struct {
	stored  domain.Project
	plans   []query.Plan
	totals  map[string]float64
	team    []domain.TeamPerformance
	written *domain.Fields
}

func (r *stubRepo) List(_ context.Context, plan query.Plan) ([]domain.Project, int, error) {
	r.plans = append(r.plans, plan)
	return []domain.Project{r.stored}, 1, nil
}

func (r *stubRepo) Collect(_ context.Context, plan query.Plan) ([]domain.Project, error) {
	r.plans = append(r.plans, plan)
	return []domain.Project{r.stored}, nil
}

func (r *stubRepo) GetByID(_ context.Context, id uuid.UUID) (domain.Project, error) {
	if id != r.stored.ID {
		return domain.Project{}, apperr.NotFound("Project not found")
	}
	return r.stored, nil
}

func (r *stubRepo) Create(_ context.Context, f domain.Fields) (domain.Project, error) {
	r.written = &f
	return domain.Project{ID: uuid.New(), Fields: f}, nil
}

func (r *stubRepo) Update(_ context.Context, id uuid.UUID, f domain.Fields) (domain.Project, error) {
	r.written = &f
	return domain.Project{ID: id, Fields: f}, nil
}

func (r *stubRepo) Delete(context.Context, uuid.UUID) error { return nil }

func (r *stubRepo) Aggregate(context.Context, ...analytics.Spec) (map[string][]analytics.Bucket, error) {
	return map[string][]analytics.Bucket{}, nil
}

func (r *stubRepo) Totals(context.Context, ...analytics.Measure) (map[string]float64, error) {
	return r.totals, nil
}

func (r *stubRepo) TeamPerformance(context.Context, int) ([]domain.TeamPerformance, error) {
	return r.team, nil
}

func newTestService(repo *stubRepo) *Service {
	return New(repo, validator.New(), logger.Discard())
}

func TestRecommendationsExcludeSelfAndMatchClient(t *testing.T) {
	id, client := uuid.New(), uuid.New()
	repo := &stubRepo{stored: domain.Project{ID: id, Fields: domain.Fields{Category: "Website", ClientID: &client}}}
	if _, err := newTestService(repo).Recommendations(context.Background(), id, 5); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	plan := repo.plans[0]
	want := "WHERE t.id <> $1 AND (t.category = $2 OR t.service_ids && $3 OR t.client_id = $4)"
	if plan.Where != want {
		t.Fatalf("expected %q, got %q", want, plan.Where)
	}
	if plan.Limit != 5 {
		t.Fatalf("expected limit 5, got %d", plan.Limit)
	}
}

func TestRecommendationsWithoutClient(t *testing.T) {
	id := uuid.New()
	repo := &stubRepo{stored: domain.Project{ID: id, Fields: domain.Fields{Category: "Design"}}}
	if _, err := newTestService(repo).Recommendations(context.Background(), id, 5); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if strings.Contains(repo.plans[0].Where, "client_id") {
		t.Fatalf("expected no client clause, got %q", repo.plans[0].Where)
	}
}

func TestRecommendationsForMissingProject(t *testing.T) {
	_, err := newTestService(&stubRepo{}).Recommendations(context.Background(), uuid.New(), 5)
	if apperr.GetKind(err) != apperr.KindNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestTimelineYearAndMonth(t *testing.T) {
	repo := &stubRepo{}
	if _, err := newTestService(repo).Timeline(context.Background(), transport.TimelineRequest{Year: 2024, Month: 3}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	plan := repo.plans[0]
	if !strings.Contains(plan.Where, "EXTRACT(MONTH FROM t.completion_date) = $4") || len(plan.Args) != 4 {
		t.Fatalf("unexpected plan: %q %v", plan.Where, plan.Args)
	}
	if !strings.HasPrefix(plan.OrderBy, "ORDER BY t.start_date ASC") {
		t.Fatalf("unexpected order: %q", plan.OrderBy)
	}
}

func TestTimelineRejectsBadMonth(t *testing.T) {
	_, err := newTestService(&stubRepo{}).Timeline(context.Background(), transport.TimelineRequest{Year: 2024, Month: 13})
	if apperr.GetKind(err) != apperr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAnalyticsRates(t *testing.T) {
	repo := &stubRepo{
		totals: map[string]float64{"total": 3, "completed": 1, "active": 2},
		team:   []domain.TeamPerformance{{ProjectCount: 3, CompletedProjects: 2}, {ProjectCount: 0}},
	}
	res, err := newTestService(repo).Analytics(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if res.CompletionRate != 33.33 {
		t.Fatalf("expected 33.33, got %v", res.CompletionRate)
	}
	if res.TeamPerformance[0].CompletionRate != 66.67 || res.TeamPerformance[1].CompletionRate != 0 {
		t.Fatalf("unexpected team rates: %+v", res.TeamPerformance)
	}
}

func TestAnalyticsWithNoProjects(t *testing.T) {
	repo := &stubRepo{totals: map[string]float64{"total": 0}}
	res, err := newTestService(repo).Analytics(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if res.CompletionRate != 0 {
		t.Fatalf("expected zero rate, got %v", res.CompletionRate)
	}
}

func TestCreateRequiresStartDate(t *testing.T) {
	_, err := newTestService(&stubRepo{}).Create(context.Background(),
		[]byte(`{"title":"Tower","fullDescription":"Build","category":"Commercial"}`))
	if apperr.GetKind(err) != apperr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateDerivesAttributes(t *testing.T) {
	repo := &stubRepo{}
	p, err := newTestService(repo).Create(context.Background(),
		[]byte(`{"title":"Tower","fullDescription":"Build","category":"Commercial","startDate":"2024-01-01T00:00:00Z","status":"Review"}`))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if p.ProgressPercentage != 80 || p.DurationDays == nil {
		t.Fatalf("expected derived values, got %+v", p)
	}
}
