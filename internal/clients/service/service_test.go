package service

import (
	"context"
	"strings"
	"testing"

	"portfolio_backend/internal/analytics"
	"portfolio_backend/internal/clients/domain"
	"portfolio_backend/internal/query"
	"portfolio_backend/platform/apperr"
	"portfolio_backend/platform/logger"
	"portfolio_backend/platform/validator"

	"github.com/google/uuid"
)

type stubRepo struct {
	stored       domain.Client
	plans        []query.Plan
	created      *domain.Fields
	specs        []analytics.Spec
	totals       map[string]float64
	retention    map[string]float64
	satisfaction []domain.Satisfaction
}

func (r *stubRepo) List(_ context.Context, plan query.Plan) ([]domain.Client, int, error) {
	r.plans = append(r.plans, plan)
	return []domain.Client{r.stored}, 1, nil
}

func (r *stubRepo) Collect(_ context.Context, plan query.Plan) ([]domain.Client, error) {
	r.plans = append(r.plans, plan)
	return []domain.Client{r.stored}, nil
}

func (r *stubRepo) GetByID(_ context.Context, id uuid.UUID) (domain.Client, error) {
	if id != r.stored.ID {
		return domain.Client{}, apperr.NotFound("Client not found")
	}
	return r.stored, nil
}

func (r *stubRepo) Create(_ context.Context, f domain.Fields) (domain.Client, error) {
	r.created = &f
	return domain.Client{ID: uuid.New(), Fields: f}, nil
}

func (r *stubRepo) Update(_ context.Context, id uuid.UUID, f domain.Fields) (domain.Client, error) {
	return domain.Client{ID: id, Fields: f}, nil
}

func (r *stubRepo) Delete(context.Context, uuid.UUID) error { return nil }

func (r *stubRepo) Aggregate(_ context.Context, specs ...analytics.Spec) (map[string][]analytics.Bucket, error) {
	r.specs = specs
	return map[string][]analytics.Bucket{}, nil
}

func (r *stubRepo) Totals(context.Context, ...analytics.Measure) (map[string]float64, error) {
	return r.totals, nil
}

func (r *stubRepo) Retention(context.Context) (map[string]float64, error) {
	return r.retention, nil
}

func (r *stubRepo) Top(context.Context, int) ([]domain.TopClient, error) { return nil, nil }

func (r *stubRepo) Satisfaction(context.Context) ([]domain.Satisfaction, error) {
	return r.satisfaction, nil
}

func newTestService(repo *stubRepo) *Service {
	return New(repo, validator.New(), logger.Discard())
}

func TestCreateRejectsInvalidPartnershipStatus(t *testing.T) {
	repo := &stubRepo{}
	_, err := newTestService(repo).Create(context.Background(), []byte(`{"name":"Acme","partnership":{"status":"Dormant"}}`))
	if apperr.GetKind(err) != apperr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if repo.created != nil {
		t.Fatal("expected nothing stored")
	}
}

func TestCreateNormalizesContactPhone(t *testing.T) {
	repo := &stubRepo{}
	_, err := newTestService(repo).Create(context.Background(), []byte(`{"name":"Acme","contactPhone":"+31 6 12345678"}`))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if repo.created.ContactPhone == nil || *repo.created.ContactPhone != "+31612345678" {
		t.Fatalf("expected E.164 phone, got %v", repo.created.ContactPhone)
	}
}

func TestSearchRequiresQuery(t *testing.T) {
	_, err := newTestService(&stubRepo{}).Search(context.Background(), "  ")
	if apperr.GetKind(err) != apperr.KindBadRequest {
		t.Fatalf("expected bad request, got %v", err)
	}
}

func TestSearchScansContactAndLocation(t *testing.T) {
	repo := &stubRepo{}
	if _, err := newTestService(repo).Search(context.Background(), "berlin"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	where := repo.plans[0].Where
	for _, fragment := range []string{"t.contact_person->>'name' ILIKE", "t.location->>'city' ILIKE"} {
		if !strings.Contains(where, fragment) {
			t.Fatalf("expected %q in %s", fragment, where)
		}
	}
}

func TestRetentionRate(t *testing.T) {
	repo := &stubRepo{retention: map[string]float64{
		"total":                  3,
		"retainedClients":        1,
		"avgPartnershipDuration": 120,
		"avgProjectsPerClient":   1.67,
	}}
	got, err := newTestService(repo).Retention(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got.RetentionRate != 33.33 {
		t.Fatalf("expected 33.33, got %v", got.RetentionRate)
	}
	if got.TotalClients != 3 || got.RetainedClients != 1 {
		t.Fatalf("unexpected counts %+v", got)
	}
}

func TestRetentionWithoutClients(t *testing.T) {
	repo := &stubRepo{retention: map[string]float64{"total": 0}}
	got, err := newTestService(repo).Retention(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got.RetentionRate != 0 {
		t.Fatalf("expected 0, got %v", got.RetentionRate)
	}
}

func TestSatisfactionLabelsLevels(t *testing.T) {
	avg := 4.6
	repo := &stubRepo{satisfaction: []domain.Satisfaction{{AverageRating: &avg}, {}}}
	items, err := newTestService(repo).Satisfaction(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if items[0].SatisfactionLevel != "Excellent" || items[1].SatisfactionLevel != "No Rating" {
		t.Fatalf("unexpected levels %q, %q", items[0].SatisfactionLevel, items[1].SatisfactionLevel)
	}
}

func TestAnalyticsGeographyIsCapped(t *testing.T) {
	repo := &stubRepo{totals: map[string]float64{"total": 4, "active": 2}}
	got, err := newTestService(repo).Analytics(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got.Total != 4 || got.Active != 2 {
		t.Fatalf("unexpected totals %+v", got)
	}
	for _, s := range repo.specs {
		if s.Name == "geography" && s.Limit != 20 {
			t.Fatalf("expected geography limit 20, got %d", s.Limit)
		}
	}
}
