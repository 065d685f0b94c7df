package service

import (
	"context"
	"strings"
	"testing"

	"portfolio_backend/internal/access"
	"portfolio_backend/internal/analytics"
	"portfolio_backend/internal/query"
	"portfolio_backend/internal/testimonials/domain"
	"portfolio_backend/internal/testimonials/repository"
	"portfolio_backend/platform/apperr"
	"portfolio_backend/platform/httpkit"
	"portfolio_backend/platform/logger"
	"portfolio_backend/platform/validator"

	"github.com/google/uuid"
)

type stubRepo struct {
	stored   domain.Testimonial
	plans    []query.Plan
	created  *domain.Fields
	approved *bool
	totals   map[string]map[string]float64
}

func (r *stubRepo) List(_ context.Context, plan query.Plan) ([]domain.Testimonial, int, error) {
	r.plans = append(r.plans, plan)
	return []domain.Testimonial{r.stored}, 1, nil
}

func (r *stubRepo) Collect(_ context.Context, plan query.Plan) ([]domain.Testimonial, error) {
	r.plans = append(r.plans, plan)
	return []domain.Testimonial{r.stored}, nil
}

func (r *stubRepo) GetByID(_ context.Context, id uuid.UUID) (domain.Testimonial, error) {
	if id != r.stored.ID {
		return domain.Testimonial{}, apperr.NotFound(msgNotFound)
	}
	return r.stored, nil
}

func (r *stubRepo) Create(_ context.Context, f domain.Fields) (domain.Testimonial, error) {
	r.created = &f
	return domain.Testimonial{ID: uuid.New(), Fields: f}, nil
}

func (r *stubRepo) Update(_ context.Context, id uuid.UUID, f domain.Fields) (domain.Testimonial, error) {
	return domain.Testimonial{ID: id, Fields: f}, nil
}

func (r *stubRepo) SetApproved(_ context.Context, id uuid.UUID, approved bool) (domain.Testimonial, error) {
	r.approved = &approved
	t := r.stored
	t.Approved = approved
	return t, nil
}

func (r *stubRepo) Delete(context.Context, uuid.UUID) error { return nil }

func (r *stubRepo) Aggregate(context.Context, ...analytics.Spec) (map[string][]analytics.Bucket, error) {
	return map[string][]analytics.Bucket{}, nil
}

func (r *stubRepo) Totals(_ context.Context, where string, _ ...analytics.Measure) (map[string]float64, error) {
	return r.totals[where], nil
}

func newTestService(repo *stubRepo) *Service {
	return New(repo, validator.New(), logger.Discard())
}

func TestSubmitForcesUnapproved(t *testing.T) {
	repo := &stubRepo{}
	svc := newTestService(repo)

	body := `{"clientName":"Ann","quote":"Great work","rating":5,"approved":true,"featured":true}`
	got, err := svc.Submit(context.Background(), []byte(body))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.created.Approved || repo.created.Featured {
		t.Fatalf("expected moderation flags reset, got %+v", repo.created)
	}
	if got.Stars != "★★★★★" {
		t.Fatalf("expected derived stars, got %q", got.Stars)
	}
}

func TestSubmitRejectsRatingOutOfRange(t *testing.T) {
	svc := newTestService(&stubRepo{})

	_, err := svc.Submit(context.Background(), []byte(`{"clientName":"Ann","quote":"Hm","rating":6}`))
	if apperr.GetKind(err) != apperr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestByRatingBounds(t *testing.T) {
	svc := newTestService(&stubRepo{})
	for _, raw := range []string{"0", "6", "x"} {
		_, err := svc.ByRating(context.Background(), raw, httpkit.Anonymous())
		if apperr.GetKind(err) != apperr.KindBadRequest || !strings.Contains(err.Error(), msgBadRating) {
			t.Fatalf("%s: expected bad request, got %v", raw, err)
		}
	}
}

func TestListOverlayByRole(t *testing.T) {
	repo := &stubRepo{}
	svc := newTestService(repo)

	if _, err := svc.List(context.Background(), nil, httpkit.NewIdentity(uuid.New(), access.RoleEditor)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.List(context.Background(), nil, httpkit.NewIdentity(uuid.New(), access.RoleAdmin)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(repo.plans[0].Where, repository.Approved) {
		t.Fatalf("expected approved overlay for editor, got %s", repo.plans[0].Where)
	}
	if repo.plans[1].Where != "" {
		t.Fatalf("expected no overlay for admin, got %s", repo.plans[1].Where)
	}
}

func TestGetByIDHidesUnapproved(t *testing.T) {
	stored := domain.Testimonial{ID: uuid.New(), Fields: domain.Fields{ClientName: "Ann", Rating: 3}}
	svc := newTestService(&stubRepo{stored: stored})

	if _, err := svc.GetByID(context.Background(), stored.ID, httpkit.Anonymous()); apperr.GetKind(err) != apperr.KindNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := svc.GetByID(context.Background(), stored.ID, httpkit.NewIdentity(uuid.New(), access.RoleAdmin)); err != nil {
		t.Fatalf("expected admin read, got %v", err)
	}
}

func TestRejectClearsApproval(t *testing.T) {
	repo := &stubRepo{stored: domain.Testimonial{ID: uuid.New(), Fields: domain.Fields{Approved: true}}}
	svc := newTestService(repo)

	got, err := svc.Reject(context.Background(), repo.stored.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.approved == nil || *repo.approved || got.Approved {
		t.Fatal("expected approval cleared")
	}
}

func TestHighRatedPlan(t *testing.T) {
	repo := &stubRepo{}
	svc := newTestService(repo)

	if _, err := svc.HighRated(context.Background(), 4, 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	plan := repo.plans[0]
	if !strings.Contains(plan.Where, "t.rating >= $1") || plan.Args[0] != 4 {
		t.Fatalf("expected min rating clause, got %s %v", plan.Where, plan.Args)
	}
	if !strings.HasPrefix(plan.OrderBy, "ORDER BY t.rating DESC, t.date_given DESC") {
		t.Fatalf("unexpected order: %s", plan.OrderBy)
	}
}

func TestSatisfactionRate(t *testing.T) {
	got := satisfaction(map[string]float64{"total": 3, "averageRating": 4.33, "star5": 1, "star4": 1, "star2": 1})
	if got.SatisfactionRate != 66.67 {
		t.Fatalf("expected 66.67, got %v", got.SatisfactionRate)
	}
	if got.RatingBreakdown[5] != 1 || got.RatingBreakdown[3] != 0 {
		t.Fatalf("unexpected breakdown: %v", got.RatingBreakdown)
	}
	if empty := satisfaction(map[string]float64{}); empty.SatisfactionRate != 0 {
		t.Fatalf("expected zero guard, got %v", empty.SatisfactionRate)
	}
}
