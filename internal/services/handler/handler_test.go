package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"portfolio_backend/internal/analytics"
	"portfolio_backend/internal/query"
	"portfolio_backend/internal/services/domain"
	"portfolio_backend/internal/services/service"
	"portfolio_backend/platform/apperr"
	"portfolio_backend/platform/logger"
	"portfolio_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type memoryRepo struct {
	items map[uuid.UUID]domain.Service
}

func (r *memoryRepo) List(context.Context, query.Plan) ([]domain.Service, int, error) {
	out := make([]domain.Service, 0, len(r.items))
	for _, s := range r.items {
		out = append(out, s)
	}
	return out, len(out), nil
}

func (r *memoryRepo) Collect(ctx context.Context, plan query.Plan) ([]domain.Service, error) {
	items, _, err := r.List(ctx, plan)
	return items, err
}

func (r *memoryRepo) GetByID(_ context.Context, id uuid.UUID) (domain.Service, error) {
	s, ok := r.items[id]
	if !ok {
		return domain.Service{}, apperr.NotFound("Service not found")
	}
	return s, nil
}

func (r *memoryRepo) WithProjectCount(context.Context, int) ([]domain.WithProjectCount, error) {
	return nil, nil
}

func (r *memoryRepo) Create(_ context.Context, f domain.Fields) (domain.Service, error) {
	s := domain.Service{ID: uuid.New(), Fields: f}
	r.items[s.ID] = s
	return s, nil
}

func (r *memoryRepo) Update(_ context.Context, id uuid.UUID, f domain.Fields) (domain.Service, error) {
	s := domain.Service{ID: id, Fields: f}
	r.items[id] = s
	return s, nil
}

func (r *memoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.items[id]; !ok {
		return apperr.NotFound("Service not found")
	}
	delete(r.items, id)
	return nil
}

func (r *memoryRepo) Aggregate(context.Context, ...analytics.Spec) (map[string][]analytics.Bucket, error) {
	return map[string][]analytics.Bucket{}, nil
}

func (r *memoryRepo) Totals(context.Context, ...analytics.Measure) (map[string]float64, error) {
	return map[string]float64{"total": float64(len(r.items))}, nil
}

func newRouter(repo *memoryRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := New(service.New(repo, validator.New(), logger.Discard()))
	r := gin.New()
	r.GET("/services", h.List)
	r.GET("/services/search", h.Search)
	r.GET("/services/:id", h.GetByID)
	r.POST("/services", h.Create)
	r.DELETE("/services/:id", h.Delete)
	return r
}

func serve(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestGetByIDRejectsMalformedID(t *testing.T) {
	w := serve(newRouter(&memoryRepo{items: map[uuid.UUID]domain.Service{}}), http.MethodGet, "/services/not-a-uuid", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	w := serve(newRouter(&memoryRepo{items: map[uuid.UUID]domain.Service{}}), http.MethodGet, "/services/"+uuid.NewString(), "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Service not found") {
		t.Fatalf("expected not found message, got %s", w.Body.String())
	}
}

func TestSearchWithoutQueryIsBadRequest(t *testing.T) {
	w := serve(newRouter(&memoryRepo{items: map[uuid.UUID]domain.Service{}}), http.MethodGet, "/services/search", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestCreateReturnsCreated(t *testing.T) {
	repo := &memoryRepo{items: map[uuid.UUID]domain.Service{}}
	w := serve(newRouter(repo), http.MethodPost, "/services",
		`{"name":"Mobile","description":"Apps","category":"Mobile Development"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var body struct {
		Success bool           `json:"success"`
		Data    domain.Service `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body.Success || body.Data.PriceRange != domain.DefaultPriceRange {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestListEnvelope(t *testing.T) {
	id := uuid.New()
	repo := &memoryRepo{items: map[uuid.UUID]domain.Service{id: {ID: id, Fields: domain.Fields{Name: "Design"}}}}
	w := serve(newRouter(repo), http.MethodGet, "/services?fields=name", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body struct {
		Results    int              `json:"results"`
		Pagination map[string]any   `json:"pagination"`
		Data       []map[string]any `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Results != 1 || body.Pagination["totalDocuments"] != float64(1) {
		t.Fatalf("unexpected envelope: %s", w.Body.String())
	}
	if len(body.Data[0]) != 2 || body.Data[0]["name"] != "Design" {
		t.Fatalf("expected projected item, got %v", body.Data[0])
	}
}

func TestDeleteReturnsNoContent(t *testing.T) {
	id := uuid.New()
	repo := &memoryRepo{items: map[uuid.UUID]domain.Service{id: {ID: id}}}
	w := serve(newRouter(repo), http.MethodDelete, "/services/"+id.String(), "")
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
}
