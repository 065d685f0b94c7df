package service

import (
	"context"
	"net/url"
	"strings"
	"time"

	"portfolio_backend/internal/access"
	"portfolio_backend/internal/analytics"
	"portfolio_backend/internal/blog/domain"
	"portfolio_backend/internal/blog/repository"
	"portfolio_backend/internal/blog/transport"
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
	tagsTop       = 20
	viewTimeout   = 5 * time.Second

	msgPostNotFound = "Blog post not found"
	published       = "t.status = 'Published'"
)

var (
	desc = repository.Descriptor

	// lookback per popularity timeframe; "all" and unknown values have none
	timeframes = map[string]time.Duration{
		"week":  7 * 24 * time.Hour,
		"month": 30 * 24 * time.Hour,
		"year":  365 * 24 * time.Hour,
	}

	categorySpec = analytics.Spec{
		Name:  "category",
		Key:   "t.category",
		Where: published,
		Measures: []analytics.Measure{
			{Name: "totalViews", Kind: analytics.Sum, Expr: "t.views"},
			{Name: "avgViews", Kind: analytics.Avg, Expr: "t.views"},
		},
	}
	trendSpec = analytics.Spec{
		Name:     "monthly",
		Period:   "t.published_date",
		Where:    published,
		Measures: []analytics.Measure{{Name: "views", Kind: analytics.Sum, Expr: "t.views"}},
	}
	tagsSpec = analytics.Spec{
		Name:     "tags",
		Unnest:   "t.tags",
		Where:    published,
		Measures: []analytics.Measure{{Name: "totalViews", Kind: analytics.Sum, Expr: "t.views"}},
		Limit:    tagsTop,
	}

	statusCounts = []analytics.Measure{
		{Name: "published", Kind: analytics.Count, Expr: "t.status = 'Published'"},
		{Name: "drafts", Kind: analytics.Count, Expr: "t.status = 'Draft'"},
	}
	engagementMeasures = []analytics.Measure{
		{Name: "totalViews", Kind: analytics.Sum, Expr: "t.views"},
		{Name: "totalLikes", Kind: analytics.Sum, Expr: "t.likes"},
		{Name: "totalComments", Kind: analytics.Sum, Expr: "jsonb_array_length(jsonb_path_query_array(t.comments, '$[*] ? (@.approved == true)'))"},
		{Name: "avgViews", Kind: analytics.RoundedAvg, Expr: "t.views", Decimals: 2},
		{Name: "avgLikes", Kind: analytics.RoundedAvg, Expr: "t.likes", Decimals: 2},
		{Name: "avgReadTime", Kind: analytics.RoundedAvg, Expr: "t.read_time", Decimals: 1},
	}
)

// staff sees every post regardless of status; used behind the read-all gate.
type staff struct{}

func (staff) HasRole(string) bool { return true }

// Service provides business logic for blog posts.
type Service struct {
	repo repository.Repository
	val  *validator.Validator
	log  *logger.Logger
	now  func() time.Time
	// spawn runs the detached view increment
	spawn func(func())
}

// New creates a new blog service.
func New(repo repository.Repository, val *validator.Validator, log *logger.Logger) *Service {
	return &Service{repo: repo, val: val, log: log, now: time.Now, spawn: func(f func()) { go f() }}
}

// present derives the computed fields; only Admin sees comments awaiting
// moderation.
func (s *Service) present(items []domain.Post, caller query.Caller) []domain.Post {
	now := s.now()
	moderator := caller.HasRole(access.RoleAdmin)
	for i := range items {
		items[i].Derive(now)
		if !moderator {
			items[i].HideUnapproved()
		}
	}
	return items
}

func (s *Service) page(ctx context.Context, req query.Request, caller query.Caller, extra ...query.Condition) (query.Result[domain.Post], error) {
	items, total, err := s.repo.List(ctx, desc.Build(req, caller, extra...))
	if err != nil {
		return query.Result[domain.Post]{}, err
	}
	return query.NewResult(s.present(items, caller), total, req), nil
}

func (s *Service) collect(ctx context.Context, plan query.Plan) ([]domain.Post, error) {
	items, err := s.repo.Collect(ctx, plan)
	if err != nil {
		return nil, err
	}
	return s.present(items, httpkit.Anonymous()), nil
}

// List returns one page of posts visible to the caller.
func (s *Service) List(ctx context.Context, values url.Values, caller query.Caller) (query.Result[domain.Post], error) {
	req, err := desc.Parse(values)
	if err != nil {
		return query.Result[domain.Post]{}, err
	}
	return s.page(ctx, req, caller)
}

// ListAll returns one page of posts in any status.
func (s *Service) ListAll(ctx context.Context, values url.Values) (query.Result[domain.Post], error) {
	req, err := desc.Parse(values)
	if err != nil {
		return query.Result[domain.Post]{}, err
	}
	return s.page(ctx, req, staff{})
}

// Featured returns the ten newest featured published posts.
func (s *Service) Featured(ctx context.Context) ([]domain.Post, error) {
	return s.collect(ctx, desc.Build(desc.Fixed("-createdAt", featuredLimit), httpkit.Anonymous(), query.Cond("t.featured = true")))
}

// Popular ranks published posts by views then likes, optionally only those
// published within the timeframe.
func (s *Service) Popular(ctx context.Context, limit int, timeframe string) ([]domain.Post, error) {
	var extra []query.Condition
	if lookback, ok := timeframes[timeframe]; ok {
		extra = append(extra, query.Cond("t.published_date >= ?", s.now().Add(-lookback)))
	}
	return s.collect(ctx, desc.Build(desc.Fixed("-views,-likes", limit), httpkit.Anonymous(), extra...))
}

// Search ranks published posts matching q.
func (s *Service) Search(ctx context.Context, term string) ([]domain.Post, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, apperr.BadRequest("Search query is required")
	}
	return s.collect(ctx, desc.Ranked(term, query.MaxLimit, httpkit.Anonymous()))
}

// ByCategory pages through posts whose category contains category.
func (s *Service) ByCategory(ctx context.Context, category string, page, limit int, caller query.Caller) (query.Result[domain.Post], error) {
	req := desc.Fixed("-publishedDate", limit)
	req.Page = page
	return s.page(ctx, req, caller, query.Cond("t.category ILIKE ?", query.Contains(category)))
}

// ByTag pages through posts with a tag containing tag.
func (s *Service) ByTag(ctx context.Context, tag string, page, limit int, caller query.Caller) (query.Result[domain.Post], error) {
	req := desc.Fixed("-publishedDate", limit)
	req.Page = page
	return s.page(ctx, req, caller,
		query.Cond("EXISTS (SELECT 1 FROM unnest(t.tags) AS g(v) WHERE g.v ILIKE ?)", query.Contains(tag)))
}

// GetBySlug returns a post and counts the view. Unpublished posts are
// reported missing to everyone but Admin.
func (s *Service) GetBySlug(ctx context.Context, slug string, caller query.Caller) (domain.Post, error) {
	p, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return domain.Post{}, err
	}
	now := s.now()
	if !caller.HasRole(access.RoleAdmin) && !p.Visible(now) {
		return domain.Post{}, apperr.NotFound(msgPostNotFound)
	}

	detached := context.WithoutCancel(ctx)
	s.spawn(func() {
		ctx, cancel := context.WithTimeout(detached, viewTimeout)
		defer cancel()
		if err := s.repo.IncrementViews(ctx, p.ID); err != nil {
			s.log.Warn("blog view increment failed", "id", p.ID, "error", err)
		}
	})

	return s.present([]domain.Post{p}, caller)[0], nil
}

// Related returns published posts sharing the category or a tag.
func (s *Service) Related(ctx context.Context, id uuid.UUID, limit int) ([]domain.Post, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.collect(ctx, desc.Build(desc.Fixed("-publishedDate", limit), httpkit.Anonymous(),
		query.Cond("t.id <> ?", id),
		query.Cond("(t.category = ? OR t.tags && ?)", current.Category, current.Tags)))
}

// Like counts a like.
func (s *Service) Like(ctx context.Context, id uuid.UUID) (transport.LikeResponse, error) {
	likes, err := s.repo.Like(ctx, id)
	if err != nil {
		return transport.LikeResponse{}, err
	}
	return transport.LikeResponse{Likes: likes}, nil
}

// AddComment queues an unapproved comment.
func (s *Service) AddComment(ctx context.Context, id uuid.UUID, req transport.CommentRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := s.val.Check(req); err != nil {
		return err
	}
	c := domain.Comment{Name: req.Name, Email: req.Email, Comment: strings.TrimSpace(req.Comment), CreatedAt: s.now()}
	if err := s.repo.AddComment(ctx, id, c); err != nil {
		return err
	}
	s.log.Info("blog comment submitted", "id", id)
	return nil
}

// Create validates and stores a new post.
func (s *Service) Create(ctx context.Context, body []byte) (domain.Post, error) {
	var fields domain.Fields
	if err := resource.Merge(&fields, body); err != nil {
		return domain.Post{}, err
	}
	fields.Normalize(s.now())
	if err := s.val.Check(fields); err != nil {
		return domain.Post{}, err
	}

	p, err := s.repo.Create(ctx, fields)
	if err != nil {
		return domain.Post{}, err
	}
	p.Derive(s.now())
	s.log.Info("blog post created", "id", p.ID, "slug", p.Slug)
	return p, nil
}

// Update merges the patch into the stored post and revalidates it.
func (s *Service) Update(ctx context.Context, id uuid.UUID, patch []byte) (domain.Post, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Post{}, err
	}
	fields := existing.Fields
	if err := resource.Merge(&fields, patch); err != nil {
		return domain.Post{}, err
	}
	fields.Normalize(s.now())
	if err := s.val.Check(fields); err != nil {
		return domain.Post{}, err
	}

	p, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		return domain.Post{}, err
	}
	p.Derive(s.now())
	s.log.Info("blog post updated", "id", id)
	return p, nil
}

// Delete removes a post.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("blog post deleted", "id", id)
	return nil
}

// Analytics reports publishing and engagement figures.
func (s *Service) Analytics(ctx context.Context) (transport.AnalyticsResponse, error) {
	counts, err := s.repo.Totals(ctx, "", statusCounts...)
	if err != nil {
		return transport.AnalyticsResponse{}, err
	}
	engagement, err := s.repo.Totals(ctx, published, engagementMeasures...)
	if err != nil {
		return transport.AnalyticsResponse{}, err
	}
	buckets, err := s.repo.Aggregate(ctx, categorySpec, trendSpec, tagsSpec)
	if err != nil {
		return transport.AnalyticsResponse{}, err
	}
	authors, err := s.repo.AuthorProductivity(ctx)
	if err != nil {
		return transport.AnalyticsResponse{}, err
	}

	return transport.AnalyticsResponse{
		Total:                int(counts["total"]),
		Published:            int(counts["published"]),
		Drafts:               int(counts["drafts"]),
		CategoryDistribution: buckets[categorySpec.Name],
		AuthorProductivity:   authors,
		MonthlyTrend:         buckets[trendSpec.Name],
		PopularTags:          buckets[tagsSpec.Name],
		Engagement: transport.Engagement{
			TotalPosts:    int(engagement["total"]),
			TotalViews:    int(engagement["totalViews"]),
			TotalLikes:    int(engagement["totalLikes"]),
			TotalComments: int(engagement["totalComments"]),
			AvgViews:      engagement["avgViews"],
			AvgLikes:      engagement["avgLikes"],
			AvgReadTime:   engagement["avgReadTime"],
		},
	}, nil
}

// Match returns up to limit published posts matching term and the optional
// filters, for the cross-entity search.
func (s *Service) Match(ctx context.Context, term string, filters url.Values, limit int) ([]domain.Post, error) {
	req, err := desc.Parse(filters)
	if err != nil {
		return nil, err
	}
	req.Page, req.Limit = query.DefaultPage, limit
	pattern := query.Contains(term)
	return s.collect(ctx, desc.Build(req, httpkit.Anonymous(), query.Cond(
		"(t.title ILIKE ? OR t.excerpt ILIKE ? OR t.content ILIKE ? OR array_to_string(t.tags, ' ') ILIKE ?)",
		pattern, pattern, pattern, pattern)))
}

// Categories lists the distinct categories of published posts.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	spec := analytics.Spec{Name: "categories", Key: "t.category", Where: repository.Visible, Order: analytics.ByKeyAsc}
	buckets, err := s.repo.Aggregate(ctx, spec)
	if err != nil {
		return nil, err
	}
	return analytics.Keys(buckets[spec.Name]), nil
}
