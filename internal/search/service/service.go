// Package service fans a text query out to the searchable entities and
// merges the hits into one envelope.
package service

import (
	"context"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"sync"

	blogdomain "portfolio_backend/internal/blog/domain"
	projectdomain "portfolio_backend/internal/projects/domain"
	"portfolio_backend/internal/search/transport"
	servicedomain "portfolio_backend/internal/services/domain"
	memberdomain "portfolio_backend/internal/teammembers/domain"
	testimonialdomain "portfolio_backend/internal/testimonials/domain"
	"portfolio_backend/platform/apperr"
	"portfolio_backend/platform/logger"
	"portfolio_backend/platform/metrics"

	"golang.org/x/sync/errgroup"
)

const (
	minQueryLength = 2
	DefaultLimit   = 50
	SmartLimit     = 20
	MaxLimit       = 100
	parallelism    = 5
	topTerms       = 20

	maxSuggestions = 10
	maxSkillHints  = 5
	maxSkills      = 50

	msgQueryTooShort = "Search query must be at least 2 characters long"
	msgEntityFailed  = "Search failed"
)

// DefaultEntities are searched when the caller names none.
var DefaultEntities = []string{"services", "projects", "team-members", "blog", "testimonials"}

// entityFilters lists the filters each entity understands.
var entityFilters = map[string][]string{
	"services":     {"category", "featured"},
	"projects":     {"category", "featured", "status"},
	"team-members": {"featured"},
	"blog":         {"category", "featured"},
	"testimonials": {"featured"},
}

type ServiceSource interface {
	Match(ctx context.Context, term string, filters url.Values, limit int) ([]servicedomain.Service, error)
	Categories(ctx context.Context) ([]string, error)
}

type ProjectSource interface {
	Match(ctx context.Context, term string, filters url.Values, limit int) ([]projectdomain.Project, error)
	Categories(ctx context.Context) ([]string, error)
}

type MemberSource interface {
	Match(ctx context.Context, term string, filters url.Values, limit int) ([]memberdomain.TeamMember, error)
	SkillsSummary(ctx context.Context) ([]memberdomain.SkillSummary, error)
}

type BlogSource interface {
	Match(ctx context.Context, term string, filters url.Values, limit int) ([]blogdomain.Post, error)
	Categories(ctx context.Context) ([]string, error)
}

type TestimonialSource interface {
	Match(ctx context.Context, term string, filters url.Values, limit int) ([]testimonialdomain.Testimonial, error)
}

// Sources are the entity services searched.
type Sources struct {
	Services     ServiceSource
	Projects     ProjectSource
	Members      MemberSource
	Blog         BlogSource
	Testimonials TestimonialSource
}

// Recorder keeps the search term statistics.
type Recorder interface {
	Record(ctx context.Context, term string) error
	Top(ctx context.Context, n int) ([]transport.TermCount, error)
	Today(ctx context.Context) (int, error)
}

// Service runs cross-entity searches. A nil recorder disables search
// analytics.
type Service struct {
	src   Sources
	terms Recorder
	log   *logger.Logger
}

// New creates a search service.
func New(src Sources, terms Recorder, log *logger.Logger) *Service {
	return &Service{src: src, terms: terms, log: log}
}

// hits holds the typed matches of one search; each entity writes only its
// own field.
type hits struct {
	services     []servicedomain.Service
	projects     []projectdomain.Project
	members      []memberdomain.TeamMember
	posts        []blogdomain.Post
	testimonials []testimonialdomain.Testimonial
}

func (s *Service) match(ctx context.Context, h *hits, entity, term string, filters url.Values, limit int) (err error) {
	switch entity {
	case "services":
		h.services, err = s.src.Services.Match(ctx, term, filters, limit)
	case "projects":
		h.projects, err = s.src.Projects.Match(ctx, term, filters, limit)
	case "team-members":
		h.members, err = s.src.Members.Match(ctx, term, filters, limit)
	case "blog":
		h.posts, err = s.src.Blog.Match(ctx, term, filters, limit)
	case "testimonials":
		h.testimonials, err = s.src.Testimonials.Match(ctx, term, filters, limit)
	}
	return err
}

func (h *hits) collect(entity string) (any, int) {
	switch entity {
	case "services":
		return nonNil(h.services), len(h.services)
	case "projects":
		return nonNil(h.projects), len(h.projects)
	case "team-members":
		return nonNil(h.members), len(h.members)
	case "blog":
		return nonNil(h.posts), len(h.posts)
	default:
		return nonNil(h.testimonials), len(h.testimonials)
	}
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

// GlobalSearch searches every requested entity concurrently. A failing
// entity is reported under errors and returns no results; only context
// cancellation fails the call.
func (s *Service) GlobalSearch(ctx context.Context, q string, opts transport.Options) (transport.Envelope, error) {
	env, _, err := s.search(ctx, q, opts, "global")
	return env, err
}

func (s *Service) search(ctx context.Context, q string, opts transport.Options, mode string) (transport.Envelope, *hits, error) {
	term := strings.TrimSpace(q)
	if len([]rune(term)) < minQueryLength {
		return transport.Envelope{}, nil, apperr.Validation(msgQueryTooShort)
	}
	entities, err := resolveEntities(opts.Entities)
	if err != nil {
		return transport.Envelope{}, nil, err
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	limit = min(limit, MaxLimit)
	per := max(limit/len(entities), 1)

	var (
		h  hits
		mu sync.Mutex
	)
	errs := map[string]string{}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)
	for _, entity := range entities {
		filters := scopedFilters(entity, opts.Filters)
		g.Go(func() error {
			err := s.match(gctx, &h, entity, term, filters, per)
			if err == nil {
				return nil
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			s.log.Warn("search entity failed", "entity", entity, "error", err)
			metrics.SearchEntityErrors.WithLabelValues(entity).Inc()

			msg := msgEntityFailed
			if apperr.GetKind(err) == apperr.KindValidation {
				msg = err.Error()
			}
			mu.Lock()
			errs[entity] = msg
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return transport.Envelope{}, nil, err
	}

	env := transport.Envelope{Query: term, Results: make(map[string]any, len(entities))}
	for _, entity := range entities {
		if _, failed := errs[entity]; failed {
			env.Results[entity] = []any{}
			continue
		}
		items, n := h.collect(entity)
		env.Results[entity] = items
		env.TotalResults += n
	}
	if len(errs) > 0 {
		env.Errors = errs
	}

	metrics.SearchQueries.WithLabelValues(mode).Inc()
	s.record(ctx, term)
	return env, &h, nil
}

func resolveEntities(names []string) ([]string, error) {
	if len(names) == 0 {
		return DefaultEntities, nil
	}
	out := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" || slices.Contains(out, name) {
			continue
		}
		if _, ok := entityFilters[name]; !ok {
			return nil, apperr.Validation(fmt.Sprintf("Unknown search entity %q", name)).
				WithDetails(DefaultEntities)
		}
		out = append(out, name)
	}
	if len(out) == 0 {
		return DefaultEntities, nil
	}
	return out, nil
}

func scopedFilters(entity string, filters map[string]string) url.Values {
	out := url.Values{}
	for _, key := range entityFilters[entity] {
		if v := strings.TrimSpace(filters[key]); v != "" {
			out.Set(key, v)
		}
	}
	return out
}

func (s *Service) record(ctx context.Context, term string) {
	if s.terms == nil {
		return
	}
	if err := s.terms.Record(ctx, strings.ToLower(term)); err != nil {
		s.log.Warn("search term not recorded", "error", err)
	}
}

// SmartSearch runs a global search over the default entities and derives
// suggestions from the hits.
func (s *Service) SmartSearch(ctx context.Context, q string, limit int) (transport.SmartEnvelope, error) {
	if limit <= 0 {
		limit = SmartLimit
	}
	env, h, err := s.search(ctx, q, transport.Options{Limit: limit}, "smart")
	if err != nil {
		return transport.SmartEnvelope{}, err
	}
	return transport.SmartEnvelope{Envelope: env, Suggestions: suggest(h)}, nil
}

func suggest(h *hits) []transport.Suggestion {
	out := []transport.Suggestion{}
	seen := map[string]bool{}
	add := func(text, kind, category string) bool {
		if text == "" || seen[text] {
			return false
		}
		seen[text] = true
		out = append(out, transport.Suggestion{Text: text, Type: kind, Category: category})
		return true
	}

	for _, svc := range h.services {
		add(svc.Name, "service", svc.Category)
	}
	skills := 0
	for _, m := range h.members {
		for _, skill := range m.Skills {
			if skills == maxSkillHints {
				break
			}
			if add(skill, "skill", "Team Skills") {
				skills++
			}
		}
	}
	for _, p := range h.projects {
		add(p.Category, "project-category", "Project Categories")
	}
	for _, p := range h.posts {
		add(p.Category, "blog-category", "Blog Topics")
	}

	if len(out) > maxSuggestions {
		out = out[:maxSuggestions]
	}
	return out
}

// Autocomplete lists the distinct categories and skills in use.
func (s *Service) Autocomplete(ctx context.Context) (transport.Autocomplete, error) {
	var out transport.Autocomplete
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		out.ServiceCategories, err = s.src.Services.Categories(gctx)
		return err
	})
	g.Go(func() (err error) {
		out.ProjectCategories, err = s.src.Projects.Categories(gctx)
		return err
	})
	g.Go(func() (err error) {
		out.BlogCategories, err = s.src.Blog.Categories(gctx)
		return err
	})
	g.Go(func() error {
		summary, err := s.src.Members.SkillsSummary(gctx)
		if err != nil {
			return err
		}
		skills := make([]string, 0, min(len(summary), maxSkills))
		for _, row := range summary {
			if len(skills) == maxSkills {
				break
			}
			if !slices.Contains(skills, row.Skill) {
				skills = append(skills, row.Skill)
			}
		}
		out.Skills = skills
		return nil
	})
	if err := g.Wait(); err != nil {
		return transport.Autocomplete{}, fmt.Errorf("autocomplete: %w", err)
	}

	out.ServiceCategories = nonNil(out.ServiceCategories)
	out.ProjectCategories = nonNil(out.ProjectCategories)
	out.BlogCategories = nonNil(out.BlogCategories)
	return out, nil
}

// Analytics reports the most searched terms and today's query count.
func (s *Service) Analytics(ctx context.Context) (transport.AnalyticsResponse, error) {
	res := transport.AnalyticsResponse{TopTerms: []transport.TermCount{}}
	if s.terms == nil {
		return res, nil
	}
	top, err := s.terms.Top(ctx, topTerms)
	if err != nil {
		return transport.AnalyticsResponse{}, err
	}
	today, err := s.terms.Today(ctx)
	if err != nil {
		return transport.AnalyticsResponse{}, err
	}
	res.TopTerms = append(res.TopTerms, top...)
	res.TodayTotal = today
	return res, nil
}
