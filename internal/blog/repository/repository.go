package repository

import (
	"context"
	"fmt"

	"portfolio_backend/internal/analytics"
	"portfolio_backend/internal/blog/domain"
	"portfolio_backend/internal/query"
	"portfolio_backend/internal/shared/refs"
	"portfolio_backend/platform/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	table           = "blog_posts"
	postNotFoundMsg = "Blog post not found"

	baseColumns = `t.id, t.title, t.slug, t.author_id, t.content, t.excerpt, t.thumbnail, t.images, t.tags, t.category,
		t.read_time, t.published_date, t.featured, t.status, t.seo_meta, t.views, t.likes, t.comments,
		t.related_post_ids, t.created_at, t.updated_at`

	countFrom = "SELECT COUNT(*) FROM blog_posts t"

	authorProductivityQuery = `
		SELECT t.author_id, m.first_name || ' ' || m.last_name AS author_name, COUNT(*)::int AS post_count,
			COALESCE(SUM(t.views), 0)::int AS total_views, ROUND(AVG(t.views)::numeric, 2)::float8 AS avg_views
		FROM blog_posts t
		JOIN team_members m ON m.id = t.author_id
		WHERE t.status = 'Published'
		GROUP BY t.author_id, m.first_name, m.last_name
		ORDER BY post_count DESC, t.author_id`
)

var selectFrom = "SELECT " + baseColumns + ", " +
	refs.MemberOne("t.author_id") + " AS author, " +
	refs.PostsAny("t.related_post_ids") + " AS related_posts FROM blog_posts t"

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	db     db.Querier
	runner *analytics.Runner
}

// New creates a new blog repository.
func New(q db.Querier) *Repo {
	return &Repo{db: q, runner: analytics.NewRunner(q)}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// List returns one page of posts and the total matching count.
func (r *Repo) List(ctx context.Context, plan query.Plan) ([]domain.Post, int, error) {
	items, total, err := query.Fetch(ctx, r.db, plan, selectFrom, countFrom, pgx.RowToStructByName[domain.Post])
	if err != nil {
		return nil, 0, db.TranslateError("blog.list", postNotFoundMsg, err)
	}
	return items, total, nil
}

// Collect returns the posts of a plan without counting.
func (r *Repo) Collect(ctx context.Context, plan query.Plan) ([]domain.Post, error) {
	items, err := query.Collect(ctx, r.db, plan, selectFrom, pgx.RowToStructByName[domain.Post])
	if err != nil {
		return nil, db.TranslateError("blog.collect", postNotFoundMsg, err)
	}
	return items, nil
}

func (r *Repo) getOne(ctx context.Context, op, where string, arg any) (domain.Post, error) {
	rows, err := r.db.Query(ctx, selectFrom+" WHERE "+where, arg)
	if err != nil {
		return domain.Post{}, db.TranslateError(op, postNotFoundMsg, err)
	}
	p, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[domain.Post])
	if err != nil {
		return domain.Post{}, db.TranslateError(op, postNotFoundMsg, err)
	}
	return p, nil
}

// GetByID returns a post with its author and related posts.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (domain.Post, error) {
	return r.getOne(ctx, "blog.get", "t.id = $1", id)
}

// GetBySlug returns the post with the given slug.
func (r *Repo) GetBySlug(ctx context.Context, slug string) (domain.Post, error) {
	return r.getOne(ctx, "blog.get_by_slug", "t.slug = $1", slug)
}

// Create inserts a post.
func (r *Repo) Create(ctx context.Context, f domain.Fields) (domain.Post, error) {
	var id uuid.UUID
	err := r.db.QueryRow(ctx, `
		INSERT INTO blog_posts (title, slug, author_id, content, excerpt, thumbnail, images, tags, category, read_time,
			published_date, featured, status, seo_meta, related_post_ids)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id`,
		f.Title, f.Slug, f.AuthorID, f.Content, f.Excerpt, f.Thumbnail, f.Images, f.Tags, f.Category, f.ReadTimeMinutes,
		f.PublishedDate, f.Featured, f.Status, f.SeoMeta, f.RelatedPostIDs,
	).Scan(&id)
	if err != nil {
		return domain.Post{}, db.TranslateError("blog.create", postNotFoundMsg, err)
	}
	return r.GetByID(ctx, id)
}

// Update overwrites every writable column of a post. Views, likes and
// comments are only changed through their own operations.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, f domain.Fields) (domain.Post, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE blog_posts SET title = $2, slug = $3, author_id = $4, content = $5, excerpt = $6, thumbnail = $7,
			images = $8, tags = $9, category = $10, read_time = $11, published_date = $12, featured = $13,
			status = $14, seo_meta = $15, related_post_ids = $16, updated_at = now()
		WHERE id = $1`,
		id, f.Title, f.Slug, f.AuthorID, f.Content, f.Excerpt, f.Thumbnail, f.Images, f.Tags, f.Category,
		f.ReadTimeMinutes, f.PublishedDate, f.Featured, f.Status, f.SeoMeta, f.RelatedPostIDs,
	)
	if err != nil {
		return domain.Post{}, db.TranslateError("blog.update", postNotFoundMsg, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.Post{}, db.TranslateError("blog.update", postNotFoundMsg, pgx.ErrNoRows)
	}
	return r.GetByID(ctx, id)
}

// Delete removes a post.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM blog_posts WHERE id = $1`, id)
	if err != nil {
		return db.TranslateError("blog.delete", postNotFoundMsg, err)
	}
	if tag.RowsAffected() == 0 {
		return db.TranslateError("blog.delete", postNotFoundMsg, pgx.ErrNoRows)
	}
	return nil
}

// IncrementViews adds one view.
func (r *Repo) IncrementViews(ctx context.Context, id uuid.UUID) error {
	if _, err := r.db.Exec(ctx, `UPDATE blog_posts SET views = views + 1 WHERE id = $1`, id); err != nil {
		return fmt.Errorf("blog views: %w", err)
	}
	return nil
}

// Like adds one like and returns the new total.
func (r *Repo) Like(ctx context.Context, id uuid.UUID) (int, error) {
	var likes int
	err := r.db.QueryRow(ctx, `UPDATE blog_posts SET likes = likes + 1 WHERE id = $1 RETURNING likes`, id).Scan(&likes)
	if err != nil {
		return 0, db.TranslateError("blog.like", postNotFoundMsg, err)
	}
	return likes, nil
}

// AddComment appends a comment.
func (r *Repo) AddComment(ctx context.Context, id uuid.UUID, c domain.Comment) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE blog_posts SET comments = comments || jsonb_build_array($2::jsonb), updated_at = now() WHERE id = $1`, id, c)
	if err != nil {
		return db.TranslateError("blog.comment", postNotFoundMsg, err)
	}
	if tag.RowsAffected() == 0 {
		return db.TranslateError("blog.comment", postNotFoundMsg, pgx.ErrNoRows)
	}
	return nil
}

// Aggregate runs grouped counts over posts.
func (r *Repo) Aggregate(ctx context.Context, specs ...analytics.Spec) (map[string][]analytics.Bucket, error) {
	out, err := r.runner.Run(ctx, table, specs...)
	if err != nil {
		return nil, fmt.Errorf("blog analytics: %w", err)
	}
	return out, nil
}

// Totals computes aggregates over the posts matching where.
func (r *Repo) Totals(ctx context.Context, where string, measures ...analytics.Measure) (map[string]float64, error) {
	out, err := r.runner.Totals(ctx, table, where, measures...)
	if err != nil {
		return nil, fmt.Errorf("blog totals: %w", err)
	}
	return out, nil
}

// AuthorProductivity summarizes published posts per author.
func (r *Repo) AuthorProductivity(ctx context.Context) ([]domain.AuthorStats, error) {
	rows, err := r.db.Query(ctx, authorProductivityQuery)
	if err != nil {
		return nil, fmt.Errorf("blog authors: %w", err)
	}
	items, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.AuthorStats])
	if err != nil {
		return nil, fmt.Errorf("blog authors: %w", err)
	}
	return items, nil
}
