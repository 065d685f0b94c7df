package repository

import (
	"portfolio_backend/internal/access"
	"portfolio_backend/internal/query"
)

// Visible is the predicate of posts anonymous readers may see.
const Visible = "t.status = 'Published' AND t.published_date <= now()"

// Descriptor declares the list query surface of blog posts. Callers other
// than Admin only see published, past-dated posts.
var Descriptor = query.MustCompile(query.Descriptor{
	Entity: "blog",
	Fields: []query.Field{
		{Name: "id", Column: "t.id", Type: query.UUID, Filter: true},
		{Name: "title", Column: "t.title", Type: query.Text, Filter: true, Sort: true},
		{Name: "slug", Column: "t.slug", Type: query.Text, Filter: true},
		{Name: "author", Column: "t.author_id", Type: query.UUID, Filter: true},
		{Name: "content", Column: "t.content", Type: query.Text},
		{Name: "excerpt", Column: "t.excerpt", Type: query.Text},
		{Name: "thumbnail", Column: "t.thumbnail", Type: query.Text},
		{Name: "images", Column: "t.images", Type: query.TextArray},
		{Name: "tags", Column: "t.tags", Type: query.TextArray, Filter: true},
		{Name: "category", Column: "t.category", Type: query.Text, Filter: true, Sort: true},
		{Name: "readTimeMinutes", Column: "t.read_time", Type: query.Int, Filter: true, Sort: true},
		{Name: "publishedDate", Column: "t.published_date", Type: query.Time, Filter: true, Sort: true},
		{Name: "featured", Column: "t.featured", Type: query.Bool, Filter: true, Sort: true},
		{Name: "status", Column: "t.status", Type: query.Text, Filter: true, Sort: true},
		{Name: "seoMeta", Column: "t.seo_meta", Type: query.Text},
		{Name: "views", Column: "t.views", Type: query.Int, Filter: true, Sort: true},
		{Name: "likes", Column: "t.likes", Type: query.Int, Filter: true, Sort: true},
		{Name: "comments", Column: "t.comments", Type: query.Text},
		{Name: "relatedPosts", Column: "t.related_post_ids", Type: query.UUIDArray, Filter: true},
		{Name: "createdAt", Column: "t.created_at", Type: query.Time, Filter: true, Sort: true},
		{Name: "updatedAt", Column: "t.updated_at", Type: query.Time, Filter: true, Sort: true},
	},
	Aliases:     map[string]string{"tag": "tags", "relatedPost": "relatedPosts"},
	TextVector:  "t.search_vector",
	DefaultSort: "-publishedDate,-createdAt",
	Outputs:     []string{"isPublished", "commentCount"},
	Visibility: func(c query.Caller) []query.Condition {
		if c.HasRole(access.RoleAdmin) {
			return nil
		}
		return []query.Condition{query.Cond(Visible)}
	},
})
