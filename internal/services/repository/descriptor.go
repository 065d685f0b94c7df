package repository

import "portfolio_backend/internal/query"

// Descriptor declares the public list query surface of services.
var Descriptor = query.MustCompile(query.Descriptor{
	Entity: "services",
	Fields: []query.Field{
		{Name: "id", Column: "t.id", Type: query.UUID, Filter: true},
		{Name: "name", Column: "t.name", Type: query.Text, Filter: true, Sort: true},
		{Name: "description", Column: "t.description", Type: query.Text},
		{Name: "shortDescription", Column: "t.short_description", Type: query.Text},
		{Name: "icon", Column: "t.icon", Type: query.Text},
		{Name: "featured", Column: "t.featured", Type: query.Bool, Filter: true, Sort: true},
		{Name: "category", Column: "t.category", Type: query.Text, Filter: true, Sort: true},
		{Name: "tags", Column: "t.tags", Type: query.TextArray, Filter: true},
		{Name: "images", Column: "t.images", Type: query.TextArray},
		{Name: "videos", Column: "t.videos", Type: query.TextArray},
		{Name: "benefits", Column: "t.benefits", Type: query.Text},
		{Name: "process", Column: "t.process", Type: query.Text},
		{Name: "priceRange", Column: "t.price_range", Type: query.Text, Filter: true, Sort: true},
		{Name: "relatedProjects", Column: "t.related_project_ids", Type: query.UUIDArray, Filter: true},
		{Name: "createdAt", Column: "t.created_at", Type: query.Time, Filter: true, Sort: true},
		{Name: "updatedAt", Column: "t.updated_at", Type: query.Time, Filter: true, Sort: true},
	},
	Aliases:    map[string]string{"tag": "tags", "relatedProject": "relatedProjects"},
	TextVector: "t.search_vector",
})
