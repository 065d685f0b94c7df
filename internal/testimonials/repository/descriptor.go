package repository

import (
	"portfolio_backend/internal/access"
	"portfolio_backend/internal/query"
)

// Approved is the predicate of testimonials shown publicly.
const Approved = "t.approved = true"

// Descriptor declares the list query surface of testimonials. Callers other
// than Admin only see approved testimonials.
var Descriptor = query.MustCompile(query.Descriptor{
	Entity: "testimonials",
	Fields: []query.Field{
		{Name: "id", Column: "t.id", Type: query.UUID, Filter: true},
		{Name: "clientName", Column: "t.client_name", Type: query.Text, Filter: true, Sort: true},
		{Name: "clientCompany", Column: "t.client_company", Type: query.Text, Filter: true, Sort: true},
		{Name: "clientDesignation", Column: "t.client_designation", Type: query.Text},
		{Name: "clientImage", Column: "t.client_image", Type: query.Text},
		{Name: "clientEmail", Column: "t.client_email", Type: query.Text},
		{Name: "quote", Column: "t.quote", Type: query.Text},
		{Name: "rating", Column: "t.rating", Type: query.Int, Filter: true, Sort: true},
		{Name: "featured", Column: "t.featured", Type: query.Bool, Filter: true, Sort: true},
		{Name: "approved", Column: "t.approved", Type: query.Bool, Filter: true, Sort: true},
		{Name: "relatedProject", Column: "t.related_project_id", Type: query.UUID, Filter: true},
		{Name: "client", Column: "t.client_id", Type: query.UUID, Filter: true},
		{Name: "serviceCategory", Column: "t.service_category", Type: query.Text, Filter: true, Sort: true},
		{Name: "location", Column: "t.location", Type: query.Text},
		{Name: "source", Column: "t.source", Type: query.Text, Filter: true, Sort: true},
		{Name: "dateGiven", Column: "t.date_given", Type: query.Time, Filter: true, Sort: true},
		{Name: "verified", Column: "t.verified", Type: query.Bool, Filter: true, Sort: true},
		{Name: "tags", Column: "t.tags", Type: query.TextArray, Filter: true},
		{Name: "createdAt", Column: "t.created_at", Type: query.Time, Filter: true, Sort: true},
		{Name: "updatedAt", Column: "t.updated_at", Type: query.Time, Filter: true, Sort: true},
	},
	Aliases:     map[string]string{"tag": "tags"},
	TextVector:  "t.search_vector",
	DefaultSort: "-dateGiven,-createdAt",
	Outputs:     []string{"displayName", "stars", "shortQuote"},
	Visibility: func(c query.Caller) []query.Condition {
		if c.HasRole(access.RoleAdmin) {
			return nil
		}
		return []query.Condition{query.Cond(Approved)}
	},
})
