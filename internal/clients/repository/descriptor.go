package repository

import "portfolio_backend/internal/query"

// Descriptor declares the list query surface of clients. Search scans the
// name, industry, description, contact person and location.
var Descriptor = query.MustCompile(query.Descriptor{
	Entity: "clients",
	Fields: []query.Field{
		{Name: "id", Column: "t.id", Type: query.UUID, Filter: true},
		{Name: "name", Column: "t.name", Type: query.Text, Filter: true, Sort: true},
		{Name: "logo", Column: "t.logo", Type: query.Text},
		{Name: "industry", Column: "t.industry", Type: query.Text, Filter: true, Sort: true},
		{Name: "website", Column: "t.website", Type: query.Text},
		{Name: "description", Column: "t.description", Type: query.Text},
		{Name: "contactPerson", Column: "t.contact_person", Type: query.Text},
		{Name: "contactEmail", Column: "t.contact_email", Type: query.Text, Filter: true},
		{Name: "contactPhone", Column: "t.contact_phone", Type: query.Text},
		{Name: "projects", Column: "t.project_ids", Type: query.UUIDArray, Filter: true},
		{Name: "location", Column: "t.location", Type: query.Text},
		{Name: "companySize", Column: "t.company_size", Type: query.Text, Filter: true, Sort: true},
		{Name: "partnership", Column: "t.partnership", Type: query.Text},
		{Name: "partnershipStatus", Column: "t.partnership->>'status'", Type: query.Text, Filter: true, Sort: true},
		{Name: "partnershipType", Column: "t.partnership->>'type'", Type: query.Text, Filter: true},
		{Name: "featured", Column: "t.featured", Type: query.Bool, Filter: true, Sort: true},
		{Name: "createdAt", Column: "t.created_at", Type: query.Time, Filter: true, Sort: true},
		{Name: "updatedAt", Column: "t.updated_at", Type: query.Time, Filter: true, Sort: true},
	},
	Aliases: map[string]string{
		"project":            "projects",
		"partnership.status": "partnershipStatus",
		"partnership.type":   "partnershipType",
	},
	SearchColumns: []string{
		"t.name",
		"t.industry",
		"t.description",
		"t.contact_person->>'name'",
		"t.location->>'city'",
		"t.location->>'country'",
	},
})
