package repository

import "portfolio_backend/internal/query"

// Descriptor declares the list query surface of teams.
var Descriptor = query.MustCompile(query.Descriptor{
	Entity: "teams",
	Fields: []query.Field{
		{Name: "id", Column: "t.id", Type: query.UUID, Filter: true},
		{Name: "teamName", Column: "t.team_name", Type: query.Text, Filter: true, Sort: true},
		{Name: "description", Column: "t.description", Type: query.Text},
		{Name: "members", Column: "t.member_ids", Type: query.UUIDArray, Filter: true},
		{Name: "relatedProjects", Column: "t.related_project_ids", Type: query.UUIDArray, Filter: true},
		{Name: "tags", Column: "t.tags", Type: query.TextArray, Filter: true},
		{Name: "teamLead", Column: "t.team_lead_id", Type: query.UUID, Filter: true},
		{Name: "specialties", Column: "t.specialties", Type: query.TextArray, Filter: true},
		{Name: "isActive", Column: "t.is_active", Type: query.Bool, Filter: true, Sort: true},
		{Name: "createdAt", Column: "t.created_at", Type: query.Time, Filter: true, Sort: true},
		{Name: "updatedAt", Column: "t.updated_at", Type: query.Time, Filter: true, Sort: true},
	},
	Aliases: map[string]string{
		"member":         "members",
		"tag":            "tags",
		"specialty":      "specialties",
		"relatedProject": "relatedProjects",
	},
	SearchColumns: []string{"t.team_name", "t.description", "array_to_string(t.tags, ' ')"},
	Outputs:       []string{"memberCount", "projectCount"},
})
