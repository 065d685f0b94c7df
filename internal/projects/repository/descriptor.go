package repository

import "portfolio_backend/internal/query"

// Descriptor declares the public list query surface of projects. teamMember
// and service filter on the membership arrays.
var Descriptor = query.MustCompile(query.Descriptor{
	Entity: "projects",
	Fields: []query.Field{
		{Name: "id", Column: "t.id", Type: query.UUID, Filter: true},
		{Name: "title", Column: "t.title", Type: query.Text, Filter: true, Sort: true},
		{Name: "shortDescription", Column: "t.short_description", Type: query.Text},
		{Name: "fullDescription", Column: "t.full_description", Type: query.Text},
		{Name: "featured", Column: "t.featured", Type: query.Bool, Filter: true, Sort: true},
		{Name: "category", Column: "t.category", Type: query.Text, Filter: true, Sort: true},
		{Name: "tags", Column: "t.tags", Type: query.TextArray, Filter: true},
		{Name: "thumbnail", Column: "t.thumbnail", Type: query.Text},
		{Name: "images", Column: "t.images", Type: query.TextArray},
		{Name: "videos", Column: "t.videos", Type: query.TextArray},
		{Name: "liveLink", Column: "t.live_link", Type: query.Text},
		{Name: "caseStudyLink", Column: "t.case_study_link", Type: query.Text},
		{Name: "startDate", Column: "t.start_date", Type: query.Time, Filter: true, Sort: true},
		{Name: "completionDate", Column: "t.completion_date", Type: query.Time, Filter: true, Sort: true},
		{Name: "estimatedCompletionDate", Column: "t.estimated_completion_date", Type: query.Time, Filter: true, Sort: true},
		{Name: "client", Column: "t.client_id", Type: query.UUID, Filter: true},
		{Name: "teamMembers", Column: "t.team_member_ids", Type: query.UUIDArray, Filter: true},
		{Name: "servicesUsed", Column: "t.service_ids", Type: query.UUIDArray, Filter: true},
		{Name: "location", Column: "t.location", Type: query.Text},
		{Name: "testimonials", Column: "t.testimonials", Type: query.Text},
		{Name: "budget", Column: "t.budget", Type: query.Text, Filter: true},
		{Name: "status", Column: "t.status", Type: query.Text, Filter: true, Sort: true},
		{Name: "priority", Column: "t.priority", Type: query.Text, Filter: true, Sort: true},
		{Name: "technologies", Column: "t.technologies", Type: query.TextArray, Filter: true},
		{Name: "challenges", Column: "t.challenges", Type: query.Text},
		{Name: "results", Column: "t.results", Type: query.Text},
		{Name: "createdAt", Column: "t.created_at", Type: query.Time, Filter: true, Sort: true},
		{Name: "updatedAt", Column: "t.updated_at", Type: query.Time, Filter: true, Sort: true},
	},
	Aliases: map[string]string{
		"teamMember": "teamMembers",
		"service":    "servicesUsed",
		"tag":        "tags",
		"technology": "technologies",
	},
	TextVector: "t.search_vector",
	Outputs:    []string{"durationDays", "progressPercentage", "teamMemberCount"},
})
