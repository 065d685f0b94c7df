package repository

import "portfolio_backend/internal/query"

// Descriptor declares the list query surface of team members. Search scans
// names, position, skills and bio.
var Descriptor = query.MustCompile(query.Descriptor{
	Entity: "team-members",
	Fields: []query.Field{
		{Name: "id", Column: "t.id", Type: query.UUID, Filter: true},
		{Name: "firstName", Column: "t.first_name", Type: query.Text, Filter: true, Sort: true},
		{Name: "lastName", Column: "t.last_name", Type: query.Text, Filter: true, Sort: true},
		{Name: "position", Column: "t.position", Type: query.Text, Filter: true, Sort: true},
		{Name: "email", Column: "t.email", Type: query.Text, Filter: true},
		{Name: "phone", Column: "t.phone", Type: query.Text},
		{Name: "bio", Column: "t.bio", Type: query.Text},
		{Name: "profileImage", Column: "t.profile_image", Type: query.Text},
		{Name: "socialLinks", Column: "t.social_links", Type: query.Text},
		{Name: "skills", Column: "t.skills", Type: query.TextArray, Filter: true},
		{Name: "featured", Column: "t.featured", Type: query.Bool, Filter: true, Sort: true},
		{Name: "education", Column: "t.education", Type: query.Text},
		{Name: "experience", Column: "t.experience", Type: query.Text},
		{Name: "awards", Column: "t.awards", Type: query.Text},
		{Name: "currentTeam", Column: "t.current_team_id", Type: query.UUID, Filter: true},
		{Name: "relatedProjects", Column: "t.related_project_ids", Type: query.UUIDArray, Filter: true},
		{Name: "createdAt", Column: "t.created_at", Type: query.Time, Filter: true, Sort: true},
		{Name: "updatedAt", Column: "t.updated_at", Type: query.Time, Filter: true, Sort: true},
	},
	Aliases: map[string]string{
		"skill":          "skills",
		"team":           "currentTeam",
		"relatedProject": "relatedProjects",
	},
	SearchColumns: []string{
		"t.first_name",
		"t.last_name",
		"t.position",
		"array_to_string(t.skills, ' ')",
		"t.bio",
	},
	Outputs: []string{"fullName", "totalExperienceYears", "currentPosition"},
})
