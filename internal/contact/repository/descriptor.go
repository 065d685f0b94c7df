package repository

import "portfolio_backend/internal/query"

// Descriptor declares the list query surface of contact submissions.
var Descriptor = query.MustCompile(query.Descriptor{
	Entity: "contact",
	Fields: []query.Field{
		{Name: "id", Column: "t.id", Type: query.UUID, Filter: true},
		{Name: "name", Column: "t.name", Type: query.Text, Filter: true, Sort: true},
		{Name: "email", Column: "t.email", Type: query.Text, Filter: true, Sort: true},
		{Name: "phone", Column: "t.phone", Type: query.Text},
		{Name: "company", Column: "t.company", Type: query.Text, Filter: true, Sort: true},
		{Name: "subject", Column: "t.subject", Type: query.Text},
		{Name: "message", Column: "t.message", Type: query.Text},
		{Name: "inquiryType", Column: "t.inquiry_type", Type: query.Text, Filter: true, Sort: true},
		{Name: "interestedServices", Column: "t.interested_services", Type: query.TextArray, Filter: true},
		{Name: "budget", Column: "t.budget", Type: query.Text, Filter: true},
		{Name: "timeline", Column: "t.timeline", Type: query.Text, Filter: true},
		{Name: "status", Column: "t.status", Type: query.Text, Filter: true, Sort: true},
		{Name: "priority", Column: "t.priority", Type: query.Text, Filter: true, Sort: true},
		{Name: "source", Column: "t.source", Type: query.Text, Filter: true, Sort: true},
		{Name: "assignedTo", Column: "t.assigned_to", Type: query.UUID, Filter: true},
		{Name: "notes", Column: "t.notes", Type: query.Text},
		{Name: "followUpDate", Column: "t.follow_up_date", Type: query.Time, Filter: true, Sort: true},
		{Name: "responseDate", Column: "t.response_date", Type: query.Time, Filter: true, Sort: true},
		{Name: "conversionDate", Column: "t.conversion_date", Type: query.Time, Filter: true, Sort: true},
		{Name: "submittedAt", Column: "t.submitted_at", Type: query.Time, Filter: true, Sort: true},
		{Name: "tags", Column: "t.tags", Type: query.TextArray, Filter: true},
		{Name: "isSubscribedToNewsletter", Column: "t.is_subscribed_to_newsletter", Type: query.Bool, Filter: true},
		{Name: "ipAddress", Column: "t.ip_address", Type: query.Text},
		{Name: "userAgent", Column: "t.user_agent", Type: query.Text},
		{Name: "referrer", Column: "t.referrer", Type: query.Text},
		{Name: "createdAt", Column: "t.created_at", Type: query.Time, Filter: true, Sort: true},
		{Name: "updatedAt", Column: "t.updated_at", Type: query.Time, Filter: true, Sort: true},
	},
	Aliases:       map[string]string{"tag": "tags", "service": "interestedServices"},
	SearchColumns: []string{"t.name", "t.email", "t.company", "t.subject", "t.message"},
	DefaultSort:   "-submittedAt",
	Outputs:       []string{"responseTimeHours", "daysSinceSubmission", "isConverted", "isOverdue"},
})
