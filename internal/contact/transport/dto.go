package transport

import (
	"encoding/json"
	"time"

	"portfolio_backend/internal/analytics"

	"github.com/google/uuid"
)

// SubmitResponse acknowledges a public submission.
type SubmitResponse struct {
	ID          uuid.UUID `json:"id"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// StatusRequest changes a submission's status.
type StatusRequest struct {
	Status string `json:"status" validate:"required,oneof=New Viewed 'In Progress' Responded 'Follow-up Required' Converted Archived Spam"`
}

// AssignRequest hands a submission to a team member.
type AssignRequest struct {
	AssignedTo uuid.UUID `json:"assignedTo" validate:"required"`
}

// NoteRequest appends an internal note.
type NoteRequest struct {
	Note string `json:"note" validate:"required,max=1000"`
}

// BulkRequest applies one set of updates to many submissions.
type BulkRequest struct {
	IDs     []uuid.UUID                `json:"ids"`
	Updates map[string]json.RawMessage `json:"updates"`
}

// ResponseMetrics summarizes answered submissions.
type ResponseMetrics struct {
	AvgResponseTimeHours float64 `json:"avgResponseTimeHours"`
	TotalResponded       int     `json:"totalResponded"`
}

// ConversionMetrics summarizes outcomes across all submissions.
type ConversionMetrics struct {
	TotalSubmissions int     `json:"totalSubmissions"`
	TotalConverted   int     `json:"totalConverted"`
	TotalResponded   int     `json:"totalResponded"`
	ConversionRate   float64 `json:"conversionRate"`
	ResponseRate     float64 `json:"responseRate"`
}

// AnalyticsResponse is the contact pipeline breakdown.
type AnalyticsResponse struct {
	Total                   int                `json:"total"`
	New                     int                `json:"new"`
	Overdue                 int                `json:"overdue"`
	StatusDistribution      []analytics.Bucket `json:"statusDistribution"`
	InquiryTypeDistribution []analytics.Bucket `json:"inquiryTypeDistribution"`
	SourceDistribution      []analytics.Bucket `json:"sourceDistribution"`
	MonthlyTrend            []analytics.Bucket `json:"monthlyTrend"`
	ResponseMetrics         ResponseMetrics    `json:"responseMetrics"`
	ConversionMetrics       ConversionMetrics  `json:"conversionMetrics"`
}
