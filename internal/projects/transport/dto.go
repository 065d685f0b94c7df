package transport

import (
	"portfolio_backend/internal/analytics"
	"portfolio_backend/internal/projects/domain"
)

// StatsResponse is the featured/total summary.
type StatsResponse struct {
	Total    int `json:"total"`
	Featured int `json:"featured"`
}

// AnalyticsResponse is the project portfolio breakdown.
type AnalyticsResponse struct {
	Total                int                      `json:"total"`
	Completed            int                      `json:"completed"`
	Active               int                      `json:"active"`
	CompletionRate       float64                  `json:"completionRate"`
	StatusDistribution   []analytics.Bucket       `json:"statusDistribution"`
	CategoryDistribution []analytics.Bucket       `json:"categoryDistribution"`
	MonthlyTrend         []analytics.Bucket       `json:"monthlyTrend"`
	TeamPerformance      []domain.TeamPerformance `json:"teamPerformance"`
}

// TimelineRequest narrows the timeline to a year and optionally a month.
type TimelineRequest struct {
	Year  int `form:"year" validate:"omitempty,min=1900,max=3000"`
	Month int `form:"month" validate:"omitempty,min=1,max=12"`
}
