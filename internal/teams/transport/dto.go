package transport

import "portfolio_backend/internal/analytics"

// StatsResponse counts teams by activity.
type StatsResponse struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Inactive int `json:"inactive"`
}

// AnalyticsResponse is the team size, tag and activity breakdown.
type AnalyticsResponse struct {
	Total              int                `json:"total"`
	Active             int                `json:"active"`
	Inactive           int                `json:"inactive"`
	SizeDistribution   []analytics.Bucket `json:"sizeDistribution"`
	TagsDistribution   []analytics.Bucket `json:"tagsDistribution"`
	StatusDistribution []analytics.Bucket `json:"statusDistribution"`
}
