package transport

import "portfolio_backend/internal/analytics"

// StatsResponse is the featured/total summary shared by the stats routes.
type StatsResponse struct {
	Total    int `json:"total"`
	Featured int `json:"featured"`
}

// AnalyticsResponse is the service category breakdown.
type AnalyticsResponse struct {
	Total      int                `json:"total"`
	Featured   int                `json:"featured"`
	ByCategory []analytics.Bucket `json:"byCategory"`
}
