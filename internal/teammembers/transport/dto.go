package transport

import "portfolio_backend/internal/analytics"

// StatsResponse is the featured/total summary.
type StatsResponse struct {
	Total    int `json:"total"`
	Featured int `json:"featured"`
}

// AnalyticsResponse is the team composition breakdown.
type AnalyticsResponse struct {
	Total                  int                `json:"total"`
	Featured               int                `json:"featured"`
	SkillsDistribution     []analytics.Bucket `json:"skillsDistribution"`
	PositionDistribution   []analytics.Bucket `json:"positionDistribution"`
	ExperienceDistribution []analytics.Bucket `json:"experienceDistribution"`
}
