package transport

import "portfolio_backend/internal/analytics"

// AnalyticsResponse is the client base breakdown.
type AnalyticsResponse struct {
	Total                  int                `json:"total"`
	Active                 int                `json:"active"`
	IndustryDistribution   []analytics.Bucket `json:"industryDistribution"`
	SizeDistribution       []analytics.Bucket `json:"sizeDistribution"`
	StatusDistribution     []analytics.Bucket `json:"statusDistribution"`
	TypeDistribution       []analytics.Bucket `json:"typeDistribution"`
	GeographicDistribution []analytics.Bucket `json:"geographicDistribution"`
	AcquisitionTrend       []analytics.Bucket `json:"acquisitionTrend"`
}

// RetentionResponse reports repeat business.
type RetentionResponse struct {
	TotalClients           int     `json:"totalClients"`
	RetainedClients        int     `json:"retainedClients"`
	RetentionRate          float64 `json:"retentionRate"`
	AvgPartnershipDuration float64 `json:"avgPartnershipDuration"`
	AvgProjectsPerClient   float64 `json:"avgProjectsPerClient"`
}
