package transport

import "portfolio_backend/internal/analytics"

// Satisfaction summarizes the approved ratings.
type Satisfaction struct {
	TotalTestimonials int         `json:"totalTestimonials"`
	AverageRating     float64     `json:"averageRating"`
	SatisfactionRate  float64     `json:"satisfactionRate"`
	RatingBreakdown   map[int]int `json:"ratingBreakdown"`
}

// AnalyticsResponse is the testimonial breakdown.
type AnalyticsResponse struct {
	Total                int                `json:"total"`
	Approved             int                `json:"approved"`
	Pending              int                `json:"pending"`
	Featured             int                `json:"featured"`
	RatingDistribution   []analytics.Bucket `json:"ratingDistribution"`
	CategoryDistribution []analytics.Bucket `json:"categoryDistribution"`
	SourceDistribution   []analytics.Bucket `json:"sourceDistribution"`
	MonthlyTrend         []analytics.Bucket `json:"monthlyTrend"`
	Satisfaction         Satisfaction       `json:"satisfaction"`
}
