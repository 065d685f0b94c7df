package transport

import (
	"portfolio_backend/internal/analytics"
	"portfolio_backend/internal/blog/domain"
)

// CommentRequest is the body of a reader comment.
type CommentRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Comment string `json:"comment" validate:"required,max=1000"`
}

// LikeResponse reports the new like total.
type LikeResponse struct {
	Likes int `json:"likes"`
}

// Engagement summarizes reader activity on published posts.
type Engagement struct {
	TotalPosts    int     `json:"totalPosts"`
	TotalViews    int     `json:"totalViews"`
	TotalLikes    int     `json:"totalLikes"`
	TotalComments int     `json:"totalComments"`
	AvgViews      float64 `json:"avgViews"`
	AvgLikes      float64 `json:"avgLikes"`
	AvgReadTime   float64 `json:"avgReadTime"`
}

// AnalyticsResponse is the blog publishing breakdown.
type AnalyticsResponse struct {
	Total                int                  `json:"total"`
	Published            int                  `json:"published"`
	Drafts               int                  `json:"drafts"`
	CategoryDistribution []analytics.Bucket   `json:"categoryDistribution"`
	AuthorProductivity   []domain.AuthorStats `json:"authorProductivity"`
	MonthlyTrend         []analytics.Bucket   `json:"monthlyTrend"`
	PopularTags          []analytics.Bucket   `json:"popularTags"`
	Engagement           Engagement           `json:"engagement"`
}
