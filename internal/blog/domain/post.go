// Package domain defines the blog Post entity.
package domain

import (
	"regexp"
	"strings"
	"time"

	"portfolio_backend/internal/shared/refs"
	"portfolio_backend/platform/sanitize"

	"github.com/google/uuid"
)

const (
	StatusDraft     = "Draft"
	StatusPublished = "Published"
	StatusArchived  = "Archived"

	excerptLength = 200
	wordsPerMin   = 200
)

var Categories = []string{
	"Technology", "Design", "Business", "Real Estate", "Industry Insights",
	"Case Studies", "Tutorials", "News", "Other",
}

var (
	slugStrip  = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugSpaces = regexp.MustCompile(`\s+`)
	slugDashes = regexp.MustCompile(`-+`)
)

type SeoMeta struct {
	MetaTitle       string `json:"metaTitle,omitempty" validate:"max=60"`
	MetaDescription string `json:"metaDescription,omitempty" validate:"max=160"`
	Keywords        string `json:"keywords,omitempty" validate:"max=255"`
	CanonicalURL    string `json:"canonicalUrl,omitempty" validate:"omitempty,http_url"`
}

// Comment is a reader comment. New comments await approval.
type Comment struct {
	Name      string    `json:"name" validate:"required,max=100"`
	Email     string    `json:"email" validate:"required,email"`
	Comment   string    `json:"comment" validate:"required,max=1000"`
	Approved  bool      `json:"approved"`
	CreatedAt time.Time `json:"createdAt"`
}

// Fields are the writable attributes of a post.
type Fields struct {
	Title           string      `json:"title" db:"title" validate:"required,max=200"`
	Slug            string      `json:"slug" db:"slug" validate:"required,slug"`
	AuthorID        uuid.UUID   `json:"author" db:"author_id" validate:"required"`
	Content         string      `json:"content" db:"content" validate:"required"`
	Excerpt         *string     `json:"excerpt,omitempty" db:"excerpt" validate:"omitempty,max=300"`
	Thumbnail       *string     `json:"thumbnail,omitempty" db:"thumbnail" validate:"omitempty,http_url"`
	Images          []string    `json:"images" db:"images" validate:"dive,http_url"`
	Tags            []string    `json:"tags" db:"tags"`
	Category        string      `json:"category" db:"category" validate:"required,oneof=Technology Design Business 'Real Estate' 'Industry Insights' 'Case Studies' Tutorials News Other"`
	ReadTimeMinutes int         `json:"readTimeMinutes" db:"read_time" validate:"min=1,max=120"`
	PublishedDate   *time.Time  `json:"publishedDate,omitempty" db:"published_date"`
	Featured        bool        `json:"featured" db:"featured"`
	Status          string      `json:"status" db:"status" validate:"oneof=Draft Published Archived"`
	SeoMeta         SeoMeta     `json:"seoMeta" db:"seo_meta"`
	RelatedPostIDs  []uuid.UUID `json:"relatedPosts" db:"related_post_ids"`
}

// Normalize fills the slug, excerpt and read time from the title and
// content, lower-cases tags and stamps publishedDate on publication.
func (f *Fields) Normalize(now time.Time) {
	f.Title = strings.TrimSpace(f.Title)
	f.Slug = strings.ToLower(strings.TrimSpace(f.Slug))
	if f.Slug == "" {
		f.Slug = Slugify(f.Title)
	}
	if f.Excerpt == nil || strings.TrimSpace(*f.Excerpt) == "" {
		excerpt := sanitize.Excerpt(f.Content, excerptLength)
		f.Excerpt = &excerpt
	}
	if f.ReadTimeMinutes == 0 {
		f.ReadTimeMinutes = ReadTime(f.Content)
	}

	tags := make([]string, 0, len(f.Tags))
	for _, t := range f.Tags {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			tags = append(tags, t)
		}
	}
	f.Tags = tags
	if f.Images == nil {
		f.Images = []string{}
	}
	if f.RelatedPostIDs == nil {
		f.RelatedPostIDs = []uuid.UUID{}
	}
	if f.Status == "" {
		f.Status = StatusDraft
	}
	if f.Status == StatusPublished && f.PublishedDate == nil {
		f.PublishedDate = &now
	}
}

// Slugify derives a URL slug from a title. Accented letters are folded to
// their base letter.
func Slugify(title string) string {
	s := slugStrip.ReplaceAllString(strings.ToLower(sanitize.Fold(title)), "")
	s = slugSpaces.ReplaceAllString(strings.TrimSpace(s), "-")
	return strings.Trim(slugDashes.ReplaceAllString(s, "-"), "-")
}

// ReadTime estimates minutes at 200 words per minute, at least one and at
// most 120.
func ReadTime(content string) int {
	words := sanitize.WordCount(content)
	return min(max(1, (words+wordsPerMin-1)/wordsPerMin), 120)
}

// Post is the read model with author and related posts populated.
type Post struct {
	ID uuid.UUID `json:"id" db:"id"`
	Fields
	Author       *refs.Member `json:"author" db:"author"`
	Views        int          `json:"views" db:"views"`
	Likes        int          `json:"likes" db:"likes"`
	Comments     []Comment    `json:"comments" db:"comments"`
	RelatedPosts []refs.Post  `json:"relatedPosts" db:"related_posts"`
	CreatedAt    time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time    `json:"updatedAt" db:"updated_at"`

	IsPublished  bool `json:"isPublished" db:"-"`
	CommentCount int  `json:"commentCount" db:"-"`
}

// Visible reports whether anonymous readers may see the post at now.
func (p *Post) Visible(now time.Time) bool {
	return p.Status == StatusPublished && p.PublishedDate != nil && !p.PublishedDate.After(now)
}

// Derive fills the computed fields.
func (p *Post) Derive(now time.Time) {
	p.IsPublished = p.Visible(now)
	p.CommentCount = 0
	for _, c := range p.Comments {
		if c.Approved {
			p.CommentCount++
		}
	}
}

// HideUnapproved drops comments still awaiting moderation.
func (p *Post) HideUnapproved() {
	kept := make([]Comment, 0, p.CommentCount)
	for _, c := range p.Comments {
		if c.Approved {
			kept = append(kept, c)
		}
	}
	p.Comments = kept
}

// AuthorStats is the publishing record of one author.
type AuthorStats struct {
	AuthorID   uuid.UUID `json:"_id" db:"author_id"`
	AuthorName string    `json:"authorName" db:"author_name"`
	PostCount  int       `json:"postCount" db:"post_count"`
	TotalViews int       `json:"totalViews" db:"total_views"`
	AvgViews   float64   `json:"avgViews" db:"avg_views"`
}
