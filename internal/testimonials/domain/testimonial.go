// Package domain defines the Testimonial entity.
package domain

import (
	"strings"
	"time"
	"unicode/utf8"

	"portfolio_backend/internal/shared/refs"

	"github.com/google/uuid"
)

const (
	SourceWebsiteForm = "Website Form"

	shortQuoteLength = 150
	maxRating        = 5
)

type Location struct {
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Country string `json:"country,omitempty"`
}

// Fields are the writable attributes of a testimonial.
type Fields struct {
	ClientName        string     `json:"clientName" db:"client_name" validate:"required,max=100"`
	ClientCompany     *string    `json:"clientCompany,omitempty" db:"client_company" validate:"omitempty,max=100"`
	ClientDesignation *string    `json:"clientDesignation,omitempty" db:"client_designation" validate:"omitempty,max=100"`
	ClientImage       *string    `json:"clientImage,omitempty" db:"client_image" validate:"omitempty,http_url"`
	ClientEmail       *string    `json:"clientEmail,omitempty" db:"client_email" validate:"omitempty,email"`
	Quote             string     `json:"quote" db:"quote" validate:"required,max=1000"`
	Rating            int        `json:"rating" db:"rating" validate:"required,min=1,max=5"`
	Featured          bool       `json:"featured" db:"featured"`
	Approved          bool       `json:"approved" db:"approved"`
	RelatedProjectID  *uuid.UUID `json:"relatedProject,omitempty" db:"related_project_id"`
	ClientID          *uuid.UUID `json:"client,omitempty" db:"client_id"`
	ServiceCategory   *string    `json:"serviceCategory,omitempty" db:"service_category" validate:"omitempty,oneof='Web Development' 'Mobile Development' 'UI/UX Design' 'Property Management' 'Real Estate' 'Software Development' Consulting Other"`
	Location          *Location  `json:"location,omitempty" db:"location"`
	Source            string     `json:"source" db:"source" validate:"oneof='Website Form' Email Phone Meeting 'Social Media' 'Third Party' Other"`
	DateGiven         *time.Time `json:"dateGiven,omitempty" db:"date_given"`
	Verified          bool       `json:"verified" db:"verified"`
	Tags              []string   `json:"tags" db:"tags"`
}

// Normalize trims text, drops blank optionals and fills the source and date
// defaults.
func (f *Fields) Normalize(now time.Time) {
	f.ClientName = strings.TrimSpace(f.ClientName)
	f.Quote = strings.TrimSpace(f.Quote)
	f.ClientCompany = trimmed(f.ClientCompany)
	f.ClientDesignation = trimmed(f.ClientDesignation)
	f.ClientImage = trimmed(f.ClientImage)
	if email := trimmed(f.ClientEmail); email != nil {
		lower := strings.ToLower(*email)
		f.ClientEmail = &lower
	} else {
		f.ClientEmail = nil
	}
	if f.Source == "" {
		f.Source = SourceWebsiteForm
	}
	if f.DateGiven == nil {
		f.DateGiven = &now
	}

	tags := make([]string, 0, len(f.Tags))
	for _, t := range f.Tags {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	f.Tags = tags
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

// Testimonial is the read model with the project and client populated.
type Testimonial struct {
	ID uuid.UUID `json:"id" db:"id"`
	Fields
	RelatedProject *refs.Project `json:"relatedProject,omitempty" db:"related_project"`
	Client         *refs.Client  `json:"client,omitempty" db:"client"`
	CreatedAt      time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time     `json:"updatedAt" db:"updated_at"`

	DisplayName string `json:"displayName" db:"-"`
	Stars       string `json:"stars" db:"-"`
	ShortQuote  string `json:"shortQuote" db:"-"`
}

// Derive fills the display fields.
func (t *Testimonial) Derive() {
	t.DisplayName = DisplayName(t.ClientName, t.ClientCompany, t.ClientDesignation)
	rating := min(max(t.Rating, 0), maxRating)
	t.Stars = strings.Repeat("★", rating) + strings.Repeat("☆", maxRating-rating)
	t.ShortQuote = t.Quote
	if utf8.RuneCountInString(t.Quote) > shortQuoteLength {
		t.ShortQuote = string([]rune(t.Quote)[:shortQuoteLength]) + "..."
	}
}

// DisplayName renders "name, designation at company" with whichever parts
// are present.
func DisplayName(name string, company, designation *string) string {
	switch {
	case company != nil && designation != nil:
		return name + ", " + *designation + " at " + *company
	case company != nil:
		return name + ", " + *company
	case designation != nil:
		return name + ", " + *designation
	default:
		return name
	}
}
