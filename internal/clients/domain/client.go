// Package domain defines the Client entity.
package domain

import (
	"strings"
	"time"

	"portfolio_backend/internal/shared/refs"
	"portfolio_backend/platform/phone"
	"portfolio_backend/platform/sanitize"

	"github.com/google/uuid"
)

const (
	PartnershipActive    = "Active"
	PartnershipOneTime   = "One-time Project"
	satisfactionNoRating = "No Rating"
)

type ContactPerson struct {
	Name  string `json:"name,omitempty" validate:"max=100"`
	Title string `json:"title,omitempty" validate:"max=100"`
	Email string `json:"email,omitempty" validate:"omitempty,email"`
	Phone string `json:"phone,omitempty" validate:"omitempty,phone"`
}

type Location struct {
	Address string `json:"address,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Country string `json:"country,omitempty"`
	ZipCode string `json:"zipCode,omitempty"`
}

type Partnership struct {
	StartDate *time.Time `json:"startDate,omitempty"`
	Status    string     `json:"status" validate:"oneof=Active Completed 'On Hold' Terminated"`
	Type      string     `json:"type" validate:"oneof='One-time Project' Ongoing Retainer Partnership"`
}

// Fields are the writable attributes of a client.
type Fields struct {
	Name          string         `json:"name" db:"name" validate:"required,max=200"`
	Logo          *string        `json:"logo,omitempty" db:"logo" validate:"omitempty,http_url"`
	Industry      *string        `json:"industry,omitempty" db:"industry" validate:"omitempty,max=100"`
	Website       *string        `json:"website,omitempty" db:"website" validate:"omitempty,http_url"`
	Description   *string        `json:"description,omitempty" db:"description" validate:"omitempty,max=1000"`
	ContactPerson *ContactPerson `json:"contactPerson,omitempty" db:"contact_person"`
	ContactEmail  *string        `json:"contactEmail,omitempty" db:"contact_email" validate:"omitempty,email"`
	ContactPhone  *string        `json:"contactPhone,omitempty" db:"contact_phone" validate:"omitempty,phone"`
	ProjectIDs    []uuid.UUID    `json:"projects" db:"project_ids"`
	Location      *Location      `json:"location,omitempty" db:"location"`
	CompanySize   *string        `json:"companySize,omitempty" db:"company_size" validate:"omitempty,oneof='Startup (1-10)' 'Small (11-50)' 'Medium (51-200)' 'Large (201-1000)' 'Enterprise (1000+)' Other"`
	Partnership   Partnership    `json:"partnership" db:"partnership"`
	Featured      bool           `json:"featured" db:"featured"`
}

// Normalize trims text, lower-cases emails, normalizes phone numbers and
// defaults the partnership.
func (f *Fields) Normalize(now time.Time) {
	f.Name = strings.TrimSpace(f.Name)
	f.Industry = sanitize.TextPtr(f.Industry)
	f.Description = sanitize.TextPtr(f.Description)
	f.ContactEmail = lowerPtr(f.ContactEmail)
	f.ContactPhone = phone.NormalizePtr(f.ContactPhone)
	if cp := f.ContactPerson; cp != nil {
		cp.Name = strings.TrimSpace(cp.Name)
		cp.Title = strings.TrimSpace(cp.Title)
		cp.Email = strings.ToLower(strings.TrimSpace(cp.Email))
		if cp.Phone != "" {
			cp.Phone = phone.NormalizeE164(cp.Phone)
		}
	}
	if f.ProjectIDs == nil {
		f.ProjectIDs = []uuid.UUID{}
	}
	if f.Partnership.StartDate == nil {
		f.Partnership.StartDate = &now
	}
	if f.Partnership.Status == "" {
		f.Partnership.Status = PartnershipActive
	}
	if f.Partnership.Type == "" {
		f.Partnership.Type = PartnershipOneTime
	}
}

// Client is the read model with its projects populated.
type Client struct {
	ID uuid.UUID `json:"id" db:"id"`
	Fields
	Projects  []refs.Project `json:"projects" db:"projects"`
	CreatedAt time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time      `json:"updatedAt" db:"updated_at"`
}

// TopClient ranks a client by its linked projects.
type TopClient struct {
	ID                uuid.UUID `json:"id" db:"id"`
	Name              string    `json:"name" db:"name"`
	Logo              *string   `json:"logo,omitempty" db:"logo"`
	Industry          *string   `json:"industry,omitempty" db:"industry"`
	PartnershipStatus string    `json:"partnershipStatus" db:"partnership_status"`
	ProjectCount      int       `json:"projectCount" db:"project_count"`
	CompletedProjects int       `json:"completedProjects" db:"completed_projects"`
}

// Satisfaction summarizes the testimonials left on a client's projects.
type Satisfaction struct {
	ID                uuid.UUID `json:"id" db:"id"`
	ClientName        string    `json:"clientName" db:"client_name"`
	Industry          *string   `json:"industry,omitempty" db:"industry"`
	ProjectCount      int       `json:"projectCount" db:"project_count"`
	TotalTestimonials int       `json:"totalTestimonials" db:"total_testimonials"`
	AverageRating     *float64  `json:"averageRating" db:"average_rating"`
	SatisfactionLevel string    `json:"satisfactionLevel" db:"-"`
}

// SatisfactionLevel labels an average rating. nil means no testimonials.
func SatisfactionLevel(avg *float64) string {
	if avg == nil {
		return satisfactionNoRating
	}
	switch v := *avg; {
	case v >= 4.5:
		return "Excellent"
	case v >= 4.0:
		return "Very Good"
	case v >= 3.5:
		return "Good"
	case v >= 3.0:
		return "Fair"
	default:
		return "Poor"
	}
}

func lowerPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.ToLower(strings.TrimSpace(*s))
	if v == "" {
		return nil
	}
	return &v
}
