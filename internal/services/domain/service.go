// Package domain defines the Service entity and its invariants.
package domain

import (
	"slices"
	"strings"
	"time"

	"portfolio_backend/internal/shared/refs"
	"portfolio_backend/platform/sanitize"

	"github.com/google/uuid"
)

const (
	CategoryWebDevelopment      = "Web Development"
	CategoryMobileDevelopment   = "Mobile Development"
	CategoryUIUXDesign          = "UI/UX Design"
	CategoryPropertyManagement  = "Property Management"
	CategoryRealEstate          = "Real Estate"
	CategorySoftwareDevelopment = "Software Development"
	CategoryConsulting          = "Consulting"
	CategoryOther               = "Other"

	DefaultPriceRange = "Custom Quote"
)

// Categories lists the service categories in display order.
var Categories = []string{
	CategoryWebDevelopment,
	CategoryMobileDevelopment,
	CategoryUIUXDesign,
	CategoryPropertyManagement,
	CategoryRealEstate,
	CategorySoftwareDevelopment,
	CategoryConsulting,
	CategoryOther,
}

type Benefit struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"required,max=1000"`
}

type ProcessStep struct {
	StepNumber  int    `json:"stepNumber" validate:"min=1"`
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"required,max=1000"`
}

// Fields are the writable attributes of a service.
type Fields struct {
	Name              string        `json:"name" db:"name" validate:"required,max=100"`
	Description       string        `json:"description" db:"description" validate:"required"`
	ShortDescription  *string       `json:"shortDescription,omitempty" db:"short_description" validate:"omitempty,max=200"`
	Icon              *string       `json:"icon,omitempty" db:"icon" validate:"omitempty,http_url"`
	Featured          bool          `json:"featured" db:"featured"`
	Category          string        `json:"category" db:"category" validate:"required,oneof='Web Development' 'Mobile Development' 'UI/UX Design' 'Property Management' 'Real Estate' 'Software Development' 'Consulting' 'Other'"`
	Tags              []string      `json:"tags" db:"tags" validate:"max=50,dive,max=50"`
	Images            []string      `json:"images" db:"images" validate:"dive,http_url"`
	Videos            []string      `json:"videos" db:"videos" validate:"dive,http_url"`
	Benefits          []Benefit     `json:"benefits" db:"benefits" validate:"dive"`
	Process           []ProcessStep `json:"process" db:"process" validate:"dive"`
	PriceRange        string        `json:"priceRange" db:"price_range" validate:"max=100"`
	RelatedProjectIDs []uuid.UUID   `json:"relatedProjects" db:"related_project_ids"`
}

// Normalize trims and defaults the fields before validation.
func (f *Fields) Normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.Description = sanitize.Text(f.Description)
	f.ShortDescription = sanitize.TextPtr(f.ShortDescription)
	f.Tags = CleanTags(f.Tags, false)
	if strings.TrimSpace(f.PriceRange) == "" {
		f.PriceRange = DefaultPriceRange
	}
	f.Images = nonNil(f.Images)
	f.Videos = nonNil(f.Videos)
	if f.Benefits == nil {
		f.Benefits = []Benefit{}
	}
	if f.Process == nil {
		f.Process = []ProcessStep{}
	}
	if f.RelatedProjectIDs == nil {
		f.RelatedProjectIDs = []uuid.UUID{}
	}
}

// Service is the read model. RelatedProjects replaces the id list in JSON.
type Service struct {
	ID uuid.UUID `json:"id" db:"id"`
	Fields
	RelatedProjects []refs.Project `json:"relatedProjects" db:"related_projects"`
	CreatedAt       time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time      `json:"updatedAt" db:"updated_at"`
}

// WithProjectCount is a service annotated with how many projects use it.
type WithProjectCount struct {
	Service
	ProjectCount int `json:"projectCount" db:"project_count"`
}

// CleanTags trims, drops empties and de-duplicates tags, keeping first
// occurrence order.
func CleanTags(tags []string, lower bool) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if lower {
			tag = strings.ToLower(tag)
		}
		if tag != "" && !slices.Contains(out, tag) {
			out = append(out, tag)
		}
	}
	return out
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
