// Package domain defines the TeamMember entity.
package domain

import (
	"math"
	"strings"
	"time"

	"portfolio_backend/internal/shared/refs"
	"portfolio_backend/platform/phone"
	"portfolio_backend/platform/sanitize"

	"github.com/google/uuid"
)

type SocialLinks struct {
	LinkedIn  string `json:"linkedin,omitempty" validate:"omitempty,http_url,contains=linkedin.com/"`
	GitHub    string `json:"github,omitempty" validate:"omitempty,http_url,contains=github.com/"`
	Twitter   string `json:"twitter,omitempty" validate:"omitempty,http_url"`
	Portfolio string `json:"portfolio,omitempty" validate:"omitempty,http_url"`
}

type Education struct {
	Degree      string `json:"degree" validate:"required"`
	Institution string `json:"institution" validate:"required"`
	Year        *int   `json:"year,omitempty" validate:"omitempty,min=1900,max=2100"`
}

type Experience struct {
	Company     string     `json:"company" validate:"required"`
	Position    string     `json:"position" validate:"required"`
	StartDate   time.Time  `json:"startDate" validate:"required"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	Description string     `json:"description,omitempty"`
}

type Award struct {
	Title       string `json:"title" validate:"required"`
	Year        int    `json:"year" validate:"required,min=1900,max=2100"`
	Description string `json:"description,omitempty"`
}

// Fields are the writable attributes of a team member.
type Fields struct {
	FirstName         string       `json:"firstName" db:"first_name" validate:"required,max=100"`
	LastName          string       `json:"lastName" db:"last_name" validate:"required,max=100"`
	Position          string       `json:"position" db:"position" validate:"required,max=150"`
	Email             *string      `json:"email,omitempty" db:"email" validate:"omitempty,email"`
	Phone             *string      `json:"phone,omitempty" db:"phone" validate:"omitempty,phone"`
	Bio               *string      `json:"bio,omitempty" db:"bio" validate:"omitempty,max=1000"`
	ProfileImage      *string      `json:"profileImage,omitempty" db:"profile_image" validate:"omitempty,http_url"`
	SocialLinks       SocialLinks  `json:"socialLinks" db:"social_links"`
	Skills            []string     `json:"skills" db:"skills"`
	Featured          bool         `json:"featured" db:"featured"`
	Education         []Education  `json:"education" db:"education" validate:"dive"`
	Experience        []Experience `json:"experience" db:"experience" validate:"dive"`
	Awards            []Award      `json:"awards" db:"awards" validate:"dive"`
	CurrentTeamID     *uuid.UUID   `json:"currentTeam,omitempty" db:"current_team_id"`
	RelatedProjectIDs []uuid.UUID  `json:"relatedProjects" db:"related_project_ids"`
}

// Normalize trims names, lower-cases the email and drops blank skills.
func (f *Fields) Normalize() {
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)
	f.Position = strings.TrimSpace(f.Position)
	f.Bio = sanitize.TextPtr(f.Bio)
	f.Phone = phone.NormalizePtr(f.Phone)
	if f.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*f.Email))
		f.Email = &email
		if email == "" {
			f.Email = nil
		}
	}

	skills := make([]string, 0, len(f.Skills))
	for _, s := range f.Skills {
		if s = strings.TrimSpace(s); s != "" {
			skills = append(skills, s)
		}
	}
	f.Skills = skills
	if f.Education == nil {
		f.Education = []Education{}
	}
	if f.Experience == nil {
		f.Experience = []Experience{}
	}
	if f.Awards == nil {
		f.Awards = []Award{}
	}
	if f.RelatedProjectIDs == nil {
		f.RelatedProjectIDs = []uuid.UUID{}
	}
}

// TeamMember is the read model with its team and projects populated.
type TeamMember struct {
	ID uuid.UUID `json:"id" db:"id"`
	Fields
	CurrentTeam     *refs.Team     `json:"currentTeam,omitempty" db:"current_team"`
	RelatedProjects []refs.Project `json:"relatedProjects" db:"related_projects"`
	CreatedAt       time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time      `json:"updatedAt" db:"updated_at"`

	FullName             string  `json:"fullName" db:"-"`
	TotalExperienceYears float64 `json:"totalExperienceYears" db:"-"`
	CurrentPosition      string  `json:"currentPosition" db:"-"`
}

// Derive fills the computed fields. Open-ended experience runs until now.
func (m *TeamMember) Derive(now time.Time) {
	m.FullName = m.FirstName + " " + m.LastName
	m.CurrentPosition = m.Position

	months, current := 0, false
	for _, e := range m.Experience {
		end := now
		if e.EndDate != nil {
			end = *e.EndDate
		} else if !current {
			m.CurrentPosition, current = e.Position, true
		}
		span := (end.Year()-e.StartDate.Year())*12 + int(end.Month()) - int(e.StartDate.Month())
		months += max(span, 0)
	}
	m.TotalExperienceYears = math.Round(float64(months)/12*10) / 10
}

// WithProjectCount is a member annotated with the projects it is assigned to.
type WithProjectCount struct {
	TeamMember
	ProjectCount int `json:"projectCount" db:"project_count"`
}

// SkillMember is a member listed under a skill.
type SkillMember struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Position     string    `json:"position"`
	ProfileImage *string   `json:"profileImage,omitempty"`
}

// SkillSummary groups the members sharing a skill.
type SkillSummary struct {
	Skill   string        `json:"_id" db:"skill"`
	Members []SkillMember `json:"members" db:"members"`
	Count   int           `json:"count" db:"count"`
}
