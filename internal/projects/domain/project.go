// Package domain defines the Project entity, its nested records and the
// values derived from it on read.
package domain

import (
	"math"
	"slices"
	"strings"
	"time"

	"portfolio_backend/internal/shared/refs"
	"portfolio_backend/platform/sanitize"

	"github.com/google/uuid"
)

const (
	StatusPlanning   = "Planning"
	StatusInProgress = "In Progress"
	StatusReview     = "Review"
	StatusCompleted  = "Completed"
	StatusOnHold     = "On Hold"
	StatusCancelled  = "Cancelled"

	PriorityMedium = "Medium"

	DefaultBudget = "Confidential"
)

// ActiveStatuses are the statuses of work still underway.
var ActiveStatuses = []string{StatusPlanning, StatusInProgress, StatusReview}

var progressByStatus = map[string]int{
	StatusPlanning:   10,
	StatusInProgress: 50,
	StatusReview:     80,
	StatusCompleted:  100,
	StatusOnHold:     25,
	StatusCancelled:  0,
}

// TeamAssignment is a member's role on a project as stored.
type TeamAssignment struct {
	Member       uuid.UUID `json:"member" validate:"required"`
	Role         string    `json:"role" validate:"required,max=100"`
	Contribution string    `json:"contribution,omitempty" validate:"max=500"`
}

type Location struct {
	Address string   `json:"address,omitempty"`
	City    string   `json:"city,omitempty"`
	State   string   `json:"state,omitempty"`
	Country string   `json:"country,omitempty"`
	ZipCode string   `json:"zipCode,omitempty"`
	Lat     *float64 `json:"lat,omitempty" validate:"omitempty,min=-90,max=90"`
	Lng     *float64 `json:"lng,omitempty" validate:"omitempty,min=-180,max=180"`
}

// Testimonial is a short client quote kept on the project itself.
type Testimonial struct {
	ClientName      string    `json:"clientName" validate:"required"`
	TestimonialText string    `json:"testimonialText" validate:"required"`
	Rating          int       `json:"rating" validate:"min=1,max=5"`
	Date            time.Time `json:"date"`
}

type Challenge struct {
	Challenge string `json:"challenge"`
	Solution  string `json:"solution"`
}

type Result struct {
	Metric      string `json:"metric"`
	Value       string `json:"value"`
	Description string `json:"description,omitempty"`
}

// Fields are the writable attributes of a project.
type Fields struct {
	Title                   string           `json:"title" db:"title" validate:"required,max=200"`
	ShortDescription        *string          `json:"shortDescription,omitempty" db:"short_description" validate:"omitempty,max=300"`
	FullDescription         string           `json:"fullDescription" db:"full_description" validate:"required"`
	Featured                bool             `json:"featured" db:"featured"`
	Category                string           `json:"category" db:"category" validate:"required,oneof=Website 'Mobile App' 'Web App' E-commerce Residential Commercial Industrial Software Design Consulting Other"`
	Tags                    []string         `json:"tags" db:"tags" validate:"dive,max=50"`
	Thumbnail               *string          `json:"thumbnail,omitempty" db:"thumbnail" validate:"omitempty,http_url"`
	Images                  []string         `json:"images" db:"images" validate:"dive,http_url"`
	Videos                  []string         `json:"videos" db:"videos" validate:"dive,http_url"`
	LiveLink                *string          `json:"liveLink,omitempty" db:"live_link" validate:"omitempty,http_url"`
	CaseStudyLink           *string          `json:"caseStudyLink,omitempty" db:"case_study_link" validate:"omitempty,http_url"`
	StartDate               time.Time        `json:"startDate" db:"start_date" validate:"required"`
	CompletionDate          *time.Time       `json:"completionDate,omitempty" db:"completion_date"`
	EstimatedCompletionDate *time.Time       `json:"estimatedCompletionDate,omitempty" db:"estimated_completion_date"`
	ClientID                *uuid.UUID       `json:"client,omitempty" db:"client_id"`
	TeamMembers             []TeamAssignment `json:"teamMembers" db:"team_members" validate:"dive"`
	TeamMemberIDs           []uuid.UUID      `json:"-" db:"team_member_ids"`
	ServiceIDs              []uuid.UUID      `json:"servicesUsed" db:"service_ids"`
	Location                *Location        `json:"location,omitempty" db:"location"`
	Testimonials            []Testimonial    `json:"testimonials" db:"testimonials" validate:"dive"`
	Budget                  string           `json:"budget" db:"budget"`
	Status                  string           `json:"status" db:"status" validate:"oneof=Planning 'In Progress' Review Completed 'On Hold' Cancelled"`
	Priority                string           `json:"priority" db:"priority" validate:"oneof=Low Medium High Critical"`
	Technologies            []string         `json:"technologies" db:"technologies" validate:"dive,max=50"`
	Challenges              []Challenge      `json:"challenges" db:"challenges"`
	Results                 []Result         `json:"results" db:"results"`
}

// Normalize trims text, applies defaults and derives the member id index
// from the team assignments.
func (f *Fields) Normalize(now time.Time) {
	f.Title = strings.TrimSpace(f.Title)
	f.FullDescription = sanitize.Text(f.FullDescription)
	f.ShortDescription = sanitize.TextPtr(f.ShortDescription)
	f.Tags = cleanList(f.Tags)
	f.Technologies = cleanList(f.Technologies)
	if strings.TrimSpace(f.Budget) == "" {
		f.Budget = DefaultBudget
	}
	if f.Status == "" {
		f.Status = StatusPlanning
	}
	if f.Priority == "" {
		f.Priority = PriorityMedium
	}

	if f.TeamMembers == nil {
		f.TeamMembers = []TeamAssignment{}
	}
	f.TeamMemberIDs = make([]uuid.UUID, 0, len(f.TeamMembers))
	for _, tm := range f.TeamMembers {
		if !slices.Contains(f.TeamMemberIDs, tm.Member) {
			f.TeamMemberIDs = append(f.TeamMemberIDs, tm.Member)
		}
	}
	for i := range f.Testimonials {
		if f.Testimonials[i].Date.IsZero() {
			f.Testimonials[i].Date = now
		}
	}

	if f.Images == nil {
		f.Images = []string{}
	}
	if f.Videos == nil {
		f.Videos = []string{}
	}
	if f.ServiceIDs == nil {
		f.ServiceIDs = []uuid.UUID{}
	}
	if f.Testimonials == nil {
		f.Testimonials = []Testimonial{}
	}
	if f.Challenges == nil {
		f.Challenges = []Challenge{}
	}
	if f.Results == nil {
		f.Results = []Result{}
	}
}

// Project is the read model with its client, team and services populated.
type Project struct {
	ID uuid.UUID `json:"id" db:"id"`
	Fields
	Client       *refs.Client      `json:"client,omitempty" db:"client"`
	TeamMembers  []refs.MemberRole `json:"teamMembers" db:"team_members_populated"`
	ServicesUsed []refs.Service    `json:"servicesUsed" db:"services_used"`
	CreatedAt    time.Time         `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time         `json:"updatedAt" db:"updated_at"`

	DurationDays       *int `json:"durationDays" db:"-"`
	ProgressPercentage int  `json:"progressPercentage" db:"-"`
	TeamMemberCount    int  `json:"teamMemberCount" db:"-"`
}

// Derive fills the computed attributes. Open projects count their duration
// up to now.
func (p *Project) Derive(now time.Time) {
	p.ProgressPercentage = progressByStatus[p.Status]
	p.TeamMemberCount = len(p.Fields.TeamMembers)
	p.DurationDays = nil
	if p.StartDate.IsZero() {
		return
	}
	end := now
	if p.CompletionDate != nil {
		end = *p.CompletionDate
	}
	days := int(math.Ceil(end.Sub(p.StartDate).Hours() / 24))
	p.DurationDays = &days
}

// TeamPerformance is one member's project record.
type TeamPerformance struct {
	MemberID          uuid.UUID `json:"_id" db:"member_id"`
	MemberName        string    `json:"memberName" db:"member_name"`
	Position          string    `json:"position" db:"position"`
	ProjectCount      int       `json:"projectCount" db:"project_count"`
	CompletedProjects int       `json:"completedProjects" db:"completed_projects"`
	CompletionRate    float64   `json:"completionRate" db:"-"`
}

func cleanList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" && !slices.Contains(out, v) {
			out = append(out, v)
		}
	}
	return out
}
