// Package domain defines the Team entity.
package domain

import (
	"slices"
	"strings"
	"time"

	"portfolio_backend/internal/shared/refs"
	"portfolio_backend/platform/sanitize"

	"github.com/google/uuid"
)

// Fields are the writable attributes of a team.
type Fields struct {
	TeamName          string      `json:"teamName" db:"team_name" validate:"required,max=100"`
	Description       *string     `json:"description,omitempty" db:"description" validate:"omitempty,max=1000"`
	MemberIDs         []uuid.UUID `json:"members" db:"member_ids"`
	RelatedProjectIDs []uuid.UUID `json:"relatedProjects" db:"related_project_ids"`
	Tags              []string    `json:"tags" db:"tags"`
	TeamLeadID        *uuid.UUID  `json:"teamLead,omitempty" db:"team_lead_id"`
	Specialties       []string    `json:"specialties" db:"specialties"`
	IsActive          *bool       `json:"isActive" db:"is_active"`
}

// Normalize trims text, drops blank tags and specialties, defaults isActive
// and adds the team lead to the members.
func (f *Fields) Normalize() {
	f.TeamName = strings.TrimSpace(f.TeamName)
	f.Description = sanitize.TextPtr(f.Description)
	f.Tags = cleanList(f.Tags)
	f.Specialties = cleanList(f.Specialties)
	if f.MemberIDs == nil {
		f.MemberIDs = []uuid.UUID{}
	}
	if f.RelatedProjectIDs == nil {
		f.RelatedProjectIDs = []uuid.UUID{}
	}
	if f.IsActive == nil {
		active := true
		f.IsActive = &active
	}
	if f.TeamLeadID != nil && !slices.Contains(f.MemberIDs, *f.TeamLeadID) {
		f.MemberIDs = append(f.MemberIDs, *f.TeamLeadID)
	}
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Team is the read model with members, lead and projects populated.
type Team struct {
	ID uuid.UUID `json:"id" db:"id"`
	Fields
	Members         []refs.Member  `json:"members" db:"members"`
	TeamLead        *refs.Member   `json:"teamLead,omitempty" db:"team_lead"`
	RelatedProjects []refs.Project `json:"relatedProjects" db:"related_projects"`
	CreatedAt       time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time      `json:"updatedAt" db:"updated_at"`

	MemberCount  int `json:"memberCount" db:"-"`
	ProjectCount int `json:"projectCount" db:"-"`
}

// Derive fills the counts from the stored id lists.
func (t *Team) Derive() {
	t.MemberCount = len(t.MemberIDs)
	t.ProjectCount = len(t.RelatedProjectIDs)
}

// Performance relates a team's projects to its size.
type Performance struct {
	ID                uuid.UUID `json:"id" db:"id"`
	TeamName          string    `json:"teamName" db:"team_name"`
	MemberCount       int       `json:"memberCount" db:"member_count"`
	ProjectCount      int       `json:"projectCount" db:"project_count"`
	IsActive          bool      `json:"isActive" db:"is_active"`
	ProjectsPerMember float64   `json:"projectsPerMember" db:"-"`
}

// Workload relates a team's active projects to its size.
type Workload struct {
	ID                 uuid.UUID `json:"id" db:"id"`
	TeamName           string    `json:"teamName" db:"team_name"`
	MemberCount        int       `json:"memberCount" db:"member_count"`
	ActiveProjectCount int       `json:"activeProjectCount" db:"active_project_count"`
	IsActive           bool      `json:"isActive" db:"is_active"`
	WorkloadRatio      float64   `json:"workloadRatio" db:"-"`
}
