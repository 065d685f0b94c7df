// Package domain defines the ContactSubmission entity and its status rules.
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

const (
	StatusNew              = "New"
	StatusViewed           = "Viewed"
	StatusInProgress       = "In Progress"
	StatusResponded        = "Responded"
	StatusFollowUpRequired = "Follow-up Required"
	StatusConverted        = "Converted"
	StatusArchived         = "Archived"
	StatusSpam             = "Spam"

	defaultInquiry  = "General Inquiry"
	defaultPriority = "Medium"
	defaultSource   = "Website Contact Form"
)

// Statuses lists every status in workflow order.
var Statuses = []string{
	StatusNew, StatusViewed, StatusInProgress, StatusResponded,
	StatusFollowUpRequired, StatusConverted, StatusArchived, StatusSpam,
}

// Priorities lists the accepted priorities.
var Priorities = []string{"Low", "Medium", "High", "Urgent"}

// Overdue selects submissions past their follow-up date that are still open.
const Overdue = "t.follow_up_date < now() AND t.status NOT IN ('Converted', 'Archived')"

type Note struct {
	Note    string     `json:"note"`
	AddedBy *uuid.UUID `json:"addedBy,omitempty"`
	AddedAt time.Time  `json:"addedAt"`
}

// Fields are the writable attributes of a submission. Budget amounts spell
// their commas as 0x2C, the validator escape.
type Fields struct {
	Name                     string     `json:"name" db:"name" validate:"required,max=100"`
	Email                    string     `json:"email" db:"email" validate:"required,email"`
	Phone                    *string    `json:"phone,omitempty" db:"phone" validate:"omitempty,phone"`
	Company                  *string    `json:"company,omitempty" db:"company" validate:"omitempty,max=100"`
	Subject                  *string    `json:"subject,omitempty" db:"subject" validate:"omitempty,max=200"`
	Message                  string     `json:"message" db:"message" validate:"required,max=2000"`
	InquiryType              string     `json:"inquiryType" db:"inquiry_type" validate:"oneof='General Inquiry' 'Project Quote' Partnership Support Feedback Career Media Other"`
	InterestedServices       []string   `json:"interestedServices" db:"interested_services" validate:"dive,oneof='Web Development' 'Mobile Development' 'UI/UX Design' 'Property Management' 'Real Estate' 'Software Development' Consulting Other"`
	Budget                   *string    `json:"budget,omitempty" db:"budget" validate:"omitempty,oneof='< $50x2C000' '$50x2C000 - $150x2C000' '$150x2C000 - $500x2C000' '$500x2C000 - $1000x2C000' '> $1000x2C000' 'Not Sure'"`
	Timeline                 *string    `json:"timeline,omitempty" db:"timeline" validate:"omitempty,oneof=ASAP '1-3 months' '3-6 months' '6+ months' Flexible"`
	Status                   string     `json:"status" db:"status" validate:"oneof=New Viewed 'In Progress' Responded 'Follow-up Required' Converted Archived Spam"`
	Priority                 string     `json:"priority" db:"priority" validate:"oneof=Low Medium High Urgent"`
	Source                   string     `json:"source" db:"source" validate:"oneof='Website Contact Form' 'Landing Page' 'Social Media' Referral 'Google Ads' 'Email Campaign' Other"`
	AssignedToID             *uuid.UUID `json:"assignedTo,omitempty" db:"assigned_to"`
	FollowUpDate             *time.Time `json:"followUpDate,omitempty" db:"follow_up_date"`
	ResponseDate             *time.Time `json:"responseDate,omitempty" db:"response_date"`
	ConversionDate           *time.Time `json:"conversionDate,omitempty" db:"conversion_date"`
	Tags                     []string   `json:"tags" db:"tags"`
	IsSubscribedToNewsletter bool       `json:"isSubscribedToNewsletter" db:"is_subscribed_to_newsletter"`
}

// Normalize trims text, lower-cases the email, normalizes the phone and
// fills the enum defaults.
func (f *Fields) Normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.ToLower(strings.TrimSpace(f.Email))
	f.Message = strings.TrimSpace(f.Message)
	f.Phone = phone.NormalizePtr(f.Phone)
	f.Company = sanitize.TextPtr(f.Company)
	f.Subject = sanitize.TextPtr(f.Subject)
	if f.InquiryType == "" {
		f.InquiryType = defaultInquiry
	}
	if f.Status == "" {
		f.Status = StatusNew
	}
	if f.Priority == "" {
		f.Priority = defaultPriority
	}
	if f.Source == "" {
		f.Source = defaultSource
	}
	if f.InterestedServices == nil {
		f.InterestedServices = []string{}
	}

	tags := make([]string, 0, len(f.Tags))
	for _, t := range f.Tags {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	f.Tags = tags
}

// ApplyStatus sets the status. Entering Responded or Converted stamps the
// matching date when it is still empty.
func (f *Fields) ApplyStatus(status string, now time.Time) {
	f.Status = status
	switch status {
	case StatusResponded:
		if f.ResponseDate == nil {
			f.ResponseDate = &now
		}
	case StatusConverted:
		if f.ConversionDate == nil {
			f.ConversionDate = &now
		}
	}
}

// Meta is captured from the request that submitted the form.
type Meta struct {
	IPAddress   *string   `json:"ipAddress,omitempty" db:"ip_address"`
	UserAgent   *string   `json:"userAgent,omitempty" db:"user_agent"`
	Referrer    *string   `json:"referrer,omitempty" db:"referrer"`
	SubmittedAt time.Time `json:"submittedAt" db:"submitted_at"`
}

// Submission is the read model with the assignee populated.
type Submission struct {
	ID uuid.UUID `json:"id" db:"id"`
	Fields
	Meta
	AssignedTo *refs.Member `json:"assignedTo,omitempty" db:"assigned"`
	Notes      []Note       `json:"notes" db:"notes"`
	CreatedAt  time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time    `json:"updatedAt" db:"updated_at"`

	ResponseTimeHours   *int `json:"responseTimeHours" db:"-"`
	DaysSinceSubmission int  `json:"daysSinceSubmission" db:"-"`
	IsConverted         bool `json:"isConverted" db:"-"`
	IsOverdue           bool `json:"isOverdue" db:"-"`
}

// Derive fills the computed fields as of now.
func (s *Submission) Derive(now time.Time) {
	s.ResponseTimeHours = nil
	if s.ResponseDate != nil {
		hours := int(math.Ceil(s.ResponseDate.Sub(s.SubmittedAt).Hours()))
		s.ResponseTimeHours = &hours
	}
	s.DaysSinceSubmission = int(math.Ceil(now.Sub(s.SubmittedAt).Hours() / 24))
	s.IsConverted = s.Status == StatusConverted
	s.IsOverdue = s.FollowUpDate != nil && s.FollowUpDate.Before(now) &&
		s.Status != StatusConverted && s.Status != StatusArchived
}

// Change is one column assignment of a bulk update.
type Change struct {
	Column string
	Value  any
}

// BulkResult reports how many rows matched the ids and how many changed.
type BulkResult struct {
	MatchedCount  int `json:"matchedCount"`
	ModifiedCount int `json:"modifiedCount"`
}
