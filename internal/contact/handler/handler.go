package handler

import (
	"fmt"
	"net/http"

	"portfolio_backend/internal/contact/domain"
	"portfolio_backend/internal/contact/service"
	"portfolio_backend/internal/contact/transport"
	"portfolio_backend/internal/resource"
	"portfolio_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

const msgThanks = "Thank you for your inquiry. We will get back to you soon!"

// Handler handles HTTP requests for contact submissions.
type Handler struct {
	svc *service.Service
}

// New creates a new contact handler.
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Submit stores a contact form submission.
// POST /api/v1/contact
func (h *Handler) Submit(c *gin.Context) {
	body, ok := resource.Body(c)
	if !ok {
		return
	}
	meta := domain.Meta{
		IPAddress: optional(c.ClientIP()),
		UserAgent: optional(c.Request.UserAgent()),
		Referrer:  optional(c.Request.Referer()),
	}
	result, err := h.svc.Submit(c.Request.Context(), body, meta)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Message(c, http.StatusCreated, msgThanks, result)
}

// List returns a filtered page of submissions.
// GET /api/v1/contact
func (h *Handler) List(c *gin.Context) {
	res, err := h.svc.List(c.Request.Context(), c.Request.URL.Query(), httpkit.GetIdentity(c))
	if httpkit.HandleError(c, err) {
		return
	}
	resource.List(c, res)
}

// Analytics returns the pipeline breakdown.
// GET /api/v1/contact/analytics
func (h *Handler) Analytics(c *gin.Context) {
	result, err := h.svc.Analytics(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Overdue returns open submissions past their follow-up date.
// GET /api/v1/contact/overdue
func (h *Handler) Overdue(c *gin.Context) {
	items, err := h.svc.Overdue(c.Request.Context(), httpkit.GetIdentity(c))
	if httpkit.HandleError(c, err) {
		return
	}
	resource.Items(c, items)
}

// ByAssignee returns the submissions assigned to a team member.
// GET /api/v1/contact/assignee/:assigneeId
func (h *Handler) ByAssignee(c *gin.Context) {
	id, ok := resource.ID(c, "assigneeId")
	if !ok {
		return
	}
	items, err := h.svc.ByAssignee(c.Request.Context(), id, httpkit.GetIdentity(c))
	if httpkit.HandleError(c, err) {
		return
	}
	resource.Items(c, items)
}

// GetByID returns a submission.
// GET /api/v1/contact/:id
func (h *Handler) GetByID(c *gin.Context) {
	id, ok := resource.ID(c, "id")
	if !ok {
		return
	}
	result, err := h.svc.GetByID(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// UpdateStatus moves a submission to another status.
// PATCH /api/v1/contact/:id/status
func (h *Handler) UpdateStatus(c *gin.Context) {
	id, ok := resource.ID(c, "id")
	if !ok {
		return
	}
	var req transport.StatusRequest
	if !resource.Bind(c, &req) {
		return
	}
	result, err := h.svc.UpdateStatus(c.Request.Context(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Assign hands a submission to a team member.
// PATCH /api/v1/contact/:id/assign
func (h *Handler) Assign(c *gin.Context) {
	id, ok := resource.ID(c, "id")
	if !ok {
		return
	}
	var req transport.AssignRequest
	if !resource.Bind(c, &req) {
		return
	}
	result, err := h.svc.Assign(c.Request.Context(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// AddNote appends a note by the caller.
// POST /api/v1/contact/:id/notes
func (h *Handler) AddNote(c *gin.Context) {
	id, ok := resource.ID(c, "id")
	if !ok {
		return
	}
	var req transport.NoteRequest
	if !resource.Bind(c, &req) {
		return
	}
	result, err := h.svc.AddNote(c.Request.Context(), id, req, httpkit.GetIdentity(c).UserID())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// BulkUpdate applies one set of updates to many submissions.
// PATCH /api/v1/contact/bulk-update
func (h *Handler) BulkUpdate(c *gin.Context) {
	var req transport.BulkRequest
	if !resource.Bind(c, &req) {
		return
	}
	result, err := h.svc.BulkUpdate(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Message(c, http.StatusOK, fmt.Sprintf("Updated %d submissions", result.ModifiedCount), result)
}

// Update applies a partial update.
// PUT /api/v1/contact/:id
func (h *Handler) Update(c *gin.Context) {
	id, ok := resource.ID(c, "id")
	if !ok {
		return
	}
	body, ok := resource.Body(c)
	if !ok {
		return
	}
	result, err := h.svc.Update(c.Request.Context(), id, body)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Delete removes a submission.
// DELETE /api/v1/contact/:id
func (h *Handler) Delete(c *gin.Context) {
	id, ok := resource.ID(c, "id")
	if !ok {
		return
	}
	if httpkit.HandleError(c, h.svc.Delete(c.Request.Context(), id)) {
		return
	}
	httpkit.NoContent(c)
}
