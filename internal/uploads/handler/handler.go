package handler

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"portfolio_backend/internal/uploads/domain"
	"portfolio_backend/internal/uploads/service"
	"portfolio_backend/internal/uploads/transport"
	"portfolio_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// formOverhead is the room left in a request body for form fields and
// multipart boundaries.
const formOverhead = 1 << 20

// Handler handles HTTP requests for uploads.
type Handler struct {
	svc         *service.Service
	maxFileSize int64
}

// New creates a new uploads handler. maxFileSize bounds each file.
func New(svc *service.Service, maxFileSize int64) *Handler {
	return &Handler{svc: svc, maxFileSize: maxFileSize}
}

func (h *Handler) limit(c *gin.Context, files int64) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, files*h.maxFileSize+formOverhead)
}

func target(c *gin.Context) transport.Target {
	return transport.Target{
		EntityType:  c.PostForm("entityType"),
		EntityID:    c.PostForm("entityId"),
		Description: c.PostForm("description"),
		ImageType:   c.PostForm("imageType"),
	}
}

func upload(fh *multipart.FileHeader) domain.Upload {
	return domain.Upload{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}
}

func formFile(c *gin.Context, key string) *domain.Upload {
	fh, err := c.FormFile(key)
	if err != nil {
		return nil
	}
	u := upload(fh)
	return &u
}

// Single stores one file from the "file" field.
// POST /api/v1/upload/single
func (h *Handler) Single(c *gin.Context) {
	h.limit(c, 1)
	file := formFile(c, "file")
	t := target(c)

	result, err := h.svc.Single(c.Request.Context(), file, t)
	if httpkit.HandleError(c, err) {
		return
	}
	msg := "File uploaded successfully"
	if t.Requested() {
		msg = fmt.Sprintf("File uploaded and associated with %s %s", t.EntityType, t.EntityID)
	}
	httpkit.Message(c, http.StatusOK, msg, result)
}

// Multiple stores the files of the "files" field.
// POST /api/v1/upload/multiple
func (h *Handler) Multiple(c *gin.Context) {
	h.limit(c, service.MaxFiles)
	var files []domain.Upload
	if form, err := c.MultipartForm(); err == nil {
		for _, fh := range form.File["files"] {
			files = append(files, upload(fh))
		}
	}
	t := target(c)

	result, err := h.svc.Multiple(c.Request.Context(), files, t)
	if httpkit.HandleError(c, err) {
		return
	}
	msg := fmt.Sprintf("%d files uploaded successfully", len(result))
	if t.Requested() {
		msg = fmt.Sprintf("%d files uploaded and associated with %s %s", len(result), t.EntityType, t.EntityID)
	}
	httpkit.Message(c, http.StatusOK, msg, result)
}

// ProfileImage stores a portrait from the "profileImage" field.
// POST /api/v1/upload/profile-image
func (h *Handler) ProfileImage(c *gin.Context) {
	h.limit(c, 1)
	result, err := h.svc.ProfileImage(c.Request.Context(), formFile(c, "profileImage"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Message(c, http.StatusOK, "Profile image uploaded successfully", result)
}

// Delete removes a stored file.
// DELETE /api/v1/upload/:publicId
func (h *Handler) Delete(c *gin.Context) {
	if httpkit.HandleError(c, h.svc.Delete(c.Request.Context(), c.Param("publicId"))) {
		return
	}
	httpkit.Message(c, http.StatusOK, "File deleted successfully", nil)
}
