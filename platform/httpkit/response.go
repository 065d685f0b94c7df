// Package httpkit provides HTTP response utilities.
// This is part of the platform layer and contains no business logic.
package httpkit

import (
	"errors"
	"net/http"

	"portfolio_backend/platform/apperr"
	"portfolio_backend/platform/logger"

	"github.com/gin-gonic/gin"
)

const msgInternal = "internal server error"

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// Pagination is the page window reported with list responses.
type Pagination struct {
	CurrentPage    int  `json:"currentPage"`
	TotalPages     int  `json:"totalPages"`
	TotalDocuments int  `json:"totalDocuments"`
	HasNextPage    bool `json:"hasNextPage"`
	HasPrevPage    bool `json:"hasPrevPage"`
}

// Envelope is the standard success response format.
type Envelope struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message,omitempty"`
	Results    *int        `json:"results,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
	Data       any         `json:"data,omitempty"`
}

// JSON sends a JSON response with the given status code.
func JSON(c *gin.Context, status int, payload any) {
	c.JSON(status, payload)
}

// Data sends {success:true, data} with the given status.
func Data(c *gin.Context, status int, data any) {
	c.JSON(status, Envelope{Success: true, Data: data})
}

// OK sends a 200 {success:true, data} response.
func OK(c *gin.Context, data any) {
	Data(c, http.StatusOK, data)
}

// Message sends {success:true, message, data}.
func Message(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Envelope{Success: true, Message: message, Data: data})
}

// Collection sends an unpaginated list with its result count.
func Collection(c *gin.Context, count int, data any) {
	c.JSON(http.StatusOK, Envelope{Success: true, Results: &count, Data: data})
}

// Page sends a paginated list.
func Page(c *gin.Context, count int, p Pagination, data any) {
	c.JSON(http.StatusOK, Envelope{Success: true, Results: &count, Pagination: &p, Data: data})
}

// NoContent sends 204.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error sends an error response with the given status code and message.
func Error(c *gin.Context, status int, message string, details any) {
	c.JSON(status, ErrorResponse{Error: message, Details: details})
}

// Abort sends an error response and stops the handler chain.
func Abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Error: message})
}

// HandleError maps domain errors to HTTP responses.
// Typed *apperr.Error values use their Kind; anything else is an internal
// error whose cause is logged but never written to the body.
// Returns true if an error was handled, false otherwise.
func HandleError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	var domainErr *apperr.Error
	if errors.As(err, &domainErr) && domainErr.Kind != apperr.KindUnknown {
		status := domainErr.HTTPStatus()
		if status >= http.StatusInternalServerError && domainErr.Kind != apperr.KindUnavailable {
			logError(c, status, err)
			c.JSON(status, ErrorResponse{Error: msgInternal})
			return true
		}
		c.JSON(status, ErrorResponse{Error: domainErr.Message, Details: domainErr.Details})
		return true
	}

	logError(c, http.StatusInternalServerError, err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: msgInternal})
	return true
}

// Recovery converts panics into the uniform internal error envelope.
func Recovery(log *logger.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		if log != nil {
			log.Error("panic recovered", "path", c.Request.URL.Path, "panic", recovered)
		}
		Abort(c, http.StatusInternalServerError, msgInternal)
	})
}

func logError(c *gin.Context, status int, err error) {
	if l, ok := c.Get(ContextLoggerKey); ok {
		if log, ok := l.(*logger.Logger); ok {
			log.HTTPError(c.Request.Method, c.Request.URL.Path, status, err, c.ClientIP())
		}
	}
}
