// Package resource holds the glue shared by the entity controllers: id and
// limit parameters, patch merging and list rendering.
package resource

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"portfolio_backend/internal/query"
	"portfolio_backend/platform/apperr"
	"portfolio_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const msgInvalidBody = "Invalid input data. Request body must be valid JSON"

// ID parses a uuid path parameter, aborting with 400 when it is malformed.
func ID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "Invalid "+param+": "+c.Param(param), nil)
		return uuid.UUID{}, false
	}
	return id, true
}

// Limit reads an integer query parameter clamped into [1, max].
func Limit(c *gin.Context, key string, def, max int) int {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return def
	}
	return min(n, max)
}

// Body reads the raw JSON request body.
func Body(c *gin.Context) ([]byte, bool) {
	raw, err := c.GetRawData()
	if err != nil || !json.Valid(raw) {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidBody, nil)
		return nil, false
	}
	return raw, true
}

// Bind decodes the JSON body into dst, aborting with 400 on malformed input.
func Bind(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidBody, nil)
		return false
	}
	return true
}

// Merge overlays the attributes present in patch onto dst. Keys absent from
// the patch keep their current value; unknown keys are ignored.
func Merge(dst any, patch []byte) error {
	if len(bytes.TrimSpace(patch)) == 0 {
		return nil
	}
	if err := json.Unmarshal(patch, dst); err != nil {
		return apperr.Validation("Invalid input data. " + describeDecodeError(err))
	}
	return nil
}

func describeDecodeError(err error) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return "Invalid value for " + typeErr.Field
	}
	return "Malformed request body"
}

// List writes a page of results with the optional field projection applied.
func List[T any](c *gin.Context, res query.Result[T]) {
	data, err := query.Project(res.Items, res.Fields)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Page(c, len(res.Items), res.Pagination(), data)
}

// Items writes an unpaginated list.
func Items[T any](c *gin.Context, items []T) {
	if items == nil {
		items = []T{}
	}
	httpkit.Collection(c, len(items), items)
}
