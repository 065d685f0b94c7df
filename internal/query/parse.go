package query

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"portfolio_backend/platform/apperr"

	"github.com/google/uuid"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100

	// MaxPage keeps (page-1)*MaxLimit within int.
	MaxPage = math.MaxInt / MaxLimit
)

// Reserved keys never reach the filter map.
var reserved = []string{"page", "sort", "limit", "fields", "search"}

// Operators recognised inside a bracketed filter key, e.g. price[gte]=10.
// Matching is on whole words only.
var (
	bracketKey   = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9_.]*)\[([A-Za-z]+)\]$`)
	rangeOperand = regexp.MustCompile(`\b(gte|gt|lte|lt)\b`)
)

var rangeSQL = map[string]string{
	"gte": ">=",
	"gt":  ">",
	"lte": "<=",
	"lt":  "<",
}

// Filter is a single resolved predicate.
type Filter struct {
	Field  Field
	Op     string
	Values []any
}

// SortKey is one ORDER BY term.
type SortKey struct {
	Field Field
	Desc  bool
}

// Request is a parsed list query.
type Request struct {
	Filters []Filter
	Search  string
	Sort    []SortKey
	Fields  []string
	Page    int
	Limit   int
}

// Offset is the number of rows skipped for the requested page.
func (r Request) Offset() int {
	return (min(max(r.Page, 1), MaxPage) - 1) * min(max(r.Limit, 0), MaxLimit)
}

// Parse resolves raw query parameters against the descriptor. Unknown filter,
// sort or projection names are rejected with a validation error.
func (d *Descriptor) Parse(values url.Values) (Request, error) {
	req := Request{
		Page:   parsePage(values.Get("page")),
		Limit:  parseLimit(values.Get("limit")),
		Search: strings.TrimSpace(values.Get("search")),
	}

	keys := make([]string, 0, len(values))
	for key := range values {
		if !slices.Contains(reserved, key) {
			keys = append(keys, key)
		}
	}
	slices.Sort(keys)

	for _, key := range keys {
		filter, err := d.parseFilter(key, values[key])
		if err != nil {
			return Request{}, err
		}
		req.Filters = append(req.Filters, filter)
	}

	if raw := strings.TrimSpace(values.Get("sort")); raw != "" {
		sortKeys, err := d.parseSort(raw)
		if err != nil {
			return Request{}, apperr.Validation(err.Error())
		}
		req.Sort = sortKeys
	} else {
		req.Sort = d.defaultSort
	}

	if raw := strings.TrimSpace(values.Get("fields")); raw != "" {
		fields, err := d.parseFields(raw)
		if err != nil {
			return Request{}, err
		}
		req.Fields = fields
	}

	return req, nil
}

func (d *Descriptor) parseFilter(key string, raw []string) (Filter, error) {
	name, op := key, "="
	if m := bracketKey.FindStringSubmatch(key); m != nil {
		name = m[1]
		// rewrite the operand token into its SQL comparison
		token := rangeOperand.ReplaceAllStringFunc(m[2], func(s string) string { return rangeSQL[s] })
		if token == m[2] {
			return Filter{}, apperr.Validation(fmt.Sprintf("Unsupported filter operator %q on %s", m[2], name))
		}
		op = token
	}

	field, ok := d.lookup(name)
	if !ok || !field.Filter {
		return Filter{}, apperr.Validation(fmt.Sprintf("Unknown filter field %q for %s", name, d.Entity)).
			WithDetails(d.FilterNames())
	}
	if op != "=" && !field.Type.ordered() {
		return Filter{}, apperr.Validation(fmt.Sprintf("Range filters are not supported on %s", name))
	}
	items := splitValues(raw)
	if op != "=" && len(items) > 1 {
		return Filter{}, apperr.Validation(fmt.Sprintf("Range filter %s accepts a single value", key))
	}

	values := make([]any, 0, len(items))
	for _, item := range items {
		v, err := decode(field.Type, item)
		if err != nil {
			return Filter{}, apperr.Validation(fmt.Sprintf("Invalid value %q for %s", item, name))
		}
		values = append(values, v)
	}
	return Filter{Field: field, Op: op, Values: values}, nil
}

// splitValues flattens repeated keys and comma-separated lists.
func splitValues(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	if len(out) == 0 {
		// keep a single empty value so decode reports it
		out = append(out, "")
	}
	return out
}

func (d *Descriptor) parseSort(raw string) ([]SortKey, error) {
	parts := strings.FieldsFunc(raw, func(r rune) bool { return r == ',' || r == ' ' })
	keys := make([]SortKey, 0, len(parts))
	for _, part := range parts {
		desc := strings.HasPrefix(part, "-")
		name := strings.TrimPrefix(part, "-")
		field, ok := d.lookup(name)
		if !ok || !field.Sort {
			return nil, fmt.Errorf("Unknown sort field %q for %s", name, d.Entity)
		}
		keys = append(keys, SortKey{Field: field, Desc: desc})
	}
	return keys, nil
}

func (d *Descriptor) parseFields(raw string) ([]string, error) {
	parts := strings.Split(raw, ",")
	fields := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" || slices.Contains(fields, part) {
			continue
		}
		if !d.projectable[part] {
			return nil, apperr.Validation(fmt.Sprintf("Unknown field %q for %s", part, d.Entity))
		}
		fields = append(fields, part)
	}
	return fields, nil
}

func decode(t FieldType, raw string) (any, error) {
	switch t {
	case Int:
		return strconv.ParseInt(raw, 10, 64)
	case Float:
		return strconv.ParseFloat(raw, 64)
	case Bool:
		return strconv.ParseBool(raw)
	case Time:
		if ts, err := time.Parse(time.RFC3339, raw); err == nil {
			return ts, nil
		}
		return time.Parse(time.DateOnly, raw)
	case UUID, UUIDArray:
		return uuid.Parse(raw)
	default:
		if raw == "" {
			return nil, fmt.Errorf("empty value")
		}
		return raw, nil
	}
}

// parsePage falls back to the default for non-positive or non-numeric input
// and caps at MaxPage. Values past int range are capped too.
func parsePage(raw string) int {
	page, err := strconv.Atoi(strings.TrimSpace(raw))
	if errors.Is(err, strconv.ErrRange) && !strings.HasPrefix(strings.TrimSpace(raw), "-") {
		return MaxPage
	}
	if err != nil || page < 1 {
		return DefaultPage
	}
	return min(page, MaxPage)
}

// parseLimit falls back to the default for missing, non-numeric or
// non-positive input and caps at MaxLimit.
func parseLimit(raw string) int {
	limit, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || limit < 1 {
		return DefaultLimit
	}
	return min(limit, MaxLimit)
}

// Paging parses only page and limit, for endpoints without a descriptor.
func Paging(values url.Values) (page, limit int) {
	return parsePage(values.Get("page")), parseLimit(values.Get("limit"))
}

// Fixed returns a first-page request with a static sort, used by the
// specialized reads (featured, recent, by category). It panics on a sort the
// descriptor does not declare.
func (d *Descriptor) Fixed(sort string, limit int) Request {
	keys, err := d.parseSort(sort)
	if err != nil {
		panic(err)
	}
	return Request{Sort: keys, Page: DefaultPage, Limit: min(max(limit, 1), MaxLimit)}
}
