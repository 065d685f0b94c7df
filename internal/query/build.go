package query

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Plan is a rendered list query. Where and OrderBy are complete clauses (or
// empty); Args are positional and shared by the list and count statements.
type Plan struct {
	Where   string
	Args    []any
	OrderBy string
	Limit   int
	Offset  int
	Fields  []string
}

// Build renders the request for the caller. Visibility overlay conditions are
// ANDed after user filters, so a caller cannot widen them by filtering on the
// same attribute.
func (d *Descriptor) Build(req Request, caller Caller, extra ...Condition) Plan {
	w := &where{}

	for _, f := range req.Filters {
		w.add(filterCondition(f))
	}
	if req.Search != "" {
		w.add(d.searchCondition(req.Search))
	}
	for _, c := range extra {
		w.add(c)
	}
	for _, c := range d.overlay(caller) {
		w.add(c)
	}

	sortKeys := req.Sort
	if len(sortKeys) == 0 {
		sortKeys = d.defaultSort
	}

	return Plan{
		Where:   w.clause(),
		Args:    w.args,
		OrderBy: orderBy(sortKeys),
		Limit:   req.Limit,
		Offset:  req.Offset(),
		Fields:  req.Fields,
	}
}

// Where renders only the predicate, for aggregate queries over the same
// visible set.
func (d *Descriptor) Where(caller Caller, extra ...Condition) (string, []any) {
	w := &where{}
	for _, c := range extra {
		w.add(c)
	}
	for _, c := range d.overlay(caller) {
		w.add(c)
	}
	return w.clause(), w.args
}

// ListSQL appends the plan to a "SELECT ... FROM table t" prefix.
func (p Plan) ListSQL(selectFrom string) (string, []any) {
	var b strings.Builder
	b.WriteString(selectFrom)
	if p.Where != "" {
		b.WriteString(" ")
		b.WriteString(p.Where)
	}
	b.WriteString(" ")
	b.WriteString(p.OrderBy)

	n := len(p.Args)
	fmt.Fprintf(&b, " LIMIT $%d OFFSET $%d", n+1, n+2)

	args := make([]any, 0, n+2)
	args = append(args, p.Args...)
	args = append(args, p.Limit, p.Offset)
	return b.String(), args
}

// CountSQL appends the plan predicate to a "SELECT COUNT(*) FROM table t"
// prefix.
func (p Plan) CountSQL(countFrom string) (string, []any) {
	if p.Where == "" {
		return countFrom, p.Args
	}
	return countFrom + " " + p.Where, p.Args
}

func filterCondition(f Filter) Condition {
	col := f.Field.Column
	switch {
	case f.Field.Type.array():
		if len(f.Values) == 1 {
			return Cond("? = ANY("+col+")", f.Values[0])
		}
		return Cond(col+" && ?", typedSlice(f.Values))
	case f.Op != "=":
		return Cond(col+" "+f.Op+" ?", f.Values[0])
	case len(f.Values) == 1:
		return Cond(col+" = ?", f.Values[0])
	default:
		return Cond(col+" = ANY(?)", typedSlice(f.Values))
	}
}

// typedSlice converts decoded values into a concrete slice pgx can encode as
// an array parameter. All values of one filter share a type.
func typedSlice(values []any) any {
	switch values[0].(type) {
	case string:
		return collect[string](values)
	case int64:
		return collect[int64](values)
	case float64:
		return collect[float64](values)
	case bool:
		return collect[bool](values)
	case time.Time:
		return collect[time.Time](values)
	case uuid.UUID:
		return collect[uuid.UUID](values)
	default:
		return values
	}
}

func collect[T any](values []any) []T {
	out := make([]T, 0, len(values))
	for _, v := range values {
		out = append(out, v.(T))
	}
	return out
}

func (d *Descriptor) searchCondition(term string) Condition {
	if d.TextVector != "" {
		return Cond(d.TextVector+" @@ websearch_to_tsquery('english', ?)", term)
	}
	pattern := Contains(term)
	parts := make([]string, 0, len(d.SearchColumns))
	args := make([]any, 0, len(d.SearchColumns))
	for _, col := range d.SearchColumns {
		parts = append(parts, col+" ILIKE ?")
		args = append(args, pattern)
	}
	return Condition{SQL: "(" + strings.Join(parts, " OR ") + ")", Args: args}
}

func orderBy(keys []SortKey) string {
	parts := make([]string, 0, len(keys)+1)
	hasID := false
	for _, k := range keys {
		dir := "ASC"
		if k.Desc {
			dir = "DESC"
		}
		parts = append(parts, k.Field.Column+" "+dir)
		if k.Field.Column == "t.id" {
			hasID = true
		}
	}
	// stable paging needs a unique tie-breaker
	if !hasID {
		parts = append(parts, "t.id ASC")
	}
	return "ORDER BY " + strings.Join(parts, ", ")
}

type where struct {
	parts []string
	args  []any
}

func (w *where) add(c Condition) {
	if c.SQL == "" {
		return
	}
	w.parts = append(w.parts, w.renumber(c))
}

func (w *where) renumber(c Condition) string {
	var b strings.Builder
	next := 0
	for _, r := range c.SQL {
		if r != '?' {
			b.WriteRune(r)
			continue
		}
		if next >= len(c.Args) {
			panic("query: condition has more placeholders than args: " + c.SQL)
		}
		w.args = append(w.args, c.Args[next])
		next++
		b.WriteString("$" + strconv.Itoa(len(w.args)))
	}
	return b.String()
}

func (w *where) clause() string {
	if len(w.parts) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(w.parts, " AND ")
}

// Ranked builds a first-page plan for a search term. Full-text descriptors
// order by ts_rank, the rest by their default sort.
func (d *Descriptor) Ranked(term string, limit int, caller Caller) Plan {
	req := Request{Search: term, Page: DefaultPage, Limit: min(max(limit, 1), MaxLimit)}
	plan := d.Build(req, caller)
	if d.TextVector != "" {
		// the search term is always the first argument
		plan.OrderBy = "ORDER BY ts_rank(" + d.TextVector + ", websearch_to_tsquery('english', $1)) DESC, t.id ASC"
	}
	return plan
}
