package query

import (
	"context"
	"encoding/json"
	"fmt"

	"portfolio_backend/platform/db"
	"portfolio_backend/platform/httpkit"

	"github.com/jackc/pgx/v5"
)

// Result is one page of items plus the pagination totals.
type Result[T any] struct {
	Items []T
	Total int
	Page  int
	Limit int

	// Fields is the requested projection, empty for all fields.
	Fields []string
}

// NewResult wraps a page of items.
func NewResult[T any](items []T, total int, req Request) Result[T] {
	if items == nil {
		items = []T{}
	}
	return Result[T]{Items: items, Total: total, Page: req.Page, Limit: req.Limit, Fields: req.Fields}
}

// TotalPages is ceil(total/limit).
func (r Result[T]) TotalPages() int {
	if r.Limit <= 0 {
		return 0
	}
	return (r.Total + r.Limit - 1) / r.Limit
}

// Pagination renders the envelope block.
func (r Result[T]) Pagination() httpkit.Pagination {
	pages := r.TotalPages()
	return httpkit.Pagination{
		CurrentPage:    r.Page,
		TotalPages:     pages,
		TotalDocuments: r.Total,
		HasNextPage:    r.Page < pages,
		HasPrevPage:    r.Page > 1,
	}
}

// Fetch runs the list and count statements of a plan. scan is typically
// pgx.RowToStructByName or a hand-written row scanner.
func Fetch[T any](ctx context.Context, q db.Querier, plan Plan, selectFrom, countFrom string, scan pgx.RowToFunc[T]) ([]T, int, error) {
	countSQL, countArgs := plan.CountSQL(countFrom)
	var total int
	if err := q.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count: %w", err)
	}

	listSQL, listArgs := plan.ListSQL(selectFrom)
	rows, err := q.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("list: %w", err)
	}
	items, err := pgx.CollectRows(rows, scan)
	if err != nil {
		return nil, 0, fmt.Errorf("scan: %w", err)
	}
	return items, total, nil
}

// Project keeps only id and the requested fields of each item. Items are
// returned unchanged when no projection was requested.
func Project[T any](items []T, fields []string) (any, error) {
	if len(fields) == 0 {
		return items, nil
	}
	out := make([]map[string]json.RawMessage, 0, len(items))
	for _, item := range items {
		projected, err := projectOne(item, fields)
		if err != nil {
			return nil, err
		}
		out = append(out, projected)
	}
	return out, nil
}

func projectOne(item any, fields []string) (map[string]json.RawMessage, error) {
	raw, err := json.Marshal(item)
	if err != nil {
		return nil, err
	}
	var full map[string]json.RawMessage
	if err := json.Unmarshal(raw, &full); err != nil {
		return nil, err
	}
	kept := make(map[string]json.RawMessage, len(fields)+1)
	if id, ok := full["id"]; ok {
		kept["id"] = id
	}
	for _, f := range fields {
		if v, ok := full[f]; ok {
			kept[f] = v
		}
	}
	return kept, nil
}

// Collect runs only the list statement of a plan, for reads that do not
// report pagination.
func Collect[T any](ctx context.Context, q db.Querier, plan Plan, selectFrom string, scan pgx.RowToFunc[T]) ([]T, error) {
	listSQL, listArgs := plan.ListSQL(selectFrom)
	rows, err := q.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}
	items, err := pgx.CollectRows(rows, scan)
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	return items, nil
}
