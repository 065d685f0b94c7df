// Package analytics builds the grouped counts behind every /analytics
// endpoint. A Spec describes one distribution (a GROUP BY over a key, an
// unnested array or a year/month period) and the Runner turns each spec into
// a single SQL statement. The shaping helpers at the bottom are pure.
package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"

	"portfolio_backend/platform/db"
)

// MeasureKind selects the aggregate function of a Measure.
type MeasureKind int

const (
	Count MeasureKind = iota
	Sum
	Avg
	RoundedAvg
)

// Measure is an extra aggregate computed per bucket. For Count, Expr is an
// optional boolean filter.
type Measure struct {
	Name     string
	Kind     MeasureKind
	Expr     string
	Decimals int
}

func (m Measure) sql() string {
	switch m.Kind {
	case Count:
		if m.Expr == "" {
			return "COUNT(*)::float8"
		}
		return "(COUNT(*) FILTER (WHERE " + m.Expr + "))::float8"
	case Sum:
		return "COALESCE(SUM(" + m.Expr + "), 0)::float8"
	default:
		return "COALESCE(AVG(" + m.Expr + "), 0)::float8"
	}
}

// Order is the bucket ordering of a spec.
type Order int

const (
	ByCountDesc Order = iota
	ByKeyAsc
	ByPeriodDesc
)

// DefaultPeriodLimit is how many months a trend spec returns.
const DefaultPeriodLimit = 12

// Spec describes one distribution. Exactly one of Key, Unnest or Period is
// set. Where may reference $n placeholders bound by Args.
type Spec struct {
	Name     string
	Key      string
	Unnest   string
	Period   string
	Where    string
	Args     []any
	Measures []Measure
	Order    Order
	Limit    int
}

// Period is the key of a monthly bucket.
type Period struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// Bucket is one group. It encodes as {"_id": key, "count": n, <measures>}.
type Bucket struct {
	Key    any
	Count  int64
	Values map[string]float64
}

// Value returns a measure, 0 when absent.
func (b Bucket) Value(name string) float64 {
	return b.Values[name]
}

func (b Bucket) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(b.Values)+2)
	for k, v := range b.Values {
		out[k] = v
	}
	out["_id"] = b.Key
	out["count"] = b.Count
	return json.Marshal(out)
}

// SQL renders s as one statement over table (aliased t).
func (s Spec) SQL(table string) string {
	var b strings.Builder
	b.WriteString("SELECT ")

	groupBy := "1"
	switch {
	case s.Period != "":
		fmt.Fprintf(&b, "EXTRACT(YEAR FROM %s)::int AS y, EXTRACT(MONTH FROM %s)::int AS m", s.Period, s.Period)
		groupBy = "1, 2"
	case s.Unnest != "":
		b.WriteString("u.k AS k")
	default:
		b.WriteString(s.Key + " AS k")
	}
	b.WriteString(", COUNT(*) AS n")
	for _, m := range s.Measures {
		b.WriteString(", " + m.sql())
	}

	b.WriteString(" FROM " + table + " t")
	if s.Unnest != "" {
		fmt.Fprintf(&b, " CROSS JOIN LATERAL unnest(%s) AS u(k)", s.Unnest)
	}

	conds := make([]string, 0, 2)
	if s.Where != "" {
		conds = append(conds, "("+s.Where+")")
	}
	if s.Period != "" {
		conds = append(conds, s.Period+" IS NOT NULL")
	}
	if len(conds) > 0 {
		b.WriteString(" WHERE " + strings.Join(conds, " AND "))
	}

	b.WriteString(" GROUP BY " + groupBy)

	switch s.effectiveOrder() {
	case ByPeriodDesc:
		b.WriteString(" ORDER BY 1 DESC, 2 DESC")
	case ByKeyAsc:
		b.WriteString(" ORDER BY 1 ASC")
	default:
		b.WriteString(" ORDER BY n DESC, 1 ASC")
	}

	if limit := s.effectiveLimit(); limit > 0 {
		fmt.Fprintf(&b, " LIMIT %d", limit)
	}
	return b.String()
}

func (s Spec) effectiveOrder() Order {
	if s.Period != "" {
		return ByPeriodDesc
	}
	return s.Order
}

func (s Spec) effectiveLimit() int {
	if s.Limit == 0 && s.Period != "" {
		return DefaultPeriodLimit
	}
	return s.Limit
}

// Runner executes specs against the store.
type Runner struct {
	db db.Querier
}

// NewRunner creates a runner over q.
func NewRunner(q db.Querier) *Runner {
	return &Runner{db: q}
}

// Run executes each spec and returns its buckets keyed by spec name.
func (r *Runner) Run(ctx context.Context, table string, specs ...Spec) (map[string][]Bucket, error) {
	out := make(map[string][]Bucket, len(specs))
	for _, s := range specs {
		buckets, err := r.run(ctx, table, s)
		if err != nil {
			return nil, fmt.Errorf("analytics %s: %w", s.Name, err)
		}
		out[s.Name] = buckets
	}
	return out, nil
}

func (r *Runner) run(ctx context.Context, table string, s Spec) ([]Bucket, error) {
	rows, err := r.db.Query(ctx, s.SQL(table), s.Args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	buckets := make([]Bucket, 0)
	for rows.Next() {
		measures := make([]float64, len(s.Measures))
		dest := make([]any, 0, len(measures)+3)

		var (
			key         any
			year, month *int32
			count       int64
		)
		if s.Period != "" {
			dest = append(dest, &year, &month)
		} else {
			dest = append(dest, &key)
		}
		dest = append(dest, &count)
		for i := range measures {
			dest = append(dest, &measures[i])
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}

		b := Bucket{Key: key, Count: count, Values: make(map[string]float64, len(measures))}
		if s.Period != "" {
			b.Key = Period{Year: int(deref(year)), Month: int(deref(month))}
		}
		for i, m := range s.Measures {
			v := measures[i]
			if m.Kind == RoundedAvg {
				v = Round(v, m.Decimals)
			}
			b.Values[m.Name] = v
		}
		buckets = append(buckets, b)
	}
	return buckets, rows.Err()
}

// Totals computes whole-table aggregates in one row, keyed by measure name.
// "total" is always present.
func (r *Runner) Totals(ctx context.Context, table, where string, measures ...Measure) (map[string]float64, error) {
	parts := []string{"COUNT(*)::float8"}
	for _, m := range measures {
		parts = append(parts, m.sql())
	}
	query := "SELECT " + strings.Join(parts, ", ") + " FROM " + table + " t"
	if where != "" {
		query += " WHERE " + where
	}

	values := make([]float64, len(measures)+1)
	dest := make([]any, len(values))
	for i := range values {
		dest[i] = &values[i]
	}
	if err := r.db.QueryRow(ctx, query).Scan(dest...); err != nil {
		return nil, fmt.Errorf("analytics totals: %w", err)
	}

	out := map[string]float64{"total": values[0]}
	for i, m := range measures {
		v := values[i+1]
		if m.Kind == RoundedAvg {
			v = Round(v, m.Decimals)
		}
		out[m.Name] = v
	}
	return out, nil
}

func deref(v *int32) int32 {
	if v == nil {
		return 0
	}
	return *v
}

// Rate is num/den*100, or 0 when den is 0.
func Rate(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den * 100
}

// Ratio is num/den, or 0 when den is 0.
func Ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

// Round rounds half away from zero to the given number of decimals.
func Round(v float64, decimals int) float64 {
	if decimals <= 0 {
		return math.Round(v)
	}
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}

// SortBuckets orders buckets in place.
func SortBuckets(buckets []Bucket, order Order) {
	sort.SliceStable(buckets, func(i, j int) bool {
		switch order {
		case ByKeyAsc:
			return keyLess(buckets[i].Key, buckets[j].Key)
		case ByPeriodDesc:
			return keyLess(buckets[j].Key, buckets[i].Key)
		default:
			if buckets[i].Count != buckets[j].Count {
				return buckets[i].Count > buckets[j].Count
			}
			return keyLess(buckets[i].Key, buckets[j].Key)
		}
	})
}

func keyLess(a, b any) bool {
	switch av := a.(type) {
	case Period:
		bv, _ := b.(Period)
		if av.Year != bv.Year {
			return av.Year < bv.Year
		}
		return av.Month < bv.Month
	case int64:
		bv, _ := b.(int64)
		return av < bv
	case int32:
		bv, _ := b.(int32)
		return av < bv
	case int:
		bv, _ := b.(int)
		return av < bv
	case float64:
		bv, _ := b.(float64)
		return av < bv
	default:
		return fmt.Sprint(a) < fmt.Sprint(b)
	}
}

// BucketBy counts items into labelled buckets, returned in label order.
// Items whose label is not listed are dropped, as are empty buckets.
func BucketBy[T any](items []T, labels []string, label func(T) string) []Bucket {
	counts := make(map[string]int64, len(labels))
	for _, item := range items {
		counts[label(item)]++
	}
	out := make([]Bucket, 0, len(labels))
	for _, l := range labels {
		if n := counts[l]; n > 0 {
			out = append(out, Bucket{Key: l, Count: n, Values: map[string]float64{}})
		}
	}
	return out
}

// Keys returns the string keys of buckets in order, skipping NULL and
// non-text keys.
func Keys(buckets []Bucket) []string {
	out := make([]string, 0, len(buckets))
	for _, b := range buckets {
		if s, ok := b.Key.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}
