package analytics

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestSpecSQLGroupsByKeyAndOrdersByCount(t *testing.T) {
	s := Spec{
		Name:     "byCategory",
		Key:      "t.category",
		Measures: []Measure{{Name: "featured", Kind: Count, Expr: "t.featured"}},
	}
	sql := s.SQL("services")

	for _, fragment := range []string{
		"SELECT t.category AS k, COUNT(*) AS n",
		"(COUNT(*) FILTER (WHERE t.featured))::float8",
		"FROM services t",
		"GROUP BY 1",
		"ORDER BY n DESC, 1 ASC",
	} {
		if !strings.Contains(sql, fragment) {
			t.Fatalf("expected fragment %q in %q", fragment, sql)
		}
	}
	if strings.Contains(sql, "LIMIT") {
		t.Fatalf("expected no limit, got %q", sql)
	}
}

func TestSpecSQLUnnestsArrays(t *testing.T) {
	s := Spec{Name: "skills", Unnest: "t.skills", Limit: 20}
	sql := s.SQL("team_members")
	if !strings.Contains(sql, "CROSS JOIN LATERAL unnest(t.skills) AS u(k)") {
		t.Fatalf("expected unnest join, got %q", sql)
	}
	if !strings.HasSuffix(sql, "LIMIT 20") {
		t.Fatalf("expected limit 20, got %q", sql)
	}
}

func TestSpecSQLPeriodDefaultsToTwelveDescending(t *testing.T) {
	s := Spec{Name: "monthlyTrend", Period: "t.start_date", Where: "t.featured"}
	sql := s.SQL("projects")

	for _, fragment := range []string{
		"EXTRACT(YEAR FROM t.start_date)::int AS y",
		"EXTRACT(MONTH FROM t.start_date)::int AS m",
		"WHERE (t.featured) AND t.start_date IS NOT NULL",
		"GROUP BY 1, 2",
		"ORDER BY 1 DESC, 2 DESC",
		"LIMIT 12",
	} {
		if !strings.Contains(sql, fragment) {
			t.Fatalf("expected fragment %q in %q", fragment, sql)
		}
	}
}

func TestSpecSQLNaturalKeyOrder(t *testing.T) {
	s := Spec{Name: "ratingDistribution", Key: "t.rating", Order: ByKeyAsc}
	if sql := s.SQL("testimonials"); !strings.Contains(sql, "ORDER BY 1 ASC") {
		t.Fatalf("expected ascending key order, got %q", sql)
	}
}

func TestMeasureSQL(t *testing.T) {
	cases := map[string]Measure{
		"COALESCE(SUM(t.views), 0)::float8": {Kind: Sum, Expr: "t.views"},
		"COALESCE(AVG(t.views), 0)::float8": {Kind: RoundedAvg, Expr: "t.views"},
		"COUNT(*)::float8":                  {Kind: Count},
	}
	for want, m := range cases {
		if got := m.sql(); got != want {
			t.Fatalf("expected %q, got %q", want, got)
		}
	}
}

func TestRateAndRatioGuardZero(t *testing.T) {
	if got := Rate(3, 0); got != 0 {
		t.Fatalf("expected 0, got %v", got)
	}
	if got := Rate(1, 4); got != 25 {
		t.Fatalf("expected 25, got %v", got)
	}
	if got := Ratio(5, 0); got != 0 {
		t.Fatalf("expected 0, got %v", got)
	}
	if got := Ratio(9, 3); got != 3 {
		t.Fatalf("expected 3, got %v", got)
	}
}

func TestRoundHalfAwayFromZero(t *testing.T) {
	cases := []struct {
		in       float64
		decimals int
		want     float64
	}{
		{2.5, 0, 3},
		{-2.5, 0, -3},
		{4.125, 2, 4.13},
		{66.666666, 2, 66.67},
		{1.04, 1, 1},
	}
	for _, tc := range cases {
		if got := Round(tc.in, tc.decimals); got != tc.want {
			t.Fatalf("Round(%v, %d): expected %v, got %v", tc.in, tc.decimals, tc.want, got)
		}
	}
}

func TestSortBuckets(t *testing.T) {
	buckets := []Bucket{{Key: "b", Count: 2}, {Key: "a", Count: 2}, {Key: "c", Count: 5}}
	SortBuckets(buckets, ByCountDesc)
	if buckets[0].Key != "c" || buckets[1].Key != "a" || buckets[2].Key != "b" {
		t.Fatalf("unexpected count order: %+v", buckets)
	}

	ratings := []Bucket{{Key: int32(5)}, {Key: int32(1)}, {Key: int32(3)}}
	SortBuckets(ratings, ByKeyAsc)
	if ratings[0].Key != int32(1) || ratings[2].Key != int32(5) {
		t.Fatalf("unexpected key order: %+v", ratings)
	}

	months := []Bucket{{Key: Period{2023, 12}}, {Key: Period{2024, 2}}, {Key: Period{2024, 1}}}
	SortBuckets(months, ByPeriodDesc)
	if months[0].Key != (Period{2024, 2}) || months[2].Key != (Period{2023, 12}) {
		t.Fatalf("unexpected period order: %+v", months)
	}
}

func TestBucketByKeepsLabelOrderAndDropsEmpty(t *testing.T) {
	sizes := []int{1, 4, 2, 12, 3}
	labels := []string{"Small (1-2)", "Medium (3-5)", "Large (6-10)", "Extra Large (11+)"}
	buckets := BucketBy(sizes, labels, func(n int) string {
		switch {
		case n <= 2:
			return labels[0]
		case n <= 5:
			return labels[1]
		case n <= 10:
			return labels[2]
		default:
			return labels[3]
		}
	})

	if len(buckets) != 3 {
		t.Fatalf("expected 3 non-empty buckets, got %d", len(buckets))
	}
	if buckets[0].Key != "Small (1-2)" || buckets[0].Count != 2 {
		t.Fatalf("unexpected first bucket: %+v", buckets[0])
	}
	if buckets[2].Key != "Extra Large (11+)" || buckets[2].Count != 1 {
		t.Fatalf("unexpected last bucket: %+v", buckets[2])
	}
}

func TestBucketJSON(t *testing.T) {
	b := Bucket{Key: Period{2024, 3}, Count: 4, Values: map[string]float64{"avgViews": 12.5}}
	raw, err := json.Marshal(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `{"_id":{"year":2024,"month":3},"avgViews":12.5,"count":4}`
	if string(raw) != want {
		t.Fatalf("expected %s, got %s", want, raw)
	}
}

func TestKeysSkipsNullAndEmpty(t *testing.T) {
	keys := Keys([]Bucket{{Key: "Design"}, {Key: nil}, {Key: ""}, {Key: "Web"}})
	if len(keys) != 2 || keys[0] != "Design" || keys[1] != "Web" {
		t.Fatalf("expected [Design Web], got %v", keys)
	}
}
