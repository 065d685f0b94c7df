package query

import (
	"encoding/json"
	"net/url"
	"strings"
	"testing"

	"portfolio_backend/platform/apperr"
)

type role string

func (r role) HasRole(name string) bool { return string(r) == name }

func testDescriptor() *Descriptor {
	return MustCompile(Descriptor{
		Entity: "posts",
		Fields: []Field{
			{Name: "id", Column: "t.id", Type: UUID, Filter: true, Sort: true},
			{Name: "title", Column: "t.title", Type: Text, Sort: true},
			{Name: "status", Column: "t.status", Type: Text, Filter: true},
			{Name: "views", Column: "t.views", Type: Int, Filter: true, Sort: true},
			{Name: "featured", Column: "t.featured", Type: Bool, Filter: true},
			{Name: "tags", Column: "t.tags", Type: TextArray, Filter: true},
			{Name: "publishedDate", Column: "t.published_date", Type: Time, Filter: true, Sort: true},
			{Name: "createdAt", Column: "t.created_at", Type: Time, Sort: true},
		},
		Aliases:       map[string]string{"tag": "tags"},
		SearchColumns: []string{"t.title", "t.content"},
		Outputs:       []string{"author"},
		Visibility: func(c Caller) []Condition {
			if c.HasRole("Admin") {
				return nil
			}
			return []Condition{Cond("t.status = ?", "Published"), Cond("t.published_date <= now()")}
		},
	})
}

func TestParseDefaultsPaginationAndSort(t *testing.T) {
	req, err := testDescriptor().Parse(url.Values{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Page != 1 || req.Limit != 20 {
		t.Fatalf("expected page 1 limit 20, got %d/%d", req.Page, req.Limit)
	}
	if len(req.Sort) != 1 || req.Sort[0].Field.Name != "createdAt" || !req.Sort[0].Desc {
		t.Fatalf("expected default sort -createdAt, got %+v", req.Sort)
	}
}

func TestParseClampsPagination(t *testing.T) {
	cases := []struct {
		page, limit         string
		wantPage, wantLimit int
	}{
		{"0", "500", 1, 100},
		{"-3", "0", 1, 20},
		{"abc", "xyz", 1, 20},
		{"4", "7", 4, 7},
	}
	d := testDescriptor()
	for _, tc := range cases {
		req, err := d.Parse(url.Values{"page": {tc.page}, "limit": {tc.limit}})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if req.Page != tc.wantPage || req.Limit != tc.wantLimit {
			t.Fatalf("page=%s limit=%s: expected %d/%d, got %d/%d", tc.page, tc.limit, tc.wantPage, tc.wantLimit, req.Page, req.Limit)
		}
	}
}

func TestHugePageKeepsOffsetNonNegative(t *testing.T) {
	d := testDescriptor()
	for _, raw := range []string{"92233720368547760", "99999999999999999999999"} {
		req, err := d.Parse(url.Values{"page": {raw}, "limit": {"100"}})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if req.Page != MaxPage {
			t.Fatalf("page=%s: expected page capped at %d, got %d", raw, MaxPage, req.Page)
		}
		plan := d.Build(req, role("Admin"))
		if plan.Offset < 0 {
			t.Fatalf("page=%s: expected non-negative offset, got %d", raw, plan.Offset)
		}
	}

	page, _ := Paging(url.Values{"page": {"92233720368547760"}})
	if page != MaxPage {
		t.Fatalf("expected Paging to cap page at %d, got %d", MaxPage, page)
	}
	if off := (Request{Page: page * 2, Limit: 1_000}).Offset(); off < 0 {
		t.Fatalf("expected non-negative offset for hand-built request, got %d", off)
	}
}

func TestParseRejectsUnknownFilter(t *testing.T) {
	_, err := testDescriptor().Parse(url.Values{"password": {"x"}})
	if apperr.GetKind(err) != apperr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestParseRejectsFilterOnNonFilterableField(t *testing.T) {
	_, err := testDescriptor().Parse(url.Values{"title": {"x"}})
	if apperr.GetKind(err) != apperr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestParseRejectsUnknownOperatorAndSort(t *testing.T) {
	d := testDescriptor()
	if _, err := d.Parse(url.Values{"views[gtx]": {"1"}}); apperr.GetKind(err) != apperr.KindValidation {
		t.Fatalf("expected validation error for operator, got %v", err)
	}
	if _, err := d.Parse(url.Values{"sort": {"-secret"}}); apperr.GetKind(err) != apperr.KindValidation {
		t.Fatalf("expected validation error for sort, got %v", err)
	}
	if _, err := d.Parse(url.Values{"fields": {"title,hash"}}); apperr.GetKind(err) != apperr.KindValidation {
		t.Fatalf("expected validation error for fields, got %v", err)
	}
}

func TestParseRejectsRangeOnText(t *testing.T) {
	_, err := testDescriptor().Parse(url.Values{"status[gte]": {"A"}})
	if apperr.GetKind(err) != apperr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestParseRejectsMalformedValue(t *testing.T) {
	_, err := testDescriptor().Parse(url.Values{"views": {"many"}})
	if apperr.GetKind(err) != apperr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestBuildRangeOperators(t *testing.T) {
	d := testDescriptor()
	req, err := d.Parse(url.Values{
		"views[gte]":         {"10"},
		"views[lt]":          {"100"},
		"publishedDate[lte]": {"2024-01-31"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	plan := d.Build(req, role("Admin"))

	for _, fragment := range []string{"t.views >= $", "t.views < $", "t.published_date <= $"} {
		if !strings.Contains(plan.Where, fragment) {
			t.Fatalf("expected %q in %q", fragment, plan.Where)
		}
	}
	if len(plan.Args) != 3 {
		t.Fatalf("expected 3 args, got %d", len(plan.Args))
	}
}

func TestBuildRepeatedValuesBecomeAny(t *testing.T) {
	d := testDescriptor()
	req, err := d.Parse(url.Values{"status": {"Draft", "Archived"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	plan := d.Build(req, role("Admin"))
	if plan.Where != "WHERE t.status = ANY($1)" {
		t.Fatalf("unexpected where: %q", plan.Where)
	}
	values, ok := plan.Args[0].([]string)
	if !ok || len(values) != 2 {
		t.Fatalf("expected []string arg with 2 values, got %#v", plan.Args[0])
	}
}

func TestBuildArrayMembershipThroughAlias(t *testing.T) {
	d := testDescriptor()
	req, err := d.Parse(url.Values{"tag": {"go"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	plan := d.Build(req, role("Admin"))
	if plan.Where != "WHERE $1 = ANY(t.tags)" {
		t.Fatalf("unexpected where: %q", plan.Where)
	}
}

func TestBuildSearchUsesILikeAcrossColumns(t *testing.T) {
	d := testDescriptor()
	req, err := d.Parse(url.Values{"search": {"  50%_off "}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	plan := d.Build(req, role("Admin"))
	if plan.Where != "WHERE (t.title ILIKE $1 OR t.content ILIKE $2)" {
		t.Fatalf("unexpected where: %q", plan.Where)
	}
	if plan.Args[0] != `%50\%\_off%` {
		t.Fatalf("expected escaped pattern, got %v", plan.Args[0])
	}
}

func TestBuildSearchUsesTextVector(t *testing.T) {
	d := MustCompile(Descriptor{
		Entity:     "services",
		Fields:     []Field{{Name: "createdAt", Column: "t.created_at", Type: Time, Sort: true}},
		TextVector: "t.search_vector",
	})
	req, _ := d.Parse(url.Values{"search": {"web design"}})
	plan := d.Build(req, nil)
	if plan.Where != "WHERE t.search_vector @@ websearch_to_tsquery('english', $1)" {
		t.Fatalf("unexpected where: %q", plan.Where)
	}
}

func TestVisibilityOverlayCannotBeWidened(t *testing.T) {
	d := testDescriptor()
	req, err := d.Parse(url.Values{"status": {"Draft"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	plan := d.Build(req, role("Viewer"))
	want := "WHERE t.status = $1 AND t.status = $2 AND t.published_date <= now()"
	if plan.Where != want {
		t.Fatalf("expected %q, got %q", want, plan.Where)
	}
	if plan.Args[0] != "Draft" || plan.Args[1] != "Published" {
		t.Fatalf("unexpected args: %v", plan.Args)
	}

	admin := d.Build(req, role("Admin"))
	if admin.Where != "WHERE t.status = $1" {
		t.Fatalf("expected admin to see only its own filter, got %q", admin.Where)
	}
}

func TestSortAddsTieBreaker(t *testing.T) {
	d := testDescriptor()
	req, _ := d.Parse(url.Values{"sort": {"-views,title"}})
	plan := d.Build(req, role("Admin"))
	if plan.OrderBy != "ORDER BY t.views DESC, t.title ASC, t.id ASC" {
		t.Fatalf("unexpected order by: %q", plan.OrderBy)
	}
}

func TestListAndCountShareArgs(t *testing.T) {
	d := testDescriptor()
	req, _ := d.Parse(url.Values{"featured": {"true"}, "page": {"3"}, "limit": {"10"}})
	plan := d.Build(req, role("Viewer"))

	listSQL, listArgs := plan.ListSQL("SELECT t.id FROM posts t")
	countSQL, countArgs := plan.CountSQL("SELECT COUNT(*) FROM posts t")

	if !strings.HasSuffix(listSQL, "LIMIT $4 OFFSET $5") {
		t.Fatalf("unexpected list sql: %q", listSQL)
	}
	if listArgs[3] != 10 || listArgs[4] != 20 {
		t.Fatalf("expected limit 10 offset 20, got %v %v", listArgs[3], listArgs[4])
	}
	if !strings.HasPrefix(countSQL, "SELECT COUNT(*) FROM posts t WHERE t.featured = $1") {
		t.Fatalf("unexpected count sql: %q", countSQL)
	}
	if len(countArgs) != 3 {
		t.Fatalf("expected 3 count args, got %d", len(countArgs))
	}
}

func TestResultPagination(t *testing.T) {
	res := NewResult([]int{1, 2}, 45, Request{Page: 3, Limit: 20})
	p := res.Pagination()
	if p.TotalPages != 3 || p.HasNextPage || !p.HasPrevPage || p.TotalDocuments != 45 {
		t.Fatalf("unexpected pagination: %+v", p)
	}

	empty := NewResult[int](nil, 0, Request{Page: 1, Limit: 20})
	if empty.Items == nil || empty.Pagination().TotalPages != 0 {
		t.Fatalf("expected empty non-nil page, got %+v", empty)
	}
}

func TestProjectKeepsIDAndRequestedFields(t *testing.T) {
	type post struct {
		ID     string `json:"id"`
		Title  string `json:"title"`
		Secret string `json:"secret"`
	}
	out, err := Project([]post{{ID: "1", Title: "Hello", Secret: "x"}}, []string{"title"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	raw, _ := json.Marshal(out)
	if string(raw) != `[{"id":"1","title":"Hello"}]` {
		t.Fatalf("unexpected projection: %s", raw)
	}
}

func TestCompileRejectsBadDefaultSort(t *testing.T) {
	_, err := Compile(Descriptor{
		Entity:        "x",
		Fields:        []Field{{Name: "name", Column: "t.name"}},
		SearchColumns: []string{"t.name"},
		DefaultSort:   "name",
	})
	if err == nil {
		t.Fatal("expected error for non-sortable default sort")
	}
}

func TestRankedOrdersByTextRank(t *testing.T) {
	d := MustCompile(Descriptor{
		Entity:     "services",
		Fields:     []Field{{Name: "createdAt", Column: "t.created_at", Type: Time, Sort: true}},
		TextVector: "t.search_vector",
	})
	plan := d.Ranked("cloud", 500, nil)
	if !strings.HasPrefix(plan.OrderBy, "ORDER BY ts_rank(t.search_vector, websearch_to_tsquery('english', $1)) DESC") {
		t.Fatalf("unexpected order: %q", plan.OrderBy)
	}
	if plan.Limit != MaxLimit {
		t.Fatalf("expected limit capped at %d, got %d", MaxLimit, plan.Limit)
	}
}
