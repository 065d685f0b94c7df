package domain

import (
	"strings"
	"testing"
	"time"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Hello, World!":            "hello-world",
		"  Go   1.25 -- released ": "go-125-released",
		"Déjà vu":                  "deja-vu",
	}
	for in, want := range cases {
		if got := Slugify(in); got != want {
			t.Fatalf("Slugify(%q): expected %q, got %q", in, want, got)
		}
	}
}

func TestReadTime(t *testing.T) {
	if got := ReadTime(""); got != 1 {
		t.Fatalf("expected minimum of 1, got %d", got)
	}
	if got := ReadTime(strings.Repeat("word ", 401)); got != 3 {
		t.Fatalf("expected 3 minutes, got %d", got)
	}
	if got := ReadTime(strings.Repeat("word ", 50000)); got != 120 {
		t.Fatalf("expected cap of 120, got %d", got)
	}
}

func TestNormalizeFillsDerivedFields(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	f := Fields{
		Title:   "Scaling Postgres",
		Content: "<p>Indexes matter.</p>",
		Tags:    []string{" SQL ", "", "Go"},
		Status:  StatusPublished,
	}
	f.Normalize(now)

	if f.Slug != "scaling-postgres" {
		t.Fatalf("expected slug from title, got %q", f.Slug)
	}
	if f.Excerpt == nil || *f.Excerpt != "Indexes matter." {
		t.Fatalf("expected excerpt from content, got %v", f.Excerpt)
	}
	if f.ReadTimeMinutes != 1 {
		t.Fatalf("expected read time 1, got %d", f.ReadTimeMinutes)
	}
	if len(f.Tags) != 2 || f.Tags[0] != "sql" || f.Tags[1] != "go" {
		t.Fatalf("expected cleaned tags, got %v", f.Tags)
	}
	if f.PublishedDate == nil || !f.PublishedDate.Equal(now) {
		t.Fatalf("expected published date stamped, got %v", f.PublishedDate)
	}
}

func TestNormalizeDefaultsToDraft(t *testing.T) {
	f := Fields{Title: "Notes"}
	f.Normalize(time.Now())
	if f.Status != StatusDraft {
		t.Fatalf("expected Draft, got %q", f.Status)
	}
	if f.PublishedDate != nil {
		t.Fatal("expected drafts to stay undated")
	}
}

func TestVisibleAndDerive(t *testing.T) {
	now := time.Now()
	future := now.Add(time.Hour)
	p := Post{
		Fields:   Fields{Status: StatusPublished, PublishedDate: &future},
		Comments: []Comment{{Approved: true}, {Approved: false}},
	}
	p.Derive(now)
	if p.IsPublished {
		t.Fatal("expected future-dated post to be hidden")
	}
	if p.CommentCount != 1 {
		t.Fatalf("expected 1 approved comment, got %d", p.CommentCount)
	}

	p.HideUnapproved()
	if len(p.Comments) != 1 || !p.Comments[0].Approved {
		t.Fatalf("expected only approved comments, got %v", p.Comments)
	}
}
