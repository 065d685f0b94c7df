package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestTerms(t *testing.T) (*Terms, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	terms := New(rdb)
	terms.now = func() time.Time { return time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC) }
	return terms, mr
}

func TestRecordAndTop(t *testing.T) {
	terms, mr := newTestTerms(t)
	ctx := context.Background()

	for _, term := range []string{"react", "golang", "react", "design", "react", "golang"} {
		if err := terms.Record(ctx, term); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	top, err := terms.Top(ctx, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(top) != 2 || top[0].Term != "react" || top[0].Count != 3 || top[1].Term != "golang" {
		t.Fatalf("unexpected top terms: %+v", top)
	}

	today, err := terms.Today(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if today != 6 {
		t.Fatalf("expected 6 queries today, got %d", today)
	}
	if ttl := mr.TTL("search:daily:2026-03-14"); ttl != dailyTTL {
		t.Fatalf("expected daily ttl %v, got %v", dailyTTL, ttl)
	}
}

func TestTodayWithoutQueries(t *testing.T) {
	terms, _ := newTestTerms(t)
	n, err := terms.Today(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected 0, got %d", n)
	}
}

func TestRecordFailsWhenRedisDown(t *testing.T) {
	terms, mr := newTestTerms(t)
	mr.Close()
	if err := terms.Record(context.Background(), "react"); err == nil {
		t.Fatal("expected error with redis down")
	}
}
