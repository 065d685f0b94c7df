// Package repository records search terms in Redis for the search analytics
// report.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"portfolio_backend/internal/search/transport"

	"github.com/redis/go-redis/v9"
)

const (
	termsKey    = "search:terms"
	dailyPrefix = "search:daily:"
	dailyTTL    = 48 * time.Hour
)

// Terms counts normalized search terms in a sorted set plus a per-day total.
type Terms struct {
	rdb redis.Cmdable
	now func() time.Time
}

// New creates a term recorder over a Redis client.
func New(rdb redis.Cmdable) *Terms {
	return &Terms{rdb: rdb, now: time.Now}
}

func (t *Terms) dailyKey() string {
	return dailyPrefix + t.now().UTC().Format(time.DateOnly)
}

// Record counts one query for term.
func (t *Terms) Record(ctx context.Context, term string) error {
	day := t.dailyKey()
	_, err := t.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.ZIncrBy(ctx, termsKey, 1, term)
		p.Incr(ctx, day)
		p.Expire(ctx, day, dailyTTL)
		return nil
	})
	if err != nil {
		return fmt.Errorf("record search term: %w", err)
	}
	return nil
}

// Top returns the n most searched terms, most frequent first.
func (t *Terms) Top(ctx context.Context, n int) ([]transport.TermCount, error) {
	rows, err := t.rdb.ZRevRangeWithScores(ctx, termsKey, 0, int64(n-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("top search terms: %w", err)
	}
	out := make([]transport.TermCount, 0, len(rows))
	for _, z := range rows {
		term, _ := z.Member.(string)
		out = append(out, transport.TermCount{Term: term, Count: int(z.Score)})
	}
	return out, nil
}

// Today returns the number of queries recorded since midnight UTC.
func (t *Terms) Today(ctx context.Context) (int, error) {
	n, err := t.rdb.Get(ctx, t.dailyKey()).Int()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("daily search total: %w", err)
	}
	return n, nil
}
