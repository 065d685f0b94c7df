// Package scheduler moves contact notifications off the request path onto
// an asynq queue backed by Redis.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"portfolio_backend/platform/config"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
)

// Queue is the asynq queue contact tasks are enqueued on.
const Queue = "default"

const (
	notifyMaxRetry = 5
	notifyTimeout  = time.Minute
)

type Client struct {
	client *asynq.Client
}

// Enqueuer schedules contact notification tasks.
type Enqueuer interface {
	EnqueueContactNotify(ctx context.Context, payload ContactNotifyPayload) error
}

func NewClient(cfg config.RedisConfig) (*Client, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL)
	if err != nil {
		return nil, err
	}

	return &Client{client: asynq.NewClient(opt)}, nil
}

func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// EnqueueContactNotify queues one notification per submission. A duplicate
// enqueue for the same submission is a no-op.
func (c *Client) EnqueueContactNotify(ctx context.Context, payload ContactNotifyPayload) error {
	if c == nil || c.client == nil {
		return nil
	}

	task, err := NewContactNotifyTask(payload)
	if err != nil {
		return err
	}

	_, err = c.client.EnqueueContext(ctx, task,
		asynq.Queue(Queue),
		asynq.TaskID("contact-notify-"+payload.SubmissionID),
		asynq.MaxRetry(notifyMaxRetry),
		asynq.Timeout(notifyTimeout),
	)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		return nil
	}
	return err
}

func redisClientOpt(redisURL string) (asynq.RedisClientOpt, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return asynq.RedisClientOpt{}, err
	}

	return asynq.RedisClientOpt{
		Addr:      opt.Addr,
		Username:  opt.Username,
		Password:  opt.Password,
		DB:        opt.DB,
		TLSConfig: opt.TLSConfig,
	}, nil
}
