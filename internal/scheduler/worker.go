package scheduler

import (
	"context"
	"fmt"
	"time"

	"portfolio_backend/internal/email"
	"portfolio_backend/platform/logger"
	"portfolio_backend/platform/metrics"

	"github.com/hibiken/asynq"
)

// WorkerConfig is what the worker needs to consume and deliver.
type WorkerConfig interface {
	GetRedisURL() string
	GetContactNotifyEmail() string
}

type Worker struct {
	server   *asynq.Server
	mux      *asynq.ServeMux
	sender   email.Sender
	notifyTo string
	log      *logger.Logger
}

func NewWorker(cfg WorkerConfig, concurrency int, sender email.Sender, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL)
	if err != nil {
		return nil, err
	}

	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			Queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server:   server,
		mux:      mux,
		sender:   sender,
		notifyTo: cfg.GetContactNotifyEmail(),
		log:      log,
	}

	mux.HandleFunc(TaskContactNotify, w.handleContactNotify)

	return w, nil
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("notification worker stopped", "error", err)
	}
}

// handleContactNotify sends the owner notification and then the auto-reply.
// Only a failed owner notification fails the task; auto-reply failures are
// logged.
func (w *Worker) handleContactNotify(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseContactNotifyPayload(task)
	if err != nil {
		metrics.ContactNotifications.WithLabelValues("invalid").Inc()
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}

	c := email.Contact{
		SubmissionID: payload.SubmissionID,
		Name:         payload.Name,
		Email:        payload.Email,
		Subject:      payload.Subject,
		InquiryType:  payload.InquiryType,
		Message:      payload.Message,
		SubmittedAt:  payload.SubmittedAt.UTC().Format(time.RFC1123),
	}

	if w.notifyTo != "" {
		if err := w.sender.SendContactNotification(ctx, w.notifyTo, c); err != nil {
			metrics.ContactNotifications.WithLabelValues("failed").Inc()
			w.log.Error("contact notification failed", "submissionId", c.SubmissionID, "error", err)
			return err
		}
	}

	if err := w.sender.SendContactAutoReply(ctx, c); err != nil {
		metrics.ContactNotifications.WithLabelValues("auto_reply_failed").Inc()
		w.log.Warn("contact auto-reply failed", "submissionId", c.SubmissionID, "error", err)
		return nil
	}

	metrics.ContactNotifications.WithLabelValues("sent").Inc()
	w.log.Info("contact notification sent", "submissionId", c.SubmissionID)
	return nil
}
