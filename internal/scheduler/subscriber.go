package scheduler

import (
	"context"

	"portfolio_backend/internal/events"
	"portfolio_backend/platform/logger"
)

// Subscribe queues a notification for every stored contact submission. With
// a nil enqueuer the submission is only logged.
func Subscribe(bus events.Bus, q Enqueuer, log *logger.Logger) {
	name := events.ContactSubmitted{}.EventName()
	bus.Subscribe(name, events.HandlerFunc(func(ctx context.Context, event events.Event) error {
		e, ok := event.(events.ContactSubmitted)
		if !ok {
			return nil
		}
		if q == nil {
			log.Info("contact submission received, notifications disabled",
				"submissionId", e.SubmissionID, "inquiryType", e.InquiryType)
			return nil
		}
		return q.EnqueueContactNotify(ctx, PayloadFromEvent(e))
	}))
}
