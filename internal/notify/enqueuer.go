package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"github.com/noah-isme/backend-acara/internal/events"
)

// Enqueuer hands booking.paid events to the task queue for asynchronous email
// delivery. It implements events.Notifier.
type Enqueuer struct {
	Client  *asynq.Client
	Enabled bool
}

// Notify enqueues a confirmation task for paid bookings. Other topics are
// ignored.
func (e Enqueuer) Notify(ctx context.Context, event events.Event) error {
	if !e.Enabled || e.Client == nil {
		return nil
	}
	if event.Topic != events.TopicBookingPaid {
		return nil
	}
	var payload struct {
		BookingID  string `json:"bookingId"`
		CustomerID string `json:"customerId"`
		Invoice    string `json:"invoice"`
		Email      string `json:"email"`
		Total      int64  `json:"total"`
	}
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		return fmt.Errorf("notify enqueue: decode payload: %w", err)
	}
	if payload.Email == "" {
		return nil
	}
	task, err := NewBookingConfirmationTask(BookingConfirmationPayload{
		BookingID: payload.BookingID,
		Email:     payload.Email,
		Invoice:   payload.Invoice,
		Total:     payload.Total,
	})
	if err != nil {
		return err
	}
	if _, err := e.Client.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("notify enqueue: %w", err)
	}
	return nil
}
