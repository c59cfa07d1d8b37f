package notify

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/backend-acara/internal/common"
	"github.com/noah-isme/backend-acara/internal/events"
)

func TestConfirmationHandlerSendsEmail(t *testing.T) {
	payload := BookingConfirmationPayload{
		BookingID: uuid.NewString(),
		Email:     "aina@example.com",
		Invoice:   "INV-20261017-0001",
		Total:     81_000,
	}
	task, err := NewBookingConfirmationTask(payload)
	require.NoError(t, err)

	mail := &common.InMemoryEmail{}
	h := ConfirmationHandler{Mail: mail, Log: zerolog.Nop()}
	require.NoError(t, h.HandleBookingConfirmation(context.Background(), task))

	require.Len(t, mail.Outbox, 1)
	sent := mail.Outbox[0]
	require.Equal(t, "aina@example.com", sent.To)
	require.Contains(t, sent.Body, "INV-20261017-0001")
	require.Contains(t, sent.Body, "810.00")
}

func TestConfirmationHandlerSkipsMissingRecipient(t *testing.T) {
	task, err := NewBookingConfirmationTask(BookingConfirmationPayload{BookingID: uuid.NewString()})
	require.NoError(t, err)

	mail := &common.InMemoryEmail{}
	h := ConfirmationHandler{Mail: mail, Log: zerolog.Nop()}
	require.NoError(t, h.HandleBookingConfirmation(context.Background(), task))
	require.Empty(t, mail.Outbox)
}

func TestConfirmationHandlerRejectsBrokenPayload(t *testing.T) {
	h := ConfirmationHandler{Mail: &common.InMemoryEmail{}, Log: zerolog.Nop()}
	task := asynq.NewTask(TaskTypeBookingConfirmation, []byte("{broken"))
	require.Error(t, h.HandleBookingConfirmation(context.Background(), task))
}

func paidEvent(t *testing.T, email string) events.Event {
	t.Helper()
	payload, err := json.Marshal(map[string]any{
		"bookingId": uuid.NewString(),
		"invoice":   "INV-20261017-0001",
		"email":     email,
		"total":     81000,
	})
	require.NoError(t, err)
	return events.Event{
		ID:          uuid.New(),
		Topic:       events.TopicBookingPaid,
		AggregateID: uuid.New(),
		Payload:     payload,
		OccurredAt:  time.Now().UTC(),
	}
}

func TestEmailNotifierSendsForPaidBooking(t *testing.T) {
	mail := &common.InMemoryEmail{}
	n := EmailNotifier{Mail: mail, Enabled: true, From: "noreply@acara.example"}
	require.NoError(t, n.Notify(context.Background(), paidEvent(t, "aina@example.com")))
	require.Len(t, mail.Outbox, 1)
	require.Equal(t, "Pembayaran berhasil", mail.Outbox[0].Subject)
	require.True(t, strings.Contains(mail.Outbox[0].Body, "810.00"))
}

func TestEmailNotifierRespectsToggles(t *testing.T) {
	mail := &common.InMemoryEmail{}
	n := EmailNotifier{
		Mail:         mail,
		Enabled:      true,
		TopicToggles: map[string]bool{events.TopicBookingPaid: false},
	}
	require.NoError(t, n.Notify(context.Background(), paidEvent(t, "aina@example.com")))
	require.Empty(t, mail.Outbox)
}

func TestEmailNotifierSkipsWithoutRecipient(t *testing.T) {
	mail := &common.InMemoryEmail{}
	n := EmailNotifier{Mail: mail, Enabled: true}
	require.NoError(t, n.Notify(context.Background(), paidEvent(t, "")))
	require.Empty(t, mail.Outbox)
}

func TestEnqueuerIgnoresOtherTopics(t *testing.T) {
	e := Enqueuer{Enabled: true}
	ev := events.Event{Topic: events.TopicBookingCreated, Payload: json.RawMessage("{}")}
	require.NoError(t, e.Notify(context.Background(), ev))
}

func TestEnqueuerDisabledIsNoop(t *testing.T) {
	e := Enqueuer{}
	require.NoError(t, e.Notify(context.Background(), paidEvent(t, "aina@example.com")))
}
