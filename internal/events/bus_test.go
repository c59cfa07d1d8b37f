package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
)

type recordingNotifier struct {
	got []Event
	err error
}

func (n *recordingNotifier) Notify(_ context.Context, ev Event) error {
	n.got = append(n.got, ev)
	return n.err
}

func TestEmitFansOut(t *testing.T) {
	first := &recordingNotifier{}
	second := &recordingNotifier{}
	bus := NewBus(0)
	bus.Notifiers = []Notifier{first, second}

	ev, err := bus.Emit(context.Background(), TopicBookingPaid, uuid.New(), map[string]any{"total": 81000})
	if err != nil {
		t.Fatalf("emit: %v", err)
	}
	if len(first.got) != 1 || len(second.got) != 1 {
		t.Fatalf("expected both notifiers to receive the event, got %d/%d", len(first.got), len(second.got))
	}
	if first.got[0].ID != ev.ID {
		t.Fatal("notifier received a different event")
	}
}

func TestEmitJoinsNotifierErrors(t *testing.T) {
	failing := &recordingNotifier{err: errors.New("smtp down")}
	ok := &recordingNotifier{}
	bus := NewBus(0)
	bus.Notifiers = []Notifier{failing, ok}

	_, err := bus.Emit(context.Background(), TopicBookingCreated, uuid.New(), nil)
	if err == nil {
		t.Fatal("expected joined notifier error")
	}
	if len(ok.got) != 1 {
		t.Fatal("a failing notifier must not block the others")
	}
}

func TestEmitValidatesInput(t *testing.T) {
	bus := NewBus(0)
	if _, err := bus.Emit(context.Background(), "", uuid.New(), nil); err == nil {
		t.Fatal("expected error for empty topic")
	}
	if _, err := bus.Emit(context.Background(), TopicBookingPaid, uuid.Nil, nil); err == nil {
		t.Fatal("expected error for nil aggregate id")
	}
	if _, err := bus.Emit(context.Background(), TopicBookingPaid, uuid.New(), json.RawMessage("{broken")); err == nil {
		t.Fatal("expected error for invalid json payload")
	}
	if _, err := bus.Emit(context.Background(), "booking.exploded", uuid.New(), nil); !errors.Is(err, ErrUnknownTopic) {
		t.Fatalf("expected ErrUnknownTopic, got %v", err)
	}
}

func TestRetentionBounded(t *testing.T) {
	bus := NewBus(3)
	for i := 0; i < 5; i++ {
		if _, err := bus.Emit(context.Background(), TopicBookingCreated, uuid.New(), nil); err != nil {
			t.Fatal(err)
		}
	}
	recent := bus.Recent(0)
	if len(recent) != 3 {
		t.Fatalf("expected 3 retained events, got %d", len(recent))
	}
}
