package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event is one emitted domain event.
type Event struct {
	ID          uuid.UUID       `json:"id"`
	Topic       string          `json:"topic"`
	AggregateID uuid.UUID       `json:"aggregateId"`
	Payload     json.RawMessage `json:"payload"`
	OccurredAt  time.Time       `json:"occurredAt"`
}

// ErrUnknownTopic is returned when emitting on a topic outside DefaultTopics.
var ErrUnknownTopic = errors.New("events: unknown topic")

// Notifier reacts to emitted events (e.g. email, metrics, etc.).
type Notifier interface {
	Notify(ctx context.Context, event Event) error
}

// Bus retains emitted events in memory and fans them out to downstream
// handlers. Retention is bounded; the oldest events are dropped first.
type Bus struct {
	Notifiers []Notifier

	mu       sync.Mutex
	retained []Event
	limit    int
}

// DefaultRetention caps the in-memory event log.
const DefaultRetention = 1024

// NewBus returns a bus retaining at most limit events; zero uses
// DefaultRetention.
func NewBus(limit int) *Bus {
	if limit <= 0 {
		limit = DefaultRetention
	}
	return &Bus{limit: limit}
}

// Emit records the event and dispatches it to all configured notifiers.
// Notifier failures are joined and returned but never block retention.
func (b *Bus) Emit(ctx context.Context, topic string, aggregateID uuid.UUID, payload any) (Event, error) {
	if b == nil {
		return Event{}, errors.New("events: bus not configured")
	}
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return Event{}, errors.New("events: topic is required")
	}
	if _, ok := knownTopics[topic]; !ok {
		return Event{}, fmt.Errorf("%w: %s", ErrUnknownTopic, topic)
	}
	if aggregateID == uuid.Nil {
		return Event{}, errors.New("events: aggregate id is required")
	}
	encoded, err := encodePayload(payload)
	if err != nil {
		return Event{}, fmt.Errorf("events: encode payload: %w", err)
	}
	ev := Event{
		ID:          uuid.New(),
		Topic:       topic,
		AggregateID: aggregateID,
		Payload:     encoded,
		OccurredAt:  time.Now().UTC(),
	}
	b.retain(ev)
	var joined error
	for _, notifier := range b.Notifiers {
		if notifier == nil {
			continue
		}
		if notifyErr := notifier.Notify(ctx, ev); notifyErr != nil {
			joined = errors.Join(joined, fmt.Errorf("events: notifier: %w", notifyErr))
		}
	}
	return ev, joined
}

func (b *Bus) retain(ev Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.retained = append(b.retained, ev)
	if len(b.retained) > b.limit {
		b.retained = b.retained[len(b.retained)-b.limit:]
	}
}

// Recent returns up to n retained events, newest last.
func (b *Bus) Recent(n int) []Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	if n <= 0 || n > len(b.retained) {
		n = len(b.retained)
	}
	return append([]Event(nil), b.retained[len(b.retained)-n:]...)
}

func encodePayload(payload any) (json.RawMessage, error) {
	if payload == nil {
		return json.RawMessage("{}"), nil
	}
	switch v := payload.(type) {
	case []byte:
		if len(v) == 0 {
			return json.RawMessage("{}"), nil
		}
		if !json.Valid(v) {
			return nil, errors.New("payload is not valid json")
		}
		return append(json.RawMessage(nil), v...), nil
	case json.RawMessage:
		if len(v) == 0 {
			return json.RawMessage("{}"), nil
		}
		if !json.Valid(v) {
			return nil, errors.New("payload is not valid json")
		}
		return append(json.RawMessage(nil), v...), nil
	case string:
		if strings.TrimSpace(v) == "" {
			return json.RawMessage("{}"), nil
		}
		data := json.RawMessage(v)
		if !json.Valid(data) {
			return nil, errors.New("payload is not valid json")
		}
		return data, nil
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		return data, nil
	}
}
