package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/noah-isme/backend-acara/internal/common"
	"github.com/noah-isme/backend-acara/internal/events"
	"github.com/noah-isme/backend-acara/internal/pricing"
)

// EmailNotifier sends transactional emails for selected topics. It is the
// synchronous fallback used when the task queue is not configured.
type EmailNotifier struct {
	Mail         common.EmailSender
	Enabled      bool
	From         string
	TopicToggles map[string]bool
}

// Notify implements the events.Notifier interface.
func (n EmailNotifier) Notify(_ context.Context, event events.Event) error {
	if !n.Enabled || n.Mail == nil {
		return nil
	}
	if n.TopicToggles != nil {
		if enabled, ok := n.TopicToggles[event.Topic]; ok && !enabled {
			return nil
		}
	}
	payload := map[string]any{}
	if len(event.Payload) > 0 {
		if err := json.Unmarshal(event.Payload, &payload); err != nil {
			return fmt.Errorf("email notify: decode payload: %w", err)
		}
	}
	to := extractRecipient(payload)
	if to == "" {
		return nil
	}
	return n.Mail.Send(to, subjectFor(event.Topic), bodyFor(event.Topic, payload, event.OccurredAt))
}

func extractRecipient(payload map[string]any) string {
	keys := []string{"email", "recipient", "customerEmail"}
	for _, key := range keys {
		if val, ok := payload[key]; ok {
			if s, ok := val.(string); ok {
				s = strings.TrimSpace(s)
				if s != "" {
					return s
				}
			}
		}
	}
	return ""
}

func subjectFor(topic string) string {
	switch topic {
	case events.TopicBookingCreated:
		return "Pemesanan diterima"
	case events.TopicBookingPaid:
		return "Pembayaran berhasil"
	case events.TopicBookingAbandoned:
		return "Pemesanan dibatalkan"
	case events.TopicPaymentFailed:
		return "Pembayaran gagal"
	case events.TopicCustomerJoined:
		return "Selamat datang"
	default:
		return "Pemberitahuan"
	}
}

func bodyFor(topic string, payload map[string]any, occurredAt time.Time) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Topik: %s\n", topic)
	fmt.Fprintf(&sb, "Waktu: %s\n", occurredAt.Format(time.RFC3339))
	if id, ok := payload["bookingId"].(string); ok && id != "" {
		fmt.Fprintf(&sb, "Pemesanan: %s\n", id)
	}
	if inv, ok := payload["invoice"].(string); ok && inv != "" {
		fmt.Fprintf(&sb, "Faktur: %s\n", inv)
	}
	if total, ok := payload["total"].(float64); ok && total > 0 {
		fmt.Fprintf(&sb, "Total: %s\n", pricing.FormatAmount(int64(total)))
	}
	return sb.String()
}
