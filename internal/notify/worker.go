package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/noah-isme/backend-acara/internal/common"
	"github.com/noah-isme/backend-acara/internal/pricing"
)

// ConfirmationHandler processes booking confirmation tasks on the worker.
type ConfirmationHandler struct {
	Mail common.EmailSender
	From string
	Log  zerolog.Logger
}

// HandleBookingConfirmation renders and sends one confirmation email.
func (h ConfirmationHandler) HandleBookingConfirmation(_ context.Context, task *asynq.Task) error {
	var p BookingConfirmationPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		return fmt.Errorf("booking confirmation: decode payload: %w", err)
	}
	if p.Email == "" {
		return nil
	}
	subject := "Pembayaran berhasil"
	body := fmt.Sprintf(
		"Terima kasih!\n\nPemesanan %s telah dibayar.\nFaktur: %s\nTotal: %s\n",
		p.BookingID, p.Invoice, pricing.FormatAmount(p.Total),
	)
	if err := h.Mail.Send(p.Email, subject, body); err != nil {
		return fmt.Errorf("booking confirmation: send email: %w", err)
	}
	h.Log.Info().Str("booking_id", p.BookingID).Str("invoice", p.Invoice).Msg("confirmation email sent")
	return nil
}

// Mux returns the asynq handler mux for the worker process.
func (h ConfirmationHandler) Mux() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskTypeBookingConfirmation, h.HandleBookingConfirmation)
	return mux
}
