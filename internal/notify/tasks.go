package notify

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

// TaskTypeBookingConfirmation is the asynq task type for confirmation emails.
const TaskTypeBookingConfirmation = "notify:booking_confirmation"

// BookingConfirmationPayload carries everything the worker needs to render
// the confirmation email without touching shared state.
type BookingConfirmationPayload struct {
	BookingID    string `json:"bookingId"`
	CustomerName string `json:"customerName"`
	Email        string `json:"email"`
	Invoice      string `json:"invoice"`
	Total        int64  `json:"total"`
}

// NewBookingConfirmationTask builds the asynq task for one paid booking.
func NewBookingConfirmationTask(p BookingConfirmationPayload) (*asynq.Task, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeBookingConfirmation, data), nil
}
