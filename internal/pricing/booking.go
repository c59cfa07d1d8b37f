package pricing

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/noah-isme/backend-acara/internal/catalog"
)

// State is a booking lifecycle stage.
type State string

// Booking lifecycle states. Paid is terminal; Abandoned is reachable from
// any non-terminal state.
const (
	StateDraft                State = "DRAFT"
	StatePackageSelected      State = "PACKAGE_SELECTED"
	StateAddOnSelected        State = "ADDON_SELECTED"
	StateAdvertisementDecided State = "ADVERTISEMENT_DECIDED"
	StatePriced               State = "PRICED"
	StateInvoiced             State = "INVOICED"
	StatePaid                 State = "PAID"
	StateAbandoned            State = "ABANDONED"
)

// ErrInvalidTransition is returned when an operation is attempted in a state
// that does not permit it.
var ErrInvalidTransition = errors.New("invalid booking state transition")

// Booking tracks one event registration through selection, pricing, and
// payment. It becomes immutable once paid.
type Booking struct {
	ID         uuid.UUID
	CustomerID uuid.UUID
	EventDate  string
	CreatedAt  time.Time

	State                  State
	Package                catalog.Package
	GuestCount             int
	AddOn                  *catalog.AddOn
	AdvertisementPurchased bool
}

// NewBooking starts a draft booking for the given customer and event date.
func NewBooking(customerID uuid.UUID, eventDate string) *Booking {
	return &Booking{
		ID:         uuid.New(),
		CustomerID: customerID,
		EventDate:  eventDate,
		CreatedAt:  time.Now().UTC(),
		State:      StateDraft,
	}
}

// allowed maps each state to the forward states it may move to. Repeating the
// current selection step is permitted so callers can re-prompt after a
// recoverable failure.
var allowed = map[State][]State{
	StateDraft:                {StatePackageSelected},
	StatePackageSelected:      {StatePackageSelected, StateAddOnSelected},
	StateAddOnSelected:        {StateAddOnSelected, StateAdvertisementDecided},
	StateAdvertisementDecided: {StateAdvertisementDecided, StatePriced},
	StatePriced:               {StateInvoiced},
	StateInvoiced:             {StatePaid},
}

func (b *Booking) transition(to State) error {
	for _, next := range allowed[b.State] {
		if next == to {
			b.State = to
			return nil
		}
	}
	return ErrInvalidTransition
}

// Terminal reports whether the booking can no longer change state.
func (b *Booking) Terminal() bool {
	return b.State == StatePaid || b.State == StateAbandoned
}

// Abandon cancels the booking. It is valid from any non-terminal state and
// never from Paid.
func (b *Booking) Abandon() error {
	if b.Terminal() {
		return ErrInvalidTransition
	}
	b.State = StateAbandoned
	return nil
}

// MarkInvoiced transitions a priced booking once its invoice exists.
func (b *Booking) MarkInvoiced() error {
	return b.transition(StateInvoiced)
}

// MarkPaid finalises the booking after successful settlement.
func (b *Booking) MarkPaid() error {
	return b.transition(StatePaid)
}

// Registered reports whether the booking finished the selection flow and is
// eligible for checkout.
func (b *Booking) Registered() bool {
	return b.State == StateAdvertisementDecided
}
