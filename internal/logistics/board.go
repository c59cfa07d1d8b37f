package logistics

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrDateBooked is returned when the venue already has an event that day.
	ErrDateBooked = errors.New("venue already booked for that date")
	// ErrInvalidDate is returned for dates that do not parse as YYYY-MM-DD.
	ErrInvalidDate = errors.New("invalid event date")
	// ErrNotReserved is returned when releasing a date with no reservation.
	ErrNotReserved = errors.New("date has no reservation")
)

// DateLayout is the wire format for event dates.
const DateLayout = "2006-01-02"

// Board tracks venue availability by date. One event per date. Safe for
// concurrent use.
type Board struct {
	mu       sync.Mutex
	reserved map[string]uuid.UUID
}

// NewBoard returns an empty availability board.
func NewBoard() *Board {
	return &Board{reserved: make(map[string]uuid.UUID)}
}

// ValidateDate checks the wire format.
func ValidateDate(date string) error {
	if _, err := time.Parse(DateLayout, date); err != nil {
		return ErrInvalidDate
	}
	return nil
}

// Reserve claims the date for a booking.
func (b *Board) Reserve(date string, bookingID uuid.UUID) error {
	if err := ValidateDate(date); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, taken := b.reserved[date]; taken {
		return ErrDateBooked
	}
	b.reserved[date] = bookingID
	return nil
}

// Release frees a reserved date. Only the booking holding the reservation may
// release it.
func (b *Board) Release(date string, bookingID uuid.UUID) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	holder, ok := b.reserved[date]
	if !ok || holder != bookingID {
		return ErrNotReserved
	}
	delete(b.reserved, date)
	return nil
}

// Available reports whether the date is free.
func (b *Board) Available(date string) bool {
	if ValidateDate(date) != nil {
		return false
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	_, taken := b.reserved[date]
	return !taken
}

// ReservedDates returns all reserved dates in ascending order.
func (b *Board) ReservedDates() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	dates := make([]string, 0, len(b.reserved))
	for d := range b.reserved {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}
