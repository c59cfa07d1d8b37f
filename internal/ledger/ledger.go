package ledger

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/noah-isme/backend-acara/internal/pricing"
)

// ErrFull is returned when the ledger reached its configured capacity.
var ErrFull = errors.New("ledger is full")

// Entry is an append-only snapshot of one paid booking. Fields are copied at
// payment time so later catalog or profile changes never rewrite history.
type Entry struct {
	ID                 uuid.UUID     `json:"id"`
	BookingID          uuid.UUID     `json:"bookingId"`
	CustomerName       string        `json:"customerName"`
	EventDate          string        `json:"eventDate"`
	PackageID          string        `json:"packageId"`
	GuestCount         int           `json:"guestCount"`
	PackagePrice       pricing.Money `json:"packagePrice"`
	AddOnPrice         pricing.Money `json:"addOnPrice"`
	AdvertisementPrice pricing.Money `json:"advertisementPrice"`
	AmountPaid         pricing.Money `json:"amountPaid"`
	IsMember           bool          `json:"isMember"`
	RecordedAt         time.Time     `json:"recordedAt"`
}

// Report aggregates the full ledger. TotalRevenue counts package and
// advertisement prices only; Collected maps package id to the discounted
// amounts actually paid, add-ons included.
type Report struct {
	TotalEvents  int                      `json:"totalEvents"`
	TotalGuests  int                      `json:"totalGuests"`
	TotalRevenue pricing.Money            `json:"totalRevenue"`
	Members      int                      `json:"members"`
	NonMembers   int                      `json:"nonMembers"`
	PackageSales map[string]int           `json:"packageSales"`
	Collected    map[string]pricing.Money `json:"collectedByPackage"`
}

// Ledger is an in-memory append-only record of paid bookings. Safe for
// concurrent use. Capacity zero means unbounded.
type Ledger struct {
	mu       sync.Mutex
	entries  []Entry
	capacity int
	revision uint64
}

// New returns a ledger bounded to capacity entries; zero disables the bound.
func New(capacity int) *Ledger {
	return &Ledger{capacity: capacity}
}

// Append records one paid booking.
func (l *Ledger) Append(e Entry) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.capacity > 0 && len(l.entries) >= l.capacity {
		return ErrFull
	}
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.RecordedAt.IsZero() {
		e.RecordedAt = time.Now().UTC()
	}
	l.entries = append(l.entries, e)
	l.revision++
	return nil
}

// Entries returns a copy of the ledger in append order.
func (l *Ledger) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Entry(nil), l.entries...)
}

// Len reports the number of recorded entries.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Revision increments on every append. Report caches key on it so a stale
// cache entry can never survive a write.
func (l *Ledger) Revision() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.revision
}

// Aggregate walks the ledger and produces the summary report.
func (l *Ledger) Aggregate() Report {
	l.mu.Lock()
	defer l.mu.Unlock()
	rep := Report{
		PackageSales: make(map[string]int),
		Collected:    make(map[string]pricing.Money),
	}
	for _, e := range l.entries {
		rep.TotalEvents++
		rep.TotalGuests += e.GuestCount
		rep.TotalRevenue += e.PackagePrice + e.AdvertisementPrice
		if e.IsMember {
			rep.Members++
		} else {
			rep.NonMembers++
		}
		rep.PackageSales[e.PackageID]++
		rep.Collected[e.PackageID] += e.AmountPaid
	}
	return rep
}
