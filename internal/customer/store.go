package customer

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/noah-isme/backend-acara/internal/membership"
)

var (
	// ErrNotFound is returned when no customer matches the given id.
	ErrNotFound = errors.New("customer not found")
	// ErrEmailTaken is returned when registering a duplicate email.
	ErrEmailTaken = errors.New("email already registered")
)

// Customer is one registered client of the events business.
type Customer struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Member   bool      `json:"member"`
	Points   int       `json:"points"`
	JoinedAt time.Time `json:"joinedAt"`

	BookingIDs []uuid.UUID `json:"bookingIds"`
}

// Store is an in-memory customer registry. Safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]*Customer
	byEmail map[string]uuid.UUID
}

// NewStore returns an empty registry.
func NewStore() *Store {
	return &Store{
		byID:    make(map[uuid.UUID]*Customer),
		byEmail: make(map[string]uuid.UUID),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register adds a new customer. Membership is opt-in at registration and can
// be enabled later via OptIn.
func (s *Store) Register(name, email string, member bool) (Customer, error) {
	email = normalizeEmail(email)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byEmail[email]; exists {
		return Customer{}, ErrEmailTaken
	}
	c := &Customer{
		ID:       uuid.New(),
		Name:     strings.TrimSpace(name),
		Email:    email,
		Member:   member,
		JoinedAt: time.Now().UTC(),
	}
	s.byID[c.ID] = c
	s.byEmail[email] = c.ID
	return *c, nil
}

// Get returns a copy of the customer.
func (s *Store) Get(id uuid.UUID) (Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.byID[id]
	if !ok {
		return Customer{}, ErrNotFound
	}
	out := *c
	out.BookingIDs = append([]uuid.UUID(nil), c.BookingIDs...)
	return out, nil
}

// AddPoints credits loyalty points. Negative deltas are ignored.
func (s *Store) AddPoints(id uuid.UUID, delta int) (int, error) {
	if delta < 0 {
		delta = 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.byID[id]
	if !ok {
		return 0, ErrNotFound
	}
	c.Points += delta
	return c.Points, nil
}

// OptIn enables membership for an existing customer.
func (s *Store) OptIn(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.byID[id]
	if !ok {
		return ErrNotFound
	}
	c.Member = true
	return nil
}

// AttachBooking links a booking to the customer's history.
func (s *Store) AttachBooking(id, bookingID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.byID[id]
	if !ok {
		return ErrNotFound
	}
	c.BookingIDs = append(c.BookingIDs, bookingID)
	return nil
}

// Tier resolves the customer's membership tier from their points at call
// time. Non-members always resolve to the base tier regardless of points.
func (s *Store) Tier(id uuid.UUID) (membership.Tier, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.byID[id]
	if !ok {
		return membership.Tier{}, ErrNotFound
	}
	if !c.Member {
		return membership.TierFor(0), nil
	}
	return membership.TierFor(c.Points), nil
}
