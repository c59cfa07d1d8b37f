package customer

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestRegisterAndGet(t *testing.T) {
	s := NewStore()
	c, err := s.Register("Aina", "aina@example.com", true)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	got, err := s.Get(c.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Aina" || !got.Member {
		t.Fatalf("unexpected customer %+v", got)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	s := NewStore()
	if _, err := s.Register("Aina", "aina@example.com", false); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Register("Other", "AINA@example.com", false); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken for case-insensitive duplicate, got %v", err)
	}
}

func TestAddPoints(t *testing.T) {
	s := NewStore()
	c, _ := s.Register("Aina", "aina@example.com", true)
	total, err := s.AddPoints(c.ID, 10)
	if err != nil {
		t.Fatal(err)
	}
	if total != 10 {
		t.Fatalf("expected 10 points, got %d", total)
	}
	if total, _ = s.AddPoints(c.ID, -5); total != 10 {
		t.Fatalf("negative delta must be ignored, got %d", total)
	}
}

func TestTierResolution(t *testing.T) {
	s := NewStore()
	member, _ := s.Register("Aina", "aina@example.com", true)
	nonMember, _ := s.Register("Ben", "ben@example.com", false)
	if _, err := s.AddPoints(member.ID, 50); err != nil {
		t.Fatal(err)
	}
	if _, err := s.AddPoints(nonMember.ID, 50); err != nil {
		t.Fatal(err)
	}

	tier, err := s.Tier(member.ID)
	if err != nil {
		t.Fatal(err)
	}
	if tier.DiscountBps != 1000 {
		t.Fatalf("expected Gold 1000 bps for 50 points, got %d", tier.DiscountBps)
	}

	tier, err = s.Tier(nonMember.ID)
	if err != nil {
		t.Fatal(err)
	}
	if tier.DiscountBps != 0 {
		t.Fatalf("non-member must get no discount, got %d bps", tier.DiscountBps)
	}
}

func TestOptIn(t *testing.T) {
	s := NewStore()
	c, _ := s.Register("Ben", "ben@example.com", false)
	if err := s.OptIn(c.ID); err != nil {
		t.Fatal(err)
	}
	got, _ := s.Get(c.ID)
	if !got.Member {
		t.Fatal("expected membership after opt-in")
	}
}

func TestGetUnknown(t *testing.T) {
	s := NewStore()
	if _, err := s.Get(uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAttachBooking(t *testing.T) {
	s := NewStore()
	c, _ := s.Register("Aina", "aina@example.com", true)
	bookingID := uuid.New()
	if err := s.AttachBooking(c.ID, bookingID); err != nil {
		t.Fatal(err)
	}
	got, _ := s.Get(c.ID)
	if len(got.BookingIDs) != 1 || got.BookingIDs[0] != bookingID {
		t.Fatalf("expected booking attached, got %v", got.BookingIDs)
	}
}
