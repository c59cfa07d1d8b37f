package invoice

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/noah-isme/backend-acara/internal/pricing"
)

func fixedClock() time.Time {
	return time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC)
}

func sampleInput() Input {
	return Input{
		CustomerName: "Aina",
		Lines: []pricing.LineItem{
			{Description: "Rainbow Baby Shower", Amount: 25_000},
			{Description: "Photographer", Amount: 30_000},
			{Description: "Advertisement", Amount: 20_000},
		},
		Totals:        pricing.ComputeTotal(75_000, 500, 1000),
		CouponCode:    "DISCOUNT10",
		PaymentMethod: "CARD",
		BookingIDs:    []uuid.UUID{uuid.New()},
	}
}

func TestBuildSequentialNumbers(t *testing.T) {
	b := NewBuilder("MYR").WithNow(fixedClock)
	first, err := b.Build(sampleInput())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	second, err := b.Build(sampleInput())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if first.Number != "INV-20261017-0001" {
		t.Fatalf("unexpected first number %q", first.Number)
	}
	if second.Number != "INV-20261017-0002" {
		t.Fatalf("unexpected second number %q", second.Number)
	}
}

func TestBuildRejectsEmptyLines(t *testing.T) {
	b := NewBuilder("MYR")
	if _, err := b.Build(Input{CustomerName: "Aina"}); err != ErrNoLines {
		t.Fatalf("expected ErrNoLines, got %v", err)
	}
}

func TestBuildCopiesLines(t *testing.T) {
	b := NewBuilder("MYR").WithNow(fixedClock)
	in := sampleInput()
	inv, err := b.Build(in)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	in.Lines[0].Amount = 0
	if inv.Lines[0].Amount != 25_000 {
		t.Fatal("invoice must own a copy of its line items")
	}
}

func TestRenderShowsDiscountsAndMethod(t *testing.T) {
	b := NewBuilder("MYR").WithNow(fixedClock)
	inv, err := b.Build(sampleInput())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	out := inv.Render()
	for _, want := range []string{
		"Billed to: Aina",
		"750.00 MYR",
		"Membership discount",
		"Coupon (DISCOUNT10)",
		"Paid via CARD",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("rendered invoice missing %q:\n%s", want, out)
		}
	}
}
