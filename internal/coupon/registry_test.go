package coupon

import (
	"testing"
	"time"
)

func TestValidateKnownCode(t *testing.T) {
	reg := NewDefaultRegistry()
	bps, ok := reg.Validate("DISCOUNT10")
	if !ok {
		t.Fatal("expected DISCOUNT10 to be valid")
	}
	if bps != 1000 {
		t.Fatalf("expected 1000 bps, got %d", bps)
	}
}

func TestValidateUnknownCode(t *testing.T) {
	reg := NewDefaultRegistry()
	bps, ok := reg.Validate("NOPE")
	if ok || bps != 0 {
		t.Fatalf("expected no discount, got %d/%v", bps, ok)
	}
}

func TestValidateCaseSensitive(t *testing.T) {
	reg := NewDefaultRegistry()
	if _, ok := reg.Validate("discount10"); ok {
		t.Fatal("codes must match case-sensitively")
	}
}

func TestValidateWindow(t *testing.T) {
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	reg := NewRegistry(Rule{Code: "NEWYEAR", PercentBps: 1500, ValidFrom: &from, ValidTo: &to})

	reg.WithNow(func() time.Time { return from.Add(24 * time.Hour) })
	if _, ok := reg.Validate("NEWYEAR"); !ok {
		t.Fatal("expected coupon valid inside window")
	}

	reg.WithNow(func() time.Time { return to.Add(24 * time.Hour) })
	if _, ok := reg.Validate("NEWYEAR"); ok {
		t.Fatal("expected coupon invalid after window")
	}
}

func TestValidateEmptyCode(t *testing.T) {
	reg := NewDefaultRegistry()
	if _, ok := reg.Validate(""); ok {
		t.Fatal("empty code must not resolve to a discount")
	}
}
