package catalog

import (
	"errors"
	"testing"
)

func TestLookupPackage(t *testing.T) {
	c := NewDefault()
	p, err := c.LookupPackage(PackageBasic)
	if err != nil {
		t.Fatalf("lookup basic: %v", err)
	}
	if p.BasePrice != 25_000 {
		t.Fatalf("expected base price 25000, got %d", p.BasePrice)
	}
	if p.MinGuests != 15 || p.MaxGuests != 30 {
		t.Fatalf("unexpected guest bounds %d-%d", p.MinGuests, p.MaxGuests)
	}
}

func TestLookupPackageUnknown(t *testing.T) {
	c := NewDefault()
	if _, err := c.LookupPackage("Deluxe"); !errors.Is(err, ErrUnknownPackage) {
		t.Fatalf("expected ErrUnknownPackage, got %v", err)
	}
}

func TestLookupAddOnNoneAlwaysFree(t *testing.T) {
	c := New(nil, nil)
	a, err := c.LookupAddOn(AddOnNone)
	if err != nil {
		t.Fatalf("lookup none: %v", err)
	}
	if a.Price != 0 {
		t.Fatalf("expected zero price, got %d", a.Price)
	}
}

func TestLookupAddOnUnknown(t *testing.T) {
	c := NewDefault()
	if _, err := c.LookupAddOn("Fireworks"); !errors.Is(err, ErrUnknownAddOn) {
		t.Fatalf("expected ErrUnknownAddOn, got %v", err)
	}
}

func TestPackagesOrderedByPrice(t *testing.T) {
	c := NewDefault()
	pkgs := c.Packages()
	if len(pkgs) != 4 {
		t.Fatalf("expected 4 packages, got %d", len(pkgs))
	}
	for i := 1; i < len(pkgs); i++ {
		if pkgs[i-1].BasePrice > pkgs[i].BasePrice {
			t.Fatalf("packages not sorted by price at index %d", i)
		}
	}
}
