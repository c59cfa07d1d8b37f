package ads

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/noah-isme/backend-acara/internal/catalog"
	"github.com/noah-isme/backend-acara/internal/pricing"
)

func advertisedBooking(t *testing.T) pricing.Booking {
	t.Helper()
	e := &pricing.Engine{Catalog: catalog.NewDefault()}
	b := pricing.NewBooking(uuid.New(), "2026-10-17")
	if _, err := e.SelectPackage(b, catalog.PackagePremium, 80); err != nil {
		t.Fatal(err)
	}
	if _, err := e.SelectAddOn(b, catalog.AddOnNone); err != nil {
		t.Fatal(err)
	}
	if err := e.DecideAdvertisement(b, true); err != nil {
		t.Fatal(err)
	}
	return *b
}

func TestRenderIncludesThemeAndDate(t *testing.T) {
	r := NewRenderer()
	out, err := r.RenderFor(advertisedBooking(t), "Aina")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{"Aina", "Fairytale", "2026-10-17", "Premium"} {
		if !strings.Contains(out, want) {
			t.Fatalf("flyer missing %q:\n%s", want, out)
		}
	}
}

func TestRenderRequiresPurchase(t *testing.T) {
	r := NewRenderer()
	b := advertisedBooking(t)
	b.AdvertisementPurchased = false
	if _, err := r.Render(b); !errors.Is(err, ErrNotPurchased) {
		t.Fatalf("expected ErrNotPurchased, got %v", err)
	}
}

func TestCustomTemplate(t *testing.T) {
	r, err := NewRendererFromTemplate("{{ .Theme }} on {{ .EventDate }}")
	if err != nil {
		t.Fatal(err)
	}
	out, err := r.Render(advertisedBooking(t))
	if err != nil {
		t.Fatal(err)
	}
	if out != "Fairytale on 2026-10-17" {
		t.Fatalf("unexpected flyer %q", out)
	}
}

func TestBadTemplateRejected(t *testing.T) {
	if _, err := NewRendererFromTemplate("{{ .Broken"); err == nil {
		t.Fatal("expected parse error")
	}
}
