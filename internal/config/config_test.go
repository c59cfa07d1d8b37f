package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadForTests(map[string]string{
		"APP_ENV":                    "",
		"PORT":                       "",
		"CURRENCY_CODE":              "",
		"PRICING_ADVERTISEMENT_FEE":  "",
		"LOYALTY_POINTS_PER_BOOKING": "",
		"RATE_LIMIT":                 "",
		"REPORT_CACHE_TTL":           "",
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.AppEnv != "development" {
		t.Fatalf("expected development, got %s", cfg.AppEnv)
	}
	if cfg.CurrencyCode != "MYR" {
		t.Fatalf("expected MYR, got %s", cfg.CurrencyCode)
	}
	if cfg.AdvertisementFee != 20000 {
		t.Fatalf("expected fee 20000, got %d", cfg.AdvertisementFee)
	}
	if cfg.LoyaltyPoints != 10 {
		t.Fatalf("expected 10 points, got %d", cfg.LoyaltyPoints)
	}
	if cfg.ReportCacheTTL != time.Minute {
		t.Fatalf("expected 60s TTL, got %s", cfg.ReportCacheTTL)
	}
	if cfg.HTTPAddr() != ":8080" {
		t.Fatalf("expected :8080, got %s", cfg.HTTPAddr())
	}
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := LoadForTests(map[string]string{
		"PORT":                       "9090",
		"PRICING_ADVERTISEMENT_FEE":  "25000",
		"LOYALTY_POINTS_PER_BOOKING": "5",
		"LEDGER_CAPACITY":            "100",
		"RATE_LIMIT_ENABLED":         "true",
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTPAddr() != ":9090" {
		t.Fatalf("expected :9090, got %s", cfg.HTTPAddr())
	}
	if cfg.AdvertisementFee != 25000 {
		t.Fatalf("expected fee 25000, got %d", cfg.AdvertisementFee)
	}
	if cfg.LoyaltyPoints != 5 {
		t.Fatalf("expected 5 points, got %d", cfg.LoyaltyPoints)
	}
	if cfg.LedgerCapacity != 100 {
		t.Fatalf("expected capacity 100, got %d", cfg.LedgerCapacity)
	}
	if !cfg.RateLimitEnabled {
		t.Fatal("expected rate limiting enabled")
	}
}

func TestLoadRejectsNegativeFee(t *testing.T) {
	if _, err := LoadForTests(map[string]string{"PRICING_ADVERTISEMENT_FEE": "-1"}); err == nil {
		t.Fatal("expected error for negative fee")
	}
}
