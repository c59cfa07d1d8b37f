package obs_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/noah-isme/backend-acara/internal/obs"
)

func TestHTTPMetricsLabels(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := obs.NewHTTPMetrics("acara", []float64{1, 10}, registry)
	handler := obs.HTTPObs{Metrics: metrics}.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	req = req.WithContext(obs.WithRoutePattern(req.Context(), "/health/ready"))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected 204 got %d", rr.Code)
	}

	total := testutil.ToFloat64(metrics.ReqTotal.WithLabelValues(http.MethodGet, "/health/ready", "204"))
	if total != 1 {
		t.Fatalf("expected counter to be 1, got %v", total)
	}

	samples := testutil.CollectAndCount(metrics.ReqDur)
	if samples == 0 {
		t.Fatalf("expected histogram sample")
	}

	if metrics.InFlight != nil {
		if val := testutil.ToFloat64(metrics.InFlight); val != 0 {
			t.Fatalf("expected no in-flight requests, got %v", val)
		}
	}
}

func TestDomainMetricsObservations(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := obs.MustRegisterDomainMetrics("acara", registry)

	m.ObserveBookingPaid("Basic", 75_000)
	m.ObserveBookingPaid("Basic", 25_000)
	m.ObserveCoupon("DISCOUNT10")
	m.SetLedgerSize(2)

	if got := testutil.ToFloat64(m.BookingsPaid.WithLabelValues("Basic")); got != 2 {
		t.Fatalf("expected 2 paid bookings, got %v", got)
	}
	if got := testutil.ToFloat64(m.RevenueCents); got != 100_000 {
		t.Fatalf("expected revenue 100000, got %v", got)
	}
	if got := testutil.ToFloat64(m.CouponsApplied.WithLabelValues("DISCOUNT10")); got != 1 {
		t.Fatalf("expected 1 coupon redemption, got %v", got)
	}
	if got := testutil.ToFloat64(m.LedgerSize); got != 2 {
		t.Fatalf("expected ledger gauge 2, got %v", got)
	}
}
