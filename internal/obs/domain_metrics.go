package obs

import (
	"github.com/prometheus/client_golang/prometheus"
)

// DomainMetrics groups Prometheus collectors for booking business events.
type DomainMetrics struct {
	BookingsPaid   *prometheus.CounterVec
	RevenueCents   prometheus.Counter
	CouponsApplied *prometheus.CounterVec
	LedgerSize     prometheus.Gauge
}

var domainMetrics *DomainMetrics

// MustRegisterDomainMetrics registers domain collectors once at startup.
func MustRegisterDomainMetrics(namespace string, reg prometheus.Registerer) *DomainMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &DomainMetrics{
		BookingsPaid: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_paid_total",
			Help:      "Completed bookings grouped by package.",
		}, []string{"package"}),
		RevenueCents: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_revenue_cents_total",
			Help:      "Gross booking revenue in minor currency units.",
		}),
		CouponsApplied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "coupons_applied_total",
			Help:      "Coupon redemptions grouped by code.",
		}, []string{"code"}),
		LedgerSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "ledger_entries",
			Help:      "Number of entries recorded in the booking ledger.",
		}),
	}
	m.BookingsPaid = registerCounterVec(reg, m.BookingsPaid)
	m.CouponsApplied = registerCounterVec(reg, m.CouponsApplied)
	m.LedgerSize = registerGauge(reg, m.LedgerSize)
	if err := reg.Register(m.RevenueCents); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				m.RevenueCents = existing
			}
		} else {
			panic(err)
		}
	}
	domainMetrics = m
	return m
}

// Domain returns the registered domain metrics, or nil when disabled.
func Domain() *DomainMetrics { return domainMetrics }

// ObserveBookingPaid records a completed booking.
func (m *DomainMetrics) ObserveBookingPaid(packageID string, amountCents int64) {
	if m == nil {
		return
	}
	m.BookingsPaid.WithLabelValues(packageID).Inc()
	if amountCents > 0 {
		m.RevenueCents.Add(float64(amountCents))
	}
}

// ObserveCoupon records a coupon redemption.
func (m *DomainMetrics) ObserveCoupon(code string) {
	if m == nil {
		return
	}
	m.CouponsApplied.WithLabelValues(code).Inc()
}

// SetLedgerSize updates the ledger gauge.
func (m *DomainMetrics) SetLedgerSize(n int) {
	if m == nil {
		return
	}
	m.LedgerSize.Set(float64(n))
}
