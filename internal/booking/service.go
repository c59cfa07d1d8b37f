package booking

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/noah-isme/backend-acara/internal/coupon"
	"github.com/noah-isme/backend-acara/internal/customer"
	"github.com/noah-isme/backend-acara/internal/events"
	"github.com/noah-isme/backend-acara/internal/invoice"
	"github.com/noah-isme/backend-acara/internal/ledger"
	"github.com/noah-isme/backend-acara/internal/logistics"
	"github.com/noah-isme/backend-acara/internal/obs"
	"github.com/noah-isme/backend-acara/internal/payment"
	"github.com/noah-isme/backend-acara/internal/pricing"
)

var (
	// ErrNotFound is returned when no booking matches the given id.
	ErrNotFound = errors.New("booking not found")
	// ErrNothingToCheckout is returned when the customer has no registered
	// bookings awaiting payment.
	ErrNothingToCheckout = errors.New("no registered bookings to check out")
)

// record pairs a booking with its priced line items. Lines are cached so a
// failed payment does not reprice the booking on retry.
type record struct {
	b        *pricing.Booking
	lines    []pricing.LineItem
	subtotal pricing.Money
}

// Service orchestrates the booking lifecycle from draft to paid ledger entry.
type Service struct {
	Customers *customer.Store
	Engine    *pricing.Engine
	Coupons   *coupon.Registry
	Invoices  *invoice.Builder
	Ledger    *ledger.Ledger
	Payments  payment.Provider
	Venue     *logistics.Board
	Bus       *events.Bus
	Metrics   *obs.DomainMetrics
	Log       zerolog.Logger

	// LoyaltyPoints is credited to the customer on every booking created.
	LoyaltyPoints int

	mu      sync.RWMutex
	records map[uuid.UUID]*record
}

// NewService wires the booking orchestrator.
func NewService() *Service {
	return &Service{records: make(map[uuid.UUID]*record)}
}

// Create opens a draft booking, reserves the venue date, and credits loyalty
// points to the customer.
func (s *Service) Create(ctx context.Context, customerID uuid.UUID, eventDate string) (pricing.Booking, error) {
	if _, err := s.Customers.Get(customerID); err != nil {
		return pricing.Booking{}, err
	}
	b := pricing.NewBooking(customerID, eventDate)
	if err := s.Venue.Reserve(eventDate, b.ID); err != nil {
		return pricing.Booking{}, err
	}
	s.mu.Lock()
	s.records[b.ID] = &record{b: b}
	s.mu.Unlock()

	if err := s.Customers.AttachBooking(customerID, b.ID); err != nil {
		s.Log.Warn().Err(err).Str("booking_id", b.ID.String()).Msg("attach booking to customer")
	}
	if s.LoyaltyPoints > 0 {
		if _, err := s.Customers.AddPoints(customerID, s.LoyaltyPoints); err != nil {
			s.Log.Warn().Err(err).Str("customer_id", customerID.String()).Msg("credit loyalty points")
		}
	}
	if s.Bus != nil {
		_, _ = s.Bus.Emit(ctx, events.TopicBookingCreated, b.ID, map[string]any{
			"bookingId":  b.ID.String(),
			"customerId": customerID.String(),
			"eventDate":  eventDate,
		})
	}
	return *b, nil
}

// Get returns a copy of the booking.
func (s *Service) Get(id uuid.UUID) (pricing.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	if !ok {
		return pricing.Booking{}, ErrNotFound
	}
	return *rec.b, nil
}

func (s *Service) withRecord(id uuid.UUID, fn func(*record) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[id]
	if !ok {
		return ErrNotFound
	}
	return fn(rec)
}

// SelectPackage fixes the package and guest count for a draft booking.
func (s *Service) SelectPackage(id uuid.UUID, packageID string, guestCount int) (pricing.Booking, error) {
	var out pricing.Booking
	err := s.withRecord(id, func(rec *record) error {
		if _, err := s.Engine.SelectPackage(rec.b, packageID, guestCount); err != nil {
			return err
		}
		out = *rec.b
		return nil
	})
	return out, err
}

// SelectAddOn attaches an add-on to the booking.
func (s *Service) SelectAddOn(id uuid.UUID, addOnID string) (pricing.Booking, error) {
	var out pricing.Booking
	err := s.withRecord(id, func(rec *record) error {
		if _, err := s.Engine.SelectAddOn(rec.b, addOnID); err != nil {
			return err
		}
		out = *rec.b
		return nil
	})
	return out, err
}

// DecideAdvertisement records the advertisement decision, completing
// registration.
func (s *Service) DecideAdvertisement(id uuid.UUID, purchase bool) (pricing.Booking, error) {
	var out pricing.Booking
	err := s.withRecord(id, func(rec *record) error {
		if err := s.Engine.DecideAdvertisement(rec.b, purchase); err != nil {
			return err
		}
		out = *rec.b
		return nil
	})
	return out, err
}

// Abandon cancels the booking and frees the venue date.
func (s *Service) Abandon(ctx context.Context, id uuid.UUID) error {
	err := s.withRecord(id, func(rec *record) error {
		if err := rec.b.Abandon(); err != nil {
			return err
		}
		if relErr := s.Venue.Release(rec.b.EventDate, rec.b.ID); relErr != nil {
			s.Log.Warn().Err(relErr).Str("booking_id", id.String()).Msg("release venue date")
		}
		return nil
	})
	if err != nil {
		return err
	}
	if s.Bus != nil {
		_, _ = s.Bus.Emit(ctx, events.TopicBookingAbandoned, id, map[string]any{"bookingId": id.String()})
	}
	return nil
}

// CheckoutInput selects what to pay and how.
type CheckoutInput struct {
	CustomerID uuid.UUID
	CouponCode string
	Method     payment.Method
}

// CheckoutResult reports the settled checkout.
type CheckoutResult struct {
	Invoice invoice.Invoice      `json:"invoice"`
	Charge  payment.ChargeResult `json:"charge"`
	Tier    string               `json:"tier"`
}

// Checkout settles every registered booking of the customer in one payment.
// The membership tier is resolved at payment time, never at booking time.
// The coupon discount applies to each booking's post-membership remainder.
// A failed charge leaves every booking priced and retryable.
func (s *Service) Checkout(ctx context.Context, in CheckoutInput) (CheckoutResult, error) {
	cust, err := s.Customers.Get(in.CustomerID)
	if err != nil {
		return CheckoutResult{}, err
	}
	method, err := payment.ParseMethod(string(in.Method))
	if err != nil {
		return CheckoutResult{}, err
	}
	tier, err := s.Customers.Tier(in.CustomerID)
	if err != nil {
		return CheckoutResult{}, err
	}
	couponBps := int32(0)
	if in.CouponCode != "" {
		if bps, ok := s.Coupons.Validate(in.CouponCode); ok {
			couponBps = bps
		} else {
			s.Log.Info().Str("code", in.CouponCode).Msg("coupon rejected")
			in.CouponCode = ""
		}
	}

	s.mu.Lock()
	eligible := s.priceEligibleLocked(cust.BookingIDs)
	s.mu.Unlock()
	if len(eligible) == 0 {
		return CheckoutResult{}, ErrNothingToCheckout
	}

	var (
		lines      []pricing.LineItem
		totals     pricing.Totals
		bookingIDs []uuid.UUID
	)
	perBooking := make(map[uuid.UUID]pricing.Totals, len(eligible))
	for _, rec := range eligible {
		t := pricing.ComputeTotal(rec.subtotal, tier.DiscountBps, couponBps)
		perBooking[rec.b.ID] = t
		totals.Subtotal += t.Subtotal
		totals.MembershipDiscount += t.MembershipDiscount
		totals.CouponDiscount += t.CouponDiscount
		totals.Total += t.Total
		lines = append(lines, rec.lines...)
		bookingIDs = append(bookingIDs, rec.b.ID)
	}

	checkoutID := uuid.New()
	charge, err := s.Payments.Charge(ctx, payment.ChargeRequest{
		CheckoutID: checkoutID,
		Amount:     totals.Total,
		Currency:   s.Invoices.Currency,
		Method:     method,
	})
	if err != nil {
		if s.Bus != nil {
			_, _ = s.Bus.Emit(ctx, events.TopicPaymentFailed, checkoutID, map[string]any{
				"customerId": in.CustomerID.String(),
				"amount":     totals.Total,
			})
		}
		return CheckoutResult{}, fmt.Errorf("charge checkout: %w", err)
	}

	inv, err := s.Invoices.Build(invoice.Input{
		CustomerName:  cust.Name,
		Lines:         lines,
		Totals:        totals,
		CouponCode:    in.CouponCode,
		PaymentMethod: string(method),
		BookingIDs:    bookingIDs,
	})
	if err != nil {
		return CheckoutResult{}, err
	}

	s.mu.Lock()
	for _, rec := range eligible {
		if err := rec.b.MarkInvoiced(); err != nil {
			s.Log.Error().Err(err).Str("booking_id", rec.b.ID.String()).Msg("mark invoiced")
			continue
		}
		if err := rec.b.MarkPaid(); err != nil {
			s.Log.Error().Err(err).Str("booking_id", rec.b.ID.String()).Msg("mark paid")
			continue
		}
		s.recordPaidLocked(rec, cust, perBooking[rec.b.ID])
	}
	s.mu.Unlock()

	s.Metrics.SetLedgerSize(s.Ledger.Len())
	if in.CouponCode != "" {
		s.Metrics.ObserveCoupon(in.CouponCode)
	}
	if s.Bus != nil {
		for _, id := range bookingIDs {
			_, _ = s.Bus.Emit(ctx, events.TopicBookingPaid, id, map[string]any{
				"bookingId":  id.String(),
				"customerId": in.CustomerID.String(),
				"invoice":    inv.Number,
				"email":      cust.Email,
				"total":      perBooking[id].Total,
			})
		}
	}
	return CheckoutResult{Invoice: inv, Charge: charge, Tier: tier.Name}, nil
}

// priceEligibleLocked gathers the customer's bookings awaiting payment and
// prices any that are still unpriced. Callers hold s.mu.
func (s *Service) priceEligibleLocked(ids []uuid.UUID) []*record {
	var eligible []*record
	for _, id := range ids {
		rec, ok := s.records[id]
		if !ok {
			continue
		}
		switch rec.b.State {
		case pricing.StateAdvertisementDecided:
			subtotal, lines, err := s.Engine.ComputeSubtotal(rec.b)
			if err != nil {
				s.Log.Error().Err(err).Str("booking_id", id.String()).Msg("price booking")
				continue
			}
			rec.subtotal = subtotal
			rec.lines = lines
			eligible = append(eligible, rec)
		case pricing.StatePriced:
			eligible = append(eligible, rec)
		}
	}
	return eligible
}

// recordPaidLocked appends the ledger entry and bumps metrics for one paid
// booking. Callers hold s.mu.
func (s *Service) recordPaidLocked(rec *record, cust customer.Customer, t pricing.Totals) {
	var addOnPrice pricing.Money
	if rec.b.AddOn != nil {
		addOnPrice = rec.b.AddOn.Price
	}
	entry := ledger.Entry{
		BookingID:          rec.b.ID,
		CustomerName:       cust.Name,
		EventDate:          rec.b.EventDate,
		PackageID:          rec.b.Package.ID,
		GuestCount:         rec.b.GuestCount,
		PackagePrice:       rec.b.Package.BasePrice,
		AddOnPrice:         addOnPrice,
		AdvertisementPrice: s.Engine.AdvertisementPrice(rec.b),
		AmountPaid:         t.Total,
		IsMember:           cust.Member,
	}
	if err := s.Ledger.Append(entry); err != nil {
		s.Log.Error().Err(err).Str("booking_id", rec.b.ID.String()).Msg("append ledger entry")
	}
	s.Metrics.ObserveBookingPaid(rec.b.Package.ID, t.Total)
}

// Quote previews the totals a checkout would charge without changing any
// state.
func (s *Service) Quote(customerID uuid.UUID, couponCode string) (pricing.Totals, error) {
	cust, err := s.Customers.Get(customerID)
	if err != nil {
		return pricing.Totals{}, err
	}
	tier, err := s.Customers.Tier(customerID)
	if err != nil {
		return pricing.Totals{}, err
	}
	couponBps := int32(0)
	if couponCode != "" {
		if bps, ok := s.Coupons.Validate(couponCode); ok {
			couponBps = bps
		}
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var totals pricing.Totals
	found := false
	for _, id := range cust.BookingIDs {
		rec, ok := s.records[id]
		if !ok {
			continue
		}
		var subtotal pricing.Money
		switch rec.b.State {
		case pricing.StateAdvertisementDecided:
			subtotal = rec.b.Package.BasePrice
			if rec.b.AddOn != nil {
				subtotal += rec.b.AddOn.Price
			}
			subtotal += s.Engine.AdvertisementPrice(rec.b)
		case pricing.StatePriced:
			subtotal = rec.subtotal
		default:
			continue
		}
		t := pricing.ComputeTotal(subtotal, tier.DiscountBps, couponBps)
		totals.Subtotal += t.Subtotal
		totals.MembershipDiscount += t.MembershipDiscount
		totals.CouponDiscount += t.CouponDiscount
		totals.Total += t.Total
		found = true
	}
	if !found {
		return pricing.Totals{}, ErrNothingToCheckout
	}
	return totals, nil
}
