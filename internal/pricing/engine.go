package pricing

import (
	"errors"
	"fmt"

	"github.com/noah-isme/backend-acara/internal/catalog"
)

// ErrGuestCountExceeded is returned when the guest count falls outside the
// selected package's inclusive bounds.
var ErrGuestCountExceeded = errors.New("guest count outside package bounds")

// LineItem is a single priced entry on an invoice.
type LineItem struct {
	Description string `json:"description"`
	Amount      Money  `json:"amount"`
}

// Totals carries the outcome of discount application. Each discount amount is
// computed against the amount immediately preceding that step: the coupon
// discount applies to the post-membership remainder, never the raw subtotal.
type Totals struct {
	Subtotal           Money `json:"subtotal"`
	MembershipDiscount Money `json:"membershipDiscount"`
	CouponDiscount     Money `json:"couponDiscount"`
	Total              Money `json:"total"`
}

// Engine prices bookings against the catalog. All selection failures are
// recoverable: the booking stays in its current state and the caller may
// retry with corrected input.
type Engine struct {
	Catalog          *catalog.Catalog
	AdvertisementFee Money
}

// DefaultAdvertisementFee is the flat advertisement charge in minor units.
const DefaultAdvertisementFee Money = 20_000

func (e *Engine) advertisementFee() Money {
	if e.AdvertisementFee > 0 {
		return e.AdvertisementFee
	}
	return DefaultAdvertisementFee
}

// SelectPackage fixes the booking's package and guest count. The guest count
// must satisfy the package's inclusive bounds.
func (e *Engine) SelectPackage(b *Booking, id string, guestCount int) (catalog.Package, error) {
	if b.State != StateDraft && b.State != StatePackageSelected {
		return catalog.Package{}, ErrInvalidTransition
	}
	pkg, err := e.Catalog.LookupPackage(id)
	if err != nil {
		return catalog.Package{}, err
	}
	if guestCount < pkg.MinGuests || guestCount > pkg.MaxGuests {
		return catalog.Package{}, fmt.Errorf("%w: %s accepts %d to %d guests, got %d",
			ErrGuestCountExceeded, pkg.Name, pkg.MinGuests, pkg.MaxGuests, guestCount)
	}
	if err := b.transition(StatePackageSelected); err != nil {
		return catalog.Package{}, err
	}
	b.Package = pkg
	b.GuestCount = guestCount
	return pkg, nil
}

// SelectAddOn attaches an optional add-on. catalog.AddOnNone is always valid
// and free.
func (e *Engine) SelectAddOn(b *Booking, id string) (catalog.AddOn, error) {
	if b.State != StatePackageSelected && b.State != StateAddOnSelected {
		return catalog.AddOn{}, ErrInvalidTransition
	}
	addOn, err := e.Catalog.LookupAddOn(id)
	if err != nil {
		return catalog.AddOn{}, err
	}
	if err := b.transition(StateAddOnSelected); err != nil {
		return catalog.AddOn{}, err
	}
	b.AddOn = &addOn
	return addOn, nil
}

// DecideAdvertisement records whether the customer purchases the flat-fee
// advertisement, completing the registration flow.
func (e *Engine) DecideAdvertisement(b *Booking, purchase bool) error {
	if b.State != StateAddOnSelected && b.State != StateAdvertisementDecided {
		return ErrInvalidTransition
	}
	if err := b.transition(StateAdvertisementDecided); err != nil {
		return err
	}
	b.AdvertisementPurchased = purchase
	return nil
}

// ComputeSubtotal itemises the booking and advances it to Priced. The sum of
// the returned line items always equals the subtotal.
func (e *Engine) ComputeSubtotal(b *Booking) (Money, []LineItem, error) {
	if b.State != StateAdvertisementDecided {
		return 0, nil, ErrInvalidTransition
	}
	items := []LineItem{
		{Description: b.Package.Name, Amount: b.Package.BasePrice},
	}
	if b.AddOn != nil && b.AddOn.Price > 0 {
		items = append(items, LineItem{Description: b.AddOn.Name, Amount: b.AddOn.Price})
	}
	if b.AdvertisementPurchased {
		items = append(items, LineItem{Description: "Advertisement", Amount: e.advertisementFee()})
	}
	var subtotal Money
	for _, it := range items {
		subtotal += it.Amount
	}
	if err := b.transition(StatePriced); err != nil {
		return 0, nil, err
	}
	return subtotal, items, nil
}

// AdvertisementPrice returns the advertisement charge recorded for a booking.
func (e *Engine) AdvertisementPrice(b *Booking) Money {
	if b.AdvertisementPurchased {
		return e.advertisementFee()
	}
	return 0
}

// ComputeTotal applies the membership discount and then the coupon discount,
// in that fixed order. The composition is multiplicative: with rates m and c,
// total = subtotal × (1−m) × (1−c). Rates are basis points; division
// truncates toward zero.
func ComputeTotal(subtotal Money, membershipBps, couponBps int32) Totals {
	if subtotal < 0 {
		subtotal = 0
	}
	membership := applyBps(subtotal, membershipBps)
	remainder := subtotal - membership
	couponAmt := applyBps(remainder, couponBps)
	return Totals{
		Subtotal:           subtotal,
		MembershipDiscount: membership,
		CouponDiscount:     couponAmt,
		Total:              remainder - couponAmt,
	}
}

func applyBps(amount Money, bps int32) Money {
	if amount <= 0 || bps <= 0 {
		return 0
	}
	if bps > 10_000 {
		bps = 10_000
	}
	return (amount * Money(bps)) / 10_000
}
