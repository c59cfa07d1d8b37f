package invoice

import (
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/noah-isme/backend-acara/internal/pricing"
)

// ErrNoLines is returned when an invoice is requested without any line items.
var ErrNoLines = errors.New("invoice requires at least one line item")

// Invoice is an immutable snapshot of a settled checkout. Builders hand out
// defensive copies so no caller can mutate lines after issuance.
type Invoice struct {
	ID            uuid.UUID          `json:"id"`
	Number        string             `json:"number"`
	CustomerName  string             `json:"customerName"`
	IssuedAt      time.Time          `json:"issuedAt"`
	Currency      string             `json:"currency"`
	Lines         []pricing.LineItem `json:"lines"`
	Totals        pricing.Totals     `json:"totals"`
	CouponCode    string             `json:"couponCode,omitempty"`
	PaymentMethod string             `json:"paymentMethod"`
	BookingIDs    []uuid.UUID        `json:"bookingIds"`
}

// Builder issues sequentially numbered invoices. Safe for concurrent use.
type Builder struct {
	Currency string

	seq atomic.Uint64
	now func() time.Time
}

// NewBuilder returns a builder issuing invoices in the given currency.
func NewBuilder(currency string) *Builder {
	return &Builder{Currency: currency, now: time.Now}
}

// WithNow overrides the clock. Test hook.
func (b *Builder) WithNow(now func() time.Time) *Builder {
	b.now = now
	return b
}

// Input carries everything needed to issue one invoice.
type Input struct {
	CustomerName  string
	Lines         []pricing.LineItem
	Totals        pricing.Totals
	CouponCode    string
	PaymentMethod string
	BookingIDs    []uuid.UUID
}

// Build issues a new invoice. The returned value owns copies of the input
// slices.
func (b *Builder) Build(in Input) (Invoice, error) {
	if len(in.Lines) == 0 {
		return Invoice{}, ErrNoLines
	}
	issuedAt := b.now().UTC()
	seq := b.seq.Add(1)
	inv := Invoice{
		ID:            uuid.New(),
		Number:        fmt.Sprintf("INV-%s-%04d", issuedAt.Format("20060102"), seq),
		CustomerName:  in.CustomerName,
		IssuedAt:      issuedAt,
		Currency:      b.Currency,
		Lines:         append([]pricing.LineItem(nil), in.Lines...),
		Totals:        in.Totals,
		CouponCode:    in.CouponCode,
		PaymentMethod: in.PaymentMethod,
		BookingIDs:    append([]uuid.UUID(nil), in.BookingIDs...),
	}
	return inv, nil
}

// Render produces the printable text form of the invoice. Amounts are
// converted from minor units only here.
func (inv Invoice) Render() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Invoice %s\n", inv.Number)
	fmt.Fprintf(&sb, "Billed to: %s\n", inv.CustomerName)
	fmt.Fprintf(&sb, "Issued:    %s\n", inv.IssuedAt.Format("2006-01-02 15:04 MST"))
	sb.WriteString(strings.Repeat("-", 44))
	sb.WriteByte('\n')
	for _, line := range inv.Lines {
		fmt.Fprintf(&sb, "%-28s %11s %s\n", line.Description, pricing.FormatAmount(line.Amount), inv.Currency)
	}
	sb.WriteString(strings.Repeat("-", 44))
	sb.WriteByte('\n')
	fmt.Fprintf(&sb, "%-28s %11s %s\n", "Subtotal", pricing.FormatAmount(inv.Totals.Subtotal), inv.Currency)
	if inv.Totals.MembershipDiscount > 0 {
		fmt.Fprintf(&sb, "%-28s %11s %s\n", "Membership discount", "-"+pricing.FormatAmount(inv.Totals.MembershipDiscount), inv.Currency)
	}
	if inv.Totals.CouponDiscount > 0 {
		label := "Coupon discount"
		if inv.CouponCode != "" {
			label = fmt.Sprintf("Coupon (%s)", inv.CouponCode)
		}
		fmt.Fprintf(&sb, "%-28s %11s %s\n", label, "-"+pricing.FormatAmount(inv.Totals.CouponDiscount), inv.Currency)
	}
	fmt.Fprintf(&sb, "%-28s %11s %s\n", "Total", pricing.FormatAmount(inv.Totals.Total), inv.Currency)
	fmt.Fprintf(&sb, "Paid via %s\n", inv.PaymentMethod)
	return sb.String()
}
