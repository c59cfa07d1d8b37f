package payment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/noah-isme/backend-acara/internal/pricing"
)

// ErrInvalidMethod is returned for payment methods outside the supported set.
var ErrInvalidMethod = errors.New("invalid payment method")

// Method identifies how a checkout is settled.
type Method string

const (
	MethodCard         Method = "CARD"
	MethodWallet       Method = "WALLET"
	MethodBankTransfer Method = "BANK_TRANSFER"
)

// ParseMethod normalises user input into a supported method.
func ParseMethod(s string) (Method, error) {
	switch Method(strings.ToUpper(strings.TrimSpace(s))) {
	case MethodCard:
		return MethodCard, nil
	case MethodWallet:
		return MethodWallet, nil
	case MethodBankTransfer:
		return MethodBankTransfer, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidMethod, s)
	}
}

// ChargeRequest describes one settlement attempt.
type ChargeRequest struct {
	CheckoutID uuid.UUID
	Amount     pricing.Money
	Currency   string
	Method     Method
}

// ChargeResult is the provider's settlement record.
type ChargeResult struct {
	Reference string
	Method    Method
	Amount    pricing.Money
	ChargedAt time.Time
}

// Provider abstracts the upstream settlement gateway.
type Provider interface {
	Charge(ctx context.Context, req ChargeRequest) (ChargeResult, error)
}

// StubProvider settles every well-formed charge immediately. It validates the
// method and amount so callers still exercise the failure path.
type StubProvider struct {
	now func() time.Time
}

// NewStubProvider returns a provider that always settles.
func NewStubProvider() *StubProvider {
	return &StubProvider{now: time.Now}
}

// WithNow overrides the clock. Test hook.
func (p *StubProvider) WithNow(now func() time.Time) *StubProvider {
	p.now = now
	return p
}

func (p *StubProvider) Charge(ctx context.Context, req ChargeRequest) (ChargeResult, error) {
	if err := ctx.Err(); err != nil {
		return ChargeResult{}, err
	}
	if _, err := ParseMethod(string(req.Method)); err != nil {
		return ChargeResult{}, err
	}
	if req.Amount < 0 {
		return ChargeResult{}, fmt.Errorf("charge amount must not be negative: %d", req.Amount)
	}
	return ChargeResult{
		Reference: "PAY-" + strings.ToUpper(uuid.NewString()[:8]),
		Method:    req.Method,
		Amount:    req.Amount,
		ChargedAt: p.now().UTC(),
	}, nil
}
