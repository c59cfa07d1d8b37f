package coupon

import (
	"strings"
	"time"
)

// Rule captures the runtime constraints of a promotional coupon.
type Rule struct {
	Code       string     `json:"code"`
	PercentBps int32      `json:"percentBps"`
	ValidFrom  *time.Time `json:"validFrom,omitempty"`
	ValidTo    *time.Time `json:"validTo,omitempty"`
}

// Active reports whether the rule may be applied at the provided instant.
func (r Rule) Active(now time.Time) bool {
	if r.PercentBps <= 0 {
		return false
	}
	if r.ValidFrom != nil && now.Before(*r.ValidFrom) {
		return false
	}
	if r.ValidTo != nil && now.After(*r.ValidTo) {
		return false
	}
	return true
}

// Registry looks up coupon rules by exact, case-sensitive code. The rule set
// is fixed at construction; unknown codes mean "no discount", never an error.
type Registry struct {
	rules map[string]Rule
	now   func() time.Time
}

// NewRegistry constructs a registry from the provided rules.
func NewRegistry(rules ...Rule) *Registry {
	reg := &Registry{rules: make(map[string]Rule, len(rules)), now: time.Now}
	for _, r := range rules {
		if strings.TrimSpace(r.Code) == "" {
			continue
		}
		reg.rules[r.Code] = r
	}
	return reg
}

// NewDefaultRegistry seeds the minimal promotional rule set.
func NewDefaultRegistry() *Registry {
	return NewRegistry(Rule{Code: "DISCOUNT10", PercentBps: 1000})
}

// WithNow overrides the clock, for tests.
func (reg *Registry) WithNow(now func() time.Time) *Registry {
	reg.now = now
	return reg
}

// Validate resolves a coupon code to its discount rate in basis points.
// The boolean reports whether a discount applies; an unknown, empty, or
// inactive code yields (0, false) and the caller decides whether to warn.
func (reg *Registry) Validate(code string) (int32, bool) {
	if reg == nil || code == "" {
		return 0, false
	}
	rule, ok := reg.rules[code]
	if !ok {
		return 0, false
	}
	clock := reg.now
	if clock == nil {
		clock = time.Now
	}
	if !rule.Active(clock()) {
		return 0, false
	}
	return rule.PercentBps, true
}
