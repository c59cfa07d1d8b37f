package membership

// Tier is a discount bracket determined purely by accumulated loyalty points.
// DiscountBps is the discount rate in basis points.
type Tier struct {
	Name        string `json:"name"`
	MinPoints   int    `json:"minPoints"`
	DiscountBps int32  `json:"discountBps"`
}

// Tier names in ascending order of privilege.
const (
	TierBasic    = "Basic"
	TierSilver   = "Silver"
	TierGold     = "Gold"
	TierPlatinum = "Platinum"
)

// DefaultTiers returns the tier table ordered ascending by MinPoints.
// The table is rebuilt on each call so callers can never mutate shared state.
func DefaultTiers() []Tier {
	return []Tier{
		{Name: TierBasic, MinPoints: 0, DiscountBps: 0},
		{Name: TierSilver, MinPoints: 20, DiscountBps: 500},
		{Name: TierGold, MinPoints: 50, DiscountBps: 1000},
		{Name: TierPlatinum, MinPoints: 100, DiscountBps: 1500},
	}
}

// TierFor returns the highest tier whose MinPoints does not exceed points.
// It is total: any non-negative input maps to a tier, and negative input is
// clamped to the lowest tier because callers reject negative points upstream.
func TierFor(points int) Tier {
	tiers := DefaultTiers()
	selected := tiers[0]
	for _, t := range tiers {
		if points >= t.MinPoints {
			selected = t
		}
	}
	return selected
}
