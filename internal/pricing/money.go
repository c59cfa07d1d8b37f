package pricing

import "fmt"

// Money represents a monetary value stored in minor units.
type Money = int64

// FormatAmount renders minor units as a two-decimal string. All internal
// arithmetic stays in minor units; this conversion happens only at display.
func FormatAmount(m Money) string {
	sign := ""
	if m < 0 {
		sign = "-"
		m = -m
	}
	return fmt.Sprintf("%s%d.%02d", sign, m/100, m%100)
}
