// Package fees holds the per-venue taker fee models. Both are pure functions
// over prices on the 0-100 cent scale and return fees on the same scale.
package fees

import "fmt"

// PolymarketMode selects which Polymarket fee schedule applies.
type PolymarketMode string

const (
	// PolymarketReduced is the 0.1% US taker schedule.
	PolymarketReduced PolymarketMode = "reduced"
	// PolymarketStandard is the conservative 2% global estimate.
	PolymarketStandard PolymarketMode = "standard"
)

// Valid reports whether the mode is one of the two known schedules.
func (m PolymarketMode) Valid() bool {
	return m == PolymarketReduced || m == PolymarketStandard
}

// ParsePolymarketMode converts a config string into a fee mode.
func ParsePolymarketMode(s string) (PolymarketMode, error) {
	mode := PolymarketMode(s)
	if !mode.Valid() {
		return "", fmt.Errorf("unknown polymarket fee mode %q (want %q or %q)",
			s, PolymarketReduced, PolymarketStandard)
	}
	return mode, nil
}

// KalshiTaker returns the Kalshi taker fee in cents for a price in cents:
// 7% x p x (1-p), a parabola peaking at 50 and zero at both endpoints.
// Out-of-range prices are clamped to [0,100].
func KalshiTaker(priceCents float64) float64 {
	p := clamp(priceCents) / 100
	return 0.07 * p * (1 - p) * 100
}

// PolymarketTaker returns the Polymarket taker fee in cents for a price in
// cents under the given schedule. Out-of-range prices are clamped to [0,100].
func PolymarketTaker(priceCents float64, mode PolymarketMode) float64 {
	p := clamp(priceCents)
	if mode == PolymarketReduced {
		return p * 0.001
	}
	return p * 0.02
}

func clamp(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
