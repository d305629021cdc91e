package arbitrage

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Direction identifies which leg is bought on which venue.
type Direction string

const (
	// DirectionKalshiYesPolymarketNo buys YES on Kalshi and NO on Polymarket.
	DirectionKalshiYesPolymarketNo Direction = "buy_yes_kalshi_buy_no_polymarket"
	// DirectionKalshiNoPolymarketYes buys NO on Kalshi and YES on Polymarket.
	DirectionKalshiNoPolymarketYes Direction = "buy_no_kalshi_buy_yes_polymarket"
)

// Describe returns the human-readable strategy label for reports.
func (d Direction) Describe() string {
	if d == DirectionKalshiYesPolymarketNo {
		return "Buy YES on Kalshi, Buy NO on Polymarket"
	}
	return "Buy NO on Kalshi, Buy YES on Polymarket"
}

// Opportunity is one profitable hedge direction for one matched pair.
// All monetary fields are in cents on the 0-100 scale. The hedge guarantees
// a 100-cent payout, so ProfitCents is 100 minus the total cost. Created
// fresh per evaluation and never mutated.
type Opportunity struct {
	ID                   string    `json:"id"`
	Direction            Direction `json:"direction"`
	KalshiIdentifier     string    `json:"kalshi_identifier"`
	KalshiTitle          string    `json:"kalshi_title"`
	PolymarketIdentifier string    `json:"polymarket_identifier"`
	PolymarketTitle      string    `json:"polymarket_title"`
	KalshiPriceCents     float64   `json:"kalshi_price_cents"`
	KalshiFeeCents       float64   `json:"kalshi_fee_cents"`
	PolymarketPriceCents float64   `json:"polymarket_price_cents"`
	PolymarketFeeCents   float64   `json:"polymarket_fee_cents"`
	TotalCostCents       float64   `json:"total_cost_cents"`
	ProfitCents          float64   `json:"profit_cents"`
	ProfitPct            float64   `json:"profit_pct"`
	DetectedAt           time.Time `json:"detected_at"`
}

// newOpportunity builds an opportunity from the two leg prices and fees.
func newOpportunity(
	direction Direction,
	kalshiID, kalshiTitle, polyID, polyTitle string,
	kalshiPrice, kalshiFee, polyPrice, polyFee float64,
) Opportunity {
	totalCost := kalshiPrice + kalshiFee + polyPrice + polyFee
	profit := 100 - totalCost

	profitPct := 0.0
	if totalCost > 0 {
		profitPct = profit / totalCost * 100
	}

	return Opportunity{
		ID:                   uuid.New().String(),
		Direction:            direction,
		KalshiIdentifier:     kalshiID,
		KalshiTitle:          kalshiTitle,
		PolymarketIdentifier: polyID,
		PolymarketTitle:      polyTitle,
		KalshiPriceCents:     kalshiPrice,
		KalshiFeeCents:       kalshiFee,
		PolymarketPriceCents: polyPrice,
		PolymarketFeeCents:   polyFee,
		TotalCostCents:       totalCost,
		ProfitCents:          profit,
		ProfitPct:            profitPct,
		DetectedAt:           time.Now(),
	}
}

// String returns a human-readable representation of the opportunity.
func (o *Opportunity) String() string {
	return fmt.Sprintf(
		"Opportunity[%s] %s Kalshi=%s %.1fc+%.2fc Polymarket=%s %.1fc+%.2fc Cost=%.2fc Profit=%.2fc (%.2f%%)",
		o.ID[:8],
		o.Direction,
		o.KalshiIdentifier,
		o.KalshiPriceCents,
		o.KalshiFeeCents,
		o.PolymarketIdentifier,
		o.PolymarketPriceCents,
		o.PolymarketFeeCents,
		o.TotalCostCents,
		o.ProfitCents,
		o.ProfitPct,
	)
}
