// Package arbitrage evaluates matched cross-venue pairs for hedge trades
// that stay profitable after both venues' taker fees.
package arbitrage

import (
	"fmt"
	"math"

	"github.com/mrosetti/btcarb/internal/fees"
	"github.com/mrosetti/btcarb/internal/match"
	"go.uber.org/zap"
)

// DefaultMinProfitPct is the reporting threshold when none is configured.
// Defaulting happens at the config layer; the evaluator takes its threshold
// as given, so an explicit zero means break-even reporting.
const DefaultMinProfitPct = 1.0

// Evaluator scores matched pairs. Both hedge directions of a pair are
// evaluated independently; a pair can yield zero, one, or two opportunities,
// always in direction order.
type Evaluator struct {
	minProfitPct float64
	feeMode      fees.PolymarketMode
	logger       *zap.Logger
}

// Config holds evaluator configuration.
type Config struct {
	// MinProfitPct is the minimum profit percentage an opportunity must
	// reach to be reported. Zero reports every break-even-or-better hedge.
	MinProfitPct float64
	FeeMode      fees.PolymarketMode
	Logger       *zap.Logger
}

// NewEvaluator creates an evaluator. A non-finite or negative threshold and
// an unknown fee mode are configuration errors.
func NewEvaluator(cfg Config) (*Evaluator, error) {
	if math.IsNaN(cfg.MinProfitPct) || math.IsInf(cfg.MinProfitPct, 0) || cfg.MinProfitPct < 0 {
		return nil, fmt.Errorf("min profit percent must be a non-negative finite number, got %v", cfg.MinProfitPct)
	}

	if !cfg.FeeMode.Valid() {
		return nil, fmt.Errorf("invalid polymarket fee mode %q", cfg.FeeMode)
	}

	return &Evaluator{
		minProfitPct: cfg.MinProfitPct,
		feeMode:      cfg.FeeMode,
		logger:       cfg.Logger,
	}, nil
}

// MinProfitPct returns the active reporting threshold.
func (e *Evaluator) MinProfitPct() float64 {
	return e.minProfitPct
}

// Evaluate checks both hedge directions of one pair. A direction whose
// required price on either venue is absent is skipped silently; unpriced
// sides are expected on illiquid markets, not errors.
func (e *Evaluator) Evaluate(p match.Pair) []Opportunity {
	var opps []Opportunity

	// Direction 1: YES on Kalshi hedged with NO on Polymarket.
	if p.Kalshi.YesAskCents != nil && p.Polymarket.NoAskCents != nil {
		opp, ok := e.evaluateDirection(p, DirectionKalshiYesPolymarketNo,
			*p.Kalshi.YesAskCents, *p.Polymarket.NoAskCents)
		if ok {
			opps = append(opps, opp)
		}
	} else {
		DirectionsSkippedTotal.WithLabelValues("missing_price").Inc()
	}

	// Direction 2: the mirror hedge.
	if p.Kalshi.NoAskCents != nil && p.Polymarket.YesAskCents != nil {
		opp, ok := e.evaluateDirection(p, DirectionKalshiNoPolymarketYes,
			*p.Kalshi.NoAskCents, *p.Polymarket.YesAskCents)
		if ok {
			opps = append(opps, opp)
		}
	} else {
		DirectionsSkippedTotal.WithLabelValues("missing_price").Inc()
	}

	return opps
}

// EvaluateAll scores every pair and concatenates the results in pair order.
// Ranking across pairs belongs to the reporter.
func (e *Evaluator) EvaluateAll(pairs []match.Pair) []Opportunity {
	var opps []Opportunity
	for _, p := range pairs {
		opps = append(opps, e.Evaluate(p)...)
	}
	return opps
}

func (e *Evaluator) evaluateDirection(
	p match.Pair,
	direction Direction,
	kalshiPrice, polyPrice float64,
) (Opportunity, bool) {
	kalshiFee := fees.KalshiTaker(kalshiPrice)
	polyFee := fees.PolymarketTaker(polyPrice, e.feeMode)

	opp := newOpportunity(
		direction,
		p.Kalshi.Identifier, p.Kalshi.DisplayKey,
		p.Polymarket.Identifier, p.Polymarket.DisplayKey,
		kalshiPrice, kalshiFee, polyPrice, polyFee,
	)

	if opp.ProfitPct < e.minProfitPct {
		OpportunitiesRejectedTotal.WithLabelValues("below_threshold").Inc()
		return Opportunity{}, false
	}

	OpportunitiesDetectedTotal.Inc()
	ProfitPct.Observe(opp.ProfitPct)

	e.logger.Info("arbitrage-opportunity-detected",
		zap.String("opportunity-id", opp.ID),
		zap.String("direction", string(opp.Direction)),
		zap.String("kalshi-ticker", opp.KalshiIdentifier),
		zap.String("polymarket-id", opp.PolymarketIdentifier),
		zap.Float64("total-cost-cents", opp.TotalCostCents),
		zap.Float64("profit-pct", opp.ProfitPct))

	return opp, true
}
