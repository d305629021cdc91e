package arbitrage

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// OpportunitiesDetectedTotal tracks opportunities that cleared the threshold.
	OpportunitiesDetectedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "btcarb_opportunities_detected_total",
		Help: "Total number of arbitrage opportunities detected",
	})

	// OpportunitiesRejectedTotal tracks evaluated directions rejected by reason.
	OpportunitiesRejectedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "btcarb_opportunities_rejected_total",
			Help: "Total number of evaluated hedge directions rejected",
		},
		[]string{"reason"},
	)

	// DirectionsSkippedTotal tracks directions skipped before evaluation.
	DirectionsSkippedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "btcarb_directions_skipped_total",
			Help: "Total number of hedge directions skipped before evaluation",
		},
		[]string{"reason"},
	)

	// ProfitPct tracks the profit percentage of detected opportunities.
	ProfitPct = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "btcarb_opportunity_profit_pct",
		Help:    "Profit percentage of detected arbitrage opportunities",
		Buckets: []float64{0.5, 1, 2, 3, 5, 8, 13, 21, 34},
	})
)
