package match

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PairsMatchedTotal tracks cross-venue pairs produced across all cycles.
	PairsMatchedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "btcarb_match_pairs_total",
		Help: "Total number of cross-venue market pairs matched",
	})

	// MatchDurationSeconds tracks the duration of one matching pass.
	MatchDurationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "btcarb_match_duration_seconds",
		Help:    "Duration of one cross-venue matching pass",
		Buckets: prometheus.DefBuckets,
	})
)
