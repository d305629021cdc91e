package polymarket

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// EventsFetchedTotal tracks Gamma events retrieved across all cycles.
	EventsFetchedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "btcarb_polymarket_events_fetched_total",
		Help: "Total number of Polymarket events fetched",
	})

	// FetchErrorsTotal tracks Gamma fetch failures.
	FetchErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "btcarb_polymarket_fetch_errors_total",
		Help: "Total number of Polymarket fetch errors",
	})

	// FetchDurationSeconds tracks the duration of an event fetch.
	FetchDurationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "btcarb_polymarket_fetch_duration_seconds",
		Help:    "Duration of a Polymarket event fetch",
		Buckets: prometheus.DefBuckets,
	})
)
