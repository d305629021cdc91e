package kalshi

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// MarketsFetchedTotal tracks Kalshi markets retrieved across all cycles.
	MarketsFetchedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "btcarb_kalshi_markets_fetched_total",
		Help: "Total number of Kalshi markets fetched",
	})

	// FetchErrorsTotal tracks fetch failures by stage.
	FetchErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "btcarb_kalshi_fetch_errors_total",
			Help: "Total number of Kalshi fetch errors",
		},
		[]string{"stage"},
	)

	// SeriesDiscovered reports how many BTC series the last scrape found.
	SeriesDiscovered = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "btcarb_kalshi_series_discovered",
		Help: "Number of BTC series tickers discovered on the category page",
	})

	// FetchDurationSeconds tracks the duration of a full market fetch.
	FetchDurationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "btcarb_kalshi_fetch_duration_seconds",
		Help:    "Duration of a full Kalshi market fetch",
		Buckets: prometheus.DefBuckets,
	})
)
