package scanner

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ScanCyclesTotal tracks started scan cycles.
	ScanCyclesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "btcarb_scan_cycles_total",
		Help: "Total number of scan cycles started",
	})

	// VenueFetchFailuresTotal tracks cycles where a venue fetch failed.
	VenueFetchFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "btcarb_scan_venue_fetch_failures_total",
			Help: "Total number of venue fetch failures during scan cycles",
		},
		[]string{"venue"},
	)

	// StorageErrorsTotal tracks persistence failures.
	StorageErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "btcarb_scan_storage_errors_total",
		Help: "Total number of storage errors during scan cycles",
	})

	// ScanDurationSeconds tracks the duration of one full scan cycle.
	ScanDurationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "btcarb_scan_duration_seconds",
		Help:    "Duration of one full scan cycle",
		Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
	})
)
