// Package scanner runs the cross-venue scan cycle: fetch, normalize, match,
// evaluate, rank, persist.
package scanner

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mrosetti/btcarb/internal/arbitrage"
	"github.com/mrosetti/btcarb/internal/match"
	"github.com/mrosetti/btcarb/internal/normalize"
	"github.com/mrosetti/btcarb/internal/report"
	"github.com/mrosetti/btcarb/internal/storage"
	"github.com/mrosetti/btcarb/internal/venues/kalshi"
	"github.com/mrosetti/btcarb/internal/venues/polymarket"
	"go.uber.org/zap"
)

// DefaultInterval is the scan cadence when none is configured.
const DefaultInterval = 15 * time.Minute

// KalshiSource provides Kalshi BTC markets.
type KalshiSource interface {
	FetchBTCMarkets(ctx context.Context) ([]kalshi.Market, error)
}

// PolymarketSource provides Polymarket crypto events.
type PolymarketSource interface {
	FetchCryptoEvents(ctx context.Context, limit int) ([]polymarket.Event, error)
}

// Config holds scanner configuration.
type Config struct {
	Kalshi     KalshiSource
	Polymarket PolymarketSource
	Matcher    *match.Matcher
	Evaluator  *arbitrage.Evaluator
	Storage    storage.Storage

	// Interval is the scan cadence. Zero means DefaultInterval.
	Interval time.Duration
	// EventLimit caps the Polymarket event page size.
	EventLimit int
	// Keywords filter Polymarket events. Empty means normalize.DefaultKeywords.
	Keywords []string

	Logger *zap.Logger
}

// Service drives the periodic scan loop and keeps the latest cycle's results
// for the HTTP API.
type Service struct {
	kalshi     KalshiSource
	polymarket PolymarketSource
	matcher    *match.Matcher
	evaluator  *arbitrage.Evaluator
	storage    storage.Storage
	interval   time.Duration
	eventLimit int
	keywords   []string
	logger     *zap.Logger

	firstScanOnce sync.Once
	firstScanDone chan struct{}

	mu          sync.RWMutex
	lastMarkets []normalize.Market
	lastOpps    []arbitrage.Opportunity
	lastScanAt  time.Time
}

// New creates a scanner service.
func New(cfg Config) *Service {
	interval := cfg.Interval
	if interval == 0 {
		interval = DefaultInterval
	}

	return &Service{
		kalshi:        cfg.Kalshi,
		polymarket:    cfg.Polymarket,
		matcher:       cfg.Matcher,
		evaluator:     cfg.Evaluator,
		storage:       cfg.Storage,
		interval:      interval,
		eventLimit:    cfg.EventLimit,
		keywords:      cfg.Keywords,
		logger:        cfg.Logger,
		firstScanDone: make(chan struct{}),
	}
}

// Run executes scan cycles until the context is cancelled. The first cycle
// starts immediately; a failed cycle is logged and the loop keeps going.
func (s *Service) Run(ctx context.Context) error {
	s.logger.Info("scanner-started",
		zap.Duration("interval", s.interval))

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	if _, err := s.ScanOnce(ctx); err != nil {
		s.logger.Error("scan-cycle-failed", zap.Error(err))
	}

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scanner-stopped")
			return ctx.Err()
		case <-ticker.C:
			if _, err := s.ScanOnce(ctx); err != nil {
				s.logger.Error("scan-cycle-failed", zap.Error(err))
			}
		}
	}
}

// ScanOnce runs one full cycle and returns the ranked opportunities. A venue
// fetch failure degrades that venue to an empty snapshot rather than aborting
// the cycle; the other venue's data is still normalized and persisted.
func (s *Service) ScanOnce(ctx context.Context) ([]arbitrage.Opportunity, error) {
	start := time.Now()
	fetchedAt := start.UTC()

	ScanCyclesTotal.Inc()

	kalshiMarkets, err := s.kalshi.FetchBTCMarkets(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("fetch kalshi markets: %w", err)
		}
		VenueFetchFailuresTotal.WithLabelValues("kalshi").Inc()
		s.logger.Warn("kalshi-fetch-failed", zap.Error(err))
		kalshiMarkets = nil
	}

	polyEvents, err := s.polymarket.FetchCryptoEvents(ctx, s.eventLimit)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("fetch polymarket events: %w", err)
		}
		VenueFetchFailuresTotal.WithLabelValues("polymarket").Inc()
		s.logger.Warn("polymarket-fetch-failed", zap.Error(err))
		polyEvents = nil
	}

	kalshiRecords := normalize.FromKalshi(kalshiMarkets, fetchedAt)
	polyRecords := normalize.FromPolymarket(polyEvents, s.keywords, fetchedAt)

	pairs := s.matcher.Pairs(kalshiRecords, polyRecords)
	opps := report.Rank(s.evaluator.EvaluateAll(pairs))

	records := make([]normalize.Market, 0, len(kalshiRecords)+len(polyRecords))
	records = append(records, kalshiRecords...)
	records = append(records, polyRecords...)

	if err := s.storage.StoreMarkets(ctx, records); err != nil {
		StorageErrorsTotal.Inc()
		s.logger.Error("store-markets-failed", zap.Error(err))
	}
	if err := s.storage.StoreOpportunities(ctx, opps); err != nil {
		StorageErrorsTotal.Inc()
		s.logger.Error("store-opportunities-failed", zap.Error(err))
	}

	s.mu.Lock()
	s.lastMarkets = records
	s.lastOpps = opps
	s.lastScanAt = start
	s.mu.Unlock()

	s.firstScanOnce.Do(func() { close(s.firstScanDone) })

	ScanDurationSeconds.Observe(time.Since(start).Seconds())

	s.logger.Info("scan-cycle-complete",
		zap.Int("kalshi-markets", len(kalshiRecords)),
		zap.Int("polymarket-markets", len(polyRecords)),
		zap.Int("pairs", len(pairs)),
		zap.Int("opportunities", len(opps)),
		zap.Duration("duration", time.Since(start)))

	return opps, nil
}

// FirstScanDone returns a channel that closes once the first cycle has
// completed. Readiness probes gate on it.
func (s *Service) FirstScanDone() <-chan struct{} {
	return s.firstScanDone
}

// LastOpportunities returns the ranked opportunities of the latest cycle.
func (s *Service) LastOpportunities() []arbitrage.Opportunity {
	s.mu.RLock()
	defer s.mu.RUnlock()

	opps := make([]arbitrage.Opportunity, len(s.lastOpps))
	copy(opps, s.lastOpps)
	return opps
}

// LastMarkets returns the normalized snapshot of the latest cycle.
func (s *Service) LastMarkets() []normalize.Market {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]normalize.Market, len(s.lastMarkets))
	copy(records, s.lastMarkets)
	return records
}

// LastScanAt returns when the latest cycle started. Zero before the first cycle.
func (s *Service) LastScanAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastScanAt
}
