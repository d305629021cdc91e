package storage

import (
	"context"
	"os"

	"github.com/mrosetti/btcarb/internal/arbitrage"
	"github.com/mrosetti/btcarb/internal/normalize"
	"github.com/mrosetti/btcarb/internal/report"
	"go.uber.org/zap"
)

// ConsoleStorage implements Storage by pretty-printing to stdout. Useful for
// local runs where nothing needs to survive the process.
type ConsoleStorage struct {
	reporter     *report.Reporter
	minProfitPct float64
	logger       *zap.Logger
}

// NewConsoleStorage creates a new console storage. minProfitPct is the active
// reporting threshold, echoed in the empty-result banner.
func NewConsoleStorage(minProfitPct float64, logger *zap.Logger) *ConsoleStorage {
	logger.Info("console-storage-initialized",
		zap.Float64("min-profit-pct", minProfitPct))
	return &ConsoleStorage{
		reporter:     report.NewReporter(os.Stdout),
		minProfitPct: minProfitPct,
		logger:       logger,
	}
}

// StoreMarkets prints the snapshot table.
func (c *ConsoleStorage) StoreMarkets(ctx context.Context, records []normalize.Market) error {
	c.reporter.RenderMarkets(records)
	return nil
}

// StoreOpportunities prints the ranked opportunity report.
func (c *ConsoleStorage) StoreOpportunities(ctx context.Context, opps []arbitrage.Opportunity) error {
	c.reporter.RenderOpportunities(opps, c.minProfitPct)
	return nil
}

// Close is a no-op for console storage.
func (c *ConsoleStorage) Close() error {
	c.logger.Info("closing-console-storage")
	return nil
}
