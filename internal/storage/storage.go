// Package storage persists market snapshots and detected opportunities.
package storage

import (
	"context"

	"github.com/mrosetti/btcarb/internal/arbitrage"
	"github.com/mrosetti/btcarb/internal/normalize"
)

// Storage is the interface for persisting scan results.
type Storage interface {
	// StoreMarkets persists one normalized snapshot of both venues.
	StoreMarkets(ctx context.Context, records []normalize.Market) error

	// StoreOpportunities persists the ranked opportunities of one scan cycle.
	StoreOpportunities(ctx context.Context, opps []arbitrage.Opportunity) error

	// Close closes the storage connection.
	Close() error
}
