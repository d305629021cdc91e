package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/mrosetti/btcarb/internal/arbitrage"
	"github.com/mrosetti/btcarb/internal/normalize"
	"go.uber.org/zap"
)

// PostgresStorage implements Storage using PostgreSQL.
type PostgresStorage struct {
	db     *sql.DB
	logger *zap.Logger
}

// PostgresConfig holds PostgreSQL configuration.
type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
	SSLMode  string
	Logger   *zap.Logger
}

// NewPostgresStorage creates a new PostgreSQL storage.
func NewPostgresStorage(cfg *PostgresConfig) (*PostgresStorage, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Database, cfg.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	err = db.Ping()
	if err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	cfg.Logger.Info("postgres-storage-connected",
		zap.String("host", cfg.Host),
		zap.String("database", cfg.Database))

	return &PostgresStorage{
		db:     db,
		logger: cfg.Logger,
	}, nil
}

// StoreMarkets inserts one row per normalized market record. Absent price
// sides are stored as NULL, never as zero.
func (p *PostgresStorage) StoreMarkets(ctx context.Context, records []normalize.Market) error {
	query := `
		INSERT INTO market_snapshots (
			venue, identifier, display_key, yes_ask_cents, no_ask_cents,
			volume, fetched_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	for _, rec := range records {
		_, err := p.db.ExecContext(ctx, query,
			string(rec.Venue),
			rec.Identifier,
			rec.DisplayKey,
			nullableCents(rec.YesAskCents),
			nullableCents(rec.NoAskCents),
			rec.Volume,
			rec.FetchedAt,
		)
		if err != nil {
			return fmt.Errorf("insert market snapshot: %w", err)
		}
	}

	p.logger.Debug("market-snapshot-stored",
		zap.Int("record-count", len(records)))

	return nil
}

// StoreOpportunities inserts one row per detected opportunity.
func (p *PostgresStorage) StoreOpportunities(ctx context.Context, opps []arbitrage.Opportunity) error {
	query := `
		INSERT INTO arbitrage_opportunities (
			id, direction, kalshi_identifier, kalshi_title,
			polymarket_identifier, polymarket_title,
			kalshi_price_cents, kalshi_fee_cents,
			polymarket_price_cents, polymarket_fee_cents,
			total_cost_cents, profit_cents, profit_pct, detected_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14
		)
	`

	for _, opp := range opps {
		_, err := p.db.ExecContext(ctx, query,
			opp.ID,
			string(opp.Direction),
			opp.KalshiIdentifier,
			opp.KalshiTitle,
			opp.PolymarketIdentifier,
			opp.PolymarketTitle,
			opp.KalshiPriceCents,
			opp.KalshiFeeCents,
			opp.PolymarketPriceCents,
			opp.PolymarketFeeCents,
			opp.TotalCostCents,
			opp.ProfitCents,
			opp.ProfitPct,
			opp.DetectedAt,
		)
		if err != nil {
			return fmt.Errorf("insert opportunity: %w", err)
		}

		p.logger.Debug("opportunity-stored",
			zap.String("opportunity-id", opp.ID),
			zap.String("kalshi-ticker", opp.KalshiIdentifier),
			zap.Float64("profit-pct", opp.ProfitPct))
	}

	return nil
}

// Close closes the database connection.
func (p *PostgresStorage) Close() error {
	p.logger.Info("closing-postgres-storage")
	return p.db.Close()
}

func nullableCents(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}
