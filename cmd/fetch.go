package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/mrosetti/btcarb/internal/normalize"
	"github.com/mrosetti/btcarb/internal/report"
	"github.com/mrosetti/btcarb/internal/storage"
	"github.com/mrosetti/btcarb/internal/venues/kalshi"
	"github.com/mrosetti/btcarb/internal/venues/polymarket"
	"github.com/mrosetti/btcarb/pkg/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

//nolint:gochecknoglobals // Cobra boilerplate
var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch BTC markets once and persist them",
	Long: `Fetches BTC markets from both venues once, prints the normalized
snapshot and persists it to the configured storage. No arbitrage evaluation
is performed.`,
	RunE: runFetch,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := config.NewLogger()
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	ctx := cmd.Context()
	fetchedAt := time.Now().UTC()

	kalshiClient := kalshi.NewClient(&kalshi.Config{
		APIURL:      cfg.KalshiAPIURL,
		CategoryURL: cfg.KalshiCategoryURL,
		Logger:      logger,
	})
	polyClient := polymarket.NewClient(cfg.PolymarketGammaURL, logger)

	kalshiMarkets, err := kalshiClient.FetchBTCMarkets(ctx)
	if err != nil {
		logger.Warn("kalshi-fetch-failed", zap.Error(err))
	}

	polyEvents, err := polyClient.FetchCryptoEvents(ctx, cfg.GammaEventLimit)
	if err != nil {
		logger.Warn("polymarket-fetch-failed", zap.Error(err))
	}

	records := normalize.FromKalshi(kalshiMarkets, fetchedAt)
	records = append(records, normalize.FromPolymarket(polyEvents, cfg.AssetKeywords, fetchedAt)...)

	report.NewReporter(os.Stdout).RenderMarkets(records)

	return persistSnapshot(ctx, cfg, logger, records)
}

func persistSnapshot(ctx context.Context, cfg *config.Config, logger *zap.Logger, records []normalize.Market) error {
	if cfg.StorageMode == "console" {
		return nil
	}

	store, err := newStorage(cfg, logger)
	if err != nil {
		return fmt.Errorf("create storage: %w", err)
	}
	defer func() {
		_ = store.Close()
	}()

	if err := store.StoreMarkets(ctx, records); err != nil {
		return fmt.Errorf("store markets: %w", err)
	}

	return nil
}

func newStorage(cfg *config.Config, logger *zap.Logger) (storage.Storage, error) {
	if cfg.StorageMode == "postgres" {
		return storage.NewPostgresStorage(&storage.PostgresConfig{
			Host:     cfg.PostgresHost,
			Port:     cfg.PostgresPort,
			User:     cfg.PostgresUser,
			Password: cfg.PostgresPass,
			Database: cfg.PostgresDB,
			SSLMode:  cfg.PostgresSSL,
			Logger:   logger,
		})
	}

	return storage.NewFileStorage(&storage.FileConfig{
		MarketsJSONPath:       cfg.MarketsJSONPath,
		MarketsCSVPath:        cfg.MarketsCSVPath,
		OpportunitiesJSONPath: cfg.OpportunitiesJSONPath,
		Logger:                logger,
	})
}
