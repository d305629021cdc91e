package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/mrosetti/btcarb/internal/arbitrage"
	"github.com/mrosetti/btcarb/internal/fees"
	"github.com/mrosetti/btcarb/internal/match"
	"github.com/mrosetti/btcarb/internal/normalize"
	"github.com/mrosetti/btcarb/internal/report"
	"github.com/mrosetti/btcarb/internal/venues/kalshi"
	"github.com/mrosetti/btcarb/internal/venues/polymarket"
	"github.com/mrosetti/btcarb/pkg/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

//nolint:gochecknoglobals // Cobra boilerplate
var arbCmd = &cobra.Command{
	Use:   "arb",
	Short: "Run a single arbitrage scan",
	Long: `Fetches BTC markets from both venues, matches them, evaluates both
hedge directions per pair and prints the ranked opportunities. Results are
also persisted to the configured storage.`,
	RunE: runArb,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(arbCmd)
	arbCmd.Flags().Float64P("min-profit", "p", 0, "Minimum profit percentage to report (default from MIN_PROFIT_PCT)")
	arbCmd.Flags().StringP("fee-mode", "f", "", "Polymarket fee mode: reduced or standard (default from POLYMARKET_FEE_MODE)")
}

// resolveMinProfit prefers the flag over the configured threshold, using
// Changed so an explicit --min-profit 0 selects break-even reporting instead
// of falling back to the config value.
func resolveMinProfit(cmd *cobra.Command, configured float64) float64 {
	if cmd.Flags().Changed("min-profit") {
		v, _ := cmd.Flags().GetFloat64("min-profit")
		return v
	}
	return configured
}

func runArb(cmd *cobra.Command, args []string) error {
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

	minProfit := resolveMinProfit(cmd, cfg.MinProfitPct)

	feeModeStr, _ := cmd.Flags().GetString("fee-mode")
	if feeModeStr == "" {
		feeModeStr = cfg.PolymarketFeeMode
	}
	feeMode, err := fees.ParsePolymarketMode(feeModeStr)
	if err != nil {
		return fmt.Errorf("parse fee mode: %w", err)
	}

	evaluator, err := arbitrage.NewEvaluator(arbitrage.Config{
		MinProfitPct: minProfit,
		FeeMode:      feeMode,
		Logger:       logger,
	})
	if err != nil {
		return fmt.Errorf("create evaluator: %w", err)
	}

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

	kalshiRecords := normalize.FromKalshi(kalshiMarkets, fetchedAt)
	polyRecords := normalize.FromPolymarket(polyEvents, cfg.AssetKeywords, fetchedAt)

	pairs := match.New(logger).Pairs(kalshiRecords, polyRecords)
	opps := report.Rank(evaluator.EvaluateAll(pairs))

	report.NewReporter(os.Stdout).RenderOpportunities(opps, evaluator.MinProfitPct())

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

	if err := store.StoreOpportunities(ctx, opps); err != nil {
		return fmt.Errorf("store opportunities: %w", err)
	}

	return nil
}
