package cmd

import (
	"fmt"

	"github.com/mrosetti/btcarb/internal/app"
	"github.com/mrosetti/btcarb/pkg/config"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the continuous scanner",
	Long: `Starts the scanner loop, which every cycle will:
1. Discover and fetch BTC markets from Kalshi
2. Fetch crypto events from the Polymarket Gamma API
3. Match markets across venues and evaluate both hedge directions
4. Persist the snapshot and ranked opportunities

Metrics, health checks and the scan result API are served over HTTP.`,
	RunE: runScanner,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(runCmd)
}

func runScanner(cmd *cobra.Command, args []string) error {
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

	application, err := app.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("create app: %w", err)
	}

	err = application.Run()
	if err != nil {
		return fmt.Errorf("run app: %w", err)
	}

	return nil
}
