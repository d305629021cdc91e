// Package cmd holds the CLI commands.
package cmd

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var rootCmd = &cobra.Command{
	Use:   "btcarb",
	Short: "Cross-venue BTC prediction market arbitrage scanner",
	Long: `Scans Bitcoin prediction markets on Kalshi and Polymarket, matches
markets that reference the same event, and reports hedge trades that stay
profitable after both venues' taker fees.

A hedge buys opposite sides of the same question on the two venues; exactly
one leg pays out 100 cents, so any total cost below 100 cents is locked-in
profit.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// A missing .env file is fine; the environment still applies.
		_ = godotenv.Load()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
