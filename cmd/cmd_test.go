package cmd

import (
	"testing"

	"github.com/mrosetti/btcarb/internal/storage"
	"github.com/mrosetti/btcarb/pkg/config"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, want := range []string{"run", "fetch", "arb"} {
		assert.True(t, names[want], "missing subcommand %s", want)
	}
}

func TestArbCommand_Flags(t *testing.T) {
	minProfit := arbCmd.Flags().Lookup("min-profit")
	require.NotNil(t, minProfit)
	assert.Equal(t, "0", minProfit.DefValue)

	feeMode := arbCmd.Flags().Lookup("fee-mode")
	require.NotNil(t, feeMode)
	assert.Equal(t, "", feeMode.DefValue)
}

func TestResolveMinProfit(t *testing.T) {
	newCmd := func() *cobra.Command {
		c := &cobra.Command{Use: "arb"}
		c.Flags().Float64P("min-profit", "p", 0, "")
		return c
	}

	t.Run("unset falls back to config", func(t *testing.T) {
		assert.Equal(t, 1.0, resolveMinProfit(newCmd(), 1.0))
	})

	t.Run("explicit zero means break-even", func(t *testing.T) {
		c := newCmd()
		require.NoError(t, c.Flags().Set("min-profit", "0"))
		assert.Equal(t, 0.0, resolveMinProfit(c, 1.0))
	})

	t.Run("explicit value overrides config", func(t *testing.T) {
		c := newCmd()
		require.NoError(t, c.Flags().Set("min-profit", "2.5"))
		assert.Equal(t, 2.5, resolveMinProfit(c, 1.0))
	})
}

func TestNewStorage_FileMode(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("STORAGE_MODE", "file")
	t.Setenv("MARKETS_JSON_PATH", dir+"/markets.json")
	t.Setenv("MARKETS_CSV_PATH", dir+"/markets.csv")
	t.Setenv("OPPORTUNITIES_JSON_PATH", dir+"/opps.json")

	cfg, err := config.LoadFromEnv()
	require.NoError(t, err)

	store, err := newStorage(cfg, zap.NewNop())
	require.NoError(t, err)
	defer store.Close()

	_, ok := store.(*storage.FileStorage)
	assert.True(t, ok, "expected file storage for STORAGE_MODE=file")
}
