package cache

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"
)

func newTestCache(t *testing.T) *RistrettoCache {
	t.Helper()

	c, err := NewRistrettoCache(&RistrettoConfig{
		NumCounters: 1000,
		MaxCost:     100,
		BufferItems: 64,
		Logger:      zap.NewNop(),
	})
	if err != nil {
		t.Fatalf("NewRistrettoCache: %v", err)
	}
	t.Cleanup(c.Close)

	return c.(*RistrettoCache)
}

func TestRistrettoCache_SetAndGet(t *testing.T) {
	c := newTestCache(t)

	tickers := []string{"KXBTC", "KXBTCD", "KXBTCMAX"}
	if !c.Set("kalshi-btc-series", tickers, time.Hour) {
		t.Fatal("expected Set to succeed")
	}
	c.Wait()

	hitsBefore := testutil.ToFloat64(CacheHitsTotal)

	value, found := c.Get("kalshi-btc-series")
	if !found {
		t.Fatal("expected cached series tickers to be found")
	}

	got, ok := value.([]string)
	if !ok || len(got) != 3 || got[0] != "KXBTC" {
		t.Errorf("cached value = %v, want %v", value, tickers)
	}

	if delta := testutil.ToFloat64(CacheHitsTotal) - hitsBefore; delta != 1 {
		t.Errorf("hit counter delta = %v, want 1", delta)
	}
}

func TestRistrettoCache_MissCountsAsMiss(t *testing.T) {
	c := newTestCache(t)

	missesBefore := testutil.ToFloat64(CacheMissesTotal)

	if _, found := c.Get("never-scraped"); found {
		t.Error("expected miss for an unknown key")
	}

	if delta := testutil.ToFloat64(CacheMissesTotal) - missesBefore; delta != 1 {
		t.Errorf("miss counter delta = %v, want 1", delta)
	}
}

func TestRistrettoCache_Delete(t *testing.T) {
	c := newTestCache(t)

	c.Set("kalshi-btc-series", []string{"KXBTC"}, time.Hour)
	c.Wait()

	if _, found := c.Get("kalshi-btc-series"); !found {
		t.Skip("entry not admitted, nothing to delete")
	}

	c.Delete("kalshi-btc-series")

	if _, found := c.Get("kalshi-btc-series"); found {
		t.Error("expected entry to be gone after Delete")
	}
}

func TestRistrettoCache_TTLExpiration(t *testing.T) {
	c := newTestCache(t)

	c.Set("kalshi-btc-series", []string{"KXBTC"}, 150*time.Millisecond)
	c.Wait()

	if _, found := c.Get("kalshi-btc-series"); !found {
		t.Skip("entry not admitted")
	}

	time.Sleep(300 * time.Millisecond)

	if _, found := c.Get("kalshi-btc-series"); found {
		t.Error("expected entry to expire after its TTL")
	}
}

func TestRistrettoCache_Clear(t *testing.T) {
	c := newTestCache(t)

	c.Set("kalshi-btc-series", []string{"KXBTC"}, time.Hour)
	c.Set("polymarket-crypto-tags", []string{"21"}, time.Hour)
	c.Wait()

	_, found1 := c.Get("kalshi-btc-series")
	_, found2 := c.Get("polymarket-crypto-tags")
	if !found1 || !found2 {
		// Ristretto admission is probabilistic under pressure.
		t.Skip("entries not admitted")
	}

	c.Clear()

	if _, found := c.Get("kalshi-btc-series"); found {
		t.Error("expected cache to be empty after Clear")
	}
	if _, found := c.Get("polymarket-crypto-tags"); found {
		t.Error("expected cache to be empty after Clear")
	}
}
