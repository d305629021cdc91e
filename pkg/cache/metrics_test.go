package cache

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestMetrics_Names(t *testing.T) {
	tests := []struct {
		counter prometheus.Counter
		name    string
	}{
		{CacheHitsTotal, "btcarb_cache_hits_total"},
		{CacheMissesTotal, "btcarb_cache_misses_total"},
		{CacheSetsTotal, "btcarb_cache_sets_total"},
		{CacheDeletesTotal, "btcarb_cache_deletes_total"},
	}

	for _, tt := range tests {
		if tt.counter == nil {
			t.Errorf("%s not registered", tt.name)
			continue
		}
		if desc := tt.counter.Desc().String(); !strings.Contains(desc, tt.name) {
			t.Errorf("counter desc %q missing name %s", desc, tt.name)
		}
	}
}

func TestMetrics_CounterIncrement(t *testing.T) {
	CacheHitsTotal.Inc()
	CacheMissesTotal.Inc()
	CacheSetsTotal.Inc()
	CacheDeletesTotal.Inc()
}
