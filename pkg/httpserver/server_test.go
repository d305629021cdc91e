package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mrosetti/btcarb/internal/arbitrage"
	"github.com/mrosetti/btcarb/internal/normalize"
	"github.com/mrosetti/btcarb/pkg/healthprobe"
	"go.uber.org/zap"
)

type stubScanner struct {
	opps    []arbitrage.Opportunity
	markets []normalize.Market
	scanAt  time.Time
}

func (s *stubScanner) LastOpportunities() []arbitrage.Opportunity { return s.opps }
func (s *stubScanner) LastMarkets() []normalize.Market            { return s.markets }
func (s *stubScanner) LastScanAt() time.Time                      { return s.scanAt }

func newTestServer(scanner ScanSnapshot) (*Server, *healthprobe.HealthChecker) {
	hc := healthprobe.New()
	srv := New(&Config{
		Port:          "0",
		Logger:        zap.NewNop(),
		HealthChecker: hc,
		Scanner:       scanner,
	})
	return srv, hc
}

func TestHealthEndpoint(t *testing.T) {
	srv, _ := newTestServer(nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.server.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("health status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestReadyEndpoint(t *testing.T) {
	srv, hc := newTestServer(nil)

	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	rec := httptest.NewRecorder()
	srv.server.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("ready status before SetReady = %d, want %d", rec.Code, http.StatusServiceUnavailable)
	}

	hc.SetReady(true)

	rec = httptest.NewRecorder()
	srv.server.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("ready status after SetReady = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	srv, _ := newTestServer(nil)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	srv.server.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("metrics status = %d, want %d", rec.Code, http.StatusOK)
	}
	if rec.Body.Len() == 0 {
		t.Error("metrics endpoint returned empty body")
	}
}

func TestOpportunitiesEndpoint(t *testing.T) {
	scanner := &stubScanner{
		opps: []arbitrage.Opportunity{
			{
				ID:               "op-1",
				Direction:        arbitrage.DirectionKalshiYesPolymarketNo,
				KalshiIdentifier: "KXBTC-T100",
				ProfitPct:        3.38,
			},
		},
		scanAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	srv, _ := newTestServer(scanner)

	req := httptest.NewRequest(http.MethodGet, "/api/opportunities", nil)
	rec := httptest.NewRecorder()
	srv.server.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	var resp OpportunitiesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Count != 1 || len(resp.Opportunities) != 1 {
		t.Errorf("Count = %d, opportunities = %d, want 1/1", resp.Count, len(resp.Opportunities))
	}
	if resp.Opportunities[0].ID != "op-1" {
		t.Errorf("opportunity ID = %q, want op-1", resp.Opportunities[0].ID)
	}
	if !resp.ScannedAt.Equal(scanner.scanAt) {
		t.Errorf("ScannedAt = %v, want %v", resp.ScannedAt, scanner.scanAt)
	}
}

func TestOpportunitiesEndpoint_BeforeFirstScan(t *testing.T) {
	srv, _ := newTestServer(&stubScanner{})

	req := httptest.NewRequest(http.MethodGet, "/api/opportunities", nil)
	rec := httptest.NewRecorder()
	srv.server.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want %d before first scan", rec.Code, http.StatusServiceUnavailable)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if resp.Error == "" {
		t.Error("expected error message in body")
	}
}

func TestMarketsEndpoint(t *testing.T) {
	yes := 42.0
	scanner := &stubScanner{
		markets: []normalize.Market{
			{
				Venue:       normalize.VenueKalshi,
				Identifier:  "KXBTC-T100",
				DisplayKey:  "Bitcoin above 100k?",
				YesAskCents: &yes,
			},
		},
		scanAt: time.Now(),
	}
	srv, _ := newTestServer(scanner)

	req := httptest.NewRequest(http.MethodGet, "/api/markets", nil)
	rec := httptest.NewRecorder()
	srv.server.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var resp MarketsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Count != 1 {
		t.Errorf("Count = %d, want 1", resp.Count)
	}
	if resp.Markets[0].NoAskCents != nil {
		t.Error("absent price must serialize as null, not zero")
	}
}

func TestScanRoutes_OnlyWithScanner(t *testing.T) {
	srv, _ := newTestServer(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/opportunities", nil)
	rec := httptest.NewRecorder()
	srv.server.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d without scanner", rec.Code, http.StatusNotFound)
	}
}

func TestRouteNotFound(t *testing.T) {
	srv, _ := newTestServer(nil)

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec := httptest.NewRecorder()
	srv.server.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}
