package httpserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/mrosetti/btcarb/internal/arbitrage"
	"github.com/mrosetti/btcarb/internal/normalize"
	"go.uber.org/zap"
)

// ScanSnapshot exposes the latest scan cycle's results.
type ScanSnapshot interface {
	LastOpportunities() []arbitrage.Opportunity
	LastMarkets() []normalize.Market
	LastScanAt() time.Time
}

// ScanHandler handles HTTP requests for scan results.
type ScanHandler struct {
	scanner ScanSnapshot
	logger  *zap.Logger
}

// NewScanHandler creates a new scan result handler.
func NewScanHandler(scanner ScanSnapshot, logger *zap.Logger) *ScanHandler {
	return &ScanHandler{
		scanner: scanner,
		logger:  logger,
	}
}

// OpportunitiesResponse represents the HTTP response for ranked opportunities.
type OpportunitiesResponse struct {
	ScannedAt     time.Time               `json:"scanned_at"`
	Count         int                     `json:"count"`
	Opportunities []arbitrage.Opportunity `json:"opportunities"`
}

// MarketsResponse represents the HTTP response for the market snapshot.
type MarketsResponse struct {
	ScannedAt time.Time          `json:"scanned_at"`
	Count     int                `json:"count"`
	Markets   []normalize.Market `json:"markets"`
}

// ErrorResponse represents an HTTP error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HandleOpportunities handles GET /api/opportunities requests. Opportunities
// are returned in rank order, highest profit percentage first.
func (h *ScanHandler) HandleOpportunities(w http.ResponseWriter, r *http.Request) {
	scannedAt := h.scanner.LastScanAt()
	if scannedAt.IsZero() {
		h.writeError(w, "no scan cycle has completed yet", http.StatusServiceUnavailable)
		return
	}

	opps := h.scanner.LastOpportunities()
	h.writeJSON(w, OpportunitiesResponse{
		ScannedAt:     scannedAt,
		Count:         len(opps),
		Opportunities: opps,
	})
}

// HandleMarkets handles GET /api/markets requests.
func (h *ScanHandler) HandleMarkets(w http.ResponseWriter, r *http.Request) {
	scannedAt := h.scanner.LastScanAt()
	if scannedAt.IsZero() {
		h.writeError(w, "no scan cycle has completed yet", http.StatusServiceUnavailable)
		return
	}

	records := h.scanner.LastMarkets()
	h.writeJSON(w, MarketsResponse{
		ScannedAt: scannedAt,
		Count:     len(records),
		Markets:   records,
	})
}

func (h *ScanHandler) writeJSON(w http.ResponseWriter, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	err := json.NewEncoder(w).Encode(payload)
	if err != nil {
		h.logger.Error("failed-to-encode-response", zap.Error(err))
	}
}

func (h *ScanHandler) writeError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}
