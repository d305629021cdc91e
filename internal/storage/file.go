package storage

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/mrosetti/btcarb/internal/arbitrage"
	"github.com/mrosetti/btcarb/internal/normalize"
	"go.uber.org/zap"
)

// FileStorage implements Storage on local files. Market snapshots accumulate
// in a JSON array and a CSV log; opportunities accumulate in a JSON array.
// Each store call appends to the existing history rather than replacing it.
type FileStorage struct {
	marketsJSONPath       string
	marketsCSVPath        string
	opportunitiesJSONPath string
	logger                *zap.Logger
}

// FileConfig holds file storage configuration.
type FileConfig struct {
	MarketsJSONPath       string
	MarketsCSVPath        string
	OpportunitiesJSONPath string
	Logger                *zap.Logger
}

// NewFileStorage creates a file storage and ensures the parent directories exist.
func NewFileStorage(cfg *FileConfig) (*FileStorage, error) {
	for _, path := range []string{cfg.MarketsJSONPath, cfg.MarketsCSVPath, cfg.OpportunitiesJSONPath} {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage directory %s: %w", dir, err)
		}
	}

	cfg.Logger.Info("file-storage-initialized",
		zap.String("markets-json", cfg.MarketsJSONPath),
		zap.String("markets-csv", cfg.MarketsCSVPath),
		zap.String("opportunities-json", cfg.OpportunitiesJSONPath))

	return &FileStorage{
		marketsJSONPath:       cfg.MarketsJSONPath,
		marketsCSVPath:        cfg.MarketsCSVPath,
		opportunitiesJSONPath: cfg.OpportunitiesJSONPath,
		logger:                cfg.Logger,
	}, nil
}

// StoreMarkets appends the snapshot to the JSON history and the CSV log.
func (f *FileStorage) StoreMarkets(ctx context.Context, records []normalize.Market) error {
	if err := appendJSON(f.marketsJSONPath, records); err != nil {
		return fmt.Errorf("append markets json: %w", err)
	}

	if err := f.appendMarketsCSV(records); err != nil {
		return fmt.Errorf("append markets csv: %w", err)
	}

	f.logger.Debug("market-snapshot-stored",
		zap.Int("record-count", len(records)),
		zap.String("path", f.marketsJSONPath))

	return nil
}

// StoreOpportunities appends the opportunities to the JSON history.
func (f *FileStorage) StoreOpportunities(ctx context.Context, opps []arbitrage.Opportunity) error {
	if err := appendJSON(f.opportunitiesJSONPath, opps); err != nil {
		return fmt.Errorf("append opportunities json: %w", err)
	}

	f.logger.Debug("opportunities-stored",
		zap.Int("opportunity-count", len(opps)),
		zap.String("path", f.opportunitiesJSONPath))

	return nil
}

// Close is a no-op for file storage.
func (f *FileStorage) Close() error {
	f.logger.Info("closing-file-storage")
	return nil
}

var marketsCSVHeader = []string{
	"venue", "identifier", "display_key", "yes_ask_cents", "no_ask_cents", "volume", "fetched_at",
}

func (f *FileStorage) appendMarketsCSV(records []normalize.Market) error {
	_, statErr := os.Stat(f.marketsCSVPath)
	newFile := os.IsNotExist(statErr)

	file, err := os.OpenFile(f.marketsCSVPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open csv: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if newFile {
		if err := w.Write(marketsCSVHeader); err != nil {
			return fmt.Errorf("write csv header: %w", err)
		}
	}

	for _, rec := range records {
		row := []string{
			string(rec.Venue),
			rec.Identifier,
			rec.DisplayKey,
			csvCents(rec.YesAskCents),
			csvCents(rec.NoAskCents),
			strconv.FormatFloat(rec.Volume, 'f', -1, 64),
			rec.FetchedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	w.Flush()
	return w.Error()
}

// appendJSON reads the existing JSON array at path, appends items, and writes
// the combined array back. A missing or empty file starts a new history.
func appendJSON[T any](path string, items []T) error {
	var history []T

	data, err := os.ReadFile(path)
	switch {
	case err == nil && len(data) > 0:
		if err := json.Unmarshal(data, &history); err != nil {
			return fmt.Errorf("decode existing history: %w", err)
		}
	case err != nil && !os.IsNotExist(err):
		return fmt.Errorf("read history: %w", err)
	}

	history = append(history, items...)

	out, err := json.MarshalIndent(history, "", "  ")
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}

	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("write history: %w", err)
	}

	return nil
}

func csvCents(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}
