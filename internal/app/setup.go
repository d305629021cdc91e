package app

import (
	"context"
	"fmt"

	"github.com/mrosetti/btcarb/internal/arbitrage"
	"github.com/mrosetti/btcarb/internal/fees"
	"github.com/mrosetti/btcarb/internal/match"
	"github.com/mrosetti/btcarb/internal/scanner"
	"github.com/mrosetti/btcarb/internal/storage"
	"github.com/mrosetti/btcarb/internal/venues/kalshi"
	"github.com/mrosetti/btcarb/internal/venues/polymarket"
	"github.com/mrosetti/btcarb/pkg/cache"
	"github.com/mrosetti/btcarb/pkg/config"
	"github.com/mrosetti/btcarb/pkg/healthprobe"
	"github.com/mrosetti/btcarb/pkg/httpserver"
	"go.uber.org/zap"
)

// New creates a new application instance.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	ctx, cancel := context.WithCancel(context.Background())

	healthChecker := healthprobe.New()

	metaCache, err := setupCache(logger)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("setup cache: %w", err)
	}

	scanStorage, err := setupStorage(cfg, logger)
	if err != nil {
		cancel()
		metaCache.Close()
		return nil, fmt.Errorf("setup storage: %w", err)
	}

	scanService, err := setupScanner(cfg, logger, metaCache, scanStorage)
	if err != nil {
		cancel()
		metaCache.Close()
		_ = scanStorage.Close()
		return nil, fmt.Errorf("setup scanner: %w", err)
	}

	httpServer := httpserver.New(&httpserver.Config{
		Port:          cfg.HTTPPort,
		Logger:        logger,
		HealthChecker: healthChecker,
		Scanner:       scanService,
	})

	return &App{
		cfg:           cfg,
		logger:        logger,
		healthChecker: healthChecker,
		httpServer:    httpServer,
		metaCache:     metaCache,
		scanner:       scanService,
		storage:       scanStorage,
		ctx:           ctx,
		cancel:        cancel,
	}, nil
}

func setupCache(logger *zap.Logger) (cache.Cache, error) {
	return cache.NewRistrettoCache(&cache.RistrettoConfig{
		NumCounters: 10000,
		MaxCost:     1000,
		BufferItems: 64,
		Logger:      logger,
	})
}

func setupStorage(cfg *config.Config, logger *zap.Logger) (storage.Storage, error) {
	switch cfg.StorageMode {
	case "postgres":
		pgStorage, err := storage.NewPostgresStorage(&storage.PostgresConfig{
			Host:     cfg.PostgresHost,
			Port:     cfg.PostgresPort,
			User:     cfg.PostgresUser,
			Password: cfg.PostgresPass,
			Database: cfg.PostgresDB,
			SSLMode:  cfg.PostgresSSL,
			Logger:   logger,
		})
		if err != nil {
			return nil, fmt.Errorf("create postgres storage: %w", err)
		}
		return pgStorage, nil

	case "file":
		fileStorage, err := storage.NewFileStorage(&storage.FileConfig{
			MarketsJSONPath:       cfg.MarketsJSONPath,
			MarketsCSVPath:        cfg.MarketsCSVPath,
			OpportunitiesJSONPath: cfg.OpportunitiesJSONPath,
			Logger:                logger,
		})
		if err != nil {
			return nil, fmt.Errorf("create file storage: %w", err)
		}
		return fileStorage, nil

	default:
		return storage.NewConsoleStorage(cfg.MinProfitPct, logger), nil
	}
}

func setupScanner(cfg *config.Config, logger *zap.Logger, metaCache cache.Cache, scanStorage storage.Storage) (*scanner.Service, error) {
	kalshiClient := kalshi.NewClient(&kalshi.Config{
		APIURL:      cfg.KalshiAPIURL,
		CategoryURL: cfg.KalshiCategoryURL,
		Cache:       metaCache,
		Logger:      logger,
	})

	polyClient := polymarket.NewClient(cfg.PolymarketGammaURL, logger)

	feeMode, err := fees.ParsePolymarketMode(cfg.PolymarketFeeMode)
	if err != nil {
		return nil, fmt.Errorf("parse fee mode: %w", err)
	}

	evaluator, err := arbitrage.NewEvaluator(arbitrage.Config{
		MinProfitPct: cfg.MinProfitPct,
		FeeMode:      feeMode,
		Logger:       logger,
	})
	if err != nil {
		return nil, fmt.Errorf("create evaluator: %w", err)
	}

	return scanner.New(scanner.Config{
		Kalshi:     kalshiClient,
		Polymarket: polyClient,
		Matcher:    match.New(logger),
		Evaluator:  evaluator,
		Storage:    scanStorage,
		Interval:   cfg.FetchInterval,
		EventLimit: cfg.GammaEventLimit,
		Keywords:   cfg.AssetKeywords,
		Logger:     logger,
	}), nil
}
