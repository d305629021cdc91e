// Package app wires configuration, venue clients, the scanner and the HTTP
// server into one runnable application.
package app

import (
	"context"
	"sync"

	"github.com/mrosetti/btcarb/internal/scanner"
	"github.com/mrosetti/btcarb/internal/storage"
	"github.com/mrosetti/btcarb/pkg/cache"
	"github.com/mrosetti/btcarb/pkg/config"
	"github.com/mrosetti/btcarb/pkg/healthprobe"
	"github.com/mrosetti/btcarb/pkg/httpserver"
	"go.uber.org/zap"
)

// App is the main application orchestrator.
type App struct {
	cfg           *config.Config
	logger        *zap.Logger
	healthChecker *healthprobe.HealthChecker
	httpServer    *httpserver.Server
	metaCache     cache.Cache
	scanner       *scanner.Service
	storage       storage.Storage
	ctx           context.Context
	cancel        context.CancelFunc
	wg            sync.WaitGroup
}
