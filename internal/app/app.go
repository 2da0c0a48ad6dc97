// Package app wires configuration, storage, clients and services together.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/niveshlab/nivesh/internal/clients/nse"
	"github.com/niveshlab/nivesh/internal/common"
	"github.com/niveshlab/nivesh/internal/interfaces"
	"github.com/niveshlab/nivesh/internal/services/dashboard"
	"github.com/niveshlab/nivesh/internal/services/market"
	"github.com/niveshlab/nivesh/internal/storage/surrealdb"
)

// App holds all initialized services and clients. It is the shared core
// behind cmd/nivesh-server.
type App struct {
	Config           *common.Config
	Logger           *common.Logger
	Storage          interfaces.StorageManager
	NSEClient        interfaces.NSEClient
	MarketService    interfaces.MarketService
	DashboardService interfaces.DashboardService
	StartupTime      time.Time

	schedulerCancel context.CancelFunc
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp initializes configuration, storage, the NSE client and all
// services. configPath may be empty, in which case the default resolution
// logic is used.
func NewApp(configPath string) (*App, error) {
	binDir := getBinaryDir()

	// Config resolution: explicit path, NIVESH_CONFIG, binary dir, dev fallback
	if configPath == "" {
		configPath = os.Getenv("NIVESH_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "nivesh.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/nivesh.toml"
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := common.NewLoggerFromConfig(config.Logging)

	storageManager, err := surrealdb.NewManager(logger, config)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	nseClient := nse.NewClient(
		nse.WithBaseURL(config.Clients.NSE.BaseURL),
		nse.WithRateLimit(config.Clients.NSE.RateLimit),
		nse.WithTimeout(config.Clients.NSE.GetTimeout()),
		nse.WithLogger(logger),
	)

	a := &App{
		Config:           config,
		Logger:           logger,
		Storage:          storageManager,
		NSEClient:        nseClient,
		MarketService:    market.NewService(storageManager, nseClient, logger),
		DashboardService: dashboard.NewService(storageManager, logger),
		StartupTime:      time.Now(),
	}

	if config.Refresh.Enabled && config.Refresh.ClientID != "" {
		ctx, cancel := context.WithCancel(context.Background())
		a.schedulerCancel = cancel
		go startRefreshScheduler(ctx, a.MarketService, storageManager, logger,
			config.Refresh.ClientID, config.Refresh.GetInterval())
	}

	logger.Info().
		Str("environment", config.Environment).
		Str("nse_base_url", config.Clients.NSE.BaseURL).
		Bool("refresh_enabled", config.Refresh.Enabled).
		Msg("Application initialized")

	return a, nil
}

// Close releases all resources held by the App.
// Shutdown order: cancel scheduler, close storage.
func (a *App) Close() {
	if a.schedulerCancel != nil {
		a.schedulerCancel()
	}
	if a.Storage != nil {
		a.Storage.Close()
	}
}
