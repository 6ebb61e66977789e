// Package wire provides dependency injection for the application.
// It creates singleton services with lazy initialization.
package wire

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/example/commesse/internal/adapters/gemini"
	"github.com/example/commesse/internal/adapters/sheets"
	"github.com/example/commesse/internal/adapters/sqlite"
	"github.com/example/commesse/internal/app"
	"github.com/example/commesse/internal/config"
	"github.com/example/commesse/internal/ports/primary"
	"github.com/example/commesse/internal/ports/secondary"
)

var (
	cfg              *config.Config
	logger           *slog.Logger
	snapshotStore    *app.SnapshotStore
	syncService      *app.SyncCoordinator
	jobService       primary.JobService
	directoryService primary.DirectoryService
	assistantService primary.AssistantService
	once             sync.Once
)

// Config returns the loaded configuration.
func Config() *config.Config {
	once.Do(initServices)
	return cfg
}

// Logger returns the shared structured logger.
func Logger() *slog.Logger {
	once.Do(initServices)
	return logger
}

// JobService returns the singleton JobService instance.
func JobService() primary.JobService {
	once.Do(initServices)
	return jobService
}

// DirectoryService returns the singleton DirectoryService instance.
func DirectoryService() primary.DirectoryService {
	once.Do(initServices)
	return directoryService
}

// AssistantService returns the singleton AssistantService instance.
func AssistantService() primary.AssistantService {
	once.Do(initServices)
	return assistantService
}

// SyncService returns the singleton sync coordinator.
func SyncService() *app.SyncCoordinator {
	once.Do(initServices)
	return syncService
}

// SnapshotStore returns the shared in-memory snapshot store.
func SnapshotStore() *app.SnapshotStore {
	once.Do(initServices)
	return snapshotStore
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	logger = slog.New(slog.NewTextHandler(os.Stderr, nil))

	var err error
	cfg, err = config.Load(".")
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	var sheet secondary.SheetStore
	switch cfg.Store {
	case config.StoreSheets:
		sheet, err = sheets.New(ctx, cfg.SpreadsheetID, cfg.CredentialsFile)
		if err != nil {
			logger.Error("failed to build sheets store", "error", err)
			os.Exit(1)
		}
	case config.StoreSQLite:
		sheet, err = sqlite.Open(cfg.SQLitePath)
		if err != nil {
			logger.Error("failed to open sqlite store", "error", err)
			os.Exit(1)
		}
	}

	// Seed in-memory state; a non-empty fetch replaces it.
	seed := app.SeedSnapshot()
	if sheet != nil {
		if fetched, err := sheet.Fetch(ctx); err != nil {
			logger.Warn("initial fetch failed, starting from seed data", "error", err)
		} else if len(fetched.Operators) > 0 {
			seed = fetched
		}
	}

	snapshotStore = app.NewSnapshotStore(seed, cfg.DivergenceThreshold)
	syncService = app.NewSyncCoordinator(snapshotStore, sheet, logger)
	jobService = app.NewJobService(snapshotStore, syncService, logger, time.Now)
	directoryService = app.NewDirectoryService(snapshotStore, syncService, logger, cfg.Password, cfg.AdminPassword)

	var interpreter secondary.Interpreter
	if cfg.GeminiAPIKey != "" {
		interpreter, err = gemini.New(ctx, cfg.GeminiModel, cfg.GeminiAPIKey)
		if err != nil {
			logger.Warn("failed to build interpreter, assistant disabled", "error", err)
			interpreter = nil
		}
	}
	assistantService = app.NewAssistantService(interpreter, jobService, snapshotStore, logger)
}
