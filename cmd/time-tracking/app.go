package main

import (
	"fmt"

	"Mansoor88-6/time-tracking-api/internal/clock"
	"Mansoor88-6/time-tracking-api/internal/config"
	"Mansoor88-6/time-tracking-api/internal/database"
	"Mansoor88-6/time-tracking-api/internal/logger"
	"Mansoor88-6/time-tracking-api/internal/repository"
	"Mansoor88-6/time-tracking-api/internal/service"

	"go.uber.org/zap"
)

// app holds the components shared by every subcommand.
type app struct {
	cfg     *config.Config
	log     *logger.Logger
	db      *database.DB
	clock   clock.Clock
	entries *repository.TimeEntryRepository
	tasks   *repository.TaskRepository
}

func newApp(configPath string) (*app, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	log.Info("Starting time-tracking API",
		zap.String("env", cfg.Env),
		zap.String("config_path", configPath),
	)

	db, err := database.New(cfg.StoragePath, log.Logger)
	if err != nil {
		_ = log.Sync()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return &app{
		cfg:     cfg,
		log:     log,
		db:      db,
		clock:   clock.Real(),
		entries: repository.NewTimeEntryRepository(db),
		tasks:   repository.NewTaskRepository(db),
	}, nil
}

func (a *app) reconciler() *service.ReconcileService {
	return service.NewReconcileService(a.entries, a.clock, a.cfg.Reconcile.BatchSize, a.log.Logger)
}

func (a *app) close() {
	if err := a.db.Close(); err != nil {
		a.log.Error("Failed to close database", zap.Error(err))
	}
	_ = a.log.Sync()
}
