package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"Mansoor88-6/time-tracking-api/internal/export"
	"Mansoor88-6/time-tracking-api/internal/handler"
	"Mansoor88-6/time-tracking-api/internal/report"
	"Mansoor88-6/time-tracking-api/internal/router"
	"Mansoor88-6/time-tracking-api/internal/scheduler"
	"Mansoor88-6/time-tracking-api/internal/server"
	"Mansoor88-6/time-tracking-api/internal/service"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long:  "Run the HTTP API and, unless disabled, the periodic duration reconcile sweep.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(*configPath)
			if err != nil {
				return err
			}
			defer a.close()
			return serve(a)
		},
	}
}

func serve(a *app) error {
	cfg, log := a.cfg, a.log.Logger
	loc := cfg.Location()

	timers := service.NewTimerService(a.entries, a.tasks, a.clock, log)
	manual := service.NewTimeEntryService(a.entries, a.tasks, a.clock, log)
	analytics := service.NewAnalyticsService(a.entries, a.tasks, a.clock, loc, cfg.Analytics.DefaultWindowDays, log)

	timeEntryHandler := handler.NewTimeEntryHandler(timers, manual, loc, log)
	analyticsHandler := handler.NewAnalyticsHandler(
		analytics,
		report.NewProjector(loc, cfg.Report.DateLayout),
		export.DefaultRegistry(),
		loc,
		log,
	)

	srv := server.New(cfg.HTTPServer, router.New(timeEntryHandler, analyticsHandler, cfg.Auth.UserHeader, log), log)
	serveErr, err := srv.Start()
	if err != nil {
		return err
	}

	var sweeps *scheduler.ReconcileScheduler
	if cfg.Reconcile.Disabled {
		log.Info("Reconcile sweep disabled in configuration")
	} else {
		sweeps = scheduler.NewReconcileScheduler(a.reconciler(), cfg.Reconcile.Interval, log)
		sweeps.Start(context.Background())
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	var runErr error
	select {
	case sig := <-quit:
		log.Info("Received shutdown signal", zap.String("signal", sig.String()))
	case runErr = <-serveErr:
		log.Error("HTTP server stopped unexpectedly", zap.Error(runErr))
	}

	log.Info("Shutting down time-tracking API...")

	if sweeps != nil {
		sweeps.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTPServer.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Warn("HTTP server shutdown error", zap.Error(err))
	}

	log.Info("Time-tracking API stopped")
	return runErr
}
