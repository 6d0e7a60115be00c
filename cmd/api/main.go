package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aurelia-labs/salon-scheduler/internal/cache"
	"github.com/aurelia-labs/salon-scheduler/internal/config"
	dbpkg "github.com/aurelia-labs/salon-scheduler/internal/db"
	infraRepo "github.com/aurelia-labs/salon-scheduler/internal/infra/repository"
	"github.com/aurelia-labs/salon-scheduler/internal/notify"
	"github.com/aurelia-labs/salon-scheduler/internal/reminder"
	"github.com/aurelia-labs/salon-scheduler/internal/routes"
	"github.com/aurelia-labs/salon-scheduler/internal/timezone"
)

func main() {

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := config.Load()
	if !timezone.IsValid(cfg.Timezone) {
		logger.Error("invalid SALON_TIMEZONE", "tz", cfg.Timezone)
		os.Exit(1)
	}
	loc := timezone.Location(cfg.Timezone)

	db := dbpkg.NewDB(cfg)
	defer dbpkg.Close(db)

	analyticsCache := cache.New(cfg.RedisAddr, logger)
	defer analyticsCache.Close()

	r := gin.Default()
	routes.RegisterRoutes(r, db, cfg, analyticsCache, loc, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Reminder sweeps run alongside the HTTP server for the whole
	// process lifetime.
	worker := reminder.NewWorker(
		infraRepo.NewAppointmentGormRepository(db),
		notify.NewLogNotifier(logger),
		logger,
		time.Duration(cfg.ReminderIntervalMinutes)*time.Minute,
		time.Duration(cfg.ReminderWindowHours)*time.Hour,
	)
	go worker.Run(ctx)

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: r,
	}

	go func() {
		logger.Info("server listening", "addr", cfg.Addr(), "timezone", cfg.Timezone)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("forced shutdown", "err", err)
	}
}
