// Package main is the entry point for the advisor stock recommendation service.
// The application scores a fixed catalog of securities, recommends allocation
// amounts for available funds, and serves simulated price history charts.
//
// Startup sequence:
// 1. Load configuration from environment variables (.env file)
// 2. Initialize structured logging
// 3. Open the universe database, run migrations and seed the catalog
// 4. Build the in-memory search index
// 5. Wire services and HTTP handlers
// 6. Register background maintenance jobs
// 7. Start the HTTP server and wait for a shutdown signal
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/aristath/advisor/internal/config"
	"github.com/aristath/advisor/internal/database"
	"github.com/aristath/advisor/internal/modules/advisor"
	advisorhandlers "github.com/aristath/advisor/internal/modules/advisor/handlers"
	"github.com/aristath/advisor/internal/modules/charts"
	chartshandlers "github.com/aristath/advisor/internal/modules/charts/handlers"
	"github.com/aristath/advisor/internal/modules/universe"
	universehandlers "github.com/aristath/advisor/internal/modules/universe/handlers"
	"github.com/aristath/advisor/internal/scheduler"
	"github.com/aristath/advisor/internal/server"
	"github.com/aristath/advisor/pkg/logger"
)

func main() {
	// Load configuration first to get log level
	cfg, err := config.Load()
	if err != nil {
		fallbackLog := logger.New(logger.Config{
			Level:  "info",
			Pretty: true,
		})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})
	logger.SetGlobalLogger(log)

	log.Info().Msg("Starting advisor")

	// Universe database holds the securities catalog
	db, err := database.New(database.Config{
		Path: filepath.Join(cfg.DataDir, "universe.db"),
		Name: "universe",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open universe database")
	}
	defer db.Close()

	securityRepo := universe.NewSecurityRepository(db.Conn(), log)
	if err := securityRepo.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate universe database")
	}
	if err := universe.Seed(securityRepo, log); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed securities catalog")
	}

	securities, err := securityRepo.GetAll()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load securities catalog")
	}
	log.Info().Int("count", len(securities)).Msg("Securities catalog loaded")

	searchIndex, err := universe.NewSearchIndex(securities, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build search index")
	}
	defer searchIndex.Close()

	// Services
	engine := advisor.NewEngine(log)
	advisorService := advisor.NewService(securityRepo, engine, log)
	chartsService := charts.NewService(securityRepo, log)

	// Background maintenance: checkpoint the WAL nightly at 03:00
	sched := scheduler.New(log)
	if err := sched.AddJob("0 0 3 * * *", scheduler.NewWALCheckpointJob(db, log)); err != nil {
		log.Fatal().Err(err).Msg("Failed to register WAL checkpoint job")
	}
	sched.Start()
	defer sched.Stop()

	// HTTP server
	srv := server.New(server.Config{
		Log:              log,
		Config:           cfg,
		UniverseDB:       db,
		UniverseHandlers: universehandlers.NewHandler(securityRepo, searchIndex, log),
		AdvisorHandlers:  advisorhandlers.NewHandler(advisorService, cfg.DefaultFunds, cfg.MaxAllocationPercent, log),
		ChartsHandlers:   chartshandlers.NewHandler(chartsService, log),
	})

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to shut down HTTP server cleanly")
	}

	log.Info().Msg("Advisor stopped")
}
