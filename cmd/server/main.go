package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/benchfolio/backend/internal/api"
	"github.com/benchfolio/backend/internal/config"
	"github.com/benchfolio/backend/internal/database"
	"github.com/benchfolio/backend/internal/repository"
	"github.com/benchfolio/backend/internal/service"
	"github.com/benchfolio/backend/internal/yahoo"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	log.Printf("Connected to database: %s", cfg.Database.Path)

	// Apply pending migrations
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Create repositories
	sessionRepo := repository.NewSessionRepository(db)
	tradeRepo := repository.NewTradeRepository(db)
	benchmarkRepo := repository.NewBenchmarkRepository(db)

	// Create services
	systemService := service.NewSystemService(db)
	sessionService, err := service.NewSessionService(sessionRepo, cfg.Session)
	if err != nil {
		log.Fatalf("Failed to create session service: %v", err)
	}
	importService := service.NewImportService(tradeRepo)
	benchmarkService := service.NewBenchmarkService(benchmarkRepo, yahoo.NewFinanceClient())
	comparisonService := service.NewComparisonService(
		sessionService,
		importService,
		benchmarkService,
	)

	// Schedule the daily price refresh and expired-session purge
	scheduler := cron.New()
	_, err = scheduler.AddFunc(cfg.Benchmark.RefreshSchedule, func() {
		if err := benchmarkService.RefreshAll(context.Background()); err != nil {
			log.Printf("Scheduled benchmark refresh failed: %v", err)
		}
	})
	if err != nil {
		log.Fatalf("Failed to schedule benchmark refresh: %v", err)
	}
	_, err = scheduler.AddFunc("@hourly", func() {
		purged, err := sessionService.PurgeExpired(context.Background())
		if err != nil {
			log.Printf("Scheduled session purge failed: %v", err)
			return
		}
		if purged > 0 {
			log.Printf("Purged %d expired sessions", purged)
		}
	})
	if err != nil {
		log.Fatalf("Failed to schedule session purge: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Create router
	router := api.NewRouter(systemService, sessionService, importService, benchmarkService, comparisonService, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
