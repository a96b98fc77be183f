package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/benchfolio/backend/internal/api/handlers"
	custommiddleware "github.com/benchfolio/backend/internal/api/middleware"
	"github.com/benchfolio/backend/internal/config"
	"github.com/benchfolio/backend/internal/service"
)

// NewRouter creates and configures the HTTP router
func NewRouter(
	systemService *service.SystemService,
	sessionService *service.SessionService,
	importService *service.ImportService,
	benchmarkService *service.BenchmarkService,
	comparisonService *service.ComparisonService,
	cfg *config.Config,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(systemService)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/session", func(r chi.Router) {
			sessionHandler := handlers.NewSessionHandler(sessionService)
			r.Post("/", sessionHandler.CreateSession)

			// Everything under a session ID requires the session's own token.
			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Use(custommiddleware.NewSessionTokenMiddleware(sessionService))

				r.Get("/", sessionHandler.GetSession)

				tradeHandler := handlers.NewTradeHandler(importService)
				r.Post("/trades", tradeHandler.ImportTrades)
				r.Get("/trades", tradeHandler.ListTrades)

				valuationHandler := handlers.NewValuationHandler(sessionService)
				r.Put("/valuation", valuationHandler.SetValuation)

				comparisonHandler := handlers.NewComparisonHandler(comparisonService, cfg.Benchmark)
				r.Get("/comparison", comparisonHandler.Compare)
			})
		})

		r.Route("/benchmark", func(r chi.Router) {
			benchmarkHandler := handlers.NewBenchmarkHandler(benchmarkService)
			r.Get("/", benchmarkHandler.ListBenchmarks)
			r.Post("/refresh", benchmarkHandler.RefreshPrices)
		})
	})

	return r
}
