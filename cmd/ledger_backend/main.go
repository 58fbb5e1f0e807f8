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

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/SscSPs/hospital_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/hospital_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/hospital_ledger/internal/core/services"
	"github.com/SscSPs/hospital_ledger/internal/handlers"
	"github.com/SscSPs/hospital_ledger/internal/middleware"
	"github.com/SscSPs/hospital_ledger/internal/platform/config"
	"github.com/SscSPs/hospital_ledger/internal/platform/metrics"
	"github.com/SscSPs/hospital_ledger/internal/repositories/database/memory"
	"github.com/SscSPs/hospital_ledger/internal/repositories/database/pgsql"
	"github.com/SscSPs/hospital_ledger/pkg/database"
	"github.com/SscSPs/hospital_ledger/pkg/logging"
)

// @title Hospital Ledger API
// @version 1.0
// @description Double-entry ledger for doctor earnings, payouts and daily rollups.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize structured logger
	logger := logging.New(cfg.LogLevel, cfg.IsProduction)

	repos, cleanup, err := setupRepositories(cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize ledger store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer cleanup()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	httpMetrics := middleware.NewHTTPMetrics(registry)
	ledgerMetrics := metrics.NewLedgerMetrics(registry)

	serviceContainer := services.NewServiceContainer(repos, services.WithMetrics(ledgerMetrics))

	rateLimiter, err := middleware.NewRateLimiter(cfg.RateLimit)
	if err != nil {
		logger.Error("Failed to configure rate limiter", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, metrics, CORS, rate limiting)
	r.Use(
		middleware.StructuredLoggingMiddleware(logger),
		gin.Recovery(),
		httpMetrics.Middleware(),
		cors.New(cors.Config{
			AllowOrigins:     cfg.CORSAllowedOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
			ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		middleware.RateLimit(rateLimiter),
	)

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer, httpMetrics)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", slog.String("error", err.Error()))
	}
}

// setupRepositories connects to Postgres and applies migrations, or falls back to
// the in-memory store when no database URL is configured.
func setupRepositories(cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, func(), error) {
	if cfg.DatabaseURL == "" {
		store := memory.New()
		if !cfg.IsProduction {
			seedDemoDirectory(store)
			logger.Info("Using in-memory ledger store with demo doctors")
		}
		return memory.NewRepositoryProvider(store), func() {}, nil
	}

	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		return portsrepo.RepositoryProvider{}, nil, err
	}
	logger.Info("Database connection pool established.")

	if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
		dbPool.Close()
		return portsrepo.RepositoryProvider{}, nil, err
	}
	return pgsql.NewRepositoryProvider(dbPool), func() { database.ClosePgxPool(dbPool) }, nil
}

// seedDemoDirectory fills the collaborator tables the in-memory store stands in for.
func seedDemoDirectory(store *memory.Store) {
	store.PutDoctor(domain.Doctor{DoctorID: "D1", Name: "Dr. Ayesha Siddiqui", DepartmentID: "DEP-OPD", IsActive: true})
	store.PutDoctor(domain.Doctor{DoctorID: "D2", Name: "Dr. Imran Qureshi", DepartmentID: "DEP-SURG", IsActive: true})
	store.PutToken(domain.Token{TokenID: "T1", TokenNo: 1, PatientName: "Walk-in Patient", MRN: "MRN-0001", DoctorID: "D1", DepartmentID: "DEP-OPD", CreatedAt: time.Now().UTC()})
}
