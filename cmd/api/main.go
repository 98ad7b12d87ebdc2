package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jordanhw/honeywatch/internal/background"
	"github.com/jordanhw/honeywatch/internal/config"
	"github.com/jordanhw/honeywatch/internal/geo"
	"github.com/jordanhw/honeywatch/internal/handlers"
	middlewareCustom "github.com/jordanhw/honeywatch/internal/middleware"
	"github.com/jordanhw/honeywatch/internal/repositories"
	"github.com/jordanhw/honeywatch/internal/routes"
	"github.com/jordanhw/honeywatch/internal/services"
	"github.com/jordanhw/honeywatch/internal/storage"
	pkgauth "github.com/jordanhw/honeywatch/pkg/auth"
	pkghttp "github.com/jordanhw/honeywatch/pkg/http"
	pkglogger "github.com/jordanhw/honeywatch/pkg/logger"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("configuration loaded", slog.String("env", cfg.Server.Env))

	// Open the durable store (opened once here, closed at shutdown)
	store, err := storage.Open(cfg.Storage.DataDir, logger)
	if err != nil {
		logger.Error("failed to open data store", slog.Any("error", err))
		os.Exit(1)
	}
	defer store.Close()

	// Initialize repositories
	sessionRepo := repositories.NewSessionRepository(store)
	attemptRepo := repositories.NewAttemptRepository(store)
	reputationRepo := repositories.NewReputationRepository(store, repositories.NoopBlockPolicy{})
	eventRepo := repositories.NewEventRepository(store)

	// Demo credential verifier; production installs swap in their own
	verifier, err := pkgauth.NewStaticVerifier(map[string]string{
		cfg.Auth.DemoUsername: cfg.Auth.DemoSecret,
	})
	if err != nil {
		logger.Error("failed to seed credential verifier", slog.Any("error", err))
		os.Exit(1)
	}

	auditLogger := pkglogger.NewAuditLogger(logger)

	// Initialize services
	authService := services.NewAuthService(
		sessionRepo,
		attemptRepo,
		reputationRepo,
		verifier,
		services.AuthConfig{
			SessionTTL:      cfg.Auth.SessionTTL,
			RememberMeTTL:   cfg.Auth.RememberMeTTL,
			MaxAttemptHint:  cfg.Auth.MaxAttemptHint,
			FailureLookback: cfg.Auth.FailureLookback,
		},
		logger,
		auditLogger,
	)
	eventService := services.NewEventService(eventRepo, sessionRepo, logger, auditLogger)
	analyticsService := services.NewAnalyticsService(sessionRepo, attemptRepo, reputationRepo, eventRepo, geo.NoopResolver{}, logger)

	// Initialize handlers
	ipConfig := &pkghttp.IPConfig{TrustedProxies: cfg.Server.TrustedProxies}
	authHandler := handlers.NewAuthHandler(authService, ipConfig)
	eventHandler := handlers.NewEventHandler(eventService, ipConfig)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)

	// Session expiry sweeper
	sweeper := background.NewSessionSweeper(sessionRepo, logger, cfg.Auth.SweepInterval)

	// Setup CORS middleware
	corsConfig := middlewareCustom.DefaultCORSConfig()
	corsConfig.AllowedOrigins = cfg.Server.AllowedOrigins

	// Setup router
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middlewareCustom.SecurityHeaders(middlewareCustom.SecurityHeadersConfig{Env: cfg.Server.Env}))
	router.Use(middlewareCustom.CORS(corsConfig))
	router.Use(middlewareCustom.SecureLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))

	// Register routes
	routes.RegisterRoutes(router, authHandler, eventHandler, analyticsHandler)

	// Health check with store probe
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		w.Header().Set("Content-Type", "application/json")
		if err := store.HealthCheck(ctx); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"unhealthy","store":"down"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy","store":"up"}`))
	})

	// Create server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start session sweeper
	sweepCtx, sweepCancel := context.WithCancel(context.Background())
	defer sweepCancel()

	go sweeper.Start(sweepCtx)

	// Start server
	go func() {
		logger.Info("starting server", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutdown signal received")

	sweepCancel()
	sweeper.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("server stopped gracefully")
}
