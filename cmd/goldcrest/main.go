package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/pawan-gold/goldcrest/internal/app"
	"github.com/pawan-gold/goldcrest/internal/auth"
	"github.com/pawan-gold/goldcrest/internal/backend"
	"github.com/pawan-gold/goldcrest/internal/customers"
	"github.com/pawan-gold/goldcrest/internal/dashboard"
	"github.com/pawan-gold/goldcrest/internal/directory"
	"github.com/pawan-gold/goldcrest/internal/geo"
	"github.com/pawan-gold/goldcrest/internal/observability"
	"github.com/pawan-gold/goldcrest/internal/platform/cache"
	"github.com/pawan-gold/goldcrest/internal/purposes"
	"github.com/pawan-gold/goldcrest/internal/shared"
	"github.com/pawan-gold/goldcrest/internal/staff"
	"github.com/pawan-gold/goldcrest/internal/view"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	// A local .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	sessionManager := shared.NewSessionManager(redisClient, "goldcrest_session", cfg.SessionSecret, cfg.SessionTTL, cfg.IsProduction())
	csrfManager := shared.NewCSRFManager(cfg.CSRFSecret)

	templates, err := view.NewEngine()
	if err != nil {
		logger.Error("parse templates", slog.Any("error", err))
		os.Exit(1)
	}

	backendClient := backend.NewClient(cfg.BackendBaseURL)

	directoryCache := directory.NewCache(redisClient, cfg.CacheTTL)
	directoryService := directory.NewService(backendClient, directoryCache, logger)

	authService, err := auth.NewService(cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword)
	if err != nil {
		logger.Error("prepare credentials", slog.Any("error", err))
		os.Exit(1)
	}
	authHandler := auth.NewHandler(logger, authService, templates, sessionManager, csrfManager)

	dashboardService := dashboard.NewService(backendClient, logger)
	dashboardHandler := dashboard.NewHandler(logger, dashboardService, directoryService, templates, csrfManager)

	customersService := customers.NewService(backendClient, directoryService, logger)
	customersHandler := customers.NewHandler(logger, customersService, directoryService, templates, csrfManager)

	purposesService := purposes.NewService(backendClient, directoryService, logger)
	purposesHandler := purposes.NewHandler(logger, purposesService, templates, csrfManager)

	staffService := staff.NewService(backendClient, directoryService, logger)
	staffHandler := staff.NewHandler(logger, staffService, templates, csrfManager)

	mapHandler := geo.NewHandler(logger, backendClient, directoryService, templates, csrfManager)

	metrics := observability.NewMetrics()

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		SessionManager:   sessionManager,
		CSRFManager:      csrfManager,
		AuthHandler:      authHandler,
		DashboardHandler: dashboardHandler,
		CustomersHandler: customersHandler,
		PurposesHandler:  purposesHandler,
		StaffHandler:     staffHandler,
		MapHandler:       mapHandler,
		Metrics:          metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
