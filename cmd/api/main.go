package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/jmcalloway/insuquote-backend/api/controllers"
	"github.com/jmcalloway/insuquote-backend/api/routes"
	"github.com/jmcalloway/insuquote-backend/internal/auth"
	"github.com/jmcalloway/insuquote-backend/internal/dashboard"
	"github.com/jmcalloway/insuquote-backend/internal/documents"
	"github.com/jmcalloway/insuquote-backend/internal/notifications"
	"github.com/jmcalloway/insuquote-backend/internal/quotes"
	"github.com/jmcalloway/insuquote-backend/internal/rebates"
	"github.com/jmcalloway/insuquote-backend/internal/settings"
	"github.com/jmcalloway/insuquote-backend/internal/users"
	"github.com/jmcalloway/insuquote-backend/pkg/auth/session"
	"github.com/jmcalloway/insuquote-backend/pkg/config"
	"github.com/jmcalloway/insuquote-backend/pkg/db"
	"github.com/jmcalloway/insuquote-backend/pkg/logger"
	"github.com/jmcalloway/insuquote-backend/pkg/metrics"
	"github.com/jmcalloway/insuquote-backend/pkg/migrate"
	"github.com/jmcalloway/insuquote-backend/pkg/redis"
	"github.com/jmcalloway/insuquote-backend/pkg/storage/gcs"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	gcsClient, err := gcs.NewClient(context.Background(), cfg.GCS, cfg.GCP, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap object storage", err)
		os.Exit(1)
	}
	defer func() {
		if err := gcsClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing object storage", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       users.NewRepository(dbClient.DB()),
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	registerService, err := auth.NewRegisterService(auth.RegisterServiceParams{
		DB:             dbClient,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create register service", err)
		os.Exit(1)
	}

	notificationsService, err := notifications.NewService(notifications.ServiceParams{
		Repo:   notifications.NewRepository(dbClient.DB()),
		Logger: logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create notifications service", err)
		os.Exit(1)
	}

	pricer, err := quotes.NewPricer(cfg.Pricing)
	if err != nil {
		logg.Error(context.Background(), "invalid pricing configuration", err)
		os.Exit(1)
	}

	quotesRepo := quotes.NewRepository(dbClient.DB())
	quotesService, err := quotes.NewService(quotes.ServiceParams{
		Repo:              quotesRepo,
		Pricer:            pricer,
		ProvisioningGrace: cfg.FeatureFlags.ProvisioningGrace,
		Notifier:          notificationsService,
		Logger:            logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create quotes service", err)
		os.Exit(1)
	}

	dashboardService, err := dashboard.NewService(dashboard.ServiceParams{
		Source: quotesRepo,
		Logger: logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create dashboard service", err)
		os.Exit(1)
	}

	documentsService, err := documents.NewService(documents.ServiceParams{
		Repo:           documents.NewRepository(dbClient.DB()),
		Store:          gcsClient,
		MaxUploadBytes: int64(cfg.Documents.MaxUploadMB) * 1024 * 1024,
		MaxBatchFiles:  cfg.Documents.MaxBatchFiles,
		Notifier:       notificationsService,
		Logger:         logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create documents service", err)
		os.Exit(1)
	}

	rebatesService, err := rebates.NewService(rebates.ServiceParams{
		Repo:              rebates.NewRepository(dbClient.DB()),
		ProvisioningGrace: cfg.FeatureFlags.ProvisioningGrace,
		Logger:            logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create rebates service", err)
		os.Exit(1)
	}

	settingsService, err := settings.NewService(settings.ServiceParams{
		Repo:              settings.NewRepository(dbClient.DB()),
		Users:             users.NewRepository(dbClient.DB()),
		ProvisioningGrace: cfg.FeatureFlags.ProvisioningGrace,
		Logger:            logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create settings service", err)
		os.Exit(1)
	}

	router := routes.NewRouter(routes.Deps{
		Config:  cfg,
		Logger:  logg,
		Redis:   redisClient,
		Metrics: metrics.NewHTTPMetrics(),
		Probes: controllers.ReadinessProbes{
			Database:      dbClient,
			Cache:         redisClient,
			ObjectStorage: gcsClient,
		},
		Sessions:        sessionManager,
		AuthService:     authService,
		RegisterService: registerService,
		Quotes:          quotesService,
		Dashboard:       dashboardService,
		Documents:       documentsService,
		Rebates:         rebatesService,
		Settings:        settingsService,
		Notifications:   notificationsService,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	errs := make(chan error, 1)
	go func() {
		errs <- server.ListenAndServe()
	}()

	select {
	case err := <-errs:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case sig := <-shutdown:
		logg.Info(logg.WithField(ctx, "signal", sig.String()), "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
	}
}
