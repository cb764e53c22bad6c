package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"foodshare/docs"
	"foodshare/internal/auth"
	"foodshare/internal/blob"
	"foodshare/internal/cache"
	"foodshare/internal/config"
	"foodshare/internal/db"
	"foodshare/internal/handler"
	"foodshare/internal/metrics"
	"foodshare/internal/repository"
	"foodshare/internal/router"
	"foodshare/internal/service"
)

// @title FoodShare API
// @version 1.0
// @description Surplus-food donation coordination between restaurants and NGOs.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		logger.Error("database init", "error", err)
		os.Exit(1)
	}

	if cfg.ResetDB {
		logger.Warn("RESET_DB=true detected, dropping all tables")
		db.Reset(gormDB, logger)
	}
	if err := db.Migrate(gormDB); err != nil {
		logger.Error("auto-migrate", "error", err)
		os.Exit(1)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()
	if err := cacheClient.Ping(context.Background()); err != nil {
		logger.Warn("redis unavailable, logout revocation and profile cache degraded", "addr", cfg.RedisAddr, "error", err)
	}

	blobs, err := newBlobStore(cfg)
	if err != nil {
		logger.Error("blob store init", "backend", cfg.BlobBackend, "error", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.New(registry)

	// Initialize repositories
	accountRepo := repository.NewAccountRepository(gormDB)
	profiles := repository.NewProfileRepositories(gormDB)
	donationRepo := repository.NewDonationRepository(gormDB)
	uow := repository.NewUnitOfWork(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.TokenTTL)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(uow, accountRepo, jwtService, tokenStore, appMetrics, logger)
	donationService := service.NewDonationService(donationRepo, profiles, blobs, appMetrics, logger)
	profileService := service.NewProfileService(accountRepo, profiles, cacheClient)
	statsService := service.NewStatsService(donationRepo, profiles)

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = strings.TrimPrefix(strings.TrimPrefix(cfg.SwaggerHost, "http://"), "https://")
	}

	e := echo.New()
	e.HideBanner = true
	router.Register(e, cfg, logger, jwtService, tokenStore, registry, router.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Donation: handler.NewDonationHandler(donationService, cfg.MaxUploadBytes),
		Profile:  handler.NewProfileHandler(profileService),
		Stats:    handler.NewStatsHandler(statsService),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		addr := ":" + cfg.ServerPort
		logger.Info("server starting", "addr", addr, "blob_backend", cfg.BlobBackend)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server start", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	logger.Info("server stopped")
}

func newBlobStore(cfg *config.Config) (blob.Store, error) {
	if cfg.BlobBackend == config.BlobBackendCloudinary {
		return blob.NewCloudinaryStore(cfg.CloudinaryURL, cfg.CloudinaryFolder)
	}
	return blob.NewLocalStore(cfg.UploadDir, strings.TrimRight(cfg.PublicBaseURL, "/")+"/uploads", cfg.MaxUploadBytes)
}
