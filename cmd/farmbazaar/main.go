package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/farmbazaar/farmbazaar/internal/analytics"
	"github.com/farmbazaar/farmbazaar/internal/app"
	"github.com/farmbazaar/farmbazaar/internal/catalog"
	"github.com/farmbazaar/farmbazaar/internal/farmers"
	"github.com/farmbazaar/farmbazaar/internal/marketrates"
	"github.com/farmbazaar/farmbazaar/internal/platform/cache"
	"github.com/farmbazaar/farmbazaar/internal/platform/db"
	"github.com/farmbazaar/farmbazaar/internal/purchases"
	"github.com/farmbazaar/farmbazaar/internal/retailers"
	"github.com/farmbazaar/farmbazaar/internal/shared"
	"github.com/farmbazaar/farmbazaar/report"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	dbpool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

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

	tokenStore := shared.NewTokenStore(redisClient, "farmbazaar_token", cfg.TokenTTL)

	rates, err := marketrates.Load(cfg.MarketRatesPath)
	if err != nil {
		logger.Warn("load market rates, profit analysis disabled",
			slog.String("path", cfg.MarketRatesPath), slog.Any("error", err))
		rates = marketrates.Empty()
	}

	pdfClient := report.NewClient(cfg.GotenbergURL)
	if err := pdfClient.Ping(ctx); err != nil {
		logger.Warn("gotenberg ping", slog.Any("error", err))
	}

	farmerRepo := farmers.NewRepository(dbpool)
	farmerService := farmers.NewService(farmerRepo, tokenStore)
	farmerHandler := farmers.NewHandler(logger, farmerService)

	retailerRepo := retailers.NewRepository(dbpool)
	retailerService := retailers.NewService(retailerRepo, tokenStore)
	retailerHandler := retailers.NewHandler(logger, retailerService)

	catalogRepo := catalog.NewRepository(dbpool)
	catalogService := catalog.NewService(catalogRepo, farmerRepo, retailerRepo)
	catalogHandler := catalog.NewHandler(logger, catalogService)

	purchaseRepo := purchases.NewRepository(dbpool)
	purchaseService := purchases.NewService(purchaseRepo, retailerRepo)
	purchaseHandler := purchases.NewHandler(logger, purchaseService)

	analyticsRepo := analytics.NewRepository(dbpool)
	analyticsService := analytics.NewService(analyticsRepo, farmerRepo, retailerRepo, rates, pdfClient)
	analyticsHandler := analytics.NewHandler(logger, analyticsService)

	router := app.NewRouter(app.RouterParams{
		Logger:     logger,
		Config:     cfg,
		TokenStore: tokenStore,
		Public:     []app.Mounter{farmerHandler, retailerHandler},
		Protected:  []app.Mounter{catalogHandler, purchaseHandler, analyticsHandler},
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
