package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"swap_desk/internal/app/service"
	swapaggregator "swap_desk/internal/infrastructure/aggregator"
	"swap_desk/internal/infrastructure/configloader"
	"swap_desk/internal/infrastructure/httpclient"
	"swap_desk/internal/infrastructure/restapi"
	"swap_desk/internal/infrastructure/tokenregistry"
	"swap_desk/internal/infrastructure/wallet"
	"swap_desk/internal/pkg/logger"
	"swap_desk/pkg/metrics"

	slogzap "github.com/samber/slog-zap/v2"
	"go.uber.org/zap"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Basic logger for the phase before config is available.
	tempZapLogger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL: failed to initialize temporary zap logger: %v\n", err)
		os.Exit(1)
	}

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/config.yml"
	}
	cfg, err := configloader.Load(cfgPath)
	if err != nil {
		tempZapLogger.Fatal("failed to load configuration", zap.String("path", cfgPath), zap.Error(err))
	}

	zapLogger, err := zap.NewProduction()
	if err != nil {
		tempZapLogger.Fatal("failed to initialize zap logger", zap.Error(err))
	}
	defer zapLogger.Sync()

	slogHandler := slogzap.Option{
		Level:  slogLevel(cfg.Logging.Level),
		Logger: zapLogger,
	}.NewZapHandler()
	logger.InitWithHandler(slogHandler)
	appLogger := logger.NewSlogAdapter()

	metrics.MustRegisterMetrics()

	registry := tokenregistry.NewStaticRegistry()

	connector := wallet.NewKeyConnector(wallet.Config{
		PrivateKeyEnv:     cfg.Wallet.PrivateKeyEnv,
		RPCURLs:           cfg.Network.RPCURLs,
		NativeSymbol:      cfg.Wallet.NativeSymbol,
		ConnectionTimeout: time.Duration(cfg.Network.ConnectionTimeoutMs) * time.Millisecond,
		RPCCallTimeout:    time.Duration(cfg.Network.RPCCallTimeoutMs) * time.Millisecond,
		RateLimit:         cfg.Network.RateLimit,
		RateBurst:         cfg.Network.BurstLimit,
	}, appLogger)

	aggClient := swapaggregator.NewClient(
		cfg.Aggregator.BaseURL,
		cfg.Aggregator.APIKey,
		time.Duration(cfg.Aggregator.RequestTimeoutMillis)*time.Millisecond,
		appLogger,
	)

	dexScreenerClient := httpclient.NewDEXScreenerClient(
		cfg.DEXScreener.BaseURL,
		time.Duration(cfg.DEXScreener.RequestTimeoutMillis)*time.Millisecond,
		appLogger,
	)
	priceService := service.NewTokenPriceService(
		appLogger,
		registry,
		dexScreenerClient,
		cfg.DEXScreener.ChainID,
		time.Duration(cfg.DEXScreener.CacheTTLMinutes)*time.Minute,
	)

	hub := restapi.NewHub(appLogger, time.Duration(cfg.WebSocket.StatusIntervalSeconds)*time.Second)
	go hub.Run(ctx)

	swapService, err := service.NewSwapService(registry, connector, aggClient, priceService, hub, appLogger)
	if err != nil {
		zapLogger.Fatal("failed to initialize swap service", zap.Error(err))
	}

	// Price refresh runs in the background; swap state never depends on it.
	go func() {
		refresh := func() {
			rctx, rcancel := context.WithTimeout(ctx, 2*time.Minute)
			defer rcancel()
			if err := priceService.RefreshPrices(rctx); err != nil {
				appLogger.Warn("token price refresh failed", "error", err)
			}
		}
		refresh()
		ticker := time.NewTicker(time.Duration(cfg.DEXScreener.RefreshIntervalMinutes) * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				refresh()
			}
		}
	}()

	handler := restapi.NewSwapHandler(swapService)
	router := restapi.SetupRouter(handler, hub, cfg.Server.APIKey)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		appLogger.Info("swap_desk server listening", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("forced shutdown", "error", err)
	}
	appLogger.Info("server exited")
}

func slogLevel(levelStr string) slog.Level {
	switch strings.ToUpper(levelStr) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
