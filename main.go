package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/saif727/stellar-testnet-gateway/config"
	"github.com/saif727/stellar-testnet-gateway/controllers"
	"github.com/saif727/stellar-testnet-gateway/logger"
	"github.com/saif727/stellar-testnet-gateway/services"
	"github.com/stellar/go/clients/horizonclient"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "gateway.yaml", "path to an optional YAML configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zapLogger := logger.New(cfg.Log.Level)
	defer zapLogger.Sync()
	if cfg.Log.ExposeSecrets {
		zapLogger.Warn("Secret keys of generated wallets will be logged at debug level")
	}

	httpClient := &http.Client{Timeout: cfg.Stellar.UpstreamTimeout}
	horizon := &horizonclient.Client{
		HorizonURL: cfg.Stellar.HorizonURL,
		HTTP:       httpClient,
	}
	faucet := services.NewFaucetClient(cfg.Stellar.FriendbotURL, httpClient, zapLogger)
	service := services.NewWalletService(horizon, faucet, cfg, zapLogger)
	controller := controllers.NewWalletController(service, cfg.Wallet.StrictReads, zapLogger)

	gin.SetMode(gin.ReleaseMode)
	router, err := controllers.NewRouter(controller, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to build router", zap.Error(err))
	}

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: router,
	}

	go func() {
		zapLogger.Info("Server is running",
			zap.String("addr", srv.Addr),
			zap.String("horizon", cfg.Stellar.HorizonURL),
			zap.String("friendbot", cfg.Stellar.FriendbotURL))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zapLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}
	zapLogger.Info("Server exited")
}
