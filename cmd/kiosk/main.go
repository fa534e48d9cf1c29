package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/labstock/kiosk-service/config"
	"github.com/labstock/kiosk-service/internal/gateway"
	kioskH "github.com/labstock/kiosk-service/internal/kiosk/handler"
	kioskUCPkg "github.com/labstock/kiosk-service/internal/kiosk/usecase"
	"github.com/labstock/kiosk-service/internal/realtime"
	"github.com/labstock/kiosk-service/internal/scanner"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load() // Load .env file if it exists
	cfg := config.LoadEnv()

	// 2. Initialize Logger
	appLogger, err := newLogger(cfg)
	if err != nil {
		panic(err)
	}
	defer appLogger.Sync()

	// 3. Initialize Backend Gateway
	gw := gateway.NewHTTPGateway(cfg.Backend, appLogger)
	appLogger.Info("Backend gateway configured", zap.String("base_url", cfg.Backend.BaseURL))

	// 4. Initialize Kiosk Core
	uc := kioskUCPkg.NewKioskUseCase(cfg.Kiosk, gw, appLogger)

	// 5. Initialize Scan Interpreter
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	interp := scanner.New(cfg.Kiosk.ScanGap, cfg.Kiosk.MinScanLength, func(code string) {
		uc.HandleScan(ctx, code)
	}, appLogger)

	// 6. Initialize Realtime Channel
	listener := realtime.NewScanListener(cfg.MQTT, uc, appLogger)
	if err := listener.Start(ctx); err != nil {
		// The wedge-scanner path still works without the push channel.
		appLogger.Warn("Realtime channel unavailable", zap.Error(err))
	}
	defer listener.Close()

	// 7. Start HTTP Server (presentation boundary)
	h := kioskH.NewKioskHandler(uc, interp, appLogger)
	srv := &http.Server{
		Addr:    cfg.Server.HTTPPort,
		Handler: kioskH.NewRouter(h),
	}

	go func() {
		appLogger.Info("Starting kiosk HTTP server", zap.String("port", cfg.Server.HTTPPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("server shutdown error", zap.Error(err))
	}
	appLogger.Info("Server stopped")
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	zapCfg := zap.NewProductionConfig()
	if cfg.Server.AppEnv == "dev" || cfg.Server.AppEnv == "development" {
		zapCfg = zap.NewDevelopmentConfig()
	}
	if level, err := zapcore.ParseLevel(cfg.Logger.Level); err == nil {
		zapCfg.Level = zap.NewAtomicLevelAt(level)
	}
	zapCfg.Encoding = cfg.Logger.Encoding
	zapCfg.DisableCaller = cfg.Logger.DisableCaller
	zapCfg.DisableStacktrace = cfg.Logger.DisableStacktrace
	return zapCfg.Build()
}
