package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"gym-backend/config"
	"gym-backend/internal/ai"
	"gym-backend/internal/api"
	"gym-backend/internal/app"
	"gym-backend/internal/booking"
	"gym-backend/internal/db"
	"gym-backend/internal/notification"
	"gym-backend/internal/store"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration from %s: %v\n", configPath, err)
		os.Exit(1)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	logger.Info("configuration loaded", zap.String("path", configPath), zap.String("environment", cfg.Environment))

	if cfg.Auth.JWTSecret == "" {
		logger.Fatal("auth.jwt_secret must be configured")
	}

	gormDB, err := db.Init(&cfg.Database)
	if err != nil {
		logger.Fatal("failed to initialize database", zap.Error(err))
	}
	logger.Info("database initialized")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	appStore := store.NewGormStore(gormDB)
	bookingSvc := booking.NewService(appStore, logger)

	var pool *notification.WorkerPool
	if cfg.Push.PublicKey != "" && cfg.Push.PrivateKey != "" {
		webpushOptions := &webpush.Options{
			VAPIDPublicKey:  cfg.Push.PublicKey,
			VAPIDPrivateKey: cfg.Push.PrivateKey,
			Subscriber:      cfg.Push.Subject,
			TTL:             cfg.Push.TTL,
		}
		pool = notification.NewWorkerPool(cfg.WorkerPool.Size, gormDB, webpushOptions, logger)
		pool.Start(ctx)
		logger.Info("notification worker pool started", zap.Int("size", cfg.WorkerPool.Size))
	} else {
		logger.Warn("VAPID keys not configured, push notifications disabled")
	}

	aiClient := ai.NewGeminiClient(&cfg.AI)
	if aiClient == nil {
		logger.Info("chat assistant disabled")
	}

	handler := api.NewHandler(appStore, bookingSvc, clientOrNil(aiClient), pool, cfg, logger)
	router := api.NewRouter(handler)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		logger.Info("HTTP server starting", zap.Int("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	logger.Info("shutdown signal received, stopping services")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("HTTP server shutdown failed", zap.Error(err))
	}

	logger.Info("server gracefully stopped")
}

// clientOrNil keeps a nil *GeminiClient from becoming a non-nil ai.Client
// interface value.
func clientOrNil(c *ai.GeminiClient) ai.Client {
	if c == nil {
		return nil
	}
	return c
}
