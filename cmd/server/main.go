// Package main is the entry point for the book catalog server.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/vyrodovalexey/bookcatalog/internal/config"
	"github.com/vyrodovalexey/bookcatalog/internal/seed"
	"github.com/vyrodovalexey/bookcatalog/internal/server"
	"github.com/vyrodovalexey/bookcatalog/internal/store"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		// Use a basic logger for startup errors
		basicLogger, _ := zap.NewProduction()
		basicLogger.Error("failed to load configuration", zap.Error(err))
		return 1
	}

	// Initialize logger
	logger, err := initLogger(cfg.LogLevel)
	if err != nil {
		basicLogger, _ := zap.NewProduction()
		basicLogger.Error("failed to initialize logger", zap.Error(err))
		return 1
	}
	defer func() {
		_ = logger.Sync()
	}()

	logger.Info("configuration loaded",
		zap.Int("server_port", cfg.ServerPort),
		zap.String("log_level", cfg.LogLevel),
		zap.Duration("shutdown_timeout", cfg.ShutdownTimeout),
		zap.Bool("metrics_enabled", cfg.MetricsEnabled),
		zap.Bool("events_enabled", cfg.EventsEnabled),
		zap.String("seed_file", cfg.SeedFile),
		zap.Float64("rate_limit", cfg.RateLimit),
	)

	bookStore, err := newSeededStore(context.Background(), cfg.SeedFile)
	if err != nil {
		logger.Error("failed to seed catalog", zap.Error(err))
		return 1
	}
	logger.Info("catalog seeded", zap.Int("books", bookStore.Len()))

	srv := server.New(cfg, logger, bookStore)
	logEndpoints(logger, cfg)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- srv.Start()
	}()

	// Wait for shutdown signal
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		logger.Error("server error", zap.Error(err))
		return 1
	case sig := <-shutdown:
		logger.Info("shutdown signal received", zap.String("signal", sig.String()))

		// Create shutdown context with timeout
		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		// Graceful shutdown
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("graceful shutdown failed", zap.Error(err))
			return 1
		}
	}

	logger.Info("server stopped")
	return 0
}

// newSeededStore creates the in-memory catalog and fills it from seedFile,
// or with the default books when seedFile is empty.
func newSeededStore(ctx context.Context, seedFile string) (*store.MemoryStore, error) {
	books, err := seed.Load(seedFile)
	if err != nil {
		return nil, fmt.Errorf("loading seed books: %w", err)
	}

	bookStore := store.NewMemoryStore()
	if err := seed.Apply(ctx, bookStore, books); err != nil {
		return nil, fmt.Errorf("applying seed books: %w", err)
	}

	return bookStore, nil
}

// logEndpoints logs the URLs the server answers on.
func logEndpoints(logger *zap.Logger, cfg *config.Config) {
	base := fmt.Sprintf("http://localhost:%d", cfg.ServerPort)

	endpoints := []string{
		"GET    " + base + "/",
		"GET    " + base + "/books",
		"GET    " + base + "/books/{id}",
		"POST   " + base + "/books",
		"PUT    " + base + "/books/{id}",
		"DELETE " + base + "/books/{id}",
		"GET    " + base + "/health",
	}
	if cfg.MetricsEnabled {
		endpoints = append(endpoints, "GET    "+base+"/metrics")
	}
	if cfg.EventsEnabled {
		endpoints = append(endpoints, "GET    "+base+"/ws")
	}

	logger.Info("book catalog available", zap.Strings("endpoints", endpoints))
}

// initLogger initializes a zap logger with the specified log level.
func initLogger(level string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zapcore.InfoLevel
	}

	zapConfig := zap.Config{
		Level:       zap.NewAtomicLevelAt(zapLevel),
		Development: false,
		Sampling: &zap.SamplingConfig{
			Initial:    100,
			Thereafter: 100,
		},
		Encoding: "json",
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "timestamp",
			LevelKey:       "level",
			NameKey:        "logger",
			CallerKey:      "caller",
			FunctionKey:    zapcore.OmitKey,
			MessageKey:     "message",
			StacktraceKey:  "stacktrace",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.LowercaseLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.SecondsDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		},
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	return zapConfig.Build()
}
