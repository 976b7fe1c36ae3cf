package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/scriptorium/scriptorium/internal/httpapi"
)

func main() {
	_ = godotenv.Load()

	addr := flag.String("addr", envStr("SCRIPTORIUM_STUB_ADDR", ":8699"), "listen address")
	tick := flag.Duration("tick", 3*time.Second, "pipeline advance interval")
	flag.Parse()

	logLevel := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	pipeline := httpapi.NewPipeline()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go pipeline.Run(ctx, *tick)

	srv := &http.Server{
		Addr:    *addr,
		Handler: httpapi.SetupRoutes(pipeline, logger),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("stub backend listening", "addr", *addr, "tick", tick.String())
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
