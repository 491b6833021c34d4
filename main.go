package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"Ducted/internal/config"
	"Ducted/internal/server"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, Prefix: "ducted"})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("loading config", "err", err)
	}
	logger.SetLevel(cfg.LogLevel)

	limits, err := cfg.Limits()
	if err != nil {
		logger.Fatal("loading standards", "path", cfg.StandardsPath, "err", err)
	}
	logger.Info("standards loaded", "version", limits.Version())
	if !cfg.TLS() {
		logger.Warn("TLS is not configured, serving plain HTTP")
	}

	srv := &http.Server{
		Addr: cfg.Addr,
		Handler: server.NewHandler(server.Options{
			Limits:    limits,
			Logger:    logger,
			RateLimit: cfg.RateLimit,
			RateBurst: cfg.RateBurst,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}
	if err := server.Run(ctx, srv, cfg.TLSCert, cfg.TLSKey, logger); err != nil {
		logger.Fatal("server failed", "err", err)
	}
}
