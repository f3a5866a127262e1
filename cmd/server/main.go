// Package main runs the exo-sense HTTP API: light-curve analysis backed
// by the trained transit classifier. The model artifact is loaded at
// startup; when absent it is trained once and persisted before the
// server accepts traffic.
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

	"exo-sense/internal/server"
	"exo-sense/internal/training"
)

func main() {
	addr := flag.String("addr", envOr("EXOSENSE_ADDR", ":8080"), "HTTP listen address")
	shutdownTimeout := flag.Duration("shutdown-timeout", 10*time.Second, "graceful shutdown timeout")
	flag.Parse()

	logger := log.New(os.Stdout, "[server] ", log.LstdFlags)
	logger.Printf("model artifact path: %s", training.DefaultArtifactPath())

	// Training on first boot can take a while; do it before listening.
	model, err := training.DefaultModel(logger)
	if err != nil {
		logger.Fatalf("initialize model: %v", err)
	}
	logger.Printf("model ready (version %s)", model.Metadata().Version)

	httpServer := &http.Server{
		Addr:              *addr,
		Handler:           server.New(model, logger).Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Printf("listening on %s", *addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("serve: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Printf("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), *shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Printf("shutdown: %v", err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
