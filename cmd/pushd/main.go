package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/strogmv/pushd/internal/app"
	"github.com/strogmv/pushd/internal/config"
	"github.com/strogmv/pushd/internal/pkg/logger"
	"github.com/strogmv/pushd/internal/pkg/tracing"
	httptransport "github.com/strogmv/pushd/internal/transport/http"
)

func main() {
	log := logger.Init()

	cfg, err := config.Load()
	if err != nil {
		log.Error("load config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Init(ctx, "pushd", cfg.OTLPEndpoint)
	if err != nil {
		log.Error("init tracing", "error", err)
		os.Exit(1)
	}
	defer func() { _ = shutdownTracing(context.Background()) }()

	container, err := app.NewContainer(ctx, cfg, log)
	if err != nil {
		log.Error("build container", "error", err)
		os.Exit(1)
	}
	defer container.Close()

	// Routing keys are hot-reloadable: SIGHUP re-reads the environment.
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	go func() {
		for range hup {
			if err := container.Routing.Reload(); err != nil {
				log.Error("reload routing config", "error", err)
				continue
			}
			log.Info("routing config reloaded", "exchange", container.Routing.Exchange())
		}
	}()

	srv := httptransport.NewServer(container.Presence, container.Subscriptions, log)
	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("http server listening", "addr", cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown", "error", err)
	}
}
