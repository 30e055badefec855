package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-vaccination-registry/cache"
	"github.com/goliatone/go-vaccination-registry/internal/config"
	"github.com/goliatone/go-vaccination-registry/internal/db"
	"github.com/goliatone/go-vaccination-registry/internal/logging"
	"github.com/goliatone/go-vaccination-registry/pkg/di"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "vaccination-server: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, err := db.Open(ctx, db.Config{
		Driver: cfg.DBDriver,
		DSN:    cfg.DBDSN,
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer conn.Close()

	container, err := di.NewContainer(conn, cache.DefaultConfig().WithTTL(cfg.CatalogTTL), di.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("build container: %w", err)
	}
	srv := container.HTTPServer(cfg.HTTPAddr)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down", "timeout", cfg.ShutdownTimeout)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("server stopped")
	return nil
}
