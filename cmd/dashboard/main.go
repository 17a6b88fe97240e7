package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/alan-facto/FictionBI-Dashboard/internal/cli"
	"github.com/alan-facto/FictionBI-Dashboard/internal/feed"
	gfeed "github.com/alan-facto/FictionBI-Dashboard/internal/feed/google"
	"github.com/alan-facto/FictionBI-Dashboard/internal/feed/memory"
	"github.com/alan-facto/FictionBI-Dashboard/internal/feed/script"
	apphttp "github.com/alan-facto/FictionBI-Dashboard/internal/http"
	"github.com/alan-facto/FictionBI-Dashboard/internal/log"
	"github.com/alan-facto/FictionBI-Dashboard/internal/revenue"
	"github.com/alan-facto/FictionBI-Dashboard/internal/services"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var source feed.Source
	switch cfg.DataSource {
	case "sheets":
		client, err := gfeed.NewFromEnv(ctx)
		if err != nil {
			logger.Error("failed to initialize Google Sheets source", log.FieldError, err)
			os.Exit(1)
		}
		source = client
	case "memory":
		source = memory.NewFromFile(cfg.FeedFixtureFile)
	default:
		source = script.New(cfg.FeedURL)
	}
	logger.Info("data source initialized", log.FieldDataSource, cfg.DataSource)

	revRows, err := revenue.Rows()
	if err != nil {
		logger.Error("failed to load revenue table", log.FieldError, err)
		os.Exit(1)
	}

	refresher := services.NewRefresher(source, revRows, cfg.RefreshInterval, logger)
	srv := apphttp.NewServer(":"+cfg.Port, refresher, cfg.OperationsDepartment, logger)

	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := refresher.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	g.Go(func() error {
		logger.Info("starting dashboard server", "port", cfg.Port, log.FieldDataSource, cfg.DataSource)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("server error", log.FieldError, err)
		os.Exit(1)
	}
	logger.Info("server stopped gracefully")
}
