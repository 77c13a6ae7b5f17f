package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"gbfs-station-scraper/internal/api"
	"gbfs-station-scraper/internal/cache"
	"gbfs-station-scraper/internal/config"
	"gbfs-station-scraper/internal/db"
	"gbfs-station-scraper/internal/gbfs"
	k "gbfs-station-scraper/internal/kafka"
	"gbfs-station-scraper/internal/processors/scraper"
	"gbfs-station-scraper/internal/store"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	level, _ := cfg.Log.SlogLevel()
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	slog.InfoContext(ctx, "Starting service...", "feed", cfg.Feed.URL, "dir", cfg.Store.Dir)

	seen := cache.New()
	var sinks []scraper.Sink
	var repo *db.DB

	if cfg.DB.Enabled {
		repo, err = db.Init(ctx, db.Config{
			ConnString:     cfg.DB.ConnString,
			MigrationsPath: cfg.DB.MigrationsPath,
		})
		if err != nil {
			panic(err)
		}
		defer repo.Close()

		if err := seen.Hydrate(ctx, repo); err != nil {
			slog.ErrorContext(ctx, "Cache hydration failed, starting from zero", "error", err)
		}
		seen.Dump()
		sinks = append(sinks, repo)
	}

	if cfg.Kafka.Enabled {
		publisher := k.NewPublisher(k.Config{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
		})
		defer publisher.Close(ctx)
		sinks = append(sinks, publisher)
	}

	files, err := store.New(store.Config{
		Dir:       cfg.Store.Dir,
		CreateDir: cfg.Store.CreateDir,
	})
	if err != nil {
		panic(err)
	}

	wScraper := scraper.New(scraper.Config{
		Feed: gbfs.NewClient(gbfs.Config{
			URL:       cfg.Feed.URL,
			Timeout:   cfg.Feed.Timeout,
			UserAgent: cfg.Feed.UserAgent,
		}),
		Store:        files,
		Cache:        seen,
		Sinks:        sinks,
		Interval:     cfg.Poll.Interval,
		ErrorBackoff: cfg.Poll.ErrorBackoff,
		RunFor:       cfg.Poll.RunFor,
	})

	var server *http.Server
	if cfg.API.Enabled {
		apiCfg := api.Config{Files: files, Cache: seen}
		if repo != nil {
			apiCfg.DB = repo
		}
		server = &http.Server{
			Addr:              cfg.API.Addr,
			Handler:           api.New(apiCfg).Routes(),
			ReadHeaderTimeout: 10 * time.Second,
		}
		go func() {
			slog.InfoContext(ctx, "HTTP server listening", "addr", cfg.API.Addr)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.ErrorContext(ctx, "HTTP server error", "error", err)
			}
		}()
	}

	go func() {
		select {
		case <-sigs:
			slog.InfoContext(ctx, "Shutdown signal received")
			cancel()
		case <-ctx.Done():
		}
	}()

	wg := sync.WaitGroup{}
	wg.Go(func() {
		wScraper.Run(ctx)
	})
	wg.Wait()

	if server != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(ctx, "HTTP server shutdown failed", "error", err)
		}
	}
	slog.InfoContext(ctx, "Service stopped")
}
