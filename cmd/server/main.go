package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/p-n-ai/pai-recommender/internal/catalog"
	"github.com/p-n-ai/pai-recommender/internal/httpapi"
	"github.com/p-n-ai/pai-recommender/internal/platform/cache"
	"github.com/p-n-ai/pai-recommender/internal/platform/config"
	"github.com/p-n-ai/pai-recommender/internal/platform/database"
	"github.com/p-n-ai/pai-recommender/internal/recommend"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(newLogger(cfg.Log, os.Stdout))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	// Database and cache are optional: without them the service still
	// serves from files or the built-in sample.
	var db *database.DB
	if cfg.HasDatabase() {
		db, err = database.New(ctx, cfg.Database.URL, cfg.Database.MaxConns, cfg.Database.MinConns)
		if err != nil {
			slog.Warn("database unavailable, skipping database catalog source", "error", err)
		} else {
			defer db.Close()
		}
	}

	var rc *cache.Cache
	if cfg.HasCache() {
		rc, err = cache.New(ctx, cfg.Cache.URL)
		if err != nil {
			slog.Warn("cache unavailable, serving without result cache", "error", err)
		} else {
			defer rc.Close()
		}
	}

	loader := catalog.NewLoader(catalogSources(cfg, db)...)

	engineCfg := recommend.EngineConfig{
		Catalog:  loader.Load(ctx),
		CacheTTL: cfg.Cache.TTL,
	}
	if rc != nil {
		engineCfg.Cache = recommend.NewRedisCache(rc.Client)
	}
	engine := recommend.NewEngine(engineCfg)

	handler := httpapi.New(engine, httpapi.Options{
		DefaultTopK: cfg.Recommend.DefaultTopK,
		MaxTopK:     cfg.Recommend.MaxTopK,
		Ready:       readiness(db, rc),
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      handler.Routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	if cfg.Catalog.Reload {
		go reloadOnHangup(ctx, loader, engine, rc)
	}

	go func() {
		slog.Info("server starting", "addr", srv.Addr, "catalog", engine.Catalog().Source())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}

// newLogger builds the process logger from config.
func newLogger(cfg config.LogConfig, w io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToLower(cfg.Level))); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "text" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// catalogSources orders candidates: the database table first when
// connected, then the configured files.
func catalogSources(cfg *config.Config, db *database.DB) []catalog.Source {
	var sources []catalog.Source
	if db != nil {
		src, err := catalog.NewPostgresSource(db.Pool, cfg.Catalog.Table)
		if err != nil {
			slog.Warn("database catalog source disabled", "error", err)
		} else {
			sources = append(sources, src)
		}
	}
	return append(sources, catalog.FileSources(cfg.Catalog.Paths)...)
}

func readiness(db *database.DB, rc *cache.Cache) func(context.Context) error {
	return func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if db != nil {
			if err := db.HealthCheck(ctx); err != nil {
				return fmt.Errorf("database: %w", err)
			}
		}
		if rc != nil {
			if err := rc.HealthCheck(ctx); err != nil {
				return fmt.Errorf("cache: %w", err)
			}
		}
		return nil
	}
}

// reloadOnHangup reloads the catalog on SIGHUP and swaps it in whole.
func reloadOnHangup(ctx context.Context, loader *catalog.Loader, engine *recommend.Engine, rc *cache.Cache) {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	for {
		select {
		case <-ctx.Done():
			return
		case <-hup:
			old := engine.Swap(loader.Load(ctx))
			if rc == nil || old.Fingerprint() == engine.Catalog().Fingerprint() {
				continue
			}
			n, err := rc.Purge(ctx, recommend.CacheKeyPrefix(old))
			if err != nil {
				slog.Warn("purging stale results failed", "error", err)
				continue
			}
			slog.Info("purged stale results", "keys", n)
		}
	}
}
