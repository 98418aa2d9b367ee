package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lysyi3m/gene-comb/app/api"
	"github.com/lysyi3m/gene-comb/app/cache"
	"github.com/lysyi3m/gene-comb/app/cfg"
	"github.com/lysyi3m/gene-comb/app/database"
	"github.com/lysyi3m/gene-comb/app/engine"
	"github.com/lysyi3m/gene-comb/app/links"
	"github.com/lysyi3m/gene-comb/app/normalize"
	"github.com/lysyi3m/gene-comb/app/signor"
	"github.com/lysyi3m/gene-comb/app/tasks"
	"github.com/lysyi3m/gene-comb/app/uniprot"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	appCfg, err := cfg.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting Gene Comb server", "version", appCfg.Version)

	// Fallback cache store (process-local SQLite)
	db, err := database.NewConnection(appCfg.CachePath)
	if err != nil {
		log.Fatal("Failed to open fallback store:", err)
	}
	defer db.Close()

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		log.Fatal("Failed to run migrations:", err)
	}
	slog.Info("Fallback store ready", "path", appCfg.CachePath, "migration_version", version, "dirty", dirty)

	// Primary cache store (Redis). The tiered store falls back per
	// operation, so an unreachable Redis only costs a warning here.
	redisStore := cache.NewRedisStore(appCfg.RedisAddr, appCfg.RedisPassword, appCfg.RedisDB)
	defer redisStore.Close()

	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisStore.Ping(pingCtx); err != nil {
		slog.Warn("Redis unavailable, fallback store will serve until it recovers", "error", err)
	} else {
		slog.Info("Connected to Redis", "addr", appCfg.RedisAddr)
	}
	cancelPing()

	store := cache.NewTieredStore(redisStore, database.NewCacheRepository(db, appCfg.CacheMaxEntries))

	// Cross-reference link templates
	registry, err := links.NewRegistry(appCfg.LinksFile)
	if err != nil {
		log.Fatal("Failed to load link templates:", err)
	}

	// Core components
	httpClient := &http.Client{}
	uniprotClient := uniprot.NewClient(httpClient, uniprot.Options{
		BaseURL:    appCfg.UniProtURL,
		Timeout:    appCfg.UniProtTimeout,
		Retries:    appCfg.UniProtRetries,
		OrganismID: appCfg.OrganismID,
		UserAgent:  appCfg.UserAgent,
	})
	signorClient := signor.NewClient(httpClient, signor.Options{
		BaseURL:    appCfg.SignorURL,
		Timeout:    appCfg.SignorTimeout,
		OrganismID: appCfg.OrganismID,
		UserAgent:  appCfg.UserAgent,
	})

	normalizer := normalize.NewNormalizer(registry)
	eng := engine.NewEngine(uniprotClient, normalizer, store, appCfg.CacheTTL)

	// Background cache refresh
	scheduler := tasks.NewScheduler(eng, eng)
	scheduler.Start()
	defer scheduler.Stop()

	// HTTP server
	handler := api.NewHandler(eng, signorClient)
	server := api.NewServer(handler, appCfg.APIAccessKey)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	slog.Info("Shutdown complete")
}
