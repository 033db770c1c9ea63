// Package main is the entry point for the NewsRadar geo-weighted market news
// service. It wires configuration, logging, the cache backend, the search
// oracle client, and the HTTP server, then runs until interrupted.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aristath/newsradar/internal/cache"
	"github.com/aristath/newsradar/internal/clients/tavily"
	"github.com/aristath/newsradar/internal/config"
	"github.com/aristath/newsradar/internal/modules/exchanges"
	"github.com/aristath/newsradar/internal/modules/history"
	"github.com/aristath/newsradar/internal/modules/news"
	"github.com/aristath/newsradar/internal/server"
	"github.com/aristath/newsradar/pkg/logger"
)

func main() {
	// Load configuration first to get the log level
	cfg, err := config.Load()
	if err != nil {
		fallbackLog := logger.New(logger.Config{
			Level:  "info",
			Pretty: true,
		})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})

	log.Info().Msg("Starting NewsRadar")

	// Cache backend. Redis being down is not fatal: the no-op store keeps
	// every endpoint working, just without caching or query history.
	var store cache.Store
	redisStore, err := cache.NewRedis(cache.RedisConfig{
		Addr:     cfg.RedisAddr(),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}, log)
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, running without cache and history")
		store = cache.NewNoop()
	} else {
		log.Info().Str("addr", cfg.RedisAddr()).Msg("Connected to Redis")
		store = redisStore
	}
	defer store.Close()

	// Search oracle. Without an API key the news endpoint degrades to an
	// error-marker response instead of failing startup.
	var searcher news.Searcher
	if cfg.TavilyAPIKey != "" {
		searcher = tavily.NewClient(cfg.TavilyAPIKey, cfg.TavilyBaseURL, log)
		log.Info().Msg("Tavily search client initialized")
	} else {
		log.Warn().Msg("TAVILY_API_KEY not set, news retrieval disabled")
	}

	registry := exchanges.NewRegistry()
	newsService := news.NewService(searcher, store, registry, log)
	historyStore := history.NewStore(store, log)

	srv := server.New(server.Config{
		Log:          log,
		Port:         cfg.Port,
		DevMode:      cfg.DevMode,
		Registry:     registry,
		NewsService:  newsService,
		HistoryStore: historyStore,
		CacheStore:   store,
	})

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
