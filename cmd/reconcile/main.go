// Command reconcile runs one reconciliation pass and exits. It shares the
// worker's configuration and pipeline; use it for backfills and for
// verifying a deploy before enabling the nightly schedule.
package main

import (
	"context"
	"os"
	"strconv"
	"time"

	"nflgames/reconcile/internal/cache"
	"nflgames/reconcile/internal/client"
	"nflgames/reconcile/internal/config"
	"nflgames/reconcile/internal/repository"
	"nflgames/reconcile/internal/scheduler"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	if os.Getenv("APP_ENV") == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		})
	}

	ctx := context.Background()
	cfg := config.MustLoad()

	db, err := repository.NewDatabase(ctx, repository.Config{
		Host:     cfg.DatabaseHost,
		Port:     strconv.Itoa(cfg.DatabasePort),
		User:     cfg.DatabaseUser,
		Password: cfg.DatabasePassword,
		Database: cfg.DatabaseName,
		SSLMode:  cfg.DatabaseSSLMode,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	log.Info().Msg("Validating service health...")
	if err := db.Health(ctx); err != nil {
		log.Fatal().Err(err).Msg("Database health check failed")
	}

	feedCache, err := cache.New(ctx, cache.Config{
		Host:     cfg.RedisHost,
		Port:     cfg.RedisPort,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable - fetching feeds directly")
		feedCache = nil
	} else {
		defer feedCache.Close()
	}

	feedClient := client.NewClient(cfg.FeedBaseURL, cfg.FeedTimeout)
	sched := scheduler.NewScheduler(cfg, feedClient, feedCache, db)

	start := time.Now()
	if err := sched.RunReconcile(ctx); err != nil {
		log.Fatal().Err(err).Msg("Reconciliation run failed")
	}

	log.Info().
		Dur("duration", time.Since(start)).
		Msg("Reconciliation run finished")
}
