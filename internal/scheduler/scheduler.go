// Package scheduler drives reconciliation runs: an optional run on
// startup and a nightly cron that re-joins the latest feed drops. Runs are
// idempotent, so overlapping data between runs is harmless.
package scheduler

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"nflgames/reconcile/internal/cache"
	"nflgames/reconcile/internal/client"
	"nflgames/reconcile/internal/config"
	"nflgames/reconcile/internal/identity"
	"nflgames/reconcile/internal/join"
	"nflgames/reconcile/internal/metrics"
	"nflgames/reconcile/internal/models"
	"nflgames/reconcile/internal/pipeline"
	"nflgames/reconcile/internal/repository"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Scheduler manages background reconciliation runs
type Scheduler struct {
	cfg    *config.Config
	client *client.Client
	cache  *cache.Cache // nil when Redis is unavailable
	db     *repository.Database
	cron   *cron.Cron
}

// NewScheduler creates a new scheduler instance. cache may be nil; feeds
// are then fetched on every run.
func NewScheduler(cfg *config.Config, client *client.Client, c *cache.Cache, db *repository.Database) *Scheduler {
	return &Scheduler{
		cfg:    cfg,
		client: client,
		cache:  c,
		db:     db,
		cron:   cron.New(),
	}
}

// Start starts the scheduler
func (s *Scheduler) Start(ctx context.Context) error {
	log.Info().Msg("Scheduler starting...")

	if _, err := s.cron.AddFunc(s.cfg.ReconcileCron, func() {
		log.Info().Msg("Running nightly reconciliation...")
		if err := s.RunReconcile(ctx); err != nil {
			log.Error().Err(err).Msg("Nightly reconciliation failed")
		}
	}); err != nil {
		return fmt.Errorf("failed to schedule reconciliation: %w", err)
	}

	s.cron.Start()
	log.Info().
		Str("schedule", s.cfg.ReconcileCron).
		Msg("Nightly reconciliation scheduled")

	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	log.Info().Msg("Stopping scheduler...")

	if s.cron != nil {
		s.cron.Stop()
	}

	log.Info().Msg("Scheduler stopped")
}

// seasonRange resolves the configured season window; SEASON_END=0 means
// the current league year, which rolls over in September.
func (s *Scheduler) seasonRange() (int, int) {
	end := s.cfg.SeasonEnd
	if end == 0 {
		now := time.Now()
		end = now.Year()
		if now.Month() < time.September {
			end--
		}
	}
	return s.cfg.SeasonStart, end
}

// RunReconcile performs one full reconciliation run: load context, fill
// missing lines from both line feeds, then join every season's stat drop
// and persist the output.
func (s *Scheduler) RunReconcile(ctx context.Context) error {
	start := time.Now()
	seasonStart, seasonEnd := s.seasonRange()

	log.Info().
		Int("season_start", seasonStart).
		Int("season_end", seasonEnd).
		Msg("Reconciliation run starting")

	games, err := s.db.Games.ListRange(ctx, seasonStart, seasonEnd)
	if err != nil {
		metrics.RecordError("scheduler", "load_games")
		return fmt.Errorf("failed to load game context: %w", err)
	}
	if len(games) == 0 {
		return fmt.Errorf("no game context records for seasons %d-%d", seasonStart, seasonEnd)
	}

	idx := join.BuildIndex(games)
	engine := join.NewEngine(idx, identity.DefaultResolver())
	p := pipeline.New(engine, s.cfg.UnmatchedSampleCap)

	if err := s.fillLines(ctx, p, idx, games, seasonStart, seasonEnd); err != nil {
		// A line-feed outage degrades the output, it does not abort the join
		log.Error().Err(err).Msg("Line fill incomplete, continuing with available lines")
		metrics.RecordError("scheduler", "fill_lines")
	}

	var totalProcessed, totalMatched int
	for season := seasonStart; season <= seasonEnd; season++ {
		processed, matched, err := s.reconcileSeason(ctx, p, season)
		if err != nil {
			log.Error().Err(err).Int("season", season).Msg("Season reconciliation failed, continuing")
			metrics.RecordError("scheduler", "reconcile_season")
			continue
		}
		totalProcessed += processed
		totalMatched += matched
	}

	rate := 0.0
	if totalProcessed > 0 {
		rate = float64(totalMatched) / float64(totalProcessed)
	}
	metrics.RecordRun(time.Since(start).Seconds(), rate, true)

	log.Info().
		Int("processed", totalProcessed).
		Int("matched", totalMatched).
		Dur("duration", time.Since(start)).
		Msg("Reconciliation run complete")

	return nil
}

// fillLines runs both line-fill passes and persists the filled games. The
// schedule feed goes first: its lines are already home-signed and more
// reliable than the converted historical feed.
func (s *Scheduler) fillLines(ctx context.Context, p *pipeline.Pipeline, idx *join.Index, games []*models.Game, seasonStart, seasonEnd int) error {
	var scheduleLines []*pipeline.ScheduleLine
	for season := seasonStart; season <= seasonEnd; season++ {
		rows, err := s.fetchCached(ctx, "schedule", season, s.cfg.CacheTTLFeeds, func() ([]map[string]interface{}, error) {
			return s.client.FetchSchedule(ctx, season)
		})
		if err != nil {
			return fmt.Errorf("failed to fetch schedule for %d: %w", season, err)
		}
		for _, row := range rows {
			l, err := pipeline.ParseScheduleLine(row)
			if err != nil {
				log.Debug().Err(err).Msg("Skipping unparseable schedule row")
				continue
			}
			scheduleLines = append(scheduleLines, l)
		}
	}

	st := p.FillScheduleLines(idx, scheduleLines)
	metrics.RecordLineFill("schedule", st.Filled)
	log.Info().Str("stats", st.Summary()).Msg("Schedule line fill complete")

	histRows, err := s.fetchCached(ctx, "historical_lines", 0, s.cfg.CacheTTLFeeds, func() ([]map[string]interface{}, error) {
		return s.client.FetchHistoricalLines(ctx)
	})
	if err != nil {
		return fmt.Errorf("failed to fetch historical lines: %w", err)
	}

	var favoriteLines []*pipeline.FavoriteLine
	for _, row := range histRows {
		l, err := pipeline.ParseFavoriteLine(row)
		if err != nil {
			log.Debug().Err(err).Msg("Skipping unparseable line row")
			continue
		}
		if l.Season < seasonStart || l.Season > seasonEnd {
			continue
		}
		favoriteLines = append(favoriteLines, l)
	}

	st = p.FillFavoriteLines(idx, favoriteLines, nil)
	metrics.RecordLineFill("historical", st.Filled)
	metrics.AmbiguousLinesTotal.Add(float64(st.Ambiguous))
	log.Info().Str("stats", st.Summary()).Msg("Historical line fill complete")

	// Persist filled lines; COALESCE in the upsert keeps this idempotent
	for _, g := range games {
		if !g.HasLine() {
			continue
		}
		if err := s.db.Games.Upsert(ctx, g); err != nil {
			return fmt.Errorf("failed to persist filled game: %w", err)
		}
	}

	return nil
}

// reconcileSeason joins one season's stat drop and persists the output
func (s *Scheduler) reconcileSeason(ctx context.Context, p *pipeline.Pipeline, season int) (processed, matched int, err error) {
	statRows, err := s.fetchCached(ctx, "player_stats", season, s.cfg.CacheTTLStats, func() ([]map[string]interface{}, error) {
		return s.client.FetchPlayerStats(ctx, season)
	})
	if err != nil {
		return 0, 0, fmt.Errorf("failed to fetch stats: %w", err)
	}

	var stats []*models.PlayerGameStat
	for _, row := range statRows {
		stat, err := models.ParsePlayerGameStat(row)
		if err != nil {
			log.Debug().Err(err).Msg("Skipping unparseable stat row")
			continue
		}
		stats = append(stats, stat)
	}

	metas := s.fetchMetadata(ctx, season)
	snaps := s.fetchSnaps(ctx, season)

	output, rpt := p.Normalize(stats, metas, snaps)
	rpt.Log(zerolog.InfoLevel)

	metrics.RecordsProcessedTotal.Add(float64(rpt.Processed))
	metrics.RecordsMatchedTotal.WithLabelValues("exact").Add(float64(rpt.Matched - rpt.Fuzzy))
	metrics.RecordsMatchedTotal.WithLabelValues("fuzzy").Add(float64(rpt.Fuzzy))
	metrics.RecordsUnmatchedTotal.Add(float64(rpt.Unmatched))
	metrics.UnknownIdentitiesTotal.Add(float64(rpt.UnknownIdentities))
	metrics.MalformedKeysTotal.Add(float64(rpt.MalformedKeys))

	if err := s.db.PlayerGames.UpsertBatch(ctx, output); err != nil {
		return 0, 0, fmt.Errorf("failed to persist season %d: %w", season, err)
	}

	return rpt.Processed, rpt.Matched, nil
}

// fetchMetadata loads the roster feed; a missing vintage only costs the
// metadata columns, never the run.
func (s *Scheduler) fetchMetadata(ctx context.Context, season int) []*models.PlayerMeta {
	rows, err := s.fetchCached(ctx, "rosters", season, s.cfg.CacheTTLRoster, func() ([]map[string]interface{}, error) {
		return s.client.FetchPlayerMetadata(ctx, season)
	})
	if err != nil {
		log.Warn().Err(err).Int("season", season).Msg("Roster feed unavailable, metadata columns will be null")
		return nil
	}

	var metas []*models.PlayerMeta
	for _, row := range rows {
		m, err := models.ParsePlayerMeta(row)
		if err != nil {
			continue
		}
		metas = append(metas, m)
	}
	return metas
}

// fetchSnaps loads the participation feed; snap data only exists from 2012
// on, so a miss is expected for older seasons.
func (s *Scheduler) fetchSnaps(ctx context.Context, season int) []*models.SnapShare {
	rows, err := s.fetchCached(ctx, "snap_counts", season, s.cfg.CacheTTLFeeds, func() ([]map[string]interface{}, error) {
		return s.client.FetchSnapCounts(ctx, season)
	})
	if err != nil {
		log.Debug().Err(err).Int("season", season).Msg("Snap feed unavailable, participation columns will be null")
		return nil
	}

	var snaps []*models.SnapShare
	for _, row := range rows {
		sn, err := models.ParseSnapShare(row)
		if err != nil {
			continue
		}
		snaps = append(snaps, sn)
	}
	return snaps
}

// fetchCached fetches a feed through the Redis cache when one is wired
func (s *Scheduler) fetchCached(ctx context.Context, feed string, season, ttlSeconds int, fetch func() ([]map[string]interface{}, error)) ([]map[string]interface{}, error) {
	key := cache.FeedKey(feed, season)

	if s.cache != nil {
		if payload, err := s.cache.Get(ctx, key); err == nil && payload != nil {
			var rows []map[string]interface{}
			if err := json.Unmarshal(payload, &rows); err == nil {
				metrics.RecordCacheHit()
				return rows, nil
			}
			// Corrupt payload falls through to a refetch
			_ = s.cache.Delete(ctx, key)
		}
		metrics.RecordCacheMiss()
	}

	start := time.Now()
	rows, err := fetch()
	if err != nil {
		metrics.RecordFeedFetch(feed, "error", time.Since(start).Seconds())
		return nil, err
	}
	metrics.RecordFeedFetch(feed, "success", time.Since(start).Seconds())

	if s.cache != nil {
		if payload, err := json.Marshal(rows); err == nil {
			if err := s.cache.Set(ctx, key, payload, time.Duration(ttlSeconds)*time.Second); err != nil {
				log.Warn().Err(err).Str("key", key).Msg("Failed to cache feed payload")
			}
		}
	}

	return rows, nil
}
