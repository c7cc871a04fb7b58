package repository

import (
	"context"
	"fmt"

	"nflgames/reconcile/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"
)

// PlayerGameRepository handles joined player-game database operations
type PlayerGameRepository struct {
	db *Database
}

// Upsert inserts or updates a joined record. The natural key is
// (player_id, season, week, season_type). Enrichment columns use COALESCE
// with the stored value first so a later run with a weaker match never
// clobbers context an earlier run already attached; identity and stat
// columns always take the incoming value.
func (r *PlayerGameRepository) Upsert(ctx context.Context, pg *models.PlayerGame) error {
	return r.upsert(ctx, r.db.Pool, pg)
}

// querier is satisfied by both the pool and a transaction.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func (r *PlayerGameRepository) upsert(ctx context.Context, q querier, pg *models.PlayerGame) error {
	query := `
		INSERT INTO player_games (
			player_id, player_name, player_display_name, position, position_group,
			season, week, season_type, team_code, opponent_code,
			team_canonical, opponent_canonical,
			birth_date, college, draft_year, draft_pick, years_exp, jersey_number,
			offense_snaps, offense_pct, defense_snaps, defense_pct, st_snaps, st_pct,
			game_date, day_of_week, is_home, team_score, opponent_score, game_result,
			spread, over_under, spread_result, ou_result,
			is_playoff, is_primetime, primetime_slot, is_neutral_site,
			temperature, wind_mph, weather_category,
			rest_days, is_bye_week, match_tier, stats
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, $18,
			$19, $20, $21, $22, $23, $24,
			$25, $26, $27, $28, $29, $30,
			$31, $32, $33, $34, $35, $36, $37, $38,
			$39, $40, $41, $42, $43, $44, $45
		)
		ON CONFLICT (player_id, season, week, season_type) DO UPDATE SET
			player_name = EXCLUDED.player_name,
			player_display_name = EXCLUDED.player_display_name,
			position = EXCLUDED.position,
			position_group = EXCLUDED.position_group,
			team_code = EXCLUDED.team_code,
			opponent_code = EXCLUDED.opponent_code,
			team_canonical = COALESCE(player_games.team_canonical, EXCLUDED.team_canonical),
			opponent_canonical = COALESCE(player_games.opponent_canonical, EXCLUDED.opponent_canonical),
			birth_date = COALESCE(player_games.birth_date, EXCLUDED.birth_date),
			college = COALESCE(player_games.college, EXCLUDED.college),
			draft_year = COALESCE(player_games.draft_year, EXCLUDED.draft_year),
			draft_pick = COALESCE(player_games.draft_pick, EXCLUDED.draft_pick),
			years_exp = COALESCE(player_games.years_exp, EXCLUDED.years_exp),
			jersey_number = COALESCE(player_games.jersey_number, EXCLUDED.jersey_number),
			offense_snaps = COALESCE(player_games.offense_snaps, EXCLUDED.offense_snaps),
			offense_pct = COALESCE(player_games.offense_pct, EXCLUDED.offense_pct),
			defense_snaps = COALESCE(player_games.defense_snaps, EXCLUDED.defense_snaps),
			defense_pct = COALESCE(player_games.defense_pct, EXCLUDED.defense_pct),
			st_snaps = COALESCE(player_games.st_snaps, EXCLUDED.st_snaps),
			st_pct = COALESCE(player_games.st_pct, EXCLUDED.st_pct),
			game_date = COALESCE(player_games.game_date, EXCLUDED.game_date),
			day_of_week = COALESCE(player_games.day_of_week, EXCLUDED.day_of_week),
			is_home = COALESCE(player_games.is_home, EXCLUDED.is_home),
			team_score = COALESCE(player_games.team_score, EXCLUDED.team_score),
			opponent_score = COALESCE(player_games.opponent_score, EXCLUDED.opponent_score),
			game_result = COALESCE(player_games.game_result, EXCLUDED.game_result),
			spread = COALESCE(player_games.spread, EXCLUDED.spread),
			over_under = COALESCE(player_games.over_under, EXCLUDED.over_under),
			spread_result = COALESCE(player_games.spread_result, EXCLUDED.spread_result),
			ou_result = COALESCE(player_games.ou_result, EXCLUDED.ou_result),
			is_playoff = EXCLUDED.is_playoff,
			is_primetime = COALESCE(player_games.is_primetime, EXCLUDED.is_primetime),
			primetime_slot = COALESCE(player_games.primetime_slot, EXCLUDED.primetime_slot),
			is_neutral_site = COALESCE(player_games.is_neutral_site, EXCLUDED.is_neutral_site),
			temperature = COALESCE(player_games.temperature, EXCLUDED.temperature),
			wind_mph = COALESCE(player_games.wind_mph, EXCLUDED.wind_mph),
			weather_category = COALESCE(player_games.weather_category, EXCLUDED.weather_category),
			rest_days = COALESCE(player_games.rest_days, EXCLUDED.rest_days),
			is_bye_week = COALESCE(player_games.is_bye_week, EXCLUDED.is_bye_week),
			match_tier = COALESCE(player_games.match_tier, EXCLUDED.match_tier),
			stats = EXCLUDED.stats,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(
		ctx, query,
		pg.PlayerID, pg.PlayerName, pg.PlayerDisplayName, pg.Position, pg.PositionGroup,
		pg.Season, pg.Week, pg.SeasonType, pg.TeamCode, pg.OpponentCode,
		pg.TeamCanonical, pg.OpponentCanonical,
		pg.BirthDate, pg.College, pg.DraftYear, pg.DraftPick, pg.YearsExp, pg.JerseyNumber,
		pg.OffenseSnaps, pg.OffensePct, pg.DefenseSnaps, pg.DefensePct, pg.STSnaps, pg.STPct,
		pg.GameDate, pg.DayOfWeek, pg.IsHome, pg.TeamScore, pg.OpponentScore, pg.GameResult,
		pg.Spread, pg.OverUnder, pg.SpreadResult, pg.OUResult,
		pg.IsPlayoff, pg.IsPrimetime, pg.PrimetimeSlot, pg.IsNeutralSite,
		pg.Temperature, pg.WindMph, pg.WeatherCategory,
		pg.RestDays, pg.IsByeWeek, pg.MatchTier, pg.Stats,
	).Scan(&pg.ID, &pg.CreatedAt, &pg.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to upsert player game: %w", err)
	}

	return nil
}

// UpsertBatch writes a full run's output inside one transaction so a failed
// run leaves the table unchanged.
func (r *PlayerGameRepository) UpsertBatch(ctx context.Context, records []*models.PlayerGame) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, pg := range records {
		if err := r.upsert(ctx, tx, pg); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit player games: %w", err)
	}

	log.Info().Int("count", len(records)).Msg("Player games written")
	return nil
}

// GetByKey retrieves one joined record by its natural key
func (r *PlayerGameRepository) GetByKey(ctx context.Context, playerID string, season, week int, seasonType string) (*models.PlayerGame, error) {
	query := `
		SELECT id, player_id, player_name, player_display_name, position, position_group,
		       season, week, season_type, team_code, opponent_code,
		       team_canonical, opponent_canonical,
		       birth_date, college, draft_year, draft_pick, years_exp, jersey_number,
		       offense_snaps, offense_pct, defense_snaps, defense_pct, st_snaps, st_pct,
		       game_date, day_of_week, is_home, team_score, opponent_score, game_result,
		       spread, over_under, spread_result, ou_result,
		       is_playoff, is_primetime, primetime_slot, is_neutral_site,
		       temperature, wind_mph, weather_category,
		       rest_days, is_bye_week, match_tier, stats, created_at, updated_at
		FROM player_games
		WHERE player_id = $1 AND season = $2 AND week = $3 AND season_type = $4
	`

	var pg models.PlayerGame
	err := r.db.Pool.QueryRow(ctx, query, playerID, season, week, seasonType).Scan(
		&pg.ID, &pg.PlayerID, &pg.PlayerName, &pg.PlayerDisplayName, &pg.Position, &pg.PositionGroup,
		&pg.Season, &pg.Week, &pg.SeasonType, &pg.TeamCode, &pg.OpponentCode,
		&pg.TeamCanonical, &pg.OpponentCanonical,
		&pg.BirthDate, &pg.College, &pg.DraftYear, &pg.DraftPick, &pg.YearsExp, &pg.JerseyNumber,
		&pg.OffenseSnaps, &pg.OffensePct, &pg.DefenseSnaps, &pg.DefensePct, &pg.STSnaps, &pg.STPct,
		&pg.GameDate, &pg.DayOfWeek, &pg.IsHome, &pg.TeamScore, &pg.OpponentScore, &pg.GameResult,
		&pg.Spread, &pg.OverUnder, &pg.SpreadResult, &pg.OUResult,
		&pg.IsPlayoff, &pg.IsPrimetime, &pg.PrimetimeSlot, &pg.IsNeutralSite,
		&pg.Temperature, &pg.WindMph, &pg.WeatherCategory,
		&pg.RestDays, &pg.IsByeWeek, &pg.MatchTier, &pg.Stats, &pg.CreatedAt, &pg.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, fmt.Errorf("player game not found: %s %d/%d %s", playerID, season, week, seasonType)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get player game: %w", err)
	}

	return &pg, nil
}

// CountUnenriched reports how many joined records for a season still lack
// game context, for run-over-run reconciliation monitoring.
func (r *PlayerGameRepository) CountUnenriched(ctx context.Context, season int) (int, error) {
	query := `SELECT COUNT(*) FROM player_games WHERE season = $1 AND is_home IS NULL`

	var count int
	if err := r.db.Pool.QueryRow(ctx, query, season).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count unenriched player games: %w", err)
	}
	return count, nil
}
