package repository

import (
	"context"
	"fmt"

	"nflgames/reconcile/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"
)

// GameRepository handles game context database operations
type GameRepository struct {
	db *Database
}

// Upsert inserts or updates a game context record. The betting-line columns
// use COALESCE with the stored value first, so a present line is never
// overwritten by a refill; everything else takes the incoming value.
func (r *GameRepository) Upsert(ctx context.Context, game *models.Game) error {
	query := `
		INSERT INTO games (
			season, week, home_team_canonical, away_team_canonical,
			game_date, day_of_week, home_score, away_score,
			spread, over_under, spread_result, ou_result,
			is_playoff, is_primetime, primetime_slot, is_neutral_site,
			temperature, wind_mph, weather_category,
			home_rest_days, away_rest_days, home_is_bye_week, away_is_bye_week
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)
		ON CONFLICT (season, week, home_team_canonical, away_team_canonical) DO UPDATE SET
			game_date = EXCLUDED.game_date,
			day_of_week = EXCLUDED.day_of_week,
			home_score = EXCLUDED.home_score,
			away_score = EXCLUDED.away_score,
			spread = COALESCE(games.spread, EXCLUDED.spread),
			over_under = COALESCE(games.over_under, EXCLUDED.over_under),
			spread_result = COALESCE(games.spread_result, EXCLUDED.spread_result),
			ou_result = COALESCE(games.ou_result, EXCLUDED.ou_result),
			is_playoff = EXCLUDED.is_playoff,
			is_primetime = EXCLUDED.is_primetime,
			primetime_slot = EXCLUDED.primetime_slot,
			is_neutral_site = EXCLUDED.is_neutral_site,
			temperature = EXCLUDED.temperature,
			wind_mph = EXCLUDED.wind_mph,
			weather_category = EXCLUDED.weather_category,
			home_rest_days = EXCLUDED.home_rest_days,
			away_rest_days = EXCLUDED.away_rest_days,
			home_is_bye_week = EXCLUDED.home_is_bye_week,
			away_is_bye_week = EXCLUDED.away_is_bye_week,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := r.db.Pool.QueryRow(
		ctx, query,
		game.Season, game.Week, game.HomeTeamCanonical, game.AwayTeamCanonical,
		game.GameDate, game.DayOfWeek, game.HomeScore, game.AwayScore,
		game.Spread, game.OverUnder, game.SpreadResult, game.OUResult,
		game.IsPlayoff, game.IsPrimetime, game.PrimetimeSlot, game.IsNeutralSite,
		game.Temperature, game.WindMph, game.WeatherCategory,
		game.HomeRestDays, game.AwayRestDays, game.HomeIsByeWeek, game.AwayIsByeWeek,
	).Scan(&game.ID, &game.CreatedAt, &game.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to upsert game: %w", err)
	}

	log.Debug().
		Int("id", game.ID).
		Int("season", game.Season).
		Str("week", game.Week).
		Str("home", game.HomeTeamCanonical).
		Str("away", game.AwayTeamCanonical).
		Msg("Game upserted")

	return nil
}

const gameColumns = `
	id, season, week, home_team_canonical, away_team_canonical,
	game_date, day_of_week, home_score, away_score,
	spread, over_under, spread_result, ou_result,
	is_playoff, is_primetime, primetime_slot, is_neutral_site,
	temperature, wind_mph, weather_category,
	home_rest_days, away_rest_days, home_is_bye_week, away_is_bye_week,
	created_at, updated_at`

func scanGame(row pgx.Row) (*models.Game, error) {
	var g models.Game
	err := row.Scan(
		&g.ID, &g.Season, &g.Week, &g.HomeTeamCanonical, &g.AwayTeamCanonical,
		&g.GameDate, &g.DayOfWeek, &g.HomeScore, &g.AwayScore,
		&g.Spread, &g.OverUnder, &g.SpreadResult, &g.OUResult,
		&g.IsPlayoff, &g.IsPrimetime, &g.PrimetimeSlot, &g.IsNeutralSite,
		&g.Temperature, &g.WindMph, &g.WeatherCategory,
		&g.HomeRestDays, &g.AwayRestDays, &g.HomeIsByeWeek, &g.AwayIsByeWeek,
		&g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// GetByID retrieves a game by its database ID
func (r *GameRepository) GetByID(ctx context.Context, id int) (*models.Game, error) {
	query := `SELECT` + gameColumns + ` FROM games WHERE id = $1`

	g, err := scanGame(r.db.Pool.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, fmt.Errorf("game not found: id=%d", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}
	return g, nil
}

// ListBySeason retrieves all game context records for one season
func (r *GameRepository) ListBySeason(ctx context.Context, season int) ([]*models.Game, error) {
	query := `SELECT` + gameColumns + ` FROM games WHERE season = $1 ORDER BY week, home_team_canonical`

	rows, err := r.db.Pool.Query(ctx, query, season)
	if err != nil {
		return nil, fmt.Errorf("failed to list games for season %d: %w", season, err)
	}
	defer rows.Close()

	var games []*models.Game
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan game: %w", err)
		}
		games = append(games, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading games: %w", err)
	}

	return games, nil
}

// ListRange retrieves all game context records between two seasons inclusive.
// The result feeds the join index for a full reconciliation run.
func (r *GameRepository) ListRange(ctx context.Context, seasonStart, seasonEnd int) ([]*models.Game, error) {
	query := `SELECT` + gameColumns + ` FROM games WHERE season BETWEEN $1 AND $2 ORDER BY season, week, home_team_canonical`

	rows, err := r.db.Pool.Query(ctx, query, seasonStart, seasonEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to list games %d-%d: %w", seasonStart, seasonEnd, err)
	}
	defer rows.Close()

	var games []*models.Game
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan game: %w", err)
		}
		games = append(games, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading games: %w", err)
	}

	log.Debug().
		Int("season_start", seasonStart).
		Int("season_end", seasonEnd).
		Int("count", len(games)).
		Msg("Loaded game context records")

	return games, nil
}

// CountMissingLines reports how many games in a season range still lack a
// spread, for fill-pass monitoring.
func (r *GameRepository) CountMissingLines(ctx context.Context, seasonStart, seasonEnd int) (int, error) {
	query := `SELECT COUNT(*) FROM games WHERE season BETWEEN $1 AND $2 AND spread IS NULL`

	var count int
	if err := r.db.Pool.QueryRow(ctx, query, seasonStart, seasonEnd).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count games missing lines: %w", err)
	}
	return count, nil
}
