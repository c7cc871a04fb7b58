package models

import (
	"database/sql"
	"time"
)

// PlayerGame is the joined output record: one player's performance in one
// game, enriched with the matched game's betting and situational context.
// Enrichment fields are either fully populated from one context record or
// fully null; partial enrichment from two different games must never occur.
type PlayerGame struct {
	ID int `db:"id"`

	// Identity (always present, from the stat feed)
	PlayerID          string `db:"player_id"`
	PlayerName        string `db:"player_name"`
	PlayerDisplayName string `db:"player_display_name"`
	Position          string `db:"position"`
	PositionGroup     string `db:"position_group"`
	Season            int    `db:"season"`
	Week              int    `db:"week"`
	SeasonType        string `db:"season_type"`
	TeamCode          string `db:"team_code"`
	OpponentCode      string `db:"opponent_code"`

	// Resolved identities (null when the alias tables have no entry)
	TeamCanonical     sql.NullString `db:"team_canonical"`
	OpponentCanonical sql.NullString `db:"opponent_canonical"`

	// Player metadata (direct key lookup)
	BirthDate    sql.NullString `db:"birth_date"`
	College      sql.NullString `db:"college"`
	DraftYear    sql.NullInt32  `db:"draft_year"`
	DraftPick    sql.NullInt32  `db:"draft_pick"`
	YearsExp     sql.NullInt32  `db:"years_exp"`
	JerseyNumber sql.NullInt32  `db:"jersey_number"`

	// Participation shares (exact key lookup)
	OffenseSnaps sql.NullInt32   `db:"offense_snaps"`
	OffensePct   sql.NullFloat64 `db:"offense_pct"`
	DefenseSnaps sql.NullInt32   `db:"defense_snaps"`
	DefensePct   sql.NullFloat64 `db:"defense_pct"`
	STSnaps      sql.NullInt32   `db:"st_snaps"`
	STPct        sql.NullFloat64 `db:"st_pct"`

	// Game enrichment, all-or-nothing from one matched context record
	GameDate      sql.NullString  `db:"game_date"`
	DayOfWeek     sql.NullString  `db:"day_of_week"`
	IsHome        sql.NullBool    `db:"is_home"`
	TeamScore     sql.NullInt32   `db:"team_score"`
	OpponentScore sql.NullInt32   `db:"opponent_score"`
	GameResult    sql.NullString  `db:"game_result"` // W/L/T
	Spread        sql.NullFloat64 `db:"spread"`      // player's-team perspective
	OverUnder     sql.NullFloat64 `db:"over_under"`
	SpreadResult  sql.NullString  `db:"spread_result"`
	OUResult      sql.NullString  `db:"ou_result"`
	IsPlayoff     bool            `db:"is_playoff"`
	IsPrimetime   sql.NullBool    `db:"is_primetime"`
	PrimetimeSlot sql.NullString  `db:"primetime_slot"`
	IsNeutralSite sql.NullBool    `db:"is_neutral_site"`

	Temperature     sql.NullFloat64 `db:"temperature"`
	WindMph         sql.NullFloat64 `db:"wind_mph"`
	WeatherCategory sql.NullString  `db:"weather_category"`

	RestDays  sql.NullInt32 `db:"rest_days"`
	IsByeWeek sql.NullBool  `db:"is_bye_week"`

	// MatchTier records the join confidence: exact, fallback, fuzzy, or
	// empty when unmatched.
	MatchTier sql.NullString `db:"match_tier"`

	// Stats carries the trimmed performance columns verbatim (stored as
	// JSONB).
	Stats map[string]interface{} `db:"stats"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Enriched reports whether the record carries game context.
func (pg *PlayerGame) Enriched() bool {
	return pg.IsHome.Valid
}
