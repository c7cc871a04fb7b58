package models

import (
	"database/sql"
	"time"
)

// Game is one game-level context record: final scores, normalized betting
// lines, and situational attributes, keyed by (season, week phase, home,
// away). Produced by the upstream aggregation stage; read-only to the join
// engine.
type Game struct {
	ID     int    `db:"id"`
	Season int    `db:"season"`
	Week   string `db:"week"` // numeric week or postseason round label

	HomeTeamCanonical string `db:"home_team_canonical"`
	AwayTeamCanonical string `db:"away_team_canonical"`

	GameDate  sql.NullString `db:"game_date"` // YYYY-MM-DD
	DayOfWeek sql.NullString `db:"day_of_week"`

	HomeScore sql.NullInt32 `db:"home_score"`
	AwayScore sql.NullInt32 `db:"away_score"`

	// Lines, home-perspective signed convention: positive = home favored.
	Spread       sql.NullFloat64 `db:"spread"`
	OverUnder    sql.NullFloat64 `db:"over_under"`
	SpreadResult sql.NullString  `db:"spread_result"`
	OUResult     sql.NullString  `db:"ou_result"`

	// Situational context
	IsPlayoff     bool           `db:"is_playoff"`
	IsPrimetime   bool           `db:"is_primetime"`
	PrimetimeSlot sql.NullString `db:"primetime_slot"`
	IsNeutralSite bool           `db:"is_neutral_site"`

	Temperature     sql.NullFloat64 `db:"temperature"`
	WindMph         sql.NullFloat64 `db:"wind_mph"`
	WeatherCategory sql.NullString  `db:"weather_category"`

	// Rest, scoped per side
	HomeRestDays  sql.NullInt32 `db:"home_rest_days"`
	AwayRestDays  sql.NullInt32 `db:"away_rest_days"`
	HomeIsByeWeek sql.NullBool  `db:"home_is_bye_week"`
	AwayIsByeWeek sql.NullBool  `db:"away_is_bye_week"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// GameInput is used for loading context records from the staging feed.
type GameInput struct {
	Season int    `json:"season"`
	Week   string `json:"week"`

	HomeTeamCanonical string `json:"homeTeamCanonical"`
	AwayTeamCanonical string `json:"awayTeamCanonical"`

	GameDate  string `json:"gameDate,omitempty"`
	DayOfWeek string `json:"dayOfWeek,omitempty"`

	HomeScore *int `json:"homeScore,omitempty"`
	AwayScore *int `json:"awayScore,omitempty"`

	Spread       *float64 `json:"spread,omitempty"`
	OverUnder    *float64 `json:"overUnder,omitempty"`
	SpreadResult string   `json:"spreadResult,omitempty"`
	OUResult     string   `json:"ouResult,omitempty"`

	IsPlayoff     bool   `json:"isPlayoff,omitempty"`
	IsPrimetime   bool   `json:"isPrimetime,omitempty"`
	PrimetimeSlot string `json:"primetimeSlot,omitempty"`
	IsNeutralSite bool   `json:"isNeutralSite,omitempty"`

	Temperature     *float64 `json:"temperature,omitempty"`
	WindMph         *float64 `json:"windMph,omitempty"`
	WeatherCategory string   `json:"weatherCategory,omitempty"`

	HomeRestDays  *int  `json:"homeRestDays,omitempty"`
	AwayRestDays  *int  `json:"awayRestDays,omitempty"`
	HomeIsByeWeek *bool `json:"homeIsByeWeek,omitempty"`
	AwayIsByeWeek *bool `json:"awayIsByeWeek,omitempty"`
}

// ToGame converts GameInput (from the staging feed) to the Game model.
func (gi *GameInput) ToGame() *Game {
	game := &Game{
		Season:            gi.Season,
		Week:              gi.Week,
		HomeTeamCanonical: gi.HomeTeamCanonical,
		AwayTeamCanonical: gi.AwayTeamCanonical,
		IsPlayoff:         gi.IsPlayoff,
		IsPrimetime:       gi.IsPrimetime,
		IsNeutralSite:     gi.IsNeutralSite,
	}

	if gi.GameDate != "" {
		game.GameDate = sql.NullString{String: gi.GameDate, Valid: true}
	}
	if gi.DayOfWeek != "" {
		game.DayOfWeek = sql.NullString{String: gi.DayOfWeek, Valid: true}
	}
	if gi.HomeScore != nil {
		game.HomeScore = sql.NullInt32{Int32: int32(*gi.HomeScore), Valid: true}
	}
	if gi.AwayScore != nil {
		game.AwayScore = sql.NullInt32{Int32: int32(*gi.AwayScore), Valid: true}
	}
	if gi.Spread != nil {
		game.Spread = sql.NullFloat64{Float64: *gi.Spread, Valid: true}
	}
	if gi.OverUnder != nil {
		game.OverUnder = sql.NullFloat64{Float64: *gi.OverUnder, Valid: true}
	}
	if gi.SpreadResult != "" {
		game.SpreadResult = sql.NullString{String: gi.SpreadResult, Valid: true}
	}
	if gi.OUResult != "" {
		game.OUResult = sql.NullString{String: gi.OUResult, Valid: true}
	}
	if gi.PrimetimeSlot != "" {
		game.PrimetimeSlot = sql.NullString{String: gi.PrimetimeSlot, Valid: true}
	}
	if gi.Temperature != nil {
		game.Temperature = sql.NullFloat64{Float64: *gi.Temperature, Valid: true}
	}
	if gi.WindMph != nil {
		game.WindMph = sql.NullFloat64{Float64: *gi.WindMph, Valid: true}
	}
	if gi.WeatherCategory != "" {
		game.WeatherCategory = sql.NullString{String: gi.WeatherCategory, Valid: true}
	}
	if gi.HomeRestDays != nil {
		game.HomeRestDays = sql.NullInt32{Int32: int32(*gi.HomeRestDays), Valid: true}
	}
	if gi.AwayRestDays != nil {
		game.AwayRestDays = sql.NullInt32{Int32: int32(*gi.AwayRestDays), Valid: true}
	}
	if gi.HomeIsByeWeek != nil {
		game.HomeIsByeWeek = sql.NullBool{Bool: *gi.HomeIsByeWeek, Valid: true}
	}
	if gi.AwayIsByeWeek != nil {
		game.AwayIsByeWeek = sql.NullBool{Bool: *gi.AwayIsByeWeek, Valid: true}
	}

	return game
}

// RestDays returns the matched side's rest days.
func (g *Game) RestDays(isHome bool) sql.NullInt32 {
	if isHome {
		return g.HomeRestDays
	}
	return g.AwayRestDays
}

// IsByeWeek returns whether the matched side is coming off a bye.
func (g *Game) IsByeWeek(isHome bool) sql.NullBool {
	if isHome {
		return g.HomeIsByeWeek
	}
	return g.AwayIsByeWeek
}

// HasLine reports whether the game already carries spread data.
func (g *Game) HasLine() bool {
	return g.Spread.Valid
}
