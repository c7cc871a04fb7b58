package models

import (
	"fmt"

	"nflgames/reconcile/internal/fieldprobe"
	"nflgames/reconcile/internal/keys"
)

// PlayerGameStat is one player's per-game performance entry from a provider
// feed. The identity fields drive resolution; the trimmed stat columns are
// opaque to the join engine and passed through unchanged.
type PlayerGameStat struct {
	PlayerID          string
	PlayerName        string
	PlayerDisplayName string
	Position          string
	PositionGroup     string

	Season     int
	Week       int
	SeasonType string // REG or POST
	Team       string // provider team code
	Opponent   string // provider opponent code

	// Stats carries the kept performance columns verbatim.
	Stats map[string]interface{}
}

// Stat feed field aliases. Providers disagree on identity field names; the
// declared alias lists are probed in order.
var (
	statPlayerID = fieldprobe.Mapping{Canonical: "player_id", Aliases: []string{"player_id", "gsis_id"}}
	statSeason   = fieldprobe.Mapping{Canonical: "season", Aliases: []string{"season", "schedule_season"}}
	statWeek     = fieldprobe.Mapping{Canonical: "week", Aliases: []string{"week", "game_week"}}
	statType     = fieldprobe.Mapping{Canonical: "season_type", Aliases: []string{"season_type", "game_type"}}
	statTeam     = fieldprobe.Mapping{Canonical: "team", Aliases: []string{"team", "recent_team", "team_abbr"}}
	statOpponent = fieldprobe.Mapping{Canonical: "opponent_team", Aliases: []string{"opponent_team", "opponent"}}
)

// KeepStats is the declared list of performance columns carried onto the
// joined record; everything else in the raw row is dropped at parse time.
var KeepStats = []string{
	// Passing
	"completions", "attempts", "passing_yards", "passing_tds",
	"passing_interceptions", "sacks_suffered", "sack_yards_lost",
	"passing_air_yards", "passing_yards_after_catch",
	"passing_first_downs", "passing_epa", "passing_cpoe", "pacr",
	"passing_2pt_conversions",
	// Rushing
	"carries", "rushing_yards", "rushing_tds",
	"rushing_fumbles", "rushing_fumbles_lost",
	"rushing_first_downs", "rushing_epa", "rushing_2pt_conversions",
	// Receiving
	"targets", "receptions", "receiving_yards", "receiving_tds",
	"receiving_fumbles", "receiving_fumbles_lost",
	"receiving_air_yards", "receiving_yards_after_catch",
	"receiving_first_downs", "receiving_epa",
	"racr", "target_share", "air_yards_share", "wopr",
	"receiving_2pt_conversions",
	// Defense
	"def_tackles_solo", "def_tackles_with_assist",
	"def_tackles_for_loss", "def_fumbles_forced",
	"def_sacks", "def_qb_hits", "def_interceptions",
	"def_interception_yards", "def_pass_defended", "def_tds",
	// Special teams
	"special_teams_tds",
	// Kicking
	"fg_made", "fg_att", "fg_long", "fg_pct",
	"pat_made", "pat_att",
	// Fantasy
	"fantasy_points", "fantasy_points_ppr",
}

// ParsePlayerGameStat extracts a stat record from a raw feed row. Identity
// fields are probed through the declared alias lists; KeepStats columns are
// copied through untouched.
func ParsePlayerGameStat(row map[string]interface{}) (*PlayerGameStat, error) {
	playerID, ok := fieldprobe.String(row, statPlayerID)
	if !ok || playerID == "" {
		return nil, fmt.Errorf("stat row missing player id")
	}

	stat := &PlayerGameStat{
		PlayerID:   playerID,
		SeasonType: keys.SeasonTypeRegular,
		Stats:      make(map[string]interface{}, len(KeepStats)),
	}

	if v, ok := fieldprobe.String(row, fieldprobe.Mapping{Canonical: "player_name", Aliases: []string{"player_name"}}); ok {
		stat.PlayerName = v
	}
	if v, ok := fieldprobe.String(row, fieldprobe.Mapping{Canonical: "player_display_name", Aliases: []string{"player_display_name", "full_name"}}); ok {
		stat.PlayerDisplayName = v
	}
	if v, ok := fieldprobe.String(row, fieldprobe.Mapping{Canonical: "position", Aliases: []string{"position"}}); ok {
		stat.Position = v
	}
	if v, ok := fieldprobe.String(row, fieldprobe.Mapping{Canonical: "position_group", Aliases: []string{"position_group"}}); ok {
		stat.PositionGroup = v
	}

	if v, ok := fieldprobe.Int(row, statSeason); ok {
		stat.Season = v
	}
	if v, ok := fieldprobe.Int(row, statWeek); ok {
		stat.Week = v
	} else {
		stat.Week = -1 // flag missing week for key validation
	}
	if v, ok := fieldprobe.String(row, statType); ok {
		stat.SeasonType = v
	}
	if v, ok := fieldprobe.String(row, statTeam); ok {
		stat.Team = v
	}
	if v, ok := fieldprobe.String(row, statOpponent); ok {
		stat.Opponent = v
	}

	for _, col := range KeepStats {
		if v, ok := row[col]; ok && v != nil {
			stat.Stats[col] = v
		}
	}

	return stat, nil
}
