package pipeline

import (
	"fmt"
	"strconv"

	"nflgames/reconcile/internal/fieldprobe"
	"nflgames/reconcile/internal/keys"
)

// Line feed field aliases. The schedule feed and the historical feed name
// the same concepts differently; both are probed through alias lists.
var (
	lineSeason   = fieldprobe.Mapping{Canonical: "season", Aliases: []string{"season", "schedule_season"}}
	lineWeek     = fieldprobe.Mapping{Canonical: "week", Aliases: []string{"week", "schedule_week"}}
	lineHome     = fieldprobe.Mapping{Canonical: "home_team", Aliases: []string{"home_team", "team_home"}}
	lineAway     = fieldprobe.Mapping{Canonical: "away_team", Aliases: []string{"away_team", "team_away"}}
	lineSpread   = fieldprobe.Mapping{Canonical: "spread_line", Aliases: []string{"spread_line"}}
	lineTotal    = fieldprobe.Mapping{Canonical: "total_line", Aliases: []string{"total_line", "over_under_line"}}
	lineFavorite = fieldprobe.Mapping{Canonical: "team_favorite_id", Aliases: []string{"team_favorite_id"}}
	lineFavSprd  = fieldprobe.Mapping{Canonical: "spread_favorite", Aliases: []string{"spread_favorite"}}
	lineGameType = fieldprobe.Mapping{Canonical: "game_type", Aliases: []string{"game_type"}}
	linePlayoff  = fieldprobe.Mapping{Canonical: "schedule_playoff", Aliases: []string{"schedule_playoff"}}
)

// ParseScheduleLine extracts a home-signed line entry from a schedule feed
// row. Rows without a spread still parse; the fill pass skips them.
func ParseScheduleLine(row map[string]interface{}) (*ScheduleLine, error) {
	season, ok := fieldprobe.Int(row, lineSeason)
	if !ok {
		return nil, fmt.Errorf("schedule row missing season")
	}
	home, ok := fieldprobe.String(row, lineHome)
	if !ok || home == "" {
		return nil, fmt.Errorf("schedule row missing home team")
	}
	away, _ := fieldprobe.String(row, lineAway)

	week, err := scheduleWeekLabel(row)
	if err != nil {
		return nil, err
	}

	l := &ScheduleLine{Season: season, Week: week, HomeTeam: home, AwayTeam: away}
	if v, ok := fieldprobe.Float(row, lineSpread); ok {
		l.Spread = &v
	}
	if v, ok := fieldprobe.Float(row, lineTotal); ok {
		l.OverUnder = &v
	}
	return l, nil
}

// ParseFavoriteLine extracts a favorite-convention line entry from a
// historical feed row.
func ParseFavoriteLine(row map[string]interface{}) (*FavoriteLine, error) {
	season, ok := fieldprobe.Int(row, lineSeason)
	if !ok {
		return nil, fmt.Errorf("line row missing season")
	}
	home, ok := fieldprobe.String(row, lineHome)
	if !ok || home == "" {
		return nil, fmt.Errorf("line row missing home team")
	}
	away, _ := fieldprobe.String(row, lineAway)

	week, err := favoriteWeekLabel(row)
	if err != nil {
		return nil, err
	}

	l := &FavoriteLine{Season: season, Week: week, HomeTeam: home, AwayTeam: away}
	if v, ok := fieldprobe.String(row, lineFavorite); ok {
		l.FavoriteID = v
	}
	if v, ok := fieldprobe.Float(row, lineFavSprd); ok {
		l.FavoriteSpread = v
	}
	if v, ok := fieldprobe.Float(row, lineTotal); ok {
		l.OverUnder = &v
	}
	return l, nil
}

// scheduleWeekLabel derives the week phase from a schedule row: a game_type
// plus numeric week when present, otherwise the numeric week alone.
func scheduleWeekLabel(row map[string]interface{}) (string, error) {
	week, hasWeek := fieldprobe.Int(row, lineWeek)

	if gt, ok := fieldprobe.String(row, lineGameType); ok && gt != "" {
		if label, ok := keys.GameTypeLabel(gt, week); ok {
			return label, nil
		}
		return "", fmt.Errorf("schedule row has unknown game type %q", gt)
	}
	if !hasWeek {
		return "", fmt.Errorf("schedule row missing week")
	}
	return strconv.Itoa(week), nil
}

// favoriteWeekLabel derives the week phase from a historical row. The feed
// carries round names directly for playoff rows ("Wildcard", "Division",
// "Conference", "Superbowl" in some vintages) and numeric strings otherwise.
func favoriteWeekLabel(row map[string]interface{}) (string, error) {
	raw, ok := fieldprobe.Probe(row, lineWeek)
	if !ok {
		return "", fmt.Errorf("line row missing week")
	}

	switch v := raw.(type) {
	case string:
		if label, ok := historicalRounds[v]; ok {
			return label, nil
		}
		if v == "" {
			return "", fmt.Errorf("line row missing week")
		}
		return v, nil
	case float64:
		return strconv.Itoa(int(v)), nil
	case int:
		return strconv.Itoa(v), nil
	}
	return "", fmt.Errorf("line row week has unsupported type %T", raw)
}

// historicalRounds maps the historical feed's playoff spellings onto the
// context dataset's round labels.
var historicalRounds = map[string]string{
	"Wildcard":   "WildCard",
	"WildCard":   "WildCard",
	"Division":   "Division",
	"Conference": "ConfChamp",
	"ConfChamp":  "ConfChamp",
	"Superbowl":  "SuperBowl",
	"SuperBowl":  "SuperBowl",
}

// IsPlayoffRow reports whether a historical row is flagged as a playoff
// game, used for context-record backfill.
func IsPlayoffRow(row map[string]interface{}) bool {
	v, ok := fieldprobe.Probe(row, linePlayoff)
	if !ok {
		return false
	}
	b, ok := v.(bool)
	return ok && b
}
