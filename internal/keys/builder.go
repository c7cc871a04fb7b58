// Package keys builds the composite join keys that tie statistical records
// to game-level context records across differing season/week numbering
// schemes.
package keys

import (
	"errors"
	"fmt"
	"strconv"

	"nflgames/reconcile/internal/identity"
)

// ErrMalformedKey is returned when season/week fields are missing or out of
// range. The record is counted unmatched, not retried.
var ErrMalformedKey = errors.New("malformed join key inputs")

// Season types carried by the stat feeds.
const (
	SeasonTypeRegular = "REG"
	SeasonTypePost    = "POST"
)

// postseasonLabels converts provider postseason week ordinals to the named
// round labels the context dataset uses. Some seasons number the Super Bowl
// as week 22.
var postseasonLabels = map[int]string{
	18: "WildCard",
	19: "Division",
	20: "ConfChamp",
	21: "SuperBowl",
	22: "SuperBowl",
}

// gameTypeLabels converts schedule-feed game types to the same round labels.
var gameTypeLabels = map[string]string{
	"WC":  "WildCard",
	"DIV": "Division",
	"CON": "ConfChamp",
	"SB":  "SuperBowl",
}

// WeekLabel normalizes a raw provider week number to the context dataset's
// phase string. Regular-season weeks are numeric strings; postseason weeks
// map through the ordinal table, with unknown ordinals passed through as
// their raw numeric string (fallback, not an error).
func WeekLabel(week int, seasonType string) string {
	if seasonType == SeasonTypePost {
		if label, ok := postseasonLabels[week]; ok {
			return label
		}
	}
	return strconv.Itoa(week)
}

// GameTypeLabel normalizes a schedule feed's game_type/week pair to the
// phase string. "REG" uses the numeric week; postseason types map to round
// labels; unknown types are rejected.
func GameTypeLabel(gameType string, week int) (string, bool) {
	if gameType == "REG" {
		return strconv.Itoa(week), true
	}
	label, ok := gameTypeLabels[gameType]
	return label, ok
}

// Candidate is one join key to probe, in order. Fallback marks the
// opponent-perspective key tried when the primary key misses.
type Candidate struct {
	Key      string
	Fallback bool
}

// Game composes the index key for one team-perspective view of a game.
func Game(season int, week string, team string) string {
	return fmt.Sprintf("%d-%s-%s", season, week, team)
}

// Build produces the ordered candidate keys for a statistical record:
// the team's own key first, then (when an opponent is known) the
// opponent-perspective fallback used to survive provider team-code drift.
// Identical inputs always yield identical keys in identical order.
func Build(season, week int, seasonType string, team, opponent identity.Franchise) ([]Candidate, error) {
	if season <= 0 {
		return nil, fmt.Errorf("season %d: %w", season, ErrMalformedKey)
	}
	if week < 0 {
		return nil, fmt.Errorf("week %d: %w", week, ErrMalformedKey)
	}
	if team == "" {
		return nil, fmt.Errorf("missing team: %w", ErrMalformedKey)
	}

	label := WeekLabel(week, seasonType)
	candidates := []Candidate{{Key: Game(season, label, team.String())}}
	if opponent != "" {
		candidates = append(candidates, Candidate{Key: Game(season, label, opponent.String()), Fallback: true})
	}
	return candidates, nil
}
