package models

import (
	"fmt"

	"nflgames/reconcile/internal/fieldprobe"
)

// PlayerMeta is biographical/roster metadata merged onto joined records by
// direct player-id lookup. No fuzzy matching.
type PlayerMeta struct {
	PlayerID     string
	BirthDate    *string
	College      *string
	DraftYear    *int
	DraftPick    *int
	YearsExp     *int
	JerseyNumber *int
}

// SnapShare is one player's participation shares for one game, keyed by
// (player id, season, week). Missing entries yield null participation
// fields on the joined record.
type SnapShare struct {
	PlayerID string
	Season   int
	Week     int

	OffenseSnaps *int
	OffensePct   *float64
	DefenseSnaps *int
	DefensePct   *float64
	STSnaps      *int
	STPct        *float64
}

// Key composes the exact-lookup key for a snap entry.
func (s *SnapShare) Key() string {
	return SnapKey(s.PlayerID, s.Season, s.Week)
}

// SnapKey composes the participation lookup key.
func SnapKey(playerID string, season, week int) string {
	return fmt.Sprintf("%s-%d-%d", playerID, season, week)
}

var (
	metaBirthDate = fieldprobe.Mapping{Canonical: "birth_date", Aliases: []string{"birth_date", "birthDate"}}
	metaDraftYear = fieldprobe.Mapping{Canonical: "entry_year", Aliases: []string{"entry_year", "rookie_year", "draft_year"}}
	metaDraftPick = fieldprobe.Mapping{Canonical: "draft_number", Aliases: []string{"draft_number", "draft_pick"}}
)

// ParsePlayerMeta extracts player metadata from a raw roster feed row.
func ParsePlayerMeta(row map[string]interface{}) (*PlayerMeta, error) {
	playerID, ok := fieldprobe.String(row, fieldprobe.Mapping{Canonical: "gsis_id", Aliases: []string{"gsis_id", "player_id"}})
	if !ok || playerID == "" {
		return nil, fmt.Errorf("metadata row missing player id")
	}

	meta := &PlayerMeta{PlayerID: playerID}
	if v, ok := fieldprobe.String(row, metaBirthDate); ok {
		meta.BirthDate = &v
	}
	if v, ok := fieldprobe.String(row, fieldprobe.Mapping{Canonical: "college", Aliases: []string{"college"}}); ok {
		meta.College = &v
	}
	if v, ok := fieldprobe.Int(row, metaDraftYear); ok {
		meta.DraftYear = &v
	}
	if v, ok := fieldprobe.Int(row, metaDraftPick); ok {
		meta.DraftPick = &v
	}
	if v, ok := fieldprobe.Int(row, fieldprobe.Mapping{Canonical: "years_exp", Aliases: []string{"years_exp"}}); ok {
		meta.YearsExp = &v
	}
	if v, ok := fieldprobe.Int(row, fieldprobe.Mapping{Canonical: "jersey_number", Aliases: []string{"jersey_number"}}); ok {
		meta.JerseyNumber = &v
	}

	return meta, nil
}

// ParseSnapShare extracts a participation entry from a raw snap-count feed
// row.
func ParseSnapShare(row map[string]interface{}) (*SnapShare, error) {
	playerID, ok := fieldprobe.String(row, fieldprobe.Mapping{Canonical: "gsis_id", Aliases: []string{"gsis_id", "player_id"}})
	if !ok || playerID == "" {
		return nil, fmt.Errorf("snap row missing player id")
	}
	season, ok := fieldprobe.Int(row, fieldprobe.Mapping{Canonical: "season", Aliases: []string{"season"}})
	if !ok {
		return nil, fmt.Errorf("snap row missing season")
	}
	week, ok := fieldprobe.Int(row, fieldprobe.Mapping{Canonical: "week", Aliases: []string{"week"}})
	if !ok {
		return nil, fmt.Errorf("snap row missing week")
	}

	snap := &SnapShare{PlayerID: playerID, Season: season, Week: week}
	if v, ok := fieldprobe.Int(row, fieldprobe.Mapping{Canonical: "offense_snaps", Aliases: []string{"offense_snaps"}}); ok {
		snap.OffenseSnaps = &v
	}
	if v, ok := fieldprobe.Float(row, fieldprobe.Mapping{Canonical: "offense_pct", Aliases: []string{"offense_pct"}}); ok {
		snap.OffensePct = &v
	}
	if v, ok := fieldprobe.Int(row, fieldprobe.Mapping{Canonical: "defense_snaps", Aliases: []string{"defense_snaps"}}); ok {
		snap.DefenseSnaps = &v
	}
	if v, ok := fieldprobe.Float(row, fieldprobe.Mapping{Canonical: "defense_pct", Aliases: []string{"defense_pct"}}); ok {
		snap.DefensePct = &v
	}
	if v, ok := fieldprobe.Int(row, fieldprobe.Mapping{Canonical: "st_snaps", Aliases: []string{"st_snaps"}}); ok {
		snap.STSnaps = &v
	}
	if v, ok := fieldprobe.Float(row, fieldprobe.Mapping{Canonical: "st_pct", Aliases: []string{"st_pct"}}); ok {
		snap.STPct = &v
	}

	return snap, nil
}
