// Package pipeline orchestrates a reconciliation run: it joins per-player
// performance records to game context, merges metadata and participation
// shares, and fills missing betting lines from secondary feeds. Runs are
// single-threaded and idempotent; re-running over the same inputs produces
// the same output records.
package pipeline

import (
	"database/sql"
	"errors"
	"fmt"

	"nflgames/reconcile/internal/identity"
	"nflgames/reconcile/internal/join"
	"nflgames/reconcile/internal/keys"
	"nflgames/reconcile/internal/lines"
	"nflgames/reconcile/internal/models"
	"nflgames/reconcile/internal/outcome"
	"nflgames/reconcile/internal/report"

	"github.com/rs/zerolog/log"
)

// Pipeline wires the join engine to the merge and fill passes.
type Pipeline struct {
	engine    *join.Engine
	sampleCap int
}

// New creates a pipeline over a prebuilt join engine. sampleCap bounds the
// unmatched samples retained by the run report.
func New(engine *join.Engine, sampleCap int) *Pipeline {
	return &Pipeline{engine: engine, sampleCap: sampleCap}
}

// Normalize joins every stat record to at most one context record and
// returns the enriched output set plus the run report. Records are never
// dropped: an unmatched stat still yields an output record with null
// enrichment. The input slices are not mutated.
func (p *Pipeline) Normalize(
	stats []*models.PlayerGameStat,
	metas []*models.PlayerMeta,
	snaps []*models.SnapShare,
) ([]*models.PlayerGame, *report.Report) {
	rpt := report.New(p.sampleCap)

	metaByID := make(map[string]*models.PlayerMeta, len(metas))
	for _, m := range metas {
		metaByID[m.PlayerID] = m
	}
	snapByKey := make(map[string]*models.SnapShare, len(snaps))
	for _, s := range snaps {
		snapByKey[s.Key()] = s
	}

	out := make([]*models.PlayerGame, 0, len(stats))
	for _, stat := range stats {
		pg := baseRecord(stat)
		mergeMeta(pg, metaByID[stat.PlayerID])
		mergeSnaps(pg, snapByKey[models.SnapKey(stat.PlayerID, stat.Season, stat.Week)])
		p.resolveCanonicals(pg, stat)

		match, err := p.engine.Resolve(stat)
		switch {
		case err != nil:
			reason := classify(err, rpt)
			rpt.RecordUnmatched(report.UnmatchedSample{
				PlayerID: stat.PlayerID,
				Season:   stat.Season,
				Week:     stat.Week,
				Team:     stat.Team,
				Opponent: stat.Opponent,
				Reason:   reason,
			})
			log.Debug().
				Str("player_id", stat.PlayerID).
				Str("team", stat.Team).
				Int("season", stat.Season).
				Int("week", stat.Week).
				Str("reason", reason).
				Msg("Record not resolvable")
		case match == nil:
			rpt.RecordUnmatched(report.UnmatchedSample{
				PlayerID: stat.PlayerID,
				Season:   stat.Season,
				Week:     stat.Week,
				Team:     stat.Team,
				Opponent: stat.Opponent,
				Reason:   "no game for key",
			})
		default:
			enrich(pg, match)
			rpt.RecordMatched(stat.Season, match.Tier == join.TierFuzzy)
		}

		out = append(out, pg)
	}

	return out, rpt
}

func classify(err error, rpt *report.Report) string {
	switch {
	case errors.Is(err, identity.ErrUnknownIdentity):
		rpt.RecordUnknownIdentity()
		return "unknown team identity"
	case errors.Is(err, keys.ErrMalformedKey):
		rpt.RecordMalformedKey()
		return "malformed join key"
	}
	return err.Error()
}

func baseRecord(stat *models.PlayerGameStat) *models.PlayerGame {
	return &models.PlayerGame{
		PlayerID:          stat.PlayerID,
		PlayerName:        stat.PlayerName,
		PlayerDisplayName: stat.PlayerDisplayName,
		Position:          stat.Position,
		PositionGroup:     stat.PositionGroup,
		Season:            stat.Season,
		Week:              stat.Week,
		SeasonType:        stat.SeasonType,
		TeamCode:          stat.Team,
		OpponentCode:      stat.Opponent,
		Stats:             stat.Stats,
	}
}

// resolveCanonicals records the resolved franchise names even when no game
// matches; a null canonical means the alias tables had no entry.
func (p *Pipeline) resolveCanonicals(pg *models.PlayerGame, stat *models.PlayerGameStat) {
	if f, err := p.engine.Resolver().Resolve(stat.Team, stat.Season); err == nil {
		pg.TeamCanonical = sql.NullString{String: f.String(), Valid: true}
	}
	if stat.Opponent != "" {
		if f, err := p.engine.Resolver().Resolve(stat.Opponent, stat.Season); err == nil {
			pg.OpponentCanonical = sql.NullString{String: f.String(), Valid: true}
		}
	}
}

func mergeMeta(pg *models.PlayerGame, m *models.PlayerMeta) {
	if m == nil {
		return
	}
	if m.BirthDate != nil {
		pg.BirthDate = sql.NullString{String: *m.BirthDate, Valid: true}
	}
	if m.College != nil {
		pg.College = sql.NullString{String: *m.College, Valid: true}
	}
	if m.DraftYear != nil {
		pg.DraftYear = sql.NullInt32{Int32: int32(*m.DraftYear), Valid: true}
	}
	if m.DraftPick != nil {
		pg.DraftPick = sql.NullInt32{Int32: int32(*m.DraftPick), Valid: true}
	}
	if m.YearsExp != nil {
		pg.YearsExp = sql.NullInt32{Int32: int32(*m.YearsExp), Valid: true}
	}
	if m.JerseyNumber != nil {
		pg.JerseyNumber = sql.NullInt32{Int32: int32(*m.JerseyNumber), Valid: true}
	}
}

func mergeSnaps(pg *models.PlayerGame, s *models.SnapShare) {
	if s == nil {
		return
	}
	if s.OffenseSnaps != nil {
		pg.OffenseSnaps = sql.NullInt32{Int32: int32(*s.OffenseSnaps), Valid: true}
	}
	if s.OffensePct != nil {
		pg.OffensePct = sql.NullFloat64{Float64: *s.OffensePct, Valid: true}
	}
	if s.DefenseSnaps != nil {
		pg.DefenseSnaps = sql.NullInt32{Int32: int32(*s.DefenseSnaps), Valid: true}
	}
	if s.DefensePct != nil {
		pg.DefensePct = sql.NullFloat64{Float64: *s.DefensePct, Valid: true}
	}
	if s.STSnaps != nil {
		pg.STSnaps = sql.NullInt32{Int32: int32(*s.STSnaps), Valid: true}
	}
	if s.STPct != nil {
		pg.STPct = sql.NullFloat64{Float64: *s.STPct, Valid: true}
	}
}

// enrich copies game context onto the joined record, reoriented to the
// player's team perspective. Enrichment is all-or-nothing: it only runs
// for a matched record, so unmatched records keep every field null.
func enrich(pg *models.PlayerGame, m *join.Match) {
	g := m.Game
	isHome := m.IsHome

	pg.MatchTier = sql.NullString{String: m.Tier.String(), Valid: true}
	pg.GameDate = g.GameDate
	pg.DayOfWeek = g.DayOfWeek
	pg.IsHome = sql.NullBool{Bool: isHome, Valid: true}

	if isHome {
		pg.TeamScore = g.HomeScore
		pg.OpponentScore = g.AwayScore
	} else {
		pg.TeamScore = g.AwayScore
		pg.OpponentScore = g.HomeScore
	}
	pg.GameResult = outcome.GameResult(pg.TeamScore, pg.OpponentScore)

	// Lines are stored home-signed; reorient to the player's team. The
	// spread outcome flips with it, the total does not.
	if g.Spread.Valid {
		spread := g.Spread.Float64
		if !isHome {
			spread = -spread
		}
		pg.Spread = sql.NullFloat64{Float64: spread, Valid: true}
	}
	pg.OverUnder = g.OverUnder
	pg.SpreadResult = orientSpreadResult(g.SpreadResult, isHome)
	pg.OUResult = g.OUResult

	pg.IsPlayoff = g.IsPlayoff
	pg.IsPrimetime = sql.NullBool{Bool: g.IsPrimetime, Valid: true}
	pg.PrimetimeSlot = g.PrimetimeSlot
	pg.IsNeutralSite = sql.NullBool{Bool: g.IsNeutralSite, Valid: true}

	pg.Temperature = g.Temperature
	pg.WindMph = g.WindMph
	pg.WeatherCategory = g.WeatherCategory

	pg.RestDays = g.RestDays(isHome)
	pg.IsByeWeek = g.IsByeWeek(isHome)
}

// orientSpreadResult flips a home-perspective cover result for away-side
// players. A push is a push from either side.
func orientSpreadResult(home sql.NullString, isHome bool) sql.NullString {
	if !home.Valid || isHome {
		return home
	}
	switch home.String {
	case outcome.SpreadCovered:
		return sql.NullString{String: outcome.SpreadLost, Valid: true}
	case outcome.SpreadLost:
		return sql.NullString{String: outcome.SpreadCovered, Valid: true}
	}
	return home
}

// ScheduleLine is a line entry from a schedule-style feed: the spread is
// already home-signed.
type ScheduleLine struct {
	Season    int
	Week      string
	HomeTeam  string
	AwayTeam  string
	Spread    *float64 // home-signed, positive = home favored
	OverUnder *float64
}

// FavoriteLine is a line entry from a favorite-convention feed: a favorite
// identifier plus the favorite's spread magnitude.
type FavoriteLine struct {
	Season         int
	Week           string
	HomeTeam       string
	AwayTeam       string
	FavoriteID     string
	FavoriteSpread float64
	OverUnder      *float64
}

// FillStats tallies one line-fill pass.
type FillStats struct {
	Filled     int
	AlreadyHad int
	NotFound   int
	Ambiguous  int
	BySeason   map[int]int // filled per season
}

func newFillStats() *FillStats {
	return &FillStats{BySeason: make(map[int]int)}
}

// FillScheduleLines fills missing lines from a home-signed feed. Present
// values are never overwritten.
func (p *Pipeline) FillScheduleLines(idx *join.Index, feed []*ScheduleLine) *FillStats {
	st := newFillStats()
	for _, l := range feed {
		g := p.findGame(idx, l.Season, l.Week, l.HomeTeam, l.AwayTeam)
		if g == nil {
			st.NotFound++
			continue
		}
		if g.HasLine() {
			st.AlreadyHad++
			continue
		}
		if l.Spread == nil {
			st.NotFound++
			continue
		}
		if join.FillLine(g, lines.FromHomeSigned(*l.Spread), l.OverUnder) {
			st.Filled++
			st.BySeason[l.Season]++
		}
	}
	return st
}

// FillFavoriteLines fills missing lines from a favorite-convention feed,
// converting each entry to the home-signed convention first. Entries whose
// favorite cannot be attributed to either side are counted and skipped.
func (p *Pipeline) FillFavoriteLines(idx *join.Index, feed []*FavoriteLine, rpt *report.Report) *FillStats {
	st := newFillStats()
	for _, l := range feed {
		g := p.findGame(idx, l.Season, l.Week, l.HomeTeam, l.AwayTeam)
		if g == nil {
			st.NotFound++
			continue
		}
		if g.HasLine() {
			st.AlreadyHad++
			continue
		}
		spread, err := lines.FromFavorite(
			p.engine.Resolver(), l.FavoriteID, l.FavoriteSpread,
			g.HomeTeamCanonical, g.AwayTeamCanonical, l.Season)
		if err != nil {
			st.Ambiguous++
			if rpt != nil {
				rpt.RecordAmbiguousLine()
			}
			log.Debug().
				Str("favorite", l.FavoriteID).
				Int("season", l.Season).
				Str("week", l.Week).
				Err(err).
				Msg("Skipping ambiguous line entry")
			continue
		}
		if join.FillLine(g, spread, l.OverUnder) {
			st.Filled++
			st.BySeason[l.Season]++
		}
	}
	return st
}

// findGame locates a context record for a line entry by either team's
// perspective key. Line feed names go through the full alias tables so
// historical names land on the right franchise.
func (p *Pipeline) findGame(idx *join.Index, season int, week, home, away string) *models.Game {
	for _, team := range []string{home, away} {
		if team == "" {
			continue
		}
		// Raw feed name first: context records store era names, which the
		// resolver would collapse to the current franchise name.
		if g, ok := idx.Lookup(keys.Game(season, week, team)); ok {
			return g
		}
		if f, err := p.engine.Resolver().Resolve(team, season); err == nil {
			if g, ok := idx.Lookup(keys.Game(season, week, f.String())); ok {
				return g
			}
		}
	}
	return nil
}

// Summary renders fill stats for logs.
func (st *FillStats) Summary() string {
	return fmt.Sprintf("filled=%d already_had=%d not_found=%d ambiguous=%d",
		st.Filled, st.AlreadyHad, st.NotFound, st.Ambiguous)
}
