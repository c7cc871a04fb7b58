package pipeline

import (
	"database/sql"
	"testing"

	"nflgames/reconcile/internal/identity"
	"nflgames/reconcile/internal/join"
	"nflgames/reconcile/internal/keys"
	"nflgames/reconcile/internal/models"
	"nflgames/reconcile/internal/report"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptrF(v float64) *float64 { return &v }
func ptrI(v int) *int         { return &v }

func contextGame(season int, week, home, away string, homeScore, awayScore int) *models.Game {
	return &models.Game{
		Season:            season,
		Week:              week,
		HomeTeamCanonical: home,
		AwayTeamCanonical: away,
		HomeScore:         sql.NullInt32{Int32: int32(homeScore), Valid: true},
		AwayScore:         sql.NullInt32{Int32: int32(awayScore), Valid: true},
	}
}

func newTestPipeline(games ...*models.Game) (*Pipeline, *join.Index) {
	idx := join.BuildIndex(games)
	return New(join.NewEngine(idx, identity.DefaultResolver()), 10), idx
}

func statRecord(playerID, team, opp string, season, week int) *models.PlayerGameStat {
	return &models.PlayerGameStat{
		PlayerID:   playerID,
		PlayerName: "T.Player",
		Position:   "WR",
		Season:     season,
		Week:       week,
		SeasonType: keys.SeasonTypeRegular,
		Team:       team,
		Opponent:   opp,
		Stats:      map[string]interface{}{"receiving_yards": 112.0},
	}
}

func TestNormalize_MatchedAwayPerspective(t *testing.T) {
	g := contextGame(2024, "5", "Seattle Seahawks", "Los Angeles Rams", 27, 24)
	g.Spread = sql.NullFloat64{Float64: 2.5, Valid: true} // home favored
	g.OverUnder = sql.NullFloat64{Float64: 48.5, Valid: true}
	g.SpreadResult = sql.NullString{String: "COVERED", Valid: true}
	g.OUResult = sql.NullString{String: "OVER", Valid: true}
	g.AwayRestDays = sql.NullInt32{Int32: 10, Valid: true}
	g.AwayIsByeWeek = sql.NullBool{Bool: true, Valid: true}

	p, _ := newTestPipeline(g)
	out, rpt := p.Normalize(
		[]*models.PlayerGameStat{statRecord("00-0031234", "LAR", "SEA", 2024, 5)},
		nil, nil)

	require.Len(t, out, 1)
	pg := out[0]
	require.True(t, pg.Enriched())
	assert.False(t, pg.IsHome.Bool)
	assert.Equal(t, int32(24), pg.TeamScore.Int32, "Away player's team score is the away score")
	assert.Equal(t, int32(27), pg.OpponentScore.Int32)
	assert.Equal(t, "L", pg.GameResult.String)
	assert.Equal(t, -2.5, pg.Spread.Float64, "Home-signed line flips for the away side")
	assert.Equal(t, "LOST", pg.SpreadResult.String, "Away side lost the cover the home side won")
	assert.Equal(t, "OVER", pg.OUResult.String, "Total result does not depend on side")
	assert.Equal(t, int32(10), pg.RestDays.Int32)
	assert.True(t, pg.IsByeWeek.Bool)
	assert.Equal(t, "exact", pg.MatchTier.String)
	assert.Equal(t, "Los Angeles Rams", pg.TeamCanonical.String)
	assert.Equal(t, 112.0, pg.Stats["receiving_yards"])

	assert.Equal(t, 1, rpt.Processed)
	assert.Equal(t, 1, rpt.Matched)
	assert.Equal(t, 0, rpt.Unmatched)
}

func TestNormalize_UnknownTeamNeverDropsRecord(t *testing.T) {
	p, _ := newTestPipeline(contextGame(2024, "5", "Seattle Seahawks", "Los Angeles Rams", 27, 24))
	out, rpt := p.Normalize(
		[]*models.PlayerGameStat{statRecord("00-0031234", "ZZZ", "SEA", 2024, 5)},
		nil, nil)

	require.Len(t, out, 1, "Unresolvable records are kept, not dropped")
	pg := out[0]
	assert.False(t, pg.Enriched(), "No enrichment without a match")
	assert.False(t, pg.TeamCanonical.Valid)
	assert.Equal(t, "ZZZ", pg.TeamCode, "Raw code is preserved for diagnosis")
	assert.False(t, pg.MatchTier.Valid)

	assert.Equal(t, 1, rpt.Processed, "Counted once, not once per failure mode")
	assert.Equal(t, 1, rpt.Unmatched)
	assert.Equal(t, 1, rpt.UnknownIdentities)
	require.Len(t, rpt.Samples, 1)
	assert.Equal(t, "unknown team identity", rpt.Samples[0].Reason)
}

func TestNormalize_MalformedKeyCounted(t *testing.T) {
	p, _ := newTestPipeline(contextGame(2024, "5", "Seattle Seahawks", "Los Angeles Rams", 27, 24))
	s := statRecord("00-0031234", "LAR", "SEA", 2024, 5)
	s.Week = -1 // missing week in the feed
	out, rpt := p.Normalize([]*models.PlayerGameStat{s}, nil, nil)

	require.Len(t, out, 1)
	assert.False(t, out[0].Enriched())
	assert.Equal(t, 1, rpt.MalformedKeys)
	assert.Equal(t, 1, rpt.Unmatched)
}

func TestNormalize_MetaAndSnapsMerge(t *testing.T) {
	p, _ := newTestPipeline(contextGame(2024, "5", "Seattle Seahawks", "Los Angeles Rams", 27, 24))

	college := "Ohio State"
	snaps := 61
	pct := 0.88
	out, _ := p.Normalize(
		[]*models.PlayerGameStat{statRecord("00-0031234", "LAR", "SEA", 2024, 5)},
		[]*models.PlayerMeta{{PlayerID: "00-0031234", College: &college, DraftYear: ptrI(2014)}},
		[]*models.SnapShare{{PlayerID: "00-0031234", Season: 2024, Week: 5, OffenseSnaps: &snaps, OffensePct: &pct}},
	)

	pg := out[0]
	assert.Equal(t, "Ohio State", pg.College.String)
	assert.Equal(t, int32(2014), pg.DraftYear.Int32)
	assert.Equal(t, int32(61), pg.OffenseSnaps.Int32)
	assert.Equal(t, 0.88, pg.OffensePct.Float64)
	assert.False(t, pg.DefenseSnaps.Valid, "Absent shares stay null")
}

func TestNormalize_SnapKeyIsExact(t *testing.T) {
	p, _ := newTestPipeline(contextGame(2024, "5", "Seattle Seahawks", "Los Angeles Rams", 27, 24))
	snaps := 61
	out, _ := p.Normalize(
		[]*models.PlayerGameStat{statRecord("00-0031234", "LAR", "SEA", 2024, 5)},
		nil,
		[]*models.SnapShare{{PlayerID: "00-0031234", Season: 2024, Week: 6, OffenseSnaps: &snaps}},
	)
	assert.False(t, out[0].OffenseSnaps.Valid, "A different week's snaps must not merge")
}

func TestNormalize_Idempotent(t *testing.T) {
	g := contextGame(2024, "5", "Seattle Seahawks", "Los Angeles Rams", 27, 24)
	p, _ := newTestPipeline(g)
	stats := []*models.PlayerGameStat{statRecord("00-0031234", "LAR", "SEA", 2024, 5)}

	first, rpt1 := p.Normalize(stats, nil, nil)
	second, rpt2 := p.Normalize(stats, nil, nil)

	assert.Equal(t, first, second, "Same inputs, same outputs")
	assert.Equal(t, rpt1.Processed, rpt2.Processed)
	assert.Equal(t, rpt1.Matched, rpt2.Matched)
}

func TestFillScheduleLines_OnlyFill(t *testing.T) {
	g := contextGame(2024, "5", "Seattle Seahawks", "Los Angeles Rams", 27, 24)
	p, idx := newTestPipeline(g)

	feed := []*ScheduleLine{{
		Season: 2024, Week: "5",
		HomeTeam: "Seattle Seahawks", AwayTeam: "Los Angeles Rams",
		Spread: ptrF(2.5), OverUnder: ptrF(48.5),
	}}

	st := p.FillScheduleLines(idx, feed)
	assert.Equal(t, 1, st.Filled)
	assert.Equal(t, 2.5, g.Spread.Float64)
	assert.Equal(t, "COVERED", g.SpreadResult.String)
	assert.Equal(t, 1, st.BySeason[2024])

	// Second pass with a different value is a no-op.
	feed[0].Spread = ptrF(-7)
	st = p.FillScheduleLines(idx, feed)
	assert.Equal(t, 0, st.Filled)
	assert.Equal(t, 1, st.AlreadyHad)
	assert.Equal(t, 2.5, g.Spread.Float64, "First value wins; refills never overwrite")
}

func TestFillFavoriteLines_Conversion(t *testing.T) {
	home := contextGame(2024, "5", "Miami Dolphins", "Buffalo Bills", 31, 21)
	away := contextGame(2024, "5", "New York Jets", "Denver Broncos", 10, 21)
	p, idx := newTestPipeline(home, away)

	feed := []*FavoriteLine{
		{Season: 2024, Week: "5", HomeTeam: "Miami Dolphins", AwayTeam: "Buffalo Bills",
			FavoriteID: "MIA", FavoriteSpread: -3, OverUnder: ptrF(47)},
		{Season: 2024, Week: "5", HomeTeam: "New York Jets", AwayTeam: "Denver Broncos",
			FavoriteID: "DEN", FavoriteSpread: -2.5},
		{Season: 2024, Week: "5", HomeTeam: "New York Jets", AwayTeam: "Denver Broncos",
			FavoriteID: "PICK", FavoriteSpread: 0},
	}

	st := p.FillFavoriteLines(idx, feed, nil)
	assert.Equal(t, 2, st.Filled)
	assert.Equal(t, 1, st.AlreadyHad, "Pick entry arrives after the game has a line")
	assert.Equal(t, 3.0, home.Spread.Float64, "Home favorite flips to positive")
	assert.Equal(t, -2.5, away.Spread.Float64, "Away favorite stays negative")
	assert.Equal(t, 47.0, home.OverUnder.Float64)
}

func TestFillFavoriteLines_AmbiguousCountedAndSkipped(t *testing.T) {
	g := contextGame(2024, "5", "Miami Dolphins", "Buffalo Bills", 31, 21)
	p, idx := newTestPipeline(g)
	rpt := report.New(10)

	feed := []*FavoriteLine{{
		Season: 2024, Week: "5", HomeTeam: "Miami Dolphins", AwayTeam: "Buffalo Bills",
		FavoriteID: "KC", FavoriteSpread: -3, // wrong game's favorite
	}}

	st := p.FillFavoriteLines(idx, feed, rpt)
	assert.Equal(t, 1, st.Ambiguous)
	assert.Equal(t, 0, st.Filled)
	assert.False(t, g.Spread.Valid, "Ambiguous entries leave the record untouched")
	assert.Equal(t, 1, rpt.AmbiguousLines)
}

func TestFillLines_HistoricalNames(t *testing.T) {
	g := contextGame(1984, "5", "Los Angeles Raiders", "Seattle Seahawks", 24, 14)
	p, idx := newTestPipeline(g)

	feed := []*FavoriteLine{{
		Season: 1984, Week: "5",
		HomeTeam: "Los Angeles Raiders", AwayTeam: "Seattle Seahawks",
		FavoriteID: "OAK", FavoriteSpread: -6.5,
	}}

	st := p.FillFavoriteLines(idx, feed, nil)
	require.Equal(t, 1, st.Filled, "Relocation-era favorite code resolves to the host franchise")
	assert.Equal(t, 6.5, g.Spread.Float64)
}
