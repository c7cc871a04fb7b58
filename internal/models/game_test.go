package models

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGameInput_ToGame(t *testing.T) {
	homeScore := 27
	awayScore := 24
	spread := 2.5
	rest := 10
	bye := true

	input := &GameInput{
		Season:            2024,
		Week:              "5",
		HomeTeamCanonical: "Seattle Seahawks",
		AwayTeamCanonical: "Los Angeles Rams",
		GameDate:          "2024-10-06",
		HomeScore:         &homeScore,
		AwayScore:         &awayScore,
		Spread:            &spread,
		SpreadResult:      "COVERED",
		IsPrimetime:       true,
		PrimetimeSlot:     "SNF",
		AwayRestDays:      &rest,
		AwayIsByeWeek:     &bye,
	}

	g := input.ToGame()
	assert.Equal(t, 2024, g.Season)
	assert.Equal(t, "5", g.Week)
	require.True(t, g.HomeScore.Valid)
	assert.Equal(t, int32(27), g.HomeScore.Int32)
	assert.Equal(t, 2.5, g.Spread.Float64)
	assert.Equal(t, "COVERED", g.SpreadResult.String)
	assert.True(t, g.IsPrimetime)
	assert.Equal(t, "SNF", g.PrimetimeSlot.String)
	assert.False(t, g.OverUnder.Valid, "Absent pointers stay null")
	assert.False(t, g.HomeIsByeWeek.Valid)
	assert.True(t, g.AwayIsByeWeek.Bool)
}

func TestGame_SideHelpers(t *testing.T) {
	g := &Game{
		HomeRestDays:  sql.NullInt32{Int32: 7, Valid: true},
		AwayRestDays:  sql.NullInt32{Int32: 10, Valid: true},
		AwayIsByeWeek: sql.NullBool{Bool: true, Valid: true},
	}

	assert.Equal(t, int32(7), g.RestDays(true).Int32)
	assert.Equal(t, int32(10), g.RestDays(false).Int32)
	assert.False(t, g.IsByeWeek(true).Valid, "Home bye flag was never set")
	assert.True(t, g.IsByeWeek(false).Bool)
}

func TestGame_HasLine(t *testing.T) {
	g := &Game{}
	assert.False(t, g.HasLine())
	g.Spread = sql.NullFloat64{Float64: 0, Valid: true}
	assert.True(t, g.HasLine(), "A pick'em is still a line")
}
