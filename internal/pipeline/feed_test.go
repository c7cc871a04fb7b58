package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScheduleLine(t *testing.T) {
	row := map[string]interface{}{
		"season":      2024.0,
		"week":        5.0,
		"game_type":   "REG",
		"home_team":   "Seattle Seahawks",
		"away_team":   "Los Angeles Rams",
		"spread_line": 2.5,
		"total_line":  48.5,
	}

	l, err := ParseScheduleLine(row)
	require.NoError(t, err)
	assert.Equal(t, 2024, l.Season)
	assert.Equal(t, "5", l.Week)
	assert.Equal(t, "Seattle Seahawks", l.HomeTeam)
	require.NotNil(t, l.Spread)
	assert.Equal(t, 2.5, *l.Spread)
	require.NotNil(t, l.OverUnder)
	assert.Equal(t, 48.5, *l.OverUnder)
}

func TestParseScheduleLine_PostseasonType(t *testing.T) {
	row := map[string]interface{}{
		"season":    2023.0,
		"week":      20.0,
		"game_type": "DIV",
		"home_team": "Kansas City Chiefs",
		"away_team": "Buffalo Bills",
	}

	l, err := ParseScheduleLine(row)
	require.NoError(t, err)
	assert.Equal(t, "Division", l.Week)
	assert.Nil(t, l.Spread, "Rows without a line still parse")
}

func TestParseScheduleLine_Malformed(t *testing.T) {
	_, err := ParseScheduleLine(map[string]interface{}{"week": 5.0, "home_team": "X"})
	assert.Error(t, err, "Missing season is rejected")

	_, err = ParseScheduleLine(map[string]interface{}{"season": 2024.0, "week": 5.0})
	assert.Error(t, err, "Missing home team is rejected")

	_, err = ParseScheduleLine(map[string]interface{}{"season": 2024.0, "week": 5.0, "game_type": "XX", "home_team": "X"})
	assert.Error(t, err, "Unknown game type is rejected")
}

func TestParseFavoriteLine(t *testing.T) {
	row := map[string]interface{}{
		"schedule_season":  1984.0,
		"schedule_week":    "5",
		"team_home":        "Los Angeles Raiders",
		"team_away":        "Seattle Seahawks",
		"team_favorite_id": "OAK",
		"spread_favorite":  -6.5,
		"over_under_line":  41.0,
	}

	l, err := ParseFavoriteLine(row)
	require.NoError(t, err)
	assert.Equal(t, 1984, l.Season)
	assert.Equal(t, "5", l.Week)
	assert.Equal(t, "OAK", l.FavoriteID)
	assert.Equal(t, -6.5, l.FavoriteSpread)
	require.NotNil(t, l.OverUnder)
	assert.Equal(t, 41.0, *l.OverUnder)
}

func TestParseFavoriteLine_PlayoffSpellings(t *testing.T) {
	cases := map[string]string{
		"Wildcard":   "WildCard",
		"Division":   "Division",
		"Conference": "ConfChamp",
		"Superbowl":  "SuperBowl",
	}
	for raw, want := range cases {
		l, err := ParseFavoriteLine(map[string]interface{}{
			"schedule_season": 2005.0,
			"schedule_week":   raw,
			"team_home":       "New England Patriots",
			"team_away":       "Jacksonville Jaguars",
		})
		require.NoError(t, err, raw)
		assert.Equal(t, want, l.Week, raw)
	}
}

func TestParseFavoriteLine_NumericWeekAsFloat(t *testing.T) {
	l, err := ParseFavoriteLine(map[string]interface{}{
		"schedule_season": 2010.0,
		"schedule_week":   14.0,
		"team_home":       "Chicago Bears",
		"team_away":       "New England Patriots",
	})
	require.NoError(t, err)
	assert.Equal(t, "14", l.Week)
}

func TestIsPlayoffRow(t *testing.T) {
	assert.True(t, IsPlayoffRow(map[string]interface{}{"schedule_playoff": true}))
	assert.False(t, IsPlayoffRow(map[string]interface{}{"schedule_playoff": false}))
	assert.False(t, IsPlayoffRow(map[string]interface{}{}))
}
