package keys

import (
	"errors"
	"testing"

	"nflgames/reconcile/internal/identity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekLabel(t *testing.T) {
	assert.Equal(t, "5", WeekLabel(5, SeasonTypeRegular), "Regular weeks are numeric strings")
	assert.Equal(t, "18", WeekLabel(18, SeasonTypeRegular), "Week 18 in REG stays numeric")
	assert.Equal(t, "WildCard", WeekLabel(18, SeasonTypePost))
	assert.Equal(t, "Division", WeekLabel(19, SeasonTypePost))
	assert.Equal(t, "ConfChamp", WeekLabel(20, SeasonTypePost))
	assert.Equal(t, "SuperBowl", WeekLabel(21, SeasonTypePost))
	assert.Equal(t, "SuperBowl", WeekLabel(22, SeasonTypePost), "Some seasons number the Super Bowl as 22")
	assert.Equal(t, "23", WeekLabel(23, SeasonTypePost), "Unknown postseason ordinal passes through")
}

func TestGameTypeLabel(t *testing.T) {
	label, ok := GameTypeLabel("REG", 7)
	require.True(t, ok)
	assert.Equal(t, "7", label)

	label, ok = GameTypeLabel("DIV", 19)
	require.True(t, ok)
	assert.Equal(t, "Division", label)

	_, ok = GameTypeLabel("PRE", 2)
	assert.False(t, ok, "Preseason game types are not indexed")
}

func TestBuild_OrderAndDeterminism(t *testing.T) {
	got, err := Build(2024, 5, SeasonTypeRegular, identity.Rams, identity.Seahawks)
	require.NoError(t, err)
	require.Len(t, got, 2, "Team key plus opponent fallback")

	assert.Equal(t, "2024-5-Los Angeles Rams", got[0].Key)
	assert.False(t, got[0].Fallback, "Primary key comes first")
	assert.Equal(t, "2024-5-Seattle Seahawks", got[1].Key)
	assert.True(t, got[1].Fallback, "Opponent-perspective key is the fallback")

	again, err := Build(2024, 5, SeasonTypeRegular, identity.Rams, identity.Seahawks)
	require.NoError(t, err)
	assert.Equal(t, got, again, "Identical inputs must yield identical keys")
}

func TestBuild_NoOpponent(t *testing.T) {
	got, err := Build(2023, 19, SeasonTypePost, identity.Chiefs, "")
	require.NoError(t, err)
	require.Len(t, got, 1, "No fallback without a known opponent")
	assert.Equal(t, "2023-Division-Kansas City Chiefs", got[0].Key)
}

func TestBuild_Malformed(t *testing.T) {
	_, err := Build(0, 5, SeasonTypeRegular, identity.Rams, "")
	assert.True(t, errors.Is(err, ErrMalformedKey), "Zero season is malformed")

	_, err = Build(2024, -1, SeasonTypeRegular, identity.Rams, "")
	assert.True(t, errors.Is(err, ErrMalformedKey), "Negative week is malformed")

	_, err = Build(2024, 5, SeasonTypeRegular, "", identity.Rams)
	assert.True(t, errors.Is(err, ErrMalformedKey), "Missing team is malformed")
}
