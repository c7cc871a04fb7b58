package identity

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolver_ModernCode(t *testing.T) {
	r := DefaultResolver()

	fr, err := r.Resolve("LAR", 2024)
	require.NoError(t, err, "Should resolve modern code")
	assert.Equal(t, Rams, fr, "LAR in 2024 should be the Rams")

	fr, err = r.Resolve("KC", 2023)
	require.NoError(t, err, "Should resolve modern code")
	assert.Equal(t, Chiefs, fr, "KC should be the Chiefs")
}

func TestResolver_RelocationWindows(t *testing.T) {
	r := DefaultResolver()

	fr, err := r.Resolve("STL", 2010)
	require.NoError(t, err, "STL should be valid in 2010")
	assert.Equal(t, Rams, fr, "STL in 2010 should be the Rams franchise")

	fr, err = r.Resolve("SD", 2015)
	require.NoError(t, err)
	assert.Equal(t, Chargers, fr, "SD in 2015 should be the Chargers franchise")

	fr, err = r.Resolve("OAK", 2019)
	require.NoError(t, err)
	assert.Equal(t, Raiders, fr, "OAK in 2019 should be the Raiders franchise")

	fr, err = r.Resolve("LV", 2021)
	require.NoError(t, err)
	assert.Equal(t, Raiders, fr, "LV in 2021 should be the Raiders franchise")
}

func TestResolver_LegacyEraFallsToNameTable(t *testing.T) {
	r := DefaultResolver()

	// 1979 predates the code feeds, so the code windows miss and the
	// name table (which carries legacy abbreviations) must answer.
	fr, err := r.Resolve("LAR", 1979)
	require.NoError(t, err, "Legacy-era code should resolve via the name table")
	assert.Equal(t, Rams, fr, "LAR in 1979 should still be the Rams franchise")

	fr, err = r.Resolve("Houston Oilers", 1987)
	require.NoError(t, err, "Historical full name should resolve")
	assert.Equal(t, Titans, fr, "Oilers are the Titans franchise")

	fr, err = r.Resolve("St. Louis Cardinals", 1982)
	require.NoError(t, err)
	assert.Equal(t, Cardinals, fr, "St. Louis Cardinals are the Cardinals franchise")
}

func TestResolver_NoTemporalContextPicksMostRecentEra(t *testing.T) {
	codes := []CodeAlias{
		{Code: "STL", Franchise: Cardinals, FromSeason: 1960, ThroughSeason: 1987},
		{Code: "STL", Franchise: Rams, FromSeason: 1995, ThroughSeason: 2015},
	}
	r := NewResolver(codes, nil)

	fr, err := r.Resolve("STL", 0)
	require.NoError(t, err, "Unknown season should not fail for a known code")
	assert.Equal(t, Rams, fr, "Most recent era should win when no season is given")

	fr, err = r.Resolve("STL", 1975)
	require.NoError(t, err)
	assert.Equal(t, Cardinals, fr, "Season inside the older window should pick the older franchise")
}

func TestResolver_UnknownToken(t *testing.T) {
	r := DefaultResolver()

	_, err := r.Resolve("ZZZ", 2024)
	require.Error(t, err, "Unknown code should fail explicitly")
	assert.True(t, errors.Is(err, ErrUnknownIdentity), "Error should wrap ErrUnknownIdentity")

	_, err = r.Resolve("", 2024)
	assert.True(t, errors.Is(err, ErrUnknownIdentity), "Empty token should fail explicitly")
}

func TestResolver_Deterministic(t *testing.T) {
	r := DefaultResolver()

	first, err := r.Resolve("LAR", 2024)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := r.Resolve("LAR", 2024)
		require.NoError(t, err)
		assert.Equal(t, first, again, "Identical inputs must return identical identities")
	}
}

func TestResolver_ResolveName(t *testing.T) {
	r := DefaultResolver()

	fr, err := r.ResolveName("Washington Redskins")
	require.NoError(t, err)
	assert.Equal(t, Commanders, fr)

	_, err = r.ResolveName("Canton Bulldogs")
	assert.True(t, errors.Is(err, ErrUnknownIdentity), "Defunct team should not resolve")
}
