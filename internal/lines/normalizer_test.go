package lines

import (
	"errors"
	"testing"

	"nflgames/reconcile/internal/identity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromFavorite_HomeFavored(t *testing.T) {
	r := identity.DefaultResolver()

	spread, err := FromFavorite(r, "MIA", -3, "Miami Dolphins", "Buffalo Bills", 1985)
	require.NoError(t, err)
	assert.Equal(t, 3.0, spread, "Home favorite by 3 converts to +3 home-signed")
}

func TestFromFavorite_AwayFavored(t *testing.T) {
	r := identity.DefaultResolver()

	spread, err := FromFavorite(r, "MIA", -3, "Buffalo Bills", "Miami Dolphins", 1985)
	require.NoError(t, err)
	assert.Equal(t, -3.0, spread, "Away favorite by 3 stays -3 home-signed")
}

func TestFromFavorite_Pick(t *testing.T) {
	r := identity.DefaultResolver()

	spread, err := FromFavorite(r, PickEven, 0, "Chicago Bears", "Green Bay Packers", 1990)
	require.NoError(t, err)
	assert.Equal(t, 0.0, spread, "Pick'em line is zero")

	spread, err = FromFavorite(r, "", -2, "Chicago Bears", "Green Bay Packers", 1990)
	require.NoError(t, err)
	assert.Equal(t, 0.0, spread, "Empty favorite id is treated as even")
}

func TestFromFavorite_HistoricalNames(t *testing.T) {
	r := identity.DefaultResolver()

	// Favorite id is the legacy abbreviation; home team is the historical
	// name. Both map to the Raiders franchise.
	spread, err := FromFavorite(r, "OAK", -6.5, "Los Angeles Raiders", "Denver Broncos", 1984)
	require.NoError(t, err)
	assert.Equal(t, 6.5, spread, "Historical names must land on the same franchise")
}

func TestFromFavorite_Ambiguous(t *testing.T) {
	r := identity.DefaultResolver()

	_, err := FromFavorite(r, "MIA", -3, "Chicago Bears", "Green Bay Packers", 1990)
	require.Error(t, err, "Favorite outside the game must fail")
	assert.True(t, errors.Is(err, ErrAmbiguousFavorite), "Error should wrap ErrAmbiguousFavorite")

	_, err = FromFavorite(r, "ZZZ", -3, "Chicago Bears", "Green Bay Packers", 1990)
	assert.True(t, errors.Is(err, ErrAmbiguousFavorite), "Unresolvable favorite id is ambiguous")
}

func TestFromFavorite_RoundTrip(t *testing.T) {
	r := identity.DefaultResolver()

	// Converting and re-deriving "who is favored" from the sign must
	// reproduce the original favorite.
	spread, err := FromFavorite(r, "KC", -2.5, "Kansas City Chiefs", "Buffalo Bills", 2024)
	require.NoError(t, err)
	assert.Equal(t, 1, FavoredSide(spread), "Home favorite round-trips to home side")

	spread, err = FromFavorite(r, "BUF", -2.5, "Kansas City Chiefs", "Buffalo Bills", 2024)
	require.NoError(t, err)
	assert.Equal(t, -1, FavoredSide(spread), "Away favorite round-trips to away side")

	assert.Equal(t, 0, FavoredSide(0), "Pick'em has no favored side")
}
