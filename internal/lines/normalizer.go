// Package lines converts heterogeneous betting-line representations into
// the one canonical convention the rest of the pipeline relies on:
// a home-perspective signed spread where positive means the home side is
// favored.
package lines

import (
	"errors"
	"fmt"

	"nflgames/reconcile/internal/identity"
)

// ErrAmbiguousFavorite is returned when a favorite identifier resolves to
// neither the home nor the away franchise of the same game. This is
// surfaced, not swallowed: it indicates a gap in the franchise alias
// tables.
var ErrAmbiguousFavorite = errors.New("favorite matches neither home nor away franchise")

// PickEven is the favorite identifier historical feeds use for a pick'em
// line.
const PickEven = "PICK"

// FromHomeSigned accepts a line already expressed as a home-perspective
// signed spread. Pass-through shape; it exists so both input shapes flow
// through one package.
func FromHomeSigned(spread float64) float64 {
	return spread
}

// FromFavorite converts a favorite-id + spread-against-the-favorite line to
// the home-perspective signed convention. The favorite's spread is
// non-positive in the source data (e.g. -3 means favored by 3):
//
//	home favored: -3 becomes +3 (positive = home favored)
//	away favored: -3 stays -3
//	pick/even:    0
//
// homeName and awayName are the game's team name strings as the line feed
// carries them; the resolver's historical-name aliases make relocation-era
// rows convert correctly.
func FromFavorite(r *identity.Resolver, favoriteID string, favoriteSpread float64, homeName, awayName string, season int) (float64, error) {
	if favoriteID == "" || favoriteID == PickEven {
		return 0, nil
	}

	favorite, err := r.Resolve(favoriteID, season)
	if err != nil {
		return 0, fmt.Errorf("favorite %q: %w", favoriteID, ErrAmbiguousFavorite)
	}

	home, homeErr := r.Resolve(homeName, season)
	away, awayErr := r.Resolve(awayName, season)

	switch {
	case homeErr == nil && favorite == home:
		return -favoriteSpread, nil
	case awayErr == nil && favorite == away:
		return favoriteSpread, nil
	}

	return 0, fmt.Errorf("favorite %q vs %q / %q: %w", favoriteID, homeName, awayName, ErrAmbiguousFavorite)
}

// FavoredSide reports which side a home-signed spread favors: 1 for home,
// -1 for away, 0 for a pick'em. Used to round-trip conversions in
// diagnostics.
func FavoredSide(homeSpread float64) int {
	switch {
	case homeSpread > 0:
		return 1
	case homeSpread < 0:
		return -1
	}
	return 0
}
