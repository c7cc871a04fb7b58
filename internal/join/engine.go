// Package join resolves statistical records to game-level context records.
// The context index is built once and is read-only during resolution;
// matching runs an ordered list of strategies so the reconciliation report
// can distinguish confidence tiers instead of conflating all joins.
package join

import (
	"strings"

	"nflgames/reconcile/internal/identity"
	"nflgames/reconcile/internal/keys"
	"nflgames/reconcile/internal/models"

	"github.com/rs/zerolog/log"
)

// Tier is the confidence of a resolved match.
type Tier int

const (
	TierNone Tier = iota
	TierExact
	TierFallback // matched via the opponent-perspective key
	TierFuzzy    // side determined by substring containment, not equality
)

func (t Tier) String() string {
	switch t {
	case TierExact:
		return "exact"
	case TierFallback:
		return "fallback"
	case TierFuzzy:
		return "fuzzy"
	}
	return "none"
}

// Match is a resolved statistical record: the context record it belongs
// to, which side the player's team was, and how confident the join is.
type Match struct {
	Game   *models.Game
	IsHome bool
	Tier   Tier
}

// Index holds every context record under both of its team-perspective
// keys: one game is indexed twice, once per side.
type Index struct {
	byKey map[string]*models.Game
}

// BuildIndex precomputes the context index. Later mutation of the input
// slice does not affect the index; the games themselves are treated as
// read-only.
func BuildIndex(games []*models.Game) *Index {
	idx := &Index{byKey: make(map[string]*models.Game, len(games)*2)}
	for _, g := range games {
		if g.Season <= 0 || g.HomeTeamCanonical == "" || g.AwayTeamCanonical == "" {
			log.Debug().
				Int("season", g.Season).
				Str("week", g.Week).
				Msg("Skipping incomplete context record")
			continue
		}
		idx.byKey[keys.Game(g.Season, g.Week, g.HomeTeamCanonical)] = g
		idx.byKey[keys.Game(g.Season, g.Week, g.AwayTeamCanonical)] = g
	}
	return idx
}

// Lookup probes the index for a single key.
func (idx *Index) Lookup(key string) (*models.Game, bool) {
	g, ok := idx.byKey[key]
	return g, ok
}

// Len reports the number of indexed team-perspective entries.
func (idx *Index) Len() int {
	return len(idx.byKey)
}

// Engine resolves statistical records against a prebuilt context index.
type Engine struct {
	idx      *Index
	resolver *identity.Resolver
}

// NewEngine creates a join engine over the given index and alias resolver.
func NewEngine(idx *Index, resolver *identity.Resolver) *Engine {
	return &Engine{idx: idx, resolver: resolver}
}

// Resolver exposes the engine's identity resolver for per-record
// transforms that share its alias tables.
func (e *Engine) Resolver() *identity.Resolver {
	return e.resolver
}

// Resolve maps one statistical record to at most one context record.
// Strategy order is fixed: the team's own key first, then the
// opponent-perspective fallback. Errors are sentinel-classifiable
// (ErrUnknownIdentity, ErrMalformedKey); a nil match with a nil error
// means the keys simply found no game. The input record is never mutated.
func (e *Engine) Resolve(stat *models.PlayerGameStat) (*Match, error) {
	team, err := e.resolver.Resolve(stat.Team, stat.Season)
	if err != nil {
		return nil, err
	}

	// Opponent resolution is best-effort: an unknown opponent only costs
	// the fallback key, it does not fail the record.
	var opponent identity.Franchise
	if stat.Opponent != "" {
		if opp, err := e.resolver.Resolve(stat.Opponent, stat.Season); err == nil {
			opponent = opp
		}
	}

	candidates, err := keys.Build(stat.Season, stat.Week, stat.SeasonType, team, opponent)
	if err != nil {
		return nil, err
	}

	for _, c := range candidates {
		game, ok := e.idx.Lookup(c.Key)
		if !ok {
			continue
		}

		tier := TierExact
		if c.Fallback {
			tier = TierFallback
		}

		isHome, sideTier, ok := determineSide(team, game)
		if !ok {
			// Key hit but the franchise matches neither side under any
			// heuristic: treat as unmatched rather than guessing.
			continue
		}
		if sideTier == TierFuzzy {
			tier = TierFuzzy
		}

		return &Match{Game: game, IsHome: isHome, Tier: tier}, nil
	}

	return nil, nil
}

// determineSide decides home/away for the resolved franchise. Exact
// franchise-identity equality first; case-insensitive substring
// containment is a deliberate last-resort heuristic for residual alias
// gaps and is reported as a fuzzy match.
func determineSide(team identity.Franchise, game *models.Game) (isHome bool, tier Tier, ok bool) {
	name := team.String()
	switch {
	case name == game.HomeTeamCanonical:
		return true, TierExact, true
	case name == game.AwayTeamCanonical:
		return false, TierExact, true
	}

	lower := strings.ToLower(name)
	switch {
	case fuzzySide(lower, game.HomeTeamCanonical):
		return true, TierFuzzy, true
	case fuzzySide(lower, game.AwayTeamCanonical):
		return false, TierFuzzy, true
	}

	return false, TierNone, false
}

// fuzzySide checks containment in both directions so a nickname-only
// context name ("Rams") still lands against the full franchise name.
func fuzzySide(franchiseLower, gameName string) bool {
	if gameName == "" {
		return false
	}
	g := strings.ToLower(gameName)
	return strings.Contains(g, franchiseLower) || strings.Contains(franchiseLower, g)
}
