package identity

import (
	"errors"
	"fmt"
	"strings"
)

// Franchise is the canonical, time-invariant name for a team. A franchise
// keeps the same identity across relocations and renames (e.g. the St. Louis
// Rams and Los Angeles Rams are one franchise).
type Franchise string

func (f Franchise) String() string {
	return string(f)
}

// ErrUnknownIdentity is returned when no alias table entry matches a
// provider team token. Callers must not guess: a record with an unresolved
// identity proceeds without a franchise and therefore without a join.
var ErrUnknownIdentity = errors.New("unknown team identity")

// CodeAlias maps a provider abbreviation to a franchise within a validity
// window of seasons. ThroughSeason == 0 means the alias is still current.
type CodeAlias struct {
	Code          string
	Franchise     Franchise
	FromSeason    int
	ThroughSeason int
}

// Resolver maps provider team tokens (abbreviation codes or full name
// strings) to canonical franchises. Alias tables are injected at
// construction and never mutated, so a resolver is safe for concurrent
// reads and trivially testable with substitute tables.
type Resolver struct {
	codes map[string][]CodeAlias
	names map[string]Franchise
}

// NewResolver builds a resolver from an abbreviation-code table and a
// name-string table. The tables are copied; later mutation of the inputs
// does not affect the resolver.
func NewResolver(codes []CodeAlias, names map[string]Franchise) *Resolver {
	r := &Resolver{
		codes: make(map[string][]CodeAlias, len(codes)),
		names: make(map[string]Franchise, len(names)),
	}
	for _, a := range codes {
		r.codes[a.Code] = append(r.codes[a.Code], a)
	}
	for name, fr := range names {
		r.names[name] = fr
	}
	return r
}

// Resolve maps a provider team code or name to its franchise. The season
// disambiguates codes that pointed at different franchises in different
// eras. Season 0 means "unknown"; in that case the most recent era wins,
// which is a documented limitation rather than an error.
//
// Lookup order: windowed code aliases first, then the full-name table
// (which also carries legacy abbreviations used by historical line feeds).
func (r *Resolver) Resolve(token string, season int) (Franchise, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", fmt.Errorf("empty team token: %w", ErrUnknownIdentity)
	}

	if aliases, ok := r.codes[token]; ok {
		if season > 0 {
			for _, a := range aliases {
				if season >= a.FromSeason && (a.ThroughSeason == 0 || season <= a.ThroughSeason) {
					return a.Franchise, nil
				}
			}
		} else {
			// No temporal context: pick the most recent era.
			best := CodeAlias{FromSeason: -1}
			for _, a := range aliases {
				if a.FromSeason > best.FromSeason {
					best = a
				}
			}
			if best.FromSeason >= 0 {
				return best.Franchise, nil
			}
		}
		// Code known but season outside every window: fall through to the
		// name table, which covers the legacy era.
	}

	if fr, ok := r.names[token]; ok {
		return fr, nil
	}

	return "", fmt.Errorf("team token %q (season %d): %w", token, season, ErrUnknownIdentity)
}

// ResolveName looks the token up in the name table only. Used where a feed
// is known to key teams by full name strings.
func (r *Resolver) ResolveName(name string) (Franchise, error) {
	if fr, ok := r.names[strings.TrimSpace(name)]; ok {
		return fr, nil
	}
	return "", fmt.Errorf("team name %q: %w", name, ErrUnknownIdentity)
}
