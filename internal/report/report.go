// Package report accumulates reconciliation counters during a
// normalization run and renders them for logs and operators.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DefaultSampleCap bounds how many unmatched records a report retains
// verbatim. Counters are always complete; only the samples are capped.
const DefaultSampleCap = 10

// SeasonCounts is the per-season slice of the overall tallies.
type SeasonCounts struct {
	Processed int
	Matched   int
	Fuzzy     int
	Unmatched int
}

// UnmatchedSample is one retained example of a record that found no game.
type UnmatchedSample struct {
	PlayerID string
	Season   int
	Week     int
	Team     string
	Opponent string
	Reason   string
}

// Report tallies one reconciliation run. It is not safe for concurrent
// use; the pipeline is single-threaded by design.
type Report struct {
	Processed int
	Matched   int
	Fuzzy     int // subset of Matched resolved by substring side determination
	Unmatched int

	UnknownIdentities int
	MalformedKeys     int
	AmbiguousLines    int

	BySeason map[int]*SeasonCounts

	sampleCap int
	Samples   []UnmatchedSample
}

// New creates a report retaining at most sampleCap unmatched samples.
// A non-positive cap falls back to DefaultSampleCap.
func New(sampleCap int) *Report {
	if sampleCap <= 0 {
		sampleCap = DefaultSampleCap
	}
	return &Report{
		BySeason:  make(map[int]*SeasonCounts),
		sampleCap: sampleCap,
	}
}

func (r *Report) season(season int) *SeasonCounts {
	sc, ok := r.BySeason[season]
	if !ok {
		sc = &SeasonCounts{}
		r.BySeason[season] = sc
	}
	return sc
}

// RecordMatched counts a resolved record; fuzzy marks substring-side joins.
func (r *Report) RecordMatched(season int, fuzzy bool) {
	r.Processed++
	r.Matched++
	sc := r.season(season)
	sc.Processed++
	sc.Matched++
	if fuzzy {
		r.Fuzzy++
		sc.Fuzzy++
	}
}

// RecordUnmatched counts a record that found no game and retains it as
// a sample while capacity remains. Each record is counted exactly once.
func (r *Report) RecordUnmatched(s UnmatchedSample) {
	r.Processed++
	r.Unmatched++
	sc := r.season(s.Season)
	sc.Processed++
	sc.Unmatched++
	if len(r.Samples) < r.sampleCap {
		r.Samples = append(r.Samples, s)
	}
}

// RecordUnknownIdentity notes an alias-table miss. The record itself is
// still counted via RecordUnmatched by the caller.
func (r *Report) RecordUnknownIdentity() { r.UnknownIdentities++ }

// RecordMalformedKey notes a record whose season/week/team could not
// form a valid join key.
func (r *Report) RecordMalformedKey() { r.MalformedKeys++ }

// RecordAmbiguousLine notes a betting line whose favorite could not be
// attributed to either side of its game.
func (r *Report) RecordAmbiguousLine() { r.AmbiguousLines++ }

// MatchRate is Matched over Processed, 0 when nothing was processed.
func (r *Report) MatchRate() float64 {
	if r.Processed == 0 {
		return 0
	}
	return float64(r.Matched) / float64(r.Processed)
}

// Seasons returns the seasons seen, ascending.
func (r *Report) Seasons() []int {
	out := make([]int, 0, len(r.BySeason))
	for s := range r.BySeason {
		out = append(out, s)
	}
	sort.Ints(out)
	return out
}

// Log emits the report at the given level with per-season breakdown and
// the retained unmatched samples.
func (r *Report) Log(level zerolog.Level) {
	ev := log.WithLevel(level).
		Int("processed", r.Processed).
		Int("matched", r.Matched).
		Int("fuzzy", r.Fuzzy).
		Int("unmatched", r.Unmatched).
		Int("unknown_identities", r.UnknownIdentities).
		Int("malformed_keys", r.MalformedKeys).
		Int("ambiguous_lines", r.AmbiguousLines).
		Float64("match_rate", r.MatchRate())

	seasons := zerolog.Dict()
	for _, s := range r.Seasons() {
		sc := r.BySeason[s]
		seasons.Str(fmt.Sprintf("%d", s),
			fmt.Sprintf("%d/%d matched, %d fuzzy, %d unmatched",
				sc.Matched, sc.Processed, sc.Fuzzy, sc.Unmatched))
	}
	ev.Dict("by_season", seasons)

	ev.Msg("Reconciliation complete")

	for _, s := range r.Samples {
		log.WithLevel(level).
			Str("player_id", s.PlayerID).
			Int("season", s.Season).
			Int("week", s.Week).
			Str("team", s.Team).
			Str("opponent", s.Opponent).
			Str("reason", s.Reason).
			Msg("Unmatched record sample")
	}
}

// String renders a plain-text summary for CLI output.
func (r *Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "processed=%d matched=%d (%.1f%%) fuzzy=%d unmatched=%d\n",
		r.Processed, r.Matched, r.MatchRate()*100, r.Fuzzy, r.Unmatched)
	fmt.Fprintf(&b, "unknown_identities=%d malformed_keys=%d ambiguous_lines=%d\n",
		r.UnknownIdentities, r.MalformedKeys, r.AmbiguousLines)
	for _, s := range r.Seasons() {
		sc := r.BySeason[s]
		fmt.Fprintf(&b, "  %d: %d/%d matched, %d fuzzy, %d unmatched\n",
			s, sc.Matched, sc.Processed, sc.Fuzzy, sc.Unmatched)
	}
	if len(r.Samples) > 0 {
		fmt.Fprintf(&b, "unmatched samples (%d shown):\n", len(r.Samples))
		for _, s := range r.Samples {
			fmt.Fprintf(&b, "  %s season=%d week=%d team=%s opp=%s: %s\n",
				s.PlayerID, s.Season, s.Week, s.Team, s.Opponent, s.Reason)
		}
	}
	return b.String()
}
