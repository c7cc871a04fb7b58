package join

import (
	"database/sql"

	"nflgames/reconcile/internal/models"
	"nflgames/reconcile/internal/outcome"
)

// FillLine applies the only-fill policy to a context record's betting
// fields: a present, non-null spread is never overwritten, which makes
// line imports idempotent and safe to re-run against additional sources.
// Outcome fields are recomputed from the shared formulas whenever a line
// is filled. Returns true when the record was modified.
func FillLine(g *models.Game, homeSpread float64, total *float64) bool {
	if g.HasLine() {
		return false
	}

	g.Spread = sql.NullFloat64{Float64: homeSpread, Valid: true}
	if total != nil && !g.OverUnder.Valid {
		g.OverUnder = sql.NullFloat64{Float64: *total, Valid: true}
	}
	g.SpreadResult = outcome.SpreadResult(g.HomeScore, g.AwayScore, g.Spread)
	g.OUResult = outcome.TotalResult(g.HomeScore, g.AwayScore, g.OverUnder)
	return true
}

// RecomputeOutcomes fills missing outcome fields from scores and lines
// without touching precomputed values (only-fill).
func RecomputeOutcomes(g *models.Game) {
	if !g.SpreadResult.Valid {
		g.SpreadResult = outcome.SpreadResult(g.HomeScore, g.AwayScore, g.Spread)
	}
	if !g.OUResult.Valid {
		g.OUResult = outcome.TotalResult(g.HomeScore, g.AwayScore, g.OverUnder)
	}
}
