// Package outcome derives betting results from final scores and normalized
// lines. These two formulas are the single source of truth: every provider's
// lines pass through the same math once they carry the home-signed
// convention.
package outcome

import "database/sql"

// Spread results.
const (
	SpreadCovered = "COVERED"
	SpreadLost    = "LOST"
	Push          = "PUSH"
)

// Total results.
const (
	TotalOver  = "OVER"
	TotalUnder = "UNDER"
)

// SpreadResult reports whether the home side covered a home-signed spread.
// margin = (homeScore - awayScore) + spread; COVERED when positive, LOST
// when negative, PUSH at exactly zero. Invalid when any input is missing.
func SpreadResult(homeScore, awayScore sql.NullInt32, spread sql.NullFloat64) sql.NullString {
	if !homeScore.Valid || !awayScore.Valid || !spread.Valid {
		return sql.NullString{}
	}

	margin := float64(homeScore.Int32-awayScore.Int32) + spread.Float64
	switch {
	case margin > 0:
		return sql.NullString{String: SpreadCovered, Valid: true}
	case margin < 0:
		return sql.NullString{String: SpreadLost, Valid: true}
	}
	return sql.NullString{String: Push, Valid: true}
}

// TotalResult compares the summed score against the total line. Invalid
// when any input is missing.
func TotalResult(homeScore, awayScore sql.NullInt32, total sql.NullFloat64) sql.NullString {
	if !homeScore.Valid || !awayScore.Valid || !total.Valid {
		return sql.NullString{}
	}

	sum := float64(homeScore.Int32 + awayScore.Int32)
	switch {
	case sum > total.Float64:
		return sql.NullString{String: TotalOver, Valid: true}
	case sum < total.Float64:
		return sql.NullString{String: TotalUnder, Valid: true}
	}
	return sql.NullString{String: Push, Valid: true}
}

// GameResult reports W/L/T from the perspective of the side that scored
// teamScore. Invalid when either score is missing.
func GameResult(teamScore, opponentScore sql.NullInt32) sql.NullString {
	if !teamScore.Valid || !opponentScore.Valid {
		return sql.NullString{}
	}
	switch {
	case teamScore.Int32 > opponentScore.Int32:
		return sql.NullString{String: "W", Valid: true}
	case teamScore.Int32 < opponentScore.Int32:
		return sql.NullString{String: "L", Valid: true}
	}
	return sql.NullString{String: "T", Valid: true}
}
