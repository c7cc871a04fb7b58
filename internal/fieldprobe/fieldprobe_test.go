package fieldprobe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProbe_AliasOrder(t *testing.T) {
	m := Mapping{Canonical: "player_id", Aliases: []string{"player_id", "gsis_id"}}

	row := map[string]interface{}{"gsis_id": "00-0031234"}
	got, ok := String(row, m)
	require.True(t, ok, "Second alias should be probed")
	assert.Equal(t, "00-0031234", got)

	// When both are present, the first alias wins.
	row["player_id"] = "00-0099999"
	got, ok = String(row, m)
	require.True(t, ok)
	assert.Equal(t, "00-0099999", got, "Earlier aliases take precedence")
}

func TestProbe_NilValuesSkipped(t *testing.T) {
	m := Mapping{Canonical: "week", Aliases: []string{"week", "game_week"}}
	row := map[string]interface{}{"week": nil, "game_week": float64(5)}

	got, ok := Int(row, m)
	require.True(t, ok, "Nil values should fall through to the next alias")
	assert.Equal(t, 5, got)
}

func TestProbe_Missing(t *testing.T) {
	m := Mapping{Canonical: "season", Aliases: []string{"season"}}

	_, ok := Int(map[string]interface{}{}, m)
	assert.False(t, ok, "Absent field reports no value")

	_, ok = String(map[string]interface{}{"season": float64(2024)}, m)
	assert.False(t, ok, "Type mismatch reports no value")
}

func TestNumericCoercion(t *testing.T) {
	m := Mapping{Canonical: "snaps", Aliases: []string{"snaps"}}

	got, ok := Int(map[string]interface{}{"snaps": float64(61)}, m)
	require.True(t, ok)
	assert.Equal(t, 61, got, "JSON float64 coerces to int")

	f, ok := Float(map[string]interface{}{"snaps": 61}, m)
	require.True(t, ok)
	assert.Equal(t, 61.0, f, "Go int coerces to float")
}
