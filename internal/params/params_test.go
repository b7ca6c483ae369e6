package params

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var convTable = Table{
	{Key: "c", Default: nil},
	{Key: "k", Default: 3},
	{Key: "p", Default: "half"},
	{Key: "s", Default: 1},
	{Key: "b", Default: true},
}

func TestResolve_DefaultsOnly(t *testing.T) {
	resolved, name, err := Resolve("Conv", convTable, nil)
	require.NoError(t, err)
	assert.Empty(t, name)

	// Every table key must be bound exactly once.
	assert.Len(t, resolved, len(convTable))
	assert.True(t, resolved.IsNil("c"))
	assert.Equal(t, 3, resolved.Int("k"))
	assert.Equal(t, "half", resolved["p"])
	assert.Equal(t, 1, resolved.Int("s"))
	assert.True(t, resolved.Bool("b"))
}

func TestResolve_PositionalBindInOrder(t *testing.T) {
	resolved, _, err := Resolve("Conv", convTable, []any{64, 5})
	require.NoError(t, err)

	assert.Equal(t, 64, resolved.Int("c"))
	assert.Equal(t, 5, resolved.Int("k"))
	// Unspecified keys keep their defaults.
	assert.Equal(t, "half", resolved["p"])
	assert.Equal(t, 1, resolved.Int("s"))
}

func TestResolve_KeywordBeatsPositionalAndDefault(t *testing.T) {
	resolved, _, err := Resolve("Conv", convTable, []any{
		64, 5,
		KV{Key: "k", Value: 7},    // overrides the positional 5
		KV{Key: "s", Value: 2},    // overrides the default 1
		KV{Key: "b", Value: false},
	})
	require.NoError(t, err)

	assert.Equal(t, 64, resolved.Int("c"))
	assert.Equal(t, 7, resolved.Int("k"))
	assert.Equal(t, 2, resolved.Int("s"))
	assert.False(t, resolved.Bool("b"))
}

func TestResolve_Name(t *testing.T) {
	_, name, err := Resolve("Conv", convTable, []any{Named("enc1")})
	require.NoError(t, err)
	assert.Equal(t, "enc1", name)
}

func TestResolve_EmptyNameFails(t *testing.T) {
	_, _, err := Resolve("Conv", convTable, []any{Named("")})
	require.Error(t, err)

	var nameErr *InvalidNameError
	require.ErrorAs(t, err, &nameErr)
	assert.Equal(t, "Conv", nameErr.Class)
}

func TestResolve_TooManyPositional(t *testing.T) {
	args := []any{1, 2, 3, 4, 5, 6}
	_, _, err := Resolve("Conv", convTable, args)
	require.Error(t, err)

	var tooMany *TooManyArgsError
	require.ErrorAs(t, err, &tooMany)
	assert.Equal(t, 6, tooMany.Got)
	assert.Equal(t, 5, tooMany.Max)
}

func TestResolve_UnknownKeyword(t *testing.T) {
	_, _, err := Resolve("Conv", convTable, []any{KV{Key: "z", Value: 1}})
	require.Error(t, err)

	var unknown *UnknownArgError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "z", unknown.Key)
}

func TestResolve_PositionalAfterOption(t *testing.T) {
	_, _, err := Resolve("Conv", convTable, []any{KV{Key: "k", Value: 5}, 64})
	require.Error(t, err)
}

func TestResolved_Clone(t *testing.T) {
	resolved, _, err := Resolve("Conv", convTable, []any{64})
	require.NoError(t, err)

	clone := resolved.Clone()
	clone["k"] = 11

	assert.Equal(t, 3, resolved.Int("k"))
	assert.Equal(t, 11, clone.Int("k"))
}

func TestResolved_IntAcceptsYAMLNumbers(t *testing.T) {
	resolved, _, err := Resolve("Conv", convTable, []any{
		KV{Key: "k", Value: float64(5)},
		KV{Key: "s", Value: int64(2)},
	})
	require.NoError(t, err)

	assert.Equal(t, 5, resolved.Int("k"))
	assert.Equal(t, 2, resolved.Int("s"))
}

func TestResolved_Format(t *testing.T) {
	resolved, _, err := Resolve("Linear", Table{{Key: "b", Default: true}}, nil)
	require.NoError(t, err)
	resolved["o"] = 10 // derived key, appended after table keys

	assert.Equal(t, "b=true, o=10", resolved.Format(Table{{Key: "b", Default: true}}))
}
