package pathstore

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

func TestPush(t *testing.T) {
	s := setupStore(t)

	got, err := Push(s, "list", "x")
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, got, "absent key starts a new array")

	got, err = Push(s, "list", "y")
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, got, "order is preserved")

	text, _ := rawRow(t, s, "list")
	assert.Equal(t, `["x","y"]`, text)
}

func TestPush_Nested(t *testing.T) {
	s := setupStore(t)
	require.NoError(t, s.Set("user.name", "ada"))

	_, err := Push(s, "user.tags", "math")
	require.NoError(t, err)

	doc, _, err := s.Get("user")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"name": "ada", "tags": []any{"math"}}, doc)
}

func TestPush_OverNonArray(t *testing.T) {
	s := setupStore(t)
	require.NoError(t, s.Set("k", "scalar"))

	got, err := Push(s, "k", 1)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, got)
}

func TestPush_Structs(t *testing.T) {
	s := setupStore(t)
	a := profile{Name: "a", Age: 1}
	b := profile{Name: "b", Age: 2}

	_, err := Push(s, "people", a)
	require.NoError(t, err)
	got, err := Push(s, "people", b)
	require.NoError(t, err)
	assert.Equal(t, []profile{a, b}, got)
}

func TestPush_EncodingFailure(t *testing.T) {
	s := setupStore(t)
	_, err := Push(s, "k", math.Inf(-1))
	require.ErrorIs(t, err, types.ErrEncoding)
	_, ok := rawRow(t, s, "k")
	assert.False(t, ok)
}

func TestPull(t *testing.T) {
	s := setupStore(t)
	require.NoError(t, s.Set("k", []int{1, 2, 1, 3}))

	got, err := Pull(s, "k", 1)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, got, "every occurrence is removed")

	got, err = Pull(s, "k", 9)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, got)
}

func TestPull_ToEmpty(t *testing.T) {
	s := setupStore(t)
	require.NoError(t, s.Set("k", []string{"a", "a"}))

	got, err := Pull(s, "k", "a")
	require.NoError(t, err)
	assert.Empty(t, got)
	text, _ := rawRow(t, s, "k")
	assert.Equal(t, "[]", text)
}

func TestPull_Absent(t *testing.T) {
	s := setupStore(t)
	got, err := Pull(s, "k", "a")
	require.NoError(t, err)
	assert.Empty(t, got)
	text, ok := rawRow(t, s, "k")
	assert.True(t, ok, "pull establishes the key")
	assert.Equal(t, "[]", text)
}

func TestPull_StructuralEquality(t *testing.T) {
	s := setupStore(t)
	require.NoError(t, s.rows.Upsert("k", `[{"b":2,"a":1},{"a":1},{"a":1,"b":2},1.0,1]`))

	got, err := Pull[any](s, "k", map[string]any{"a": 1, "b": 2})
	require.NoError(t, err)
	assert.Equal(t, []any{map[string]any{"a": 1.0}, 1.0, 1.0}, got)

	got, err = Pull[any](s, "k", 1)
	require.NoError(t, err)
	assert.Equal(t, []any{map[string]any{"a": 1.0}}, got, "1 and 1.0 are equal")
}
