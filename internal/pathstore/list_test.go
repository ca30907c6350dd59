package pathstore

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

func TestAll(t *testing.T) {
	s := setupStore(t)

	all, err := s.All()
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)

	require.NoError(t, s.Set("a", 1))
	require.NoError(t, s.Set("b.c", 2))
	all, err = s.All()
	require.NoError(t, err)
	assert.ElementsMatch(t, []types.Entry{
		{Key: "a", Value: 1.0},
		{Key: "b", Value: map[string]any{"c": 2.0}},
	}, all)
}

func TestAll_MalformedRowsDecodeToNil(t *testing.T) {
	s := setupStore(t)
	require.NoError(t, s.Set("good", "yes"))
	require.NoError(t, s.rows.Upsert("bad", "{not json"))
	require.NoError(t, s.rows.Upsert("empty", ""))

	all, err := s.All()
	require.NoError(t, err)
	assert.ElementsMatch(t, []types.Entry{
		{Key: "good", Value: "yes"},
		{Key: "bad", Value: nil},
		{Key: "empty", Value: nil},
	}, all)
}

func TestCreate(t *testing.T) {
	s := setupStore(t)

	key, err := s.Create(map[string]any{"title": "first"})
	require.NoError(t, err)

	id, err := uuid.Parse(key)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), id.Version())

	title, ok, err := Get[string](s, key+".title")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "first", title)

	other, err := s.Create(nil)
	require.NoError(t, err)
	assert.NotEqual(t, key, other)
}
