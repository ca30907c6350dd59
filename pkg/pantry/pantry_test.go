package pantry_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/pantry/pkg/pantry"
	"github.com/mesh-intelligence/pantry/pkg/types"
)

type item struct {
	Name string `json:"name"`
	Qty  int    `json:"qty"`
}

func TestOpen_Defaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), types.DefaultFileName)
	s, err := pantry.Open(types.Config{FileName: path}, nil)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Set("k", 1))
	v, ok, err := s.Get("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, types.KindNumber, types.KindOf(v))
}

func TestOpen_InvalidConfig(t *testing.T) {
	_, err := pantry.Open(types.Config{Driver: "oracle"}, nil)
	assert.ErrorIs(t, err, types.ErrDriverUnknown)

	_, err = pantry.Open(types.Config{Driver: types.DriverPostgres}, nil)
	assert.ErrorIs(t, err, types.ErrDSNEmpty)

	_, err = pantry.Open(types.Config{TableName: "bad name", FileName: filepath.Join(t.TempDir(), "x.sqlite")}, nil)
	assert.ErrorIs(t, err, types.ErrTableNameInvalid)
}

func TestGenericAccessors(t *testing.T) {
	s, err := pantry.Open(types.Config{FileName: filepath.Join(t.TempDir(), "p.sqlite")}, nil)
	require.NoError(t, err)
	defer s.Close()

	flour := item{Name: "flour", Qty: 2}
	sugar := item{Name: "sugar", Qty: 1}

	_, err = pantry.Push(s, "shelf.items", flour)
	require.NoError(t, err)
	items, err := pantry.Push(s, "shelf.items", sugar)
	require.NoError(t, err)
	assert.Equal(t, []item{flour, sugar}, items)

	items, err = pantry.Pull(s, "shelf.items", flour)
	require.NoError(t, err)
	assert.Equal(t, []item{sugar}, items)

	got, ok, err := pantry.Get[[]item](s, "shelf.items")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []item{sugar}, got)
}
