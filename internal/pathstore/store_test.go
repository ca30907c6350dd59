package pathstore

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

// setupStore opens a Store over a SQLite file in a fresh temp directory and
// closes it when the test ends.
func setupStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(types.Config{
		Driver:    types.DriverSQLite,
		FileName:  filepath.Join(t.TempDir(), "json.sqlite"),
		TableName: types.DefaultTableName,
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

// rawRow returns the stored text for a root key, bypassing decoding.
func rawRow(t *testing.T, s *Store, root string) (string, bool) {
	t.Helper()
	text, ok, err := s.rows.Fetch(root)
	require.NoError(t, err)
	return text, ok
}

func TestStore_Close(t *testing.T) {
	s := setupStore(t)
	require.NoError(t, s.Close())
	require.NoError(t, s.Close(), "Close is idempotent")

	_, _, err := s.Get("a")
	assert.ErrorIs(t, err, types.ErrClosed)
	assert.ErrorIs(t, s.Set("a", 1), types.ErrClosed)
	_, err = s.Has("a")
	assert.ErrorIs(t, err, types.ErrClosed)
	assert.ErrorIs(t, s.Delete("a"), types.ErrClosed)
	assert.ErrorIs(t, s.DeleteAll(), types.ErrClosed)
	_, err = s.Add("a", 1)
	assert.ErrorIs(t, err, types.ErrClosed)
	_, err = Push(s, "a", 1)
	assert.ErrorIs(t, err, types.ErrClosed)
	_, err = s.All()
	assert.ErrorIs(t, err, types.ErrClosed)
}

func TestStore_InvalidKeys(t *testing.T) {
	s := setupStore(t)
	for _, key := range []string{"a..b", ".a", "a.", "."} {
		t.Run(key, func(t *testing.T) {
			_, _, err := s.Get(key)
			assert.ErrorIs(t, err, types.ErrInvalidKey)
			assert.ErrorIs(t, s.Set(key, 1), types.ErrInvalidKey)
			assert.ErrorIs(t, s.Delete(key), types.ErrInvalidKey)
			_, err = s.Add(key, 1)
			assert.ErrorIs(t, err, types.ErrInvalidKey)
			_, err = Pull(s, key, 1)
			assert.ErrorIs(t, err, types.ErrInvalidKey)
		})
	}
}

func TestStore_EmptyKeyIsARootRecord(t *testing.T) {
	s := setupStore(t)
	require.NoError(t, s.Set("", map[string]any{"a": 1}))

	text, ok := rawRow(t, s, "")
	assert.True(t, ok)
	assert.Equal(t, `{"a":1}`, text)

	n, err := s.Add("", 2)
	require.NoError(t, err)
	assert.Equal(t, 2.0, n, "the object is not a number")

	require.NoError(t, s.Delete(""))
	has, err := s.Has("")
	require.NoError(t, err)
	assert.False(t, has)
}

func TestStore_ConcurrentAdd(t *testing.T) {
	s := setupStore(t)

	const workers, perWorker = 8, 25
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range perWorker {
				_, err := s.Add("counter", 1)
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	got, ok, err := Get[float64](s, "counter")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, float64(workers*perWorker), got)
}

func TestStore_ConcurrentPush(t *testing.T) {
	s := setupStore(t)

	var wg sync.WaitGroup
	for i := range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := Push(s, "doc.items", i)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	items, _, err := Get[[]int](s, "doc.items")
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, items)
}
