// Package pantry provides the public API for the JSON document store.
// It exposes the factory function and the generic accessors while keeping
// the engine and the row backend internal.
package pantry

import (
	"log/slog"

	"github.com/mesh-intelligence/pantry/internal/pathstore"
	"github.com/mesh-intelligence/pantry/pkg/types"
)

// Store is an open document store. See Open.
type Store = pathstore.Store

// Open opens the backend described by cfg, creating the table if needed.
// Zero fields of cfg take their defaults. A nil logger discards log output.
//
// Example:
//
//	s, err := pantry.Open(types.Config{FileName: "data/json.sqlite"}, nil)
//	if err != nil {
//	    return err
//	}
//	defer s.Close()
//	err = s.Set("user.name", "ada")
//	name, ok, err := pantry.Get[string](s, "user.name")
func Open(cfg types.Config, logger *slog.Logger) (*Store, error) {
	return pathstore.Open(cfg, logger)
}

// Get reads the value at key decoded into T and reports whether it is
// present. A present value that does not fit T is returned as the zero
// value.
func Get[T any](s *Store, key string) (T, bool, error) {
	return pathstore.Get[T](s, key)
}

// Push appends value to the array at key and returns the updated array.
func Push[T any](s *Store, key string, value T) ([]T, error) {
	return pathstore.Push(s, key, value)
}

// Pull removes every element equal to value from the array at key and
// returns the updated array.
func Pull[T any](s *Store, key string, value T) ([]T, error) {
	return pathstore.Pull(s, key, value)
}
