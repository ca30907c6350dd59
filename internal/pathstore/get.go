package pathstore

import (
	"github.com/mesh-intelligence/pantry/internal/keypath"
	"github.com/mesh-intelligence/pantry/internal/rowstore"
)

// Get reads the value at key decoded into T. The bool reports presence: it
// is false when the root record, a member along the path, or a decodable
// root document is missing. A present value whose shape does not fit T is
// returned as the zero value of T.
func Get[T any](s *Store, key string) (T, bool, error) {
	var zero T
	p, err := keypath.Parse(key)
	if err != nil {
		return zero, false, err
	}

	var v any
	var ok bool
	err = s.read(func(rows *rowstore.Table) error {
		v, ok, err = s.resolve(rows, p)
		return err
	})
	if err != nil || !ok {
		return zero, false, err
	}
	return decodeAs[T](v), true, nil
}

// Get reads the value at key as a generic tree: map[string]any, []any,
// string, float64, bool, or nil. Use types.KindOf to inspect it.
func (s *Store) Get(key string) (any, bool, error) {
	return Get[any](s, key)
}

// Set stores value at key. A root key replaces the whole record; a dotted
// key updates one member and keeps the rest of the root document. The value
// is encoded before the backend is touched, so an encoding failure writes
// nothing.
func (s *Store) Set(key string, value any) error {
	p, err := keypath.Parse(key)
	if err != nil {
		return err
	}
	data, err := encodeValue(value)
	if err != nil {
		return err
	}
	return s.update(func(tx *rowstore.Table) error {
		return s.commit(tx, p, data)
	})
}

// Has reports whether a value is present at key. A stored null counts as
// present.
func (s *Store) Has(key string) (bool, error) {
	_, ok, err := s.Get(key)
	return ok, err
}
