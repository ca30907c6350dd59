package pathstore

import (
	"bytes"
	"encoding/json"

	"github.com/mesh-intelligence/pantry/internal/keypath"
	"github.com/mesh-intelligence/pantry/internal/rowstore"
)

// Push appends value to the array at key and returns the updated array. An
// absent value, or one that does not decode as []T, starts a new array.
func Push[T any](s *Store, key string, value T) ([]T, error) {
	if _, err := encodeValue(value); err != nil {
		return nil, err
	}
	return editArray(s, key, func(arr []T) []T {
		return append(arr, value)
	})
}

// Pull removes every element of the array at key that is structurally equal
// to value and returns the updated array. Elements are equal when their JSON
// encodings match, so map key order and number formatting do not matter.
func Pull[T any](s *Store, key string, value T) ([]T, error) {
	target, err := encodeValue(value)
	if err != nil {
		return nil, err
	}
	return editArray(s, key, func(arr []T) []T {
		kept := arr[:0]
		for _, el := range arr {
			data, err := json.Marshal(el)
			if err == nil && bytes.Equal(data, target) {
				continue
			}
			kept = append(kept, el)
		}
		return kept
	})
}

// editArray reads the array at key, applies edit, and commits the result in
// one transaction. The stored result is never null.
func editArray[T any](s *Store, key string, edit func([]T) []T) ([]T, error) {
	p, err := keypath.Parse(key)
	if err != nil {
		return nil, err
	}

	var out []T
	err = s.update(func(tx *rowstore.Table) error {
		v, ok, err := s.resolve(tx, p)
		if err != nil {
			return err
		}
		var arr []T
		if ok {
			arr = decodeAs[[]T](v)
		}
		arr = edit(arr)
		if arr == nil {
			arr = []T{}
		}
		data, err := encodeValue(arr)
		if err != nil {
			return err
		}
		if err := s.commit(tx, p, data); err != nil {
			return err
		}
		out = arr
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
