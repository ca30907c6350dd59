package pathstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/mesh-intelligence/pantry/internal/keypath"
	"github.com/mesh-intelligence/pantry/internal/rowstore"
	"github.com/mesh-intelligence/pantry/pkg/types"
)

// Delete removes the value at key. A root key deletes the row. A dotted key
// removes the named member from the root document and writes the document
// back, even when nothing was removed; an absent root is written as null.
// Deleting something that does not exist is not an error.
func (s *Store) Delete(key string) error {
	p, err := keypath.Parse(key)
	if err != nil {
		return err
	}
	if !p.Nested() {
		return s.read(func(rows *rowstore.Table) error {
			if err := rows.Delete(p.Root); err != nil {
				return err
			}
			s.log.Debug("delete", "key", p.Root)
			return nil
		})
	}
	return s.update(func(tx *rowstore.Table) error {
		doc, _, err := s.fetchDoc(tx, p.Root)
		if err != nil {
			return err
		}
		removed := keypath.Remove(doc, p.Fields)
		data, err := encodeValue(doc)
		if err != nil {
			return err
		}
		s.log.Debug("delete member", "key", p.String(), "removed", removed)
		return s.put(tx, p.Root, data)
	})
}

// DeleteAll removes every row in the table.
func (s *Store) DeleteAll() error {
	return s.read(func(rows *rowstore.Table) error {
		if err := rows.DeleteAll(); err != nil {
			return err
		}
		s.log.Debug("delete all")
		return nil
	})
}

// Add adds delta to the number at key and returns the new value. An absent
// or non-numeric value counts as 0. A stored value that is NaN or infinite
// returns types.ErrNonFinite without writing. A result that overflows is
// returned as is and stored as null.
func (s *Store) Add(key string, delta float64) (float64, error) {
	return s.accumulate(key, func(cur float64) float64 { return cur + delta })
}

// Subtract subtracts delta from the number at key and returns the new value,
// with the same rules as Add.
func (s *Store) Subtract(key string, delta float64) (float64, error) {
	return s.accumulate(key, func(cur float64) float64 { return cur - delta })
}

// accumulate only checks the stored value for finiteness. A result that is
// NaN or infinite has no JSON form and is stored as null.
func (s *Store) accumulate(key string, apply func(float64) float64) (float64, error) {
	p, err := keypath.Parse(key)
	if err != nil {
		return 0, err
	}

	var next float64
	err = s.update(func(tx *rowstore.Table) error {
		v, ok, err := s.resolve(tx, p)
		if err != nil {
			return err
		}
		var cur float64
		if ok {
			cur = numberOf(v)
		}
		if math.IsNaN(cur) || math.IsInf(cur, 0) {
			return fmt.Errorf("%w: %q holds %v", types.ErrNonFinite, key, cur)
		}
		next = apply(cur)
		if math.IsNaN(next) || math.IsInf(next, 0) {
			return s.commit(tx, p, []byte("null"))
		}
		data, err := encodeValue(next)
		if err != nil {
			return err
		}
		return s.commit(tx, p, data)
	})
	if err != nil {
		return 0, err
	}
	return next, nil
}

// numberOf reads a decoded JSON number. Literals beyond the float64 range
// come back as ±Inf; anything that is not a number is 0.
func numberOf(v any) float64 {
	n, ok := v.(json.Number)
	if !ok {
		return 0
	}
	f, err := strconv.ParseFloat(string(n), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0
	}
	return f
}
