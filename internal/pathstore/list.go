package pathstore

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/pantry/internal/rowstore"
	"github.com/mesh-intelligence/pantry/pkg/types"
)

// All returns every root record in the backend's scan order, which is not
// guaranteed. A row whose text is not valid JSON is listed with a nil value.
func (s *Store) All() ([]types.Entry, error) {
	var rows []rowstore.Row
	err := s.read(func(t *rowstore.Table) error {
		var err error
		rows, err = t.Scan()
		return err
	})
	if err != nil {
		return nil, err
	}

	entries := make([]types.Entry, 0, len(rows))
	for _, row := range rows {
		var v any
		if err := json.Unmarshal([]byte(row.JSON), &v); err != nil {
			v = nil
		}
		entries = append(entries, types.Entry{Key: row.ID, Value: v})
	}
	return entries, nil
}

// Create stores value under a new UUID v7 root key and returns the key.
func (s *Store) Create(value any) (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	key := id.String()
	if err := s.Set(key, value); err != nil {
		return "", err
	}
	return key, nil
}
