package pathstore

import (
	"github.com/mesh-intelligence/pantry/internal/keypath"
	"github.com/mesh-intelligence/pantry/internal/rowstore"
)

// fetchDoc returns the decoded root document and whether a usable one
// exists. Rows whose text is not valid JSON read as absent.
func (s *Store) fetchDoc(rows *rowstore.Table, root string) (any, bool, error) {
	text, ok, err := rows.Fetch(root)
	if err != nil || !ok {
		return nil, false, err
	}
	doc, err := decodeTree(text)
	if err != nil {
		s.log.Debug("undecodable row read as absent", "key", root, "err", err)
		return nil, false, nil
	}
	return doc, true, nil
}

// resolve returns the value at p and whether it is present.
func (s *Store) resolve(rows *rowstore.Table, p keypath.Path) (any, bool, error) {
	doc, ok, err := s.fetchDoc(rows, p.Root)
	if err != nil || !ok {
		return nil, false, err
	}
	v, ok := keypath.Lookup(doc, p.Fields)
	return v, ok, nil
}

// commit writes already-encoded data at p. A root path replaces the row; a
// nested path splices the value into the current root document, which
// starts as an empty object when absent or unusable.
func (s *Store) commit(rows *rowstore.Table, p keypath.Path, data []byte) error {
	if !p.Nested() {
		return s.put(rows, p.Root, data)
	}
	value, err := decodeTree(string(data))
	if err != nil {
		return err
	}
	doc, _, err := s.fetchDoc(rows, p.Root)
	if err != nil {
		return err
	}
	doc = keypath.Splice(doc, p.Fields, value)
	out, err := encodeValue(doc)
	if err != nil {
		return err
	}
	return s.put(rows, p.Root, out)
}

func (s *Store) put(rows *rowstore.Table, root string, data []byte) error {
	if err := rows.Upsert(root, string(data)); err != nil {
		return err
	}
	s.log.Debug("commit", "key", root, "bytes", len(data))
	return nil
}
