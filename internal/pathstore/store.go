// Package pathstore implements the path-addressed JSON document store on top
// of a rowstore.Table.
//
// Every operation reduces to two primitives: resolve, which fetches a root
// record and descends to a nested member, and commit, which splices a value
// into the root document and upserts the whole document back. Composed
// operations (nested Set and Delete, Add, Subtract, Push, Pull, Import) run
// their read and write inside one backend transaction while holding the store
// mutex, so callers of one Store never lose updates to each other.
package pathstore

import (
	"log/slog"
	"sync"

	"github.com/mesh-intelligence/pantry/internal/rowstore"
	"github.com/mesh-intelligence/pantry/pkg/types"
)

// Store is a JSON document store keyed by dotted paths. It is safe for
// concurrent use.
type Store struct {
	mu     sync.Mutex
	rows   *rowstore.Table
	log    *slog.Logger
	closed bool
}

// New wraps an open row table. A nil logger discards log output.
func New(rows *rowstore.Table, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{
		rows: rows,
		log:  logger.With("table", rows.Name()),
	}
}

// Open opens the row backend described by cfg and returns a Store over it.
func Open(cfg types.Config, logger *slog.Logger) (*Store, error) {
	rows, err := rowstore.Open(cfg)
	if err != nil {
		return nil, err
	}
	return New(rows, logger), nil
}

// Close releases the backend connection. Close is idempotent; every other
// operation returns types.ErrClosed afterwards.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	return s.rows.Close()
}

// read runs fn with the row table while holding the store lock.
func (s *Store) read(fn func(rows *rowstore.Table) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return types.ErrClosed
	}
	return fn(s.rows)
}

// update runs fn inside a backend transaction while holding the store lock.
func (s *Store) update(fn func(tx *rowstore.Table) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return types.ErrClosed
	}
	return s.rows.InTx(fn)
}
