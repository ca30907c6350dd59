package rowstore

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

// Row is one stored record. JSON is empty when the column is NULL.
type Row struct {
	ID   string
	JSON string
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

// Table gives access to the document table. A Table returned by InTx is
// bound to the transaction; all others use the connection pool.
type Table struct {
	name    string
	dialect Dialect
	db      *sql.DB // nil when bound to a transaction
	q       querier
	stmts   statements
}

// New wraps an open database. It does not create the table; call Prepare.
func New(db *sql.DB, d Dialect, table string) (*Table, error) {
	if !types.ValidTableName(table) {
		return nil, fmt.Errorf("%w: %q", types.ErrTableNameInvalid, table)
	}
	return &Table{
		name:    table,
		dialect: d,
		db:      db,
		q:       db,
		stmts:   d.buildStatements(table),
	}, nil
}

// Open connects to the backend described by cfg, applies the dialect
// pragmas, and creates the table if it does not exist. Empty cfg fields take
// their defaults.
func Open(cfg types.Config) (*Table, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	d, err := DialectFor(cfg.Driver)
	if err != nil {
		return nil, err
	}

	var db *sql.DB
	switch d.Name {
	case types.DriverSQLite:
		db, err = openSQLite(cfg.FileName)
	case types.DriverPostgres:
		db, err = openPostgres(cfg.DSN)
	}
	if err != nil {
		return nil, err
	}

	for _, pragma := range d.Pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("setting pragma %q: %w", pragma, err)
		}
	}

	t, err := New(db, d, cfg.TableName)
	if err != nil {
		db.Close()
		return nil, err
	}
	if err := t.Prepare(); err != nil {
		db.Close()
		return nil, err
	}
	return t, nil
}

func openSQLite(fileName string) (*sql.DB, error) {
	if !strings.HasPrefix(fileName, ":memory:") && !strings.HasPrefix(fileName, "file:") {
		if dir := filepath.Dir(fileName); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("creating data directory: %w", err)
			}
		}
	}
	db, err := sql.Open(SQLite.DriverName, fileName)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}
	// One connection: the store owns its session, and transactions never
	// wait on a second pooled connection.
	db.SetMaxOpenConns(1)
	return db, nil
}

func openPostgres(dsn string) (*sql.DB, error) {
	db, err := sql.Open(Postgres.DriverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening postgres database: %w", err)
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

// Name returns the table name.
func (t *Table) Name() string { return t.name }

// Dialect returns the dialect the table was built with.
func (t *Table) Dialect() Dialect { return t.dialect }

// Prepare creates the table if it does not exist. It is idempotent.
func (t *Table) Prepare() error {
	if _, err := t.q.Exec(t.stmts.create); err != nil {
		return fmt.Errorf("creating table %s: %w", t.name, err)
	}
	return nil
}

// Fetch returns the stored text for id and whether a row exists.
func (t *Table) Fetch(id string) (string, bool, error) {
	var text sql.NullString
	err := t.q.QueryRow(t.stmts.fetch, id).Scan(&text)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("fetching %q: %w", id, err)
	}
	return text.String, true, nil
}

// Upsert inserts the row or replaces the text of an existing one in a single
// statement.
func (t *Table) Upsert(id, text string) error {
	if _, err := t.q.Exec(t.stmts.upsert, id, text); err != nil {
		return fmt.Errorf("upserting %q: %w", id, err)
	}
	return nil
}

// Delete removes the row for id. A missing row is not an error.
func (t *Table) Delete(id string) error {
	if _, err := t.q.Exec(t.stmts.delete, id); err != nil {
		return fmt.Errorf("deleting %q: %w", id, err)
	}
	return nil
}

// DeleteAll removes every row.
func (t *Table) DeleteAll() error {
	if _, err := t.q.Exec(t.stmts.deleteAll); err != nil {
		return fmt.Errorf("deleting all rows from %s: %w", t.name, err)
	}
	return nil
}

// Scan returns every row in the engine's natural order. The result is never
// nil.
func (t *Table) Scan() ([]Row, error) {
	rows, err := t.q.Query(t.stmts.scan)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", t.name, err)
	}
	defer rows.Close()

	out := []Row{}
	for rows.Next() {
		var id string
		var text sql.NullString
		if err := rows.Scan(&id, &text); err != nil {
			return nil, fmt.Errorf("reading row from %s: %w", t.name, err)
		}
		out = append(out, Row{ID: id, JSON: text.String})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scanning %s: %w", t.name, err)
	}
	return out, nil
}

// InTx runs fn against a Table bound to a new transaction, committing when fn
// returns nil and rolling back otherwise. Called on a Table that is already
// bound to a transaction, fn runs in that transaction.
func (t *Table) InTx(fn func(tx *Table) error) error {
	if t.db == nil {
		return fn(t)
	}
	sqlTx, err := t.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer sqlTx.Rollback()

	bound := *t
	bound.db = nil
	bound.q = sqlTx
	if err := fn(&bound); err != nil {
		return err
	}
	if err := sqlTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Close closes the underlying database. Closing a transaction-bound Table is
// a no-op.
func (t *Table) Close() error {
	if t.db == nil {
		return nil
	}
	return t.db.Close()
}
