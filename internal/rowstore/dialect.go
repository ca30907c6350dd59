// Package rowstore implements the row backend for pantry: a single table with
// a text primary key ID and a text JSON column, accessed through database/sql.
// SQLite (modernc.org/sqlite) is the default dialect; Postgres (lib/pq) is
// available for shared deployments.
package rowstore

import (
	"fmt"
	"strconv"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

// Dialect captures the per-engine differences in statement text and
// connection setup.
type Dialect struct {
	// Name is the types.Config driver value selecting this dialect.
	Name string

	// DriverName is the database/sql driver registered for the engine.
	DriverName string

	// Pragmas run once on every newly opened database.
	Pragmas []string

	// placeholder returns the bind marker for the n-th (1-based) argument.
	placeholder func(n int) string
}

// SQLite binds with "?" and applies WAL and a busy timeout on open.
var SQLite = Dialect{
	Name:       types.DriverSQLite,
	DriverName: "sqlite",
	Pragmas: []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	},
	placeholder: func(int) string { return "?" },
}

// Postgres binds with "$n".
var Postgres = Dialect{
	Name:        types.DriverPostgres,
	DriverName:  "postgres",
	placeholder: func(n int) string { return "$" + strconv.Itoa(n) },
}

// DialectFor returns the dialect for a types.Config driver name.
func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case types.DriverSQLite:
		return SQLite, nil
	case types.DriverPostgres:
		return Postgres, nil
	default:
		return Dialect{}, fmt.Errorf("%w: %q", types.ErrDriverUnknown, driver)
	}
}

// statements holds the SQL text for one table in one dialect.
type statements struct {
	create    string
	fetch     string
	scan      string
	upsert    string
	delete    string
	deleteAll string
}

// buildStatements formats the table name into every statement. The name must
// already be validated as a plain identifier.
func (d Dialect) buildStatements(table string) statements {
	p := d.placeholder
	return statements{
		create: fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (ID TEXT PRIMARY KEY, JSON TEXT)", table),
		fetch:  fmt.Sprintf("SELECT JSON FROM %s WHERE ID = %s", table, p(1)),
		scan:   fmt.Sprintf("SELECT ID, JSON FROM %s", table),
		upsert: strings.Join([]string{
			fmt.Sprintf("INSERT INTO %s (ID, JSON) VALUES (%s, %s)", table, p(1), p(2)),
			"ON CONFLICT(ID) DO UPDATE SET JSON = excluded.JSON",
		}, " "),
		delete:    fmt.Sprintf("DELETE FROM %s WHERE ID = %s", table, p(1)),
		deleteAll: fmt.Sprintf("DELETE FROM %s", table),
	}
}
