package types

import (
	"errors"
	"regexp"
)

// Config selects the row backend and the table that holds the documents.
type Config struct {
	// Driver is the row backend: "sqlite" (default) or "postgres".
	Driver string `json:"driver" yaml:"driver" mapstructure:"driver"`

	// FileName is the SQLite database file. Ignored by postgres.
	FileName string `json:"file_name" yaml:"file_name" mapstructure:"file_name"`

	// TableName is the table holding one row per root key.
	TableName string `json:"table_name" yaml:"table_name" mapstructure:"table_name"`

	// DSN is the postgres connection string. Ignored by sqlite.
	DSN string `json:"dsn,omitempty" yaml:"dsn,omitempty" mapstructure:"dsn"`
}

// Supported driver names.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Defaults applied by WithDefaults.
const (
	DefaultFileName  = "json.sqlite"
	DefaultTableName = "json"
)

// Config validation errors.
var (
	ErrDriverUnknown    = errors.New("unknown driver")
	ErrTableNameInvalid = errors.New("invalid table name")
	ErrDSNEmpty         = errors.New("dsn must not be empty for postgres")
	ErrFileNameEmpty    = errors.New("file name must not be empty for sqlite")
)

// knownDrivers lists the drivers that Validate accepts.
var knownDrivers = map[string]bool{
	DriverSQLite:   true,
	DriverPostgres: true,
}

// tableNamePattern restricts table names to plain SQL identifiers because
// the name is formatted into statements.
var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidTableName reports whether name can be used as a table name.
func ValidTableName(name string) bool {
	return tableNamePattern.MatchString(name)
}

// DefaultConfig returns the configuration used when none is given:
// a json.sqlite file holding the "json" table.
func DefaultConfig() Config {
	return Config{
		Driver:    DriverSQLite,
		FileName:  DefaultFileName,
		TableName: DefaultTableName,
	}
}

// WithDefaults returns a copy of c with empty fields filled from
// DefaultConfig. FileName is only defaulted for sqlite.
func (c Config) WithDefaults() Config {
	if c.Driver == "" {
		c.Driver = DriverSQLite
	}
	if c.TableName == "" {
		c.TableName = DefaultTableName
	}
	if c.Driver == DriverSQLite && c.FileName == "" {
		c.FileName = DefaultFileName
	}
	return c
}

// Validate checks that the Config is well-formed. It does not apply
// defaults; call WithDefaults first when fields may be empty.
func (c Config) Validate() error {
	if !knownDrivers[c.Driver] {
		return ErrDriverUnknown
	}
	if !ValidTableName(c.TableName) {
		return ErrTableNameInvalid
	}
	switch c.Driver {
	case DriverSQLite:
		if c.FileName == "" {
			return ErrFileNameEmpty
		}
	case DriverPostgres:
		if c.DSN == "" {
			return ErrDSNEmpty
		}
	}
	return nil
}
