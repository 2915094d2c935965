// Package inspect reads raw schema facts from a live database through the
// dialect.Driver abstraction. It reports what the database says, verbatim.
// Interpreting the facts (type mapping, naming, validation) happens in the
// schema package.
package inspect

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/syssam/javagen/dialect"
	sqldialect "github.com/syssam/javagen/dialect/sql"
)

// Table is a raw table fact.
type Table struct {
	Name    string
	Comment string
}

// Column is a raw column fact as reported by the database catalog.
type Column struct {
	Name       string
	DataType   string // base type, e.g. "tinyint"
	ColumnType string // full type, e.g. "tinyint(1) unsigned"
	Nullable   bool
	Default    sql.NullString
	Comment    string
	Precision  sql.NullInt64
	Scale      sql.NullInt64
	MaxLength  sql.NullInt64
	AutoInc    bool
	Ordinal    int
}

// Index is a raw secondary-index fact. The primary key is reported
// separately on TableDesc.
type Index struct {
	Name    string
	Columns []string
	Unique  bool
}

// ForeignKey is a raw foreign-key fact.
type ForeignKey struct {
	Name      string
	Column    string
	RefTable  string
	RefColumn string
}

// TableDesc bundles every raw fact known about one table.
type TableDesc struct {
	Table       Table
	Columns     []Column
	PrimaryKey  []string // column names, in key order
	Indexes     []Index
	ForeignKeys []ForeignKey
}

// Inspector fetches raw schema facts for one database connection.
type Inspector struct {
	drv dialect.Driver
}

// New returns an Inspector reading through the given driver.
func New(drv dialect.Driver) *Inspector {
	return &Inspector{drv: drv}
}

// Tables lists the base tables of the given schema. An empty schema name
// means the connection's current database.
func (i *Inspector) Tables(ctx context.Context, schema string) ([]Table, error) {
	switch d := i.drv.Dialect(); d {
	case dialect.MySQL:
		return i.mysqlTables(ctx, schema)
	case dialect.Postgres:
		return i.postgresTables(ctx, schema)
	case dialect.SQLite:
		return i.sqliteTables(ctx)
	default:
		return nil, fmt.Errorf("inspect: unsupported dialect %q", d)
	}
}

// Databases lists the databases visible through the connection, system
// catalogs excluded.
func (i *Inspector) Databases(ctx context.Context) ([]string, error) {
	switch d := i.drv.Dialect(); d {
	case dialect.MySQL:
		return i.mysqlDatabases(ctx)
	case dialect.Postgres:
		return i.postgresDatabases(ctx)
	case dialect.SQLite:
		return i.sqliteDatabases(ctx)
	default:
		return nil, fmt.Errorf("inspect: unsupported dialect %q", d)
	}
}

// TableExists reports whether the named base table exists in the
// connection's current schema.
func (i *Inspector) TableExists(ctx context.Context, table string) (bool, error) {
	switch d := i.drv.Dialect(); d {
	case dialect.MySQL:
		return i.mysqlTableExists(ctx, table)
	case dialect.Postgres:
		return i.postgresTableExists(ctx, table)
	case dialect.SQLite:
		return i.sqliteTableExists(ctx, table)
	default:
		return false, fmt.Errorf("inspect: unsupported dialect %q", d)
	}
}

// Describe returns every raw fact known about the named table.
func (i *Inspector) Describe(ctx context.Context, table string) (*TableDesc, error) {
	switch d := i.drv.Dialect(); d {
	case dialect.MySQL:
		return i.mysqlDescribe(ctx, table)
	case dialect.Postgres:
		return i.postgresDescribe(ctx, table)
	case dialect.SQLite:
		return i.sqliteDescribe(ctx, table)
	default:
		return nil, fmt.Errorf("inspect: unsupported dialect %q", d)
	}
}

func (i *Inspector) query(ctx context.Context, query string, args []any) (*sqldialect.Rows, error) {
	rows := &sqldialect.Rows{}
	if err := i.drv.Query(ctx, query, args, rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// queryNames runs a single-column query and collects the values.
func (i *Inspector) queryNames(ctx context.Context, query string, args []any) ([]string, error) {
	rows, err := i.query(ctx, query, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// queryCount runs a COUNT query and returns its single value.
func (i *Inspector) queryCount(ctx context.Context, query string, args []any) (int64, error) {
	rows, err := i.query(ctx, query, args)
	if err != nil {
		return 0, err
	}
	defer rows.Close()
	var n int64
	if rows.Next() {
		if err := rows.Scan(&n); err != nil {
			return 0, err
		}
	}
	return n, rows.Err()
}
