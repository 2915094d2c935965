// Package dialect provides the database dialect abstraction consumed by the
// schema introspector. It defines the Driver interface over which all schema
// facts are fetched, allowing javagen to read metadata from MySQL,
// PostgreSQL, and SQLite through one contract.
package dialect

import "context"

// Dialect names the supported database backends.
const (
	// MySQL is the mysql dialect.
	MySQL = "mysql"
	// Postgres is the postgres dialect.
	Postgres = "postgres"
	// SQLite is the sqlite dialect.
	SQLite = "sqlite"
)

// ExecQuerier wraps the two standard database operations.
type ExecQuerier interface {
	// Exec executes a query that does not return records.
	// For example, in SQL, INSERT or UPDATE.
	Exec(ctx context.Context, query string, args, v any) error
	// Query executes a query that returns rows, typically a SELECT.
	Query(ctx context.Context, query string, args, v any) error
}

// Driver is the interface that wraps all database operations.
type Driver interface {
	ExecQuerier
	// Tx starts and returns a new transaction.
	Tx(ctx context.Context) (Tx, error)
	// Close closes the underlying connection.
	Close() error
	// Dialect returns the dialect name of the driver.
	Dialect() string
}

// Tx wraps transaction behavior on top of a Driver connection.
type Tx interface {
	ExecQuerier
	// Commit commits the transaction.
	Commit() error
	// Rollback discards the transaction.
	Rollback() error
}
