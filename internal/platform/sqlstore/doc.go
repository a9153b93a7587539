// Package sqlstore implements the store interfaces on database/sql.
//
// The same queries serve PostgreSQL (through pgx's stdlib driver) and SQLite
// (through modernc.org/sqlite): queries are written with "?" placeholders and
// rebound by the Dialect, and driver errors are mapped to the sentinel errors
// of the store package. Schema changes are embedded goose migrations, one
// directory per dialect.
package sqlstore
