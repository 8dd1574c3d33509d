package db

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

// Open opens (or creates) a local SQLite database file and verifies the
// connection. Schema is owned by the repository layer (CreateTable/DropTable),
// so no migrations are applied here.
//
// For an in-memory database pass a shared-cache DSN such as
//
//	file:demo?mode=memory&cache=shared
//
// so that every pooled connection sees the same database.
func Open(path string) (*sql.DB, error) {
	if path == "" {
		path = "persons.db"
	}
	d, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if err := d.Ping(); err != nil {
		_ = d.Close()
		return nil, err
	}
	// Pragmas for robustness
	// journal_mode may not be supported in some contexts (e.g., in-memory). Ignore errors.
	_, _ = d.Exec(`PRAGMA journal_mode=WAL`)
	if _, err := d.Exec(`PRAGMA busy_timeout=5000`); err != nil {
		_ = d.Close()
		return nil, err
	}
	if _, err := d.Exec(`PRAGMA foreign_keys=ON`); err != nil {
		_ = d.Close()
		return nil, err
	}
	return d, nil
}
