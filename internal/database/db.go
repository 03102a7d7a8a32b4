package database

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"  // postgres driver
	_ "modernc.org/sqlite" // sqlite driver for local demo stores
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// DB wraps the shared connection handle used by all repositories.
type DB struct {
	*sql.DB
	driver string
}

// New opens and pings the database named by databaseURL.
//
// "sqlite:<path>" and "file:<path>" select the embedded SQLite driver; anything
// else (postgres:// URLs and libpq key/value DSNs) goes to lib/pq.
func New(databaseURL string) (*DB, error) {
	driver, dsn := ParseURL(databaseURL)

	sqlDB, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if driver == DriverSQLite {
		// One writer; keeps the foreign_keys pragma on the only connection.
		sqlDB.SetMaxOpenConns(1)
	}

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{DB: sqlDB, driver: driver}, nil
}

// Driver reports which database/sql driver backs this handle.
func (db *DB) Driver() string {
	return db.driver
}

// ParseURL maps a connection string to a driver name and the DSN that driver expects.
func ParseURL(databaseURL string) (driver, dsn string) {
	switch {
	case strings.HasPrefix(databaseURL, "sqlite://"):
		return DriverSQLite, withForeignKeys(strings.TrimPrefix(databaseURL, "sqlite://"))
	case strings.HasPrefix(databaseURL, "sqlite:"):
		return DriverSQLite, withForeignKeys(strings.TrimPrefix(databaseURL, "sqlite:"))
	case strings.HasPrefix(databaseURL, "file:"):
		return DriverSQLite, withForeignKeys(databaseURL)
	default:
		return DriverPostgres, databaseURL
	}
}

func withForeignKeys(dsn string) string {
	if strings.Contains(dsn, "foreign_keys") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)"
}
