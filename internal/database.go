package internal

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
)

// SQLite DSN parameters.
const (
	sqliteBusyTimeout = "5000"
	sqliteSynchronous = "NORMAL"
	sqliteJournalMode = "WAL"
)

// OpenDatabase opens and pings a connection pool for driver. Postgres goes
// through the pgx stdlib driver; sqlite3 gets a hardened DSN and a single
// writer connection.
func OpenDatabase(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	var (
		db  *sql.DB
		err error
	)

	switch driver {
	case DriverPostgres:
		db, err = sql.Open("pgx", dsn)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
	case DriverSQLite:
		db, err = sql.Open("sqlite3", SQLiteDSN(dsn))
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
	db.SetConnMaxLifetime(time.Hour)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}

	return db, nil
}

// SQLiteDSN appends WAL, busy timeout, synchronous and foreign key
// parameters to a SQLite path. Existing parameters are kept.
func SQLiteDSN(path string) string {
	path = strings.TrimPrefix(path, "sqlite3://")
	path = strings.TrimPrefix(path, "file:")

	base, rawQuery, _ := strings.Cut(path, "?")
	params, err := url.ParseQuery(rawQuery)
	if err != nil {
		params = url.Values{}
	}
	setDefault(params, "_journal_mode", sqliteJournalMode)
	setDefault(params, "_busy_timeout", sqliteBusyTimeout)
	setDefault(params, "_synchronous", sqliteSynchronous)
	setDefault(params, "_foreign_keys", "on")

	return base + "?" + params.Encode()
}

func setDefault(v url.Values, key, value string) {
	if v.Get(key) == "" {
		v.Set(key, value)
	}
}
