// Package sqlstore is the single point of access to persistent state.
// It runs the same queries against SQLite (development) and Postgres
// (production) and shields callers from transient connectivity faults.
package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/keijiban-dev/keijiban/internal/config"
	"github.com/keijiban-dev/keijiban/internal/logger"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

type Storage struct {
	db      *sql.DB
	dialect Dialect

	requestRetry RetryPolicy
	startupRetry RetryPolicy
}

func New(cfg *config.Config) (*Storage, error) {
	logger.Log.Info("connecting to db", "driver", cfg.Storage.Driver)
	db, dialect, err := Connect(cfg.Storage)
	if err != nil {
		return nil, err
	}
	logger.Log.Info("successfully connected to db")

	storage := &Storage{
		db:           db,
		dialect:      dialect,
		requestRetry: RequestRetryPolicy(cfg.Storage.Retry),
		startupRetry: StartupRetryPolicy(cfg.Storage.Retry),
	}
	if err := storage.InitSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return storage, nil
}

// Connect opens the bounded connection pool and verifies liveness before
// handing it out. MaxOpenConns is baseline pool size plus overflow.
func Connect(cfg config.Storage) (*sql.DB, Dialect, error) {
	var driverName, dsn string
	var dialect Dialect
	switch cfg.Driver {
	case config.DriverPostgres:
		driverName, dsn, dialect = "postgres", postgresDSN(cfg.Dsn), DialectPostgres
	case config.DriverSQLite:
		driverName, dsn, dialect = "sqlite3", sqliteDSN(cfg.Dsn), DialectSQLite
	default:
		return nil, "", fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, "", err
	}

	db.SetMaxOpenConns(cfg.Pool.Size + cfg.Pool.MaxOverflow)
	db.SetMaxIdleConns(cfg.Pool.Size)
	db.SetConnMaxLifetime(time.Duration(cfg.Pool.Recycle) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Pool.AcquireTimeout)*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, "", err
	}

	return db, dialect, nil
}

func (s *Storage) Cleanup() error {
	return s.db.Close()
}

// Ping executes a trivial round-trip query. Used by the health probe,
// deliberately not retried: monitoring should see blips the write path hides.
func (s *Storage) Ping(ctx context.Context) error {
	var one int
	return s.db.QueryRowContext(ctx, "SELECT 1").Scan(&one)
}

// rebind rewrites ? placeholders to the $N form Postgres expects.
// Queries in this package are written with ?.
func (s *Storage) rebind(query string) string {
	if s.dialect != DialectPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// sqliteDSN forces write transactions to take the write lock up front
// (_txlock=immediate) so concurrent posters queue on busy_timeout instead of
// deadlocking on a shared-to-exclusive upgrade.
func sqliteDSN(dsn string) string {
	params := "_busy_timeout=5000&_txlock=immediate&_foreign_keys=on"
	if strings.Contains(dsn, "?") {
		return dsn + "&" + params
	}
	return dsn + "?" + params
}

// postgresDSN adds connect timeout and TCP keepalive tuning unless the URL
// already carries them.
func postgresDSN(dsn string) string {
	params := []string{
		"connect_timeout=10",
		"keepalives=1",
		"keepalives_idle=30",
		"keepalives_interval=10",
		"keepalives_count=5",
	}
	for _, p := range params {
		key := p[:strings.Index(p, "=")]
		if strings.Contains(dsn, key+"=") {
			continue
		}
		if strings.Contains(dsn, "?") {
			dsn += "&" + p
		} else {
			dsn += "?" + p
		}
	}
	return dsn
}
