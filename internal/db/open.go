// Package db opens the bun database handle and creates the schema.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"

	// DefaultSQLiteDSN keeps the database next to the binary with foreign
	// keys enforced on every connection.
	DefaultSQLiteDSN = "file:vaccination.db?_foreign_keys=1&_busy_timeout=5000&_journal_mode=WAL"
)

type Config struct {
	Driver string // "sqlite3" | "postgres"
	DSN    string
	// Logger receives one debug record per query. Nil disables query logging.
	Logger *slog.Logger
}

// Open connects, pings and migrates. The caller owns the returned handle.
func Open(ctx context.Context, cfg Config) (*bun.DB, error) {
	if cfg.Driver == "" {
		cfg.Driver = DriverSQLite
	}
	if cfg.DSN == "" && cfg.Driver == DriverSQLite {
		cfg.DSN = DefaultSQLiteDSN
	}

	var db *bun.DB
	switch cfg.Driver {
	case DriverSQLite:
		sqldb, err := sql.Open(DriverSQLite, cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("sql.Open: %w", err)
		}
		// SQLite serialises writers; one connection avoids SQLITE_BUSY and
		// keeps in-memory databases alive for the life of the handle.
		sqldb.SetMaxOpenConns(1)
		sqldb.SetMaxIdleConns(1)
		sqldb.SetConnMaxLifetime(0)
		db = bun.NewDB(sqldb, sqlitedialect.New())
	case DriverPostgres:
		if cfg.DSN == "" {
			return nil, fmt.Errorf("db: postgres requires a DSN")
		}
		sqldb, err := sql.Open(DriverPostgres, cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("sql.Open: %w", err)
		}
		db = bun.NewDB(sqldb, pgdialect.New())
	default:
		return nil, fmt.Errorf("db: unsupported driver %q", cfg.Driver)
	}

	if cfg.Logger != nil {
		db.AddQueryHook(&queryLogger{logger: cfg.Logger})
	}

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}

	if cfg.Driver == DriverSQLite {
		if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("enable foreign keys: %w", err)
		}
	}

	if err := Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// queryLogger is a bun.QueryHook writing each statement at debug level.
// Only the operation is logged: statements carry raw documents.
type queryLogger struct {
	logger *slog.Logger
}

func (h *queryLogger) BeforeQuery(ctx context.Context, _ *bun.QueryEvent) context.Context {
	return ctx
}

func (h *queryLogger) AfterQuery(ctx context.Context, event *bun.QueryEvent) {
	attrs := []slog.Attr{
		slog.String("operation", event.Operation()),
		slog.Duration("took", time.Since(event.StartTime)),
	}
	if event.Err != nil && !errors.Is(event.Err, sql.ErrNoRows) {
		attrs = append(attrs, slog.String("error", event.Err.Error()))
	}
	h.logger.LogAttrs(ctx, slog.LevelDebug, "db query", attrs...)
}
