package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Dialect names the SQL backend behind a DB handle.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

type Config struct {
	DSN             string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
	DialTimeout     time.Duration
}

// DB wraps a database/sql handle with the dialect it was opened for and,
// for Postgres, the underlying pgx pool.
type DB struct {
	*sql.DB
	Dialect Dialect
	pool    *pgxpool.Pool
}

// Open connects to the store named by the DSN. postgres:// DSNs go through a
// pgx pool wrapped for database/sql; anything else is treated as a SQLite
// path (":memory:" included). The resumes schema is bootstrapped on open.
func Open(ctx context.Context, cfg Config, logger *slog.Logger) (*DB, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var db *DB
	if strings.HasPrefix(cfg.DSN, "postgres://") || strings.HasPrefix(cfg.DSN, "postgresql://") {
		logger.Info("connecting to database", "dialect", "postgres")
		pc, err := pgxpool.ParseConfig(cfg.DSN)
		if err != nil {
			logger.Error("failed to parse database config", "error", err)
			return nil, err
		}
		pc.MaxConns = cfg.MaxConns
		pc.MinConns = cfg.MinConns
		pc.MaxConnLifetime = cfg.MaxConnLifetime
		pc.MaxConnIdleTime = cfg.MaxConnIdleTime
		pc.ConnConfig.RuntimeParams["application_name"] = "resume-parser"

		dialCtx := ctx
		if cfg.DialTimeout > 0 {
			var cancel context.CancelFunc
			dialCtx, cancel = context.WithTimeout(ctx, cfg.DialTimeout)
			defer cancel()
		}
		pool, err := pgxpool.NewWithConfig(dialCtx, pc)
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			return nil, err
		}
		db = &DB{DB: stdlib.OpenDBFromPool(pool), Dialect: DialectPostgres, pool: pool}
	} else {
		logger.Info("connecting to database", "dialect", "sqlite")
		sdb, err := sql.Open("sqlite", cfg.DSN)
		if err != nil {
			logger.Error("failed to open sqlite database", "error", err)
			return nil, err
		}
		db = &DB{DB: sdb, Dialect: DialectSQLite}
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close(logger)
		return nil, fmt.Errorf("init schema: %w", err)
	}
	logger.Info("successfully connected to database")
	return db, nil
}

// Close closes the database connections gracefully
func (d *DB) Close(logger *slog.Logger) {
	if d == nil {
		return
	}
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("closing database connections")
	if err := d.DB.Close(); err != nil {
		logger.Error("failed to close database handle", "error", err)
	}
	if d.pool != nil {
		d.pool.Close()
	}
	logger.Info("database connections closed")
}

// HealthCheck pings the store to catch DSN issues early.
func HealthCheck(ctx context.Context, db *DB, timeout time.Duration, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Debug("pinging database")
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	if err := db.PingContext(ctx); err != nil {
		return err
	}
	logger.Debug("database ping successful")
	return nil
}

// Placeholder syntax ($1, $2, ...) is valid for both Postgres and SQLite,
// so one statement set serves both dialects.
const schemaDDL = `
CREATE TABLE IF NOT EXISTS resumes (
	id         TEXT PRIMARY KEY,
	file_id    TEXT NOT NULL,
	name       TEXT NOT NULL DEFAULT '',
	email      TEXT NOT NULL DEFAULT '',
	phone      TEXT NOT NULL DEFAULT '',
	skills     TEXT NOT NULL DEFAULT '[]',
	experience TEXT NOT NULL DEFAULT '[]',
	education  TEXT NOT NULL DEFAULT '[]',
	parsed_at  TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_resumes_parsed_at ON resumes (parsed_at);
CREATE INDEX IF NOT EXISTS idx_resumes_file_id ON resumes (file_id);
`

func initSchema(ctx context.Context, db *DB) error {
	_, err := db.ExecContext(ctx, schemaDDL)
	return err
}
