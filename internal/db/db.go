package db

import (
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"mediafeed/internal/config"
)

// Connect opens the relational store named by cfg.DatabaseURL. Postgres
// DSNs go through pgx; anything else is treated as a sqlite file path.
func Connect(cfg *config.Config) (*sqlx.DB, error) {
	var db *sqlx.DB

	databaseURL := cfg.DatabaseURL
	if strings.HasPrefix(databaseURL, "postgres://") || strings.HasPrefix(databaseURL, "postgresql://") {
		pgcfg, err := pgx.ParseConfig(databaseURL)
		if err != nil {
			return nil, fmt.Errorf("db: failed to parse DSN: %w", err)
		}

		// Fail fast on startup if PG is unreachable
		pgcfg.ConnectTimeout = 5 * time.Second

		db = sqlx.NewDb(stdlib.OpenDB(*pgcfg), "pgx")
		db.SetMaxOpenConns(cfg.DBMaxOpen)
		db.SetMaxIdleConns(cfg.DBMaxIdle)
		db.SetConnMaxLifetime(cfg.DBMaxLifetime)
	} else {
		sqlDB, err := sqlx.Open("sqlite", databaseURL)
		if err != nil {
			return nil, fmt.Errorf("db: failed to open sqlite: %w", err)
		}

		// sqlite tolerates one writer
		sqlDB.SetMaxOpenConns(1)
		db = sqlDB
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("db: failed to connect: %w", err)
	}

	var tmp int
	if err := db.QueryRow("SELECT 1").Scan(&tmp); err != nil {
		return nil, fmt.Errorf("db: health check failed: %w", err)
	}

	return db, nil
}
