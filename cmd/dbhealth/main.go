package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/joseph-ayodele/resume-parser/internal/common"
	"github.com/joseph-ayodele/resume-parser/internal/repository"
)

// dbhealth opens the configured store, pings it, and exits non-zero if
// anything is off. Useful as a container readiness probe.
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if cfg.Database.DSN == "" {
		logger.Error("DB_URL env var is required")
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := repository.Open(ctx, repository.Config{
		DSN:             cfg.Database.DSN,
		MaxConns:        2,
		MinConns:        1,
		MaxConnLifetime: 5 * time.Minute,
		MaxConnIdleTime: time.Minute,
		DialTimeout:     cfg.Database.DialTimeout,
	}, logger)
	if err != nil {
		logger.Error("open db", "error", err)
		os.Exit(1)
	}
	defer db.Close(logger)

	if err := repository.HealthCheck(ctx, db, cfg.Database.HealthTimeout, logger); err != nil {
		logger.Error("db ping failed", "error", err)
		os.Exit(1)
	}
	logger.Info("db health ok", "dialect", string(db.Dialect))
}
