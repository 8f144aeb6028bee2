package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/joseph-ayodele/resume-parser/internal/common"
	"github.com/joseph-ayodele/resume-parser/internal/export"
	"github.com/joseph-ayodele/resume-parser/internal/repository"
)

// resume-export dumps the XLSX export of parsed resumes to a local file.
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	outPath := flag.String("o", "resumes.xlsx", "output file path")
	fromStr := flag.String("from", "", "start date (YYYY-MM-DD), inclusive")
	toStr := flag.String("to", "", "end date (YYYY-MM-DD), inclusive")
	flag.Parse()

	cfg := common.LoadConfig()
	if cfg.Database.DSN == "" {
		logger.Error("DB_URL env var is required")
		os.Exit(2)
	}

	var from, to *time.Time
	if *fromStr != "" {
		t, err := time.Parse("2006-01-02", *fromStr)
		if err != nil {
			logger.Error("invalid -from date", "value", *fromStr, "error", err)
			os.Exit(2)
		}
		from = &t
	}
	if *toStr != "" {
		t, err := time.Parse("2006-01-02", *toStr)
		if err != nil {
			logger.Error("invalid -to date", "value", *toStr, "error", err)
			os.Exit(2)
		}
		to = &t
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := repository.Open(ctx, repository.Config{
		DSN:             cfg.Database.DSN,
		MaxConns:        5,
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

	svc := export.NewService(repository.NewResumeRepository(db, logger), logger)
	data, err := svc.ExportResumesXLSX(ctx, from, to)
	if err != nil {
		logger.Error("export failed", "error", err)
		os.Exit(1)
	}

	if err := os.WriteFile(*outPath, data, 0o644); err != nil {
		logger.Error("write output", "path", *outPath, "error", err)
		os.Exit(1)
	}
	logger.Info("export written", "path", *outPath, "bytes", len(data))
}
