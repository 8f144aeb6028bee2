package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/joseph-ayodele/resume-parser/internal/blobstore"
	"github.com/joseph-ayodele/resume-parser/internal/common"
	"github.com/joseph-ayodele/resume-parser/internal/export"
	"github.com/joseph-ayodele/resume-parser/internal/extract"
	"github.com/joseph-ayodele/resume-parser/internal/llm/groq"
	"github.com/joseph-ayodele/resume-parser/internal/pipeline"
	"github.com/joseph-ayodele/resume-parser/internal/repository"
	"github.com/joseph-ayodele/resume-parser/internal/server"
)

func main() {
	// Logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()
	log := logger.Sugar()

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	slogger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(slogger)

	// Context with signal
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Blob store handle, built once at startup and shared across runs
	driveClient, err := blobstore.NewDriveClient(ctx, []byte(cfg.Drive.ServiceAccountJSON), cfg.Drive.ChunkSize, slogger)
	if err != nil {
		log.Fatalf("drive client: %v", err)
	}

	// Persistence is optional: no DSN means parse results are only returned,
	// never stored.
	var (
		db          *repository.DB
		resumesRepo repository.ResumeRepository
		exporter    *export.Service
	)
	if cfg.Database.DSN != "" {
		db, err = repository.Open(ctx, repository.Config{
			DSN:             cfg.Database.DSN,
			MaxConns:        cfg.Database.MaxConns,
			MinConns:        cfg.Database.MinConns,
			MaxConnLifetime: cfg.Database.MaxConnLifetime,
			MaxConnIdleTime: cfg.Database.MaxConnIdleTime,
			DialTimeout:     cfg.Database.DialTimeout,
		}, slogger)
		if err != nil {
			log.Fatalf("opening DB: %v", err)
		}
		defer db.Close(slogger)

		if err := repository.HealthCheck(ctx, db, cfg.Database.HealthTimeout, slogger); err != nil {
			log.Fatalf("DB health failed: %v", err)
		}
		log.Infow("DB health OK")

		resumesRepo = repository.NewResumeRepository(db, slogger)
		exporter = export.NewService(resumesRepo, slogger)
	} else {
		log.Infow("DB_URL not set; persistence disabled")
	}

	groqClient := groq.NewClient(groq.Config{
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
	}, slogger)

	pipe := pipeline.New(slogger, pipeline.Config{
		DefaultTimeout: cfg.Parse.DefaultTimeout,
		MaxTimeout:     cfg.Parse.MaxTimeout,
		FetchTimeout:   cfg.Parse.FetchTimeout,
	}, driveClient, extract.NewExtractor(slogger), groqClient, resumesRepo)

	svc := server.NewService(slogger, pipe, resumesRepo, exporter, db)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	svc.RegisterHTTP(r)

	httpSrv := &http.Server{Addr: cfg.Server.HTTPAddr, Handler: r}
	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http serve: %v", err)
		}
	}()
	log.Infof("HTTP serving on %s", cfg.Server.HTTPAddr)

	<-ctx.Done()
	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("http shutdown: %v", err)
	}
	fmt.Println("stopped.")
}
