package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/joseph-ayodele/resume-parser/internal/export"
	"github.com/joseph-ayodele/resume-parser/internal/pipeline"
	"github.com/joseph-ayodele/resume-parser/internal/repository"
)

// Service is the HTTP surface over the parse pipeline. The export service
// and repository are optional; their routes answer 404-style when absent.
type Service struct {
	logger   *slog.Logger
	pipeline *pipeline.Pipeline
	resumes  repository.ResumeRepository
	exporter *export.Service
	db       *repository.DB
}

func NewService(
	logger *slog.Logger,
	p *pipeline.Pipeline,
	resumes repository.ResumeRepository,
	exporter *export.Service,
	db *repository.DB,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		logger:   logger,
		pipeline: p,
		resumes:  resumes,
		exporter: exporter,
		db:       db,
	}
}

// RegisterHTTP registers routes on the chi router.
func (s *Service) RegisterHTTP(r chi.Router) {
	r.Post("/parse", s.handleParse)
	r.Get("/healthz", s.handleHealth)
	r.Get("/resumes", s.handleListResumes)
	r.Get("/resumes/export", s.handleExportResumes)
}

func (s *Service) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.db != nil {
		if err := repository.HealthCheck(r.Context(), s.db, 3*time.Second, s.logger); err != nil {
			s.logger.Error("healthz.db_ping_failed", "error", err)
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "db unreachable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
