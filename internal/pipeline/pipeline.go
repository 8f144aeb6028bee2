package pipeline

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/joseph-ayodele/resume-parser/internal/blobstore"
	"github.com/joseph-ayodele/resume-parser/internal/common"
	"github.com/joseph-ayodele/resume-parser/internal/entity"
	"github.com/joseph-ayodele/resume-parser/internal/extract"
	"github.com/joseph-ayodele/resume-parser/internal/llm"
	"github.com/joseph-ayodele/resume-parser/internal/repository"
)

// State tracks a run through the pipeline. Each run either reaches COMPLETE
// or exits with one typed error from the failing stage.
type State string

const (
	StateReceived       State = "RECEIVED"
	StateRetrieved      State = "RETRIEVED"
	StateExtracted      State = "EXTRACTED"
	StateInferred       State = "INFERRED"
	StatePersisted      State = "PERSISTED"
	StatePersistSkipped State = "PERSIST_SKIPPED"
	StateComplete       State = "COMPLETE"
)

// Config holds per-request behavior for the orchestrator.
type Config struct {
	DefaultTimeout time.Duration // inference timeout when the caller supplies none
	MaxTimeout     time.Duration // upper clamp for caller-supplied timeouts
	FetchTimeout   time.Duration // fixed retrieval bound, not caller-configurable
}

// Request is one document to parse. Timeout governs only the inference call.
type Request struct {
	FileID       string
	MimeTypeHint string
	SourceName   string
	Timeout      time.Duration
}

// Result of a successful run.
type Result struct {
	FileID    string
	Parsed    llm.ResumeFields
	Format    extract.Format
	Persisted bool
}

// Pipeline composes retrieval, extraction, inference and best-effort
// persistence into one request-scoped operation. All collaborators are
// injected once at startup and shared read-only across concurrent runs.
type Pipeline struct {
	logger    *slog.Logger
	cfg       Config
	store     blobstore.Downloader
	extractor extract.TextExtractor
	fields    llm.FieldExtractor
	resumes   repository.ResumeRepository // nil disables persistence
}

func New(
	logger *slog.Logger,
	cfg Config,
	store blobstore.Downloader,
	extractor extract.TextExtractor,
	fields llm.FieldExtractor,
	resumes repository.ResumeRepository,
) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.DefaultTimeout <= 0 {
		cfg.DefaultTimeout = 30 * time.Second
	}
	if cfg.MaxTimeout <= 0 {
		cfg.MaxTimeout = 2 * time.Minute
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = 2 * time.Minute
	}
	return &Pipeline{
		logger:    logger,
		cfg:       cfg,
		store:     store,
		extractor: extractor,
		fields:    fields,
		resumes:   resumes,
	}
}

// Parse runs the full pipeline for one document reference. Persistence is a
// fire-and-forget write: its failure is logged and discarded, never surfaced.
func (p *Pipeline) Parse(ctx context.Context, req Request) (Result, error) {
	state := StateReceived
	start := time.Now()

	if strings.TrimSpace(req.FileID) == "" {
		return Result{}, common.InvalidRequestError("fileId is required")
	}

	fetchCtx, cancelFetch := context.WithTimeout(ctx, p.cfg.FetchTimeout)
	raw, err := p.store.Fetch(fetchCtx, req.FileID)
	cancelFetch()
	if err != nil {
		p.logger.Error("pipeline.fetch.failed", "file_id", req.FileID, "state", string(state), "err", err)
		return Result{}, err
	}
	state = StateRetrieved
	p.logger.Info("pipeline.fetch.ok",
		"file_id", req.FileID, "state", string(state),
		"bytes", len(raw.Data), "declared_mime", raw.MimeType,
	)

	hint := req.MimeTypeHint
	if hint == "" {
		hint = raw.MimeType
	}
	res, err := p.extractor.Extract(raw.Data, hint, req.SourceName)
	if err != nil {
		p.logger.Error("pipeline.extract.failed", "file_id", req.FileID, "state", string(state), "err", err)
		if _, ok := common.AsAppError(err); ok {
			return Result{}, err
		}
		return Result{}, common.ExtractionFailedError(err)
	}
	if res.Text == "" {
		// well-formed but nothing to read; a different problem than a
		// transport or parse failure, and client-actionable
		p.logger.Warn("pipeline.extract.no_text", "file_id", req.FileID, "format", string(res.Format))
		return Result{}, common.NoTextExtractedError()
	}
	state = StateExtracted
	p.logger.Info("pipeline.extract.ok",
		"file_id", req.FileID, "state", string(state),
		"format", string(res.Format), "text_len", len(res.Text),
	)

	inferCtx, cancelInfer := context.WithTimeout(ctx, p.inferTimeout(req.Timeout))
	fields, _, err := p.fields.ExtractFields(inferCtx, res.Text)
	cancelInfer()
	if err != nil {
		p.logger.Error("pipeline.infer.failed", "file_id", req.FileID, "state", string(state), "err", err)
		return Result{}, err
	}
	state = StateInferred

	persisted := false
	if p.resumes != nil {
		row := &entity.Resume{
			FileID:     req.FileID,
			Name:       fields.Name,
			Email:      fields.Email,
			Phone:      fields.Phone,
			Skills:     fields.Skills,
			Experience: fields.Experience,
			Education:  fields.Education,
			ParsedAt:   time.Now().UTC(),
		}
		if err := p.resumes.Insert(ctx, row); err != nil {
			// catch-and-discard: the record still goes back to the caller
			p.logger.Warn("pipeline.persist.failed", "file_id", req.FileID, "err", err)
			state = StatePersistSkipped
		} else {
			persisted = true
			state = StatePersisted
		}
	} else {
		state = StatePersistSkipped
	}

	p.logger.Info("pipeline.complete",
		"file_id", req.FileID,
		"state", string(StateComplete),
		"persist_state", string(state),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return Result{
		FileID:    req.FileID,
		Parsed:    fields,
		Format:    res.Format,
		Persisted: persisted,
	}, nil
}

func (p *Pipeline) inferTimeout(requested time.Duration) time.Duration {
	if requested <= 0 {
		return p.cfg.DefaultTimeout
	}
	if requested > p.cfg.MaxTimeout {
		return p.cfg.MaxTimeout
	}
	return requested
}
