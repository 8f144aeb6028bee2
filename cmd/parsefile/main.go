package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/joseph-ayodele/resume-parser/internal/common"
	"github.com/joseph-ayodele/resume-parser/internal/extract"
	"github.com/joseph-ayodele/resume-parser/internal/llm/groq"
)

// parsefile runs extraction and inference on a local file, skipping
// retrieval and persistence. Handy for prompt and extraction debugging.
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if len(os.Args) < 2 {
		logger.Error("usage: parsefile <path> [mime-type]")
		os.Exit(2)
	}
	path := os.Args[1]
	mimeType := ""
	if len(os.Args) >= 3 {
		mimeType = os.Args[2]
	}

	cfg := common.LoadConfig()
	if cfg.LLM.APIKey == "" {
		logger.Error("GROQ_API_KEY env var is required")
		os.Exit(2)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Error("read file", "path", path, "error", err)
		os.Exit(1)
	}

	extractor := extract.NewExtractor(logger)
	res, err := extractor.Extract(data, mimeType, filepath.Base(path))
	if err != nil {
		logger.Error("extract failed", "path", path, "error", err)
		os.Exit(1)
	}
	if res.Text == "" {
		logger.Error("no text extracted", "path", path, "format", string(res.Format))
		os.Exit(1)
	}
	logger.Info("extracted", "format", string(res.Format), "text_len", len(res.Text))

	client := groq.NewClient(groq.Config{
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
	}, logger)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Parse.DefaultTimeout)
	defer cancel()

	start := time.Now()
	fields, _, err := client.ExtractFields(ctx, res.Text)
	if err != nil {
		logger.Error("inference failed", "error", err)
		os.Exit(1)
	}
	logger.Info("inference ok", "elapsed_ms", time.Since(start).Milliseconds())

	out, _ := json.MarshalIndent(fields, "", "  ")
	fmt.Println(string(out))
}
