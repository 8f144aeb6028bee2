package groq

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/resume-parser/internal/common"
	"github.com/joseph-ayodele/resume-parser/internal/llm"
)

// ExtractFields implements llm.FieldExtractor over text-only chat/completions.
// A non-2xx status surfaces as an upstream error with the raw body attached;
// a 2xx whose content is not valid schema-shaped JSON fails the request.
// There is no raw-text degradation path and no automatic retry.
func (c *Client) ExtractFields(ctx context.Context, text string) (llm.ResumeFields, []byte, error) {
	rid := uuid.New().String()
	start := time.Now()

	c.log.Info("llm.extract.start",
		"req_id", rid,
		"model", c.cfg.Model,
		"temp", c.cfg.Temperature,
		"max_tokens", c.cfg.MaxTokens,
		"text_len", len(text),
	)

	body := map[string]any{
		"model": c.cfg.Model,
		"messages": []map[string]any{
			{"role": "system", "content": llm.SystemInstruction()},
			{"role": "user", "content": text},
		},
		"temperature":     c.cfg.Temperature,
		"max_tokens":      c.cfg.MaxTokens,
		"response_format": map[string]any{"type": "json_object"},
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	raw, status, err := c.post(ctx, endpoint, body)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			c.log.Error("llm.extract.timeout",
				"req_id", rid, "elapsed_ms", time.Since(start).Milliseconds())
			return llm.ResumeFields{}, raw, common.TimeoutError("inference call timed out", err)
		}
		if status > 0 {
			c.log.Error("llm.extract.upstream_error",
				"req_id", rid, "status", status, "raw_bytes", len(raw),
				"elapsed_ms", time.Since(start).Milliseconds())
			return llm.ResumeFields{}, raw, common.UpstreamServiceError(status, string(raw))
		}
		c.log.Error("llm.extract.http_error",
			"req_id", rid, "error", err, "elapsed_ms", time.Since(start).Milliseconds())
		return llm.ResumeFields{}, raw, fmt.Errorf("inference http error: %w", err)
	}

	var cc struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &cc); err != nil {
		c.log.Error("llm.extract.decode_error",
			"req_id", rid, "error", err, "raw_bytes", len(raw),
			"elapsed_ms", time.Since(start).Milliseconds())
		return llm.ResumeFields{}, raw, common.MalformedInferenceOutputError(err)
	}
	if len(cc.Choices) == 0 {
		c.log.Error("llm.extract.no_choices",
			"req_id", rid, "raw", string(raw),
			"elapsed_ms", time.Since(start).Milliseconds())
		return llm.ResumeFields{}, raw, common.MalformedInferenceOutputError(fmt.Errorf("no choices in response"))
	}
	content := []byte(strings.TrimSpace(cc.Choices[0].Message.Content))

	if err := llm.ValidateResumeOutput(content); err != nil {
		c.log.Error("llm.extract.schema_validation_failed",
			"req_id", rid, "error", err, "content", string(content),
			"elapsed_ms", time.Since(start).Milliseconds())
		return llm.ResumeFields{}, content, common.MalformedInferenceOutputError(err)
	}

	var out llm.ResumeFields
	if err := json.Unmarshal(content, &out); err != nil {
		c.log.Error("llm.extract.unmarshal_failed",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds())
		return llm.ResumeFields{}, content, common.MalformedInferenceOutputError(err)
	}

	c.log.Info("llm.extract.ok",
		"req_id", rid,
		"name", out.Name,
		"skills", len(out.Skills),
		"experience", len(out.Experience),
		"education", len(out.Education),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return out, content, nil
}

// post sends the request and returns the raw body. On a non-2xx status it
// returns the body, the status, and an error; callers decide the taxonomy.
func (c *Client) post(ctx context.Context, url string, body map[string]any) ([]byte, int, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, 0, fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer func(Body io.ReadCloser) {
		if err := Body.Close(); err != nil {
			c.log.Warn("groq response body close error", "error", err)
		}
	}(resp.Body)

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return raw, resp.StatusCode, fmt.Errorf("groq status %d", resp.StatusCode)
	}
	return raw, resp.StatusCode, nil
}
