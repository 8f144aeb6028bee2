package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/joseph-ayodele/resume-parser/internal/common"
	"github.com/joseph-ayodele/resume-parser/internal/llm"
	"github.com/joseph-ayodele/resume-parser/internal/pipeline"
)

// ParseRequest is the inbound body for POST /parse.
type ParseRequest struct {
	FileID         string  `json:"fileId"`
	MimeType       string  `json:"mimeType,omitempty"`
	TimeoutSeconds float64 `json:"timeoutSeconds,omitempty"`
}

// ParseResponse is the success body for POST /parse.
type ParseResponse struct {
	Message    string           `json:"message"`
	FileID     string           `json:"fileId"`
	ParsedData llm.ResumeFields `json:"parsedData"`
}

func (s *Service) handleParse(w http.ResponseWriter, r *http.Request) {
	var req ParseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, common.InvalidRequestError("invalid request body"))
		return
	}

	timeout := time.Duration(req.TimeoutSeconds * float64(time.Second))
	if timeout <= 0 {
		// legacy callers pass the inference timeout as a header, in seconds
		if h := r.Header.Get("X-API-Timeout"); h != "" {
			if secs, err := strconv.ParseFloat(h, 64); err == nil && secs > 0 {
				timeout = time.Duration(secs * float64(time.Second))
			}
		}
	}

	result, err := s.pipeline.Parse(r.Context(), pipeline.Request{
		FileID:       req.FileID,
		MimeTypeHint: req.MimeType,
		Timeout:      timeout,
	})
	if err != nil {
		s.logger.Error("parse.failed", "file_id", req.FileID, "err", err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ParseResponse{
		Message:    "parsed",
		FileID:     result.FileID,
		ParsedData: result.Parsed,
	})
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, err error) {
	status := common.HTTPStatus(err)
	code := common.CodeInternal
	message := "internal error"
	if ae, ok := common.AsAppError(err); ok {
		code = ae.Code
		message = ae.Message
	}
	writeJSON(w, status, errorBody{Error: errorDetail{Code: code, Message: message}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
