package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/resume-parser/internal/blobstore"
	"github.com/joseph-ayodele/resume-parser/internal/common"
	"github.com/joseph-ayodele/resume-parser/internal/extract"
	"github.com/joseph-ayodele/resume-parser/internal/llm"
	"github.com/joseph-ayodele/resume-parser/internal/pipeline"
)

type stubStore struct {
	doc blobstore.RawDocument
	err error
}

func (s *stubStore) Fetch(ctx context.Context, fileID string) (blobstore.RawDocument, error) {
	if s.err != nil {
		return blobstore.RawDocument{}, s.err
	}
	return s.doc, nil
}

type stubExtractor struct{}

func (stubExtractor) Extract(data []byte, mimeTypeHint, sourceNameHint string) (extract.Result, error) {
	return extract.Result{Text: string(data), Format: extract.FormatPlain}, nil
}

type stubFields struct {
	fields  llm.ResumeFields
	err     error
	timeout time.Duration
}

func (s *stubFields) ExtractFields(ctx context.Context, text string) (llm.ResumeFields, []byte, error) {
	if d, ok := ctx.Deadline(); ok {
		s.timeout = time.Until(d)
	}
	if s.err != nil {
		return llm.ResumeFields{}, nil, s.err
	}
	raw, _ := json.Marshal(s.fields)
	return s.fields, raw, nil
}

func newTestRouter(t *testing.T, store *stubStore, fields *stubFields) chi.Router {
	t.Helper()
	p := pipeline.New(nil, pipeline.Config{}, store, stubExtractor{}, fields, nil)
	svc := NewService(nil, p, nil, nil, nil)
	r := chi.NewRouter()
	svc.RegisterHTTP(r)
	return r
}

func postParse(t *testing.T, r chi.Router, body string, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/parse", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestParseHappyPath(t *testing.T) {
	store := &stubStore{doc: blobstore.RawDocument{Data: []byte("resume text"), MimeType: "text/plain"}}
	fields := &stubFields{fields: llm.ResumeFields{
		Name:   "Ada Lovelace",
		Email:  "ada@example.com",
		Skills: []string{"Go"},
	}}
	r := newTestRouter(t, store, fields)

	rec := postParse(t, r, `{"fileId":"abc123"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ParseResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "parsed", resp.Message)
	assert.Equal(t, "abc123", resp.FileID)
	assert.Equal(t, "Ada Lovelace", resp.ParsedData.Name)
	assert.Equal(t, []string{"Go"}, resp.ParsedData.Skills)
}

func TestParseMissingFileID(t *testing.T) {
	r := newTestRouter(t, &stubStore{}, &stubFields{})

	rec := postParse(t, r, `{"fileId":"  "}`, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, common.CodeInvalidRequest, body.Error.Code)
}

func TestParseBadBody(t *testing.T) {
	r := newTestRouter(t, &stubStore{}, &stubFields{})

	rec := postParse(t, r, `{"fileId":`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestParseNotFoundPropagates(t *testing.T) {
	store := &stubStore{err: common.NotFoundError("file xyz not found", nil)}
	r := newTestRouter(t, store, &stubFields{})

	rec := postParse(t, r, `{"fileId":"xyz"}`, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, common.CodeNotFound, body.Error.Code)
	assert.Contains(t, body.Error.Message, "xyz")
}

func TestParseTimeoutHeader(t *testing.T) {
	store := &stubStore{doc: blobstore.RawDocument{Data: []byte("text"), MimeType: "text/plain"}}
	fields := &stubFields{}
	r := newTestRouter(t, store, fields)

	rec := postParse(t, r, `{"fileId":"abc"}`, map[string]string{"X-API-Timeout": "10"})
	require.Equal(t, http.StatusOK, rec.Code)

	// the header (seconds) became the inference deadline
	assert.InDelta(t, 10*time.Second, fields.timeout, float64(time.Second))
}

func TestParseBodyTimeoutBeatsHeader(t *testing.T) {
	store := &stubStore{doc: blobstore.RawDocument{Data: []byte("text"), MimeType: "text/plain"}}
	fields := &stubFields{}
	r := newTestRouter(t, store, fields)

	rec := postParse(t, r, `{"fileId":"abc","timeoutSeconds":5}`, map[string]string{"X-API-Timeout": "60"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.InDelta(t, 5*time.Second, fields.timeout, float64(time.Second))
}

func TestHealthzWithoutDB(t *testing.T) {
	r := newTestRouter(t, &stubStore{}, &stubFields{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestListResumesWithoutRepo(t *testing.T) {
	r := newTestRouter(t, &stubStore{}, &stubFields{})

	req := httptest.NewRequest(http.MethodGet, "/resumes", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
