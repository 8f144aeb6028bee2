package common

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppErrorMessage(t *testing.T) {
	err := NewAppError(CodeExtractionFailed, "could not parse document", errors.New("bad xref"))
	assert.Equal(t, "EXTRACTION_FAILED: could not parse document: bad xref", err.Error())

	bare := InvalidRequestError("fileId is required")
	assert.Equal(t, "INVALID_REQUEST: fileId is required", bare.Error())
}

func TestAppErrorUnwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := TimeoutError("inference timed out", cause)
	assert.ErrorIs(t, err, cause)
}

func TestAsAppErrorThroughWrapping(t *testing.T) {
	inner := NotFoundError("file abc not found", nil)
	wrapped := fmt.Errorf("fetch stage: %w", inner)

	ae, ok := AsAppError(wrapped)
	require.True(t, ok)
	assert.Equal(t, CodeNotFound, ae.Code)
	assert.Equal(t, "file abc not found", ae.Message)

	_, ok = AsAppError(errors.New("plain"))
	assert.False(t, ok)
}

func TestHTTPStatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{InvalidRequestError("bad"), http.StatusBadRequest},
		{NoTextExtractedError(), http.StatusBadRequest},
		{NotFoundError("gone", nil), http.StatusNotFound},
		{AccessDeniedError("no", nil), http.StatusForbidden},
		{ExtractionFailedError(errors.New("x")), http.StatusUnprocessableEntity},
		{UpstreamServiceError(429, "rate limited"), http.StatusBadGateway},
		{MalformedInferenceOutputError(errors.New("x")), http.StatusBadGateway},
		{TimeoutError("slow", nil), http.StatusGatewayTimeout},
		{PersistenceError(errors.New("x")), http.StatusInternalServerError},
		{errors.New("untyped"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, HTTPStatus(tc.err), "err=%v", tc.err)
	}
}
