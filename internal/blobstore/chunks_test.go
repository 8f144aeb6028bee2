package blobstore

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"

	"github.com/joseph-ayodele/resume-parser/internal/common"
)

func TestReadChunksAccumulatesAcrossChunkBoundaries(t *testing.T) {
	payload := bytes.Repeat([]byte("abcdefgh"), 100)

	got, err := readChunks(bytes.NewReader(payload), 7)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestReadChunksEmptyTransfer(t *testing.T) {
	got, err := readChunks(strings.NewReader(""), 1<<20)
	require.NoError(t, err)
	assert.Empty(t, got)
}

type failingReader struct {
	data []byte
	err  error
}

func (r *failingReader) Read(p []byte) (int, error) {
	if len(r.data) > 0 {
		n := copy(p, r.data)
		r.data = r.data[n:]
		return n, nil
	}
	return 0, r.err
}

func TestReadChunksSurfacesTransportError(t *testing.T) {
	boom := errors.New("connection reset")
	_, err := readChunks(&failingReader{data: []byte("partial"), err: boom}, 4)
	require.ErrorIs(t, err, boom)
}

func TestMapDriveErrorNotFound(t *testing.T) {
	err := mapDriveError("abc", &googleapi.Error{Code: 404, Message: "File not found"})
	ae, ok := common.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, common.CodeNotFound, ae.Code)
	assert.Contains(t, ae.Message, "abc")
}

func TestMapDriveErrorAccessDenied(t *testing.T) {
	err := mapDriveError("abc", &googleapi.Error{Code: 403, Message: "Forbidden"})
	ae, ok := common.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, common.CodeAccessDenied, ae.Code)
}

func TestMapDriveErrorTransportIsNotTyped(t *testing.T) {
	err := mapDriveError("abc", io.ErrUnexpectedEOF)
	_, ok := common.AsAppError(err)
	assert.False(t, ok)
}
