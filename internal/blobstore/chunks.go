package blobstore

import (
	"bytes"
	"io"
)

// readChunks drains r one fixed-size chunk at a time, accumulating bytes
// until the transfer signals completion with io.EOF. The accumulated buffer
// is the document's full content.
func readChunks(r io.Reader, chunkSize int) ([]byte, error) {
	if chunkSize <= 0 {
		chunkSize = 1 << 20
	}
	var buf bytes.Buffer
	chunk := make([]byte, chunkSize)
	for {
		n, err := r.Read(chunk)
		if n > 0 {
			buf.Write(chunk[:n])
		}
		if err == io.EOF {
			return buf.Bytes(), nil
		}
		if err != nil {
			return nil, err
		}
	}
}
