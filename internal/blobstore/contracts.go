package blobstore

import "context"

// RawDocument is a fetched document: raw bytes plus the MIME type the store
// declared for the transfer. The retrieval stage never inspects the bytes;
// format interpretation belongs to the extractor.
type RawDocument struct {
	Data     []byte
	MimeType string
}

// Downloader fetches a document's bytes from the blob store by opaque ID.
type Downloader interface {
	Fetch(ctx context.Context, fileID string) (RawDocument, error)
}
