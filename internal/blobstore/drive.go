package blobstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	drive "google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/joseph-ayodele/resume-parser/internal/common"
)

// DriveClient downloads file content from Google Drive. Built once at
// startup from service-account credentials and shared read-only across runs.
type DriveClient struct {
	svc       *drive.Service
	chunkSize int
	logger    *slog.Logger
}

func NewDriveClient(ctx context.Context, serviceAccountJSON []byte, chunkSize int, logger *slog.Logger) (*DriveClient, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if chunkSize <= 0 {
		chunkSize = 1 << 20
	}
	svc, err := drive.NewService(ctx,
		option.WithCredentialsJSON(serviceAccountJSON),
		option.WithScopes(drive.DriveReadonlyScope),
	)
	if err != nil {
		return nil, fmt.Errorf("build drive service: %w", err)
	}
	return &DriveClient{svc: svc, chunkSize: chunkSize, logger: logger}, nil
}

// Fetch issues a media download for fileID and accumulates the transfer
// chunk by chunk until it reports completion. The caller's context bounds
// the whole transfer; a never-completing stream is cut off by its deadline.
func (c *DriveClient) Fetch(ctx context.Context, fileID string) (RawDocument, error) {
	start := time.Now()

	resp, err := c.svc.Files.Get(fileID).SupportsAllDrives(true).Context(ctx).Download()
	if err != nil {
		c.logger.Error("drive.fetch.error", "file_id", fileID, "error", err)
		return RawDocument{}, mapDriveError(fileID, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.Warn("drive.fetch.body_close_error", "file_id", fileID, "error", err)
		}
	}()

	data, err := readChunks(resp.Body, c.chunkSize)
	if err != nil {
		c.logger.Error("drive.fetch.read_error", "file_id", fileID, "error", err)
		if errors.Is(err, context.DeadlineExceeded) {
			return RawDocument{}, common.TimeoutError("download timed out", err)
		}
		return RawDocument{}, fmt.Errorf("drive download: %w", err)
	}

	c.logger.Info("drive.fetch.ok",
		"file_id", fileID,
		"bytes", len(data),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return RawDocument{
		Data:     data,
		MimeType: resp.Header.Get("Content-Type"),
	}, nil
}

func mapDriveError(fileID string, err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch gerr.Code {
		case http.StatusNotFound:
			return common.NotFoundError(fmt.Sprintf("file %s not found", fileID), err)
		case http.StatusForbidden:
			return common.AccessDeniedError(fmt.Sprintf("access to file %s denied", fileID), err)
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return common.TimeoutError("download timed out", err)
	}
	return fmt.Errorf("drive download: %w", err)
}
