// Package upload pushes shopper photos to blob storage through the
// backend's presigned-URL flow. Uploads are sequential and, once
// started, not cancellable beyond the request context.
package upload

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Presigner asks the backend for a one-shot upload URL pair.
type Presigner interface {
	PresignUpload(ctx context.Context, contentType, folder string) (signedURL, publicURL string, err error)
}

// S3Uploader performs the two-step upload: presign, then PUT the bytes
// to the signed URL. The returned public URL is the only thing callers
// keep.
type S3Uploader struct {
	presigner  Presigner
	httpClient *http.Client
	logger     *zap.Logger
}

func NewS3Uploader(presigner Presigner, logger *zap.Logger) *S3Uploader {
	return &S3Uploader{
		presigner: presigner,
		httpClient: &http.Client{
			Timeout: 2 * time.Minute,
		},
		logger: logger,
	}
}

func (u *S3Uploader) Upload(ctx context.Context, contentType, folder string, data []byte) (string, error) {
	signedURL, publicURL, err := u.presigner.PresignUpload(ctx, contentType, folder)
	if err != nil {
		return "", fmt.Errorf("presign upload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, signedURL, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.ContentLength = int64(len(data))

	resp, err := u.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	u.logger.Debug("uploaded photo",
		zap.String("folder", folder),
		zap.Int("bytes", len(data)))
	return publicURL, nil
}
