package services

import (
	"context"
	"fmt"
	"mime"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/openpress/openpress-backend/internal/clients/gcsbucket"
	"github.com/openpress/openpress-backend/internal/logger"
)

// ImageService copies an externally hosted image into our own bucket and
// returns the hosted URL. Callers treat the returned URL as canonical.
type ImageService interface {
	UploadFromURL(ctx context.Context, sourceURL string) (string, error)
}

type imageService struct {
	bucket gcsbucket.Bucket
	client *http.Client
	log    *logger.Logger
}

func NewImageService(bucket gcsbucket.Bucket, baseLog *logger.Logger) ImageService {
	return &imageService{
		bucket: bucket,
		client: &http.Client{Timeout: 30 * time.Second},
		log:    baseLog.With("service", "ImageService"),
	}
}

func (is *imageService) UploadFromURL(ctx context.Context, sourceURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceURL, nil)
	if err != nil {
		return "", fmt.Errorf("building image fetch request: %w", err)
	}
	resp, err := is.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching image %s: %w", sourceURL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetching image %s: status %d", sourceURL, resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	objectName := "images/" + uuid.NewString() + extensionFor(contentType)
	hostedURL, err := is.bucket.Upload(ctx, objectName, contentType, resp.Body)
	if err != nil {
		return "", fmt.Errorf("uploading image: %w", err)
	}
	is.log.Debug("rehosted image", "source", sourceURL, "hosted", hostedURL)
	return hostedURL, nil
}

func extensionFor(contentType string) string {
	exts, err := mime.ExtensionsByType(contentType)
	if err != nil || len(exts) == 0 {
		return ""
	}
	return exts[0]
}
