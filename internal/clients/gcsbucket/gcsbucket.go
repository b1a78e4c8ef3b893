package gcsbucket

import (
	"context"
	"fmt"
	"io"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/openpress/openpress-backend/internal/logger"
	"github.com/openpress/openpress-backend/internal/utils"
)

// Bucket is the object-storage surface the services depend on. Uploaded
// objects are publicly readable and addressed by PublicURL.
type Bucket interface {
	Upload(ctx context.Context, objectName, contentType string, body io.Reader) (string, error)
	Close() error
}

type gcsBucket struct {
	client     *storage.Client
	bucketName string
	cdnDomain  string
	log        *logger.Logger
}

func New(ctx context.Context, baseLog *logger.Logger) (Bucket, error) {
	log := baseLog.With("client", "GCSBucket")
	bucketName := utils.GetEnv("GCS_BUCKET_NAME", "", log)
	if bucketName == "" {
		return nil, fmt.Errorf("GCS_BUCKET_NAME is required")
	}
	credsFile := utils.GetEnv("GOOGLE_APPLICATION_CREDENTIALS", "", log)
	var opts []option.ClientOption
	if credsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credsFile))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating storage client: %w", err)
	}
	return &gcsBucket{
		client:     client,
		bucketName: bucketName,
		cdnDomain:  utils.GetEnv("CDN_DOMAIN", "", log),
		log:        log,
	}, nil
}

func (b *gcsBucket) Upload(ctx context.Context, objectName, contentType string, body io.Reader) (string, error) {
	uploadCtx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	writer := b.client.Bucket(b.bucketName).Object(objectName).NewWriter(uploadCtx)
	if contentType != "" {
		writer.ContentType = contentType
	}
	if _, err := io.Copy(writer, body); err != nil {
		writer.Close()
		return "", fmt.Errorf("writing object %s: %w", objectName, err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("finalizing object %s: %w", objectName, err)
	}
	b.log.Debug("uploaded object", "object", objectName, "bucket", b.bucketName)
	return b.publicURL(objectName), nil
}

func (b *gcsBucket) publicURL(objectName string) string {
	if b.cdnDomain != "" {
		return fmt.Sprintf("https://%s/%s", b.cdnDomain, objectName)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", b.bucketName, objectName)
}

func (b *gcsBucket) Close() error {
	return b.client.Close()
}
