package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

const defaultPublicBaseURL = "https://storage.googleapis.com"

// GCSUploader загружает фотографии вопросов и ответов в бакет Google Cloud Storage
type GCSUploader struct {
	client        *storage.Client
	bucket        string
	publicBaseURL string
	now           func() time.Time
	logger        *zap.Logger
}

// NewGCSUploader создаёт клиент. Без credentialsFile используются Application Default Credentials.
func NewGCSUploader(ctx context.Context, bucket, credentialsFile, publicBaseURL string, logger *zap.Logger) (*GCSUploader, error) {
	if bucket == "" {
		return nil, fmt.Errorf("bucket is required")
	}

	var opts []option.ClientOption
	if credentialsFile != "" {
		if _, err := os.Stat(credentialsFile); err != nil {
			return nil, fmt.Errorf("service account key not found at path %s: %w", credentialsFile, err)
		}
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create GCS client: %w", err)
	}

	if publicBaseURL == "" {
		publicBaseURL = defaultPublicBaseURL + "/" + bucket
	}

	return &GCSUploader{
		client:        client,
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		now:           time.Now,
		logger:        logger,
	}, nil
}

// Upload сохраняет файл и возвращает его публичный URL
func (u *GCSUploader) Upload(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	object := ObjectName(u.now(), filename)

	writer := u.client.Bucket(u.bucket).Object(object).NewWriter(ctx)
	writer.ContentType = contentType
	writer.CacheControl = "public, max-age=31536000, immutable"

	if _, err := io.Copy(writer, r); err != nil {
		_ = writer.Close()
		return "", fmt.Errorf("copy %s to gs://%s/%s: %w", filename, u.bucket, object, err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("close GCS writer for %s: %w", object, err)
	}

	u.logger.Debug("Photo uploaded",
		zap.String("bucket", u.bucket),
		zap.String("object", object),
	)

	return PublicURL(u.publicBaseURL, object), nil
}

// Close закрывает клиент GCS
func (u *GCSUploader) Close() error {
	return u.client.Close()
}

// ObjectName имя объекта вида uploads/2026/03/02/<uuid>.jpg. Исходное имя файла не сохраняется.
func ObjectName(now time.Time, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	if len(ext) > 8 {
		ext = ""
	}
	return fmt.Sprintf("uploads/%s/%s%s", now.UTC().Format("2006/01/02"), uuid.NewString(), ext)
}

// PublicURL склеивает базовый URL и имя объекта
func PublicURL(base, object string) string {
	segments := strings.Split(object, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.TrimRight(base, "/") + "/" + strings.Join(segments, "/")
}
