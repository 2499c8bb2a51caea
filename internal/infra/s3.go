package infra

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/Vovarama1992/medivoice/internal/ports"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type S3Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	// Insecure: http вместо https (локальный minio)
	Insecure bool
}

type s3Client struct {
	client *minio.Client
	bucket string
	host   string
}

func NewS3Client(ctx context.Context, cfg S3Config) (ports.S3Client, error) {
	endpoint := strings.TrimPrefix(strings.TrimPrefix(cfg.Endpoint, "https://"), "http://")
	if strings.HasPrefix(cfg.Endpoint, "http://") {
		cfg.Insecure = true
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: !cfg.Insecure,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to init S3 client: %w", err)
	}

	// бакет должен существовать заранее
	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %q does not exist", cfg.Bucket)
	}

	scheme := "https"
	if cfg.Insecure {
		scheme = "http"
	}

	return &s3Client{
		client: client,
		bucket: cfg.Bucket,
		host:   fmt.Sprintf("%s://%s", scheme, endpoint),
	}, nil
}

// PutObject загружает аудио и возвращает публичный URL.
// size < 0 допустим: minio сам разобьёт поток на части.
func (s *s3Client) PutObject(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{
		ContentType:  contentType,
		UserMetadata: map[string]string{"uploaded-at": time.Now().UTC().Format(time.RFC3339)},
	})
	if err != nil {
		return "", fmt.Errorf("upload failed: %w", err)
	}
	return PublicURL(s.host, s.bucket, key), nil
}

// PublicURL экранирует каждый сегмент ключа, слэши сохраняются.
func PublicURL(host, bucket, key string) string {
	parts := strings.Split(path.Clean("/"+key)[1:], "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return fmt.Sprintf("%s/%s/%s", strings.TrimRight(host, "/"), bucket, strings.Join(parts, "/"))
}

// ReminderAudioKey: путь в бакете: reminders/<дата>/<id>.mp3
func ReminderAudioKey(id string, at time.Time) string {
	return fmt.Sprintf("reminders/%s/%s.mp3", at.UTC().Format("2006-01-02"), path.Base(id))
}
