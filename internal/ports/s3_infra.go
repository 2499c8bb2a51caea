package ports

import (
	"context"
	"io"
)

// S3Client: низкоуровневый клиент к S3-совместимому хранилищу (архив аудио напоминаний)
type S3Client interface {
	PutObject(ctx context.Context, key string, r io.Reader, size int64, contentType string) (publicURL string, err error)
}
