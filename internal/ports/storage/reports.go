package storage

import (
	"context"
	"time"
)

// IReportStorage интерфейс для S3-совместимого хранилища отчётов (MinIO)
type IReportStorage interface {
	PutFile(ctx context.Context, path string, data []byte, contentType string) error
	GetFile(ctx context.Context, path string) ([]byte, error)
	GetPresignedURL(ctx context.Context, path string, expires time.Duration) (string, error)
}
