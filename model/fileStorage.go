package model

import (
	"context"
	"time"
)

// FileStorage - blob storage for signed documents
type FileStorage interface {
	StoreFile(ctx context.Context, key string, data []byte, contentType string) error
	GetSignedURL(ctx context.Context, key string, expiry time.Duration) (string, error)
}
