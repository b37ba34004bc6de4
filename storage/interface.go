package storage

import (
	"context"
	"time"
)

// StorageInterface is the object-store surface the services depend on.
//
// DeleteObject deliberately returns a bool instead of an error: cascade
// deletes treat storage cleanup as best effort, and a failed object delete
// must never abort a database transaction. Failures are logged inside the
// client.
type StorageInterface interface {
	DeleteObject(ctx context.Context, key string) bool
	GetPresignedUploadURL(ctx context.Context, key, contentType string, expiry time.Duration) (string, error)
	GetPresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error)
	GetURL(key string) string
	Exists(ctx context.Context, key string) (bool, error)
	HealthCheck() error
}

// StorageError carries provider-specific failure detail.
type StorageError struct {
	Provider string `json:"provider"`
	Code     string `json:"code"`
	Message  string `json:"message"`
	Key      string `json:"key,omitempty"`
}

func (e *StorageError) Error() string {
	return e.Message
}

func NewStorageError(provider, code, message, key string) *StorageError {
	return &StorageError{
		Provider: provider,
		Code:     code,
		Message:  message,
		Key:      key,
	}
}
