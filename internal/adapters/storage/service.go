// Package storage stores uploaded media in an S3-compatible bucket.
package storage

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned when an object does not exist.
var ErrNotFound = errors.New("object not found")

// Object describes a stored file.
type Object struct {
	// PublicID is the object name without the folder prefix.
	PublicID string
	Key      string
	URL      string
}

// StorageService defines the object storage operations used by uploads.
type StorageService interface {
	// UploadFile stores the reader under a unique name derived from fileName.
	UploadFile(ctx context.Context, fileName, contentType string, reader io.Reader, size int64) (Object, error)

	// DeleteObject removes an object. It returns ErrNotFound when nothing
	// is stored under publicID.
	DeleteObject(ctx context.Context, publicID string) error

	// EnsureBucketExists creates the uploads bucket if it doesn't exist.
	EnsureBucketExists(ctx context.Context) error

	ValidateContentType(contentType string) error
	ValidateFileSize(sizeBytes int64) error
}

// Config defines the configuration interface for storage.
type Config interface {
	GetMinIOEndpoint() string
	GetMinIOAccessKey() string
	GetMinIOSecretKey() string
	GetMinIOUseSSL() bool
	GetMinIOMaxFileSize() int64
	GetMinIOBucketUploads() string
	GetMinIOPublicURL() string
	IsMinIOEnabled() bool
}
