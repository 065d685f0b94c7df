package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Folder is the key prefix of every upload.
const Folder = "company-portfolio"

var unsafeName = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// MinIOService implements StorageService using MinIO.
type MinIOService struct {
	client      *minio.Client
	bucket      string
	baseURL     string
	maxFileSize int64
}

// NewMinIOService creates a new MinIO storage service.
func NewMinIOService(cfg Config) (*MinIOService, error) {
	if !cfg.IsMinIOEnabled() {
		return nil, fmt.Errorf("MinIO is not configured")
	}

	client, err := minio.New(cfg.GetMinIOEndpoint(), &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.GetMinIOAccessKey(), cfg.GetMinIOSecretKey(), ""),
		Secure: cfg.GetMinIOUseSSL(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	return &MinIOService{
		client:      client,
		bucket:      cfg.GetMinIOBucketUploads(),
		baseURL:     BaseURL(cfg),
		maxFileSize: cfg.GetMinIOMaxFileSize(),
	}, nil
}

// BaseURL is the public prefix objects are served under: the configured
// public URL, or the endpoint itself, followed by the bucket.
func BaseURL(cfg Config) string {
	base := strings.TrimRight(cfg.GetMinIOPublicURL(), "/")
	if base == "" {
		scheme := "http"
		if cfg.GetMinIOUseSSL() {
			scheme = "https"
		}
		base = scheme + "://" + cfg.GetMinIOEndpoint()
	}
	return base + "/" + cfg.GetMinIOBucketUploads()
}

// EnsureBucketExists creates the bucket if it doesn't exist.
func (s *MinIOService) EnsureBucketExists(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	if !exists {
		err = s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{})
		if err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", s.bucket, err)
		}
	}

	return nil
}

// UploadFile uploads a file directly to storage from an io.Reader.
func (s *MinIOService) UploadFile(ctx context.Context, fileName, contentType string, reader io.Reader, size int64) (Object, error) {
	publicID := UniqueName(fileName)
	key := Key(publicID)

	_, err := s.client.PutObject(ctx, s.bucket, key, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return Object{}, fmt.Errorf("failed to upload file %s: %w", key, err)
	}
	return Object{PublicID: publicID, Key: key, URL: s.baseURL + "/" + key}, nil
}

// DeleteObject removes an object from storage.
func (s *MinIOService) DeleteObject(ctx context.Context, publicID string) error {
	if !ValidPublicID(publicID) {
		return ErrNotFound
	}
	key := Key(publicID)

	if _, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{}); err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return ErrNotFound
		}
		return fmt.Errorf("failed to stat object %s: %w", key, err)
	}
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete object %s: %w", key, err)
	}
	return nil
}

// UniqueName turns an original file name into a collision-free object name
// of the form <base>_<8 hex><ext>.
func UniqueName(fileName string) string {
	ext := strings.ToLower(path.Ext(fileName))
	base := strings.Trim(unsafeName.ReplaceAllString(strings.TrimSuffix(path.Base(fileName), path.Ext(fileName)), "-"), "-.")
	if base == "" {
		base = "file"
	}
	return fmt.Sprintf("%s_%s%s", base, uuid.New().String()[:8], unsafeName.ReplaceAllString(ext, ""))
}

// Key is the full object key of a public id.
func Key(publicID string) string {
	return Folder + "/" + publicID
}

// ValidPublicID reports whether id names an object inside the upload folder.
func ValidPublicID(id string) bool {
	return id != "" && id != "." && id != ".." && !unsafeName.MatchString(id)
}
