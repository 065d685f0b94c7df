package storage

import (
	"fmt"
	"strings"
)

// AllowedContentTypes defines the allowed MIME types for uploads.
var AllowedContentTypes = map[string]bool{
	// Images
	"image/jpeg":    true,
	"image/jpg":     true,
	"image/png":     true,
	"image/gif":     true,
	"image/webp":    true,
	"image/svg+xml": true,

	// Documents
	"application/pdf":                                                         true,
	"application/msword":                                                      true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,

	// Video
	"video/mp4":       true,
	"video/avi":       true,
	"video/mov":       true,
	"video/wmv":       true,
	"video/quicktime": true,
	"video/x-msvideo": true,
}

// ValidateContentType checks if the content type is allowed.
func (s *MinIOService) ValidateContentType(contentType string) error {
	return ValidateContentType(contentType)
}

// ValidateFileSize checks if the file size is within limits.
func (s *MinIOService) ValidateFileSize(sizeBytes int64) error {
	return ValidateFileSize(sizeBytes, s.maxFileSize)
}

// ValidateContentType checks a MIME type against AllowedContentTypes,
// ignoring parameters such as charset.
func ValidateContentType(contentType string) error {
	if !AllowedContentTypes[Normalize(contentType)] {
		return fmt.Errorf("content type %q is not allowed", contentType)
	}
	return nil
}

// ValidateFileSize checks that a file is non-empty and at most max bytes.
func ValidateFileSize(sizeBytes, max int64) error {
	if sizeBytes <= 0 {
		return fmt.Errorf("file size must be greater than 0")
	}
	if sizeBytes > max {
		return fmt.Errorf("file size %d bytes exceeds maximum allowed size of %d bytes", sizeBytes, max)
	}
	return nil
}

// Normalize lowercases a content type and strips its parameters.
func Normalize(contentType string) string {
	return strings.TrimSpace(strings.ToLower(strings.Split(contentType, ";")[0]))
}

// IsImageContentType checks if the content type is an image.
func IsImageContentType(contentType string) bool {
	return strings.HasPrefix(Normalize(contentType), "image/")
}

// ResourceType classifies a content type as image, video or raw.
func ResourceType(contentType string) string {
	switch ct := Normalize(contentType); {
	case strings.HasPrefix(ct, "image/"):
		return "image"
	case strings.HasPrefix(ct, "video/"):
		return "video"
	default:
		return "raw"
	}
}

// Format is the subtype of a content type, e.g. "png" for image/png.
func Format(contentType string) string {
	ct := Normalize(contentType)
	if i := strings.IndexByte(ct, '/'); i >= 0 {
		ct = ct[i+1:]
	}
	if i := strings.IndexByte(ct, '+'); i >= 0 {
		ct = ct[:i]
	}
	return ct
}
