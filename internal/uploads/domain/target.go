// Package domain holds the rules that attach an uploaded file to an entity.
package domain

import (
	"io"
	"strings"
)

// Image types accepted with an upload.
const (
	ImageThumbnail = "thumbnail"
	ImageIcon      = "icon"
	ImageGallery   = "gallery"
)

// Upload is one file received from a client.
type Upload struct {
	Name        string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

// Field is the entity column an upload is written to. Array columns gain the
// URL once; scalar columns are overwritten.
type Field struct {
	Table  string
	Column string
	Array  bool
}

// Resolve picks the column for an entity type and image type. Multiple
// uploads only target image sets; ok is false for any other entity.
func Resolve(entityType, imageType string, multiple bool) (f Field, ok bool) {
	kind := strings.ToLower(strings.TrimSpace(entityType))
	if multiple {
		switch kind {
		case "project":
			return Field{Table: "projects", Column: "images", Array: true}, true
		case "service":
			return Field{Table: "services", Column: "images", Array: true}, true
		case "blog":
			return Field{Table: "blog_posts", Column: "images", Array: true}, true
		}
		return Field{}, false
	}

	switch kind {
	case "project":
		if imageType == ImageThumbnail {
			return Field{Table: "projects", Column: "thumbnail"}, true
		}
		return Field{Table: "projects", Column: "images", Array: true}, true
	case "team-member":
		return Field{Table: "team_members", Column: "profile_image"}, true
	case "service":
		if imageType == ImageIcon {
			return Field{Table: "services", Column: "icon"}, true
		}
		return Field{Table: "services", Column: "images", Array: true}, true
	case "client":
		return Field{Table: "clients", Column: "logo"}, true
	case "blog":
		return Field{Table: "blog_posts", Column: "images", Array: true}, true
	}
	return Field{}, false
}
