// Package service stores uploaded media and optionally attaches it to a
// portfolio entity.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"portfolio_backend/internal/adapters/storage"
	"portfolio_backend/internal/uploads/domain"
	"portfolio_backend/internal/uploads/repository"
	"portfolio_backend/internal/uploads/transport"
	"portfolio_backend/platform/apperr"
	"portfolio_backend/platform/logger"

	"github.com/google/uuid"
)

// MaxFiles is the most files accepted by one multiple upload.
const MaxFiles = 10

const (
	msgUnavailable     = "File storage is not configured"
	msgNoFile          = "No file uploaded"
	msgNoFiles         = "No files uploaded"
	msgNoProfileImage  = "No profile image uploaded"
	msgTooManyFiles    = "Too many files. Maximum is 10"
	msgInvalidType     = "Invalid file type. Only images, videos, and documents are allowed."
	msgImageOnly       = "Only image files are allowed for profile images"
	msgInvalidEntityID = "Invalid entityId"
	msgAttachFailed    = "Database update failed"
	msgFileNotFound    = "File not found or already deleted"
	msgUploadFailed    = "Failed to upload file"
	msgDeleteFailed    = "Failed to delete file"
)

// Service handles uploads. A nil store answers every call with 503.
type Service struct {
	store storage.StorageService
	repo  repository.Attacher
	log   *logger.Logger
}

// New creates the uploads service.
func New(store storage.StorageService, repo repository.Attacher, log *logger.Logger) *Service {
	return &Service{store: store, repo: repo, log: log}
}

// attachment is a resolved, validated association request.
type attachment struct {
	target transport.Target
	field  domain.Field
	id     uuid.UUID
}

// Single stores one file and attaches it when the target names an entity.
func (s *Service) Single(ctx context.Context, file *domain.Upload, target transport.Target) (transport.File, error) {
	if s.store == nil {
		return transport.File{}, apperr.Unavailable(msgUnavailable)
	}
	if file == nil {
		return transport.File{}, apperr.BadRequest(msgNoFile)
	}
	if target.ImageType == "" {
		target.ImageType = domain.ImageGallery
	}
	att, err := s.resolve(target, false)
	if err != nil {
		return transport.File{}, err
	}
	if err := s.check(*file); err != nil {
		return transport.File{}, err
	}

	stored, err := s.put(ctx, []domain.Upload{*file})
	if err != nil {
		return transport.File{}, err
	}
	if att != nil {
		assoc, err := s.attach(ctx, att, stored)
		if err != nil {
			return transport.File{}, err
		}
		assoc.ImageType = target.ImageType
		stored[0].EntityAssociation = assoc
	}
	return stored[0], nil
}

// Multiple stores up to MaxFiles files and adds them to an entity's image
// set when the target names one.
func (s *Service) Multiple(ctx context.Context, files []domain.Upload, target transport.Target) ([]transport.File, error) {
	if s.store == nil {
		return nil, apperr.Unavailable(msgUnavailable)
	}
	if len(files) == 0 {
		return nil, apperr.BadRequest(msgNoFiles)
	}
	if len(files) > MaxFiles {
		return nil, apperr.BadRequest(msgTooManyFiles)
	}
	att, err := s.resolve(target, true)
	if err != nil {
		return nil, err
	}
	for _, f := range files {
		if err := s.check(f); err != nil {
			return nil, err
		}
	}

	stored, err := s.put(ctx, files)
	if err != nil {
		return nil, err
	}
	if att != nil {
		assoc, err := s.attach(ctx, att, stored)
		if err != nil {
			return nil, err
		}
		for i := range stored {
			a := *assoc
			stored[i].EntityAssociation = &a
		}
	}
	return stored, nil
}

// ProfileImage stores a team member portrait.
func (s *Service) ProfileImage(ctx context.Context, file *domain.Upload) (transport.ProfileImage, error) {
	if s.store == nil {
		return transport.ProfileImage{}, apperr.Unavailable(msgUnavailable)
	}
	if file == nil {
		return transport.ProfileImage{}, apperr.BadRequest(msgNoProfileImage)
	}
	if !storage.IsImageContentType(file.ContentType) {
		return transport.ProfileImage{}, apperr.BadRequest(msgImageOnly)
	}
	if err := s.check(*file); err != nil {
		return transport.ProfileImage{}, err
	}
	stored, err := s.put(ctx, []domain.Upload{*file})
	if err != nil {
		return transport.ProfileImage{}, err
	}
	return transport.ProfileImage{ProfileImageURL: stored[0].URL, PublicID: stored[0].PublicID}, nil
}

// Delete removes a stored file.
func (s *Service) Delete(ctx context.Context, publicID string) error {
	if s.store == nil {
		return apperr.Unavailable(msgUnavailable)
	}
	err := s.store.DeleteObject(ctx, publicID)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return apperr.NotFound(msgFileNotFound)
	case err != nil:
		return apperr.Wrap(apperr.KindInternal, msgDeleteFailed, err)
	}
	s.log.Info("upload deleted", "publicId", publicID)
	return nil
}

func (s *Service) resolve(t transport.Target, multiple bool) (*attachment, error) {
	if !t.Requested() {
		return nil, nil
	}
	id, err := uuid.Parse(t.EntityID)
	if err != nil {
		return nil, apperr.BadRequest(msgInvalidEntityID)
	}
	field, ok := domain.Resolve(t.EntityType, t.ImageType, multiple)
	if !ok {
		if multiple {
			return nil, apperr.BadRequest("Multiple upload not supported for entity type: " + t.EntityType)
		}
		return nil, apperr.BadRequest("Unsupported entity type: " + t.EntityType)
	}
	return &attachment{target: t, field: field, id: id}, nil
}

func (s *Service) check(f domain.Upload) error {
	if err := s.store.ValidateContentType(f.ContentType); err != nil {
		return apperr.Validation(msgInvalidType).WithDetails(map[string]string{"file": f.Name})
	}
	if err := s.store.ValidateFileSize(f.Size); err != nil {
		return apperr.Validation(upperFirst(err.Error())).WithDetails(map[string]string{"file": f.Name})
	}
	return nil
}

// put stores every file, removing the ones already stored when a later one
// fails.
func (s *Service) put(ctx context.Context, files []domain.Upload) ([]transport.File, error) {
	out := make([]transport.File, 0, len(files))
	for _, f := range files {
		stored, err := s.putOne(ctx, f)
		if err != nil {
			for _, done := range out {
				if derr := s.store.DeleteObject(ctx, done.PublicID); derr != nil {
					s.log.Warn("upload rollback failed", "publicId", done.PublicID, "error", derr)
				}
			}
			return nil, apperr.Wrap(apperr.KindInternal, msgUploadFailed, err)
		}
		out = append(out, stored)
	}
	return out, nil
}

func (s *Service) putOne(ctx context.Context, f domain.Upload) (transport.File, error) {
	r, err := f.Open()
	if err != nil {
		return transport.File{}, fmt.Errorf("open %s: %w", f.Name, err)
	}
	defer r.Close()

	obj, err := s.store.UploadFile(ctx, f.Name, f.ContentType, r, f.Size)
	if err != nil {
		return transport.File{}, err
	}
	s.log.Info("file uploaded", "publicId", obj.PublicID, "size", f.Size, "contentType", f.ContentType)
	return transport.File{
		URL:          obj.URL,
		PublicID:     obj.PublicID,
		OriginalName: f.Name,
		Size:         f.Size,
		Format:       storage.Format(f.ContentType),
		ResourceType: storage.ResourceType(f.ContentType),
	}, nil
}

// attach writes the stored URLs onto the target entity. A missing entity is
// a 404; a failed write is reported on the association and the upload
// stands.
func (s *Service) attach(ctx context.Context, att *attachment, stored []transport.File) (*transport.Association, error) {
	urls := make([]string, len(stored))
	for i, f := range stored {
		urls[i] = f.URL
	}
	assoc := &transport.Association{Type: att.target.EntityType, ID: att.target.EntityID}
	if d := strings.TrimSpace(att.target.Description); d != "" {
		assoc.Description = &d
	}

	found, err := s.repo.Attach(ctx, att.field, att.id, urls)
	if err != nil {
		s.log.Error("upload association failed", "entityType", att.target.EntityType, "entityId", att.id, "error", err)
		assoc.Error = msgAttachFailed
		return assoc, nil
	}
	if !found {
		return nil, apperr.NotFound(fmt.Sprintf("%s with ID %s not found", att.target.EntityType, att.target.EntityID))
	}
	assoc.Updated = true
	return assoc, nil
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
