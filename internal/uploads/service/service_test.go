package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"portfolio_backend/internal/adapters/storage"
	"portfolio_backend/internal/uploads/domain"
	"portfolio_backend/internal/uploads/transport"
	"portfolio_backend/platform/apperr"
	"portfolio_backend/platform/logger"

	"github.com/google/uuid"
)

type stubStore struct {
	uploaded []string
	deleted  []string
	failOn   string
	missing  bool
}

func (s *stubStore) UploadFile(_ context.Context, name, _ string, r io.Reader, _ int64) (storage.Object, error) {
	if name == s.failOn {
		return storage.Object{}, errors.New("bucket unreachable")
	}
	if _, err := io.ReadAll(r); err != nil {
		return storage.Object{}, err
	}
	id := "id-" + name
	s.uploaded = append(s.uploaded, id)
	return storage.Object{PublicID: id, Key: storage.Key(id), URL: "http://cdn/" + id}, nil
}

func (s *stubStore) DeleteObject(_ context.Context, id string) error {
	if s.missing {
		return storage.ErrNotFound
	}
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *stubStore) EnsureBucketExists(context.Context) error { return nil }

func (s *stubStore) ValidateContentType(ct string) error { return storage.ValidateContentType(ct) }

func (s *stubStore) ValidateFileSize(n int64) error { return storage.ValidateFileSize(n, 100) }

type stubRepo struct {
	field domain.Field
	id    uuid.UUID
	urls  []string
	found bool
	err   error
}

func (r *stubRepo) Attach(_ context.Context, f domain.Field, id uuid.UUID, urls []string) (bool, error) {
	r.field, r.id, r.urls = f, id, urls
	return r.found, r.err
}

func file(name, contentType string) domain.Upload {
	body := "content of " + name
	return domain.Upload{
		Name:        name,
		ContentType: contentType,
		Size:        int64(len(body)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(body)), nil
		},
	}
}

func newService(store *stubStore, repo *stubRepo) *Service {
	return New(store, repo, logger.Discard())
}

func TestSingleWithoutStore(t *testing.T) {
	svc := New(nil, &stubRepo{}, logger.Discard())
	f := file("a.png", "image/png")
	if _, err := svc.Single(context.Background(), &f, transport.Target{}); apperr.GetKind(err) != apperr.KindUnavailable {
		t.Fatalf("expected unavailable, got %v", err)
	}
}

func TestSingleRequiresFile(t *testing.T) {
	_, err := newService(&stubStore{}, &stubRepo{}).Single(context.Background(), nil, transport.Target{})
	if apperr.GetKind(err) != apperr.KindBadRequest || err.Error() != msgNoFile {
		t.Fatalf("expected %q, got %v", msgNoFile, err)
	}
}

func TestSingleRejectsContentType(t *testing.T) {
	store := &stubStore{}
	f := file("page.html", "text/html")
	_, err := newService(store, &stubRepo{}).Single(context.Background(), &f, transport.Target{})
	if apperr.GetKind(err) != apperr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(store.uploaded) != 0 {
		t.Fatal("expected nothing stored")
	}
}

func TestSingleDescribesFile(t *testing.T) {
	f := file("logo.svg", "image/svg+xml")
	got, err := newService(&stubStore{}, &stubRepo{}).Single(context.Background(), &f, transport.Target{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.URL != "http://cdn/id-logo.svg" || got.PublicID != "id-logo.svg" || got.OriginalName != "logo.svg" {
		t.Fatalf("unexpected file: %+v", got)
	}
	if got.Format != "svg" || got.ResourceType != "image" || got.EntityAssociation != nil {
		t.Fatalf("unexpected file: %+v", got)
	}
}

func TestSingleAttachesThumbnail(t *testing.T) {
	repo := &stubRepo{found: true}
	id := uuid.New()
	f := file("cover.jpg", "image/jpeg")
	target := transport.Target{EntityType: "project", EntityID: id.String(), ImageType: domain.ImageThumbnail, Description: " Cover "}

	got, err := newService(&stubStore{}, repo).Single(context.Background(), &f, target)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.field.Column != "thumbnail" || repo.id != id || len(repo.urls) != 1 {
		t.Fatalf("unexpected attach call: %+v", repo)
	}
	a := got.EntityAssociation
	if a == nil || !a.Updated || a.ImageType != domain.ImageThumbnail || a.Description == nil || *a.Description != "Cover" {
		t.Fatalf("unexpected association: %+v", a)
	}
}

func TestSingleDefaultsToGallery(t *testing.T) {
	repo := &stubRepo{found: true}
	f := file("shot.png", "image/png")
	target := transport.Target{EntityType: "service", EntityID: uuid.NewString()}

	got, err := newService(&stubStore{}, repo).Single(context.Background(), &f, target)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !repo.field.Array || got.EntityAssociation.ImageType != domain.ImageGallery {
		t.Fatalf("expected gallery append, got %+v / %+v", repo.field, got.EntityAssociation)
	}
}

func TestSingleRejectsBadTarget(t *testing.T) {
	store := &stubStore{}
	svc := newService(store, &stubRepo{})
	f := file("a.png", "image/png")

	_, err := svc.Single(context.Background(), &f, transport.Target{EntityType: "project", EntityID: "42"})
	if apperr.GetKind(err) != apperr.KindBadRequest || err.Error() != msgInvalidEntityID {
		t.Fatalf("expected invalid entity id, got %v", err)
	}
	_, err = svc.Single(context.Background(), &f, transport.Target{EntityType: "invoice", EntityID: uuid.NewString()})
	if err == nil || err.Error() != "Unsupported entity type: invoice" {
		t.Fatalf("expected unsupported entity type, got %v", err)
	}
	if len(store.uploaded) != 0 {
		t.Fatal("expected nothing stored for a bad target")
	}
}

func TestSingleMissingEntity(t *testing.T) {
	id := uuid.NewString()
	f := file("a.png", "image/png")
	_, err := newService(&stubStore{}, &stubRepo{}).Single(context.Background(), &f, transport.Target{EntityType: "client", EntityID: id})
	if apperr.GetKind(err) != apperr.KindNotFound || err.Error() != "client with ID "+id+" not found" {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestSingleAttachFailureKeepsUpload(t *testing.T) {
	repo := &stubRepo{err: errors.New("deadlock")}
	f := file("a.png", "image/png")
	got, err := newService(&stubStore{}, repo).Single(context.Background(), &f, transport.Target{EntityType: "client", EntityID: uuid.NewString()})
	if err != nil {
		t.Fatalf("expected upload to stand, got %v", err)
	}
	if got.EntityAssociation.Updated || got.EntityAssociation.Error != msgAttachFailed {
		t.Fatalf("unexpected association: %+v", got.EntityAssociation)
	}
}

func TestMultipleLimits(t *testing.T) {
	svc := newService(&stubStore{}, &stubRepo{})
	if _, err := svc.Multiple(context.Background(), nil, transport.Target{}); err == nil || err.Error() != msgNoFiles {
		t.Fatalf("expected %q, got %v", msgNoFiles, err)
	}
	files := make([]domain.Upload, MaxFiles+1)
	for i := range files {
		files[i] = file("a.png", "image/png")
	}
	if _, err := svc.Multiple(context.Background(), files, transport.Target{}); err == nil || err.Error() != msgTooManyFiles {
		t.Fatalf("expected %q, got %v", msgTooManyFiles, err)
	}
}

func TestMultipleRejectsScalarTargets(t *testing.T) {
	files := []domain.Upload{file("a.png", "image/png")}
	_, err := newService(&stubStore{}, &stubRepo{}).Multiple(context.Background(), files, transport.Target{EntityType: "client", EntityID: uuid.NewString()})
	if err == nil || err.Error() != "Multiple upload not supported for entity type: client" {
		t.Fatalf("expected unsupported multiple upload, got %v", err)
	}
}

func TestMultipleAttachesAll(t *testing.T) {
	repo := &stubRepo{found: true}
	files := []domain.Upload{file("a.png", "image/png"), file("b.mp4", "video/mp4")}

	got, err := newService(&stubStore{}, repo).Multiple(context.Background(), files, transport.Target{EntityType: "blog", EntityID: uuid.NewString()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.urls) != 2 || repo.field.Table != "blog_posts" {
		t.Fatalf("unexpected attach call: %+v", repo)
	}
	if len(got) != 2 || !got[1].EntityAssociation.Updated || got[1].ResourceType != "video" {
		t.Fatalf("unexpected files: %+v", got)
	}
	if got[0].EntityAssociation == got[1].EntityAssociation {
		t.Fatal("expected each file to carry its own association")
	}
}

func TestMultipleRollsBackOnFailure(t *testing.T) {
	store := &stubStore{failOn: "c.png"}
	files := []domain.Upload{file("a.png", "image/png"), file("b.png", "image/png"), file("c.png", "image/png")}

	_, err := newService(store, &stubRepo{}).Multiple(context.Background(), files, transport.Target{})
	if apperr.GetKind(err) != apperr.KindInternal {
		t.Fatalf("expected internal error, got %v", err)
	}
	if len(store.deleted) != 2 || store.deleted[0] != "id-a.png" || store.deleted[1] != "id-b.png" {
		t.Fatalf("expected stored files removed, got %v", store.deleted)
	}
}

func TestProfileImageRequiresImage(t *testing.T) {
	f := file("cv.pdf", "application/pdf")
	_, err := newService(&stubStore{}, &stubRepo{}).ProfileImage(context.Background(), &f)
	if err == nil || err.Error() != msgImageOnly {
		t.Fatalf("expected %q, got %v", msgImageOnly, err)
	}
}

func TestDelete(t *testing.T) {
	store := &stubStore{}
	if err := newService(store, &stubRepo{}).Delete(context.Background(), "id-a.png"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.deleted) != 1 {
		t.Fatalf("expected one delete, got %v", store.deleted)
	}

	store.missing = true
	err := newService(store, &stubRepo{}).Delete(context.Background(), "gone.png")
	if apperr.GetKind(err) != apperr.KindNotFound || err.Error() != msgFileNotFound {
		t.Fatalf("expected %q, got %v", msgFileNotFound, err)
	}
}
