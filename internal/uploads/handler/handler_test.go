package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"portfolio_backend/internal/adapters/storage"
	"portfolio_backend/internal/uploads/domain"
	"portfolio_backend/internal/uploads/service"
	"portfolio_backend/platform/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type memStore struct{}

func (memStore) UploadFile(_ context.Context, name, _ string, r io.Reader, _ int64) (storage.Object, error) {
	_, err := io.Copy(io.Discard, r)
	return storage.Object{PublicID: name, URL: "http://cdn/" + name}, err
}

func (memStore) DeleteObject(_ context.Context, id string) error {
	if id != "kept.png" {
		return storage.ErrNotFound
	}
	return nil
}

func (memStore) EnsureBucketExists(context.Context) error { return nil }

func (memStore) ValidateContentType(ct string) error { return storage.ValidateContentType(ct) }

func (memStore) ValidateFileSize(n int64) error { return storage.ValidateFileSize(n, 1<<20) }

type foundRepo struct{}

func (foundRepo) Attach(context.Context, domain.Field, uuid.UUID, []string) (bool, error) {
	return true, nil
}

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := New(service.New(memStore{}, foundRepo{}, logger.Discard()), 1<<20)
	r := gin.New()
	r.POST("/upload/single", h.Single)
	r.POST("/upload/multiple", h.Multiple)
	r.DELETE("/upload/:publicId", h.Delete)
	return r
}

func multipartBody(t *testing.T, field string, names []string, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, name := range names {
		hdr := textproto.MIMEHeader{}
		hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, name))
		hdr.Set("Content-Type", "image/png")
		part, err := w.CreatePart(hdr)
		if err != nil {
			t.Fatalf("create part: %v", err)
		}
		part.Write([]byte("png bytes"))
	}
	for k, v := range fields {
		w.WriteField(k, v)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, w.FormDataContentType()
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

func do(t *testing.T, req *http.Request) (int, envelope) {
	t.Helper()
	w := httptest.NewRecorder()
	newRouter().ServeHTTP(w, req)
	var body envelope
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return w.Code, body
}

func TestSingleWithoutFile(t *testing.T) {
	buf, ct := multipartBody(t, "file", nil, nil)
	req := httptest.NewRequest(http.MethodPost, "/upload/single", buf)
	req.Header.Set("Content-Type", ct)

	code, body := do(t, req)
	if code != http.StatusBadRequest || body.Error != "No file uploaded" {
		t.Fatalf("expected 400 no file, got %d %+v", code, body)
	}
}

func TestSingleAssociated(t *testing.T) {
	id := uuid.NewString()
	buf, ct := multipartBody(t, "file", []string{"logo.png"}, map[string]string{"entityType": "client", "entityId": id})
	req := httptest.NewRequest(http.MethodPost, "/upload/single", buf)
	req.Header.Set("Content-Type", ct)

	code, body := do(t, req)
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d %+v", code, body)
	}
	if body.Message != "File uploaded and associated with client "+id {
		t.Fatalf("unexpected message %q", body.Message)
	}
	var file struct {
		URL               string `json:"url"`
		Format            string `json:"format"`
		EntityAssociation struct {
			Updated bool `json:"updated"`
		} `json:"entityAssociation"`
	}
	if err := json.Unmarshal(body.Data, &file); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if file.URL != "http://cdn/logo.png" || file.Format != "png" || !file.EntityAssociation.Updated {
		t.Fatalf("unexpected file %+v", file)
	}
}

func TestMultipleCountsFiles(t *testing.T) {
	buf, ct := multipartBody(t, "files", []string{"a.png", "b.png", "c.png"}, nil)
	req := httptest.NewRequest(http.MethodPost, "/upload/multiple", buf)
	req.Header.Set("Content-Type", ct)

	code, body := do(t, req)
	if code != http.StatusOK || body.Message != "3 files uploaded successfully" {
		t.Fatalf("unexpected response %d %+v", code, body)
	}
}

func TestDeleteMissingFile(t *testing.T) {
	code, body := do(t, httptest.NewRequest(http.MethodDelete, "/upload/gone.png", nil))
	if code != http.StatusNotFound || body.Error != "File not found or already deleted" {
		t.Fatalf("expected 404, got %d %+v", code, body)
	}
	code, body = do(t, httptest.NewRequest(http.MethodDelete, "/upload/kept.png", nil))
	if code != http.StatusOK || body.Message != "File deleted successfully" {
		t.Fatalf("expected 200, got %d %+v", code, body)
	}
}
