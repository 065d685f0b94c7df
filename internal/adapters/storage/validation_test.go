package storage

import (
	"regexp"
	"strings"
	"testing"
)

type staticConfig struct {
	publicURL string
	ssl       bool
}

func (staticConfig) GetMinIOEndpoint() string      { return "localhost:9000" }
func (staticConfig) GetMinIOAccessKey() string     { return "" }
func (staticConfig) GetMinIOSecretKey() string     { return "" }
func (c staticConfig) GetMinIOUseSSL() bool        { return c.ssl }
func (staticConfig) GetMinIOMaxFileSize() int64    { return 10 }
func (staticConfig) GetMinIOBucketUploads() string { return "portfolio-uploads" }
func (c staticConfig) GetMinIOPublicURL() string   { return c.publicURL }
func (staticConfig) IsMinIOEnabled() bool          { return true }

func TestValidateContentType(t *testing.T) {
	for _, ct := range []string{"image/png", "IMAGE/JPEG", "application/pdf; charset=binary", "video/mp4"} {
		if err := ValidateContentType(ct); err != nil {
			t.Fatalf("expected %q to be allowed, got %v", ct, err)
		}
	}
	for _, ct := range []string{"", "text/html", "application/x-msdownload"} {
		if err := ValidateContentType(ct); err == nil {
			t.Fatalf("expected %q to be rejected", ct)
		}
	}
}

func TestValidateFileSize(t *testing.T) {
	if err := ValidateFileSize(0, 10); err == nil {
		t.Fatal("expected empty file to be rejected")
	}
	if err := ValidateFileSize(11, 10); err == nil {
		t.Fatal("expected oversized file to be rejected")
	}
	if err := ValidateFileSize(10, 10); err != nil {
		t.Fatalf("expected file at the limit to pass, got %v", err)
	}
}

func TestFormatAndResourceType(t *testing.T) {
	cases := map[string][2]string{
		"image/svg+xml":   {"svg", "image"},
		"video/quicktime": {"quicktime", "video"},
		"application/pdf": {"pdf", "raw"},
	}
	for ct, want := range cases {
		if got := Format(ct); got != want[0] {
			t.Fatalf("Format(%q): expected %q, got %q", ct, want[0], got)
		}
		if got := ResourceType(ct); got != want[1] {
			t.Fatalf("ResourceType(%q): expected %q, got %q", ct, want[1], got)
		}
	}
}

func TestUniqueName(t *testing.T) {
	name := UniqueName("../My Photo (1).JPG")
	if !regexp.MustCompile(`^My-Photo-1_[0-9a-f]{8}\.jpg$`).MatchString(name) {
		t.Fatalf("unexpected name %q", name)
	}
	if !ValidPublicID(name) {
		t.Fatalf("expected %q to be a valid public id", name)
	}
	if got := UniqueName("..."); !strings.HasPrefix(got, "file_") {
		t.Fatalf("expected fallback base name, got %q", got)
	}
}

func TestValidPublicID(t *testing.T) {
	for _, id := range []string{"", "..", "a/b", `a\b`, "a b"} {
		if ValidPublicID(id) {
			t.Fatalf("expected %q to be rejected", id)
		}
	}
}

func TestBaseURL(t *testing.T) {
	if got := BaseURL(staticConfig{}); got != "http://localhost:9000/portfolio-uploads" {
		t.Fatalf("unexpected endpoint url %q", got)
	}
	if got := BaseURL(staticConfig{ssl: true}); got != "https://localhost:9000/portfolio-uploads" {
		t.Fatalf("unexpected tls url %q", got)
	}
	if got := BaseURL(staticConfig{publicURL: "https://cdn.example.com/"}); got != "https://cdn.example.com/portfolio-uploads" {
		t.Fatalf("unexpected public url %q", got)
	}
}
