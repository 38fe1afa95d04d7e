package media

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
)

type stubSource struct {
	opened []string
}

func (s *stubSource) Open(_ context.Context, key string) (*Attachment, error) {
	s.opened = append(s.opened, key)
	return &Attachment{Name: key, Body: io.NopCloser(nil)}, nil
}

func TestLocalSourceOpen(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "cat.png"), []byte("\x89PNG\r\n\x1a\nrest"), 0o644); err != nil {
		t.Fatal(err)
	}

	src, err := NewLocalSource(LocalConfig{BasePath: dir})
	if err != nil {
		t.Fatal(err)
	}

	att, err := src.Open(context.Background(), "cat.png")
	if err != nil {
		t.Fatal(err)
	}
	defer att.Body.Close()

	if att.Name != "cat.png" || att.ContentType != "image/png" || att.Size != 12 {
		t.Fatalf("unexpected attachment: %+v", att)
	}
	data, err := io.ReadAll(att.Body)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) != 12 {
		t.Fatalf("expected full content after sniffing, got %d bytes", len(data))
	}
}

func TestLocalSourceSniffsUnknownExtension(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "notes"), []byte("plain words"), 0o644); err != nil {
		t.Fatal(err)
	}
	src, _ := NewLocalSource(LocalConfig{BasePath: dir})

	att, err := src.Open(context.Background(), "notes")
	if err != nil {
		t.Fatal(err)
	}
	att.Body.Close()
	if att.ContentType != "text/plain; charset=utf-8" {
		t.Fatalf("unexpected content type %q", att.ContentType)
	}
}

func TestLocalSourceErrors(t *testing.T) {
	dir := t.TempDir()
	src, _ := NewLocalSource(LocalConfig{BasePath: dir})
	ctx := context.Background()

	if _, err := src.Open(ctx, "missing.jpg"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := src.Open(ctx, "../outside.jpg"); !errors.Is(err, ErrUnsupportedRef) {
		t.Fatalf("expected traversal to be rejected, got %v", err)
	}
	if _, err := src.Open(ctx, "."); !errors.Is(err, ErrUnsupportedRef) {
		t.Fatalf("expected directory to be rejected, got %v", err)
	}
}

func TestResolverDispatch(t *testing.T) {
	local := &stubSource{}
	remote := &stubSource{}
	r := NewResolver(local, remote)
	ctx := context.Background()

	if _, err := r.Open(ctx, "photos/a.jpg"); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Open(ctx, "s3://bucket/b.jpg"); err != nil {
		t.Fatal(err)
	}
	if len(local.opened) != 1 || local.opened[0] != "photos/a.jpg" {
		t.Fatalf("unexpected local opens: %v", local.opened)
	}
	if len(remote.opened) != 1 || remote.opened[0] != "bucket/b.jpg" {
		t.Fatalf("unexpected s3 opens: %v", remote.opened)
	}

	if _, err := r.Open(ctx, "https://example.com/a.jpg"); !errors.Is(err, ErrUnsupportedRef) {
		t.Fatalf("expected ErrUnsupportedRef, got %v", err)
	}
	if _, err := NewResolver(local, nil).Open(ctx, "s3://bucket/c.jpg"); !errors.Is(err, ErrUnsupportedRef) {
		t.Fatalf("expected unconfigured s3 to fail, got %v", err)
	}
}

func TestS3SplitRef(t *testing.T) {
	s := &S3Source{bucket: "moments"}

	tests := []struct {
		ref        string
		bucket     string
		key        string
		shouldFail bool
	}{
		{"media/2024/a.jpg", "media", "2024/a.jpg", false},
		{"a.jpg", "moments", "a.jpg", false},
		{"media/", "", "", true},
		{"/a.jpg", "", "", true},
	}

	for _, tt := range tests {
		bucket, key, err := s.splitRef(tt.ref)
		if tt.shouldFail {
			if err == nil {
				t.Errorf("splitRef(%q) expected error", tt.ref)
			}
			continue
		}
		if err != nil || bucket != tt.bucket || key != tt.key {
			t.Errorf("splitRef(%q) = %q, %q, %v", tt.ref, bucket, key, err)
		}
	}
}
