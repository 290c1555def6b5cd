package local

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestPutDeleteRoundtrip(t *testing.T) {
	ctx := context.Background()
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	data := []byte("fake png bytes")
	if err := s.PutObject(ctx, "mybucket", "imagenes/producto1.png", bytes.NewReader(data), "image/png", int64(len(data))); err != nil {
		t.Fatalf("PutObject: %v", err)
	}

	exists, err := s.ObjectExists(ctx, "mybucket", "imagenes/producto1.png")
	if err != nil {
		t.Fatalf("ObjectExists: %v", err)
	}
	if !exists {
		t.Fatalf("expected object to exist after upload")
	}

	if err := s.DeleteObject(ctx, "mybucket", "imagenes/producto1.png"); err != nil {
		t.Fatalf("DeleteObject: %v", err)
	}
	exists, err = s.ObjectExists(ctx, "mybucket", "imagenes/producto1.png")
	if err != nil {
		t.Fatalf("ObjectExists after delete: %v", err)
	}
	if exists {
		t.Fatalf("expected object gone after delete")
	}
}

func TestDeleteMissingKeyIsNoop(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := s.DeleteObject(context.Background(), "mybucket", "imagenes/nope.jpg"); err != nil {
		t.Fatalf("expected no-op delete, got %v", err)
	}
}

func TestRejectsTraversal(t *testing.T) {
	base := t.TempDir()
	s, err := New(base)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	err = s.PutObject(context.Background(), "mybucket", "../../etc/passwd", bytes.NewReader([]byte("x")), "text/plain", 1)
	if err == nil {
		t.Fatalf("expected traversal key to be rejected")
	}
	if _, statErr := os.Stat(filepath.Join(base, "..", "etc")); statErr == nil {
		t.Fatalf("file escaped base path")
	}
}

func TestRequiresBucket(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := s.PutObject(context.Background(), "", "imagenes/x.jpg", bytes.NewReader([]byte("x")), "image/jpeg", 1); err == nil {
		t.Fatalf("expected error for empty bucket")
	}
}
