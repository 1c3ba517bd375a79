package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLocalStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir, "/static/uploads", 1200)
	if err != nil {
		t.Fatalf("failed to create local store: %v", err)
	}

	data := pngBytes(t, 100, 100)
	blobURL, key, err := store.Store(context.Background(), data, "image/png")
	if err != nil {
		t.Fatalf("failed to store image: %v", err)
	}
	if !strings.HasPrefix(blobURL, "/static/uploads/") {
		t.Fatalf("unexpected URL %q", blobURL)
	}

	if _, err := os.Stat(filepath.Join(dir, key)); err != nil {
		t.Fatalf("expected stored file on disk: %v", err)
	}

	// Deletion accepts keys carrying a folder prefix derived from a URL.
	if err := store.Delete(context.Background(), "victoe-gallery/"+key); err != nil {
		t.Fatalf("failed to delete image: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, key)); !os.IsNotExist(err) {
		t.Fatalf("expected file removed, stat err: %v", err)
	}
}

func TestLocalStoreRejectsUnsupportedType(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "/static/uploads", 1200)
	if err != nil {
		t.Fatalf("failed to create local store: %v", err)
	}

	if _, _, err := store.Store(context.Background(), []byte("<svg/>"), "image/svg+xml"); err != ErrUnsupportedImageType {
		t.Fatalf("expected ErrUnsupportedImageType, got %v", err)
	}
}
