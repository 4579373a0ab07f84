package filestore

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestStore(t *testing.T, maxBytes int64) *Store {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := New(t.TempDir(), "/uploads", maxBytes, logger)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	return store
}

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	var buf bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png encode: %v", err)
	}
	return buf.Bytes()
}

func TestSaveImage(t *testing.T) {
	store := newTestStore(t, 10<<20)

	url, err := store.SaveImage(bytes.NewReader(pngBytes(t, 100, 60)), "hero.png", "site")
	if err != nil {
		t.Fatalf("SaveImage error: %v", err)
	}
	if !strings.HasPrefix(url, "/uploads/site/") || !strings.HasSuffix(url, ".png") {
		t.Fatalf("unexpected url: %q", url)
	}

	rel := strings.TrimPrefix(url, "/uploads/")
	if _, err := os.Stat(filepath.Join(store.Dir(), filepath.FromSlash(rel))); err != nil {
		t.Fatalf("stored file missing: %v", err)
	}
}

func TestSaveImageRejectsExtension(t *testing.T) {
	store := newTestStore(t, 10<<20)
	_, err := store.SaveImage(bytes.NewReader(pngBytes(t, 10, 10)), "script.svg", "site")
	if !errors.Is(err, ErrInvalidExtension) {
		t.Fatalf("expected ErrInvalidExtension, got %v", err)
	}
}

func TestSaveImageRejectsMismatchedContent(t *testing.T) {
	store := newTestStore(t, 10<<20)
	_, err := store.SaveImage(strings.NewReader("<html>not an image</html>"), "page.png", "site")
	if !errors.Is(err, ErrInvalidMIME) {
		t.Fatalf("expected ErrInvalidMIME, got %v", err)
	}
}

func TestSaveImageRejectsOversized(t *testing.T) {
	store := newTestStore(t, 64)
	_, err := store.SaveImage(bytes.NewReader(pngBytes(t, 100, 100)), "hero.png", "site")
	if !errors.Is(err, ErrFileTooLarge) {
		t.Fatalf("expected ErrFileTooLarge, got %v", err)
	}
}

func TestSaveImageDownscalesWideImages(t *testing.T) {
	store := newTestStore(t, 50<<20)

	url, err := store.SaveImage(bytes.NewReader(pngBytes(t, 4000, 1000)), "wide.png", "site")
	if err != nil {
		t.Fatalf("SaveImage error: %v", err)
	}

	rel := strings.TrimPrefix(url, "/uploads/")
	f, err := os.Open(filepath.Join(store.Dir(), filepath.FromSlash(rel)))
	if err != nil {
		t.Fatalf("open stored file: %v", err)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		t.Fatalf("decode stored file: %v", err)
	}
	if cfg.Width != 1920 {
		t.Fatalf("expected width 1920, got %d", cfg.Width)
	}
}

func TestDeleteIgnoresForeignAndMissingURLs(t *testing.T) {
	store := newTestStore(t, 10<<20)

	url, err := store.SaveImage(bytes.NewReader(pngBytes(t, 20, 20)), "hero.png", "site")
	if err != nil {
		t.Fatalf("SaveImage error: %v", err)
	}

	store.Delete("https://elsewhere.example/file.png")
	store.Delete("/uploads/site/never-existed.png")
	store.Delete(url)

	rel := strings.TrimPrefix(url, "/uploads/")
	if _, err := os.Stat(filepath.Join(store.Dir(), filepath.FromSlash(rel))); !os.IsNotExist(err) {
		t.Fatalf("file should be gone, stat err: %v", err)
	}
}
