package filestore

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	_ "golang.org/x/image/webp"
)

var (
	ErrInvalidExtension = errors.New("invalid file extension")
	ErrInvalidMIME      = errors.New("invalid MIME type")
	ErrFileTooLarge     = errors.New("file size exceeds limit")
)

var allowedExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

var allowedMIMEs = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// Images wider than this are downscaled before storage.
const maxImageWidth = 1920

// Store is path-addressed blob storage on local disk. Saved objects are
// served under baseURL and the returned URL is durable for the lifetime of
// the file.
type Store struct {
	dir      string
	baseURL  string
	maxBytes int64
	log      *slog.Logger
}

func New(dir, baseURL string, maxBytes int64, log *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Store{
		dir:      dir,
		baseURL:  strings.TrimRight(baseURL, "/"),
		maxBytes: maxBytes,
		log:      log,
	}, nil
}

// Dir is the on-disk root, for mounting the static file route.
func (s *Store) Dir() string {
	return s.dir
}

// SaveImage validates, normalizes and stores an uploaded image under the
// given logical subfolder, returning its fetch URL.
func (s *Store) SaveImage(r io.Reader, originalName, subdir string) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if !allowedExts[ext] {
		return "", fmt.Errorf("%w: %s", ErrInvalidExtension, ext)
	}

	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return "", err
	}
	if int64(len(data)) > s.maxBytes {
		return "", ErrFileTooLarge
	}

	mimeType := http.DetectContentType(data)
	if !allowedMIMEs[mimeType] {
		return "", fmt.Errorf("%w: %s", ErrInvalidMIME, mimeType)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: undecodable image", ErrInvalidMIME)
	}
	if img.Bounds().Dx() > maxImageWidth {
		img = imaging.Resize(img, maxImageWidth, 0, imaging.Lanczos)
	}

	// webp input is re-encoded; everything else keeps its format.
	var buf bytes.Buffer
	switch format {
	case "png":
		ext = ".png"
		err = png.Encode(&buf, img)
	default:
		ext = ".jpg"
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: 85})
	}
	if err != nil {
		return "", err
	}

	subdir = strings.Trim(path.Clean("/"+subdir), "/")
	name := uuid.New().String() + ext
	destDir := filepath.Join(s.dir, filepath.FromSlash(subdir))
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(destDir, name), buf.Bytes(), 0o644); err != nil {
		return "", err
	}

	url := s.baseURL + "/" + path.Join(subdir, name)
	s.log.Info("filestore: saved", slog.String("url", url), slog.Int("bytes", buf.Len()))
	return url, nil
}

// Delete removes a previously stored object by its URL. Best effort:
// failures are logged, never surfaced.
func (s *Store) Delete(url string) {
	rel, ok := strings.CutPrefix(url, s.baseURL+"/")
	if !ok || rel == "" {
		s.log.Warn("filestore: delete skipped, foreign url", slog.String("url", url))
		return
	}
	rel = path.Clean(rel)
	if strings.HasPrefix(rel, "..") {
		s.log.Warn("filestore: delete skipped, bad path", slog.String("url", url))
		return
	}
	if err := os.Remove(filepath.Join(s.dir, filepath.FromSlash(rel))); err != nil && !os.IsNotExist(err) {
		s.log.Warn("filestore: delete failed", slog.String("url", url), slog.String("error", err.Error()))
	}
}
