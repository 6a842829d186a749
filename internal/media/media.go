// Package media stores uploaded event banners on local disk.
package media

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrNotImage = errors.New("uploaded file is not a supported image")
	ErrTooLarge = errors.New("uploaded file is too large")
)

// allowed maps sniffed content types to the extension stored on disk.
var allowed = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// Store saves files under a root directory and names them by relative path.
type Store struct {
	root     string
	maxBytes int64
}

// NewStore creates root if needed.
func NewStore(root string, maxBytes int64) (*Store, error) {
	if err := os.MkdirAll(filepath.Join(root, "banners"), 0o755); err != nil {
		return nil, fmt.Errorf("create media dir: %w", err)
	}
	return &Store{root: root, maxBytes: maxBytes}, nil
}

// Root returns the directory files are served from.
func (s *Store) Root() string {
	return s.root
}

// SaveBanner sniffs r, rejects non-images and oversize files, and writes it
// as banners/<uuid><ext>. The returned path is relative to the root and uses
// forward slashes.
func (s *Store) SaveBanner(r io.Reader) (string, error) {
	head := make([]byte, 512)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read upload: %w", err)
	}
	head = head[:n]
	if n == 0 {
		return "", ErrNotImage
	}
	ext, ok := allowed[http.DetectContentType(head)]
	if !ok {
		return "", ErrNotImage
	}

	rel := path.Join("banners", uuid.NewString()+ext)
	dst := filepath.Join(s.root, filepath.FromSlash(rel))
	f, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create banner: %w", err)
	}

	limit := s.maxBytes - int64(n)
	written, err := io.Copy(f, io.MultiReader(bytes.NewReader(head), io.LimitReader(r, limit+1)))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil && written > s.maxBytes {
		err = ErrTooLarge
	}
	if err != nil {
		os.Remove(dst)
		if errors.Is(err, ErrTooLarge) {
			return "", err
		}
		return "", fmt.Errorf("write banner: %w", err)
	}
	return rel, nil
}

// Delete removes a stored file. Empty or missing paths are ignored.
func (s *Store) Delete(rel string) error {
	if rel == "" {
		return nil
	}
	// Cleaning against "/" keeps the result inside root.
	clean := strings.TrimPrefix(path.Clean("/"+rel), "/")
	err := os.Remove(filepath.Join(s.root, filepath.FromSlash(clean)))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// URL returns the public URL for a stored path.
func URL(rel string) string {
	if rel == "" {
		return ""
	}
	return "/media/" + strings.TrimPrefix(rel, "/")
}
