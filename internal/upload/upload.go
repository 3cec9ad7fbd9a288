package upload

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const URLPrefix = "/uploads/"

const (
	KindAvatars    = "avatars"
	KindProducts   = "products"
	KindCategories = "categories"
)

var (
	ErrUnsupportedType = errors.New("upload: unsupported file type")
	ErrTooLarge        = errors.New("upload: file too large")
)

var allowedExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".gif":  true,
}

// Store writes uploaded images below Dir/<kind>/ and serves them under
// URLPrefix.
type Store struct {
	Dir      string
	MaxBytes int64
}

func NewStore(dir string, maxMB int) *Store {
	return &Store{Dir: dir, MaxBytes: int64(maxMB) << 20}
}

// Save stores fh under kind and returns its public URL.
func (s *Store) Save(kind string, fh *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedExt[ext] {
		return "", ErrUnsupportedType
	}
	if s.MaxBytes > 0 && fh.Size > s.MaxBytes {
		return "", ErrTooLarge
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("upload: open: %w", err)
	}
	defer src.Close()

	dir := filepath.Join(s.Dir, kind)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("upload: mkdir: %w", err)
	}

	name := uuid.NewString() + ext
	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("upload: create: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		_ = os.Remove(dst.Name())
		return "", fmt.Errorf("upload: write: %w", err)
	}
	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("upload: close: %w", err)
	}
	return path.Join(URLPrefix, kind, name), nil
}

// Remove deletes a file previously returned by Save. Foreign or empty URLs
// are ignored.
func (s *Store) Remove(url string) error {
	clean := path.Clean(url)
	if !strings.HasPrefix(clean, URLPrefix) {
		return nil
	}
	rel := filepath.FromSlash(strings.TrimPrefix(clean, URLPrefix))
	err := os.Remove(filepath.Join(s.Dir, rel))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
