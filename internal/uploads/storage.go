// Package uploads stores post images on the local filesystem.
package uploads

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path"
	"path/filepath"

	"github.com/google/uuid"
)

// MaxImageSize bounds a single uploaded image.
const MaxImageSize = 5 << 20

// ImageDir is the subdirectory of the media root that holds post images.
const ImageDir = "posts"

var (
	// ErrNotImage is returned when the upload is not a supported image.
	ErrNotImage = errors.New("upload a valid image. The file you uploaded was either not an image or a corrupted image")
	// ErrTooLarge is returned when the upload exceeds MaxImageSize.
	ErrTooLarge = errors.New("the image is too large, the maximum size is 5MB")
)

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// Storage writes uploads under Root.
type Storage struct {
	Root string
}

// NewStorage creates a Storage rooted at root.
func NewStorage(root string) *Storage {
	return &Storage{Root: root}
}

// SaveImage stores an uploaded image under Root/posts with a random name and
// returns its path relative to Root, using forward slashes.
// The type is sniffed from the content, not taken from the client.
func (s *Storage) SaveImage(fh *multipart.FileHeader) (string, error) {
	if fh.Size > MaxImageSize {
		return "", ErrTooLarge
	}
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(src, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		if errors.Is(err, io.EOF) {
			return "", ErrNotImage
		}
		return "", fmt.Errorf("read upload: %w", err)
	}
	head = head[:n]
	ext, ok := allowedImageTypes[http.DetectContentType(head)]
	if !ok {
		return "", ErrNotImage
	}

	dir := filepath.Join(s.Root, ImageDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	name := uuid.New().String() + ext
	if err := writeFile(filepath.Join(dir, name), io.MultiReader(bytes.NewReader(head), src)); err != nil {
		return "", err
	}
	return path.Join(ImageDir, name), nil
}

// Remove deletes a file previously returned by SaveImage. An empty name or
// a missing file is not an error.
func (s *Storage) Remove(name string) error {
	if name == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.Root, filepath.FromSlash(name)))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove image: %w", err)
	}
	return nil
}

// writeFile copies src into a new file at name. A partly written file is
// removed.
func writeFile(name string, src io.Reader) error {
	dst, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("create image file: %w", err)
	}
	_, err = io.Copy(dst, src)
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(name)
		return fmt.Errorf("write image: %w", err)
	}
	return nil
}
