// Package storage is the CV blob boundary. The API only ever talks to the
// Uploader interface; the disk implementation is the development default
// and an object-store implementation can replace it without touching the
// services.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

type Uploader interface {
	// UploadCV stores the document and returns the reference to record on
	// the user and the application.
	UploadCV(ctx context.Context, filename string, r io.Reader) (string, error)
}

type DiskUploader struct {
	dir string
}

func NewDiskUploader(dir string) (*DiskUploader, error) {
	cvDir := filepath.Join(dir, "cvs")
	if err := os.MkdirAll(cvDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskUploader{dir: cvDir}, nil
}

func (u *DiskUploader) UploadCV(_ context.Context, filename string, r io.Reader) (string, error) {
	// Timestamp prefix keeps distinct uploads of the same filename apart.
	name := fmt.Sprintf("%d_%s", time.Now().UnixNano(), filepath.Base(filename))
	path := filepath.Join(u.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("store cv: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("store cv: %w", err)
	}
	return path, nil
}
