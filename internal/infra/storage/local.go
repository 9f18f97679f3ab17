package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// localUploader writes files under a directory served by the app itself.
// Development fallback; production uses the minio uploader.
type localUploader struct {
	dir     string
	baseURL string
}

func newLocalUploader(dir, baseURL string) (*localUploader, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &localUploader{dir: dir, baseURL: baseURL}, nil
}

func (u *localUploader) Upload(_ context.Context, objectName string, r io.Reader, _ int64, _ string) (string, error) {
	path := filepath.Join(u.dir, filepath.Base(objectName))

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", err
	}
	return u.baseURL + "/uploads/" + filepath.Base(objectName), nil
}
