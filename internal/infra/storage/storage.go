package storage

import (
	"context"
	"fmt"
	"io"

	"arts-market/config"
)

// Uploader is the object-storage boundary: it takes the bytes of an uploaded
// image and returns a durable public URL. The core stores only the URL.
type Uploader interface {
	Upload(ctx context.Context, objectName string, r io.Reader, size int64, contentType string) (string, error)
}

// New builds the uploader selected by STORAGE_TYPE.
func New() (Uploader, error) {
	switch config.STORAGE_TYPE {
	case "local":
		return newLocalUploader(config.STORAGE_LOCAL_PATH, config.BASE_URL)
	case "minio":
		return newMinioUploader()
	default:
		return nil, fmt.Errorf("invalid storage type: %s", config.STORAGE_TYPE)
	}
}
