package storage

import (
	"context"
	"fmt"
	"io"

	"arts-market/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type minioUploader struct {
	client *minio.Client
	bucket string
	public string
}

func newMinioUploader() (*minioUploader, error) {
	useSSL := config.MINIO_USE_SSL == "true"

	client, err := minio.New(config.MINIO_ENDPOINT, &minio.Options{
		Creds:  credentials.NewStaticV4(config.MINIO_ACCESS_KEY, config.MINIO_SECRET_KEY, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}

	scheme := "http"
	if useSSL {
		scheme = "https"
	}

	return &minioUploader{
		client: client,
		bucket: config.MINIO_BUCKET,
		public: fmt.Sprintf("%s://%s/%s", scheme, config.MINIO_ENDPOINT, config.MINIO_BUCKET),
	}, nil
}

func (u *minioUploader) Upload(ctx context.Context, objectName string, r io.Reader, size int64, contentType string) (string, error) {
	_, err := u.client.PutObject(ctx, u.bucket, objectName, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("minio upload: %w", err)
	}
	return u.public + "/" + objectName, nil
}
