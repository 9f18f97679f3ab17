package utils

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"

	"arts-market/internal/apperr"
	"arts-market/internal/infra/moderation"
	"arts-market/internal/infra/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxImageSize = 1 << 20 // 1MB, matches the catalog upload policy

var allowedImageExt = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

// SaveUpload reads the image file from the multipart field, screens it, and
// stores it through the uploader. Returns the durable public URL.
func SaveUpload(c *gin.Context, uploader storage.Uploader, screener moderation.Screener, field string) (string, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		return "", apperr.New(apperr.Validation, "No image file provided")
	}
	if fileHeader.Size > maxImageSize {
		return "", apperr.New(apperr.Validation, "Image exceeds the 1MB size limit")
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	contentType, ok := allowedImageExt[ext]
	if !ok {
		return "", apperr.New(apperr.Validation, "Give proper file format to upload")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}

	if screener != nil {
		if err := screener.Screen(c.Request.Context(), bytes.NewReader(data)); err != nil {
			return "", err
		}
	}

	objectName := uuid.NewString() + ext
	return uploader.Upload(c.Request.Context(), objectName, bytes.NewReader(data), int64(len(data)), contentType)
}
