package file

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/fleetwerk/timelog-backend-go/internal/pkg/storage"
	"github.com/google/uuid"
)

type FileService interface {
	// UploadReceiptImage stores a fuel receipt photo and returns its key.
	// The image is kept exactly as uploaded; receipts are evidence.
	UploadReceiptImage(ctx context.Context, employeeID string, purchaseDate time.Time, file io.Reader, filename string) (string, error)

	DeleteFile(ctx context.Context, path string) error
	GetFileURL(ctx context.Context, path string, expiry time.Duration) (string, error)
}

type fileServiceImpl struct {
	storage storage.FileStorage
}

func NewFileService(storage storage.FileStorage) FileService {
	return &fileServiceImpl{
		storage: storage,
	}
}

var allowedReceiptExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

func (s *fileServiceImpl) UploadReceiptImage(ctx context.Context, employeeID string, purchaseDate time.Time, file io.Reader, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedReceiptExts[ext] {
		return "", fmt.Errorf("unsupported receipt image type: %s", ext)
	}

	key := fmt.Sprintf("receipts/%s/%s/%s%s",
		purchaseDate.Format("2006-01"),
		employeeID,
		uuid.New().String(),
		ext,
	)

	contentType := "image/jpeg"
	if ext == ".png" {
		contentType = "image/png"
	}

	path, err := s.storage.Upload(ctx, file, key, contentType)
	if err != nil {
		return "", fmt.Errorf("failed to upload receipt image: %w", err)
	}
	return path, nil
}

func (s *fileServiceImpl) DeleteFile(ctx context.Context, path string) error {
	return s.storage.Delete(ctx, path)
}

func (s *fileServiceImpl) GetFileURL(ctx context.Context, path string, expiry time.Duration) (string, error) {
	return s.storage.GetURL(ctx, path, expiry)
}
