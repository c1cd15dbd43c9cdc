package storage

import (
	"context"
	"mime/multipart"
	"time"
)

// StorageService abstracts the media host used for post images and
// service-request photos.
type StorageService interface {
	// UploadFile uploads a multipart file into the given folder and returns
	// its permanent public identifier.
	UploadFile(ctx context.Context, file *multipart.FileHeader, destFolder string) (string, error)
	// DeleteFile deletes a file by its public identifier.
	DeleteFile(ctx context.Context, publicID string) error
	// GetDownloadURL constructs a public URL for a stored file.
	GetDownloadURL(ctx context.Context, resourceType, publicID string) (string, error)
	// GetSecureDownloadURL generates a signed, short-lived URL.
	GetSecureDownloadURL(ctx context.Context, resourceType, publicID string, expires time.Duration) (string, error)
}
