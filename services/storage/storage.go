package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// StorageService defines the interface for media storage operations.
type StorageService interface {
	UploadImage(ctx context.Context, file io.Reader, destFolder string) (string, error)
	DeleteImage(ctx context.Context, publicID string) error
	GetImageURL(publicID string) (string, error)
}

// CloudinaryStorageService implements StorageService using Cloudinary.
type CloudinaryStorageService struct {
	cld       *cloudinary.Cloudinary
	cloudName string
}

// NewStorageService creates a new CloudinaryStorageService instance.
func NewStorageService(cld *cloudinary.Cloudinary, cloudName string) StorageService {
	return &CloudinaryStorageService{
		cld:       cld,
		cloudName: cloudName,
	}
}

// UploadImage uploads an image to Cloudinary into the specified folder and
// returns the delivery URL of the uploaded asset.
func (s *CloudinaryStorageService) UploadImage(ctx context.Context, file io.Reader, destFolder string) (string, error) {
	uploadParams := uploader.UploadParams{
		Folder:   destFolder,
		PublicID: fmt.Sprintf("img_%d", time.Now().UnixNano()),
	}
	result, err := s.cld.Upload.Upload(ctx, file, uploadParams)
	if err != nil {
		return "", fmt.Errorf("CloudinaryStorageService: failed to upload image: %w", err)
	}
	if result.SecureURL == "" {
		return "", fmt.Errorf("CloudinaryStorageService: no URL returned for upload")
	}
	return result.SecureURL, nil
}

// DeleteImage deletes an image from Cloudinary given its public ID.
func (s *CloudinaryStorageService) DeleteImage(ctx context.Context, publicID string) error {
	_, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("CloudinaryStorageService: failed to delete image: %w", err)
	}
	return nil
}

// GetImageURL constructs the public delivery URL for an image asset.
func (s *CloudinaryStorageService) GetImageURL(publicID string) (string, error) {
	a, err := s.cld.Image(publicID)
	if err != nil {
		return "", fmt.Errorf("CloudinaryStorageService: failed to get asset: %w", err)
	}
	url, err := a.String()
	if err != nil {
		return "", fmt.Errorf("CloudinaryStorageService: failed to get URL string: %w", err)
	}
	return url, nil
}
