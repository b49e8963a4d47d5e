package billing

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/billcore/backend/internal/domain/billing"
	"github.com/billcore/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// AllowedImageContentTypes defines the whitelist of content types accepted
// for bill image uploads. Bills arrive as phone photos or flatbed scans,
// so images and PDF are the only formats that make sense here.
// SECURITY: SVG is excluded (can carry scripts).
var AllowedImageContentTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/webp":      true,
	"image/heic":      true,
	"image/tiff":      true,
	"application/pdf": true,
}

// ObjectStorageService defines the interface for object storage operations.
// This interface is implemented by the infrastructure layer (S3, MinIO, etc.)
type ObjectStorageService interface {
	// GenerateUploadURL generates a presigned URL for uploading a file
	// Returns the upload URL and expiration time
	GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error)

	// GenerateDownloadURL generates a presigned URL for downloading a file
	// Returns the download URL and expiration time
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)

	// DeleteObject deletes an object from storage
	DeleteObject(ctx context.Context, storageKey string) error

	// ObjectExists checks if an object exists in storage
	ObjectExists(ctx context.Context, storageKey string) (bool, error)
}

// BillImageServiceConfig holds configuration for the bill image service
type BillImageServiceConfig struct {
	// UploadURLExpiry is the duration for which upload URLs are valid
	UploadURLExpiry time.Duration
	// DownloadURLExpiry is the duration for which download URLs are valid
	DownloadURLExpiry time.Duration
}

// DefaultBillImageServiceConfig returns the default configuration
func DefaultBillImageServiceConfig() BillImageServiceConfig {
	return BillImageServiceConfig{
		UploadURLExpiry:   15 * time.Minute,
		DownloadURLExpiry: 1 * time.Hour,
	}
}

// BillImageService handles scanned bill image uploads and retrieval.
// The flow is: InitiateUpload issues a presigned PUT URL, the client uploads
// directly to object storage, then ConfirmUpload verifies the object landed
// and records its key on the bill.
type BillImageService struct {
	billRepo       billing.BillRepository
	storageService ObjectStorageService
	config         BillImageServiceConfig
}

// NewBillImageService creates a new BillImageService
func NewBillImageService(
	billRepo billing.BillRepository,
	storageService ObjectStorageService,
) *BillImageService {
	return &BillImageService{
		billRepo:       billRepo,
		storageService: storageService,
		config:         DefaultBillImageServiceConfig(),
	}
}

// SetConfig sets the service configuration
func (s *BillImageService) SetConfig(config BillImageServiceConfig) {
	s.config = config
}

// InitiateUpload validates the request and returns a presigned upload URL
// together with the storage key the client must confirm afterwards.
func (s *BillImageService) InitiateUpload(
	ctx context.Context,
	tenantID uuid.UUID,
	billID uuid.UUID,
	req InitiateImageUploadRequest,
) (*InitiateImageUploadResponse, error) {
	bill, err := s.billRepo.FindByIDForTenant(ctx, tenantID, billID)
	if err != nil {
		return nil, err
	}

	// Images attach to drafts only; fail early rather than after the upload
	if bill.Status != billing.BillStatusDraft {
		return nil, shared.NewDomainError("INVALID_STATE", "Images can only be attached to draft bills")
	}

	if !isAllowedImageContentType(req.ContentType) {
		return nil, shared.NewDomainError("DISALLOWED_CONTENT_TYPE",
			fmt.Sprintf("Content type '%s' is not allowed. Allowed types: images and PDF.", req.ContentType))
	}

	storageKey := s.generateStorageKey(tenantID, billID, req.FileName)

	uploadURL, expiresAt, err := s.storageService.GenerateUploadURL(
		ctx,
		storageKey,
		req.ContentType,
		s.config.UploadURLExpiry,
	)
	if err != nil {
		return nil, shared.NewDomainError("UPLOAD_URL_FAILED", "Failed to generate upload URL")
	}

	return &InitiateImageUploadResponse{
		ObjectKey: storageKey,
		UploadURL: uploadURL,
		ExpiresAt: expiresAt,
	}, nil
}

// ConfirmUpload verifies the object exists in storage and records its key
// on the bill, along with any text an OCR collaborator extracted.
func (s *BillImageService) ConfirmUpload(
	ctx context.Context,
	tenantID uuid.UUID,
	billID uuid.UUID,
	req AttachBillImageRequest,
) (*BillResponse, error) {
	bill, err := s.billRepo.FindByIDForTenant(ctx, tenantID, billID)
	if err != nil {
		return nil, err
	}

	exists, err := s.storageService.ObjectExists(ctx, req.ObjectKey)
	if err != nil {
		return nil, shared.NewDomainError("STORAGE_CHECK_FAILED", "Failed to verify upload")
	}
	if !exists {
		return nil, shared.NewDomainError("UPLOAD_NOT_FOUND",
			"File not found in storage. Please upload the file first.")
	}

	if err := bill.AttachImage(req.ObjectKey); err != nil {
		return nil, err
	}
	if req.OCRText != "" {
		bill.SetOCRText(req.OCRText)
	}

	if err := s.billRepo.SaveWithLock(ctx, bill); err != nil {
		return nil, err
	}

	response := ToBillResponse(bill)
	s.enrichWithImageURL(ctx, &response, bill)

	return &response, nil
}

// GetImageURL returns a presigned download URL for the bill's stored image
func (s *BillImageService) GetImageURL(
	ctx context.Context,
	tenantID uuid.UUID,
	billID uuid.UUID,
) (*BillImageURLResponse, error) {
	bill, err := s.billRepo.FindByIDForTenant(ctx, tenantID, billID)
	if err != nil {
		return nil, err
	}

	if bill.ImagePath == "" {
		return nil, shared.NewDomainError("NOT_FOUND", "Bill has no image attached")
	}

	url, expiresAt, err := s.storageService.GenerateDownloadURL(ctx, bill.ImagePath, s.config.DownloadURLExpiry)
	if err != nil {
		return nil, shared.NewDomainError("DOWNLOAD_URL_FAILED", "Failed to generate download URL")
	}

	return &BillImageURLResponse{
		ObjectKey: bill.ImagePath,
		URL:       url,
		ExpiresAt: expiresAt,
	}, nil
}

// generateStorageKey generates a unique storage key for a bill image
func (s *BillImageService) generateStorageKey(tenantID, billID uuid.UUID, fileName string) string {
	ext := filepath.Ext(fileName)
	uniqueID := uuid.New().String()
	// Format: tenants/{tenantID}/bills/{billID}/images/{uniqueID}{ext}
	return fmt.Sprintf("tenants/%s/bills/%s/images/%s%s",
		tenantID.String(),
		billID.String(),
		uniqueID,
		ext,
	)
}

// enrichWithImageURL adds a download URL to a bill response when an image is attached
func (s *BillImageService) enrichWithImageURL(ctx context.Context, response *BillResponse, bill *billing.Bill) {
	if bill.ImagePath == "" {
		return
	}

	url, _, err := s.storageService.GenerateDownloadURL(ctx, bill.ImagePath, s.config.DownloadURLExpiry)
	if err == nil {
		response.ImageURL = url
	}
}

// isAllowedImageContentType checks if a content type is in the whitelist
func isAllowedImageContentType(contentType string) bool {
	return AllowedImageContentTypes[strings.ToLower(contentType)]
}
