package billing

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/billcore/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockObjectStorageService is a mock implementation of ObjectStorageService
type MockObjectStorageService struct {
	mock.Mock
}

func (m *MockObjectStorageService) GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error) {
	args := m.Called(ctx, storageKey, contentType, expiresIn)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockObjectStorageService) GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error) {
	args := m.Called(ctx, storageKey, expiresIn)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockObjectStorageService) DeleteObject(ctx context.Context, storageKey string) error {
	args := m.Called(ctx, storageKey)
	return args.Error(0)
}

func (m *MockObjectStorageService) ObjectExists(ctx context.Context, storageKey string) (bool, error) {
	args := m.Called(ctx, storageKey)
	return args.Bool(0), args.Error(1)
}

var _ ObjectStorageService = (*MockObjectStorageService)(nil)

func newImageServiceFixture() (*BillImageService, *MockBillRepository, *MockObjectStorageService) {
	billRepo := new(MockBillRepository)
	storage := new(MockObjectStorageService)
	return NewBillImageService(billRepo, storage), billRepo, storage
}

func TestBillImageService_InitiateUpload(t *testing.T) {
	t.Run("returns presigned URL and scoped storage key for draft bill", func(t *testing.T) {
		svc, billRepo, storage := newImageServiceFixture()
		tenantID := uuid.New()
		bill := draftBill(t, tenantID, uuid.New())
		expiresAt := time.Now().Add(15 * time.Minute)

		billRepo.On("FindByIDForTenant", mock.Anything, tenantID, bill.ID).Return(bill, nil)
		storage.On("GenerateUploadURL", mock.Anything, mock.AnythingOfType("string"), "image/jpeg", 15*time.Minute).
			Return("https://storage.local/upload", expiresAt, nil)

		resp, err := svc.InitiateUpload(context.Background(), tenantID, bill.ID, InitiateImageUploadRequest{
			FileName:    "scan.jpg",
			ContentType: "image/jpeg",
		})
		require.NoError(t, err)
		assert.Equal(t, "https://storage.local/upload", resp.UploadURL)
		assert.True(t, strings.HasPrefix(resp.ObjectKey, "tenants/"+tenantID.String()+"/bills/"+bill.ID.String()+"/images/"))
		assert.True(t, strings.HasSuffix(resp.ObjectKey, ".jpg"))
		assert.Equal(t, expiresAt, resp.ExpiresAt)
	})

	t.Run("rejects disallowed content types", func(t *testing.T) {
		svc, billRepo, _ := newImageServiceFixture()
		tenantID := uuid.New()
		bill := draftBill(t, tenantID, uuid.New())

		billRepo.On("FindByIDForTenant", mock.Anything, tenantID, bill.ID).Return(bill, nil)

		_, err := svc.InitiateUpload(context.Background(), tenantID, bill.ID, InitiateImageUploadRequest{
			FileName:    "scan.svg",
			ContentType: "image/svg+xml",
		})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "DISALLOWED_CONTENT_TYPE", domainErr.Code)
	})

	t.Run("rejects upload for confirmed bill", func(t *testing.T) {
		svc, billRepo, _ := newImageServiceFixture()
		tenantID := uuid.New()
		bill := confirmedBill(t, tenantID, uuid.New())

		billRepo.On("FindByIDForTenant", mock.Anything, tenantID, bill.ID).Return(bill, nil)

		_, err := svc.InitiateUpload(context.Background(), tenantID, bill.ID, InitiateImageUploadRequest{
			FileName:    "scan.jpg",
			ContentType: "image/jpeg",
		})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
	})
}

func TestBillImageService_ConfirmUpload(t *testing.T) {
	t.Run("records object key and OCR text after verifying upload", func(t *testing.T) {
		svc, billRepo, storage := newImageServiceFixture()
		tenantID := uuid.New()
		bill := draftBill(t, tenantID, uuid.New())
		objectKey := "tenants/" + tenantID.String() + "/bills/" + bill.ID.String() + "/images/scan.jpg"

		billRepo.On("FindByIDForTenant", mock.Anything, tenantID, bill.ID).Return(bill, nil)
		storage.On("ObjectExists", mock.Anything, objectKey).Return(true, nil)
		billRepo.On("SaveWithLock", mock.Anything, bill).Return(nil)
		storage.On("GenerateDownloadURL", mock.Anything, objectKey, time.Hour).
			Return("https://storage.local/download", time.Now().Add(time.Hour), nil)

		resp, err := svc.ConfirmUpload(context.Background(), tenantID, bill.ID, AttachBillImageRequest{
			ObjectKey: objectKey,
			OCRText:   "Rice bags 25kg x2",
		})
		require.NoError(t, err)
		assert.Equal(t, objectKey, resp.ImagePath)
		assert.Equal(t, "Rice bags 25kg x2", resp.OCRText)
		assert.Equal(t, "https://storage.local/download", resp.ImageURL)
		billRepo.AssertCalled(t, "SaveWithLock", mock.Anything, bill)
	})

	t.Run("fails when the object never landed in storage", func(t *testing.T) {
		svc, billRepo, storage := newImageServiceFixture()
		tenantID := uuid.New()
		bill := draftBill(t, tenantID, uuid.New())

		billRepo.On("FindByIDForTenant", mock.Anything, tenantID, bill.ID).Return(bill, nil)
		storage.On("ObjectExists", mock.Anything, "missing-key").Return(false, nil)

		_, err := svc.ConfirmUpload(context.Background(), tenantID, bill.ID, AttachBillImageRequest{
			ObjectKey: "missing-key",
		})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "UPLOAD_NOT_FOUND", domainErr.Code)
		billRepo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
	})
}

func TestBillImageService_GetImageURL(t *testing.T) {
	t.Run("returns presigned download URL", func(t *testing.T) {
		svc, billRepo, storage := newImageServiceFixture()
		tenantID := uuid.New()
		bill := draftBill(t, tenantID, uuid.New())
		require.NoError(t, bill.AttachImage("tenants/x/bills/y/images/scan.jpg"))
		expiresAt := time.Now().Add(time.Hour)

		billRepo.On("FindByIDForTenant", mock.Anything, tenantID, bill.ID).Return(bill, nil)
		storage.On("GenerateDownloadURL", mock.Anything, bill.ImagePath, time.Hour).
			Return("https://storage.local/download", expiresAt, nil)

		resp, err := svc.GetImageURL(context.Background(), tenantID, bill.ID)
		require.NoError(t, err)
		assert.Equal(t, "https://storage.local/download", resp.URL)
		assert.Equal(t, expiresAt, resp.ExpiresAt)
	})

	t.Run("fails when bill has no image", func(t *testing.T) {
		svc, billRepo, _ := newImageServiceFixture()
		tenantID := uuid.New()
		bill := draftBill(t, tenantID, uuid.New())

		billRepo.On("FindByIDForTenant", mock.Anything, tenantID, bill.ID).Return(bill, nil)

		_, err := svc.GetImageURL(context.Background(), tenantID, bill.ID)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "NOT_FOUND", domainErr.Code)
	})
}
