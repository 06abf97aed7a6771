package service_test

import (
	"bytes"
	"context"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"nebenscan/internal/config"
	"nebenscan/internal/domain"
	"nebenscan/internal/port"
	"nebenscan/internal/service"
	"nebenscan/mocks"
)

// fakeFile implements multipart.File over an in-memory buffer.
type fakeFile struct {
	*bytes.Reader
}

func (f *fakeFile) Close() error { return nil }

func newFakeFile(data []byte) multipart.File {
	return &fakeFile{Reader: bytes.NewReader(data)}
}

func pdfBytes() []byte {
	return []byte("%PDF-1.4\n%fake test document content")
}

func testS3Config() *config.S3Config {
	return &config.S3Config{
		Bucket:        "nebenscan-bills",
		MaxFileSizeMB: 10,
		PresignExpiry: 3600,
	}
}

func TestUpload_Success(t *testing.T) {
	billRepo := new(mocks.MockBillRepo)
	storage := new(mocks.MockObjectStorage)
	svc := service.NewBillService(billRepo, storage, testS3Config())

	data := pdfBytes()
	billRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Bill")).Return(nil)
	storage.On("Upload", mock.Anything, mock.MatchedBy(func(input port.UploadInput) bool {
		return input.Bucket == "nebenscan-bills" &&
			input.Filename == "abrechnung.pdf" &&
			input.ContentType == "application/pdf"
	})).Return(&port.UploadOutput{Key: "bills/x/abrechnung.pdf", Location: "s3://nebenscan-bills/x"}, nil)
	billRepo.On("UpdateStatus", mock.Anything, mock.Anything, domain.BillStatusQueued).Return(nil)

	bill, err := svc.Upload(context.Background(), service.BillUploadInput{
		File:         newFakeFile(data),
		Header:       &multipart.FileHeader{Filename: "abrechnung.pdf", Size: int64(len(data))},
		ContactEmail: "tenant@example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.BillStatusQueued, bill.Status)
	assert.Equal(t, domain.PaymentStatusPending, bill.PaymentStatus)
	assert.Equal(t, domain.FileTypePDF, bill.FileType)
	assert.Equal(t, "abrechnung.pdf", bill.OriginalName)
	assert.Equal(t, "tenant@example.com", bill.ContactEmail)
	assert.Equal(t, port.BillObjectKey(bill.ID, "abrechnung.pdf"), bill.S3Key)
	billRepo.AssertExpectations(t)
	storage.AssertExpectations(t)
}

func TestUpload_UnsupportedExtension(t *testing.T) {
	svc := service.NewBillService(new(mocks.MockBillRepo), new(mocks.MockObjectStorage), testS3Config())

	_, err := svc.Upload(context.Background(), service.BillUploadInput{
		File:   newFakeFile([]byte("hello")),
		Header: &multipart.FileHeader{Filename: "notes.txt", Size: 5},
	})
	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
}

func TestUpload_FileTooLarge(t *testing.T) {
	svc := service.NewBillService(new(mocks.MockBillRepo), new(mocks.MockObjectStorage), testS3Config())

	_, err := svc.Upload(context.Background(), service.BillUploadInput{
		File:   newFakeFile(pdfBytes()),
		Header: &multipart.FileHeader{Filename: "big.pdf", Size: 11 * 1024 * 1024},
	})
	assert.ErrorIs(t, err, domain.ErrFileTooLarge)
}

func TestUpload_ContentMismatch(t *testing.T) {
	svc := service.NewBillService(new(mocks.MockBillRepo), new(mocks.MockObjectStorage), testS3Config())

	// .pdf name over plain text content fails magic-byte detection
	data := []byte("just some plain text pretending to be a pdf")
	_, err := svc.Upload(context.Background(), service.BillUploadInput{
		File:   newFakeFile(data),
		Header: &multipart.FileHeader{Filename: "fake.pdf", Size: int64(len(data))},
	})
	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
}

func TestUpload_StorageFailureMarksFailed(t *testing.T) {
	billRepo := new(mocks.MockBillRepo)
	storage := new(mocks.MockObjectStorage)
	svc := service.NewBillService(billRepo, storage, testS3Config())

	data := pdfBytes()
	billRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	storage.On("Upload", mock.Anything, mock.Anything).Return(nil, assert.AnError)
	billRepo.On("UpdateStatus", mock.Anything, mock.Anything, domain.BillStatusFailed).Return(nil)

	_, err := svc.Upload(context.Background(), service.BillUploadInput{
		File:   newFakeFile(data),
		Header: &multipart.FileHeader{Filename: "abrechnung.pdf", Size: int64(len(data))},
	})
	assert.ErrorIs(t, err, domain.ErrUploadFailed)
	billRepo.AssertCalled(t, "UpdateStatus", mock.Anything, mock.Anything, domain.BillStatusFailed)
}

func TestGetDownloadURL(t *testing.T) {
	billRepo := new(mocks.MockBillRepo)
	storage := new(mocks.MockObjectStorage)
	svc := service.NewBillService(billRepo, storage, testS3Config())

	bill := &domain.Bill{S3Bucket: "nebenscan-bills", S3Key: "bills/x/y.pdf", OriginalName: "abrechnung 2024.pdf"}
	billRepo.On("GetByID", mock.Anything, mock.Anything).Return(bill, nil)
	storage.On("GetPresignedURL", mock.Anything, "nebenscan-bills", "bills/x/y.pdf", "abrechnung 2024.pdf", int64(3600)).
		Return("https://signed.example/url", nil)

	url, err := svc.GetDownloadURL(context.Background(), bill.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://signed.example/url", url)
}
