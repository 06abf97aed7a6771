package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"nebenscan/internal/config"
	"nebenscan/internal/domain"
	"nebenscan/internal/port"
)

// BillUploadInput is the DTO for bill upload requests.
type BillUploadInput struct {
	File         multipart.File
	Header       *multipart.FileHeader
	ContactEmail string
}

// BillService defines the bill management contract.
type BillService interface {
	Upload(ctx context.Context, input BillUploadInput) (*domain.Bill, error)
	GetByID(ctx context.Context, billID uuid.UUID) (*domain.Bill, error)
	List(ctx context.Context, offset, limit int) ([]domain.Bill, int, error)
	GetDownloadURL(ctx context.Context, billID uuid.UUID) (string, error)
}

type billService struct {
	billRepo port.BillRepository
	storage  port.ObjectStorage
	cfg      *config.S3Config
}

// NewBillService creates a new BillService implementation.
func NewBillService(
	billRepo port.BillRepository,
	storage port.ObjectStorage,
	cfg *config.S3Config,
) BillService {
	return &billService{
		billRepo: billRepo,
		storage:  storage,
		cfg:      cfg,
	}
}

func (s *billService) Upload(ctx context.Context, input BillUploadInput) (*domain.Bill, error) {
	// Validate file extension
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(input.Header.Filename), "."))
	fileType, ok := domain.AllowedExtensions[ext]
	if !ok {
		return nil, domain.ErrUnsupportedFileType
	}

	// Validate file size
	maxBytes := s.cfg.MaxFileSizeMB * 1024 * 1024
	if input.Header.Size > maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	// Read first 512 bytes for magic-byte content type detection
	buf := make([]byte, 512)
	n, err := input.File.Read(buf)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("reading file header: %w", err)
	}
	detectedType := http.DetectContentType(buf[:n])

	// Validate detected content type
	_, validContent := domain.AllowedContentTypes[detectedType]
	if !validContent {
		return nil, domain.ErrUnsupportedFileType
	}

	// Seek back to beginning for upload
	if _, err := input.File.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seeking file: %w", err)
	}

	billID := uuid.New()
	s3Key := port.BillObjectKey(billID, input.Header.Filename)
	contentType := domain.AllowedFileTypes[fileType]

	bill := &domain.Bill{
		ID:            billID,
		FileName:      billID.String() + "." + ext,
		OriginalName:  input.Header.Filename,
		FileType:      fileType,
		FileSize:      input.Header.Size,
		S3Bucket:      s.cfg.Bucket,
		S3Key:         s3Key,
		ContentType:   contentType,
		ContactEmail:  input.ContactEmail,
		Status:        domain.BillStatusUploaded,
		PaymentStatus: domain.PaymentStatusPending,
	}

	log.Printf("billService.Upload: uploading bill %s (%s, %d bytes)",
		input.Header.Filename, contentType, input.Header.Size)

	if err := s.billRepo.Create(ctx, bill); err != nil {
		log.Printf("billService.Upload: failed to create bill: %v", err)
		return nil, fmt.Errorf("creating bill: %w", err)
	}

	_, err = s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.cfg.Bucket,
		BillID:      billID,
		Filename:    input.Header.Filename,
		Body:        input.File,
		ContentType: contentType,
		Size:        input.Header.Size,
	})
	if err != nil {
		log.Printf("billService.Upload: S3 upload failed for bill %s: %v", bill.ID, err)
		_ = s.billRepo.UpdateStatus(ctx, bill.ID, domain.BillStatusFailed)
		return nil, domain.ErrUploadFailed
	}

	// Queue for extraction; the queue worker picks it up on the next poll
	if err := s.billRepo.UpdateStatus(ctx, bill.ID, domain.BillStatusQueued); err != nil {
		return nil, fmt.Errorf("queueing bill: %w", err)
	}
	bill.Status = domain.BillStatusQueued

	return bill, nil
}

func (s *billService) GetByID(ctx context.Context, billID uuid.UUID) (*domain.Bill, error) {
	return s.billRepo.GetByID(ctx, billID)
}

func (s *billService) List(ctx context.Context, offset, limit int) ([]domain.Bill, int, error) {
	return s.billRepo.List(ctx, offset, limit)
}

func (s *billService) GetDownloadURL(ctx context.Context, billID uuid.UUID) (string, error) {
	bill, err := s.billRepo.GetByID(ctx, billID)
	if err != nil {
		return "", err
	}
	// Downloads keep the tenant's original filename via Content-Disposition.
	return s.storage.GetPresignedURL(ctx, bill.S3Bucket, bill.S3Key, bill.OriginalName, s.cfg.PresignExpiry)
}
