package port

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
)

// BillObjectKey returns the canonical object key for a bill document.
// Uploads, downloads, and presigned URLs must agree on this layout.
func BillObjectKey(billID uuid.UUID, filename string) string {
	return fmt.Sprintf("bills/%s/%s", billID, filename)
}

// UploadInput encapsulates the parameters needed to store a bill document.
type UploadInput struct {
	Bucket      string
	BillID      uuid.UUID
	Filename    string
	Body        io.Reader
	ContentType string
	Size        int64
}

// UploadOutput contains the result of a successful upload.
type UploadOutput struct {
	Key      string
	Location string
	ETag     string
}

// ObjectStorage abstracts cloud object storage for bill documents.
// GetPresignedURL takes a downloadName so the browser saves the document
// under the tenant's original filename rather than the object key.
type ObjectStorage interface {
	Upload(ctx context.Context, input UploadInput) (*UploadOutput, error)
	Download(ctx context.Context, bucket, key string) ([]byte, error)
	Delete(ctx context.Context, bucket, key string) error
	GetPresignedURL(ctx context.Context, bucket, key, downloadName string, expirySeconds int64) (string, error)
}
