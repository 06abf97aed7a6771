package port

import (
	"context"

	"github.com/google/uuid"

	"nebenscan/internal/domain"
)

// BillRepository defines the contract for bill persistence.
type BillRepository interface {
	Create(ctx context.Context, bill *domain.Bill) error
	GetByID(ctx context.Context, billID uuid.UUID) (*domain.Bill, error)
	List(ctx context.Context, offset, limit int) ([]domain.Bill, int, error)
	UpdateStatus(ctx context.Context, billID uuid.UUID, status domain.BillStatus) error
	UpdateExtraction(ctx context.Context, bill *domain.Bill) error
	UpdateAnalysis(ctx context.Context, bill *domain.Bill) error
	MarkPaid(ctx context.Context, billID uuid.UUID, paymentID string) error
	// ClaimQueued atomically claims up to limit queued bills for extraction,
	// moving them to the extracting status.
	ClaimQueued(ctx context.Context, limit int) ([]domain.Bill, error)
}

// LineItemRepository defines the contract for line-item persistence.
type LineItemRepository interface {
	ReplaceForBill(ctx context.Context, billID uuid.UUID, items []domain.LineItem) error
	ListByBill(ctx context.Context, billID uuid.UUID) ([]domain.LineItem, error)
	UpdateAnalysis(ctx context.Context, item *domain.LineItem) error
}
