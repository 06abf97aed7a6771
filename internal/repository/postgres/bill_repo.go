package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"nebenscan/internal/domain"
	"nebenscan/internal/port"
)

type billRepo struct {
	db *sqlx.DB
}

// NewBillRepo creates a new PostgreSQL-backed BillRepository.
func NewBillRepo(db *sqlx.DB) port.BillRepository {
	return &billRepo{db: db}
}

func (r *billRepo) Create(ctx context.Context, bill *domain.Bill) error {
	now := time.Now().UTC()
	bill.CreatedAt = now
	bill.UpdatedAt = now

	query := `INSERT INTO bills
		(id, file_name, original_name, file_type, file_size, s3_bucket, s3_key,
		 content_type, contact_email, status, payment_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := r.db.ExecContext(ctx, query,
		bill.ID, bill.FileName, bill.OriginalName, bill.FileType, bill.FileSize,
		bill.S3Bucket, bill.S3Key, bill.ContentType, bill.ContactEmail,
		bill.Status, bill.PaymentStatus, bill.CreatedAt, bill.UpdatedAt)
	if err != nil {
		return fmt.Errorf("billRepo.Create: %w", err)
	}
	return nil
}

func (r *billRepo) GetByID(ctx context.Context, billID uuid.UUID) (*domain.Bill, error) {
	var bill domain.Bill
	err := r.db.GetContext(ctx, &bill, "SELECT * FROM bills WHERE id = $1", billID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("billRepo.GetByID: %w", err)
	}
	return &bill, nil
}

func (r *billRepo) List(ctx context.Context, offset, limit int) ([]domain.Bill, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM bills")
	if err != nil {
		return nil, 0, fmt.Errorf("billRepo.List count: %w", err)
	}

	var bills []domain.Bill
	err = r.db.SelectContext(ctx, &bills,
		"SELECT * FROM bills ORDER BY created_at DESC LIMIT $1 OFFSET $2", limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("billRepo.List: %w", err)
	}
	return bills, total, nil
}

func (r *billRepo) UpdateStatus(ctx context.Context, billID uuid.UUID, status domain.BillStatus) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE bills SET status = $1, updated_at = $2 WHERE id = $3",
		status, time.Now().UTC(), billID)
	if err != nil {
		return fmt.Errorf("billRepo.UpdateStatus: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *billRepo) UpdateExtraction(ctx context.Context, bill *domain.Bill) error {
	bill.UpdatedAt = time.Now().UTC()

	query := `UPDATE bills SET
		status = $1, extracted_data = $2, extract_attempts = $3, extract_error = $4,
		updated_at = $5
		WHERE id = $6`

	result, err := r.db.ExecContext(ctx, query,
		bill.Status, bill.ExtractedData, bill.ExtractAttempts, bill.ExtractError,
		bill.UpdatedAt, bill.ID)
	if err != nil {
		return fmt.Errorf("billRepo.UpdateExtraction: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *billRepo) UpdateAnalysis(ctx context.Context, bill *domain.Bill) error {
	bill.UpdatedAt = time.Now().UTC()

	query := `UPDATE bills SET
		status = $1, verified_data = $2, total_errors = $3, formal_errors = $4,
		outliers = $5, estimated_refund = $6, analyzed_at = $7, updated_at = $8
		WHERE id = $9`

	result, err := r.db.ExecContext(ctx, query,
		bill.Status, bill.VerifiedData, bill.TotalErrors, bill.FormalErrors,
		bill.Outliers, bill.EstimatedRefund, bill.AnalyzedAt, bill.UpdatedAt, bill.ID)
	if err != nil {
		return fmt.Errorf("billRepo.UpdateAnalysis: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *billRepo) MarkPaid(ctx context.Context, billID uuid.UUID, paymentID string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE bills SET payment_status = $1, payment_id = $2, updated_at = $3 WHERE id = $4",
		domain.PaymentStatusPaid, paymentID, time.Now().UTC(), billID)
	if err != nil {
		return fmt.Errorf("billRepo.MarkPaid: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ClaimQueued picks up to limit queued bills and flips them to extracting in a
// single statement. SKIP LOCKED keeps concurrent workers from claiming the
// same rows.
func (r *billRepo) ClaimQueued(ctx context.Context, limit int) ([]domain.Bill, error) {
	query := `UPDATE bills SET
		status = $1, extract_attempts = extract_attempts + 1, updated_at = $2
		WHERE id IN (
			SELECT id FROM bills
			WHERE status = $3
			ORDER BY created_at ASC
			LIMIT $4
			FOR UPDATE SKIP LOCKED
		)
		RETURNING *`

	var bills []domain.Bill
	err := r.db.SelectContext(ctx, &bills, query,
		domain.BillStatusExtracting, time.Now().UTC(), domain.BillStatusQueued, limit)
	if err != nil {
		return nil, fmt.Errorf("billRepo.ClaimQueued: %w", err)
	}
	return bills, nil
}
