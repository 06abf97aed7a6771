package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"nebenscan/internal/domain"
	"nebenscan/internal/port"
)

type lineItemRepo struct {
	db *sqlx.DB
}

// NewLineItemRepo creates a new PostgreSQL-backed LineItemRepository.
func NewLineItemRepo(db *sqlx.DB) port.LineItemRepository {
	return &lineItemRepo{db: db}
}

// ReplaceForBill swaps a bill's line items inside one transaction so a
// re-extraction never leaves a partial mix of old and new rows.
func (r *lineItemRepo) ReplaceForBill(ctx context.Context, billID uuid.UUID, items []domain.LineItem) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("lineItemRepo.ReplaceForBill begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM line_items WHERE bill_id = $1", billID); err != nil {
		return fmt.Errorf("lineItemRepo.ReplaceForBill delete: %w", err)
	}

	query := `INSERT INTO line_items
		(id, bill_id, name, amount, unit, cost_per_unit, total_cost, category, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	now := time.Now().UTC()
	for i := range items {
		item := &items[i]
		if item.ID == uuid.Nil {
			item.ID = uuid.New()
		}
		item.BillID = billID
		item.CreatedAt = now

		_, err := tx.ExecContext(ctx, query,
			item.ID, item.BillID, item.Name, item.Amount, item.Unit,
			item.CostPerUnit, item.TotalCost, item.Category, item.CreatedAt)
		if err != nil {
			return fmt.Errorf("lineItemRepo.ReplaceForBill insert: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("lineItemRepo.ReplaceForBill commit: %w", err)
	}
	return nil
}

func (r *lineItemRepo) ListByBill(ctx context.Context, billID uuid.UUID) ([]domain.LineItem, error) {
	var items []domain.LineItem
	err := r.db.SelectContext(ctx, &items,
		"SELECT * FROM line_items WHERE bill_id = $1 ORDER BY created_at ASC, id ASC", billID)
	if err != nil {
		return nil, fmt.Errorf("lineItemRepo.ListByBill: %w", err)
	}
	return items, nil
}

func (r *lineItemRepo) UpdateAnalysis(ctx context.Context, item *domain.LineItem) error {
	query := `UPDATE line_items SET
		score = $1, error_type = $2, error_details = $3, benchmark_low = $4, benchmark_high = $5
		WHERE id = $6`

	result, err := r.db.ExecContext(ctx, query,
		item.Score, item.ErrorType, item.ErrorDetails,
		item.BenchmarkLow, item.BenchmarkHigh, item.ID)
	if err != nil {
		return fmt.Errorf("lineItemRepo.UpdateAnalysis: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
