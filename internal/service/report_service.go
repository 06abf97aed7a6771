package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"nebenscan/internal/csvexport"
	"nebenscan/internal/domain"
	"nebenscan/internal/letter"
	"nebenscan/internal/port"
	"nebenscan/internal/xlsxexport"
)

// BillPreview is the free teaser: aggregate findings without per-item detail.
type BillPreview struct {
	BillID          uuid.UUID            `json:"bill_id"`
	Status          domain.BillStatus    `json:"status"`
	PaymentStatus   domain.PaymentStatus `json:"payment_status"`
	LineItemCount   int                  `json:"line_item_count"`
	TotalErrors     int                  `json:"total_errors"`
	FormalErrors    int                  `json:"formal_errors"`
	Outliers        int                  `json:"outliers"`
	EstimatedRefund float64              `json:"estimated_refund"`
}

// FullReport is the paid report payload.
type FullReport struct {
	Bill      *domain.Bill        `json:"bill"`
	Verified  domain.VerifiedBill `json:"verified"`
	LineItems []domain.LineItem   `json:"line_items"`
}

// ReportService serves analysis results: the free preview and the paid
// report, objection letter, and exports.
type ReportService interface {
	Preview(ctx context.Context, billID uuid.UUID) (*BillPreview, error)
	FullReport(ctx context.Context, billID uuid.UUID) (*FullReport, error)
	Letter(ctx context.Context, billID uuid.UUID, lang letter.Language) (string, error)
	// ExportCSV and ExportXLSX stream the export to w and return the
	// filename for the Content-Disposition header.
	ExportCSV(ctx context.Context, billID uuid.UUID, w io.Writer) (string, error)
	ExportXLSX(ctx context.Context, billID uuid.UUID, w io.Writer) (string, error)
}

type reportService struct {
	billRepo port.BillRepository
	itemRepo port.LineItemRepository
}

// NewReportService creates a new ReportService implementation.
func NewReportService(billRepo port.BillRepository, itemRepo port.LineItemRepository) ReportService {
	return &reportService{
		billRepo: billRepo,
		itemRepo: itemRepo,
	}
}

func (s *reportService) Preview(ctx context.Context, billID uuid.UUID) (*BillPreview, error) {
	bill, err := s.billRepo.GetByID(ctx, billID)
	if err != nil {
		return nil, err
	}
	if bill.Status != domain.BillStatusCompleted {
		return nil, domain.ErrBillNotAnalyzed
	}

	items, err := s.itemRepo.ListByBill(ctx, billID)
	if err != nil {
		return nil, err
	}

	return &BillPreview{
		BillID:          bill.ID,
		Status:          bill.Status,
		PaymentStatus:   bill.PaymentStatus,
		LineItemCount:   len(items),
		TotalErrors:     bill.TotalErrors,
		FormalErrors:    bill.FormalErrors,
		Outliers:        bill.Outliers,
		EstimatedRefund: bill.EstimatedRefund,
	}, nil
}

// loadPaid fetches an analyzed, paid-for bill with its line items.
func (s *reportService) loadPaid(ctx context.Context, billID uuid.UUID) (*domain.Bill, []domain.LineItem, error) {
	bill, err := s.billRepo.GetByID(ctx, billID)
	if err != nil {
		return nil, nil, err
	}
	if bill.Status != domain.BillStatusCompleted {
		return nil, nil, domain.ErrBillNotAnalyzed
	}
	if bill.PaymentStatus != domain.PaymentStatusPaid {
		return nil, nil, domain.ErrPaymentRequired
	}

	items, err := s.itemRepo.ListByBill(ctx, billID)
	if err != nil {
		return nil, nil, err
	}
	return bill, items, nil
}

func parseVerified(bill *domain.Bill) (domain.VerifiedBill, error) {
	var verified domain.VerifiedBill
	if len(bill.VerifiedData) == 0 {
		return verified, domain.ErrBillNotAnalyzed
	}
	if err := json.Unmarshal(bill.VerifiedData, &verified); err != nil {
		return verified, fmt.Errorf("unmarshaling verified data: %w", err)
	}
	return verified, nil
}

func (s *reportService) FullReport(ctx context.Context, billID uuid.UUID) (*FullReport, error) {
	bill, items, err := s.loadPaid(ctx, billID)
	if err != nil {
		return nil, err
	}

	verified, err := parseVerified(bill)
	if err != nil {
		return nil, err
	}

	return &FullReport{
		Bill:      bill,
		Verified:  verified,
		LineItems: items,
	}, nil
}

func (s *reportService) Letter(ctx context.Context, billID uuid.UUID, lang letter.Language) (string, error) {
	bill, items, err := s.loadPaid(ctx, billID)
	if err != nil {
		return "", err
	}

	verified, err := parseVerified(bill)
	if err != nil {
		return "", err
	}

	flagged := make([]domain.LineItem, 0)
	for _, item := range items {
		if item.ErrorType == domain.ErrorTypeFormal || item.ErrorType == domain.ErrorTypeOutlier {
			flagged = append(flagged, item)
		}
	}

	return letter.Generate(lang, letter.Data{
		LandlordName:    verified.LandlordName,
		TenantName:      verified.TenantName,
		TenantAddress:   verified.TenantAddress,
		BillingPeriod:   verified.BillingPeriod,
		Errors:          flagged,
		EstimatedRefund: bill.EstimatedRefund,
		Date:            time.Now().UTC(),
	})
}

func (s *reportService) ExportCSV(ctx context.Context, billID uuid.UUID, w io.Writer) (string, error) {
	bill, items, err := s.loadPaid(ctx, billID)
	if err != nil {
		return "", err
	}

	if _, err := w.Write(csvexport.BOM); err != nil {
		return "", fmt.Errorf("writing BOM: %w", err)
	}

	writer := csvexport.NewWriter(w)
	if err := writer.WriteHeader(); err != nil {
		return "", fmt.Errorf("writing header: %w", err)
	}
	if err := writer.WriteLineItems(items); err != nil {
		return "", fmt.Errorf("writing rows: %w", err)
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("flushing csv: %w", err)
	}

	return csvexport.BuildFilename(bill.OriginalName), nil
}

func (s *reportService) ExportXLSX(ctx context.Context, billID uuid.UUID, w io.Writer) (string, error) {
	bill, items, err := s.loadPaid(ctx, billID)
	if err != nil {
		return "", err
	}

	if err := xlsxexport.WriteReport(w, bill, items); err != nil {
		return "", err
	}

	return xlsxexport.BuildFilename(bill.OriginalName), nil
}
