package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"nebenscan/internal/analysis"
	"nebenscan/internal/domain"
	"nebenscan/internal/extractor"
	"nebenscan/internal/port"
)

// AnalysisService drives a bill through extraction, verification, and the
// analysis engine.
type AnalysisService interface {
	RequeueExtraction(ctx context.Context, billID uuid.UUID) (*domain.Bill, error)
	VerifyAndAnalyze(ctx context.Context, billID uuid.UUID, verified domain.VerifiedBill) (*domain.Bill, *analysis.Result, error)
	// ExtractBill performs one extraction attempt for a claimed bill. The
	// bill must already be in extracting status with ExtractAttempts
	// incremented. Called by the queue worker.
	ExtractBill(ctx context.Context, bill *domain.Bill, maxAttempts int)
}

type analysisService struct {
	billRepo  port.BillRepository
	itemRepo  port.LineItemRepository
	storage   port.ObjectStorage
	extractor port.BillExtractor
	analyzer  *analysis.Analyzer
}

// NewAnalysisService creates a new AnalysisService implementation.
func NewAnalysisService(
	billRepo port.BillRepository,
	itemRepo port.LineItemRepository,
	storage port.ObjectStorage,
	billExtractor port.BillExtractor,
	analyzer *analysis.Analyzer,
) AnalysisService {
	return &analysisService{
		billRepo:  billRepo,
		itemRepo:  itemRepo,
		storage:   storage,
		extractor: billExtractor,
		analyzer:  analyzer,
	}
}

func (s *analysisService) RequeueExtraction(ctx context.Context, billID uuid.UUID) (*domain.Bill, error) {
	bill, err := s.billRepo.GetByID(ctx, billID)
	if err != nil {
		return nil, err
	}

	if bill.Status == domain.BillStatusQueued || bill.Status == domain.BillStatusExtracting {
		return bill, nil
	}

	log.Printf("analysisService.RequeueExtraction: queueing bill %s (was %s)", bill.ID, bill.Status)

	if err := s.billRepo.UpdateStatus(ctx, bill.ID, domain.BillStatusQueued); err != nil {
		return nil, fmt.Errorf("queueing bill: %w", err)
	}
	bill.Status = domain.BillStatusQueued
	return bill, nil
}

// ExtractBill downloads the bill file, runs the vision extractor, and stores
// the extracted payload plus its line items. Rate limits requeue the bill
// until maxAttempts is reached; any other failure is terminal.
func (s *analysisService) ExtractBill(ctx context.Context, bill *domain.Bill, maxAttempts int) {
	fileBytes, err := s.storage.Download(ctx, bill.S3Bucket, bill.S3Key)
	if err != nil {
		s.failExtraction(ctx, bill, fmt.Sprintf("downloading file: %v", err))
		return
	}

	output, err := s.extractor.Extract(ctx, port.ExtractInput{
		FileBytes:   fileBytes,
		ContentType: bill.ContentType,
	})
	if err != nil {
		s.handleExtractError(ctx, bill, err, maxAttempts)
		return
	}

	extractedJSON, err := json.Marshal(output.Bill)
	if err != nil {
		s.failExtraction(ctx, bill, fmt.Sprintf("marshaling extracted data: %v", err))
		return
	}

	items := make([]domain.LineItem, 0, len(output.Bill.LineItems))
	for _, li := range output.Bill.LineItems {
		category := li.Category
		if category == "" {
			category = "other"
		}
		items = append(items, domain.LineItem{
			Name:        li.Name,
			Amount:      li.Amount,
			Unit:        li.Unit,
			CostPerUnit: li.CostPerUnit,
			TotalCost:   li.TotalCost,
			Category:    category,
		})
	}

	if err := s.itemRepo.ReplaceForBill(ctx, bill.ID, items); err != nil {
		s.failExtraction(ctx, bill, fmt.Sprintf("saving line items: %v", err))
		return
	}

	bill.Status = domain.BillStatusVerifying
	bill.ExtractedData = extractedJSON
	bill.ExtractError = ""
	if err := s.billRepo.UpdateExtraction(ctx, bill); err != nil {
		log.Printf("analysisService.ExtractBill: failed to save results for %s: %v", bill.ID, err)
		return
	}

	log.Printf("analysisService.ExtractBill: bill %s extracted (%d line items, model %s)",
		bill.ID, len(items), output.ModelUsed)
}

// handleExtractError requeues the bill on rate limits while attempts remain.
func (s *analysisService) handleExtractError(ctx context.Context, bill *domain.Bill, extractErr error, maxAttempts int) {
	var rlErr *extractor.RateLimitError
	if errors.As(extractErr, &rlErr) && bill.ExtractAttempts < maxAttempts {
		bill.Status = domain.BillStatusQueued
		bill.ExtractError = fmt.Sprintf("rate limited by %s, queued for retry", rlErr.Provider)
		if err := s.billRepo.UpdateExtraction(ctx, bill); err != nil {
			log.Printf("analysisService.handleExtractError: failed to requeue bill %s: %v", bill.ID, err)
			return
		}
		log.Printf("analysisService.handleExtractError: bill %s requeued (attempt %d/%d)",
			bill.ID, bill.ExtractAttempts, maxAttempts)
		return
	}
	s.failExtraction(ctx, bill, fmt.Sprintf("extracting bill: %v", extractErr))
}

func (s *analysisService) failExtraction(ctx context.Context, bill *domain.Bill, errMsg string) {
	log.Printf("analysisService.failExtraction: bill %s failed: %s", bill.ID, errMsg)
	bill.Status = domain.BillStatusFailed
	bill.ExtractError = errMsg
	if err := s.billRepo.UpdateExtraction(ctx, bill); err != nil {
		log.Printf("analysisService.failExtraction: failed to update status for %s: %v", bill.ID, err)
	}
}

// VerifyAndAnalyze stores the user-confirmed bill fields and runs the
// analysis engine over the stored line items. Re-verifying a completed bill
// re-runs the analysis with the new values.
func (s *analysisService) VerifyAndAnalyze(ctx context.Context, billID uuid.UUID, verified domain.VerifiedBill) (*domain.Bill, *analysis.Result, error) {
	bill, err := s.billRepo.GetByID(ctx, billID)
	if err != nil {
		return nil, nil, err
	}

	if bill.Status != domain.BillStatusVerifying && bill.Status != domain.BillStatusCompleted {
		return nil, nil, domain.ErrBillNotExtracted
	}

	if verified.TotalSquareMeters < 0 || verified.TotalCost < 0 {
		return nil, nil, domain.ErrInvalidVerifiedData
	}

	items, err := s.itemRepo.ListByBill(ctx, billID)
	if err != nil {
		return nil, nil, err
	}
	if len(items) == 0 {
		return nil, nil, domain.ErrNoLineItems
	}

	if err := s.billRepo.UpdateStatus(ctx, billID, domain.BillStatusAnalyzing); err != nil {
		return nil, nil, fmt.Errorf("updating status: %w", err)
	}

	result := s.analyzer.AnalyzeBill(items, verified.TotalSquareMeters)

	for i := range result.LineItems {
		if err := s.itemRepo.UpdateAnalysis(ctx, &result.LineItems[i]); err != nil {
			return nil, nil, fmt.Errorf("saving item analysis: %w", err)
		}
	}

	verifiedJSON, err := json.Marshal(verified)
	if err != nil {
		return nil, nil, fmt.Errorf("marshaling verified data: %w", err)
	}

	now := time.Now().UTC()
	bill.Status = domain.BillStatusCompleted
	bill.VerifiedData = verifiedJSON
	bill.TotalErrors = result.TotalErrors
	bill.FormalErrors = result.FormalErrors
	bill.Outliers = result.Outliers
	bill.EstimatedRefund = result.EstimatedRefund
	bill.AnalyzedAt = &now

	if err := s.billRepo.UpdateAnalysis(ctx, bill); err != nil {
		return nil, nil, fmt.Errorf("saving analysis: %w", err)
	}

	log.Printf("analysisService.VerifyAndAnalyze: bill %s analyzed (%d errors, refund %.2f)",
		bill.ID, result.TotalErrors, result.EstimatedRefund)

	return bill, result, nil
}
