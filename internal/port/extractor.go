package port

import (
	"context"

	"nebenscan/internal/domain"
)

// ExtractInput carries the raw document handed to the extraction service.
type ExtractInput struct {
	FileBytes   []byte
	ContentType string
}

// ExtractOutput contains the structured result from a vision LLM extractor.
type ExtractOutput struct {
	Bill       *domain.ExtractedBill
	ModelUsed  string
	PromptUsed string
}

// BillExtractor abstracts LLM-based bill data extraction.
type BillExtractor interface {
	Extract(ctx context.Context, input ExtractInput) (*ExtractOutput, error)
}
