package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Bill represents one uploaded utility-cost statement and its lifecycle
// from upload through extraction, verification, analysis, and payment.
type Bill struct {
	ID              uuid.UUID       `db:"id" json:"id"`
	FileName        string          `db:"file_name" json:"file_name"`
	OriginalName    string          `db:"original_name" json:"original_name"`
	FileType        FileType        `db:"file_type" json:"file_type"`
	FileSize        int64           `db:"file_size" json:"file_size"`
	S3Bucket        string          `db:"s3_bucket" json:"-"`
	S3Key           string          `db:"s3_key" json:"-"`
	ContentType     string          `db:"content_type" json:"content_type"`
	ContactEmail    string          `db:"contact_email" json:"contact_email,omitempty"`
	Status          BillStatus      `db:"status" json:"status"`
	PaymentStatus   PaymentStatus   `db:"payment_status" json:"payment_status"`
	PaymentID       string          `db:"payment_id" json:"payment_id,omitempty"`
	ExtractedData   json.RawMessage `db:"extracted_data" json:"extracted_data,omitempty"`
	VerifiedData    json.RawMessage `db:"verified_data" json:"verified_data,omitempty"`
	ExtractAttempts int             `db:"extract_attempts" json:"extract_attempts"`
	ExtractError    string          `db:"extract_error" json:"extract_error,omitempty"`
	TotalErrors     int             `db:"total_errors" json:"total_errors"`
	FormalErrors    int             `db:"formal_errors" json:"formal_errors"`
	Outliers        int             `db:"outliers" json:"outliers"`
	EstimatedRefund float64         `db:"estimated_refund" json:"estimated_refund"`
	AnalyzedAt      *time.Time      `db:"analyzed_at" json:"analyzed_at,omitempty"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at" json:"updated_at"`
}

// LineItem is a single cost position on a bill. Score, error, and benchmark
// columns stay NULL until the analysis engine has run.
type LineItem struct {
	ID            uuid.UUID `db:"id" json:"id"`
	BillID        uuid.UUID `db:"bill_id" json:"bill_id"`
	Name          string    `db:"name" json:"name"`
	Amount        *float64  `db:"amount" json:"amount,omitempty"`
	Unit          string    `db:"unit" json:"unit,omitempty"`
	CostPerUnit   *float64  `db:"cost_per_unit" json:"cost_per_unit,omitempty"`
	TotalCost     float64   `db:"total_cost" json:"total_cost"`
	Category      string    `db:"category" json:"category"`
	Score         Score     `db:"score" json:"score,omitempty"`
	ErrorType     ErrorType `db:"error_type" json:"error_type,omitempty"`
	ErrorDetails  *string   `db:"error_details" json:"error_details,omitempty"`
	BenchmarkLow  *float64  `db:"benchmark_low" json:"benchmark_low,omitempty"`
	BenchmarkHigh *float64  `db:"benchmark_high" json:"benchmark_high,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// ExtractedBill is the structured payload returned by the document
// extraction service, before the user has verified it.
type ExtractedBill struct {
	BillingPeriod     string              `json:"billing_period"`
	TotalSquareMeters float64             `json:"total_square_meters"`
	TotalCost         float64             `json:"total_cost"`
	HeatingCosts      float64             `json:"heating_costs"`
	WaterCosts        float64             `json:"water_costs"`
	LineItems         []ExtractedLineItem `json:"line_items"`
}

// ExtractedLineItem is one line item as guessed by the extraction service.
type ExtractedLineItem struct {
	Name        string   `json:"name"`
	Amount      *float64 `json:"amount,omitempty"`
	Unit        string   `json:"unit,omitempty"`
	CostPerUnit *float64 `json:"cost_per_unit,omitempty"`
	TotalCost   float64  `json:"total_cost"`
	Category    string   `json:"category"`
}

// VerifiedBill holds the user-confirmed bill-level fields that feed analysis.
type VerifiedBill struct {
	BillingPeriod     string  `json:"billing_period"`
	TotalSquareMeters float64 `json:"total_square_meters"`
	TotalCost         float64 `json:"total_cost"`
	LandlordName      string  `json:"landlord_name,omitempty"`
	TenantName        string  `json:"tenant_name,omitempty"`
	TenantAddress     string  `json:"tenant_address,omitempty"`
}
