package domain

// FileType represents the allowed file types for upload.
type FileType string

const (
	FileTypePDF FileType = "pdf"
	FileTypeJPG FileType = "jpg"
	FileTypePNG FileType = "png"
)

// AllowedFileTypes maps FileType to its MIME content type.
var AllowedFileTypes = map[FileType]string{
	FileTypePDF: "application/pdf",
	FileTypeJPG: "image/jpeg",
	FileTypePNG: "image/png",
}

// AllowedContentTypes maps MIME content types back to FileType.
var AllowedContentTypes = map[string]FileType{
	"application/pdf": FileTypePDF,
	"image/jpeg":      FileTypeJPG,
	"image/png":       FileTypePNG,
}

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"pdf":  FileTypePDF,
	"jpg":  FileTypeJPG,
	"jpeg": FileTypeJPG,
	"png":  FileTypePNG,
}

// BillStatus represents the lifecycle of a bill.
type BillStatus string

const (
	BillStatusUploaded   BillStatus = "uploaded"
	BillStatusQueued     BillStatus = "queued"
	BillStatusExtracting BillStatus = "extracting"
	BillStatusVerifying  BillStatus = "verifying"
	BillStatusAnalyzing  BillStatus = "analyzing"
	BillStatusCompleted  BillStatus = "completed"
	BillStatusFailed     BillStatus = "failed"
)

// PaymentStatus represents whether the full report has been paid for.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
)

// Score is the traffic-light rating assigned to a line item by analysis.
type Score string

const (
	ScoreGreen  Score = "green"
	ScoreYellow Score = "yellow"
	ScoreRed    Score = "red"
)

// ErrorType classifies why a line item was flagged. Formal errors and
// outliers are mutually exclusive per item; a formal error always wins.
type ErrorType string

const (
	ErrorTypeFormal  ErrorType = "formal_error"
	ErrorTypeOutlier ErrorType = "outlier"
	ErrorTypeNone    ErrorType = "none"
)
